package handlers

import (
	"net/http"

	"github.com/amrokhaled/future-diplomates-api/internal/auth"
	"github.com/danielgtaylor/huma/v2"
	"github.com/danielgtaylor/huma/v2/adapters/humachi"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

func RegisterRoutes(r *chi.Mux, authService *auth.Service, wizardHandler *WizardHandler, bookingHandler *BookingHandler, adminHandler *AdminHandler) {
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)

	// Initialize Huma API
	config := huma.DefaultConfig("Future Diplomates API", "1.0.0")
	config.Components.SecuritySchemes = map[string]*huma.SecurityScheme{
		"cookieAuth": {
			Type: "apiKey",
			In:   "cookie",
			Name: auth.CookieName,
		},
	}
	api := humachi.New(r, config)

	withAuth := func(o *huma.Operation) {
		o.Security = []map[string][]string{{"cookieAuth": {}}}
	}

	// Public routes
	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("OK"))
	})

	// Auth routes
	r.Get("/auth/login", authService.HandleLogin)
	r.Get("/auth/callback", authService.HandleCallback)
	huma.Get(api, "/me", authService.HandleMe, withAuth)

	// Intake wizard (anonymous submission is allowed; a cookie, when
	// present, attaches the user)
	huma.Post(api, "/wizard", wizardHandler.HandleStart)
	huma.Get(api, "/wizard/{token}", wizardHandler.HandleState)
	huma.Post(api, "/wizard/{token}/next", wizardHandler.HandleNext)
	huma.Post(api, "/wizard/{token}/back", wizardHandler.HandleBack)
	huma.Post(api, "/wizard/{token}/submit", wizardHandler.HandleSubmit)

	// Applicant self-service
	huma.Get(api, "/bookings/mine", bookingHandler.HandleMine, withAuth)

	// Admin adjudication
	huma.Get(api, "/admin/bookings", adminHandler.HandleList, withAuth)
	huma.Get(api, "/admin/bookings/stats", adminHandler.HandleStats, withAuth)
	huma.Put(api, "/admin/bookings/{id}/status", adminHandler.HandleSetStatus, withAuth)
	huma.Put(api, "/admin/bookings/{id}/price", adminHandler.HandleSetPrice, withAuth)
	huma.Put(api, "/admin/bookings/{id}/payment", adminHandler.HandleSetPayment, withAuth)
	huma.Put(api, "/admin/bookings/{id}/notes", adminHandler.HandleSetNotes, withAuth)
	r.Get("/admin/bookings.csv", adminHandler.HandleExportCSV)
}
