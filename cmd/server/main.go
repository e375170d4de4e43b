package main

import (
	"fmt"
	"net/http"

	"github.com/amrokhaled/future-diplomates-api/internal/adjudication"
	"github.com/amrokhaled/future-diplomates-api/internal/auth"
	"github.com/amrokhaled/future-diplomates-api/internal/config"
	"github.com/amrokhaled/future-diplomates-api/internal/database"
	"github.com/amrokhaled/future-diplomates-api/internal/handlers"
	"github.com/amrokhaled/future-diplomates-api/internal/intake"
	"github.com/amrokhaled/future-diplomates-api/internal/notifier"
	"github.com/amrokhaled/future-diplomates-api/internal/store"
	"github.com/go-chi/chi/v5"
	"github.com/sirupsen/logrus"
)

func main() {
	log := logrus.New()

	// Load Configuration
	cfg := config.LoadConfig()

	// Connect to Database
	db := database.Connect(cfg)
	bookings := store.New(db)

	// Notifier is optional; registrations proceed without it.
	var bookingNotifier notifier.Notifier
	if discordNotifier, err := notifier.NewDiscordNotifier(cfg); err != nil {
		log.WithError(err).Warn("Discord notifier not initialized")
	} else {
		bookingNotifier = discordNotifier
	}

	// Initialize Handlers
	authService := auth.NewService(cfg, db)
	wizard := intake.NewWizard(bookings, cfg)
	controller := adjudication.NewController(bookings)

	wizardHandler := handlers.NewWizardHandler(wizard, authService, bookingNotifier, log)
	bookingHandler := handlers.NewBookingHandler(bookings, authService)
	adminHandler := handlers.NewAdminHandler(bookings, controller, authService, log)

	// Initialize Router
	r := chi.NewRouter()
	handlers.RegisterRoutes(r, authService, wizardHandler, bookingHandler, adminHandler)

	// Start Server
	log.WithField("port", cfg.Port).Info("Starting server")
	if err := http.ListenAndServe(fmt.Sprintf(":%s", cfg.Port), r); err != nil {
		log.WithError(err).Fatal("Failed to start server")
	}
}
