package handlers

import (
	"context"
	"encoding/csv"
	"errors"
	"net/http"
	"strconv"

	"github.com/amrokhaled/future-diplomates-api/internal/adjudication"
	"github.com/amrokhaled/future-diplomates-api/internal/auth"
	"github.com/amrokhaled/future-diplomates-api/internal/models"
	"github.com/amrokhaled/future-diplomates-api/internal/store"
	"github.com/danielgtaylor/huma/v2"
	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"
)

type AdminHandler struct {
	store      *store.BookingStore
	controller *adjudication.Controller
	auth       *auth.Service
	log        *logrus.Logger
}

func NewAdminHandler(bookings *store.BookingStore, controller *adjudication.Controller, authService *auth.Service, log *logrus.Logger) *AdminHandler {
	return &AdminHandler{store: bookings, controller: controller, auth: authService, log: log}
}

func adjudicationError(err error) error {
	switch {
	case errors.Is(err, store.ErrNotFound):
		return huma.Error404NotFound("Booking not found")
	case errors.Is(err, adjudication.ErrStaleRevision):
		return huma.Error409Conflict(err.Error())
	case errors.Is(err, adjudication.ErrInvalidStatus),
		errors.Is(err, adjudication.ErrNegativeAmount):
		return huma.Error422UnprocessableEntity(err.Error())
	}
	return huma.Error500InternalServerError("Failed to update booking: " + err.Error())
}

type ListBookingsRequest struct {
	auth.AuthInput
	Query  string `query:"q" doc:"Substring match on name, email or reference"`
	Status string `query:"status" doc:"Filter by status (pending, approved, rejected)"`
}

type ListBookingsResponse struct {
	Body struct {
		Bookings []models.Booking `json:"bookings"`
	}
}

func (h *AdminHandler) HandleList(ctx context.Context, input *ListBookingsRequest) (*ListBookingsResponse, error) {
	if _, err := h.auth.RequireAdmin(ctx, input.Cookie); err != nil {
		return nil, err
	}

	bookings, err := h.store.Search(ctx, input.Query, models.BookingStatus(input.Status))
	if err != nil {
		return nil, huma.Error500InternalServerError("Failed to load bookings: " + err.Error())
	}

	res := &ListBookingsResponse{}
	res.Body.Bookings = bookings
	return res, nil
}

type BookingStatsRequest struct {
	auth.AuthInput
}

type BookingStatsResponse struct {
	Body struct {
		Total    int64 `json:"total"`
		Pending  int64 `json:"pending"`
		Approved int64 `json:"approved"`
		Rejected int64 `json:"rejected"`
	}
}

func (h *AdminHandler) HandleStats(ctx context.Context, input *BookingStatsRequest) (*BookingStatsResponse, error) {
	if _, err := h.auth.RequireAdmin(ctx, input.Cookie); err != nil {
		return nil, err
	}

	res := &BookingStatsResponse{}
	var err error
	if res.Body.Total, err = h.store.Count(ctx); err != nil {
		return nil, huma.Error500InternalServerError("Failed to count bookings: " + err.Error())
	}
	counts := map[models.BookingStatus]*int64{
		models.StatusPending:  &res.Body.Pending,
		models.StatusApproved: &res.Body.Approved,
		models.StatusRejected: &res.Body.Rejected,
	}
	for status, dst := range counts {
		if *dst, err = h.store.CountByStatus(ctx, status); err != nil {
			return nil, huma.Error500InternalServerError("Failed to count bookings: " + err.Error())
		}
	}
	return res, nil
}

type SetStatusRequest struct {
	auth.AuthInput
	ID   uint `path:"id"`
	Body struct {
		Status   string `json:"status" doc:"pending, approved or rejected" required:"true"`
		Revision *uint  `json:"revision,omitempty" doc:"Reject the update if the booking has moved past this revision"`
	}
}

type BookingResponse struct {
	Body models.Booking
}

func (h *AdminHandler) HandleSetStatus(ctx context.Context, input *SetStatusRequest) (*BookingResponse, error) {
	admin, err := h.auth.RequireAdmin(ctx, input.Cookie)
	if err != nil {
		return nil, err
	}

	booking, err := h.controller.SetStatus(ctx, input.ID, models.BookingStatus(input.Body.Status), admin.ID, input.Body.Revision)
	if err != nil {
		return nil, adjudicationError(err)
	}
	return &BookingResponse{Body: *booking}, nil
}

type SetPriceRequest struct {
	auth.AuthInput
	ID   uint `path:"id"`
	Body struct {
		Amount   float64 `json:"amount" minimum:"0" doc:"Override for the package price"`
		Revision *uint   `json:"revision,omitempty"`
	}
}

func (h *AdminHandler) HandleSetPrice(ctx context.Context, input *SetPriceRequest) (*BookingResponse, error) {
	admin, err := h.auth.RequireAdmin(ctx, input.Cookie)
	if err != nil {
		return nil, err
	}

	amount := decimal.NewFromFloat(input.Body.Amount)
	booking, err := h.controller.SetPrice(ctx, input.ID, amount, admin.ID, input.Body.Revision)
	if err != nil {
		return nil, adjudicationError(err)
	}
	return &BookingResponse{Body: *booking}, nil
}

type SetPaymentRequest struct {
	auth.AuthInput
	ID   uint `path:"id"`
	Body struct {
		Paid     bool  `json:"paid"`
		Revision *uint `json:"revision,omitempty"`
	}
}

func (h *AdminHandler) HandleSetPayment(ctx context.Context, input *SetPaymentRequest) (*BookingResponse, error) {
	admin, err := h.auth.RequireAdmin(ctx, input.Cookie)
	if err != nil {
		return nil, err
	}

	booking, err := h.controller.SetPaymentStatus(ctx, input.ID, input.Body.Paid, admin.ID, input.Body.Revision)
	if err != nil {
		return nil, adjudicationError(err)
	}
	return &BookingResponse{Body: *booking}, nil
}

type SetNotesRequest struct {
	auth.AuthInput
	ID   uint `path:"id"`
	Body struct {
		Notes    string `json:"notes"`
		Revision *uint  `json:"revision,omitempty"`
	}
}

func (h *AdminHandler) HandleSetNotes(ctx context.Context, input *SetNotesRequest) (*BookingResponse, error) {
	admin, err := h.auth.RequireAdmin(ctx, input.Cookie)
	if err != nil {
		return nil, err
	}

	booking, err := h.controller.SetNotes(ctx, input.ID, input.Body.Notes, admin.ID, input.Body.Revision)
	if err != nil {
		return nil, adjudicationError(err)
	}
	return &BookingResponse{Body: *booking}, nil
}

// HandleExportCSV streams the full booking list as CSV. Registered as a
// plain chi route since huma bodies are JSON.
func (h *AdminHandler) HandleExportCSV(w http.ResponseWriter, r *http.Request) {
	if _, err := h.auth.RequireAdmin(r.Context(), r.Header.Get("Cookie")); err != nil {
		status := http.StatusUnauthorized
		var se huma.StatusError
		if errors.As(err, &se) {
			status = se.GetStatus()
		}
		http.Error(w, err.Error(), status)
		return
	}

	bookings, err := h.store.All(r.Context())
	if err != nil {
		http.Error(w, "Failed to load bookings", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/csv")
	w.Header().Set("Content-Disposition", `attachment; filename="bookings.csv"`)

	cw := csv.NewWriter(w)
	cw.Write([]string{
		"reference", "name", "email", "package", "amount",
		"status", "paid", "created_at",
	})
	for i := range bookings {
		b := &bookings[i]
		cw.Write([]string{
			b.BookingReference,
			b.AttendeeName,
			b.AttendeeEmail,
			string(b.PackageType),
			b.EffectivePrice().String(),
			string(b.Status),
			strconv.FormatBool(b.IsPaid),
			b.CreatedAt.Format("2006-01-02"),
		})
	}
	cw.Flush()
	if err := cw.Error(); err != nil {
		h.log.WithError(err).Error("csv export failed")
	}
}
