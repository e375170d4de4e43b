package handlers

import (
	"context"

	"github.com/amrokhaled/future-diplomates-api/internal/auth"
	"github.com/amrokhaled/future-diplomates-api/internal/models"
	"github.com/amrokhaled/future-diplomates-api/internal/store"
	"github.com/danielgtaylor/huma/v2"
)

type BookingHandler struct {
	store *store.BookingStore
	auth  *auth.Service
}

func NewBookingHandler(bookings *store.BookingStore, authService *auth.Service) *BookingHandler {
	return &BookingHandler{store: bookings, auth: authService}
}

type MyBookingsRequest struct {
	auth.AuthInput
}

type MyBookingsResponse struct {
	Body struct {
		Bookings []models.Booking `json:"bookings"`
	}
}

// HandleMine lists the authenticated applicant's own submissions, newest
// first.
func (h *BookingHandler) HandleMine(ctx context.Context, input *MyBookingsRequest) (*MyBookingsResponse, error) {
	userID, err := h.auth.Authorize(ctx, input.Cookie)
	if err != nil {
		return nil, err
	}

	bookings, err := h.store.ByUser(ctx, userID)
	if err != nil {
		return nil, huma.Error500InternalServerError("Failed to load bookings: " + err.Error())
	}

	res := &MyBookingsResponse{}
	res.Body.Bookings = bookings
	return res, nil
}
