package handlers

import (
	"context"
	"errors"

	"github.com/amrokhaled/future-diplomates-api/internal/auth"
	"github.com/amrokhaled/future-diplomates-api/internal/intake"
	"github.com/amrokhaled/future-diplomates-api/internal/notifier"
	"github.com/danielgtaylor/huma/v2"
	"github.com/sirupsen/logrus"
)

type WizardHandler struct {
	wizard   *intake.Wizard
	auth     *auth.Service
	notifier notifier.Notifier
	log      *logrus.Logger
}

func NewWizardHandler(wizard *intake.Wizard, authService *auth.Service, n notifier.Notifier, log *logrus.Logger) *WizardHandler {
	return &WizardHandler{wizard: wizard, auth: authService, notifier: n, log: log}
}

// WizardStateBody is what the presentation layer polls: current step, the
// single surfaced error and the accumulated form.
type WizardStateBody struct {
	Token    string           `json:"token"`
	Step     int              `json:"step"`
	StepName string           `json:"step_name"`
	Error    string           `json:"error,omitempty"`
	Form     intake.FormState `json:"form"`
}

func stateBody(s intake.Session) WizardStateBody {
	return WizardStateBody{
		Token:    s.Token,
		Step:     s.Step,
		StepName: intake.StepName(s.Step),
		Error:    s.LastError,
		Form:     s.Form,
	}
}

type StartWizardRequest struct {
	auth.AuthInput
}

type WizardStateResponse struct {
	Body WizardStateBody
}

// HandleStart opens a session. Identity is optional: a valid cookie
// attaches the user and pre-fills their email, anything else (including an
// identity lookup that exceeds the configured timeout) starts a guest
// session.
func (h *WizardHandler) HandleStart(ctx context.Context, input *StartWizardRequest) (*WizardStateResponse, error) {
	var userID *uint
	var email string
	if user := h.auth.OptionalUser(ctx, input.Cookie); user != nil {
		userID = &user.ID
		email = user.Email
	}

	session := h.wizard.Start(userID, email)
	return &WizardStateResponse{Body: stateBody(session)}, nil
}

type WizardStateRequest struct {
	Token string `path:"token" doc:"Wizard session token"`
}

func (h *WizardHandler) HandleState(ctx context.Context, input *WizardStateRequest) (*WizardStateResponse, error) {
	session, err := h.wizard.Get(input.Token)
	if err != nil {
		return nil, huma.Error404NotFound("Wizard session not found")
	}
	return &WizardStateResponse{Body: stateBody(session)}, nil
}

type WizardStepRequest struct {
	Token string           `path:"token" doc:"Wizard session token"`
	Body  intake.FormState `doc:"Fields for the current step"`
}

func (h *WizardHandler) HandleNext(ctx context.Context, input *WizardStepRequest) (*WizardStateResponse, error) {
	session, err := h.wizard.Advance(input.Token, input.Body)
	if err != nil {
		var vErr *intake.ValidationError
		switch {
		case errors.As(err, &vErr):
			return nil, huma.Error422UnprocessableEntity(vErr.Message)
		case errors.Is(err, intake.ErrSessionNotFound):
			return nil, huma.Error404NotFound("Wizard session not found")
		case errors.Is(err, intake.ErrSubmitted):
			return nil, huma.Error409Conflict("This registration was already submitted")
		default:
			return nil, huma.Error500InternalServerError("Failed to advance: " + err.Error())
		}
	}
	return &WizardStateResponse{Body: stateBody(session)}, nil
}

type WizardBackRequest struct {
	Token string `path:"token" doc:"Wizard session token"`
}

func (h *WizardHandler) HandleBack(ctx context.Context, input *WizardBackRequest) (*WizardStateResponse, error) {
	session, err := h.wizard.Retreat(input.Token)
	if err != nil {
		switch {
		case errors.Is(err, intake.ErrSessionNotFound):
			return nil, huma.Error404NotFound("Wizard session not found")
		case errors.Is(err, intake.ErrAlreadyFirst):
			return nil, huma.Error400BadRequest("Already at the first step")
		case errors.Is(err, intake.ErrSubmitted):
			return nil, huma.Error409Conflict("This registration was already submitted")
		default:
			return nil, huma.Error500InternalServerError("Failed to go back: " + err.Error())
		}
	}
	return &WizardStateResponse{Body: stateBody(session)}, nil
}

type SubmitWizardRequest struct {
	Token string           `path:"token" doc:"Wizard session token"`
	Body  intake.FormState `doc:"Final step fields"`
}

type SubmitWizardResponse struct {
	Body struct {
		Message          string `json:"message"`
		BookingID        uint   `json:"booking_id"`
		BookingReference string `json:"booking_reference"`
	}
}

func (h *WizardHandler) HandleSubmit(ctx context.Context, input *SubmitWizardRequest) (*SubmitWizardResponse, error) {
	booking, err := h.wizard.Submit(ctx, input.Token, input.Body)
	if err != nil {
		var vErr *intake.ValidationError
		switch {
		case errors.As(err, &vErr):
			return nil, huma.Error422UnprocessableEntity(vErr.Message)
		case errors.Is(err, intake.ErrSessionNotFound):
			return nil, huma.Error404NotFound("Wizard session not found")
		case errors.Is(err, intake.ErrNotLastStep), errors.Is(err, intake.ErrSubmitted):
			return nil, huma.Error409Conflict(err.Error())
		default:
			// Persistence failure: the session is preserved, so a plain
			// retry does not lose any entered data.
			h.log.WithError(err).Error("booking insert failed")
			return nil, huma.Error500InternalServerError("Could not save your registration. Please try again.")
		}
	}

	if h.notifier != nil {
		if err := h.notifier.NotifyBooking(booking); err != nil {
			h.log.WithError(err).WithField("reference", booking.BookingReference).
				Warn("booking notification failed")
		}
	}

	res := &SubmitWizardResponse{}
	res.Body.Message = "Your application has been received successfully"
	res.Body.BookingID = booking.ID
	res.Body.BookingReference = booking.BookingReference
	return res, nil
}
