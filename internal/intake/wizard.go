package intake

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"sync"

	"github.com/amrokhaled/future-diplomates-api/internal/config"
	"github.com/amrokhaled/future-diplomates-api/internal/models"
	"github.com/amrokhaled/future-diplomates-api/internal/pricing"
	"github.com/amrokhaled/future-diplomates-api/internal/store"
	"github.com/google/uuid"
)

var (
	ErrSessionNotFound = errors.New("wizard session not found")
	ErrAlreadyFirst    = errors.New("already at the first step")
	ErrNotLastStep     = errors.New("submission is only allowed from the last step")
	ErrSubmitted       = errors.New("wizard already submitted")
)

// ValidationError carries the single blocking message for the attempted
// transition. The form stays where it is.
type ValidationError struct {
	Message string
}

func (e *ValidationError) Error() string {
	return e.Message
}

// Session is a point-in-time snapshot of one in-progress registration.
// The wizard hands out copies only; a returned Session never shares memory
// with the live state, so callers may read it without coordination.
type Session struct {
	Token     string
	UserID    *uint
	Step      int
	Form      FormState
	LastError string
	Submitted bool
}

// session is the live, mutable record behind a token. Its mutex serializes
// all access to data, including the insert during Submit.
type session struct {
	mu   sync.Mutex
	data Session
}

// Wizard owns the intake sessions and drives the step machine:
// Personal -> Contact -> Details -> submitted. Sessions live in memory only;
// the only externally visible side effect is the single store insert on a
// successful Submit.
type Wizard struct {
	store *store.BookingStore
	cfg   *config.Config

	mu       sync.Mutex
	sessions map[string]*session
}

const maxReferenceAttempts = 5

func NewWizard(bookings *store.BookingStore, cfg *config.Config) *Wizard {
	return &Wizard{
		store:    bookings,
		cfg:      cfg,
		sessions: make(map[string]*session),
	}
}

// lookup resolves a token to its live session. The wizard mutex guards the
// map only; per-session state is guarded by the session's own mutex.
func (w *Wizard) lookup(token string) (*session, error) {
	w.mu.Lock()
	defer w.mu.Unlock()
	s, ok := w.sessions[token]
	if !ok {
		return nil, ErrSessionNotFound
	}
	return s, nil
}

// Start opens a new session. For authenticated users the email is
// pre-filled; anonymous starts are allowed.
func (w *Wizard) Start(userID *uint, email string) Session {
	s := &session{data: Session{
		Token:  uuid.NewString(),
		UserID: userID,
		Step:   StepPersonal,
	}}
	s.data.Form.Email = email

	w.mu.Lock()
	w.sessions[s.data.Token] = s
	w.mu.Unlock()
	return s.data
}

func (w *Wizard) Get(token string) (Session, error) {
	s, err := w.lookup(token)
	if err != nil {
		return Session{}, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.data, nil
}

// Advance merges the current step's fields and validates them. On failure
// the session stays in place with the message surfaced; on success it moves
// one step forward.
func (w *Wizard) Advance(token string, input FormState) (Session, error) {
	s, err := w.lookup(token)
	if err != nil {
		return Session{}, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.data.Submitted {
		return s.data, ErrSubmitted
	}

	applyStep(&s.data.Form, input, s.data.Step)
	if msg := ValidateStep(s.data.Form, s.data.Step); msg != "" {
		s.data.LastError = msg
		return s.data, &ValidationError{Message: msg}
	}

	s.data.LastError = ""
	if s.data.Step < totalSteps {
		s.data.Step++
	}
	return s.data, nil
}

// Retreat moves one step back, clearing the surfaced error. Accumulated
// data is kept.
func (w *Wizard) Retreat(token string) (Session, error) {
	s, err := w.lookup(token)
	if err != nil {
		return Session{}, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.data.Submitted {
		return s.data, ErrSubmitted
	}
	if s.data.Step <= StepPersonal {
		return s.data, ErrAlreadyFirst
	}

	s.data.LastError = ""
	s.data.Step--
	return s.data, nil
}

// Submit re-validates the whole form, builds the booking record, assigns a
// fresh reference and issues exactly one insert. A store failure is
// retryable: the session is left untouched so the applicant does not
// re-enter anything. Success is terminal and the session is discarded.
func (w *Wizard) Submit(ctx context.Context, token string, input FormState) (*models.Booking, error) {
	s, err := w.lookup(token)
	if err != nil {
		return nil, err
	}

	// The session lock is held across the insert: a concurrent retry of the
	// same token serializes behind it, while every other session stays
	// responsive because the wizard mutex is not involved.
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.data.Submitted {
		return nil, ErrSubmitted
	}
	if s.data.Step != StepDetails {
		return nil, ErrNotLastStep
	}

	applyStep(&s.data.Form, input, StepDetails)
	if msg := ValidateAll(s.data.Form); msg != "" {
		s.data.LastError = msg
		return nil, &ValidationError{Message: msg}
	}
	s.data.LastError = ""

	booking := w.buildBooking(&s.data)

	var insertErr error
	for attempt := 0; attempt < maxReferenceAttempts; attempt++ {
		ref, err := NewReference(w.cfg.BookingRefPrefix)
		if err != nil {
			return nil, err
		}
		booking.BookingReference = ref

		insertErr = w.store.Insert(ctx, booking)
		if insertErr == nil {
			break
		}
		if !errors.Is(insertErr, store.ErrDuplicateReference) {
			return nil, fmt.Errorf("save booking: %w", insertErr)
		}
	}
	if insertErr != nil {
		return nil, fmt.Errorf("save booking: %w", insertErr)
	}

	s.data.Submitted = true
	w.mu.Lock()
	delete(w.sessions, token)
	w.mu.Unlock()
	return booking, nil
}

// buildBooking normalizes the accumulated form into the persisted record
// shape: names concatenated, DOB assembled into an ISO date, a single
// address line, the package price captured, and the yes/no answer coerced.
func (w *Wizard) buildBooking(s *Session) *models.Booking {
	f := s.Form
	pkg := pricing.Package(f.Package)
	price, _ := pricing.Price(pkg)

	return &models.Booking{
		UserID:    s.UserID,
		Event:     w.cfg.EventName,
		CityCode:  w.cfg.EventCityCode,
		EventDate: w.cfg.EventDate,

		AttendeeName:         strings.TrimSpace(f.FirstName + " " + f.LastName),
		AttendeeEmail:        f.Email,
		AttendeePhone:        f.Phone,
		AttendeeWhatsapp:     f.Whatsapp,
		AttendeeNationality:  f.Nationality,
		AttendeePassport:     f.Passport,
		AttendeeDOB:          isoDate(f.DOBYear, f.DOBMonth, f.DOBDay),
		AttendeeSex:          f.Sex,
		AttendeeOrganization: f.Organization,
		AttendeeAddress:      fmt.Sprintf("%s, %s, %s", f.AddressStreet, f.City, f.Country),
		TshirtSize:           f.TshirtSize,
		ReferralSource:       f.ReferralSource,
		ReferralOther:        f.ReferralOther,
		AmbassadorName:       f.AmbassadorName,
		ReasonForAttending:   f.ReasonForAttending,
		HasAttendedBefore:    f.HasAttendedBefore == "Yes",
		PackageType:          pkg,
		Accommodation:        f.Accommodation,
		Amount:               price,
		Status:               models.StatusPending,
	}
}

func isoDate(year, month, day string) string {
	m, _ := strconv.Atoi(month)
	d, _ := strconv.Atoi(day)
	return fmt.Sprintf("%s-%02d-%02d", year, m, d)
}
