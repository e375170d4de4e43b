package intake

import (
	"context"
	"regexp"
	"sync"
	"testing"
	"time"

	"github.com/amrokhaled/future-diplomates-api/internal/config"
	"github.com/amrokhaled/future-diplomates-api/internal/models"
	"github.com/amrokhaled/future-diplomates-api/internal/store"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func newTestWizard(t *testing.T) (*Wizard, *gorm.DB) {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{TranslateError: true})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&models.User{}, &models.Booking{}, &models.BookingAudit{}))

	cfg := &config.Config{
		EventName:        "Future Diplomats Cairo Edition 2026",
		EventCityCode:    "CAI",
		EventDate:        "2026-07-15",
		BookingRefPrefix: "FD-CAI26-",
	}
	return NewWizard(store.New(db), cfg), db
}

func fillSteps(t *testing.T, w *Wizard, token string) {
	t.Helper()
	f := completeForm()
	_, err := w.Advance(token, f)
	require.NoError(t, err)
	_, err = w.Advance(token, f)
	require.NoError(t, err)
}

func TestWizard_HappyPath(t *testing.T) {
	w, db := newTestWizard(t)

	s := w.Start(nil, "")
	assert.Equal(t, StepPersonal, s.Step)

	fillSteps(t, w, s.Token)
	cur, err := w.Get(s.Token)
	require.NoError(t, err)
	require.Equal(t, StepDetails, cur.Step)

	booking, err := w.Submit(context.Background(), s.Token, completeForm())
	require.NoError(t, err)

	// Exactly one insert.
	var count int64
	db.Model(&models.Booking{}).Count(&count)
	assert.EqualValues(t, 1, count)

	assert.Regexp(t, regexp.MustCompile(`^FD-CAI26-[A-Z0-9]{6}$`), booking.BookingReference)
	assert.Equal(t, "Amina Hassan", booking.AttendeeName)
	assert.Equal(t, "1999-04-12", booking.AttendeeDOB)
	assert.Equal(t, "1 Tahrir St, Cairo, Egypt", booking.AttendeeAddress)
	assert.False(t, booking.HasAttendedBefore)
	assert.Equal(t, models.StatusPending, booking.Status)
	assert.False(t, booking.IsPaid)
	assert.Nil(t, booking.UserID)
	assert.True(t, booking.Amount.Equal(decimal.NewFromInt(1150)), "premium price, got %s", booking.Amount)

	// The session is gone once submitted.
	_, err = w.Get(s.Token)
	assert.ErrorIs(t, err, ErrSessionNotFound)
}

func TestWizard_ConferencePackagePrice(t *testing.T) {
	w, _ := newTestWizard(t)
	s := w.Start(nil, "")
	fillSteps(t, w, s.Token)

	f := completeForm()
	f.Package = "conference"
	booking, err := w.Submit(context.Background(), s.Token, f)
	require.NoError(t, err)
	assert.True(t, booking.Amount.Equal(decimal.NewFromInt(750)))
}

func TestWizard_AdvanceBlockedByValidation(t *testing.T) {
	w, db := newTestWizard(t)
	s := w.Start(nil, "")

	f := completeForm()
	f.Email = ""
	snap, err := w.Advance(s.Token, f)

	var vErr *ValidationError
	require.ErrorAs(t, err, &vErr)
	assert.Equal(t, "Email Address is required", vErr.Message)
	assert.Equal(t, StepPersonal, snap.Step)
	assert.Equal(t, "Email Address is required", snap.LastError)

	// Nothing reached the store.
	var count int64
	db.Model(&models.Booking{}).Count(&count)
	assert.Zero(t, count)
}

func TestWizard_RetreatKeepsDataAndClearsError(t *testing.T) {
	w, _ := newTestWizard(t)
	s := w.Start(nil, "")

	_, err := w.Advance(s.Token, completeForm())
	require.NoError(t, err)

	// Fail once on step 2 to surface an error.
	snap, err := w.Advance(s.Token, FormState{})
	require.Error(t, err)
	assert.NotEmpty(t, snap.LastError)

	snap, err = w.Retreat(s.Token)
	require.NoError(t, err)
	assert.Equal(t, StepPersonal, snap.Step)
	assert.Empty(t, snap.LastError)
	assert.Equal(t, "Amina", snap.Form.FirstName, "back navigation must not clear data")

	_, err = w.Retreat(s.Token)
	assert.ErrorIs(t, err, ErrAlreadyFirst)
}

func TestWizard_SubmitOnlyFromLastStep(t *testing.T) {
	w, _ := newTestWizard(t)
	s := w.Start(nil, "")

	_, err := w.Submit(context.Background(), s.Token, completeForm())
	assert.ErrorIs(t, err, ErrNotLastStep)
}

func TestWizard_SubmitRevalidatesEverything(t *testing.T) {
	w, db := newTestWizard(t)
	s := w.Start(nil, "")
	fillSteps(t, w, s.Token)

	// Wipe a step-1 field in the live session, bypassing Advance.
	w.mu.Lock()
	w.sessions[s.Token].data.Form.Email = ""
	w.mu.Unlock()

	_, err := w.Submit(context.Background(), s.Token, completeForm())
	var vErr *ValidationError
	require.ErrorAs(t, err, &vErr)
	assert.Equal(t, "Email Address is required", vErr.Message)

	var count int64
	db.Model(&models.Booking{}).Count(&count)
	assert.Zero(t, count)
}

func TestWizard_StoreFailureIsRetryable(t *testing.T) {
	w, db := newTestWizard(t)
	s := w.Start(nil, "")
	fillSteps(t, w, s.Token)

	// Break persistence, then restore it.
	require.NoError(t, db.Migrator().DropTable(&models.Booking{}))

	_, err := w.Submit(context.Background(), s.Token, completeForm())
	require.Error(t, err)

	// State is preserved: still on the last step, data intact.
	cur, err := w.Get(s.Token)
	require.NoError(t, err)
	assert.Equal(t, StepDetails, cur.Step)
	assert.False(t, cur.Submitted)
	assert.Equal(t, "Amina", cur.Form.FirstName)

	require.NoError(t, db.AutoMigrate(&models.Booking{}))
	booking, err := w.Submit(context.Background(), s.Token, completeForm())
	require.NoError(t, err)
	assert.NotEmpty(t, booking.BookingReference)
}

func TestWizard_EachSubmissionGetsFreshReference(t *testing.T) {
	w, db := newTestWizard(t)

	seed := completeForm()
	s1 := w.Start(nil, "")
	fillSteps(t, w, s1.Token)
	first, err := w.Submit(context.Background(), s1.Token, seed)
	require.NoError(t, err)

	s2 := w.Start(nil, "")
	fillSteps(t, w, s2.Token)
	second, err := w.Submit(context.Background(), s2.Token, seed)
	require.NoError(t, err)

	assert.NotEqual(t, first.BookingReference, second.BookingReference)

	var count int64
	db.Model(&models.Booking{}).Count(&count)
	assert.EqualValues(t, 2, count)
}

func TestWizard_AuthenticatedStartAttachesUser(t *testing.T) {
	w, _ := newTestWizard(t)

	userID := uint(7)
	s := w.Start(&userID, "amina@example.com")
	assert.Equal(t, "amina@example.com", s.Form.Email, "email is pre-filled for signed-in users")

	fillSteps(t, w, s.Token)
	booking, err := w.Submit(context.Background(), s.Token, completeForm())
	require.NoError(t, err)
	require.NotNil(t, booking.UserID)
	assert.Equal(t, userID, *booking.UserID)
}

func TestWizard_ReturnsIndependentSnapshots(t *testing.T) {
	w, _ := newTestWizard(t)
	s := w.Start(nil, "")

	snap, err := w.Get(s.Token)
	require.NoError(t, err)
	snap.Step = StepDetails
	snap.Form.FirstName = "Mallory"

	// Writing to a returned snapshot must not reach the live session.
	again, err := w.Get(s.Token)
	require.NoError(t, err)
	assert.Equal(t, StepPersonal, again.Step)
	assert.Empty(t, again.Form.FirstName)
}

func TestWizard_ConcurrentStateReads(t *testing.T) {
	// One browser can fire overlapping next/back calls and state polls on
	// the same token; run them in parallel so the race detector sees any
	// shared memory between a returned session and the live one.
	w, _ := newTestWizard(t)
	s := w.Start(nil, "")

	var wg sync.WaitGroup
	wg.Add(2)
	go func() {
		defer wg.Done()
		for i := 0; i < 200; i++ {
			w.Advance(s.Token, completeForm())
			w.Retreat(s.Token)
		}
	}()
	go func() {
		defer wg.Done()
		for i := 0; i < 200; i++ {
			got, err := w.Get(s.Token)
			if err != nil {
				continue
			}
			_ = got.Step
			_ = got.Form.FirstName
			_ = got.LastError
		}
	}()
	wg.Wait()
}

func TestWizard_SlowInsertDoesNotBlockOtherSessions(t *testing.T) {
	w, db := newTestWizard(t)

	entered := make(chan struct{})
	release := make(chan struct{})
	var once sync.Once
	err := db.Callback().Create().Before("gorm:create").Register("stall_first_insert", func(*gorm.DB) {
		once.Do(func() {
			close(entered)
			<-release
		})
	})
	require.NoError(t, err)

	s1 := w.Start(nil, "")
	fillSteps(t, w, s1.Token)

	done := make(chan error, 1)
	go func() {
		_, err := w.Submit(context.Background(), s1.Token, completeForm())
		done <- err
	}()
	<-entered

	// With one insert in flight, another applicant's session stays usable.
	s2 := w.Start(nil, "")
	advanced := make(chan error, 1)
	go func() {
		_, err := w.Advance(s2.Token, completeForm())
		advanced <- err
	}()

	select {
	case err := <-advanced:
		require.NoError(t, err)
	case <-time.After(2 * time.Second):
		t.Fatal("advance blocked behind another session's insert")
	}

	close(release)
	require.NoError(t, <-done)
}
