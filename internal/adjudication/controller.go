package adjudication

import (
	"context"
	"errors"
	"fmt"
	"strconv"

	"github.com/amrokhaled/future-diplomates-api/internal/models"
	"github.com/amrokhaled/future-diplomates-api/internal/store"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

var (
	ErrInvalidStatus  = errors.New("invalid booking status")
	ErrNegativeAmount = errors.New("custom amount cannot be negative")
	ErrStaleRevision  = errors.New("booking was changed by another admin")
)

// Controller exposes the four admin mutations over an existing booking.
// Each operation touches exactly one admin-owned field, bumps the revision
// counter and appends an audit row in the same transaction. Applicant
// fields are never written.
//
// ifRevision is the optional stale-write guard: nil keeps the plain
// last-write-wins behavior, a value rejects the mutation with
// ErrStaleRevision when the record moved underneath the caller.
type Controller struct {
	store *store.BookingStore
}

func NewController(bookings *store.BookingStore) *Controller {
	return &Controller{store: bookings}
}

func (c *Controller) SetStatus(ctx context.Context, id uint, status models.BookingStatus, actorID uint, ifRevision *uint) (*models.Booking, error) {
	if !models.ValidStatus(status) {
		return nil, ErrInvalidStatus
	}
	return c.mutate(ctx, id, actorID, ifRevision, "status", func(b *models.Booking) (string, string, interface{}) {
		return string(b.Status), string(status), status
	})
}

// SetPrice overrides the package-implied price. The UI offers tiered
// presets but the operation accepts any non-negative amount.
func (c *Controller) SetPrice(ctx context.Context, id uint, amount decimal.Decimal, actorID uint, ifRevision *uint) (*models.Booking, error) {
	if amount.IsNegative() {
		return nil, ErrNegativeAmount
	}
	return c.mutate(ctx, id, actorID, ifRevision, "custom_amount", func(b *models.Booking) (string, string, interface{}) {
		old := ""
		if b.CustomAmount != nil {
			old = b.CustomAmount.String()
		}
		return old, amount.String(), amount
	})
}

// SetPaymentStatus flips the paid flag. Payment and status are independent
// axes; neither implies the other.
func (c *Controller) SetPaymentStatus(ctx context.Context, id uint, paid bool, actorID uint, ifRevision *uint) (*models.Booking, error) {
	return c.mutate(ctx, id, actorID, ifRevision, "is_paid", func(b *models.Booking) (string, string, interface{}) {
		return strconv.FormatBool(b.IsPaid), strconv.FormatBool(paid), paid
	})
}

// SetNotes replaces the admin notes wholesale. Last write wins; there is no
// merge or append.
func (c *Controller) SetNotes(ctx context.Context, id uint, text string, actorID uint, ifRevision *uint) (*models.Booking, error) {
	return c.mutate(ctx, id, actorID, ifRevision, "admin_notes", func(b *models.Booking) (string, string, interface{}) {
		return b.AdminNotes, text, text
	})
}

func (c *Controller) mutate(ctx context.Context, id, actorID uint, ifRevision *uint, field string, apply func(b *models.Booking) (oldVal, newVal string, value interface{})) (*models.Booking, error) {
	var booking models.Booking

	err := c.store.DB().WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.First(&booking, id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return store.ErrNotFound
			}
			return err
		}

		if ifRevision != nil && *ifRevision != booking.Revision {
			return ErrStaleRevision
		}

		oldVal, newVal, value := apply(&booking)

		updates := map[string]interface{}{
			field:      value,
			"revision": booking.Revision + 1,
		}
		if err := tx.Model(&booking).Updates(updates).Error; err != nil {
			return fmt.Errorf("update %s: %w", field, err)
		}

		audit := models.BookingAudit{
			BookingID: booking.ID,
			ActorID:   actorID,
			Field:     field,
			OldValue:  oldVal,
			NewValue:  newVal,
		}
		if err := tx.Create(&audit).Error; err != nil {
			return fmt.Errorf("record audit: %w", err)
		}

		// Re-read so the caller sees the confirmed row, not an
		// optimistic in-memory guess.
		var fresh models.Booking
		if err := tx.First(&fresh, id).Error; err != nil {
			return err
		}
		booking = fresh
		return nil
	})
	if err != nil {
		return nil, err
	}

	return &booking, nil
}
