package store

import (
	"context"
	"errors"
	"strings"

	"github.com/amrokhaled/future-diplomates-api/internal/models"
	"gorm.io/gorm"
)

var (
	ErrNotFound           = errors.New("booking not found")
	ErrDuplicateReference = errors.New("booking reference already in use")
)

// BookingStore is the single persisted collection of bookings, shared by
// the intake wizard and the adjudication controller.
type BookingStore struct {
	db *gorm.DB
}

func New(db *gorm.DB) *BookingStore {
	return &BookingStore{db: db}
}

// DB exposes the underlying handle for callers that need a transaction.
func (s *BookingStore) DB() *gorm.DB {
	return s.db
}

// Insert creates exactly one booking row. A unique-index violation on the
// reference column is reported as ErrDuplicateReference so the caller can
// regenerate and retry.
func (s *BookingStore) Insert(ctx context.Context, b *models.Booking) error {
	err := s.db.WithContext(ctx).Create(b).Error
	if err == nil {
		return nil
	}
	if errors.Is(err, gorm.ErrDuplicatedKey) ||
		strings.Contains(err.Error(), "bookings.booking_reference") {
		return ErrDuplicateReference
	}
	return err
}

func (s *BookingStore) ByID(ctx context.Context, id uint) (*models.Booking, error) {
	var b models.Booking
	if err := s.db.WithContext(ctx).First(&b, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &b, nil
}

// UpdateFields applies a single field-scoped update to one row. No other
// columns are touched beyond what the caller names.
func (s *BookingStore) UpdateFields(ctx context.Context, id uint, fields map[string]interface{}) error {
	res := s.db.WithContext(ctx).Model(&models.Booking{}).Where("id = ?", id).Updates(fields)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

// All returns every booking, newest first.
func (s *BookingStore) All(ctx context.Context) ([]models.Booking, error) {
	var bookings []models.Booking
	err := s.db.WithContext(ctx).Order("created_at desc").Find(&bookings).Error
	return bookings, err
}

func (s *BookingStore) ByUser(ctx context.Context, userID uint) ([]models.Booking, error) {
	var bookings []models.Booking
	err := s.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at desc").
		Find(&bookings).Error
	return bookings, err
}

// Search filters by a case-insensitive substring over attendee name, email
// and reference, and optionally by status. An empty query and empty status
// match everything.
func (s *BookingStore) Search(ctx context.Context, query string, status models.BookingStatus) ([]models.Booking, error) {
	q := s.db.WithContext(ctx).Model(&models.Booking{}).Order("created_at desc")
	if query != "" {
		like := "%" + strings.ToLower(query) + "%"
		q = q.Where(
			"lower(attendee_name) LIKE ? OR lower(attendee_email) LIKE ? OR lower(booking_reference) LIKE ?",
			like, like, like,
		)
	}
	if status != "" {
		q = q.Where("status = ?", status)
	}
	var bookings []models.Booking
	err := q.Find(&bookings).Error
	return bookings, err
}

func (s *BookingStore) CountByStatus(ctx context.Context, status models.BookingStatus) (int64, error) {
	var count int64
	err := s.db.WithContext(ctx).Model(&models.Booking{}).
		Where("status = ?", status).
		Count(&count).Error
	return count, err
}

func (s *BookingStore) Count(ctx context.Context) (int64, error) {
	var count int64
	err := s.db.WithContext(ctx).Model(&models.Booking{}).Count(&count).Error
	return count, err
}
