package models

import (
	"gorm.io/gorm"
)

// BookingAudit records one adjudication mutation. A row is appended in the
// same transaction as the field update.
type BookingAudit struct {
	gorm.Model
	BookingID uint `gorm:"index"`
	ActorID   uint
	Field     string
	OldValue  string
	NewValue  string
}
