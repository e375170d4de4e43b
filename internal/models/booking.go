package models

import (
	"github.com/amrokhaled/future-diplomates-api/internal/pricing"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// BookingStatus is the admin adjudication state. It is independent of the
// payment flag: a rejected booking may still be marked paid.
type BookingStatus string

const (
	StatusPending  BookingStatus = "pending"
	StatusApproved BookingStatus = "approved"
	StatusRejected BookingStatus = "rejected"
)

func ValidStatus(s BookingStatus) bool {
	switch s {
	case StatusPending, StatusApproved, StatusRejected:
		return true
	}
	return false
}

// Booking is one applicant's registration. The attendee fields are written
// once by the intake wizard and never touched again; the admin fields
// (Status, IsPaid, CustomAmount, AdminNotes) are mutated only through the
// adjudication controller.
type Booking struct {
	gorm.Model
	BookingReference string `json:"booking_reference" gorm:"uniqueIndex"`
	UserID           *uint  `json:"user_id"` // nil for anonymous submissions
	User             *User  `json:"-" gorm:"foreignKey:UserID"`

	Event     string `json:"event"`
	CityCode  string `json:"city_code"`
	EventDate string `json:"event_date"`

	AttendeeName         string          `json:"attendee_name"`
	AttendeeEmail        string          `json:"attendee_email"`
	AttendeePhone        string          `json:"attendee_phone"`
	AttendeeWhatsapp     string          `json:"attendee_whatsapp"`
	AttendeeNationality  string          `json:"attendee_nationality"`
	AttendeePassport     string          `json:"attendee_passport"`
	AttendeeDOB          string          `json:"attendee_dob"`
	AttendeeSex          string          `json:"attendee_sex"`
	AttendeeOrganization string          `json:"attendee_organization"`
	AttendeeAddress      string          `json:"attendee_address"`
	TshirtSize           string          `json:"tshirt_size"`
	ReferralSource       string          `json:"referral_source"`
	ReferralOther        string          `json:"referral_other"`
	AmbassadorName       string          `json:"ambassador_name"`
	ReasonForAttending   string          `json:"reason_for_attending"`
	HasAttendedBefore    bool            `json:"has_attended_before"`
	PackageType          pricing.Package `json:"package_type"`
	Accommodation        bool            `json:"accommodation"`
	Amount               decimal.Decimal `json:"amount"`

	Status       BookingStatus    `json:"status" gorm:"default:pending"`
	IsPaid       bool             `json:"is_paid"`
	CustomAmount *decimal.Decimal `json:"custom_amount"`
	AdminNotes   string           `json:"admin_notes"`

	// Revision increments on every adjudication mutation and backs the
	// optional stale-write check; see adjudication.Controller.
	Revision uint `json:"revision"`
}

// EffectivePrice is the admin override when present, else the package price
// captured at creation.
func (b *Booking) EffectivePrice() decimal.Decimal {
	if b.CustomAmount != nil {
		return *b.CustomAmount
	}
	return b.Amount
}
