package intake

import (
	"strconv"

	"github.com/amrokhaled/future-diplomates-api/internal/pricing"
)

var (
	sexOptions = []string{"Male", "Female", "Other"}

	tshirtSizes = []string{"Small", "Medium", "Large", "Extra Large"}

	referralSources = []string{
		"Facebook", "Instagram", "Google", "Our Website",
		"Ambassador", "Whatsapp/SMS", "Email", "Other",
	}

	attendedOptions = []string{"Yes", "No"}
)

func oneOf(value string, options []string) bool {
	for _, o := range options {
		if value == o {
			return true
		}
	}
	return false
}

func inRange(value string, min, max int) bool {
	n, err := strconv.Atoi(value)
	return err == nil && n >= min && n <= max
}

// validDOB requires all three parts to be numeric and in range, so the
// assembled ISO date downstream is always well-formed.
func validDOB(day, month, year string) bool {
	return inRange(day, 1, 31) && inRange(month, 1, 12) && inRange(year, 1900, 2100)
}

// ValidateStep checks one step of the form and returns the first unmet
// requirement as a user-facing message, or "" when the step is complete.
// It is pure: no store access, no side effects.
func ValidateStep(f FormState, step int) string {
	switch step {
	case StepPersonal:
		if f.FirstName == "" {
			return "First Name is required"
		}
		if !oneOf(f.Sex, sexOptions) {
			return "Sex is required"
		}
		if !validDOB(f.DOBDay, f.DOBMonth, f.DOBYear) {
			return "Date of Birth is required"
		}
		if f.Email == "" {
			return "Email Address is required"
		}
	case StepContact:
		if f.Phone == "" {
			return "Phone number is required"
		}
		if f.AddressStreet == "" {
			return "Street address is required"
		}
		if f.Nationality == "" {
			return "Nationality is required"
		}
		if f.Organization == "" {
			return "Organization name is required"
		}
	case StepDetails:
		if !oneOf(f.TshirtSize, tshirtSizes) {
			return "T-Shirt Size is required"
		}
		if !oneOf(f.ReferralSource, referralSources) {
			return "Referral source is required"
		}
		if f.ReferralSource == "Ambassador" && f.AmbassadorName == "" {
			return "Ambassador name is required"
		}
		if !oneOf(f.HasAttendedBefore, attendedOptions) {
			return "Previous experience answer is required"
		}
		if f.ReasonForAttending == "" {
			return "Reason for attending is required"
		}
		if !pricing.Valid(pricing.Package(f.Package)) {
			return "Please select a package"
		}
	}
	return ""
}

// ValidateAll re-runs every step in order. Used immediately before
// submission so a form that reached the last step through a non-linear
// path cannot slip an incomplete earlier step past the gate.
func ValidateAll(f FormState) string {
	for step := StepPersonal; step <= totalSteps; step++ {
		if msg := ValidateStep(f, step); msg != "" {
			return msg
		}
	}
	return ""
}
