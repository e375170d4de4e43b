package intake

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func completeForm() FormState {
	return FormState{
		FirstName:          "Amina",
		LastName:           "Hassan",
		Email:              "a@x.com",
		Sex:                "Female",
		DOBDay:             "12",
		DOBMonth:           "4",
		DOBYear:            "1999",
		Phone:              "+20100000000",
		AddressStreet:      "1 Tahrir St",
		City:               "Cairo",
		Country:            "Egypt",
		Nationality:        "Egyptian",
		Organization:       "Cairo University",
		TshirtSize:         "Medium",
		ReferralSource:     "Instagram",
		HasAttendedBefore:  "No",
		ReasonForAttending: "Leadership growth",
		Package:            "premium",
	}
}

func TestValidateStep_FirstFailureWins(t *testing.T) {
	tests := []struct {
		name   string
		step   int
		mutate func(f *FormState)
		want   string
	}{
		{"missing first name", StepPersonal, func(f *FormState) { f.FirstName = "" }, "First Name is required"},
		{"missing sex", StepPersonal, func(f *FormState) { f.Sex = "" }, "Sex is required"},
		{"sex outside options", StepPersonal, func(f *FormState) { f.Sex = "unknown" }, "Sex is required"},
		{"missing dob day", StepPersonal, func(f *FormState) { f.DOBDay = "" }, "Date of Birth is required"},
		{"missing dob month", StepPersonal, func(f *FormState) { f.DOBMonth = "" }, "Date of Birth is required"},
		{"missing dob year", StepPersonal, func(f *FormState) { f.DOBYear = "" }, "Date of Birth is required"},
		{"non-numeric dob month", StepPersonal, func(f *FormState) { f.DOBMonth = "April" }, "Date of Birth is required"},
		{"dob day out of range", StepPersonal, func(f *FormState) { f.DOBDay = "32" }, "Date of Birth is required"},
		{"dob month out of range", StepPersonal, func(f *FormState) { f.DOBMonth = "13" }, "Date of Birth is required"},
		{"two-digit dob year", StepPersonal, func(f *FormState) { f.DOBYear = "99" }, "Date of Birth is required"},
		{"missing email", StepPersonal, func(f *FormState) { f.Email = "" }, "Email Address is required"},

		{"missing phone", StepContact, func(f *FormState) { f.Phone = "" }, "Phone number is required"},
		{"missing street", StepContact, func(f *FormState) { f.AddressStreet = "" }, "Street address is required"},
		{"missing nationality", StepContact, func(f *FormState) { f.Nationality = "" }, "Nationality is required"},
		{"missing organization", StepContact, func(f *FormState) { f.Organization = "" }, "Organization name is required"},

		{"missing tshirt", StepDetails, func(f *FormState) { f.TshirtSize = "" }, "T-Shirt Size is required"},
		{"tshirt outside options", StepDetails, func(f *FormState) { f.TshirtSize = "XXL" }, "T-Shirt Size is required"},
		{"missing referral", StepDetails, func(f *FormState) { f.ReferralSource = "" }, "Referral source is required"},
		{"missing attendance answer", StepDetails, func(f *FormState) { f.HasAttendedBefore = "" }, "Previous experience answer is required"},
		{"missing reason", StepDetails, func(f *FormState) { f.ReasonForAttending = "" }, "Reason for attending is required"},
		{"missing package", StepDetails, func(f *FormState) { f.Package = "" }, "Please select a package"},
		{"unknown package", StepDetails, func(f *FormState) { f.Package = "vip" }, "Please select a package"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := completeForm()
			tt.mutate(&f)
			assert.Equal(t, tt.want, ValidateStep(f, tt.step))
		})
	}
}

func TestValidateStep_CompleteStepsPass(t *testing.T) {
	f := completeForm()
	for step := StepPersonal; step <= StepDetails; step++ {
		assert.Empty(t, ValidateStep(f, step), "step %d", step)
	}
}

func TestValidateStep_AmbassadorConditional(t *testing.T) {
	// Ambassador name is only required for the Ambassador referral source.
	for _, source := range referralSources {
		f := completeForm()
		f.ReferralSource = source
		f.AmbassadorName = ""

		msg := ValidateStep(f, StepDetails)
		if source == "Ambassador" {
			assert.Equal(t, "Ambassador name is required", msg)
		} else {
			assert.Empty(t, msg, "source %q should not require an ambassador name", source)
		}
	}

	f := completeForm()
	f.ReferralSource = "Ambassador"
	f.AmbassadorName = "Omar"
	assert.Empty(t, ValidateStep(f, StepDetails))
}

func TestValidateStep_OptionalFieldsStayOptional(t *testing.T) {
	f := completeForm()
	f.LastName = ""
	f.Passport = ""
	f.Whatsapp = ""
	f.City = ""
	f.Country = ""
	f.ReferralOther = ""
	assert.Empty(t, ValidateAll(f))
}

func TestValidateAll_CatchesEarlierSteps(t *testing.T) {
	// A form that skipped ahead still fails on the first incomplete step.
	f := completeForm()
	f.Email = ""
	f.Phone = ""
	assert.Equal(t, "Email Address is required", ValidateAll(f))
}
