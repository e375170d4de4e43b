package intake

// Wizard steps, in order. No step is skippable.
const (
	StepPersonal = 1
	StepContact  = 2
	StepDetails  = 3

	totalSteps = 3
)

func StepName(step int) string {
	switch step {
	case StepPersonal:
		return "Personal"
	case StepContact:
		return "Contact"
	case StepDetails:
		return "Details"
	}
	return ""
}

// FormState is the accumulated wizard input. Field grouping mirrors the
// three steps; only the current step's fields are merged on each advance.
type FormState struct {
	// Personal
	FirstName string `json:"first_name,omitempty"`
	LastName  string `json:"last_name,omitempty"`
	Email     string `json:"email,omitempty"`
	Passport  string `json:"passport,omitempty"`
	Sex       string `json:"sex,omitempty"`
	DOBDay    string `json:"dob_day,omitempty"`
	DOBMonth  string `json:"dob_month,omitempty"`
	DOBYear   string `json:"dob_year,omitempty"`

	// Contact
	Phone         string `json:"phone,omitempty"`
	Whatsapp      string `json:"whatsapp,omitempty"`
	AddressStreet string `json:"address_street,omitempty"`
	AddressLine2  string `json:"address_line2,omitempty"`
	City          string `json:"city,omitempty"`
	State         string `json:"state,omitempty"`
	Zip           string `json:"zip,omitempty"`
	Country       string `json:"country,omitempty"`
	Nationality   string `json:"nationality,omitempty"`
	Organization  string `json:"organization,omitempty"`

	// Details
	TshirtSize         string `json:"tshirt_size,omitempty"`
	ReferralSource     string `json:"referral_source,omitempty"`
	ReferralOther      string `json:"referral_other,omitempty"`
	AmbassadorName     string `json:"ambassador_name,omitempty"`
	HasAttendedBefore  string `json:"has_attended_before,omitempty"` // "Yes" / "No"
	ReasonForAttending string `json:"reason_for_attending,omitempty"`
	Package            string `json:"package,omitempty"`
	Accommodation      bool   `json:"accommodation,omitempty"`
}

// applyStep copies one step's fields from src into dst, leaving the other
// steps' accumulated values untouched.
func applyStep(dst *FormState, src FormState, step int) {
	switch step {
	case StepPersonal:
		dst.FirstName = src.FirstName
		dst.LastName = src.LastName
		dst.Email = src.Email
		dst.Passport = src.Passport
		dst.Sex = src.Sex
		dst.DOBDay = src.DOBDay
		dst.DOBMonth = src.DOBMonth
		dst.DOBYear = src.DOBYear
	case StepContact:
		dst.Phone = src.Phone
		dst.Whatsapp = src.Whatsapp
		dst.AddressStreet = src.AddressStreet
		dst.AddressLine2 = src.AddressLine2
		dst.City = src.City
		dst.State = src.State
		dst.Zip = src.Zip
		dst.Country = src.Country
		dst.Nationality = src.Nationality
		dst.Organization = src.Organization
	case StepDetails:
		dst.TshirtSize = src.TshirtSize
		dst.ReferralSource = src.ReferralSource
		dst.ReferralOther = src.ReferralOther
		dst.AmbassadorName = src.AmbassadorName
		dst.HasAttendedBefore = src.HasAttendedBefore
		dst.ReasonForAttending = src.ReasonForAttending
		dst.Package = src.Package
		dst.Accommodation = src.Accommodation
	}
}
