package questionnaire

import "slices"

// Bounds for demographic fields.
const (
	MinAge     = 1
	MaxAge     = 51
	MinSupport = 0
	MaxSupport = 10
)

// DeliveryType is how the most recent birth took place.
type DeliveryType string

const (
	DeliveryVaginal  DeliveryType = "vaginal"
	DeliveryCSection DeliveryType = "c-section"
)

// DeliveryTypes lists the accepted delivery types.
var DeliveryTypes = []DeliveryType{DeliveryVaginal, DeliveryCSection}

// IncomeLevel is a coarse household income bracket.
type IncomeLevel string

const (
	IncomeLow    IncomeLevel = "low"
	IncomeMedium IncomeLevel = "medium"
	IncomeHigh   IncomeLevel = "high"
)

// IncomeLevels lists the accepted income brackets.
var IncomeLevels = []IncomeLevel{IncomeLow, IncomeMedium, IncomeHigh}

// EducationLevels is ordered from least to most formal education.
var EducationLevels = []string{
	"High School or Less",
	"Some College",
	"Bachelor's Degree",
	"Master's Degree",
	"Doctorate or Higher",
}

// Countries is the fixed country list offered by the intake form.
var Countries = []string{
	"United States", "United Kingdom", "Canada", "Australia",
	"France", "Germany", "Spain", "Italy", "Netherlands",
	"Morocco", "Algeria", "Tunisia", "Egypt", "Saudi Arabia", "UAE",
	"Other",
}

// Demographics is the intake context collected before the questions.
// Zero values and nil pointers mean "not yet provided".
type Demographics struct {
	Age            int
	Country        string
	DeliveryType   DeliveryType
	EducationLevel string
	IncomeLevel    IncomeLevel
	PartnerSupport *int
	FamilySupport  *int
	RecentBirth    *bool
}

// SupportTotal is the sum of partner and family support. It is
// informational and never feeds the score.
func (d Demographics) SupportTotal() int {
	total := 0
	if d.PartnerSupport != nil {
		total += *d.PartnerSupport
	}
	if d.FamilySupport != nil {
		total += *d.FamilySupport
	}
	return total
}

// Validate returns the first missing or invalid field.
func (d Demographics) Validate() error {
	switch {
	case d.Age == 0:
		return &ValidationError{Field: FieldAge, Reason: "age is required"}
	case d.Age < MinAge || d.Age > MaxAge:
		return &ValidationError{Field: FieldAge, Reason: ageReason(d.Age)}
	case d.Country == "":
		return &ValidationError{Field: FieldCountry, Reason: "country is required"}
	case !slices.Contains(Countries, d.Country):
		return &ValidationError{Field: FieldCountry, Reason: "unknown country " + d.Country}
	case d.DeliveryType == "":
		return &ValidationError{Field: FieldDeliveryType, Reason: "delivery type is required"}
	case !slices.Contains(DeliveryTypes, d.DeliveryType):
		return &ValidationError{Field: FieldDeliveryType, Reason: "unknown delivery type " + string(d.DeliveryType)}
	case d.EducationLevel == "":
		return &ValidationError{Field: FieldEducation, Reason: "education level is required"}
	case !slices.Contains(EducationLevels, d.EducationLevel):
		return &ValidationError{Field: FieldEducation, Reason: "unknown education level " + d.EducationLevel}
	case d.IncomeLevel == "":
		return &ValidationError{Field: FieldIncome, Reason: "income level is required"}
	case !slices.Contains(IncomeLevels, d.IncomeLevel):
		return &ValidationError{Field: FieldIncome, Reason: "unknown income level " + string(d.IncomeLevel)}
	case d.PartnerSupport == nil:
		return &ValidationError{Field: FieldPartnerSupport, Reason: "partner support is required"}
	case !supportInRange(*d.PartnerSupport):
		return &ValidationError{Field: FieldPartnerSupport, Reason: supportReason}
	case d.FamilySupport == nil:
		return &ValidationError{Field: FieldFamilySupport, Reason: "family support is required"}
	case !supportInRange(*d.FamilySupport):
		return &ValidationError{Field: FieldFamilySupport, Reason: supportReason}
	case d.RecentBirth == nil:
		return &ValidationError{Field: FieldRecentBirth, Reason: "please say whether you gave birth recently"}
	}
	return nil
}

const supportReason = "support must be between 0 and 10"

func supportInRange(v int) bool {
	return v >= MinSupport && v <= MaxSupport
}

func ageReason(age int) string {
	if age > MaxAge {
		return "Age cannot exceed 51 years"
	}
	return "age must be a positive number"
}
