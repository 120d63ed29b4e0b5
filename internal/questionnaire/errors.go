package questionnaire

import (
	"errors"
	"fmt"
)

// Field names reported by ValidationError.
const (
	FieldAge            = "age"
	FieldCountry        = "country"
	FieldDeliveryType   = "delivery_type"
	FieldEducation      = "education_level"
	FieldIncome         = "income_level"
	FieldPartnerSupport = "partner_support"
	FieldFamilySupport  = "family_support"
	FieldRecentBirth    = "recent_birth"
	FieldAnswer         = "answer"
)

// ValidationError is a local, field-level input problem. It is recovered
// in place and never reaches the scoring collaborator.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Reason)
}

// PhaseError is returned when an operation is not valid in the current phase.
type PhaseError struct {
	Op    string
	Phase Phase
}

func (e *PhaseError) Error() string {
	return fmt.Sprintf("%s not allowed in %s phase", e.Op, e.Phase)
}

var (
	// ErrSubmissionInFlight is returned for edits and resubmits while a
	// submission is outstanding.
	ErrSubmissionInFlight = errors.New("submission already in flight")

	// ErrStaleOutcome is returned when an outcome belongs to an attempt
	// that is no longer current.
	ErrStaleOutcome = errors.New("outcome does not match the current attempt")

	// ErrIncomplete is returned when a score is requested before every
	// question has been answered.
	ErrIncomplete = errors.New("questionnaire is incomplete")
)
