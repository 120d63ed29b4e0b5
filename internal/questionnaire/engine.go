// Package questionnaire implements the two-phase screening wizard:
// demographic intake followed by the fixed-choice questions, ending in a
// single submission to the scoring collaborator.
package questionnaire

import (
	"errors"
	"fmt"
	"slices"

	"github.com/google/uuid"

	"github.com/abhisek/epds/internal/risk"
)

// Phase is the coarse state of the wizard.
type Phase int

const (
	PhaseDemographics Phase = iota
	PhaseQuestioning
	PhaseSubmitting
	PhaseComplete
	PhaseFailed
)

func (p Phase) String() string {
	switch p {
	case PhaseDemographics:
		return "demographics"
	case PhaseQuestioning:
		return "questioning"
	case PhaseSubmitting:
		return "submitting"
	case PhaseComplete:
		return "complete"
	case PhaseFailed:
		return "failed"
	default:
		return fmt.Sprintf("phase(%d)", int(p))
	}
}

// State is the engine's finite-state value. Position is only meaningful
// while questioning.
type State struct {
	Phase    Phase
	Position int
}

// Outcome is the result of one submission attempt, fed back through Resolve.
type Outcome struct {
	Attempt    int
	Assessment *risk.Assessment
	Err        error
}

// EngineOption configures an Engine.
type EngineOption func(*Engine)

// WithSubjectID sets the subject reference attached to submissions.
func WithSubjectID(id string) EngineOption {
	return func(e *Engine) {
		if id != "" {
			e.subjectID = id
		}
	}
}

// WithIDFunc overrides the generator for session and submission ids.
func WithIDFunc(fn func() string) EngineOption {
	return func(e *Engine) {
		if fn != nil {
			e.newID = fn
		}
	}
}

// Engine owns one questionnaire instance. It is not safe for concurrent
// use; the UI drives it from a single event loop.
type Engine struct {
	inst Instrument

	state   State
	demo    Demographics
	answers Answers

	staged    int
	hasStaged bool

	subjectID string
	sessionID string
	newID     func() string

	pending *Submission
	attempt int
	result  *risk.Assessment
	lastErr error
}

// New creates an engine positioned at demographic intake.
func New(inst Instrument, opts ...EngineOption) (*Engine, error) {
	if err := inst.Validate(); err != nil {
		return nil, fmt.Errorf("invalid instrument: %w", err)
	}
	e := &Engine{
		inst:    inst,
		answers: NewAnswers(),
		newID:   func() string { return uuid.NewString() },
	}
	for _, opt := range opts {
		opt(e)
	}
	if e.subjectID == "" {
		e.subjectID = e.newID()
	}
	e.sessionID = e.newID()
	return e, nil
}

// Instrument returns the questions this engine walks through.
func (e *Engine) Instrument() Instrument { return e.inst }

// State returns the current finite-state value.
func (e *Engine) State() State { return e.state }

// SessionID identifies the current questionnaire instance.
func (e *Engine) SessionID() string { return e.sessionID }

// SubjectID is the subject reference sent with submissions.
func (e *Engine) SubjectID() string { return e.subjectID }

// Attempt is the number of the most recent submission attempt.
func (e *Engine) Attempt() int { return e.attempt }

// Result returns the classification once the engine is complete.
func (e *Engine) Result() *risk.Assessment { return e.result }

// LastError returns the failure of the last submission attempt.
func (e *Engine) LastError() error { return e.lastErr }

// Pending returns the outstanding or last failed submission.
func (e *Engine) Pending() (*Submission, bool) {
	if e.pending == nil {
		return nil, false
	}
	return e.pending, true
}

// Answers returns a copy of the committed answers.
func (e *Engine) Answers() Answers { return e.answers.Clone() }

// Demographics returns a copy of the intake fields.
func (e *Engine) Demographics() Demographics {
	d := e.demo
	if d.PartnerSupport != nil {
		v := *d.PartnerSupport
		d.PartnerSupport = &v
	}
	if d.FamilySupport != nil {
		v := *d.FamilySupport
		d.FamilySupport = &v
	}
	if d.RecentBirth != nil {
		v := *d.RecentBirth
		d.RecentBirth = &v
	}
	return d
}

// Question returns the current question while questioning.
func (e *Engine) Question() (Question, bool) {
	if e.state.Phase != PhaseQuestioning {
		return Question{}, false
	}
	return e.inst.At(e.state.Position)
}

// Progress reports how many questions have committed answers.
func (e *Engine) Progress() (answered, total int) {
	return e.answers.Len(), e.inst.Len()
}

// Score sums the committed answers. It fails until every question is answered.
func (e *Engine) Score() (int, error) {
	if !e.answers.Complete(e.inst.Len()) {
		return 0, ErrIncomplete
	}
	return e.answers.Total(), nil
}

// SelfHarmValue returns the committed answer of the safety item.
func (e *Engine) SelfHarmValue() (int, bool) {
	pos, ok := e.inst.SafetyPosition()
	if !ok {
		return 0, false
	}
	return e.answers.Get(pos)
}

func (e *Engine) requireDemographics(op string) error {
	if e.state.Phase != PhaseDemographics {
		return &PhaseError{Op: op, Phase: e.state.Phase}
	}
	return nil
}

// SetAge records the age. Zero clears it. Values above MaxAge or below
// zero are rejected and leave the stored age untouched.
func (e *Engine) SetAge(age int) error {
	if err := e.requireDemographics("set age"); err != nil {
		return err
	}
	if age < 0 || age > MaxAge {
		return &ValidationError{Field: FieldAge, Reason: ageReason(age)}
	}
	e.demo.Age = age
	return nil
}

// SetCountry records a country from Countries.
func (e *Engine) SetCountry(country string) error {
	if err := e.requireDemographics("set country"); err != nil {
		return err
	}
	if !slices.Contains(Countries, country) {
		return &ValidationError{Field: FieldCountry, Reason: "unknown country " + country}
	}
	e.demo.Country = country
	return nil
}

// SetDeliveryType records the delivery type.
func (e *Engine) SetDeliveryType(t DeliveryType) error {
	if err := e.requireDemographics("set delivery type"); err != nil {
		return err
	}
	if !slices.Contains(DeliveryTypes, t) {
		return &ValidationError{Field: FieldDeliveryType, Reason: "unknown delivery type " + string(t)}
	}
	e.demo.DeliveryType = t
	return nil
}

// SetEducationLevel records a level from EducationLevels.
func (e *Engine) SetEducationLevel(level string) error {
	if err := e.requireDemographics("set education level"); err != nil {
		return err
	}
	if !slices.Contains(EducationLevels, level) {
		return &ValidationError{Field: FieldEducation, Reason: "unknown education level " + level}
	}
	e.demo.EducationLevel = level
	return nil
}

// SetIncomeLevel records the income bracket.
func (e *Engine) SetIncomeLevel(level IncomeLevel) error {
	if err := e.requireDemographics("set income level"); err != nil {
		return err
	}
	if !slices.Contains(IncomeLevels, level) {
		return &ValidationError{Field: FieldIncome, Reason: "unknown income level " + string(level)}
	}
	e.demo.IncomeLevel = level
	return nil
}

// SetPartnerSupport records partner support on a 0-10 scale.
func (e *Engine) SetPartnerSupport(v int) error {
	if err := e.requireDemographics("set partner support"); err != nil {
		return err
	}
	if !supportInRange(v) {
		return &ValidationError{Field: FieldPartnerSupport, Reason: supportReason}
	}
	e.demo.PartnerSupport = &v
	return nil
}

// SetFamilySupport records family support on a 0-10 scale.
func (e *Engine) SetFamilySupport(v int) error {
	if err := e.requireDemographics("set family support"); err != nil {
		return err
	}
	if !supportInRange(v) {
		return &ValidationError{Field: FieldFamilySupport, Reason: supportReason}
	}
	e.demo.FamilySupport = &v
	return nil
}

// SetRecentBirth records whether the subject gave birth recently.
func (e *Engine) SetRecentBirth(recent bool) error {
	if err := e.requireDemographics("set recent birth"); err != nil {
		return err
	}
	e.demo.RecentBirth = &recent
	return nil
}

// ValidateDemographics returns the first missing or invalid intake field.
func (e *Engine) ValidateDemographics() error {
	return e.demo.Validate()
}

// Begin moves from intake to the first question. A rejected transition
// leaves the engine where it was.
func (e *Engine) Begin() error {
	if err := e.requireDemographics("begin"); err != nil {
		return err
	}
	if err := e.demo.Validate(); err != nil {
		return err
	}
	e.moveTo(1)
	return nil
}

// Select stages a choice for the current question without committing it.
func (e *Engine) Select(value int) error {
	if e.state.Phase == PhaseSubmitting {
		return ErrSubmissionInFlight
	}
	q, ok := e.Question()
	if !ok {
		return &PhaseError{Op: "select", Phase: e.state.Phase}
	}
	if !q.HasValue(value) {
		return &ValidationError{Field: FieldAnswer, Reason: fmt.Sprintf("%d is not an option for question %d", value, q.Position)}
	}
	e.staged = value
	e.hasStaged = true
	return nil
}

// Selected returns the staged choice for the current question.
func (e *Engine) Selected() (int, bool) {
	if e.state.Phase != PhaseQuestioning {
		return 0, false
	}
	return e.staged, e.hasStaged
}

// Next commits the staged choice and advances. On the last question it
// packages the submission and enters the submitting phase; the caller
// sends the returned submission exactly once and reports back via Resolve.
func (e *Engine) Next() (*Submission, error) {
	if e.state.Phase == PhaseSubmitting {
		return nil, ErrSubmissionInFlight
	}
	if e.state.Phase != PhaseQuestioning {
		return nil, &PhaseError{Op: "next", Phase: e.state.Phase}
	}
	if !e.hasStaged {
		return nil, &ValidationError{Field: FieldAnswer, Reason: "please select an answer"}
	}

	e.answers.Set(e.state.Position, e.staged)

	if e.state.Position < e.inst.Len() {
		e.moveTo(e.state.Position + 1)
		return nil, nil
	}

	e.pending = e.packageSubmission()
	return e.submit(), nil
}

// Back returns to the previous question, or to intake from the first one.
// Committed answers are kept. From the failed phase it reopens the last
// question for editing.
func (e *Engine) Back() error {
	switch e.state.Phase {
	case PhaseSubmitting:
		return ErrSubmissionInFlight
	case PhaseFailed:
		e.lastErr = nil
		e.moveTo(e.inst.Len())
		return nil
	case PhaseQuestioning:
		if e.state.Position == 1 {
			e.state = State{Phase: PhaseDemographics}
			e.hasStaged = false
			return nil
		}
		e.moveTo(e.state.Position - 1)
		return nil
	default:
		return &PhaseError{Op: "back", Phase: e.state.Phase}
	}
}

// Retry resubmits the failed submission unchanged.
func (e *Engine) Retry() (*Submission, error) {
	if e.state.Phase == PhaseSubmitting {
		return nil, ErrSubmissionInFlight
	}
	if e.state.Phase != PhaseFailed || e.pending == nil {
		return nil, &PhaseError{Op: "retry", Phase: e.state.Phase}
	}
	return e.submit(), nil
}

// Resolve consumes the outcome of the in-flight attempt. Outcomes from an
// earlier attempt, or from before a reset, return ErrStaleOutcome and
// change nothing.
func (e *Engine) Resolve(o Outcome) error {
	if o.Attempt != e.attempt {
		return ErrStaleOutcome
	}
	if e.state.Phase != PhaseSubmitting {
		return &PhaseError{Op: "resolve", Phase: e.state.Phase}
	}

	if o.Err != nil {
		e.fail(o.Err)
		return nil
	}
	if o.Assessment == nil {
		e.fail(errors.New("scoring returned no assessment"))
		return nil
	}
	if err := o.Assessment.Validate(); err != nil {
		e.fail(err)
		return nil
	}

	result := *o.Assessment
	selfHarm, _ := e.SelfHarmValue()
	result.ApplySafetyOverride(selfHarm)
	e.result = &result
	e.lastErr = nil
	e.state = State{Phase: PhaseComplete}
	return nil
}

// Reset discards the instance and starts over at intake. Any in-flight
// attempt is abandoned; its outcome will be stale.
func (e *Engine) Reset() {
	e.state = State{Phase: PhaseDemographics}
	e.demo = Demographics{}
	e.answers = NewAnswers()
	e.staged = 0
	e.hasStaged = false
	e.pending = nil
	e.result = nil
	e.lastErr = nil
	e.attempt++
	e.sessionID = e.newID()
}

func (e *Engine) moveTo(position int) {
	e.state = State{Phase: PhaseQuestioning, Position: position}
	e.staged, e.hasStaged = e.answers.Get(position)
}

func (e *Engine) fail(err error) {
	e.lastErr = err
	e.state = State{Phase: PhaseFailed}
}

func (e *Engine) packageSubmission() *Submission {
	return &Submission{
		ID:        e.newID(),
		SessionID: e.sessionID,
		SubjectID: e.subjectID,
		Answers:   e.answers.Ordered(),
	}
}

func (e *Engine) submit() *Submission {
	e.attempt++
	e.pending.Attempt = e.attempt
	e.lastErr = nil
	e.state = State{Phase: PhaseSubmitting}
	s := *e.pending
	s.Answers = slices.Clone(e.pending.Answers)
	return &s
}
