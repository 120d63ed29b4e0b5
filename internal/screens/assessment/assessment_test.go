package assessment

import (
	"errors"
	"strings"
	"testing"

	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/epds/internal/questionnaire"
	"github.com/abhisek/epds/internal/risk"
	"github.com/abhisek/epds/internal/router"
	"github.com/abhisek/epds/internal/screen"
	"github.com/abhisek/epds/internal/scoring"
)

type stubScreen struct{}

func (s *stubScreen) Init() tea.Cmd                          { return nil }
func (s *stubScreen) Update(tea.Msg) (screen.Screen, tea.Cmd) { return s, nil }
func (s *stubScreen) View(int, int) string                   { return "results" }
func (s *stubScreen) Title() string                          { return "Results" }

var (
	keyTab   = tea.KeyPressMsg{Code: tea.KeyTab}
	keyEnter = tea.KeyPressMsg{Code: tea.KeyEnter}
	keyRight = tea.KeyPressMsg{Code: tea.KeyRight}
	keyLeft  = tea.KeyPressMsg{Code: tea.KeyLeft}

	keyBackspace = tea.KeyPressMsg{Code: tea.KeyBackspace}
)

func key(r rune) tea.KeyPressMsg {
	return tea.KeyPressMsg{Code: r, Text: string(r)}
}

func newTestScreen(t *testing.T, responses ...scoring.MockResponse) (*AssessmentScreen, *scoring.MockClient) {
	t.Helper()
	engine, err := questionnaire.New(questionnaire.EPDS())
	if err != nil {
		t.Fatalf("New engine: %v", err)
	}
	mock := scoring.NewMockClient(responses...)
	s := New(Deps{
		Engine:  engine,
		Scorer:  mock,
		Results: func() screen.Screen { return &stubScreen{} },
	})
	s.Init()
	return s, mock
}

func send(s *AssessmentScreen, msgs ...tea.Msg) tea.Cmd {
	var cmd tea.Cmd
	for _, m := range msgs {
		_, cmd = s.Update(m)
	}
	return cmd
}

// collect runs cmd and flattens batches into their messages.
func collect(cmd tea.Cmd) []tea.Msg {
	if cmd == nil {
		return nil
	}
	msg := cmd()
	batch, ok := msg.(tea.BatchMsg)
	if !ok {
		return []tea.Msg{msg}
	}
	var out []tea.Msg
	for _, c := range batch {
		out = append(out, collect(c)...)
	}
	return out
}

func scored(t *testing.T, cmd tea.Cmd) scoredMsg {
	t.Helper()
	for _, m := range collect(cmd) {
		if sm, ok := m.(scoredMsg); ok {
			return sm
		}
	}
	t.Fatal("command produced no scoring outcome")
	return scoredMsg{}
}

func typeText(s *AssessmentScreen, text string) {
	for _, r := range text {
		s.Update(key(r))
	}
}

// fillForm enters valid demographics, with the given age, and presses Continue.
func fillForm(s *AssessmentScreen, age string) {
	typeText(s, age)
	send(s, keyTab, keyRight) // country
	send(s, keyTab, keyRight) // delivery
	send(s, keyTab, keyRight) // education
	send(s, keyTab, keyRight) // income
	send(s, keyTab, keyRight) // partner support
	send(s, keyTab, keyRight) // family support
	send(s, keyTab, keyRight) // recent birth
	send(s, keyTab, keyEnter) // continue
}

// answerAll answers every question with the option at index choice and
// returns the command from the final Next.
func answerAll(s *AssessmentScreen, choice int) tea.Cmd {
	var cmd tea.Cmd
	for i := 0; i < s.deps.Engine.Instrument().Len(); i++ {
		cmd = send(s, key(rune('1'+choice)), keyEnter)
	}
	return cmd
}

func okAssessment(score int, tier risk.Tier) *risk.Assessment {
	return &risk.Assessment{Score: score, Tier: tier, Title: "t", Message: "m", Source: risk.SourceRemote}
}

func TestForm_ValidSubmissionBeginsQuestions(t *testing.T) {
	s, _ := newTestScreen(t)
	fillForm(s, "30")

	st := s.deps.Engine.State()
	if st.Phase != questionnaire.PhaseQuestioning || st.Position != 1 {
		t.Fatalf("state = %+v, want questioning at 1", st)
	}
	d := s.deps.Engine.Demographics()
	if d.Age != 30 || d.Country != questionnaire.Countries[0] {
		t.Errorf("demographics not committed: %+v", d)
	}
	if d.PartnerSupport == nil || *d.PartnerSupport != 6 {
		t.Errorf("partner support = %v, want 6", d.PartnerSupport)
	}
	if !strings.Contains(s.View(100, 30), "Question 1 of 10") {
		t.Error("view should show question progress")
	}
}

func TestForm_RejectsAge52(t *testing.T) {
	s, _ := newTestScreen(t)
	fillForm(s, "52")

	if got := s.deps.Engine.State().Phase; got != questionnaire.PhaseDemographics {
		t.Fatalf("phase = %v, want demographics", got)
	}
	if age := s.deps.Engine.Demographics().Age; age != 0 {
		t.Errorf("stored age = %d, want unset", age)
	}
	if s.form.focus != rowAge {
		t.Errorf("focus = %d, want the age row", s.form.focus)
	}
	if !strings.Contains(s.View(100, 30), "Age cannot exceed 51 years") {
		t.Error("view should explain the age limit")
	}
}

func TestForm_UntouchedSliderIsMissing(t *testing.T) {
	s, _ := newTestScreen(t)
	typeText(s, "28")
	send(s, keyTab, keyRight, keyTab, keyRight, keyTab, keyRight, keyTab, keyRight)
	send(s, keyTab) // partner support left untouched
	send(s, keyTab, keyRight, keyTab, keyRight, keyTab, keyEnter)

	if got := s.deps.Engine.State().Phase; got != questionnaire.PhaseDemographics {
		t.Fatalf("phase = %v, want demographics", got)
	}
	if s.form.focus != rowPartner {
		t.Errorf("focus = %d, want the partner support row", s.form.focus)
	}
}

func TestForm_ClearedAgeIsRequiredAgain(t *testing.T) {
	s, _ := newTestScreen(t)
	fillForm(s, "30")

	send(s, keyLeft)
	if got := s.deps.Engine.State().Phase; got != questionnaire.PhaseDemographics {
		t.Fatalf("phase = %v, want demographics", got)
	}
	send(s, keyBackspace, keyBackspace)
	if v := s.form.age.Value(); v != "" {
		t.Fatalf("age field = %q, want empty", v)
	}
	for range rowContinue {
		send(s, keyTab)
	}
	send(s, keyEnter)

	if got := s.deps.Engine.State().Phase; got != questionnaire.PhaseDemographics {
		t.Fatalf("phase = %v, want demographics", got)
	}
	if age := s.deps.Engine.Demographics().Age; age != 0 {
		t.Errorf("stored age = %d, want cleared", age)
	}
	if s.form.focus != rowAge {
		t.Errorf("focus = %d, want the age row", s.form.focus)
	}
	if !strings.Contains(s.View(100, 30), "age is required") {
		t.Error("view should ask for the age")
	}
}

func TestQuestions_BackRestoresChoice(t *testing.T) {
	s, _ := newTestScreen(t)
	fillForm(s, "30")

	send(s, key('3'), keyEnter)
	if pos := s.deps.Engine.State().Position; pos != 2 {
		t.Fatalf("position = %d, want 2", pos)
	}
	if s.options.HasChoice() {
		t.Error("question 2 should start unanswered")
	}

	send(s, keyLeft)
	if pos := s.deps.Engine.State().Position; pos != 1 {
		t.Fatalf("position = %d, want 1", pos)
	}
	if s.options.Chosen != 2 {
		t.Errorf("restored choice = %d, want 2", s.options.Chosen)
	}

	send(s, keyLeft)
	if got := s.deps.Engine.State().Phase; got != questionnaire.PhaseDemographics {
		t.Errorf("phase = %v, want demographics", got)
	}
	if v := s.form.age.Value(); v != "30" {
		t.Errorf("age field = %q, want it prefilled", v)
	}
}

func TestSubmit_SuccessReplacesWithResults(t *testing.T) {
	s, mock := newTestScreen(t, scoring.MockResponse{Assessment: okAssessment(10, risk.TierModerate)})
	fillForm(s, "30")

	cmd := answerAll(s, 1)
	if got := s.deps.Engine.State().Phase; got != questionnaire.PhaseSubmitting {
		t.Fatalf("phase = %v, want submitting", got)
	}
	if !strings.Contains(s.View(100, 30), "Scoring your responses") {
		t.Error("view should show progress while submitting")
	}

	cmd = send(s, scored(t, cmd))
	if got := s.deps.Engine.State().Phase; got != questionnaire.PhaseComplete {
		t.Fatalf("phase = %v, want complete", got)
	}
	if _, ok := cmd().(router.ReplaceScreenMsg); !ok {
		t.Errorf("expected ReplaceScreenMsg, got %T", cmd())
	}
	if mock.CallCount() != 1 {
		t.Errorf("calls = %d, want 1", mock.CallCount())
	}
	if total := mock.Calls[0].Total(); total != 10 {
		t.Errorf("submitted total = %d, want 10", total)
	}
}

func TestSubmit_TransportFailureThenRetry(t *testing.T) {
	s, mock := newTestScreen(t,
		scoring.MockResponse{Err: &scoring.TransportError{Err: errors.New("connection refused")}},
		scoring.MockResponse{Assessment: okAssessment(20, risk.TierHigherRisk)},
	)
	fillForm(s, "30")

	send(s, scored(t, answerAll(s, 2)))
	if got := s.deps.Engine.State().Phase; got != questionnaire.PhaseFailed {
		t.Fatalf("phase = %v, want failed", got)
	}
	view := s.View(100, 30)
	if !strings.Contains(view, "Could not reach the scoring service") {
		t.Errorf("view should describe the transport failure:\n%s", view)
	}

	cmd := send(s, key('r'))
	send(s, scored(t, cmd))
	if got := s.deps.Engine.State().Phase; got != questionnaire.PhaseComplete {
		t.Fatalf("phase = %v, want complete", got)
	}

	if mock.CallCount() != 2 {
		t.Fatalf("calls = %d, want 2", mock.CallCount())
	}
	first, second := mock.Calls[0], mock.Calls[1]
	if first.ID != second.ID {
		t.Errorf("retry changed submission id: %s vs %s", first.ID, second.ID)
	}
	if first.Total() != second.Total() {
		t.Errorf("retry changed answers: %d vs %d", first.Total(), second.Total())
	}
	if second.Attempt != first.Attempt+1 {
		t.Errorf("attempt = %d, want %d", second.Attempt, first.Attempt+1)
	}
}

func TestSubmit_ContractErrorRenderedDistinctly(t *testing.T) {
	s, _ := newTestScreen(t, scoring.MockResponse{
		Err: &scoring.ContractError{Reason: "unknown tier label", Err: &risk.UnknownTierError{Label: "unknown_tier"}},
	})
	fillForm(s, "30")
	send(s, scored(t, answerAll(s, 0)))

	if got := s.deps.Engine.State().Phase; got != questionnaire.PhaseFailed {
		t.Fatalf("phase = %v, want failed", got)
	}
	view := s.View(100, 30)
	if !strings.Contains(view, "unexpected response") {
		t.Errorf("view should describe the contract failure:\n%s", view)
	}
	if strings.Contains(view, "Could not reach") {
		t.Error("contract failures must not read as connectivity problems")
	}
	if s.deps.Engine.Result() != nil {
		t.Error("a contract failure must not produce a result")
	}
}

func TestSubmit_BackFromFailureReopensLastQuestion(t *testing.T) {
	s, _ := newTestScreen(t, scoring.MockResponse{Err: &scoring.TransportError{Err: errors.New("timeout")}})
	fillForm(s, "30")
	send(s, scored(t, answerAll(s, 3)))

	send(s, keyLeft)
	st := s.deps.Engine.State()
	if st.Phase != questionnaire.PhaseQuestioning || st.Position != 10 {
		t.Fatalf("state = %+v, want questioning at 10", st)
	}
	if s.options.Chosen != 3 {
		t.Errorf("choice = %d, want 3", s.options.Chosen)
	}
}

func TestSubmit_StaleOutcomeIgnored(t *testing.T) {
	s, _ := newTestScreen(t, scoring.MockResponse{Assessment: okAssessment(5, risk.TierLow)})
	fillForm(s, "30")
	cmd := answerAll(s, 0)
	msg := scored(t, cmd)

	s.deps.Engine.Reset()
	s.sync()
	if out := send(s, msg); out != nil {
		t.Error("stale outcome should produce no command")
	}
	if got := s.deps.Engine.State().Phase; got != questionnaire.PhaseDemographics {
		t.Errorf("phase = %v, want demographics", got)
	}
}

func TestDescribeFailure(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want string
	}{
		{"validation", &questionnaire.ValidationError{Field: "answer", Reason: "please select an answer"}, "please select an answer"},
		{"circuit", &scoring.TransportError{Err: errors.Join(scoring.ErrCircuitOpen, errors.New("x"))}, "resting"},
		{"http", &scoring.TransportError{StatusCode: 503, Err: errors.New("x")}, "HTTP 503"},
		{"contract", &scoring.ContractError{Reason: "missing field"}, "missing field"},
		{"other", errors.New("boom"), "boom"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			title, detail := describeFailure(tt.err)
			if !strings.Contains(title+" "+detail, tt.want) {
				t.Errorf("describeFailure = %q / %q, want mention of %q", title, detail, tt.want)
			}
		})
	}
}
