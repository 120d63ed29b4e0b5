package results

import (
	"context"
	"strings"
	"testing"

	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/epds/internal/questionnaire"
	"github.com/abhisek/epds/internal/risk"
	"github.com/abhisek/epds/internal/router"
	"github.com/abhisek/epds/internal/screen"
	"github.com/abhisek/epds/internal/store"
)

type fakeRepo struct {
	results []store.ResultEventData
}

func (f *fakeRepo) AppendSubmissionEvent(context.Context, store.SubmissionEventData) error {
	return nil
}

func (f *fakeRepo) AppendResultEvent(_ context.Context, data store.ResultEventData) error {
	f.results = append(f.results, data)
	return nil
}

func (f *fakeRepo) QuerySubmissionEvents(context.Context, store.QueryOpts) ([]store.SubmissionEventRecord, error) {
	return nil, nil
}

func (f *fakeRepo) QueryResultEvents(context.Context, store.QueryOpts) ([]store.ResultEventRecord, error) {
	return nil, nil
}

func (f *fakeRepo) Stats(context.Context) (*store.Stats, error) { return &store.Stats{}, nil }

func (f *fakeRepo) Purge(context.Context) error { return nil }

type stubScreen struct{}

func (s *stubScreen) Init() tea.Cmd                          { return nil }
func (s *stubScreen) Update(tea.Msg) (screen.Screen, tea.Cmd) { return s, nil }
func (s *stubScreen) View(int, int) string                   { return "" }
func (s *stubScreen) Title() string                          { return "Self-Assessment" }

// completedEngine answers every question with values and resolves the
// submission with a remote assessment for tier.
func completedEngine(t *testing.T, values []int, tier risk.Tier) *questionnaire.Engine {
	t.Helper()
	e, err := questionnaire.New(questionnaire.EPDS())
	if err != nil {
		t.Fatal(err)
	}
	must := func(err error) {
		t.Helper()
		if err != nil {
			t.Fatal(err)
		}
	}
	must(e.SetAge(30))
	must(e.SetCountry("Canada"))
	must(e.SetDeliveryType(questionnaire.DeliveryVaginal))
	must(e.SetEducationLevel(questionnaire.EducationLevels[1]))
	must(e.SetIncomeLevel(questionnaire.IncomeMedium))
	must(e.SetPartnerSupport(7))
	must(e.SetFamilySupport(4))
	must(e.SetRecentBirth(true))
	must(e.Begin())

	var sub *questionnaire.Submission
	total := 0
	for _, v := range values {
		must(e.Select(v))
		sub, err = e.Next()
		must(err)
		total += v
	}
	if sub == nil {
		t.Fatal("expected a submission after the last question")
	}
	must(e.Resolve(questionnaire.Outcome{
		Attempt: sub.Attempt,
		Assessment: &risk.Assessment{
			Score:   total,
			Tier:    tier,
			Title:   "Service title",
			Message: "Service message",
			Source:  risk.SourceRemote,
		},
	}))
	return e
}

func TestResults_ShowsScoreAndRecordsEvent(t *testing.T) {
	e := completedEngine(t, []int{1, 1, 1, 1, 1, 1, 1, 1, 1, 0}, risk.TierLow)
	repo := &fakeRepo{}
	s := New(e, repo, nil, nil)

	view := s.View(100, 40)
	for _, want := range []string{"Your score: 9/30", "Service title", "Support you reported: 11/20"} {
		if !strings.Contains(view, want) {
			t.Errorf("view missing %q", want)
		}
	}
	if strings.Contains(view, "Please reach out now") {
		t.Error("low result without self-harm should not show the emergency alert")
	}

	msg := s.Init()()
	s.Update(msg)
	if len(repo.results) != 1 {
		t.Fatalf("recorded %d results, want 1", len(repo.results))
	}
	got := repo.results[0]
	if got.Score != 9 || got.Tier != "low" || got.Source != "remote" || got.Emergency {
		t.Errorf("recorded %+v", got)
	}
	if got.SessionID != e.SessionID() || got.SubmissionID == "" {
		t.Errorf("recorded ids %q / %q", got.SessionID, got.SubmissionID)
	}
}

func TestResults_NarrowTerminalStacksBadge(t *testing.T) {
	e := completedEngine(t, []int{1, 1, 1, 1, 1, 1, 1, 1, 1, 0}, risk.TierLow)
	s := New(e, nil, nil, nil)
	label := risk.TreatmentFor(risk.TierLow).Label

	scoreLine := func(view string) string {
		for _, line := range strings.Split(view, "\n") {
			if strings.Contains(line, "Your score") {
				return line
			}
		}
		t.Fatal("view has no score line")
		return ""
	}

	if !strings.Contains(scoreLine(s.View(110, 40)), label) {
		t.Error("wide terminals should show the badge beside the score")
	}
	narrow := s.View(82, 40)
	if strings.Contains(scoreLine(narrow), label) {
		t.Error("narrow terminals should put the badge on its own line")
	}
	if !strings.Contains(narrow, label) {
		t.Error("badge missing on a narrow terminal")
	}
}

func TestResults_SelfHarmShowsEmergency(t *testing.T) {
	e := completedEngine(t, []int{0, 0, 0, 0, 0, 0, 0, 0, 0, 2}, risk.TierLow)
	repo := &fakeRepo{}
	s := New(e, repo, nil, nil)

	if !strings.Contains(s.View(100, 40), "Please reach out now") {
		t.Error("self-harm answer should show the emergency alert regardless of score")
	}
	s.Update(s.Init()())
	if !repo.results[0].Emergency || !repo.results[0].SafetyTriggered {
		t.Errorf("recorded %+v, want emergency from the safety item", repo.results[0])
	}
}

func TestResults_StartOverResetsEngine(t *testing.T) {
	e := completedEngine(t, []int{3, 3, 3, 3, 3, 0, 0, 0, 0, 0}, risk.TierHigherRisk)
	oldSession := e.SessionID()
	s := New(e, nil, nil, func() screen.Screen { return &stubScreen{} })

	_, cmd := s.Update(tea.KeyPressMsg{Code: 's', Text: "s"})
	if cmd == nil {
		t.Fatal("start over should navigate")
	}
	msg, ok := cmd().(router.ReplaceScreenMsg)
	if !ok {
		t.Fatalf("expected ReplaceScreenMsg, got %T", cmd())
	}
	if msg.Screen.Title() != "Self-Assessment" {
		t.Errorf("replaced with %q", msg.Screen.Title())
	}
	if e.State().Phase != questionnaire.PhaseDemographics {
		t.Errorf("phase = %v, want demographics", e.State().Phase)
	}
	if e.Answers().Len() != 0 || e.Demographics().Age != 0 || e.Result() != nil {
		t.Error("start over should clear answers, demographics and result")
	}
	if e.SessionID() == oldSession {
		t.Error("start over should begin a new session")
	}
}

func TestResults_HomeResetsEngine(t *testing.T) {
	e := completedEngine(t, []int{1, 1, 1, 1, 1, 1, 1, 1, 1, 1}, risk.TierModerate)
	s := New(e, nil, nil, nil)

	_, cmd := s.Update(tea.KeyPressMsg{Code: 'h', Text: "h"})
	if _, ok := cmd().(router.PopToRootMsg); !ok {
		t.Fatalf("expected PopToRootMsg, got %T", cmd())
	}
	if e.State().Phase != questionnaire.PhaseDemographics {
		t.Errorf("phase = %v, want demographics", e.State().Phase)
	}
}

func TestResults_ProviderDirectory(t *testing.T) {
	e := completedEngine(t, []int{0, 0, 0, 0, 0, 0, 0, 0, 0, 0}, risk.TierLow)
	s := New(e, nil, nil, nil)

	_, cmd := s.Update(tea.KeyPressMsg{Code: 'p', Text: "p"})
	push, ok := cmd().(router.PushScreenMsg)
	if !ok {
		t.Fatalf("expected PushScreenMsg, got %T", cmd())
	}
	if push.Screen.Title() != "Find a Provider" {
		t.Errorf("pushed %q", push.Screen.Title())
	}
}
