package home

import (
	"context"
	"fmt"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/epds/internal/risk"
	"github.com/abhisek/epds/internal/router"
	"github.com/abhisek/epds/internal/screen"
	"github.com/abhisek/epds/internal/screens/history"
	"github.com/abhisek/epds/internal/screens/placeholder"
	"github.com/abhisek/epds/internal/screens/resources"
	"github.com/abhisek/epds/internal/store"
	"github.com/abhisek/epds/internal/ui/components"
	"github.com/abhisek/epds/internal/ui/theme"
)

type lastResultMsg struct {
	Record *store.ResultEventRecord
	Err    error
}

// HomeScreen is the main menu.
type HomeScreen struct {
	menu   components.Menu
	events store.EventRepo
	last   *store.ResultEventRecord
}

var _ screen.Screen = (*HomeScreen)(nil)

// New creates a HomeScreen. startAssessment resets the questionnaire and
// returns the screen for a fresh run. events may be nil, which hides
// history.
func New(startAssessment func() screen.Screen, events store.EventRepo) *HomeScreen {
	push := func(build func() screen.Screen) func() tea.Cmd {
		return func() tea.Cmd {
			s := build()
			return func() tea.Msg { return router.PushScreenMsg{Screen: s} }
		}
	}

	items := []components.MenuItem{
		{
			Label:       "Start self-assessment",
			Description: "10 questions, about 5 minutes",
			Action:      push(startAssessment),
		},
		{
			Label:       "Past results",
			Description: "Results saved on this device",
			Action:      push(func() screen.Screen { return history.New(events) }),
			Disabled:    events == nil,
		},
		{
			Label:       "Support resources",
			Description: "Helplines and support groups",
			Action:      push(func() screen.Screen { return resources.New() }),
		},
		{
			Label:       "Find a provider",
			Description: "Perinatal mental health directory",
			Action:      push(func() screen.Screen { return placeholder.NewProviderDirectory() }),
		},
		{
			Label:  "Exit",
			Action: func() tea.Cmd { return tea.Quit },
		},
	}

	return &HomeScreen{
		menu:   components.NewMenu(items),
		events: events,
	}
}

func (h *HomeScreen) Init() tea.Cmd {
	return h.loadLast()
}

func (h *HomeScreen) loadLast() tea.Cmd {
	if h.events == nil {
		return nil
	}
	events := h.events
	return func() tea.Msg {
		recs, err := events.QueryResultEvents(context.Background(), store.QueryOpts{Limit: 1})
		if err != nil || len(recs) == 0 {
			return lastResultMsg{Err: err}
		}
		return lastResultMsg{Record: &recs[0]}
	}
}

func (h *HomeScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case lastResultMsg:
		if msg.Err == nil {
			h.last = msg.Record
		}
		return h, nil
	case router.ScreenShownMsg:
		return h, h.loadLast()
	}

	var cmd tea.Cmd
	h.menu, cmd = h.menu.Update(msg)
	return h, cmd
}

func (h *HomeScreen) View(width, height int) string {
	cw := min(width-4, 72)

	var sections []string
	sections = append(sections, theme.Title.Width(cw).Render("Postpartum Depression Self-Check"))
	sections = append(sections, theme.Subtitle.Width(cw).Render(
		"A private screening based on the Edinburgh Postnatal Depression Scale (EPDS).\n"+
			"It takes a few minutes and is not a diagnosis."))

	if h.last != nil {
		t := risk.Tier(h.last.Tier)
		line := fmt.Sprintf("Last check-in %s: %d/%d ", h.last.Timestamp.Format("Jan 02, 2006"), h.last.Score, risk.MaxScore)
		sections = append(sections, lipgloss.PlaceHorizontal(cw, lipgloss.Center,
			theme.Hint.Render(line)+theme.SeverityColor(risk.TreatmentFor(t).Severity).Render(t.DisplayName())))
	}

	sections = append(sections, theme.Card.Width(cw).Render(strings.TrimRight(h.menu.View(), "\n")))
	sections = append(sections, lipgloss.PlaceHorizontal(cw, lipgloss.Center,
		theme.Hint.Render("In crisis? Call or text 988 now.")))

	content := strings.Join(sections, "\n\n")
	return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center, content)
}

func (h *HomeScreen) Title() string {
	return "Home"
}
