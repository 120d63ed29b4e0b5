package history

import (
	"context"
	"fmt"
	"strings"

	tea "charm.land/bubbletea/v2"

	"charm.land/lipgloss/v2"

	"github.com/abhisek/epds/internal/risk"
	"github.com/abhisek/epds/internal/router"
	"github.com/abhisek/epds/internal/screen"
	"github.com/abhisek/epds/internal/store"
	"github.com/abhisek/epds/internal/ui/layout"
	"github.com/abhisek/epds/internal/ui/theme"
)

const (
	resultLimit  = 50
	attemptLimit = 500
)

type historyLoadedMsg struct {
	Results  []store.ResultEventRecord
	Attempts map[string][]store.SubmissionEventRecord // sessionID → attempts
	Err      error
}

// HistoryScreen displays past results and the scoring attempts behind them.
type HistoryScreen struct {
	eventRepo store.EventRepo
	results   []store.ResultEventRecord
	attempts  map[string][]store.SubmissionEventRecord
	selected  int
	expanded  map[int]bool
	loaded    bool
	errMsg    string
}

var _ screen.Screen = (*HistoryScreen)(nil)
var _ screen.KeyHintProvider = (*HistoryScreen)(nil)

// New creates a new HistoryScreen.
func New(eventRepo store.EventRepo) *HistoryScreen {
	return &HistoryScreen{
		eventRepo: eventRepo,
		expanded:  make(map[int]bool),
	}
}

func (s *HistoryScreen) Init() tea.Cmd {
	repo := s.eventRepo
	if repo == nil {
		return func() tea.Msg { return historyLoadedMsg{} }
	}
	return func() tea.Msg {
		ctx := context.Background()

		results, err := repo.QueryResultEvents(ctx, store.QueryOpts{Limit: resultLimit})
		if err != nil {
			return historyLoadedMsg{Err: err}
		}

		// Attempts are only detail; a failure here still shows results.
		attempts := make(map[string][]store.SubmissionEventRecord)
		subs, err := repo.QuerySubmissionEvents(ctx, store.QueryOpts{Limit: attemptLimit})
		if err != nil {
			return historyLoadedMsg{Results: results, Attempts: attempts}
		}
		for _, a := range subs {
			attempts[a.SessionID] = append(attempts[a.SessionID], a)
		}

		return historyLoadedMsg{Results: results, Attempts: attempts}
	}
}

func (s *HistoryScreen) Title() string {
	return "Past Results"
}

func (s *HistoryScreen) KeyHints() []layout.KeyHint {
	return []layout.KeyHint{
		{Key: "Enter", Description: "Details"},
		{Key: "↑↓", Description: "Navigate"},
		{Key: "Esc", Description: "Back"},
	}
}

func (s *HistoryScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case historyLoadedMsg:
		if msg.Err != nil {
			s.errMsg = msg.Err.Error()
		} else {
			s.results = msg.Results
			s.attempts = msg.Attempts
		}
		s.loaded = true
		return s, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "esc":
			return s, func() tea.Msg { return router.PopScreenMsg{} }
		case "up", "k":
			if s.selected > 0 {
				s.selected--
			}
			return s, nil
		case "down", "j":
			if s.selected < len(s.results)-1 {
				s.selected++
			}
			return s, nil
		case "enter":
			s.expanded[s.selected] = !s.expanded[s.selected]
			return s, nil
		}
	}
	return s, nil
}

func (s *HistoryScreen) View(width, height int) string {
	if s.errMsg != "" {
		return lipgloss.NewStyle().
			Width(width).Align(lipgloss.Center).Foreground(theme.Error).
			Render(fmt.Sprintf("\n\nError: %s", s.errMsg))
	}
	if !s.loaded {
		return lipgloss.NewStyle().
			Width(width).Align(lipgloss.Center).Foreground(theme.TextDim).
			Render("\n\n  Loading history...")
	}
	if len(s.results) == 0 {
		return lipgloss.NewStyle().
			Width(width).Align(lipgloss.Center).Foreground(theme.TextDim).Italic(true).
			Render("\n\n  No results yet. Your completed check-ins will appear here.")
	}

	var b strings.Builder
	b.WriteString("\n")

	for i, res := range s.results {
		tier := risk.Tier(res.Tier)
		dateStr := res.Timestamp.Local().Format("Jan 02, 2006 15:04")

		prefix := "  "
		if i == s.selected {
			prefix = "> "
		}

		line := fmt.Sprintf("%s%s  %2d/%d  ", prefix, dateStr, res.Score, risk.MaxScore)
		style := lipgloss.NewStyle().Foreground(theme.Text)
		if i == s.selected {
			style = style.Foreground(theme.Primary).Bold(true)
		}
		row := style.Render(line) +
			theme.SeverityColor(risk.TreatmentFor(tier).Severity).Render(fmt.Sprintf("%-12s", tier.DisplayName()))
		if res.Emergency {
			row += "  " + theme.SeverityColor(3).Render("!")
		}
		b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center, row))
		b.WriteString("\n")

		if s.expanded[i] {
			for _, detail := range s.details(res) {
				b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center,
					lipgloss.NewStyle().Foreground(theme.TextDim).Render(detail)))
				b.WriteString("\n")
			}
		}
	}

	return b.String()
}

func (s *HistoryScreen) details(res store.ResultEventRecord) []string {
	lines := []string{fmt.Sprintf("    scored %s", sourceLabel(res.Source))}
	if res.SafetyTriggered {
		lines = append(lines, "    emergency guidance shown for the self-harm question")
	} else if res.Emergency {
		lines = append(lines, "    emergency guidance shown")
	}

	attempts := s.attempts[res.SessionID]
	if len(attempts) == 0 {
		return lines
	}
	failed := 0
	for _, a := range attempts {
		if !a.Success {
			failed++
		}
	}
	lines = append(lines, fmt.Sprintf("    %d scoring attempt(s), %d failed", len(attempts), failed))
	return lines
}

func sourceLabel(source string) string {
	switch risk.Source(source) {
	case risk.SourceLocal:
		return "on this device"
	case risk.SourceRemote:
		return "by the scoring service"
	default:
		return source
	}
}
