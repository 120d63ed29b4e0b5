package components

import (
	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/epds/internal/ui/theme"
)

// Selector cycles through a fixed set of choices on one line. Index is
// -1 until the user makes a choice.
type Selector struct {
	Label   string
	Choices []string
	Index   int
	Focused bool
}

// NewSelector creates a selector with nothing chosen.
func NewSelector(label string, choices []string) Selector {
	return Selector{Label: label, Choices: choices, Index: -1}
}

// Value returns the current choice.
func (s Selector) Value() (string, bool) {
	if s.Index < 0 || s.Index >= len(s.Choices) {
		return "", false
	}
	return s.Choices[s.Index], true
}

// Select sets the choice by value; unknown values leave it unset.
func (s *Selector) Select(value string) {
	s.Index = -1
	for i, c := range s.Choices {
		if c == value {
			s.Index = i
			return
		}
	}
}

// Update cycles with left/right, wrapping at either end.
func (s Selector) Update(msg tea.Msg) (Selector, tea.Cmd) {
	if !s.Focused || len(s.Choices) == 0 {
		return s, nil
	}
	kmsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return s, nil
	}

	n := len(s.Choices)
	switch kmsg.String() {
	case "right", "l", "space", " ":
		s.Index = (s.Index + 1) % n
	case "left", "h":
		if s.Index <= 0 {
			s.Index = n - 1
		} else {
			s.Index--
		}
	}
	return s, nil
}

// View renders "label  ‹ choice ›".
func (s Selector) View() string {
	value, ok := s.Value()
	if !ok {
		value = "choose"
	}

	label := theme.Unselected.Render("  " + s.Label)
	if s.Focused {
		label = theme.Selected.Render("▸ " + s.Label)
	}
	v := theme.Hint.Render("‹ " + value + " ›")
	if ok {
		v = theme.Chosen.Render("‹ " + value + " ›")
	}
	return label + "  " + v
}
