package components

import (
	"fmt"
	"strings"

	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/epds/internal/ui/theme"
)

// Slider picks an integer in [Min, Max] with left/right. Touched stays
// false until the user moves it, so a starting position is never taken
// as an answer.
type Slider struct {
	Label   string
	Min     int
	Max     int
	Value   int
	Touched bool
	Focused bool
}

// NewSlider creates a slider clamped to [min, max].
func NewSlider(label string, min, max, value int) Slider {
	s := Slider{Label: label, Min: min, Max: max}
	s.Set(value)
	return s
}

// Set moves the slider, clamping to its bounds.
func (s *Slider) Set(v int) {
	s.Value = max(s.Min, min(s.Max, v))
}

// Update handles left/right, h/l and home/end.
func (s Slider) Update(msg tea.Msg) (Slider, tea.Cmd) {
	if !s.Focused {
		return s, nil
	}
	kmsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return s, nil
	}

	switch kmsg.String() {
	case "left", "h", "-":
		s.Set(s.Value - 1)
	case "right", "l", "+":
		s.Set(s.Value + 1)
	case "home":
		s.Set(s.Min)
	case "end":
		s.Set(s.Max)
	default:
		return s, nil
	}
	s.Touched = true
	return s, nil
}

// View renders the label, a track and the current value.
func (s Slider) View() string {
	steps := s.Max - s.Min
	pos := s.Value - s.Min

	var track strings.Builder
	for i := 0; i <= steps; i++ {
		switch {
		case i == pos:
			track.WriteString("●")
		case i < pos:
			track.WriteString("━")
		default:
			track.WriteString("─")
		}
	}

	label := theme.Unselected.Render("  " + s.Label)
	if s.Focused {
		label = theme.Selected.Render("▸ " + s.Label)
	}
	if !s.Touched {
		return label + "  " + theme.Hint.Render(track.String()+"  not set")
	}
	value := fmt.Sprintf("%d/%d", s.Value, s.Max)
	return label + "  " + theme.Chosen.Render(track.String()) + "  " + theme.Body.Render(value)
}
