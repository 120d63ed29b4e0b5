package components

import (
	"fmt"
	"strings"

	"charm.land/lipgloss/v2"

	"github.com/abhisek/epds/internal/ui/theme"
)

// ProgressBar displays "Question k of N" with a horizontal bar.
type ProgressBar struct {
	Current int
	Total   int
	Width   int
}

// NewProgressBar creates a progress bar for step current of total.
func NewProgressBar(current, total, width int) ProgressBar {
	return ProgressBar{Current: current, Total: total, Width: width}
}

// Fraction returns completion in [0, 1].
func (p ProgressBar) Fraction() float64 {
	if p.Total <= 0 {
		return 0
	}
	f := float64(p.Current) / float64(p.Total)
	return max(0, min(1, f))
}

// View renders the progress bar.
func (p ProgressBar) View() string {
	label := theme.Body.Render(fmt.Sprintf("Question %d of %d", p.Current, p.Total))
	percent := theme.Hint.Render(fmt.Sprintf("%3d%%", int(p.Fraction()*100)))

	barWidth := p.Width - lipgloss.Width(label) - lipgloss.Width(percent) - 4
	if barWidth < 4 {
		barWidth = 4
	}

	filled := int(float64(barWidth) * p.Fraction())
	empty := barWidth - filled

	bar := theme.ProgressFilled.Render(strings.Repeat(" ", filled)) +
		theme.ProgressEmpty.Render(strings.Repeat(" ", empty))

	return label + "  " + bar + "  " + percent
}
