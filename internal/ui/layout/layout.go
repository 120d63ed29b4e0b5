// Package layout frames every screen with a header bar and a key-hint footer.
package layout

import (
	"fmt"
	"strings"

	"charm.land/lipgloss/v2"

	"github.com/abhisek/epds/internal/ui/theme"
)

const (
	MinWidth  = 80
	MinHeight = 24

	HeaderHeight = 3
	FooterHeight = 3

	// Below these sizes screens drop secondary text.
	CompactWidthThreshold  = 100
	CompactHeightThreshold = 30
)

// CrisisHint is always reachable from the footer, even when the terminal
// is too small to draw a screen.
const CrisisHint = "In crisis? Call or text 988"

// KeyHint is a key binding shown in the footer.
type KeyHint struct {
	Key         string
	Description string
}

func IsCompactWidth(width int) bool {
	return width < CompactWidthThreshold
}

func IsCompactHeight(height int) bool {
	return height < CompactHeightThreshold
}

func IsTooSmall(width, height int) bool {
	return width < MinWidth || height < MinHeight
}

// ContentHeight is the height left for a screen once the frame is drawn.
func ContentHeight(totalHeight int) int {
	return max(totalHeight-HeaderHeight-FooterHeight, 0)
}

// RenderMinSizeMessage asks for a bigger terminal and keeps the crisis
// line visible.
func RenderMinSizeMessage(width, height int) string {
	body := fmt.Sprintf("Please make the window at least %d x %d\n(now %d x %d)",
		MinWidth, MinHeight, width, height)
	return lipgloss.NewStyle().
		Align(lipgloss.Center, lipgloss.Center).
		Width(width).
		Height(height).
		Render(theme.Body.Render(body) + "\n\n" + theme.ErrorText.Render(CrisisHint))
}

// RenderHeader draws the app name, the centered screen title and a status
// such as the scorer in use. The status is dropped on narrow terminals.
func RenderHeader(title, status string, width int) string {
	inner := max(width-4, 0)

	name := lipgloss.NewStyle().Foreground(theme.Primary).Bold(true).Render("  EPDS")
	center := lipgloss.NewStyle().Foreground(theme.Text).Render(title)
	right := ""
	if !IsCompactWidth(width) {
		right = lipgloss.NewStyle().Foreground(theme.TextDim).Render(status)
	}

	leftGap := max((inner-lipgloss.Width(center))/2-lipgloss.Width(name), 1)
	rightGap := max(inner-lipgloss.Width(name)-leftGap-lipgloss.Width(center)-lipgloss.Width(right), 1)

	line := name + strings.Repeat(" ", leftGap) + center + strings.Repeat(" ", rightGap) + right
	return bar(line, width)
}

// RenderFooter draws the key hints with the crisis line on the right.
func RenderFooter(hints []KeyHint, width int) string {
	keyStyle := lipgloss.NewStyle().Foreground(theme.Text).Bold(true)
	descStyle := lipgloss.NewStyle().Foreground(theme.TextDim)

	parts := make([]string, 0, len(hints))
	for _, h := range hints {
		parts = append(parts, keyStyle.Render(h.Key)+" "+descStyle.Render(h.Description))
	}
	left := "  " + strings.Join(parts, "   ")

	crisis := theme.ErrorText.Render(CrisisHint)
	gap := width - 4 - lipgloss.Width(left) - lipgloss.Width(crisis)
	if gap < 2 {
		return bar(left, width)
	}
	return bar(left+strings.Repeat(" ", gap)+crisis, width)
}

func bar(content string, width int) string {
	return lipgloss.NewStyle().
		Width(width).
		Background(theme.BgCard).
		Border(lipgloss.RoundedBorder()).
		BorderForeground(theme.Border).
		Render(content)
}

// RenderFrame stacks header, content and footer to fill height.
func RenderFrame(header, content, footer string, width, height int) string {
	contentHeight := max(height-lipgloss.Height(header)-lipgloss.Height(footer), 0)
	body := lipgloss.NewStyle().Width(width).Height(contentHeight).Render(content)
	return header + "\n" + body + "\n" + footer
}
