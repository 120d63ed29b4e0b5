// Package resources lists support contacts.
package resources

import (
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/epds/internal/risk"
	"github.com/abhisek/epds/internal/screen"
	"github.com/abhisek/epds/internal/ui/theme"
)

// ResourcesScreen shows the fixed support resources.
type ResourcesScreen struct{}

var _ screen.Screen = (*ResourcesScreen)(nil)

// New creates a ResourcesScreen.
func New() *ResourcesScreen {
	return &ResourcesScreen{}
}

func (r *ResourcesScreen) Init() tea.Cmd { return nil }

func (r *ResourcesScreen) Update(tea.Msg) (screen.Screen, tea.Cmd) { return r, nil }

func (r *ResourcesScreen) Title() string { return "Support Resources" }

func (r *ResourcesScreen) View(width, height int) string {
	intro := theme.Body.Render("You are not alone. These services can help, whatever your result.")
	content := intro + "\n\n" + Render(min(width-4, 76))
	return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center, content)
}

// Render lists the resources, urgent ones first and highlighted.
func Render(width int) string {
	var urgent, rest []string
	for _, res := range risk.Resources() {
		line := renderOne(res, width)
		if res.Urgent {
			urgent = append(urgent, line)
		} else {
			rest = append(rest, line)
		}
	}
	return strings.Join(append(urgent, rest...), "\n")
}

func renderOne(res risk.Resource, width int) string {
	title := theme.Chosen.Render(res.Title)
	if res.Urgent {
		title = theme.SeverityColor(3).Render(res.Title)
	}
	desc := lipgloss.NewStyle().Width(width - 4).Foreground(theme.TextDim).Render(res.Description)
	contact := theme.Body.Render(res.Contact)
	return "  " + title + "\n    " + desc + "\n    " + contact + "\n"
}
