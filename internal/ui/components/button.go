package components

import (
	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/epds/internal/ui/theme"
)

// Button is a focusable action row, pressed with enter.
type Button struct {
	Label   string
	Focused bool
	OnPress func() tea.Cmd
}

// NewButton creates an unfocused button.
func NewButton(label string, onPress func() tea.Cmd) Button {
	return Button{
		Label:   label,
		OnPress: onPress,
	}
}

// Update fires OnPress on enter while focused.
func (b Button) Update(msg tea.Msg) (Button, tea.Cmd) {
	if !b.Focused {
		return b, nil
	}

	if kmsg, ok := msg.(tea.KeyMsg); ok {
		if kmsg.String() == "enter" && b.OnPress != nil {
			return b, b.OnPress()
		}
	}

	return b, nil
}

// View renders the button.
func (b Button) View() string {
	if b.Focused {
		return theme.Selected.Render("  ▸ [ " + b.Label + " ]")
	}
	return theme.Unselected.Render("    [ " + b.Label + " ]")
}
