package components

import (
	"strconv"

	"charm.land/bubbles/v2/textinput"
	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/epds/internal/ui/theme"
)

// NumberInput wraps bubbles/textinput for short whole numbers.
type NumberInput struct {
	Label   string
	Model   textinput.Model
	Focused bool
	invalid string
}

// NewNumberInput creates an unfocused input accepting up to maxDigits digits.
func NewNumberInput(label, placeholder string, maxDigits int) NumberInput {
	ti := textinput.New()
	ti.Placeholder = placeholder
	ti.Prompt = ""
	if maxDigits > 0 {
		ti.CharLimit = maxDigits
		ti.SetWidth(maxDigits + 1)
	}
	return NumberInput{Label: label, Model: ti}
}

// Focus gives the input the cursor.
func (t *NumberInput) Focus() tea.Cmd {
	t.Focused = true
	return t.Model.Focus()
}

// Blur removes the cursor.
func (t *NumberInput) Blur() {
	t.Focused = false
	t.Model.Blur()
}

// Update forwards keys to the text model, dropping non-digit runes.
func (t NumberInput) Update(msg tea.Msg) (NumberInput, tea.Cmd) {
	if !t.Focused {
		return t, nil
	}
	if kmsg, ok := msg.(tea.KeyMsg); ok {
		key := kmsg.String()
		if len(key) == 1 && (key[0] < '0' || key[0] > '9') {
			return t, nil
		}
	}

	var cmd tea.Cmd
	t.Model, cmd = t.Model.Update(msg)
	t.invalid = ""
	return t, cmd
}

// View renders the label, the field and any rejection reason.
func (t NumberInput) View() string {
	label := theme.Unselected.Render("  " + t.Label)
	if t.Focused {
		label = theme.Selected.Render("▸ " + t.Label)
	}
	view := label + "  " + t.Model.View()
	if t.invalid != "" {
		view += "  " + theme.ErrorText.Render("✗ "+t.invalid)
	}
	return view
}

// Value returns the raw text.
func (t NumberInput) Value() string {
	return t.Model.Value()
}

// SetValue replaces the text.
func (t *NumberInput) SetValue(s string) {
	t.Model.SetValue(s)
}

// Int parses the input. An empty field reports ok=false.
func (t NumberInput) Int() (int, bool) {
	n, err := strconv.Atoi(t.Model.Value())
	if err != nil {
		return 0, false
	}
	return n, true
}

// Reject marks the input with a reason until the next edit.
func (t *NumberInput) Reject(reason string) {
	t.invalid = reason
}

// Rejected returns the current rejection reason.
func (t NumberInput) Rejected() string {
	return t.invalid
}
