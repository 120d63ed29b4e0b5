package components

import (
	"fmt"
	"strconv"
	"strings"

	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/epds/internal/ui/theme"
)

// OptionList is a single-choice list. The cursor moves freely; Chosen
// marks the picked option and is kept when the list is rebuilt with the
// same value.
type OptionList struct {
	Prompt  string
	Options []string
	Cursor  int
	Chosen  int // -1 when nothing is chosen
	Focused bool
}

// NewOptionList creates a list with chosen preselected, or nothing
// chosen when chosen is out of range.
func NewOptionList(prompt string, options []string, chosen int) OptionList {
	if chosen < 0 || chosen >= len(options) {
		chosen = -1
	}
	cursor := 0
	if chosen >= 0 {
		cursor = chosen
	}
	return OptionList{
		Prompt:  prompt,
		Options: options,
		Cursor:  cursor,
		Chosen:  chosen,
		Focused: true,
	}
}

// HasChoice reports whether an option has been chosen.
func (l OptionList) HasChoice() bool {
	return l.Chosen >= 0 && l.Chosen < len(l.Options)
}

// Update moves the cursor with up/down and chooses with space, enter or
// the option's number.
func (l OptionList) Update(msg tea.Msg) (OptionList, tea.Cmd) {
	if !l.Focused {
		return l, nil
	}
	kmsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return l, nil
	}

	key := kmsg.String()
	switch key {
	case "up", "k":
		if l.Cursor > 0 {
			l.Cursor--
		}
	case "down", "j":
		if l.Cursor < len(l.Options)-1 {
			l.Cursor++
		}
	case "space", " ", "enter":
		if len(l.Options) > 0 {
			l.Chosen = l.Cursor
		}
	default:
		if n, err := strconv.Atoi(key); err == nil && n >= 1 && n <= len(l.Options) {
			l.Cursor = n - 1
			l.Chosen = n - 1
		}
	}

	return l, nil
}

// View renders the prompt and the options.
func (l OptionList) View() string {
	var b strings.Builder
	if l.Prompt != "" {
		b.WriteString(theme.Body.Bold(true).Render(l.Prompt))
		b.WriteString("\n\n")
	}

	for i, opt := range l.Options {
		prefix := "  "
		if i == l.Cursor && l.Focused {
			prefix = "▸ "
		}
		mark := "( )"
		if i == l.Chosen {
			mark = "(•)"
		}
		line := fmt.Sprintf("%s%s %d. %s", prefix, mark, i+1, opt)

		switch {
		case i == l.Cursor && l.Focused:
			b.WriteString(theme.Selected.Render(line))
		case i == l.Chosen:
			b.WriteString(theme.Chosen.Render(line))
		default:
			b.WriteString(theme.Unselected.Render(line))
		}
		b.WriteString("\n")
	}

	return b.String()
}
