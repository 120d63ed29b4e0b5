package placeholder

import (
	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/epds/internal/screen"
	"github.com/abhisek/epds/internal/ui/theme"
)

// ProviderDirectoryURL is where users can look up perinatal mental health providers.
const ProviderDirectoryURL = "https://www.postpartum.net/get-help/provider-directory/"

// PlaceholderScreen stands in for a feature this client does not offer,
// pointing at where the user can go instead.
type PlaceholderScreen struct {
	title   string
	message string
}

var _ screen.Screen = (*PlaceholderScreen)(nil)

// New creates a PlaceholderScreen with the given title and message.
func New(title, message string) *PlaceholderScreen {
	return &PlaceholderScreen{title: title, message: message}
}

// NewProviderDirectory is the stand-in for appointment booking.
func NewProviderDirectory() *PlaceholderScreen {
	return New("Find a Provider",
		"Booking is not available in this app.\n\n"+
			"To find a perinatal mental health provider near you, visit\n"+
			ProviderDirectoryURL+"\n\n"+
			"or ask your doctor, midwife or health visitor for a referral.")
}

func (p *PlaceholderScreen) Init() tea.Cmd {
	return nil
}

func (p *PlaceholderScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	return p, nil
}

func (p *PlaceholderScreen) View(width, height int) string {
	return lipgloss.NewStyle().
		Width(width).
		Height(height).
		Align(lipgloss.Center, lipgloss.Center).
		Foreground(theme.Text).
		Render(p.message)
}

func (p *PlaceholderScreen) Title() string {
	return p.title
}
