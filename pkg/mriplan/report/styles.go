package report

import "github.com/charmbracelet/lipgloss"

// Color constants using the ANSI 256-color palette, shared by the pretty
// formatter.
const (
	// ColorPrimary is used for primary elements like headers (bright blue).
	ColorPrimary = lipgloss.Color("39")

	// ColorSuccess is used for the recommended configuration (green).
	ColorSuccess = lipgloss.Color("42")

	// ColorWarning is used for advisory notes (orange/yellow).
	ColorWarning = lipgloss.Color("214")

	// ColorMuted is used for secondary text (gray).
	ColorMuted = lipgloss.Color("245")
)

// Box styles for grouped content.
var (
	// HeaderBox frames the detected-hardware section.
	HeaderBox = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(ColorPrimary).
			Padding(0, 1).
			MarginBottom(1)

	// PlanBox frames the recommendation and phase estimates.
	PlanBox = lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(ColorSuccess).
		Padding(0, 1)
)

// Text styles for various content types.
var (
	// TitleStyle is used for section titles.
	TitleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(ColorPrimary)

	// LabelStyle is used for field labels.
	LabelStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(ColorMuted)

	// ValueStyle is used for field values.
	ValueStyle = lipgloss.NewStyle()

	// HighlightStyle is used for the recommended numbers.
	HighlightStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(ColorSuccess)

	// MutedStyle is used for derivations and notes.
	MutedStyle = lipgloss.NewStyle().
			Foreground(ColorMuted)
)
