package ui

import "github.com/charmbracelet/lipgloss"

// Color palette.
const (
	ColorLime     = "154" // accent
	ColorLimeDim  = "106" // badges
	ColorWhite    = "255" // result titles
	ColorGray     = "245" // descriptions, labels
	ColorDarkGray = "238" // separators, hints
	ColorRed      = "196"
	ColorYellow   = "220"
)

// Styles holds all UI styles for the search host.
type Styles struct {
	Header      lipgloss.Style
	Prompt      lipgloss.Style
	Title       lipgloss.Style
	Selected    lipgloss.Style
	Description lipgloss.Style
	Route       lipgloss.Style
	Badge       lipgloss.Style
	Label       lipgloss.Style
	Dim         lipgloss.Style
	Warning     lipgloss.Style
	Error       lipgloss.Style
	Panel       lipgloss.Style
}

// DefaultStyles returns styled components for TUI mode.
func DefaultStyles() Styles {
	return Styles{
		Header:      lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color(ColorLime)),
		Prompt:      lipgloss.NewStyle().Foreground(lipgloss.Color(ColorLime)),
		Title:       lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color(ColorWhite)),
		Selected:    lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color(ColorLime)),
		Description: lipgloss.NewStyle().Foreground(lipgloss.Color(ColorGray)),
		Route:       lipgloss.NewStyle().Foreground(lipgloss.Color(ColorDarkGray)),
		Badge: lipgloss.NewStyle().
			Foreground(lipgloss.Color(ColorLimeDim)).
			Padding(0, 1),
		Label:   lipgloss.NewStyle().Foreground(lipgloss.Color(ColorGray)),
		Dim:     lipgloss.NewStyle().Foreground(lipgloss.Color(ColorDarkGray)),
		Warning: lipgloss.NewStyle().Foreground(lipgloss.Color(ColorYellow)),
		Error:   lipgloss.NewStyle().Foreground(lipgloss.Color(ColorRed)),
		Panel: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color(ColorDarkGray)).
			Padding(0, 1),
	}
}

// NoColorStyles returns unstyled components for plain mode.
func NoColorStyles() Styles {
	return Styles{
		Header:      lipgloss.NewStyle(),
		Prompt:      lipgloss.NewStyle(),
		Title:       lipgloss.NewStyle(),
		Selected:    lipgloss.NewStyle(),
		Description: lipgloss.NewStyle(),
		Route:       lipgloss.NewStyle(),
		Badge:       lipgloss.NewStyle(),
		Label:       lipgloss.NewStyle(),
		Dim:         lipgloss.NewStyle(),
		Warning:     lipgloss.NewStyle(),
		Error:       lipgloss.NewStyle(),
		Panel:       lipgloss.NewStyle(),
	}
}

// GetStyles returns the appropriate styles based on color preference.
func GetStyles(noColor bool) Styles {
	if noColor {
		return NoColorStyles()
	}
	return DefaultStyles()
}
