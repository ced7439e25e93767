package ui

import (
	"io"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
)

// Color palette
const (
	ColorGreen    = "42"  // Passed checks
	ColorWhite    = "255" // Headers, section titles
	ColorGray     = "245" // Details in parentheses
	ColorDarkGray = "238" // Separators
	ColorRed      = "196" // Failures
	ColorYellow   = "220" // Warnings
)

// Item icons. They are printed even without color.
const (
	IconSuccess = "✓"
	IconWarning = "⚠"
	IconFailure = "✗"
)

// Styles holds the styles used by the text report.
type Styles struct {
	Header    lipgloss.Style
	Section   lipgloss.Style
	Success   lipgloss.Style
	Warning   lipgloss.Style
	Error     lipgloss.Style
	Dim       lipgloss.Style
	Separator lipgloss.Style
}

// NewStyles returns styles bound to w. When color is false every style
// renders plain text regardless of the terminal.
func NewStyles(w io.Writer, color bool) Styles {
	r := lipgloss.NewRenderer(w)
	if color {
		r.SetColorProfile(termenv.ANSI256)
	} else {
		r.SetColorProfile(termenv.Ascii)
	}

	return Styles{
		Header:    r.NewStyle().Bold(true).Foreground(lipgloss.Color(ColorWhite)),
		Section:   r.NewStyle().Bold(true),
		Success:   r.NewStyle().Foreground(lipgloss.Color(ColorGreen)),
		Warning:   r.NewStyle().Foreground(lipgloss.Color(ColorYellow)),
		Error:     r.NewStyle().Foreground(lipgloss.Color(ColorRed)),
		Dim:       r.NewStyle().Foreground(lipgloss.Color(ColorGray)),
		Separator: r.NewStyle().Foreground(lipgloss.Color(ColorDarkGray)),
	}
}

// DefaultStyles returns colored styles for w.
func DefaultStyles(w io.Writer) Styles {
	return NewStyles(w, true)
}

// NoColorStyles returns unstyled components for plain mode.
func NoColorStyles(w io.Writer) Styles {
	return NewStyles(w, false)
}
