// Package styles provides colour themes and styling for the segment viewer.
package styles

import (
	"github.com/charmbracelet/lipgloss"
)

// Theme defines the colour palette for the viewer.
type Theme struct {
	// Primary is the main accent colour, used for titles.
	Primary lipgloss.Color

	// Secondary highlights segment tags.
	Secondary lipgloss.Color

	// Foreground is the default text colour.
	Foreground lipgloss.Color

	// Muted is for line numbers and hints.
	Muted lipgloss.Color

	// Warning indicates caution.
	Warning lipgloss.Color

	// Error indicates problems.
	Error lipgloss.Color

	// Border is the rule colour.
	Border lipgloss.Color
}

// DefaultTheme returns the default colour theme.
func DefaultTheme() *Theme {
	return &Theme{
		Primary:    lipgloss.Color("#7C3AED"), // Purple
		Secondary:  lipgloss.Color("#06B6D4"), // Cyan
		Foreground: lipgloss.Color("#CDD6F4"), // Light gray
		Muted:      lipgloss.Color("#6C7086"), // Medium gray
		Warning:    lipgloss.Color("#F9E2AF"), // Yellow
		Error:      lipgloss.Color("#F38BA8"), // Red
		Border:     lipgloss.Color("#45475A"), // Border gray
	}
}

// Styles contains pre-configured lipgloss styles.
type Styles struct {
	theme *Theme

	// Title style for the document header.
	Title lipgloss.Style

	// Subtitle style for the separator summary.
	Subtitle lipgloss.Style

	// Normal style for segment bodies.
	Normal lipgloss.Style

	// Muted style for less important text.
	Muted lipgloss.Style

	// Tag style for the segment identifier.
	Tag lipgloss.Style

	// LineNumber style for the segment counter column.
	LineNumber lipgloss.Style

	// Rule style for the line under the title.
	Rule lipgloss.Style

	// Warning style for separator warnings.
	Warning lipgloss.Style

	// Error style for error messages.
	Error lipgloss.Style

	// Help style for help text.
	Help lipgloss.Style
}

// NewStyles creates styles from a theme.
func NewStyles(theme *Theme) *Styles {
	if theme == nil {
		theme = DefaultTheme()
	}

	return &Styles{
		theme: theme,

		Title: lipgloss.NewStyle().
			Bold(true).
			Foreground(theme.Primary),

		Subtitle: lipgloss.NewStyle().
			Foreground(theme.Secondary),

		Normal: lipgloss.NewStyle().
			Foreground(theme.Foreground),

		Muted: lipgloss.NewStyle().
			Foreground(theme.Muted),

		Tag: lipgloss.NewStyle().
			Bold(true).
			Foreground(theme.Secondary),

		LineNumber: lipgloss.NewStyle().
			Foreground(theme.Muted).
			Width(7).
			Align(lipgloss.Right).
			PaddingRight(1),

		Rule: lipgloss.NewStyle().
			Foreground(theme.Border),

		Warning: lipgloss.NewStyle().
			Foreground(theme.Warning),

		Error: lipgloss.NewStyle().
			Foreground(theme.Error),

		Help: lipgloss.NewStyle().
			Foreground(theme.Muted),
	}
}

// DefaultStyles returns styles with the default theme.
func DefaultStyles() *Styles {
	return NewStyles(DefaultTheme())
}

// Theme returns the theme used by these styles.
func (s *Styles) Theme() *Theme {
	return s.theme
}
