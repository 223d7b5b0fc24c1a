// Package tuistyles holds the lipgloss palette shared by the TUI and its
// scenes and components.
package tuistyles

import (
	"github.com/charmbracelet/lipgloss"
	"github.com/rgehrsitz/taxgo/internal/domain"
	"github.com/shopspring/decimal"
)

// Colors
var (
	ColorPrimary   = lipgloss.Color("#7D56F4")
	ColorSecondary = lipgloss.Color("#5A4FCF")
	ColorAccent    = lipgloss.Color("#F2C94C")
	ColorSuccess   = lipgloss.Color("#27AE60")
	ColorDanger    = lipgloss.Color("#EB5757")
	ColorInfo      = lipgloss.Color("#2D9CDB")

	ColorForeground = lipgloss.Color("#FAFAFA")
	ColorMuted      = lipgloss.Color("#828282")
	ColorBorder     = lipgloss.Color("#4F4F4F")
)

// Base styles
var (
	AppStyle = lipgloss.NewStyle().Padding(1, 2)

	TitleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(ColorForeground).
			Background(ColorPrimary).
			Padding(0, 1)

	SubtitleStyle = lipgloss.NewStyle().Foreground(ColorMuted)

	StatusBarStyle = lipgloss.NewStyle().
			Foreground(ColorMuted).
			Padding(0, 1)

	StatusKeyStyle = lipgloss.NewStyle().Bold(true).Foreground(ColorAccent)

	BorderStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(ColorBorder).
			Padding(1, 2)

	ActiveBorderStyle = BorderStyle.BorderForeground(ColorPrimary)

	FieldLabelStyle        = lipgloss.NewStyle().Width(26).Foreground(ColorMuted)
	FocusedFieldLabelStyle = FieldLabelStyle.Foreground(ColorPrimary).Bold(true)

	MetricLabelStyle    = lipgloss.NewStyle().Foreground(ColorMuted)
	MetricValueStyle    = lipgloss.NewStyle().Bold(true).Foreground(ColorForeground)
	MetricPositiveStyle = lipgloss.NewStyle().Foreground(ColorSuccess)
	MetricNegativeStyle = lipgloss.NewStyle().Foreground(ColorDanger)

	HelpKeyStyle  = lipgloss.NewStyle().Foreground(ColorAccent)
	HelpDescStyle = lipgloss.NewStyle().Foreground(ColorMuted)
	ErrorStyle    = lipgloss.NewStyle().Foreground(ColorDanger).Bold(true)
	InfoStyle     = lipgloss.NewStyle().Foreground(ColorInfo)
)

// MetricTrendStyle picks the color for a change that is good or bad for the user
func MetricTrendStyle(favorable bool) lipgloss.Style {
	if favorable {
		return MetricPositiveStyle
	}
	return MetricNegativeStyle
}

// TrendIndicator returns an arrow for the direction of a change
func TrendIndicator(up bool) string {
	if up {
		return "▲"
	}
	return "▼"
}

// FormatCurrency renders whole dollars for compact display
func FormatCurrency(amount decimal.Decimal) string {
	return domain.FormatDollars(amount, 0)
}
