// Package tuistyles holds the colors and lipgloss styles shared by the TUI
// and its components.
package tuistyles

import (
	"github.com/charmbracelet/lipgloss"
	"github.com/rgehrsitz/itax/internal/domain"
	"github.com/shopspring/decimal"
)

var (
	ColorPrimary = lipgloss.Color("#7D56F4")
	ColorAccent  = lipgloss.Color("#F5A623")
	ColorSuccess = lipgloss.Color("#04B575")
	ColorDanger  = lipgloss.Color("#E74C3C")
	ColorMuted   = lipgloss.Color("#7A7A7A")
	ColorBorder  = lipgloss.Color("#5A5A5A")
)

var (
	AppStyle = lipgloss.NewStyle().Padding(1, 2)

	TitleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(ColorPrimary)

	SubtitleStyle = lipgloss.NewStyle().Foreground(ColorMuted)

	StatusBarStyle = lipgloss.NewStyle().
			Foreground(ColorMuted).
			MarginTop(1)

	StatusKeyStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(ColorAccent)

	BorderStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(ColorBorder).
			Padding(0, 1)

	ActiveBorderStyle = BorderStyle.BorderForeground(ColorPrimary)

	MetricLabelStyle = lipgloss.NewStyle().Foreground(ColorMuted)

	MetricValueStyle = lipgloss.NewStyle().Bold(true)

	MetricPositiveStyle = lipgloss.NewStyle().Foreground(ColorSuccess)

	MetricNegativeStyle = lipgloss.NewStyle().Foreground(ColorDanger)

	FieldLabelStyle = lipgloss.NewStyle().Width(22)

	FocusedLabelStyle = FieldLabelStyle.Foreground(ColorPrimary).Bold(true)

	ErrorStyle = lipgloss.NewStyle().Foreground(ColorDanger)

	HighPriorityStyle = lipgloss.NewStyle().Foreground(ColorDanger).Bold(true)

	MediumPriorityStyle = lipgloss.NewStyle().Foreground(ColorAccent)

	LowPriorityStyle = lipgloss.NewStyle().Foreground(ColorMuted)
)

// MetricTrendStyle colors a change green when it is favourable.
func MetricTrendStyle(isPositive bool) lipgloss.Style {
	if isPositive {
		return MetricPositiveStyle
	}
	return MetricNegativeStyle
}

// TrendIndicator returns an arrow for the direction of a change.
func TrendIndicator(isPositive bool) string {
	if isPositive {
		return "▲"
	}
	return "▼"
}

// FormatCurrency renders a whole-rupee amount with Indian digit grouping.
func FormatCurrency(amount decimal.Decimal) string {
	return domain.FormatRupees(amount.Round(0))
}

// PriorityStyle returns the style for a recommendation priority.
func PriorityStyle(p domain.Priority) lipgloss.Style {
	switch p {
	case domain.PriorityHigh:
		return HighPriorityStyle
	case domain.PriorityMedium:
		return MediumPriorityStyle
	default:
		return LowPriorityStyle
	}
}
