package components

import (
	"fmt"

	"github.com/charmbracelet/lipgloss"
	"github.com/rgehrsitz/itax/internal/tui/tuistyles"
)

// MetricCard shows one figure with a label and an optional change line.
type MetricCard struct {
	Label       string
	Value       string
	Trend       *Trend
	Description string
	Highlighted bool
	Width       int
}

// Trend is a change shown below the value. Favourable changes are green.
type Trend struct {
	IsPositive bool
	Change     string
}

// NewMetricCard creates a card of the default width.
func NewMetricCard(label, value string) *MetricCard {
	return &MetricCard{
		Label: label,
		Value: value,
		Width: 24,
	}
}

// WithTrend adds a change line.
func (m *MetricCard) WithTrend(isPositive bool, change string) *MetricCard {
	m.Trend = &Trend{IsPositive: isPositive, Change: change}
	return m
}

// WithDescription adds a muted subtitle.
func (m *MetricCard) WithDescription(desc string) *MetricCard {
	m.Description = desc
	return m
}

// WithHighlight draws the border in the primary color.
func (m *MetricCard) WithHighlight(on bool) *MetricCard {
	m.Highlighted = on
	return m
}

// WithWidth sets the card width.
func (m *MetricCard) WithWidth(width int) *MetricCard {
	m.Width = width
	return m
}

// Render returns the bordered card.
func (m *MetricCard) Render() string {
	content := tuistyles.MetricLabelStyle.Render(m.Label) + "\n" +
		tuistyles.MetricValueStyle.Render(m.Value)

	if m.Trend != nil {
		style := tuistyles.MetricTrendStyle(m.Trend.IsPositive)
		content += "\n" + style.Render(fmt.Sprintf("%s %s", tuistyles.TrendIndicator(m.Trend.IsPositive), m.Trend.Change))
	}
	if m.Description != "" {
		content += "\n" + tuistyles.SubtitleStyle.Render(m.Description)
	}

	border := tuistyles.ColorBorder
	if m.Highlighted {
		border = tuistyles.ColorPrimary
	}
	return lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(border).
		Padding(0, 1).
		Width(m.Width).
		Render(content)
}

// MetricGrid lays cards out in rows of the given number of columns.
func MetricGrid(cards []*MetricCard, columns int) string {
	if len(cards) == 0 || columns < 1 {
		return ""
	}

	var rows, current []string
	for i, card := range cards {
		current = append(current, card.Render())
		if (i+1)%columns == 0 || i == len(cards)-1 {
			rows = append(rows, lipgloss.JoinHorizontal(lipgloss.Top, current...))
			current = nil
		}
	}
	return lipgloss.JoinVertical(lipgloss.Left, rows...)
}
