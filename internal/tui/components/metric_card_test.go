package components

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMetricCardRender(t *testing.T) {
	out := NewMetricCard("Old regime", "₹30,680").
		WithTrend(true, "₹23,920 saved").
		WithDescription("recommended").
		WithHighlight(true).
		Render()

	assert.Contains(t, out, "Old regime")
	assert.Contains(t, out, "₹30,680")
	assert.Contains(t, out, "▲ ₹23,920 saved")
	assert.Contains(t, out, "recommended")
}

func TestMetricGrid(t *testing.T) {
	cards := []*MetricCard{
		NewMetricCard("A", "1"),
		NewMetricCard("B", "2"),
		NewMetricCard("C", "3"),
	}

	grid := MetricGrid(cards, 2)
	lines := strings.Split(grid, "\n")

	assert.Contains(t, lines[1], "A")
	assert.Contains(t, lines[1], "B")
	assert.NotContains(t, lines[1], "C")
	assert.Contains(t, grid, "C")
	assert.Empty(t, MetricGrid(nil, 2))
}
