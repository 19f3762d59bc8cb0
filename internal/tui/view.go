package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/rgehrsitz/itax/internal/domain"
	"github.com/rgehrsitz/itax/internal/tui/components"
	"github.com/rgehrsitz/itax/internal/tui/tuistyles"
)

// maxRecommendations bounds the recommendation list on screen.
const maxRecommendations = 5

// View renders the form beside the latest results.
func (m Model) View() string {
	body := lipgloss.JoinHorizontal(lipgloss.Top,
		m.renderForm(),
		"  ",
		m.renderResults(),
	)
	return tuistyles.AppStyle.Render(lipgloss.JoinVertical(lipgloss.Left,
		m.renderTitleBar(),
		body,
		m.renderStatusBar(),
	))
}

func (m Model) renderTitleBar() string {
	title := tuistyles.TitleStyle.Render("itax - Income Tax Regime Comparison")
	subtitle := "Financial year " + m.base.Year()
	if m.recordPath != "" {
		subtitle += " / " + m.recordPath
	}
	return lipgloss.JoinVertical(lipgloss.Left, title, tuistyles.SubtitleStyle.Render(subtitle), "")
}

func (m Model) renderForm() string {
	var sb strings.Builder
	for i, f := range formFields {
		label := tuistyles.FieldLabelStyle
		if i == m.focus {
			label = tuistyles.FocusedLabelStyle
		}
		sb.WriteString(label.Render(f.Label))
		sb.WriteString(m.inputs[i].View())
		if i < len(formFields)-1 {
			sb.WriteByte('\n')
		}
	}
	return tuistyles.ActiveBorderStyle.Render(sb.String())
}

func (m Model) renderResults() string {
	var parts []string
	if m.err != nil {
		parts = append(parts, tuistyles.ErrorStyle.Render("Error: "+m.err.Error()))
	}

	if m.report == nil {
		parts = append(parts, tuistyles.SubtitleStyle.Render("Enter your figures and press enter to calculate."))
		return lipgloss.JoinVertical(lipgloss.Left, parts...)
	}

	if m.stale {
		parts = append(parts, tuistyles.SubtitleStyle.Render("Figures changed - press enter to recalculate."))
	}
	parts = append(parts, m.renderCards())

	if v := m.report.Validation; !v.Valid {
		for _, p := range v.Problems {
			parts = append(parts, tuistyles.ErrorStyle.Render("! "+p))
		}
	}
	parts = append(parts, "", m.renderRecommendations())
	return lipgloss.JoinVertical(lipgloss.Left, parts...)
}

func (m Model) renderCards() string {
	d := m.report.Details
	best := d.Comparison.BestRegime

	regimeCard := func(r domain.RegimeResult) *components.MetricCard {
		return components.NewMetricCard(r.Regime.Title()+" regime", tuistyles.FormatCurrency(r.TotalTax)).
			WithDescription(fmt.Sprintf("taxable %s, %s%%", tuistyles.FormatCurrency(r.TaxableIncome), r.EffectiveRate.StringFixed(2))).
			WithHighlight(r.Regime == best)
	}

	savings := components.NewMetricCard("Savings", tuistyles.FormatCurrency(d.Comparison.TaxSavings)).
		WithTrend(true, fmt.Sprintf("%s%% with %s regime", d.Comparison.SavingsPercentage.StringFixed(1), best)).
		WithHighlight(true)

	cards := []*components.MetricCard{regimeCard(d.OldRegime), regimeCard(d.NewRegime), savings}

	if tds := d.Record.TDS; tds.IsPositive() {
		balance := d.Best().TotalTax.Sub(tds)
		label := "Tax payable"
		if balance.IsNegative() {
			label = "Refund due"
		}
		cards = append(cards, components.NewMetricCard(label, tuistyles.FormatCurrency(balance.Abs())).
			WithDescription("after TDS of "+tuistyles.FormatCurrency(tds)))
	}
	return components.MetricGrid(cards, 2)
}

func (m Model) renderRecommendations() string {
	recs := m.report.Recommendations.Recommendations
	if len(recs) == 0 {
		return tuistyles.SubtitleStyle.Render("No recommendations.")
	}

	lines := []string{tuistyles.TitleStyle.Render("Recommendations")}
	for i, r := range recs {
		if i == maxRecommendations {
			lines = append(lines, tuistyles.SubtitleStyle.Render(fmt.Sprintf("... and %d more", len(recs)-i)))
			break
		}
		line := tuistyles.PriorityStyle(r.Priority).Render("• "+r.Title)
		if r.PotentialSavings.IsPositive() {
			line += tuistyles.SubtitleStyle.Render(" (save up to " + tuistyles.FormatCurrency(r.PotentialSavings) + ")")
		}
		lines = append(lines, line)
	}
	return lipgloss.JoinVertical(lipgloss.Left, lines...)
}

func (m Model) renderStatusBar() string {
	var shortcuts []string
	for _, b := range m.keys.shortcuts() {
		h := b.Help()
		shortcuts = append(shortcuts, tuistyles.StatusKeyStyle.Render(h.Key)+" "+h.Desc)
	}
	return tuistyles.StatusBarStyle.Width(m.width).Render(strings.Join(shortcuts, " • "))
}
