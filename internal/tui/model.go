// Package tui is an interactive what-if editor for a financial record.
package tui

import (
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/rgehrsitz/itax/internal/calculation"
	"github.com/rgehrsitz/itax/internal/config"
	"github.com/rgehrsitz/itax/internal/domain"
)

// Model is the application state.
type Model struct {
	width  int
	height int

	recordPath string
	// base supplies the fields the form does not edit, such as the year.
	base domain.FinancialRecord

	calc   *calculation.TaxCalculator
	keys   keyMap
	inputs []textinput.Model
	focus  int

	report *domain.TaxReport
	err    error
	// stale is set when the form changed after the last calculation.
	stale bool
}

// NewModel creates a model. recordPath may be empty to start from a blank
// form; calc may be nil to use the default rules.
func NewModel(recordPath string, calc *calculation.TaxCalculator) Model {
	if calc == nil {
		calc = calculation.NewTaxCalculator()
	}
	inputs := make([]textinput.Model, len(formFields))
	for i := range formFields {
		inputs[i] = newInput()
	}
	inputs[0].Focus()

	return Model{
		width:      80,
		height:     24,
		recordPath: recordPath,
		base:       domain.FinancialRecord{FinancialYear: domain.DefaultFinancialYear},
		calc:       calc,
		keys:       defaultKeyMap(),
		inputs:     inputs,
	}
}

// Init loads the record file when one was given.
func (m Model) Init() tea.Cmd {
	if m.recordPath == "" {
		return textinput.Blink
	}
	return tea.Batch(textinput.Blink, loadRecordCmd(m.recordPath))
}

func loadRecordCmd(path string) tea.Cmd {
	return func() tea.Msg {
		record, err := config.NewInputParser().LoadRecord(path)
		if err != nil {
			return ErrorMsg{Err: err}
		}
		return RecordLoadedMsg{Record: record}
	}
}

func calculateCmd(calc *calculation.TaxCalculator, record domain.FinancialRecord, source string) tea.Cmd {
	return func() tea.Msg {
		report, err := calc.BuildReport(record, source)
		return CalculationCompleteMsg{Report: report, Err: err}
	}
}

// Report returns the most recent calculation, or nil.
func (m Model) Report() *domain.TaxReport {
	return m.report
}
