package tui

import (
	"os"
	"path/filepath"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func typeText(t *testing.T, m Model, s string) Model {
	t.Helper()
	next, _ := m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)})
	return next.(Model)
}

func press(t *testing.T, m Model, k tea.KeyType) (Model, tea.Cmd) {
	t.Helper()
	next, cmd := m.Update(tea.KeyMsg{Type: k})
	return next.(Model), cmd
}

// runCmd executes cmd and feeds its message back into the model.
func runCmd(t *testing.T, m Model, cmd tea.Cmd) Model {
	t.Helper()
	require.NotNil(t, cmd)
	next, _ := m.Update(cmd())
	return next.(Model)
}

func fillForm(t *testing.T, m Model, values ...string) Model {
	t.Helper()
	for i, v := range values {
		if i > 0 {
			m, _ = press(t, m, tea.KeyTab)
		}
		m = typeText(t, m, v)
	}
	return m
}

func TestModel_TabCyclesFocus(t *testing.T) {
	m := NewModel("", nil)
	assert.Equal(t, 0, m.focus)

	m, _ = press(t, m, tea.KeyTab)
	assert.Equal(t, 1, m.focus)
	assert.True(t, m.inputs[1].Focused())
	assert.False(t, m.inputs[0].Focused())

	m, _ = press(t, m, tea.KeyShiftTab)
	m, _ = press(t, m, tea.KeyShiftTab)
	assert.Equal(t, len(formFields)-1, m.focus, "shift+tab wraps to the last field")
}

func TestModel_EnterCalculates(t *testing.T) {
	m := NewModel("", nil)
	m = fillForm(t, m, "1000000", "500000", "200000", "240000", "150000", "25000")
	assert.Equal(t, "1000000", m.inputs[0].Value())

	m, cmd := press(t, m, tea.KeyEnter)
	m = runCmd(t, m, cmd)

	require.NoError(t, m.err)
	require.NotNil(t, m.Report())
	d := m.Report().Details
	assert.True(t, decimal.NewFromInt(30680).Equal(d.OldRegime.TotalTax), d.OldRegime.TotalTax.String())
	assert.True(t, decimal.NewFromInt(54600).Equal(d.NewRegime.TotalTax), d.NewRegime.TotalTax.String())
	assert.False(t, m.stale)

	view := m.View()
	assert.Contains(t, view, "₹30,680")
	assert.Contains(t, view, "₹23,920")
	assert.Contains(t, view, "Recommendations")
}

func TestModel_EditMarksStale(t *testing.T) {
	m := NewModel("", nil)
	m = fillForm(t, m, "1000000", "500000")
	m, cmd := press(t, m, tea.KeyEnter)
	m = runCmd(t, m, cmd)
	require.False(t, m.stale)

	m = typeText(t, m, "0")

	assert.True(t, m.stale)
	assert.Contains(t, m.View(), "press enter to recalculate")
}

func TestModel_InvalidInputShowsError(t *testing.T) {
	m := NewModel("", nil)
	m = typeText(t, m, "12x")

	m, cmd := press(t, m, tea.KeyEnter)

	assert.Nil(t, cmd)
	require.Error(t, m.err)
	assert.Contains(t, m.err.Error(), "Gross salary")
	assert.Contains(t, m.View(), "Error:")
}

func TestModel_ValidationProblemsShown(t *testing.T) {
	m := NewModel("", nil)
	m = fillForm(t, m, "100000", "200000")

	m, cmd := press(t, m, tea.KeyEnter)
	m = runCmd(t, m, cmd)

	require.NotNil(t, m.Report())
	assert.False(t, m.Report().Validation.Valid)
	assert.Contains(t, m.View(), "Basic salary cannot be greater than gross salary")
}

func TestModel_Quit(t *testing.T) {
	m := NewModel("", nil)

	_, cmd := m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'q'}})
	require.NotNil(t, cmd)
	assert.IsType(t, tea.QuitMsg{}, cmd())

	_, cmd = press(t, m, tea.KeyCtrlC)
	require.NotNil(t, cmd)
	assert.IsType(t, tea.QuitMsg{}, cmd())
}

func TestModel_LoadsRecordFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "record.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
financial_year: "2024-25"
gross_salary: 1000000
basic_salary: 500000
tds: 60000
`), 0o644))

	m := NewModel(path, nil)
	msg := loadRecordCmd(path)()
	require.IsType(t, RecordLoadedMsg{}, msg)

	next, cmd := m.Update(msg)
	m = next.(Model)
	assert.Equal(t, "1000000", m.inputs[0].Value())
	assert.Equal(t, "60000", m.inputs[len(formFields)-1].Value())

	m = runCmd(t, m, cmd)
	require.NotNil(t, m.Report())
	assert.Equal(t, path, m.Report().Source)
	assert.Contains(t, m.View(), "Refund due")

	m.inputs[0].SetValue("5")
	m, _ = press(t, m, tea.KeyCtrlR)
	assert.Equal(t, "1000000", m.inputs[0].Value(), "reset restores the loaded figures")
}

func TestModel_LoadError(t *testing.T) {
	m := NewModel("", nil)
	msg := loadRecordCmd(filepath.Join(t.TempDir(), "missing.yaml"))()

	next, _ := m.Update(msg)

	assert.Error(t, next.(Model).err)
	assert.Contains(t, next.(Model).View(), "failed to read file")
}
