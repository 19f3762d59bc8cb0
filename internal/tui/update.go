package tui

import (
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
)

// Update handles all messages and updates the model state.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKeyPress(msg)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case RecordLoadedMsg:
		m.base = msg.Record.DeepCopy()
		fillInputs(m.inputs, m.base)
		m.err = nil
		return m, m.submit()

	case CalculationCompleteMsg:
		if msg.Err != nil {
			m.err = msg.Err
			return m, nil
		}
		m.report = msg.Report
		m.err = nil
		m.stale = false
		return m, nil

	case ErrorMsg:
		m.err = msg.Err
		return m, nil
	}

	return m.updateFocused(msg)
}

func (m Model) handleKeyPress(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Quit):
		return m, tea.Quit

	case key.Matches(msg, m.keys.Next):
		return m, m.moveFocus(1)

	case key.Matches(msg, m.keys.Prev):
		return m, m.moveFocus(-1)

	case key.Matches(msg, m.keys.Calculate):
		return m, m.submit()

	case key.Matches(msg, m.keys.Reset):
		fillInputs(m.inputs, m.base)
		m.stale = true
		return m, nil
	}

	before := m.inputs[m.focus].Value()
	model, cmd := m.updateFocused(msg)
	updated := model.(Model)
	if updated.inputs[updated.focus].Value() != before {
		updated.stale = true
	}
	return updated, cmd
}

// moveFocus cycles focus through the inputs.
func (m *Model) moveFocus(delta int) tea.Cmd {
	m.inputs[m.focus].Blur()
	m.focus = (m.focus + delta + len(m.inputs)) % len(m.inputs)
	return m.inputs[m.focus].Focus()
}

// submit validates the form and starts a calculation. Parse errors are
// shown without calculating.
func (m *Model) submit() tea.Cmd {
	record, err := applyInputs(m.base, m.inputs)
	if err != nil {
		m.err = err
		return nil
	}
	m.err = nil
	return calculateCmd(m.calc, record, m.recordPath)
}

func (m Model) updateFocused(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd
	m.inputs[m.focus], cmd = m.inputs[m.focus].Update(msg)
	return m, cmd
}
