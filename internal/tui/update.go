package tui

import (
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/ensigniasec/countdown/internal/countdown"
)

// Update implements tea.Model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) { // nolint:ireturn
	switch x := msg.(type) {
	case tea.WindowSizeMsg:
		m.width, m.height = x.Width, x.Height
		m.progress.Width = max(min(x.Width-progressPadding, progressMaxWidth), 1)
		m.help.Width = x.Width
		return m, nil

	case tea.KeyMsg:
		var cmd tea.Cmd
		m, cmd = m.handleKey(x)
		return m, cmd

	case tickMsg:
		// The label reads the engine directly; the tick only triggers a redraw.
		return m, nil

	case finishedMsg:
		// A finish queued behind a reset must not raise the alert over a reset timer.
		m.alertVisible = m.engine.State() == countdown.Finished
		return m, nil
	}

	return m, nil
}

// handleKey processes key bindings and returns updated model and command.
func (m Model) handleKey(msg tea.KeyMsg) (Model, tea.Cmd) { // nolint:ireturn
	if key.Matches(msg, m.keys.Quit) {
		m.quitting = true
		return m, tea.Quit
	}

	// The alert is modal: only its dismiss action (and quit) get through.
	if m.alertVisible {
		if key.Matches(msg, m.keys.Dismiss) {
			m.alertVisible = false
		}
		return m, nil
	}

	switch {
	case key.Matches(msg, m.keys.Help):
		m.help.ShowAll = !m.help.ShowAll
		return m, nil

	case key.Matches(msg, m.keys.Start):
		if m.pickerLocked() {
			return m, nil
		}
		return m, m.startCmd()

	case key.Matches(msg, m.keys.Reset):
		m.engine.Reset()
		return m, nil
	}

	if m.pickerLocked() {
		return m, nil
	}

	before := m.picker.Selection
	switch {
	case key.Matches(msg, m.keys.Up):
		m.picker = m.picker.Up()
	case key.Matches(msg, m.keys.Down):
		m.picker = m.picker.Down()
	case key.Matches(msg, m.keys.Left):
		m.picker = m.picker.Left()
	case key.Matches(msg, m.keys.Right):
		m.picker = m.picker.Right()
	}
	if m.picker.Selection != before {
		m.engine.SetDuration(m.picker.Selection.Duration())
	}
	return m, nil
}
