package tui

import (
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/progress"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/ensigniasec/countdown/internal/countdown"
	"github.com/ensigniasec/countdown/internal/picker"
)

// Model is the root Bubble Tea model.
type Model struct {
	engine *countdown.Countdown
	picker picker.Picker

	progress progress.Model
	help     help.Model
	keys     keyMap

	width  int
	height int

	// alertVisible is set once per finished run and cleared by Dismiss or Reset.
	alertVisible bool
	quitting     bool
}

// NewModel constructs a Model around engine, positioning the picker on sel and
// loading its duration into the engine.
func NewModel(engine *countdown.Countdown, sel picker.Selection) Model {
	p := picker.New(sel)
	engine.SetDuration(p.Selection.Duration())
	return Model{
		engine:   engine,
		picker:   p,
		progress: progress.New(progress.WithDefaultGradient(), progress.WithoutPercentage()),
		help:     help.New(),
		keys:     newKeyMap(),
	}
}

// Init implements tea.Model.
func (m Model) Init() tea.Cmd {
	return nil
}

// displayTime is the span shown in the time label for the current state.
func (m Model) displayTime() time.Duration {
	switch m.engine.State() {
	case countdown.Started:
		return m.engine.TimeRemaining()
	case countdown.Finished:
		return 0
	default:
		return m.engine.Duration()
	}
}

// remainingFraction drives the progress bar: full when reset, empty when finished.
func (m Model) remainingFraction() float64 {
	switch m.engine.State() {
	case countdown.Started:
		total := m.engine.Duration()
		if total <= 0 {
			return 0
		}
		return float64(m.engine.TimeRemaining()) / float64(total)
	case countdown.Finished:
		return 0
	default:
		return 1
	}
}

// pickerLocked reports whether duration selection is disabled.
func (m Model) pickerLocked() bool {
	return m.engine.State() == countdown.Started
}

// startCmd starts the engine off the update loop: a zero duration finishes
// synchronously and its notification must not be sent from inside Update.
func (m Model) startCmd() tea.Cmd {
	engine := m.engine
	return func() tea.Msg {
		engine.Start()
		return nil
	}
}
