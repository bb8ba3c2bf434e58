package tui

import (
	"testing"
	"time"

	"github.com/benbjohnson/clock"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ensigniasec/countdown/internal/countdown"
	"github.com/ensigniasec/countdown/internal/picker"
)

func keyRunes(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func update(t *testing.T, m Model, msg tea.Msg) (Model, tea.Cmd) {
	t.Helper()
	next, cmd := m.Update(msg)
	out, ok := next.(Model)
	require.True(t, ok)
	return out, cmd
}

// newTestModel wires a mock-clock engine whose notifications are captured as tea messages.
func newTestModel(t *testing.T, sel picker.Selection) (Model, *clock.Mock, chan tea.Msg) {
	t.Helper()
	mock := clock.NewMock()
	engine := countdown.New(countdown.WithClock(mock))
	msgs := make(chan tea.Msg, 64)
	engine.SetObserver(programObserver{send: func(msg tea.Msg) { msgs <- msg }})
	t.Cleanup(engine.Reset)
	return NewModel(engine, sel), mock, msgs
}

func nextMsg(t *testing.T, msgs chan tea.Msg) tea.Msg {
	t.Helper()
	select {
	case msg := <-msgs:
		return msg
	case <-time.After(2 * time.Second):
		t.Fatal("timed out waiting for engine message")
		return nil
	}
}

func TestNewModel_LoadsPickerDuration(t *testing.T) {
	m, _, _ := newTestModel(t, picker.Default())
	assert.Equal(t, 90*time.Second, m.engine.Duration())
	assert.Equal(t, 90*time.Second, m.displayTime())
	assert.Contains(t, m.View(), "00:01:30.00")
}

func TestUpdate_PickerChangesDuration(t *testing.T) {
	m, _, _ := newTestModel(t, picker.Default())

	m, _ = update(t, m, tea.KeyMsg{Type: tea.KeyUp})
	assert.Equal(t, 150*time.Second, m.engine.Duration())

	m, _ = update(t, m, tea.KeyMsg{Type: tea.KeyRight})
	m, _ = update(t, m, keyRunes("j"))
	assert.Equal(t, picker.Selection{Minutes: 2, Seconds: 29}, m.picker.Selection)
	assert.Equal(t, 149*time.Second, m.engine.Duration())
	assert.Contains(t, m.View(), "00:02:29.00")
}

func TestUpdate_StartTickFinishAndDismiss(t *testing.T) {
	m, mock, msgs := newTestModel(t, picker.Selection{Seconds: 1})

	m, cmd := update(t, m, keyRunes(" "))
	require.NotNil(t, cmd)
	assert.Nil(t, cmd())
	require.Equal(t, countdown.Started, m.engine.State())

	// Picker is locked while running.
	m, _ = update(t, m, tea.KeyMsg{Type: tea.KeyUp})
	assert.Equal(t, picker.Selection{Seconds: 1}, m.picker.Selection)
	assert.Equal(t, time.Second, m.engine.Duration())

	mock.Add(countdown.DefaultTickInterval)
	msg := nextMsg(t, msgs)
	tick, ok := msg.(tickMsg)
	require.True(t, ok)
	assert.Equal(t, 900*time.Millisecond, tick.Remaining)
	m, _ = update(t, m, msg)
	assert.Contains(t, m.View(), "00:00:00.90")

	mock.Add(time.Second)
	for {
		msg = nextMsg(t, msgs)
		if _, done := msg.(finishedMsg); done {
			break
		}
	}
	m, _ = update(t, m, msg)
	require.True(t, m.alertVisible)
	view := m.View()
	assert.Contains(t, view, alertTitle)
	assert.Contains(t, view, alertMessage)

	// Modal: other keys are swallowed.
	m, _ = update(t, m, keyRunes("r"))
	require.True(t, m.alertVisible)
	require.Equal(t, countdown.Finished, m.engine.State())

	m, _ = update(t, m, tea.KeyMsg{Type: tea.KeyEnter})
	require.False(t, m.alertVisible)
	assert.Contains(t, m.View(), "00:00:00.00")
}

func TestUpdate_ZeroDurationStartFinishesViaCmd(t *testing.T) {
	m, _, msgs := newTestModel(t, picker.Selection{})

	m, cmd := update(t, m, keyRunes("s"))
	require.NotNil(t, cmd)
	cmd()

	msg := nextMsg(t, msgs)
	_, ok := msg.(finishedMsg)
	require.True(t, ok)
	m, _ = update(t, m, msg)
	assert.True(t, m.alertVisible)
	assert.Equal(t, countdown.Finished, m.engine.State())
}

func TestUpdate_ResetRestoresDuration(t *testing.T) {
	m, mock, msgs := newTestModel(t, picker.Selection{Seconds: 5})
	_, cmd := update(t, m, keyRunes(" "))
	cmd()
	mock.Add(countdown.DefaultTickInterval)
	nextMsg(t, msgs)

	m, _ = update(t, m, keyRunes("r"))
	assert.Equal(t, countdown.Reset, m.engine.State())
	assert.Equal(t, 5*time.Second, m.displayTime())
	assert.InDelta(t, 1.0, m.remainingFraction(), 1e-9)

	// Picker is unlocked again.
	m, _ = update(t, m, tea.KeyMsg{Type: tea.KeyUp})
	assert.Equal(t, 65*time.Second, m.engine.Duration())
}

func TestUpdate_StartWhileRunningIsIgnored(t *testing.T) {
	m, _, _ := newTestModel(t, picker.Selection{Seconds: 5})
	m, cmd := update(t, m, keyRunes(" "))
	cmd()
	run := m.engine.RunID()

	_, cmd = update(t, m, keyRunes(" "))
	assert.Nil(t, cmd)
	assert.Equal(t, run, m.engine.RunID())
}

func TestUpdate_HelpAndQuit(t *testing.T) {
	m, _, _ := newTestModel(t, picker.Default())

	m, _ = update(t, m, keyRunes("?"))
	assert.True(t, m.help.ShowAll)

	m, _ = update(t, m, tea.WindowSizeMsg{Width: 100, Height: 30})
	assert.Equal(t, progressMaxWidth, m.progress.Width)

	m, cmd := update(t, m, keyRunes("q"))
	require.NotNil(t, cmd)
	assert.True(t, m.quitting)
	assert.IsType(t, tea.QuitMsg{}, cmd())
	assert.Equal(t, "Shutting down...\n", m.View())
}

func TestModel_RemainingFraction(t *testing.T) {
	m, mock, msgs := newTestModel(t, picker.Selection{Seconds: 2})
	assert.InDelta(t, 1.0, m.remainingFraction(), 1e-9)

	_, cmd := update(t, m, keyRunes(" "))
	cmd()
	mock.Add(time.Second)
	for m.engine.TimeRemaining() != time.Second {
		nextMsg(t, msgs)
	}
	assert.InDelta(t, 0.5, m.remainingFraction(), 1e-9)
}

func TestUpdate_FinishQueuedBehindResetKeepsAlertHidden(t *testing.T) {
	m, mock, msgs := newTestModel(t, picker.Selection{Seconds: 1})
	_, cmd := update(t, m, keyRunes(" "))
	cmd()

	mock.Add(2 * time.Second)
	var finish tea.Msg
	for finish == nil {
		if msg := nextMsg(t, msgs); msg == (finishedMsg{}) {
			finish = msg
		}
	}

	// The user resets before the queued finish reaches the update loop.
	m, _ = update(t, m, keyRunes("r"))
	m, _ = update(t, m, finish)
	assert.False(t, m.alertVisible)
	assert.Equal(t, countdown.Reset, m.engine.State())
	assert.Contains(t, m.View(), "00:00:01.00")
}
