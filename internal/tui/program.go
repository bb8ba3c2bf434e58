package tui

import (
	"context"
	"io"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/sirupsen/logrus"

	"github.com/ensigniasec/countdown/internal/countdown"
	"github.com/ensigniasec/countdown/internal/picker"
)

// programObserver forwards engine notifications into the Bubble Tea update loop,
// so countdown state is only ever rendered from the program goroutine.
type programObserver struct {
	send func(tea.Msg)
}

func (o programObserver) OnTick(remaining time.Duration) {
	o.send(tickMsg{Remaining: remaining})
}

func (o programObserver) OnFinish() {
	o.send(finishedMsg{})
}

// Run starts the Bubble Tea TUI program around engine. wrap, when non-nil,
// decorates the observer the program installs (e.g. for metrics).
func Run(ctx context.Context, engine *countdown.Countdown, sel picker.Selection, wrap func(countdown.Observer) countdown.Observer) error {
	model := NewModel(engine, sel)
	p := tea.NewProgram(model, tea.WithAltScreen(), tea.WithContext(ctx))

	var obs countdown.Observer = programObserver{send: p.Send}
	if wrap != nil {
		obs = wrap(obs)
	}
	engine.SetObserver(obs)
	// Tear-down: detach first so a late tick cannot reach a stopped program.
	defer func() {
		engine.SetObserver(nil)
		engine.Reset()
	}()

	// Silence external logs during TUI to avoid corrupting the view.
	prevOut := logrus.StandardLogger().Out
	logrus.SetOutput(io.Discard)
	defer logrus.SetOutput(prevOut)

	// Run TUI blocking in this goroutine.
	_, err := p.Run()
	return err
}
