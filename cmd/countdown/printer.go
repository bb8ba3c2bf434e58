package main

import (
	"encoding/json"
	"fmt"
	"io"
	"sync"
	"time"

	"github.com/ensigniasec/countdown/internal/countdown"
)

// event is one line of --json output.
type event struct {
	Event       string `json:"event"`
	Display     string `json:"display"`
	RemainingMS int64  `json:"remaining_ms"`
	Title       string `json:"title,omitempty"`
	Message     string `json:"message,omitempty"`
}

// eventPrinter renders countdown notifications for headless runs. Unless all is
// set, ticks are thinned to one line per whole second of remaining time.
type eventPrinter struct {
	w    io.Writer
	json bool
	all  bool

	mu       sync.Mutex
	lastSecs int64
	err      error
}

func newEventPrinter(w io.Writer, asJSON, all bool) *eventPrinter {
	return &eventPrinter{w: w, json: asJSON, all: all}
}

func (p *eventPrinter) start(d time.Duration) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.lastSecs = ceilSeconds(d)
	p.emit(event{Event: "start", Display: countdown.Format(d), RemainingMS: d.Milliseconds()})
}

func (p *eventPrinter) tick(remaining time.Duration) {
	p.mu.Lock()
	defer p.mu.Unlock()
	secs := ceilSeconds(remaining)
	if !p.all && secs == p.lastSecs {
		return
	}
	p.lastSecs = secs
	p.emit(event{Event: "tick", Display: countdown.Format(remaining), RemainingMS: remaining.Milliseconds()})
}

func (p *eventPrinter) finish() {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.emit(event{
		Event:   "finished",
		Display: countdown.Format(0),
		Title:   "Timer Finished",
		Message: "Your countdown is over",
	})
}

func (p *eventPrinter) emit(e event) {
	if p.err != nil {
		return
	}
	if p.json {
		p.err = json.NewEncoder(p.w).Encode(e)
		return
	}
	if e.Event == "finished" {
		_, p.err = fmt.Fprintf(p.w, "%s\n%s: %s\n", e.Display, e.Title, e.Message)
		return
	}
	_, p.err = fmt.Fprintln(p.w, e.Display)
}

func ceilSeconds(d time.Duration) int64 {
	return int64((d + time.Second - 1) / time.Second)
}
