// Package countdown implements the countdown engine: a three-state timer that
// ticks at a fixed interval and reports to a single observer.
package countdown

import (
	"sync"
	"time"

	"github.com/benbjohnson/clock"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

// DefaultTickInterval is fine enough for a hundredths-of-a-second display.
const DefaultTickInterval = 100 * time.Millisecond

// Countdown holds the configured duration, the remaining time and the lifecycle
// state. It is safe for concurrent use; observer callbacks run on the tick
// goroutine without the lock held.
type Countdown struct {
	clock    clock.Clock
	interval time.Duration
	log      *logrus.Entry

	mu        sync.Mutex
	duration  time.Duration
	remaining time.Duration
	state     State
	observer  Observer
	// attached records that the current run has had an observer at some point.
	attached  bool
	startedAt time.Time
	runID     uuid.UUID

	// stop is owned by the engine and closed on every transition out of Started.
	stop chan struct{}
}

// Option configures a Countdown.
type Option func(*Countdown)

// WithClock sets the time source used for tick scheduling and elapsed time.
func WithClock(c clock.Clock) Option {
	return func(cd *Countdown) {
		if c != nil {
			cd.clock = c
		}
	}
}

// WithTickInterval overrides DefaultTickInterval. Non-positive values are ignored.
func WithTickInterval(d time.Duration) Option {
	return func(cd *Countdown) {
		if d > 0 {
			cd.interval = d
		}
	}
}

// WithLogger sets the logger used for lifecycle events.
func WithLogger(l *logrus.Entry) Option {
	return func(cd *Countdown) {
		if l != nil {
			cd.log = l
		}
	}
}

// New returns a Countdown in the Reset state with a zero duration.
func New(opts ...Option) *Countdown {
	cd := &Countdown{
		clock:    clock.New(),
		interval: DefaultTickInterval,
		log:      logrus.NewEntry(logrus.StandardLogger()),
		state:    Reset,
	}
	for _, opt := range opts {
		opt(cd)
	}
	return cd
}

// Duration returns the configured countdown length.
func (c *Countdown) Duration() time.Duration {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.duration
}

// TimeRemaining returns the live remaining time.
func (c *Countdown) TimeRemaining() time.Duration {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.remaining
}

// State returns the current lifecycle state.
func (c *Countdown) State() State {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state
}

// RunID identifies the most recent started run; uuid.Nil before the first Start.
func (c *Countdown) RunID() uuid.UUID {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.runID
}

// SetObserver replaces the observer. Passing nil detaches it: a run that had an
// observer then cancels itself on the next tick and returns to Reset. A run
// started without any observer keeps counting down to Finished silently.
func (c *Countdown) SetObserver(o Observer) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.observer = o
	if o != nil && c.state == Started {
		c.attached = true
	}
}

// SetDuration sets the countdown length. Negative values clamp to zero.
// The call is ignored while the countdown is running.
func (c *Countdown) SetDuration(d time.Duration) {
	if d < 0 {
		d = 0
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	switch c.state {
	case Started:
		c.log.WithField("duration", d).Debug("ignoring duration change while countdown is running")
		return
	case Reset:
		c.remaining = d
	case Finished:
		// remaining stays at zero until Reset or Start
	}
	c.duration = d
}

// Start begins counting down from the configured duration. It is a no-op while
// already started. A zero duration finishes immediately.
func (c *Countdown) Start() {
	c.mu.Lock()
	if c.state == Started {
		c.mu.Unlock()
		c.log.Debug("countdown already started")
		return
	}

	c.runID = uuid.New()
	c.remaining = c.duration
	log := c.log.WithFields(logrus.Fields{"run_id": c.runID.String(), "duration": c.duration})

	if c.duration == 0 {
		c.state = Finished
		obs := c.observer
		c.mu.Unlock()
		log.Debug("zero duration countdown finished immediately")
		if obs != nil {
			obs.OnFinish()
		}
		return
	}

	c.state = Started
	c.attached = c.observer != nil
	c.startedAt = c.clock.Now()
	stop := make(chan struct{})
	c.stop = stop
	ticker := c.clock.Ticker(c.interval)
	c.mu.Unlock()

	log.Debug("countdown started")
	go c.run(ticker, stop)
}

// Reset cancels any active ticking and restores the remaining time to the
// configured duration. It is safe to call from any state, including from an
// observer callback.
func (c *Countdown) Reset() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.resetLocked()
}

func (c *Countdown) resetLocked() {
	c.cancelLocked()
	c.remaining = c.duration
	c.state = Reset
}

func (c *Countdown) cancelLocked() {
	if c.stop != nil {
		close(c.stop)
		c.stop = nil
	}
}

// run drives one tick loop until it is cancelled or the countdown finishes.
func (c *Countdown) run(ticker *clock.Ticker, stop chan struct{}) {
	defer ticker.Stop()
	for {
		select {
		case <-stop:
			return
		case <-ticker.C:
			if !c.tick(stop) {
				return
			}
		}
	}
}

// tick advances the countdown and delivers the resulting notification.
// It reports whether the loop owning stop should keep running.
func (c *Countdown) tick(stop chan struct{}) bool {
	c.mu.Lock()
	if c.stop != stop || c.state != Started {
		c.mu.Unlock()
		return false
	}

	obs := c.observer
	if obs == nil && c.attached {
		c.resetLocked()
		c.mu.Unlock()
		c.log.Debug("observer detached, countdown cancelled")
		return false
	}

	remaining := c.duration - c.clock.Since(c.startedAt)
	if remaining > c.remaining {
		remaining = c.remaining
	}
	if remaining <= 0 {
		c.remaining = 0
		c.state = Finished
		c.cancelLocked()
		runID := c.runID
		c.mu.Unlock()
		c.log.WithField("run_id", runID.String()).Debug("countdown finished")
		if obs != nil {
			obs.OnFinish()
		}
		return false
	}
	c.remaining = remaining
	c.mu.Unlock()

	if obs != nil {
		obs.OnTick(remaining)
	}
	return true
}
