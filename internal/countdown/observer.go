package countdown

import "time"

// Observer receives countdown notifications.
//
// OnTick is delivered for every tick that leaves time on the clock. OnFinish is
// delivered exactly once per run, instead of a final zero tick. Both are called
// from the engine's tick goroutine (or from Start for a zero duration) and never
// while the engine lock is held.
type Observer interface {
	OnTick(remaining time.Duration)
	OnFinish()
}

// ObserverFuncs adapts plain functions to Observer. Nil fields are skipped.
type ObserverFuncs struct {
	Tick   func(remaining time.Duration)
	Finish func()
}

func (f ObserverFuncs) OnTick(remaining time.Duration) {
	if f.Tick != nil {
		f.Tick(remaining)
	}
}

func (f ObserverFuncs) OnFinish() {
	if f.Finish != nil {
		f.Finish()
	}
}
