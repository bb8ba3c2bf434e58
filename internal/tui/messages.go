package tui

import "time"

// Message types for Bubble Tea update loop.

// tickMsg carries a countdown tick from the engine goroutine.
type tickMsg struct{ Remaining time.Duration }

// finishedMsg signals that the countdown reached zero.
type finishedMsg struct{}
