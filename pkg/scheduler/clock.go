package scheduler

import "time"

// Timer is an armed one-shot timer.
type Timer interface {
	// Stop cancels the timer and reports whether it was still pending.
	// A stopped timer's callback never runs; cancellation is a normal
	// stop, not a failure.
	Stop() bool
}

// TimerFactory arms one-shot timers. Production code uses WallTimers;
// tests inject a fake to fire ticks deterministically.
type TimerFactory interface {
	// AfterFunc arms a timer that calls fn in its own goroutine after d.
	AfterFunc(d time.Duration, fn func()) Timer
}

type wallTimers struct{}

func (wallTimers) AfterFunc(d time.Duration, fn func()) Timer {
	return time.AfterFunc(d, fn)
}

// WallTimers is the wall-clock TimerFactory.
var WallTimers TimerFactory = wallTimers{}
