package domain

import (
	"time"

	"github.com/jonboulle/clockwork"
)

// clock is the time source for stage timing and report timestamps.
var clock = clockwork.NewRealClock()

// SetClock swaps the time source. Pass nil to reset to real time.
func SetClock(c clockwork.Clock) {
	if c == nil {
		clock = clockwork.NewRealClock()
		return
	}
	clock = c
}

// Now returns the current time from the configured clock.
func Now() time.Time {
	return clock.Now()
}

// Since returns the time elapsed since t on the configured clock.
func Since(t time.Time) time.Duration {
	return clock.Since(t)
}
