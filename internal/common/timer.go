// Package common provides shared timing utilities.
package common

import (
	"fmt"
	"time"
)

// Timer measures elapsed wall time with optional naming, used for solve
// and warp duration logging and metrics.
type Timer struct {
	start    time.Time
	name     string
	duration time.Duration
}

// NewTimer creates a new timer.
func NewTimer() *Timer {
	return &Timer{start: time.Now()}
}

// NewNamedTimer creates a new timer with the given name.
func NewNamedTimer(name string) *Timer {
	return &Timer{
		name:  name,
		start: time.Now(),
	}
}

// Stop stops the timer and returns the elapsed duration.
func (t *Timer) Stop() time.Duration {
	t.duration = time.Since(t.start)
	return t.duration
}

// Duration returns the recorded duration (only valid after Stop()).
func (t *Timer) Duration() time.Duration {
	return t.duration
}

// Name returns the timer name (empty string if unnamed).
func (t *Timer) Name() string {
	return t.name
}

// String returns "name: duration" for named timers, "duration" otherwise.
func (t *Timer) String() string {
	if t.name == "" {
		return t.duration.String()
	}
	return fmt.Sprintf("%s: %s", t.name, t.duration)
}
