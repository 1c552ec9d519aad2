// Package clock abstracts time so timers can be driven deterministically in
// tests. Production code injects Real(); tests inject Fake().
package clock

import "time"

// Clock is the subset of the time package the task manager schedules with.
type Clock interface {
	// Now returns the current time.
	Now() time.Time

	// After returns a channel that receives the current time once d has
	// elapsed. If d <= 0 the channel is ready immediately.
	After(d time.Duration) <-chan time.Time

	// AfterFunc calls f once d has elapsed. The returned Timer cancels the
	// pending call. Real clocks call f on its own goroutine; the fake calls
	// it from Advance.
	AfterFunc(d time.Duration, f func()) *Timer
}

// Timer is a pending AfterFunc call.
type Timer struct {
	stopFunc func() bool
}

// Stop prevents the Timer from firing. Returns true if the call stops the
// timer, false if it already fired or was stopped.
func (t *Timer) Stop() bool { return t.stopFunc() }
