package clock

import (
	"sync"
	"time"
)

// Fake returns a FakeClock initialized to the given time. Time stands still
// until Advance is called.
func Fake(initial time.Time) *FakeClock {
	return &FakeClock{current: initial}
}

// FakeClock is a deterministic Clock for testing. It is safe for concurrent
// use. AfterFunc callbacks run synchronously inside Advance, in deadline
// order, with Now reporting each callback's own deadline. A callback that
// schedules another AfterFunc within the advanced window is fired by the same
// Advance, so a one-second chain fires three times in Advance(3*time.Second).
//
// Do not call Advance from within a callback.
type FakeClock struct {
	mu      sync.Mutex
	current time.Time
	seq     uint64
	waiters []*fakeWaiter
}

type fakeWaiter struct {
	deadline time.Time
	seq      uint64
	callback func()
	channel  chan time.Time
	stopped  bool
	fired    bool
}

// Now returns the current fake time.
func (c *FakeClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.current
}

// After returns a channel that receives once the clock passes now+d.
func (c *FakeClock) After(d time.Duration) <-chan time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()

	channel := make(chan time.Time, 1)
	if d <= 0 {
		channel <- c.current
		return channel
	}
	c.addLocked(&fakeWaiter{deadline: c.current.Add(d), channel: channel})
	return channel
}

// AfterFunc schedules f for now+d. If d <= 0, f runs before AfterFunc returns.
func (c *FakeClock) AfterFunc(d time.Duration, f func()) *Timer {
	if d <= 0 {
		f()
		return &Timer{stopFunc: func() bool { return false }}
	}

	c.mu.Lock()
	waiter := &fakeWaiter{deadline: c.current.Add(d), callback: f}
	c.addLocked(waiter)
	c.mu.Unlock()

	return &Timer{stopFunc: func() bool {
		c.mu.Lock()
		defer c.mu.Unlock()
		if waiter.stopped || waiter.fired {
			return false
		}
		waiter.stopped = true
		return true
	}}
}

// Advance moves the clock forward by d, firing every waiter whose deadline
// falls inside the window, one at a time.
func (c *FakeClock) Advance(d time.Duration) {
	c.mu.Lock()
	target := c.current.Add(d)
	c.mu.Unlock()

	for {
		waiter := c.popNext(target)
		if waiter == nil {
			break
		}
		if waiter.callback != nil {
			waiter.callback()
		} else {
			select {
			case waiter.channel <- waiter.deadline:
			default:
			}
		}
	}

	c.mu.Lock()
	if target.After(c.current) {
		c.current = target
	}
	c.mu.Unlock()
}

// PendingCount returns the number of waiters that have neither fired nor
// been stopped.
func (c *FakeClock) PendingCount() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	count := 0
	for _, waiter := range c.waiters {
		if !waiter.stopped && !waiter.fired {
			count++
		}
	}
	return count
}

func (c *FakeClock) addLocked(waiter *fakeWaiter) {
	c.seq++
	waiter.seq = c.seq
	c.waiters = append(c.waiters, waiter)
}

// popNext removes the earliest live waiter due at or before target, moves
// the clock to its deadline, and returns it. Ties fire in registration order.
func (c *FakeClock) popNext(target time.Time) *fakeWaiter {
	c.mu.Lock()
	defer c.mu.Unlock()

	next := -1
	live := c.waiters[:0]
	for _, waiter := range c.waiters {
		if waiter.stopped {
			continue
		}
		live = append(live, waiter)
	}
	c.waiters = live

	for i, waiter := range c.waiters {
		if waiter.deadline.After(target) {
			continue
		}
		if next < 0 || waiter.deadline.Before(c.waiters[next].deadline) ||
			(waiter.deadline.Equal(c.waiters[next].deadline) && waiter.seq < c.waiters[next].seq) {
			next = i
		}
	}
	if next < 0 {
		return nil
	}

	waiter := c.waiters[next]
	c.waiters = append(c.waiters[:next], c.waiters[next+1:]...)
	waiter.fired = true
	if waiter.deadline.After(c.current) {
		c.current = waiter.deadline
	}
	return waiter
}
