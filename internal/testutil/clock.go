package testutil

import (
	"sort"
	"sync"
	"time"

	"github.com/HerbHall/kartstats/internal/search"
)

// Compile-time interface guard.
var _ search.Scheduler = (*Clock)(nil)

// Clock provides a controllable time source for tests. It also acts as a
// search.Scheduler: timers registered with AfterFunc fire during Advance.
type Clock struct {
	mu     sync.Mutex
	now    time.Time
	timers []*fakeTimer
}

// NewClock returns a Clock initialized to the given time.
// If no time is provided, it defaults to a fixed point:
// 2025-01-01 00:00:00 UTC.
func NewClock(now ...time.Time) *Clock {
	t := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	if len(now) > 0 {
		t = now[0]
	}
	return &Clock{now: t}
}

// Now returns the clock's current time.
func (c *Clock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

// Advance moves the clock forward by d and synchronously runs every timer
// whose deadline has been reached, in deadline order.
func (c *Clock) Advance(d time.Duration) {
	c.mu.Lock()
	c.now = c.now.Add(d)
	due := c.dueLocked()
	c.mu.Unlock()

	for _, t := range due {
		t.fn()
	}
}

// Set overrides the clock's current time. Timers are not fired.
func (c *Clock) Set(t time.Time) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = t
}

// AfterFunc registers fn to run once the clock has advanced by d.
func (c *Clock) AfterFunc(d time.Duration, fn func()) search.Timer {
	c.mu.Lock()
	defer c.mu.Unlock()
	t := &fakeTimer{clock: c, deadline: c.now.Add(d), fn: fn}
	c.timers = append(c.timers, t)
	return t
}

// Pending returns the number of timers that have not fired or been stopped.
func (c *Clock) Pending() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.timers)
}

func (c *Clock) dueLocked() []*fakeTimer {
	var due, keep []*fakeTimer
	for _, t := range c.timers {
		if !t.deadline.After(c.now) {
			due = append(due, t)
		} else {
			keep = append(keep, t)
		}
	}
	c.timers = keep
	sort.SliceStable(due, func(a, b int) bool {
		return due[a].deadline.Before(due[b].deadline)
	})
	return due
}

type fakeTimer struct {
	clock    *Clock
	deadline time.Time
	fn       func()
}

// Stop removes the timer. It reports whether the timer was still pending.
func (t *fakeTimer) Stop() bool {
	c := t.clock
	c.mu.Lock()
	defer c.mu.Unlock()
	for i, other := range c.timers {
		if other == t {
			c.timers = append(c.timers[:i], c.timers[i+1:]...)
			return true
		}
	}
	return false
}
