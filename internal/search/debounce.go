package search

import (
	"sync"
	"time"
)

// DefaultDelay is the trailing-edge debounce window for interactive queries.
const DefaultDelay = 300 * time.Millisecond

// Timer is a pending scheduled call.
type Timer interface {
	// Stop prevents the call from running. It reports false if the call
	// already ran or was stopped.
	Stop() bool
}

// Scheduler runs f once after d has elapsed.
type Scheduler interface {
	AfterFunc(d time.Duration, f func()) Timer
}

// SystemScheduler schedules on the wall clock.
type SystemScheduler struct{}

// AfterFunc wraps time.AfterFunc.
func (SystemScheduler) AfterFunc(d time.Duration, f func()) Timer {
	return time.AfterFunc(d, f)
}

// Debouncer collapses bursts of triggers into a single trailing call. Every
// Trigger or Cancel advances a generation counter; a scheduled call receives
// the generation it was issued under and can check IsCurrent before
// publishing, so results from superseded requests are discarded even if the
// work completes out of order.
type Debouncer struct {
	mu      sync.Mutex
	delay   time.Duration
	sched   Scheduler
	gen     uint64
	pending Timer
}

// NewDebouncer creates a Debouncer. A non-positive delay uses DefaultDelay and
// a nil scheduler uses the wall clock.
func NewDebouncer(delay time.Duration, sched Scheduler) *Debouncer {
	if delay <= 0 {
		delay = DefaultDelay
	}
	if sched == nil {
		sched = SystemScheduler{}
	}
	return &Debouncer{delay: delay, sched: sched}
}

// Delay returns the debounce window.
func (d *Debouncer) Delay() time.Duration {
	return d.delay
}

// Trigger cancels any pending call and schedules fn to run after the delay.
// It returns the generation assigned to this request.
func (d *Debouncer) Trigger(fn func(gen uint64)) uint64 {
	d.mu.Lock()
	defer d.mu.Unlock()

	d.gen++
	gen := d.gen
	if d.pending != nil {
		d.pending.Stop()
	}
	d.pending = d.sched.AfterFunc(d.delay, func() { fn(gen) })
	return gen
}

// Cancel stops any pending call and invalidates outstanding generations.
// It returns the new current generation.
func (d *Debouncer) Cancel() uint64 {
	d.mu.Lock()
	defer d.mu.Unlock()

	d.gen++
	if d.pending != nil {
		d.pending.Stop()
		d.pending = nil
	}
	return d.gen
}

// IsCurrent reports whether gen is the latest issued generation.
func (d *Debouncer) IsCurrent(gen uint64) bool {
	d.mu.Lock()
	defer d.mu.Unlock()
	return gen == d.gen
}

// Generation returns the latest issued generation.
func (d *Debouncer) Generation() uint64 {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.gen
}
