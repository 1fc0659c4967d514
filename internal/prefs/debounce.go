package prefs

import (
	"sync"
	"time"
)

// DefaultDebounce is the trailing-edge delay used for preference writes.
// Interactive filter toggling can fire many times per second; coalescing
// keeps that from amplifying into a write per keystroke.
const DefaultDebounce = 300 * time.Millisecond

// Debouncer coalesces rapid successive calls into one invocation of fn,
// fired on the trailing edge: each Trigger resets the timer, and fn runs
// once the calls stop for the configured delay.
type Debouncer struct {
	delay time.Duration
	fn    func()

	mu      sync.Mutex
	timer   *time.Timer
	pending bool
}

// NewDebouncer creates a Debouncer that runs fn after delay has elapsed
// without another Trigger.
func NewDebouncer(delay time.Duration, fn func()) *Debouncer {
	if delay <= 0 {
		delay = DefaultDebounce
	}
	return &Debouncer{delay: delay, fn: fn}
}

// Trigger schedules (or reschedules) the pending invocation.
func (d *Debouncer) Trigger() {
	d.mu.Lock()
	defer d.mu.Unlock()

	d.pending = true
	if d.timer != nil {
		d.timer.Stop()
	}
	d.timer = time.AfterFunc(d.delay, d.fire)
}

// Flush runs any pending invocation immediately. Call on shutdown so a
// just-toggled preference is not lost to the timer.
func (d *Debouncer) Flush() {
	d.fire()
}

// Stop cancels any pending invocation without running it.
func (d *Debouncer) Stop() {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.timer != nil {
		d.timer.Stop()
		d.timer = nil
	}
	d.pending = false
}

func (d *Debouncer) fire() {
	d.mu.Lock()
	if !d.pending {
		d.mu.Unlock()
		return
	}
	d.pending = false
	if d.timer != nil {
		d.timer.Stop()
		d.timer = nil
	}
	d.mu.Unlock()

	d.fn()
}
