// Package autosave persists CV edits in the background after a quiet period.
package autosave

import (
	"sync"
	"time"
)

// Debouncer runs only the most recently scheduled function, once the delay
// has elapsed without another Schedule call. Runs never overlap.
type Debouncer struct {
	delay time.Duration

	// runMu is held while a function runs; claiming a function requires it
	runMu sync.Mutex

	mu    sync.Mutex
	timer *time.Timer
	fn    func()
	gen   uint64
}

// NewDebouncer creates a Debouncer with the given quiet period
func NewDebouncer(delay time.Duration) *Debouncer {
	return &Debouncer{delay: delay}
}

// Schedule replaces any pending function with fn and restarts the delay
func (d *Debouncer) Schedule(fn func()) {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.timer != nil {
		d.timer.Stop()
	}
	d.gen++
	gen := d.gen
	d.fn = fn
	d.timer = time.AfterFunc(d.delay, func() {
		d.runMu.Lock()
		defer d.runMu.Unlock()
		if run := d.take(gen); run != nil {
			run()
		}
	})
}

// Cancel drops the pending function and waits for a run already in
// progress. It reports whether a function was pending.
func (d *Debouncer) Cancel() bool {
	d.runMu.Lock()
	defer d.runMu.Unlock()

	d.mu.Lock()
	defer d.mu.Unlock()
	return d.clear() != nil
}

// Flush runs the pending function immediately on the caller's goroutine,
// after any run already in progress. It reports whether one was pending.
func (d *Debouncer) Flush() bool {
	d.runMu.Lock()
	defer d.runMu.Unlock()

	d.mu.Lock()
	fn := d.clear()
	d.mu.Unlock()

	if fn == nil {
		return false
	}
	fn()
	return true
}

// Pending reports whether a function is waiting to run
func (d *Debouncer) Pending() bool {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.fn != nil
}

// take claims the pending function if gen is still current.
// A timer that fires after being superseded finds a newer gen and does nothing.
func (d *Debouncer) take(gen uint64) func() {
	d.mu.Lock()
	defer d.mu.Unlock()
	if gen != d.gen {
		return nil
	}
	fn := d.fn
	d.fn = nil
	d.timer = nil
	return fn
}

// clear must be called with mu held
func (d *Debouncer) clear() func() {
	if d.timer != nil {
		d.timer.Stop()
		d.timer = nil
	}
	fn := d.fn
	d.fn = nil
	d.gen++
	return fn
}
