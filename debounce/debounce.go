// Package debounce coalesces rapid triggers into a single execution, used
// to avoid re-filtering the repository list on every keystroke.
package debounce

import (
	"sync"
	"time"
)

// DefaultDelay suits keystroke-driven filtering
const DefaultDelay = 300 * time.Millisecond

// Debouncer runs the most recently submitted function once the delay has
// elapsed without a newer trigger. Each trigger cancels the pending timer.
type Debouncer struct {
	mu    sync.Mutex
	delay time.Duration
	timer *time.Timer
}

// New creates a debouncer with the given delay
func New(delay time.Duration) *Debouncer {
	return &Debouncer{delay: delay}
}

// Trigger schedules fn, replacing any pending execution
func (d *Debouncer) Trigger(fn func()) {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.timer != nil {
		d.timer.Stop()
	}

	d.timer = time.AfterFunc(d.delay, fn)
}

// Stop cancels any pending execution
func (d *Debouncer) Stop() {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.timer != nil {
		d.timer.Stop()
		d.timer = nil
	}
}
