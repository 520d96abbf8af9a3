// Package watcher reloads the card content when its file changes on disk.
package watcher

import (
	"sync"
	"time"
)

// DefaultDebounceDuration is the default debounce window. Editors often
// write a file in several steps; one reload per burst is enough.
const DefaultDebounceDuration = 150 * time.Millisecond

// Debouncer runs fire once after Trigger stops being called for the debounce
// duration.
type Debouncer struct {
	duration time.Duration
	fire     func()

	mu    sync.Mutex
	timer *time.Timer
	seq   uint64
}

// NewDebouncer creates a Debouncer that calls fire. If duration is 0,
// DefaultDebounceDuration is used.
func NewDebouncer(duration time.Duration, fire func()) *Debouncer {
	if duration <= 0 {
		duration = DefaultDebounceDuration
	}
	return &Debouncer{
		duration: duration,
		fire:     fire,
	}
}

// Trigger (re)starts the debounce window.
func (d *Debouncer) Trigger() {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.seq++
	seq := d.seq

	if d.timer != nil {
		d.timer.Stop()
	}
	d.timer = time.AfterFunc(d.duration, func() {
		d.mu.Lock()
		// A timer that fired while being replaced must not run.
		stale := seq != d.seq
		if !stale {
			d.timer = nil
		}
		d.mu.Unlock()

		if !stale {
			d.fire()
		}
	})
}

// Stop cancels any pending call.
func (d *Debouncer) Stop() {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.seq++
	if d.timer != nil {
		d.timer.Stop()
		d.timer = nil
	}
}

// Duration returns the debounce duration.
func (d *Debouncer) Duration() time.Duration {
	return d.duration
}
