package utils

import (
	"sync"
	"time"
)

// Debouncer runs only the last of a burst of calls, once the burst has
// been quiet for the given duration.
type Debouncer struct {
	mutex   sync.Mutex
	timer   *time.Timer
	stopped bool
}

// Debounce calls fn after duration, canceling any previous pending call.
func (d *Debouncer) Debounce(duration time.Duration, fn func()) {
	d.mutex.Lock()
	defer d.mutex.Unlock()

	if d.stopped {
		return
	}
	if d.timer != nil {
		d.timer.Stop()
	}
	d.timer = time.AfterFunc(duration, func() {
		d.mutex.Lock()
		d.timer = nil
		d.mutex.Unlock()
		fn()
	})
}

// Stop cancels a pending call and ignores later ones. It reports whether a
// call was pending.
func (d *Debouncer) Stop() bool {
	d.mutex.Lock()
	defer d.mutex.Unlock()
	d.stopped = true
	if d.timer == nil {
		return false
	}
	pending := d.timer.Stop()
	d.timer = nil
	return pending
}
