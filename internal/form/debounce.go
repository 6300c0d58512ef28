package form

import (
	"sync"
	"time"
)

// Debouncer runs the most recently scheduled task once the quiescence
// window has elapsed without a newer call to Schedule. Each schedule bumps a
// generation counter; a timer whose generation is stale does nothing.
type Debouncer struct {
	window time.Duration

	mu      sync.Mutex
	gen     uint64
	timer   *time.Timer
	pending func()
}

// NewDebouncer creates a debouncer with the given quiescence window
func NewDebouncer(window time.Duration) *Debouncer {
	return &Debouncer{window: window}
}

// Schedule replaces any pending task with task
func (d *Debouncer) Schedule(task func()) {
	d.mu.Lock()
	defer d.mu.Unlock()

	d.gen++
	gen := d.gen
	if d.timer != nil {
		d.timer.Stop()
	}
	d.pending = task
	d.timer = time.AfterFunc(d.window, func() { d.fire(gen) })
}

func (d *Debouncer) fire(gen uint64) {
	d.mu.Lock()
	if gen != d.gen || d.pending == nil {
		d.mu.Unlock()
		return
	}
	task := d.pending
	d.pending = nil
	d.timer = nil
	d.mu.Unlock()

	task()
}

// Cancel drops the pending task, if any
func (d *Debouncer) Cancel() {
	d.mu.Lock()
	defer d.mu.Unlock()

	d.gen++
	if d.timer != nil {
		d.timer.Stop()
		d.timer = nil
	}
	d.pending = nil
}

// Flush runs the pending task immediately on the calling goroutine.
// It reports whether a task was run.
func (d *Debouncer) Flush() bool {
	d.mu.Lock()
	task := d.pending
	d.gen++
	if d.timer != nil {
		d.timer.Stop()
		d.timer = nil
	}
	d.pending = nil
	d.mu.Unlock()

	if task == nil {
		return false
	}
	task()
	return true
}

// Pending reports whether a task is waiting for its window to elapse
func (d *Debouncer) Pending() bool {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.pending != nil
}
