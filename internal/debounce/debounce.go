// Package debounce collapses bursts of calls into a single trailing call.
package debounce

import (
	"sync"
	"time"
)

// Func wraps fn so that rapid calls collapse into one call made after delay
// of quiet. Only the last call's argument is used. There is no leading-edge
// call and no maximum wait.
type Func[T any] struct {
	delay time.Duration
	fn    func(T)

	mu    sync.Mutex
	timer *time.Timer
	gen   uint64 // Bumped on every Call/Cancel; a timer only fires for the current gen
}

// New creates a debounced wrapper around fn
func New[T any](delay time.Duration, fn func(T)) *Func[T] {
	return &Func[T]{delay: delay, fn: fn}
}

// Debounce returns fn wrapped as a plain function value
func Debounce[T any](fn func(T), delay time.Duration) func(T) {
	return New(delay, fn).Call
}

// Call schedules fn(arg), replacing any pending call
func (d *Func[T]) Call(arg T) {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.timer != nil {
		d.timer.Stop()
	}
	d.gen++
	gen := d.gen

	d.timer = time.AfterFunc(d.delay, func() {
		d.mu.Lock()
		if gen != d.gen {
			// A newer call or a cancel got in after this timer fired
			d.mu.Unlock()
			return
		}
		d.timer = nil
		d.mu.Unlock()

		d.fn(arg)
	})
}

// Cancel drops the pending call, if any
func (d *Func[T]) Cancel() {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.timer != nil {
		d.timer.Stop()
		d.timer = nil
	}
	d.gen++
}

// Pending reports whether a call is scheduled
func (d *Func[T]) Pending() bool {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.timer != nil
}
