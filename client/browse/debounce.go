package browse

import (
	"sync"
	"time"
)

// DefaultDebounce is the settle time applied to search input.
const DefaultDebounce = 500 * time.Millisecond

// Debouncer emits the most recent value once input has settled for the
// configured delay. Intermediate values are dropped.
type Debouncer struct {
	mu    sync.Mutex
	delay time.Duration
	timer *time.Timer
	out   chan string
	done  bool
}

// NewDebouncer builds a debouncer. A non-positive delay falls back to
// DefaultDebounce.
func NewDebouncer(delay time.Duration) *Debouncer {
	if delay <= 0 {
		delay = DefaultDebounce
	}
	return &Debouncer{
		delay: delay,
		out:   make(chan string, 1),
	}
}

// Set records a new value and restarts the settle timer.
func (d *Debouncer) Set(value string) {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.done {
		return
	}
	if d.timer != nil {
		d.timer.Stop()
	}
	d.timer = time.AfterFunc(d.delay, func() {
		d.emit(value)
	})
}

func (d *Debouncer) emit(value string) {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.done {
		return
	}
	// Drop a pending emission so only the latest value is delivered.
	select {
	case <-d.out:
	default:
	}
	d.out <- value
}

// C delivers settled values.
func (d *Debouncer) C() <-chan string {
	return d.out
}

// Stop cancels any pending emission. The channel is not closed; callers
// select on it alongside their own shutdown signal.
func (d *Debouncer) Stop() {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.done = true
	if d.timer != nil {
		d.timer.Stop()
	}
}
