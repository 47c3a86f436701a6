// Package loop drives per-frame work and gives callers an explicit way to stop it.
package loop

import (
	"context"
	"sync"
	"time"

	"github.com/iburimskiy/starfield/internal/config"
)

// Handle is the stop/observe side of a running frame loop.
type Handle struct {
	stop chan struct{}
	done chan struct{}

	stopOnce   sync.Once
	finishOnce sync.Once

	mu  sync.Mutex
	err error
}

// NewHandle returns a handle for a loop that is driven elsewhere and polls Stopped each frame.
func NewHandle() *Handle {
	return &Handle{
		stop: make(chan struct{}),
		done: make(chan struct{}),
	}
}

// Stop asks the loop to end. It is safe to call more than once and from any goroutine.
func (h *Handle) Stop() {
	h.stopOnce.Do(func() { close(h.stop) })
}

func (h *Handle) Stopped() bool {
	select {
	case <-h.stop:
		return true
	default:
		return false
	}
}

// Done is closed once the loop has run its last frame.
func (h *Handle) Done() <-chan struct{} { return h.done }

// Err reports the error that ended the loop, if any. It is only meaningful after Done is closed.
func (h *Handle) Err() error {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.err
}

// Finish marks the loop as ended with err. Only the first call counts.
func (h *Handle) Finish(err error) {
	h.finishOnce.Do(func() {
		h.mu.Lock()
		h.err = err
		h.mu.Unlock()
		h.Stop()
		close(h.done)
	})
}

// Start calls step every interval on its own goroutine until the handle is stopped, ctx is cancelled,
// or step fails. A failing step ends scheduling and its error is reported by Err.
// A non-positive interval falls back to the display frame rate.
func Start(ctx context.Context, step func() error, interval time.Duration) *Handle {
	if interval <= 0 {
		interval = time.Second / config.FrameRate
	}
	h := NewHandle()
	go func() {
		ticker := time.NewTicker(interval)
		defer ticker.Stop()
		for {
			select {
			case <-h.stop:
				h.Finish(nil)
				return
			case <-ctx.Done():
				h.Finish(ctx.Err())
				return
			case <-ticker.C:
				// A stop that raced the tick wins.
				if h.Stopped() {
					h.Finish(nil)
					return
				}
				if err := step(); err != nil {
					h.Finish(err)
					return
				}
			}
		}
	}()
	return h
}

// Run is Start followed by waiting for the loop to end.
func Run(ctx context.Context, step func() error, interval time.Duration) error {
	h := Start(ctx, step, interval)
	<-h.Done()
	return h.Err()
}
