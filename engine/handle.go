package engine

import (
	"context"
	"sync"
)

// Handle is the single-assignment result cell returned by every submission:
// fulfilled exactly once by a worker (or immediately on a cache hit), read
// by exactly one consumer.
//
// The zero Handle is not usable; handles are created by the Manager.
type Handle struct {
	done chan struct{}
	once sync.Once
	data []byte
	err  error
}

func newHandle() *Handle {
	return &Handle{done: make(chan struct{})}
}

// fulfilledHandle returns a handle already resolved with data, used for
// cache hits so callers never observe a pending state.
func fulfilledHandle(data []byte) *Handle {
	h := newHandle()
	h.fulfill(data, nil)

	return h
}

// fulfill resolves the handle. Later calls are no-ops; the first outcome
// wins, which is what makes the cell single-assignment.
func (h *Handle) fulfill(data []byte, err error) {
	h.once.Do(func() {
		h.data = data
		h.err = err
		close(h.done)
	})
}

// Poll reports whether the handle has been fulfilled, without blocking.
func (h *Handle) Poll() bool {
	select {
	case <-h.done:
		return true
	default:
		return false
	}
}

// Done returns a channel closed when the handle is fulfilled, for use in
// caller-side select loops.
func (h *Handle) Done() <-chan struct{} {
	return h.done
}

// Wait blocks until the handle is fulfilled or ctx is done, and returns the
// produced bytes or the task's error.
func (h *Handle) Wait(ctx context.Context) ([]byte, error) {
	select {
	case <-h.done:
		return h.data, h.err
	case <-ctx.Done():
		return nil, ctx.Err()
	}
}

// TryResult returns the outcome if the handle is fulfilled. The third
// return value reports whether a result was available.
func (h *Handle) TryResult() ([]byte, error, bool) {
	select {
	case <-h.done:
		return h.data, h.err, true
	default:
		return nil, nil, false
	}
}
