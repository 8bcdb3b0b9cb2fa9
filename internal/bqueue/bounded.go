// Package bqueue implements a generic bounded blocking queue: a
// capacity-limited producer/consumer channel with non-blocking and
// timeout-bounded variants of both operations.
//
// The engine uses it as the worker wakeup conduit: submissions nudge an
// idle worker instead of leaving it to its poll timer. It also serves as
// the general inter-worker messaging primitive.
package bqueue

import (
	"errors"
	"sync"
	"time"
)

// ErrClosed is returned by Push once the queue is closed.
var ErrClosed = errors.New("bounded queue closed")

// Bounded is a blocking FIFO queue with a fixed capacity.
//
// All methods are safe for concurrent use. After Close, pushes fail with
// ErrClosed while pops drain the remaining items before reporting closure.
type Bounded[T any] struct {
	ch       chan T
	done     chan struct{}
	closeOne sync.Once
}

// NewBounded creates a queue holding at most capacity items. Capacity must
// be at least 1.
func NewBounded[T any](capacity int) *Bounded[T] {
	if capacity < 1 {
		capacity = 1
	}

	return &Bounded[T]{
		ch:   make(chan T, capacity),
		done: make(chan struct{}),
	}
}

// Push blocks until the item is enqueued or the queue is closed.
func (q *Bounded[T]) Push(v T) error {
	select {
	case <-q.done:
		return ErrClosed
	default:
	}

	select {
	case q.ch <- v:
		return nil
	case <-q.done:
		return ErrClosed
	}
}

// TryPush enqueues the item only if space is immediately available.
func (q *Bounded[T]) TryPush(v T) bool {
	select {
	case <-q.done:
		return false
	default:
	}

	select {
	case q.ch <- v:
		return true
	default:
		return false
	}
}

// Pop blocks until an item is available or the queue is closed and drained.
// The second return value is false only in the closed-and-drained case.
func (q *Bounded[T]) Pop() (T, bool) {
	// Prefer draining buffered items even after closure.
	select {
	case v := <-q.ch:
		return v, true
	default:
	}

	select {
	case v := <-q.ch:
		return v, true
	case <-q.done:
		select {
		case v := <-q.ch:
			return v, true
		default:
			var zero T
			return zero, false
		}
	}
}

// PopTimeout waits up to d for an item. The second return value is false on
// timeout or closed-and-drained.
func (q *Bounded[T]) PopTimeout(d time.Duration) (T, bool) {
	select {
	case v := <-q.ch:
		return v, true
	default:
	}

	timer := time.NewTimer(d)
	defer timer.Stop()

	select {
	case v := <-q.ch:
		return v, true
	case <-q.done:
		select {
		case v := <-q.ch:
			return v, true
		default:
			var zero T
			return zero, false
		}
	case <-timer.C:
		var zero T
		return zero, false
	}
}

// TryPop dequeues an item only if one is immediately available.
func (q *Bounded[T]) TryPop() (T, bool) {
	select {
	case v := <-q.ch:
		return v, true
	default:
		var zero T
		return zero, false
	}
}

// Len returns the number of buffered items.
func (q *Bounded[T]) Len() int {
	return len(q.ch)
}

// Cap returns the queue capacity.
func (q *Bounded[T]) Cap() int {
	return cap(q.ch)
}

// Close marks the queue closed. Idempotent; buffered items remain poppable.
func (q *Bounded[T]) Close() {
	q.closeOne.Do(func() { close(q.done) })
}
