package engine

import (
	"sync/atomic"
	"time"

	"github.com/google/uuid"

	"github.com/hquaid/squash/format"
)

// task is one pending unit of work. A single type serves both directions;
// workers dispatch through the codec registry on (direction, algorithm).
//
// Ownership moves monotonically: the manager creates the task, the holding
// priority queue owns it while queued, the dequeuing worker owns it
// exclusively, and it is released once the handle is fulfilled. Status
// moves forward only: Queued, Processing, then exactly one of Completed,
// Failed or Cancelled.
type task struct {
	id        string
	direction format.Direction
	algorithm format.Algorithm
	priority  format.Priority
	data      []byte
	cacheKey  string
	submitted time.Time

	// seq is the submission sequence number; equal priorities are
	// serviced in seq order.
	seq uint64

	status atomic.Uint32

	handle *Handle
}

func newTask(direction format.Direction, algorithm format.Algorithm, priority format.Priority, data []byte, cacheKey string) *task {
	t := &task{
		id:        uuid.NewString(),
		direction: direction,
		algorithm: algorithm,
		priority:  priority,
		data:      data,
		cacheKey:  cacheKey,
		submitted: time.Now(),
		handle:    newHandle(),
	}
	t.status.Store(uint32(format.StatusQueued))

	return t
}

func (t *task) setStatus(s format.TaskStatus) {
	t.status.Store(uint32(s))
}

func (t *task) Status() format.TaskStatus {
	return format.TaskStatus(t.status.Load())
}
