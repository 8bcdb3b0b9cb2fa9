package engine

import (
	"fmt"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/hquaid/squash/codec"
	"github.com/hquaid/squash/format"
)

// worker is one long-lived execution context of the pool. Its counters are
// written during task completion under the manager mutex and copied out the
// same way for reporting.
type worker struct {
	id  int
	mgr *Manager

	tasksProcessed uint64
	processingTime time.Duration
}

// run is the worker loop: prefer a compression task over a decompression
// task, execute it, then publish the outcome. With both queues empty the
// worker parks on the wakeup queue, bounded by the poll interval so a stop
// request is observed promptly even without submissions.
//
// Stopping is cooperative: a task already dequeued is finished before the
// stop flag is checked again. The WaitGroup belongs to this worker's pool
// generation, so a Stop overlapping a later Start waits only on its own
// workers.
func (w *worker) run(stop <-chan struct{}, wg *sync.WaitGroup) {
	defer wg.Done()

	logger := w.mgr.logger.With(zap.Int("worker", w.id))
	logger.Debug("worker started")

	for {
		select {
		case <-stop:
			logger.Debug("worker stopped")
			return
		default:
		}

		t := w.mgr.nextTask()
		if t == nil {
			w.mgr.wake.PopTimeout(w.mgr.pollInterval)
			continue
		}

		w.process(t, logger)
	}
}

// process executes one task and reports the outcome. Codec errors and
// panics become a Failed status on the task; they never escape the worker
// loop, so one malformed payload cannot take a worker down.
func (w *worker) process(t *task, logger *zap.Logger) {
	t.setStatus(format.StatusProcessing)

	start := time.Now()
	result, err := runCodec(t)
	elapsed := time.Since(start)

	if err != nil {
		logger.Warn("task failed",
			zap.String("task", t.id),
			zap.Stringer("direction", t.direction),
			zap.Stringer("algorithm", t.algorithm),
			zap.Error(err),
		)
	} else {
		logger.Debug("task completed",
			zap.String("task", t.id),
			zap.Stringer("direction", t.direction),
			zap.Stringer("algorithm", t.algorithm),
			zap.Int("in", len(t.data)),
			zap.Int("out", len(result)),
			zap.Duration("elapsed", elapsed),
		)
	}

	w.mgr.completeTask(w, t, result, err, elapsed)
}

// runCodec dispatches to the registered codec for the task's algorithm and
// direction, converting panics into task errors.
func runCodec(t *task) (result []byte, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("codec panic: %v", r)
		}
	}()

	c, err := codec.GetCodec(t.algorithm)
	if err != nil {
		return nil, err
	}

	switch t.direction {
	case format.DirectionCompress:
		return c.Compress(t.data)
	case format.DirectionDecompress:
		return c.Decompress(t.data)
	default:
		return nil, fmt.Errorf("unknown task direction: %s", t.direction)
	}
}
