package engine

import (
	"container/heap"
	"errors"
	"fmt"
	"runtime"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/hquaid/squash/cache"
	"github.com/hquaid/squash/codec"
	"github.com/hquaid/squash/format"
	"github.com/hquaid/squash/internal/bqueue"
	"github.com/hquaid/squash/internal/options"
)

const (
	// DefaultPollInterval bounds how long an idle worker sleeps between
	// queue checks when no wakeup arrives.
	DefaultPollInterval = 10 * time.Millisecond

	// DefaultQueueBound is the wakeup queue capacity. Wakeups are hints,
	// not hand-offs, so a full queue is harmless: some worker is already
	// awake and will drain the backlog.
	DefaultQueueBound = 64
)

// Manager owns the worker pool, the two priority queues and the result
// cache. Submissions return a *Handle immediately; workers resolve handles
// asynchronously in priority order.
//
// Locking is coarse and ordered: mu guards queues, counters and lifecycle
// state; the cache has its own internal lock and the two are never held
// together. Handles are always fulfilled outside mu.
type Manager struct {
	mu sync.Mutex

	compressQ   taskQueue
	decompressQ taskQueue
	seq         uint64
	inflight    int

	counters counters
	workers  []*worker

	running bool
	stopCh  chan struct{}

	// wg tracks the current worker pool generation; Stop waits on the
	// generation it observed under mu, so an interleaved Start cannot
	// extend the wait.
	wg *sync.WaitGroup

	// flushHandle, when non-nil, is resolved once both queues drain and
	// no worker holds a task. Concurrent Flush calls share it.
	flushHandle *Handle

	cache *cache.Cache
	wake  *bqueue.Bounded[struct{}]

	numWorkers    int
	pollInterval  time.Duration
	queueBound    int
	cacheCapacity int64
	logger        *zap.Logger
}

// Option configures a Manager during construction.
type Option = options.Option[*Manager]

// WithWorkers sets the worker pool size. It defaults to GOMAXPROCS.
func WithWorkers(n int) Option {
	return options.New(func(m *Manager) error {
		if n < 1 {
			return fmt.Errorf("invalid worker count: %d", n)
		}
		m.numWorkers = n

		return nil
	})
}

// WithPollInterval sets the idle worker poll interval.
func WithPollInterval(d time.Duration) Option {
	return options.New(func(m *Manager) error {
		if d <= 0 {
			return fmt.Errorf("invalid poll interval: %v", d)
		}
		m.pollInterval = d

		return nil
	})
}

// WithCacheCapacity sets the result cache capacity in bytes.
func WithCacheCapacity(capacity int64) Option {
	return options.New(func(m *Manager) error {
		if capacity < 1 {
			return fmt.Errorf("invalid cache capacity: %d", capacity)
		}
		m.cacheCapacity = capacity

		return nil
	})
}

// WithQueueBound sets the wakeup queue capacity.
func WithQueueBound(n int) Option {
	return options.New(func(m *Manager) error {
		if n < 1 {
			return fmt.Errorf("invalid queue bound: %d", n)
		}
		m.queueBound = n

		return nil
	})
}

// WithLogger sets the structured logger. It defaults to a no-op logger.
func WithLogger(logger *zap.Logger) Option {
	return options.New(func(m *Manager) error {
		if logger == nil {
			return errors.New("nil logger")
		}
		m.logger = logger

		return nil
	})
}

// New creates a stopped Manager. Work may be submitted immediately; queued
// tasks are serviced once Start runs the worker pool.
func New(opts ...Option) (*Manager, error) {
	m := &Manager{
		numWorkers:    runtime.GOMAXPROCS(0),
		pollInterval:  DefaultPollInterval,
		queueBound:    DefaultQueueBound,
		cacheCapacity: cache.DefaultCapacity,
		logger:        zap.NewNop(),
	}

	if err := options.Apply(m, opts...); err != nil {
		return nil, err
	}

	m.cache = cache.New(m.cacheCapacity)
	m.wake = bqueue.NewBounded[struct{}](m.queueBound)

	return m, nil
}

// Start launches the worker pool. Starting a running manager is a no-op.
func (m *Manager) Start() {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.running {
		return
	}

	m.running = true
	m.stopCh = make(chan struct{})
	m.wg = &sync.WaitGroup{}
	m.workers = make([]*worker, m.numWorkers)

	for i := range m.workers {
		w := &worker{id: i, mgr: m}
		m.workers[i] = w
		m.wg.Add(1)

		go w.run(m.stopCh, m.wg)
	}

	m.logger.Info("engine started", zap.Int("workers", m.numWorkers))
}

// Stop halts the worker pool and waits for in-flight tasks to finish.
// Queued tasks stay queued and resume on the next Start. Stopping a
// stopped manager is a no-op.
func (m *Manager) Stop() {
	m.mu.Lock()
	if !m.running {
		m.mu.Unlock()
		return
	}

	m.running = false
	close(m.stopCh)
	wg := m.wg
	m.mu.Unlock()

	wg.Wait()

	m.mu.Lock()
	if !m.running {
		m.workers = nil
	}
	m.mu.Unlock()

	m.logger.Info("engine stopped")
}

// Compress submits data for asynchronous compression with algorithm at
// priority. A non-empty cacheKey makes the result cacheable: a prior result
// under the same key resolves the handle immediately without enqueueing.
//
// Submitting to a stopped manager queues the task; it is serviced once
// Start runs the worker pool.
func (m *Manager) Compress(data []byte, algorithm format.Algorithm, priority format.Priority, cacheKey string) (*Handle, error) {
	if _, err := codec.GetCodec(algorithm); err != nil {
		return nil, err
	}

	if cacheKey != "" {
		if cached, ok := m.cache.Get(cacheKey); ok {
			m.mu.Lock()
			m.counters.hits++
			m.mu.Unlock()

			m.logger.Debug("cache hit", zap.String("key", cacheKey))

			return fulfilledHandle(cached), nil
		}
	}

	t := newTask(format.DirectionCompress, algorithm, priority, data, cacheKey)

	m.mu.Lock()
	if cacheKey != "" {
		m.counters.misses++
	}
	m.counters.totalCompress++
	m.enqueueLocked(&m.compressQ, t)
	m.mu.Unlock()

	m.wake.TryPush(struct{}{})

	return t.handle, nil
}

// Decompress submits data for asynchronous decompression with algorithm at
// priority. Decompression results are never cached. Like Compress, tasks
// submitted while the manager is stopped wait for the next Start.
func (m *Manager) Decompress(data []byte, algorithm format.Algorithm, priority format.Priority) (*Handle, error) {
	if _, err := codec.GetCodec(algorithm); err != nil {
		return nil, err
	}

	t := newTask(format.DirectionDecompress, algorithm, priority, data, "")

	m.mu.Lock()
	m.counters.totalDecompress++
	m.enqueueLocked(&m.decompressQ, t)
	m.mu.Unlock()

	m.wake.TryPush(struct{}{})

	return t.handle, nil
}

// enqueueLocked assigns the submission sequence number, pushes the task and
// updates the peak depth. Callers hold mu.
func (m *Manager) enqueueLocked(q *taskQueue, t *task) {
	t.seq = m.seq
	m.seq++
	heap.Push(q, t)

	if depth := len(m.compressQ) + len(m.decompressQ); depth > m.counters.peakQueue {
		m.counters.peakQueue = depth
	}
}

// nextTask pops the highest priority pending task, preferring compression
// work over decompression work, and marks it in flight. It returns nil when
// both queues are empty.
func (m *Manager) nextTask() *task {
	m.mu.Lock()
	defer m.mu.Unlock()

	var t *task
	switch {
	case len(m.compressQ) > 0:
		t = heap.Pop(&m.compressQ).(*task)
	case len(m.decompressQ) > 0:
		t = heap.Pop(&m.decompressQ).(*task)
	default:
		return nil
	}

	m.inflight++

	return t
}

// completeTask records the outcome of a finished task, caches successful
// compression results, and fulfills the handle. The cache write and the
// handle fulfillment both happen outside mu.
func (m *Manager) completeTask(w *worker, t *task, result []byte, err error, elapsed time.Duration) {
	if err == nil && t.cacheKey != "" {
		m.cache.Put(t.cacheKey, result)
	}

	m.mu.Lock()
	w.tasksProcessed++
	w.processingTime += elapsed

	if err != nil {
		m.counters.failed++
	} else if t.direction == format.DirectionCompress {
		m.counters.uncompressedBytes += uint64(len(t.data))
		m.counters.compressedBytes += uint64(len(result))
	}

	m.inflight--
	flush := m.takeFlushLocked()
	m.mu.Unlock()

	if err != nil {
		t.setStatus(format.StatusFailed)
	} else {
		t.setStatus(format.StatusCompleted)
	}
	t.handle.fulfill(result, err)

	if flush != nil {
		flush.fulfill(nil, nil)
	}
}

// takeFlushLocked returns the pending flush handle if the engine is
// drained, clearing it so it resolves once. Callers hold mu.
func (m *Manager) takeFlushLocked() *Handle {
	if m.flushHandle == nil || m.inflight > 0 || len(m.compressQ) > 0 || len(m.decompressQ) > 0 {
		return nil
	}

	h := m.flushHandle
	m.flushHandle = nil

	return h
}

// Flush returns a handle that resolves once every task submitted before the
// call has completed. On an already-drained engine the handle resolves
// immediately. Concurrent Flush calls share one handle.
func (m *Manager) Flush() *Handle {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.inflight == 0 && len(m.compressQ) == 0 && len(m.decompressQ) == 0 {
		return fulfilledHandle(nil)
	}

	if m.flushHandle == nil {
		m.flushHandle = newHandle()
	}

	return m.flushHandle
}

// CancelPending drains both priority queues without executing the tasks.
// Each abandoned task's handle resolves with an error wrapping
// format.ErrCancelled. In-flight tasks are not interrupted. It returns the
// number of cancelled tasks.
func (m *Manager) CancelPending() int {
	m.mu.Lock()

	cancelled := make([]*task, 0, len(m.compressQ)+len(m.decompressQ))
	for len(m.compressQ) > 0 {
		cancelled = append(cancelled, heap.Pop(&m.compressQ).(*task))
	}
	for len(m.decompressQ) > 0 {
		cancelled = append(cancelled, heap.Pop(&m.decompressQ).(*task))
	}

	flush := m.takeFlushLocked()
	m.mu.Unlock()

	for _, t := range cancelled {
		t.setStatus(format.StatusCancelled)
		t.handle.fulfill(nil, fmt.Errorf("%w: task %s", format.ErrCancelled, t.id))
	}

	if flush != nil {
		flush.fulfill(nil, nil)
	}

	if len(cancelled) > 0 {
		m.logger.Info("cancelled pending tasks", zap.Int("count", len(cancelled)))
	}

	return len(cancelled)
}

// Stats returns a snapshot of the manager's aggregate counters.
func (m *Manager) Stats() Stats {
	m.mu.Lock()
	defer m.mu.Unlock()

	s := Stats{
		Hits:                 m.counters.hits,
		Misses:               m.counters.misses,
		TotalCompressTasks:   m.counters.totalCompress,
		TotalDecompressTasks: m.counters.totalDecompress,
		FailedTasks:          m.counters.failed,
		PeakQueueSize:        m.counters.peakQueue,
		ActiveWorkers:        len(m.workers),
	}
	if m.counters.uncompressedBytes > 0 {
		s.CompressionRatio = float64(m.counters.compressedBytes) / float64(m.counters.uncompressedBytes)
	}

	return s
}

// WorkerStats returns a per-worker counters snapshot, empty when stopped.
func (m *Manager) WorkerStats() []WorkerStats {
	m.mu.Lock()
	defer m.mu.Unlock()

	stats := make([]WorkerStats, len(m.workers))
	for i, w := range m.workers {
		stats[i] = WorkerStats{
			ID:             w.id,
			TasksProcessed: w.tasksProcessed,
			ProcessingTime: w.processingTime,
		}
	}

	return stats
}

// Cache exposes the result cache for direct inspection and maintenance.
func (m *Manager) Cache() *cache.Cache {
	return m.cache
}
