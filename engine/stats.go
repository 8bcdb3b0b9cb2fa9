package engine

import "time"

// Stats is a point-in-time snapshot of the manager's aggregate counters,
// taken under the manager lock.
type Stats struct {
	// Hits and Misses count cache lookups on keyed compression requests.
	Hits   uint64
	Misses uint64

	// TotalCompressTasks and TotalDecompressTasks count enqueued tasks;
	// cache hits never enqueue and so never increment these.
	TotalCompressTasks   uint64
	TotalDecompressTasks uint64

	// FailedTasks counts tasks whose codec reported an error.
	FailedTasks uint64

	// PeakQueueSize is the largest combined depth both priority queues
	// have reached.
	PeakQueueSize int

	// ActiveWorkers is the number of running workers (0 when stopped).
	ActiveWorkers int

	// CompressionRatio is total compressed output bytes over total
	// uncompressed input bytes across completed compression tasks, or 0
	// before any compression completes.
	CompressionRatio float64
}

// WorkerStats is a per-worker counters snapshot.
type WorkerStats struct {
	ID             int
	TasksProcessed uint64
	ProcessingTime time.Duration
}

// counters is the manager-internal mutable statistics state, guarded by the
// manager mutex.
type counters struct {
	hits              uint64
	misses            uint64
	totalCompress     uint64
	totalDecompress   uint64
	failed            uint64
	peakQueue         int
	uncompressedBytes uint64
	compressedBytes   uint64
}
