package format

type (
	Algorithm  uint8
	Priority   uint8
	Direction  uint8
	TaskStatus uint8
)

const (
	AlgorithmDeflate Algorithm = 0x1 // AlgorithmDeflate represents a raw RFC 1951 stream.
	AlgorithmGzip    Algorithm = 0x2 // AlgorithmGzip represents a gzip-framed deflate stream.
	AlgorithmZstd    Algorithm = 0x3 // AlgorithmZstd represents the simplified zstd-style framing.
	AlgorithmLz4     Algorithm = 0x4 // AlgorithmLz4 represents the LZ4 block format.

	PriorityLow      Priority = 0x0 // PriorityLow is serviced after all other priorities.
	PriorityNormal   Priority = 0x1 // PriorityNormal is the default task priority.
	PriorityHigh     Priority = 0x2 // PriorityHigh preempts normal and low priority tasks.
	PriorityCritical Priority = 0x3 // PriorityCritical is always serviced first.

	DirectionCompress   Direction = 0x1 // DirectionCompress encodes raw bytes into a compressed stream.
	DirectionDecompress Direction = 0x2 // DirectionDecompress restores the original bytes.

	StatusQueued     TaskStatus = 0x1 // StatusQueued means the task waits in a priority queue.
	StatusProcessing TaskStatus = 0x2 // StatusProcessing means a worker owns the task.
	StatusCompleted  TaskStatus = 0x3 // StatusCompleted means the result handle holds the output.
	StatusFailed     TaskStatus = 0x4 // StatusFailed means the result handle holds an error.
	StatusCancelled  TaskStatus = 0x5 // StatusCancelled means the task was abandoned before processing.
)

func (a Algorithm) String() string {
	switch a {
	case AlgorithmDeflate:
		return "Deflate"
	case AlgorithmGzip:
		return "Gzip"
	case AlgorithmZstd:
		return "Zstd"
	case AlgorithmLz4:
		return "Lz4"
	default:
		return "Unknown"
	}
}

func (p Priority) String() string {
	switch p {
	case PriorityLow:
		return "Low"
	case PriorityNormal:
		return "Normal"
	case PriorityHigh:
		return "High"
	case PriorityCritical:
		return "Critical"
	default:
		return "Unknown"
	}
}

func (d Direction) String() string {
	switch d {
	case DirectionCompress:
		return "Compress"
	case DirectionDecompress:
		return "Decompress"
	default:
		return "Unknown"
	}
}

func (s TaskStatus) String() string {
	switch s {
	case StatusQueued:
		return "Queued"
	case StatusProcessing:
		return "Processing"
	case StatusCompleted:
		return "Completed"
	case StatusFailed:
		return "Failed"
	case StatusCancelled:
		return "Cancelled"
	default:
		return "Unknown"
	}
}
