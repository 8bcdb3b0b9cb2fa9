// Package squash provides an asynchronous compression engine built on
// from-scratch codec implementations.
//
// Work is submitted to a priority-scheduled worker pool and results come
// back through single-assignment handles, with an LRU cache short-circuiting
// repeated compressions of keyed payloads.
//
// # Core Features
//
//   - Four algorithms: raw Deflate (RFC 1951), gzip framing, a zstd-style
//     frame with an XXHash64 content check, and the LZ4 block format
//   - Priority scheduling (Low, Normal, High, Critical) with FIFO order
//     within a priority level
//   - Byte-bounded LRU result cache keyed by caller-supplied strings
//   - From-scratch CRC32 and XXHash64 checksums backing the framings
//
// # Basic Usage
//
// Asynchronous compression through a manager:
//
//	import "github.com/hquaid/squash"
//
//	mgr, _ := squash.NewManager(squash.WithWorkers(4))
//	mgr.Start()
//	defer mgr.Stop()
//
//	h, _ := mgr.Compress(data, squash.Gzip, squash.High, "page:42")
//	compressed, err := h.Wait(ctx)
//
// One-shot synchronous helpers bypass the pool entirely:
//
//	compressed, _ := squash.Compress(data, squash.Lz4)
//	restored, _ := squash.Decompress(compressed, squash.Lz4)
//
// # Package Structure
//
// This package provides convenient top-level wrappers around the engine and
// codec packages. For fine-grained control (custom poll intervals, cache
// inspection, worker statistics), use those packages directly.
package squash

import (
	"github.com/hquaid/squash/codec"
	"github.com/hquaid/squash/engine"
	"github.com/hquaid/squash/format"
)

// Algorithm identifiers re-exported for callers of the top-level API.
const (
	Deflate = format.AlgorithmDeflate
	Gzip    = format.AlgorithmGzip
	Zstd    = format.AlgorithmZstd
	Lz4     = format.AlgorithmLz4
)

// Priority levels re-exported for callers of the top-level API.
const (
	Low      = format.PriorityLow
	Normal   = format.PriorityNormal
	High     = format.PriorityHigh
	Critical = format.PriorityCritical
)

// Manager is the asynchronous compression engine.
type Manager = engine.Manager

// Handle is a pending or resolved task result.
type Handle = engine.Handle

// Re-exported manager options.
var (
	WithWorkers       = engine.WithWorkers
	WithPollInterval  = engine.WithPollInterval
	WithCacheCapacity = engine.WithCacheCapacity
	WithQueueBound    = engine.WithQueueBound
	WithLogger        = engine.WithLogger
)

// NewManager creates a stopped Manager; call Start before submitting work.
func NewManager(opts ...engine.Option) (*Manager, error) {
	return engine.New(opts...)
}

// Compress synchronously compresses data with the given algorithm.
func Compress(data []byte, algorithm format.Algorithm) ([]byte, error) {
	c, err := codec.GetCodec(algorithm)
	if err != nil {
		return nil, err
	}

	return c.Compress(data)
}

// Decompress synchronously restores data compressed with the given
// algorithm.
func Decompress(data []byte, algorithm format.Algorithm) ([]byte, error) {
	c, err := codec.GetCodec(algorithm)
	if err != nil {
		return nil, err
	}

	return c.Decompress(data)
}
