package format

import "errors"

// Error taxonomy shared by every codec and the async engine.
//
// Callers distinguish the three kinds with errors.Is:
//
//	_, err := handle.Wait(ctx)
//	if errors.Is(err, format.ErrFormat) {
//	    // input could not be parsed
//	}
var (
	// ErrFormat reports malformed compressed input: an invalid block header,
	// an invalid Huffman code description, or an out-of-range back-reference.
	ErrFormat = errors.New("malformed compressed data")

	// ErrIntegrity reports input that parsed correctly but failed a checksum
	// or declared-size verification in a framing layer.
	ErrIntegrity = errors.New("integrity check failed")

	// ErrCancelled reports a task abandoned before a worker produced a result.
	ErrCancelled = errors.New("task cancelled")
)
