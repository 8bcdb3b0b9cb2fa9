package codec

import (
	"fmt"

	"github.com/hquaid/squash/format"
)

// Compressor encodes raw bytes into a compressed stream.
//
// Memory management:
//   - Returned slice is newly allocated and owned by the caller
//   - Input slice is not modified
//   - Internal buffers may be reused for efficiency
type Compressor interface {
	Compress(data []byte) ([]byte, error)
}

// Decompressor restores the original bytes from a compressed stream.
//
// Error conditions:
//   - format.ErrFormat if the input cannot be parsed
//   - format.ErrIntegrity if the input parsed but a checksum or declared
//     size did not verify
//
// Decompressors never return partial output alongside an error.
type Decompressor interface {
	Decompress(data []byte) ([]byte, error)
}

// Codec combines both compression and decompression capabilities.
//
// All built-in codecs are stateless values and safe for concurrent use,
// which is what lets every worker in the pool share one registry.
type Codec interface {
	Compressor
	Decompressor
}

// builtinCodecs maps each algorithm to its shared stateless codec value.
var builtinCodecs = map[format.Algorithm]Codec{
	format.AlgorithmDeflate: NewDeflateCodec(),
	format.AlgorithmGzip:    NewGzipCodec(),
	format.AlgorithmZstd:    NewZstdCodec(),
	format.AlgorithmLz4:     NewLz4Codec(),
}

// GetCodec retrieves the built-in Codec for the specified algorithm.
func GetCodec(algorithm format.Algorithm) (Codec, error) {
	if c, ok := builtinCodecs[algorithm]; ok {
		return c, nil
	}

	return nil, fmt.Errorf("unsupported compression algorithm: %s", algorithm)
}

// CompressionStats describes one completed (de)compression operation, for
// monitoring and profiling.
type CompressionStats struct {
	// Algorithm identifies the compression algorithm used.
	Algorithm format.Algorithm

	// OriginalSize is the size of input data before compression.
	OriginalSize int64

	// CompressedSize is the size of data after compression.
	CompressedSize int64

	// CompressionTimeNs is the time taken to compress the data.
	CompressionTimeNs int64

	// DecompressionTimeNs is the time taken to decompress the data (if applicable).
	DecompressionTimeNs int64
}

// CompressionRatio returns compressed size / original size.
//
// Values less than 1.0 indicate successful compression; 0.0 is returned
// when the original size is zero.
func (s CompressionStats) CompressionRatio() float64 {
	if s.OriginalSize == 0 {
		return 0.0
	}

	return float64(s.CompressedSize) / float64(s.OriginalSize)
}

// SpaceSavings returns the space savings as a percentage (0-100%).
func (s CompressionStats) SpaceSavings() float64 {
	return (1.0 - s.CompressionRatio()) * 100.0
}
