// Package codec exposes the compression codecs behind a common
// Compressor/Decompressor interface pair and a per-algorithm registry.
//
// Four entries are registered: raw deflate, gzip framing, the simplified
// zstd-style framing (both wrapping the deflate primitive), and the LZ4
// block format as a standalone codec. All codecs are stateless values safe
// for concurrent use; the async engine dispatches to them through
// GetCodec.
package codec
