// Package deflate implements the core compression primitive: an RFC 1951
// compatible block-structured compressor and decompressor built from a
// 32KiB sliding-window LZ77 match finder, canonical length-limited Huffman
// codes and LSB-first bit packing.
//
// The compressor always emits dynamic-Huffman blocks; the decompressor
// additionally accepts stored and fixed-Huffman blocks so externally
// produced streams round-trip through the same entry points. The framing
// layers in the codec package wrap these primitives with gzip- and
// zstd-style headers and trailers.
package deflate
