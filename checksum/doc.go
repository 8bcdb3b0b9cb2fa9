// Package checksum implements the two integrity primitives used by the
// framing layers: CRC-32 over the reversed IEEE 802.3 polynomial (gzip
// trailers) and XXHash64 (zstd-style frame checksums).
//
// Both implementations are self-contained and byte-exact with their
// published reference algorithms; the test suite cross-checks them against
// hash/crc32 and github.com/cespare/xxhash/v2.
package checksum
