package codec

import "github.com/hquaid/squash/deflate"

// DeflateCodec produces and consumes raw RFC 1951 streams with no framing:
// no magic bytes, no checksum, no size field. It is the primitive the gzip
// and zstd-style framings wrap.
type DeflateCodec struct{}

var _ Codec = (*DeflateCodec)(nil)

// NewDeflateCodec creates a new raw deflate codec.
func NewDeflateCodec() DeflateCodec {
	return DeflateCodec{}
}

// Compress encodes data as a dynamic-Huffman deflate stream.
func (c DeflateCodec) Compress(data []byte) ([]byte, error) {
	return deflate.Compress(data)
}

// Decompress decodes a deflate stream.
func (c DeflateCodec) Decompress(data []byte) ([]byte, error) {
	return deflate.Decompress(data)
}
