package codec

import (
	"bytes"
	"testing"

	"github.com/pierrec/lz4/v4"
	"github.com/stretchr/testify/require"

	"github.com/hquaid/squash/format"
)

func TestLz4ExternalDecoderAcceptsOurBlocks(t *testing.T) {
	c := NewLz4Codec()
	for name, payload := range testPayloads() {
		if len(payload) == 0 {
			continue // reference block decoder has no empty-block notion
		}
		t.Run(name, func(t *testing.T) {
			compressed, err := c.Compress(payload)
			require.NoError(t, err)

			dst := make([]byte, len(payload))
			n, err := lz4.UncompressBlock(compressed, dst)
			require.NoError(t, err)
			require.Equal(t, payload, dst[:n])
		})
	}
}

func TestLz4WeDecodeExternalBlocks(t *testing.T) {
	c := NewLz4Codec()
	var compressor lz4.Compressor
	for name, payload := range testPayloads() {
		if len(payload) == 0 {
			continue
		}
		t.Run(name, func(t *testing.T) {
			dst := make([]byte, lz4.CompressBlockBound(len(payload)))
			n, err := compressor.CompressBlock(payload, dst)
			require.NoError(t, err)
			if n == 0 {
				t.Skip("reference encoder stored the block uncompressed")
			}

			restored, err := c.Decompress(dst[:n])
			require.NoError(t, err)
			require.Equal(t, payload, restored)
		})
	}
}

func TestLz4LongLiteralAndMatchExtensions(t *testing.T) {
	// >15 literals forces literal-length extension bytes; a long run
	// forces match-length extensions.
	payload := append(bytes.Repeat([]byte{0xEE}, 1000), []byte("abcdefghijklmnopqrstuvwxyz0123456789ABCDEF")...)

	c := NewLz4Codec()
	compressed, err := c.Compress(payload)
	require.NoError(t, err)
	require.Less(t, len(compressed), len(payload))

	restored, err := c.Decompress(compressed)
	require.NoError(t, err)
	require.Equal(t, payload, restored)
}

func TestLz4ZeroOffsetIsFormatError(t *testing.T) {
	// token: 1 literal, match class 0; literal 'a'; offset 0x0000.
	block := []byte{0x10, 'a', 0x00, 0x00}
	_, err := NewLz4Codec().Decompress(block)
	require.ErrorIs(t, err, format.ErrFormat)
}

func TestLz4OffsetBeyondOutputIsFormatError(t *testing.T) {
	// 1 literal then a match referencing 9 bytes back.
	block := []byte{0x10, 'a', 0x09, 0x00}
	_, err := NewLz4Codec().Decompress(block)
	require.ErrorIs(t, err, format.ErrFormat)
}

func TestLz4TruncatedBlocks(t *testing.T) {
	tests := []struct {
		name  string
		block []byte
	}{
		{name: "literal run past end", block: []byte{0x50, 'a', 'b'}},
		{name: "missing offset byte", block: []byte{0x10, 'a', 0x01}},
		{name: "unterminated literal extension", block: []byte{0xF0, 255, 255}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewLz4Codec().Decompress(tt.block)
			require.ErrorIs(t, err, format.ErrFormat)
		})
	}
}

func TestLz4EmptyBlock(t *testing.T) {
	c := NewLz4Codec()
	compressed, err := c.Compress(nil)
	require.NoError(t, err)
	require.Equal(t, []byte{0x00}, compressed)

	restored, err := c.Decompress(compressed)
	require.NoError(t, err)
	require.Empty(t, restored)
}
