package codec

import (
	"bytes"
	"io"
	"testing"

	"github.com/klauspost/compress/gzip"
	"github.com/stretchr/testify/require"

	"github.com/hquaid/squash/format"
)

func TestGzipExternalReaderAcceptsOurOutput(t *testing.T) {
	c := NewGzipCodec()
	for name, payload := range testPayloads() {
		t.Run(name, func(t *testing.T) {
			compressed, err := c.Compress(payload)
			require.NoError(t, err)

			gr, err := gzip.NewReader(bytes.NewReader(compressed))
			require.NoError(t, err)
			restored, err := io.ReadAll(gr)
			require.NoError(t, err)
			require.NoError(t, gr.Close())
			if len(payload) == 0 {
				require.Empty(t, restored)
			} else {
				require.Equal(t, payload, restored)
			}
		})
	}
}

func TestGzipWeAcceptExternalOutput(t *testing.T) {
	c := NewGzipCodec()
	for name, payload := range testPayloads() {
		t.Run(name, func(t *testing.T) {
			var buf bytes.Buffer
			gw := gzip.NewWriter(&buf)
			// Foreign writers commonly set a file name, which lands in
			// the optional header fields our parser must skip.
			gw.Name = "payload.bin"
			gw.Comment = "round trip fixture"
			_, err := gw.Write(payload)
			require.NoError(t, err)
			require.NoError(t, gw.Close())

			restored, err := c.Decompress(buf.Bytes())
			require.NoError(t, err)
			if len(payload) == 0 {
				require.Empty(t, restored)
			} else {
				require.Equal(t, payload, restored)
			}
		})
	}
}

func TestGzipCorruptMagicIsFormatError(t *testing.T) {
	c := NewGzipCodec()
	compressed, err := c.Compress([]byte("gzip integrity fixture"))
	require.NoError(t, err)

	compressed[0] ^= 0xFF
	_, err = c.Decompress(compressed)
	require.ErrorIs(t, err, format.ErrFormat)
	require.NotErrorIs(t, err, format.ErrIntegrity)
}

func TestGzipCorruptTrailerIsIntegrityError(t *testing.T) {
	c := NewGzipCodec()
	payload := []byte("gzip integrity fixture gzip integrity fixture")
	compressed, err := c.Compress(payload)
	require.NoError(t, err)

	// Flip a CRC byte.
	corrupted := append([]byte(nil), compressed...)
	corrupted[len(corrupted)-8] ^= 0x01
	_, err = c.Decompress(corrupted)
	require.ErrorIs(t, err, format.ErrIntegrity)

	// Flip a size byte.
	corrupted = append([]byte(nil), compressed...)
	corrupted[len(corrupted)-1] ^= 0x80
	_, err = c.Decompress(corrupted)
	require.ErrorIs(t, err, format.ErrIntegrity)
}

func TestGzipTruncatedInput(t *testing.T) {
	c := NewGzipCodec()
	compressed, err := c.Compress([]byte("some reasonably sized gzip payload for truncation"))
	require.NoError(t, err)

	for _, cut := range []int{0, 5, 12, len(compressed) - 4} {
		_, err = c.Decompress(compressed[:cut])
		require.ErrorIs(t, err, format.ErrFormat, "cut at %d", cut)
	}

	_, err = c.Decompress([]byte{0x1F, 0x8B, 0x07, 0x00, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0})
	require.ErrorIs(t, err, format.ErrFormat, "unsupported method")
}
