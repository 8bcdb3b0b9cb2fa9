package bitstream

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/hquaid/squash/format"
)

func TestWriterPacksLSBFirst(t *testing.T) {
	w := NewWriter()
	w.WriteBits(0b101, 3)
	w.WriteBits(0b01, 2)
	w.WriteBits(0b110, 3)
	// Bits fill from the LSB: 110|01|101 -> 0xCD.
	require.Equal(t, []byte{0xCD}, w.Bytes())

	w.WriteBits(0b1, 1)
	require.Equal(t, 1, w.Len())
	require.Equal(t, uint(1), w.BitsPending())
	w.Flush()
	require.Equal(t, []byte{0xCD, 0x01}, w.Bytes())
}

func TestWriterMasksHighBits(t *testing.T) {
	w := NewWriter()
	w.WriteBits(0xFFFFFFFF, 4)
	w.WriteBits(0, 4)
	require.Equal(t, []byte{0x0F}, w.Bytes())
}

func TestRoundTripMixedWidths(t *testing.T) {
	widths := []uint{1, 3, 7, 8, 11, 13, 16, 24, 32, 5, 2}
	values := []uint32{1, 5, 100, 255, 2000, 8191, 65535, 1 << 23, 0xDEADBEEF, 17, 3}

	w := NewWriter()
	for i, n := range widths {
		w.WriteBits(values[i], n)
	}
	w.Flush()

	r := NewReader(w.Bytes())
	for i, n := range widths {
		got, err := r.ReadBits(n)
		require.NoError(t, err)
		require.Equal(t, values[i]&masks[n], got, "field %d", i)
	}
}

func TestReaderAlignAndReadBytes(t *testing.T) {
	w := NewWriter()
	w.WriteBits(0b101, 3)
	w.Flush()
	w.WriteBits(0xAB, 8)
	w.WriteBits(0xCD, 8)

	r := NewReader(w.Bytes())
	_, err := r.ReadBits(3)
	require.NoError(t, err)

	r.AlignByte()
	rest, err := r.ReadBytes(2)
	require.NoError(t, err)
	require.Equal(t, []byte{0xAB, 0xCD}, rest)
	require.Equal(t, 0, r.Remaining())
}

func TestReaderTruncation(t *testing.T) {
	r := NewReader([]byte{0xFF})
	_, err := r.ReadBits(8)
	require.NoError(t, err)
	_, err = r.ReadBit()
	require.ErrorIs(t, err, format.ErrFormat)

	r2 := NewReader([]byte{0x01, 0x02})
	_, err = r2.ReadBytes(3)
	require.ErrorIs(t, err, format.ErrFormat)
}
