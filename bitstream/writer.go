// Package bitstream implements LSB-first bit-level I/O over byte slices.
//
// The deflate wire format packs bits starting from the least-significant bit
// of each byte; Huffman codes themselves are walked MSB-first, which callers
// handle by reversing code bits before writing. The Writer and Reader here
// only deal in LSB-first packing and stay agnostic of that convention.
package bitstream

import "github.com/hquaid/squash/internal/pool"

// Writer packs bits least-significant-bit-first into a growable byte buffer.
type Writer struct {
	buf    *pool.ByteBuffer
	bitBuf uint64
	nbits  uint
}

// NewWriter creates a bit writer backed by a pooled output buffer. Callers
// that copy the result out should call Release to recycle the buffer.
func NewWriter() *Writer {
	return &Writer{
		buf: pool.GetOutputBuffer(),
	}
}

// WriteBits appends the low n bits of v to the stream, LSB first.
//
// n must be at most 32. Bits beyond the low n bits of v are ignored.
func (w *Writer) WriteBits(v uint32, n uint) {
	w.bitBuf |= uint64(v&masks[n]) << w.nbits
	w.nbits += n
	for w.nbits >= 8 {
		w.buf.B = append(w.buf.B, byte(w.bitBuf))
		w.bitBuf >>= 8
		w.nbits -= 8
	}
}

// Flush pads any partial final byte with zero bits and appends it.
func (w *Writer) Flush() {
	if w.nbits > 0 {
		w.buf.B = append(w.buf.B, byte(w.bitBuf))
		w.bitBuf = 0
		w.nbits = 0
	}
}

// BitsPending reports how many bits are buffered but not yet byte-aligned.
func (w *Writer) BitsPending() uint {
	return w.nbits
}

// Bytes returns the bytes written so far. Flush must be called first if the
// stream may end on a partial byte.
func (w *Writer) Bytes() []byte {
	return w.buf.Bytes()
}

// Len returns the number of complete bytes written so far.
func (w *Writer) Len() int {
	return w.buf.Len()
}

// Release returns the backing buffer to the pool. The writer must not be
// used afterwards, and slices from Bytes must already have been copied.
func (w *Writer) Release() {
	pool.PutOutputBuffer(w.buf)
	w.buf = nil
}

// masks[n] selects the low n bits of a value.
var masks = func() (m [33]uint32) {
	for i := 1; i <= 32; i++ {
		m[i] = m[i-1]<<1 | 1
	}

	return m
}()
