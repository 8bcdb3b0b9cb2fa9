package bitstream

import (
	"fmt"

	"github.com/hquaid/squash/format"
)

// Reader consumes bits least-significant-bit-first from a byte slice.
//
// Reading past the end of the input reports format.ErrFormat: a truncated
// stream is indistinguishable from a malformed one at this level.
type Reader struct {
	data   []byte
	pos    int
	bitBuf uint64
	nbits  uint
}

// NewReader creates a bit reader over data. The reader does not copy data;
// the caller must not mutate it while reading.
func NewReader(data []byte) *Reader {
	return &Reader{data: data}
}

// ReadBits reads the next n bits (n ≤ 32) and returns them in the low bits
// of the result.
func (r *Reader) ReadBits(n uint) (uint32, error) {
	for r.nbits < n {
		if r.pos >= len(r.data) {
			return 0, fmt.Errorf("%w: unexpected end of bit stream", format.ErrFormat)
		}
		r.bitBuf |= uint64(r.data[r.pos]) << r.nbits
		r.pos++
		r.nbits += 8
	}

	v := uint32(r.bitBuf) & masks[n]
	r.bitBuf >>= n
	r.nbits -= n

	return v, nil
}

// ReadBit reads a single bit. Huffman decoders call this in a tight loop
// while walking a code MSB-first.
func (r *Reader) ReadBit() (uint32, error) {
	return r.ReadBits(1)
}

// AlignByte discards bits up to the next byte boundary.
func (r *Reader) AlignByte() {
	drop := r.nbits % 8
	r.bitBuf >>= drop
	r.nbits -= drop
}

// ReadBytes reads n whole bytes. The reader must be byte-aligned; callers
// use AlignByte first when the preceding reads were bit-granular.
func (r *Reader) ReadBytes(n int) ([]byte, error) {
	if n < 0 || r.Remaining() < n {
		return nil, fmt.Errorf("%w: unexpected end of bit stream", format.ErrFormat)
	}

	out := make([]byte, n)
	for i := range out {
		if r.nbits >= 8 {
			out[i] = byte(r.bitBuf)
			r.bitBuf >>= 8
			r.nbits -= 8
		} else {
			out[i] = r.data[r.pos]
			r.pos++
		}
	}

	return out, nil
}

// Remaining returns the number of whole bytes left, including bytes buffered
// but not yet consumed.
func (r *Reader) Remaining() int {
	return len(r.data) - r.pos + int(r.nbits/8)
}
