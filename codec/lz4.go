package codec

import (
	"encoding/binary"
	"fmt"

	"github.com/hquaid/squash/endian"
	"github.com/hquaid/squash/format"
	"github.com/hquaid/squash/internal/pool"
)

// LZ4 block format parameters.
const (
	lz4MinMatch  = 4
	lz4MaxOffset = 65535

	// lz4MFLimit: no match may start within the last 12 bytes, and the
	// last 5 bytes are always literals. Together these keep the block
	// decodable by the reference decoder's fast path.
	lz4MFLimit      = 12
	lz4LastLiterals = 5

	lz4HashLog  = 16
	lz4HashSize = 1 << lz4HashLog
)

// Lz4Codec implements the LZ4 block format from scratch: one token byte per
// sequence whose high nibble is the literal-length class and low nibble the
// match-length class (15 meaning "read 255-extension bytes"), the literal
// bytes, then a 2-byte little-endian offset and any match-length extension
// bytes. A zero offset is invalid. The block carries no checksum.
//
// Unlike the gzip and zstd-style entries this codec does not wrap deflate;
// the token stream is the whole format. Output blocks are bit-exact LZ4 and
// interchange with external block-format tooling.
type Lz4Codec struct{}

var _ Codec = (*Lz4Codec)(nil)

// NewLz4Codec creates a new LZ4 block codec.
func NewLz4Codec() Lz4Codec {
	return Lz4Codec{}
}

// Compress encodes data as one LZ4 block using a single-entry hash table
// over 4-byte windows. The empty input produces the one-byte empty block.
func (c Lz4Codec) Compress(data []byte) ([]byte, error) {
	out := make([]byte, 0, len(data)/2+16)

	if len(data) < lz4MFLimit+1 {
		return appendLz4Literals(out, data), nil
	}

	table, cleanup := pool.GetInt32Slice(lz4HashSize, -1)
	defer cleanup()

	anchor := 0
	limit := len(data) - lz4MFLimit
	for i := 0; i <= limit; {
		h := lz4Hash(binary.LittleEndian.Uint32(data[i:]))
		cand := table[h]
		table[h] = int32(i)

		if cand < 0 || i-int(cand) > lz4MaxOffset ||
			binary.LittleEndian.Uint32(data[cand:]) != binary.LittleEndian.Uint32(data[i:]) {
			i++
			continue
		}

		matchLen := lz4MinMatch
		maxLen := len(data) - lz4LastLiterals - i
		for matchLen < maxLen && data[int(cand)+matchLen] == data[i+matchLen] {
			matchLen++
		}

		out = appendLz4Sequence(out, data[anchor:i], i-int(cand), matchLen)
		i += matchLen
		anchor = i
	}

	return appendLz4Literals(out, data[anchor:]), nil
}

// Decompress decodes one LZ4 block. The output buffer starts at four times
// the compressed size, a common expansion ratio, and grows as needed.
func (c Lz4Codec) Decompress(data []byte) ([]byte, error) {
	out := make([]byte, 0, len(data)*4)
	le := endian.GetLittleEndianEngine()

	for i := 0; i < len(data); {
		token := data[i]
		i++

		litLen, next, err := lz4ReadLength(data, i, int(token>>4))
		if err != nil {
			return nil, err
		}
		i = next
		if i+litLen > len(data) {
			return nil, fmt.Errorf("%w: literal run overflows block", format.ErrFormat)
		}
		out = append(out, data[i:i+litLen]...)
		i += litLen

		if i == len(data) {
			// Final sequence carries literals only.
			return out, nil
		}

		if i+2 > len(data) {
			return nil, fmt.Errorf("%w: truncated match offset", format.ErrFormat)
		}
		offset := int(le.Uint16(data[i:]))
		i += 2
		if offset == 0 {
			return nil, fmt.Errorf("%w: invalid zero match offset", format.ErrFormat)
		}
		if offset > len(out) {
			return nil, fmt.Errorf("%w: match offset %d exceeds %d produced bytes", format.ErrFormat, offset, len(out))
		}

		matchLen, next, err := lz4ReadLength(data, i, int(token&0x0F))
		if err != nil {
			return nil, err
		}
		i = next
		matchLen += lz4MinMatch

		// Overlapping copies expand runs, same as deflate back-references.
		for n := 0; n < matchLen; n++ {
			out = append(out, out[len(out)-offset])
		}
	}

	return out, nil
}

// lz4Hash maps a 4-byte window to a hash table slot.
func lz4Hash(v uint32) uint32 {
	return (v * 2654435761) >> (32 - lz4HashLog)
}

// lz4ReadLength resolves a nibble length class: 0-14 are literal values, 15
// adds 255-extension bytes until a byte below 255.
func lz4ReadLength(data []byte, i, nibble int) (length, next int, err error) {
	length = nibble
	if nibble < 15 {
		return length, i, nil
	}
	for {
		if i >= len(data) {
			return 0, 0, fmt.Errorf("%w: truncated length extension", format.ErrFormat)
		}
		b := data[i]
		i++
		length += int(b)
		if b != 255 {
			return length, i, nil
		}
	}
}

// appendLz4Sequence emits one token, the pending literals, the match offset
// and any length extension bytes.
func appendLz4Sequence(out, literals []byte, offset, matchLen int) []byte {
	litLen := len(literals)
	ml := matchLen - lz4MinMatch

	token := byte(0)
	if litLen >= 15 {
		token = 0xF0
	} else {
		token = byte(litLen) << 4
	}
	if ml >= 15 {
		token |= 0x0F
	} else {
		token |= byte(ml)
	}

	out = append(out, token)
	if litLen >= 15 {
		out = appendLz4LengthExt(out, litLen-15)
	}
	out = append(out, literals...)
	out = endian.GetLittleEndianEngine().AppendUint16(out, uint16(offset))
	if ml >= 15 {
		out = appendLz4LengthExt(out, ml-15)
	}

	return out
}

// appendLz4Literals emits the final literals-only sequence.
func appendLz4Literals(out, literals []byte) []byte {
	litLen := len(literals)
	if litLen >= 15 {
		out = append(out, 0xF0)
		out = appendLz4LengthExt(out, litLen-15)
	} else {
		out = append(out, byte(litLen)<<4)
	}

	return append(out, literals...)
}

func appendLz4LengthExt(out []byte, n int) []byte {
	for n >= 255 {
		out = append(out, 255)
		n -= 255
	}

	return append(out, byte(n))
}
