package codec

import (
	"fmt"
	"math"

	"github.com/hquaid/squash/checksum"
	"github.com/hquaid/squash/deflate"
	"github.com/hquaid/squash/endian"
	"github.com/hquaid/squash/format"
)

// Zstd-style frame layout.
const (
	zstdMagic = 0xFD2FB528 // serialized little-endian: 28 B5 2F FD

	zstdNoContentSize    = 0x00
	zstdContentSize32    = 0x01
	zstdContentSize64    = 0x02
	zstdMinFrameLen      = 4 + 1 + 4 // magic + descriptor + checksum
	zstdChecksumSeed     = 0
	zstdContentSizeLimit = math.MaxUint32
)

// ZstdCodec implements the simplified zstd-style framing: the standard
// 4-byte magic number, a frame-header-descriptor byte announcing how the
// content size is encoded (absent, 4 or 8 bytes little-endian), the
// compressed payload, and a trailing 4-byte checksum taken from the low 32
// bits of the XXHash64 of the uncompressed data.
//
// The payload is a deflate stream rather than zstd entropy-coded blocks, so
// frames are only interchangeable with this codec, not with external zstd
// tooling. The frame-level contract (field layout, ordering, checksum
// placement) is what this codec preserves.
type ZstdCodec struct{}

var _ Codec = (*ZstdCodec)(nil)

// NewZstdCodec creates a new zstd-style codec.
func NewZstdCodec() ZstdCodec {
	return ZstdCodec{}
}

// Compress frames a deflate payload with the zstd-style header and
// checksum. The content size is always written: 4 bytes below 4 GiB,
// 8 bytes beyond.
func (c ZstdCodec) Compress(data []byte) ([]byte, error) {
	payload, err := deflate.Compress(data)
	if err != nil {
		return nil, err
	}

	le := endian.GetLittleEndianEngine()
	out := make([]byte, 0, 4+1+8+len(payload)+4)
	out = le.AppendUint32(out, zstdMagic)
	if uint64(len(data)) <= zstdContentSizeLimit {
		out = append(out, zstdContentSize32)
		out = le.AppendUint32(out, uint32(len(data)))
	} else {
		out = append(out, zstdContentSize64)
		out = le.AppendUint64(out, uint64(len(data)))
	}
	out = append(out, payload...)
	out = le.AppendUint32(out, uint32(checksum.XXHash64(data, zstdChecksumSeed)))

	return out, nil
}

// Decompress validates the magic number, reconstructs the declared content
// size when present, inflates the payload and verifies both the size and
// the trailing checksum.
func (c ZstdCodec) Decompress(data []byte) ([]byte, error) {
	if len(data) < zstdMinFrameLen {
		return nil, fmt.Errorf("%w: input shorter than minimal frame", format.ErrFormat)
	}

	le := endian.GetLittleEndianEngine()
	if magic := le.Uint32(data[:4]); magic != zstdMagic {
		return nil, fmt.Errorf("%w: invalid frame magic %08x", format.ErrFormat, magic)
	}

	descriptor := data[4]
	pos := 5
	declared := int64(-1)
	switch descriptor {
	case zstdNoContentSize:
	case zstdContentSize32:
		if len(data) < pos+4+4 {
			return nil, fmt.Errorf("%w: truncated content size field", format.ErrFormat)
		}
		declared = int64(le.Uint32(data[pos:]))
		pos += 4
	case zstdContentSize64:
		if len(data) < pos+8+4 {
			return nil, fmt.Errorf("%w: truncated content size field", format.ErrFormat)
		}
		declared = int64(le.Uint64(data[pos:]))
		pos += 8
	default:
		return nil, fmt.Errorf("%w: invalid frame header descriptor %02x", format.ErrFormat, descriptor)
	}

	payload := data[pos : len(data)-4]
	out, err := deflate.Decompress(payload)
	if err != nil {
		return nil, err
	}

	if declared >= 0 && declared != int64(len(out)) {
		return nil, fmt.Errorf("%w: content size mismatch: declared %d, decompressed %d", format.ErrIntegrity, declared, len(out))
	}
	stored := le.Uint32(data[len(data)-4:])
	if sum := uint32(checksum.XXHash64(out, zstdChecksumSeed)); sum != stored {
		return nil, fmt.Errorf("%w: frame checksum mismatch: computed %08x, stored %08x", format.ErrIntegrity, sum, stored)
	}

	return out, nil
}
