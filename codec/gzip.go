package codec

import (
	"bytes"
	"fmt"

	"github.com/hquaid/squash/bitstream"
	"github.com/hquaid/squash/checksum"
	"github.com/hquaid/squash/deflate"
	"github.com/hquaid/squash/endian"
	"github.com/hquaid/squash/format"
)

// Gzip member layout constants (RFC 1952).
const (
	gzipID1    = 0x1F
	gzipID2    = 0x8B
	gzipMethod = 8 // deflate

	gzipFlagHCRC    = 1 << 1
	gzipFlagExtra   = 1 << 2
	gzipFlagName    = 1 << 3
	gzipFlagComment = 1 << 4

	gzipHeaderLen  = 10
	gzipTrailerLen = 8

	gzipOSUnknown = 0xFF
)

// GzipCodec wraps the deflate primitive in an RFC 1952 member: a 10-byte
// header and a trailer holding the CRC32 of the uncompressed data and the
// uncompressed size modulo 2^32, both little-endian.
//
// Decompress verifies both trailer fields; a mismatch reports
// format.ErrIntegrity, distinct from the format.ErrFormat raised for
// unparseable input, so callers can tell "corrupt" from "not gzip".
type GzipCodec struct{}

var _ Codec = (*GzipCodec)(nil)

// NewGzipCodec creates a new gzip codec.
func NewGzipCodec() GzipCodec {
	return GzipCodec{}
}

// Compress produces a single gzip member. The modification time is written
// as zero (unknown) and the OS byte as 0xFF, matching common writers that
// carry no file metadata.
func (c GzipCodec) Compress(data []byte) ([]byte, error) {
	payload, err := deflate.Compress(data)
	if err != nil {
		return nil, err
	}

	le := endian.GetLittleEndianEngine()
	out := make([]byte, 0, gzipHeaderLen+len(payload)+gzipTrailerLen)
	out = append(out, gzipID1, gzipID2, gzipMethod, 0)
	out = le.AppendUint32(out, 0) // mtime unknown
	out = append(out, 0, gzipOSUnknown)
	out = append(out, payload...)
	out = le.AppendUint32(out, checksum.Crc32(data))
	out = le.AppendUint32(out, uint32(len(data)))

	return out, nil
}

// Decompress parses a single gzip member, inflates its payload and verifies
// the CRC32 and size trailer. Optional header fields written by other tools
// (extra data, file name, comment, header CRC) are skipped.
func (c GzipCodec) Decompress(data []byte) ([]byte, error) {
	pos, err := parseGzipHeader(data)
	if err != nil {
		return nil, err
	}

	br := bitstream.NewReader(data[pos:])
	out, err := deflate.DecompressFrom(br)
	if err != nil {
		return nil, err
	}

	br.AlignByte()
	if br.Remaining() != gzipTrailerLen {
		return nil, fmt.Errorf("%w: gzip member has %d trailer bytes, want %d", format.ErrFormat, br.Remaining(), gzipTrailerLen)
	}
	trailer, err := br.ReadBytes(gzipTrailerLen)
	if err != nil {
		return nil, err
	}

	le := endian.GetLittleEndianEngine()
	if crc := checksum.Crc32(out); crc != le.Uint32(trailer[:4]) {
		return nil, fmt.Errorf("%w: gzip CRC32 mismatch: computed %08x, stored %08x", format.ErrIntegrity, crc, le.Uint32(trailer[:4]))
	}
	if size := uint32(len(out)); size != le.Uint32(trailer[4:]) {
		return nil, fmt.Errorf("%w: gzip size mismatch: decompressed %d, stored %d", format.ErrIntegrity, size, le.Uint32(trailer[4:]))
	}

	return out, nil
}

// parseGzipHeader validates the fixed header and returns the offset of the
// deflate payload, past any optional fields the flags announce.
func parseGzipHeader(data []byte) (int, error) {
	if len(data) < gzipHeaderLen+gzipTrailerLen {
		return 0, fmt.Errorf("%w: input shorter than minimal gzip member", format.ErrFormat)
	}
	if data[0] != gzipID1 || data[1] != gzipID2 {
		return 0, fmt.Errorf("%w: invalid gzip magic %02x %02x", format.ErrFormat, data[0], data[1])
	}
	if data[2] != gzipMethod {
		return 0, fmt.Errorf("%w: unsupported gzip compression method %d", format.ErrFormat, data[2])
	}

	flags := data[3]
	pos := gzipHeaderLen
	le := endian.GetLittleEndianEngine()

	if flags&gzipFlagExtra != 0 {
		if pos+2 > len(data) {
			return 0, fmt.Errorf("%w: truncated gzip extra field", format.ErrFormat)
		}
		pos += 2 + int(le.Uint16(data[pos:]))
		if pos > len(data) {
			return 0, fmt.Errorf("%w: truncated gzip extra field", format.ErrFormat)
		}
	}
	for _, fl := range []byte{gzipFlagName, gzipFlagComment} {
		if flags&fl != 0 {
			var err error
			pos, err = skipZeroTerminated(data, pos)
			if err != nil {
				return 0, err
			}
		}
	}
	if flags&gzipFlagHCRC != 0 {
		pos += 2
	}
	if pos > len(data)-gzipTrailerLen {
		return 0, fmt.Errorf("%w: truncated gzip header", format.ErrFormat)
	}

	return pos, nil
}

func skipZeroTerminated(data []byte, pos int) (int, error) {
	idx := bytes.IndexByte(data[pos:], 0)
	if idx < 0 {
		return 0, fmt.Errorf("%w: unterminated gzip header string", format.ErrFormat)
	}

	return pos + idx + 1, nil
}
