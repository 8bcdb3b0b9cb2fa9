package deflate

import (
	"fmt"

	"github.com/hquaid/squash/bitstream"
	"github.com/hquaid/squash/format"
)

// Decompress decodes a deflate (RFC 1951) stream.
//
// All three block types are accepted: stored, fixed-Huffman and
// dynamic-Huffman, so streams produced by external tools decode as well as
// this package's own output. Malformed input reports format.ErrFormat and
// never returns partial output.
func Decompress(data []byte) ([]byte, error) {
	return DecompressFrom(bitstream.NewReader(data))
}

// DecompressFrom decodes a deflate stream from an existing bit reader,
// leaving the reader positioned just past the final block. Framing layers
// use this to read their trailers from the remaining bytes.
func DecompressFrom(r *bitstream.Reader) ([]byte, error) {
	out := make([]byte, 0, 512)

	for {
		bfinal, err := r.ReadBit()
		if err != nil {
			return nil, err
		}
		btype, err := r.ReadBits(2)
		if err != nil {
			return nil, err
		}

		switch btype {
		case 0:
			out, err = readStoredBlock(r, out)
		case 1:
			out, err = readCodedBlock(r, out, fixedLitLenTable(), fixedDistTable())
		case 2:
			var lit, dist *decodeTable
			lit, dist, err = readDynamicHeader(r)
			if err == nil {
				out, err = readCodedBlock(r, out, lit, dist)
			}
		default:
			return nil, fmt.Errorf("%w: invalid block type 3", format.ErrFormat)
		}
		if err != nil {
			return nil, err
		}

		if bfinal == 1 {
			return out, nil
		}
	}
}

// readStoredBlock copies an uncompressed block: byte alignment, LEN and its
// one's complement NLEN, then LEN raw bytes.
func readStoredBlock(r *bitstream.Reader, out []byte) ([]byte, error) {
	r.AlignByte()
	hdr, err := r.ReadBytes(4)
	if err != nil {
		return nil, err
	}
	length := int(hdr[0]) | int(hdr[1])<<8
	nlen := int(hdr[2]) | int(hdr[3])<<8
	if length^0xFFFF != nlen {
		return nil, fmt.Errorf("%w: stored block length check failed", format.ErrFormat)
	}

	raw, err := r.ReadBytes(length)
	if err != nil {
		return nil, err
	}

	return append(out, raw...), nil
}

// readCodedBlock decodes symbols until the end-of-block code, copying
// literals and expanding back-references against the produced output.
func readCodedBlock(r *bitstream.Reader, out []byte, lit, dist *decodeTable) ([]byte, error) {
	for {
		sym, err := lit.decode(r)
		if err != nil {
			return nil, err
		}

		switch {
		case sym < endOfBlock:
			out = append(out, byte(sym))
		case sym == endOfBlock:
			return out, nil
		case sym < 257+len(lengthBase):
			lc := sym - 257
			extra, err := r.ReadBits(uint(lengthExtra[lc]))
			if err != nil {
				return nil, err
			}
			length := int(lengthBase[lc]) + int(extra)

			if dist.empty() {
				return nil, fmt.Errorf("%w: back-reference with no distance code", format.ErrFormat)
			}
			dsym, err := dist.decode(r)
			if err != nil {
				return nil, err
			}
			if dsym >= numDistSymbols {
				return nil, fmt.Errorf("%w: invalid distance code %d", format.ErrFormat, dsym)
			}
			dextra, err := r.ReadBits(uint(distExtra[dsym]))
			if err != nil {
				return nil, err
			}
			distance := int(distBase[dsym]) + int(dextra)
			if distance > len(out) {
				return nil, fmt.Errorf("%w: back-reference distance %d exceeds %d produced bytes", format.ErrFormat, distance, len(out))
			}

			// Byte-wise copy: the source may overlap the bytes being
			// written, which is how runs expand.
			for n := 0; n < length; n++ {
				out = append(out, out[len(out)-distance])
			}
		default:
			return nil, fmt.Errorf("%w: invalid literal/length symbol %d", format.ErrFormat, sym)
		}
	}
}

// readDynamicHeader reconstructs the literal/length and distance decoding
// tables from the serialized code-length description.
func readDynamicHeader(r *bitstream.Reader) (*decodeTable, *decodeTable, error) {
	hlit, err := r.ReadBits(5)
	if err != nil {
		return nil, nil, err
	}
	hdist, err := r.ReadBits(5)
	if err != nil {
		return nil, nil, err
	}
	hclen, err := r.ReadBits(4)
	if err != nil {
		return nil, nil, err
	}

	numLit := int(hlit) + 257
	numDist := int(hdist) + 1
	numCl := int(hclen) + 4
	if numLit > numLitLenSymbols {
		return nil, nil, fmt.Errorf("%w: %d literal/length codes exceeds %d", format.ErrFormat, numLit, numLitLenSymbols)
	}
	if numDist > numDistSymbols {
		return nil, nil, fmt.Errorf("%w: %d distance codes exceeds %d", format.ErrFormat, numDist, numDistSymbols)
	}

	var clLengths [numCodeLenCodes]uint8
	for i := 0; i < numCl; i++ {
		v, err := r.ReadBits(3)
		if err != nil {
			return nil, nil, err
		}
		clLengths[codeLenOrder[i]] = uint8(v)
	}
	clTable, err := newDecodeTable(clLengths[:])
	if err != nil {
		return nil, nil, err
	}
	if clTable.empty() {
		return nil, nil, fmt.Errorf("%w: empty code-length alphabet", format.ErrFormat)
	}

	lengths := make([]uint8, numLit+numDist)
	for i := 0; i < len(lengths); {
		sym, err := clTable.decode(r)
		if err != nil {
			return nil, nil, err
		}

		switch {
		case sym < 16:
			lengths[i] = uint8(sym)
			i++
		case sym == 16:
			if i == 0 {
				return nil, nil, fmt.Errorf("%w: repeat code with no previous length", format.ErrFormat)
			}
			n, err := r.ReadBits(2)
			if err != nil {
				return nil, nil, err
			}
			i, err = repeatLength(lengths, i, lengths[i-1], int(n)+3)
			if err != nil {
				return nil, nil, err
			}
		case sym == 17:
			n, err := r.ReadBits(3)
			if err != nil {
				return nil, nil, err
			}
			i, err = repeatLength(lengths, i, 0, int(n)+3)
			if err != nil {
				return nil, nil, err
			}
		default: // 18
			n, err := r.ReadBits(7)
			if err != nil {
				return nil, nil, err
			}
			i, err = repeatLength(lengths, i, 0, int(n)+11)
			if err != nil {
				return nil, nil, err
			}
		}
	}

	litLengths := lengths[:numLit]
	used := false
	for _, l := range litLengths {
		if l > 0 {
			used = true
			break
		}
	}
	if !used {
		return nil, nil, fmt.Errorf("%w: literal/length alphabet describes no symbols", format.ErrFormat)
	}

	lit, err := newDecodeTable(litLengths)
	if err != nil {
		return nil, nil, err
	}
	dist, err := newDecodeTable(lengths[numLit:])
	if err != nil {
		return nil, nil, err
	}

	return lit, dist, nil
}

// repeatLength fills count entries starting at i with value, guarding
// against runs that spill past the declared table sizes.
func repeatLength(lengths []uint8, i int, value uint8, count int) (int, error) {
	if i+count > len(lengths) {
		return 0, fmt.Errorf("%w: code length repeat overflows table", format.ErrFormat)
	}
	for n := 0; n < count; n++ {
		lengths[i] = value
		i++
	}

	return i, nil
}

// Fixed-Huffman tables are immutable and shared by all decoders; both
// length sets are well formed, so construction cannot fail.
var (
	fixedLit, _  = newDecodeTable(fixedLitLenLengths())
	fixedDist, _ = newDecodeTable(fixedDistLengths())
)

func fixedLitLenTable() *decodeTable {
	return fixedLit
}

func fixedDistTable() *decodeTable {
	return fixedDist
}
