package deflate

import (
	"github.com/hquaid/squash/bitstream"
)

// Compress encodes data as a deflate (RFC 1951) stream built from
// dynamic-Huffman blocks.
//
// The match finder runs once over the whole input so back-references may
// span block boundaries; the token sequence is then cut into blocks of at
// most maxTokensPerBlock, each carrying its own code tables. The empty input
// produces a valid one-block stream holding only the end-of-block symbol.
//
// Returns:
//   - []byte: The compressed stream, owned by the caller
//   - error: Always nil today; the signature matches the codec contract
func Compress(data []byte) ([]byte, error) {
	w := bitstream.NewWriter()

	tokens := findTokens(data)
	for start := 0; ; start += maxTokensPerBlock {
		end := start + maxTokensPerBlock
		if end >= len(tokens) {
			end = len(tokens)
		}
		final := end == len(tokens)
		writeBlock(w, tokens[start:end], final)
		if final {
			break
		}
	}
	w.Flush()

	out := append([]byte(nil), w.Bytes()...)
	w.Release()

	return out, nil
}

// clToken is one serialized code-length symbol: sym 0-15 is a literal
// length, 16 repeats the previous length, 17/18 repeat zero.
type clToken struct {
	sym       uint8
	extra     uint32
	extraBits uint8
}

// writeBlock emits one dynamic-Huffman block for the given token slice.
func writeBlock(w *bitstream.Writer, tokens []token, final bool) {
	var litLenFreq [numLitLenSymbols]int
	var distFreq [numDistSymbols]int

	for _, t := range tokens {
		if t.isMatch() {
			lc, _ := lengthToCode(t.length())
			litLenFreq[257+lc]++
			dc, _ := distToCode(t.dist())
			distFreq[dc]++
		} else {
			litLenFreq[t.literal()]++
		}
	}
	litLenFreq[endOfBlock]++

	litLengths := buildCodeLengths(litLenFreq[:], maxCodeBits)
	distLengths := buildCodeLengths(distFreq[:], maxCodeBits)

	// A block with no matches still transmits one dummy distance code;
	// decoders accept the degenerate single-code table.
	hasDist := false
	for _, l := range distLengths {
		if l > 0 {
			hasDist = true
			break
		}
	}
	if !hasDist {
		distLengths[0] = 1
	}

	litCodes := canonicalCodes(litLengths, maxCodeBits)
	distCodes := canonicalCodes(distLengths, maxCodeBits)

	numLit := numLitLenSymbols
	for numLit > 257 && litLengths[numLit-1] == 0 {
		numLit--
	}
	numDist := numDistSymbols
	for numDist > 1 && distLengths[numDist-1] == 0 {
		numDist--
	}

	// Run-length encode the concatenated length arrays with the
	// code-length alphabet, then Huffman-code that alphabet too.
	allLengths := make([]uint8, 0, numLit+numDist)
	allLengths = append(allLengths, litLengths[:numLit]...)
	allLengths = append(allLengths, distLengths[:numDist]...)
	clTokens := encodeCodeLengths(allLengths)

	var clFreq [numCodeLenCodes]int
	for _, ct := range clTokens {
		clFreq[ct.sym]++
	}
	clLengths := buildCodeLengths(clFreq[:], maxCodeLenCodeBits)
	clCodes := canonicalCodes(clLengths, maxCodeLenCodeBits)

	numCl := numCodeLenCodes
	for numCl > 4 && clLengths[codeLenOrder[numCl-1]] == 0 {
		numCl--
	}

	// Block header.
	if final {
		w.WriteBits(1, 1)
	} else {
		w.WriteBits(0, 1)
	}
	w.WriteBits(2, 2) // dynamic Huffman block
	w.WriteBits(uint32(numLit-257), 5)
	w.WriteBits(uint32(numDist-1), 5)
	w.WriteBits(uint32(numCl-4), 4)
	for i := 0; i < numCl; i++ {
		w.WriteBits(uint32(clLengths[codeLenOrder[i]]), 3)
	}
	for _, ct := range clTokens {
		writeCode(w, clCodes[ct.sym], clLengths[ct.sym])
		if ct.extraBits > 0 {
			w.WriteBits(ct.extra, uint(ct.extraBits))
		}
	}

	// Block body.
	for _, t := range tokens {
		if t.isMatch() {
			lc, lres := lengthToCode(t.length())
			writeCode(w, litCodes[257+lc], litLengths[257+lc])
			if lengthExtra[lc] > 0 {
				w.WriteBits(lres, uint(lengthExtra[lc]))
			}

			dc, dres := distToCode(t.dist())
			writeCode(w, distCodes[dc], distLengths[dc])
			if distExtra[dc] > 0 {
				w.WriteBits(dres, uint(distExtra[dc]))
			}
		} else {
			lit := t.literal()
			writeCode(w, litCodes[lit], litLengths[lit])
		}
	}
	writeCode(w, litCodes[endOfBlock], litLengths[endOfBlock])
}

// encodeCodeLengths run-length encodes a code length sequence using the
// 0-18 code-length alphabet: 16 repeats the previous length 3-6 times,
// 17 repeats zero 3-10 times, 18 repeats zero 11-138 times.
func encodeCodeLengths(lengths []uint8) []clToken {
	var out []clToken

	for i := 0; i < len(lengths); {
		cur := lengths[i]
		run := 1
		for i+run < len(lengths) && lengths[i+run] == cur {
			run++
		}

		if cur == 0 {
			rem := run
			for rem >= 11 {
				n := rem
				if n > 138 {
					n = 138
				}
				out = append(out, clToken{sym: 18, extra: uint32(n - 11), extraBits: 7})
				rem -= n
			}
			if rem >= 3 {
				out = append(out, clToken{sym: 17, extra: uint32(rem - 3), extraBits: 3})
				rem = 0
			}
			for ; rem > 0; rem-- {
				out = append(out, clToken{sym: 0})
			}
		} else {
			out = append(out, clToken{sym: cur})
			rem := run - 1
			for rem >= 3 {
				n := rem
				if n > 6 {
					n = 6
				}
				out = append(out, clToken{sym: 16, extra: uint32(n - 3), extraBits: 2})
				rem -= n
			}
			for ; rem > 0; rem-- {
				out = append(out, clToken{sym: cur})
			}
		}
		i += run
	}

	return out
}
