package deflate

// RFC 1951 alphabet parameters.
const (
	maxWindowSize = 32768 // farthest back-reference distance
	minMatchLen   = 3     // shorter matches cost more than literals
	maxMatchLen   = 258   // longest encodable match

	numLitLenSymbols = 286 // 0-255 literals, 256 end-of-block, 257-285 lengths
	numDistSymbols   = 30
	numCodeLenCodes  = 19

	endOfBlock = 256

	maxCodeBits        = 15 // litlen and distance code length limit
	maxCodeLenCodeBits = 7  // code-length alphabet limit

	// maxTokensPerBlock bounds a single dynamic block so per-block Huffman
	// tables track local symbol statistics on large inputs.
	maxTokensPerBlock = 1 << 16
)

// lengthBase and lengthExtra describe length codes 257..285: the base match
// length of each code and how many extra bits carry the residual.
var lengthBase = [29]uint16{
	3, 4, 5, 6, 7, 8, 9, 10, 11, 13,
	15, 17, 19, 23, 27, 31, 35, 43, 51, 59,
	67, 83, 99, 115, 131, 163, 195, 227, 258,
}

var lengthExtra = [29]uint8{
	0, 0, 0, 0, 0, 0, 0, 0, 1, 1,
	1, 1, 2, 2, 2, 2, 3, 3, 3, 3,
	4, 4, 4, 4, 5, 5, 5, 5, 0,
}

// distBase and distExtra describe distance codes 0..29.
var distBase = [30]uint16{
	1, 2, 3, 4, 5, 7, 9, 13, 17, 25,
	33, 49, 65, 97, 129, 193, 257, 385, 513, 769,
	1025, 1537, 2049, 3073, 4097, 6145, 8193, 12289, 16385, 24577,
}

var distExtra = [30]uint8{
	0, 0, 0, 0, 1, 1, 2, 2, 3, 3,
	4, 4, 5, 5, 6, 6, 7, 7, 8, 8,
	9, 9, 10, 10, 11, 11, 12, 12, 13, 13,
}

// codeLenOrder is the transmission order of code-length-code lengths in a
// dynamic block header.
var codeLenOrder = [numCodeLenCodes]uint8{
	16, 17, 18, 0, 8, 7, 9, 6, 10, 5, 11, 4, 12, 3, 13, 2, 14, 1, 15,
}

// lengthCodes maps match length - minMatchLen to the length code index
// (0..28, i.e. symbol 257+index).
var lengthCodes [maxMatchLen - minMatchLen + 1]uint8

func init() {
	for code := range lengthBase {
		base := int(lengthBase[code])
		span := 1 << lengthExtra[code]
		for l := base; l < base+span && l <= maxMatchLen; l++ {
			lengthCodes[l-minMatchLen] = uint8(code)
		}
	}
	// Length 258 has its own zero-extra-bit code.
	lengthCodes[maxMatchLen-minMatchLen] = 28
}

// lengthToCode returns the length code index and residual for a match length.
func lengthToCode(length int) (code int, residual uint32) {
	code = int(lengthCodes[length-minMatchLen])

	return code, uint32(length - int(lengthBase[code]))
}

// distToCode returns the distance code index and residual for a distance.
func distToCode(dist int) (code int, residual uint32) {
	code = len(distBase) - 1
	for i := 1; i < len(distBase); i++ {
		if int(distBase[i]) > dist {
			code = i - 1
			break
		}
	}

	return code, uint32(dist - int(distBase[code]))
}

// fixedLitLenLengths returns the fixed-Huffman literal/length code lengths
// (BTYPE 1). Symbols 286 and 287 participate in code construction but are
// invalid when decoded.
func fixedLitLenLengths() []uint8 {
	lengths := make([]uint8, 288)
	for i := 0; i <= 143; i++ {
		lengths[i] = 8
	}
	for i := 144; i <= 255; i++ {
		lengths[i] = 9
	}
	for i := 256; i <= 279; i++ {
		lengths[i] = 7
	}
	for i := 280; i <= 287; i++ {
		lengths[i] = 8
	}

	return lengths
}

// fixedDistLengths returns the fixed-Huffman distance code lengths; codes 30
// and 31 are invalid when decoded.
func fixedDistLengths() []uint8 {
	lengths := make([]uint8, 32)
	for i := range lengths {
		lengths[i] = 5
	}

	return lengths
}
