package deflate

// token is one LZ77 output symbol: a literal byte or a (length, distance)
// back-reference, packed into 32 bits.
//
// Layout: bit 31 set for matches; bits 9-24 hold the distance (1..32768);
// bits 0-7 hold length-minMatchLen for matches or the literal byte value.
type token uint32

const matchFlag token = 1 << 31

func literalToken(b byte) token {
	return token(b)
}

func matchToken(length, dist int) token {
	return matchFlag | token(dist)<<9 | token(length-minMatchLen)
}

func (t token) isMatch() bool {
	return t&matchFlag != 0
}

func (t token) literal() byte {
	return byte(t)
}

func (t token) length() int {
	return int(t&0xFF) + minMatchLen
}

func (t token) dist() int {
	return int(t>>9) & 0xFFFF
}
