package checksum

// crc32Table is the 256-entry lookup table for the reversed IEEE 802.3
// polynomial 0xEDB88320, computed once at package init.
var crc32Table [256]uint32

func init() {
	for i := range crc32Table {
		c := uint32(i)
		for k := 0; k < 8; k++ {
			if c&1 != 0 {
				c = 0xEDB88320 ^ (c >> 1)
			} else {
				c >>= 1
			}
		}
		crc32Table[i] = c
	}
}

// Crc32 computes the CRC-32 checksum of data using the reversed IEEE 802.3
// polynomial, matching the value produced by standard gzip/zip tooling.
//
// The register starts at 0xFFFFFFFF, consumes one byte per step through the
// lookup table, and is inverted on output. The empty input yields 0.
//
// Parameters:
//   - data: Input bytes to checksum
//
// Returns:
//   - uint32: CRC-32 of data
func Crc32(data []byte) uint32 {
	crc := ^uint32(0)
	for _, b := range data {
		crc = crc32Table[byte(crc)^b] ^ (crc >> 8)
	}

	return ^crc
}

// Crc32Update continues a running CRC-32 computation.
//
// The crc argument is the value returned by a previous Crc32 or Crc32Update
// call; streaming consumers feed chunks without buffering the whole payload.
func Crc32Update(crc uint32, data []byte) uint32 {
	c := ^crc
	for _, b := range data {
		c = crc32Table[byte(c)^b] ^ (c >> 8)
	}

	return ^c
}
