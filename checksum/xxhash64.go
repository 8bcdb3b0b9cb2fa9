package checksum

import (
	"encoding/binary"
	"math/bits"
)

// XXHash64 primes, fixed by the algorithm definition.
const (
	prime1 uint64 = 11400714785074694791
	prime2 uint64 = 14029467366897019727
	prime3 uint64 = 1609587929392839161
	prime4 uint64 = 9650029242287828579
	prime5 uint64 = 2870177450012600261
)

// XXHash64 computes the 64-bit XXHash of data with the given seed.
//
// Inputs of 32 bytes or more run four accumulators over 32-byte blocks, merge
// them with rotate-and-add plus a merge round each, then fall through to the
// common tail. Shorter inputs start from seed+prime5 and go straight to the
// tail, which folds remaining bytes in 8-, 4-, then 1-byte steps before the
// final avalanche mix.
//
// The output is byte-exact with the reference XXH64 implementation, so frame
// checksums produced here validate against external tooling.
//
// Parameters:
//   - data: Input bytes to hash
//   - seed: Hash seed (0 for the conventional unseeded digest)
//
// Returns:
//   - uint64: XXHash64 of data
func XXHash64(data []byte, seed uint64) uint64 {
	n := uint64(len(data))

	var h uint64
	if len(data) >= 32 {
		v1 := seed + prime1 + prime2
		v2 := seed + prime2
		v3 := seed
		v4 := seed - prime1

		for len(data) >= 32 {
			v1 = round(v1, binary.LittleEndian.Uint64(data[0:8]))
			v2 = round(v2, binary.LittleEndian.Uint64(data[8:16]))
			v3 = round(v3, binary.LittleEndian.Uint64(data[16:24]))
			v4 = round(v4, binary.LittleEndian.Uint64(data[24:32]))
			data = data[32:]
		}

		h = bits.RotateLeft64(v1, 1) + bits.RotateLeft64(v2, 7) +
			bits.RotateLeft64(v3, 12) + bits.RotateLeft64(v4, 18)
		h = mergeRound(h, v1)
		h = mergeRound(h, v2)
		h = mergeRound(h, v3)
		h = mergeRound(h, v4)
	} else {
		h = seed + prime5
	}

	h += n

	for len(data) >= 8 {
		h ^= round(0, binary.LittleEndian.Uint64(data[0:8]))
		h = bits.RotateLeft64(h, 27)*prime1 + prime4
		data = data[8:]
	}
	if len(data) >= 4 {
		h ^= uint64(binary.LittleEndian.Uint32(data[0:4])) * prime1
		h = bits.RotateLeft64(h, 23)*prime2 + prime3
		data = data[4:]
	}
	for _, b := range data {
		h ^= uint64(b) * prime5
		h = bits.RotateLeft64(h, 11) * prime1
	}

	// Final avalanche.
	h ^= h >> 33
	h *= prime2
	h ^= h >> 29
	h *= prime3
	h ^= h >> 32

	return h
}

// round is the core multiply-rotate-multiply lane mixer.
func round(acc, lane uint64) uint64 {
	acc += lane * prime2
	acc = bits.RotateLeft64(acc, 31)
	acc *= prime1

	return acc
}

// mergeRound folds one accumulator into the combined hash.
func mergeRound(h, v uint64) uint64 {
	h ^= round(0, v)
	h = h*prime1 + prime4

	return h
}
