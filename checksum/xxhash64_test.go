package checksum

import (
	"math/rand"
	"testing"

	"github.com/cespare/xxhash/v2"
	"github.com/stretchr/testify/require"
)

func TestXXHash64EmptyVector(t *testing.T) {
	// Reference vector from the XXH64 specification.
	require.Equal(t, uint64(0xEF46DB3751D8E999), XXHash64(nil, 0))
}

func TestXXHash64MatchesReference(t *testing.T) {
	rng := rand.New(rand.NewSource(7))

	// Cover every tail-length class: <4, <8, <32, exact block multiples and
	// blocks with every remainder shape.
	sizes := []int{0, 1, 2, 3, 4, 5, 7, 8, 9, 15, 16, 31, 32, 33, 39, 40, 44, 45, 63, 64, 100, 1023, 4096}
	for _, size := range sizes {
		data := make([]byte, size)
		rng.Read(data)
		require.Equal(t, xxhash.Sum64(data), XXHash64(data, 0), "size %d", size)
	}
}

func TestXXHash64SeedChangesDigest(t *testing.T) {
	data := []byte("payload under test, long enough to exercise the block loop!!")
	require.NotEqual(t, XXHash64(data, 0), XXHash64(data, 1))
	require.NotEqual(t, XXHash64(data[:8], 0), XXHash64(data[:8], 1))
	require.Equal(t, XXHash64(data, 99), XXHash64(data, 99))
}
