package codec

import (
	"bytes"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/hquaid/squash/format"
)

func testPayloads() map[string][]byte {
	rng := rand.New(rand.NewSource(3))
	random := make([]byte, 32*1024)
	rng.Read(random)

	return map[string][]byte{
		"empty":      {},
		"single":     {0x7F},
		"aaa":        []byte("aaa"),
		"text":       []byte("pack my box with five dozen liquor jugs"),
		"repetitive": bytes.Repeat([]byte("0123456789"), 2000),
		"random":     random,
	}
}

func TestGetCodec(t *testing.T) {
	for _, alg := range []format.Algorithm{
		format.AlgorithmDeflate,
		format.AlgorithmGzip,
		format.AlgorithmZstd,
		format.AlgorithmLz4,
	} {
		c, err := GetCodec(alg)
		require.NoError(t, err)
		require.NotNil(t, c)
	}

	_, err := GetCodec(format.Algorithm(0x7F))
	require.Error(t, err)
}

func TestAllCodecsRoundTrip(t *testing.T) {
	algorithms := []format.Algorithm{
		format.AlgorithmDeflate,
		format.AlgorithmGzip,
		format.AlgorithmZstd,
		format.AlgorithmLz4,
	}

	for _, alg := range algorithms {
		c, err := GetCodec(alg)
		require.NoError(t, err)

		for name, payload := range testPayloads() {
			t.Run(alg.String()+"/"+name, func(t *testing.T) {
				compressed, err := c.Compress(payload)
				require.NoError(t, err)

				restored, err := c.Decompress(compressed)
				require.NoError(t, err)
				if len(payload) == 0 {
					require.Empty(t, restored)
				} else {
					require.Equal(t, payload, restored)
				}
			})
		}
	}
}

func TestCompressionStats(t *testing.T) {
	s := CompressionStats{
		Algorithm:      format.AlgorithmDeflate,
		OriginalSize:   1000,
		CompressedSize: 250,
	}
	require.InDelta(t, 0.25, s.CompressionRatio(), 1e-9)
	require.InDelta(t, 75.0, s.SpaceSavings(), 1e-9)

	empty := CompressionStats{}
	require.Zero(t, empty.CompressionRatio())
}
