package squash

import (
	"bytes"
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/hquaid/squash/format"
)

func TestOneShotRoundTrip(t *testing.T) {
	payload := bytes.Repeat([]byte("top-level helper round trip "), 64)

	for _, alg := range []format.Algorithm{Deflate, Gzip, Zstd, Lz4} {
		t.Run(alg.String(), func(t *testing.T) {
			compressed, err := Compress(payload, alg)
			require.NoError(t, err)
			require.Less(t, len(compressed), len(payload))

			restored, err := Decompress(compressed, alg)
			require.NoError(t, err)
			require.Equal(t, payload, restored)
		})
	}
}

func TestOneShotUnknownAlgorithm(t *testing.T) {
	_, err := Compress([]byte("data"), format.Algorithm(0xFF))
	require.Error(t, err)

	_, err = Decompress([]byte("data"), format.Algorithm(0xFF))
	require.Error(t, err)
}

func TestFacadeManager(t *testing.T) {
	mgr, err := NewManager(WithWorkers(2))
	require.NoError(t, err)

	mgr.Start()
	defer mgr.Stop()

	payload := bytes.Repeat([]byte("facade manager payload "), 128)

	h, err := mgr.Compress(payload, Gzip, High, "")
	require.NoError(t, err)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	compressed, err := h.Wait(ctx)
	require.NoError(t, err)
	require.Less(t, len(compressed), len(payload))

	dh, err := mgr.Decompress(compressed, Gzip, Normal)
	require.NoError(t, err)

	restored, err := dh.Wait(ctx)
	require.NoError(t, err)
	require.Equal(t, payload, restored)
}
