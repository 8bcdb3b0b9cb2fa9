package pool

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestByteBufferGrowAndWrite(t *testing.T) {
	bb := NewByteBuffer(8)
	require.Equal(t, 0, bb.Len())
	require.Equal(t, 8, bb.Cap())

	bb.MustWrite([]byte("hello"))
	require.Equal(t, []byte("hello"), bb.Bytes())

	n, err := bb.Write([]byte(" world"))
	require.NoError(t, err)
	require.Equal(t, 6, n)
	require.Equal(t, "hello world", string(bb.Bytes()))

	require.NoError(t, bb.WriteByte('!'))
	require.Equal(t, "hello world!", string(bb.Bytes()))

	bb.Grow(1 << 16)
	require.GreaterOrEqual(t, bb.Cap()-bb.Len(), 1<<16)
	require.Equal(t, "hello world!", string(bb.Bytes()))

	bb.Reset()
	require.Equal(t, 0, bb.Len())
}

func TestByteBufferPoolRetention(t *testing.T) {
	p := NewByteBufferPool(16, 64)

	bb := p.Get()
	bb.MustWrite(make([]byte, 32))
	p.Put(bb)

	// A buffer grown past the threshold must not be retained; a fresh Get
	// still works either way.
	big := p.Get()
	big.MustWrite(make([]byte, 1024))
	p.Put(big)

	next := p.Get()
	require.Equal(t, 0, next.Len())
}

func TestGetInt32Slice(t *testing.T) {
	s, cleanup := GetInt32Slice(128, -1)
	require.Len(t, s, 128)
	for _, v := range s {
		require.Equal(t, int32(-1), v)
	}
	s[5] = 42
	cleanup()

	// Reused slices must come back re-filled.
	s2, cleanup2 := GetInt32Slice(64, 0)
	defer cleanup2()
	require.Len(t, s2, 64)
	for _, v := range s2 {
		require.Equal(t, int32(0), v)
	}
}
