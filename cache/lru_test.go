package cache

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestPutGetRoundTrip(t *testing.T) {
	c := New(1024)

	require.True(t, c.Put("k1", []byte("hello")))
	got, ok := c.Get("k1")
	require.True(t, ok)
	require.Equal(t, []byte("hello"), got)

	_, ok = c.Get("absent")
	require.False(t, ok)

	require.Equal(t, 1, c.Len())
	require.Equal(t, int64(5), c.Size())
}

func TestPutCopiesData(t *testing.T) {
	c := New(1024)
	data := []byte("mutable")
	c.Put("k", data)
	data[0] = 'X'

	got, ok := c.Get("k")
	require.True(t, ok)
	require.Equal(t, []byte("mutable"), got)
}

func TestGetReturnsIndependentCopy(t *testing.T) {
	c := New(1024)
	c.Put("k", []byte("pristine"))

	first, ok := c.Get("k")
	require.True(t, ok)
	first[0] = 'X'

	second, ok := c.Get("k")
	require.True(t, ok)
	require.Equal(t, []byte("pristine"), second)
}

func TestReplaceAdjustsSize(t *testing.T) {
	c := New(100)
	c.Put("k", make([]byte, 60))
	require.Equal(t, int64(60), c.Size())

	c.Put("k", make([]byte, 30))
	require.Equal(t, int64(30), c.Size())
	require.Equal(t, 1, c.Len())
}

func TestCapacityInvariantUnderChurn(t *testing.T) {
	const capacity = 1000
	c := New(capacity)

	for i := 0; i < 200; i++ {
		size := (i*37)%96 + 1
		require.True(t, c.Put(fmt.Sprintf("key-%d", i%50), make([]byte, size)))
		require.LessOrEqual(t, c.Size(), int64(capacity), "after put %d", i)
	}
}

func TestEvictsLeastRecentlyUsed(t *testing.T) {
	c := New(100)
	c.Put("a", make([]byte, 40))
	c.Put("b", make([]byte, 40))

	// Touch "a" so "b" is the stalest entry.
	_, ok := c.Get("a")
	require.True(t, ok)

	c.Put("c", make([]byte, 40))

	_, ok = c.Get("b")
	require.False(t, ok, "least-recently-used entry should have been evicted")
	_, ok = c.Get("a")
	require.True(t, ok)
	_, ok = c.Get("c")
	require.True(t, ok)
}

func TestOversizedEntryRefused(t *testing.T) {
	c := New(100)
	c.Put("small", make([]byte, 50))

	require.False(t, c.Put("huge", make([]byte, 101)))

	// The refusal must not have evicted anything.
	_, ok := c.Get("small")
	require.True(t, ok)
	require.Equal(t, int64(50), c.Size())
}

func TestRemoveAndClear(t *testing.T) {
	c := New(1024)
	c.Put("a", []byte("one"))
	c.Put("b", []byte("two"))

	c.Remove("a")
	_, ok := c.Get("a")
	require.False(t, ok)
	require.Equal(t, int64(3), c.Size())

	c.Remove("never-existed")

	c.Clear()
	require.Equal(t, 0, c.Len())
	require.Equal(t, int64(0), c.Size())
	_, ok = c.Get("b")
	require.False(t, ok)
}

func TestDefaultCapacityFallback(t *testing.T) {
	c := New(0)
	require.Equal(t, int64(DefaultCapacity), c.Capacity())
}
