package bqueue

import (
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestFIFOOrder(t *testing.T) {
	q := NewBounded[int](4)
	for i := 1; i <= 4; i++ {
		require.NoError(t, q.Push(i))
	}
	require.Equal(t, 4, q.Len())
	require.Equal(t, 4, q.Cap())

	for i := 1; i <= 4; i++ {
		v, ok := q.Pop()
		require.True(t, ok)
		require.Equal(t, i, v)
	}
}

func TestTryPushRespectsCapacity(t *testing.T) {
	q := NewBounded[string](2)
	require.True(t, q.TryPush("a"))
	require.True(t, q.TryPush("b"))
	require.False(t, q.TryPush("c"))

	v, ok := q.TryPop()
	require.True(t, ok)
	require.Equal(t, "a", v)

	require.True(t, q.TryPush("c"))
}

func TestTryPopEmpty(t *testing.T) {
	q := NewBounded[int](1)
	_, ok := q.TryPop()
	require.False(t, ok)
}

func TestPopTimeout(t *testing.T) {
	q := NewBounded[int](1)

	start := time.Now()
	_, ok := q.PopTimeout(20 * time.Millisecond)
	require.False(t, ok)
	require.GreaterOrEqual(t, time.Since(start), 20*time.Millisecond)

	require.NoError(t, q.Push(7))
	v, ok := q.PopTimeout(time.Second)
	require.True(t, ok)
	require.Equal(t, 7, v)
}

func TestBlockingHandoff(t *testing.T) {
	q := NewBounded[int](1)

	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		for i := 0; i < 100; i++ {
			require.NoError(t, q.Push(i))
		}
	}()

	for i := 0; i < 100; i++ {
		v, ok := q.Pop()
		require.True(t, ok)
		require.Equal(t, i, v)
	}
	wg.Wait()
}

func TestCloseDrainsBufferedItems(t *testing.T) {
	q := NewBounded[int](4)
	require.NoError(t, q.Push(1))
	require.NoError(t, q.Push(2))

	q.Close()
	q.Close() // idempotent

	require.ErrorIs(t, q.Push(3), ErrClosed)
	require.False(t, q.TryPush(3))

	v, ok := q.Pop()
	require.True(t, ok)
	require.Equal(t, 1, v)
	v, ok = q.Pop()
	require.True(t, ok)
	require.Equal(t, 2, v)

	_, ok = q.Pop()
	require.False(t, ok)
	_, ok = q.PopTimeout(10 * time.Millisecond)
	require.False(t, ok)
}

func TestCloseWakesBlockedPop(t *testing.T) {
	q := NewBounded[int](1)

	done := make(chan struct{})
	go func() {
		_, ok := q.Pop()
		require.False(t, ok)
		close(done)
	}()

	time.Sleep(10 * time.Millisecond)
	q.Close()

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("Pop did not observe Close")
	}
}
