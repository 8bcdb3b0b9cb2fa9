package engine

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestHandlePendingThenFulfilled(t *testing.T) {
	h := newHandle()

	require.False(t, h.Poll())

	_, _, ok := h.TryResult()
	require.False(t, ok)

	h.fulfill([]byte("payload"), nil)

	require.True(t, h.Poll())

	data, err, ok := h.TryResult()
	require.True(t, ok)
	require.NoError(t, err)
	require.Equal(t, []byte("payload"), data)
}

func TestHandleFirstFulfillmentWins(t *testing.T) {
	h := newHandle()
	h.fulfill([]byte("first"), nil)
	h.fulfill([]byte("second"), errors.New("late"))

	data, err := h.Wait(context.Background())
	require.NoError(t, err)
	require.Equal(t, []byte("first"), data)
}

func TestHandleWaitContextCancelled(t *testing.T) {
	h := newHandle()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := h.Wait(ctx)
	require.ErrorIs(t, err, context.Canceled)
}

func TestHandleDoneChannel(t *testing.T) {
	h := newHandle()

	select {
	case <-h.Done():
		t.Fatal("done channel closed before fulfillment")
	default:
	}

	go func() {
		time.Sleep(10 * time.Millisecond)
		h.fulfill(nil, errors.New("boom"))
	}()

	select {
	case <-h.Done():
	case <-time.After(time.Second):
		t.Fatal("done channel never closed")
	}

	_, err, ok := h.TryResult()
	require.True(t, ok)
	require.Error(t, err)
}

func TestFulfilledHandle(t *testing.T) {
	h := fulfilledHandle([]byte("cached"))

	require.True(t, h.Poll())

	data, err := h.Wait(context.Background())
	require.NoError(t, err)
	require.Equal(t, []byte("cached"), data)
}
