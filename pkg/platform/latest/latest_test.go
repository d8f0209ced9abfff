package latest

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValue_LoadBeforePublish(t *testing.T) {
	v := New[int]()
	got, ok := v.Load()
	assert.False(t, ok)
	assert.Zero(t, got)
	assert.Zero(t, v.publishes())
}

func TestValue_SubscribeReceivesCurrent(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	v := NewWith("a")
	ch := v.Subscribe(ctx)

	select {
	case got := <-ch:
		assert.Equal(t, "a", got)
	case <-time.After(time.Second):
		t.Fatal("expected current value on subscribe")
	}
}

func TestValue_PublishConflatesUnreadValues(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	v := New[int]()
	ch := v.Subscribe(ctx)

	assert.Equal(t, 0, v.Publish(1))
	assert.Equal(t, 1, v.Publish(2))
	assert.Equal(t, 1, v.Publish(3))

	require.Equal(t, 3, <-ch)
	select {
	case extra := <-ch:
		t.Fatalf("unexpected buffered value %d", extra)
	default:
	}
	assert.Equal(t, uint64(3), v.publishes())
}

func TestValue_UpdateSeesPrevious(t *testing.T) {
	v := New[int]()
	v.Update(func(cur int, ok bool) int {
		assert.False(t, ok)
		return cur + 1
	})
	got, _ := v.Update(func(cur int, ok bool) int {
		assert.True(t, ok)
		return cur + 10
	})
	assert.Equal(t, 11, got)
}

func TestValue_SubscriptionClosedOnCancel(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	v := New[int]()
	ch := v.Subscribe(ctx)
	require.Equal(t, 1, v.subscribers())

	cancel()
	require.Eventually(t, func() bool {
		select {
		case _, ok := <-ch:
			return !ok
		default:
			return false
		}
	}, time.Second, 5*time.Millisecond)
	assert.Equal(t, 0, v.subscribers())

	// publishing after the subscriber left must not panic
	v.Publish(5)
}

func TestValue_ConcurrentPublishersNeverBlock(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	v := New[int]()
	for range 4 {
		_ = v.Subscribe(ctx)
	}

	var wg sync.WaitGroup
	for i := range 8 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := range 100 {
				v.Publish(i*100 + j)
			}
		}()
	}

	done := make(chan struct{})
	go func() {
		wg.Wait()
		close(done)
	}()
	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("publishers blocked on slow subscribers")
	}
	assert.Equal(t, uint64(800), v.publishes())
}
