package cache

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestStore_GetOrLoad_SharesConcurrentLoads(t *testing.T) {
	t.Parallel()

	store := NewStore(time.Minute)
	var calls atomic.Int32
	loader := func(context.Context) (any, error) {
		calls.Add(1)
		time.Sleep(20 * time.Millisecond)
		return "value", nil
	}

	const workers = 32
	start := make(chan struct{})
	var wg sync.WaitGroup
	results := make([]any, workers)
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			<-start
			v, err := store.GetOrLoad(context.Background(), "same-key", loader)
			if err == nil {
				results[i] = v
			}
		}(i)
	}
	close(start)
	wg.Wait()

	for _, v := range results {
		require.Equal(t, "value", v)
	}
	require.EqualValues(t, 1, calls.Load())
}

func TestStore_ExpiresEntries(t *testing.T) {
	now := time.Date(2026, 1, 1, 10, 0, 0, 0, time.UTC)
	store := NewStore(time.Minute, WithClock(func() time.Time { return now }))

	store.Set(context.Background(), "k", 1)
	_, ok := store.Get(context.Background(), "k")
	require.True(t, ok)

	now = now.Add(2 * time.Minute)
	_, ok = store.Get(context.Background(), "k")
	require.False(t, ok)
	require.Zero(t, store.Len())
}

func TestStore_MaxEntriesEvictsOldest(t *testing.T) {
	now := time.Date(2026, 1, 1, 10, 0, 0, 0, time.UTC)
	store := NewStore(time.Minute, WithMaxEntries(2), WithClock(func() time.Time { return now }))

	store.Set(context.Background(), "a", 1)
	now = now.Add(time.Second)
	store.Set(context.Background(), "b", 2)
	now = now.Add(time.Second)
	store.Set(context.Background(), "c", 3)

	require.Equal(t, 2, store.Len())
	_, ok := store.Get(context.Background(), "a")
	require.False(t, ok)
}

func TestStore_DeletePrefix(t *testing.T) {
	store := NewStore(0)
	store.Set(context.Background(), "stats:player:1", 1)
	store.Set(context.Background(), "stats:player:2", 2)
	store.Set(context.Background(), "club:1", 3)

	store.DeletePrefix(context.Background(), "stats:")
	require.Equal(t, 1, store.Len())
}

func TestLoad_DoesNotCacheErrors(t *testing.T) {
	store := NewStore(time.Minute)
	boom := errors.New("boom")
	calls := 0

	_, err := Load(context.Background(), store, "k", func(context.Context) (int, error) {
		calls++
		return 0, boom
	})
	require.ErrorIs(t, err, boom)

	v, err := Load(context.Background(), store, "k", func(context.Context) (int, error) {
		calls++
		return 7, nil
	})
	require.NoError(t, err)
	require.Equal(t, 7, v)
	require.Equal(t, 2, calls)
}
