package redis

import (
	"context"
	"sync"
	"testing"

	miniredis "github.com/alicebob/miniredis/v2"
	goredis "github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestStore(t *testing.T, shards int) *CounterStore {
	t.Helper()
	mr := miniredis.RunT(t)
	client := goredis.NewClient(&goredis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })
	return NewCounterStore(client, shards)
}

func TestCounterStore_ReadUnknownCounter(t *testing.T) {
	store := newTestStore(t, 8)

	total, err := store.Read(context.Background(), "vouchers")
	require.NoError(t, err)
	assert.Equal(t, int64(0), total)
}

func TestCounterStore_IncrementThenRead(t *testing.T) {
	store := newTestStore(t, 8)
	ctx := context.Background()

	require.NoError(t, store.Increment(ctx, "vouchers", 1))
	require.NoError(t, store.Increment(ctx, "vouchers", 1))
	require.NoError(t, store.Increment(ctx, "vouchers", 3))

	total, err := store.Read(ctx, "vouchers")
	require.NoError(t, err)
	assert.Equal(t, int64(5), total)
}

func TestCounterStore_CountersAreIndependent(t *testing.T) {
	store := newTestStore(t, 4)
	ctx := context.Background()

	require.NoError(t, store.Increment(ctx, "vouchers", 2))
	require.NoError(t, store.Increment(ctx, "vouchers:2026-08", 1))

	total, err := store.Read(ctx, "vouchers")
	require.NoError(t, err)
	assert.Equal(t, int64(2), total)

	monthly, err := store.Read(ctx, "vouchers:2026-08")
	require.NoError(t, err)
	assert.Equal(t, int64(1), monthly)
}

func TestCounterStore_ConcurrentIncrementsLoseNothing(t *testing.T) {
	store := newTestStore(t, 16)
	ctx := context.Background()

	const n = 200
	var wg sync.WaitGroup
	errs := make(chan error, n)
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			errs <- store.Increment(ctx, "vouchers", 1)
		}()
	}
	wg.Wait()
	close(errs)
	for err := range errs {
		require.NoError(t, err)
	}

	total, err := store.Read(ctx, "vouchers")
	require.NoError(t, err)
	assert.Equal(t, int64(n), total)
}

func TestCounterStore_ShardCountFallback(t *testing.T) {
	store := newTestStore(t, 0)
	ctx := context.Background()

	require.NoError(t, store.Increment(ctx, "vouchers", 1))

	total, err := store.Read(ctx, "vouchers")
	require.NoError(t, err)
	assert.Equal(t, int64(1), total)
}
