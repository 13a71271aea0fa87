package rules

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/barber-booking/internal/domain"
	"github.com/m04kA/barber-booking/pkg/ptr"
)

func newTestCache(t *testing.T, ttl time.Duration) (*Cache, *miniredis.Miniredis) {
	t.Helper()

	mr := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = rdb.Close() })

	return New(rdb, ttl), mr
}

func TestCache_MissHitInvalidate(t *testing.T) {
	cache, _ := newTestCache(t, time.Minute)
	ctx := context.Background()

	_, found, err := cache.Get(ctx, 1)
	require.NoError(t, err)
	assert.False(t, found)

	days := domain.NewWeekdays(time.Tuesday, time.Saturday)
	stored := &domain.ShopRules{ID: 10, ShopID: 1, WorkingDays: &days, StartHour: ptr.Ptr(10)}
	require.NoError(t, cache.Set(ctx, 1, stored))

	got, found, err := cache.Get(ctx, 1)
	require.NoError(t, err)
	require.True(t, found)
	require.NotNil(t, got)
	assert.Equal(t, days, *got.WorkingDays)
	assert.Equal(t, 10, *got.StartHour)
	assert.Nil(t, got.EndHour)

	require.NoError(t, cache.Invalidate(ctx, 1))
	_, found, err = cache.Get(ctx, 1)
	require.NoError(t, err)
	assert.False(t, found)
}

func TestCache_AbsentRulesAreCached(t *testing.T) {
	cache, _ := newTestCache(t, time.Minute)
	ctx := context.Background()

	require.NoError(t, cache.Set(ctx, 2, nil))

	got, found, err := cache.Get(ctx, 2)
	require.NoError(t, err)
	assert.True(t, found)
	assert.Nil(t, got)
}

func TestCache_TTL(t *testing.T) {
	cache, mr := newTestCache(t, 30*time.Second)
	ctx := context.Background()

	require.NoError(t, cache.Set(ctx, 3, &domain.ShopRules{ShopID: 3}))
	assert.Equal(t, 30*time.Second, mr.TTL(key(3)))

	mr.FastForward(31 * time.Second)

	_, found, err := cache.Get(ctx, 3)
	require.NoError(t, err)
	assert.False(t, found)
}

func TestCache_CorruptedEntry(t *testing.T) {
	cache, mr := newTestCache(t, time.Minute)
	require.NoError(t, mr.Set(key(4), "{not json"))

	_, _, err := cache.Get(context.Background(), 4)
	assert.ErrorIs(t, err, ErrCacheDecode)
}

func TestCache_RedisDown(t *testing.T) {
	cache, mr := newTestCache(t, time.Minute)
	mr.Close()

	_, _, err := cache.Get(context.Background(), 5)
	assert.ErrorIs(t, err, ErrCacheRead)
}
