package cache_test

import (
	"context"
	"testing"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ashiqmuneeb/Inventory-Pro/internal/application/dto"
	"github.com/ashiqmuneeb/Inventory-Pro/internal/domain"
	"github.com/ashiqmuneeb/Inventory-Pro/internal/infrastructure/cache"
)

// ── LocalLocker ───────────────────────────────────────────────────────────────

func TestLocalLocker_ExclusivePerKey(t *testing.T) {
	ctx := context.Background()
	l := cache.NewLocalLocker()

	release, err := l.Obtain(ctx, "inventory:reconcile", time.Minute)
	require.NoError(t, err)

	_, err = l.Obtain(ctx, "inventory:reconcile", time.Minute)
	assert.ErrorIs(t, err, domain.ErrConflict)

	other, err := l.Obtain(ctx, "otra", time.Minute)
	require.NoError(t, err)
	require.NoError(t, other(ctx))

	require.NoError(t, release(ctx))
	require.NoError(t, release(ctx), "release repetido no falla")

	again, err := l.Obtain(ctx, "inventory:reconcile", time.Minute)
	require.NoError(t, err)
	require.NoError(t, again(ctx))
}

// ── LocalStatsCache ───────────────────────────────────────────────────────────

func TestLocalStatsCache_SetGetInvalidate(t *testing.T) {
	ctx := context.Background()
	c := cache.NewLocalStatsCache(time.Minute)

	_, ok, err := c.Get(ctx)
	require.NoError(t, err)
	assert.False(t, ok)

	stats := &dto.DashboardStatsDTO{TotalProducts: 3, InventoryValue: decimal.NewFromInt(120)}
	require.NoError(t, c.Set(ctx, stats))

	got, ok, err := c.Get(ctx)
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, 3, got.TotalProducts)

	require.NoError(t, c.Invalidate(ctx))
	_, ok, _ = c.Get(ctx)
	assert.False(t, ok)
}

func TestLocalStatsCache_DisabledWithZeroTTL(t *testing.T) {
	ctx := context.Background()
	c := cache.NewLocalStatsCache(0)

	require.NoError(t, c.Set(ctx, &dto.DashboardStatsDTO{TotalProducts: 1}))
	_, ok, err := c.Get(ctx)
	require.NoError(t, err)
	assert.False(t, ok)
}

// ── RedisStatsCache ───────────────────────────────────────────────────────────

// Con ttl 0 Set no habla con Redis: el servidor inalcanzable no produce error.
func TestRedisStatsCache_DisabledWithZeroTTL(t *testing.T) {
	rdb := redis.NewClient(&redis.Options{Addr: "127.0.0.1:1", DialTimeout: 50 * time.Millisecond, MaxRetries: -1})
	defer rdb.Close()

	c := cache.NewRedisStatsCache(rdb, 0)
	require.NoError(t, c.Set(context.Background(), &dto.DashboardStatsDTO{TotalProducts: 3}))

	enabled := cache.NewRedisStatsCache(rdb, time.Minute)
	assert.Error(t, enabled.Set(context.Background(), &dto.DashboardStatsDTO{TotalProducts: 3}))
}
