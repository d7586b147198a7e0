package cache

import (
	"context"
	"encoding/json"
	"errors"
	"sync"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/ashiqmuneeb/Inventory-Pro/internal/application/analytics"
	"github.com/ashiqmuneeb/Inventory-Pro/internal/application/dto"
	appinventory "github.com/ashiqmuneeb/Inventory-Pro/internal/application/inventory"
)

// StatsKey clave de las estadísticas del tablero en Redis.
const StatsKey = "inventory:dashboard:stats"

var (
	_ analytics.StatsCache          = (*RedisStatsCache)(nil)
	_ appinventory.StatsInvalidator = (*RedisStatsCache)(nil)
	_ analytics.StatsCache          = (*LocalStatsCache)(nil)
	_ appinventory.StatsInvalidator = (*LocalStatsCache)(nil)
)

// ── Redis ─────────────────────────────────────────────────────────────────────

// RedisStatsCache guarda el DTO del tablero serializado en JSON con expiración.
// Igual que LocalStatsCache, ttl <= 0 desactiva el cache.
type RedisStatsCache struct {
	rdb *redis.Client
	ttl time.Duration
}

// NewRedisStatsCache construye el cache sobre un cliente ya conectado.
func NewRedisStatsCache(rdb *redis.Client, ttl time.Duration) *RedisStatsCache {
	return &RedisStatsCache{rdb: rdb, ttl: ttl}
}

// Get devuelve las estadísticas guardadas; ok es false si la clave no existe o expiró.
func (c *RedisStatsCache) Get(ctx context.Context) (*dto.DashboardStatsDTO, bool, error) {
	val, err := c.rdb.Get(ctx, StatsKey).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, err
	}
	var stats dto.DashboardStatsDTO
	if err := json.Unmarshal(val, &stats); err != nil {
		return nil, false, err
	}
	return &stats, true, nil
}

// Set guarda las estadísticas con expiración ttl.
func (c *RedisStatsCache) Set(ctx context.Context, stats *dto.DashboardStatsDTO) error {
	if c.ttl <= 0 || stats == nil {
		return nil
	}
	b, err := json.Marshal(stats)
	if err != nil {
		return err
	}
	return c.rdb.Set(ctx, StatsKey, b, c.ttl).Err()
}

// Invalidate borra la clave del tablero.
func (c *RedisStatsCache) Invalidate(ctx context.Context) error {
	return c.rdb.Del(ctx, StatsKey).Err()
}

// ── En proceso ────────────────────────────────────────────────────────────────

// LocalStatsCache cache en memoria de una sola entrada. ttl <= 0 desactiva el cache.
type LocalStatsCache struct {
	mu      sync.Mutex
	ttl     time.Duration
	stats   *dto.DashboardStatsDTO
	expires time.Time
	now     func() time.Time
}

// NewLocalStatsCache construye el cache en proceso.
func NewLocalStatsCache(ttl time.Duration) *LocalStatsCache {
	return &LocalStatsCache{ttl: ttl, now: time.Now}
}

// Get devuelve una copia de la entrada vigente.
func (c *LocalStatsCache) Get(_ context.Context) (*dto.DashboardStatsDTO, bool, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.stats == nil || !c.now().Before(c.expires) {
		return nil, false, nil
	}
	cp := *c.stats
	return &cp, true, nil
}

// Set reemplaza la entrada; no hace nada con el cache desactivado.
func (c *LocalStatsCache) Set(_ context.Context, stats *dto.DashboardStatsDTO) error {
	if c.ttl <= 0 || stats == nil {
		return nil
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	cp := *stats
	c.stats = &cp
	c.expires = c.now().Add(c.ttl)
	return nil
}

// Invalidate descarta la entrada.
func (c *LocalStatsCache) Invalidate(_ context.Context) error {
	c.mu.Lock()
	c.stats = nil
	c.mu.Unlock()
	return nil
}
