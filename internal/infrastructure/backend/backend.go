// Package backend abre la infraestructura según la configuración: almacenamiento
// (PostgreSQL o memoria), cache del tablero y candado de reconciliación.
package backend

import (
	"context"
	"fmt"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"

	"github.com/ashiqmuneeb/Inventory-Pro/internal/application/analytics"
	"github.com/ashiqmuneeb/Inventory-Pro/internal/application/inventory"
	"github.com/ashiqmuneeb/Inventory-Pro/internal/infrastructure/cache"
	"github.com/ashiqmuneeb/Inventory-Pro/internal/infrastructure/memory"
	"github.com/ashiqmuneeb/Inventory-Pro/internal/infrastructure/postgres"
	"github.com/ashiqmuneeb/Inventory-Pro/pkg/config"
)

// StatsCache cache del tablero que además se invalida tras cada escritura.
type StatsCache interface {
	analytics.StatsCache
	inventory.StatsInvalidator
}

// Backend infraestructura lista para inyectar en los casos de uso.
type Backend struct {
	Driver   string
	TxRunner inventory.TxRunner
	Repos    inventory.TxRepos // acceso fuera de transacción (lecturas)
	Stats    StatsCache
	Locker   inventory.Locker

	closers []func()
}

// Close libera conexiones en orden inverso a su apertura.
func (b *Backend) Close() {
	for i := len(b.closers) - 1; i >= 0; i-- {
		b.closers[i]()
	}
	b.closers = nil
}

// Open construye el Backend. Con driver postgres aplica el esquema si AutoMigrate está activo.
// Sin REDIS_ADDR el cache y el candado quedan en proceso.
func Open(ctx context.Context, cfg *config.Config, log zerolog.Logger) (*Backend, error) {
	b := &Backend{Driver: cfg.Storage.Driver}

	switch cfg.Storage.Driver {
	case config.StorageMemory:
		store := memory.NewStore()
		b.TxRunner = store
		b.Repos = store.Repos()
		log.Warn().Msg("almacenamiento en memoria: los datos se pierden al reiniciar y cada escritura copia el estado completo")

	case config.StoragePostgres:
		pool, err := postgres.NewPool(ctx, cfg.DB, log)
		if err != nil {
			return nil, err
		}
		b.closers = append(b.closers, pool.Close)

		if cfg.DB.AutoMigrate {
			if err := postgres.Migrate(ctx, pool); err != nil {
				b.Close()
				return nil, fmt.Errorf("migrar esquema: %w", err)
			}
			log.Info().Msg("esquema de base de datos aplicado")
		}
		b.TxRunner = postgres.NewTxRunner(pool, postgres.DefaultRetryConfig(), log)
		b.Repos = postgres.Repos(pool)

	default:
		return nil, fmt.Errorf("driver de almacenamiento no soportado: %q", cfg.Storage.Driver)
	}

	if cfg.Redis.Enabled() {
		rdb, err := cache.NewRedisClient(ctx, cfg.Redis)
		if err != nil {
			b.Close()
			return nil, err
		}
		b.closers = append(b.closers, func() { closeRedis(rdb, log) })
		b.Stats = cache.NewRedisStatsCache(rdb, cfg.Inventory.DashboardCacheTTL)
		b.Locker = cache.NewRedisLocker(rdb)
		log.Info().Str("addr", cfg.Redis.Addr).Msg("conectado a Redis")
	} else {
		b.Stats = cache.NewLocalStatsCache(cfg.Inventory.DashboardCacheTTL)
		b.Locker = cache.NewLocalLocker()
	}

	return b, nil
}

func closeRedis(rdb *redis.Client, log zerolog.Logger) {
	if err := rdb.Close(); err != nil {
		log.Warn().Err(err).Msg("cerrar cliente Redis")
	}
}
