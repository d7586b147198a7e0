package inventory

import (
	"context"
	"time"

	"github.com/rs/zerolog"

	"github.com/ashiqmuneeb/Inventory-Pro/internal/domain/repository"
)

// TxRepos repositorios atados a una misma transacción.
type TxRepos struct {
	Products  repository.ProductRepository
	Variants  repository.VariantRepository
	SKUs      repository.SKURepository
	Movements repository.StockMovementRepository
}

// TxRunner ejecuta una función dentro de una transacción, pasando repositorios atados a esa tx.
// Si fn devuelve error (o el contexto se cancela) no queda ningún efecto visible.
type TxRunner interface {
	Run(ctx context.Context, fn func(repos TxRepos) error) error
}

// StatsInvalidator descarta las estadísticas cacheadas tras escribir en el libro.
type StatsInvalidator interface {
	Invalidate(ctx context.Context) error
}

// InvalidateStats descarta el cache del tablero tras un commit que cambia sus cifras.
// stats puede ser nil; un fallo sólo se registra.
func InvalidateStats(ctx context.Context, stats StatsInvalidator, log zerolog.Logger) {
	if stats == nil {
		return
	}
	if err := stats.Invalidate(ctx); err != nil {
		log.Warn().Err(err).Msg("no se pudo invalidar el cache del tablero")
	}
}

// Locker obtiene un candado exclusivo por clave. Devuelve domain.ErrConflict si ya está tomado.
type Locker interface {
	Obtain(ctx context.Context, key string, ttl time.Duration) (release func(context.Context) error, err error)
}
