package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"

	"github.com/ashiqmuneeb/Inventory-Pro/internal/application/inventory"
)

// Ensure TxRunner implements inventory.TxRunner.
var _ inventory.TxRunner = (*TxRunner)(nil)

// TxRunner ejecuta callbacks dentro de una transacción PostgreSQL (READ COMMITTED + bloqueos de fila).
// Los conflictos de serialización y deadlocks se reintentan con backoff.
type TxRunner struct {
	pool  *pgxpool.Pool
	retry RetryConfig
	log   zerolog.Logger
}

// NewTxRunner construye el runner con el pool.
func NewTxRunner(pool *pgxpool.Pool, retry RetryConfig, log zerolog.Logger) *TxRunner {
	return &TxRunner{pool: pool, retry: retry, log: log}
}

// Run inicia una transacción, ejecuta fn con repos atados a la tx y hace Commit o Rollback.
func (r *TxRunner) Run(ctx context.Context, fn func(repos inventory.TxRepos) error) error {
	attempt := 0
	return retryWithBackoff(ctx, r.retry, func() error {
		attempt++
		err := r.runOnce(ctx, fn)
		if isRetryableTxError(err) {
			r.log.Warn().Err(err).Int("attempt", attempt).Msg("conflicto de transacción, reintentando")
		}
		return err
	})
}

func (r *TxRunner) runOnce(ctx context.Context, fn func(repos inventory.TxRepos) error) error {
	tx, err := r.pool.BeginTx(ctx, pgx.TxOptions{IsoLevel: pgx.ReadCommitted})
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	if err := fn(Repos(tx)); err != nil {
		return err
	}
	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}
	return nil
}

// Repos construye los repositorios sobre un Querier (pool o tx).
func Repos(q Querier) inventory.TxRepos {
	return inventory.TxRepos{
		Products:  NewProductRepository(q),
		Variants:  NewVariantRepository(q),
		SKUs:      NewSKURepository(q),
		Movements: NewStockMovementRepository(q),
	}
}
