package inventory

import (
	"context"
	"time"

	"github.com/rs/zerolog"

	"github.com/ashiqmuneeb/Inventory-Pro/internal/application/dto"
	"github.com/ashiqmuneeb/Inventory-Pro/internal/domain/repository"
)

const (
	reconcileLockKey = "inventory:reconcile"
	reconcileLockTTL = 5 * time.Minute
)

// ReconcileUseCase compara el contador TotalStock de cada producto con el total del libro
// y, si se pide, sobrescribe el contador. Sólo corre una reconciliación a la vez.
type ReconcileUseCase struct {
	txRunner TxRunner
	movRepo  repository.StockMovementRepository
	locker   Locker
	stats    StatsInvalidator
	log      zerolog.Logger
}

// NewReconcileUseCase construye el caso de uso. stats puede ser nil.
func NewReconcileUseCase(txRunner TxRunner, movRepo repository.StockMovementRepository, locker Locker, stats StatsInvalidator, log zerolog.Logger) *ReconcileUseCase {
	return &ReconcileUseCase{
		txRunner: txRunner,
		movRepo:  movRepo,
		locker:   locker,
		stats:    stats,
		log:      log.With().Str("usecase", "reconcile").Logger(),
	}
}

// Reconcile devuelve los productos con diferencia. Con fix, corrige cada uno en una transacción
// que bloquea el producto y recalcula el total, de modo que no pisa movimientos concurrentes.
// Devuelve domain.ErrConflict si otra reconciliación está en curso.
func (uc *ReconcileUseCase) Reconcile(ctx context.Context, fix bool) (*dto.ReconcileResponse, error) {
	release, err := uc.locker.Obtain(ctx, reconcileLockKey, reconcileLockTTL)
	if err != nil {
		return nil, err
	}
	defer func() {
		if err := release(context.WithoutCancel(ctx)); err != nil {
			uc.log.Warn().Err(err).Msg("no se pudo liberar el candado de reconciliación")
		}
	}()

	balances, err := uc.movRepo.ProductBalances(ctx)
	if err != nil {
		uc.log.Error().Err(err).Msg("error calculando totales del libro")
		return nil, err
	}

	resp := &dto.ReconcileResponse{Checked: len(balances), Drifted: []dto.DriftItem{}, Fixed: fix}
	for _, b := range balances {
		if !b.Drift() {
			continue
		}
		resp.Drifted = append(resp.Drifted, dto.DriftItem{
			ProductID:   b.ProductID,
			ProductCode: b.ProductCode,
			Cached:      b.Cached,
			Ledger:      b.Ledger,
		})
		uc.log.Warn().
			Str("product_id", b.ProductID).
			Str("cached", b.Cached.String()).
			Str("ledger", b.Ledger.String()).
			Msg("diferencia entre contador y libro")
	}
	if !fix || len(resp.Drifted) == 0 {
		return resp, nil
	}

	for _, d := range resp.Drifted {
		productID := d.ProductID
		err := uc.txRunner.Run(ctx, func(repos TxRepos) error {
			product, err := repos.Products.GetByIDForUpdate(ctx, productID)
			if err != nil || product == nil {
				return err
			}
			total, err := repos.Movements.SumByProduct(ctx, productID)
			if err != nil {
				return err
			}
			return repos.Products.SetTotalStock(ctx, productID, total)
		})
		if err != nil {
			uc.log.Error().Err(err).Str("product_id", productID).Msg("error corrigiendo contador")
			return nil, err
		}
	}
	if uc.stats != nil {
		if err := uc.stats.Invalidate(ctx); err != nil {
			uc.log.Warn().Err(err).Msg("no se pudo invalidar el cache del tablero")
		}
	}
	uc.log.Info().Int("fixed", len(resp.Drifted)).Msg("reconciliación aplicada")
	return resp, nil
}
