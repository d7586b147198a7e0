// Package analytics contiene los casos de uso de lectura: tablero de inventario
// y reporte de movimientos por rango de fechas.
package analytics

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"

	"github.com/ashiqmuneeb/Inventory-Pro/internal/application/dto"
	"github.com/ashiqmuneeb/Inventory-Pro/internal/domain/inventory"
	"github.com/ashiqmuneeb/Inventory-Pro/internal/domain/repository"
)

// DashboardUseCase calcula las estadísticas del tablero a partir del libro de movimientos.
//
// Fuente de datos: ProductRepository y StockMovementRepository (consultas read-only).
// Si hay cache configurado, se sirve desde ahí hasta que una escritura lo invalide.
type DashboardUseCase struct {
	productRepo repository.ProductRepository
	movRepo     repository.StockMovementRepository
	cache       StatsCache
	policy      inventory.StockPolicy
	log         zerolog.Logger
}

// NewDashboardUseCase construye el caso de uso. cache puede ser nil.
func NewDashboardUseCase(
	productRepo repository.ProductRepository,
	movRepo repository.StockMovementRepository,
	cache StatsCache,
	policy inventory.StockPolicy,
	log zerolog.Logger,
) *DashboardUseCase {
	return &DashboardUseCase{
		productRepo: productRepo,
		movRepo:     movRepo,
		cache:       cache,
		policy:      policy,
		log:         log.With().Str("usecase", "dashboard").Logger(),
	}
}

// GetStats construye el DashboardStatsDTO.
//
// Tres consultas en paralelo:
//  1. Count                 → TotalProducts
//  2. Balances (todos)      → estados de stock + valor del inventario
//  3. ListRecent(N)         → RecentTransactions
func (uc *DashboardUseCase) GetStats(ctx context.Context) (*dto.DashboardStatsDTO, error) {
	if uc.cache != nil {
		cached, ok, err := uc.cache.Get(ctx)
		if err != nil {
			uc.log.Warn().Err(err).Msg("cache del tablero no disponible")
		} else if ok {
			return cached, nil
		}
	}

	type countResult struct {
		n   int
		err error
	}
	type balancesResult struct {
		rows []repository.SKUBalance
		err  error
	}
	type recentResult struct {
		rows []*repository.MovementRow
		err  error
	}

	countCh := make(chan countResult, 1)
	balCh := make(chan balancesResult, 1)
	recentCh := make(chan recentResult, 1)

	go func() {
		n, err := uc.productRepo.Count(ctx)
		countCh <- countResult{n, err}
	}()
	go func() {
		rows, err := uc.movRepo.Balances(ctx, "")
		balCh <- balancesResult{rows, err}
	}()
	go func() {
		rows, err := uc.movRepo.ListRecent(ctx, uc.policy.RecentLimit)
		recentCh <- recentResult{rows, err}
	}()

	count := <-countCh
	bal := <-balCh
	recent := <-recentCh

	if count.err != nil {
		return nil, fmt.Errorf("dashboard total products: %w", count.err)
	}
	if bal.err != nil {
		return nil, fmt.Errorf("dashboard balances: %w", bal.err)
	}
	if recent.err != nil {
		return nil, fmt.Errorf("dashboard recent transactions: %w", recent.err)
	}

	stats := &dto.DashboardStatsDTO{
		TotalProducts:      count.n,
		RecentTransactions: toReportItems(recent.rows),
	}
	totalQty := decimal.Zero
	for _, b := range bal.rows {
		qty := b.Quantity()
		totalQty = totalQty.Add(qty)
		switch uc.policy.Classify(qty) {
		case inventory.StockStatusIn:
			stats.StockStatus.InStock++
		case inventory.StockStatusLow:
			stats.StockStatus.LowStock++
		default:
			stats.StockStatus.OutOfStock++
		}
	}
	stats.LowStockItems = stats.StockStatus.LowStock
	stats.InventoryValue = uc.policy.Valuation(totalQty)

	if uc.cache != nil {
		if err := uc.cache.Set(ctx, stats); err != nil {
			uc.log.Warn().Err(err).Msg("no se pudo guardar el tablero en cache")
		}
	}
	return stats, nil
}

func toReportItems(rows []*repository.MovementRow) []dto.StockReportItem {
	items := make([]dto.StockReportItem, 0, len(rows))
	for _, r := range rows {
		items = append(items, dto.StockReportItem{
			ID:          r.ID,
			ProductName: r.ProductName,
			SKU:         r.SKUCode,
			Quantity:    r.Quantity,
			Type:        r.Type,
			Notes:       r.Notes,
			CreatedAt:   r.CreatedAt,
		})
	}
	return items
}
