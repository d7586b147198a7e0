package analytics

import (
	"context"

	"github.com/ashiqmuneeb/Inventory-Pro/internal/application/dto"
)

// StatsCache cache de las estadísticas del tablero. Get devuelve (nil, false, nil) si no hay entrada.
type StatsCache interface {
	Get(ctx context.Context) (*dto.DashboardStatsDTO, bool, error)
	Set(ctx context.Context, stats *dto.DashboardStatsDTO) error
	Invalidate(ctx context.Context) error
}

// ReportRenderer convierte el reporte de movimientos a un formato descargable.
type ReportRenderer interface {
	Format() string
	ContentType() string
	Render(ctx context.Context, report *dto.StockReportDTO) ([]byte, error)
}
