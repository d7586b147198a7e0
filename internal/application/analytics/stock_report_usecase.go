package analytics

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"

	"github.com/ashiqmuneeb/Inventory-Pro/internal/application/dto"
	"github.com/ashiqmuneeb/Inventory-Pro/internal/domain"
	"github.com/ashiqmuneeb/Inventory-Pro/internal/domain/entity"
	"github.com/ashiqmuneeb/Inventory-Pro/internal/domain/repository"
)

const dateLayout = "2006-01-02"

// StockReportUseCase reporte de movimientos por rango de fechas y su exportación.
type StockReportUseCase struct {
	movRepo   repository.StockMovementRepository
	renderers map[string]ReportRenderer
	loc       *time.Location
	log       zerolog.Logger
	now       func() time.Time
}

// NewStockReportUseCase construye el caso de uso con los exportadores disponibles.
func NewStockReportUseCase(movRepo repository.StockMovementRepository, log zerolog.Logger, renderers ...ReportRenderer) *StockReportUseCase {
	uc := &StockReportUseCase{
		movRepo:   movRepo,
		renderers: make(map[string]ReportRenderer, len(renderers)),
		loc:       time.Local,
		log:       log.With().Str("usecase", "stock_report").Logger(),
		now:       time.Now,
	}
	for _, r := range renderers {
		uc.renderers[r.Format()] = r
	}
	return uc
}

// Formats formatos de exportación registrados, ordenados.
func (uc *StockReportUseCase) Formats() []string {
	out := make([]string, 0, len(uc.renderers))
	for f := range uc.renderers {
		out = append(out, f)
	}
	sort.Strings(out)
	return out
}

// Report devuelve los movimientos con start 00:00 <= created_at < (end + 1 día) 00:00,
// más recientes primero. Ambas fechas son opcionales.
func (uc *StockReportUseCase) Report(ctx context.Context, req dto.StockReportRequest) (*dto.StockReportDTO, error) {
	from, to, err := parsePeriod(req.StartDate, req.EndDate, uc.loc)
	if err != nil {
		return nil, err
	}
	rows, err := uc.movRepo.ListByDateRange(ctx, from, to)
	if err != nil {
		uc.log.Error().Err(err).Str("start_date", req.StartDate).Str("end_date", req.EndDate).Msg("error consultando movimientos")
		return nil, err
	}

	report := &dto.StockReportDTO{
		StartDate:   strings.TrimSpace(req.StartDate),
		EndDate:     strings.TrimSpace(req.EndDate),
		GeneratedAt: uc.now(),
		TotalIn:     decimal.Zero,
		TotalOut:    decimal.Zero,
		Items:       toReportItems(rows),
	}
	for _, r := range rows {
		if r.Type == entity.MovementTypeOUT {
			report.TotalOut = report.TotalOut.Add(r.Quantity)
		} else {
			report.TotalIn = report.TotalIn.Add(r.Quantity)
		}
	}
	return report, nil
}

// ExportedReport archivo listo para descargar.
type ExportedReport struct {
	Content     []byte
	ContentType string
	Filename    string
}

// Export genera el reporte y lo renderiza en el formato pedido (xlsx, pdf).
func (uc *StockReportUseCase) Export(ctx context.Context, req dto.StockReportRequest, format string) (*ExportedReport, error) {
	format = strings.ToLower(strings.TrimSpace(format))
	renderer, ok := uc.renderers[format]
	if !ok {
		return nil, domain.NewValidationError("format", "debe ser uno de: "+strings.Join(uc.Formats(), ", "))
	}
	report, err := uc.Report(ctx, req)
	if err != nil {
		return nil, err
	}
	content, err := renderer.Render(ctx, report)
	if err != nil {
		uc.log.Error().Err(err).Str("format", format).Int("rows", len(report.Items)).Msg("error renderizando reporte")
		return nil, fmt.Errorf("render %s report: %w", format, err)
	}
	return &ExportedReport{
		Content:     content,
		ContentType: renderer.ContentType(),
		Filename:    "stock-report-" + report.GeneratedAt.Format("20060102-150405") + "." + format,
	}, nil
}

// parsePeriod convierte las fechas YYYY-MM-DD al intervalo semiabierto [from, to).
func parsePeriod(start, end string, loc *time.Location) (from, to *time.Time, err error) {
	verr := &domain.ValidationError{}
	if s := strings.TrimSpace(start); s != "" {
		t, perr := time.ParseInLocation(dateLayout, s, loc)
		if perr != nil {
			verr.Add("start_date", "formato de fecha inválido, use YYYY-MM-DD")
		} else {
			from = &t
		}
	}
	if e := strings.TrimSpace(end); e != "" {
		t, perr := time.ParseInLocation(dateLayout, e, loc)
		if perr != nil {
			verr.Add("end_date", "formato de fecha inválido, use YYYY-MM-DD")
		} else {
			next := t.AddDate(0, 0, 1)
			to = &next
		}
	}
	if from != nil && to != nil && !from.Before(*to) {
		verr.Add("start_date", "debe ser anterior o igual a end_date")
	}
	if err := verr.OrNil(); err != nil {
		return nil, nil, err
	}
	return from, to, nil
}
