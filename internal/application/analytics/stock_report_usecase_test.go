package analytics_test

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ashiqmuneeb/Inventory-Pro/internal/application/analytics"
	"github.com/ashiqmuneeb/Inventory-Pro/internal/application/dto"
	"github.com/ashiqmuneeb/Inventory-Pro/internal/domain"
	"github.com/ashiqmuneeb/Inventory-Pro/internal/infrastructure/pdf"
	"github.com/ashiqmuneeb/Inventory-Pro/internal/infrastructure/xlsx"
)

func reportFixture(t *testing.T) (*fixture, *analytics.StockReportUseCase) {
	t.Helper()
	f := newFixture(t)
	f.record(t, "WIDGET-Red-S", "IN", "10", localDate(2026, time.February, 28, 23, 59))
	f.record(t, "WIDGET-Red-S", "IN", "5", localDate(2026, time.March, 1, 0, 0))
	f.record(t, "WIDGET-Red-S", "OUT", "2", localDate(2026, time.March, 15, 23, 59))
	f.record(t, "WIDGET-Blue-M", "IN", "1", localDate(2026, time.March, 16, 0, 0))

	uc := analytics.NewStockReportUseCase(f.repos.Movements, zerolog.Nop(),
		xlsx.NewExcelReportGenerator(), pdf.NewMarotoReportGenerator(""))
	return f, uc
}

// ──────────────────────────────────────────────────────────────────────────────
// Report
// ──────────────────────────────────────────────────────────────────────────────

func TestReport_RangoInclusivoPorDia(t *testing.T) {
	_, uc := reportFixture(t)

	out, err := uc.Report(context.Background(), dto.StockReportRequest{StartDate: "2026-03-01", EndDate: "2026-03-15"})
	require.NoError(t, err)

	require.Len(t, out.Items, 2)
	assert.Equal(t, "OUT", out.Items[0].Type, "más recientes primero")
	assert.Equal(t, "IN", out.Items[1].Type)
	assert.Equal(t, "WIDGET-Red-S", out.Items[0].SKU)
	assert.Equal(t, "Widget", out.Items[0].ProductName)
	assert.Equal(t, "5", out.TotalIn.String())
	assert.Equal(t, "2", out.TotalOut.String())
}

func TestReport_FechasOpcionales(t *testing.T) {
	_, uc := reportFixture(t)
	ctx := context.Background()

	all, err := uc.Report(ctx, dto.StockReportRequest{})
	require.NoError(t, err)
	assert.Len(t, all.Items, 4)

	from, err := uc.Report(ctx, dto.StockReportRequest{StartDate: "2026-03-01"})
	require.NoError(t, err)
	assert.Len(t, from.Items, 3)

	until, err := uc.Report(ctx, dto.StockReportRequest{EndDate: "2026-02-28"})
	require.NoError(t, err)
	assert.Len(t, until.Items, 1)
}

func TestReport_FechasInvalidas(t *testing.T) {
	_, uc := reportFixture(t)

	tests := []struct {
		name  string
		req   dto.StockReportRequest
		field string
	}{
		{"inicio mal formado", dto.StockReportRequest{StartDate: "01/03/2026"}, "start_date"},
		{"fin mal formado", dto.StockReportRequest{EndDate: "2026-13-01"}, "end_date"},
		{"inicio posterior al fin", dto.StockReportRequest{StartDate: "2026-03-10", EndDate: "2026-03-01"}, "start_date"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := uc.Report(context.Background(), tt.req)
			var verr *domain.ValidationError
			require.True(t, errors.As(err, &verr))
			assert.Contains(t, verr.FieldMap(), tt.field)
		})
	}
}

// ──────────────────────────────────────────────────────────────────────────────
// Export
// ──────────────────────────────────────────────────────────────────────────────

func TestExport_Formatos(t *testing.T) {
	_, uc := reportFixture(t)
	ctx := context.Background()
	assert.Equal(t, []string{"pdf", "xlsx"}, uc.Formats())

	x, err := uc.Export(ctx, dto.StockReportRequest{StartDate: "2026-03-01"}, "XLSX")
	require.NoError(t, err)
	assert.Equal(t, "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet", x.ContentType)
	assert.True(t, strings.HasPrefix(x.Filename, "stock-report-"))
	assert.True(t, strings.HasSuffix(x.Filename, ".xlsx"))
	assert.True(t, bytes.HasPrefix(x.Content, []byte("PK")), "xlsx es un zip")

	p, err := uc.Export(ctx, dto.StockReportRequest{}, "pdf")
	require.NoError(t, err)
	assert.Equal(t, "application/pdf", p.ContentType)
	assert.True(t, bytes.HasPrefix(p.Content, []byte("%PDF")))
}

func TestExport_FormatoDesconocido(t *testing.T) {
	_, uc := reportFixture(t)

	_, err := uc.Export(context.Background(), dto.StockReportRequest{}, "csv")
	var verr *domain.ValidationError
	require.True(t, errors.As(err, &verr))
	assert.Contains(t, verr.FieldMap(), "format")
}
