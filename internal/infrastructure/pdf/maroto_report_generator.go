// Package pdf genera la versión PDF del reporte de movimientos de stock.
//
// Layout de la página A4:
//
//	┌─────────────────────────────────────────────────────────────┐
//	│  HEADER: título + período    │  fecha de generación          │
//	│  ─────────────────────────────────────────────────────────  │
//	│  TABLA: Fecha | Producto | SKU | Tipo | Cantidad | Notas      │
//	│  ─────────────────────────────────────────────────────────  │
//	│  TOTALES: entradas / salidas / neto                          │
//	└─────────────────────────────────────────────────────────────┘
package pdf

import (
	"context"
	"fmt"

	maroto "github.com/johnfercher/maroto/v2"
	"github.com/johnfercher/maroto/v2/pkg/components/col"
	"github.com/johnfercher/maroto/v2/pkg/components/line"
	"github.com/johnfercher/maroto/v2/pkg/components/row"
	"github.com/johnfercher/maroto/v2/pkg/components/text"
	"github.com/johnfercher/maroto/v2/pkg/config"
	"github.com/johnfercher/maroto/v2/pkg/consts/align"
	"github.com/johnfercher/maroto/v2/pkg/consts/fontstyle"
	"github.com/johnfercher/maroto/v2/pkg/consts/pagesize"
	"github.com/johnfercher/maroto/v2/pkg/core"
	"github.com/johnfercher/maroto/v2/pkg/props"

	"github.com/ashiqmuneeb/Inventory-Pro/internal/application/analytics"
	"github.com/ashiqmuneeb/Inventory-Pro/internal/application/dto"
	"github.com/ashiqmuneeb/Inventory-Pro/internal/domain/entity"
)

var _ analytics.ReportRenderer = (*MarotoReportGenerator)(nil)

// ── Paleta de colores ─────────────────────────────────────────────────────────

var (
	colorPrimary = &props.Color{Red: 0, Green: 70, Blue: 127}
	colorGray    = &props.Color{Red: 100, Green: 100, Blue: 100}
	colorIn      = &props.Color{Red: 20, Green: 120, Blue: 60}
	colorOut     = &props.Color{Red: 170, Green: 40, Blue: 40}
)

// ── Generator ─────────────────────────────────────────────────────────────────

// MarotoReportGenerator implementa analytics.ReportRenderer usando Maroto v2.
type MarotoReportGenerator struct {
	title string
}

// NewMarotoReportGenerator construye el generador; title encabeza el documento.
func NewMarotoReportGenerator(title string) *MarotoReportGenerator {
	if title == "" {
		title = "Reporte de movimientos de stock"
	}
	return &MarotoReportGenerator{title: title}
}

func (g *MarotoReportGenerator) Format() string      { return "pdf" }
func (g *MarotoReportGenerator) ContentType() string { return "application/pdf" }

// Render genera el PDF y devuelve sus bytes.
func (g *MarotoReportGenerator) Render(_ context.Context, report *dto.StockReportDTO) ([]byte, error) {
	cfg := config.NewBuilder().
		WithPageSize(pagesize.A4).
		WithLeftMargin(10).WithRightMargin(10).
		WithTopMargin(10).WithBottomMargin(10).
		WithDefaultFont(&props.Font{Family: "helvetica", Size: 9}).
		WithTitle(g.title, true).
		Build()

	m := maroto.New(cfg)

	m.AddRows(g.headerRow(report))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.5}))

	m.AddRows(tableHeaderRow())
	if len(report.Items) == 0 {
		m.AddRows(row.New(8).Add(col.New(12).Add(text.New("Sin movimientos en el período", props.Text{
			Size: 8, Align: align.Center, Top: 2, Color: colorGray,
		}))))
	}
	for _, r := range tableDetailRows(report.Items) {
		m.AddRows(r)
	}

	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.3}))
	m.AddRows(totalsRow(report))

	doc, err := m.Generate()
	if err != nil {
		return nil, fmt.Errorf("pdf: generar documento: %w", err)
	}
	return doc.GetBytes(), nil
}

// ── Secciones ─────────────────────────────────────────────────────────────────

// headerRow: título + período (izq) y fecha de generación (der).
func (g *MarotoReportGenerator) headerRow(report *dto.StockReportDTO) core.Row {
	return row.New(16).Add(
		col.New(8).Add(
			text.New(g.title, props.Text{
				Style: fontstyle.Bold, Size: 13, Color: colorPrimary, Top: 1,
			}),
			text.New("Período: "+periodLabel(report), props.Text{
				Size: 9, Top: 9, Color: colorGray,
			}),
		),
		col.New(4).Add(
			text.New("Generado", props.Text{
				Style: fontstyle.Bold, Size: 8, Align: align.Right, Color: colorPrimary, Top: 1,
			}),
			text.New(report.GeneratedAt.Format("02/01/2006 15:04"), props.Text{
				Size: 9, Align: align.Right, Top: 7,
			}),
		),
	)
}

// tableHeaderRow: cabecera de la tabla de movimientos.
func tableHeaderRow() core.Row {
	h := func(label string, size int, a align.Type) core.Col {
		return col.New(size).Add(text.New(label, props.Text{
			Style: fontstyle.Bold, Size: 8, Align: a, Color: colorPrimary, Top: 2, Left: 1, Right: 1,
		}))
	}
	return row.New(8).Add(
		h("Fecha", 2, align.Left),
		h("Producto", 3, align.Left),
		h("SKU", 3, align.Left),
		h("Tipo", 1, align.Center),
		h("Cantidad", 2, align.Right),
		h("Notas", 1, align.Left),
	)
}

// tableDetailRows: una fila por movimiento.
func tableDetailRows(items []dto.StockReportItem) []core.Row {
	result := make([]core.Row, 0, len(items))
	for _, it := range items {
		typeColor := colorIn
		if it.Type == entity.MovementTypeOUT {
			typeColor = colorOut
		}
		result = append(result, row.New(7).Add(
			col.New(2).Add(text.New(it.CreatedAt.Format("02/01/2006 15:04"), props.Text{Size: 7, Top: 1, Left: 1})),
			col.New(3).Add(text.New(it.ProductName, props.Text{Size: 8, Top: 1, Left: 1})),
			col.New(3).Add(text.New(it.SKU, props.Text{Size: 8, Top: 1, Left: 1})),
			col.New(1).Add(text.New(it.Type, props.Text{Style: fontstyle.Bold, Size: 8, Align: align.Center, Top: 1, Color: typeColor})),
			col.New(2).Add(text.New(it.Quantity.String(), props.Text{Size: 8, Align: align.Right, Top: 1, Right: 1})),
			col.New(1).Add(text.New(it.Notes, props.Text{Size: 7, Top: 1, Left: 1, Color: colorGray})),
		))
	}
	return result
}

// totalsRow: bloque de totales alineado a la derecha.
func totalsRow(report *dto.StockReportDTO) core.Row {
	net := report.TotalIn.Sub(report.TotalOut)
	label := func(s string, top float64) core.Component {
		return text.New(s, props.Text{Size: 9, Align: align.Right, Top: top})
	}
	return row.New(20).Add(
		col.New(8).Add(text.New(fmt.Sprintf("%d movimientos", len(report.Items)), props.Text{
			Size: 8, Top: 2, Color: colorGray,
		})),
		col.New(4).Add(
			label("Entradas: "+report.TotalIn.String(), 2),
			label("Salidas: "+report.TotalOut.String(), 8),
			text.New("Neto: "+net.String(), props.Text{Style: fontstyle.Bold, Size: 10, Align: align.Right, Top: 14, Color: colorPrimary}),
		),
	)
}

func periodLabel(report *dto.StockReportDTO) string {
	start, end := report.StartDate, report.EndDate
	switch {
	case start == "" && end == "":
		return "todo el historial"
	case start == "":
		return "hasta " + end
	case end == "":
		return "desde " + start
	}
	return start + " a " + end
}
