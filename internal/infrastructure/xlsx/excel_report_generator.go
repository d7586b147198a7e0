// Package xlsx genera la versión Excel del reporte de movimientos de stock.
package xlsx

import (
	"context"
	"fmt"

	"github.com/xuri/excelize/v2"

	"github.com/ashiqmuneeb/Inventory-Pro/internal/application/analytics"
	"github.com/ashiqmuneeb/Inventory-Pro/internal/application/dto"
)

// SheetName hoja única del libro generado.
const SheetName = "Sheet1"

var headings = []string{"Fecha", "Producto", "SKU", "Tipo", "Cantidad", "Notas"}

var _ analytics.ReportRenderer = (*ExcelReportGenerator)(nil)

// ExcelReportGenerator implementa analytics.ReportRenderer con excelize.
type ExcelReportGenerator struct{}

func NewExcelReportGenerator() *ExcelReportGenerator { return &ExcelReportGenerator{} }

func (g *ExcelReportGenerator) Format() string { return "xlsx" }
func (g *ExcelReportGenerator) ContentType() string {
	return "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
}

// Render escribe cabecera, una fila por movimiento y los totales al final.
func (g *ExcelReportGenerator) Render(_ context.Context, report *dto.StockReportDTO) ([]byte, error) {
	f := excelize.NewFile()
	defer f.Close()

	bold, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err != nil {
		return nil, fmt.Errorf("xlsx: estilo: %w", err)
	}

	for i, h := range headings {
		cell, err := excelize.CoordinatesToCellName(i+1, 1)
		if err != nil {
			return nil, err
		}
		if err := f.SetCellValue(SheetName, cell, h); err != nil {
			return nil, err
		}
	}
	if err := f.SetCellStyle(SheetName, "A1", "F1", bold); err != nil {
		return nil, err
	}

	rowNo := 2
	for _, it := range report.Items {
		qty, _ := it.Quantity.Float64()
		values := []any{
			it.CreatedAt.Format("2006-01-02 15:04:05"),
			it.ProductName,
			it.SKU,
			it.Type,
			qty,
			it.Notes,
		}
		if err := setRow(f, rowNo, values); err != nil {
			return nil, err
		}
		rowNo++
	}

	rowNo++
	totalIn, _ := report.TotalIn.Float64()
	totalOut, _ := report.TotalOut.Float64()
	for _, t := range []struct {
		label string
		value float64
	}{{"Entradas", totalIn}, {"Salidas", totalOut}, {"Neto", totalIn - totalOut}} {
		if err := setRow(f, rowNo, []any{"", "", "", t.label, t.value}); err != nil {
			return nil, err
		}
		start, _ := excelize.CoordinatesToCellName(4, rowNo)
		if err := f.SetCellStyle(SheetName, start, start, bold); err != nil {
			return nil, err
		}
		rowNo++
	}

	_ = f.SetColWidth(SheetName, "A", "A", 20)
	_ = f.SetColWidth(SheetName, "B", "C", 28)
	_ = f.SetColWidth(SheetName, "F", "F", 40)

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("xlsx: escribir libro: %w", err)
	}
	return buf.Bytes(), nil
}

func setRow(f *excelize.File, rowNo int, values []any) error {
	for i, v := range values {
		cell, err := excelize.CoordinatesToCellName(i+1, rowNo)
		if err != nil {
			return err
		}
		if err := f.SetCellValue(SheetName, cell, v); err != nil {
			return err
		}
	}
	return nil
}
