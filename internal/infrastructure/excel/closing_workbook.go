// Package excel genera el libro .xlsx de un cierre mensual con excelize.
package excel

import (
	"context"
	"fmt"

	"github.com/xuri/excelize/v2"

	"github.com/jhoicas/saeron-inventario/internal/domain/entity"
)

// Nombres de las hojas del libro.
const (
	SheetSummary    = "요약"
	SheetCategories = "카테고리"
	SheetSales      = "판매내역"
)

// WorkbookGenerator implementa report.ClosingWorkbookGenerator.
type WorkbookGenerator struct{}

// NewWorkbookGenerator construye el generador.
func NewWorkbookGenerator() *WorkbookGenerator { return &WorkbookGenerator{} }

// GenerateClosingWorkbook arma un libro con tres hojas: resumen, desglose por categoría y ventas congeladas.
func (g *WorkbookGenerator) GenerateClosingWorkbook(_ context.Context, c entity.MonthlyClosing) ([]byte, error) {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", SheetSummary); err != nil {
		return nil, fmt.Errorf("xlsx: renombrar hoja: %w", err)
	}
	for _, name := range []string{SheetCategories, SheetSales} {
		if _, err := f.NewSheet(name); err != nil {
			return nil, fmt.Errorf("xlsx: crear hoja %s: %w", name, err)
		}
	}
	bold, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err != nil {
		return nil, fmt.Errorf("xlsx: estilo: %w", err)
	}

	summary := [][]interface{}{
		{"기간", fmt.Sprintf("%04d-%02d", c.Year, c.Month)},
		{"마감일", c.ClosingDate.Format("2006-01-02 15:04:05")},
		{"총 매출", c.TotalSales},
		{"수금액", c.TotalPaid},
		{"미수금", c.TotalUnpaid},
		{"판매 건수", c.SalesCount},
		{"완납", c.PaymentStatus.FullyPaid},
		{"부분 수금", c.PaymentStatus.PartiallyPaid},
		{"미수", c.PaymentStatus.Unpaid},
	}
	if err := writeRows(f, SheetSummary, 1, summary); err != nil {
		return nil, err
	}
	_ = f.SetCellStyle(SheetSummary, "A1", fmt.Sprintf("A%d", len(summary)), bold)

	categories := [][]interface{}{{"카테고리", "수량", "매출", "수금"}}
	for _, r := range c.CategoryBreakdown {
		categories = append(categories, []interface{}{r.Category, r.Quantity, r.Sales, r.Paid})
	}
	if err := writeRows(f, SheetCategories, 1, categories); err != nil {
		return nil, err
	}
	_ = f.SetCellStyle(SheetCategories, "A1", "D1", bold)

	sales := [][]interface{}{{"일자", "제품", "카테고리", "고객", "수량", "단가", "금액", "수금", "미수"}}
	for _, s := range c.SalesData {
		sales = append(sales, []interface{}{
			s.Date.Format("2006-01-02 15:04"), s.ProductName, s.Category, s.Customer,
			s.Quantity, s.UnitPrice, s.TotalPrice, s.PaidAmount, s.Unpaid(),
		})
	}
	if err := writeRows(f, SheetSales, 1, sales); err != nil {
		return nil, err
	}
	_ = f.SetCellStyle(SheetSales, "A1", "I1", bold)
	_ = f.SetColWidth(SheetSales, "A", "D", 18)

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("xlsx: escribir libro: %w", err)
	}
	return buf.Bytes(), nil
}

// writeRows escribe cada fila desde la columna A a partir de firstRow.
func writeRows(f *excelize.File, sheet string, firstRow int, rows [][]interface{}) error {
	for i, r := range rows {
		cell, err := excelize.CoordinatesToCellName(1, firstRow+i)
		if err != nil {
			return fmt.Errorf("xlsx: celda: %w", err)
		}
		values := r
		if err := f.SetSheetRow(sheet, cell, &values); err != nil {
			return fmt.Errorf("xlsx: escribir fila %d de %s: %w", firstRow+i, sheet, err)
		}
	}
	return nil
}
