package excel_test

import (
	"bytes"
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"github.com/jhoicas/saeron-inventario/internal/domain/entity"
	"github.com/jhoicas/saeron-inventario/internal/infrastructure/excel"
)

func TestGenerateClosingWorkbook(t *testing.T) {
	c := entity.MonthlyClosing{
		ID: "c1", Year: 2025, Month: 3, ClosingDate: time.Date(2025, 4, 1, 9, 0, 0, 0, time.UTC),
		TotalSales: 150000, TotalPaid: 100000, TotalUnpaid: 50000, SalesCount: 2,
		CategoryBreakdown: []entity.CategoryBreakdown{{Category: "주변기기", Sales: 150000, Quantity: 6, Paid: 100000}},
		PaymentStatus:     entity.PaymentStatusCount{FullyPaid: 1, Unpaid: 1},
		SalesData: []entity.Sale{
			{ID: "s1", ProductName: "무선마우스", Quantity: 4, UnitPrice: 25000, TotalPrice: 100000, PaidAmount: 100000, Date: time.Date(2025, 3, 2, 9, 0, 0, 0, time.UTC)},
			{ID: "s2", ProductName: "무선마우스", Quantity: 2, UnitPrice: 25000, TotalPrice: 50000, Date: time.Date(2025, 3, 9, 9, 0, 0, 0, time.UTC)},
		},
	}

	out, err := excel.NewWorkbookGenerator().GenerateClosingWorkbook(context.Background(), c)
	require.NoError(t, err)

	f, err := excelize.OpenReader(bytes.NewReader(out))
	require.NoError(t, err)
	defer f.Close()

	assert.Equal(t, []string{excel.SheetSummary, excel.SheetCategories, excel.SheetSales}, f.GetSheetList())

	v, err := f.GetCellValue(excel.SheetSummary, "B1")
	require.NoError(t, err)
	assert.Equal(t, "2025-03", v)
	v, _ = f.GetCellValue(excel.SheetSummary, "B3")
	assert.Equal(t, "150000", v)

	v, _ = f.GetCellValue(excel.SheetCategories, "A2")
	assert.Equal(t, "주변기기", v)

	rows, err := f.GetRows(excel.SheetSales)
	require.NoError(t, err)
	require.Len(t, rows, 3)
	assert.Equal(t, "50000", rows[2][8])
}
