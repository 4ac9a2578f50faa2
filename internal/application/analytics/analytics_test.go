package analytics_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/saeron-inventario/internal/application/analytics"
	"github.com/jhoicas/saeron-inventario/internal/application/state"
	"github.com/jhoicas/saeron-inventario/internal/domain"
	"github.com/jhoicas/saeron-inventario/internal/domain/entity"
	"github.com/jhoicas/saeron-inventario/internal/infrastructure/memory"
)

var (
	seoul    = time.FixedZone("KST", 9*3600)
	fixedNow = time.Date(2025, 3, 15, 14, 0, 0, 0, seoul)
)

func clock() time.Time { return fixedNow }

func seededStore(t *testing.T) *state.Store {
	t.Helper()
	s := state.NewStore(memory.NewStateRepository(), nil)
	require.NoError(t, s.Load(context.Background()))
	require.NoError(t, s.Run(context.Background(), func(st *state.State) error {
		st.Inventory.Products = []entity.Product{
			{ID: "1", Code: "PRD-001", Name: "노트북", Category: "전자제품", Quantity: 45, MinQuantity: 10, Price: 1500000},
			{ID: "2", Code: "PRD-002", Name: "무선마우스", Category: "주변기기", Quantity: 120, MinQuantity: 30, Price: 25000},
			{ID: "3", Code: "PRD-003", Name: "USB 메모리", Category: "저장장치", Quantity: 8, MinQuantity: 20, Price: 15000},
		}
		st.Inventory.Transactions = []entity.Transaction{
			{ID: "t3", ProductID: "3", Type: entity.TransactionTypeOut, Quantity: 12, Date: fixedNow.Add(-time.Hour)},
			{ID: "t2", ProductID: "2", Type: entity.TransactionTypeOut, Quantity: 15, Date: fixedNow.AddDate(0, 0, -1)},
			{ID: "t1", ProductID: "1", Type: entity.TransactionTypeIn, Quantity: 20, Date: fixedNow.AddDate(0, 0, -2)},
			{ID: "t0", ProductID: "1", Type: entity.TransactionTypeIn, Quantity: 5, Date: fixedNow.AddDate(0, 0, -40)},
		}
		st.Inventory.Sales = []entity.Sale{
			{ID: "s1", ProductID: "1", ProductName: "노트북", Quantity: 1, TotalPrice: 1500000, PaidAmount: 1500000, Date: fixedNow.Add(-2 * time.Hour)},
			{ID: "s2", ProductID: "2", ProductName: "무선마우스", Quantity: 4, TotalPrice: 100000, PaidAmount: 0, Date: time.Date(2025, 3, 2, 9, 0, 0, 0, seoul)},
			{ID: "s3", ProductID: "2", ProductName: "무선마우스", Quantity: 2, TotalPrice: 50000, PaidAmount: 50000, Date: time.Date(2025, 2, 27, 9, 0, 0, 0, seoul)},
		}
		return nil
	}))
	return s
}

// ─── Dashboard ────────────────────────────────────────────────────────────────

func TestDashboard_GetSummary(t *testing.T) {
	uc := analytics.NewDashboardUseCase(seededStore(t), seoul).WithClock(clock)

	sum := uc.GetSummary()

	assert.Equal(t, 3, sum.ProductCount)
	assert.Equal(t, int64(173), sum.TotalQuantity)
	assert.Equal(t, int64(45*1500000+120*25000+8*15000), sum.TotalValue)
	require.Len(t, sum.LowStock, 1)
	assert.Equal(t, entity.ID("3"), sum.LowStock[0].ID)
	assert.Equal(t, 1, sum.LowStockCount)

	assert.Equal(t, 1, sum.InCount)
	assert.Equal(t, 2, sum.OutCount)
	require.Len(t, sum.RecentTransactions, 4)
	assert.Equal(t, "USB 메모리", sum.RecentTransactions[0].ProductName)

	assert.Equal(t, 1, sum.Today.Count)
	assert.Equal(t, int64(1500000), sum.Today.TotalSales)
	assert.Equal(t, 2, sum.Month.Count)
	assert.Equal(t, int64(1600000), sum.Month.TotalSales)
	assert.Equal(t, int64(100000), sum.Month.TotalUnpaid)
	assert.Equal(t, "93.8", sum.MonthCollectionRate.String())

	require.Len(t, sum.TopProducts, 2)
	assert.Equal(t, entity.ID("1"), sum.TopProducts[0].ProductID)
	assert.Equal(t, int64(4), sum.TopProducts[1].QuantitySold)

	assert.Equal(t, "2025년 3월", sum.DateLabel)
}

func TestDashboard_EstadoVacio(t *testing.T) {
	s := state.NewStore(memory.NewStateRepository(), nil)
	require.NoError(t, s.Load(context.Background()))

	sum := analytics.NewDashboardUseCase(s, seoul).WithClock(clock).GetSummary()

	assert.Zero(t, sum.ProductCount)
	assert.NotNil(t, sum.LowStock)
	assert.NotNil(t, sum.RecentTransactions)
	assert.True(t, sum.MonthCollectionRate.IsZero())
}

// ─── Reportes ─────────────────────────────────────────────────────────────────

func TestReport_TransactionTrend(t *testing.T) {
	uc := analytics.NewReportUseCase(seededStore(t), seoul).WithClock(clock)

	points, err := uc.TransactionTrend(30)
	require.NoError(t, err)
	require.Len(t, points, 30)

	assert.Equal(t, "2025-02-14", points[0].Date)
	last := points[29]
	assert.Equal(t, "2025-03-15", last.Date)
	assert.Equal(t, int64(12), last.Out)
	assert.Equal(t, int64(15), points[28].Out)
	assert.Equal(t, int64(20), points[27].In)

	var in int64
	for _, p := range points {
		in += p.In
	}
	assert.Equal(t, int64(20), in, "el movimiento de hace 40 días queda fuera")
}

func TestReport_TransactionTrendDiasInvalidos(t *testing.T) {
	uc := analytics.NewReportUseCase(seededStore(t), seoul)
	for _, days := range []int{0, -1, 400} {
		_, err := uc.TransactionTrend(days)
		assert.ErrorIs(t, err, domain.ErrInvalidInput)
	}
}

func TestReport_TopProductsByValue(t *testing.T) {
	uc := analytics.NewReportUseCase(seededStore(t), seoul)

	top := uc.TopProductsByValue(2)
	require.Len(t, top, 2)
	assert.Equal(t, entity.ID("1"), top[0].ProductID)
	assert.Equal(t, int64(45*1500000), top[0].Value)
	assert.Equal(t, entity.ID("2"), top[1].ProductID)
}
