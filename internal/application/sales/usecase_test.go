package sales_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/saeron-inventario/internal/application/dto"
	"github.com/jhoicas/saeron-inventario/internal/application/sales"
	"github.com/jhoicas/saeron-inventario/internal/application/state"
	"github.com/jhoicas/saeron-inventario/internal/domain"
	"github.com/jhoicas/saeron-inventario/internal/domain/entity"
	"github.com/jhoicas/saeron-inventario/internal/infrastructure/memory"
)

var (
	kst      = time.FixedZone("KST", 9*3600)
	fixedNow = time.Date(2025, 3, 15, 14, 0, 0, 0, kst)
)

func i64(v int64) *int64 { return &v }

type fakeMetrics struct {
	sales  int
	amount int64
}

func (m *fakeMetrics) SaleRecorded(amount int64) { m.sales++; m.amount += amount }
func (m *fakeMetrics) ClosingCreated() {}
func (m *fakeMetrics) ClosingRejected(string) {}

func setup(t *testing.T, policy sales.PricingPolicy) (*state.Store, *sales.SaleUseCase) {
	t.Helper()
	s := state.NewStore(memory.NewStateRepository(), nil)
	require.NoError(t, s.Load(context.Background()))
	require.NoError(t, s.Run(context.Background(), func(st *state.State) error {
		st.Inventory.Products = append(st.Inventory.Products,
			entity.Product{ID: "1", Code: "PRD-001", Name: "노트북", Category: "전자제품", Quantity: 5, Price: 1000000},
			entity.Product{ID: "2", Code: "PRD-002", Name: "무선마우스", Category: "주변기기", Quantity: 100, Price: 25000},
		)
		return nil
	}))
	uc := sales.NewSaleUseCase(s, policy, kst, nil).WithClock(func() time.Time { return fixedNow })
	return s, uc
}

func productQty(s *state.Store, id entity.ID) int64 {
	var q int64
	s.View(func(st *state.State) { q = st.Inventory.Product(id).Quantity })
	return q
}

func TestRecordSale_DescuentaStockYRegistraMovimiento(t *testing.T) {
	s, uc := setup(t, sales.PricingAllowDiscount)
	m := &fakeMetrics{}
	uc.WithMetrics(m)

	sale, err := uc.RecordSale(context.Background(), dto.RecordSaleRequest{
		ProductID: "1", Quantity: 2, UnitPrice: 1000000, PaidAmount: 500000, Customer: "(주)한빛", User: "관리자",
	})
	require.NoError(t, err)
	assert.Equal(t, "노트북", sale.ProductName)
	assert.Equal(t, "전자제품", sale.Category)
	assert.Equal(t, int64(2000000), sale.TotalPrice, "sin total se recalcula")
	assert.Equal(t, int64(1500000), sale.Unpaid())
	assert.Equal(t, fixedNow, sale.Date)
	assert.Equal(t, int64(3), productQty(s, "1"))

	s.View(func(st *state.State) {
		require.Len(t, st.Inventory.Transactions, 1)
		tx := st.Inventory.Transactions[0]
		assert.Equal(t, entity.TransactionTypeOut, tx.Type)
		assert.Equal(t, int64(2), tx.Quantity)
		assert.Equal(t, "판매: (주)한빛", tx.Note)
		assert.Equal(t, "관리자", tx.User)
	})
	assert.Equal(t, 1, m.sales)
	assert.Equal(t, int64(2000000), m.amount)
}

func TestRecordSale_StockInsuficienteNoMuta(t *testing.T) {
	s, uc := setup(t, sales.PricingAllowDiscount)

	_, err := uc.RecordSale(context.Background(), dto.RecordSaleRequest{ProductID: "1", Quantity: 6, UnitPrice: 1000000})
	require.ErrorIs(t, err, domain.ErrInsufficientStock)

	assert.Equal(t, int64(5), productQty(s, "1"))
	s.View(func(st *state.State) {
		assert.Empty(t, st.Inventory.Sales)
		assert.Empty(t, st.Inventory.Transactions)
	})
}

func TestRecordSale_PoliticaDePrecios(t *testing.T) {
	tests := []struct {
		name    string
		policy  sales.PricingPolicy
		total   *int64
		paid    int64
		want    int64
		wantErr error
	}{
		{"descuento aceptado", sales.PricingAllowDiscount, i64(90000), 0, 90000, nil},
		{"total cero aceptado", sales.PricingAllowDiscount, i64(0), 0, 0, nil},
		{"total mayor al precio de lista", sales.PricingAllowDiscount, i64(100001), 0, 0, domain.ErrInvalidInput},
		{"total negativo", sales.PricingAllowDiscount, i64(-1), 0, 0, domain.ErrInvalidInput},
		{"estricto exacto", sales.PricingStrict, i64(100000), 0, 100000, nil},
		{"estricto con descuento", sales.PricingStrict, i64(90000), 0, 0, domain.ErrInvalidInput},
		{"estricto sin total", sales.PricingStrict, nil, 0, 100000, nil},
		{"cobrado mayor al total", sales.PricingAllowDiscount, i64(50000), 60000, 0, domain.ErrInvalidInput},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s, uc := setup(t, tt.policy)
			sale, err := uc.RecordSale(context.Background(), dto.RecordSaleRequest{
				ProductID: "2", Quantity: 4, UnitPrice: 25000, TotalAmount: tt.total, PaidAmount: tt.paid,
			})
			if tt.wantErr != nil {
				require.ErrorIs(t, err, tt.wantErr)
				assert.Equal(t, int64(100), productQty(s, "2"))
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, sale.TotalPrice)
		})
	}
}

func TestRecordSale_Validaciones(t *testing.T) {
	_, uc := setup(t, sales.PricingAllowDiscount)
	ctx := context.Background()

	_, err := uc.RecordSale(ctx, dto.RecordSaleRequest{ProductID: "1", Quantity: 0, UnitPrice: 1})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
	_, err = uc.RecordSale(ctx, dto.RecordSaleRequest{ProductID: "1", Quantity: 1, UnitPrice: -1})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
	_, err = uc.RecordSale(ctx, dto.RecordSaleRequest{ProductID: "1", Quantity: 1, UnitPrice: 10, PaidAmount: -1})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
	_, err = uc.RecordSale(ctx, dto.RecordSaleRequest{ProductID: "99", Quantity: 1, UnitPrice: 10})
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestRecordSale_ImporteDesbordadoSeRechaza(t *testing.T) {
	huge := int64(1<<62) + 1
	for _, policy := range []sales.PricingPolicy{sales.PricingAllowDiscount, sales.PricingStrict} {
		t.Run(string(policy), func(t *testing.T) {
			_, err := policy.Total(4, huge, nil)
			require.ErrorIs(t, err, domain.ErrInvalidInput)
			_, err = policy.Total(4, huge, i64(4))
			require.ErrorIs(t, err, domain.ErrInvalidInput)

			s, uc := setup(t, policy)
			_, err = uc.RecordSale(context.Background(), dto.RecordSaleRequest{ProductID: "2", Quantity: 4, UnitPrice: huge})
			require.ErrorIs(t, err, domain.ErrInvalidInput)
			assert.Equal(t, int64(100), productQty(s, "2"))
			s.View(func(st *state.State) { assert.Empty(t, st.Inventory.Sales) })
		})
	}
}

func TestParsePricingPolicy(t *testing.T) {
	p, err := sales.ParsePricingPolicy("")
	require.NoError(t, err)
	assert.Equal(t, sales.PricingAllowDiscount, p)

	p, err = sales.ParsePricingPolicy(" STRICT ")
	require.NoError(t, err)
	assert.Equal(t, sales.PricingStrict, p)

	_, err = sales.ParsePricingPolicy("trust-caller")
	assert.Error(t, err)
}

func TestCollectPayment(t *testing.T) {
	_, uc := setup(t, sales.PricingAllowDiscount)
	ctx := context.Background()
	sale, err := uc.RecordSale(ctx, dto.RecordSaleRequest{ProductID: "2", Quantity: 2, UnitPrice: 25000, PaidAmount: 10000})
	require.NoError(t, err)

	updated, err := uc.CollectPayment(ctx, sale.ID, 30000)
	require.NoError(t, err)
	assert.Equal(t, int64(40000), updated.PaidAmount)
	assert.Equal(t, entity.PaymentPartiallyPaid, updated.PaymentState())

	_, err = uc.CollectPayment(ctx, sale.ID, 10001)
	require.ErrorIs(t, err, domain.ErrInvalidInput)

	updated, err = uc.CollectPayment(ctx, sale.ID, 10000)
	require.NoError(t, err)
	assert.Equal(t, entity.PaymentFullyPaid, updated.PaymentState())
	assert.Empty(t, uc.Receivables())

	_, err = uc.CollectPayment(ctx, "nope", 1)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestDeleteSale_NoReponeStock(t *testing.T) {
	s, uc := setup(t, sales.PricingAllowDiscount)
	ctx := context.Background()
	sale, err := uc.RecordSale(ctx, dto.RecordSaleRequest{ProductID: "1", Quantity: 1, UnitPrice: 1000000})
	require.NoError(t, err)

	require.NoError(t, uc.DeleteSale(ctx, sale.ID))
	assert.Equal(t, int64(4), productQty(s, "1"))
	_, err = uc.GetByID(sale.ID)
	assert.ErrorIs(t, err, domain.ErrNotFound)
	assert.ErrorIs(t, uc.DeleteSale(ctx, sale.ID), domain.ErrNotFound)
}

func TestListYTotales(t *testing.T) {
	_, uc := setup(t, sales.PricingAllowDiscount)
	ctx := context.Background()
	record := func(date time.Time, customer string, paid int64) {
		_, err := uc.RecordSale(ctx, dto.RecordSaleRequest{
			ProductID: "2", Quantity: 1, UnitPrice: 25000, PaidAmount: paid, Customer: customer, Date: &date,
		})
		require.NoError(t, err)
	}
	record(time.Date(2025, 2, 28, 23, 30, 0, 0, kst), "김철수", 25000)
	record(time.Date(2025, 3, 1, 0, 0, 0, 0, kst), "이영희", 0)
	record(time.Date(2025, 3, 15, 9, 0, 0, 0, kst), "김민수", 10000)

	march, err := uc.List(dto.SaleFilter{Year: 2025, Month: 3})
	require.NoError(t, err)
	require.Len(t, march, 2)
	assert.Equal(t, "김민수", march[0].Customer, "más reciente primero")

	byName, err := uc.List(dto.SaleFilter{Search: "김"})
	require.NoError(t, err)
	assert.Len(t, byName, 2)

	_, err = uc.List(dto.SaleFilter{Year: 2025})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	totals := uc.Totals()
	assert.Equal(t, dto.SalesTotalsDTO{Count: 3, TotalSales: 75000, TotalPaid: 35000, TotalUnpaid: 40000}, totals)

	today, todayTotals := uc.Today()
	require.Len(t, today, 1)
	assert.Equal(t, int64(25000), todayTotals.TotalSales)

	recv := uc.Receivables()
	require.Len(t, recv, 2)
	assert.Equal(t, "이영희", recv[0].Customer, "más antigua primero")
}
