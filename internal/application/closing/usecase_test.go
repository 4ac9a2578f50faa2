package closing_test

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/saeron-inventario/internal/application/closing"
	"github.com/jhoicas/saeron-inventario/internal/application/state"
	"github.com/jhoicas/saeron-inventario/internal/domain"
	"github.com/jhoicas/saeron-inventario/internal/domain/entity"
	"github.com/jhoicas/saeron-inventario/internal/infrastructure/memory"
)

var kst = time.FixedZone("KST", 9*3600)

func newStore(t *testing.T, sales ...entity.Sale) *state.Store {
	t.Helper()
	s := state.NewStore(memory.NewStateRepository(), nil)
	require.NoError(t, s.Load(context.Background()))
	require.NoError(t, s.Run(context.Background(), func(st *state.State) error {
		st.Inventory.Products = append(st.Inventory.Products,
			entity.Product{ID: "1", Name: "노트북", Category: "전자제품"},
			entity.Product{ID: "2", Name: "마우스", Category: "주변기기"},
		)
		st.Inventory.Sales = append(st.Inventory.Sales, sales...)
		return nil
	}))
	return s
}

func marchSales() []entity.Sale {
	return []entity.Sale{
		{ID: "a", ProductID: "1", Category: "전자제품", Quantity: 1, TotalPrice: 1000000, PaidAmount: 1000000, Date: time.Date(2025, 3, 3, 10, 0, 0, 0, kst)},
		{ID: "b", ProductID: "2", Category: "주변기기", Quantity: 20, TotalPrice: 500000, PaidAmount: 200000, Date: time.Date(2025, 3, 31, 23, 59, 59, 0, kst)},
		{ID: "c", ProductID: "2", Category: "주변기기", Quantity: 1, TotalPrice: 25000, Date: time.Date(2025, 4, 1, 0, 0, 0, 0, kst)},
	}
}

type fakeMetrics struct {
	created  int
	rejected []string
}

func (m *fakeMetrics) SaleRecorded(int64) {}
func (m *fakeMetrics) ClosingCreated() { m.created++ }
func (m *fakeMetrics) ClosingRejected(reason string) { m.rejected = append(m.rejected, reason) }

func TestCreateClosing_EscenarioMarzo(t *testing.T) {
	closingDate := time.Date(2025, 4, 2, 9, 0, 0, 0, kst)
	m := &fakeMetrics{}
	uc := closing.NewClosingUseCase(newStore(t, marchSales()...), kst, nil).
		WithClock(func() time.Time { return closingDate }).
		WithMetrics(m)

	c, err := uc.CreateClosing(context.Background(), 2025, 3)
	require.NoError(t, err)
	assert.Equal(t, int64(1500000), c.TotalSales)
	assert.Equal(t, int64(1200000), c.TotalPaid)
	assert.Equal(t, int64(300000), c.TotalUnpaid)
	assert.Equal(t, 2, c.SalesCount)
	assert.Len(t, c.SalesData, 2)
	assert.Equal(t, entity.PaymentStatusCount{FullyPaid: 1, PartiallyPaid: 1}, c.PaymentStatus)
	assert.Equal(t, closingDate, c.ClosingDate)
	assert.Equal(t, 1, m.created)
}

func TestCreateClosing_DuplicadoYReapertura(t *testing.T) {
	ctx := context.Background()
	m := &fakeMetrics{}
	uc := closing.NewClosingUseCase(newStore(t, marchSales()...), kst, nil).WithMetrics(m)

	first, err := uc.CreateClosing(ctx, 2025, 3)
	require.NoError(t, err)

	_, err = uc.CreateClosing(ctx, 2025, 3)
	require.ErrorIs(t, err, domain.ErrPeriodAlreadyClosed)
	assert.Len(t, uc.GetAllClosings(), 1)
	assert.Equal(t, []string{"duplicate"}, m.rejected)
	assert.True(t, uc.IsMonthClosed(2025, 3))

	require.NoError(t, uc.DeleteClosing(ctx, first.ID))
	assert.False(t, uc.IsMonthClosed(2025, 3))
	assert.ErrorIs(t, uc.DeleteClosing(ctx, first.ID), domain.ErrNotFound)

	again, err := uc.CreateClosing(ctx, 2025, 3)
	require.NoError(t, err)
	assert.NotEqual(t, first.ID, again.ID)
	assert.Equal(t, first.TotalSales, again.TotalSales)
}

func TestCreateClosing_PeriodoInvalido(t *testing.T) {
	uc := closing.NewClosingUseCase(newStore(t), kst, nil)
	for _, p := range [][2]int{{2025, 0}, {2025, 13}, {999, 5}, {10000, 1}} {
		_, err := uc.CreateClosing(context.Background(), p[0], p[1])
		assert.ErrorIs(t, err, domain.ErrInvalidInput, "%v", p)
	}
	assert.Empty(t, uc.GetAllClosings())
}

func TestCreateClosing_MesVacio(t *testing.T) {
	uc := closing.NewClosingUseCase(newStore(t), kst, nil)
	c, err := uc.CreateClosing(context.Background(), 2024, 12)
	require.NoError(t, err)
	assert.Zero(t, c.SalesCount)
	assert.Zero(t, c.TotalSales)
	assert.Empty(t, c.CategoryBreakdown)
}

func TestCreateClosing_CopiaCongeladaAnteCambiosDelLibro(t *testing.T) {
	ctx := context.Background()
	s := newStore(t, marchSales()...)
	uc := closing.NewClosingUseCase(s, kst, nil)
	c, err := uc.CreateClosing(ctx, 2025, 3)
	require.NoError(t, err)

	require.NoError(t, s.Run(ctx, func(st *state.State) error {
		st.Inventory.Sales = st.Inventory.Sales[:0:0]
		return nil
	}))

	stored, err := uc.GetClosing(c.ID)
	require.NoError(t, err)
	assert.Len(t, stored.SalesData, 2)
	assert.Equal(t, int64(1500000), stored.TotalSales)
}

func TestGetAllClosings_OrdenDescendente(t *testing.T) {
	ctx := context.Background()
	uc := closing.NewClosingUseCase(newStore(t), kst, nil)
	for _, p := range [][2]int{{2024, 11}, {2025, 2}, {2024, 12}, {2025, 1}} {
		_, err := uc.CreateClosing(ctx, p[0], p[1])
		require.NoError(t, err)
	}
	all := uc.GetAllClosings()
	require.Len(t, all, 4)
	got := make([][2]int, 0, 4)
	for _, c := range all {
		got = append(got, [2]int{c.Year, c.Month})
	}
	assert.Equal(t, [][2]int{{2025, 2}, {2025, 1}, {2024, 12}, {2024, 11}}, got)

	_, err := uc.GetClosing("nope")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestPreviewMonth(t *testing.T) {
	ctx := context.Background()
	uc := closing.NewClosingUseCase(newStore(t, marchSales()...), kst, nil)

	p, err := uc.PreviewMonth(2025, 3)
	require.NoError(t, err)
	assert.Equal(t, 2, p.SalesCount)
	assert.Equal(t, int64(300000), p.TotalUnpaid)
	assert.False(t, p.IsClosed)

	_, err = uc.CreateClosing(ctx, 2025, 3)
	require.NoError(t, err)
	p, err = uc.PreviewMonth(2025, 3)
	require.NoError(t, err)
	assert.True(t, p.IsClosed)

	_, err = uc.PreviewMonth(2025, 13)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

type fakeLocker struct {
	mu       sync.Mutex
	held     map[string]bool
	released []string
}

func (l *fakeLocker) Lock(_ context.Context, key string) (func(context.Context) error, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.held[key] {
		return nil, domain.ErrPeriodLocked
	}
	l.held[key] = true
	return func(context.Context) error {
		l.mu.Lock()
		defer l.mu.Unlock()
		delete(l.held, key)
		l.released = append(l.released, key)
		return nil
	}, nil
}

func TestCreateClosing_BloqueoDePeriodo(t *testing.T) {
	ctx := context.Background()
	locker := &fakeLocker{held: map[string]bool{}}
	m := &fakeMetrics{}
	uc := closing.NewClosingUseCase(newStore(t, marchSales()...), kst, nil).WithLocker(locker).WithMetrics(m)

	_, err := uc.CreateClosing(ctx, 2025, 3)
	require.NoError(t, err)
	assert.Equal(t, []string{"closing:2025-03"}, locker.released)

	// Otro proceso tiene tomado el período.
	locker.held["closing:2025-04"] = true
	_, err = uc.CreateClosing(ctx, 2025, 4)
	require.ErrorIs(t, err, domain.ErrPeriodLocked)
	assert.False(t, uc.IsMonthClosed(2025, 4))
	assert.Equal(t, []string{"locked"}, m.rejected)
}

func TestCreateClosing_ConcurrenteSoloUnoGana(t *testing.T) {
	uc := closing.NewClosingUseCase(newStore(t, marchSales()...), kst, nil)

	var wg sync.WaitGroup
	errs := make([]error, 8)
	for i := range errs {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, errs[i] = uc.CreateClosing(context.Background(), 2025, 3)
		}(i)
	}
	wg.Wait()

	ok := 0
	for _, err := range errs {
		if err == nil {
			ok++
			continue
		}
		assert.True(t, errors.Is(err, domain.ErrPeriodAlreadyClosed))
	}
	assert.Equal(t, 1, ok)
	assert.Len(t, uc.GetAllClosings(), 1)
}

func TestCreateClosing_OtroProcesoCerroPrimero(t *testing.T) {
	ctx := context.Background()
	repo := memory.NewStateRepository()
	open := func() *state.Store {
		s := state.NewStore(repo, nil)
		require.NoError(t, s.Load(ctx))
		return s
	}
	a := closing.NewClosingUseCase(open(), kst, nil)
	b := closing.NewClosingUseCase(open(), kst, nil)

	_, err := b.CreateClosing(ctx, 2025, 1)
	require.NoError(t, err)

	// El primer intento de a choca con el commit de b; los siguientes ya parten del estado vigente.
	_, err = a.CreateClosing(ctx, 2025, 2)
	require.ErrorIs(t, err, domain.ErrConflict)
	for month := 2; month <= 6; month++ {
		_, err := a.CreateClosing(ctx, 2025, month)
		require.NoError(t, err, "mes %d", month)
	}
	assert.True(t, a.IsMonthClosed(2025, 1))
	assert.Len(t, a.GetAllClosings(), 6)
}
