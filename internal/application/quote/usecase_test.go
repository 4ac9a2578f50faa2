package quote_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/saeron-inventario/internal/application/dto"
	"github.com/jhoicas/saeron-inventario/internal/application/quote"
	"github.com/jhoicas/saeron-inventario/internal/application/state"
	"github.com/jhoicas/saeron-inventario/internal/domain"
	"github.com/jhoicas/saeron-inventario/internal/domain/entity"
	"github.com/jhoicas/saeron-inventario/internal/infrastructure/memory"
)

var fixedNow = time.Date(2025, 3, 15, 10, 0, 0, 0, time.UTC)

func newUseCase(t *testing.T) *quote.QuoteUseCase {
	t.Helper()
	s := state.NewStore(memory.NewStateRepository(), nil)
	require.NoError(t, s.Load(context.Background()))
	return quote.NewQuoteUseCase(s, time.UTC).WithClock(func() time.Time { return fixedNow })
}

func request(name string, status string, prospect bool, items ...dto.QuoteItemRequest) dto.QuoteRequest {
	return dto.QuoteRequest{CustomerName: name, Status: status, IsProspect: prospect, Items: items}
}

func TestQuote_CreateCalculaTotalYNumero(t *testing.T) {
	uc := newUseCase(t)
	ctx := context.Background()

	q, err := uc.Create(ctx, request("김민수", "", true,
		dto.QuoteItemRequest{ProductName: "노트북", Quantity: 2, UnitPrice: 1500000},
		dto.QuoteItemRequest{ProductName: " ", Quantity: 1},
		dto.QuoteItemRequest{ProductID: "2", ProductName: "마우스", Quantity: 10, UnitPrice: 25000},
	))
	require.NoError(t, err)
	assert.Equal(t, "QT-2025-001", q.QuoteNumber)
	assert.Equal(t, entity.QuoteStatusPending, q.Status)
	assert.Len(t, q.Items, 2)
	assert.Equal(t, int64(3250000), q.TotalAmount)
	assert.Equal(t, fixedNow, q.CreatedAt)

	q2, err := uc.Create(ctx, request("이영희", "", false, dto.QuoteItemRequest{ProductName: "USB", Quantity: 1, UnitPrice: 15000}))
	require.NoError(t, err)
	assert.Equal(t, "QT-2025-002", q2.QuoteNumber)
	assert.Equal(t, q2.ID, uc.List(dto.QuoteFilter{})[0].ID, "más reciente primero")
}

func TestQuote_Validaciones(t *testing.T) {
	uc := newUseCase(t)
	ctx := context.Background()
	item := dto.QuoteItemRequest{ProductName: "노트북", Quantity: 1, UnitPrice: 1}

	_, err := uc.Create(ctx, request("", "", false, item))
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
	_, err = uc.Create(ctx, request("김", "", false, dto.QuoteItemRequest{ProductName: ""}))
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
	_, err = uc.Create(ctx, request("김", "won", false, item))
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
	_, err = uc.Create(ctx, request("김", "", false, dto.QuoteItemRequest{ProductName: "노트북", Quantity: 4, UnitPrice: 1<<62 + 1}))
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
	bad := request("김", "", false, item)
	bad.ValidUntil = "2025/03/31"
	_, err = uc.Create(ctx, bad)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestQuote_UpdateConservaNumero(t *testing.T) {
	uc := newUseCase(t)
	ctx := context.Background()
	q, err := uc.Create(ctx, request("김민수", "", false, dto.QuoteItemRequest{ProductName: "노트북", Quantity: 1, UnitPrice: 100}))
	require.NoError(t, err)

	updated, err := uc.Update(ctx, q.ID, request("김민수", "success", false, dto.QuoteItemRequest{ProductName: "노트북", Quantity: 3, UnitPrice: 100}))
	require.NoError(t, err)
	assert.Equal(t, q.QuoteNumber, updated.QuoteNumber)
	assert.Equal(t, int64(300), updated.TotalAmount)

	rejected, err := uc.UpdateStatus(ctx, q.ID, entity.QuoteStatusRejected)
	require.NoError(t, err)
	assert.Equal(t, int64(300), rejected.TotalAmount)

	require.NoError(t, uc.Delete(ctx, q.ID))
	_, err = uc.GetByID(q.ID)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestQuote_Stats(t *testing.T) {
	uc := newUseCase(t)
	ctx := context.Background()
	item := func(price int64) dto.QuoteItemRequest {
		return dto.QuoteItemRequest{ProductName: "x", Quantity: 1, UnitPrice: price}
	}
	assert.True(t, uc.Stats().SuccessRate.IsZero())

	for _, r := range []dto.QuoteRequest{
		request("a", "success", false, item(100)),
		request("b", "pending", true, item(200)),
		request("c", "rejected", true, item(300)),
	} {
		_, err := uc.Create(ctx, r)
		require.NoError(t, err)
	}

	stats := uc.Stats()
	assert.Equal(t, 3, stats.Count)
	assert.Equal(t, int64(600), stats.Total)
	assert.Equal(t, int64(100), stats.SuccessTotal)
	assert.Equal(t, 2, stats.ProspectCount)
	assert.Equal(t, 1, stats.PendingCount)
	assert.Equal(t, "33.3", stats.SuccessRate.StringFixed(1))

	assert.Len(t, uc.List(dto.QuoteFilter{Status: "pending"}), 1)
	assert.Len(t, uc.List(dto.QuoteFilter{Search: "c"}), 1)
}
