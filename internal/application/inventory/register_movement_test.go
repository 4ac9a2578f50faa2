package inventory_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/saeron-inventario/internal/application/dto"
	"github.com/jhoicas/saeron-inventario/internal/application/inventory"
	"github.com/jhoicas/saeron-inventario/internal/domain"
	"github.com/jhoicas/saeron-inventario/internal/domain/entity"
)

func TestStock_EntradaYSalida(t *testing.T) {
	ctx := context.Background()
	s := newStore(t)
	seedProducts(t, s, entity.Product{ID: "1", Name: "노트북", Quantity: 10})
	stock := inventory.NewStockUseCase(s).WithClock(clock)
	catalog := inventory.NewCatalogUseCase(s)

	in, err := stock.AddStock(ctx, dto.StockMovementRequest{ProductID: "1", Quantity: 20, Note: "정기 입고", User: "김재고"})
	require.NoError(t, err)
	assert.Equal(t, entity.TransactionTypeIn, in.Type)
	assert.Equal(t, fixedNow, in.Date)

	_, err = stock.RemoveStock(ctx, dto.StockMovementRequest{ProductID: "1", Quantity: 5, Note: "영업팀 출고"})
	require.NoError(t, err)

	p, err := catalog.GetByID("1")
	require.NoError(t, err)
	assert.Equal(t, int64(25), p.Quantity)

	txs := stock.Transactions(dto.TransactionFilter{})
	require.Len(t, txs, 2)
	assert.Equal(t, entity.TransactionTypeOut, txs[0].Type, "más reciente primero")
	assert.Equal(t, "노트북", txs[0].ProductName)
	assert.Len(t, stock.Transactions(dto.TransactionFilter{Type: entity.TransactionTypeIn}), 1)
	assert.Len(t, stock.Transactions(dto.TransactionFilter{Limit: 1}), 1)
}

func TestStock_SalidaSinStockNoMuta(t *testing.T) {
	ctx := context.Background()
	s := newStore(t)
	seedProducts(t, s, entity.Product{ID: "1", Name: "USB", Quantity: 3})
	stock := inventory.NewStockUseCase(s)

	_, err := stock.RemoveStock(ctx, dto.StockMovementRequest{ProductID: "1", Quantity: 4})
	require.ErrorIs(t, err, domain.ErrInsufficientStock)

	p, _ := inventory.NewCatalogUseCase(s).GetByID("1")
	assert.Equal(t, int64(3), p.Quantity)
	assert.Empty(t, stock.Transactions(dto.TransactionFilter{}))
}

func TestStock_Validaciones(t *testing.T) {
	ctx := context.Background()
	s := newStore(t)
	seedProducts(t, s, entity.Product{ID: "1", Quantity: 3})
	stock := inventory.NewStockUseCase(s)

	tests := []struct {
		name string
		in   dto.StockMovementRequest
		want error
	}{
		{"cantidad cero", dto.StockMovementRequest{ProductID: "1", Quantity: 0}, domain.ErrInvalidInput},
		{"cantidad negativa", dto.StockMovementRequest{ProductID: "1", Quantity: -2}, domain.ErrInvalidInput},
		{"sin producto", dto.StockMovementRequest{Quantity: 1}, domain.ErrInvalidInput},
		{"producto inexistente", dto.StockMovementRequest{ProductID: "9", Quantity: 1}, domain.ErrNotFound},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := stock.AddStock(ctx, tt.in)
			assert.ErrorIs(t, err, tt.want)
		})
	}
	_, err := stock.RegisterMovement(ctx, "adjust", dto.StockMovementRequest{ProductID: "1", Quantity: 1})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestStock_FlujoPorRango(t *testing.T) {
	ctx := context.Background()
	s := newStore(t)
	seedProducts(t, s,
		entity.Product{ID: "1", Name: "노트북", Quantity: 10},
		entity.Product{ID: "2", Name: "마우스", Quantity: 10},
	)
	current := time.Date(2025, 3, 1, 9, 0, 0, 0, time.UTC)
	stock := inventory.NewStockUseCase(s).WithClock(func() time.Time { return current })

	_, err := stock.AddStock(ctx, dto.StockMovementRequest{ProductID: "1", Quantity: 5})
	require.NoError(t, err)
	current = current.AddDate(0, 0, 1)
	_, err = stock.RemoveStock(ctx, dto.StockMovementRequest{ProductID: "1", Quantity: 2})
	require.NoError(t, err)
	_, err = stock.RemoveStock(ctx, dto.StockMovementRequest{ProductID: "2", Quantity: 3})
	require.NoError(t, err)
	current = time.Date(2025, 4, 1, 0, 0, 0, 0, time.UTC)
	_, err = stock.AddStock(ctx, dto.StockMovementRequest{ProductID: "2", Quantity: 100})
	require.NoError(t, err)

	report, err := stock.StockFlow(time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC), time.Date(2025, 4, 1, 0, 0, 0, 0, time.UTC))
	require.NoError(t, err)
	assert.Equal(t, int64(5), report.TotalIn)
	assert.Equal(t, int64(5), report.TotalOut)
	require.Len(t, report.Products, 2)
	assert.Equal(t, dto.StockFlowDTO{ProductID: "1", ProductName: "노트북", In: 5, Out: 2, Net: 3}, report.Products[0])
	assert.Equal(t, dto.StockFlowDTO{ProductID: "2", ProductName: "마우스", Out: 3, Net: -3}, report.Products[1])

	_, err = stock.StockFlow(current, current)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}
