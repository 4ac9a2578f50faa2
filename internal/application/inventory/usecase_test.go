package inventory_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/saeron-inventario/internal/application/dto"
	"github.com/jhoicas/saeron-inventario/internal/application/inventory"
	"github.com/jhoicas/saeron-inventario/internal/application/state"
	"github.com/jhoicas/saeron-inventario/internal/domain"
	"github.com/jhoicas/saeron-inventario/internal/domain/entity"
	"github.com/jhoicas/saeron-inventario/internal/infrastructure/memory"
)

var fixedNow = time.Date(2025, 3, 15, 10, 0, 0, 0, time.UTC)

func clock() time.Time { return fixedNow }

func newStore(t *testing.T) *state.Store {
	t.Helper()
	s := state.NewStore(memory.NewStateRepository(), nil)
	require.NoError(t, s.Load(context.Background()))
	return s
}

func seedProducts(t *testing.T, s *state.Store, products ...entity.Product) {
	t.Helper()
	require.NoError(t, s.Run(context.Background(), func(st *state.State) error {
		st.Inventory.Products = append(st.Inventory.Products, products...)
		return nil
	}))
}

func TestCatalog_CreateRegistraCategoriaNueva(t *testing.T) {
	s := newStore(t)
	uc := inventory.NewCatalogUseCase(s).WithClock(clock)

	p, err := uc.Create(context.Background(), dto.CreateProductRequest{
		Code: "PRD-010", Name: "웹캠", Category: "영상장비", Quantity: 4, MinQuantity: 2, Price: 80000,
	})
	require.NoError(t, err)
	assert.NotEmpty(t, p.ID)
	assert.Equal(t, fixedNow, p.LastUpdated)
	assert.Contains(t, uc.Categories(), "영상장비")
	assert.Len(t, uc.Categories(), len(entity.DefaultCategories)+1)
}

func TestCatalog_CreateCodigoDuplicado(t *testing.T) {
	s := newStore(t)
	uc := inventory.NewCatalogUseCase(s)
	seedProducts(t, s, entity.Product{ID: "1", Code: "PRD-001", Name: "노트북"})

	_, err := uc.Create(context.Background(), dto.CreateProductRequest{Code: "prd-001", Name: "다른 제품", Category: "기타"})
	require.ErrorIs(t, err, domain.ErrDuplicate)
	assert.Len(t, uc.List(dto.ProductFilter{}), 1)
}

func TestCatalog_UpdateParcial(t *testing.T) {
	s := newStore(t)
	uc := inventory.NewCatalogUseCase(s).WithClock(clock)
	seedProducts(t, s, entity.Product{ID: "1", Code: "PRD-001", Name: "노트북", Price: 1500000, Quantity: 45})

	price := int64(1400000)
	p, err := uc.Update(context.Background(), "1", dto.UpdateProductRequest{Price: &price})
	require.NoError(t, err)
	assert.Equal(t, int64(1400000), p.Price)
	assert.Equal(t, int64(45), p.Quantity)
	assert.Equal(t, "노트북", p.Name)
	assert.Equal(t, fixedNow, p.LastUpdated)

	neg := int64(-1)
	_, err = uc.Update(context.Background(), "1", dto.UpdateProductRequest{Quantity: &neg})
	require.ErrorIs(t, err, domain.ErrInvalidInput)

	_, err = uc.Update(context.Background(), "nope", dto.UpdateProductRequest{Price: &price})
	require.ErrorIs(t, err, domain.ErrNotFound)
}

func TestCatalog_DeleteConservaHistorial(t *testing.T) {
	ctx := context.Background()
	s := newStore(t)
	catalog := inventory.NewCatalogUseCase(s)
	stock := inventory.NewStockUseCase(s)
	seedProducts(t, s, entity.Product{ID: "1", Code: "PRD-001", Name: "노트북", Quantity: 5})

	_, err := stock.AddStock(ctx, dto.StockMovementRequest{ProductID: "1", Quantity: 2})
	require.NoError(t, err)
	require.NoError(t, catalog.Delete(ctx, "1"))
	require.ErrorIs(t, catalog.Delete(ctx, "1"), domain.ErrNotFound)

	txs := stock.Transactions(dto.TransactionFilter{})
	require.Len(t, txs, 1)
	assert.Equal(t, entity.DeletedProductName, txs[0].ProductName)
}

func TestCatalog_ConsultasDeInventario(t *testing.T) {
	s := newStore(t)
	uc := inventory.NewCatalogUseCase(s)
	seedProducts(t, s,
		entity.Product{ID: "1", Code: "PRD-001", Name: "노트북", Category: "전자제품", Quantity: 45, MinQuantity: 10, Price: 1500000},
		entity.Product{ID: "2", Code: "PRD-002", Name: "무선마우스", Category: "주변기기", Quantity: 120, MinQuantity: 30, Price: 25000},
		entity.Product{ID: "3", Code: "PRD-003", Name: "USB 메모리", Category: "저장장치", Quantity: 8, MinQuantity: 20, Price: 15000},
		entity.Product{ID: "4", Code: "PRD-004", Name: "모니터", Category: "전자제품", Quantity: 15, MinQuantity: 15, Price: 350000},
	)

	low := uc.LowStock()
	require.Len(t, low, 2)
	assert.Equal(t, entity.ID("3"), low[0].ID)
	assert.Equal(t, entity.ID("4"), low[1].ID)

	assert.Len(t, uc.ByCategory("전자제품"), 2)
	assert.Len(t, uc.List(dto.ProductFilter{Search: "prd-002"}), 1)
	assert.Len(t, uc.List(dto.ProductFilter{Search: "마우스"}), 1)

	assert.Equal(t, int64(45*1500000+120*25000+8*15000+15*350000), uc.TotalValue())

	values := uc.CategoryValues()
	require.Len(t, values, 3)
	assert.Equal(t, dto.CategoryValueDTO{Category: "전자제품", Products: 2, Quantity: 60, Value: 45*1500000 + 15*350000}, values[0])
	assert.Equal(t, "주변기기", values[1].Category)
	assert.Equal(t, "저장장치", values[2].Category)

	_, err := uc.GetByID("99")
	require.ErrorIs(t, err, domain.ErrNotFound)
}
