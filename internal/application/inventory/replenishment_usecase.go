package inventory

import (
	"sort"
	"time"

	"github.com/jhoicas/saeron-inventario/internal/application/dto"
	"github.com/jhoicas/saeron-inventario/internal/application/state"
	"github.com/jhoicas/saeron-inventario/internal/domain/entity"
	domaininv "github.com/jhoicas/saeron-inventario/internal/domain/inventory"
)

// ReplenishmentUseCase genera la lista de reposición: productos en o bajo su mínimo, con la
// cantidad sugerida de pedido y una prioridad basada en las ventas recientes.
type ReplenishmentUseCase struct {
	store state.Controller
	now   func() time.Time
}

// NewReplenishmentUseCase construye el caso de uso de reposición.
func NewReplenishmentUseCase(store state.Controller) *ReplenishmentUseCase {
	return &ReplenishmentUseCase{store: store, now: time.Now}
}

// WithClock reemplaza el reloj (tests).
func (uc *ReplenishmentUseCase) WithClock(now func() time.Time) *ReplenishmentUseCase {
	uc.now = now
	return uc
}

// GenerateReplenishmentList stock ideal = mínimo * 1.5 (redondeado hacia arriba); se sugiere
// pedir la diferencia con el stock actual. Orden: más unidades vendidas en 90 días, luego mayor déficit.
func (uc *ReplenishmentUseCase) GenerateReplenishmentList() []dto.ReplenishmentSuggestionDTO {
	since := uc.now().AddDate(0, 0, -90)
	suggestions := []dto.ReplenishmentSuggestionDTO{}

	uc.store.View(func(st *state.State) {
		sold := map[entity.ID]int64{}
		for _, s := range st.Inventory.Sales {
			if !s.Date.Before(since) {
				sold[s.ProductID] += s.Quantity
			}
		}
		for _, p := range st.Inventory.Products {
			if !p.IsLowStock() {
				continue
			}
			qty := domaininv.OrderQuantity(p.Quantity, p.MinQuantity)
			suggestions = append(suggestions, dto.ReplenishmentSuggestionDTO{
				ProductID:          p.ID,
				Code:               p.Code,
				ProductName:        p.Name,
				CurrentStock:       p.Quantity,
				MinQuantity:        p.MinQuantity,
				IdealStock:         domaininv.IdealStock(p.MinQuantity),
				SuggestedOrderQty:  qty,
				UnitPrice:          p.Price,
				EstimatedOrderCost: qty * p.Price,
				UnitsSoldLast90d:   sold[p.ID],
			})
		}
	})

	sort.SliceStable(suggestions, func(i, j int) bool {
		a, b := suggestions[i], suggestions[j]
		if a.UnitsSoldLast90d != b.UnitsSoldLast90d {
			return a.UnitsSoldLast90d > b.UnitsSoldLast90d
		}
		return domaininv.Shortfall(a.CurrentStock, a.MinQuantity) > domaininv.Shortfall(b.CurrentStock, b.MinQuantity)
	})
	for i := range suggestions {
		suggestions[i].Priority = i + 1
	}
	return suggestions
}
