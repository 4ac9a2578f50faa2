package analytics

import (
	"sort"
	"time"

	"github.com/jhoicas/saeron-inventario/internal/application/dto"
	"github.com/jhoicas/saeron-inventario/internal/application/state"
	"github.com/jhoicas/saeron-inventario/internal/domain"
	"github.com/jhoicas/saeron-inventario/internal/domain/entity"
)

// ReportUseCase reportes de inventario: tendencia diaria de movimientos y productos por valor.
type ReportUseCase struct {
	store state.Controller
	loc   *time.Location
	now   func() time.Time
}

// NewReportUseCase construye el caso de uso.
func NewReportUseCase(store state.Controller, loc *time.Location) *ReportUseCase {
	if loc == nil {
		loc = time.Local
	}
	return &ReportUseCase{store: store, loc: loc, now: time.Now}
}

// WithClock reemplaza el reloj (tests).
func (uc *ReportUseCase) WithClock(now func() time.Time) *ReportUseCase {
	uc.now = now
	return uc
}

// TransactionTrend entradas y salidas por día de los últimos days días (incluido hoy), del más antiguo al más reciente.
func (uc *ReportUseCase) TransactionTrend(days int) ([]dto.TrendPointDTO, error) {
	if days <= 0 || days > 366 {
		return nil, domain.ErrInvalidInput
	}
	now := uc.now().In(uc.loc)
	first := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, uc.loc).AddDate(0, 0, -(days - 1))

	points := make([]dto.TrendPointDTO, days)
	index := make(map[string]int, days)
	for i := range points {
		d := first.AddDate(0, 0, i).Format(time.DateOnly)
		points[i].Date = d
		index[d] = i
	}
	uc.store.View(func(st *state.State) {
		for _, tx := range st.Inventory.Transactions {
			i, ok := index[tx.Date.In(uc.loc).Format(time.DateOnly)]
			if !ok {
				continue
			}
			if tx.Type == entity.TransactionTypeIn {
				points[i].In += tx.Quantity
			} else {
				points[i].Out += tx.Quantity
			}
		}
	})
	return points, nil
}

// TopProductsByValue productos con mayor valor de inventario (cantidad * precio).
func (uc *ReportUseCase) TopProductsByValue(limit int) []dto.ProductValueDTO {
	if limit <= 0 {
		limit = 10
	}
	out := []dto.ProductValueDTO{}
	uc.store.View(func(st *state.State) {
		for _, p := range st.Inventory.Products {
			out = append(out, dto.ProductValueDTO{ProductID: p.ID, Name: p.Name, Quantity: p.Quantity, Value: p.StockValue()})
		}
	})
	sort.SliceStable(out, func(i, j int) bool { return out[i].Value > out[j].Value })
	if len(out) > limit {
		out = out[:limit]
	}
	return out
}
