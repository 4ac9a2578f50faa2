// Package analytics contiene los casos de uso del tablero y de los reportes de inventario.
package analytics

import (
	"fmt"
	"sort"
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/saeron-inventario/internal/application/dto"
	"github.com/jhoicas/saeron-inventario/internal/application/sales"
	"github.com/jhoicas/saeron-inventario/internal/application/state"
	"github.com/jhoicas/saeron-inventario/internal/domain/closing"
	"github.com/jhoicas/saeron-inventario/internal/domain/entity"
)

const (
	dashboardTopProducts  = 5  // productos en el widget del tablero
	dashboardRecentMoves  = 10 // movimientos recientes
	dashboardActivityDays = 7  // ventana de conteo de entradas/salidas
)

// DashboardUseCase genera el resumen del día y del mes en curso.
type DashboardUseCase struct {
	store state.Controller
	loc   *time.Location
	now   func() time.Time
}

// NewDashboardUseCase construye el caso de uso.
func NewDashboardUseCase(store state.Controller, loc *time.Location) *DashboardUseCase {
	if loc == nil {
		loc = time.Local
	}
	return &DashboardUseCase{store: store, loc: loc, now: time.Now}
}

// WithClock reemplaza el reloj (tests).
func (uc *DashboardUseCase) WithClock(now func() time.Time) *DashboardUseCase {
	uc.now = now
	return uc
}

// GetSummary construye el DashboardSummaryDTO a partir del estado vigente.
func (uc *DashboardUseCase) GetSummary() *dto.DashboardSummaryDTO {
	now := uc.now().In(uc.loc)
	todayStart := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, uc.loc)
	todayEnd := todayStart.AddDate(0, 0, 1)
	activitySince := now.Add(-dashboardActivityDays * 24 * time.Hour)

	out := &dto.DashboardSummaryDTO{
		LowStock:            []entity.Product{},
		RecentTransactions:  []dto.TransactionView{},
		MonthCollectionRate: decimal.Zero,
		DateLabel:           monthLabel(now),
	}

	uc.store.View(func(st *state.State) {
		inv := &st.Inventory
		out.ProductCount = len(inv.Products)
		for _, p := range inv.Products {
			out.TotalQuantity += p.Quantity
			out.TotalValue += p.StockValue()
			if p.IsLowStock() {
				out.LowStock = append(out.LowStock, p)
			}
		}
		out.LowStockCount = len(out.LowStock)

		for i, tx := range inv.Transactions {
			if i < dashboardRecentMoves {
				out.RecentTransactions = append(out.RecentTransactions, dto.TransactionView{
					Transaction: tx,
					ProductName: inv.ProductName(tx.ProductID),
				})
			}
			if tx.Date.After(activitySince) {
				if tx.Type == entity.TransactionTypeIn {
					out.InCount++
				} else {
					out.OutCount++
				}
			}
		}

		var today []entity.Sale
		for _, s := range inv.Sales {
			if !s.Date.Before(todayStart) && s.Date.Before(todayEnd) {
				today = append(today, s)
			}
		}
		month := closing.SelectSales(inv.Sales, now.Year(), int(now.Month()), uc.loc)
		out.Today = sales.Summarize(today)
		out.Month = sales.Summarize(month)
		out.TopProducts = topProducts(month, dashboardTopProducts)
	})

	if out.Month.TotalSales > 0 {
		out.MonthCollectionRate = decimal.NewFromInt(out.Month.TotalPaid).
			Mul(decimal.NewFromInt(100)).
			Div(decimal.NewFromInt(out.Month.TotalSales)).
			Round(1)
	}
	return out
}

// topProducts agrupa ventas por producto y devuelve los n de mayor venta.
// El nombre sale de la foto de la venta.
func topProducts(list []entity.Sale, n int) []dto.TopProductDTO {
	byID := map[entity.ID]*dto.TopProductDTO{}
	for _, s := range list {
		row, ok := byID[s.ProductID]
		if !ok {
			row = &dto.TopProductDTO{ProductID: s.ProductID, ProductName: s.ProductName}
			byID[s.ProductID] = row
		}
		row.QuantitySold += s.Quantity
		row.TotalSales += s.TotalPrice
	}
	out := make([]dto.TopProductDTO, 0, len(byID))
	for _, row := range byID {
		out = append(out, *row)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].TotalSales != out[j].TotalSales {
			return out[i].TotalSales > out[j].TotalSales
		}
		return out[i].ProductID < out[j].ProductID
	})
	if len(out) > n {
		out = out[:n]
	}
	return out
}

// monthLabel etiqueta del mes, ej: "2025년 3월".
func monthLabel(t time.Time) string {
	return fmt.Sprintf("%d년 %d월", t.Year(), int(t.Month()))
}
