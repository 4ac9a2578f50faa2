// Package closing contiene el cálculo del cierre mensual de ventas (servicio de dominio puro):
// selección del período, totales, desglose por categoría e histograma de cobro.
package closing

import (
	"sort"
	"time"

	"github.com/jhoicas/saeron-inventario/internal/domain/entity"
)

// CategoryLookup resuelve la categoría actual de un producto. ok=false si el producto ya no existe.
type CategoryLookup func(productID entity.ID) (category string, ok bool)

// Summary resultado de agregar un conjunto de ventas.
type Summary struct {
	TotalSales        int64
	TotalPaid         int64
	TotalUnpaid       int64
	SalesCount        int
	CategoryBreakdown []entity.CategoryBreakdown
	PaymentStatus     entity.PaymentStatusCount
}

// ValidPeriod año de cuatro dígitos y mes 1..12.
func ValidPeriod(year, month int) bool {
	return year >= 1000 && year <= 9999 && month >= 1 && month <= 12
}

// PeriodRange devuelve el rango [start, end) del mes en la zona horaria loc.
// end es el primer instante del mes siguiente, así el rango incluye todo el último día
// hasta 23:59:59 (y sus fracciones de segundo).
func PeriodRange(year, month int, loc *time.Location) (start, end time.Time) {
	if loc == nil {
		loc = time.Local
	}
	start = time.Date(year, time.Month(month), 1, 0, 0, 0, 0, loc)
	end = start.AddDate(0, 1, 0)
	return start, end
}

// SelectSales filtra las ventas cuya fecha cae dentro del mes indicado.
func SelectSales(sales []entity.Sale, year, month int, loc *time.Location) []entity.Sale {
	start, end := PeriodRange(year, month, loc)
	selected := make([]entity.Sale, 0)
	for _, s := range sales {
		if !s.Date.Before(start) && s.Date.Before(end) {
			selected = append(selected, s)
		}
	}
	return selected
}

// Aggregate calcula totales, desglose por categoría e histograma de cobro en una sola pasada.
// TotalUnpaid se deriva de TotalSales - TotalPaid, no se suma por separado.
//
// La categoría de cada venta sale de su foto (Sale.Category); para ventas sin foto se usa la
// categoría actual del producto y, si el producto ya no existe, UncategorizedSales. Así el
// desglose siempre cuadra con los totales.
func Aggregate(sales []entity.Sale, lookup CategoryLookup) Summary {
	var sum Summary
	byCategory := make(map[string]*entity.CategoryBreakdown)

	for _, s := range sales {
		sum.TotalSales += s.TotalPrice
		sum.TotalPaid += s.PaidAmount
		sum.SalesCount++

		switch s.PaymentState() {
		case entity.PaymentFullyPaid:
			sum.PaymentStatus.FullyPaid++
		case entity.PaymentPartiallyPaid:
			sum.PaymentStatus.PartiallyPaid++
		default:
			sum.PaymentStatus.Unpaid++
		}

		category := resolveCategory(s, lookup)
		row, ok := byCategory[category]
		if !ok {
			row = &entity.CategoryBreakdown{Category: category}
			byCategory[category] = row
		}
		row.Sales += s.TotalPrice
		row.Quantity += s.Quantity
		row.Paid += s.PaidAmount
	}
	sum.TotalUnpaid = sum.TotalSales - sum.TotalPaid

	sum.CategoryBreakdown = make([]entity.CategoryBreakdown, 0, len(byCategory))
	for _, row := range byCategory {
		sum.CategoryBreakdown = append(sum.CategoryBreakdown, *row)
	}
	// Mayor venta primero; empate por nombre para un orden estable
	sort.Slice(sum.CategoryBreakdown, func(i, j int) bool {
		a, b := sum.CategoryBreakdown[i], sum.CategoryBreakdown[j]
		if a.Sales != b.Sales {
			return a.Sales > b.Sales
		}
		return a.Category < b.Category
	})
	return sum
}

func resolveCategory(s entity.Sale, lookup CategoryLookup) string {
	if s.Category != "" {
		return s.Category
	}
	if lookup != nil {
		if c, ok := lookup(s.ProductID); ok && c != "" {
			return c
		}
	}
	return entity.UncategorizedSales
}

// Build arma el registro de cierre a partir de las ventas ya seleccionadas.
// SalesData es una copia: cambios posteriores al libro de ventas no alteran el cierre.
func Build(id entity.ID, year, month int, closingDate time.Time, selected []entity.Sale, lookup CategoryLookup) entity.MonthlyClosing {
	sum := Aggregate(selected, lookup)
	frozen := make([]entity.Sale, len(selected))
	copy(frozen, selected)
	return entity.MonthlyClosing{
		ID:                id,
		Year:              year,
		Month:             month,
		ClosingDate:       closingDate,
		TotalSales:        sum.TotalSales,
		TotalPaid:         sum.TotalPaid,
		TotalUnpaid:       sum.TotalUnpaid,
		SalesCount:        sum.SalesCount,
		CategoryBreakdown: sum.CategoryBreakdown,
		PaymentStatus:     sum.PaymentStatus,
		SalesData:         frozen,
	}
}
