package entity

import "time"

// UncategorizedSales agrupa en el desglose las ventas cuyo producto ya no existe
// y que no tienen categoría registrada.
const UncategorizedSales = "미분류(삭제된 제품)"

// CategoryBreakdown totales de una categoría dentro de un cierre.
type CategoryBreakdown struct {
	Category string `json:"category"`
	Sales    int64  `json:"sales"`
	Quantity int64  `json:"quantity"`
	Paid     int64  `json:"paid"`
}

// PaymentStatusCount histograma de estados de cobro.
type PaymentStatusCount struct {
	FullyPaid     int `json:"fullyPaid"`
	PartiallyPaid int `json:"partiallyPaid"`
	Unpaid        int `json:"unpaid"`
}

// Total número de ventas clasificadas.
func (p PaymentStatusCount) Total() int {
	return p.FullyPaid + p.PartiallyPaid + p.Unpaid
}

// MonthlyClosing foto inmutable de las ventas de un mes. A lo sumo un cierre por (Year, Month).
// Eliminarlo no afecta al libro de ventas; solo reabre el período.
type MonthlyClosing struct {
	ID                ID                  `json:"id"`
	Year              int                 `json:"year"`
	Month             int                 `json:"month"`
	ClosingDate       time.Time           `json:"closingDate"`
	TotalSales        int64               `json:"totalSales"`
	TotalPaid         int64               `json:"totalPaid"`
	TotalUnpaid       int64               `json:"totalUnpaid"`
	SalesCount        int                 `json:"salesCount"`
	CategoryBreakdown []CategoryBreakdown `json:"categoryBreakdown"`
	PaymentStatus     PaymentStatusCount  `json:"paymentStatus"`
	SalesData         []Sale              `json:"salesData"`
}

// SamePeriod indica si el cierre corresponde al año y mes dados.
func (c MonthlyClosing) SamePeriod(year, month int) bool {
	return c.Year == year && c.Month == month
}
