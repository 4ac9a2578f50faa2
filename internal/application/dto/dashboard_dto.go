package dto

import (
	"github.com/shopspring/decimal"

	"github.com/jhoicas/saeron-inventario/internal/domain/entity"
)

// DashboardSummaryDTO respuesta de GET /api/dashboard/summary.
type DashboardSummaryDTO struct {
	ProductCount  int   `json:"productCount"`
	TotalQuantity int64 `json:"totalQuantity"`
	TotalValue    int64 `json:"totalValue"` // Σ cantidad * precio
	LowStockCount int   `json:"lowStockCount"`

	// Cantidad de movimientos de los últimos 7 días
	InCount  int `json:"inCount"`
	OutCount int `json:"outCount"`

	LowStock           []entity.Product  `json:"lowStock"`
	RecentTransactions []TransactionView `json:"recentTransactions"` // últimos 10

	Today SalesTotalsDTO `json:"today"`
	Month SalesTotalsDTO `json:"month"`

	// Porcentaje cobrado del mes en curso (TotalPaid / TotalSales * 100), un decimal.
	MonthCollectionRate decimal.Decimal `json:"monthCollectionRate"`

	// Top 5 productos por venta del mes
	TopProducts []TopProductDTO `json:"topProducts"`

	DateLabel string `json:"dateLabel"` // ej: "2025년 3월"
}

// TopProductDTO ventas de un producto en el período.
type TopProductDTO struct {
	ProductID    entity.ID `json:"productId"`
	ProductName  string    `json:"productName"`
	QuantitySold int64     `json:"quantitySold"`
	TotalSales   int64     `json:"totalSales"`
}

// TrendPointDTO entradas y salidas de un día.
type TrendPointDTO struct {
	Date string `json:"date"` // YYYY-MM-DD
	In   int64  `json:"in"`
	Out  int64  `json:"out"`
}

// ProductValueDTO valor de inventario de un producto.
type ProductValueDTO struct {
	ProductID entity.ID `json:"productId"`
	Name      string    `json:"name"`
	Quantity  int64     `json:"quantity"`
	Value     int64     `json:"value"`
}
