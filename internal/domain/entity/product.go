package entity

import "time"

// Categorías por defecto del catálogo.
var DefaultCategories = []string{"전자제품", "주변기기", "저장장치", "기타"}

// DeletedProductName se muestra en el historial cuando el producto referenciado ya no existe.
const DeletedProductName = "삭제된 제품"

// Product representa un producto del catálogo. Price en KRW (entero, sin decimales).
// Quantity nunca es negativa: las salidas que la dejarían bajo cero se rechazan.
type Product struct {
	ID          ID        `json:"id"`
	Code        string    `json:"code"` // código único, ej. PRD-001
	Name        string    `json:"name"`
	Category    string    `json:"category"`
	Quantity    int64     `json:"quantity"`
	MinQuantity int64     `json:"minQuantity"` // punto de alerta de stock bajo
	Price       int64     `json:"price"`
	Location    string    `json:"location"`
	Supplier    string    `json:"supplier"`
	LastUpdated time.Time `json:"lastUpdated"`
}

// IsLowStock indica si la cantidad está en o por debajo del mínimo.
func (p Product) IsLowStock() bool {
	return p.Quantity <= p.MinQuantity
}

// StockValue valor del inventario disponible (cantidad * precio).
func (p Product) StockValue() int64 {
	return p.Quantity * p.Price
}
