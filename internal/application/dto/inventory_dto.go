package dto

import (
	"time"

	"github.com/jhoicas/saeron-inventario/internal/domain/entity"
)

// StockMovementRequest body para POST /api/transactions/in y /out.
type StockMovementRequest struct {
	ProductID entity.ID `json:"productId" validate:"required"`
	Quantity  int64     `json:"quantity" validate:"gt=0"`
	Note      string    `json:"note" validate:"max=500"`
	User      string    `json:"user" validate:"max=100"`
}

// TransactionFilter filtros del historial de movimientos.
type TransactionFilter struct {
	ProductID entity.ID `query:"productId"`
	Type      string    `query:"type" validate:"omitempty,oneof=in out"`
	Limit     int       `query:"limit" validate:"min=0,max=1000"`
}

// TransactionView movimiento con el nombre de producto resuelto.
type TransactionView struct {
	entity.Transaction
	ProductName string `json:"productName"`
}

// StockFlowDTO entradas y salidas de un producto en un rango de fechas.
type StockFlowDTO struct {
	ProductID   entity.ID `json:"productId"`
	ProductName string    `json:"productName"`
	In          int64     `json:"in"`
	Out         int64     `json:"out"`
	Net         int64     `json:"net"`
}

// StockFlowReport respuesta de GET /api/dashboard/stock-flow.
type StockFlowReport struct {
	From     time.Time      `json:"from"`
	To       time.Time      `json:"to"`
	TotalIn  int64          `json:"totalIn"`
	TotalOut int64          `json:"totalOut"`
	Products []StockFlowDTO `json:"products"`
}

// ReplenishmentSuggestionDTO sugerencia de reposición para un producto en o bajo su mínimo.
type ReplenishmentSuggestionDTO struct {
	ProductID          entity.ID `json:"productId"`
	Code               string    `json:"code"`
	ProductName        string    `json:"productName"`
	CurrentStock       int64     `json:"currentStock"`
	MinQuantity        int64     `json:"minQuantity"`
	IdealStock         int64     `json:"idealStock"`        // MinQuantity * 1.5, redondeado hacia arriba
	SuggestedOrderQty  int64     `json:"suggestedOrderQty"` // IdealStock - CurrentStock
	UnitPrice          int64     `json:"unitPrice"`
	EstimatedOrderCost int64     `json:"estimatedOrderCost"`
	UnitsSoldLast90d   int64     `json:"unitsSoldLast90d"`
	Priority           int       `json:"priority"` // 1 = más urgente
}
