package dto

import (
	"github.com/shopspring/decimal"

	"github.com/jhoicas/saeron-inventario/internal/domain/entity"
)

// QuoteItemRequest línea de cotización; ProductID opcional.
type QuoteItemRequest struct {
	ProductID   entity.ID `json:"productId"`
	ProductName string    `json:"productName" validate:"required,max=200"`
	Quantity    int64     `json:"quantity" validate:"gt=0"`
	UnitPrice   int64     `json:"unitPrice" validate:"min=0"`
}

// QuoteRequest body para crear o reemplazar una cotización.
type QuoteRequest struct {
	CustomerName    string             `json:"customerName" validate:"required,max=200"`
	CustomerCompany string             `json:"customerCompany" validate:"max=200"`
	CustomerPhone   string             `json:"customerPhone" validate:"max=50"`
	CustomerEmail   string             `json:"customerEmail" validate:"omitempty,email"`
	Items           []QuoteItemRequest `json:"products" validate:"required,min=1,dive"`
	ValidUntil      string             `json:"validUntil" validate:"omitempty,datetime=2006-01-02"`
	Status          string             `json:"status" validate:"omitempty,oneof=pending success rejected"`
	IsProspect      bool               `json:"isProspect"`
	Note            string             `json:"note" validate:"max=500"`
	User            string             `json:"user" validate:"max=100"`
}

// UpdateQuoteStatusRequest body para PATCH /api/quotes/:id/status.
type UpdateQuoteStatusRequest struct {
	Status string `json:"status" validate:"required,oneof=pending success rejected"`
}

// QuoteFilter filtros de GET /api/quotes.
type QuoteFilter struct {
	Status string `query:"status" validate:"omitempty,oneof=pending success rejected"`
	Search string `query:"search"` // nombre, empresa o teléfono
}

// QuoteStatsDTO resumen de cotizaciones. SuccessRate en % con un decimal.
type QuoteStatsDTO struct {
	Count         int             `json:"count"`
	Total         int64           `json:"total"`
	SuccessTotal  int64           `json:"successTotal"`
	ProspectCount int             `json:"prospectCount"`
	PendingCount  int             `json:"pendingCount"`
	SuccessRate   decimal.Decimal `json:"successRate"`
}
