package entity

import "time"

// Estados de cotización.
const (
	QuoteStatusPending  = "pending"
	QuoteStatusSuccess  = "success"
	QuoteStatusRejected = "rejected"
)

// QuoteItem línea de cotización. ProductID es opcional: se puede cotizar un producto fuera del catálogo.
type QuoteItem struct {
	ProductID   ID     `json:"productId,omitempty"`
	ProductName string `json:"productName"`
	Quantity    int64  `json:"quantity"`
	UnitPrice   int64  `json:"unitPrice"`
}

// Total importe de la línea.
func (i QuoteItem) Total() int64 {
	return i.Quantity * i.UnitPrice
}

// Quote cotización enviada a un cliente (o cliente potencial).
type Quote struct {
	ID              ID          `json:"id"`
	QuoteNumber     string      `json:"quoteNumber"`
	CustomerName    string      `json:"customerName"`
	CustomerCompany string      `json:"customerCompany"`
	CustomerPhone   string      `json:"customerPhone"`
	CustomerEmail   string      `json:"customerEmail"`
	Items           []QuoteItem `json:"products"`
	TotalAmount     int64       `json:"totalAmount"`
	ValidUntil      string      `json:"validUntil"` // YYYY-MM-DD
	Status          string      `json:"status"`
	IsProspect      bool        `json:"isProspect"`
	Note            string      `json:"note"`
	User            string      `json:"user"`
	CreatedAt       time.Time   `json:"createdAt"`
}

// ValidQuoteStatus verifica que s sea un estado de cotización conocido.
func ValidQuoteStatus(s string) bool {
	return s == QuoteStatusPending || s == QuoteStatusSuccess || s == QuoteStatusRejected
}
