package dto

import (
	"time"

	"github.com/jhoicas/saeron-inventario/internal/domain/entity"
)

// RecordSaleRequest body para POST /api/sales.
// TotalAmount es opcional: si falta se calcula como Quantity*UnitPrice.
type RecordSaleRequest struct {
	ProductID   entity.ID  `json:"productId" validate:"required"`
	Quantity    int64      `json:"quantity" validate:"gt=0"`
	UnitPrice   int64      `json:"unitPrice" validate:"min=0"`
	TotalAmount *int64     `json:"totalAmount" validate:"omitempty,min=0"`
	PaidAmount  int64      `json:"paidAmount" validate:"min=0"`
	Customer    string     `json:"customer" validate:"max=200"`
	Phone       string     `json:"customerPhone" validate:"max=50"`
	Address     string     `json:"address" validate:"max=300"`
	Note        string     `json:"note" validate:"max=500"`
	User        string     `json:"user" validate:"max=100"`
	Date        *time.Time `json:"date"`
}

// SaleFilter filtros de GET /api/sales. Year y Month en cero no filtran.
type SaleFilter struct {
	Year   int    `query:"year" validate:"omitempty,min=1000,max=9999"`
	Month  int    `query:"month" validate:"omitempty,min=1,max=12"`
	Search string `query:"search"` // producto, cliente o teléfono
}

// CollectPaymentRequest body para POST /api/sales/:id/payments.
type CollectPaymentRequest struct {
	Amount int64 `json:"amount" validate:"gt=0"`
}

// SalesTotalsDTO totales de un conjunto de ventas.
type SalesTotalsDTO struct {
	Count       int   `json:"count"`
	TotalSales  int64 `json:"totalSales"`
	TotalPaid   int64 `json:"totalPaid"`
	TotalUnpaid int64 `json:"totalUnpaid"`
}

// SaleView venta con su saldo y estado de cobro derivados.
type SaleView struct {
	entity.Sale
	Unpaid        int64  `json:"unpaid"`
	PaymentStatus string `json:"paymentStatus"`
}

// NewSaleView deriva saldo y estado de la venta.
func NewSaleView(s entity.Sale) SaleView {
	return SaleView{Sale: s, Unpaid: s.Unpaid(), PaymentStatus: s.PaymentState()}
}
