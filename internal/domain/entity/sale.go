package entity

import "time"

// Sale registro de venta. ProductName, Category y UnitPrice son fotos del momento de la venta,
// no referencias. El saldo pendiente nunca se almacena: se deriva con Unpaid.
type Sale struct {
	ID          ID        `json:"id"`
	ProductID   ID        `json:"productId"`
	ProductName string    `json:"productName"`
	Category    string    `json:"category,omitempty"`
	Quantity    int64     `json:"quantity"`
	UnitPrice   int64     `json:"unitPrice"`
	TotalPrice  int64     `json:"totalPrice"`
	PaidAmount  int64     `json:"paidAmount"` // 0 <= PaidAmount <= TotalPrice
	Customer    string    `json:"customer"`
	Phone       string    `json:"customerPhone,omitempty"`
	Address     string    `json:"address,omitempty"`
	Note        string    `json:"note,omitempty"`
	User        string    `json:"user,omitempty"`
	Date        time.Time `json:"date"`
}

// Unpaid saldo pendiente de cobro (TotalPrice - PaidAmount). Única derivación del saldo.
func (s Sale) Unpaid() int64 {
	return s.TotalPrice - s.PaidAmount
}

// Valid cantidad no negativa y 0 <= PaidAmount <= TotalPrice.
func (s Sale) Valid() bool {
	return s.Quantity >= 0 && s.TotalPrice >= 0 && s.PaidAmount >= 0 && s.PaidAmount <= s.TotalPrice
}

// Estados de cobro de una venta.
const (
	PaymentFullyPaid     = "fullyPaid"
	PaymentPartiallyPaid = "partiallyPaid"
	PaymentUnpaid        = "unpaid"
)

// PaymentState clasifica la venta según lo cobrado.
// Un total de 0 se considera completamente pagado (no hay nada pendiente).
func (s Sale) PaymentState() string {
	switch {
	case s.PaidAmount >= s.TotalPrice:
		return PaymentFullyPaid
	case s.PaidAmount <= 0:
		return PaymentUnpaid
	default:
		return PaymentPartiallyPaid
	}
}
