package entity

import "time"

// Estados de pedido.
const (
	OrderStatusPending    = "pending"
	OrderStatusProcessing = "processing"
	OrderStatusShipped    = "shipped"
	OrderStatusDelivered  = "delivered"
	OrderStatusCancelled  = "cancelled"
)

// OrderStatuses lista de estados válidos (en orden de flujo).
var OrderStatuses = []string{
	OrderStatusPending, OrderStatusProcessing, OrderStatusShipped, OrderStatusDelivered, OrderStatusCancelled,
}

// Estados de pago de un pedido.
const (
	OrderPaymentPending = "pending"
	OrderPaymentPaid    = "paid"
	OrderPaymentPartial = "partial"
	OrderPaymentRefund  = "refund"
)

// OrderPaymentStatuses lista de estados de pago válidos.
var OrderPaymentStatuses = []string{
	OrderPaymentPending, OrderPaymentPaid, OrderPaymentPartial, OrderPaymentRefund,
}

// OrderItem línea de pedido (foto del producto al momento del pedido).
type OrderItem struct {
	ProductID   ID     `json:"productId"`
	ProductName string `json:"productName"`
	Quantity    int64  `json:"quantity"`
	Price       int64  `json:"price"`
	Total       int64  `json:"total"`
}

// Order pedido de cliente.
type Order struct {
	ID              ID          `json:"id"`
	OrderNumber     string      `json:"orderNumber"` // ORD-YYYY-NNN
	CustomerID      ID          `json:"customerId"`
	CustomerName    string      `json:"customerName"`
	OrderDate       time.Time   `json:"orderDate"`
	DeliveryDate    *time.Time  `json:"deliveryDate,omitempty"`
	Status          string      `json:"status"`
	Items           []OrderItem `json:"items"`
	TotalAmount     int64       `json:"totalAmount"`
	PaidAmount      int64       `json:"paidAmount"`
	PaymentStatus   string      `json:"paymentStatus"`
	PaymentMethod   string      `json:"paymentMethod"`
	ShippingAddress string      `json:"shippingAddress"`
	Note            string      `json:"note"`
	User            string      `json:"user"`
}

// Balance saldo pendiente del pedido.
func (o Order) Balance() int64 {
	return o.TotalAmount - o.PaidAmount
}

// IsPaid indica si el pedido está marcado como pagado.
func (o Order) IsPaid() bool {
	return o.PaymentStatus == OrderPaymentPaid
}

// ValidOrderStatus verifica que s sea un estado de pedido conocido.
func ValidOrderStatus(s string) bool {
	for _, v := range OrderStatuses {
		if v == s {
			return true
		}
	}
	return false
}

// ValidOrderPaymentStatus verifica que s sea un estado de pago conocido.
func ValidOrderPaymentStatus(s string) bool {
	for _, v := range OrderPaymentStatuses {
		if v == s {
			return true
		}
	}
	return false
}
