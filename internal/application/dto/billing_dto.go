package dto

import (
	"time"

	"github.com/jhoicas/saeron-inventario/internal/domain/entity"
)

// ── Clientes ──────────────────────────────────────────────────────────────────

// CreateCustomerRequest body para POST /api/customers.
type CreateCustomerRequest struct {
	Name         string `json:"name" validate:"required,max=200"`
	Contact      string `json:"contact" validate:"max=50"`
	Email        string `json:"email" validate:"omitempty,email"`
	Address      string `json:"address" validate:"max=300"`
	Manager      string `json:"manager" validate:"max=100"`
	ManagerPhone string `json:"managerPhone" validate:"max=50"`
	CustomerType string `json:"customerType" validate:"omitempty,oneof=B2B B2C"`
	Grade        string `json:"grade" validate:"max=20"`
}

// UpdateCustomerRequest actualización parcial de un cliente.
type UpdateCustomerRequest struct {
	Name         *string `json:"name" validate:"omitempty,min=1,max=200"`
	Contact      *string `json:"contact" validate:"omitempty,max=50"`
	Email        *string `json:"email" validate:"omitempty,email"`
	Address      *string `json:"address" validate:"omitempty,max=300"`
	Manager      *string `json:"manager" validate:"omitempty,max=100"`
	ManagerPhone *string `json:"managerPhone" validate:"omitempty,max=50"`
	CustomerType *string `json:"customerType" validate:"omitempty,oneof=B2B B2C"`
	Grade        *string `json:"grade" validate:"omitempty,max=20"`
}

// CustomerFilter filtros de GET /api/customers.
type CustomerFilter struct {
	Search string `query:"search"` // nombre, código o contacto
	Type   string `query:"type" validate:"omitempty,oneof=B2B B2C"`
}

// ── Pedidos ───────────────────────────────────────────────────────────────────

// OrderItemRequest línea de pedido. Si Price es nil se usa el precio actual del producto.
type OrderItemRequest struct {
	ProductID entity.ID `json:"productId" validate:"required"`
	Quantity  int64     `json:"quantity" validate:"gt=0"`
	Price     *int64    `json:"price" validate:"omitempty,min=0"`
}

// CreateOrderRequest body para POST /api/orders.
type CreateOrderRequest struct {
	CustomerID      entity.ID          `json:"customerId" validate:"required"`
	Items           []OrderItemRequest `json:"items" validate:"required,min=1,dive"`
	DeliveryDate    *time.Time         `json:"deliveryDate"`
	PaidAmount      int64              `json:"paidAmount" validate:"min=0"`
	PaymentStatus   string             `json:"paymentStatus" validate:"omitempty,oneof=pending paid partial refund"`
	PaymentMethod   string             `json:"paymentMethod" validate:"max=50"`
	ShippingAddress string             `json:"shippingAddress" validate:"max=300"`
	Note            string             `json:"note" validate:"max=500"`
	User            string             `json:"user" validate:"max=100"`
}

// UpdateOrderRequest actualización de datos de entrega; no toca líneas ni importes.
type UpdateOrderRequest struct {
	DeliveryDate    *time.Time `json:"deliveryDate"`
	PaymentMethod   *string    `json:"paymentMethod" validate:"omitempty,max=50"`
	ShippingAddress *string    `json:"shippingAddress" validate:"omitempty,max=300"`
	Note            *string    `json:"note" validate:"omitempty,max=500"`
}

// UpdateOrderStatusRequest body para PATCH /api/orders/:id/status.
type UpdateOrderStatusRequest struct {
	Status string `json:"status" validate:"required,oneof=pending processing shipped delivered cancelled"`
}

// UpdatePaymentRequest body para PATCH /api/orders/:id/payment.
// PaidAmount solo se usa con estado partial.
type UpdatePaymentRequest struct {
	PaymentStatus string `json:"paymentStatus" validate:"required,oneof=pending paid partial refund"`
	PaidAmount    *int64 `json:"paidAmount" validate:"omitempty,min=0"`
}

// OrderFilter filtros de GET /api/orders.
type OrderFilter struct {
	Status     string    `query:"status" validate:"omitempty,oneof=pending processing shipped delivered cancelled"`
	CustomerID entity.ID `query:"customerId"`
	Search     string    `query:"search"` // número de pedido o cliente
}

// SalesStatsDTO indicadores de pedidos (ingresos cuentan solo pedidos pagados).
type SalesStatsDTO struct {
	TodaySales       int64 `json:"todaySales"`
	WeeklySales      int64 `json:"weeklySales"`
	MonthlySales     int64 `json:"monthlySales"`
	TotalRevenue     int64 `json:"totalRevenue"`
	TotalOrders      int   `json:"totalOrders"`
	PendingOrders    int   `json:"pendingOrders"`
	ProcessingOrders int   `json:"processingOrders"`
	ShippedOrders    int   `json:"shippedOrders"`
	DeliveredOrders  int   `json:"deliveredOrders"`
	CancelledOrders  int   `json:"cancelledOrders"`
}
