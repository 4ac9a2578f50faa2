package billing

import (
	"context"
	"fmt"
	"slices"
	"strings"
	"time"

	"github.com/jhoicas/saeron-inventario/internal/application/dto"
	"github.com/jhoicas/saeron-inventario/internal/application/state"
	"github.com/jhoicas/saeron-inventario/internal/domain"
	"github.com/jhoicas/saeron-inventario/internal/domain/entity"
	"github.com/jhoicas/saeron-inventario/pkg/logger"
)

// OrderUseCase pedidos de clientes. Crear un pedido descuenta el stock de todas sus líneas
// (todo o nada) y acumula el total en el cliente.
type OrderUseCase struct {
	store state.Controller
	loc   *time.Location
	log   *logger.Logger
	now   func() time.Time
}

// NewOrderUseCase construye el caso de uso. loc define "hoy" y "este mes" en las estadísticas.
func NewOrderUseCase(store state.Controller, loc *time.Location, log *logger.Logger) *OrderUseCase {
	if loc == nil {
		loc = time.Local
	}
	if log == nil {
		log = logger.Nop()
	}
	return &OrderUseCase{store: store, loc: loc, log: log.Component("orders"), now: time.Now}
}

// WithClock reemplaza el reloj (tests).
func (uc *OrderUseCase) WithClock(now func() time.Time) *OrderUseCase {
	uc.now = now
	return uc
}

// Create registra el pedido con número ORD-<año>-NNN y estado pending.
// Cada línea genera un movimiento de salida con nota "주문 <número>".
func (uc *OrderUseCase) Create(ctx context.Context, in dto.CreateOrderRequest) (*entity.Order, error) {
	if in.CustomerID == "" || len(in.Items) == 0 || in.PaidAmount < 0 {
		return nil, domain.ErrInvalidInput
	}
	for _, it := range in.Items {
		if it.ProductID == "" || it.Quantity <= 0 || (it.Price != nil && *it.Price < 0) {
			return nil, domain.ErrInvalidInput
		}
	}
	if in.PaymentStatus != "" && !entity.ValidOrderPaymentStatus(in.PaymentStatus) {
		return nil, domain.ErrInvalidInput
	}

	now := uc.now()
	user := strings.TrimSpace(in.User)
	var order entity.Order
	err := uc.store.Run(ctx, func(st *state.State) error {
		customer := st.Sales.Customer(in.CustomerID)
		if customer == nil {
			return fmt.Errorf("cliente %s: %w", in.CustomerID, domain.ErrNotFound)
		}

		// Verificar stock de todas las líneas antes de descontar (mismo producto en varias líneas suma).
		needed := map[entity.ID]int64{}
		for _, it := range in.Items {
			p := st.Inventory.Product(it.ProductID)
			if p == nil {
				return fmt.Errorf("producto %s: %w", it.ProductID, domain.ErrNotFound)
			}
			needed[it.ProductID] += it.Quantity
			if p.Quantity < needed[it.ProductID] {
				return fmt.Errorf("producto %s: %w", p.Name, domain.ErrInsufficientStock)
			}
		}

		numbers := make([]string, 0, len(st.Sales.Orders))
		for _, o := range st.Sales.Orders {
			numbers = append(numbers, o.OrderNumber)
		}
		number := nextCode(fmt.Sprintf("ORD-%d-", now.In(uc.loc).Year()), numbers)

		items := make([]entity.OrderItem, 0, len(in.Items))
		var total int64
		for _, it := range in.Items {
			p := st.Inventory.Product(it.ProductID)
			price := p.Price
			if it.Price != nil {
				price = *it.Price
			}
			lineTotal, err := domain.MulAmount(it.Quantity, price)
			if err != nil {
				return err
			}
			if total, err = domain.AddAmount(total, lineTotal); err != nil {
				return err
			}
			items = append(items, entity.OrderItem{
				ProductID:   p.ID,
				ProductName: p.Name,
				Quantity:    it.Quantity,
				Price:       price,
				Total:       lineTotal,
			})

			p.Quantity -= it.Quantity
			p.LastUpdated = now
			st.Inventory.PrependTransaction(entity.Transaction{
				ID:        entity.NewID(),
				ProductID: p.ID,
				Type:      entity.TransactionTypeOut,
				Quantity:  it.Quantity,
				Date:      now,
				Note:      "주문 " + number,
				User:      user,
			})
		}

		paid, status, err := resolvePayment(in.PaymentStatus, in.PaidAmount, total)
		if err != nil {
			return err
		}
		order = entity.Order{
			ID:              entity.NewID(),
			OrderNumber:     number,
			CustomerID:      customer.ID,
			CustomerName:    customer.Name,
			OrderDate:       now,
			DeliveryDate:    in.DeliveryDate,
			Status:          entity.OrderStatusPending,
			Items:           items,
			TotalAmount:     total,
			PaidAmount:      paid,
			PaymentStatus:   status,
			PaymentMethod:   strings.TrimSpace(in.PaymentMethod),
			ShippingAddress: strings.TrimSpace(in.ShippingAddress),
			Note:            strings.TrimSpace(in.Note),
			User:            user,
		}
		if order.ShippingAddress == "" {
			order.ShippingAddress = customer.Address
		}
		customer.TotalPurchase += total
		st.Sales.Orders = append([]entity.Order{order}, st.Sales.Orders...)
		return nil
	})
	if err != nil {
		return nil, err
	}
	uc.log.Info().
		Str("order_number", order.OrderNumber).
		Str("customer_id", order.CustomerID.String()).
		Int("items", len(order.Items)).
		Int64("total", order.TotalAmount).
		Msg("pedido registrado")
	return &order, nil
}

// resolvePayment deriva monto y estado de pago. Sin estado explícito se infiere del monto.
func resolvePayment(status string, paid, total int64) (int64, string, error) {
	if paid < 0 || paid > total {
		return 0, "", domain.ErrInvalidInput
	}
	switch status {
	case "":
		switch {
		case paid == 0 && total > 0:
			return 0, entity.OrderPaymentPending, nil
		case paid == total:
			return paid, entity.OrderPaymentPaid, nil
		default:
			return paid, entity.OrderPaymentPartial, nil
		}
	case entity.OrderPaymentPaid:
		return total, status, nil
	case entity.OrderPaymentPending, entity.OrderPaymentRefund:
		return 0, status, nil
	case entity.OrderPaymentPartial:
		if paid <= 0 || paid >= total {
			return 0, "", domain.ErrInvalidInput
		}
		return paid, status, nil
	}
	return 0, "", domain.ErrInvalidInput
}

// Update modifica datos de entrega y notas; líneas e importes no cambian.
func (uc *OrderUseCase) Update(ctx context.Context, id entity.ID, in dto.UpdateOrderRequest) (*entity.Order, error) {
	return uc.mutate(ctx, id, func(_ *state.State, o *entity.Order) error {
		if in.DeliveryDate != nil {
			d := *in.DeliveryDate
			o.DeliveryDate = &d
		}
		setString(&o.PaymentMethod, in.PaymentMethod)
		setString(&o.ShippingAddress, in.ShippingAddress)
		setString(&o.Note, in.Note)
		return nil
	})
}

// UpdateStatus cambia el estado del pedido (solo estados conocidos).
func (uc *OrderUseCase) UpdateStatus(ctx context.Context, id entity.ID, status string) (*entity.Order, error) {
	if !entity.ValidOrderStatus(status) {
		return nil, domain.ErrInvalidInput
	}
	return uc.mutate(ctx, id, func(_ *state.State, o *entity.Order) error {
		o.Status = status
		return nil
	})
}

// UpdatePayment cambia el estado de pago. paid fija lo cobrado en el total; pending y refund en 0;
// partial exige un monto entre 0 y el total (exclusivos).
func (uc *OrderUseCase) UpdatePayment(ctx context.Context, id entity.ID, in dto.UpdatePaymentRequest) (*entity.Order, error) {
	if !entity.ValidOrderPaymentStatus(in.PaymentStatus) {
		return nil, domain.ErrInvalidInput
	}
	return uc.mutate(ctx, id, func(_ *state.State, o *entity.Order) error {
		var paid int64
		if in.PaidAmount != nil {
			paid = *in.PaidAmount
		}
		amount, status, err := resolvePayment(in.PaymentStatus, paid, o.TotalAmount)
		if err != nil {
			return err
		}
		o.PaidAmount = amount
		o.PaymentStatus = status
		return nil
	})
}

func (uc *OrderUseCase) mutate(ctx context.Context, id entity.ID, fn func(st *state.State, o *entity.Order) error) (*entity.Order, error) {
	var updated entity.Order
	err := uc.store.Run(ctx, func(st *state.State) error {
		o := st.Sales.Order(id)
		if o == nil {
			return domain.ErrNotFound
		}
		if err := fn(st, o); err != nil {
			return err
		}
		updated = *o
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &updated, nil
}

// Delete elimina el pedido. Si estaba pagado se descuenta su total de las compras del cliente.
// El stock no se repone.
func (uc *OrderUseCase) Delete(ctx context.Context, id entity.ID) error {
	return uc.store.Run(ctx, func(st *state.State) error {
		idx := slices.IndexFunc(st.Sales.Orders, func(o entity.Order) bool { return o.ID == id })
		if idx < 0 {
			return domain.ErrNotFound
		}
		o := st.Sales.Orders[idx]
		if o.IsPaid() {
			if c := st.Sales.Customer(o.CustomerID); c != nil {
				c.TotalPurchase -= o.TotalAmount
			}
		}
		st.Sales.Orders = slices.Delete(st.Sales.Orders, idx, idx+1)
		return nil
	})
}

// GetByID obtiene un pedido.
func (uc *OrderUseCase) GetByID(id entity.ID) (*entity.Order, error) {
	var out *entity.Order
	uc.store.View(func(st *state.State) {
		if o := st.Sales.Order(id); o != nil {
			cp := *o
			out = &cp
		}
	})
	if out == nil {
		return nil, domain.ErrNotFound
	}
	return out, nil
}

// List pedidos filtrados, en el orden del registro (más reciente primero).
func (uc *OrderUseCase) List(f dto.OrderFilter) []entity.Order {
	search := strings.ToLower(strings.TrimSpace(f.Search))
	out := []entity.Order{}
	uc.store.View(func(st *state.State) {
		for _, o := range st.Sales.Orders {
			if f.Status != "" && o.Status != f.Status {
				continue
			}
			if f.CustomerID != "" && o.CustomerID != f.CustomerID {
				continue
			}
			if search != "" &&
				!strings.Contains(strings.ToLower(o.OrderNumber), search) &&
				!strings.Contains(strings.ToLower(o.CustomerName), search) {
				continue
			}
			out = append(out, o)
		}
	})
	return out
}

// ByCustomer pedidos de un cliente.
func (uc *OrderUseCase) ByCustomer(customerID entity.ID) []entity.Order {
	return uc.List(dto.OrderFilter{CustomerID: customerID})
}

// Recent últimos pedidos por fecha de pedido.
func (uc *OrderUseCase) Recent(limit int) []entity.Order {
	if limit <= 0 {
		limit = 10
	}
	out := uc.List(dto.OrderFilter{})
	slices.SortStableFunc(out, func(a, b entity.Order) int { return b.OrderDate.Compare(a.OrderDate) })
	if len(out) > limit {
		out = out[:limit]
	}
	return out
}

// TotalRevenue suma de pedidos pagados.
func (uc *OrderUseCase) TotalRevenue() int64 {
	var total int64
	uc.store.View(func(st *state.State) {
		for _, o := range st.Sales.Orders {
			if o.IsPaid() {
				total += o.TotalAmount
			}
		}
	})
	return total
}

// Stats ingresos de pedidos pagados de hoy, últimos 7 días y mes en curso, y conteo por estado.
func (uc *OrderUseCase) Stats() dto.SalesStatsDTO {
	now := uc.now().In(uc.loc)
	todayStart := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, uc.loc)
	weekStart := now.Add(-7 * 24 * time.Hour)
	monthStart := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, uc.loc)

	var out dto.SalesStatsDTO
	uc.store.View(func(st *state.State) {
		out.TotalOrders = len(st.Sales.Orders)
		for _, o := range st.Sales.Orders {
			switch o.Status {
			case entity.OrderStatusPending:
				out.PendingOrders++
			case entity.OrderStatusProcessing:
				out.ProcessingOrders++
			case entity.OrderStatusShipped:
				out.ShippedOrders++
			case entity.OrderStatusDelivered:
				out.DeliveredOrders++
			case entity.OrderStatusCancelled:
				out.CancelledOrders++
			}
			if !o.IsPaid() {
				continue
			}
			out.TotalRevenue += o.TotalAmount
			if !o.OrderDate.Before(todayStart) {
				out.TodaySales += o.TotalAmount
			}
			if !o.OrderDate.Before(weekStart) {
				out.WeeklySales += o.TotalAmount
			}
			if !o.OrderDate.Before(monthStart) {
				out.MonthlySales += o.TotalAmount
			}
		}
	})
	return out
}
