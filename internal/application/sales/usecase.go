// Package sales contiene el libro de ventas: registro, cobros y consultas.
package sales

import (
	"context"
	"fmt"
	"slices"
	"strings"
	"time"

	"github.com/jhoicas/saeron-inventario/internal/application/dto"
	"github.com/jhoicas/saeron-inventario/internal/application/ports"
	"github.com/jhoicas/saeron-inventario/internal/application/state"
	"github.com/jhoicas/saeron-inventario/internal/domain"
	"github.com/jhoicas/saeron-inventario/internal/domain/closing"
	"github.com/jhoicas/saeron-inventario/internal/domain/entity"
	"github.com/jhoicas/saeron-inventario/pkg/logger"
)

// SaleUseCase registra ventas y consulta el libro de ventas.
type SaleUseCase struct {
	store   state.Controller
	policy  PricingPolicy
	loc     *time.Location
	metrics ports.Metrics
	log     *logger.Logger
	now     func() time.Time
}

// NewSaleUseCase construye el caso de uso. loc define los límites de "hoy" y de cada mes.
func NewSaleUseCase(store state.Controller, policy PricingPolicy, loc *time.Location, log *logger.Logger) *SaleUseCase {
	if loc == nil {
		loc = time.Local
	}
	if log == nil {
		log = logger.Nop()
	}
	if policy == "" {
		policy = PricingAllowDiscount
	}
	return &SaleUseCase{
		store:   store,
		policy:  policy,
		loc:     loc,
		metrics: ports.NopMetrics{},
		log:     log.Component("sales"),
		now:     time.Now,
	}
}

// WithClock reemplaza el reloj (tests).
func (uc *SaleUseCase) WithClock(now func() time.Time) *SaleUseCase {
	uc.now = now
	return uc
}

// WithMetrics registra el adaptador de métricas.
func (uc *SaleUseCase) WithMetrics(m ports.Metrics) *SaleUseCase {
	uc.metrics = m
	return uc
}

// RecordSale registra una venta: descuenta stock, agrega la venta (con foto de nombre, categoría
// y precio) y agrega el movimiento de salida correspondiente, todo en un solo commit.
func (uc *SaleUseCase) RecordSale(ctx context.Context, in dto.RecordSaleRequest) (*entity.Sale, error) {
	if in.ProductID == "" || in.Quantity <= 0 || in.UnitPrice < 0 || in.PaidAmount < 0 {
		return nil, domain.ErrInvalidInput
	}
	total, err := uc.policy.Total(in.Quantity, in.UnitPrice, in.TotalAmount)
	if err != nil {
		return nil, err
	}
	if in.PaidAmount > total {
		return nil, fmt.Errorf("cobrado %d supera el total %d: %w", in.PaidAmount, total, domain.ErrInvalidInput)
	}

	now := uc.now()
	date := now
	if in.Date != nil && !in.Date.IsZero() {
		date = *in.Date
	}
	customer := strings.TrimSpace(in.Customer)
	user := strings.TrimSpace(in.User)

	var sale entity.Sale
	err = uc.store.Run(ctx, func(st *state.State) error {
		p := st.Inventory.Product(in.ProductID)
		if p == nil {
			return domain.ErrNotFound
		}
		if p.Quantity < in.Quantity {
			return domain.ErrInsufficientStock
		}
		p.Quantity -= in.Quantity
		p.LastUpdated = now

		sale = entity.Sale{
			ID:          entity.NewID(),
			ProductID:   p.ID,
			ProductName: p.Name,
			Category:    p.Category,
			Quantity:    in.Quantity,
			UnitPrice:   in.UnitPrice,
			TotalPrice:  total,
			PaidAmount:  in.PaidAmount,
			Customer:    customer,
			Phone:       strings.TrimSpace(in.Phone),
			Address:     strings.TrimSpace(in.Address),
			Note:        strings.TrimSpace(in.Note),
			User:        user,
			Date:        date,
		}
		st.Inventory.Sales = append(st.Inventory.Sales, sale)
		st.Inventory.PrependTransaction(entity.Transaction{
			ID:        entity.NewID(),
			ProductID: p.ID,
			Type:      entity.TransactionTypeOut,
			Quantity:  in.Quantity,
			Date:      date,
			Note:      "판매: " + customer,
			User:      user,
		})
		return nil
	})
	if err != nil {
		return nil, err
	}

	uc.metrics.SaleRecorded(sale.TotalPrice)
	uc.log.Info().
		Str("sale_id", sale.ID.String()).
		Str("product_id", sale.ProductID.String()).
		Int64("quantity", sale.Quantity).
		Int64("total", sale.TotalPrice).
		Int64("paid", sale.PaidAmount).
		Msg("venta registrada")
	return &sale, nil
}

// DeleteSale elimina la venta del libro. El stock descontado no se repone.
func (uc *SaleUseCase) DeleteSale(ctx context.Context, id entity.ID) error {
	return uc.store.Run(ctx, func(st *state.State) error {
		idx := slices.IndexFunc(st.Inventory.Sales, func(s entity.Sale) bool { return s.ID == id })
		if idx < 0 {
			return domain.ErrNotFound
		}
		st.Inventory.Sales = slices.Delete(st.Inventory.Sales, idx, idx+1)
		return nil
	})
}

// CollectPayment suma amount a lo cobrado. Falla si el cobro supera el saldo pendiente.
func (uc *SaleUseCase) CollectPayment(ctx context.Context, id entity.ID, amount int64) (*entity.Sale, error) {
	if amount <= 0 {
		return nil, domain.ErrInvalidInput
	}
	var updated entity.Sale
	err := uc.store.Run(ctx, func(st *state.State) error {
		idx := slices.IndexFunc(st.Inventory.Sales, func(s entity.Sale) bool { return s.ID == id })
		if idx < 0 {
			return domain.ErrNotFound
		}
		s := &st.Inventory.Sales[idx]
		if amount > s.Unpaid() {
			return fmt.Errorf("cobro %d supera el saldo %d: %w", amount, s.Unpaid(), domain.ErrInvalidInput)
		}
		s.PaidAmount += amount
		updated = *s
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &updated, nil
}

// GetByID obtiene una venta.
func (uc *SaleUseCase) GetByID(id entity.ID) (*entity.Sale, error) {
	var out *entity.Sale
	uc.store.View(func(st *state.State) {
		for _, s := range st.Inventory.Sales {
			if s.ID == id {
				cp := s
				out = &cp
				return
			}
		}
	})
	if out == nil {
		return nil, domain.ErrNotFound
	}
	return out, nil
}

// List ventas filtradas, más reciente primero.
func (uc *SaleUseCase) List(f dto.SaleFilter) ([]entity.Sale, error) {
	if (f.Year == 0) != (f.Month == 0) {
		return nil, domain.ErrInvalidInput
	}
	if f.Year != 0 && !closing.ValidPeriod(f.Year, f.Month) {
		return nil, domain.ErrInvalidInput
	}
	search := strings.ToLower(strings.TrimSpace(f.Search))
	var out []entity.Sale
	uc.store.View(func(st *state.State) {
		all := st.Inventory.Sales
		if f.Year != 0 {
			all = closing.SelectSales(all, f.Year, f.Month, uc.loc)
		}
		for _, s := range all {
			if search != "" && !matchesSale(s, search) {
				continue
			}
			out = append(out, s)
		}
	})
	sortNewestFirst(out)
	if out == nil {
		out = []entity.Sale{}
	}
	return out, nil
}

// Totals totales de todas las ventas del libro.
func (uc *SaleUseCase) Totals() dto.SalesTotalsDTO {
	var out dto.SalesTotalsDTO
	uc.store.View(func(st *state.State) {
		out = Summarize(st.Inventory.Sales)
	})
	return out
}

// Today ventas del día en curso (zona configurada) con sus totales.
func (uc *SaleUseCase) Today() ([]entity.Sale, dto.SalesTotalsDTO) {
	start := startOfDay(uc.now(), uc.loc)
	end := start.AddDate(0, 0, 1)
	out := []entity.Sale{}
	uc.store.View(func(st *state.State) {
		for _, s := range st.Inventory.Sales {
			if !s.Date.Before(start) && s.Date.Before(end) {
				out = append(out, s)
			}
		}
	})
	sortNewestFirst(out)
	return out, Summarize(out)
}

// Receivables ventas con saldo pendiente, más antigua primero.
func (uc *SaleUseCase) Receivables() []entity.Sale {
	out := []entity.Sale{}
	uc.store.View(func(st *state.State) {
		for _, s := range st.Inventory.Sales {
			if s.Unpaid() > 0 {
				out = append(out, s)
			}
		}
	})
	slices.SortStableFunc(out, func(a, b entity.Sale) int { return a.Date.Compare(b.Date) })
	return out
}

// Summarize totales de un conjunto de ventas. El saldo se deriva con Sale.Unpaid.
func Summarize(sales []entity.Sale) dto.SalesTotalsDTO {
	out := dto.SalesTotalsDTO{Count: len(sales)}
	for _, s := range sales {
		out.TotalSales += s.TotalPrice
		out.TotalPaid += s.PaidAmount
		out.TotalUnpaid += s.Unpaid()
	}
	return out
}

func matchesSale(s entity.Sale, search string) bool {
	return strings.Contains(strings.ToLower(s.ProductName), search) ||
		strings.Contains(strings.ToLower(s.Customer), search) ||
		strings.Contains(s.Phone, search)
}

func sortNewestFirst(sales []entity.Sale) {
	slices.SortStableFunc(sales, func(a, b entity.Sale) int { return b.Date.Compare(a.Date) })
}

func startOfDay(t time.Time, loc *time.Location) time.Time {
	t = t.In(loc)
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, loc)
}
