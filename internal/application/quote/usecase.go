// Package quote gestiona cotizaciones y su tasa de éxito.
package quote

import (
	"context"
	"fmt"
	"slices"
	"strconv"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/saeron-inventario/internal/application/dto"
	"github.com/jhoicas/saeron-inventario/internal/application/state"
	"github.com/jhoicas/saeron-inventario/internal/domain"
	"github.com/jhoicas/saeron-inventario/internal/domain/entity"
)

// QuoteUseCase CRUD de cotizaciones y estadísticas.
type QuoteUseCase struct {
	store state.Controller
	loc   *time.Location
	now   func() time.Time
}

// NewQuoteUseCase construye el caso de uso.
func NewQuoteUseCase(store state.Controller, loc *time.Location) *QuoteUseCase {
	if loc == nil {
		loc = time.Local
	}
	return &QuoteUseCase{store: store, loc: loc, now: time.Now}
}

// WithClock reemplaza el reloj (tests).
func (uc *QuoteUseCase) WithClock(now func() time.Time) *QuoteUseCase {
	uc.now = now
	return uc
}

// Create registra una cotización (número QT-<año>-NNN). El total se calcula de las líneas.
func (uc *QuoteUseCase) Create(ctx context.Context, in dto.QuoteRequest) (*entity.Quote, error) {
	q, err := buildQuote(in)
	if err != nil {
		return nil, err
	}
	now := uc.now()
	err = uc.store.Run(ctx, func(st *state.State) error {
		q.ID = entity.NewID()
		q.QuoteNumber = nextQuoteNumber(st.Inventory.Quotes, now.In(uc.loc).Year())
		q.CreatedAt = now
		st.Inventory.Quotes = append([]entity.Quote{q}, st.Inventory.Quotes...)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &q, nil
}

// Update reemplaza el contenido de la cotización conservando número y fecha de creación.
func (uc *QuoteUseCase) Update(ctx context.Context, id entity.ID, in dto.QuoteRequest) (*entity.Quote, error) {
	q, err := buildQuote(in)
	if err != nil {
		return nil, err
	}
	err = uc.store.Run(ctx, func(st *state.State) error {
		idx := slices.IndexFunc(st.Inventory.Quotes, func(x entity.Quote) bool { return x.ID == id })
		if idx < 0 {
			return domain.ErrNotFound
		}
		cur := st.Inventory.Quotes[idx]
		q.ID, q.QuoteNumber, q.CreatedAt = cur.ID, cur.QuoteNumber, cur.CreatedAt
		st.Inventory.Quotes[idx] = q
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &q, nil
}

// UpdateStatus cambia solo el estado.
func (uc *QuoteUseCase) UpdateStatus(ctx context.Context, id entity.ID, status string) (*entity.Quote, error) {
	if !entity.ValidQuoteStatus(status) {
		return nil, domain.ErrInvalidInput
	}
	var updated entity.Quote
	err := uc.store.Run(ctx, func(st *state.State) error {
		idx := slices.IndexFunc(st.Inventory.Quotes, func(x entity.Quote) bool { return x.ID == id })
		if idx < 0 {
			return domain.ErrNotFound
		}
		st.Inventory.Quotes[idx].Status = status
		updated = st.Inventory.Quotes[idx]
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &updated, nil
}

// Delete elimina la cotización.
func (uc *QuoteUseCase) Delete(ctx context.Context, id entity.ID) error {
	return uc.store.Run(ctx, func(st *state.State) error {
		idx := slices.IndexFunc(st.Inventory.Quotes, func(x entity.Quote) bool { return x.ID == id })
		if idx < 0 {
			return domain.ErrNotFound
		}
		st.Inventory.Quotes = slices.Delete(st.Inventory.Quotes, idx, idx+1)
		return nil
	})
}

// GetByID obtiene una cotización.
func (uc *QuoteUseCase) GetByID(id entity.ID) (*entity.Quote, error) {
	var out *entity.Quote
	uc.store.View(func(st *state.State) {
		for _, q := range st.Inventory.Quotes {
			if q.ID == id {
				cp := q
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

// List cotizaciones filtradas por estado y texto (nombre, empresa, teléfono).
func (uc *QuoteUseCase) List(f dto.QuoteFilter) []entity.Quote {
	search := strings.ToLower(strings.TrimSpace(f.Search))
	out := []entity.Quote{}
	uc.store.View(func(st *state.State) {
		for _, q := range st.Inventory.Quotes {
			if f.Status != "" && q.Status != f.Status {
				continue
			}
			if search != "" &&
				!strings.Contains(strings.ToLower(q.CustomerName), search) &&
				!strings.Contains(strings.ToLower(q.CustomerCompany), search) &&
				!strings.Contains(q.CustomerPhone, search) {
				continue
			}
			out = append(out, q)
		}
	})
	return out
}

// Stats totales, prospectos, pendientes y tasa de éxito (% de cotizaciones en success, un decimal).
func (uc *QuoteUseCase) Stats() dto.QuoteStatsDTO {
	out := dto.QuoteStatsDTO{SuccessRate: decimal.Zero}
	var success int64
	uc.store.View(func(st *state.State) {
		out.Count = len(st.Inventory.Quotes)
		for _, q := range st.Inventory.Quotes {
			out.Total += q.TotalAmount
			if q.Status == entity.QuoteStatusSuccess {
				out.SuccessTotal += q.TotalAmount
				success++
			}
			if q.Status == entity.QuoteStatusPending {
				out.PendingCount++
			}
			if q.IsProspect {
				out.ProspectCount++
			}
		}
	})
	if out.Count > 0 {
		out.SuccessRate = decimal.NewFromInt(success).
			Mul(decimal.NewFromInt(100)).
			Div(decimal.NewFromInt(int64(out.Count))).
			Round(1)
	}
	return out
}

func buildQuote(in dto.QuoteRequest) (entity.Quote, error) {
	name := strings.TrimSpace(in.CustomerName)
	if name == "" {
		return entity.Quote{}, domain.ErrInvalidInput
	}
	status := in.Status
	if status == "" {
		status = entity.QuoteStatusPending
	}
	if !entity.ValidQuoteStatus(status) {
		return entity.Quote{}, domain.ErrInvalidInput
	}
	if in.ValidUntil != "" {
		if _, err := time.Parse(time.DateOnly, in.ValidUntil); err != nil {
			return entity.Quote{}, fmt.Errorf("validUntil %q: %w", in.ValidUntil, domain.ErrInvalidInput)
		}
	}
	// Las líneas sin nombre se descartan; debe quedar al menos una.
	items := make([]entity.QuoteItem, 0, len(in.Items))
	var total int64
	for _, it := range in.Items {
		if strings.TrimSpace(it.ProductName) == "" {
			continue
		}
		if it.Quantity <= 0 || it.UnitPrice < 0 {
			return entity.Quote{}, domain.ErrInvalidInput
		}
		item := entity.QuoteItem{
			ProductID:   it.ProductID,
			ProductName: strings.TrimSpace(it.ProductName),
			Quantity:    it.Quantity,
			UnitPrice:   it.UnitPrice,
		}
		lineTotal, err := domain.MulAmount(item.Quantity, item.UnitPrice)
		if err != nil {
			return entity.Quote{}, err
		}
		if total, err = domain.AddAmount(total, lineTotal); err != nil {
			return entity.Quote{}, err
		}
		items = append(items, item)
	}
	if len(items) == 0 {
		return entity.Quote{}, domain.ErrInvalidInput
	}
	return entity.Quote{
		CustomerName:    name,
		CustomerCompany: strings.TrimSpace(in.CustomerCompany),
		CustomerPhone:   strings.TrimSpace(in.CustomerPhone),
		CustomerEmail:   strings.TrimSpace(in.CustomerEmail),
		Items:           items,
		TotalAmount:     total,
		ValidUntil:      in.ValidUntil,
		Status:          status,
		IsProspect:      in.IsProspect,
		Note:            strings.TrimSpace(in.Note),
		User:            strings.TrimSpace(in.User),
	}, nil
}

func nextQuoteNumber(quotes []entity.Quote, year int) string {
	prefix := fmt.Sprintf("QT-%d-", year)
	highest := 0
	for _, q := range quotes {
		if rest, ok := strings.CutPrefix(q.QuoteNumber, prefix); ok {
			if n, err := strconv.Atoi(rest); err == nil && n > highest {
				highest = n
			}
		}
	}
	return fmt.Sprintf("%s%03d", prefix, highest+1)
}
