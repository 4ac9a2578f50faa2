// Package closing orquesta el cierre mensual: valida el período, aplica la guarda de duplicados
// y persiste el registro calculado por el dominio.
package closing

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"time"

	"github.com/jhoicas/saeron-inventario/internal/application/dto"
	"github.com/jhoicas/saeron-inventario/internal/application/ports"
	"github.com/jhoicas/saeron-inventario/internal/application/state"
	"github.com/jhoicas/saeron-inventario/internal/domain"
	domainclosing "github.com/jhoicas/saeron-inventario/internal/domain/closing"
	"github.com/jhoicas/saeron-inventario/internal/domain/entity"
	"github.com/jhoicas/saeron-inventario/pkg/logger"
)

// ClosingUseCase crea, elimina y consulta cierres mensuales.
type ClosingUseCase struct {
	store   state.Controller
	loc     *time.Location
	locker  ports.PeriodLocker
	metrics ports.Metrics
	log     *logger.Logger
	now     func() time.Time
}

// NewClosingUseCase construye el caso de uso. loc define los límites de cada mes.
func NewClosingUseCase(store state.Controller, loc *time.Location, log *logger.Logger) *ClosingUseCase {
	if loc == nil {
		loc = time.Local
	}
	if log == nil {
		log = logger.Nop()
	}
	return &ClosingUseCase{
		store:   store,
		loc:     loc,
		metrics: ports.NopMetrics{},
		log:     log.Component("closing"),
		now:     time.Now,
	}
}

// WithClock reemplaza el reloj (tests).
func (uc *ClosingUseCase) WithClock(now func() time.Time) *ClosingUseCase {
	uc.now = now
	return uc
}

// WithMetrics registra el adaptador de métricas.
func (uc *ClosingUseCase) WithMetrics(m ports.Metrics) *ClosingUseCase {
	uc.metrics = m
	return uc
}

// WithLocker agrega un bloqueo distribuido por período (varios procesos sobre el mismo almacén).
func (uc *ClosingUseCase) WithLocker(l ports.PeriodLocker) *ClosingUseCase {
	uc.locker = l
	return uc
}

// CreateClosing cierra el mes (year, month). La verificación de duplicado y el agregado del
// registro ocurren en el mismo commit; un segundo cierre del período falla con ErrPeriodAlreadyClosed.
func (uc *ClosingUseCase) CreateClosing(ctx context.Context, year, month int) (*entity.MonthlyClosing, error) {
	if !domainclosing.ValidPeriod(year, month) {
		uc.metrics.ClosingRejected("invalid")
		return nil, domain.ErrInvalidInput
	}

	if uc.locker != nil {
		unlock, err := uc.locker.Lock(ctx, periodKey(year, month))
		if err != nil {
			if errors.Is(err, domain.ErrPeriodLocked) {
				uc.metrics.ClosingRejected("locked")
			}
			return nil, err
		}
		defer func() {
			if err := unlock(context.WithoutCancel(ctx)); err != nil {
				uc.log.Warn().Err(err).Int("year", year).Int("month", month).Msg("liberar bloqueo de período")
			}
		}()
	}

	var record entity.MonthlyClosing
	err := uc.store.Run(ctx, func(st *state.State) error {
		for _, c := range st.Inventory.MonthlyClosings {
			if c.SamePeriod(year, month) {
				return domain.ErrPeriodAlreadyClosed
			}
		}
		selected := domainclosing.SelectSales(st.Inventory.Sales, year, month, uc.loc)
		record = domainclosing.Build(entity.NewID(), year, month, uc.now(), selected, st.Inventory.CategoryOf)
		st.Inventory.MonthlyClosings = append(st.Inventory.MonthlyClosings, record)
		return nil
	})
	if err != nil {
		if errors.Is(err, domain.ErrPeriodAlreadyClosed) {
			uc.metrics.ClosingRejected("duplicate")
		}
		return nil, err
	}

	uc.metrics.ClosingCreated()
	uc.log.Info().
		Str("closing_id", record.ID.String()).
		Int("year", year).
		Int("month", month).
		Int("sales_count", record.SalesCount).
		Int64("total_sales", record.TotalSales).
		Int64("total_unpaid", record.TotalUnpaid).
		Msg("cierre mensual creado")
	return &record, nil
}

// DeleteClosing elimina el cierre y reabre el período. El libro de ventas no cambia.
func (uc *ClosingUseCase) DeleteClosing(ctx context.Context, id entity.ID) error {
	var removed entity.MonthlyClosing
	err := uc.store.Run(ctx, func(st *state.State) error {
		idx := slices.IndexFunc(st.Inventory.MonthlyClosings, func(c entity.MonthlyClosing) bool { return c.ID == id })
		if idx < 0 {
			return domain.ErrNotFound
		}
		removed = st.Inventory.MonthlyClosings[idx]
		st.Inventory.MonthlyClosings = slices.Delete(st.Inventory.MonthlyClosings, idx, idx+1)
		return nil
	})
	if err != nil {
		return err
	}
	uc.log.Info().Str("closing_id", id.String()).Int("year", removed.Year).Int("month", removed.Month).Msg("cierre eliminado")
	return nil
}

// GetAllClosings cierres ordenados por (año, mes) descendente.
func (uc *ClosingUseCase) GetAllClosings() []entity.MonthlyClosing {
	var out []entity.MonthlyClosing
	uc.store.View(func(st *state.State) {
		out = slices.Clone(st.Inventory.MonthlyClosings)
	})
	slices.SortStableFunc(out, func(a, b entity.MonthlyClosing) int {
		if a.Year != b.Year {
			return b.Year - a.Year
		}
		return b.Month - a.Month
	})
	if out == nil {
		out = []entity.MonthlyClosing{}
	}
	return out
}

// GetClosing obtiene un cierre por ID.
func (uc *ClosingUseCase) GetClosing(id entity.ID) (*entity.MonthlyClosing, error) {
	var out *entity.MonthlyClosing
	uc.store.View(func(st *state.State) {
		for _, c := range st.Inventory.MonthlyClosings {
			if c.ID == id {
				cp := c
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

// IsMonthClosed indica si el período ya tiene cierre.
func (uc *ClosingUseCase) IsMonthClosed(year, month int) bool {
	closed := false
	uc.store.View(func(st *state.State) {
		closed = slices.ContainsFunc(st.Inventory.MonthlyClosings, func(c entity.MonthlyClosing) bool {
			return c.SamePeriod(year, month)
		})
	})
	return closed
}

// PreviewMonth estadísticas en vivo del mes sin crear nada.
func (uc *ClosingUseCase) PreviewMonth(year, month int) (*dto.MonthPreviewDTO, error) {
	if !domainclosing.ValidPeriod(year, month) {
		return nil, domain.ErrInvalidInput
	}
	out := &dto.MonthPreviewDTO{Year: year, Month: month}
	uc.store.View(func(st *state.State) {
		sum := domainclosing.Aggregate(domainclosing.SelectSales(st.Inventory.Sales, year, month, uc.loc), st.Inventory.CategoryOf)
		out.SalesCount = sum.SalesCount
		out.TotalSales = sum.TotalSales
		out.TotalPaid = sum.TotalPaid
		out.TotalUnpaid = sum.TotalUnpaid
		out.IsClosed = slices.ContainsFunc(st.Inventory.MonthlyClosings, func(c entity.MonthlyClosing) bool {
			return c.SamePeriod(year, month)
		})
	})
	return out, nil
}

func periodKey(year, month int) string {
	return fmt.Sprintf("closing:%04d-%02d", year, month)
}
