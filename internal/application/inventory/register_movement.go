package inventory

import (
	"context"
	"strings"
	"time"

	"github.com/jhoicas/saeron-inventario/internal/application/dto"
	"github.com/jhoicas/saeron-inventario/internal/application/state"
	"github.com/jhoicas/saeron-inventario/internal/domain"
	"github.com/jhoicas/saeron-inventario/internal/domain/entity"
)

// StockUseCase registra entradas y salidas de stock. Cada movimiento ajusta la cantidad del
// producto y agrega un registro al historial en el mismo commit.
type StockUseCase struct {
	store state.Controller
	now   func() time.Time
}

// NewStockUseCase construye el caso de uso.
func NewStockUseCase(store state.Controller) *StockUseCase {
	return &StockUseCase{store: store, now: time.Now}
}

// WithClock reemplaza el reloj (tests).
func (uc *StockUseCase) WithClock(now func() time.Time) *StockUseCase {
	uc.now = now
	return uc
}

// AddStock entrada de mercadería.
func (uc *StockUseCase) AddStock(ctx context.Context, in dto.StockMovementRequest) (*entity.Transaction, error) {
	return uc.RegisterMovement(ctx, entity.TransactionTypeIn, in)
}

// RemoveStock salida de mercadería. Falla con ErrInsufficientStock si no alcanza.
func (uc *StockUseCase) RemoveStock(ctx context.Context, in dto.StockMovementRequest) (*entity.Transaction, error) {
	return uc.RegisterMovement(ctx, entity.TransactionTypeOut, in)
}

// RegisterMovement valida, ajusta la cantidad y antepone el movimiento al historial.
func (uc *StockUseCase) RegisterMovement(ctx context.Context, typ string, in dto.StockMovementRequest) (*entity.Transaction, error) {
	if typ != entity.TransactionTypeIn && typ != entity.TransactionTypeOut {
		return nil, domain.ErrInvalidInput
	}
	if in.ProductID == "" || in.Quantity <= 0 {
		return nil, domain.ErrInvalidInput
	}
	now := uc.now()
	tx := entity.Transaction{
		ID:        entity.NewID(),
		ProductID: in.ProductID,
		Type:      typ,
		Quantity:  in.Quantity,
		Date:      now,
		Note:      strings.TrimSpace(in.Note),
		User:      strings.TrimSpace(in.User),
	}
	err := uc.store.Run(ctx, func(st *state.State) error {
		p := st.Inventory.Product(in.ProductID)
		if p == nil {
			return domain.ErrNotFound
		}
		if typ == entity.TransactionTypeOut {
			if p.Quantity < in.Quantity {
				return domain.ErrInsufficientStock
			}
			p.Quantity -= in.Quantity
		} else {
			p.Quantity += in.Quantity
		}
		p.LastUpdated = now
		st.Inventory.PrependTransaction(tx)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &tx, nil
}

// Transactions historial (más reciente primero) con el nombre de producto resuelto.
// Limit 0 devuelve todo.
func (uc *StockUseCase) Transactions(f dto.TransactionFilter) []dto.TransactionView {
	out := []dto.TransactionView{}
	uc.store.View(func(st *state.State) {
		for _, tx := range st.Inventory.Transactions {
			if f.ProductID != "" && tx.ProductID != f.ProductID {
				continue
			}
			if f.Type != "" && tx.Type != f.Type {
				continue
			}
			out = append(out, dto.TransactionView{Transaction: tx, ProductName: st.Inventory.ProductName(tx.ProductID)})
			if f.Limit > 0 && len(out) == f.Limit {
				return
			}
		}
	})
	return out
}

// StockFlow totales de entrada y salida por producto en [from, to).
// Productos sin movimiento en el rango no aparecen.
func (uc *StockUseCase) StockFlow(from, to time.Time) (*dto.StockFlowReport, error) {
	if !from.Before(to) {
		return nil, domain.ErrInvalidInput
	}
	report := &dto.StockFlowReport{From: from, To: to, Products: []dto.StockFlowDTO{}}
	uc.store.View(func(st *state.State) {
		index := map[entity.ID]int{}
		// El historial está en orden inverso; se recorre al revés para listar por primer movimiento.
		for i := len(st.Inventory.Transactions) - 1; i >= 0; i-- {
			tx := st.Inventory.Transactions[i]
			if tx.Date.Before(from) || !tx.Date.Before(to) {
				continue
			}
			pos, ok := index[tx.ProductID]
			if !ok {
				pos = len(report.Products)
				index[tx.ProductID] = pos
				report.Products = append(report.Products, dto.StockFlowDTO{
					ProductID:   tx.ProductID,
					ProductName: st.Inventory.ProductName(tx.ProductID),
				})
			}
			row := &report.Products[pos]
			if tx.Type == entity.TransactionTypeIn {
				row.In += tx.Quantity
				report.TotalIn += tx.Quantity
			} else {
				row.Out += tx.Quantity
				report.TotalOut += tx.Quantity
			}
			row.Net = row.In - row.Out
		}
	})
	return report, nil
}
