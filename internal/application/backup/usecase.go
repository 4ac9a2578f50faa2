// Package backup exporta, importa y reinicia el namespace de inventario.
package backup

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"slices"
	"time"

	"github.com/jhoicas/saeron-inventario/internal/application/dto"
	"github.com/jhoicas/saeron-inventario/internal/application/state"
	"github.com/jhoicas/saeron-inventario/internal/domain"
	"github.com/jhoicas/saeron-inventario/pkg/logger"
)

// BackupUseCase respaldo del inventario en JSON.
type BackupUseCase struct {
	store state.Controller
	loc   *time.Location
	log   *logger.Logger
	now   func() time.Time
}

// NewBackupUseCase construye el caso de uso. loc se usa para la fecha del nombre de archivo.
func NewBackupUseCase(store state.Controller, loc *time.Location, log *logger.Logger) *BackupUseCase {
	if loc == nil {
		loc = time.Local
	}
	if log == nil {
		log = logger.Nop()
	}
	return &BackupUseCase{store: store, loc: loc, log: log.Component("backup"), now: time.Now}
}

// WithClock reemplaza el reloj (tests).
func (uc *BackupUseCase) WithClock(now func() time.Time) *BackupUseCase {
	uc.now = now
	return uc
}

// Export arma el documento de respaldo y su nombre de archivo sugerido.
func (uc *BackupUseCase) Export() (dto.BackupDocument, string) {
	now := uc.now()
	var doc dto.BackupDocument
	uc.store.View(func(st *state.State) {
		inv := st.Inventory
		doc = dto.BackupDocument{
			Products:        slices.Clone(inv.Products),
			Transactions:    slices.Clone(inv.Transactions),
			Categories:      slices.Clone(inv.Categories),
			Sales:           slices.Clone(inv.Sales),
			MonthlyClosings: slices.Clone(inv.MonthlyClosings),
			Quotes:          slices.Clone(inv.Quotes),
			ExportDate:      now,
		}
	})
	return doc, Filename(now.In(uc.loc))
}

// Filename nombre del archivo de respaldo para la fecha dada.
func Filename(t time.Time) string {
	return fmt.Sprintf("saeron_inventory_backup_%s.json", t.Format(time.DateOnly))
}

// Import reemplaza productos y movimientos (y, si vienen, ventas, cierres, cotizaciones y
// categorías) con el contenido del archivo. Sin las claves products y transactions, o con JSON
// ilegible, falla con ErrInvalidImportFormat y no cambia nada.
func (uc *BackupUseCase) Import(ctx context.Context, data []byte) (*dto.ImportResultDTO, error) {
	var raw dto.RawBackup
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrInvalidImportFormat, err)
	}
	if !present(raw, "products") || !present(raw, "transactions") {
		return nil, domain.ErrInvalidImportFormat
	}
	var doc dto.BackupDocument
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrInvalidImportFormat, err)
	}

	for _, s := range doc.Sales {
		if !s.Valid() {
			return nil, fmt.Errorf("%w: venta %s con importes inválidos", domain.ErrInvalidImportFormat, s.ID)
		}
	}

	res := &dto.ImportResultDTO{Products: len(doc.Products), Transactions: len(doc.Transactions)}
	err := uc.store.Run(ctx, func(st *state.State) error {
		inv := &st.Inventory
		inv.Products = doc.Products
		inv.Transactions = doc.Transactions
		if present(raw, "categories") && len(doc.Categories) > 0 {
			inv.Categories = doc.Categories
		}
		for _, p := range inv.Products {
			inv.EnsureCategory(p.Category)
		}
		if present(raw, "sales") {
			inv.Sales = nonNil(doc.Sales)
			res.Sales = len(inv.Sales)
		}
		if present(raw, "monthlyClosings") {
			inv.MonthlyClosings = nonNil(doc.MonthlyClosings)
			res.Closings = len(inv.MonthlyClosings)
		}
		if present(raw, "quotes") {
			inv.Quotes = nonNil(doc.Quotes)
			res.Quotes = len(inv.Quotes)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	uc.log.Info().
		Int("products", res.Products).
		Int("transactions", res.Transactions).
		Int("sales", res.Sales).
		Msg("respaldo importado")
	return res, nil
}

// Reset vuelve el namespace de inventario a sus valores por defecto. Clientes y pedidos no cambian.
func (uc *BackupUseCase) Reset(ctx context.Context) error {
	err := uc.store.Run(ctx, func(st *state.State) error {
		st.Inventory = state.NewInventoryState()
		return nil
	})
	if err != nil {
		return err
	}
	uc.log.Warn().Msg("inventario reiniciado")
	return nil
}

// present la clave existe y es un arreglo JSON (null o un escalar no cuentan).
func present(raw dto.RawBackup, key string) bool {
	v, ok := raw[key]
	if !ok {
		return false
	}
	v = bytes.TrimSpace(v)
	return len(v) > 0 && v[0] == '['
}

func nonNil[T any](s []T) []T {
	if s == nil {
		return []T{}
	}
	return s
}
