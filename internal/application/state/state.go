// Package state contiene el estado explícito de la aplicación y su controlador (Store).
// Todo el estado vive en memoria en dos namespaces y se persiste completo tras cada mutación.
package state

import (
	"slices"

	"github.com/jhoicas/saeron-inventario/internal/domain/entity"
)

// InventoryState namespace de inventario: catálogo, movimientos, ventas, cierres y cotizaciones.
type InventoryState struct {
	Products        []entity.Product        `json:"products"`
	Transactions    []entity.Transaction    `json:"transactions"`
	Categories      []string                `json:"categories"`
	Sales           []entity.Sale           `json:"sales"`
	MonthlyClosings []entity.MonthlyClosing `json:"monthlyClosings"`
	Quotes          []entity.Quote          `json:"quotes"`
}

// SalesState namespace comercial: clientes y pedidos.
type SalesState struct {
	Customers []entity.Customer `json:"customers"`
	Orders    []entity.Order    `json:"orders"`
}

// State estado completo de la aplicación.
type State struct {
	Inventory InventoryState
	Sales     SalesState
}

// NewState estado inicial vacío con las categorías por defecto.
func NewState() *State {
	return &State{
		Inventory: NewInventoryState(),
		Sales:     SalesState{Customers: []entity.Customer{}, Orders: []entity.Order{}},
	}
}

// NewInventoryState namespace de inventario vacío.
func NewInventoryState() InventoryState {
	return InventoryState{
		Products:        []entity.Product{},
		Transactions:    []entity.Transaction{},
		Categories:      slices.Clone(entity.DefaultCategories),
		Sales:           []entity.Sale{},
		MonthlyClosings: []entity.MonthlyClosing{},
		Quotes:          []entity.Quote{},
	}
}

// Clone copia las colecciones de primer nivel. Los elementos se copian por valor; los slices
// anidados (Order.Items, Quote.Items, MonthlyClosing.SalesData) se comparten, por eso las
// mutaciones deben reemplazarlos y nunca modificarlos en sitio.
func (s *State) Clone() *State {
	return &State{
		Inventory: InventoryState{
			Products:        slices.Clone(s.Inventory.Products),
			Transactions:    slices.Clone(s.Inventory.Transactions),
			Categories:      slices.Clone(s.Inventory.Categories),
			Sales:           slices.Clone(s.Inventory.Sales),
			MonthlyClosings: slices.Clone(s.Inventory.MonthlyClosings),
			Quotes:          slices.Clone(s.Inventory.Quotes),
		},
		Sales: SalesState{
			Customers: slices.Clone(s.Sales.Customers),
			Orders:    slices.Clone(s.Sales.Orders),
		},
	}
}

// Product devuelve un puntero al producto dentro del estado (nil si no existe).
func (inv *InventoryState) Product(id entity.ID) *entity.Product {
	for i := range inv.Products {
		if inv.Products[i].ID == id {
			return &inv.Products[i]
		}
	}
	return nil
}

// ProductName nombre del producto o el marcador de producto eliminado.
func (inv *InventoryState) ProductName(id entity.ID) string {
	if p := inv.Product(id); p != nil {
		return p.Name
	}
	return entity.DeletedProductName
}

// CategoryOf categoría actual del producto; ok=false si el producto ya no existe.
func (inv *InventoryState) CategoryOf(id entity.ID) (string, bool) {
	if p := inv.Product(id); p != nil {
		return p.Category, true
	}
	return "", false
}

// EnsureCategory agrega la categoría si aún no está registrada.
func (inv *InventoryState) EnsureCategory(category string) {
	if category == "" || slices.Contains(inv.Categories, category) {
		return
	}
	inv.Categories = append(inv.Categories, category)
}

// PrependTransaction agrega un movimiento al inicio del log (más reciente primero).
func (inv *InventoryState) PrependTransaction(tx entity.Transaction) {
	inv.Transactions = append([]entity.Transaction{tx}, inv.Transactions...)
}

// Customer devuelve un puntero al cliente dentro del estado (nil si no existe).
func (ss *SalesState) Customer(id entity.ID) *entity.Customer {
	for i := range ss.Customers {
		if ss.Customers[i].ID == id {
			return &ss.Customers[i]
		}
	}
	return nil
}

// Order devuelve un puntero al pedido dentro del estado (nil si no existe).
func (ss *SalesState) Order(id entity.ID) *entity.Order {
	for i := range ss.Orders {
		if ss.Orders[i].ID == id {
			return &ss.Orders[i]
		}
	}
	return nil
}
