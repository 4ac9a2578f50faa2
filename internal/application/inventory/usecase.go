package inventory

import (
	"context"
	"slices"
	"strings"
	"time"

	"github.com/jhoicas/saeron-inventario/internal/application/dto"
	"github.com/jhoicas/saeron-inventario/internal/application/state"
	"github.com/jhoicas/saeron-inventario/internal/domain"
	"github.com/jhoicas/saeron-inventario/internal/domain/entity"
)

// CatalogUseCase casos de uso del catálogo de productos. La cantidad se maneja con movimientos
// (StockUseCase), aunque la edición directa también la permite.
type CatalogUseCase struct {
	store state.Controller
	now   func() time.Time
}

// NewCatalogUseCase construye el caso de uso.
func NewCatalogUseCase(store state.Controller) *CatalogUseCase {
	return &CatalogUseCase{store: store, now: time.Now}
}

// WithClock reemplaza el reloj (tests).
func (uc *CatalogUseCase) WithClock(now func() time.Time) *CatalogUseCase {
	uc.now = now
	return uc
}

// Create agrega un producto. El código es único; una categoría nueva se registra en la lista.
func (uc *CatalogUseCase) Create(ctx context.Context, in dto.CreateProductRequest) (*entity.Product, error) {
	in.Code = strings.TrimSpace(in.Code)
	in.Name = strings.TrimSpace(in.Name)
	if in.Code == "" || in.Name == "" || in.Quantity < 0 || in.MinQuantity < 0 || in.Price < 0 {
		return nil, domain.ErrInvalidInput
	}
	product := entity.Product{
		ID:          entity.NewID(),
		Code:        in.Code,
		Name:        in.Name,
		Category:    strings.TrimSpace(in.Category),
		Quantity:    in.Quantity,
		MinQuantity: in.MinQuantity,
		Price:       in.Price,
		Location:    in.Location,
		Supplier:    in.Supplier,
		LastUpdated: uc.now(),
	}
	err := uc.store.Run(ctx, func(st *state.State) error {
		if codeTaken(st.Inventory.Products, product.Code, "") {
			return domain.ErrDuplicate
		}
		st.Inventory.Products = append(st.Inventory.Products, product)
		st.Inventory.EnsureCategory(product.Category)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &product, nil
}

// Update aplica los campos no nulos y renueva LastUpdated.
func (uc *CatalogUseCase) Update(ctx context.Context, id entity.ID, in dto.UpdateProductRequest) (*entity.Product, error) {
	var updated entity.Product
	err := uc.store.Run(ctx, func(st *state.State) error {
		p := st.Inventory.Product(id)
		if p == nil {
			return domain.ErrNotFound
		}
		if in.Code != nil {
			code := strings.TrimSpace(*in.Code)
			if code == "" {
				return domain.ErrInvalidInput
			}
			if codeTaken(st.Inventory.Products, code, id) {
				return domain.ErrDuplicate
			}
			p.Code = code
		}
		if in.Name != nil {
			name := strings.TrimSpace(*in.Name)
			if name == "" {
				return domain.ErrInvalidInput
			}
			p.Name = name
		}
		if in.Category != nil {
			p.Category = strings.TrimSpace(*in.Category)
			st.Inventory.EnsureCategory(p.Category)
		}
		if in.Quantity != nil {
			if *in.Quantity < 0 {
				return domain.ErrInvalidInput
			}
			p.Quantity = *in.Quantity
		}
		if in.MinQuantity != nil {
			if *in.MinQuantity < 0 {
				return domain.ErrInvalidInput
			}
			p.MinQuantity = *in.MinQuantity
		}
		if in.Price != nil {
			if *in.Price < 0 {
				return domain.ErrInvalidInput
			}
			p.Price = *in.Price
		}
		if in.Location != nil {
			p.Location = *in.Location
		}
		if in.Supplier != nil {
			p.Supplier = *in.Supplier
		}
		p.LastUpdated = uc.now()
		updated = *p
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &updated, nil
}

// Delete elimina el producto. Movimientos y ventas que lo referencian se conservan.
func (uc *CatalogUseCase) Delete(ctx context.Context, id entity.ID) error {
	return uc.store.Run(ctx, func(st *state.State) error {
		idx := slices.IndexFunc(st.Inventory.Products, func(p entity.Product) bool { return p.ID == id })
		if idx < 0 {
			return domain.ErrNotFound
		}
		st.Inventory.Products = slices.Delete(st.Inventory.Products, idx, idx+1)
		return nil
	})
}

// GetByID obtiene un producto.
func (uc *CatalogUseCase) GetByID(id entity.ID) (*entity.Product, error) {
	var out *entity.Product
	uc.store.View(func(st *state.State) {
		if p := st.Inventory.Product(id); p != nil {
			cp := *p
			out = &cp
		}
	})
	if out == nil {
		return nil, domain.ErrNotFound
	}
	return out, nil
}

// List devuelve los productos que cumplen el filtro, en el orden del catálogo.
func (uc *CatalogUseCase) List(f dto.ProductFilter) []entity.Product {
	search := strings.ToLower(strings.TrimSpace(f.Search))
	out := []entity.Product{}
	uc.store.View(func(st *state.State) {
		for _, p := range st.Inventory.Products {
			if f.Category != "" && p.Category != f.Category {
				continue
			}
			if f.LowStock && !p.IsLowStock() {
				continue
			}
			if search != "" &&
				!strings.Contains(strings.ToLower(p.Name), search) &&
				!strings.Contains(strings.ToLower(p.Code), search) {
				continue
			}
			out = append(out, p)
		}
	})
	return out
}

// LowStock productos con cantidad en o bajo el mínimo.
func (uc *CatalogUseCase) LowStock() []entity.Product {
	return uc.List(dto.ProductFilter{LowStock: true})
}

// ByCategory productos de una categoría.
func (uc *CatalogUseCase) ByCategory(category string) []entity.Product {
	return uc.List(dto.ProductFilter{Category: category})
}

// TotalValue valor total del inventario (Σ cantidad * precio).
func (uc *CatalogUseCase) TotalValue() int64 {
	var total int64
	uc.store.View(func(st *state.State) {
		for _, p := range st.Inventory.Products {
			total += p.StockValue()
		}
	})
	return total
}

// Categories lista de categorías registradas.
func (uc *CatalogUseCase) Categories() []string {
	var out []string
	uc.store.View(func(st *state.State) {
		out = slices.Clone(st.Inventory.Categories)
	})
	return out
}

// CategoryValues distribución del valor de inventario por categoría, en el orden de la lista
// de categorías; las categorías sin productos se omiten.
func (uc *CatalogUseCase) CategoryValues() []dto.CategoryValueDTO {
	out := []dto.CategoryValueDTO{}
	uc.store.View(func(st *state.State) {
		index := map[string]int{}
		order := slices.Clone(st.Inventory.Categories)
		rows := map[string]*dto.CategoryValueDTO{}
		for i, c := range order {
			index[c] = i
		}
		for _, p := range st.Inventory.Products {
			row, ok := rows[p.Category]
			if !ok {
				row = &dto.CategoryValueDTO{Category: p.Category}
				rows[p.Category] = row
				if _, known := index[p.Category]; !known {
					index[p.Category] = len(order)
					order = append(order, p.Category)
				}
			}
			row.Products++
			row.Quantity += p.Quantity
			row.Value += p.StockValue()
		}
		for _, c := range order {
			if row, ok := rows[c]; ok {
				out = append(out, *row)
			}
		}
	})
	return out
}

func codeTaken(products []entity.Product, code string, except entity.ID) bool {
	for _, p := range products {
		if p.ID != except && strings.EqualFold(p.Code, code) {
			return true
		}
	}
	return false
}
