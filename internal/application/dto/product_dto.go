package dto

// CreateProductRequest entrada para crear un producto.
type CreateProductRequest struct {
	Code        string `json:"code" validate:"required,max=50"`
	Name        string `json:"name" validate:"required,max=200"`
	Category    string `json:"category" validate:"required,max=100"`
	Quantity    int64  `json:"quantity" validate:"min=0"`
	MinQuantity int64  `json:"minQuantity" validate:"min=0"`
	Price       int64  `json:"price" validate:"min=0"`
	Location    string `json:"location"`
	Supplier    string `json:"supplier"`
}

// UpdateProductRequest actualización parcial; los campos nil no cambian.
type UpdateProductRequest struct {
	Code        *string `json:"code" validate:"omitempty,min=1,max=50"`
	Name        *string `json:"name" validate:"omitempty,min=1,max=200"`
	Category    *string `json:"category" validate:"omitempty,min=1,max=100"`
	Quantity    *int64  `json:"quantity" validate:"omitempty,min=0"`
	MinQuantity *int64  `json:"minQuantity" validate:"omitempty,min=0"`
	Price       *int64  `json:"price" validate:"omitempty,min=0"`
	Location    *string `json:"location"`
	Supplier    *string `json:"supplier"`
}

// ProductFilter filtros de GET /api/products.
type ProductFilter struct {
	Category string `query:"category"`
	Search   string `query:"search"` // nombre o código
	LowStock bool   `query:"lowStock"`
}

// CategoryValueDTO valor de inventario agrupado por categoría.
type CategoryValueDTO struct {
	Category string `json:"category"`
	Products int    `json:"products"`
	Quantity int64  `json:"quantity"`
	Value    int64  `json:"value"`
}
