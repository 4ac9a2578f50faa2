package billing

import (
	"context"
	"fmt"
	"slices"
	"strconv"
	"strings"
	"time"

	"github.com/jhoicas/saeron-inventario/internal/application/dto"
	"github.com/jhoicas/saeron-inventario/internal/application/state"
	"github.com/jhoicas/saeron-inventario/internal/domain"
	"github.com/jhoicas/saeron-inventario/internal/domain/entity"
)

// CustomerUseCase casos de uso para clientes.
type CustomerUseCase struct {
	store state.Controller
	now   func() time.Time
}

// NewCustomerUseCase construye el caso de uso.
func NewCustomerUseCase(store state.Controller) *CustomerUseCase {
	return &CustomerUseCase{store: store, now: time.Now}
}

// WithClock reemplaza el reloj (tests).
func (uc *CustomerUseCase) WithClock(now func() time.Time) *CustomerUseCase {
	uc.now = now
	return uc
}

// Create registra un cliente con código CST-NNN correlativo y compras en 0.
func (uc *CustomerUseCase) Create(ctx context.Context, in dto.CreateCustomerRequest) (*entity.Customer, error) {
	name := strings.TrimSpace(in.Name)
	if name == "" {
		return nil, domain.ErrInvalidInput
	}
	customerType := in.CustomerType
	if customerType == "" {
		customerType = entity.CustomerTypeB2B
	}
	if customerType != entity.CustomerTypeB2B && customerType != entity.CustomerTypeB2C {
		return nil, domain.ErrInvalidInput
	}
	var customer entity.Customer
	err := uc.store.Run(ctx, func(st *state.State) error {
		codes := make([]string, 0, len(st.Sales.Customers))
		for _, c := range st.Sales.Customers {
			codes = append(codes, c.Code)
		}
		customer = entity.Customer{
			ID:             entity.NewID(),
			Code:           nextCode("CST-", codes),
			Name:           name,
			Contact:        strings.TrimSpace(in.Contact),
			Email:          strings.TrimSpace(in.Email),
			Address:        strings.TrimSpace(in.Address),
			Manager:        strings.TrimSpace(in.Manager),
			ManagerPhone:   strings.TrimSpace(in.ManagerPhone),
			CustomerType:   customerType,
			Grade:          strings.TrimSpace(in.Grade),
			RegisteredDate: uc.now(),
		}
		st.Sales.Customers = append(st.Sales.Customers, customer)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &customer, nil
}

// Update aplica los campos no nulos.
func (uc *CustomerUseCase) Update(ctx context.Context, id entity.ID, in dto.UpdateCustomerRequest) (*entity.Customer, error) {
	var updated entity.Customer
	err := uc.store.Run(ctx, func(st *state.State) error {
		c := st.Sales.Customer(id)
		if c == nil {
			return domain.ErrNotFound
		}
		if in.Name != nil {
			name := strings.TrimSpace(*in.Name)
			if name == "" {
				return domain.ErrInvalidInput
			}
			c.Name = name
		}
		if in.CustomerType != nil {
			if *in.CustomerType != entity.CustomerTypeB2B && *in.CustomerType != entity.CustomerTypeB2C {
				return domain.ErrInvalidInput
			}
			c.CustomerType = *in.CustomerType
		}
		setString(&c.Contact, in.Contact)
		setString(&c.Email, in.Email)
		setString(&c.Address, in.Address)
		setString(&c.Manager, in.Manager)
		setString(&c.ManagerPhone, in.ManagerPhone)
		setString(&c.Grade, in.Grade)
		updated = *c
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &updated, nil
}

// Delete elimina el cliente. Sus pedidos conservan el nombre del cliente.
func (uc *CustomerUseCase) Delete(ctx context.Context, id entity.ID) error {
	return uc.store.Run(ctx, func(st *state.State) error {
		idx := slices.IndexFunc(st.Sales.Customers, func(c entity.Customer) bool { return c.ID == id })
		if idx < 0 {
			return domain.ErrNotFound
		}
		st.Sales.Customers = slices.Delete(st.Sales.Customers, idx, idx+1)
		return nil
	})
}

// GetByID obtiene un cliente.
func (uc *CustomerUseCase) GetByID(id entity.ID) (*entity.Customer, error) {
	var out *entity.Customer
	uc.store.View(func(st *state.State) {
		if c := st.Sales.Customer(id); c != nil {
			cp := *c
			out = &cp
		}
	})
	if out == nil {
		return nil, domain.ErrNotFound
	}
	return out, nil
}

// List clientes filtrados por texto (nombre, código, contacto, responsable) y tipo.
func (uc *CustomerUseCase) List(f dto.CustomerFilter) []entity.Customer {
	search := strings.ToLower(strings.TrimSpace(f.Search))
	out := []entity.Customer{}
	uc.store.View(func(st *state.State) {
		for _, c := range st.Sales.Customers {
			if f.Type != "" && c.CustomerType != f.Type {
				continue
			}
			if search != "" &&
				!strings.Contains(strings.ToLower(c.Name), search) &&
				!strings.Contains(strings.ToLower(c.Code), search) &&
				!strings.Contains(c.Contact, search) &&
				!strings.Contains(strings.ToLower(c.Manager), search) {
				continue
			}
			out = append(out, c)
		}
	})
	return out
}

// TopCustomers clientes con mayor compra acumulada.
func (uc *CustomerUseCase) TopCustomers(limit int) []entity.Customer {
	if limit <= 0 {
		limit = 10
	}
	var out []entity.Customer
	uc.store.View(func(st *state.State) {
		out = slices.Clone(st.Sales.Customers)
	})
	slices.SortStableFunc(out, func(a, b entity.Customer) int {
		switch {
		case a.TotalPurchase > b.TotalPurchase:
			return -1
		case a.TotalPurchase < b.TotalPurchase:
			return 1
		}
		return 0
	})
	if len(out) > limit {
		out = out[:limit]
	}
	if out == nil {
		out = []entity.Customer{}
	}
	return out
}

func setString(dst *string, v *string) {
	if v != nil {
		*dst = strings.TrimSpace(*v)
	}
}

// nextCode siguiente correlativo <prefix>NNN a partir del mayor existente con el mismo prefijo.
func nextCode(prefix string, existing []string) string {
	highest := 0
	for _, code := range existing {
		rest, ok := strings.CutPrefix(code, prefix)
		if !ok {
			continue
		}
		if n, err := strconv.Atoi(rest); err == nil && n > highest {
			highest = n
		}
	}
	return fmt.Sprintf("%s%03d", prefix, highest+1)
}
