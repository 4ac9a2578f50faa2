package state

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"

	"github.com/jhoicas/saeron-inventario/internal/domain"
	"github.com/jhoicas/saeron-inventario/internal/domain/entity"
	"github.com/jhoicas/saeron-inventario/internal/domain/repository"
	"github.com/jhoicas/saeron-inventario/pkg/logger"
)

// CommitObserver recibe el resultado de cada commit (métricas).
type CommitObserver interface {
	ObserveCommit(namespaces []string, err error)
}

// Controller lo que consumen los casos de uso: lecturas con View y mutaciones con Run.
type Controller interface {
	View(fn func(st *State))
	Run(ctx context.Context, fn func(st *State) error) error
}

var _ Controller = (*Store)(nil)

// Store controlador único del estado. Serializa las mutaciones (un solo escritor lógico):
// cada Run trabaja sobre una copia, y solo si fn y la persistencia tienen éxito la copia
// reemplaza al estado vigente. Si algo falla no queda ninguna mutación parcial.
type Store struct {
	mu       sync.RWMutex
	repo     repository.StateRepository
	log      *logger.Logger
	observer CommitObserver

	state    *State
	versions map[string]int64
	payloads map[string][]byte
}

// Option configura el Store.
type Option func(*Store)

// WithObserver registra un observador de commits.
func WithObserver(o CommitObserver) Option {
	return func(s *Store) { s.observer = o }
}

// NewStore construye el controlador con el puerto de persistencia. Llamar Load antes de usarlo.
func NewStore(repo repository.StateRepository, log *logger.Logger, opts ...Option) *Store {
	if log == nil {
		log = logger.Nop()
	}
	s := &Store{
		repo:     repo,
		log:      log.Component("state"),
		state:    NewState(),
		versions: map[string]int64{},
		payloads: map[string][]byte{},
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Load lee ambos namespaces desde el almacén. Un namespace inexistente queda con valores por defecto.
func (s *Store) Load(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.load(ctx)
}

// load requiere s.mu tomado en escritura.
func (s *Store) load(ctx context.Context) error {
	st := NewState()
	versions := map[string]int64{}
	payloads := map[string][]byte{}
	inv, err := s.repo.Load(ctx, entity.NamespaceInventory)
	if err != nil {
		return fmt.Errorf("cargar %s: %w", entity.NamespaceInventory, err)
	}
	if inv != nil {
		if err := json.Unmarshal(inv.Payload, &st.Inventory); err != nil {
			return fmt.Errorf("decodificar %s: %w", entity.NamespaceInventory, err)
		}
		versions[inv.Namespace] = inv.Version
		payloads[inv.Namespace] = inv.Payload
	}
	sales, err := s.repo.Load(ctx, entity.NamespaceSales)
	if err != nil {
		return fmt.Errorf("cargar %s: %w", entity.NamespaceSales, err)
	}
	if sales != nil {
		if err := json.Unmarshal(sales.Payload, &st.Sales); err != nil {
			return fmt.Errorf("decodificar %s: %w", entity.NamespaceSales, err)
		}
		versions[sales.Namespace] = sales.Version
		payloads[sales.Namespace] = sales.Payload
	}
	normalize(st)
	// Un namespace ausente queda con su payload por defecto: no se escribe hasta que cambie.
	if inv == nil {
		if payloads[entity.NamespaceInventory], err = json.Marshal(st.Inventory); err != nil {
			return err
		}
	}
	if sales == nil {
		if payloads[entity.NamespaceSales], err = json.Marshal(st.Sales); err != nil {
			return err
		}
	}
	s.state = st
	s.versions = versions
	s.payloads = payloads

	s.log.Info().
		Int("products", len(st.Inventory.Products)).
		Int("sales", len(st.Inventory.Sales)).
		Int("closings", len(st.Inventory.MonthlyClosings)).
		Int("customers", len(st.Sales.Customers)).
		Int("orders", len(st.Sales.Orders)).
		Msg("estado cargado")
	return nil
}

// normalize reemplaza colecciones nil (JSON antiguo o incompleto) por vacías.
func normalize(st *State) {
	inv := &st.Inventory
	if inv.Products == nil {
		inv.Products = []entity.Product{}
	}
	if inv.Transactions == nil {
		inv.Transactions = []entity.Transaction{}
	}
	if len(inv.Categories) == 0 {
		inv.Categories = NewInventoryState().Categories
	}
	if inv.Sales == nil {
		inv.Sales = []entity.Sale{}
	}
	if inv.MonthlyClosings == nil {
		inv.MonthlyClosings = []entity.MonthlyClosing{}
	}
	if inv.Quotes == nil {
		inv.Quotes = []entity.Quote{}
	}
	if st.Sales.Customers == nil {
		st.Sales.Customers = []entity.Customer{}
	}
	if st.Sales.Orders == nil {
		st.Sales.Orders = []entity.Order{}
	}
}

// View ejecuta fn con el estado vigente bajo lock de lectura. fn no debe modificarlo.
func (s *Store) View(fn func(st *State)) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	fn(s.state)
}

// Run ejecuta fn sobre una copia del estado y hace commit (persistir + reemplazar) si no hay error.
// Solo se guardan los namespaces cuyo contenido cambió.
func (s *Store) Run(ctx context.Context, fn func(st *State) error) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	next := s.state.Clone()
	if err := fn(next); err != nil {
		return err
	}

	invPayload, err := json.Marshal(next.Inventory)
	if err != nil {
		return fmt.Errorf("codificar %s: %w", entity.NamespaceInventory, err)
	}
	salesPayload, err := json.Marshal(next.Sales)
	if err != nil {
		return fmt.Errorf("codificar %s: %w", entity.NamespaceSales, err)
	}

	var changed []entity.StateSnapshot
	for _, snap := range []entity.StateSnapshot{
		{Namespace: entity.NamespaceInventory, Payload: invPayload},
		{Namespace: entity.NamespaceSales, Payload: salesPayload},
	} {
		if bytes.Equal(snap.Payload, s.payloads[snap.Namespace]) {
			continue
		}
		snap.Version = s.versions[snap.Namespace]
		changed = append(changed, snap)
	}
	if len(changed) == 0 {
		s.state = next
		return nil
	}

	namespaces := make([]string, 0, len(changed))
	for _, snap := range changed {
		namespaces = append(namespaces, snap.Namespace)
	}

	err = s.repo.Save(ctx, changed...)
	if s.observer != nil {
		s.observer.ObserveCommit(namespaces, err)
	}
	if err != nil {
		if errors.Is(err, domain.ErrConflict) {
			s.log.Warn().Strs("namespaces", namespaces).Msg("versión desactualizada, commit descartado")
			// Otro proceso escribió: se recarga para que el próximo Run parta del estado vigente.
			if rerr := s.load(ctx); rerr != nil {
				s.log.Error().Err(rerr).Msg("recargar estado tras conflicto")
			}
			return err
		}
		s.log.Error().Err(err).Strs("namespaces", namespaces).Msg("persistir estado")
		return fmt.Errorf("persistir estado: %w", err)
	}

	for _, snap := range changed {
		s.versions[snap.Namespace] = snap.Version + 1
		s.payloads[snap.Namespace] = snap.Payload
	}
	s.state = next
	s.log.Debug().Strs("namespaces", namespaces).Msg("estado guardado")
	return nil
}
