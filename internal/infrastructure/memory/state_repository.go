// Package memory implementa el puerto de persistencia en memoria (tests y modo efímero).
package memory

import (
	"context"
	"fmt"
	"slices"
	"sync"
	"time"

	"github.com/jhoicas/saeron-inventario/internal/domain"
	"github.com/jhoicas/saeron-inventario/internal/domain/entity"
	"github.com/jhoicas/saeron-inventario/internal/domain/repository"
)

var _ repository.StateRepository = (*StateRepository)(nil)

// StateRepository guarda los snapshots por namespace en un mapa.
type StateRepository struct {
	mu    sync.Mutex
	rows  map[string]entity.StateSnapshot
	saves int
	// FailNext hace fallar el próximo Save con este error (tests).
	FailNext error
}

// NewStateRepository repositorio vacío.
func NewStateRepository() *StateRepository {
	return &StateRepository{rows: map[string]entity.StateSnapshot{}}
}

// Load devuelve nil si el namespace no existe.
func (r *StateRepository) Load(_ context.Context, namespace string) (*entity.StateSnapshot, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	row, ok := r.rows[namespace]
	if !ok {
		return nil, nil
	}
	row.Payload = slices.Clone(row.Payload)
	return &row, nil
}

// Save compara versiones de todos los snapshots antes de escribir ninguno.
func (r *StateRepository) Save(_ context.Context, snapshots ...entity.StateSnapshot) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if err := r.FailNext; err != nil {
		r.FailNext = nil
		return err
	}
	for _, s := range snapshots {
		if s.Namespace == "" {
			return fmt.Errorf("namespace vacío: %w", domain.ErrInvalidInput)
		}
		if current := r.rows[s.Namespace].Version; current != s.Version {
			return domain.ErrConflict
		}
	}
	now := time.Now()
	for _, s := range snapshots {
		r.rows[s.Namespace] = entity.StateSnapshot{
			Namespace: s.Namespace,
			Payload:   slices.Clone(s.Payload),
			Version:   s.Version + 1,
			UpdatedAt: now,
		}
	}
	r.saves++
	return nil
}

// Put escribe un snapshot sin control de versión (siembra de tests).
func (r *StateRepository) Put(namespace string, payload []byte) {
	r.mu.Lock()
	defer r.mu.Unlock()
	row := r.rows[namespace]
	r.rows[namespace] = entity.StateSnapshot{
		Namespace: namespace,
		Payload:   slices.Clone(payload),
		Version:   row.Version + 1,
		UpdatedAt: time.Now(),
	}
}

// Saves cantidad de commits exitosos.
func (r *StateRepository) Saves() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.saves
}
