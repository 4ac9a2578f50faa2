package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/jhoicas/saeron-inventario/internal/domain"
	"github.com/jhoicas/saeron-inventario/internal/domain/entity"
	"github.com/jhoicas/saeron-inventario/internal/domain/repository"
)

var _ repository.StateRepository = (*StateRepository)(nil)

// StateRepository persiste cada namespace como una fila JSONB de app_state.
type StateRepository struct {
	pool *pgxpool.Pool
	tx   *TxRunner
}

// NewStateRepository construye el repositorio sobre el pool.
func NewStateRepository(pool *pgxpool.Pool) *StateRepository {
	return &StateRepository{pool: pool, tx: NewTxRunner(pool)}
}

// Load lee el namespace; nil si la fila no existe.
func (r *StateRepository) Load(ctx context.Context, namespace string) (*entity.StateSnapshot, error) {
	const q = `SELECT payload, version, updated_at FROM app_state WHERE namespace = $1`
	snap := entity.StateSnapshot{Namespace: namespace}
	err := r.pool.QueryRow(ctx, q, namespace).Scan(&snap.Payload, &snap.Version, &snap.UpdatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("leer namespace %s: %w", namespace, err)
	}
	return &snap, nil
}

// Save escribe todos los snapshots en una transacción. Version 0 inserta; si otro proceso
// ya creó la fila, la violación de unicidad se traduce a domain.ErrConflict. Version > 0
// actualiza solo si la versión almacenada coincide.
func (r *StateRepository) Save(ctx context.Context, snapshots ...entity.StateSnapshot) error {
	now := time.Now().UTC()
	return r.tx.Run(ctx, func(tx pgx.Tx) error {
		for _, s := range snapshots {
			if s.Version == 0 {
				const ins = `INSERT INTO app_state (namespace, payload, version, updated_at) VALUES ($1, $2, 1, $3)`
				if _, err := tx.Exec(ctx, ins, s.Namespace, s.Payload, now); err != nil {
					if isUniqueViolation(err) {
						return fmt.Errorf("namespace %s: %w", s.Namespace, domain.ErrConflict)
					}
					return fmt.Errorf("insertar namespace %s: %w", s.Namespace, err)
				}
				continue
			}
			const upd = `UPDATE app_state SET payload = $2, version = version + 1, updated_at = $3
				WHERE namespace = $1 AND version = $4`
			tag, err := tx.Exec(ctx, upd, s.Namespace, s.Payload, now, s.Version)
			if err != nil {
				return fmt.Errorf("actualizar namespace %s: %w", s.Namespace, err)
			}
			if tag.RowsAffected() != 1 {
				return fmt.Errorf("namespace %s versión %d: %w", s.Namespace, s.Version, domain.ErrConflict)
			}
		}
		return nil
	})
}
