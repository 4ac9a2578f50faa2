// Package sqlite implementa el puerto de persistencia del estado sobre un archivo SQLite (modernc, sin cgo).
package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite" // driver "sqlite"

	"github.com/jhoicas/saeron-inventario/internal/domain"
	"github.com/jhoicas/saeron-inventario/internal/domain/entity"
	"github.com/jhoicas/saeron-inventario/internal/domain/repository"
)

var _ repository.StateRepository = (*StateRepository)(nil)

// StateRepository guarda cada namespace como una fila de app_state.
type StateRepository struct {
	db *sql.DB
}

// Open crea el directorio si hace falta, aplica migraciones y abre la base.
func Open(ctx context.Context, dbPath string) (*StateRepository, error) {
	if err := os.MkdirAll(filepath.Dir(dbPath), 0o755); err != nil {
		return nil, fmt.Errorf("crear directorio de la base: %w", err)
	}
	if err := RunMigrations(dbPath); err != nil {
		return nil, err
	}
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("abrir sqlite: %w", err)
	}
	// Un escritor: una sola conexión evita SQLITE_BUSY entre conexiones del propio proceso
	db.SetMaxOpenConns(1)
	if _, err := db.ExecContext(ctx, `PRAGMA busy_timeout = 5000`); err != nil {
		db.Close()
		return nil, fmt.Errorf("configurar sqlite: %w", err)
	}
	return &StateRepository{db: db}, nil
}

// Close cierra la base.
func (r *StateRepository) Close() error {
	return r.db.Close()
}

// Load lee el namespace; nil si la fila no existe.
func (r *StateRepository) Load(ctx context.Context, namespace string) (*entity.StateSnapshot, error) {
	const q = `SELECT payload, version, updated_at FROM app_state WHERE namespace = ?`
	var (
		snap    = entity.StateSnapshot{Namespace: namespace}
		updated string
	)
	err := r.db.QueryRowContext(ctx, q, namespace).Scan(&snap.Payload, &snap.Version, &updated)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("leer namespace %s: %w", namespace, err)
	}
	if t, perr := time.Parse(time.RFC3339Nano, updated); perr == nil {
		snap.UpdatedAt = t
	}
	return &snap, nil
}

// Save escribe todos los snapshots en una transacción con compare-and-swap por versión.
func (r *StateRepository) Save(ctx context.Context, snapshots ...entity.StateSnapshot) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	now := time.Now().UTC().Format(time.RFC3339Nano)
	for _, s := range snapshots {
		var res sql.Result
		if s.Version == 0 {
			res, err = tx.ExecContext(ctx,
				`INSERT INTO app_state (namespace, payload, version, updated_at) VALUES (?, ?, 1, ?)
				 ON CONFLICT(namespace) DO NOTHING`,
				s.Namespace, s.Payload, now)
		} else {
			res, err = tx.ExecContext(ctx,
				`UPDATE app_state SET payload = ?, version = version + 1, updated_at = ?
				 WHERE namespace = ? AND version = ?`,
				s.Payload, now, s.Namespace, s.Version)
		}
		if err != nil {
			return fmt.Errorf("guardar namespace %s: %w", s.Namespace, err)
		}
		n, err := res.RowsAffected()
		if err != nil {
			return fmt.Errorf("guardar namespace %s: %w", s.Namespace, err)
		}
		if n != 1 {
			return fmt.Errorf("namespace %s versión %d: %w", s.Namespace, s.Version, domain.ErrConflict)
		}
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}
	return nil
}
