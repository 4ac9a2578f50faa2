// Package storage elige el adaptador de persistencia del estado según la configuración.
package storage

import (
	"context"
	"fmt"

	"github.com/jhoicas/saeron-inventario/internal/domain/repository"
	"github.com/jhoicas/saeron-inventario/internal/infrastructure/memory"
	"github.com/jhoicas/saeron-inventario/internal/infrastructure/postgres"
	"github.com/jhoicas/saeron-inventario/internal/infrastructure/sqlite"
	"github.com/jhoicas/saeron-inventario/pkg/config"
)

// Open abre el repositorio de estado de STORE_DRIVER y aplica sus migraciones.
// El func devuelto libera las conexiones.
func Open(ctx context.Context, cfg *config.Config) (repository.StateRepository, func(), error) {
	switch cfg.Store.Driver {
	case config.StoreDriverMemory:
		return memory.NewStateRepository(), func() {}, nil
	case config.StoreDriverPostgres:
		dsn := cfg.DB.ConnectionString()
		if err := postgres.RunMigrations(dsn); err != nil {
			return nil, nil, fmt.Errorf("migraciones postgres: %w", err)
		}
		pool, err := postgres.NewPool(ctx, cfg.DB)
		if err != nil {
			return nil, nil, fmt.Errorf("conexión a PostgreSQL: %w", err)
		}
		return postgres.NewStateRepository(pool), pool.Close, nil
	case config.StoreDriverSQLite:
		repo, err := sqlite.Open(ctx, cfg.Store.SQLitePath)
		if err != nil {
			return nil, nil, fmt.Errorf("abrir sqlite %s: %w", cfg.Store.SQLitePath, err)
		}
		return repo, func() { _ = repo.Close() }, nil
	default:
		return nil, nil, fmt.Errorf("driver de almacenamiento desconocido %q", cfg.Store.Driver)
	}
}
