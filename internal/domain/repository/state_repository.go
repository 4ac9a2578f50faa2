package repository

import (
	"context"

	"github.com/jhoicas/saeron-inventario/internal/domain/entity"
)

// StateRepository puerto de persistencia del estado de la aplicación (almacén clave-valor opaco).
// Cada namespace se carga completo al iniciar y se guarda completo tras cada mutación.
type StateRepository interface {
	// Load devuelve el snapshot del namespace o nil si aún no existe.
	Load(ctx context.Context, namespace string) (*entity.StateSnapshot, error)

	// Save guarda los snapshots en una sola operación atómica (compare-and-swap).
	// Cada snapshot lleva la versión con la que se leyó; si la versión almacenada
	// no coincide devuelve domain.ErrConflict y no guarda ninguno.
	Save(ctx context.Context, snapshots ...entity.StateSnapshot) error
}
