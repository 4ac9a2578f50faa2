package sqlite_test

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/saeron-inventario/internal/application/state"
	"github.com/jhoicas/saeron-inventario/internal/domain"
	"github.com/jhoicas/saeron-inventario/internal/domain/entity"
	"github.com/jhoicas/saeron-inventario/internal/infrastructure/sqlite"
)

func openRepo(t *testing.T, path string) *sqlite.StateRepository {
	t.Helper()
	repo, err := sqlite.Open(context.Background(), path)
	require.NoError(t, err)
	t.Cleanup(func() { _ = repo.Close() })
	return repo
}

func TestStateRepository_CompareAndSwap(t *testing.T) {
	repo := openRepo(t, filepath.Join(t.TempDir(), "data", "saeron.db"))
	ctx := context.Background()

	snap, err := repo.Load(ctx, entity.NamespaceInventory)
	require.NoError(t, err)
	assert.Nil(t, snap)

	require.NoError(t, repo.Save(ctx, entity.StateSnapshot{Namespace: entity.NamespaceInventory, Payload: []byte(`{"products":[]}`)}))
	snap, err = repo.Load(ctx, entity.NamespaceInventory)
	require.NoError(t, err)
	require.NotNil(t, snap)
	assert.Equal(t, int64(1), snap.Version)
	assert.False(t, snap.UpdatedAt.IsZero())

	require.NoError(t, repo.Save(ctx, entity.StateSnapshot{Namespace: entity.NamespaceInventory, Payload: []byte(`{"products":[{}]}`), Version: 1}))

	assert.ErrorIs(t, repo.Save(ctx, entity.StateSnapshot{Namespace: entity.NamespaceInventory, Payload: []byte(`{}`), Version: 1}), domain.ErrConflict)
	assert.ErrorIs(t, repo.Save(ctx, entity.StateSnapshot{Namespace: entity.NamespaceInventory, Payload: []byte(`{}`)}), domain.ErrConflict)

	snap, err = repo.Load(ctx, entity.NamespaceInventory)
	require.NoError(t, err)
	assert.Equal(t, int64(2), snap.Version)
	assert.JSONEq(t, `{"products":[{}]}`, string(snap.Payload))
}

func TestStateRepository_ConflictoDescartaTodo(t *testing.T) {
	repo := openRepo(t, filepath.Join(t.TempDir(), "saeron.db"))
	ctx := context.Background()

	err := repo.Save(ctx,
		entity.StateSnapshot{Namespace: entity.NamespaceSales, Payload: []byte(`{}`)},
		entity.StateSnapshot{Namespace: entity.NamespaceInventory, Payload: []byte(`{}`), Version: 3},
	)
	require.ErrorIs(t, err, domain.ErrConflict)

	snap, err := repo.Load(ctx, entity.NamespaceSales)
	require.NoError(t, err)
	assert.Nil(t, snap)
}

func TestStateRepository_StoreSobreviveReinicio(t *testing.T) {
	path := filepath.Join(t.TempDir(), "saeron.db")
	ctx := context.Background()

	first := openRepo(t, path)
	s := state.NewStore(first, nil)
	require.NoError(t, s.Load(ctx))
	require.NoError(t, s.Run(ctx, func(st *state.State) error {
		st.Inventory.Products = append(st.Inventory.Products, entity.Product{ID: "1", Code: "PRD-001", Name: "노트북", Quantity: 3})
		return nil
	}))
	require.NoError(t, first.Close())

	second := openRepo(t, path)
	reloaded := state.NewStore(second, nil)
	require.NoError(t, reloaded.Load(ctx))
	reloaded.View(func(st *state.State) {
		require.Len(t, st.Inventory.Products, 1)
		assert.Equal(t, "노트북", st.Inventory.Products[0].Name)
	})
}
