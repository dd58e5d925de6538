package db

import (
	"context"
	"path/filepath"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type record struct {
	Name  string   `json:"name"`
	Files []string `json:"files"`
}

func newStores(t *testing.T) map[string]Store[record] {
	t.Helper()

	conn, err := Open(filepath.Join(t.TempDir(), "registry.db"))
	require.NoError(t, err)
	t.Cleanup(func() { conn.Close() })

	return map[string]Store[record]{
		"memory": NewMemory[record](),
		"sqlite": NewSQLite[record](conn, "projects"),
	}
}

func TestStore_SetGetDelete(t *testing.T) {
	ctx := context.Background()

	for name, store := range newStores(t) {
		t.Run(name, func(t *testing.T) {
			want := record{Name: "chair", Files: []string{"1-2.glb", "3-4.obj"}}
			require.NoError(t, store.Set(ctx, "id-1", want))

			got, err := store.Get(ctx, "id-1")
			require.NoError(t, err)
			assert.Equal(t, want, got)

			require.NoError(t, store.Delete(ctx, "id-1"))

			_, err = store.Get(ctx, "id-1")
			assert.ErrorIs(t, err, ErrNotFound)
		})
	}
}

func TestStore_SetOverwrites(t *testing.T) {
	ctx := context.Background()

	for name, store := range newStores(t) {
		t.Run(name, func(t *testing.T) {
			require.NoError(t, store.Set(ctx, "id-1", record{Name: "old", Files: []string{"a.glb"}}))
			require.NoError(t, store.Set(ctx, "id-1", record{Name: "new"}))

			got, err := store.Get(ctx, "id-1")
			require.NoError(t, err)
			assert.Equal(t, "new", got.Name)
			assert.Empty(t, got.Files)
		})
	}
}

func TestStore_UnknownID(t *testing.T) {
	ctx := context.Background()

	for name, store := range newStores(t) {
		t.Run(name, func(t *testing.T) {
			_, err := store.Get(ctx, "missing")
			assert.ErrorIs(t, err, ErrNotFound)

			err = store.Delete(ctx, "missing")
			assert.ErrorIs(t, err, ErrNotFound)
		})
	}
}

func TestSQLite_KindsAreIsolated(t *testing.T) {
	ctx := context.Background()

	conn, err := Open(filepath.Join(t.TempDir(), "registry.db"))
	require.NoError(t, err)
	defer conn.Close()

	projects := NewSQLite[record](conn, "projects")
	models := NewSQLite[string](conn, "models")

	require.NoError(t, projects.Set(ctx, "shared-id", record{Name: "p"}))

	_, err = models.Get(ctx, "shared-id")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestSQLite_PersistsAcrossConnections(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "registry.db")

	conn, err := Open(path)
	require.NoError(t, err)
	require.NoError(t, NewSQLite[string](conn, "models").Set(ctx, "id-1", "1-2.glb"))
	require.NoError(t, conn.Close())

	conn, err = Open(path)
	require.NoError(t, err)
	defer conn.Close()

	got, err := NewSQLite[string](conn, "models").Get(ctx, "id-1")
	require.NoError(t, err)
	assert.Equal(t, "1-2.glb", got)
}

func TestMemory_ConcurrentWriters(t *testing.T) {
	ctx := context.Background()
	store := NewMemory[int]()

	var wg sync.WaitGroup
	for i := range 50 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_ = store.Set(ctx, "shared", i)
			_, _ = store.Get(ctx, "shared")
		}()
	}
	wg.Wait()

	assert.Equal(t, 1, store.Len())
}
