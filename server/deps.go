package server

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"

	"modelvault/config"
	"modelvault/db"
	"modelvault/file"
	"modelvault/load"
	"modelvault/minio"
	"modelvault/models"
)

const (
	projectsKind = "projects"
	modelsKind   = "models"
)

// NewFileManager returns the storage backend selected by STORAGE_BACKEND.
func NewFileManager(ctx context.Context, cfg config.Config) (load.FileManager, error) {
	switch cfg.Storage.Backend {
	case config.StorageMinIO:
		m, err := minio.Init(cfg.MinIO)
		if err != nil {
			return nil, err
		}
		if err := m.CreateBucket(ctx, cfg.MinIO.Location); err != nil {
			return nil, err
		}
		return m, nil
	case config.StorageFS:
		return file.New(cfg.Storage.Root)
	default:
		return nil, fmt.Errorf("unknown storage backend %q", cfg.Storage.Backend)
	}
}

// NewFileLister opens the configured backend for read-only use. Unlike
// NewFileManager it never creates the storage root or the bucket.
func NewFileLister(cfg config.Config) (load.FileManager, error) {
	switch cfg.Storage.Backend {
	case config.StorageMinIO:
		return minio.Init(cfg.MinIO)
	case config.StorageFS:
		return file.Open(cfg.Storage.Root)
	default:
		return nil, fmt.Errorf("unknown storage backend %q", cfg.Storage.Backend)
	}
}

type Registries struct {
	Projects db.Store[models.Project]
	Models   db.Store[models.ModelEntry]
	conn     *sql.DB
}

func (r *Registries) Close() {
	if r.conn == nil {
		return
	}
	if err := r.conn.Close(); err != nil {
		slog.Error("failed to close registry database", "error", err)
	}
}

// NewRegistries returns the project and model registries selected by
// REGISTRY_BACKEND.
func NewRegistries(cfg config.RegistryConfig) (*Registries, error) {
	switch cfg.Backend {
	case config.RegistrySQLite:
		conn, err := db.Open(cfg.Path)
		if err != nil {
			return nil, err
		}
		slog.Info("using sqlite registry", "path", cfg.Path)
		return &Registries{
			Projects: db.NewSQLite[models.Project](conn, projectsKind),
			Models:   db.NewSQLite[models.ModelEntry](conn, modelsKind),
			conn:     conn,
		}, nil
	case config.RegistryMemory:
		slog.Info("using in-memory registry")
		return &Registries{
			Projects: db.NewMemory[models.Project](),
			Models:   db.NewMemory[models.ModelEntry](),
		}, nil
	default:
		return nil, fmt.Errorf("unknown registry backend %q", cfg.Backend)
	}
}
