package load

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/google/uuid"

	"modelvault/db"
	"modelvault/models"
)

func (l *Loader) UploadModel(ctx context.Context, up *Upload) (string, error) {
	if up == nil {
		return "", models.ErrNoFile
	}
	id := uuid.NewString()
	if err := l.saveModel(ctx, id, up); err != nil {
		return "", err
	}
	return id, nil
}

// UpdateModel points id at a newly stored file. The previous file is kept.
func (l *Loader) UpdateModel(ctx context.Context, id string, up *Upload) error {
	if up == nil {
		return models.ErrNoFile
	}
	return l.saveModel(ctx, id, up)
}

func (l *Loader) saveModel(ctx context.Context, id string, up *Upload) error {
	name, err := l.store(ctx, up)
	if err != nil {
		return err
	}

	entry := models.ModelEntry{ID: id, Filename: name}
	if err := l.models.Set(ctx, id, entry); err != nil {
		return fmt.Errorf("failed to save model %s: %w", id, err)
	}

	slog.Info("model saved", "file_id", id, "stored_name", name)
	return nil
}

func (l *Loader) lookupModel(ctx context.Context, id string) (models.ModelEntry, error) {
	entry, err := l.models.Get(ctx, id)
	if errors.Is(err, db.ErrNotFound) {
		return models.ModelEntry{}, fmt.Errorf("%w: %s", models.ErrModelNotFound, id)
	}
	if err != nil {
		return models.ModelEntry{}, err
	}
	return entry, nil
}

// GetModel opens the stored file. The caller closes the returned content.
func (l *Loader) GetModel(ctx context.Context, id string) (*models.StoredObject, error) {
	entry, err := l.lookupModel(ctx, id)
	if err != nil {
		return nil, err
	}
	return l.fileManager.DownloadFile(ctx, entry.Filename)
}

func (l *Loader) DeleteModel(ctx context.Context, id string) error {
	entry, err := l.lookupModel(ctx, id)
	if err != nil {
		return err
	}

	if err := l.removeFile(ctx, entry.Filename); err != nil {
		return fmt.Errorf("failed to delete model %s: %w", id, err)
	}

	if err := l.models.Delete(ctx, id); err != nil && !errors.Is(err, db.ErrNotFound) {
		return fmt.Errorf("failed to delete model %s: %w", id, err)
	}

	slog.Info("model deleted", "file_id", id, "stored_name", entry.Filename)
	return nil
}

// ListModels returns the location of every file held by the backend.
func (l *Loader) ListModels(ctx context.Context) ([]string, error) {
	files, err := l.fileManager.ListFiles(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list stored files: %w", err)
	}
	if files == nil {
		files = []string{}
	}
	return files, nil
}
