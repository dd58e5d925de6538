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

func (l *Loader) CreateProject(ctx context.Context, in ProjectInput) (models.Project, error) {
	return l.saveProject(ctx, uuid.NewString(), in)
}

// UpdateProject replaces the whole record. Unknown ids are created and
// files of the previous version stay in storage.
func (l *Loader) UpdateProject(ctx context.Context, id string, in ProjectInput) (models.Project, error) {
	return l.saveProject(ctx, id, in)
}

func (l *Loader) saveProject(ctx context.Context, id string, in ProjectInput) (models.Project, error) {
	files, err := l.storeAll(ctx, in.Files)
	if err != nil {
		return models.Project{}, err
	}

	project := models.Project{
		ID:          id,
		Name:        in.Name,
		Description: in.Description,
		Files:       files,
	}
	if err := l.projects.Set(ctx, id, project); err != nil {
		return models.Project{}, fmt.Errorf("failed to save project %s: %w", id, err)
	}

	slog.Info("project saved", "project_id", id, "name", in.Name, "files", len(files))
	return project, nil
}

func (l *Loader) GetProject(ctx context.Context, id string) (models.Project, error) {
	project, err := l.projects.Get(ctx, id)
	if errors.Is(err, db.ErrNotFound) {
		return models.Project{}, fmt.Errorf("%w: %s", models.ErrProjectNotFound, id)
	}
	if err != nil {
		return models.Project{}, err
	}
	return project, nil
}

// DeleteProject removes the project's stored files and then its record.
// Files already missing from storage are skipped.
func (l *Loader) DeleteProject(ctx context.Context, id string) error {
	project, err := l.GetProject(ctx, id)
	if err != nil {
		return err
	}

	for _, name := range project.Files {
		if err := l.removeFile(ctx, name); err != nil {
			return fmt.Errorf("failed to delete project %s: %w", id, err)
		}
	}

	if err := l.projects.Delete(ctx, id); err != nil && !errors.Is(err, db.ErrNotFound) {
		return fmt.Errorf("failed to delete project %s: %w", id, err)
	}

	slog.Info("project deleted", "project_id", id, "name", project.Name, "files", len(project.Files))
	return nil
}

func (l *Loader) removeFile(ctx context.Context, name string) error {
	err := l.fileManager.DeleteFile(ctx, name)
	if errors.Is(err, models.ErrFileNotFound) {
		slog.Warn("stored file already missing", "stored_name", name)
		return nil
	}
	return err
}
