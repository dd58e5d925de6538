package load

import (
	"context"
	"io"

	"modelvault/db"
	"modelvault/models"
)

// FileManager is a storage backend holding uploaded files in one flat
// namespace addressed by stored filename.
type FileManager interface {
	UploadFile(ctx context.Context, name string, body io.Reader, size int64, contentType string) error
	DownloadFile(ctx context.Context, name string) (*models.StoredObject, error)
	DeleteFile(ctx context.Context, name string) error
	ListFiles(ctx context.Context) ([]string, error)
}

// Upload is one file received from a client.
type Upload struct {
	OriginalName string
	ContentType  string
	Size         int64
	Body         io.Reader
}

type ProjectInput struct {
	Name        string
	Description string
	Files       []*Upload
}

type Loader struct {
	fileManager FileManager
	projects    db.Store[models.Project]
	models      db.Store[models.ModelEntry]
}

func Init(fm FileManager, projects db.Store[models.Project], entries db.Store[models.ModelEntry]) *Loader {
	return &Loader{
		fileManager: fm,
		projects:    projects,
		models:      entries,
	}
}
