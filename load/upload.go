package load

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/dustin/go-humanize"

	"modelvault/models"
)

// store writes one upload to the backend under a freshly generated name.
func (l *Loader) store(ctx context.Context, up *Upload) (string, error) {
	name := storedName(up.OriginalName)

	body := models.NewProgressReader(up.Body, name)
	if err := l.fileManager.UploadFile(ctx, name, body, up.Size, up.ContentType); err != nil {
		return "", fmt.Errorf("failed to store %q: %w", up.OriginalName, err)
	}

	slog.Info("file stored", "original_name", up.OriginalName, "stored_name", name, "size", humanize.Bytes(uint64(body.TotalBytes)))
	return name, nil
}

func (l *Loader) storeAll(ctx context.Context, uploads []*Upload) ([]string, error) {
	names := make([]string, 0, len(uploads))
	for _, up := range uploads {
		name, err := l.store(ctx, up)
		if err != nil {
			l.discard(ctx, names)
			return nil, err
		}
		names = append(names, name)
	}
	return names, nil
}

// discard removes files stored for a request that failed part way.
func (l *Loader) discard(ctx context.Context, names []string) {
	for _, name := range names {
		if err := l.removeFile(ctx, name); err != nil {
			slog.Error("failed to remove orphaned file", "stored_name", name, "error", err)
		}
	}
}
