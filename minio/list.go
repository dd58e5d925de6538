package minio

import (
	"context"
	"fmt"

	"github.com/minio/minio-go/v7"
)

// ListFiles reports every object under the prefix as "bucket/key".
func (m *Minio) ListFiles(ctx context.Context) ([]string, error) {
	opts := minio.ListObjectsOptions{Recursive: true}
	if m.prefix != "" {
		opts.Prefix = m.prefix + "/"
	}

	files := []string{}
	for object := range m.client.ListObjects(ctx, m.bucketName, opts) {
		if object.Err != nil {
			return nil, fmt.Errorf("failed to list bucket %s: %w", m.bucketName, object.Err)
		}
		files = append(files, m.location(object.Key))
	}
	return files, nil
}
