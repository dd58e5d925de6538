package minio

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"time"

	"github.com/minio/minio-go/v7"
)

const uploadChunkSize = 1024 * 1024 * 10

func (m *Minio) UploadFile(ctx context.Context, name string, body io.Reader, size int64, contentType string) error {
	if size <= 0 {
		size = -1
	}

	uploadStart := time.Now()
	_, err := m.client.PutObject(
		ctx,
		m.bucketName,
		m.objectKey(name),
		body,
		size,
		minio.PutObjectOptions{
			ContentType: contentType,
			PartSize:    uploadChunkSize,
			UserMetadata: map[string]string{
				"X-Uploaded-At": time.Now().Format(time.RFC3339),
			},
		},
	)
	if err != nil {
		return fmt.Errorf("failed to upload %s to MinIO: %w", name, err)
	}

	slog.Info("object uploaded to MinIO", "stored_name", name, "upload_duration", time.Since(uploadStart).Seconds())
	return nil
}
