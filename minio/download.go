package minio

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/minio/minio-go/v7"

	"modelvault/file"
	"modelvault/models"
)

func isNoSuchKey(err error) bool {
	return minio.ToErrorResponse(err).Code == "NoSuchKey"
}

func (m *Minio) getObjectStat(ctx context.Context, name string) (minio.ObjectInfo, error) {
	stat, err := m.client.StatObject(ctx, m.bucketName, m.objectKey(name), minio.StatObjectOptions{})
	if err != nil {
		if isNoSuchKey(err) {
			return minio.ObjectInfo{}, fmt.Errorf("%w: %s", models.ErrFileNotFound, name)
		}
		slog.Error("failed to stat object", "stored_name", name, "error", err)
		return minio.ObjectInfo{}, fmt.Errorf("failed to stat %s: %w", name, err)
	}
	return stat, nil
}

func (m *Minio) DownloadFile(ctx context.Context, name string) (*models.StoredObject, error) {
	stat, err := m.getObjectStat(ctx, name)
	if err != nil {
		return nil, err
	}

	object, err := m.client.GetObject(ctx, m.bucketName, m.objectKey(name), minio.GetObjectOptions{})
	if err != nil {
		slog.Error("failed to get object from MinIO", "stored_name", name, "error", err)
		return nil, fmt.Errorf("failed to get %s: %w", name, err)
	}

	contentType := stat.ContentType
	if contentType == "" || contentType == "binary/octet-stream" {
		contentType = file.ContentType(name)
	}

	return &models.StoredObject{
		Name:        name,
		Size:        stat.Size,
		ModTime:     stat.LastModified,
		ContentType: contentType,
		Content:     object,
	}, nil
}

func (m *Minio) DeleteFile(ctx context.Context, name string) error {
	if _, err := m.getObjectStat(ctx, name); err != nil {
		return err
	}

	if err := m.client.RemoveObject(ctx, m.bucketName, m.objectKey(name), minio.RemoveObjectOptions{}); err != nil {
		return fmt.Errorf("failed to remove %s: %w", name, err)
	}
	return nil
}
