// Package minio stores uploads as objects in a MinIO (or S3) bucket.
package minio

import (
	"context"
	"fmt"
	"log/slog"
	"path"
	"strings"

	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"

	"modelvault/config"
)

type Minio struct {
	client     *minio.Client
	bucketName string
	prefix     string
}

func Init(cfg config.MinIOConfig) (*Minio, error) {
	minioClient, err := minio.New(cfg.Endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(cfg.AccessKeyID, cfg.SecretAccessKey, ""),
		Secure: cfg.UseSSL,
		Region: cfg.Location,
	})
	if err != nil {
		slog.Error("failed to connect to MinIO", "error", err)
		return nil, err
	}

	slog.Info("minio client connected", "endpoint", cfg.Endpoint, "bucket", cfg.BucketName)
	return New(minioClient, cfg.BucketName, cfg.Prefix), nil
}

func New(client *minio.Client, bucketName, prefix string) *Minio {
	return &Minio{
		client:     client,
		bucketName: bucketName,
		prefix:     strings.Trim(prefix, "/"),
	}
}

// CreateBucket makes the bucket unless it already exists.
func (m *Minio) CreateBucket(ctx context.Context, location string) error {
	exists, err := m.client.BucketExists(ctx, m.bucketName)
	if err != nil {
		slog.Error("failed to check bucket existence", "bucket", m.bucketName, "error", err)
		return fmt.Errorf("failed to check bucket existence: %w", err)
	}
	if exists {
		slog.Info("bucket already exists", "bucket", m.bucketName)
		return nil
	}

	slog.Info("creating bucket", "bucket", m.bucketName)
	err = m.client.MakeBucket(ctx, m.bucketName, minio.MakeBucketOptions{Region: location})
	if err != nil {
		if isBucketAlreadyExists(err) {
			slog.Info("bucket was created concurrently by another process", "bucket", m.bucketName)
			return nil
		}

		slog.Error("failed to create bucket", "bucket", m.bucketName, "error", err)
		return fmt.Errorf("failed to create bucket: %w", err)
	}

	slog.Info("bucket created", "bucket", m.bucketName)
	return nil
}

func isBucketAlreadyExists(err error) bool {
	if err == nil {
		return false
	}
	code := minio.ToErrorResponse(err).Code
	return code == "BucketAlreadyExists" || code == "BucketAlreadyOwnedByYou"
}

// objectKey maps a stored filename to its key inside the bucket.
func (m *Minio) objectKey(name string) string {
	if m.prefix == "" {
		return name
	}
	return path.Join(m.prefix, name)
}

// location is what ListFiles reports for a key.
func (m *Minio) location(key string) string {
	return m.bucketName + "/" + key
}
