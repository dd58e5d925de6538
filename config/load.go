package config

import (
	"fmt"
	"log/slog"
	"strconv"
	"strings"
)

const (
	defaultPort              = 3000
	defaultMaxUploadMemoryMB = 32
	defaultStorageRoot       = "uploads"
	defaultRegistryPath      = "registry.db"
)

func lookup(envMap map[string]string, key, fallback string) string {
	if value, ok := envMap[key]; ok && strings.TrimSpace(value) != "" {
		return strings.TrimSpace(value)
	}
	return fallback
}

func (c *AppConfig) Load(envMap map[string]string) error {
	c.Host = lookup(envMap, "HOST", "")
	c.LogLevel = strings.ToLower(lookup(envMap, "LOG_LEVEL", "info"))
	c.LogFormat = strings.ToLower(lookup(envMap, "LOG_FORMAT", "text"))

	port, err := strconv.Atoi(lookup(envMap, "PORT", strconv.Itoa(defaultPort)))
	if err != nil {
		return fmt.Errorf("PORT must be a number: %w", err)
	}
	c.Port = port

	memoryMB, err := strconv.ParseInt(lookup(envMap, "MAX_UPLOAD_MEMORY_MB", strconv.Itoa(defaultMaxUploadMemoryMB)), 10, 64)
	if err != nil {
		return fmt.Errorf("MAX_UPLOAD_MEMORY_MB must be a number: %w", err)
	}
	c.MaxUploadMemory = memoryMB << 20

	return nil
}

func (c *StorageConfig) Load(envMap map[string]string) error {
	c.Backend = strings.ToLower(lookup(envMap, "STORAGE_BACKEND", StorageFS))
	c.Root = lookup(envMap, "STORAGE_ROOT", defaultStorageRoot)
	return nil
}

func (c *RegistryConfig) Load(envMap map[string]string) error {
	c.Backend = strings.ToLower(lookup(envMap, "REGISTRY_BACKEND", RegistryMemory))
	c.Path = lookup(envMap, "REGISTRY_PATH", defaultRegistryPath)
	return nil
}

func (c *MinIOConfig) Load(envMap map[string]string) error {
	var ok bool

	c.Endpoint, ok = envMap["MINIO_ENDPOINT"]
	if !ok {
		slog.Warn("MINIO_ENDPOINT is not set")
	}

	c.AccessKeyID, ok = envMap["MINIO_ACCESS_KEY"]
	if !ok {
		slog.Warn("MINIO_ACCESS_KEY is not set")
	}

	c.SecretAccessKey, ok = envMap["MINIO_SECRET_KEY"]
	if !ok {
		slog.Warn("MINIO_SECRET_KEY is not set")
	}

	useSSLStr, ok := envMap["MINIO_USE_SSL"]
	if ok {
		c.UseSSL = strings.ToLower(useSSLStr) != "false"
	} else {
		c.UseSSL = true
		slog.Warn("MINIO_USE_SSL is not set, defaulting to true")
	}

	c.BucketName, ok = envMap["MINIO_BUCKET_NAME"]
	if !ok {
		slog.Warn("MINIO_BUCKET_NAME is not set")
	}

	c.Location, ok = envMap["MINIO_LOCATION"]
	if !ok {
		slog.Warn("MINIO_LOCATION is not set")
	}

	c.Prefix = envMap["MINIO_PREFIX"]

	return nil
}
