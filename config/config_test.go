package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFromMap_Defaults(t *testing.T) {
	cfg, err := FromMap(map[string]string{})
	require.NoError(t, err)

	assert.Equal(t, 3000, cfg.App.Port)
	assert.Equal(t, "", cfg.App.Host)
	assert.Equal(t, int64(32<<20), cfg.App.MaxUploadMemory)
	assert.Equal(t, "info", cfg.App.LogLevel)
	assert.Equal(t, "text", cfg.App.LogFormat)
	assert.Equal(t, StorageFS, cfg.Storage.Backend)
	assert.Equal(t, "uploads", cfg.Storage.Root)
	assert.Equal(t, RegistryMemory, cfg.Registry.Backend)
}

func TestFromMap_Overrides(t *testing.T) {
	cfg, err := FromMap(map[string]string{
		"HOST":                 "127.0.0.1",
		"PORT":                 "8080",
		"MAX_UPLOAD_MEMORY_MB": "8",
		"LOG_LEVEL":            "DEBUG",
		"LOG_FORMAT":           "json",
		"STORAGE_ROOT":         "/var/lib/models",
		"REGISTRY_BACKEND":     "sqlite",
		"REGISTRY_PATH":        "/var/lib/models/registry.db",
	})
	require.NoError(t, err)

	assert.Equal(t, "127.0.0.1", cfg.App.Host)
	assert.Equal(t, 8080, cfg.App.Port)
	assert.Equal(t, int64(8<<20), cfg.App.MaxUploadMemory)
	assert.Equal(t, "debug", cfg.App.LogLevel)
	assert.Equal(t, "json", cfg.App.LogFormat)
	assert.Equal(t, "/var/lib/models", cfg.Storage.Root)
	assert.Equal(t, RegistrySQLite, cfg.Registry.Backend)
	assert.Equal(t, "/var/lib/models/registry.db", cfg.Registry.Path)
}

func TestFromMap_Invalid(t *testing.T) {
	tests := []struct {
		name string
		env  map[string]string
		want string
	}{
		{name: "port not a number", env: map[string]string{"PORT": "abc"}, want: "PORT must be a number"},
		{name: "port out of range", env: map[string]string{"PORT": "70000"}, want: "PORT must be in range"},
		{name: "unknown storage", env: map[string]string{"STORAGE_BACKEND": "ftp"}, want: "STORAGE_BACKEND"},
		{name: "unknown registry", env: map[string]string{"REGISTRY_BACKEND": "redis"}, want: "REGISTRY_BACKEND"},
		{name: "unknown log level", env: map[string]string{"LOG_LEVEL": "trace"}, want: "LOG_LEVEL"},
		{name: "minio without settings", env: map[string]string{"STORAGE_BACKEND": "minio"}, want: "MINIO_ENDPOINT"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := FromMap(tt.env)
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.want)
		})
	}
}

func TestFromMap_MinIO(t *testing.T) {
	env := map[string]string{
		"STORAGE_BACKEND":   "minio",
		"MINIO_ENDPOINT":    "localhost:9000",
		"MINIO_ACCESS_KEY":  "access",
		"MINIO_SECRET_KEY":  "secret",
		"MINIO_BUCKET_NAME": "models",
		"MINIO_LOCATION":    "us-east-1",
		"MINIO_USE_SSL":     "false",
		"MINIO_PREFIX":      "uploads",
	}

	cfg, err := FromMap(env)
	require.NoError(t, err)
	assert.Equal(t, StorageMinIO, cfg.Storage.Backend)
	assert.Equal(t, "localhost:9000", cfg.MinIO.Endpoint)
	assert.False(t, cfg.MinIO.UseSSL)
	assert.Equal(t, "uploads", cfg.MinIO.Prefix)

	env["MINIO_BUCKET_NAME"] = "Bad_Bucket"
	_, err = FromMap(env)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid characters")
}

func TestGet_EnvFile(t *testing.T) {
	envFile := filepath.Join(t.TempDir(), ".env")
	require.NoError(t, os.WriteFile(envFile, []byte("PORT=4000\nSTORAGE_ROOT=from-file\n"), 0o644))

	t.Setenv("PORT", "5000")
	t.Setenv("STORAGE_ROOT", "")
	os.Unsetenv("STORAGE_ROOT")

	cfg, err := Get(envFile)
	require.NoError(t, err)

	assert.Equal(t, 5000, cfg.App.Port, "process environment wins over the file")
	assert.Equal(t, "from-file", cfg.Storage.Root)
}

func TestGet_MissingEnvFile(t *testing.T) {
	t.Setenv("PORT", "3001")

	cfg, err := Get(filepath.Join(t.TempDir(), "missing.env"))
	require.NoError(t, err)
	assert.Equal(t, 3001, cfg.App.Port)
}
