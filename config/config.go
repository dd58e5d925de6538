package config

import (
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"maps"
	"os"
	"strings"

	"github.com/joho/godotenv"
)

const (
	StorageFS    = "fs"
	StorageMinIO = "minio"

	RegistryMemory = "memory"
	RegistrySQLite = "sqlite"
)

type BasicConfig interface {
	Load(map[string]string) error
	Validate() error
}

type AppConfig struct {
	Host            string
	Port            int
	MaxUploadMemory int64
	LogLevel        string
	LogFormat       string
}

type StorageConfig struct {
	Backend string
	Root    string
}

type RegistryConfig struct {
	Backend string
	Path    string
}

type MinIOConfig struct {
	UseSSL          bool
	Endpoint        string
	AccessKeyID     string
	SecretAccessKey string
	BucketName      string
	Location        string
	Prefix          string
}

type Config struct {
	App      AppConfig
	Storage  StorageConfig
	Registry RegistryConfig
	MinIO    MinIOConfig
}

// readEnv merges envFile (optional) with the process environment. Process
// variables win over the file.
func readEnv(envFile string) (map[string]string, error) {
	envMap := make(map[string]string)

	if envFile != "" {
		fileEnv, err := godotenv.Read(envFile)
		switch {
		case err == nil:
			maps.Copy(envMap, fileEnv)
		case errors.Is(err, fs.ErrNotExist):
			slog.Warn("env file not found, using process environment only", "file", envFile)
		default:
			slog.Error("failed to read env file", "file", envFile, "error", err)
			return nil, fmt.Errorf("failed to read env file %s: %w", envFile, err)
		}
	}

	for _, kv := range os.Environ() {
		key, value, ok := strings.Cut(kv, "=")
		if ok {
			envMap[key] = value
		}
	}
	return envMap, nil
}

func Get(envFile string) (Config, error) {
	envMap, err := readEnv(envFile)
	if err != nil {
		return Config{}, err
	}
	return FromMap(envMap)
}

// FromMap builds and validates the configuration from raw variables.
func FromMap(envMap map[string]string) (Config, error) {
	appCfg := &AppConfig{}
	storageCfg := &StorageConfig{}
	registryCfg := &RegistryConfig{}
	minioCfg := &MinIOConfig{}

	configs := []BasicConfig{appCfg, storageCfg, registryCfg}
	if strings.ToLower(envMap["STORAGE_BACKEND"]) == StorageMinIO {
		configs = append(configs, minioCfg)
	}

	for _, cfg := range configs {
		if err := cfg.Load(envMap); err != nil {
			slog.Error("failed to load configuration", "error", err)
			return Config{}, err
		}
		if err := cfg.Validate(); err != nil {
			slog.Error("configuration is invalid", "error", err)
			return Config{}, err
		}
	}

	return Config{
		App:      *appCfg,
		Storage:  *storageCfg,
		Registry: *registryCfg,
		MinIO:    *minioCfg,
	}, nil
}
