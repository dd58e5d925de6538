package config

import (
	"errors"
	"fmt"
	"log/slog"
	"regexp"
	"strings"
)

func (ap *AppConfig) Validate() error {
	if ap.Port <= 0 || ap.Port > 65535 {
		return fmt.Errorf("PORT must be in range 1-65535, got: %d", ap.Port)
	}
	if ap.MaxUploadMemory <= 0 {
		return fmt.Errorf("MAX_UPLOAD_MEMORY_MB must be positive")
	}
	switch ap.LogLevel {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("LOG_LEVEL must be one of debug, info, warn, error, got: %q", ap.LogLevel)
	}
	switch ap.LogFormat {
	case "text", "json":
	default:
		return fmt.Errorf("LOG_FORMAT must be text or json, got: %q", ap.LogFormat)
	}
	return nil
}

func (sc *StorageConfig) Validate() error {
	switch sc.Backend {
	case StorageFS:
		if sc.Root == "" {
			return errors.New("STORAGE_ROOT is required for the fs backend")
		}
	case StorageMinIO:
	default:
		return fmt.Errorf("STORAGE_BACKEND must be %s or %s, got: %q", StorageFS, StorageMinIO, sc.Backend)
	}
	return nil
}

func (rc *RegistryConfig) Validate() error {
	switch rc.Backend {
	case RegistryMemory:
	case RegistrySQLite:
		if rc.Path == "" {
			return errors.New("REGISTRY_PATH is required for the sqlite backend")
		}
	default:
		return fmt.Errorf("REGISTRY_BACKEND must be %s or %s, got: %q", RegistryMemory, RegistrySQLite, rc.Backend)
	}
	return nil
}

func (mc *MinIOConfig) Validate() error {
	missingVars := []string{}

	if mc.Endpoint == "" {
		missingVars = append(missingVars, "MINIO_ENDPOINT")
	}
	if mc.AccessKeyID == "" {
		missingVars = append(missingVars, "MINIO_ACCESS_KEY")
	}
	if mc.SecretAccessKey == "" {
		missingVars = append(missingVars, "MINIO_SECRET_KEY")
	}
	if mc.BucketName == "" {
		missingVars = append(missingVars, "MINIO_BUCKET_NAME")
	}
	if mc.Location == "" {
		missingVars = append(missingVars, "MINIO_LOCATION")
	}

	if len(missingVars) > 0 {
		message := fmt.Sprintf("missing required environment variables: %s", strings.Join(missingVars, ", "))
		slog.Warn(message)
		return errors.New(message)
	}

	if !isValidBucketName(mc.BucketName) {
		message := fmt.Sprintf("bucket name '%s' contains invalid characters: use lowercase letters, digits and hyphens", mc.BucketName)
		slog.Error(message)
		return errors.New(message)
	}

	return nil
}

var bucketNameRegex = regexp.MustCompile(`^[a-z0-9\-]+$`)

func isValidBucketName(bucketName string) bool {
	return bucketNameRegex.MatchString(bucketName)
}
