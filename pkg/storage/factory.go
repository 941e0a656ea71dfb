package storage

import (
	"context"
	"fmt"

	"car-rental/pkg/config"
)

// Storage provider constants
const (
	StorageProviderLocal = "local"
	StorageProviderGCS   = "gcs"
	StorageProviderMinIO = "minio"
)

// NewStorageProvider creates a storage provider based on configuration
func NewStorageProvider(ctx context.Context, cfg *config.StorageConfig) (Provider, error) {
	switch cfg.Provider {
	case StorageProviderLocal, "":
		return NewLocalProvider(cfg.LocalPath, cfg.LocalBaseURL)

	case StorageProviderGCS:
		if cfg.GCSBucket == "" {
			return nil, fmt.Errorf("GCS bucket name is required")
		}
		return NewGCSProvider(ctx, cfg.GCSBucket)

	case StorageProviderMinIO:
		if cfg.MinIO.Endpoint == "" || cfg.MinIO.Bucket == "" {
			return nil, fmt.Errorf("MinIO endpoint and bucket are required")
		}
		return NewMinIOProvider(
			ctx,
			cfg.MinIO.Endpoint,
			cfg.MinIO.AccessKey,
			cfg.MinIO.SecretKey,
			cfg.MinIO.Bucket,
			cfg.MinIO.UseSSL,
			cfg.MinIO.PublicEndpoint,
		)

	default:
		return nil, fmt.Errorf("unsupported storage provider: %s", cfg.Provider)
	}
}
