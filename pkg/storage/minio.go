package storage

import (
	"context"
	"fmt"
	"io"
	"path"

	"car-rental/pkg/logger"

	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
)

// minioProvider implements the Provider interface using MinIO
type minioProvider struct {
	client       *minio.Client
	bucket       string
	publicClient *minio.Client // Client configured with public endpoint for signing URLs
}

// NewMinIOProvider creates a new MinIO storage provider
func NewMinIOProvider(ctx context.Context, endpoint, accessKey, secretKey, bucket string, useSSL bool, publicEndpoint string) (Provider, error) {
	logger.Infof("creating MinIO provider with endpoint: %s, publicEndpoint: %s, useSSL: %v", endpoint, publicEndpoint, useSSL)

	// If publicEndpoint is empty, use the same as endpoint
	if publicEndpoint == "" {
		publicEndpoint = endpoint
	}

	// create MinIO client for internal operations
	client, err := minio.New(endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(accessKey, secretKey, ""),
		Secure: useSSL,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create MinIO client: %w", err)
	}

	publicClient, err := minio.New(publicEndpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(accessKey, secretKey, ""),
		Secure: useSSL,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create public MinIO client: %w", err)
	}

	provider := &minioProvider{
		client:       client,
		bucket:       bucket,
		publicClient: publicClient,
	}

	// ensure bucket exists
	err = provider.ensureBucket(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to ensure bucket exists: %w", err)
	}

	logger.Info("MinIO provider initialized successfully")
	return provider, nil
}

// ensureBucket creates the bucket if it doesn't exist
func (m *minioProvider) ensureBucket(ctx context.Context) error {
	exists, err := m.client.BucketExists(ctx, m.bucket)
	if err != nil {
		return fmt.Errorf("failed to check if bucket exists: %w", err)
	}

	if !exists {
		logger.Infof("creating bucket: %s", m.bucket)
		err = m.client.MakeBucket(ctx, m.bucket, minio.MakeBucketOptions{})
		if err != nil {
			return fmt.Errorf("failed to create bucket: %w", err)
		}
	}

	return nil
}

// Put uploads content from an io.Reader
func (m *minioProvider) Put(ctx context.Context, p string, r io.Reader, size int64, contentType string) error {
	if contentType == "" {
		contentType = getContentType(p)
	}

	_, err := m.client.PutObject(ctx, m.bucket, p, r, size, minio.PutObjectOptions{
		ContentType: contentType,
	})
	if err != nil {
		return fmt.Errorf("failed to upload file to MinIO: %w", err)
	}

	return nil
}

// Open returns a reader for the object
func (m *minioProvider) Open(ctx context.Context, p string) (io.ReadCloser, error) {
	// GetObject is lazy, stat first so a missing object surfaces here
	if _, err := m.stat(ctx, p); err != nil {
		return nil, err
	}

	obj, err := m.client.GetObject(ctx, m.bucket, p, minio.GetObjectOptions{})
	if err != nil {
		return nil, fmt.Errorf("failed to get object from MinIO: %w", err)
	}
	return obj, nil
}

// GetSignedURL returns a presigned URL for accessing a file
func (m *minioProvider) GetSignedURL(ctx context.Context, p string) (string, error) {
	presignedURL, err := m.publicClient.PresignedGetObject(ctx, m.bucket, p, SignedURLTTL, nil)
	if err != nil {
		return "", fmt.Errorf("failed to generate signed URL: %w", err)
	}

	return presignedURL.String(), nil
}

// Delete deletes a file from MinIO
func (m *minioProvider) Delete(ctx context.Context, p string) error {
	err := m.client.RemoveObject(ctx, m.bucket, p, minio.RemoveObjectOptions{})
	if err != nil {
		return fmt.Errorf("failed to delete file from MinIO: %w", err)
	}

	return nil
}

// GetFileInfo returns information about a file
func (m *minioProvider) GetFileInfo(ctx context.Context, p string) (*FileInfo, error) {
	return m.stat(ctx, p)
}

func (m *minioProvider) stat(ctx context.Context, p string) (*FileInfo, error) {
	stat, err := m.client.StatObject(ctx, m.bucket, p, minio.StatObjectOptions{})
	if err != nil {
		if minio.ToErrorResponse(err).Code == "NoSuchKey" {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to get file info: %w", err)
	}

	return &FileInfo{
		Path:         stat.Key,
		Name:         path.Base(stat.Key),
		Size:         stat.Size,
		ContentType:  stat.ContentType,
		LastModified: stat.LastModified,
	}, nil
}

// ListObjects lists objects with a given prefix
func (m *minioProvider) ListObjects(ctx context.Context, prefix string) ([]FileInfo, error) {
	var files []FileInfo

	objectCh := m.client.ListObjects(ctx, m.bucket, minio.ListObjectsOptions{
		Prefix:    prefix,
		Recursive: true,
	})

	for object := range objectCh {
		if object.Err != nil {
			return nil, fmt.Errorf("error listing objects: %w", object.Err)
		}
		files = append(files, FileInfo{
			Path:         object.Key,
			Name:         path.Base(object.Key),
			Size:         object.Size,
			ContentType:  getContentType(object.Key),
			LastModified: object.LastModified,
		})
	}

	return files, nil
}
