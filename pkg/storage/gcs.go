package storage

import (
	"context"
	"errors"
	"fmt"
	"io"
	"path"
	"time"

	"cloud.google.com/go/storage"
	"google.golang.org/api/iterator"
)

// GCSProvider implements storage for Google Cloud Storage
type GCSProvider struct {
	client *storage.Client
	bucket string
}

// NewGCSProvider creates a new GCS storage provider
func NewGCSProvider(ctx context.Context, bucketName string) (*GCSProvider, error) {
	client, err := storage.NewClient(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to create GCS client: %w", err)
	}

	return &GCSProvider{
		client: client,
		bucket: bucketName,
	}, nil
}

// Put uploads r to Google Cloud Storage
func (g *GCSProvider) Put(ctx context.Context, p string, r io.Reader, size int64, contentType string) error {
	// get a reference to the GCS object
	obj := g.client.Bucket(g.bucket).Object(p)

	// create a writer to the GCS object
	writer := obj.NewWriter(ctx)
	writer.ContentType = contentType
	if writer.ContentType == "" {
		writer.ContentType = getContentType(p)
	}

	// copy the file to GCS
	_, err := io.Copy(writer, r)
	if err != nil {
		writer.Close()
		return fmt.Errorf("failed to copy file to GCS: %w", err)
	}

	// close the writer to finalize the upload
	err = writer.Close()
	if err != nil {
		return fmt.Errorf("failed to close GCS writer: %w", err)
	}

	return nil
}

// Open returns a reader for the object
func (g *GCSProvider) Open(ctx context.Context, p string) (io.ReadCloser, error) {
	reader, err := g.client.Bucket(g.bucket).Object(p).NewReader(ctx)
	if err != nil {
		if errors.Is(err, storage.ErrObjectNotExist) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to read object from GCS: %w", err)
	}
	return reader, nil
}

// GetSignedURL returns a signed URL for accessing the file
func (g *GCSProvider) GetSignedURL(ctx context.Context, p string) (string, error) {
	opts := &storage.SignedURLOptions{
		Scheme:  storage.SigningSchemeV4,
		Method:  "GET",
		Expires: time.Now().Add(SignedURLTTL),
	}

	url, err := g.client.Bucket(g.bucket).SignedURL(p, opts)
	if err != nil {
		return "", fmt.Errorf("failed to generate signed URL: %w", err)
	}

	return url, nil
}

// Delete deletes a file from Google Cloud Storage
func (g *GCSProvider) Delete(ctx context.Context, p string) error {
	obj := g.client.Bucket(g.bucket).Object(p)
	err := obj.Delete(ctx)
	if err != nil && !errors.Is(err, storage.ErrObjectNotExist) {
		return fmt.Errorf("failed to delete object from GCS: %w", err)
	}
	return nil
}

// GetFileInfo returns information about a file in GCS
func (g *GCSProvider) GetFileInfo(ctx context.Context, p string) (*FileInfo, error) {
	attrs, err := g.client.Bucket(g.bucket).Object(p).Attrs(ctx)
	if err != nil {
		if errors.Is(err, storage.ErrObjectNotExist) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to get object attributes: %w", err)
	}

	return attrsToFileInfo(attrs), nil
}

// ListObjects lists objects under prefix
func (g *GCSProvider) ListObjects(ctx context.Context, prefix string) ([]FileInfo, error) {
	var files []FileInfo

	it := g.client.Bucket(g.bucket).Objects(ctx, &storage.Query{Prefix: prefix})
	for {
		attrs, err := it.Next()
		if errors.Is(err, iterator.Done) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("error listing objects: %w", err)
		}
		files = append(files, *attrsToFileInfo(attrs))
	}

	return files, nil
}

// Close closes the GCS client
func (g *GCSProvider) Close() error {
	return g.client.Close()
}

func attrsToFileInfo(attrs *storage.ObjectAttrs) *FileInfo {
	return &FileInfo{
		Path:         attrs.Name,
		Name:         path.Base(attrs.Name),
		Size:         attrs.Size,
		ContentType:  attrs.ContentType,
		LastModified: attrs.Updated,
	}
}
