package storage

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"net/url"
	"os"
	"path/filepath"
	"strings"
)

// LocalProvider implements storage for local filesystem
type LocalProvider struct {
	basePath string
	baseURL  string // For serving files via HTTP
}

// NewLocalProvider creates a new local storage provider
func NewLocalProvider(basePath, baseURL string) (*LocalProvider, error) {
	// ensure the base path exists
	err := os.MkdirAll(basePath, 0755)
	if err != nil {
		return nil, fmt.Errorf("failed to create storage directory: %w", err)
	}

	return &LocalProvider{
		basePath: basePath,
		baseURL:  strings.TrimRight(baseURL, "/"),
	}, nil
}

// fullPath resolves p under basePath, refusing anything that escapes it
func (l *LocalProvider) fullPath(p string) (string, error) {
	clean := filepath.Clean("/" + filepath.FromSlash(p))
	if clean == string(filepath.Separator) {
		return "", fmt.Errorf("invalid path %q", p)
	}
	return filepath.Join(l.basePath, clean), nil
}

// Put writes r to the local filesystem
func (l *LocalProvider) Put(ctx context.Context, p string, r io.Reader, size int64, contentType string) error {
	fullPath, err := l.fullPath(p)
	if err != nil {
		return err
	}

	// ensure the directory exists
	err = os.MkdirAll(filepath.Dir(fullPath), 0755)
	if err != nil {
		return fmt.Errorf("failed to create directory: %w", err)
	}

	// write to a temp file first so readers never see a partial file
	tmp, err := os.CreateTemp(filepath.Dir(fullPath), ".upload-*")
	if err != nil {
		return fmt.Errorf("failed to create file: %w", err)
	}
	defer os.Remove(tmp.Name())

	if _, err := io.Copy(tmp, r); err != nil {
		tmp.Close()
		return fmt.Errorf("failed to copy file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("failed to close file: %w", err)
	}

	if err := os.Rename(tmp.Name(), fullPath); err != nil {
		return fmt.Errorf("failed to store file: %w", err)
	}
	return nil
}

// Open opens a file for reading
func (l *LocalProvider) Open(ctx context.Context, p string) (io.ReadCloser, error) {
	fullPath, err := l.fullPath(p)
	if err != nil {
		return nil, err
	}

	f, err := os.Open(fullPath)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to open file: %w", err)
	}
	return f, nil
}

// GetSignedURL returns a URL for accessing the file
func (l *LocalProvider) GetSignedURL(ctx context.Context, p string) (string, error) {
	// for local storage, files are served by the API behind admin auth
	return fmt.Sprintf("%s/%s", l.baseURL, (&url.URL{Path: p}).EscapedPath()), nil
}

// Delete deletes a file from the local filesystem
func (l *LocalProvider) Delete(ctx context.Context, p string) error {
	fullPath, err := l.fullPath(p)
	if err != nil {
		return err
	}
	if err := os.Remove(fullPath); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("failed to delete file: %w", err)
	}
	return nil
}

// GetFileInfo returns information about a file
func (l *LocalProvider) GetFileInfo(ctx context.Context, p string) (*FileInfo, error) {
	fullPath, err := l.fullPath(p)
	if err != nil {
		return nil, err
	}

	stat, err := os.Stat(fullPath)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to get file info: %w", err)
	}

	return &FileInfo{
		Path:         strings.TrimPrefix(filepath.ToSlash(p), "/"),
		Name:         stat.Name(),
		Size:         stat.Size(),
		ContentType:  getContentType(p),
		LastModified: stat.ModTime(),
	}, nil
}

// ListObjects walks the directory under prefix
func (l *LocalProvider) ListObjects(ctx context.Context, prefix string) ([]FileInfo, error) {
	root, err := l.fullPath(prefix)
	if err != nil {
		return nil, err
	}

	var files []FileInfo
	err = filepath.WalkDir(root, func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				return fs.SkipAll
			}
			return err
		}
		if d.IsDir() || strings.HasPrefix(d.Name(), ".upload-") {
			return nil
		}

		info, err := d.Info()
		if err != nil {
			return err
		}

		rel, err := filepath.Rel(l.basePath, p)
		if err != nil {
			return err
		}
		files = append(files, FileInfo{
			Path:         filepath.ToSlash(rel),
			Name:         d.Name(),
			Size:         info.Size(),
			ContentType:  getContentType(d.Name()),
			LastModified: info.ModTime(),
		})
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to list %s: %w", prefix, err)
	}

	return files, nil
}
