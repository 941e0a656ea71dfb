package storage

import (
	"context"
	"errors"
	"fmt"
	"mime/multipart"
	"path"
	"strings"
)

// AllowedUploadTypes are the content types accepted for rental photos and
// documents, keyed by the extension stored
var AllowedUploadTypes = map[string]string{
	".jpg":  "image/jpeg",
	".jpeg": "image/jpeg",
	".png":  "image/png",
	".heic": "image/heic",
	".webp": "image/webp",
	".pdf":  "application/pdf",
}

// MaxUploadSize bounds a single uploaded file
const MaxUploadSize = 15 << 20

var (
	ErrUnsupportedType = errors.New("unsupported file type")
	ErrFileTooLarge    = errors.New("file too large")
)

// CheckUpload rejects files UploadFile would refuse, so callers can validate
// every file of a form before storing any of them
func CheckUpload(file *multipart.FileHeader) error {
	if _, _, err := uploadType(file); err != nil {
		return err
	}
	if file.Size > MaxUploadSize {
		return fmt.Errorf("%w: %s exceeds %d MB", ErrFileTooLarge, file.Filename, MaxUploadSize>>20)
	}
	return nil
}

// CheckPhoto is CheckUpload restricted to image types, for licence,
// insurance card and odometer photos
func CheckPhoto(file *multipart.FileHeader) error {
	ext, contentType, err := uploadType(file)
	if err != nil {
		return err
	}
	if !strings.HasPrefix(contentType, "image/") {
		return fmt.Errorf("%w %q: an image is required", ErrUnsupportedType, ext)
	}
	return CheckUpload(file)
}

// UploadFile stores an uploaded form file at dir/name plus the original
// extension and returns the stored path.
func UploadFile(ctx context.Context, p Provider, file *multipart.FileHeader, dir, name string) (string, error) {
	if err := CheckUpload(file); err != nil {
		return "", err
	}
	ext, contentType, _ := uploadType(file)

	src, err := file.Open()
	if err != nil {
		return "", fmt.Errorf("failed to open uploaded file: %w", err)
	}
	defer src.Close()

	dst := path.Join(dir, name+ext)
	if err := p.Put(ctx, dst, src, file.Size, contentType); err != nil {
		return "", err
	}

	return dst, nil
}

func uploadType(file *multipart.FileHeader) (string, string, error) {
	ext := strings.ToLower(path.Ext(file.Filename))
	contentType, ok := AllowedUploadTypes[ext]
	if !ok {
		return "", "", fmt.Errorf("%w %q", ErrUnsupportedType, ext)
	}
	return ext, contentType, nil
}

// getContentType returns the MIME type based on file extension
func getContentType(filename string) string {
	if ct, ok := AllowedUploadTypes[strings.ToLower(path.Ext(filename))]; ok {
		return ct
	}
	switch path.Ext(filename) {
	case ".json":
		return "application/json"
	default:
		return "application/octet-stream"
	}
}
