package storage

import (
	"bytes"
	"context"
	"io"
	"mime/multipart"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestLocal(t *testing.T) *LocalProvider {
	t.Helper()
	p, err := NewLocalProvider(t.TempDir(), "http://localhost:8080/api/v1/admin/files/")
	require.NoError(t, err)
	return p
}

func TestLocalProvider_PutOpenList(t *testing.T) {
	p := newTestLocal(t)
	ctx := context.Background()

	require.NoError(t, p.Put(ctx, "folder-1/mileage-out.json", strings.NewReader(`{"mileage":1}`), -1, "application/json"))
	require.NoError(t, p.Put(ctx, "folder-1/photos/license-front.jpg", strings.NewReader("jpeg"), 4, "image/jpeg"))
	require.NoError(t, p.Put(ctx, "folder-2/contract.pdf", strings.NewReader("%PDF"), 4, "application/pdf"))

	// last write wins
	require.NoError(t, p.Put(ctx, "folder-1/mileage-out.json", strings.NewReader(`{"mileage":2}`), -1, "application/json"))

	r, err := p.Open(ctx, "folder-1/mileage-out.json")
	require.NoError(t, err)
	data, err := io.ReadAll(r)
	r.Close()
	require.NoError(t, err)
	assert.Equal(t, `{"mileage":2}`, string(data))

	files, err := p.ListObjects(ctx, "folder-1")
	require.NoError(t, err)
	paths := make([]string, 0, len(files))
	for _, f := range files {
		paths = append(paths, f.Path)
	}
	assert.ElementsMatch(t, []string{"folder-1/mileage-out.json", "folder-1/photos/license-front.jpg"}, paths)

	info, err := p.GetFileInfo(ctx, "folder-1/photos/license-front.jpg")
	require.NoError(t, err)
	assert.Equal(t, "image/jpeg", info.ContentType)
	assert.Equal(t, int64(4), info.Size)
}

func TestLocalProvider_NotFound(t *testing.T) {
	p := newTestLocal(t)
	ctx := context.Background()

	_, err := p.Open(ctx, "missing/file.pdf")
	assert.ErrorIs(t, err, ErrNotFound)

	_, err = p.GetFileInfo(ctx, "missing/file.pdf")
	assert.ErrorIs(t, err, ErrNotFound)

	files, err := p.ListObjects(ctx, "missing")
	require.NoError(t, err)
	assert.Empty(t, files)

	assert.NoError(t, p.Delete(ctx, "missing/file.pdf"))
}

func TestLocalProvider_PathsStayInside(t *testing.T) {
	p := newTestLocal(t)
	ctx := context.Background()

	require.NoError(t, p.Put(ctx, "../../escape.txt", strings.NewReader("x"), 1, ""))

	info, err := p.GetFileInfo(ctx, "escape.txt")
	require.NoError(t, err)
	assert.Equal(t, "escape.txt", info.Name)
}

func TestLocalProvider_SignedURL(t *testing.T) {
	p := newTestLocal(t)

	url, err := p.GetSignedURL(context.Background(), "folder-1/signed contract.pdf")
	require.NoError(t, err)
	assert.Equal(t, "http://localhost:8080/api/v1/admin/files/folder-1/signed%20contract.pdf", url)
}

func TestUploadFile(t *testing.T) {
	p := newTestLocal(t)
	ctx := context.Background()

	tests := []struct {
		name     string
		filename string
		wantPath string
		wantErr  bool
	}{
		{name: "jpeg photo", filename: "IMG_0001.JPG", wantPath: "folder-1/license-front.jpg"},
		{name: "pdf", filename: "contract.pdf", wantPath: "folder-1/license-front.pdf"},
		{name: "executable", filename: "run.exe", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fh := multipartFile(t, "photo", tt.filename, []byte("content"))

			got, err := UploadFile(ctx, p, fh, "folder-1", "license-front")
			if tt.wantErr {
				assert.ErrorIs(t, err, ErrUnsupportedType)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.wantPath, got)
		})
	}
}

func TestCheckUpload_TooLarge(t *testing.T) {
	fh := multipartFile(t, "photo", "odometer.png", []byte("content"))
	fh.Size = MaxUploadSize + 1

	assert.ErrorIs(t, CheckUpload(fh), ErrFileTooLarge)
}

func TestCheckPhoto(t *testing.T) {
	tests := []struct {
		name     string
		filename string
		size     int64
		wantErr  error
	}{
		{name: "jpeg", filename: "front.jpg"},
		{name: "upper case png", filename: "odometer.PNG"},
		{name: "heic", filename: "card.heic"},
		{name: "pdf is not a photo", filename: "odometer.pdf", wantErr: ErrUnsupportedType},
		{name: "unknown type", filename: "odometer.exe", wantErr: ErrUnsupportedType},
		{name: "too large", filename: "front.webp", size: MaxUploadSize + 1, wantErr: ErrFileTooLarge},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fh := multipartFile(t, "photo", tt.filename, []byte("content"))
			if tt.size > 0 {
				fh.Size = tt.size
			}

			err := CheckPhoto(fh)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}
			assert.NoError(t, err)
		})
	}
}

func multipartFile(t *testing.T, field, filename string, content []byte) *multipart.FileHeader {
	t.Helper()

	var body bytes.Buffer
	w := multipart.NewWriter(&body)
	part, err := w.CreateFormFile(field, filename)
	require.NoError(t, err)
	_, err = part.Write(content)
	require.NoError(t, err)
	require.NoError(t, w.Close())

	req := httptest.NewRequest("POST", "/", &body)
	req.Header.Set("Content-Type", w.FormDataContentType())
	require.NoError(t, req.ParseMultipartForm(1<<20))

	return req.MultipartForm.File[field][0]
}
