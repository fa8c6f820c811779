package storage

import (
	"context"
	"fmt"
	"io"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"time"
)

// LocalBackend stores photos on the local filesystem and serves them through
// the API server's own upload/download routes.
type LocalBackend struct {
	baseURL   string
	photosDir string
}

func NewLocalBackend(baseURL, uploadDir string) (*LocalBackend, error) {
	photosDir := filepath.Join(uploadDir, "photos")
	if err := os.MkdirAll(photosDir, 0o755); err != nil {
		return nil, fmt.Errorf("create photos directory: %w", err)
	}
	return &LocalBackend{baseURL: baseURL, photosDir: photosDir}, nil
}

func (b *LocalBackend) UploadURL(ctx context.Context, key, contentType string, expiresIn time.Duration) (string, error) {
	return fmt.Sprintf("%s/api/photos/upload?key=%s", b.baseURL, url.QueryEscape(key)), nil
}

func (b *LocalBackend) DownloadURL(ctx context.Context, key string, expiresIn time.Duration) (string, error) {
	return fmt.Sprintf("%s/api/photos/download?key=%s", b.baseURL, url.QueryEscape(key)), nil
}

func (b *LocalBackend) Exists(ctx context.Context, key string) (bool, error) {
	path, err := b.path(key)
	if err != nil {
		return false, err
	}
	if _, err := os.Stat(path); err != nil {
		if os.IsNotExist(err) {
			return false, nil
		}
		return false, err
	}
	return true, nil
}

func (b *LocalBackend) Delete(ctx context.Context, key string) error {
	path, err := b.path(key)
	if err != nil {
		return err
	}
	if err := os.Remove(path); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("delete photo: %w", err)
	}
	return nil
}

func (b *LocalBackend) Save(key string, r io.Reader) error {
	path, err := b.path(key)
	if err != nil {
		return err
	}
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create photo file: %w", err)
	}
	defer f.Close()
	if _, err := io.Copy(f, r); err != nil {
		return fmt.Errorf("write photo file: %w", err)
	}
	return nil
}

func (b *LocalBackend) Open(key string) (io.ReadCloser, error) {
	path, err := b.path(key)
	if err != nil {
		return nil, err
	}
	return os.Open(path)
}

// path rejects keys that would escape the photos directory.
func (b *LocalBackend) path(key string) (string, error) {
	if key == "" || strings.Contains(key, "/") || strings.Contains(key, "\\") || strings.Contains(key, "..") {
		return "", fmt.Errorf("invalid storage key %q", key)
	}
	return filepath.Join(b.photosDir, key), nil
}
