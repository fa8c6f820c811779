package storage

import (
	"context"
	"io"
	"time"
)

// Backend abstracts where photo bytes live. The local backend serves
// development and single-host deployments; a cloud bucket implementation can
// slot in behind the same contract.
type Backend interface {
	// UploadURL returns a URL the client can PUT the file to.
	UploadURL(ctx context.Context, key, contentType string, expiresIn time.Duration) (string, error)

	// DownloadURL returns a URL the file can be fetched from.
	DownloadURL(ctx context.Context, key string, expiresIn time.Duration) (string, error)

	// Exists reports whether the file has been uploaded.
	Exists(ctx context.Context, key string) (bool, error)

	Delete(ctx context.Context, key string) error

	// Save and Open back the HTTP upload/download handlers for the local
	// backend.
	Save(key string, r io.Reader) error
	Open(key string) (io.ReadCloser, error)
}
