// Package storage defines the interface for various storage backends.
package storage

import (
	"context"
	"errors"
)

var (
	// ErrNotFound is returned when the local file vanished before it could be uploaded.
	ErrNotFound = errors.New("file not found")

	// ErrCredentials is returned when credentials are missing or rejected by the backend.
	ErrCredentials = errors.New("credentials not available")
)

// StorageIface defines a generic storage backend used to upload backups.
// revive:disable-next-line exported
type StorageIface interface {
	// Init prepares the storage client. It performs no network call.
	Init(context.Context) error

	// Upload uploads a local file under key and returns the remote location.
	Upload(ctx context.Context, localPath, key string) (string, error)

	// Name returns the name of the storage backend (e.g., "s3", "gcs")
	Name() string
}
