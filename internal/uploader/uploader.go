// Package uploader walks the backup directory and uploads every file to a storage backend.
package uploader

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/hibare/mongostash/internal/config"
	"github.com/hibare/mongostash/internal/storage"
)

var (
	// ErrFolderNotFound is returned when the backup folder does not exist. Nothing is uploaded.
	ErrFolderNotFound = errors.New("backup folder does not exist")

	// ErrUpload is returned when an upload fails for a reason other than a missing
	// file or bad credentials. Files not yet attempted are skipped.
	ErrUpload = errors.New("error during upload")
)

// UploaderIface defines the interface for uploader operations.
// revive:disable-next-line exported
type UploaderIface interface {
	Upload(ctx context.Context) (*UploadResult, error)
}

// UploadResult holds information about the upload operation.
type UploadResult struct {
	Folder             string
	Uploaded           []string
	NotFound           []string
	CredentialFailures []string
}

// Uploader uploads the contents of the backup folder.
type Uploader struct {
	store  storage.StorageIface
	cfg    *config.Config
	folder string
}

// ObjectKey returns the object key for a file found in folder: "<folder>/<file name>".
// Files with the same name in different subdirectories map to the same key.
func ObjectKey(folder, fileName string) string {
	return strings.TrimSuffix(filepath.ToSlash(folder), "/") + "/" + fileName
}

// Upload walks the folder depth first and uploads every file. A missing file or a
// credentials failure is reported and the walk goes on; any other error ends it.
func (u *Uploader) Upload(ctx context.Context) (*UploadResult, error) {
	info, err := os.Stat(u.folder)
	if err != nil || !info.IsDir() {
		slog.ErrorContext(ctx, "Backup folder does not exist", "folder", u.folder)
		return nil, fmt.Errorf("%w: %s", ErrFolderNotFound, u.folder)
	}

	if err := u.store.Init(ctx); err != nil {
		slog.ErrorContext(ctx, "Error during upload", "error", err)
		return nil, fmt.Errorf("%w: %w", ErrUpload, err)
	}

	resp := &UploadResult{Folder: u.folder}
	bucket := u.cfg.Storage.Bucket

	walkErr := filepath.WalkDir(u.folder, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			if path == u.folder {
				return err
			}
			slog.WarnContext(ctx, "Skipping unreadable path", "path", path, "error", err)
			return nil
		}
		if d.IsDir() {
			return nil
		}

		key := ObjectKey(u.folder, d.Name())
		location, uErr := u.store.Upload(ctx, path, key)
		switch {
		case uErr == nil:
			slog.InfoContext(ctx, "Successfully uploaded file", "file", d.Name(), "bucket", bucket, "key", key, "location", location)
			resp.Uploaded = append(resp.Uploaded, key)
		case errors.Is(uErr, storage.ErrNotFound):
			slog.WarnContext(ctx, "The file was not found", "file", path)
			resp.NotFound = append(resp.NotFound, path)
		case errors.Is(uErr, storage.ErrCredentials):
			slog.WarnContext(ctx, "Credentials not available", "file", path, "error", uErr)
			resp.CredentialFailures = append(resp.CredentialFailures, path)
		default:
			return fmt.Errorf("upload %s: %w", path, uErr)
		}
		return nil
	})
	if walkErr != nil {
		slog.ErrorContext(ctx, "Error during upload", "error", walkErr)
		return resp, fmt.Errorf("%w: %w", ErrUpload, walkErr)
	}

	slog.InfoContext(ctx, "Upload complete", "storage", u.store.Name(), "uploaded", len(resp.Uploaded),
		"not_found", len(resp.NotFound), "credential_failures", len(resp.CredentialFailures))
	return resp, nil
}

// NewUploader creates a new Uploader for the configured output directory.
func NewUploader(cfg *config.Config, store storage.StorageIface) *Uploader {
	return &Uploader{
		store:  store,
		cfg:    cfg,
		folder: cfg.Backup.OutputDir,
	}
}
