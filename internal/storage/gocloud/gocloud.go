// Package gocloud provides a storage backend for any gocloud.dev blob URL
// (s3://, gs://, azblob://, file://).
package gocloud

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"log/slog"
	"os"

	"github.com/hibare/mongostash/internal/config"
	"github.com/hibare/mongostash/internal/storage"
	"gocloud.dev/blob"
	"gocloud.dev/gcerrors"

	_ "gocloud.dev/blob/azureblob"
	_ "gocloud.dev/blob/fileblob"
	_ "gocloud.dev/blob/gcsblob"
	_ "gocloud.dev/blob/s3blob"
)

// GoCloud uploads into a bucket opened from a URL.
type GoCloud struct {
	bucket *blob.Bucket
	cfg    *config.Config
}

// Init opens the bucket described by the configured bucket URL.
func (g *GoCloud) Init(ctx context.Context) error {
	bucket, err := blob.OpenBucket(ctx, g.cfg.Storage.Bucket)
	if err != nil {
		return fmt.Errorf("open bucket %s: %w", g.cfg.Storage.Bucket, err)
	}
	g.bucket = bucket
	return nil
}

// Name returns the name of the storage backend.
func (g *GoCloud) Name() string {
	return fmt.Sprintf("gocloud (%s)", g.cfg.Storage.Bucket)
}

// Upload copies a local file into the bucket under key.
func (g *GoCloud) Upload(ctx context.Context, localPath, key string) (string, error) {
	if g.bucket == nil {
		return "", errors.New("gocloud: bucket not opened")
	}

	f, err := os.Open(localPath)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return "", fmt.Errorf("%w: %s", storage.ErrNotFound, localPath)
		}
		return "", err
	}
	defer f.Close()

	slog.DebugContext(ctx, "Uploading file to bucket", "file", localPath, "bucket", g.cfg.Storage.Bucket, "key", key)
	if err := g.write(ctx, key, f); err != nil {
		return "", classifyError(err)
	}

	return fmt.Sprintf("%s/%s", g.cfg.Storage.Bucket, key), nil
}

// write streams r into key. A failed copy cancels the writer's context so
// Close discards the object instead of committing a truncated one.
func (g *GoCloud) write(ctx context.Context, key string, r io.Reader) error {
	wctx, cancel := context.WithCancel(ctx)
	defer cancel()

	w, err := g.bucket.NewWriter(wctx, key, &blob.WriterOptions{ContentType: "application/json"})
	if err != nil {
		return err
	}

	if _, err := io.Copy(w, r); err != nil {
		cancel()
		_ = w.Close()
		return err
	}

	return w.Close()
}

// Close releases the bucket.
func (g *GoCloud) Close() error {
	if g.bucket == nil {
		return nil
	}
	return g.bucket.Close()
}

func classifyError(err error) error {
	if gcerrors.Code(err) == gcerrors.PermissionDenied {
		return fmt.Errorf("%w: %w", storage.ErrCredentials, err)
	}
	return fmt.Errorf("blob upload failed: %w", err)
}

// NewGoCloudStorage creates a new GoCloud storage with the provided configuration.
func NewGoCloudStorage(cfg *config.Config) *GoCloud {
	return &GoCloud{cfg: cfg}
}
