// Package minio provides a storage backend for S3 compatible servers through minio-go.
package minio

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"net/url"
	"os"
	"slices"
	"strings"

	"github.com/hibare/mongostash/internal/config"
	"github.com/hibare/mongostash/internal/storage"
	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
)

const defaultEndpoint = "s3.amazonaws.com"

var credentialErrorCodes = []string{
	"InvalidAccessKeyId",
	"SignatureDoesNotMatch",
	"ExpiredToken",
	"InvalidToken",
}

// Minio implements the StorageIface on a minio client.
type Minio struct {
	client *minio.Client
	cfg    *config.Config
}

// parseEndpoint splits an endpoint such as http://localhost:9000 into host and TLS flag.
func parseEndpoint(endpoint string) (string, bool, error) {
	if endpoint == "" {
		return defaultEndpoint, true, nil
	}
	if !strings.Contains(endpoint, "://") {
		return endpoint, true, nil
	}

	u, err := url.Parse(endpoint)
	if err != nil {
		return "", false, fmt.Errorf("cannot parse endpoint: %w", err)
	}
	return u.Host, u.Scheme != "http", nil
}

// Init creates the minio client. No request is sent.
func (m *Minio) Init(_ context.Context) error {
	host, secure, err := parseEndpoint(m.cfg.Storage.Endpoint)
	if err != nil {
		return err
	}

	client, err := minio.New(host, &minio.Options{
		Creds:  credentials.NewStaticV4(m.cfg.Storage.AccessKey, m.cfg.Storage.SecretKey, ""),
		Secure: secure,
		Region: m.cfg.Storage.Region,
	})
	if err != nil {
		return fmt.Errorf("failed to create object storage instance: %w", err)
	}

	m.client = client
	return nil
}

// Name returns the name of the storage backend.
func (m *Minio) Name() string {
	return fmt.Sprintf("minio (%s)", m.cfg.Storage.Bucket)
}

// Upload uploads a local file under key.
func (m *Minio) Upload(ctx context.Context, localPath, key string) (string, error) {
	if _, err := os.Stat(localPath); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return "", fmt.Errorf("%w: %s", storage.ErrNotFound, localPath)
		}
		return "", err
	}

	if m.cfg.Storage.AccessKey == "" || m.cfg.Storage.SecretKey == "" {
		return "", storage.ErrCredentials
	}

	if m.client == nil {
		return "", errors.New("minio: client not initialised")
	}

	slog.DebugContext(ctx, "Uploading file to object storage", "file", localPath, "bucket", m.cfg.Storage.Bucket, "key", key)
	_, err := m.client.FPutObject(ctx, m.cfg.Storage.Bucket, key, localPath, minio.PutObjectOptions{
		ContentType: "application/json",
	})
	if err != nil {
		return "", classifyError(err)
	}

	return fmt.Sprintf("s3://%s/%s", m.cfg.Storage.Bucket, key), nil
}

func classifyError(err error) error {
	if errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("%w: %w", storage.ErrNotFound, err)
	}

	resp := minio.ToErrorResponse(err)
	if slices.Contains(credentialErrorCodes, resp.Code) {
		return fmt.Errorf("%w: %s: %s", storage.ErrCredentials, resp.Code, resp.Message)
	}
	return fmt.Errorf("failed to write backup to object storage: %w", err)
}

// NewMinioStorage creates a new Minio storage with the provided configuration.
func NewMinioStorage(cfg *config.Config) *Minio {
	return &Minio{cfg: cfg}
}
