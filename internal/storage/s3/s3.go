// Package s3 provides an implementation of storage interface for S3-compatible backends.
package s3

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"slices"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/feature/s3/manager"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/smithy-go"
	"github.com/hibare/mongostash/internal/config"
	"github.com/hibare/mongostash/internal/storage"
)

// credentialErrorCodes are API error codes meaning the key pair itself was rejected.
var credentialErrorCodes = []string{
	"InvalidAccessKeyId",
	"SignatureDoesNotMatch",
	"ExpiredToken",
	"InvalidToken",
	"InvalidClientTokenId",
}

// S3 implements the StorageIface for S3-compatible storage backends.
// Files above the part size are sent as multipart uploads.
type S3 struct {
	client   manager.UploadAPIClient
	cfg      *config.Config
	partSize int64
}

// Init prepares the S3 client from static credentials. No request is sent.
func (s *S3) Init(ctx context.Context) error {
	creds := credentials.NewStaticCredentialsProvider(s.cfg.Storage.AccessKey, s.cfg.Storage.SecretKey, "")

	awsCfg, err := awsconfig.LoadDefaultConfig(
		ctx,
		awsconfig.WithRegion(s.cfg.Storage.Region),
		awsconfig.WithCredentialsProvider(creds),
	)
	if err != nil {
		return fmt.Errorf("load aws config: %w", err)
	}

	endpoint := s.cfg.Storage.Endpoint
	s.client = s3.NewFromConfig(awsCfg, func(o *s3.Options) {
		if endpoint != "" {
			o.BaseEndpoint = aws.String(endpoint)
			o.UsePathStyle = true
		}
	})

	return nil
}

// Name returns the name of the storage backend (e.g., "s3").
func (s *S3) Name() string {
	return fmt.Sprintf("s3 (%s)", s.cfg.Storage.Bucket)
}

// Upload uploads a local file to S3 under key and returns the s3:// location.
func (s *S3) Upload(ctx context.Context, localPath, key string) (string, error) {
	f, err := os.Open(localPath)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return "", fmt.Errorf("%w: %s", storage.ErrNotFound, localPath)
		}
		return "", err
	}
	defer f.Close()

	if s.cfg.Storage.AccessKey == "" || s.cfg.Storage.SecretKey == "" {
		return "", storage.ErrCredentials
	}

	if s.client == nil {
		return "", errors.New("s3: client not initialised")
	}

	slog.DebugContext(ctx, "Uploading file to S3", "file", localPath, "bucket", s.cfg.Storage.Bucket, "key", key)
	uploader := manager.NewUploader(s.client, func(u *manager.Uploader) {
		u.PartSize = s.partSize
	})
	_, err = uploader.Upload(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(s.cfg.Storage.Bucket),
		Key:         aws.String(key),
		Body:        f,
		ContentType: aws.String("application/json"),
	})
	if err != nil {
		return "", classifyError(err)
	}

	return fmt.Sprintf("s3://%s/%s", s.cfg.Storage.Bucket, key), nil
}

func classifyError(err error) error {
	var apiErr smithy.APIError
	if errors.As(err, &apiErr) {
		if slices.Contains(credentialErrorCodes, apiErr.ErrorCode()) {
			return fmt.Errorf("%w: %s: %s", storage.ErrCredentials, apiErr.ErrorCode(), apiErr.ErrorMessage())
		}
		return fmt.Errorf("s3 upload failed: %s: %s", apiErr.ErrorCode(), apiErr.ErrorMessage())
	}
	return fmt.Errorf("s3 upload failed: %w", err)
}

// NewS3Storage creates a new S3Storage instance with the provided configuration.
func NewS3Storage(cfg *config.Config) *S3 {
	return &S3{
		cfg:      cfg,
		partSize: manager.DefaultUploadPartSize,
	}
}
