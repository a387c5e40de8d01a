package cmd

import (
	"context"
	"fmt"
	"io"
	"log/slog"

	"github.com/hibare/mongostash/internal/config"
	"github.com/hibare/mongostash/internal/exporter"
	"github.com/hibare/mongostash/internal/notifiers"
	"github.com/hibare/mongostash/internal/orchestrator"
	"github.com/hibare/mongostash/internal/source/mongo"
	"github.com/hibare/mongostash/internal/storage"
	"github.com/hibare/mongostash/internal/storage/gocloud"
	"github.com/hibare/mongostash/internal/storage/minio"
	"github.com/hibare/mongostash/internal/storage/s3"
	"github.com/hibare/mongostash/internal/uploader"
)

func newStore(cfg *config.Config) (storage.StorageIface, error) {
	switch cfg.Storage.Provider {
	case config.ProviderS3:
		return s3.NewS3Storage(cfg), nil
	case config.ProviderMinio:
		return minio.NewMinioStorage(cfg), nil
	case config.ProviderGoCloud:
		return gocloud.NewGoCloudStorage(cfg), nil
	default:
		return nil, fmt.Errorf("%w %q", config.ErrInvalidProvider, cfg.Storage.Provider)
	}
}

func doRun(ctx context.Context, cfg *config.Config) (*orchestrator.Report, error) {
	notify := notifiers.NewNotifier(cfg)
	if err := notify.InitStore(); err != nil {
		return nil, err
	}

	exp := exporter.NewExporter(cfg, mongo.NewMongoSource(cfg))

	var upl uploader.UploaderIface
	if cfg.WantsUpload() {
		store, err := newStore(cfg)
		if err != nil {
			return nil, err
		}
		if c, ok := store.(io.Closer); ok {
			defer func() {
				if err := c.Close(); err != nil {
					slog.WarnContext(ctx, "Failed to close storage", "storage", store.Name(), "error", err)
				}
			}()
		}
		upl = uploader.NewUploader(cfg, store)
	}

	return orchestrator.NewOrchestrator(cfg, exp, upl, notify).Run(ctx)
}
