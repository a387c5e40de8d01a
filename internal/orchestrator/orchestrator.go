// Package orchestrator runs the export and upload stages in sequence according to the configured action.
package orchestrator

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/hibare/mongostash/internal/config"
	"github.com/hibare/mongostash/internal/exporter"
	"github.com/hibare/mongostash/internal/notifiers"
	"github.com/hibare/mongostash/internal/uploader"
)

// Report collects the outcome of every stage that ran.
type Report struct {
	Action    string
	Export    *exporter.ExportResult
	ExportErr error
	Upload    *uploader.UploadResult
	UploadErr error
}

// Err joins the stage errors; nil when every stage that ran succeeded.
func (r *Report) Err() error {
	return errors.Join(r.ExportErr, r.UploadErr)
}

// Orchestrator dispatches the pipeline stages.
type Orchestrator struct {
	cfg      *config.Config
	exporter exporter.ExporterIface
	uploader uploader.UploaderIface
	notify   notifiers.NotifierStoreIface
}

// Run validates the configuration, then exports and/or uploads. Upload always runs
// after export has returned, whether or not the export succeeded.
func (o *Orchestrator) Run(ctx context.Context) (*Report, error) {
	if err := o.cfg.Validate(); err != nil {
		return nil, err
	}

	report := &Report{Action: o.cfg.Backup.Action}

	if o.cfg.WantsBackup() {
		slog.InfoContext(ctx, "Starting MongoDB backup", "database", o.cfg.Mongo.Database, "output_dir", o.cfg.Backup.OutputDir)
		report.Export, report.ExportErr = o.exporter.Export(ctx)
	}

	if o.cfg.WantsUpload() {
		slog.InfoContext(ctx, "Uploading backup to storage", "bucket", o.cfg.Storage.Bucket, "provider", o.cfg.Storage.Provider)
		report.Upload, report.UploadErr = o.uploader.Upload(ctx)
	}

	o.notifyResult(ctx, report)

	return report, report.Err()
}

func (o *Orchestrator) notifyResult(ctx context.Context, report *Report) {
	if o.notify == nil {
		return
	}

	var nErr error
	if err := report.Err(); err != nil {
		nErr = o.notify.NotifyBackupFailure(ctx, err)
	} else {
		collections := 0
		if report.Export != nil {
			collections = len(report.Export.Collections)
		}
		nErr = o.notify.NotifyBackupSuccess(ctx, collections, o.location())
	}

	if nErr != nil && !errors.Is(nErr, notifiers.ErrNotifiersDisabled) {
		slog.ErrorContext(ctx, "Failed to send notification", "error", nErr)
	}
}

func (o *Orchestrator) location() string {
	if o.cfg.WantsUpload() {
		return fmt.Sprintf("%s/%s", o.cfg.Storage.Bucket, uploader.ObjectKey(o.cfg.Backup.OutputDir, ""))
	}
	return o.cfg.Backup.OutputDir
}

// NewOrchestrator creates a new Orchestrator. notify may be nil.
func NewOrchestrator(cfg *config.Config, exp exporter.ExporterIface, upl uploader.UploaderIface, notify notifiers.NotifierStoreIface) *Orchestrator {
	return &Orchestrator{
		cfg:      cfg,
		exporter: exp,
		uploader: upl,
		notify:   notify,
	}
}
