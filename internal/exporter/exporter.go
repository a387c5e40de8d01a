// Package exporter dumps every collection of a database into JSON array files.
package exporter

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/hibare/mongostash/internal/config"
	"github.com/hibare/mongostash/internal/constants"
	"github.com/hibare/mongostash/internal/source"
)

var (
	// ErrConnect is returned when the source cannot be reached. No file is touched.
	ErrConnect = errors.New("error connecting to database")

	// ErrOutputDir is returned when the output directory cannot be created.
	ErrOutputDir = errors.New("error creating output directory")

	// ErrListCollections is returned when collections cannot be enumerated.
	ErrListCollections = errors.New("error listing collections")

	// ErrCollection is returned when a collection fails mid export. Remaining collections are skipped.
	ErrCollection = errors.New("error during backup")
)

// ExporterIface defines the interface for exporter operations.
// revive:disable-next-line exported
type ExporterIface interface {
	Export(ctx context.Context) (*ExportResult, error)
}

// CollectionResult describes one exported collection.
type CollectionResult struct {
	Name    string
	Total   int64
	Written int64
	File    string
}

// ExportResult holds information about the export operation.
type ExportResult struct {
	OutputDir         string
	TotalCollections  int
	ExportedDocuments int64
	Collections       []CollectionResult
}

// Exporter writes one <collection>.json file per collection of the source database.
type Exporter struct {
	cfg    *config.Config
	source source.SourceIface
}

// BackupFile returns the path of the backup file for a collection.
func BackupFile(outputDir, collection string) string {
	return filepath.Join(outputDir, collection+constants.BackupFileExt)
}

// Export connects to the source and exports every collection in driver order.
// On ErrCollection the returned result still lists the collections completed so far.
func (e *Exporter) Export(ctx context.Context) (*ExportResult, error) {
	if err := e.source.Connect(ctx); err != nil {
		slog.ErrorContext(ctx, "Error connecting to database", "source", e.source.Name(), "error", err)
		return nil, fmt.Errorf("%w: %w", ErrConnect, err)
	}
	defer func() {
		if err := e.source.Disconnect(ctx); err != nil {
			slog.WarnContext(ctx, "Error disconnecting from database", "error", err)
		}
	}()

	outputDir := e.cfg.Backup.OutputDir
	if err := os.MkdirAll(outputDir, 0750); err != nil {
		slog.ErrorContext(ctx, "Error creating output directory", "output_dir", outputDir, "error", err)
		return nil, fmt.Errorf("%w: %w", ErrOutputDir, err)
	}

	collections, err := e.source.ListCollectionNames(ctx)
	if err != nil {
		slog.ErrorContext(ctx, "Error during backup", "error", err)
		return nil, fmt.Errorf("%w: %w", ErrListCollections, err)
	}
	slog.InfoContext(ctx, "Found collections to backup", "count", len(collections))

	resp := &ExportResult{
		OutputDir:        outputDir,
		TotalCollections: len(collections),
		Collections:      make([]CollectionResult, 0, len(collections)),
	}

	for _, name := range collections {
		res, cErr := e.exportCollection(ctx, name)
		if cErr != nil {
			slog.ErrorContext(ctx, "Error during backup", "collection", name, "error", cErr)
			return resp, fmt.Errorf("%w: collection %s: %w", ErrCollection, name, cErr)
		}
		resp.Collections = append(resp.Collections, *res)
		resp.ExportedDocuments += res.Written
		slog.InfoContext(ctx, "Backup complete for collection", "collection", name, "documents", res.Written)
	}

	slog.InfoContext(ctx, "Backup complete", "location", outputDir, "collections", len(resp.Collections))
	return resp, nil
}

func (e *Exporter) exportCollection(ctx context.Context, name string) (res *CollectionResult, err error) {
	total, err := e.source.CountDocuments(ctx, name)
	if err != nil {
		return nil, fmt.Errorf("count documents: %w", err)
	}
	slog.InfoContext(ctx, "Backing up collection", "collection", name, "documents", total)

	path := BackupFile(e.cfg.Backup.OutputDir, name)
	f, err := os.Create(path)
	if err != nil {
		return nil, err
	}
	// partially written files are left behind on error
	defer func() {
		if cErr := f.Close(); cErr != nil && err == nil {
			err = cErr
		}
	}()

	w := bufio.NewWriter(f)
	if _, err := w.WriteString("["); err != nil {
		return nil, err
	}

	pageSize := e.cfg.Backup.PageSize
	var written int64
	for skip := int64(0); skip < total; skip += pageSize {
		docs, err := e.source.FindPage(ctx, name, skip, pageSize)
		if err != nil {
			return nil, fmt.Errorf("find documents at offset %d: %w", skip, err)
		}
		slog.DebugContext(ctx, "Fetched page", "collection", name, "skip", skip, "documents", len(docs))

		for _, doc := range docs {
			data, err := EncodeDocument(doc)
			if err != nil {
				return nil, fmt.Errorf("encode document: %w", err)
			}
			if written > 0 {
				if err := w.WriteByte(','); err != nil {
					return nil, err
				}
			}
			if _, err := w.Write(data); err != nil {
				return nil, err
			}
			written++
		}
	}

	if _, err := w.WriteString("]"); err != nil {
		return nil, err
	}
	if err := w.Flush(); err != nil {
		return nil, err
	}

	return &CollectionResult{
		Name:    name,
		Total:   total,
		Written: written,
		File:    path,
	}, nil
}

// NewExporter creates a new Exporter reading from the given source.
func NewExporter(cfg *config.Config, src source.SourceIface) *Exporter {
	return &Exporter{
		cfg:    cfg,
		source: src,
	}
}
