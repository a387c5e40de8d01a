package exporter

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/hibare/mongostash/internal/config"
	"github.com/hibare/mongostash/internal/source"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson"
)

func testConfig(t *testing.T, pageSize int64) *config.Config {
	t.Helper()
	return &config.Config{
		Backup: config.BackupConfig{
			OutputDir: filepath.Join(t.TempDir(), "mongodb_backup"),
			PageSize:  pageSize,
		},
	}
}

func rawDocs(t *testing.T, names ...string) []bson.Raw {
	t.Helper()
	docs := make([]bson.Raw, 0, len(names))
	for i, name := range names {
		b, err := bson.Marshal(bson.D{{Key: "_id", Value: int32(i + 1)}, {Key: "name", Value: name}})
		require.NoError(t, err)
		docs = append(docs, b)
	}
	return docs
}

func readBackup(t *testing.T, path string) []bson.D {
	t.Helper()
	f, err := os.Open(path)
	require.NoError(t, err)
	defer f.Close()

	docs, err := DecodeBackup(f)
	require.NoError(t, err)
	return docs
}

func expectSession(m *source.MockSourceIface) {
	m.On("Connect", mock.Anything).Return(nil)
	m.On("Disconnect", mock.Anything).Return(nil)
}

func TestNewExporter(t *testing.T) {
	cfg := testConfig(t, 1000)
	mockSource := source.NewMockSourceIface(t)

	exporter := NewExporter(cfg, mockSource)

	assert.NotNil(t, exporter)
	assert.Equal(t, cfg, exporter.cfg)
	assert.Equal(t, mockSource, exporter.source)
}

func TestExporter_Export_UsersAndOrders(t *testing.T) {
	cfg := testConfig(t, 1000)
	mockSource := source.NewMockSourceIface(t)
	expectSession(mockSource)

	mockSource.On("ListCollectionNames", mock.Anything).Return([]string{"users", "orders"}, nil)
	mockSource.On("CountDocuments", mock.Anything, "users").Return(int64(2), nil)
	mockSource.On("FindPage", mock.Anything, "users", int64(0), int64(1000)).Return(rawDocs(t, "ada", "linus"), nil)
	mockSource.On("CountDocuments", mock.Anything, "orders").Return(int64(0), nil)

	resp, err := NewExporter(cfg, mockSource).Export(context.Background())

	require.NoError(t, err)
	require.NotNil(t, resp)
	assert.Equal(t, 2, resp.TotalCollections)
	assert.Equal(t, int64(2), resp.ExportedDocuments)
	require.Len(t, resp.Collections, 2)
	assert.Equal(t, "users", resp.Collections[0].Name)
	assert.Equal(t, "orders", resp.Collections[1].Name)

	users := readBackup(t, BackupFile(cfg.Backup.OutputDir, "users"))
	require.Len(t, users, 2)
	assert.Equal(t, "ada", users[0].Map()["name"])
	assert.Equal(t, "linus", users[1].Map()["name"])

	orders, err := os.ReadFile(BackupFile(cfg.Backup.OutputDir, "orders"))
	require.NoError(t, err)
	assert.Equal(t, "[]", string(orders))
}

func TestExporter_Export_FileLayout(t *testing.T) {
	cfg := testConfig(t, 1000)
	mockSource := source.NewMockSourceIface(t)
	expectSession(mockSource)

	mockSource.On("ListCollectionNames", mock.Anything).Return([]string{"users"}, nil)
	mockSource.On("CountDocuments", mock.Anything, "users").Return(int64(2), nil)
	mockSource.On("FindPage", mock.Anything, "users", int64(0), int64(1000)).Return(rawDocs(t, "a", "b"), nil)

	_, err := NewExporter(cfg, mockSource).Export(context.Background())
	require.NoError(t, err)

	data, err := os.ReadFile(filepath.Join(cfg.Backup.OutputDir, "users.json"))
	require.NoError(t, err)
	assert.Equal(t, `[{"_id":{"$numberInt":"1"},"name":"a"},{"_id":{"$numberInt":"2"},"name":"b"}]`, string(data))
}

func TestExporter_Export_Paginates(t *testing.T) {
	cfg := testConfig(t, 2)
	mockSource := source.NewMockSourceIface(t)
	expectSession(mockSource)

	mockSource.On("ListCollectionNames", mock.Anything).Return([]string{"events"}, nil)
	mockSource.On("CountDocuments", mock.Anything, "events").Return(int64(5), nil)
	mockSource.On("FindPage", mock.Anything, "events", int64(0), int64(2)).Return(rawDocs(t, "e1", "e2"), nil).Once()
	mockSource.On("FindPage", mock.Anything, "events", int64(2), int64(2)).Return(rawDocs(t, "e3", "e4"), nil).Once()
	mockSource.On("FindPage", mock.Anything, "events", int64(4), int64(2)).Return(rawDocs(t, "e5"), nil).Once()

	resp, err := NewExporter(cfg, mockSource).Export(context.Background())

	require.NoError(t, err)
	assert.Equal(t, int64(5), resp.Collections[0].Total)
	assert.Equal(t, int64(5), resp.Collections[0].Written)

	docs := readBackup(t, BackupFile(cfg.Backup.OutputDir, "events"))
	require.Len(t, docs, 5)
	assert.Equal(t, "e5", docs[4].Map()["name"])
}

func TestExporter_Export_OverwritesExistingFile(t *testing.T) {
	cfg := testConfig(t, 1000)
	require.NoError(t, os.MkdirAll(cfg.Backup.OutputDir, 0750))
	stale := BackupFile(cfg.Backup.OutputDir, "users")
	require.NoError(t, os.WriteFile(stale, []byte(`[{"stale":true},{"stale":true},{"stale":true}]`), 0600))

	mockSource := source.NewMockSourceIface(t)
	expectSession(mockSource)
	mockSource.On("ListCollectionNames", mock.Anything).Return([]string{"users"}, nil)
	mockSource.On("CountDocuments", mock.Anything, "users").Return(int64(1), nil)
	mockSource.On("FindPage", mock.Anything, "users", int64(0), int64(1000)).Return(rawDocs(t, "fresh"), nil)

	_, err := NewExporter(cfg, mockSource).Export(context.Background())
	require.NoError(t, err)

	docs := readBackup(t, stale)
	require.Len(t, docs, 1)
	assert.Equal(t, "fresh", docs[0].Map()["name"])
}

func TestExporter_Export_Idempotent(t *testing.T) {
	cfg := testConfig(t, 1000)
	mockSource := source.NewMockSourceIface(t)
	expectSession(mockSource)
	mockSource.On("ListCollectionNames", mock.Anything).Return([]string{"users"}, nil)
	mockSource.On("CountDocuments", mock.Anything, "users").Return(int64(2), nil)
	mockSource.On("FindPage", mock.Anything, "users", int64(0), int64(1000)).Return(rawDocs(t, "a", "b"), nil)

	exporter := NewExporter(cfg, mockSource)
	path := BackupFile(cfg.Backup.OutputDir, "users")

	_, err := exporter.Export(context.Background())
	require.NoError(t, err)
	first, err := os.ReadFile(path)
	require.NoError(t, err)

	_, err = exporter.Export(context.Background())
	require.NoError(t, err)
	second, err := os.ReadFile(path)
	require.NoError(t, err)

	assert.Equal(t, first, second)
}

func TestExporter_Export_ConnectError(t *testing.T) {
	cfg := testConfig(t, 1000)
	mockSource := source.NewMockSourceIface(t)
	mockSource.On("Connect", mock.Anything).Return(errors.New("connection refused"))
	mockSource.On("Name").Return("mongo (test)")

	resp, err := NewExporter(cfg, mockSource).Export(context.Background())

	require.ErrorIs(t, err, ErrConnect)
	require.Nil(t, resp)
	assert.Contains(t, err.Error(), "connection refused")

	_, statErr := os.Stat(cfg.Backup.OutputDir)
	assert.True(t, os.IsNotExist(statErr), "output directory must not be created")
}

func TestExporter_Export_OutputDirError(t *testing.T) {
	var logs bytes.Buffer
	prev := slog.Default()
	slog.SetDefault(slog.New(slog.NewTextHandler(&logs, nil)))
	t.Cleanup(func() { slog.SetDefault(prev) })

	blocker := filepath.Join(t.TempDir(), "blocker")
	require.NoError(t, os.WriteFile(blocker, []byte("x"), 0600))
	cfg := testConfig(t, 1000)
	cfg.Backup.OutputDir = filepath.Join(blocker, "mongodb_backup")

	mockSource := source.NewMockSourceIface(t)
	expectSession(mockSource)

	resp, err := NewExporter(cfg, mockSource).Export(context.Background())

	require.ErrorIs(t, err, ErrOutputDir)
	require.Nil(t, resp)
	assert.Contains(t, logs.String(), "Error creating output directory")
	assert.Contains(t, logs.String(), cfg.Backup.OutputDir)
	mockSource.AssertNotCalled(t, "ListCollectionNames", mock.Anything)
}

func TestExporter_Export_ListCollectionsError(t *testing.T) {
	cfg := testConfig(t, 1000)
	mockSource := source.NewMockSourceIface(t)
	expectSession(mockSource)
	mockSource.On("ListCollectionNames", mock.Anything).Return(nil, errors.New("unauthorized"))

	resp, err := NewExporter(cfg, mockSource).Export(context.Background())

	require.ErrorIs(t, err, ErrListCollections)
	require.Nil(t, resp)
}

func TestExporter_Export_CollectionErrorAbortsRemaining(t *testing.T) {
	cfg := testConfig(t, 1000)
	mockSource := source.NewMockSourceIface(t)
	expectSession(mockSource)

	mockSource.On("ListCollectionNames", mock.Anything).Return([]string{"users", "orders", "carts"}, nil)
	mockSource.On("CountDocuments", mock.Anything, "users").Return(int64(1), nil)
	mockSource.On("FindPage", mock.Anything, "users", int64(0), int64(1000)).Return(rawDocs(t, "a"), nil)
	mockSource.On("CountDocuments", mock.Anything, "orders").Return(int64(3), nil)
	mockSource.On("FindPage", mock.Anything, "orders", int64(0), int64(1000)).Return(nil, errors.New("cursor killed"))

	resp, err := NewExporter(cfg, mockSource).Export(context.Background())

	require.ErrorIs(t, err, ErrCollection)
	assert.Contains(t, err.Error(), "orders")
	require.NotNil(t, resp)
	require.Len(t, resp.Collections, 1)
	assert.Equal(t, "users", resp.Collections[0].Name)

	// carts was never attempted and orders is left incomplete
	_, statErr := os.Stat(BackupFile(cfg.Backup.OutputDir, "carts"))
	assert.True(t, os.IsNotExist(statErr))
	_, statErr = os.Stat(BackupFile(cfg.Backup.OutputDir, "orders"))
	require.NoError(t, statErr)
	mockSource.AssertNotCalled(t, "CountDocuments", mock.Anything, "carts")
}

func TestExporter_Export_CountError(t *testing.T) {
	cfg := testConfig(t, 1000)
	mockSource := source.NewMockSourceIface(t)
	expectSession(mockSource)
	mockSource.On("ListCollectionNames", mock.Anything).Return([]string{"users"}, nil)
	mockSource.On("CountDocuments", mock.Anything, "users").Return(int64(0), errors.New("timeout"))

	resp, err := NewExporter(cfg, mockSource).Export(context.Background())

	require.ErrorIs(t, err, ErrCollection)
	assert.Contains(t, err.Error(), "count documents")
	require.NotNil(t, resp)
	assert.Empty(t, resp.Collections)
}

func TestExporter_Export_NoCollections(t *testing.T) {
	cfg := testConfig(t, 1000)
	mockSource := source.NewMockSourceIface(t)
	expectSession(mockSource)
	mockSource.On("ListCollectionNames", mock.Anything).Return([]string{}, nil)

	resp, err := NewExporter(cfg, mockSource).Export(context.Background())

	require.NoError(t, err)
	assert.Equal(t, 0, resp.TotalCollections)

	info, err := os.Stat(cfg.Backup.OutputDir)
	require.NoError(t, err)
	assert.True(t, info.IsDir())
}
