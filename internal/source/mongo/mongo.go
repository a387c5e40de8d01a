// Package mongo implements the source interface on top of the official MongoDB driver.
package mongo

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/hibare/mongostash/internal/config"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"
)

// ErrNotConnected is returned when a query runs before Connect.
var ErrNotConnected = errors.New("mongo: not connected")

// Mongo reads collections from a single MongoDB database.
type Mongo struct {
	cfg    *config.Config
	client *mongo.Client
	db     *mongo.Database
}

// Name returns the database name.
func (m *Mongo) Name() string {
	return fmt.Sprintf("mongo (%s)", m.cfg.Mongo.Database)
}

// Connect dials the server and pings the primary.
func (m *Mongo) Connect(ctx context.Context) error {
	if m.cfg.Mongo.Database == "" {
		return errors.New("database name is required")
	}

	client, err := mongo.Connect(ctx, options.Client().ApplyURI(m.cfg.Mongo.URI))
	if err != nil {
		return err
	}

	if err := client.Ping(ctx, readpref.Primary()); err != nil {
		_ = client.Disconnect(ctx)
		return err
	}

	m.client = client
	m.db = client.Database(m.cfg.Mongo.Database)
	slog.DebugContext(ctx, "Connected to MongoDB", "database", m.cfg.Mongo.Database)
	return nil
}

// ListCollectionNames returns the collection names as reported by the server.
func (m *Mongo) ListCollectionNames(ctx context.Context) ([]string, error) {
	if m.db == nil {
		return nil, ErrNotConnected
	}
	return m.db.ListCollectionNames(ctx, bson.D{})
}

// CountDocuments counts every document in the collection.
func (m *Mongo) CountDocuments(ctx context.Context, collection string) (int64, error) {
	if m.db == nil {
		return 0, ErrNotConnected
	}
	return m.db.Collection(collection).CountDocuments(ctx, bson.D{})
}

// FindPage fetches one skip/limit window. Without StableOrder no sort is applied,
// so windows are only consistent on a collection nobody writes to.
func (m *Mongo) FindPage(ctx context.Context, collection string, skip, limit int64) ([]bson.Raw, error) {
	if m.db == nil {
		return nil, ErrNotConnected
	}

	opts := options.Find().SetSkip(skip).SetLimit(limit)
	if m.cfg.Backup.StableOrder {
		opts.SetSort(bson.D{{Key: "_id", Value: 1}})
	}

	cursor, err := m.db.Collection(collection).Find(ctx, bson.D{}, opts)
	if err != nil {
		return nil, err
	}
	defer func() { _ = cursor.Close(ctx) }()

	var docs []bson.Raw
	for cursor.Next(ctx) {
		// cursor.Current is only valid until the next call to Next
		doc := make(bson.Raw, len(cursor.Current))
		copy(doc, cursor.Current)
		docs = append(docs, doc)
	}

	if err := cursor.Err(); err != nil {
		return nil, err
	}
	return docs, nil
}

// Disconnect closes the client if it was connected.
func (m *Mongo) Disconnect(ctx context.Context) error {
	if m.client == nil {
		return nil
	}
	err := m.client.Disconnect(ctx)
	m.client = nil
	m.db = nil
	return err
}

// NewMongoSource creates a new, unconnected Mongo source.
func NewMongoSource(cfg *config.Config) *Mongo {
	return &Mongo{cfg: cfg}
}
