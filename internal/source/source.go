// Package source defines the database collaborator the exporter reads from.
package source

import (
	"context"

	"go.mongodb.org/mongo-driver/bson"
)

// SourceIface is a paginated, read-only view of a document database.
// revive:disable-next-line exported
type SourceIface interface {
	// Connect establishes and verifies the connection.
	Connect(ctx context.Context) error

	// ListCollectionNames returns collection names in driver order.
	ListCollectionNames(ctx context.Context) ([]string, error)

	// CountDocuments returns the number of documents in a collection.
	CountDocuments(ctx context.Context, collection string) (int64, error)

	// FindPage returns up to limit documents starting at offset skip.
	FindPage(ctx context.Context, collection string, skip, limit int64) ([]bson.Raw, error)

	// Disconnect releases the connection.
	Disconnect(ctx context.Context) error

	// Name identifies the source in logs.
	Name() string
}
