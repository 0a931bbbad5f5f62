// Package store is the document-store client. Services speak the narrow
// Collection interface; the Mongo engine backs it in production and the
// memory engine backs tests with the same update operators (`$set`, `$inc`,
// `$addToSet`, `$pull`, `$currentDate`) applied atomically per document.
package store

import (
	"context"
	"errors"

	"go.mongodb.org/mongo-driver/bson"
)

// Collection names consumed by the core.
const (
	ColContent  = "content-items"
	ColComments = "comments"
	ColUsers    = "users"
	ColBookings = "bookings"
)

var (
	// ErrNotFound reports that no document matched the given ID.
	ErrNotFound = errors.New("store: document not found")
	// ErrUnavailable wraps any underlying I/O failure of the store.
	ErrUnavailable = errors.New("store: unavailable")
	// ErrDuplicateID reports an insert that collides with an existing ID.
	ErrDuplicateID = errors.New("store: duplicate id")
)

// Store hands out collections by name.
type Store interface {
	Collection(name string) Collection
}

// Collection is the per-record document surface the core needs: inserts,
// point updates, predicate queries with ordering, and conditional
// multi-field mutations that the engine applies atomically per document.
type Collection interface {
	// InsertOne stores doc under its `_id` field.
	InsertOne(ctx context.Context, doc interface{}) error

	// FindByID decodes the document with the given ID into out.
	FindByID(ctx context.Context, id string, out interface{}) error

	// Find decodes all documents matching filter into out (a pointer to a
	// slice), ordered by sort when non-nil.
	Find(ctx context.Context, filter bson.M, sort bson.D, out interface{}) error

	// UpdateByID applies an operator update to one document; ErrNotFound
	// when the ID does not exist.
	UpdateByID(ctx context.Context, id string, update bson.M) error

	// UpdateOne applies an operator update to the first document matching
	// filter and reports how many documents matched (0 or 1).
	UpdateOne(ctx context.Context, filter bson.M, update bson.M) (int64, error)

	// UpsertByID applies an operator update to the document with the given
	// ID, inserting it (honoring `$setOnInsert`) when absent.
	UpsertByID(ctx context.Context, id string, update bson.M) error

	// DeleteByID removes one document; ErrNotFound when absent.
	DeleteByID(ctx context.Context, id string) error

	// DeleteMany removes every document matching filter and reports the
	// number removed. Deleting zero documents is not an error.
	DeleteMany(ctx context.Context, filter bson.M) (int64, error)

	// Count reports how many documents match filter.
	Count(ctx context.Context, filter bson.M) (int64, error)
}
