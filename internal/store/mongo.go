package store

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/fixitfast/adminseed/internal/admin"
)

// Mongo implements Store on a MongoDB collection with a unique email index.
type Mongo struct {
	client *mongo.Client
	coll   *mongo.Collection
}

var _ Store = (*Mongo)(nil)

// Connect dials MongoDB and verifies the connection before returning a store
// bound to the given database and collection.
func Connect(ctx context.Context, uri, database, collection string) (*Mongo, error) {
	if uri == "" {
		return nil, fmt.Errorf("mongo uri is required")
	}

	client, err := mongo.Connect(ctx, options.Client().ApplyURI(uri))
	if err != nil {
		return nil, fmt.Errorf("connect mongo: %w", err)
	}
	if err := client.Ping(ctx, nil); err != nil {
		_ = client.Disconnect(ctx)
		return nil, fmt.Errorf("ping mongo: %w", err)
	}

	return &Mongo{
		client: client,
		coll:   client.Database(database).Collection(collection),
	}, nil
}

// EnsureIndexes creates the unique index on email that backs duplicate
// detection.
func (m *Mongo) EnsureIndexes(ctx context.Context) error {
	_, err := m.coll.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "email", Value: 1}},
		Options: options.Index().SetUnique(true),
	})
	if err != nil {
		return fmt.Errorf("create email index: %w", err)
	}
	return nil
}

// Insert writes one admin document. A unique-index violation maps to
// ErrDuplicate.
func (m *Mongo) Insert(ctx context.Context, doc admin.Document) error {
	if _, err := m.coll.InsertOne(ctx, doc); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return ErrDuplicate
		}
		return fmt.Errorf("insert admin document: %w", err)
	}
	return nil
}

// Close disconnects the underlying client.
func (m *Mongo) Close(ctx context.Context) error {
	return m.client.Disconnect(ctx)
}
