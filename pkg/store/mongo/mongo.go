// Package mongo implements workspace storage backed by MongoDB for server
// deployments where workspaces must be shared across instances.
package mongo

import (
	"context"
	"errors"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/archview/archview/pkg/store"
	"github.com/archview/archview/pkg/workspace"
)

// Config configures the Mongo store.
type Config struct {
	// URI is the MongoDB connection string.
	URI string
	// Database is the database name. Defaults to "archview".
	Database string
	// Collection is the collection name. Defaults to "workspaces".
	Collection string
}

// Store persists workspace documents in a MongoDB collection, keyed by
// workspace ID in the _id field.
type Store struct {
	client     *mongo.Client
	collection *mongo.Collection
}

// New connects to MongoDB and verifies the connection with a ping.
func New(ctx context.Context, cfg Config) (*Store, error) {
	if cfg.Database == "" {
		cfg.Database = "archview"
	}
	if cfg.Collection == "" {
		cfg.Collection = "workspaces"
	}
	client, err := mongo.Connect(ctx, options.Client().ApplyURI(cfg.URI))
	if err != nil {
		return nil, fmt.Errorf("connect: %w", err)
	}
	if err := client.Ping(ctx, nil); err != nil {
		_ = client.Disconnect(ctx)
		return nil, fmt.Errorf("ping: %w", err)
	}
	return &Store{
		client:     client,
		collection: client.Database(cfg.Database).Collection(cfg.Collection),
	}, nil
}

// Get retrieves a workspace document by ID.
func (s *Store) Get(ctx context.Context, id string) (workspace.Document, error) {
	var doc workspace.Document
	err := s.collection.FindOne(ctx, bson.M{"_id": id}).Decode(&doc)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return workspace.Document{}, store.ErrNotFound
	}
	if err != nil {
		return workspace.Document{}, fmt.Errorf("find workspace %s: %w", id, err)
	}
	return doc, nil
}

// Put stores a workspace document, replacing any existing one.
func (s *Store) Put(ctx context.Context, id string, doc workspace.Document) error {
	if id == "" {
		return store.ErrEmptyID
	}
	doc.ID = id
	_, err := s.collection.ReplaceOne(ctx, bson.M{"_id": id}, doc, options.Replace().SetUpsert(true))
	if err != nil {
		return fmt.Errorf("store workspace %s: %w", id, err)
	}
	return nil
}

// List returns all workspace IDs in sorted order.
func (s *Store) List(ctx context.Context) ([]string, error) {
	opts := options.Find().
		SetProjection(bson.M{"_id": 1}).
		SetSort(bson.M{"_id": 1})
	cur, err := s.collection.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, fmt.Errorf("list workspaces: %w", err)
	}
	defer cur.Close(ctx)

	var ids []string
	for cur.Next(ctx) {
		var row struct {
			ID string `bson:"_id"`
		}
		if err := cur.Decode(&row); err != nil {
			return nil, fmt.Errorf("decode workspace ID: %w", err)
		}
		ids = append(ids, row.ID)
	}
	if err := cur.Err(); err != nil {
		return nil, fmt.Errorf("list workspaces: %w", err)
	}
	return ids, nil
}

// Delete removes a workspace.
func (s *Store) Delete(ctx context.Context, id string) error {
	res, err := s.collection.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return fmt.Errorf("delete workspace %s: %w", id, err)
	}
	if res.DeletedCount == 0 {
		return store.ErrNotFound
	}
	return nil
}

// Close disconnects from MongoDB.
func (s *Store) Close(ctx context.Context) error {
	return s.client.Disconnect(ctx)
}

var _ store.Store = (*Store)(nil)
