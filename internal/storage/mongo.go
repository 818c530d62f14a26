package storage

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// Collection names.
const (
	carsCollection  = "cars"
	usersCollection = "users"
)

// opTimeout bounds a single store operation. The store is a simple
// insert-or-lookup target; anything slower than this indicates a database
// problem, not a slow query.
const opTimeout = 10 * time.Second

// Mongo is the MongoDB-backed store for listings and users.
type Mongo struct {
	client *mongo.Client
	cars   *mongo.Collection
	users  *mongo.Collection
}

// Connect connects to MongoDB, verifies the connection with a ping, and
// ensures the indexes the import flow relies on.
func Connect(ctx context.Context, uri, database string) (*Mongo, error) {
	ctx, cancel := context.WithTimeout(ctx, opTimeout)
	defer cancel()

	client, err := mongo.Connect(ctx, options.Client().ApplyURI(uri))
	if err != nil {
		return nil, fmt.Errorf("failed to connect to MongoDB: %w", err)
	}

	if err := client.Ping(ctx, nil); err != nil {
		return nil, fmt.Errorf("failed to ping MongoDB: %w", err)
	}

	db := client.Database(database)
	m := &Mongo{
		client: client,
		cars:   db.Collection(carsCollection),
		users:  db.Collection(usersCollection),
	}

	if err := m.createIndexes(ctx); err != nil {
		return nil, fmt.Errorf("failed to create indexes: %w", err)
	}

	return m, nil
}

// createIndexes ensures the query paths used by the service are indexed:
// listings by seller, and imported listings by their external source id.
// The external id index is intentionally non-unique; imports are
// always-insert and duplicates are flagged, not rejected.
func (m *Mongo) createIndexes(ctx context.Context) error {
	_, err := m.cars.Indexes().CreateMany(ctx, []mongo.IndexModel{
		{Keys: bson.D{{Key: "seller", Value: 1}}},
		{Keys: bson.D{{Key: "facebookSource.externalId", Value: 1}}},
	})
	return err
}

// Close disconnects from MongoDB.
func (m *Mongo) Close(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, opTimeout)
	defer cancel()
	return m.client.Disconnect(ctx)
}
