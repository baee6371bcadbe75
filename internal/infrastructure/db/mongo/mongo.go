package mongo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"
)

const (
	defaultTimeout = 10 * time.Second
	indexTimeout   = 30 * time.Second
)

const appName = "inventory-api"

// Config holds the document store settings.
type Config struct {
	URI      string
	Database string
	Timeout  time.Duration
}

func (c Config) options() (*options.ClientOptions, time.Duration, error) {
	if c.URI == "" {
		return nil, 0, errors.New("mongo: URI is required")
	}
	if c.Database == "" {
		return nil, 0, errors.New("mongo: database name is required")
	}

	timeout := c.Timeout
	if timeout <= 0 {
		timeout = defaultTimeout
	}
	opts := options.Client().
		ApplyURI(c.URI).
		SetAppName(appName).
		SetConnectTimeout(timeout).
		SetServerSelectionTimeout(timeout)
	if err := opts.Validate(); err != nil {
		return nil, 0, fmt.Errorf("mongo: %w", err)
	}
	return opts, timeout, nil
}

// Store is the connected client together with the application database.
type Store struct {
	Client *mongo.Client
	DB     *mongo.Database
}

// Connect opens the client and pings the primary once, so a bad URI or an
// unreachable server stops startup rather than the first request.
func Connect(ctx context.Context, cfg Config) (*Store, error) {
	opts, timeout, err := cfg.options()
	if err != nil {
		return nil, err
	}

	client, err := mongo.Connect(ctx, opts)
	if err != nil {
		return nil, fmt.Errorf("mongo connect: %w", err)
	}
	store := &Store{Client: client, DB: client.Database(cfg.Database)}

	pingCtx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()
	if err := store.Ping(pingCtx); err != nil {
		_ = client.Disconnect(context.Background())
		return nil, fmt.Errorf("mongo ping: %w", err)
	}
	return store, nil
}

// Ping checks the primary. It doubles as the readiness check.
func (s *Store) Ping(ctx context.Context) error {
	return s.Client.Ping(ctx, readpref.Primary())
}

// Close disconnects the client.
func (s *Store) Close(ctx context.Context) error {
	return s.Client.Disconnect(ctx)
}

// EnsureIndexes creates the unique indexes the repositories rely on to reject
// concurrent duplicates, plus the lookup index used by owner-scoped listing.
func EnsureIndexes(ctx context.Context, db *mongo.Database) error {
	ctx, cancel := context.WithTimeout(ctx, indexTimeout)
	defer cancel()

	_, err := db.Collection(collectionUsers).Indexes().CreateMany(ctx, []mongo.IndexModel{
		{Keys: bson.D{{Key: "email", Value: 1}}, Options: options.Index().SetUnique(true)},
		{Keys: bson.D{{Key: "createdAt", Value: -1}}},
	})
	if err != nil {
		return fmt.Errorf("users indexes: %w", err)
	}

	_, err = db.Collection(collectionEquipment).Indexes().CreateMany(ctx, []mongo.IndexModel{
		{Keys: bson.D{{Key: "serialNumber", Value: 1}}, Options: options.Index().SetUnique(true)},
		{Keys: bson.D{{Key: "owner", Value: 1}, {Key: "createdAt", Value: -1}}},
	})
	if err != nil {
		return fmt.Errorf("equipment indexes: %w", err)
	}
	return nil
}
