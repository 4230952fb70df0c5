package config

import (
	"context"
	"errors"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// ErrMissingMongoURI is returned when a storage operation runs before
// MONGODB_URI has been configured.
var ErrMissingMongoURI = errors.New("MONGODB_URI environment variable is not set")

// DB returns a handle to the application database, connecting on first use.
func (cfg *Config) DB(ctx context.Context) (*mongo.Database, error) {
	client, err := cfg.connect(ctx)
	if err != nil {
		return nil, err
	}
	return client.Database(cfg.DBName), nil
}

// connect establishes the shared Mongo client exactly once. The mutex makes
// concurrent first callers wait on the same in-flight attempt instead of
// opening duplicate connections; on failure the memo stays empty so the next
// caller retries from scratch.
func (cfg *Config) connect(ctx context.Context) (*mongo.Client, error) {
	cfg.mu.Lock()
	defer cfg.mu.Unlock()

	if cfg.client != nil {
		return cfg.client, nil
	}

	if cfg.MongoURI == "" {
		return nil, ErrMissingMongoURI
	}

	connectCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	client, err := mongo.Connect(connectCtx, options.Client().ApplyURI(cfg.MongoURI))
	if err != nil {
		return nil, err
	}

	if err := client.Ping(connectCtx, nil); err != nil {
		_ = client.Disconnect(connectCtx)
		return nil, err
	}

	if err := ensureIndexes(connectCtx, client.Database(cfg.DBName)); err != nil {
		_ = client.Disconnect(connectCtx)
		return nil, err
	}

	cfg.client = client
	return client, nil
}

// Close disconnects the shared client, if one was ever established.
func (cfg *Config) Close(ctx context.Context) error {
	cfg.mu.Lock()
	defer cfg.mu.Unlock()

	if cfg.client == nil {
		return nil
	}
	err := cfg.client.Disconnect(ctx)
	cfg.client = nil
	return err
}

// ensureIndexes creates the indexes the repositories rely on. The unique slug
// index is what turns a duplicate-slug race into a write-time conflict.
func ensureIndexes(ctx context.Context, db *mongo.Database) error {
	_, err := db.Collection("events").Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "slug", Value: 1}},
		Options: options.Index().SetUnique(true),
	})
	if err != nil {
		return err
	}

	_, err = db.Collection("bookings").Indexes().CreateMany(ctx, []mongo.IndexModel{
		{Keys: bson.D{{Key: "event_id", Value: 1}}},
		{Keys: bson.D{{Key: "slug", Value: 1}}},
	})
	return err
}
