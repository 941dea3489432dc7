package repository

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const (
	problemCollection = "problems"
	userCollection    = "users"

	defaultConnectTimeout = 10 * time.Second
)

// MongoConfig holds document store connection settings.
type MongoConfig struct {
	URI            string        `yaml:"uri"`
	Database       string        `yaml:"database"`
	ConnectTimeout time.Duration `yaml:"connectTimeout"`
}

// Store owns the document store connection for the process lifetime.
// It is created once at startup and injected into repositories.
type Store struct {
	client *mongo.Client
	db     *mongo.Database
}

// Connect establishes the document store connection and verifies it.
func Connect(ctx context.Context, cfg MongoConfig) (*Store, error) {
	if cfg.URI == "" {
		return nil, fmt.Errorf("mongo uri is required")
	}
	if cfg.Database == "" {
		return nil, fmt.Errorf("mongo database is required")
	}
	timeout := cfg.ConnectTimeout
	if timeout == 0 {
		timeout = defaultConnectTimeout
	}

	connectCtx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	client, err := mongo.Connect(connectCtx, options.Client().ApplyURI(cfg.URI))
	if err != nil {
		return nil, fmt.Errorf("connect to mongo failed: %w", err)
	}
	if err := client.Ping(connectCtx, nil); err != nil {
		_ = client.Disconnect(context.Background())
		return nil, fmt.Errorf("ping mongo failed: %w", err)
	}

	return &Store{client: client, db: client.Database(cfg.Database)}, nil
}

// EnsureIndexes creates the indexes the repositories rely on.
// Username uniqueness is enforced here rather than by application-level
// checks alone, so concurrent registrations cannot both succeed.
func (s *Store) EnsureIndexes(ctx context.Context) error {
	_, err := s.db.Collection(userCollection).Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "username", Value: 1}},
		Options: options.Index().SetUnique(true),
	})
	if err != nil {
		return fmt.Errorf("create username index failed: %w", err)
	}
	return nil
}

// Close disconnects from the document store.
func (s *Store) Close(ctx context.Context) error {
	return s.client.Disconnect(ctx)
}

func (s *Store) problems() *mongo.Collection {
	return s.db.Collection(problemCollection)
}

func (s *Store) users() *mongo.Collection {
	return s.db.Collection(userCollection)
}
