// Package mongo implements the storage interface on MongoDB.
//
// Bug records live in one collection as single documents with an embedded
// logs array; audit events live in a second, append-only collection. Every
// mutation is one atomic update on one document, which is all the
// concurrency control the record keeper relies on.
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

	"github.com/webqa-tools/bugtrack/internal/storage"
)

// Defaults applied by Config.withDefaults. The URI matches a local
// unauthenticated mongod, the usual development setup.
const (
	DefaultURI             = "mongodb://localhost:27017"
	DefaultDatabase        = "bugtrack"
	DefaultBugsCollection  = "bugs"
	DefaultAuditCollection = "audit_events"
	DefaultConnectTimeout  = 10 * time.Second
)

// Config describes how to reach the database. Zero fields fall back to
// the defaults above.
type Config struct {
	URI             string
	Database        string
	BugsCollection  string
	AuditCollection string
	ConnectTimeout  time.Duration
}

func (c Config) withDefaults() Config {
	if c.URI == "" {
		c.URI = DefaultURI
	}
	if c.Database == "" {
		c.Database = DefaultDatabase
	}
	if c.BugsCollection == "" {
		c.BugsCollection = DefaultBugsCollection
	}
	if c.AuditCollection == "" {
		c.AuditCollection = DefaultAuditCollection
	}
	if c.ConnectTimeout == 0 {
		c.ConnectTimeout = DefaultConnectTimeout
	}
	return c
}

// Store implements storage.Store on a MongoDB database
type Store struct {
	client *mongo.Client
	bugs   *mongo.Collection
	audit  *mongo.Collection
}

var _ storage.Store = (*Store)(nil)

// Open connects, pings the primary, and ensures indexes. The returned
// store is safe for concurrent use; callers own Close.
func Open(ctx context.Context, cfg Config) (*Store, error) {
	cfg = cfg.withDefaults()

	ctx, cancel := context.WithTimeout(ctx, cfg.ConnectTimeout)
	defer cancel()

	client, err := mongo.Connect(ctx, options.Client().ApplyURI(cfg.URI))
	if err != nil {
		return nil, unavailable("connect", err)
	}
	if err := client.Ping(ctx, readpref.Primary()); err != nil {
		_ = client.Disconnect(context.Background())
		return nil, unavailable("ping", err)
	}

	db := client.Database(cfg.Database)
	s := &Store{
		client: client,
		bugs:   db.Collection(cfg.BugsCollection),
		audit:  db.Collection(cfg.AuditCollection),
	}
	if err := s.ensureIndexes(ctx); err != nil {
		_ = client.Disconnect(context.Background())
		return nil, err
	}
	return s, nil
}

func (s *Store) ensureIndexes(ctx context.Context) error {
	_, err := s.bugs.Indexes().CreateMany(ctx, []mongo.IndexModel{
		{Keys: bson.D{{Key: "created_at", Value: -1}}},
		{Keys: bson.D{{Key: "status", Value: 1}}},
		{Keys: bson.D{{Key: "module", Value: 1}}},
	})
	if err != nil {
		return unavailable("create bug indexes", err)
	}
	_, err = s.audit.Indexes().CreateMany(ctx, []mongo.IndexModel{
		{Keys: bson.D{{Key: "bug_id", Value: 1}, {Key: "timestamp", Value: -1}}},
	})
	if err != nil {
		return unavailable("create audit indexes", err)
	}
	return nil
}

// Ping verifies the server is reachable
func (s *Store) Ping(ctx context.Context) error {
	if err := s.client.Ping(ctx, readpref.Primary()); err != nil {
		return unavailable("ping", err)
	}
	return nil
}

// Close releases the client connection pool
func (s *Store) Close(ctx context.Context) error {
	if err := s.client.Disconnect(ctx); err != nil {
		return fmt.Errorf("failed to disconnect: %w", err)
	}
	return nil
}

// unavailable tags a driver failure so callers can branch on
// storage.ErrUnavailable while still unwrapping the driver cause.
func unavailable(op string, err error) error {
	return fmt.Errorf("%s: %w: %w", op, storage.ErrUnavailable, err)
}

// isNoDocuments reports whether err means the query matched nothing.
func isNoDocuments(err error) bool {
	return errors.Is(err, mongo.ErrNoDocuments)
}

var errUnexpectedID = errors.New("unexpected inserted id type")
