// Package bugtrack provides a minimal public API for embedding the bug
// record keeper.
//
// Most programs should use the bt CLI. This package exports only the
// essential types and constructors needed to drive the record lifecycle
// from Go: open a store, build a Tracker, create bugs, append logs, move
// statuses, and query the result.
package bugtrack

import (
	"context"

	"github.com/webqa-tools/bugtrack/internal/audit"
	"github.com/webqa-tools/bugtrack/internal/query"
	"github.com/webqa-tools/bugtrack/internal/storage"
	"github.com/webqa-tools/bugtrack/internal/storage/memory"
	"github.com/webqa-tools/bugtrack/internal/storage/mongo"
	"github.com/webqa-tools/bugtrack/internal/tracker"
	"github.com/webqa-tools/bugtrack/internal/types"
)

// Core types for working with bug records
type (
	BugRecord  = types.BugRecord
	LogEntry   = types.LogEntry
	AuditEvent = types.AuditEvent
	Status     = types.Status
	Severity   = types.Severity
	Priority   = types.Priority
	Filter     = types.Filter
	Statistics = types.Statistics

	Tracker        = tracker.Tracker
	CreateBugInput = tracker.CreateBugInput
	Engine         = query.Engine
	Predicate      = query.Predicate
)

// Status constants
const (
	StatusOpen       = types.StatusOpen
	StatusInProgress = types.StatusInProgress
	StatusResolved   = types.StatusResolved
	StatusClosed     = types.StatusClosed
)

// Severity constants
const (
	SeverityLow      = types.SeverityLow
	SeverityMedium   = types.SeverityMedium
	SeverityHigh     = types.SeverityHigh
	SeverityCritical = types.SeverityCritical
)

// Sentinel errors. Branch with errors.Is.
var (
	ErrInvalid     = types.ErrInvalid
	ErrNotFound    = storage.ErrNotFound
	ErrUnavailable = storage.ErrUnavailable
)

// Store is the persistence interface shared by the MongoDB and in-memory
// backends.
type Store = storage.Store

// MongoConfig describes how to reach the MongoDB backend. Zero fields
// fall back to local-development defaults.
type MongoConfig = mongo.Config

// NewMongoStore connects to MongoDB, verifies the connection, and
// ensures indexes. The caller owns Close.
func NewMongoStore(ctx context.Context, cfg MongoConfig) (Store, error) {
	return mongo.Open(ctx, cfg)
}

// NewMemoryStore returns an in-memory store with the same contract as
// the MongoDB backend. Useful for tests and short-lived tooling.
func NewMemoryStore() Store {
	return memory.New()
}

// New builds the lifecycle service on top of a store. Audit events for
// every successful mutation are attributed to actor and written to the
// same store's audit collection.
func New(store Store, actor string) *Tracker {
	return tracker.New(store, audit.New(store), actor)
}

// NewEngine builds the query side: filtered listing and statistics.
func NewEngine(store Store) *Engine {
	return query.NewEngine(store)
}
