// Package storage provides shared types for bug record storage.
//
// The concrete implementations live in the mongo and memory sub-packages.
// This package holds the interface and sentinel errors referenced by both
// the implementations and their consumers (tracker, query, cmd/bt).
package storage

import (
	"context"
	"errors"
	"time"

	"github.com/webqa-tools/bugtrack/internal/types"
)

// ErrNotFound is returned when a requested record does not exist. A
// malformed record id is indistinguishable from an absent one: both
// report ErrNotFound, never a parse error.
var ErrNotFound = errors.New("not found")

// ErrUnavailable is carried in the chain of any failed store round trip
// (connection refused, timeout, server error). The core never retries;
// callers decide whether the operation is worth repeating.
var ErrUnavailable = errors.New("storage unavailable")

// Store is the interface satisfied by *mongo.Store and *memory.Store.
// Consumers depend on this interface rather than on a concrete type so
// that alternative implementations (mocks, instrumentation wrappers) can
// be substituted.
type Store interface {
	// Bug records
	CreateBug(ctx context.Context, bug *types.BugRecord) (string, error)
	GetBug(ctx context.Context, id string) (*types.BugRecord, error)
	// AppendLog pushes one entry onto the record's log sequence and
	// refreshes updated_at to the entry's timestamp, as a single atomic
	// operation against the stored document.
	AppendLog(ctx context.Context, id string, entry types.LogEntry) error
	SetStatus(ctx context.Context, id string, status types.Status, updatedAt time.Time) error
	// ListBugs returns records matching the filter, newest first
	// (created_at descending). Empty result is a nil or empty slice,
	// never an error.
	ListBugs(ctx context.Context, filter types.Filter) ([]*types.BugRecord, error)
	CountBugs(ctx context.Context, filter types.Filter) (int64, error)

	// Audit trail
	AppendAuditEvent(ctx context.Context, event *types.AuditEvent) error
	ListAuditEvents(ctx context.Context, bugID string, limit int) ([]*types.AuditEvent, error)

	// Lifecycle
	Ping(ctx context.Context) error
	Close(ctx context.Context) error
}
