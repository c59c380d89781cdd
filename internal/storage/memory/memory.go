// Package memory implements the storage interface using in-memory data
// structures. It backs the test suite and embedded library use; the
// contract matches the mongo backend, including commit-order log appends
// and created_at-descending listing.
package memory

import (
	"context"
	"sort"
	"sync"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/webqa-tools/bugtrack/internal/storage"
	"github.com/webqa-tools/bugtrack/internal/types"
)

// Store holds all records behind one mutex. Each exported method is a
// single critical section, mirroring the per-document atomicity of the
// mongo backend.
type Store struct {
	mu     sync.RWMutex
	bugs   map[string]*types.BugRecord
	order  []string // insertion order, tie-break for equal created_at
	events []*types.AuditEvent
}

var _ storage.Store = (*Store)(nil)

// New creates an empty in-memory storage backend
func New() *Store {
	return &Store{
		bugs: make(map[string]*types.BugRecord),
	}
}

// clone returns a deep copy so callers can never mutate stored state.
func clone(b *types.BugRecord) *types.BugRecord {
	cp := *b
	cp.Logs = append([]types.LogEntry{}, b.Logs...)
	return &cp
}

// CreateBug stores a copy of the record under a freshly minted id
func (m *Store) CreateBug(ctx context.Context, bug *types.BugRecord) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	id := primitive.NewObjectID().Hex()
	cp := clone(bug)
	cp.ID = id
	cp.CreatedAt = cp.CreatedAt.UTC()
	cp.UpdatedAt = cp.UpdatedAt.UTC()
	m.bugs[id] = cp
	m.order = append(m.order, id)
	return id, nil
}

// GetBug returns a copy of the record, or ErrNotFound. Malformed ids miss
// the map the same way absent ones do.
func (m *Store) GetBug(ctx context.Context, id string) (*types.BugRecord, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	bug, ok := m.bugs[id]
	if !ok {
		return nil, storage.ErrNotFound
	}
	return clone(bug), nil
}

// AppendLog appends the entry and refreshes updated_at in one critical
// section; concurrent appends land in lock-acquisition order.
func (m *Store) AppendLog(ctx context.Context, id string, entry types.LogEntry) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	bug, ok := m.bugs[id]
	if !ok {
		return storage.ErrNotFound
	}
	entry.Timestamp = entry.Timestamp.UTC()
	bug.Logs = append(bug.Logs, entry)
	bug.UpdatedAt = entry.Timestamp
	return nil
}

// SetStatus updates the status field and refreshes updated_at
func (m *Store) SetStatus(ctx context.Context, id string, status types.Status, updatedAt time.Time) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	bug, ok := m.bugs[id]
	if !ok {
		return storage.ErrNotFound
	}
	bug.Status = status
	bug.UpdatedAt = updatedAt.UTC()
	return nil
}

func matches(b *types.BugRecord, f types.Filter) bool {
	if f.Status != nil && b.Status != *f.Status {
		return false
	}
	if f.Module != "" && b.Module != f.Module {
		return false
	}
	if f.Severity != nil && b.Severity != *f.Severity {
		return false
	}
	if f.CreatedAfter != nil && b.CreatedAt.Before(*f.CreatedAfter) {
		return false
	}
	if f.CreatedBefore != nil && !b.CreatedAt.Before(*f.CreatedBefore) {
		return false
	}
	return true
}

// ListBugs returns matching records sorted created_at descending
func (m *Store) ListBugs(ctx context.Context, filter types.Filter) ([]*types.BugRecord, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	var results []*types.BugRecord
	for _, id := range m.order {
		if bug := m.bugs[id]; matches(bug, filter) {
			results = append(results, clone(bug))
		}
	}
	// Stable keeps insertion order for identical timestamps, matching
	// what a created_at index scan over an insert-ordered collection does.
	sort.SliceStable(results, func(i, j int) bool {
		return results[i].CreatedAt.After(results[j].CreatedAt)
	})
	if filter.Limit > 0 && len(results) > filter.Limit {
		results = results[:filter.Limit]
	}
	return results, nil
}

// CountBugs counts records matching the filter
func (m *Store) CountBugs(ctx context.Context, filter types.Filter) (int64, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	var n int64
	for _, bug := range m.bugs {
		if matches(bug, filter) {
			n++
		}
	}
	return n, nil
}

// AppendAuditEvent records a copy of the event in the append-only trail
func (m *Store) AppendAuditEvent(ctx context.Context, event *types.AuditEvent) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	cp := *event
	cp.ID = primitive.NewObjectID().Hex()
	cp.Timestamp = cp.Timestamp.UTC()
	m.events = append(m.events, &cp)
	event.ID = cp.ID
	return nil
}

// ListAuditEvents returns events newest first, optionally scoped to one
// bug id. The reference is weak: no record lookup happens.
func (m *Store) ListAuditEvents(ctx context.Context, bugID string, limit int) ([]*types.AuditEvent, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	var results []*types.AuditEvent
	for i := len(m.events) - 1; i >= 0; i-- {
		ev := m.events[i]
		if bugID != "" && ev.BugID != bugID {
			continue
		}
		cp := *ev
		results = append(results, &cp)
		if limit > 0 && len(results) == limit {
			break
		}
	}
	return results, nil
}

// Ping always succeeds for the in-memory backend
func (m *Store) Ping(ctx context.Context) error {
	return nil
}

// Close is a no-op for the in-memory backend
func (m *Store) Close(ctx context.Context) error {
	return nil
}
