// Package query implements the listing side of the record keeper.
//
// Two layers cooperate: the store-level filter (status, module, severity,
// creation window) travels to the database as part of the query, while
// Predicates refine the fetched slice in memory. Predicates compose with
// AND semantics and preserve the store's ordering, so every path through
// this package returns records newest first.
package query

import (
	"context"
	"fmt"
	"strings"

	"github.com/webqa-tools/bugtrack/internal/storage"
	"github.com/webqa-tools/bugtrack/internal/types"
)

// Engine executes list and aggregate queries against a Store
type Engine struct {
	store storage.Store
}

// NewEngine creates an Engine reading from store
func NewEngine(store storage.Store) *Engine {
	return &Engine{store: store}
}

// List returns records matching the store-level filter, created_at
// descending. The ordering is part of the contract, not a presentation
// choice; callers and tests may rely on it.
func (e *Engine) List(ctx context.Context, filter types.Filter) ([]*types.BugRecord, error) {
	bugs, err := e.store.ListBugs(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("failed to list bugs: %w", err)
	}
	return bugs, nil
}

// Predicate is an in-memory record test. Predicates are pure: they
// inspect the record and nothing else.
type Predicate func(*types.BugRecord) bool

// Apply filters records through every predicate, AND-composed, keeping
// the input order. With no predicates the input comes back unchanged.
func Apply(records []*types.BugRecord, preds ...Predicate) []*types.BugRecord {
	if len(preds) == 0 {
		return records
	}
	filtered := make([]*types.BugRecord, 0, len(records))
	for _, r := range records {
		keep := true
		for _, pred := range preds {
			if !pred(r) {
				keep = false
				break
			}
		}
		if keep {
			filtered = append(filtered, r)
		}
	}
	return filtered
}

// ByPriority matches records with exactly the given priority
func ByPriority(p types.Priority) Predicate {
	return func(r *types.BugRecord) bool {
		return r.Priority == p
	}
}

// ByAssignee matches records whose assignee contains the given fragment,
// case-insensitively. "ali" finds both "Alice" and "Salim".
func ByAssignee(fragment string) Predicate {
	needle := strings.ToLower(fragment)
	return func(r *types.BugRecord) bool {
		return strings.Contains(strings.ToLower(r.Assignee), needle)
	}
}

// BySearch matches records whose title, description, or module contains
// the term, case-insensitively. Log entries are not searched.
func BySearch(term string) Predicate {
	needle := strings.ToLower(term)
	return func(r *types.BugRecord) bool {
		return strings.Contains(strings.ToLower(r.Title), needle) ||
			strings.Contains(strings.ToLower(r.Description), needle) ||
			strings.Contains(strings.ToLower(r.Module), needle)
	}
}
