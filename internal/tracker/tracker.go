// Package tracker implements the bug record lifecycle: create, append
// activity, transition status, fetch.
//
// The tracker owns validation and normalization; storage backends may
// assume every record and log entry they receive is already valid. Each
// operation is one store round trip with no retries, and each successful
// mutation is followed by exactly one audit event. Failed operations
// record nothing.
package tracker

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/webqa-tools/bugtrack/internal/audit"
	"github.com/webqa-tools/bugtrack/internal/storage"
	"github.com/webqa-tools/bugtrack/internal/types"
)

// Tracker is the lifecycle service. The actor is fixed at construction:
// one process (or one CLI invocation) acts as one identity, which is
// what the audit trail records as the user.
type Tracker struct {
	store storage.Store
	audit *audit.Logger
	actor string
	clock func() time.Time
}

// Option customizes a Tracker
type Option func(*Tracker)

// WithClock injects a time source. Tests use this to pin timestamps.
func WithClock(clock func() time.Time) Option {
	return func(t *Tracker) { t.clock = clock }
}

// New creates a Tracker writing through store, with audit events
// attributed to actor
func New(store storage.Store, auditLog *audit.Logger, actor string, opts ...Option) *Tracker {
	t := &Tracker{
		store: store,
		audit: auditLog,
		actor: actor,
		clock: func() time.Time { return time.Now().UTC() },
	}
	for _, opt := range opts {
		opt(t)
	}
	return t
}

// CreateBugInput carries the caller-supplied fields for a new record.
// Severity and Priority arrive raw and are parsed here; everything the
// caller omits gets the documented default.
type CreateBugInput struct {
	Title       string
	Description string
	Module      string
	Severity    string
	Priority    string
	Assignee    string
	GitCommit   string
}

// CreateBug validates, persists a new open record, and returns the id
// the store assigned. created_at and updated_at start equal; the log
// sequence starts empty regardless of input.
func (t *Tracker) CreateBug(ctx context.Context, in CreateBugInput) (string, error) {
	severity, err := types.ParseSeverity(in.Severity)
	if err != nil {
		return "", err
	}
	priority, err := types.ParsePriority(in.Priority)
	if err != nil {
		return "", err
	}

	now := t.clock().UTC()
	bug := &types.BugRecord{
		Title:       strings.TrimSpace(in.Title),
		Description: strings.TrimSpace(in.Description),
		Module:      strings.TrimSpace(in.Module),
		Severity:    severity,
		Priority:    priority,
		Status:      types.StatusOpen,
		Assignee:    strings.TrimSpace(in.Assignee),
		GitCommit:   strings.TrimSpace(in.GitCommit),
		CreatedAt:   now,
		UpdatedAt:   now,
		Logs:        []types.LogEntry{},
	}
	bug.SetDefaults()
	if err := bug.Validate(); err != nil {
		return "", err
	}

	id, err := t.store.CreateBug(ctx, bug)
	if err != nil {
		return "", fmt.Errorf("failed to create bug: %w", err)
	}

	t.audit.Record(ctx, t.actor, types.ActionCreateBug, id,
		fmt.Sprintf("created %q in module %q", bug.Title, bug.Module))
	return id, nil
}

// AppendLog adds one activity entry to the record's log sequence. The
// entry status is a free-form tag, lower-cased here; the store applies
// the push and the updated_at refresh as one atomic document update.
func (t *Tracker) AppendLog(ctx context.Context, id, logStatus, details string) error {
	entry := types.LogEntry{
		Timestamp: t.clock().UTC(),
		Status:    strings.ToLower(strings.TrimSpace(logStatus)),
		Details:   strings.TrimSpace(details),
	}
	if err := entry.Validate(); err != nil {
		return err
	}

	if err := t.store.AppendLog(ctx, id, entry); err != nil {
		return fmt.Errorf("failed to append log to %s: %w", id, err)
	}

	t.audit.Record(ctx, t.actor, types.ActionAddActivity, id,
		fmt.Sprintf("logged %q: %s", entry.Status, entry.Details))
	return nil
}

// TransitionStatus moves the record to the given status. Any status may
// move to any other, backward included; closed records reopen without
// ceremony.
func (t *Tracker) TransitionStatus(ctx context.Context, id string, status types.Status) error {
	if !status.IsValid() {
		return fmt.Errorf("%w: status %q (want open|in-progress|resolved|closed)", types.ErrInvalid, status)
	}

	if err := t.store.SetStatus(ctx, id, status, t.clock().UTC()); err != nil {
		return fmt.Errorf("failed to update status of %s: %w", id, err)
	}

	t.audit.Record(ctx, t.actor, types.ActionUpdateStatus, id,
		fmt.Sprintf("status set to %q", status))
	return nil
}

// GetBug fetches one record with its full log sequence
func (t *Tracker) GetBug(ctx context.Context, id string) (*types.BugRecord, error) {
	bug, err := t.store.GetBug(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to get bug %s: %w", id, err)
	}
	return bug, nil
}
