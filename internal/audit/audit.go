// Package audit writes the append-only audit trail.
//
// One event is recorded per successful mutation, after the primary write
// lands. Recording is best effort: a failed append is reported through
// the debug log and never fails or rolls back the mutation that
// triggered it. A crash between the primary write and the audit write
// loses the event; the trail is an activity record, not a ledger the
// data depends on.
package audit

import (
	"context"
	"time"

	"github.com/webqa-tools/bugtrack/internal/debug"
	"github.com/webqa-tools/bugtrack/internal/storage"
	"github.com/webqa-tools/bugtrack/internal/types"
)

// Logger appends audit events through a Store. The zero clock means
// time.Now; tests inject a fixed one.
type Logger struct {
	store storage.Store
	clock func() time.Time
}

// New creates a Logger writing through the given store
func New(store storage.Store) *Logger {
	return &Logger{store: store, clock: func() time.Time { return time.Now().UTC() }}
}

// NewWithClock creates a Logger with an injected clock
func NewWithClock(store storage.Store, clock func() time.Time) *Logger {
	return &Logger{store: store, clock: clock}
}

// Record appends one event. It never returns an error: failures go to
// the debug log and the caller's mutation stands.
func (l *Logger) Record(ctx context.Context, user string, action types.AuditAction, bugID, details string) {
	event := &types.AuditEvent{
		Timestamp: l.clock(),
		User:      user,
		Action:    action,
		BugID:     bugID,
		Details:   details,
	}
	if err := l.store.AppendAuditEvent(ctx, event); err != nil {
		debug.Logf("audit: %s for %s not recorded: %v\n", action, bugID, err)
	}
}
