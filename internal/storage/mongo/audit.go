package mongo

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/webqa-tools/bugtrack/internal/types"
)

type auditDoc struct {
	ID        primitive.ObjectID `bson:"_id,omitempty"`
	Timestamp time.Time          `bson:"timestamp"`
	User      string             `bson:"user"`
	Action    string             `bson:"action"`
	BugID     string             `bson:"bug_id,omitempty"`
	Details   string             `bson:"details,omitempty"`
}

func (d auditDoc) toEvent() *types.AuditEvent {
	return &types.AuditEvent{
		ID:        d.ID.Hex(),
		Timestamp: d.Timestamp.UTC(),
		User:      d.User,
		Action:    types.AuditAction(d.Action),
		BugID:     d.BugID,
		Details:   d.Details,
	}
}

// AppendAuditEvent inserts one event into the audit collection. The
// collection is append-only: nothing in this package updates or removes
// audit documents.
func (s *Store) AppendAuditEvent(ctx context.Context, event *types.AuditEvent) error {
	doc := auditDoc{
		Timestamp: event.Timestamp.UTC(),
		User:      event.User,
		Action:    string(event.Action),
		BugID:     event.BugID,
		Details:   event.Details,
	}
	res, err := s.audit.InsertOne(ctx, doc)
	if err != nil {
		return unavailable("insert audit event", err)
	}
	if oid, ok := res.InsertedID.(primitive.ObjectID); ok {
		event.ID = oid.Hex()
	}
	return nil
}

// ListAuditEvents returns events newest first. An empty bugID means all
// events; bugID is matched as written, with no record lookup (the
// reference is weak).
func (s *Store) ListAuditEvents(ctx context.Context, bugID string, limit int) ([]*types.AuditEvent, error) {
	query := bson.M{}
	if bugID != "" {
		query["bug_id"] = bugID
	}
	opts := options.Find().SetSort(bson.D{{Key: "timestamp", Value: -1}})
	if limit > 0 {
		opts.SetLimit(int64(limit))
	}
	cursor, err := s.audit.Find(ctx, query, opts)
	if err != nil {
		return nil, unavailable("list audit events", err)
	}
	defer cursor.Close(ctx)

	var events []*types.AuditEvent
	for cursor.Next(ctx) {
		var doc auditDoc
		if err := cursor.Decode(&doc); err != nil {
			return nil, unavailable("decode audit event", err)
		}
		events = append(events, doc.toEvent())
	}
	if err := cursor.Err(); err != nil {
		return nil, unavailable("list audit events", err)
	}
	return events, nil
}
