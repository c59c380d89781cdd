package mongo

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/webqa-tools/bugtrack/internal/storage"
	"github.com/webqa-tools/bugtrack/internal/types"
)

// bugDoc is the stored shape of a bug record. It is deliberately separate
// from types.BugRecord so the wire schema can only change here.
type bugDoc struct {
	ID          primitive.ObjectID `bson:"_id,omitempty"`
	Title       string             `bson:"title"`
	Description string             `bson:"description"`
	Module      string             `bson:"module"`
	Severity    string             `bson:"severity"`
	Priority    string             `bson:"priority"`
	Status      string             `bson:"status"`
	Assignee    string             `bson:"assignee"`
	GitCommit   string             `bson:"git_commit"`
	CreatedAt   time.Time          `bson:"created_at"`
	UpdatedAt   time.Time          `bson:"updated_at"`
	Logs        []logDoc           `bson:"logs"`
}

type logDoc struct {
	Timestamp time.Time `bson:"timestamp"`
	Status    string    `bson:"status"`
	Details   string    `bson:"details"`
}

func fromBug(b *types.BugRecord) bugDoc {
	logs := make([]logDoc, 0, len(b.Logs))
	for _, e := range b.Logs {
		logs = append(logs, logDoc{Timestamp: e.Timestamp.UTC(), Status: e.Status, Details: e.Details})
	}
	return bugDoc{
		Title:       b.Title,
		Description: b.Description,
		Module:      b.Module,
		Severity:    string(b.Severity),
		Priority:    string(b.Priority),
		Status:      string(b.Status),
		Assignee:    b.Assignee,
		GitCommit:   b.GitCommit,
		CreatedAt:   b.CreatedAt.UTC(),
		UpdatedAt:   b.UpdatedAt.UTC(),
		Logs:        logs,
	}
}

// toBug converts back to the domain type. The driver decodes BSON
// datetimes into local-zone times; normalize to UTC here so the rest of
// the program never sees anything else.
func (d bugDoc) toBug() *types.BugRecord {
	logs := make([]types.LogEntry, 0, len(d.Logs))
	for _, e := range d.Logs {
		logs = append(logs, types.LogEntry{Timestamp: e.Timestamp.UTC(), Status: e.Status, Details: e.Details})
	}
	return &types.BugRecord{
		ID:          d.ID.Hex(),
		Title:       d.Title,
		Description: d.Description,
		Module:      d.Module,
		Severity:    types.Severity(d.Severity),
		Priority:    types.Priority(d.Priority),
		Status:      types.Status(d.Status),
		Assignee:    d.Assignee,
		GitCommit:   d.GitCommit,
		CreatedAt:   d.CreatedAt.UTC(),
		UpdatedAt:   d.UpdatedAt.UTC(),
		Logs:        logs,
	}
}

// parseID maps a hex id to an ObjectID. A malformed id is reported as
// ErrNotFound, the same as an absent one.
func parseID(id string) (primitive.ObjectID, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return primitive.NilObjectID, storage.ErrNotFound
	}
	return oid, nil
}

// CreateBug inserts the record and returns the id the store assigned
func (s *Store) CreateBug(ctx context.Context, bug *types.BugRecord) (string, error) {
	res, err := s.bugs.InsertOne(ctx, fromBug(bug))
	if err != nil {
		return "", unavailable("insert bug", err)
	}
	oid, ok := res.InsertedID.(primitive.ObjectID)
	if !ok {
		return "", unavailable("insert bug", errUnexpectedID)
	}
	return oid.Hex(), nil
}

// GetBug retrieves one record with its full log sequence
func (s *Store) GetBug(ctx context.Context, id string) (*types.BugRecord, error) {
	oid, err := parseID(id)
	if err != nil {
		return nil, err
	}
	var doc bugDoc
	if err := s.bugs.FindOne(ctx, bson.M{"_id": oid}).Decode(&doc); err != nil {
		if isNoDocuments(err) {
			return nil, storage.ErrNotFound
		}
		return nil, unavailable("find bug", err)
	}
	return doc.toBug(), nil
}

// AppendLog pushes one entry onto the log sequence and refreshes
// updated_at in the same document update. There is no read-modify-write:
// the server applies $push and $set atomically.
func (s *Store) AppendLog(ctx context.Context, id string, entry types.LogEntry) error {
	oid, err := parseID(id)
	if err != nil {
		return err
	}
	update := bson.M{
		"$push": bson.M{"logs": logDoc{
			Timestamp: entry.Timestamp.UTC(),
			Status:    entry.Status,
			Details:   entry.Details,
		}},
		"$set": bson.M{"updated_at": entry.Timestamp.UTC()},
	}
	res, err := s.bugs.UpdateOne(ctx, bson.M{"_id": oid}, update)
	if err != nil {
		return unavailable("append log", err)
	}
	if res.MatchedCount == 0 {
		return storage.ErrNotFound
	}
	return nil
}

// SetStatus updates the status field and refreshes updated_at
func (s *Store) SetStatus(ctx context.Context, id string, status types.Status, updatedAt time.Time) error {
	oid, err := parseID(id)
	if err != nil {
		return err
	}
	update := bson.M{"$set": bson.M{
		"status":     string(status),
		"updated_at": updatedAt.UTC(),
	}}
	res, err := s.bugs.UpdateOne(ctx, bson.M{"_id": oid}, update)
	if err != nil {
		return unavailable("set status", err)
	}
	if res.MatchedCount == 0 {
		return storage.ErrNotFound
	}
	return nil
}

func buildQuery(filter types.Filter) bson.M {
	query := bson.M{}
	if filter.Status != nil {
		query["status"] = string(*filter.Status)
	}
	if filter.Module != "" {
		query["module"] = filter.Module
	}
	if filter.Severity != nil {
		query["severity"] = string(*filter.Severity)
	}
	if filter.CreatedAfter != nil || filter.CreatedBefore != nil {
		createdAt := bson.M{}
		if filter.CreatedAfter != nil {
			createdAt["$gte"] = filter.CreatedAfter.UTC()
		}
		if filter.CreatedBefore != nil {
			createdAt["$lt"] = filter.CreatedBefore.UTC()
		}
		query["created_at"] = createdAt
	}
	return query
}

// ListBugs returns matching records sorted created_at descending
func (s *Store) ListBugs(ctx context.Context, filter types.Filter) ([]*types.BugRecord, error) {
	opts := options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}})
	if filter.Limit > 0 {
		opts.SetLimit(int64(filter.Limit))
	}
	cursor, err := s.bugs.Find(ctx, buildQuery(filter), opts)
	if err != nil {
		return nil, unavailable("list bugs", err)
	}
	defer cursor.Close(ctx)

	var bugs []*types.BugRecord
	for cursor.Next(ctx) {
		var doc bugDoc
		if err := cursor.Decode(&doc); err != nil {
			return nil, unavailable("decode bug", err)
		}
		bugs = append(bugs, doc.toBug())
	}
	if err := cursor.Err(); err != nil {
		return nil, unavailable("list bugs", err)
	}
	return bugs, nil
}

// CountBugs counts records matching the filter without fetching them
func (s *Store) CountBugs(ctx context.Context, filter types.Filter) (int64, error) {
	n, err := s.bugs.CountDocuments(ctx, buildQuery(filter))
	if err != nil {
		return 0, unavailable("count bugs", err)
	}
	return n, nil
}
