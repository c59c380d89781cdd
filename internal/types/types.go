// Package types defines core data structures for the bugtrack record keeper.
package types

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

// ErrInvalid marks caller errors: malformed enums, missing required fields.
// Callers branch with errors.Is.
var ErrInvalid = errors.New("invalid argument")

// Sentinel field values for records created without an assignee or commit.
const (
	Unassigned = "Unassigned"
	NoCommit   = "N/A"
)

// BugRecord is a single tracked bug. The ID is assigned by the store on
// insert and never changes afterward; Logs is append-only.
type BugRecord struct {
	ID          string     `json:"id,omitempty"`
	Title       string     `json:"title"`
	Description string     `json:"description"`
	Module      string     `json:"module"`
	Severity    Severity   `json:"severity"`
	Priority    Priority   `json:"priority"`
	Status      Status     `json:"status"`
	Assignee    string     `json:"assignee"`
	GitCommit   string     `json:"git_commit"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`
	Logs        []LogEntry `json:"logs"`
}

// Validate checks field invariants. It is called by the lifecycle layer
// before any store round trip, so storage backends may assume a valid record.
func (b *BugRecord) Validate() error {
	if strings.TrimSpace(b.Title) == "" {
		return fmt.Errorf("%w: title is required", ErrInvalid)
	}
	if strings.TrimSpace(b.Description) == "" {
		return fmt.Errorf("%w: description is required", ErrInvalid)
	}
	if strings.TrimSpace(b.Module) == "" {
		return fmt.Errorf("%w: module is required", ErrInvalid)
	}
	if !b.Severity.IsValid() {
		return fmt.Errorf("%w: severity %q (want low|medium|high|critical)", ErrInvalid, b.Severity)
	}
	if !b.Status.IsValid() {
		return fmt.Errorf("%w: status %q (want open|in-progress|resolved|closed)", ErrInvalid, b.Status)
	}
	if !b.Priority.IsValid() {
		return fmt.Errorf("%w: priority %q (want P0-P3 or %s)", ErrInvalid, b.Priority, PriorityNone)
	}
	return nil
}

// SetDefaults fills the fields a caller may omit. Status is not defaulted
// here: the lifecycle layer forces StatusOpen on create unconditionally.
func (b *BugRecord) SetDefaults() {
	if b.Assignee == "" {
		b.Assignee = Unassigned
	}
	if b.GitCommit == "" {
		b.GitCommit = NoCommit
	}
	if b.Priority == "" {
		b.Priority = PriorityNone
	}
	if b.Logs == nil {
		b.Logs = []LogEntry{}
	}
}

// LogEntry is one timestamped activity line inside a bug's log sequence.
// Status is a free-form short tag ("failed", "triaged"), stored lower-cased.
type LogEntry struct {
	Timestamp time.Time `json:"timestamp"`
	Status    string    `json:"status"`
	Details   string    `json:"details"`
}

// Validate checks the entry before it is pushed onto a record.
func (e *LogEntry) Validate() error {
	if strings.TrimSpace(e.Status) == "" {
		return fmt.Errorf("%w: log status is required", ErrInvalid)
	}
	if strings.TrimSpace(e.Details) == "" {
		return fmt.Errorf("%w: log details are required", ErrInvalid)
	}
	return nil
}

// Status represents the workflow state of a bug
type Status string

// Bug status constants
const (
	StatusOpen       Status = "open"
	StatusInProgress Status = "in-progress"
	StatusResolved   Status = "resolved"
	StatusClosed     Status = "closed"
)

// IsValid checks if the status value is valid
func (s Status) IsValid() bool {
	switch s {
	case StatusOpen, StatusInProgress, StatusResolved, StatusClosed:
		return true
	}
	return false
}

// ParseStatus lower-cases and validates raw input. Normalization happens
// here, once, so an invalid string never becomes a Status value.
func ParseStatus(raw string) (Status, error) {
	s := Status(strings.ToLower(strings.TrimSpace(raw)))
	if !s.IsValid() {
		return "", fmt.Errorf("%w: status %q (want open|in-progress|resolved|closed)", ErrInvalid, raw)
	}
	return s, nil
}

// Severity grades how bad the bug is
type Severity string

// Severity constants
const (
	SeverityLow      Severity = "low"
	SeverityMedium   Severity = "medium"
	SeverityHigh     Severity = "high"
	SeverityCritical Severity = "critical"
)

// IsValid checks if the severity value is valid
func (s Severity) IsValid() bool {
	switch s {
	case SeverityLow, SeverityMedium, SeverityHigh, SeverityCritical:
		return true
	}
	return false
}

// ParseSeverity lower-cases and validates raw input.
func ParseSeverity(raw string) (Severity, error) {
	s := Severity(strings.ToLower(strings.TrimSpace(raw)))
	if !s.IsValid() {
		return "", fmt.Errorf("%w: severity %q (want low|medium|high|critical)", ErrInvalid, raw)
	}
	return s, nil
}

// Priority ranks scheduling urgency, P0 highest. Unlike Severity it is
// optional: records created without one carry PriorityNone.
type Priority string

// Priority constants
const (
	PriorityP0   Priority = "P0"
	PriorityP1   Priority = "P1"
	PriorityP2   Priority = "P2"
	PriorityP3   Priority = "P3"
	PriorityNone Priority = "N/A"
)

// IsValid checks if the priority value is valid
func (p Priority) IsValid() bool {
	switch p {
	case PriorityP0, PriorityP1, PriorityP2, PriorityP3, PriorityNone:
		return true
	}
	return false
}

// ParsePriority normalizes raw input to a canonical priority. It accepts
// the full form ("p2", "P2") and the bare digit ("2"); empty input means
// PriorityNone.
func ParsePriority(raw string) (Priority, error) {
	t := strings.TrimSpace(raw)
	if t == "" || strings.EqualFold(t, string(PriorityNone)) {
		return PriorityNone, nil
	}
	if len(t) == 1 && t[0] >= '0' && t[0] <= '3' {
		t = "P" + t
	}
	p := Priority(strings.ToUpper(t))
	switch p {
	case PriorityP0, PriorityP1, PriorityP2, PriorityP3:
		return p, nil
	}
	return "", fmt.Errorf("%w: priority %q (want P0-P3)", ErrInvalid, raw)
}

// AuditAction categorizes audit trail events
type AuditAction string

// Audit action constants
const (
	ActionCreateBug    AuditAction = "CREATE_BUG"
	ActionAddActivity  AuditAction = "ADD_ACTIVITY"
	ActionUpdateStatus AuditAction = "UPDATE_STATUS"
)

// AuditEvent is one audit trail entry. BugID is a weak reference: the
// event survives even if it points at a record that was never written.
type AuditEvent struct {
	ID        string      `json:"id,omitempty"`
	Timestamp time.Time   `json:"timestamp"`
	User      string      `json:"user"`
	Action    AuditAction `json:"action"`
	BugID     string      `json:"bug_id,omitempty"`
	Details   string      `json:"details,omitempty"`
}

// Filter narrows store-level bug queries. Nil pointer fields and empty
// strings mean "no constraint"; every populated field must match (AND).
type Filter struct {
	Status   *Status
	Module   string
	Severity *Severity

	// Date ranges
	CreatedAfter  *time.Time
	CreatedBefore *time.Time

	Limit int
}

// Statistics provides aggregate record counts
type Statistics struct {
	Total      int `json:"total"`
	Open       int `json:"open"`
	InProgress int `json:"in_progress"`
	Resolved   int `json:"resolved"`
	Closed     int `json:"closed"`
	Low        int `json:"low"`
	Medium     int `json:"medium"`
	High       int `json:"high"`
	Critical   int `json:"critical"`
}
