package types

import (
	"errors"
	"strings"
	"testing"
	"time"
)

func TestBugRecordValidation(t *testing.T) {
	valid := func() BugRecord {
		return BugRecord{
			Title:       "Login fails on empty password",
			Description: "Submitting the form with no password returns a 500",
			Module:      "auth",
			Severity:    SeverityHigh,
			Priority:    PriorityNone,
			Status:      StatusOpen,
		}
	}

	tests := []struct {
		name    string
		mutate  func(*BugRecord)
		wantErr bool
		errMsg  string
	}{
		{
			name:   "valid record",
			mutate: func(b *BugRecord) {},
		},
		{
			name:    "missing title",
			mutate:  func(b *BugRecord) { b.Title = "" },
			wantErr: true,
			errMsg:  "title is required",
		},
		{
			name:    "whitespace title",
			mutate:  func(b *BugRecord) { b.Title = "   " },
			wantErr: true,
			errMsg:  "title is required",
		},
		{
			name:    "missing description",
			mutate:  func(b *BugRecord) { b.Description = "" },
			wantErr: true,
			errMsg:  "description is required",
		},
		{
			name:    "missing module",
			mutate:  func(b *BugRecord) { b.Module = "\t" },
			wantErr: true,
			errMsg:  "module is required",
		},
		{
			name:    "invalid severity",
			mutate:  func(b *BugRecord) { b.Severity = Severity("urgent") },
			wantErr: true,
			errMsg:  "severity",
		},
		{
			name:    "invalid status",
			mutate:  func(b *BugRecord) { b.Status = Status("reopened") },
			wantErr: true,
			errMsg:  "status",
		},
		{
			name:    "invalid priority",
			mutate:  func(b *BugRecord) { b.Priority = Priority("P9") },
			wantErr: true,
			errMsg:  "priority",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b := valid()
			tt.mutate(&b)
			err := b.Validate()
			if tt.wantErr {
				if err == nil {
					t.Fatalf("Validate() expected error containing %q, got nil", tt.errMsg)
				}
				if !errors.Is(err, ErrInvalid) {
					t.Errorf("Validate() error = %v, want ErrInvalid in chain", err)
				}
				if !strings.Contains(err.Error(), tt.errMsg) {
					t.Errorf("Validate() error = %v, want error containing %q", err, tt.errMsg)
				}
			} else if err != nil {
				t.Errorf("Validate() unexpected error = %v", err)
			}
		})
	}
}

func TestBugRecordSetDefaults(t *testing.T) {
	b := BugRecord{Title: "t", Description: "d", Module: "m", Severity: SeverityLow}
	b.SetDefaults()

	if b.Assignee != Unassigned {
		t.Errorf("Assignee = %q, want %q", b.Assignee, Unassigned)
	}
	if b.GitCommit != NoCommit {
		t.Errorf("GitCommit = %q, want %q", b.GitCommit, NoCommit)
	}
	if b.Priority != PriorityNone {
		t.Errorf("Priority = %q, want %q", b.Priority, PriorityNone)
	}
	if b.Logs == nil {
		t.Error("Logs should be initialized to an empty slice, got nil")
	}
	if len(b.Logs) != 0 {
		t.Errorf("Logs should start empty, got %d entries", len(b.Logs))
	}

	// Defaults never clobber explicit values.
	b2 := BugRecord{Assignee: "kara", GitCommit: "abc123", Priority: PriorityP1}
	b2.SetDefaults()
	if b2.Assignee != "kara" || b2.GitCommit != "abc123" || b2.Priority != PriorityP1 {
		t.Errorf("SetDefaults overwrote explicit values: %+v", b2)
	}
}

func TestLogEntryValidation(t *testing.T) {
	tests := []struct {
		name    string
		entry   LogEntry
		wantErr bool
	}{
		{"valid", LogEntry{Timestamp: time.Now().UTC(), Status: "failed", Details: "assertion error in test_login"}, false},
		{"missing status", LogEntry{Details: "something happened"}, true},
		{"missing details", LogEntry{Status: "failed"}, true},
		{"whitespace details", LogEntry{Status: "failed", Details: "  "}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.entry.Validate()
			if tt.wantErr && err == nil {
				t.Error("Validate() expected error, got nil")
			}
			if !tt.wantErr && err != nil {
				t.Errorf("Validate() unexpected error = %v", err)
			}
			if tt.wantErr && !errors.Is(err, ErrInvalid) {
				t.Errorf("Validate() error = %v, want ErrInvalid in chain", err)
			}
		})
	}
}

func TestParseStatus(t *testing.T) {
	tests := []struct {
		input   string
		want    Status
		wantErr bool
	}{
		{"open", StatusOpen, false},
		{"OPEN", StatusOpen, false},
		{"In-Progress", StatusInProgress, false},
		{"  resolved  ", StatusResolved, false},
		{"closed", StatusClosed, false},
		{"in_progress", "", true},
		{"done", "", true},
		{"", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := ParseStatus(tt.input)
			if tt.wantErr {
				if err == nil {
					t.Fatalf("ParseStatus(%q) expected error, got %q", tt.input, got)
				}
				if !errors.Is(err, ErrInvalid) {
					t.Errorf("ParseStatus(%q) error = %v, want ErrInvalid in chain", tt.input, err)
				}
				return
			}
			if err != nil {
				t.Fatalf("ParseStatus(%q) unexpected error = %v", tt.input, err)
			}
			if got != tt.want {
				t.Errorf("ParseStatus(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}

func TestParseSeverity(t *testing.T) {
	tests := []struct {
		input   string
		want    Severity
		wantErr bool
	}{
		{"low", SeverityLow, false},
		{"Medium", SeverityMedium, false},
		{"HIGH", SeverityHigh, false},
		{"critical", SeverityCritical, false},
		{"catastrophic", "", true},
		{"", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := ParseSeverity(tt.input)
			if tt.wantErr {
				if err == nil {
					t.Fatalf("ParseSeverity(%q) expected error, got %q", tt.input, got)
				}
				return
			}
			if err != nil {
				t.Fatalf("ParseSeverity(%q) unexpected error = %v", tt.input, err)
			}
			if got != tt.want {
				t.Errorf("ParseSeverity(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}

func TestParsePriority(t *testing.T) {
	tests := []struct {
		input   string
		want    Priority
		wantErr bool
	}{
		{"", PriorityNone, false},
		{"n/a", PriorityNone, false},
		{"N/A", PriorityNone, false},
		{"p0", PriorityP0, false},
		{"P2", PriorityP2, false},
		{"2", PriorityP2, false},
		{"3", PriorityP3, false},
		{"p4", "", true},
		{"4", "", true},
		{"high", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := ParsePriority(tt.input)
			if tt.wantErr {
				if err == nil {
					t.Fatalf("ParsePriority(%q) expected error, got %q", tt.input, got)
				}
				return
			}
			if err != nil {
				t.Fatalf("ParsePriority(%q) unexpected error = %v", tt.input, err)
			}
			if got != tt.want {
				t.Errorf("ParsePriority(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}

func TestStatusIsValid(t *testing.T) {
	tests := []struct {
		status Status
		valid  bool
	}{
		{StatusOpen, true},
		{StatusInProgress, true},
		{StatusResolved, true},
		{StatusClosed, true},
		{Status("in_progress"), false},
		{Status("OPEN"), false},
		{Status(""), false},
	}

	for _, tt := range tests {
		if got := tt.status.IsValid(); got != tt.valid {
			t.Errorf("Status(%q).IsValid() = %v, want %v", tt.status, got, tt.valid)
		}
	}
}
