// Package export renders bug records for transfer out of the system.
//
// Three formats: CSV for spreadsheets (a flat projection of the scalar
// fields), JSONL for machine interchange (full records, one per line),
// and YAML for human inspection. All writers are pure functions of their
// input slice; none touch the store.
package export

import (
	"bytes"
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"strconv"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/webqa-tools/bugtrack/internal/types"
)

// csvHeader fixes the tabular column order. Appending columns is safe;
// reordering breaks downstream spreadsheets.
var csvHeader = []string{
	"id", "title", "description", "module", "severity", "priority",
	"status", "assignee", "git_commit", "created_at", "updated_at", "log_count",
}

// ToTabular flattens records into CSV: one header row plus one row per
// record, in the order given. Log entries do not fit a flat row and are
// projected down to a count. No records means an empty payload, not a
// lone header.
func ToTabular(records []*types.BugRecord) ([]byte, error) {
	if len(records) == 0 {
		return []byte{}, nil
	}

	var buf bytes.Buffer
	w := csv.NewWriter(&buf)
	if err := w.Write(csvHeader); err != nil {
		return nil, fmt.Errorf("failed to write csv header: %w", err)
	}
	for _, r := range records {
		row := []string{
			r.ID,
			r.Title,
			r.Description,
			r.Module,
			string(r.Severity),
			string(r.Priority),
			string(r.Status),
			r.Assignee,
			r.GitCommit,
			r.CreatedAt.UTC().Format(time.RFC3339),
			r.UpdatedAt.UTC().Format(time.RFC3339),
			strconv.Itoa(len(r.Logs)),
		}
		if err := w.Write(row); err != nil {
			return nil, fmt.Errorf("failed to write csv row for %s: %w", r.ID, err)
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return nil, fmt.Errorf("failed to flush csv: %w", err)
	}
	return buf.Bytes(), nil
}

// WriteJSONL writes full records one JSON object per line
func WriteJSONL(w io.Writer, records []*types.BugRecord) error {
	enc := json.NewEncoder(w)
	for _, r := range records {
		if err := enc.Encode(r); err != nil {
			return fmt.Errorf("failed to encode %s: %w", r.ID, err)
		}
	}
	return nil
}

// yamlRecord mirrors BugRecord with explicit keys so the YAML output
// matches the JSON field names instead of lowercased Go identifiers.
type yamlRecord struct {
	ID          string    `yaml:"id"`
	Title       string    `yaml:"title"`
	Description string    `yaml:"description"`
	Module      string    `yaml:"module"`
	Severity    string    `yaml:"severity"`
	Priority    string    `yaml:"priority"`
	Status      string    `yaml:"status"`
	Assignee    string    `yaml:"assignee"`
	GitCommit   string    `yaml:"git_commit"`
	CreatedAt   time.Time `yaml:"created_at"`
	UpdatedAt   time.Time `yaml:"updated_at"`
	Logs        []yamlLog `yaml:"logs"`
}

type yamlLog struct {
	Timestamp time.Time `yaml:"timestamp"`
	Status    string    `yaml:"status"`
	Details   string    `yaml:"details"`
}

// WriteYAML writes full records as a YAML sequence
func WriteYAML(w io.Writer, records []*types.BugRecord) error {
	docs := make([]yamlRecord, 0, len(records))
	for _, r := range records {
		logs := make([]yamlLog, 0, len(r.Logs))
		for _, e := range r.Logs {
			logs = append(logs, yamlLog{Timestamp: e.Timestamp, Status: e.Status, Details: e.Details})
		}
		docs = append(docs, yamlRecord{
			ID:          r.ID,
			Title:       r.Title,
			Description: r.Description,
			Module:      r.Module,
			Severity:    string(r.Severity),
			Priority:    string(r.Priority),
			Status:      string(r.Status),
			Assignee:    r.Assignee,
			GitCommit:   r.GitCommit,
			CreatedAt:   r.CreatedAt,
			UpdatedAt:   r.UpdatedAt,
			Logs:        logs,
		})
	}
	enc := yaml.NewEncoder(w)
	defer enc.Close()
	if err := enc.Encode(docs); err != nil {
		return fmt.Errorf("failed to encode yaml: %w", err)
	}
	return nil
}
