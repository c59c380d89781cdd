// Package views provides named, reusable bug filters for bt list.
// Built-in views cover the everyday triage queries; user-defined views are
// loaded from views.toml and may override built-ins with the same name.
package views

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/BurntSushi/toml"

	"github.com/webqa-tools/bugtrack/internal/query"
	"github.com/webqa-tools/bugtrack/internal/types"
)

// View is a saved list filter. String fields are parsed lazily by Filter,
// so a views.toml with a typo fails at use time with a clear error rather
// than at load time.
type View struct {
	Name        string `toml:"name"`        // display name
	Description string `toml:"description"` // one-line summary for bt views
	Status      string `toml:"status"`      // open, in-progress, resolved, closed
	Module      string `toml:"module"`      // exact module match
	Severity    string `toml:"severity"`    // low, medium, high, critical
	Priority    string `toml:"priority"`    // P0..P3 or N/A
	Assignee    string `toml:"assignee"`    // substring match
	Search      string `toml:"search"`      // matches title, description, module
	Limit       int    `toml:"limit"`
}

// BuiltinViews contains the default view definitions.
// These are compiled into the binary.
var BuiltinViews = map[string]View{
	"open": {
		Name:        "Open",
		Description: "Bugs nobody has picked up yet",
		Status:      "open",
	},
	"active": {
		Name:        "Active",
		Description: "Bugs currently being worked on",
		Status:      "in-progress",
	},
	"resolved": {
		Name:        "Resolved",
		Description: "Bugs awaiting verification",
		Status:      "resolved",
	},
	"closed": {
		Name:        "Closed",
		Description: "Bugs verified and closed",
		Status:      "closed",
	},
	"critical": {
		Name:        "Critical",
		Description: "Highest-severity bugs across all statuses",
		Severity:    "critical",
	},
	"unassigned": {
		Name:        "Unassigned",
		Description: "Bugs without an owner",
		Assignee:    types.Unassigned,
	},
}

// UserViews holds views loaded from the user config file.
type UserViews struct {
	Views map[string]View `toml:"views"`
}

// LoadUserViews loads views from views.toml in dir if it exists.
func LoadUserViews(dir string) (map[string]View, error) {
	path := filepath.Join(dir, "views.toml")
	data, err := os.ReadFile(path) // #nosec G304 -- path is constructed from the config dir
	if os.IsNotExist(err) {
		return nil, nil // No user views, that's fine
	}
	if err != nil {
		return nil, fmt.Errorf("read views.toml: %w", err)
	}

	var userViews UserViews
	if err := toml.Unmarshal(data, &userViews); err != nil {
		return nil, fmt.Errorf("parse views.toml: %w", err)
	}

	for name, view := range userViews.Views {
		if view.Name == "" {
			view.Name = name
		}
		userViews.Views[name] = view
	}

	return userViews.Views, nil
}

// All returns merged built-in and user views.
// User views override built-in views with the same name.
func All(dir string) (map[string]View, error) {
	result := make(map[string]View)

	for name, view := range BuiltinViews {
		result[name] = view
	}

	userViews, err := LoadUserViews(dir)
	if err != nil {
		return nil, err
	}
	for name, view := range userViews {
		result[name] = view
	}

	return result, nil
}

// Get looks up a view by name, checking user views first.
func Get(name string, dir string) (*View, error) {
	name = strings.ToLower(strings.TrimSpace(name))

	all, err := All(dir)
	if err != nil {
		return nil, err
	}

	view, ok := all[name]
	if !ok {
		return nil, fmt.Errorf("unknown view: %s", name)
	}

	return &view, nil
}

// Save adds or updates a view in views.toml under dir.
func Save(dir, name string, view View) error {
	path := filepath.Join(dir, "views.toml")

	var userViews UserViews
	data, err := os.ReadFile(path) // #nosec G304 -- path is constructed from the config dir
	if err == nil {
		if err := toml.Unmarshal(data, &userViews); err != nil {
			return fmt.Errorf("parse views.toml: %w", err)
		}
	} else if !os.IsNotExist(err) {
		return fmt.Errorf("read views.toml: %w", err)
	}

	if userViews.Views == nil {
		userViews.Views = make(map[string]View)
	}

	if view.Name == "" {
		view.Name = name
	}
	userViews.Views[strings.ToLower(strings.TrimSpace(name))] = view

	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("create config dir: %w", err)
	}

	f, err := os.Create(path) // #nosec G304 -- path is constructed from the config dir
	if err != nil {
		return fmt.Errorf("create views.toml: %w", err)
	}
	defer f.Close()

	encoder := toml.NewEncoder(f)
	if err := encoder.Encode(userViews); err != nil {
		return fmt.Errorf("encode views.toml: %w", err)
	}

	return nil
}

// Names returns the sorted list of all view names.
func Names(dir string) ([]string, error) {
	all, err := All(dir)
	if err != nil {
		return nil, err
	}

	names := make([]string, 0, len(all))
	for name := range all {
		names = append(names, name)
	}
	sort.Strings(names)

	return names, nil
}

// IsBuiltin returns true if the view is a built-in (not user-defined).
func IsBuiltin(name string) bool {
	_, ok := BuiltinViews[name]
	return ok
}

// Filter translates the view into a store-level filter plus in-memory
// predicates for the fields the store cannot match directly.
func (v View) Filter() (types.Filter, []query.Predicate, error) {
	var filter types.Filter
	var preds []query.Predicate

	if v.Status != "" {
		status, err := types.ParseStatus(v.Status)
		if err != nil {
			return types.Filter{}, nil, fmt.Errorf("view status: %w", err)
		}
		filter.Status = &status
	}
	if v.Severity != "" {
		severity, err := types.ParseSeverity(v.Severity)
		if err != nil {
			return types.Filter{}, nil, fmt.Errorf("view severity: %w", err)
		}
		filter.Severity = &severity
	}
	filter.Module = v.Module
	filter.Limit = v.Limit

	if v.Priority != "" {
		priority, err := types.ParsePriority(v.Priority)
		if err != nil {
			return types.Filter{}, nil, fmt.Errorf("view priority: %w", err)
		}
		preds = append(preds, query.ByPriority(priority))
	}
	if v.Assignee != "" {
		preds = append(preds, query.ByAssignee(v.Assignee))
	}
	if v.Search != "" {
		preds = append(preds, query.BySearch(v.Search))
	}

	return filter, preds, nil
}
