package main

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/spf13/cobra"

	"github.com/webqa-tools/bugtrack/internal/query"
	"github.com/webqa-tools/bugtrack/internal/timeparsing"
	"github.com/webqa-tools/bugtrack/internal/types"
	"github.com/webqa-tools/bugtrack/internal/views"
)

// registerFilterFlags attaches the shared filter flag set used by list
// and export.
func registerFilterFlags(cmd *cobra.Command) {
	cmd.Flags().String("status", "", "Filter by status: open, in-progress, resolved, closed (or 'all')")
	cmd.Flags().StringP("module", "m", "", "Filter by exact module name")
	cmd.Flags().StringP("severity", "s", "", "Filter by severity: low, medium, high, critical (or 'all')")
	cmd.Flags().StringP("priority", "p", "", "Filter by exact priority: P0-P3 or N/A")
	cmd.Flags().StringP("assignee", "a", "", "Filter by assignee substring (case-insensitive)")
	cmd.Flags().String("search", "", "Substring search across title, description, and module")
	cmd.Flags().String("since", "", "Only bugs created after this time (-1d, '2 days ago', 2026-08-01)")
	cmd.Flags().String("until", "", "Only bugs created before this time")
	cmd.Flags().IntP("limit", "n", 0, "Maximum number of records (0 = no limit)")
	cmd.Flags().String("view", "", "Start from a saved view (see 'bt views')")
}

// viewsDir is where user-defined views.toml lives, next to the yaml
// config.
func viewsDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return "."
	}
	return filepath.Join(home, ".config", "bugtrack")
}

// buildListQuery turns the shared filter flags into a store-level filter
// plus in-memory predicates. With --view, the saved view supplies the
// baseline and explicitly set flags override its fields; "all" and empty
// both mean no constraint.
func buildListQuery(cmd *cobra.Command) (types.Filter, []query.Predicate, error) {
	var base views.View
	if name, _ := cmd.Flags().GetString("view"); name != "" {
		v, err := views.Get(name, viewsDir())
		if err != nil {
			return types.Filter{}, nil, err
		}
		base = *v
	}

	overlay := func(dst *string, flag string) {
		if cmd.Flags().Changed(flag) {
			*dst, _ = cmd.Flags().GetString(flag)
		}
	}
	overlay(&base.Status, "status")
	overlay(&base.Module, "module")
	overlay(&base.Severity, "severity")
	overlay(&base.Priority, "priority")
	overlay(&base.Assignee, "assignee")
	overlay(&base.Search, "search")
	if base.Status == "all" {
		base.Status = ""
	}
	if base.Severity == "all" {
		base.Severity = ""
	}
	if cmd.Flags().Changed("limit") {
		base.Limit, _ = cmd.Flags().GetInt("limit")
	}

	filter, preds, err := base.Filter()
	if err != nil {
		return types.Filter{}, nil, err
	}

	now := time.Now()
	if since, _ := cmd.Flags().GetString("since"); since != "" {
		t, err := timeparsing.ParseRelativeTime(since, now)
		if err != nil {
			return types.Filter{}, nil, fmt.Errorf("--since: %w", err)
		}
		filter.CreatedAfter = &t
	}
	if until, _ := cmd.Flags().GetString("until"); until != "" {
		t, err := timeparsing.ParseRelativeTime(until, now)
		if err != nil {
			return types.Filter{}, nil, fmt.Errorf("--until: %w", err)
		}
		filter.CreatedBefore = &t
	}

	return filter, preds, nil
}
