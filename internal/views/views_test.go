package views

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/webqa-tools/bugtrack/internal/types"
)

func TestBuiltinViews(t *testing.T) {
	expected := []string{"open", "active", "resolved", "closed", "critical", "unassigned"}

	for _, name := range expected {
		view, ok := BuiltinViews[name]
		if !ok {
			t.Errorf("missing built-in view: %s", name)
			continue
		}
		if view.Name == "" {
			t.Errorf("view %s has empty Name", name)
		}
		if view.Description == "" {
			t.Errorf("view %s has empty Description", name)
		}
	}
}

func TestGet(t *testing.T) {
	view, err := Get("open", "")
	if err != nil {
		t.Fatalf("Get(open): %v", err)
	}
	if view.Status != "open" {
		t.Errorf("got Status=%q, want 'open'", view.Status)
	}

	// Lookup normalizes case and whitespace.
	if _, err := Get("  OPEN ", ""); err != nil {
		t.Errorf("Get('  OPEN '): %v", err)
	}

	if _, err := Get("nonexistent", ""); err == nil {
		t.Error("Get(nonexistent) should return error")
	}
}

func TestIsBuiltin(t *testing.T) {
	if !IsBuiltin("open") {
		t.Error("open should be builtin")
	}
	if IsBuiltin("myview") {
		t.Error("myview should not be builtin")
	}
}

func TestNames(t *testing.T) {
	names, err := Names("")
	if err != nil {
		t.Fatalf("Names: %v", err)
	}

	for i := 1; i < len(names); i++ {
		if names[i-1] > names[i] {
			t.Errorf("names not sorted: %v", names)
			break
		}
	}

	found := make(map[string]bool)
	for _, name := range names {
		found[name] = true
	}
	for _, expected := range []string{"open", "critical", "unassigned"} {
		if !found[expected] {
			t.Errorf("expected view %s not in list", expected)
		}
	}
}

func TestUserViews(t *testing.T) {
	tmpDir := t.TempDir()

	content := `
[views.checkout-p0]
description = "Checkout blockers"
module = "checkout"
priority = "P0"

[views.open]
description = "Open bugs in payments only"
status = "open"
module = "payments"
`
	if err := os.WriteFile(filepath.Join(tmpDir, "views.toml"), []byte(content), 0o600); err != nil {
		t.Fatal(err)
	}

	all, err := All(tmpDir)
	if err != nil {
		t.Fatalf("All: %v", err)
	}

	// User view is present with the key as fallback name.
	custom, ok := all["checkout-p0"]
	if !ok {
		t.Fatal("user view checkout-p0 not loaded")
	}
	if custom.Name != "checkout-p0" {
		t.Errorf("got Name=%q, want fallback to key", custom.Name)
	}
	if custom.Priority != "P0" {
		t.Errorf("got Priority=%q, want 'P0'", custom.Priority)
	}

	// User view overrides the built-in with the same name.
	open, ok := all["open"]
	if !ok {
		t.Fatal("open view missing after merge")
	}
	if open.Module != "payments" {
		t.Errorf("user override not applied: Module=%q", open.Module)
	}

	// Built-ins without overrides survive the merge.
	if _, ok := all["critical"]; !ok {
		t.Error("built-in critical view missing after merge")
	}
}

func TestSaveRoundTrip(t *testing.T) {
	tmpDir := t.TempDir()

	err := Save(tmpDir, "Mine", View{
		Description: "My bugs",
		Assignee:    "alice",
		Limit:       10,
	})
	if err != nil {
		t.Fatalf("Save: %v", err)
	}

	view, err := Get("mine", tmpDir)
	if err != nil {
		t.Fatalf("Get after Save: %v", err)
	}
	if view.Assignee != "alice" {
		t.Errorf("got Assignee=%q, want 'alice'", view.Assignee)
	}
	if view.Limit != 10 {
		t.Errorf("got Limit=%d, want 10", view.Limit)
	}

	// Saving again updates in place.
	if err := Save(tmpDir, "mine", View{Description: "Mine v2", Assignee: "bob"}); err != nil {
		t.Fatalf("Save update: %v", err)
	}
	view, err = Get("mine", tmpDir)
	if err != nil {
		t.Fatalf("Get after update: %v", err)
	}
	if view.Assignee != "bob" {
		t.Errorf("got Assignee=%q after update, want 'bob'", view.Assignee)
	}
}

func TestViewFilter(t *testing.T) {
	v := View{
		Status:   "OPEN",
		Module:   "checkout",
		Severity: "high",
		Priority: "p1",
		Assignee: "ali",
		Search:   "timeout",
		Limit:    5,
	}

	filter, preds, err := v.Filter()
	if err != nil {
		t.Fatalf("Filter: %v", err)
	}

	if filter.Status == nil || *filter.Status != types.StatusOpen {
		t.Errorf("filter.Status = %v, want open", filter.Status)
	}
	if filter.Severity == nil || *filter.Severity != types.SeverityHigh {
		t.Errorf("filter.Severity = %v, want high", filter.Severity)
	}
	if filter.Module != "checkout" {
		t.Errorf("filter.Module = %q", filter.Module)
	}
	if filter.Limit != 5 {
		t.Errorf("filter.Limit = %d, want 5", filter.Limit)
	}
	if len(preds) != 3 {
		t.Fatalf("got %d predicates, want 3", len(preds))
	}

	match := &types.BugRecord{
		Title:    "Timeout during card capture",
		Module:   "checkout",
		Severity: types.SeverityHigh,
		Priority: types.PriorityP1,
		Status:   types.StatusOpen,
		Assignee: "alice",
	}
	for i, pred := range preds {
		if !pred(match) {
			t.Errorf("predicate %d rejected a matching record", i)
		}
	}

	// Empty view means no constraints at all.
	filter, preds, err = View{}.Filter()
	if err != nil {
		t.Fatalf("empty Filter: %v", err)
	}
	if filter.Status != nil || filter.Severity != nil || filter.Module != "" || len(preds) != 0 {
		t.Errorf("empty view produced constraints: %+v, %d preds", filter, len(preds))
	}
}

func TestViewFilterRejectsBadEnums(t *testing.T) {
	if _, _, err := (View{Status: "wontfix"}).Filter(); err == nil {
		t.Error("bad status accepted")
	}
	if _, _, err := (View{Severity: "catastrophic"}).Filter(); err == nil {
		t.Error("bad severity accepted")
	}
	if _, _, err := (View{Priority: "P9"}).Filter(); err == nil {
		t.Error("bad priority accepted")
	}
}
