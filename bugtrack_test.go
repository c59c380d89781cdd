package bugtrack_test

import (
	"context"
	"errors"
	"testing"

	"github.com/webqa-tools/bugtrack"
)

// The facade is exercised end to end against the in-memory store,
// walking the flow an embedder goes through.
func TestEmbeddedLifecycle(t *testing.T) {
	ctx := context.Background()
	store := bugtrack.NewMemoryStore()
	defer func() { _ = store.Close(ctx) }()

	trk := bugtrack.New(store, "integration-suite")

	id, err := trk.CreateBug(ctx, bugtrack.CreateBugInput{
		Title:       "Login broken",
		Description: "500 on POST /login",
		Module:      "auth",
		Severity:    "high",
	})
	if err != nil {
		t.Fatalf("CreateBug failed: %v", err)
	}

	if err := trk.AppendLog(ctx, id, "failed", "unit test failed"); err != nil {
		t.Fatalf("AppendLog failed: %v", err)
	}
	if err := trk.TransitionStatus(ctx, id, bugtrack.StatusResolved); err != nil {
		t.Fatalf("TransitionStatus failed: %v", err)
	}

	bug, err := trk.GetBug(ctx, id)
	if err != nil {
		t.Fatalf("GetBug failed: %v", err)
	}
	if bug.Status != bugtrack.StatusResolved {
		t.Errorf("status = %q, want resolved", bug.Status)
	}
	if len(bug.Logs) != 1 {
		t.Fatalf("len(logs) = %d, want 1", len(bug.Logs))
	}
	if bug.Logs[0].Status != "failed" {
		t.Errorf("log status = %q, want failed", bug.Logs[0].Status)
	}

	engine := bugtrack.NewEngine(store)
	bugs, err := engine.List(ctx, bugtrack.Filter{})
	if err != nil {
		t.Fatalf("List failed: %v", err)
	}
	if len(bugs) != 1 || bugs[0].ID != id {
		t.Errorf("List returned %d bugs, want the one created", len(bugs))
	}
}

func TestSentinelErrors(t *testing.T) {
	ctx := context.Background()
	store := bugtrack.NewMemoryStore()
	trk := bugtrack.New(store, "integration-suite")

	if _, err := trk.GetBug(ctx, "no-such-id"); !errors.Is(err, bugtrack.ErrNotFound) {
		t.Errorf("GetBug on bogus id = %v, want ErrNotFound", err)
	}
	if _, err := trk.CreateBug(ctx, bugtrack.CreateBugInput{Title: "x"}); !errors.Is(err, bugtrack.ErrInvalid) {
		t.Errorf("CreateBug without required fields = %v, want ErrInvalid", err)
	}
}
