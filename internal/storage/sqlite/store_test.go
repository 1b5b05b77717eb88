package sqlite

import (
	"context"
	"errors"
	"path/filepath"
	"testing"
	"time"

	"github.com/boyter/titfortat/internal/storage"
)

func TestOpenRequiresPath(t *testing.T) {
	t.Parallel()

	if _, err := Open(""); err == nil {
		t.Fatal("expected empty path error")
	}
}

func TestSaveGetRunRoundTrip(t *testing.T) {
	t.Parallel()

	store := openTempStore(t)
	now := time.Date(2026, time.March, 4, 9, 15, 0, 0, time.UTC)
	input := storage.Run{
		ID:        "run-1",
		Kind:      "tournament",
		Scenario:  "Tariff War",
		Rounds:    20,
		Seed:      18446744073709551615,
		CreatedAt: now,
		Document:  []byte(`{"type":"tournament"}`),
	}
	saved, err := store.SaveRun(context.Background(), input)
	if err != nil {
		t.Fatalf("save run: %v", err)
	}
	if saved.ID != "run-1" {
		t.Fatalf("id = %q", saved.ID)
	}

	got, err := store.GetRun(context.Background(), "run-1")
	if err != nil {
		t.Fatalf("get run: %v", err)
	}
	if got.Kind != input.Kind || got.Scenario != input.Scenario || got.Rounds != input.Rounds {
		t.Fatalf("got %+v, want %+v", got, input)
	}
	if got.Seed != input.Seed {
		t.Fatalf("seed = %d, want %d", got.Seed, input.Seed)
	}
	if !got.CreatedAt.Equal(now) {
		t.Fatalf("created_at = %v, want %v", got.CreatedAt, now)
	}
	if string(got.Document) != string(input.Document) {
		t.Fatalf("document = %s", got.Document)
	}
}

func TestSaveRunAssignsIDAndTime(t *testing.T) {
	t.Parallel()

	store := openTempStore(t)
	saved, err := store.SaveRun(context.Background(), storage.Run{Kind: "game", Document: []byte(`{}`)})
	if err != nil {
		t.Fatalf("save run: %v", err)
	}
	if saved.ID == "" {
		t.Fatal("expected generated id")
	}
	if saved.CreatedAt.IsZero() {
		t.Fatal("expected creation time")
	}
	if _, err := store.GetRun(context.Background(), saved.ID); err != nil {
		t.Fatalf("get generated run: %v", err)
	}
}

func TestSaveRunValidation(t *testing.T) {
	t.Parallel()

	store := openTempStore(t)
	if _, err := store.SaveRun(context.Background(), storage.Run{Document: []byte(`{}`)}); err == nil {
		t.Fatal("expected kind error")
	}
	if _, err := store.SaveRun(context.Background(), storage.Run{Kind: "game"}); err == nil {
		t.Fatal("expected document error")
	}
}

func TestSaveRunDuplicate(t *testing.T) {
	t.Parallel()

	store := openTempStore(t)
	run := storage.Run{ID: "dup", Kind: "game", Document: []byte(`{}`)}
	if _, err := store.SaveRun(context.Background(), run); err != nil {
		t.Fatalf("save run: %v", err)
	}
	_, err := store.SaveRun(context.Background(), run)
	if !errors.Is(err, storage.ErrAlreadyExists) {
		t.Fatalf("duplicate save error = %v, want %v", err, storage.ErrAlreadyExists)
	}
}

func TestGetRunNotFound(t *testing.T) {
	t.Parallel()

	store := openTempStore(t)
	if _, err := store.GetRun(context.Background(), "missing"); !errors.Is(err, storage.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
	if _, err := store.GetRun(context.Background(), " "); err == nil {
		t.Fatal("expected id error")
	}
}

func TestListRunsNewestFirst(t *testing.T) {
	t.Parallel()

	store := openTempStore(t)
	base := time.Date(2026, time.March, 4, 10, 0, 0, 0, time.UTC)
	for i, id := range []string{"old", "mid", "new"} {
		if _, err := store.SaveRun(context.Background(), storage.Run{
			ID:        id,
			Kind:      "game",
			CreatedAt: base.Add(time.Duration(i) * time.Minute),
			Document:  []byte(`{}`),
		}); err != nil {
			t.Fatalf("save %s: %v", id, err)
		}
	}

	runs, err := store.ListRuns(context.Background(), 2)
	if err != nil {
		t.Fatalf("list runs: %v", err)
	}
	if len(runs) != 2 || runs[0].ID != "new" || runs[1].ID != "mid" {
		t.Fatalf("unexpected runs %+v", runs)
	}

	all, err := store.ListRuns(context.Background(), 0)
	if err != nil {
		t.Fatalf("list runs: %v", err)
	}
	if len(all) != 3 {
		t.Fatalf("expected 3 runs, got %d", len(all))
	}
}

func TestReopenKeepsRuns(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "archive.db")
	store, err := Open(path)
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	if _, err := store.SaveRun(context.Background(), storage.Run{ID: "keep", Kind: "game", Document: []byte(`{}`)}); err != nil {
		t.Fatalf("save: %v", err)
	}
	if err := store.Close(); err != nil {
		t.Fatalf("close: %v", err)
	}

	reopened, err := Open(path)
	if err != nil {
		t.Fatalf("reopen: %v", err)
	}
	defer reopened.Close()
	if _, err := reopened.GetRun(context.Background(), "keep"); err != nil {
		t.Fatalf("get after reopen: %v", err)
	}
}

func TestCanceledContext(t *testing.T) {
	t.Parallel()

	store := openTempStore(t)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if _, err := store.ListRuns(ctx, 1); !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context.Canceled, got %v", err)
	}
}

func TestExtractUpMigration(t *testing.T) {
	t.Parallel()

	got := extractUpMigration("-- +migrate Up\nCREATE TABLE a (x);\n-- +migrate Down\nDROP TABLE a;\n")
	if got != "\nCREATE TABLE a (x);\n" {
		t.Fatalf("up section = %q", got)
	}
	if extractUpMigration("SELECT 1;") != "SELECT 1;" {
		t.Fatal("expected whole file without markers")
	}
}

func openTempStore(t *testing.T) *Store {
	t.Helper()

	store, err := Open(filepath.Join(t.TempDir(), "archive.db"))
	if err != nil {
		t.Fatalf("open store: %v", err)
	}
	t.Cleanup(func() {
		if err := store.Close(); err != nil {
			t.Fatalf("close store: %v", err)
		}
	})
	return store
}
