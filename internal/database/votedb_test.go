package database

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/mmotop-tools/mmotopvote/internal/model"
)

func testRecord(id string, started time.Time, outcome model.Outcome) *model.RunRecord {
	return &model.RunRecord{
		ID:          id,
		StartedAt:   started,
		FinishedAt:  started.Add(90 * time.Second),
		Outcome:     outcome,
		VoteURL:     "https://wow.mmotop.ru/servers/5130/votes/new",
		ServerRate:  "x2",
		AccountName: "Tichondrius",
	}
}

// TestOpenWithoutCreate verifies that opening a missing database without
// the create option fails with ErrDatabaseNotFound.
func TestOpenWithoutCreate(t *testing.T) {
	t.Parallel()

	_, err := Open(t.TempDir(), Options{CreateIfNotExists: false})
	if !errors.Is(err, ErrDatabaseNotFound) {
		t.Errorf("expected ErrDatabaseNotFound, got %v", err)
	}
}

// TestSaveAndListRuns verifies the round trip through the runs table and
// the newest-first ordering of ListRuns.
func TestSaveAndListRuns(t *testing.T) {
	t.Parallel()

	db, err := Open(t.TempDir(), Options{CreateIfNotExists: true, EnableWAL: true})
	if err != nil {
		t.Fatalf("failed to open database: %v", err)
	}
	defer db.Close()

	ctx := context.Background()
	base := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)

	records := []*model.RunRecord{
		testRecord("run-1", base, model.OutcomeVoted),
		testRecord("run-2", base.Add(24*time.Hour), model.OutcomeAlreadyVoted),
		testRecord("run-3", base.Add(48*time.Hour), model.OutcomeCaptchaUnsolved),
	}
	records[1].Countdown = "17:23:05"
	records[1].AccountName = ""

	for _, rec := range records {
		if err := db.SaveRun(ctx, rec); err != nil {
			t.Fatalf("failed to save run %s: %v", rec.ID, err)
		}
	}

	t.Run("lists newest first", func(t *testing.T) {
		got, err := db.ListRuns(ctx, 0)
		if err != nil {
			t.Fatalf("failed to list runs: %v", err)
		}
		if len(got) != 3 {
			t.Fatalf("expected 3 runs, got %d", len(got))
		}
		if got[0].ID != "run-3" || got[2].ID != "run-1" {
			t.Errorf("unexpected order: %s, %s, %s", got[0].ID, got[1].ID, got[2].ID)
		}
	})

	t.Run("limit caps the result", func(t *testing.T) {
		got, err := db.ListRuns(ctx, 1)
		if err != nil {
			t.Fatalf("failed to list runs: %v", err)
		}
		if len(got) != 1 {
			t.Fatalf("expected 1 run, got %d", len(got))
		}
		if got[0].ID != "run-3" {
			t.Errorf("expected the newest run, got %s", got[0].ID)
		}
	})

	t.Run("fields round-trip", func(t *testing.T) {
		got, err := db.ListRuns(ctx, 0)
		if err != nil {
			t.Fatalf("failed to list runs: %v", err)
		}
		rec := got[1] // run-2
		if rec.Outcome != model.OutcomeAlreadyVoted {
			t.Errorf("unexpected outcome: %v", rec.Outcome)
		}
		if rec.Countdown != "17:23:05" {
			t.Errorf("unexpected countdown: %q", rec.Countdown)
		}
		if !rec.StartedAt.Equal(base.Add(24 * time.Hour)) {
			t.Errorf("unexpected StartedAt: %v", rec.StartedAt)
		}
		if rec.ServerRate != "x2" {
			t.Errorf("unexpected ServerRate: %q", rec.ServerRate)
		}
	})
}

// TestOpenExisting verifies a database created by one open can be read by
// a later open without the create option.
func TestOpenExisting(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	ctx := context.Background()

	db, err := Open(dir, Options{CreateIfNotExists: true})
	if err != nil {
		t.Fatalf("failed to create database: %v", err)
	}
	rec := testRecord("run-1", time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC), model.OutcomeVoted)
	if err := db.SaveRun(ctx, rec); err != nil {
		t.Fatalf("failed to save run: %v", err)
	}
	if err := db.Close(); err != nil {
		t.Fatalf("failed to close database: %v", err)
	}

	reopened, err := Open(dir, Options{CreateIfNotExists: false})
	if err != nil {
		t.Fatalf("failed to reopen database: %v", err)
	}
	defer reopened.Close()

	got, err := reopened.ListRuns(ctx, 0)
	if err != nil {
		t.Fatalf("failed to list runs: %v", err)
	}
	if len(got) != 1 || got[0].ID != "run-1" {
		t.Errorf("unexpected runs after reopen: %+v", got)
	}
}

// TestEmptyList verifies listing an empty database returns no records and
// no error.
func TestEmptyList(t *testing.T) {
	t.Parallel()

	db, err := Open(t.TempDir(), Options{CreateIfNotExists: true})
	if err != nil {
		t.Fatalf("failed to open database: %v", err)
	}
	defer db.Close()

	got, err := db.ListRuns(context.Background(), 0)
	if err != nil {
		t.Fatalf("failed to list runs: %v", err)
	}
	if len(got) != 0 {
		t.Errorf("expected no runs, got %d", len(got))
	}
}
