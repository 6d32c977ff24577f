package storage

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/vovakirdan/gridsnake/internal/core"
	"github.com/vovakirdan/gridsnake/internal/session"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	store, err := Open(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	t.Cleanup(func() { store.Close() })
	return store
}

func TestStoreOpenClose(t *testing.T) {
	tmpDir := t.TempDir()
	dbPath := filepath.Join(tmpDir, "nested", "test.db")

	store, err := Open(dbPath)
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	defer store.Close()

	// Check that the file was created
	if _, err := os.Stat(dbPath); os.IsNotExist(err) {
		t.Error("Database file was not created")
	}
}

func TestStoreReopenKeepsRuns(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "test.db")

	store, err := Open(dbPath)
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	id, err := store.CreateRun(session.RunInfo{Seed: 1, Width: 5, Height: 5, DenseThreshold: 0.3})
	if err != nil {
		t.Fatalf("CreateRun() failed: %v", err)
	}
	store.Close()

	store, err = Open(dbPath)
	if err != nil {
		t.Fatalf("second Open() failed: %v", err)
	}
	defer store.Close()

	if _, err := store.Run(id); err != nil {
		t.Errorf("Run() after reopen failed: %v", err)
	}
}

func TestRunLifecycle(t *testing.T) {
	store := openTestStore(t)

	info := session.RunInfo{Seed: 42, Width: 17, Height: 13, DenseThreshold: 0.3}
	id, err := store.CreateRun(info)
	if err != nil {
		t.Fatalf("CreateRun() failed: %v", err)
	}

	run, err := store.Run(id)
	if err != nil {
		t.Fatalf("Run() failed: %v", err)
	}
	if run.Outcome != session.StatePlaying || run.Moves != 0 {
		t.Errorf("new run = %+v, expected playing with no moves", run)
	}

	moves := []Move{
		{Seq: 1, Direction: core.DirLeft},
		{Seq: 2, Direction: core.DirUp, Ate: true},
		{Seq: 3, Direction: core.DirRight},
	}
	for _, m := range moves {
		if err := store.RecordMove(id, m); err != nil {
			t.Fatalf("RecordMove(%d) failed: %v", m.Seq, err)
		}
	}
	if err := store.FinishRun(id, session.StateLost, 3, 3); err != nil {
		t.Fatalf("FinishRun() failed: %v", err)
	}

	run, err = store.Run(id)
	if err != nil {
		t.Fatalf("Run() failed: %v", err)
	}
	expected := Run{
		ID:             id,
		Seed:           42,
		Width:          17,
		Height:         13,
		DenseThreshold: 0.3,
		Outcome:        session.StateLost,
		FinalSize:      3,
		Moves:          3,
		CreatedAt:      run.CreatedAt,
	}
	if *run != expected {
		t.Errorf("Run() = %+v, expected %+v", *run, expected)
	}

	got, err := store.Moves(id)
	if err != nil {
		t.Fatalf("Moves() failed: %v", err)
	}
	if len(got) != len(moves) {
		t.Fatalf("Moves() returned %d, expected %d", len(got), len(moves))
	}
	for i := range moves {
		if got[i] != moves[i] {
			t.Errorf("move %d = %+v, expected %+v", i, got[i], moves[i])
		}
	}
}

func TestRecordMoveRejectsDuplicateSeq(t *testing.T) {
	store := openTestStore(t)
	id, err := store.CreateRun(session.RunInfo{Seed: 1, Width: 5, Height: 5, DenseThreshold: 0.3})
	if err != nil {
		t.Fatalf("CreateRun() failed: %v", err)
	}

	if err := store.RecordMove(id, Move{Seq: 1, Direction: core.DirLeft}); err != nil {
		t.Fatalf("RecordMove() failed: %v", err)
	}
	if err := store.RecordMove(id, Move{Seq: 1, Direction: core.DirUp}); err == nil {
		t.Error("RecordMove() with a repeated seq should fail")
	}
}

func TestRunLookup(t *testing.T) {
	store := openTestStore(t)

	if _, err := store.Run("missing"); !errors.Is(err, ErrRunNotFound) {
		t.Errorf("Run(missing) err = %v, expected ErrRunNotFound", err)
	}
	if _, err := store.Run(""); !errors.Is(err, ErrRunNotFound) {
		t.Errorf("Run(\"\") err = %v, expected ErrRunNotFound", err)
	}
	if err := store.FinishRun("missing", session.StateWon, 3, 1); !errors.Is(err, ErrRunNotFound) {
		t.Errorf("FinishRun(missing) err = %v, expected ErrRunNotFound", err)
	}

	id, err := store.CreateRun(session.RunInfo{Seed: 1, Width: 5, Height: 5, DenseThreshold: 0.3})
	if err != nil {
		t.Fatalf("CreateRun() failed: %v", err)
	}
	run, err := store.Run(id[:8])
	if err != nil {
		t.Fatalf("Run(prefix) failed: %v", err)
	}
	if run.ID != id {
		t.Errorf("Run(prefix).ID = %s, expected %s", run.ID, id)
	}

	// A wildcard prefix matches both runs.
	if _, err := store.CreateRun(session.RunInfo{Seed: 2, Width: 5, Height: 5, DenseThreshold: 0.3}); err != nil {
		t.Fatalf("CreateRun() failed: %v", err)
	}
	if _, err := store.Run("%"); !errors.Is(err, ErrAmbiguousID) {
		t.Errorf("Run(%%) err = %v, expected ErrAmbiguousID", err)
	}
}

func TestRecentRuns(t *testing.T) {
	store := openTestStore(t)

	var ids []string
	for seed := int64(1); seed <= 5; seed++ {
		id, err := store.CreateRun(session.RunInfo{Seed: seed, Width: 5, Height: 5, DenseThreshold: 0.3})
		if err != nil {
			t.Fatalf("CreateRun() failed: %v", err)
		}
		ids = append(ids, id)
	}

	runs, err := store.RecentRuns(3)
	if err != nil {
		t.Fatalf("RecentRuns() failed: %v", err)
	}
	if len(runs) != 3 {
		t.Fatalf("RecentRuns(3) returned %d runs", len(runs))
	}
	// Newest first.
	if runs[0].ID != ids[4] || runs[2].ID != ids[2] {
		t.Errorf("RecentRuns() order = %s, %s, %s", runs[0].ID, runs[1].ID, runs[2].ID)
	}

	all, err := store.RecentRuns(0)
	if err != nil {
		t.Fatalf("RecentRuns(0) failed: %v", err)
	}
	if len(all) != 5 {
		t.Errorf("RecentRuns(0) returned %d runs, expected 5", len(all))
	}
}

func TestDeleteRun(t *testing.T) {
	store := openTestStore(t)
	id, err := store.CreateRun(session.RunInfo{Seed: 1, Width: 5, Height: 5, DenseThreshold: 0.3})
	if err != nil {
		t.Fatalf("CreateRun() failed: %v", err)
	}
	if err := store.RecordMove(id, Move{Seq: 1, Direction: core.DirLeft}); err != nil {
		t.Fatalf("RecordMove() failed: %v", err)
	}

	if err := store.DeleteRun(id); err != nil {
		t.Fatalf("DeleteRun() failed: %v", err)
	}
	if _, err := store.Run(id); !errors.Is(err, ErrRunNotFound) {
		t.Errorf("Run() after delete err = %v", err)
	}
	moves, err := store.Moves(id)
	if err != nil {
		t.Fatalf("Moves() failed: %v", err)
	}
	if len(moves) != 0 {
		t.Errorf("Moves() after delete = %v", moves)
	}
	if err := store.DeleteRun(id); !errors.Is(err, ErrRunNotFound) {
		t.Errorf("second DeleteRun() err = %v, expected ErrRunNotFound", err)
	}
}

func TestJournalRecordsSession(t *testing.T) {
	store := openTestStore(t)
	journal := NewJournal(store)

	// 3x1 board: one move eats the only food and wins.
	g := session.New(session.Options{Width: 3, Height: 1, Recorder: journal})
	if err := g.Reset(core.RuntimeConfig{Seed: 11}); err != nil {
		t.Fatalf("Reset() failed: %v", err)
	}
	g.Advance()

	if journal.RunID() == "" {
		t.Fatal("journal has no run id")
	}
	run, err := store.Run(journal.RunID())
	if err != nil {
		t.Fatalf("Run() failed: %v", err)
	}
	if run.Seed != 11 || run.Width != 3 || run.Height != 1 {
		t.Errorf("run = %+v", run)
	}
	if run.Outcome != session.StateWon || run.FinalSize != 3 || run.Moves != 1 {
		t.Errorf("run outcome = %s size %d moves %d", run.Outcome, run.FinalSize, run.Moves)
	}

	moves, err := store.Moves(run.ID)
	if err != nil {
		t.Fatalf("Moves() failed: %v", err)
	}
	if len(moves) != 1 || moves[0] != (Move{Seq: 1, Direction: core.DirLeft, Ate: true}) {
		t.Errorf("moves = %+v", moves)
	}
}

func TestJournalRequiresStart(t *testing.T) {
	journal := NewJournal(openTestStore(t))
	if err := journal.Moved(1, core.DirUp, false); err == nil {
		t.Error("Moved() before RunStarted should fail")
	}
	if err := journal.RunFinished(session.StateLost, 2, 0); err == nil {
		t.Error("RunFinished() before RunStarted should fail")
	}
}
