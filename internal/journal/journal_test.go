package journal

import (
	"path/filepath"
	"testing"
	"time"
)

func openTestDB(t *testing.T) *DB {
	t.Helper()
	db, err := Open(filepath.Join(t.TempDir(), "journal.db"))
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	t.Cleanup(func() { db.Close() })
	return db
}

func TestRecordRunAndInvocations(t *testing.T) {
	db := openTestDB(t)

	rec, err := db.StartRun(PhaseDecompose, "/work/tasks")
	if err != nil {
		t.Fatalf("StartRun: %v", err)
	}
	if rec.RunID() == "" {
		t.Fatal("RunID is empty")
	}

	start := time.Now()
	if err := rec.Invocation("/work/tasks/root.md", start, 1200*time.Millisecond, OutcomeOK, ""); err != nil {
		t.Fatalf("Invocation: %v", err)
	}
	if err := rec.Invocation("/work/tasks/root_children/a.md", start, 800*time.Millisecond, OutcomeError, "exit 1"); err != nil {
		t.Fatalf("Invocation: %v", err)
	}
	if err := rec.Finish("completed"); err != nil {
		t.Fatalf("Finish: %v", err)
	}

	runs, err := db.Runs(10)
	if err != nil {
		t.Fatalf("Runs: %v", err)
	}
	if len(runs) != 1 {
		t.Fatalf("len(runs) = %d, want 1", len(runs))
	}
	if runs[0].Phase != PhaseDecompose || runs[0].Status != "completed" {
		t.Errorf("run = %+v", runs[0])
	}
	if runs[0].FinishedAt == nil {
		t.Error("FinishedAt not recorded")
	}

	invocations, err := db.Invocations(rec.RunID())
	if err != nil {
		t.Fatalf("Invocations: %v", err)
	}
	if len(invocations) != 2 {
		t.Fatalf("len(invocations) = %d, want 2", len(invocations))
	}
	if invocations[0].Seq != 1 || invocations[0].TaskPath != "/work/tasks/root.md" {
		t.Errorf("first invocation = %+v", invocations[0])
	}
	if invocations[1].Outcome != OutcomeError || invocations[1].Error != "exit 1" {
		t.Errorf("second invocation = %+v", invocations[1])
	}
	if invocations[0].Duration != 1200*time.Millisecond {
		t.Errorf("Duration = %s, want 1.2s", invocations[0].Duration)
	}
}

func TestNilRecorderIsNoop(t *testing.T) {
	var rec *Recorder
	if rec.RunID() != "" {
		t.Error("nil RunID should be empty")
	}
	if err := rec.Invocation("x", time.Now(), 0, OutcomeOK, ""); err != nil {
		t.Errorf("nil Invocation = %v", err)
	}
	if err := rec.Finish("completed"); err != nil {
		t.Errorf("nil Finish = %v", err)
	}
}
