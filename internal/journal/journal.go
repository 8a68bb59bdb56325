// Package journal records run history in a project-local SQLite
// database. The journal is write-through observability only: the task
// tree on disk remains the sole authoritative state, and the engines
// never read the journal back to make decisions.
package journal

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/google/uuid"
	_ "modernc.org/sqlite"
)

// Phase names recorded for runs.
const (
	PhaseDecompose = "decompose"
	PhaseSolve     = "solve"
)

// Invocation outcomes.
const (
	OutcomeOK      = "ok"
	OutcomeError   = "error"
	OutcomeTimeout = "timeout"
)

// DB wraps the journal database connection.
type DB struct {
	conn *sql.DB
	path string
	mu   sync.Mutex
}

// Path returns the journal location for a workspace root.
func Path(workspaceRoot string) string {
	return filepath.Join(workspaceRoot, ".agenttree", "journal.db")
}

// Open opens (creating if necessary) the journal at the given path.
func Open(path string) (*DB, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return nil, fmt.Errorf("create journal directory: %w", err)
	}

	conn, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open journal: %w", err)
	}

	if _, err := conn.Exec("PRAGMA journal_mode=WAL"); err != nil {
		conn.Close()
		return nil, fmt.Errorf("enable WAL mode: %w", err)
	}
	if _, err := conn.Exec("PRAGMA foreign_keys=ON"); err != nil {
		conn.Close()
		return nil, fmt.Errorf("enable foreign keys: %w", err)
	}

	db := &DB{conn: conn, path: path}
	if err := db.migrate(); err != nil {
		conn.Close()
		return nil, err
	}
	return db, nil
}

// OpenWorkspace opens the journal under the workspace's .agenttree dir.
func OpenWorkspace(workspaceRoot string) (*DB, error) {
	return Open(Path(workspaceRoot))
}

// Close closes the database connection. Safe on nil.
func (db *DB) Close() error {
	if db == nil {
		return nil
	}
	return db.conn.Close()
}

func (db *DB) migrate() error {
	_, err := db.conn.Exec(`
		CREATE TABLE IF NOT EXISTS runs (
			id TEXT PRIMARY KEY,
			phase TEXT NOT NULL,
			root TEXT NOT NULL,
			started_at DATETIME NOT NULL,
			finished_at DATETIME,
			status TEXT NOT NULL DEFAULT 'running'
		);
		CREATE TABLE IF NOT EXISTS invocations (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			run_id TEXT NOT NULL REFERENCES runs(id),
			seq INTEGER NOT NULL,
			task_path TEXT NOT NULL,
			started_at DATETIME NOT NULL,
			duration_ms INTEGER NOT NULL,
			outcome TEXT NOT NULL,
			error TEXT
		);
		CREATE INDEX IF NOT EXISTS idx_invocations_run ON invocations(run_id);
	`)
	if err != nil {
		return fmt.Errorf("migrate journal schema: %w", err)
	}
	return nil
}

// Run is one recorded engine run.
type Run struct {
	ID         string
	Phase      string
	Root       string
	StartedAt  time.Time
	FinishedAt *time.Time
	Status     string
}

// Invocation is one recorded oracle call within a run.
type Invocation struct {
	Seq       int
	TaskPath  string
	StartedAt time.Time
	Duration  time.Duration
	Outcome   string
	Error     string
}

// Recorder journals the invocations of a single run. A nil Recorder is a
// no-op, so engines can run without a journal.
type Recorder struct {
	db    *DB
	runID string
	seq   int
	mu    sync.Mutex
}

// StartRun records a new run and returns its recorder.
func (db *DB) StartRun(phase, root string) (*Recorder, error) {
	if db == nil {
		return nil, nil
	}

	db.mu.Lock()
	defer db.mu.Unlock()

	id := uuid.New().String()
	_, err := db.conn.Exec(
		"INSERT INTO runs (id, phase, root, started_at, status) VALUES (?, ?, ?, ?, 'running')",
		id, phase, root, time.Now().UTC(),
	)
	if err != nil {
		return nil, fmt.Errorf("record run start: %w", err)
	}
	return &Recorder{db: db, runID: id}, nil
}

// RunID returns the recorded run's identifier.
func (r *Recorder) RunID() string {
	if r == nil {
		return ""
	}
	return r.runID
}

// Invocation records one oracle call. Errors writing history are
// reported but must not abort the run; callers may ignore them.
func (r *Recorder) Invocation(taskPath string, startedAt time.Time, duration time.Duration, outcome, errText string) error {
	if r == nil {
		return nil
	}

	r.mu.Lock()
	r.seq++
	seq := r.seq
	r.mu.Unlock()

	r.db.mu.Lock()
	defer r.db.mu.Unlock()

	_, err := r.db.conn.Exec(
		"INSERT INTO invocations (run_id, seq, task_path, started_at, duration_ms, outcome, error) VALUES (?, ?, ?, ?, ?, ?, ?)",
		r.runID, seq, taskPath, startedAt.UTC(), duration.Milliseconds(), outcome, errText,
	)
	if err != nil {
		return fmt.Errorf("record invocation: %w", err)
	}
	return nil
}

// Finish marks the run complete with the given status.
func (r *Recorder) Finish(status string) error {
	if r == nil {
		return nil
	}

	r.db.mu.Lock()
	defer r.db.mu.Unlock()

	_, err := r.db.conn.Exec(
		"UPDATE runs SET finished_at = ?, status = ? WHERE id = ?",
		time.Now().UTC(), status, r.runID,
	)
	if err != nil {
		return fmt.Errorf("record run finish: %w", err)
	}
	return nil
}

// Runs returns recorded runs, most recent first.
func (db *DB) Runs(limit int) ([]Run, error) {
	if limit <= 0 {
		limit = 20
	}

	rows, err := db.conn.Query(
		"SELECT id, phase, root, started_at, finished_at, status FROM runs ORDER BY started_at DESC LIMIT ?",
		limit,
	)
	if err != nil {
		return nil, fmt.Errorf("query runs: %w", err)
	}
	defer rows.Close()

	var runs []Run
	for rows.Next() {
		var r Run
		var finished sql.NullTime
		if err := rows.Scan(&r.ID, &r.Phase, &r.Root, &r.StartedAt, &finished, &r.Status); err != nil {
			return nil, fmt.Errorf("scan run: %w", err)
		}
		if finished.Valid {
			t := finished.Time
			r.FinishedAt = &t
		}
		runs = append(runs, r)
	}
	return runs, rows.Err()
}

// Invocations returns the recorded oracle calls for a run, in sequence
// order.
func (db *DB) Invocations(runID string) ([]Invocation, error) {
	rows, err := db.conn.Query(
		"SELECT seq, task_path, started_at, duration_ms, outcome, COALESCE(error, '') FROM invocations WHERE run_id = ? ORDER BY seq",
		runID,
	)
	if err != nil {
		return nil, fmt.Errorf("query invocations: %w", err)
	}
	defer rows.Close()

	var invocations []Invocation
	for rows.Next() {
		var inv Invocation
		var durationMs int64
		if err := rows.Scan(&inv.Seq, &inv.TaskPath, &inv.StartedAt, &durationMs, &inv.Outcome, &inv.Error); err != nil {
			return nil, fmt.Errorf("scan invocation: %w", err)
		}
		inv.Duration = time.Duration(durationMs) * time.Millisecond
		invocations = append(invocations, inv)
	}
	return invocations, rows.Err()
}
