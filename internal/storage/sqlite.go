// Package storage provides a SQLite journal of played runs.
// Each run keeps its seed, board and the direction of every move so it can be
// replayed exactly. Uses the pure-Go modernc.org/sqlite driver to avoid CGO
// dependencies.
package storage

import (
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	_ "modernc.org/sqlite" // Pure Go SQLite driver

	"github.com/vovakirdan/gridsnake/internal/core"
	"github.com/vovakirdan/gridsnake/internal/session"
)

var (
	// ErrRunNotFound is returned when no run matches an id.
	ErrRunNotFound = errors.New("storage: run not found")

	// ErrAmbiguousID is returned when an id prefix matches several runs.
	ErrAmbiguousID = errors.New("storage: ambiguous run id")
)

// Store manages the SQLite database connection for the run journal.
type Store struct {
	db *sql.DB
}

// Run is a journaled run.
type Run struct {
	ID             string
	Seed           int64
	Width          int
	Height         int
	DenseThreshold float64
	Outcome        session.State
	FinalSize      int
	Moves          int
	CreatedAt      time.Time
}

// Move is one recorded move of a run. Seq starts at 1.
type Move struct {
	Seq       int
	Direction core.Direction
	Ate       bool
}

// Open creates or opens a SQLite database at the given path.
// It creates the parent directories if needed and runs migrations.
func Open(dbPath string) (*Store, error) {
	// Expand ~ to home directory
	if dbPath != "" && dbPath[0] == '~' {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("storage: cannot expand home directory: %w", err)
		}
		dbPath = filepath.Join(home, dbPath[1:])
	}

	// Create parent directories
	dir := filepath.Dir(dbPath)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("storage: cannot create directory %s: %w", dir, err)
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot open database: %w", err)
	}
	// SSH sessions journal concurrently; one connection serializes writers.
	db.SetMaxOpenConns(1)

	// Test connection
	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("storage: cannot connect to database: %w", err)
	}

	store := &Store{db: db}

	if err := store.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("storage: migration failed: %w", err)
	}

	return store, nil
}

// migrate creates the database schema if it doesn't exist.
func (s *Store) migrate() error {
	schema := `
		CREATE TABLE IF NOT EXISTS runs (
			id TEXT PRIMARY KEY,
			seed INTEGER NOT NULL,
			width INTEGER NOT NULL,
			height INTEGER NOT NULL,
			dense_threshold REAL NOT NULL,
			outcome TEXT NOT NULL DEFAULT 'playing',
			final_size INTEGER NOT NULL DEFAULT 0,
			moves INTEGER NOT NULL DEFAULT 0,
			created_at DATETIME DEFAULT CURRENT_TIMESTAMP
		);
		CREATE INDEX IF NOT EXISTS idx_runs_created ON runs(created_at DESC);

		CREATE TABLE IF NOT EXISTS moves (
			run_id TEXT NOT NULL,
			seq INTEGER NOT NULL,
			direction TEXT NOT NULL,
			ate INTEGER NOT NULL DEFAULT 0,
			PRIMARY KEY (run_id, seq)
		);
	`

	_, err := s.db.Exec(schema)
	return err
}

// Close closes the database connection.
func (s *Store) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}

// CreateRun starts a journal entry and returns its id.
func (s *Store) CreateRun(info session.RunInfo) (string, error) {
	id := uuid.NewString()
	_, err := s.db.Exec(
		`INSERT INTO runs (id, seed, width, height, dense_threshold) VALUES (?, ?, ?, ?, ?)`,
		id, info.Seed, info.Width, info.Height, info.DenseThreshold,
	)
	if err != nil {
		return "", fmt.Errorf("storage: cannot create run: %w", err)
	}
	return id, nil
}

// RecordMove appends a move to a run.
func (s *Store) RecordMove(runID string, m Move) error {
	_, err := s.db.Exec(
		"INSERT INTO moves (run_id, seq, direction, ate) VALUES (?, ?, ?, ?)",
		runID, m.Seq, m.Direction.String(), m.Ate,
	)
	if err != nil {
		return fmt.Errorf("storage: cannot record move %d: %w", m.Seq, err)
	}
	return nil
}

// FinishRun stores the outcome of a run.
func (s *Store) FinishRun(runID string, outcome session.State, finalSize, moves int) error {
	res, err := s.db.Exec(
		"UPDATE runs SET outcome = ?, final_size = ?, moves = ? WHERE id = ?",
		string(outcome), finalSize, moves, runID,
	)
	if err != nil {
		return fmt.Errorf("storage: cannot finish run: %w", err)
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return fmt.Errorf("%w: %s", ErrRunNotFound, runID)
	}
	return nil
}

const runColumns = "id, seed, width, height, dense_threshold, outcome, final_size, moves, created_at"

// Run retrieves a run by its id or a unique id prefix.
func (s *Store) Run(idOrPrefix string) (*Run, error) {
	if idOrPrefix == "" {
		return nil, ErrRunNotFound
	}

	rows, err := s.db.Query("SELECT "+runColumns+" FROM runs WHERE id = ?", idOrPrefix)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query run: %w", err)
	}
	runs, err := scanRuns(rows)
	if err != nil {
		return nil, err
	}
	if len(runs) == 1 {
		return &runs[0], nil
	}

	rows, err = s.db.Query("SELECT "+runColumns+" FROM runs WHERE id LIKE ? || '%' LIMIT 2", idOrPrefix)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query run: %w", err)
	}
	runs, err = scanRuns(rows)
	if err != nil {
		return nil, err
	}
	switch len(runs) {
	case 0:
		return nil, fmt.Errorf("%w: %s", ErrRunNotFound, idOrPrefix)
	case 1:
		return &runs[0], nil
	default:
		return nil, fmt.Errorf("%w: %s", ErrAmbiguousID, idOrPrefix)
	}
}

// RecentRuns retrieves the most recent runs, newest first.
func (s *Store) RecentRuns(limit int) ([]Run, error) {
	if limit <= 0 {
		limit = 20
	}

	rows, err := s.db.Query(
		"SELECT "+runColumns+" FROM runs ORDER BY created_at DESC, rowid DESC LIMIT ?",
		limit,
	)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query runs: %w", err)
	}
	return scanRuns(rows)
}

// scanRuns reads and closes rows.
func scanRuns(rows *sql.Rows) ([]Run, error) {
	defer rows.Close()

	var runs []Run
	for rows.Next() {
		var r Run
		var outcome string
		var createdAt any
		if err := rows.Scan(
			&r.ID,
			&r.Seed,
			&r.Width,
			&r.Height,
			&r.DenseThreshold,
			&outcome,
			&r.FinalSize,
			&r.Moves,
			&createdAt,
		); err != nil {
			return nil, fmt.Errorf("storage: cannot scan row: %w", err)
		}
		r.Outcome = session.State(outcome)

		// Parse the datetime - handle both time.Time and string
		switch v := createdAt.(type) {
		case time.Time:
			r.CreatedAt = v
		case string:
			if parsed, err := time.Parse("2006-01-02 15:04:05", v); err == nil {
				r.CreatedAt = parsed
			}
		}
		runs = append(runs, r)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: row iteration error: %w", err)
	}
	return runs, nil
}

// Moves retrieves the moves of a run in order.
func (s *Store) Moves(runID string) ([]Move, error) {
	rows, err := s.db.Query(
		"SELECT seq, direction, ate FROM moves WHERE run_id = ? ORDER BY seq",
		runID,
	)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query moves: %w", err)
	}
	defer rows.Close()

	var moves []Move
	for rows.Next() {
		var m Move
		var dir string
		if err := rows.Scan(&m.Seq, &dir, &m.Ate); err != nil {
			return nil, fmt.Errorf("storage: cannot scan row: %w", err)
		}
		d, ok := core.ParseDirection(dir)
		if !ok {
			return nil, fmt.Errorf("storage: move %d has unknown direction %q", m.Seq, dir)
		}
		m.Direction = d
		moves = append(moves, m)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: row iteration error: %w", err)
	}
	return moves, nil
}

// DeleteRun removes a run and its moves.
func (s *Store) DeleteRun(runID string) error {
	tx, err := s.db.Begin()
	if err != nil {
		return fmt.Errorf("storage: cannot begin transaction: %w", err)
	}
	defer tx.Rollback() //nolint:errcheck // no-op after commit

	if _, err := tx.Exec("DELETE FROM moves WHERE run_id = ?", runID); err != nil {
		return fmt.Errorf("storage: cannot delete moves: %w", err)
	}
	res, err := tx.Exec("DELETE FROM runs WHERE id = ?", runID)
	if err != nil {
		return fmt.Errorf("storage: cannot delete run: %w", err)
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return fmt.Errorf("%w: %s", ErrRunNotFound, runID)
	}
	return tx.Commit()
}
