// Package storage provides the SQLite practice journal.
// Uses the pure-Go modernc.org/sqlite driver to avoid CGO dependencies.
package storage

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	_ "modernc.org/sqlite" // Pure Go SQLite driver
)

// DefaultPath is the journal location used when no --db flag is given.
const DefaultPath = "~/.staffwars/journal.db"

// Store manages the SQLite database connection for the journal.
type Store struct {
	db *sql.DB
}

// Run is one game played from Start to game over or quit.
type Run struct {
	ID         string
	Session    string // "local" or the SSH user
	Clef       string
	Difficulty string
	Correct    int
	Missed     int
	StartedAt  time.Time
	EndedAt    time.Time // Zero while the run is open
}

// Resolution is one resolved challenge.
type Resolution struct {
	RunID       string
	ChallengeID string
	Label       string // Full note, e.g. "G4"
	Expected    string
	Given       string // Empty when expired
	Outcome     string // "Correct", "Incorrect" or "Expired"
	Elapsed     time.Duration
}

// NoteStat aggregates resolutions for one note label.
type NoteStat struct {
	Label     string
	Attempts  int
	Correct   int
	Incorrect int
	Expired   int
	AvgMillis int // Mean time to a correct answer
}

// Accuracy returns the fraction of attempts answered correctly.
func (n NoteStat) Accuracy() float64 {
	if n.Attempts == 0 {
		return 0
	}
	return float64(n.Correct) / float64(n.Attempts)
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

	dir := filepath.Dir(dbPath)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("storage: cannot create directory %s: %w", dir, err)
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot open database: %w", err)
	}

	// SQLite has a single writer; SSH sessions share this store
	db.SetMaxOpenConns(1)

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
			session TEXT NOT NULL,
			clef TEXT NOT NULL,
			difficulty TEXT NOT NULL DEFAULT '',
			correct INTEGER NOT NULL DEFAULT 0,
			missed INTEGER NOT NULL DEFAULT 0,
			started_at DATETIME DEFAULT CURRENT_TIMESTAMP,
			ended_at DATETIME
		);
		CREATE INDEX IF NOT EXISTS idx_runs_started ON runs(started_at DESC);

		CREATE TABLE IF NOT EXISTS resolutions (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			run_id TEXT NOT NULL REFERENCES runs(id) ON DELETE CASCADE,
			challenge_id TEXT NOT NULL UNIQUE,
			label TEXT NOT NULL,
			expected TEXT NOT NULL,
			given TEXT NOT NULL DEFAULT '',
			outcome TEXT NOT NULL,
			elapsed_ms INTEGER NOT NULL DEFAULT 0,
			created_at DATETIME DEFAULT CURRENT_TIMESTAMP
		);
		CREATE INDEX IF NOT EXISTS idx_resolutions_run ON resolutions(run_id);
		CREATE INDEX IF NOT EXISTS idx_resolutions_label ON resolutions(label);
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

// StartRun opens a new run and returns its ID. A run ID is generated when run.ID is empty.
func (s *Store) StartRun(run Run) (string, error) {
	if run.ID == "" {
		run.ID = uuid.NewString()
	}
	if run.Session == "" {
		run.Session = "local"
	}

	_, err := s.db.Exec(
		"INSERT INTO runs (id, session, clef, difficulty) VALUES (?, ?, ?, ?)",
		run.ID, run.Session, run.Clef, run.Difficulty,
	)
	if err != nil {
		return "", fmt.Errorf("storage: cannot start run: %w", err)
	}
	return run.ID, nil
}

// RecordResolution appends a resolution to its run and updates the run's tallies.
// Recording the same challenge twice is an error.
func (s *Store) RecordResolution(r Resolution) error {
	tx, err := s.db.Begin()
	if err != nil {
		return fmt.Errorf("storage: cannot begin transaction: %w", err)
	}
	defer tx.Rollback() //nolint:errcheck // No-op after Commit

	_, err = tx.Exec(
		`INSERT INTO resolutions (run_id, challenge_id, label, expected, given, outcome, elapsed_ms)
		 VALUES (?, ?, ?, ?, ?, ?, ?)`,
		r.RunID, r.ChallengeID, r.Label, r.Expected, r.Given, r.Outcome, r.Elapsed.Milliseconds(),
	)
	if err != nil {
		return fmt.Errorf("storage: cannot record resolution: %w", err)
	}

	column := "missed"
	if r.Outcome == "Correct" {
		column = "correct"
	}
	res, err := tx.Exec("UPDATE runs SET "+column+" = "+column+" + 1 WHERE id = ?", r.RunID)
	if err != nil {
		return fmt.Errorf("storage: cannot update run: %w", err)
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return fmt.Errorf("storage: unknown run %s", r.RunID)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("storage: cannot commit resolution: %w", err)
	}
	return nil
}

// FinishRun marks a run as ended. Finishing an already finished run is a no-op.
func (s *Store) FinishRun(runID string) error {
	_, err := s.db.Exec(
		"UPDATE runs SET ended_at = CURRENT_TIMESTAMP WHERE id = ? AND ended_at IS NULL",
		runID,
	)
	if err != nil {
		return fmt.Errorf("storage: cannot finish run: %w", err)
	}
	return nil
}

// RunByID retrieves a run. Returns nil if it does not exist.
func (s *Store) RunByID(runID string) (*Run, error) {
	row := s.db.QueryRow(
		`SELECT id, session, clef, difficulty, correct, missed, started_at, ended_at
		 FROM runs WHERE id = ?`,
		runID,
	)
	run, err := scanRun(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query run: %w", err)
	}
	return &run, nil
}

// RecentRuns retrieves the most recent runs, newest first.
func (s *Store) RecentRuns(limit int) ([]Run, error) {
	if limit <= 0 {
		limit = 20
	}

	rows, err := s.db.Query(
		`SELECT id, session, clef, difficulty, correct, missed, started_at, ended_at
		 FROM runs
		 ORDER BY started_at DESC, rowid DESC
		 LIMIT ?`,
		limit,
	)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query runs: %w", err)
	}
	defer rows.Close()

	var runs []Run
	for rows.Next() {
		run, err := scanRun(rows)
		if err != nil {
			return nil, fmt.Errorf("storage: cannot scan row: %w", err)
		}
		runs = append(runs, run)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: row iteration error: %w", err)
	}
	return runs, nil
}

// NoteStats aggregates every recorded resolution per note label,
// weakest notes (lowest accuracy) first.
func (s *Store) NoteStats() ([]NoteStat, error) {
	rows, err := s.db.Query(
		`SELECT label,
		        COUNT(*),
		        SUM(CASE WHEN outcome = 'Correct' THEN 1 ELSE 0 END),
		        SUM(CASE WHEN outcome = 'Incorrect' THEN 1 ELSE 0 END),
		        SUM(CASE WHEN outcome = 'Expired' THEN 1 ELSE 0 END),
		        COALESCE(AVG(CASE WHEN outcome = 'Correct' THEN elapsed_ms END), 0)
		 FROM resolutions
		 GROUP BY label
		 ORDER BY CAST(SUM(CASE WHEN outcome = 'Correct' THEN 1 ELSE 0 END) AS REAL) / COUNT(*) ASC, label ASC`,
	)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query note stats: %w", err)
	}
	defer rows.Close()

	var stats []NoteStat
	for rows.Next() {
		var n NoteStat
		var avg float64
		if err := rows.Scan(&n.Label, &n.Attempts, &n.Correct, &n.Incorrect, &n.Expired, &avg); err != nil {
			return nil, fmt.Errorf("storage: cannot scan row: %w", err)
		}
		n.AvgMillis = int(avg + 0.5)
		stats = append(stats, n)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: row iteration error: %w", err)
	}
	return stats, nil
}

// ClearJournal deletes every run and resolution.
func (s *Store) ClearJournal() error {
	if _, err := s.db.Exec("DELETE FROM resolutions; DELETE FROM runs;"); err != nil {
		return fmt.Errorf("storage: cannot clear journal: %w", err)
	}
	return nil
}

type scanner interface {
	Scan(dest ...any) error
}

func scanRun(row scanner) (Run, error) {
	var run Run
	var startedAt, endedAt any
	if err := row.Scan(
		&run.ID,
		&run.Session,
		&run.Clef,
		&run.Difficulty,
		&run.Correct,
		&run.Missed,
		&startedAt,
		&endedAt,
	); err != nil {
		return Run{}, err
	}
	run.StartedAt = parseTime(startedAt)
	run.EndedAt = parseTime(endedAt)
	return run, nil
}

// parseTime handles the driver returning either time.Time or string for DATETIME columns.
func parseTime(v any) time.Time {
	switch v := v.(type) {
	case time.Time:
		return v
	case string:
		if parsed, err := time.Parse("2006-01-02 15:04:05", v); err == nil {
			return parsed
		}
	}
	return time.Time{}
}
