// Package storage provides SQLite-based persistence for finished runs.
// Uses the pure-Go modernc.org/sqlite driver to avoid CGO dependencies.
package storage

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	_ "modernc.org/sqlite" // Pure Go SQLite driver

	"github.com/vovakirdan/dinoblast/internal/games/dinoblast"
)

// Store manages the SQLite database connection for run persistence.
type Store struct {
	db *sql.DB
}

// RunRecord is one stored run.
type RunRecord struct {
	RunID      string
	Mode       string
	Difficulty string
	Date       string
	Seed       int64
	Won        bool
	Score      int
	Wave       int
	Kills      int
	Stats      dinoblast.Stats
	CreatedAt  time.Time
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

	// SSH sessions share one store and SQLite allows a single writer
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
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			run_id TEXT NOT NULL UNIQUE,
			mode TEXT NOT NULL,
			difficulty TEXT NOT NULL,
			date TEXT NOT NULL DEFAULT '',
			seed INTEGER NOT NULL DEFAULT 0,
			won INTEGER NOT NULL DEFAULT 0,
			score INTEGER NOT NULL,
			wave INTEGER NOT NULL,
			kills INTEGER NOT NULL DEFAULT 0,
			stats_json TEXT NOT NULL DEFAULT '{}',
			created_at DATETIME DEFAULT CURRENT_TIMESTAMP
		);
		CREATE INDEX IF NOT EXISTS idx_runs_mode ON runs(mode);
		CREATE INDEX IF NOT EXISTS idx_runs_top ON runs(mode, score DESC);

		CREATE TABLE IF NOT EXISTS daily (
			date TEXT PRIMARY KEY,
			best_score INTEGER NOT NULL
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

// SaveRun records a finished run and returns its generated run ID.
func (s *Store) SaveRun(ctx context.Context, r dinoblast.RunResult) (string, error) {
	stats, err := json.Marshal(r.Stats)
	if err != nil {
		return "", fmt.Errorf("storage: cannot encode stats: %w", err)
	}

	runID := uuid.NewString()
	_, err = s.db.ExecContext(ctx,
		`INSERT INTO runs (run_id, mode, difficulty, date, seed, won, score, wave, kills, stats_json)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		runID, r.Mode, r.Difficulty, r.Date, r.Seed, r.Won, r.Score, r.Wave, r.Stats.DinosKilled, string(stats),
	)
	if err != nil {
		return "", fmt.Errorf("storage: cannot save run: %w", err)
	}
	return runID, nil
}

// ReportRunResult implements dinoblast.ResultSink. Daily runs also update
// the best score for their date.
func (s *Store) ReportRunResult(ctx context.Context, r dinoblast.RunResult) error {
	if _, err := s.SaveRun(ctx, r); err != nil {
		return err
	}
	if r.Date == "" {
		return nil
	}
	_, err := s.UpdateDailyBest(ctx, r.Date, r.Score)
	return err
}

// Ensure Store implements ResultSink
var _ dinoblast.ResultSink = (*Store)(nil)

// TopRuns retrieves the top N runs for the given mode.
// Results are ordered by score descending.
func (s *Store) TopRuns(mode string, limit int) ([]RunRecord, error) {
	if limit <= 0 {
		limit = 10
	}

	rows, err := s.db.Query(
		`SELECT run_id, mode, difficulty, date, seed, won, score, wave, kills, stats_json, created_at
		 FROM runs
		 WHERE mode = ?
		 ORDER BY score DESC, id ASC
		 LIMIT ?`,
		mode, limit,
	)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query runs: %w", err)
	}
	defer rows.Close()

	var records []RunRecord
	for rows.Next() {
		var r RunRecord
		var stats string
		var createdAt any
		if err := rows.Scan(&r.RunID, &r.Mode, &r.Difficulty, &r.Date, &r.Seed, &r.Won,
			&r.Score, &r.Wave, &r.Kills, &stats, &createdAt); err != nil {
			return nil, fmt.Errorf("storage: cannot scan row: %w", err)
		}
		if err := json.Unmarshal([]byte(stats), &r.Stats); err != nil {
			return nil, fmt.Errorf("storage: cannot decode stats for run %s: %w", r.RunID, err)
		}
		r.CreatedAt = parseTime(createdAt)
		records = append(records, r)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: row iteration error: %w", err)
	}

	return records, nil
}

// parseTime handles both time.Time and string datetimes from the driver.
func parseTime(v any) time.Time {
	switch t := v.(type) {
	case time.Time:
		return t
	case string:
		if parsed, err := time.Parse(time.DateTime, t); err == nil {
			return parsed
		}
	}
	return time.Time{}
}

// HighScore returns the highest score for the given mode.
// Returns 0 if no runs exist.
func (s *Store) HighScore(mode string) (int, error) {
	return s.maxOf("score", mode)
}

// HighWave returns the furthest wave reached in the given mode.
func (s *Store) HighWave(mode string) (int, error) {
	return s.maxOf("wave", mode)
}

func (s *Store) maxOf(column, mode string) (int, error) {
	var v sql.NullInt64
	err := s.db.QueryRow("SELECT MAX("+column+") FROM runs WHERE mode = ?", mode).Scan(&v)
	if err != nil {
		return 0, fmt.Errorf("storage: cannot query %s: %w", column, err)
	}
	if !v.Valid {
		return 0, nil
	}
	return int(v.Int64), nil
}

// TotalKills returns the dinos killed across every stored run.
func (s *Store) TotalKills() (int, error) {
	var n int
	if err := s.db.QueryRow("SELECT COALESCE(SUM(kills), 0) FROM runs").Scan(&n); err != nil {
		return 0, fmt.Errorf("storage: cannot query kills: %w", err)
	}
	return n, nil
}

// TotalGames returns the number of stored runs.
func (s *Store) TotalGames() (int, error) {
	var n int
	if err := s.db.QueryRow("SELECT COUNT(*) FROM runs").Scan(&n); err != nil {
		return 0, fmt.Errorf("storage: cannot count runs: %w", err)
	}
	return n, nil
}

// DailyBest returns the best score for a daily challenge date.
// The second return is false when the date has no score yet.
func (s *Store) DailyBest(date string) (int, bool, error) {
	var best int
	err := s.db.QueryRow("SELECT best_score FROM daily WHERE date = ?", date).Scan(&best)
	if errors.Is(err, sql.ErrNoRows) {
		return 0, false, nil
	}
	if err != nil {
		return 0, false, fmt.Errorf("storage: cannot query daily best: %w", err)
	}
	return best, true, nil
}

// UpdateDailyBest stores score for date if it beats the current best.
// Returns true when the score became the new best.
func (s *Store) UpdateDailyBest(ctx context.Context, date string, score int) (bool, error) {
	res, err := s.db.ExecContext(ctx,
		`INSERT INTO daily (date, best_score) VALUES (?, ?)
		 ON CONFLICT(date) DO UPDATE SET best_score = excluded.best_score
		 WHERE excluded.best_score > daily.best_score`,
		date, score,
	)
	if err != nil {
		return false, fmt.Errorf("storage: cannot update daily best: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("storage: cannot read affected rows: %w", err)
	}
	return n > 0, nil
}

// ClearRuns deletes all runs for the given mode.
func (s *Store) ClearRuns(mode string) error {
	_, err := s.db.Exec("DELETE FROM runs WHERE mode = ?", mode)
	if err != nil {
		return fmt.Errorf("storage: cannot clear runs: %w", err)
	}
	return nil
}
