// Package storage provides SQLite-based persistence for run history and
// pack progress. Uses the pure-Go modernc.org/sqlite driver to avoid CGO
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
)

// NoProgress is the highest cleared index of a pack nobody has cleared.
const NoProgress = -1

// Store manages the SQLite database connection.
type Store struct {
	db *sql.DB
}

// Run is one cleared level attempt.
type Run struct {
	ID         int64
	RunID      string // uuid, generated on save when empty
	PackID     string
	LevelID    string
	LevelIndex int
	Moves      int
	Pushes     int
	Duration   time.Duration
	Session    string // ssh session id, empty for local play
	CreatedAt  time.Time
}

// Steps returns the combined action count used for ranking.
func (r Run) Steps() int {
	return r.Moves + r.Pushes
}

// PackStats contains aggregated statistics for a pack.
type PackStats struct {
	PackID         string
	Runs           int
	LevelsCleared  int
	HighestCleared int
	TotalMoves     int64
	TotalPushes    int64
	LastPlayed     time.Time
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
			pack_id TEXT NOT NULL,
			level_id TEXT NOT NULL,
			level_index INTEGER NOT NULL,
			moves INTEGER NOT NULL DEFAULT 0,
			pushes INTEGER NOT NULL DEFAULT 0,
			duration_ms INTEGER NOT NULL DEFAULT 0,
			session TEXT NOT NULL DEFAULT '',
			created_at DATETIME DEFAULT CURRENT_TIMESTAMP
		);
		CREATE INDEX IF NOT EXISTS idx_runs_level ON runs(pack_id, level_id);
		CREATE INDEX IF NOT EXISTS idx_runs_created ON runs(created_at DESC);

		CREATE TABLE IF NOT EXISTS progress (
			pack_id TEXT PRIMARY KEY,
			highest_cleared INTEGER NOT NULL DEFAULT -1,
			updated_at DATETIME DEFAULT CURRENT_TIMESTAMP
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

// SaveRun records a cleared level and advances the pack's progress.
// It returns the run with its ID and RunID filled in.
func (s *Store) SaveRun(run Run) (Run, error) {
	if run.PackID == "" || run.LevelID == "" {
		return run, errors.New("storage: run needs a pack and level id")
	}
	if run.RunID == "" {
		run.RunID = uuid.NewString()
	}

	tx, err := s.db.Begin()
	if err != nil {
		return run, fmt.Errorf("storage: cannot begin transaction: %w", err)
	}
	defer tx.Rollback() //nolint:errcheck // no-op after commit

	result, err := tx.Exec(
		`INSERT INTO runs (run_id, pack_id, level_id, level_index, moves, pushes, duration_ms, session)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		run.RunID, run.PackID, run.LevelID, run.LevelIndex,
		run.Moves, run.Pushes, run.Duration.Milliseconds(), run.Session,
	)
	if err != nil {
		return run, fmt.Errorf("storage: cannot save run: %w", err)
	}

	if err := markCleared(tx, run.PackID, run.LevelIndex); err != nil {
		return run, err
	}

	if err := tx.Commit(); err != nil {
		return run, fmt.Errorf("storage: cannot commit run: %w", err)
	}

	run.ID, err = result.LastInsertId()
	if err != nil {
		return run, fmt.Errorf("storage: cannot get inserted ID: %w", err)
	}
	return run, nil
}

// markCleared raises the highest cleared level index of a pack.
// Lower indexes never lower the stored value.
func markCleared(tx *sql.Tx, packID string, index int) error {
	_, err := tx.Exec(
		`INSERT INTO progress (pack_id, highest_cleared) VALUES (?, ?)
		 ON CONFLICT(pack_id) DO UPDATE SET
		   highest_cleared = MAX(highest_cleared, excluded.highest_cleared),
		   updated_at = CURRENT_TIMESTAMP`,
		packID, index,
	)
	if err != nil {
		return fmt.Errorf("storage: cannot update progress: %w", err)
	}
	return nil
}

// Progress returns the highest cleared level index of a pack, or
// NoProgress.
func (s *Store) Progress(packID string) (int, error) {
	var highest int
	err := s.db.QueryRow(
		"SELECT highest_cleared FROM progress WHERE pack_id = ?",
		packID,
	).Scan(&highest)
	if errors.Is(err, sql.ErrNoRows) {
		return NoProgress, nil
	}
	if err != nil {
		return NoProgress, fmt.Errorf("storage: cannot query progress: %w", err)
	}
	return highest, nil
}

// ResetProgress forgets a pack's progress. Runs are kept.
func (s *Store) ResetProgress(packID string) error {
	_, err := s.db.Exec("DELETE FROM progress WHERE pack_id = ?", packID)
	if err != nil {
		return fmt.Errorf("storage: cannot reset progress: %w", err)
	}
	return nil
}

const runColumns = `id, run_id, pack_id, level_id, level_index, moves, pushes, duration_ms, session, created_at`

// BestRuns returns the best runs of one level: fewest moves plus pushes,
// then fastest.
func (s *Store) BestRuns(packID, levelID string, limit int) ([]Run, error) {
	if limit <= 0 {
		limit = 10
	}
	return s.queryRuns(
		`SELECT `+runColumns+`
		 FROM runs
		 WHERE pack_id = ? AND level_id = ?
		 ORDER BY moves + pushes ASC, duration_ms ASC, id ASC
		 LIMIT ?`,
		packID, levelID, limit,
	)
}

// PackBests returns the best run of every cleared level of a pack, in
// level order.
func (s *Store) PackBests(packID string) ([]Run, error) {
	return s.queryRuns(
		`SELECT `+runColumns+` FROM (
		   SELECT *, ROW_NUMBER() OVER (
		     PARTITION BY level_id
		     ORDER BY moves + pushes ASC, duration_ms ASC, id ASC
		   ) AS rn
		   FROM runs
		   WHERE pack_id = ?
		 )
		 WHERE rn = 1
		 ORDER BY level_index ASC`,
		packID,
	)
}

// RecentRuns returns the most recent runs across all packs.
func (s *Store) RecentRuns(limit int) ([]Run, error) {
	if limit <= 0 {
		limit = 20
	}
	return s.queryRuns(
		`SELECT `+runColumns+`
		 FROM runs
		 ORDER BY created_at DESC, id DESC
		 LIMIT ?`,
		limit,
	)
}

// SessionRuns returns runs recorded by one ssh session.
func (s *Store) SessionRuns(session string, limit int) ([]Run, error) {
	if limit <= 0 {
		limit = 20
	}
	return s.queryRuns(
		`SELECT `+runColumns+`
		 FROM runs
		 WHERE session = ?
		 ORDER BY id DESC
		 LIMIT ?`,
		session, limit,
	)
}

// RunByID retrieves a run by its run id. It returns nil when missing.
func (s *Store) RunByID(runID string) (*Run, error) {
	runs, err := s.queryRuns(`SELECT `+runColumns+` FROM runs WHERE run_id = ?`, runID)
	if err != nil {
		return nil, err
	}
	if len(runs) == 0 {
		return nil, nil
	}
	return &runs[0], nil
}

// ClearRuns deletes all runs and progress of a pack.
func (s *Store) ClearRuns(packID string) error {
	if _, err := s.db.Exec("DELETE FROM runs WHERE pack_id = ?", packID); err != nil {
		return fmt.Errorf("storage: cannot clear runs: %w", err)
	}
	return s.ResetProgress(packID)
}

// GetPackStats retrieves aggregated statistics for a pack.
func (s *Store) GetPackStats(packID string) (*PackStats, error) {
	stats := &PackStats{PackID: packID}

	var lastPlayed any
	err := s.db.QueryRow(
		`SELECT COUNT(*), COUNT(DISTINCT level_id), COALESCE(SUM(moves), 0), COALESCE(SUM(pushes), 0), MAX(created_at)
		 FROM runs WHERE pack_id = ?`,
		packID,
	).Scan(&stats.Runs, &stats.LevelsCleared, &stats.TotalMoves, &stats.TotalPushes, &lastPlayed)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot get pack stats: %w", err)
	}
	stats.LastPlayed = parseTime(lastPlayed)

	stats.HighestCleared, err = s.Progress(packID)
	if err != nil {
		return nil, err
	}
	return stats, nil
}

func (s *Store) queryRuns(query string, args ...any) ([]Run, error) {
	rows, err := s.db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query runs: %w", err)
	}
	defer rows.Close()

	var runs []Run
	for rows.Next() {
		var r Run
		var durationMS int64
		var createdAt any
		if err := rows.Scan(
			&r.ID, &r.RunID, &r.PackID, &r.LevelID, &r.LevelIndex,
			&r.Moves, &r.Pushes, &durationMS, &r.Session, &createdAt,
		); err != nil {
			return nil, fmt.Errorf("storage: cannot scan row: %w", err)
		}
		r.Duration = time.Duration(durationMS) * time.Millisecond
		r.CreatedAt = parseTime(createdAt)
		runs = append(runs, r)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: row iteration error: %w", err)
	}
	return runs, nil
}

// parseTime handles both time.Time and string datetimes from the driver.
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
