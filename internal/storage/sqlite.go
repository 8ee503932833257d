// Package storage provides SQLite-based persistence for finished runs.
// Uses the pure-Go modernc.org/sqlite driver to avoid CGO dependencies.
package storage

import (
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite" // Pure Go SQLite driver
)

// Store manages the SQLite database connection for run records.
type Store struct {
	db *sql.DB
}

// RunRecord is the summary of one finished session.
type RunRecord struct {
	ID        int64
	GameID    string
	Biome     string
	Inventory map[string]int
	Total     int
	Survived  float64 // Seconds
	CreatedAt time.Time
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

	if err := db.Ping(); err != nil {
		db.Close() //nolint:errcheck
		return nil, fmt.Errorf("storage: cannot connect to database: %w", err)
	}

	store := &Store{db: db}
	if err := store.migrate(); err != nil {
		db.Close() //nolint:errcheck
		return nil, fmt.Errorf("storage: migration failed: %w", err)
	}

	return store, nil
}

// migrate creates the database schema if it doesn't exist.
func (s *Store) migrate() error {
	schema := `
		CREATE TABLE IF NOT EXISTS runs (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			game_id TEXT NOT NULL,
			biome TEXT NOT NULL,
			inventory TEXT NOT NULL DEFAULT '{}',
			total INTEGER NOT NULL DEFAULT 0,
			survived_secs REAL NOT NULL DEFAULT 0,
			created_at DATETIME DEFAULT CURRENT_TIMESTAMP
		);
		CREATE INDEX IF NOT EXISTS idx_runs_game_id ON runs(game_id);
		CREATE INDEX IF NOT EXISTS idx_runs_top ON runs(game_id, survived_secs DESC);
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

// SaveRun records a finished run. Total is derived from the inventory
// when left at zero. Returns the ID of the inserted record.
func (s *Store) SaveRun(run RunRecord) (int64, error) {
	if run.Total == 0 {
		for _, n := range run.Inventory {
			run.Total += n
		}
	}
	inv := run.Inventory
	if inv == nil {
		inv = map[string]int{}
	}
	data, err := json.Marshal(inv)
	if err != nil {
		return 0, fmt.Errorf("storage: cannot encode inventory: %w", err)
	}

	result, err := s.db.Exec(
		"INSERT INTO runs (game_id, biome, inventory, total, survived_secs) VALUES (?, ?, ?, ?, ?)",
		run.GameID, run.Biome, string(data), run.Total, run.Survived,
	)
	if err != nil {
		return 0, fmt.Errorf("storage: cannot save run: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("storage: cannot get inserted ID: %w", err)
	}
	return id, nil
}

const runColumns = `id, game_id, biome, inventory, total, survived_secs, created_at`

// TopRuns retrieves the longest-surviving runs for the given variant,
// ties broken by items collected. An empty gameID covers every variant.
func (s *Store) TopRuns(gameID string, limit int) ([]RunRecord, error) {
	if limit <= 0 {
		limit = 10
	}
	return s.queryRuns(
		`SELECT `+runColumns+`
		 FROM runs
		 WHERE (? = '' OR game_id = ?)
		 ORDER BY survived_secs DESC, total DESC
		 LIMIT ?`,
		gameID, gameID, limit,
	)
}

// RecentRuns retrieves the latest runs for the given variant, newest first.
func (s *Store) RecentRuns(gameID string, limit int) ([]RunRecord, error) {
	if limit <= 0 {
		limit = 20
	}
	return s.queryRuns(
		`SELECT `+runColumns+`
		 FROM runs
		 WHERE (? = '' OR game_id = ?)
		 ORDER BY id DESC
		 LIMIT ?`,
		gameID, gameID, limit,
	)
}

// BestRun returns the longest-surviving run, or nil if none exist.
func (s *Store) BestRun(gameID string) (*RunRecord, error) {
	runs, err := s.TopRuns(gameID, 1)
	if err != nil {
		return nil, err
	}
	if len(runs) == 0 {
		return nil, nil
	}
	return &runs[0], nil
}

// ClearRuns deletes all runs for the given variant.
func (s *Store) ClearRuns(gameID string) error {
	_, err := s.db.Exec("DELETE FROM runs WHERE game_id = ?", gameID)
	if err != nil {
		return fmt.Errorf("storage: cannot clear runs: %w", err)
	}
	return nil
}

func (s *Store) queryRuns(query string, args ...any) ([]RunRecord, error) {
	rows, err := s.db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query runs: %w", err)
	}
	defer rows.Close()

	var runs []RunRecord
	for rows.Next() {
		var (
			r         RunRecord
			inv       string
			createdAt any
		)
		if err := rows.Scan(&r.ID, &r.GameID, &r.Biome, &inv, &r.Total, &r.Survived, &createdAt); err != nil {
			return nil, fmt.Errorf("storage: cannot scan row: %w", err)
		}
		if err := json.Unmarshal([]byte(inv), &r.Inventory); err != nil {
			return nil, fmt.Errorf("storage: cannot decode inventory of run %d: %w", r.ID, err)
		}
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
	switch t := v.(type) {
	case time.Time:
		return t
	case string:
		if parsed, err := time.Parse("2006-01-02 15:04:05", t); err == nil {
			return parsed
		}
	}
	return time.Time{}
}

// GameStats contains aggregated statistics for a variant.
type GameStats struct {
	GameID       string
	Runs         int
	BestSurvived float64
	AvgSurvived  float64
	TotalItems   int64
	LastPlayed   time.Time
}

// GetGameStats retrieves aggregated statistics for a specific variant.
func (s *Store) GetGameStats(gameID string) (*GameStats, error) {
	stats := &GameStats{GameID: gameID}

	err := s.db.QueryRow(
		`SELECT COUNT(*), COALESCE(MAX(survived_secs), 0), COALESCE(AVG(survived_secs), 0), COALESCE(SUM(total), 0)
		 FROM runs WHERE game_id = ?`,
		gameID,
	).Scan(&stats.Runs, &stats.BestSurvived, &stats.AvgSurvived, &stats.TotalItems)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot get game stats: %w", err)
	}

	var lastPlayed any
	err = s.db.QueryRow(
		`SELECT created_at FROM runs WHERE game_id = ? ORDER BY id DESC LIMIT 1`,
		gameID,
	).Scan(&lastPlayed)
	if err != nil && !errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("storage: cannot get last played: %w", err)
	}
	if err == nil {
		stats.LastPlayed = parseTime(lastPlayed)
	}

	return stats, nil
}

// BiomeStats summarizes runs per biome.
type BiomeStats struct {
	Biome        string
	Runs         int
	AvgSurvived  float64
	BestSurvived float64
}

// GetBiomeStats groups the runs of a variant by biome, most played first.
// An empty gameID covers every variant.
func (s *Store) GetBiomeStats(gameID string) ([]BiomeStats, error) {
	rows, err := s.db.Query(
		`SELECT biome, COUNT(*), AVG(survived_secs), MAX(survived_secs)
		 FROM runs
		 WHERE (? = '' OR game_id = ?)
		 GROUP BY biome
		 ORDER BY COUNT(*) DESC, biome`,
		gameID, gameID,
	)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot get biome stats: %w", err)
	}
	defer rows.Close()

	var stats []BiomeStats
	for rows.Next() {
		var b BiomeStats
		if err := rows.Scan(&b.Biome, &b.Runs, &b.AvgSurvived, &b.BestSurvived); err != nil {
			return nil, fmt.Errorf("storage: cannot scan stats row: %w", err)
		}
		stats = append(stats, b)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: row iteration error: %w", err)
	}
	return stats, nil
}
