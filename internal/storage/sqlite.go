// Package storage provides the SQLite-backed run journal.
// Every finished run is stored with its seed, tunables and flap ticks so it
// can be replayed and verified later.
// Uses the pure-Go modernc.org/sqlite driver to avoid CGO dependencies.
package storage

import (
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	"github.com/vmihailenco/msgpack/v5"
	"gopkg.in/yaml.v3"
	_ "modernc.org/sqlite" // Pure Go SQLite driver

	"github.com/vovakirdan/tui-flappy/internal/config"
	"github.com/vovakirdan/tui-flappy/internal/sim"
)

var (
	// ErrRunNotFound is returned when no run matches an id.
	ErrRunNotFound = errors.New("storage: run not found")

	// ErrAmbiguousRun is returned when an id prefix matches several runs.
	ErrAmbiguousRun = errors.New("storage: run id prefix is ambiguous")
)

// minPrefixLen is the shortest id prefix Run will try to resolve.
const minPrefixLen = 4

// Store manages the SQLite database connection for the run journal.
type Store struct {
	db *sql.DB
}

// RunEntry is one journaled run.
type RunEntry struct {
	ID        string
	GameID    string
	Seed      int64
	TickRate  int
	Ticks     uint32
	Score     int
	Cause     string
	Flaps     []uint32 // Playing tick indices with a flap
	Config    config.FlappyConfig
	CreatedAt time.Time
}

// Recording converts the entry back into a replayable recording.
func (e RunEntry) Recording() sim.Recording {
	return sim.Recording{
		Seed:     e.Seed,
		TickRate: e.TickRate,
		Ticks:    e.Ticks,
		Flaps:    e.Flaps,
		Score:    e.Score,
		Cause:    sim.ParseCause(e.Cause),
	}
}

// Duration returns the in-game length of the run.
func (e RunEntry) Duration() time.Duration {
	if e.TickRate <= 0 {
		return 0
	}
	return time.Duration(e.Ticks) * time.Second / time.Duration(e.TickRate)
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
			game_id TEXT NOT NULL,
			seed INTEGER NOT NULL,
			tick_rate INTEGER NOT NULL,
			ticks INTEGER NOT NULL,
			score INTEGER NOT NULL,
			cause TEXT NOT NULL,
			flaps BLOB NOT NULL,
			config TEXT NOT NULL,
			created_at DATETIME DEFAULT CURRENT_TIMESTAMP
		);
		CREATE INDEX IF NOT EXISTS idx_runs_game_id ON runs(game_id);
		CREATE INDEX IF NOT EXISTS idx_runs_created ON runs(created_at DESC);
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

// SaveRun journals a finished run played with cfg and returns its new id.
func (s *Store) SaveRun(gameID string, cfg config.FlappyConfig, rec sim.Recording) (string, error) {
	flaps, err := msgpack.Marshal(rec.Flaps)
	if err != nil {
		return "", fmt.Errorf("storage: cannot encode flaps: %w", err)
	}
	cfgYAML, err := yaml.Marshal(cfg)
	if err != nil {
		return "", fmt.Errorf("storage: cannot encode config: %w", err)
	}

	id := uuid.NewString()
	_, err = s.db.Exec(
		`INSERT INTO runs (id, game_id, seed, tick_rate, ticks, score, cause, flaps, config)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		id, gameID, rec.Seed, rec.TickRate, rec.Ticks, rec.Score, rec.Cause.String(), flaps, string(cfgYAML),
	)
	if err != nil {
		return "", fmt.Errorf("storage: cannot save run: %w", err)
	}

	return id, nil
}

const runColumns = `id, game_id, seed, tick_rate, ticks, score, cause, flaps, config, created_at`

// Run retrieves a run by id. A unique prefix of at least four characters
// is accepted as well.
func (s *Store) Run(id string) (*RunEntry, error) {
	row := s.db.QueryRow(`SELECT `+runColumns+` FROM runs WHERE id = ?`, id)
	entry, err := scanRun(row)
	if err == nil {
		return entry, nil
	}
	if !errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("storage: cannot query run: %w", err)
	}

	if len(id) < minPrefixLen {
		return nil, fmt.Errorf("%w: %s", ErrRunNotFound, id)
	}

	entries, err := s.queryRuns(`SELECT `+runColumns+` FROM runs WHERE id LIKE ? || '%' LIMIT 2`, id)
	if err != nil {
		return nil, err
	}
	switch len(entries) {
	case 0:
		return nil, fmt.Errorf("%w: %s", ErrRunNotFound, id)
	case 1:
		return &entries[0], nil
	default:
		return nil, fmt.Errorf("%w: %s", ErrAmbiguousRun, id)
	}
}

// RecentRuns retrieves the most recent runs, newest first. An empty gameID
// matches every game.
func (s *Store) RecentRuns(gameID string, limit int) ([]RunEntry, error) {
	if limit <= 0 {
		limit = 20
	}

	if gameID == "" {
		return s.queryRuns(
			`SELECT `+runColumns+` FROM runs ORDER BY created_at DESC, rowid DESC LIMIT ?`,
			limit,
		)
	}
	return s.queryRuns(
		`SELECT `+runColumns+` FROM runs WHERE game_id = ? ORDER BY created_at DESC, rowid DESC LIMIT ?`,
		gameID, limit,
	)
}

// DeleteRuns deletes all runs of the given game.
func (s *Store) DeleteRuns(gameID string) error {
	_, err := s.db.Exec("DELETE FROM runs WHERE game_id = ?", gameID)
	if err != nil {
		return fmt.Errorf("storage: cannot delete runs: %w", err)
	}
	return nil
}

// GameStats contains aggregated statistics for a game.
type GameStats struct {
	GameID     string
	RunsCount  int
	AvgScore   float64
	TotalTicks int64
	LastPlayed time.Time
}

// Stats retrieves aggregated statistics for a specific game.
func (s *Store) Stats(gameID string) (*GameStats, error) {
	stats := &GameStats{GameID: gameID}

	var lastPlayed any
	err := s.db.QueryRow(
		`SELECT COUNT(*), COALESCE(AVG(score), 0), COALESCE(SUM(ticks), 0), MAX(created_at)
		 FROM runs WHERE game_id = ?`,
		gameID,
	).Scan(&stats.RunsCount, &stats.AvgScore, &stats.TotalTicks, &lastPlayed)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot get game stats: %w", err)
	}
	stats.LastPlayed = parseTime(lastPlayed)

	return stats, nil
}

func (s *Store) queryRuns(query string, args ...any) ([]RunEntry, error) {
	rows, err := s.db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query runs: %w", err)
	}
	defer rows.Close()

	var entries []RunEntry
	for rows.Next() {
		e, err := scanRun(rows)
		if err != nil {
			return nil, fmt.Errorf("storage: cannot scan row: %w", err)
		}
		entries = append(entries, *e)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: row iteration error: %w", err)
	}

	return entries, nil
}

// scanner is satisfied by *sql.Row and *sql.Rows.
type scanner interface {
	Scan(dest ...any) error
}

func scanRun(sc scanner) (*RunEntry, error) {
	var (
		e         RunEntry
		flaps     []byte
		cfgYAML   string
		createdAt any
	)
	err := sc.Scan(&e.ID, &e.GameID, &e.Seed, &e.TickRate, &e.Ticks, &e.Score, &e.Cause, &flaps, &cfgYAML, &createdAt)
	if err != nil {
		return nil, err
	}

	if err := msgpack.Unmarshal(flaps, &e.Flaps); err != nil {
		return nil, fmt.Errorf("storage: cannot decode flaps of run %s: %w", e.ID, err)
	}

	e.Config = config.DefaultFlappyConfig()
	if err := yaml.Unmarshal([]byte(cfgYAML), &e.Config); err != nil {
		return nil, fmt.Errorf("storage: cannot decode config of run %s: %w", e.ID, err)
	}

	e.CreatedAt = parseTime(createdAt)
	return &e, nil
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
