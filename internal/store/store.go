// Package store handles SQLite persistence.
package store

import (
	"context"
	"database/sql"
	"errors"
	"os"
	"path/filepath"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/verte-zerg/kiril/internal/model"

	_ "modernc.org/sqlite" // SQLite driver.
)

// Store wraps SQLite access for the key-value blobs and game results.
type Store struct {
	db *sqlx.DB
}

// Open opens or creates the SQLite database and applies migrations.
func Open(path string) (*Store, error) {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, err
	}
	db, err := sqlx.Open("sqlite", path)
	if err != nil {
		return nil, err
	}
	// SQLite allows a single writer.
	db.SetMaxOpenConns(1)
	store := &Store{db: db}
	if err := store.migrate(); err != nil {
		if cerr := db.Close(); cerr != nil {
			// Best-effort close on migration failure.
			_ = cerr
		}
		return nil, err
	}
	return store, nil
}

// Close closes the underlying database.
func (s *Store) Close() error {
	return s.db.Close()
}

func (s *Store) migrate() error {
	stmts := []string{
		`CREATE TABLE IF NOT EXISTS kv (
			key TEXT PRIMARY KEY,
			value BLOB NOT NULL,
			updated_at TEXT NOT NULL
		);`,
		`CREATE TABLE IF NOT EXISTS game_results (
			id INTEGER PRIMARY KEY,
			game TEXT NOT NULL,
			score INTEGER NOT NULL,
			level INTEGER NOT NULL,
			hits INTEGER NOT NULL,
			misses INTEGER NOT NULL,
			started_at TEXT NOT NULL,
			ended_at TEXT NOT NULL
		);`,
		`CREATE INDEX IF NOT EXISTS idx_game_results_game ON game_results(game, ended_at);`,
	}
	for _, stmt := range stmts {
		if _, err := s.db.Exec(stmt); err != nil {
			return err
		}
	}
	return nil
}

// Get returns the blob stored under key. ok is false when the key is absent.
func (s *Store) Get(ctx context.Context, key string) (value []byte, ok bool, err error) {
	err = s.db.GetContext(ctx, &value, `SELECT value FROM kv WHERE key = ?`, key)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, err
	}
	return value, true, nil
}

// Put stores value under key, replacing any previous value.
func (s *Store) Put(ctx context.Context, key string, value []byte) error {
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO kv (key, value, updated_at) VALUES (?, ?, ?)
		 ON CONFLICT(key) DO UPDATE SET value = excluded.value, updated_at = excluded.updated_at`,
		key, value, time.Now().UTC().Format(time.RFC3339Nano))
	return err
}

// Delete removes key. Deleting a missing key is not an error.
func (s *Store) Delete(ctx context.Context, key string) error {
	_, err := s.db.ExecContext(ctx, `DELETE FROM kv WHERE key = ?`, key)
	return err
}

type gameResultRow struct {
	ID        int64  `db:"id"`
	Game      string `db:"game"`
	Score     int    `db:"score"`
	Level     int    `db:"level"`
	Hits      int    `db:"hits"`
	Misses    int    `db:"misses"`
	StartedAt string `db:"started_at"`
	EndedAt   string `db:"ended_at"`
}

// InsertGameResult stores a finished arcade session.
func (s *Store) InsertGameResult(ctx context.Context, result model.GameResult) (int64, error) {
	row := gameResultRow{
		Game:      string(result.Game),
		Score:     result.Score,
		Level:     result.Level,
		Hits:      result.Hits,
		Misses:    result.Misses,
		StartedAt: result.StartedAt.Format(time.RFC3339Nano),
		EndedAt:   result.EndedAt.Format(time.RFC3339Nano),
	}
	res, err := s.db.NamedExecContext(ctx,
		`INSERT INTO game_results (game, score, level, hits, misses, started_at, ended_at)
		 VALUES (:game, :score, :level, :hits, :misses, :started_at, :ended_at)`, row)
	if err != nil {
		return 0, err
	}
	return res.LastInsertId()
}

// ListGameResults returns results for game, newest first. A non-positive
// limit returns every row; an empty game matches all games.
func (s *Store) ListGameResults(ctx context.Context, game model.Game, limit int) ([]model.GameResult, error) {
	if limit <= 0 {
		limit = -1
	}
	var rows []gameResultRow
	err := s.db.SelectContext(ctx, &rows,
		`SELECT id, game, score, level, hits, misses, started_at, ended_at
		 FROM game_results
		 WHERE (? = '' OR game = ?)
		 ORDER BY ended_at DESC, id DESC
		 LIMIT ?`, string(game), string(game), limit)
	if err != nil {
		return nil, err
	}
	out := make([]model.GameResult, 0, len(rows))
	for _, r := range rows {
		started, err := time.Parse(time.RFC3339Nano, r.StartedAt)
		if err != nil {
			return nil, err
		}
		ended, err := time.Parse(time.RFC3339Nano, r.EndedAt)
		if err != nil {
			return nil, err
		}
		out = append(out, model.GameResult{
			ID:        r.ID,
			Game:      model.Game(r.Game),
			Score:     r.Score,
			Level:     r.Level,
			Hits:      r.Hits,
			Misses:    r.Misses,
			StartedAt: started,
			EndedAt:   ended,
		})
	}
	return out, nil
}

// BestScore returns the highest score recorded for game, or zero.
func (s *Store) BestScore(ctx context.Context, game model.Game) (int, error) {
	var best sql.NullInt64
	if err := s.db.GetContext(ctx, &best, `SELECT MAX(score) FROM game_results WHERE game = ?`, string(game)); err != nil {
		return 0, err
	}
	if !best.Valid {
		return 0, nil
	}
	return int(best.Int64), nil
}
