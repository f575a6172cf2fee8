package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	_ "modernc.org/sqlite"
)

const timeFormat = time.RFC3339Nano

// ErrNotFound is returned when no saved game exists under the given ID.
var ErrNotFound = errors.New("saved game not found")

const schema = `
CREATE TABLE IF NOT EXISTS games (
	game_id  TEXT PRIMARY KEY,
	snapshot BLOB NOT NULL,
	saved_at TEXT NOT NULL
);
`

// SavedGame describes one persisted game.
type SavedGame struct {
	GameID  string
	SavedAt time.Time
}

// Store persists game snapshots in a SQLite database.
type Store struct {
	db *sql.DB
}

// Open opens (and if needed creates) the store at the provided path.
func Open(path string) (*Store, error) {
	if strings.TrimSpace(path) == "" {
		return nil, fmt.Errorf("storage path is required")
	}

	dsn := path
	if path != ":memory:" {
		dsn = filepath.Clean(path) + "?_journal_mode=WAL&_busy_timeout=5000&_synchronous=NORMAL"
	}
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("open sqlite db: %w", err)
	}
	if err := db.Ping(); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("ping sqlite db: %w", err)
	}
	if _, err := db.Exec(schema); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("create schema: %w", err)
	}
	return &Store{db: db}, nil
}

// Close closes the underlying database.
func (s *Store) Close() error {
	if s == nil || s.db == nil {
		return nil
	}
	return s.db.Close()
}

// Save writes or replaces the snapshot stored under gameID.
func (s *Store) Save(ctx context.Context, gameID string, snapshot []byte) error {
	if strings.TrimSpace(gameID) == "" {
		return fmt.Errorf("game id is required")
	}
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO games (game_id, snapshot, saved_at) VALUES (?, ?, ?)
		ON CONFLICT(game_id) DO UPDATE SET snapshot = excluded.snapshot, saved_at = excluded.saved_at`,
		gameID, snapshot, time.Now().UTC().Format(timeFormat))
	if err != nil {
		return fmt.Errorf("save game %s: %w", gameID, err)
	}
	return nil
}

// Load returns the snapshot stored under gameID.
func (s *Store) Load(ctx context.Context, gameID string) ([]byte, error) {
	var snapshot []byte
	err := s.db.QueryRowContext(ctx,
		`SELECT snapshot FROM games WHERE game_id = ?`, gameID).Scan(&snapshot)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("load game %s: %w", gameID, err)
	}
	return snapshot, nil
}

// List returns every saved game, most recent first.
func (s *Store) List(ctx context.Context) ([]SavedGame, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT game_id, saved_at FROM games ORDER BY saved_at DESC`)
	if err != nil {
		return nil, fmt.Errorf("list games: %w", err)
	}
	defer rows.Close()

	var games []SavedGame
	for rows.Next() {
		var g SavedGame
		var savedAt string
		if err := rows.Scan(&g.GameID, &savedAt); err != nil {
			return nil, fmt.Errorf("scan game row: %w", err)
		}
		g.SavedAt, err = time.Parse(timeFormat, savedAt)
		if err != nil {
			return nil, fmt.Errorf("parse saved_at for %s: %w", g.GameID, err)
		}
		games = append(games, g)
	}
	return games, rows.Err()
}

// Delete removes a saved game. Deleting a missing game is not an error.
func (s *Store) Delete(ctx context.Context, gameID string) error {
	if _, err := s.db.ExecContext(ctx,
		`DELETE FROM games WHERE game_id = ?`, gameID); err != nil {
		return fmt.Errorf("delete game %s: %w", gameID, err)
	}
	return nil
}
