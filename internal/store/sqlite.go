package store

import (
	"context"
	"database/sql"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"time"

	_ "modernc.org/sqlite"
)

const defaultSQLitePath = "poker.db"

// SQLiteStore is the default local PlayerStore backend, matching the
// teacher's auth.SQLiteManager in connection handling and schema style
// (single-conn pool, WAL journal, busy_timeout, IF NOT EXISTS DDL issued
// at open time).
type SQLiteStore struct {
	db *sql.DB
}

// NewSQLiteStore opens (creating if necessary) the players database at
// path.
func NewSQLiteStore(path string) (*SQLiteStore, error) {
	path = strings.TrimSpace(path)
	if path == "" {
		path = defaultSQLitePath
	}
	if path != ":memory:" {
		if parent := filepath.Dir(path); parent != "" && parent != "." {
			if err := os.MkdirAll(parent, 0o755); err != nil {
				return nil, err
			}
		}
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, err
	}
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	for _, pragma := range []string{
		`PRAGMA busy_timeout = 5000;`,
		`PRAGMA journal_mode = WAL;`,
		`PRAGMA foreign_keys = ON;`,
	} {
		if _, err := db.ExecContext(ctx, pragma); err != nil {
			_ = db.Close()
			return nil, err
		}
	}
	if err := ensureSQLiteSchema(ctx, db); err != nil {
		_ = db.Close()
		return nil, err
	}
	return &SQLiteStore{db: db}, nil
}

func ensureSQLiteSchema(ctx context.Context, db *sql.DB) error {
	_, err := db.ExecContext(ctx, `
CREATE TABLE IF NOT EXISTS players (
    id TEXT PRIMARY KEY,
    name TEXT NOT NULL,
    games_played INTEGER NOT NULL DEFAULT 0,
    games_won INTEGER NOT NULL DEFAULT 0,
    wallet INTEGER NOT NULL DEFAULT 1000
);
CREATE UNIQUE INDEX IF NOT EXISTS uq_players_name ON players(name);
`)
	return err
}

func (s *SQLiteStore) RegisterPlayer(ctx context.Context, name string) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	id := newID()
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO players (id, name, wallet) VALUES (?, ?, ?)`,
		id, name, DefaultStartingWallet)
	if err != nil {
		if isSQLiteUniqueViolation(err) {
			return "", ErrNameTaken
		}
		return "", ErrStoreUnavailable
	}
	return id, nil
}

func (s *SQLiteStore) LoginPlayer(ctx context.Context, name string) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	var id string
	err := s.db.QueryRowContext(ctx, `SELECT id FROM players WHERE name = ?`, name).Scan(&id)
	if errors.Is(err, sql.ErrNoRows) {
		return "", ErrNotFound
	}
	if err != nil {
		return "", ErrStoreUnavailable
	}
	return id, nil
}

func (s *SQLiteStore) GetWallet(ctx context.Context, name string) (int64, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	var wallet int64
	err := s.db.QueryRowContext(ctx, `SELECT wallet FROM players WHERE name = ?`, name).Scan(&wallet)
	if errors.Is(err, sql.ErrNoRows) {
		return 0, ErrNotFound
	}
	if err != nil {
		return 0, ErrStoreUnavailable
	}
	return wallet, nil
}

func (s *SQLiteStore) PlayerStats(ctx context.Context, name string) (Stats, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	var st Stats
	err := s.db.QueryRowContext(ctx,
		`SELECT games_played, games_won, wallet FROM players WHERE name = ?`, name,
	).Scan(&st.GamesPlayed, &st.GamesWon, &st.Wallet)
	if errors.Is(err, sql.ErrNoRows) {
		return Stats{}, ErrNotFound
	}
	if err != nil {
		return Stats{}, ErrStoreUnavailable
	}
	return st, nil
}

func (s *SQLiteStore) UpdatePlayerStats(ctx context.Context, name string, deltaGamesPlayed, deltaGamesWon, wallet int64) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	res, err := s.db.ExecContext(ctx, `
UPDATE players
SET games_played = games_played + ?,
    games_won = games_won + ?,
    wallet = ?
WHERE name = ?
`, deltaGamesPlayed, deltaGamesWon, wallet, name)
	if err != nil {
		return ErrStoreUnavailable
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrNotFound
	}
	return nil
}

func (s *SQLiteStore) Close() error {
	if s == nil || s.db == nil {
		return nil
	}
	return s.db.Close()
}

func isSQLiteUniqueViolation(err error) bool {
	if err == nil {
		return false
	}
	return strings.Contains(strings.ToLower(err.Error()), "unique constraint failed")
}
