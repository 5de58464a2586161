package store

import (
	"context"
	"database/sql"
	"errors"
	"strings"
	"time"

	_ "github.com/lib/pq"
)

// PostgresStore is the alternate PlayerStore backend, matching the
// teacher's ledger.PostgresService connection and schema-presence check
// pattern.
type PostgresStore struct {
	db *sql.DB
}

// NewPostgresStore opens a connection pool against dsn and ensures the
// players table exists.
func NewPostgresStore(dsn string) (*PostgresStore, error) {
	db, err := sql.Open("postgres", dsn)
	if err != nil {
		return nil, err
	}
	db.SetMaxOpenConns(20)
	db.SetMaxIdleConns(10)
	db.SetConnMaxLifetime(30 * time.Minute)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, err
	}
	if err := ensurePostgresSchema(ctx, db); err != nil {
		_ = db.Close()
		return nil, err
	}
	return &PostgresStore{db: db}, nil
}

func ensurePostgresSchema(ctx context.Context, db *sql.DB) error {
	_, err := db.ExecContext(ctx, `
CREATE TABLE IF NOT EXISTS players (
    id TEXT PRIMARY KEY,
    name TEXT UNIQUE NOT NULL,
    games_played BIGINT NOT NULL DEFAULT 0,
    games_won BIGINT NOT NULL DEFAULT 0,
    wallet BIGINT NOT NULL DEFAULT 1000
)`)
	return err
}

func (s *PostgresStore) RegisterPlayer(ctx context.Context, name string) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	id := newID()
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO players (id, name, wallet) VALUES ($1, $2, $3)`,
		id, name, DefaultStartingWallet)
	if err != nil {
		if isPostgresUniqueViolation(err) {
			return "", ErrNameTaken
		}
		return "", ErrStoreUnavailable
	}
	return id, nil
}

func (s *PostgresStore) LoginPlayer(ctx context.Context, name string) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	var id string
	err := s.db.QueryRowContext(ctx, `SELECT id FROM players WHERE name = $1`, name).Scan(&id)
	if errors.Is(err, sql.ErrNoRows) {
		return "", ErrNotFound
	}
	if err != nil {
		return "", ErrStoreUnavailable
	}
	return id, nil
}

func (s *PostgresStore) GetWallet(ctx context.Context, name string) (int64, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	var wallet int64
	err := s.db.QueryRowContext(ctx, `SELECT wallet FROM players WHERE name = $1`, name).Scan(&wallet)
	if errors.Is(err, sql.ErrNoRows) {
		return 0, ErrNotFound
	}
	if err != nil {
		return 0, ErrStoreUnavailable
	}
	return wallet, nil
}

func (s *PostgresStore) PlayerStats(ctx context.Context, name string) (Stats, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	var st Stats
	err := s.db.QueryRowContext(ctx,
		`SELECT games_played, games_won, wallet FROM players WHERE name = $1`, name,
	).Scan(&st.GamesPlayed, &st.GamesWon, &st.Wallet)
	if errors.Is(err, sql.ErrNoRows) {
		return Stats{}, ErrNotFound
	}
	if err != nil {
		return Stats{}, ErrStoreUnavailable
	}
	return st, nil
}

func (s *PostgresStore) UpdatePlayerStats(ctx context.Context, name string, deltaGamesPlayed, deltaGamesWon, wallet int64) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	res, err := s.db.ExecContext(ctx, `
UPDATE players
SET games_played = games_played + $1,
    games_won = games_won + $2,
    wallet = $3
WHERE name = $4
`, deltaGamesPlayed, deltaGamesWon, wallet, name)
	if err != nil {
		return ErrStoreUnavailable
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrNotFound
	}
	return nil
}

func (s *PostgresStore) Close() error {
	if s == nil || s.db == nil {
		return nil
	}
	return s.db.Close()
}

func isPostgresUniqueViolation(err error) bool {
	if err == nil {
		return false
	}
	return strings.Contains(err.Error(), "duplicate key value violates unique constraint")
}
