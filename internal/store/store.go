// Package store implements account registration/login and wallet/stats
// persistence. This is deliberately outside the game engine's core — the
// engine only depends on the Store interface below.
package store

import (
	"context"
	"errors"
)

// Sentinel errors for the PlayerStore contract's failure modes, one
// per backend-independent outcome callers need to branch on.
var (
	ErrNameTaken        = errors.New("store: name already taken")
	ErrStoreUnavailable = errors.New("store: unavailable")
	ErrNotFound         = errors.New("store: player not found")
)

// Stats is the playerStats projection.
type Stats struct {
	GamesPlayed int64
	GamesWon    int64
	Wallet      int64
}

// DefaultStartingWallet is credited to a newly registered player.
const DefaultStartingWallet = 1000

// Store is the PlayerStore contract.
type Store interface {
	// RegisterPlayer creates a new account with the default starting
	// wallet and returns its opaque id. Returns ErrNameTaken if the
	// unique-name constraint is violated.
	RegisterPlayer(ctx context.Context, name string) (id string, err error)

	// LoginPlayer returns the id of an existing account, or ErrNotFound
	// if no such account exists. Returns ErrStoreUnavailable on backend
	// failure.
	LoginPlayer(ctx context.Context, name string) (id string, err error)

	// GetWallet returns the player's current wallet balance.
	GetWallet(ctx context.Context, name string) (wallet int64, err error)

	// PlayerStats returns the player's aggregate stats.
	PlayerStats(ctx context.Context, name string) (Stats, error)

	// UpdatePlayerStats applies deltas to gamesPlayed/gamesWon and sets
	// the wallet to its new authoritative value.
	UpdatePlayerStats(ctx context.Context, name string, deltaGamesPlayed, deltaGamesWon int64, wallet int64) error

	// Close releases backend resources.
	Close() error
}
