package store

import (
	"context"
	"sync"

	"github.com/google/uuid"
)

type memoryRow struct {
	id          string
	gamesPlayed int64
	gamesWon    int64
	wallet      int64
}

// MemoryStore is an in-process Store, used in tests and by "memory" mode.
// It has no backing schema — it exists purely so the engine can be
// exercised without a real database.
type MemoryStore struct {
	mu   sync.Mutex
	rows map[string]*memoryRow
}

// NewMemoryStore returns an empty in-memory Store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{rows: make(map[string]*memoryRow)}
}

func (m *MemoryStore) RegisterPlayer(_ context.Context, name string) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.rows[name]; ok {
		return "", ErrNameTaken
	}
	id := uuid.New().String()
	m.rows[name] = &memoryRow{id: id, wallet: DefaultStartingWallet}
	return id, nil
}

func (m *MemoryStore) LoginPlayer(_ context.Context, name string) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	row, ok := m.rows[name]
	if !ok {
		return "", ErrNotFound
	}
	return row.id, nil
}

func (m *MemoryStore) GetWallet(_ context.Context, name string) (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	row, ok := m.rows[name]
	if !ok {
		return 0, ErrNotFound
	}
	return row.wallet, nil
}

func (m *MemoryStore) PlayerStats(_ context.Context, name string) (Stats, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	row, ok := m.rows[name]
	if !ok {
		return Stats{}, ErrNotFound
	}
	return Stats{GamesPlayed: row.gamesPlayed, GamesWon: row.gamesWon, Wallet: row.wallet}, nil
}

func (m *MemoryStore) UpdatePlayerStats(_ context.Context, name string, deltaGamesPlayed, deltaGamesWon, wallet int64) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	row, ok := m.rows[name]
	if !ok {
		return ErrNotFound
	}
	row.gamesPlayed += deltaGamesPlayed
	row.gamesWon += deltaGamesWon
	row.wallet = wallet
	return nil
}

func (m *MemoryStore) Close() error { return nil }
