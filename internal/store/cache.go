package store

import (
	"context"

	lru "github.com/hashicorp/golang-lru/v2"
)

// CachedStore wraps a Store with a read-through LRU cache of PlayerStats,
// so a busy stats menu does not round-trip to the database for every
// request. GetWallet answers from a cached PlayerStats entry when one
// exists; a GetWallet miss goes to the backend and does not fill the
// cache. Any mutation invalidates that player's cache entry immediately.
type CachedStore struct {
	backend Store
	stats   *lru.Cache[string, Stats]
}

// NewCachedStore wraps backend with an LRU of the given size.
func NewCachedStore(backend Store, size int) (*CachedStore, error) {
	c, err := lru.New[string, Stats](size)
	if err != nil {
		return nil, err
	}
	return &CachedStore{backend: backend, stats: c}, nil
}

func (c *CachedStore) RegisterPlayer(ctx context.Context, name string) (string, error) {
	id, err := c.backend.RegisterPlayer(ctx, name)
	if err == nil {
		c.stats.Remove(name)
	}
	return id, err
}

func (c *CachedStore) LoginPlayer(ctx context.Context, name string) (string, error) {
	return c.backend.LoginPlayer(ctx, name)
}

func (c *CachedStore) GetWallet(ctx context.Context, name string) (int64, error) {
	if st, ok := c.stats.Get(name); ok {
		return st.Wallet, nil
	}
	wallet, err := c.backend.GetWallet(ctx, name)
	if err != nil {
		return 0, err
	}
	return wallet, nil
}

func (c *CachedStore) PlayerStats(ctx context.Context, name string) (Stats, error) {
	if st, ok := c.stats.Get(name); ok {
		return st, nil
	}
	st, err := c.backend.PlayerStats(ctx, name)
	if err != nil {
		return Stats{}, err
	}
	c.stats.Add(name, st)
	return st, nil
}

func (c *CachedStore) UpdatePlayerStats(ctx context.Context, name string, deltaGamesPlayed, deltaGamesWon, wallet int64) error {
	err := c.backend.UpdatePlayerStats(ctx, name, deltaGamesPlayed, deltaGamesWon, wallet)
	if err == nil {
		c.stats.Remove(name)
	}
	return err
}

func (c *CachedStore) Close() error {
	return c.backend.Close()
}
