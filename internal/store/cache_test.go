package store

import (
	"context"
	"testing"
)

func TestCachedStoreReadsThroughThenFromCache(t *testing.T) {
	backend := NewMemoryStore()
	ctx := context.Background()
	if _, err := backend.RegisterPlayer(ctx, "dan"); err != nil {
		t.Fatalf("RegisterPlayer: %v", err)
	}

	cached, err := NewCachedStore(backend, 16)
	if err != nil {
		t.Fatalf("NewCachedStore: %v", err)
	}

	st, err := cached.PlayerStats(ctx, "dan")
	if err != nil {
		t.Fatalf("PlayerStats: %v", err)
	}
	if st.Wallet != DefaultStartingWallet {
		t.Fatalf("Wallet = %d, want %d", st.Wallet, DefaultStartingWallet)
	}

	// Mutate the backend directly, bypassing the cache: a cached read
	// must still see the stale value until the cache entry is
	// invalidated by a write through CachedStore itself.
	if err := backend.UpdatePlayerStats(ctx, "dan", 1, 1, 1); err != nil {
		t.Fatalf("UpdatePlayerStats on backend: %v", err)
	}
	stale, err := cached.PlayerStats(ctx, "dan")
	if err != nil {
		t.Fatalf("PlayerStats (cached): %v", err)
	}
	if stale.Wallet != DefaultStartingWallet {
		t.Fatalf("expected a stale cache hit with wallet %d, got %d", DefaultStartingWallet, stale.Wallet)
	}
}

func TestCachedStoreInvalidatesOnWrite(t *testing.T) {
	backend := NewMemoryStore()
	ctx := context.Background()
	if _, err := backend.RegisterPlayer(ctx, "erin"); err != nil {
		t.Fatalf("RegisterPlayer: %v", err)
	}

	cached, err := NewCachedStore(backend, 16)
	if err != nil {
		t.Fatalf("NewCachedStore: %v", err)
	}

	if _, err := cached.PlayerStats(ctx, "erin"); err != nil {
		t.Fatalf("warm the cache: %v", err)
	}
	if err := cached.UpdatePlayerStats(ctx, "erin", 1, 0, 750); err != nil {
		t.Fatalf("UpdatePlayerStats: %v", err)
	}

	st, err := cached.PlayerStats(ctx, "erin")
	if err != nil {
		t.Fatalf("PlayerStats after update: %v", err)
	}
	if st.Wallet != 750 || st.GamesPlayed != 1 {
		t.Fatalf("expected fresh stats {wallet:750 gamesPlayed:1}, got %+v", st)
	}
}
