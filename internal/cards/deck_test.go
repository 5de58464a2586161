package cards

import (
	"math/rand"
	"testing"
)

func TestNewDeckIsIdentityOrder(t *testing.T) {
	d := New()
	for i := 0; i < 52; i++ {
		if d.Deal() != Card(i) {
			t.Fatalf("expected identity order at position %d", i)
		}
	}
}

func TestShuffleIsAPermutation(t *testing.T) {
	d := New()
	rng := rand.New(rand.NewSource(1))
	d.Shuffle(rng)

	seen := map[Card]bool{}
	for i := 0; i < 52; i++ {
		seen[d.Deal()] = true
	}
	if len(seen) != 52 {
		t.Fatalf("shuffle did not produce a permutation of 0..51, got %d distinct cards", len(seen))
	}
}

func TestShuffleResetsCursor(t *testing.T) {
	d := New()
	rng := rand.New(rand.NewSource(2))
	_ = d.Deal()
	_ = d.Deal()
	d.Shuffle(rng)
	if d.Remaining() != 52 {
		t.Fatalf("shuffle must reset the cursor, remaining = %d", d.Remaining())
	}
}

func TestDealPastEndPanics(t *testing.T) {
	d := New()
	for i := 0; i < 52; i++ {
		d.Deal()
	}
	defer func() {
		if recover() == nil {
			t.Fatalf("expected panic dealing past end of deck")
		}
	}()
	d.Deal()
}
