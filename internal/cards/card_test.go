package cards

import "testing"

func TestCardRankAndSuit(t *testing.T) {
	cases := []struct {
		card     Card
		rank     int
		suit     Suit
		rankHigh int
		label    string
	}{
		{Card(0), 0, Hearts, 13, "AH"},
		{Card(9), 9, Hearts, 9, "10H"},
		{Card(12), 12, Hearts, 12, "KH"},
		{Card(13), 0, Diamonds, 13, "AD"},
		{Card(26), 0, Spades, 13, "AS"},
		{Card(51), 12, Clubs, 12, "KC"},
	}
	for _, c := range cases {
		if got := c.card.Rank(); got != c.rank {
			t.Errorf("Card(%d).Rank() = %d, want %d", c.card, got, c.rank)
		}
		if got := c.card.Suit(); got != c.suit {
			t.Errorf("Card(%d).Suit() = %v, want %v", c.card, got, c.suit)
		}
		if got := c.card.RankHigh(); got != c.rankHigh {
			t.Errorf("Card(%d).RankHigh() = %d, want %d", c.card, got, c.rankHigh)
		}
		if got := c.card.String(); got != c.label {
			t.Errorf("Card(%d).String() = %q, want %q", c.card, got, c.label)
		}
	}
}

func TestCardValid(t *testing.T) {
	if !Card(0).Valid() || !Card(51).Valid() {
		t.Fatalf("0 and 51 must be valid cards")
	}
	if Card(-1).Valid() || Card(52).Valid() {
		t.Fatalf("-1 and 52 must be outside the 0..51 universe")
	}
}

func TestCardStringOutOfRange(t *testing.T) {
	if got := Card(52).String(); got != "?52" {
		t.Fatalf("Card(52).String() = %q, want %q", got, "?52")
	}
}
