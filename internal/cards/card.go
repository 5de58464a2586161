// Package cards implements the 52-card universe and deck used by
// five-card draw: an integer encoding plus the translation needed to
// show a hand to a player over text.
package cards

import "fmt"

// Card is an integer 0..51. rank = card % 13 (0=Ace .. 9=Ten, 10=Jack,
// 11=Queen, 12=King); suit = card / 13 (0=Hearts, 1=Diamonds, 2=Spades,
// 3=Clubs).
type Card int

// Suit identifies one of the four suits via card / 13.
type Suit int

const (
	Hearts Suit = iota
	Diamonds
	Spades
	Clubs
)

func (s Suit) String() string {
	switch s {
	case Hearts:
		return "H"
	case Diamonds:
		return "D"
	case Spades:
		return "S"
	case Clubs:
		return "C"
	default:
		return "?"
	}
}

// Rank returns 0..12 with Ace=0, Two=1, ..., King=12. This is the raw
// arithmetic rank (Ace low); hand comparison uses RankHigh instead.
func (c Card) Rank() int {
	return int(c) % 13
}

// Suit returns the card's suit.
func (c Card) Suit() Suit {
	return Suit(int(c) / 13)
}

// RankHigh returns the rank used for hand comparison: Ace is high (13),
// everything else keeps its Rank() (Two=1 .. King=12).
func (c Card) RankHigh() int {
	r := c.Rank()
	if r == 0 {
		return 13
	}
	return r
}

// rankLabel is indexed by Rank() (Ace-low, 0..12).
var rankLabel = [13]string{"A", "2", "3", "4", "5", "6", "7", "8", "9", "10", "J", "Q", "K"}

// String renders a card as e.g. "AH", "10S", "KC".
func (c Card) String() string {
	if c < 0 || c > 51 {
		return fmt.Sprintf("?%d", int(c))
	}
	return rankLabel[c.Rank()] + c.Suit().String()
}

// Valid reports whether c is in the legal 0..51 universe.
func (c Card) Valid() bool {
	return c >= 0 && c <= 51
}
