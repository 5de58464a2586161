// Package handeval classifies a five-card hand into a totally ordered
// category/tiebreak tuple. It is pure and has no dependency on the rest
// of the engine.
package handeval

import (
	"sort"

	"fivedraw/internal/cards"
)

// Category codes are doubled so that two pair's fractional rank between
// one pair and three of a kind becomes the plain integer 5, sitting
// strictly between one pair (4) and three of a kind (6) without needing
// a floating point type.
const (
	CategoryHighCard      = 2
	CategoryOnePair       = 4
	CategoryTwoPair       = 5
	CategoryThreeOfKind   = 6
	CategoryStraight      = 8
	CategoryFlush         = 10
	CategoryFullHouse     = 12
	CategoryFourOfKind    = 14
	CategoryStraightFlush = 16
)

// Result is the classify tuple: a category plus up to five rank kickers,
// most significant first, zero-padded. Results compare lexicographically:
// Category first, then Kickers in order.
type Result struct {
	Category int
	Kickers  [5]int
}

// Compare returns >0 if r beats other, <0 if other beats r, 0 on a tie.
func (r Result) Compare(other Result) int {
	if r.Category != other.Category {
		return r.Category - other.Category
	}
	for i := range r.Kickers {
		if r.Kickers[i] != other.Kickers[i] {
			return r.Kickers[i] - other.Kickers[i]
		}
	}
	return 0
}

// Classify returns the classification tuple for a five-card hand. Inputs
// must be five distinct cards drawn from 0..51; Classify does not validate
// that (the caller, a Lobby holding its own deck, guarantees it). The
// ace-low wheel (A-2-3-4-5) is not recognized as a straight.
func Classify(hand [5]cards.Card) Result {
	ranks := make([]int, 5)
	suitCounts := map[cards.Suit]int{}
	rankCounts := map[int]int{}
	for i, c := range hand {
		r := c.RankHigh()
		ranks[i] = r
		suitCounts[c.Suit()]++
		rankCounts[r]++
	}
	sort.Ints(ranks)

	flush := len(suitCounts) == 1
	straight, straightHigh := isStraight(ranks)

	// Group ranks by multiplicity, each group's ranks sorted descending.
	type group struct {
		count int
		ranks []int
	}
	byCount := map[int][]int{}
	for r, n := range rankCounts {
		byCount[n] = append(byCount[n], r)
	}
	for n := range byCount {
		sort.Sort(sort.Reverse(sort.IntSlice(byCount[n])))
	}

	switch {
	case straight && flush:
		return Result{Category: CategoryStraightFlush, Kickers: [5]int{straightHigh}}
	case len(byCount[4]) == 1:
		quad := byCount[4][0]
		kicker := onlyOther(rankCounts, quad)
		return Result{Category: CategoryFourOfKind, Kickers: [5]int{quad, kicker}}
	case len(byCount[3]) == 1 && len(byCount[2]) == 1:
		return Result{Category: CategoryFullHouse, Kickers: [5]int{byCount[3][0], byCount[2][0]}}
	case flush:
		desc := append([]int(nil), ranks...)
		sort.Sort(sort.Reverse(sort.IntSlice(desc)))
		return Result{Category: CategoryFlush, Kickers: toArray(desc)}
	case straight:
		return Result{Category: CategoryStraight, Kickers: [5]int{straightHigh}}
	case len(byCount[3]) == 1:
		trips := byCount[3][0]
		kickers := descendingExcluding(ranks, trips)
		return Result{Category: CategoryThreeOfKind, Kickers: [5]int{trips, kickers[0], kickers[1]}}
	case len(byCount[2]) == 2:
		pairs := byCount[2]
		high, low := pairs[0], pairs[1]
		if low > high {
			high, low = low, high
		}
		kicker := 0
		for _, r := range ranks {
			if r != high && r != low {
				kicker = r
			}
		}
		return Result{Category: CategoryTwoPair, Kickers: [5]int{high, low, kicker}}
	case len(byCount[2]) == 1:
		pair := byCount[2][0]
		kickers := descendingExcluding(ranks, pair)
		return Result{Category: CategoryOnePair, Kickers: [5]int{pair, kickers[0], kickers[1], kickers[2]}}
	default:
		desc := append([]int(nil), ranks...)
		sort.Sort(sort.Reverse(sort.IntSlice(desc)))
		return Result{Category: CategoryHighCard, Kickers: toArray(desc)}
	}
}

// isStraight reports whether sorted-ascending ranks form five consecutive
// integers (no ace-low wheel). The second return is the straight's high
// rank.
func isStraight(sortedRanks []int) (bool, int) {
	for i := 1; i < len(sortedRanks); i++ {
		if sortedRanks[i] != sortedRanks[i-1]+1 {
			return false, 0
		}
	}
	return true, sortedRanks[len(sortedRanks)-1]
}

// onlyOther returns the single rank present in rankCounts other than
// exclude (the quad rank's kicker).
func onlyOther(rankCounts map[int]int, exclude int) int {
	for r := range rankCounts {
		if r != exclude {
			return r
		}
	}
	return 0
}

// descendingExcluding returns ranks (already ascending, with duplicates)
// minus every occurrence of exclude, sorted descending.
func descendingExcluding(ranks []int, exclude int) []int {
	out := make([]int, 0, len(ranks))
	for _, r := range ranks {
		if r != exclude {
			out = append(out, r)
		}
	}
	sort.Sort(sort.Reverse(sort.IntSlice(out)))
	return out
}

func toArray(desc []int) [5]int {
	var out [5]int
	copy(out[:], desc)
	return out
}
