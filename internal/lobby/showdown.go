package lobby

import (
	"fmt"
	"strings"

	"fivedraw/internal/handeval"
	"fivedraw/internal/player"
)

// runShowdown evaluates every non-folded player's hand, splits the pot
// evenly among the best (any remainder from integer division is
// discarded), credits wallets and gamesWon, and broadcasts the result.
// It returns the winners' names for the caller to flush to the store.
func (l *Lobby) runShowdown(seated []*player.Player) []string {
	contenders := nonFolded(seated)
	if len(contenders) == 0 {
		return nil
	}

	var winners []*player.Player
	if !contenders[0].HandDealt {
		// Everyone else folded at the ante before any cards were dealt;
		// the lone remaining player wins by default.
		winners = contenders[:1]
	} else {
		best := handeval.Classify(contenders[0].Hand)
		winners = []*player.Player{contenders[0]}
		for _, p := range contenders[1:] {
			r := handeval.Classify(p.Hand)
			switch r.Compare(best) {
			case 0:
				winners = append(winners, p)
			default:
				if r.Compare(best) > 0 {
					best = r
					winners = []*player.Player{p}
				}
			}
		}
	}

	l.mu.Lock()
	pot := l.pot
	var share int64
	if len(winners) > 0 {
		share = pot / int64(len(winners))
	}
	names := make([]string, 0, len(winners))
	for _, p := range winners {
		p.Wallet += share
		p.GamesWon++
		names = append(names, p.Name)
	}
	l.pot = 0
	l.mu.Unlock()

	if len(names) > 0 {
		l.Broadcast(fmt.Sprintf("Showdown: %s win%s the pot of %s.",
			strings.Join(names, ", "), pluralSuffix(len(names)), formatMoney(pot)))
	}
	return names
}

func pluralSuffix(n int) string {
	if n == 1 {
		return "s"
	}
	return ""
}
