package lobby

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"fivedraw/internal/player"
)

// runDrawRound iterates the same seating rotation as a betting round,
// skipping FOLDED and ALL_IN players, offering each active player the
// chance to stand pat or exchange cards.
func (l *Lobby) runDrawRound(ctx context.Context, seated []*player.Player) {
	n := len(seated)
	if n == 0 {
		return
	}
	idx := l.firstBettingPlayer % n
	for i := 0; i < n; i++ {
		p := seated[idx]
		idx = (idx + 1) % n
		if !p.ActsThisRound() {
			continue
		}
		l.handleDraw(ctx, p)
		if len(nonFolded(seated)) <= 1 {
			return
		}
	}
}

func (l *Lobby) handleDraw(ctx context.Context, p *player.Player) {
	for {
		choice, ok := p.Conn.Ask(ctx, "1 Stand Pat / 2 Exchange:")
		if !ok {
			l.Broadcast(fmt.Sprintf("%s disconnected and stood pat.", p.Name))
			return
		}
		switch strings.TrimSpace(choice) {
		case "1":
			return
		case "2":
			if l.exchangeCards(ctx, p) {
				return
			}
		default:
			p.Conn.Send("Unrecognized action.")
		}
	}
}

// exchangeCards reads a comma-separated list of 1-based card positions,
// re-prompting on anything that doesn't parse as distinct indices in
// 1..5, then deals replacements from the lobby's already-shuffled deck
// (it is not reshuffled mid-hand).
func (l *Lobby) exchangeCards(ctx context.Context, p *player.Player) bool {
	for {
		raw, ok := p.Conn.Ask(ctx, "Enter comma-separated card positions (1-5) to exchange:")
		if !ok {
			l.Broadcast(fmt.Sprintf("%s disconnected and stood pat.", p.Name))
			return true
		}

		indices, valid := parseCardIndices(raw)
		if !valid {
			p.Conn.Send("Invalid selection.")
			continue
		}

		l.mu.Lock()
		for _, i := range indices {
			p.Hand[i-1] = l.deck.Deal()
		}
		l.mu.Unlock()

		p.Conn.Send(fmt.Sprintf("Your hand: %s", formatHand(p.Hand)))
		return true
	}
}

// parseCardIndices validates raw as a comma-separated list of distinct
// 1-based card positions in 1..5.
func parseCardIndices(raw string) ([]int, bool) {
	fields := strings.Split(raw, ",")
	seen := make(map[int]bool)
	var out []int
	for _, f := range fields {
		f = strings.TrimSpace(f)
		if f == "" {
			continue
		}
		n, err := strconv.Atoi(f)
		if err != nil || n < 1 || n > 5 || seen[n] {
			return nil, false
		}
		seen[n] = true
		out = append(out, n)
	}
	if len(out) == 0 {
		return nil, false
	}
	return out, true
}
