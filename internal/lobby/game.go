package lobby

import (
	"context"
	"fmt"
	"log"

	"fivedraw/internal/player"
)

// antiThreshold is the wallet floor for paying the ante: a player whose
// wallet is at or below it is folded for the hand instead.
const antiThreshold = 10

// runHand drives one hand from START_OF_ROUND to UPDATE_DB. It is called
// with no lock held and acquires l.mu only for the duration of each
// state mutation, releasing it for every prompt-and-read.
func (l *Lobby) runHand(ctx context.Context) {
	l.mu.Lock()
	l.setPhaseLocked(StartOfRound)
	seated := l.seatedSnapshotLocked()
	if len(seated) > 0 {
		l.firstBettingPlayer = (l.firstBettingPlayer + 1) % len(seated)
	}
	var dealerName string
	for i, p := range seated {
		p.ResetForHand()
		p.Dealer = i == l.firstBettingPlayer
		if p.Dealer {
			dealerName = p.Name
		}
	}
	l.pot = 0
	l.mu.Unlock()

	if len(seated) == 0 {
		return
	}

	if dealerName != "" {
		l.Broadcast(fmt.Sprintf("%s deals this hand.", dealerName))
	}

	l.runAnte(seated)

	if len(nonFolded(seated)) <= 1 {
		winners := l.runShowdown(seated)
		l.flushStats(ctx, seated, winners)
		return
	}

	l.mu.Lock()
	l.setPhaseLocked(DealCards)
	l.deck.Shuffle(l.rng)
	for _, p := range seated {
		if !p.InHand() {
			continue
		}
		for i := 0; i < 5; i++ {
			p.Hand[i] = l.deck.Deal()
		}
		p.HandDealt = true
	}
	l.mu.Unlock()

	for _, p := range seated {
		if p.InHand() {
			p.Conn.Send(fmt.Sprintf("Your hand: %s", formatHand(p.Hand)))
		}
	}

	l.mu.Lock()
	l.setPhaseLocked(FirstBettingRound)
	l.mu.Unlock()
	l.runBettingRound(ctx, seated)

	if len(nonFolded(seated)) <= 1 {
		winners := l.runShowdown(seated)
		l.flushStats(ctx, seated, winners)
		return
	}

	l.mu.Lock()
	l.setPhaseLocked(Draw)
	l.mu.Unlock()
	l.runDrawRound(ctx, seated)

	if len(nonFolded(seated)) <= 1 {
		winners := l.runShowdown(seated)
		l.flushStats(ctx, seated, winners)
		return
	}

	l.mu.Lock()
	l.setPhaseLocked(SecondBettingRound)
	l.mu.Unlock()
	l.runBettingRound(ctx, seated)

	l.mu.Lock()
	l.setPhaseLocked(Showdown)
	l.mu.Unlock()
	winners := l.runShowdown(seated)

	l.mu.Lock()
	l.setPhaseLocked(EndOfRound)
	l.setPhaseLocked(UpdateDB)
	l.mu.Unlock()
	l.flushStats(ctx, seated, winners)
}

// runAnte collects the fixed ante from every seated player, folding
// anyone whose wallet does not exceed antiThreshold, and counts this hand toward
// everyone's gamesPlayed regardless of whether they could pay.
func (l *Lobby) runAnte(seated []*player.Player) {
	l.mu.Lock()
	l.setPhaseLocked(Ante)
	for _, p := range seated {
		p.GamesPlayed++
		if p.Wallet > antiThreshold {
			p.Wallet -= AnteAmount
			l.pot += AnteAmount
		} else {
			p.State = player.Folded
		}
	}
	l.mu.Unlock()
}

// flushStats persists each seated player's per-hand delta to the store.
// winners holds the names credited with a win this hand.
func (l *Lobby) flushStats(ctx context.Context, seated []*player.Player, winners []string) {
	won := make(map[string]bool, len(winners))
	for _, n := range winners {
		won[n] = true
	}
	for _, p := range seated {
		var wonDelta int64
		if won[p.Name] {
			wonDelta = 1
		}
		if err := l.store.UpdatePlayerStats(ctx, p.Name, 1, wonDelta, p.Wallet); err != nil {
			log.Printf("[Lobby %s] flush stats for %s: %v", l.Name, p.Name, err)
		}
	}
}

// nonFolded returns the subset of seated still eligible to contest the
// pot (everyone except those who folded this hand).
func nonFolded(seated []*player.Player) []*player.Player {
	out := make([]*player.Player, 0, len(seated))
	for _, p := range seated {
		if p.InHand() {
			out = append(out, p)
		}
	}
	return out
}
