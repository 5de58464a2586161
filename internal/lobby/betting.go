package lobby

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"fivedraw/internal/player"
)

// runBettingRound drives one betting round over seated, starting at
// firstBettingPlayer and proceeding (i+1) mod playerCount, skipping
// FOLDED and ALL_IN players, until every player who owes the table a
// response has given one.
func (l *Lobby) runBettingRound(ctx context.Context, seated []*player.Player) {
	n := len(seated)
	if n == 0 {
		return
	}

	l.mu.Lock()
	for _, p := range seated {
		if p.State != player.Folded {
			p.ResetForBettingRound()
		}
	}
	l.mu.Unlock()

	var currentLobbyBet int64
	remaining := countActingExcept(seated, nil)
	if remaining == 0 {
		return
	}

	idx := l.firstBettingPlayer % n
	for remaining > 0 {
		if len(nonFolded(seated)) <= 1 {
			return
		}
		p := seated[idx]
		idx = (idx + 1) % n
		if !p.ActsThisRound() {
			continue
		}
		l.handlePlayerTurn(ctx, p, &currentLobbyBet, seated, &remaining)
	}
}

// handlePlayerTurn prompts p for one betting action, re-prompting on
// invalid input, until a terminal action (check/raise/call/fold/all-in
// or disconnect) is applied.
func (l *Lobby) handlePlayerTurn(ctx context.Context, p *player.Player, currentLobbyBet *int64, seated []*player.Player, remaining *int) {
	for {
		l.mu.Lock()
		toCall := *currentLobbyBet - p.CurrentBet
		pot := l.pot
		wallet := p.Wallet
		l.mu.Unlock()

		prompt := fmt.Sprintf(
			"%s — pot %s, to call %s, wallet %s. 1 Check / 2 Raise / 3 Call / 4 Fold / 5 All-in:",
			p.Name, formatMoney(pot), formatMoney(toCall), formatMoney(wallet))
		choice, ok := p.Conn.Ask(ctx, prompt)
		if !ok {
			l.handleDisconnectFold(p, remaining)
			l.Broadcast(fmt.Sprintf("%s disconnected and folded.", p.Name))
			return
		}

		switch strings.TrimSpace(choice) {
		case "1":
			if !l.tryCheck(p, currentLobbyBet) {
				p.Conn.Send("Cannot check: there is a bet to call.")
				continue
			}
			*remaining--
			return
		case "2":
			if !l.tryRaise(ctx, p, currentLobbyBet, seated, remaining) {
				continue
			}
			return
		case "3":
			if !l.tryCall(p, currentLobbyBet) {
				p.Conn.Send("Cannot call.")
				continue
			}
			*remaining--
			return
		case "4":
			l.mu.Lock()
			p.State = player.Folded
			l.mu.Unlock()
			*remaining--
			l.Broadcast(fmt.Sprintf("%s folded.", p.Name))
			return
		case "5":
			l.tryAllIn(p, currentLobbyBet, seated, remaining)
			return
		default:
			p.Conn.Send("Unrecognized action.")
		}
	}
}

func (l *Lobby) tryCheck(p *player.Player, currentLobbyBet *int64) bool {
	l.mu.Lock()
	defer l.mu.Unlock()
	if *currentLobbyBet != p.CurrentBet {
		return false
	}
	p.State = player.Checked
	return true
}

func (l *Lobby) tryCall(p *player.Player, currentLobbyBet *int64) bool {
	l.mu.Lock()
	defer l.mu.Unlock()
	toCall := *currentLobbyBet - p.CurrentBet
	if *currentLobbyBet == 0 || toCall > p.Wallet {
		return false
	}
	p.Wallet -= toCall
	p.CurrentBet += toCall
	l.pot += toCall
	p.State = player.Called
	return true
}

// tryRaise runs the raise sub-dialogue: a minimum-raise hint followed by
// a read of the numeric amount. Returns false (re-prompt the same
// player for an action) on an invalid amount.
func (l *Lobby) tryRaise(ctx context.Context, p *player.Player, currentLobbyBet *int64, seated []*player.Player, remaining *int) bool {
	l.mu.Lock()
	minRaise := *currentLobbyBet - p.CurrentBet
	wallet := p.Wallet
	l.mu.Unlock()

	raw, ok := p.Conn.Ask(ctx, fmt.Sprintf("Minimum raise is %s. Enter raise amount:", formatMoney(minRaise)))
	if !ok {
		l.handleDisconnectFold(p, remaining)
		l.Broadcast(fmt.Sprintf("%s disconnected and folded.", p.Name))
		return true
	}

	amount, err := strconv.ParseInt(strings.TrimSpace(raw), 10, 64)
	if err != nil || amount <= 0 || amount > wallet || amount <= minRaise {
		p.Conn.Send("Invalid raise amount.")
		return false
	}

	l.mu.Lock()
	p.Wallet -= amount
	p.CurrentBet += amount
	l.pot += amount
	*currentLobbyBet = p.CurrentBet
	if p.Wallet == 0 {
		p.State = player.AllIn
	} else {
		p.State = player.Raised
	}
	*remaining = countActingExcept(seated, p)
	l.mu.Unlock()

	l.Broadcast(fmt.Sprintf("%s raises to %s.", p.Name, formatMoney(p.CurrentBet)))
	return true
}

func (l *Lobby) tryAllIn(p *player.Player, currentLobbyBet *int64, seated []*player.Player, remaining *int) {
	l.mu.Lock()
	amount := p.Wallet
	p.Wallet = 0
	p.CurrentBet += amount
	l.pot += amount
	p.State = player.AllIn
	raisesBar := p.CurrentBet > *currentLobbyBet
	if raisesBar {
		*currentLobbyBet = p.CurrentBet
		*remaining = countActingExcept(seated, p)
	} else {
		*remaining--
	}
	l.mu.Unlock()

	l.Broadcast(fmt.Sprintf("%s is all-in for %s.", p.Name, formatMoney(amount)))
}

func (l *Lobby) handleDisconnectFold(p *player.Player, remaining *int) {
	l.mu.Lock()
	if p.State != player.Folded {
		p.State = player.Folded
		*remaining--
	}
	l.mu.Unlock()
}

// countActingExcept counts seated players, other than except, who still
// owe the table a response this round (not folded, not all-in). Passing
// a nil except counts everyone.
func countActingExcept(seated []*player.Player, except *player.Player) int {
	n := 0
	for _, p := range seated {
		if p == except {
			continue
		}
		if p.ActsThisRound() {
			n++
		}
	}
	return n
}
