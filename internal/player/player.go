// Package player defines the per-session Player: identity, wallet, hand,
// per-round betting state and the send/receive handles used by the rest
// of the engine.
package player

import "fivedraw/internal/cards"

// Player is shared between its owning Session and, while seated, its
// Lobby. All mutable fields below are guarded by whichever mutex the
// owner documents (ServerLobby.players or Lobby.players); Player itself
// holds no lock beyond Conn's receive-handle mutex.
type Player struct {
	Name string
	ID   string

	Hand       [5]cards.Card
	HandDealt  bool // false until DEAL_CARDS has dealt this player a hand
	Wallet     int64
	CurrentBet int64
	State      State
	Ready      bool
	Dealer     bool

	GamesPlayed int64
	GamesWon    int64

	// LobbyName is the name of the table this player currently sits at,
	// or "" when in the server lobby. This is a weak back-reference
	// resolved by lookup through the registry, never a pointer back into
	// a Lobby, so Player and Lobby never form an ownership cycle.
	LobbyName string

	Conn *Conn
}

// New constructs a freshly authenticated player in the IN_SERVER state.
func New(name, id string, wallet int64, conn *Conn) *Player {
	return &Player{
		Name:   name,
		ID:     id,
		Wallet: wallet,
		State:  InServer,
		Conn:   conn,
	}
}

// ResetForHand clears per-hand fields at the start of a new round.
func (p *Player) ResetForHand() {
	p.Hand = [5]cards.Card{}
	p.HandDealt = false
	p.CurrentBet = 0
	p.State = InGame
}

// ResetForBettingRound clears the current bet at the start of every
// betting round.
func (p *Player) ResetForBettingRound() {
	p.CurrentBet = 0
}

// ActsThisRound reports whether p takes a turn in the betting/draw
// rotation — skipping FOLDED and ALL_IN players.
func (p *Player) ActsThisRound() bool {
	return p.State != Folded && p.State != AllIn
}

// InHand reports whether p is still eligible to contest the pot at
// showdown (everyone except those who folded this hand).
func (p *Player) InHand() bool {
	return p.State != Folded
}
