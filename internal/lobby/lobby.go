// Package lobby implements a single table: seating, the betting/draw
// state machine and showdown settlement. A Lobby is guarded by its own
// mutex; the mutex is released for the duration of any blocking read on
// a player's connection so one slow player never stalls bookkeeping for
// the rest of the table (directory projection, a new player's Join).
package lobby

import (
	"fmt"
	"math/rand"
	"sync"

	"fivedraw/internal/cards"
	"fivedraw/internal/player"
	"fivedraw/internal/store"
)

// DefaultMaxPlayers is the seat cap for a newly created table.
const DefaultMaxPlayers = 5

// AnteAmount is the fixed ante every seated player owes at the start of
// a hand.
const AnteAmount = 10

// Lobby is one table. Exported methods are safe for concurrent use.
type Lobby struct {
	Name       string
	MaxPlayers int

	mu                 sync.Mutex
	players            map[string]*player.Player
	seats              []string // seating order, by player name
	pot                int64
	deck               *cards.Deck
	rng                *rand.Rand
	phase              Phase
	firstBettingPlayer int
	running            bool
	changed            chan struct{} // closed and replaced on any state change a waiter might care about

	store store.Store

	onPhaseChange func(name string, phase Phase)
	onEmpty       func(name string)
}

// New constructs an empty, joinable table. onPhaseChange and onEmpty may
// be nil; when set they let the owning registry keep its directory
// projection in sync and reclaim an abandoned table.
func New(name string, st store.Store, rng *rand.Rand, onPhaseChange func(string, Phase), onEmpty func(string)) *Lobby {
	return &Lobby{
		Name:          name,
		MaxPlayers:    DefaultMaxPlayers,
		players:       make(map[string]*player.Player),
		deck:          cards.New(),
		rng:           rng,
		phase:         Joinable,
		changed:       make(chan struct{}),
		store:         st,
		onPhaseChange: onPhaseChange,
		onEmpty:       onEmpty,
	}
}

func (l *Lobby) setPhaseLocked(p Phase) {
	l.phase = p
	if l.onPhaseChange != nil {
		l.onPhaseChange(l.Name, p)
	}
}

// notifyLocked wakes every goroutine parked in ReadyAndAwait so it can
// re-check whether it should start a hand, keep waiting, or give up.
// Must be called with l.mu held.
func (l *Lobby) notifyLocked() {
	close(l.changed)
	l.changed = make(chan struct{})
}

// Phase reports the lobby's current phase.
func (l *Lobby) Phase() Phase {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.phase
}

// PlayerCount reports how many players are currently seated.
func (l *Lobby) PlayerCount() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.players)
}

// Names returns the seated players' names in seating order.
func (l *Lobby) Names() []string {
	l.mu.Lock()
	defer l.mu.Unlock()
	out := make([]string, len(l.seats))
	copy(out, l.seats)
	return out
}

// Join seats p at the table. It fails if the table is full or a hand is
// already running; both are "not joinable right now" from a client's
// perspective, distinguished so the session can report the right reason.
func (l *Lobby) Join(p *player.Player) error {
	l.mu.Lock()

	switch l.phase {
	case Full:
		l.mu.Unlock()
		return ErrLobbyFull
	case Joinable:
	default:
		l.mu.Unlock()
		return ErrInProgress
	}
	if _, exists := l.players[p.Name]; exists {
		l.mu.Unlock()
		return nil
	}

	l.players[p.Name] = p
	l.seats = append(l.seats, p.Name)
	p.LobbyName = l.Name
	p.State = player.InLobby
	p.Ready = false

	if len(l.players) >= l.MaxPlayers {
		l.setPhaseLocked(Full)
	}
	l.notifyLocked()
	l.mu.Unlock()

	l.Broadcast(fmt.Sprintf("%s has joined the table.", p.Name))
	return nil
}

// Leave removes p from the table. If this empties the table, onEmpty is
// invoked after the lock is released. A player leaving mid-hand is not
// spliced out of the in-flight hand's seating snapshot — runHand already
// holds its own copy — this only affects future hands and the directory
// projection.
func (l *Lobby) Leave(name string) {
	l.mu.Lock()
	_, had := l.players[name]
	if had {
		delete(l.players, name)
		for i, n := range l.seats {
			if n == name {
				l.seats = append(l.seats[:i], l.seats[i+1:]...)
				break
			}
		}
		if l.phase == Full && len(l.players) < l.MaxPlayers {
			l.setPhaseLocked(Joinable)
		}
		l.notifyLocked()
	}
	empty := len(l.players) == 0
	l.mu.Unlock()

	if had {
		l.Broadcast(fmt.Sprintf("%s has left the table.", name))
	}
	if had && empty && l.onEmpty != nil {
		l.onEmpty(l.Name)
	}
}

// AllReady reports whether every seated player is ready and there are at
// least two of them — the precondition to start a hand.
func (l *Lobby) AllReady() bool {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.allReadyLocked()
}

func (l *Lobby) allReadyLocked() bool {
	if len(l.players) < 2 {
		return false
	}
	for _, p := range l.players {
		if !p.Ready {
			return false
		}
	}
	return true
}

// Broadcast sends msg to every currently seated player.
func (l *Lobby) Broadcast(msg string) {
	l.mu.Lock()
	targets := make([]*player.Player, 0, len(l.players))
	for _, p := range l.players {
		targets = append(targets, p)
	}
	l.mu.Unlock()

	for _, p := range targets {
		p.Conn.Send(msg)
	}
}

// seatedSnapshotLocked copies the current seating order into a stable
// slice for the duration of one hand. Must be called with l.mu held.
func (l *Lobby) seatedSnapshotLocked() []*player.Player {
	out := make([]*player.Player, 0, len(l.seats))
	for _, name := range l.seats {
		if p, ok := l.players[name]; ok {
			out = append(out, p)
		}
	}
	return out
}

