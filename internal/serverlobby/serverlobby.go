// Package serverlobby implements the process-wide root registry: every
// connected player, every active table, and a projection of each
// table's joinability for O(1) directory listing. It never calls back
// into a Lobby while holding one of its own locks — removing an empty
// lobby happens after that lobby has already reported itself empty.
package serverlobby

import (
	"context"
	"fmt"
	"math/rand"
	"sort"
	"sync"

	"fivedraw/internal/lobby"
	"fivedraw/internal/player"
	"fivedraw/internal/store"
)

// ErrLobbyExists is returned by CreateLobby for a name already in use.
var ErrLobbyExists = errLobbyExists{}

type errLobbyExists struct{}

func (errLobbyExists) Error() string { return "serverlobby: name already in use" }

// ServerLobby is the server-wide registry. Each of its three maps is
// guarded by its own mutex, acquired one at a time and released before
// any lobby-level lock is taken, matching the lock order
// ServerLobby -> Lobby -> Player.
type ServerLobby struct {
	store store.Store

	playersMu sync.Mutex
	players   map[string]*player.Player

	lobbiesMu sync.Mutex
	lobbies   map[string]*lobby.Lobby

	statusMu sync.Mutex
	status   map[string]lobby.Phase
}

// New constructs an empty registry backed by st.
func New(st store.Store) *ServerLobby {
	return &ServerLobby{
		store:   st,
		players: make(map[string]*player.Player),
		lobbies: make(map[string]*lobby.Lobby),
		status:  make(map[string]lobby.Phase),
	}
}

// AddPlayer registers p as connected.
func (s *ServerLobby) AddPlayer(p *player.Player) {
	s.playersMu.Lock()
	s.players[p.Name] = p
	s.playersMu.Unlock()

	s.Broadcast(fmt.Sprintf("%s has joined the lobby!", p.Name))
}

// RemovePlayer removes name from the registry. Idempotent: removing an
// absent name is a no-op.
func (s *ServerLobby) RemovePlayer(name string) {
	s.playersMu.Lock()
	_, had := s.players[name]
	delete(s.players, name)
	s.playersMu.Unlock()

	if had {
		s.Broadcast(fmt.Sprintf("%s has left the lobby.", name))
	}
}

// PlayerCount reports how many sessions are currently authenticated.
func (s *ServerLobby) PlayerCount() int {
	s.playersMu.Lock()
	defer s.playersMu.Unlock()
	return len(s.players)
}

// Broadcast sends msg to every connected player. Fan-out is independent
// per recipient; a full send buffer silently drops the message for that
// recipient only (Player.Conn.Send never blocks).
func (s *ServerLobby) Broadcast(msg string) {
	s.playersMu.Lock()
	targets := make([]*player.Player, 0, len(s.players))
	for _, p := range s.players {
		targets = append(targets, p)
	}
	s.playersMu.Unlock()

	for _, p := range targets {
		p.Conn.Send(msg)
	}
}

// CreateLobby creates and registers a new, empty, joinable table.
func (s *ServerLobby) CreateLobby(name string) (*lobby.Lobby, error) {
	s.lobbiesMu.Lock()
	if _, exists := s.lobbies[name]; exists {
		s.lobbiesMu.Unlock()
		return nil, ErrLobbyExists
	}
	rng := rand.New(rand.NewSource(rand.Int63()))
	lb := lobby.New(name, s.store, rng, s.onPhaseChange, s.onLobbyEmpty)
	s.lobbies[name] = lb
	s.lobbiesMu.Unlock()

	s.setStatus(name, lobby.Joinable)
	return lb, nil
}

// GetLobby returns the lobby registered under name, if any.
func (s *ServerLobby) GetLobby(name string) (*lobby.Lobby, bool) {
	s.lobbiesMu.Lock()
	defer s.lobbiesMu.Unlock()
	lb, ok := s.lobbies[name]
	return lb, ok
}

// LobbyExists consults the status projection rather than locking the
// lobbies map, matching the read path a directory listing takes.
func (s *ServerLobby) LobbyExists(name string) bool {
	s.statusMu.Lock()
	defer s.statusMu.Unlock()
	_, ok := s.status[name]
	return ok
}

// LobbyStatus is one row of the directory listing.
type LobbyStatus struct {
	Name        string
	Joinability string
}

// ListLobbies returns every registered table's (name, joinability),
// sorted by name for stable display.
func (s *ServerLobby) ListLobbies() []LobbyStatus {
	s.statusMu.Lock()
	defer s.statusMu.Unlock()
	out := make([]LobbyStatus, 0, len(s.status))
	for name, phase := range s.status {
		out = append(out, LobbyStatus{Name: name, Joinability: phase.Joinability()})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out
}

func (s *ServerLobby) setStatus(name string, phase lobby.Phase) {
	s.statusMu.Lock()
	defer s.statusMu.Unlock()
	s.status[name] = phase
}

func (s *ServerLobby) onPhaseChange(name string, phase lobby.Phase) {
	s.setStatus(name, phase)
}

func (s *ServerLobby) onLobbyEmpty(name string) {
	s.lobbiesMu.Lock()
	delete(s.lobbies, name)
	s.lobbiesMu.Unlock()

	s.statusMu.Lock()
	delete(s.status, name)
	s.statusMu.Unlock()
}

// StatsFor fetches a player's aggregate stats straight from the store
// (the read-through cache lives inside the store implementation).
func (s *ServerLobby) StatsFor(ctx context.Context, name string) (store.Stats, error) {
	return s.store.PlayerStats(ctx, name)
}
