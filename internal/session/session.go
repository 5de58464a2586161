// Package session implements the per-connection task: authentication,
// the server-wide menu, the lobby-menu loop, and handing the
// connection's receive-handle off to a lobby's GameStateMachine for the
// duration of each hand it plays.
package session

import (
	"context"

	"fivedraw/internal/lobby"
	"fivedraw/internal/player"
	"fivedraw/internal/serverlobby"
	"fivedraw/internal/store"
)

// Session is one task per connection.
type Session struct {
	conn  *player.Conn
	store store.Store
	sl    *serverlobby.ServerLobby

	p            *player.Player
	currentLobby *lobby.Lobby
}

// New wires a Session around an already-established connection.
func New(conn *player.Conn, st store.Store, sl *serverlobby.ServerLobby) *Session {
	return &Session{conn: conn, store: st, sl: sl}
}

// Run executes the session to completion. It returns when the
// connection closes or ctx is cancelled, at which point it tears down
// any lobby membership and registry entry for the player.
func (s *Session) Run(ctx context.Context) {
	defer s.cleanup()

	if !s.authenticate(ctx) {
		return
	}
	s.serverMenu(ctx)
}

// cleanup removes the player from any joined table and from the
// server-wide registry. It is safe to call even if authentication never
// completed.
func (s *Session) cleanup() {
	if s.p == nil {
		return
	}
	if s.currentLobby != nil {
		s.currentLobby.Leave(s.p.Name)
		s.currentLobby = nil
	}
	s.sl.RemovePlayer(s.p.Name)
}
