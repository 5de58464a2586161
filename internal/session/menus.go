package session

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"fivedraw/internal/lobby"
	"fivedraw/internal/serverlobby"
)

const serverMenuText = "1 <name> create / 2 <name> join / 3 list / 4 stats / 5 help / 6 quit:"
const lobbyMenuText = "r ready / p players / s stats / q leave:"

const helpText = `Commands:
  Server menu: 1 <name> to create a table, 2 <name> to join one,
  3 to list tables, 4 for your stats, 5 for this help, 6 to quit.
  Lobby menu: r to ready up, p to list players at the table,
  s for your stats, q to leave the table.
  Betting: 1 Check, 2 Raise, 3 Call, 4 Fold, 5 All-in.
  Draw: 1 Stand Pat, 2 Exchange (then a comma-separated list of
  1-based card positions).`

func (s *Session) serverMenu(ctx context.Context) {
	for {
		raw, ok := s.conn.Ask(ctx, serverMenuText)
		if !ok {
			return
		}
		cmd, arg := splitCommand(raw)
		switch cmd {
		case "1":
			s.createLobby(ctx, arg)
		case "2":
			s.joinLobby(ctx, arg)
		case "3":
			s.listLobbies()
		case "4":
			s.showStats(ctx)
		case "5":
			s.conn.Send(helpText)
		case "6":
			return
		default:
			s.conn.Send("Unrecognized choice.")
		}
	}
}

func splitCommand(raw string) (cmd, arg string) {
	fields := strings.SplitN(strings.TrimSpace(raw), " ", 2)
	cmd = fields[0]
	if len(fields) > 1 {
		arg = strings.TrimSpace(fields[1])
	}
	return cmd, arg
}

func (s *Session) createLobby(ctx context.Context, name string) {
	if name == "" {
		s.conn.Send("FAILED: a table name is required.")
		return
	}
	lb, err := s.sl.CreateLobby(name)
	if errors.Is(err, serverlobby.ErrLobbyExists) {
		s.conn.Send("FAILED: that table name is already in use.")
		return
	}
	if err := lb.Join(s.p); err != nil {
		s.conn.Send("FAILED: could not join the table you just created.")
		return
	}
	s.enterLobby(ctx, lb)
}

func (s *Session) joinLobby(ctx context.Context, name string) {
	lb, ok := s.sl.GetLobby(name)
	if !ok {
		s.conn.Send("FAILED: no such table.")
		return
	}
	switch err := lb.Join(s.p); {
	case errors.Is(err, lobby.ErrLobbyFull):
		s.conn.Send("SERVER_FULL: that table is full.")
		return
	case errors.Is(err, lobby.ErrInProgress):
		s.conn.Send("FAILED: that table already has a hand in progress.")
		return
	case err != nil:
		s.conn.Send("FAILED: could not join.")
		return
	}
	s.enterLobby(ctx, lb)
}

func (s *Session) listLobbies() {
	rows := s.sl.ListLobbies()
	if len(rows) == 0 {
		s.conn.Send("No tables yet.")
		return
	}
	var b strings.Builder
	b.WriteString("Tables:\n")
	for _, row := range rows {
		fmt.Fprintf(&b, "  %s [%s]\n", row.Name, row.Joinability)
	}
	s.conn.Send(strings.TrimRight(b.String(), "\n"))
}

func (s *Session) showStats(ctx context.Context) {
	st, err := s.sl.StatsFor(ctx, s.p.Name)
	if err != nil {
		s.conn.Send("Failed to retrieve stats.")
		return
	}
	s.conn.Send(fmt.Sprintf("Games played: %d, games won: %d, wallet: %s",
		st.GamesPlayed, st.GamesWon, formatMoney(st.Wallet)))
}

// enterLobby runs the lobby-menu loop for lb until the player leaves or
// disconnects.
func (s *Session) enterLobby(ctx context.Context, lb *lobby.Lobby) {
	s.currentLobby = lb
	defer func() {
		lb.Leave(s.p.Name)
		s.currentLobby = nil
	}()

	for {
		raw, ok := s.conn.Ask(ctx, lobbyMenuText)
		if !ok {
			return
		}
		switch strings.TrimSpace(raw) {
		case "r":
			lb.ReadyAndAwait(ctx, s.p.Name)
		case "p":
			names := lb.Names()
			s.conn.Send(fmt.Sprintf("Players: %s", strings.Join(names, ", ")))
		case "s":
			s.showStats(ctx)
		case "q":
			return
		default:
			s.conn.Send("Unrecognized choice.")
		}
	}
}
