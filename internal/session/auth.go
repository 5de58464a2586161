package session

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"fivedraw/internal/player"
	"fivedraw/internal/store"
)

const authMenu = "1 Login / 2 Register / 3 Quit:"

// authenticate runs the login/register/quit menu until it either
// constructs s.p and joins the server registry (returning true), or the
// connection closes or the player quits (returning false).
func (s *Session) authenticate(ctx context.Context) bool {
	for {
		choice, ok := s.conn.Ask(ctx, authMenu)
		if !ok {
			return false
		}
		switch strings.TrimSpace(choice) {
		case "1":
			if s.login(ctx) {
				return true
			}
		case "2":
			if s.register(ctx) {
				return true
			}
		case "3":
			return false
		default:
			s.conn.Send("Unrecognized choice.")
		}
	}
}

func (s *Session) login(ctx context.Context) bool {
	name, ok := s.conn.Ask(ctx, "Username:")
	if !ok {
		return false
	}
	name = strings.TrimSpace(name)

	id, err := s.store.LoginPlayer(ctx, name)
	switch {
	case errors.Is(err, store.ErrNotFound):
		s.conn.Send("No such account. Try again or register.")
		return false
	case err != nil:
		s.conn.Send("Login failed: store unavailable.")
		return false
	}

	wallet, err := s.store.GetWallet(ctx, name)
	if err != nil {
		s.conn.Send("Login failed: could not load wallet.")
		return false
	}

	s.finishLogin(name, id, wallet)
	return true
}

func (s *Session) register(ctx context.Context) bool {
	name, ok := s.conn.Ask(ctx, "Choose a username:")
	if !ok {
		return false
	}
	name = strings.TrimSpace(name)

	id, err := s.store.RegisterPlayer(ctx, name)
	switch {
	case errors.Is(err, store.ErrNameTaken):
		s.conn.Send("That name is already taken.")
		return false
	case err != nil:
		s.conn.Send("Registration failed: store unavailable.")
		return false
	}

	s.finishLogin(name, id, store.DefaultStartingWallet)
	return true
}

func (s *Session) finishLogin(name, id string, wallet int64) {
	s.p = player.New(name, id, wallet, s.conn)
	s.sl.AddPlayer(s.p)
	s.conn.Send(fmt.Sprintf("Welcome, %s. Wallet: %s", name, formatMoney(wallet)))
}
