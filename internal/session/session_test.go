package session

import (
	"context"
	"strings"
	"sync"
	"testing"
	"time"

	"fivedraw/internal/player"
	"fivedraw/internal/serverlobby"
	"fivedraw/internal/store"
)

// step is one expected prompt (matched by substring) and the line the
// fake client answers it with.
type step struct {
	match string
	reply string
}

// scriptedConn drains everything the session sends and replies only
// when a message matches the next expected step in order — exactly the
// teacher's style of driving a protocol end-to-end rather than
// unit-testing each menu branch in isolation. Messages that don't match
// the pending step (banners, welcome text) are just logged.
type scriptedConn struct {
	outCh chan string
	inCh  chan string
	steps []step

	mu  sync.Mutex
	log []string
}

func newScriptedConn(steps []step) (*scriptedConn, *player.Conn) {
	sc := &scriptedConn{
		outCh: make(chan string, 64),
		inCh:  make(chan string),
		steps: steps,
	}
	return sc, player.NewConn(sc.outCh, sc.inCh)
}

func (sc *scriptedConn) run(ctx context.Context) {
	i := 0
	for {
		select {
		case msg := <-sc.outCh:
			sc.mu.Lock()
			sc.log = append(sc.log, msg)
			sc.mu.Unlock()
			if i < len(sc.steps) && strings.Contains(msg, sc.steps[i].match) {
				reply := sc.steps[i].reply
				i++
				select {
				case sc.inCh <- reply:
				case <-ctx.Done():
					return
				}
			}
		case <-ctx.Done():
			return
		}
	}
}

func (sc *scriptedConn) messages() []string {
	sc.mu.Lock()
	defer sc.mu.Unlock()
	out := make([]string, len(sc.log))
	copy(out, sc.log)
	return out
}

func TestRegisterThenQuit(t *testing.T) {
	st := store.NewMemoryStore()
	sl := serverlobby.New(st)
	sc, conn := newScriptedConn([]step{
		{authMenu, "2"},
		{"Choose a username:", "newplayer"},
		{serverMenuText, "6"},
	})
	s := New(conn, st, sl)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	go sc.run(ctx)

	s.Run(ctx)

	if sl.PlayerCount() != 0 {
		t.Fatalf("expected session cleanup to remove the player, got %d still registered", sl.PlayerCount())
	}
	if _, err := st.LoginPlayer(context.Background(), "newplayer"); err != nil {
		t.Fatalf("expected newplayer to have been persisted: %v", err)
	}
}

func TestDuplicateRegistrationIsRejectedThenRetriedAsLogin(t *testing.T) {
	st := store.NewMemoryStore()
	sl := serverlobby.New(st)
	if _, err := st.RegisterPlayer(context.Background(), "taken"); err != nil {
		t.Fatalf("seed RegisterPlayer: %v", err)
	}

	sc, conn := newScriptedConn([]step{
		{authMenu, "2"},
		{"Choose a username:", "taken"},
		{authMenu, "1"},
		{"Username:", "taken"},
		{serverMenuText, "6"},
	})
	s := New(conn, st, sl)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	go sc.run(ctx)

	s.Run(ctx)

	found := false
	for _, msg := range sc.messages() {
		if strings.Contains(msg, "already taken") {
			found = true
		}
	}
	if !found {
		t.Fatalf("expected a duplicate-name rejection message, got log: %v", sc.messages())
	}
}

func TestQuitAtAuthMenuNeverRegistersAPlayer(t *testing.T) {
	st := store.NewMemoryStore()
	sl := serverlobby.New(st)
	sc, conn := newScriptedConn([]step{
		{authMenu, "3"},
	})
	s := New(conn, st, sl)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	go sc.run(ctx)

	s.Run(ctx)

	if sl.PlayerCount() != 0 {
		t.Fatalf("expected no player registered after quitting at the auth menu")
	}
}
