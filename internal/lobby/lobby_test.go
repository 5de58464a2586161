package lobby

import (
	"context"
	"math/rand"
	"strings"
	"sync"
	"testing"
	"time"

	"fivedraw/internal/player"
	"fivedraw/internal/store"
)

// fakeClient drives one virtual connection: it consumes everything the
// engine sends to outCh and, for prompts that expect a reply, pushes one
// line into inCh — playing the part the real WebSocket client plays in
// production. respond returns ("", false) for messages that don't need
// an answer (broadcasts, informational text).
type fakeClient struct {
	name    string
	outCh   chan string
	inCh    chan string
	respond func(prompt string) (string, bool)
}

func newFakeClient(name string, respond func(string) (string, bool)) (*fakeClient, *player.Conn) {
	fc := &fakeClient{
		name:    name,
		outCh:   make(chan string, 64),
		inCh:    make(chan string),
		respond: respond,
	}
	conn := player.NewConn(fc.outCh, fc.inCh)
	return fc, conn
}

// run drains outCh until ctx is done, answering prompts as scripted.
func (fc *fakeClient) run(ctx context.Context) {
	for {
		select {
		case msg := <-fc.outCh:
			if reply, ok := fc.respond(msg); ok {
				select {
				case fc.inCh <- reply:
				case <-ctx.Done():
					return
				}
			}
		case <-ctx.Done():
			return
		}
	}
}

func newTestPlayer(t *testing.T, st store.Store, name string, wallet int64, respond func(string) (string, bool)) (*player.Player, *fakeClient) {
	t.Helper()
	ctx := context.Background()
	if _, err := st.RegisterPlayer(ctx, name); err != nil {
		t.Fatalf("RegisterPlayer(%s): %v", name, err)
	}
	fc, conn := newFakeClient(name, respond)
	p := player.New(name, name+"-id", wallet, conn)
	return p, fc
}

// alwaysCheckThenStandPat answers every betting prompt with "check" and
// every draw prompt with "stand pat".
func alwaysCheckThenStandPat(prompt string) (string, bool) {
	switch {
	case strings.Contains(prompt, "1 Check / 2 Raise"):
		return "1", true
	case strings.Contains(prompt, "1 Stand Pat / 2 Exchange"):
		return "1", true
	default:
		return "", false
	}
}

func TestRunHandTwoPlayersCheckThroughConservesChips(t *testing.T) {
	st := store.NewMemoryStore()
	lb := New("table-1", st, rand.New(rand.NewSource(1)), nil, nil)

	p1, fc1 := newTestPlayer(t, st, "alice", 1000, alwaysCheckThenStandPat)
	p2, fc2 := newTestPlayer(t, st, "bob", 1000, alwaysCheckThenStandPat)

	if err := lb.Join(p1); err != nil {
		t.Fatalf("Join alice: %v", err)
	}
	if err := lb.Join(p2); err != nil {
		t.Fatalf("Join bob: %v", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	go fc1.run(ctx)
	go fc2.run(ctx)

	before := p1.Wallet + p2.Wallet
	lb.runHand(ctx)
	after := p1.Wallet + p2.Wallet

	if before != after {
		t.Fatalf("chip conservation violated: before=%d after=%d", before, after)
	}
	if p1.Wallet < 0 || p2.Wallet < 0 {
		t.Fatalf("negative wallet: alice=%d bob=%d", p1.Wallet, p2.Wallet)
	}
	if lb.pot != 0 {
		t.Fatalf("pot not fully distributed: %d left", lb.pot)
	}
	if p1.GamesPlayed != 1 || p2.GamesPlayed != 1 {
		t.Fatalf("expected gamesPlayed=1 for both, got alice=%d bob=%d", p1.GamesPlayed, p2.GamesPlayed)
	}
}

// TestRunHandRaiseFoldThenCallSplitsPotAtShowdown drives three players
// through an ante, one raise, one fold, one call, a check-check second
// round, and a showdown over the full pot. The raiser, folder and caller
// roles are assigned to whichever seats act first, second and third in
// the first round so the test does not depend on the lobby's internal
// seating/rotation order.
func TestRunHandRaiseFoldThenCallSplitsPotAtShowdown(t *testing.T) {
	st := store.NewMemoryStore()
	lb := New("table-2", st, rand.New(rand.NewSource(2)), nil, nil)

	var mu sync.Mutex
	firstActorDecided := false
	folderName := ""

	makeResponder := func(name string) func(string) (string, bool) {
		bettingRound := 0
		return func(prompt string) (string, bool) {
			switch {
			case strings.Contains(prompt, "1 Check / 2 Raise"):
				bettingRound++
				if bettingRound == 1 {
					if strings.Contains(prompt, "to call $0") {
						mu.Lock()
						firstActorDecided = true
						mu.Unlock()
						return "2", true // raise
					}
					mu.Lock()
					decided := firstActorDecided
					already := folderName != ""
					if decided && !already {
						folderName = name
					}
					mu.Unlock()
					if decided && folderName == name {
						return "4", true // fold
					}
					return "3", true // call
				}
				return "1", true // second round: check
			case strings.Contains(prompt, "Enter raise amount"):
				return "50", true
			case strings.Contains(prompt, "1 Stand Pat / 2 Exchange"):
				return "1", true
			default:
				return "", false
			}
		}
	}

	p1, fc1 := newTestPlayer(t, st, "p1", 1000, makeResponder("p1"))
	p2, fc2 := newTestPlayer(t, st, "p2", 1000, makeResponder("p2"))
	p3, fc3 := newTestPlayer(t, st, "p3", 1000, makeResponder("p3"))

	for _, p := range []*player.Player{p1, p2, p3} {
		if err := lb.Join(p); err != nil {
			t.Fatalf("Join %s: %v", p.Name, err)
		}
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	go fc1.run(ctx)
	go fc2.run(ctx)
	go fc3.run(ctx)

	total := p1.Wallet + p2.Wallet + p3.Wallet
	lb.runHand(ctx)

	if got := p1.Wallet + p2.Wallet + p3.Wallet; got != total {
		t.Fatalf("chip conservation violated: before=%d after=%d", total, got)
	}
	for _, p := range []*player.Player{p1, p2, p3} {
		if p.Wallet < 0 {
			t.Fatalf("%s has negative wallet %d", p.Name, p.Wallet)
		}
	}

	var folded *player.Player
	var contested []*player.Player
	for _, p := range []*player.Player{p1, p2, p3} {
		if p.State == player.Folded {
			folded = p
		} else {
			contested = append(contested, p)
		}
	}
	if folded == nil {
		t.Fatalf("expected exactly one folded player")
	}
	if folded.Wallet != 990 {
		t.Fatalf("folder's wallet = %d, want 990 (1000 - 10 ante)", folded.Wallet)
	}
	if len(contested) != 2 {
		t.Fatalf("expected two contesting players, got %d", len(contested))
	}
	// Each contester paid 10 ante + 50, leaving 940 before showdown. The
	// 130 pot then goes wholly to the better hand (940 vs 1070) unless the
	// random deal happens to tie, in which case it splits evenly (1005
	// each).
	sumContested := contested[0].Wallet + contested[1].Wallet
	if sumContested != 2010 {
		t.Fatalf("contested wallets sum to %d, want 2010 (2*940 + 130 pot)", sumContested)
	}
	for _, p := range contested {
		switch p.Wallet {
		case 1070, 940, 1005:
		default:
			t.Fatalf("%s has unexpected wallet %d after showdown", p.Name, p.Wallet)
		}
	}
}

// TestRunHandFoldsToOneShortCircuitsToShowdown confirms that if every
// player folds in the betting round except one, the remaining player
// wins the whole pot without a draw round ever running.
func TestRunHandFoldsToOneShortCircuitsToShowdown(t *testing.T) {
	st := store.NewMemoryStore()
	lb := New("table-3", st, rand.New(rand.NewSource(3)), nil, nil)

	foldEveryoneElse := func(name string) func(string) (string, bool) {
		return func(prompt string) (string, bool) {
			switch {
			case strings.Contains(prompt, "1 Check / 2 Raise"):
				if name == "survivor" {
					return "1", true
				}
				return "4", true
			case strings.Contains(prompt, "1 Stand Pat / 2 Exchange"):
				t.Errorf("draw round should not run when only one player remains")
				return "1", true
			default:
				return "", false
			}
		}
	}

	p1, fc1 := newTestPlayer(t, st, "survivor", 1000, foldEveryoneElse("survivor"))
	p2, fc2 := newTestPlayer(t, st, "folder1", 1000, foldEveryoneElse("folder1"))
	p3, fc3 := newTestPlayer(t, st, "folder2", 1000, foldEveryoneElse("folder2"))

	for _, p := range []*player.Player{p1, p2, p3} {
		if err := lb.Join(p); err != nil {
			t.Fatalf("Join %s: %v", p.Name, err)
		}
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	go fc1.run(ctx)
	go fc2.run(ctx)
	go fc3.run(ctx)

	lb.runHand(ctx)

	if p1.Wallet != 1020 {
		t.Fatalf("survivor wallet = %d, want 1020 (1000 - 10 ante + 30 pot)", p1.Wallet)
	}
	if p2.Wallet != 990 || p3.Wallet != 990 {
		t.Fatalf("folders' wallets = %d, %d, want 990, 990", p2.Wallet, p3.Wallet)
	}
	if p1.GamesWon != 1 {
		t.Fatalf("survivor gamesWon = %d, want 1", p1.GamesWon)
	}
}

// TestRunHandLowWalletFoldsAtAnte confirms a player who cannot cover the
// ante is folded for the hand but still counted in gamesPlayed, with
// their wallet untouched.
func TestRunHandLowWalletFoldsAtAnte(t *testing.T) {
	st := store.NewMemoryStore()
	lb := New("table-4", st, rand.New(rand.NewSource(4)), nil, nil)

	p1, fc1 := newTestPlayer(t, st, "rich", 1000, alwaysCheckThenStandPat)
	p2, fc2 := newTestPlayer(t, st, "poor", 5, alwaysCheckThenStandPat)

	for _, p := range []*player.Player{p1, p2} {
		if err := lb.Join(p); err != nil {
			t.Fatalf("Join %s: %v", p.Name, err)
		}
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	go fc1.run(ctx)
	go fc2.run(ctx)

	lb.runHand(ctx)

	if p2.Wallet != 5 {
		t.Fatalf("poor player's wallet = %d, want unchanged at 5", p2.Wallet)
	}
	if p2.State != player.Folded {
		t.Fatalf("poor player's state = %v, want Folded", p2.State)
	}
	if p2.GamesPlayed != 1 {
		t.Fatalf("poor player's gamesPlayed = %d, want 1", p2.GamesPlayed)
	}
	// poor never contributes an ante, so the pot only ever held rich's own
	// 10-chip ante; rich's uncontested showdown win just returns it.
	if p1.Wallet != 1000 {
		t.Fatalf("rich player's wallet = %d, want 1000 (ante paid and returned uncontested)", p1.Wallet)
	}
}

// TestReadyIsIdempotent confirms a second ready-up from the same player
// (the Session re-dispatching "r") leaves the ready tally unchanged —
// Ready is a flag, not a counter, so marking it twice cannot double-count
// toward AllReady's threshold.
func TestReadyIsIdempotent(t *testing.T) {
	st := store.NewMemoryStore()
	lb := New("table-5", st, rand.New(rand.NewSource(5)), nil, nil)

	p1, _ := newTestPlayer(t, st, "solo", 1000, func(string) (string, bool) { return "", false })
	p2, _ := newTestPlayer(t, st, "other", 1000, func(string) (string, bool) { return "", false })
	if err := lb.Join(p1); err != nil {
		t.Fatalf("Join solo: %v", err)
	}
	if err := lb.Join(p2); err != nil {
		t.Fatalf("Join other: %v", err)
	}

	lb.mu.Lock()
	lb.players["solo"].Ready = true
	lb.players["solo"].Ready = true // simulated double "r"
	mid := lb.allReadyLocked()
	lb.mu.Unlock()
	if mid {
		t.Fatalf("AllReady must still be false while \"other\" has not readied")
	}

	if lb.AllReady() {
		t.Fatalf("AllReady with one of two players ready must be false")
	}
}

// TestLeaveIsIdempotent confirms removing an already-removed player from
// a lobby is a no-op, matching ServerLobby.RemovePlayer's contract.
func TestLeaveIsIdempotent(t *testing.T) {
	st := store.NewMemoryStore()
	lb := New("table-6", st, rand.New(rand.NewSource(6)), nil, nil)
	p1, _ := newTestPlayer(t, st, "once", 1000, func(string) (string, bool) { return "", false })
	if err := lb.Join(p1); err != nil {
		t.Fatalf("Join: %v", err)
	}
	lb.Leave("once")
	lb.Leave("once") // must not panic or double-fire onEmpty
	if lb.PlayerCount() != 0 {
		t.Fatalf("expected empty lobby after Leave, got %d players", lb.PlayerCount())
	}
}
