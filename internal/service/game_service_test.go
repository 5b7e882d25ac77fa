package service

import (
	"context"
	"testing"
	"time"
)

func newTestGameService() (*GameService, *mockGameRepo, *mockCache) {
	repo := newMockGameRepo()
	cache := newMockCache()
	return NewGameService(repo, cache), repo, cache
}

func TestCreateGame(t *testing.T) {
	svc, _, cache := newTestGameService()

	game, err := svc.CreateGame(context.Background(), 1, "")
	if err != nil {
		t.Fatalf("CreateGame: %v", err)
	}
	if len(game.Code) != 6 {
		t.Errorf("code = %q, want 6 characters", game.Code)
	}
	if game.Status != "waiting" {
		t.Errorf("status = %q, want waiting", game.Status)
	}
	if game.CreatorSide != 1 {
		t.Errorf("creator side = %d, want 1", game.CreatorSide)
	}
	if game.TurnNumber != 0 {
		t.Errorf("turn number = %d, want 0", game.TurnNumber)
	}
	if !cache.waiting[game.Code] {
		t.Error("expected waiting expiry to be armed")
	}
}

func TestCreateGameInvalidSide(t *testing.T) {
	svc, _, _ := newTestGameService()
	for _, side := range []int{0, 3, -1} {
		if _, err := svc.CreateGame(context.Background(), side, ""); err != ErrInvalidSide {
			t.Errorf("side %d: got %v, want ErrInvalidSide", side, err)
		}
	}
}

func TestCreateGameUniqueCodes(t *testing.T) {
	svc, _, _ := newTestGameService()
	seen := make(map[string]bool)
	for i := 0; i < 50; i++ {
		game, err := svc.CreateGame(context.Background(), 1, "")
		if err != nil {
			t.Fatalf("CreateGame %d: %v", i, err)
		}
		if seen[game.Code] {
			t.Fatalf("duplicate code %q", game.Code)
		}
		seen[game.Code] = true
	}
}

func TestJoinGameAssignsOppositeSide(t *testing.T) {
	svc, _, cache := newTestGameService()

	game, err := svc.CreateGame(context.Background(), 2, "")
	if err != nil {
		t.Fatalf("CreateGame: %v", err)
	}

	side, err := svc.JoinGame(context.Background(), game.Code, "")
	if err != nil {
		t.Fatalf("JoinGame: %v", err)
	}
	if side != 1 {
		t.Errorf("joiner side = %d, want 1 (creator took 2)", side)
	}

	status, err := svc.Status(context.Background(), game.Code)
	if err != nil {
		t.Fatalf("Status: %v", err)
	}
	if status.Status != "active" {
		t.Errorf("status = %q, want active", status.Status)
	}
	if cache.waiting[game.Code] {
		t.Error("expected waiting expiry to be disarmed after join")
	}
}

func TestJoinGameNormalizesCode(t *testing.T) {
	svc, _, _ := newTestGameService()

	game, err := svc.CreateGame(context.Background(), 1, "")
	if err != nil {
		t.Fatalf("CreateGame: %v", err)
	}

	lower := "  " + game.Code + " "
	if _, err := svc.JoinGame(context.Background(), lower, ""); err != nil {
		t.Errorf("JoinGame with padded code: %v", err)
	}
}

func TestJoinGameTwice(t *testing.T) {
	svc, _, _ := newTestGameService()

	game, err := svc.CreateGame(context.Background(), 1, "")
	if err != nil {
		t.Fatalf("CreateGame: %v", err)
	}
	if _, err := svc.JoinGame(context.Background(), game.Code, ""); err != nil {
		t.Fatalf("first join: %v", err)
	}
	if _, err := svc.JoinGame(context.Background(), game.Code, ""); err != ErrGameNotJoinable {
		t.Errorf("second join: got %v, want ErrGameNotJoinable", err)
	}
}

func TestJoinUnknownGame(t *testing.T) {
	svc, _, _ := newTestGameService()
	if _, err := svc.JoinGame(context.Background(), "NOSUCH", ""); err != ErrGameNotFound {
		t.Errorf("got %v, want ErrGameNotFound", err)
	}
}

func TestStatusUnknownGame(t *testing.T) {
	svc, _, _ := newTestGameService()
	if _, err := svc.Status(context.Background(), "NOSUCH"); err != ErrGameNotFound {
		t.Errorf("got %v, want ErrGameNotFound", err)
	}
}

func TestListByUser(t *testing.T) {
	svc, _, _ := newTestGameService()

	if _, err := svc.CreateGame(context.Background(), 1, "user-a"); err != nil {
		t.Fatalf("CreateGame: %v", err)
	}
	if _, err := svc.CreateGame(context.Background(), 2, "user-a"); err != nil {
		t.Fatalf("CreateGame: %v", err)
	}
	if _, err := svc.CreateGame(context.Background(), 1, "user-b"); err != nil {
		t.Fatalf("CreateGame: %v", err)
	}

	games, err := svc.ListByUser(context.Background(), "user-a")
	if err != nil {
		t.Fatalf("ListByUser: %v", err)
	}
	if len(games) != 2 {
		t.Errorf("got %d games, want 2", len(games))
	}
}

func TestReaperAbandonsStaleWaitingGames(t *testing.T) {
	repo := newMockGameRepo()
	cache := newMockCache()
	bc := &mockBroadcaster{}
	svc := NewGameService(repo, cache)

	game, err := svc.CreateGame(context.Background(), 1, "")
	if err != nil {
		t.Fatalf("CreateGame: %v", err)
	}
	// Age the game past the expiry window.
	repo.mu.Lock()
	repo.games[game.Code].CreatedAt = time.Now().Add(-waitingExpiry - time.Hour)
	repo.mu.Unlock()

	rp := NewReaper(nil, repo, cache, bc)
	rp.sweepOnce(context.Background())

	status, err := svc.Status(context.Background(), game.Code)
	if err != nil {
		t.Fatalf("Status: %v", err)
	}
	if status.Status != "abandoned" {
		t.Errorf("status = %q, want abandoned", status.Status)
	}
	types := bc.eventTypes()
	if len(types) != 1 || types[0] != EventGameAbandoned {
		t.Errorf("broadcast events = %v, want [game_abandoned]", types)
	}
}

func TestReaperIgnoresActiveGames(t *testing.T) {
	repo := newMockGameRepo()
	cache := newMockCache()
	svc := NewGameService(repo, cache)

	game, err := svc.CreateGame(context.Background(), 1, "")
	if err != nil {
		t.Fatalf("CreateGame: %v", err)
	}
	if _, err := svc.JoinGame(context.Background(), game.Code, ""); err != nil {
		t.Fatalf("JoinGame: %v", err)
	}
	repo.mu.Lock()
	repo.games[game.Code].CreatedAt = time.Now().Add(-waitingExpiry - time.Hour)
	repo.mu.Unlock()

	rp := NewReaper(nil, repo, cache, nil)
	rp.sweepOnce(context.Background())

	status, _ := svc.Status(context.Background(), game.Code)
	if status.Status != "active" {
		t.Errorf("status = %q, want active", status.Status)
	}
}

func TestReaperHandleExpiryKeyFilter(t *testing.T) {
	repo := newMockGameRepo()
	cache := newMockCache()
	svc := NewGameService(repo, cache)

	game, err := svc.CreateGame(context.Background(), 1, "")
	if err != nil {
		t.Fatalf("CreateGame: %v", err)
	}

	rp := NewReaper(nil, repo, cache, nil)

	// Non-waiting keys must be ignored.
	rp.handleExpiry(context.Background(), "game:"+game.Code+":snapshot")
	rp.handleExpiry(context.Background(), "session:"+game.Code)
	status, _ := svc.Status(context.Background(), game.Code)
	if status.Status != "waiting" {
		t.Fatalf("status = %q after unrelated expiries, want waiting", status.Status)
	}

	rp.handleExpiry(context.Background(), "game:"+game.Code+":waiting")
	status, _ = svc.Status(context.Background(), game.Code)
	if status.Status != "abandoned" {
		t.Errorf("status = %q, want abandoned", status.Status)
	}
}
