//go:build integration

package postgres

import (
	"context"
	"database/sql"
	"encoding/json"
	"testing"
	"time"

	"github.com/sachio222/civil-war-strategy-online-sub000/internal/model"
	"github.com/sachio222/civil-war-strategy-online-sub000/internal/testutil"
)

var testDB *sql.DB

func setup(t *testing.T) {
	t.Helper()
	if testDB == nil {
		testDB = testutil.SetupDB(t)
	}
	testutil.CleanupDB(t, testDB)
}

// createTestUser is a helper that inserts a user and returns it.
func createTestUser(t *testing.T, repo *UserRepo, suffix string) *model.User {
	t.Helper()
	u, err := repo.Upsert(context.Background(), "google", "provider-"+suffix, "User "+suffix, "https://avatar/"+suffix)
	if err != nil {
		t.Fatalf("create test user: %v", err)
	}
	return u
}

// --- UserRepo Tests ---

func TestUserUpsertCreates(t *testing.T) {
	setup(t)
	repo := NewUserRepo(testDB)

	u, err := repo.Upsert(context.Background(), "google", "goog-123", "Alice", "https://avatar/alice")
	if err != nil {
		t.Fatalf("upsert: %v", err)
	}
	if u.ID == "" {
		t.Fatal("expected non-empty ID")
	}
	if u.Provider != "google" || u.ProviderID != "goog-123" {
		t.Fatalf("unexpected provider data: %s / %s", u.Provider, u.ProviderID)
	}
}

func TestUserUpsertUpdates(t *testing.T) {
	setup(t)
	repo := NewUserRepo(testDB)

	u1, err := repo.Upsert(context.Background(), "google", "goog-456", "Bob", "https://old")
	if err != nil {
		t.Fatalf("first upsert: %v", err)
	}
	u2, err := repo.Upsert(context.Background(), "google", "goog-456", "Bobby", "https://new")
	if err != nil {
		t.Fatalf("second upsert: %v", err)
	}
	if u1.ID != u2.ID {
		t.Fatalf("upsert should return same ID: %s vs %s", u1.ID, u2.ID)
	}
	if u2.DisplayName != "Bobby" || u2.AvatarURL != "https://new" {
		t.Fatalf("upsert did not update: %s / %s", u2.DisplayName, u2.AvatarURL)
	}
}

func TestUserFindByIDMissing(t *testing.T) {
	setup(t)
	repo := NewUserRepo(testDB)

	u, err := repo.FindByID(context.Background(), "00000000-0000-0000-0000-000000000000")
	if err != nil {
		t.Fatalf("find: %v", err)
	}
	if u != nil {
		t.Fatal("expected nil for unknown user")
	}
}

// --- GameRepo Tests ---

func TestGameCreateAndFind(t *testing.T) {
	setup(t)
	repo := NewGameRepo(testDB)

	g, err := repo.Create(context.Background(), "ABC123", 1, "")
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if g.Status != "waiting" || g.CreatorSide != 1 || g.CurrentSide != 1 || g.TurnNumber != 0 {
		t.Fatalf("unexpected new game: %+v", g)
	}

	found, err := repo.FindByCode(context.Background(), "ABC123")
	if err != nil {
		t.Fatalf("find: %v", err)
	}
	if found == nil || found.Code != "ABC123" {
		t.Fatalf("find returned %+v", found)
	}

	missing, err := repo.FindByCode(context.Background(), "NOSUCH")
	if err != nil {
		t.Fatalf("find missing: %v", err)
	}
	if missing != nil {
		t.Fatal("expected nil for unknown code")
	}
}

func TestGameCreateWithAccount(t *testing.T) {
	setup(t)
	users := NewUserRepo(testDB)
	repo := NewGameRepo(testDB)
	u := createTestUser(t, users, "creator")

	if _, err := repo.Create(context.Background(), "ACC001", 2, u.ID); err != nil {
		t.Fatalf("create: %v", err)
	}
	g, err := repo.FindByCode(context.Background(), "ACC001")
	if err != nil {
		t.Fatalf("find: %v", err)
	}
	if g.ConfedUserID != u.ID {
		t.Fatalf("confed_user_id = %q, want %q", g.ConfedUserID, u.ID)
	}

	games, err := repo.ListByUser(context.Background(), u.ID)
	if err != nil {
		t.Fatalf("list by user: %v", err)
	}
	if len(games) != 1 || games[0].Code != "ACC001" {
		t.Fatalf("list by user returned %+v", games)
	}
}

func TestGameJoinGuards(t *testing.T) {
	setup(t)
	repo := NewGameRepo(testDB)
	ctx := context.Background()

	if _, err := repo.Create(ctx, "JOIN01", 1, ""); err != nil {
		t.Fatalf("create: %v", err)
	}

	// Joining the creator's own side is rejected.
	ok, err := repo.Join(ctx, "JOIN01", 1, "")
	if err != nil {
		t.Fatalf("join: %v", err)
	}
	if ok {
		t.Fatal("join on the creator's side should fail")
	}

	ok, err = repo.Join(ctx, "JOIN01", 2, "")
	if err != nil {
		t.Fatalf("join: %v", err)
	}
	if !ok {
		t.Fatal("join on the open side should succeed")
	}

	g, _ := repo.FindByCode(ctx, "JOIN01")
	if g.Status != "active" {
		t.Fatalf("status = %q, want active", g.Status)
	}

	// A second join finds no waiting game.
	ok, err = repo.Join(ctx, "JOIN01", 2, "")
	if err != nil {
		t.Fatalf("join: %v", err)
	}
	if ok {
		t.Fatal("double join should fail")
	}
}

func TestGameAdvanceTurnGuards(t *testing.T) {
	setup(t)
	repo := NewGameRepo(testDB)
	ctx := context.Background()

	repo.Create(ctx, "ADV001", 1, "")
	repo.Join(ctx, "ADV001", 2, "")

	// Wrong side.
	ok, err := repo.AdvanceTurn(ctx, "ADV001", 2, 0)
	if err != nil || ok {
		t.Fatalf("wrong-side advance: ok=%v err=%v", ok, err)
	}
	// Wrong turn number.
	ok, err = repo.AdvanceTurn(ctx, "ADV001", 1, 5)
	if err != nil || ok {
		t.Fatalf("stale advance: ok=%v err=%v", ok, err)
	}
	// Correct guard.
	ok, err = repo.AdvanceTurn(ctx, "ADV001", 1, 0)
	if err != nil || !ok {
		t.Fatalf("advance: ok=%v err=%v", ok, err)
	}

	g, _ := repo.FindByCode(ctx, "ADV001")
	if g.CurrentSide != 2 || g.TurnNumber != 1 {
		t.Fatalf("after advance: side=%d turn=%d", g.CurrentSide, g.TurnNumber)
	}

	// The original turn number no longer matches.
	ok, err = repo.AdvanceTurn(ctx, "ADV001", 1, 0)
	if err != nil || ok {
		t.Fatalf("replayed advance: ok=%v err=%v", ok, err)
	}
}

func TestGameSetFinished(t *testing.T) {
	setup(t)
	repo := NewGameRepo(testDB)
	ctx := context.Background()

	repo.Create(ctx, "FIN001", 1, "")
	repo.Join(ctx, "FIN001", 2, "")

	if err := repo.SetFinished(ctx, "FIN001", 1); err != nil {
		t.Fatalf("finish: %v", err)
	}
	g, _ := repo.FindByCode(ctx, "FIN001")
	if g.Status != "finished" || g.Winner != 1 {
		t.Fatalf("after finish: status=%q winner=%d", g.Status, g.Winner)
	}
	if g.FinishedAt == nil {
		t.Fatal("expected finished_at to be set")
	}
}

func TestGameStaleWaitingSweep(t *testing.T) {
	setup(t)
	repo := NewGameRepo(testDB)
	ctx := context.Background()

	repo.Create(ctx, "OLD001", 1, "")
	repo.Create(ctx, "NEW001", 1, "")
	// Age one game past any reasonable cutoff.
	if _, err := testDB.Exec(`UPDATE games SET created_at = now() - interval '3 days' WHERE code = 'OLD001'`); err != nil {
		t.Fatalf("age game: %v", err)
	}

	stale, err := repo.ListStaleWaiting(ctx, time.Now().Add(-48*time.Hour))
	if err != nil {
		t.Fatalf("list stale: %v", err)
	}
	if len(stale) != 1 || stale[0].Code != "OLD001" {
		t.Fatalf("stale = %+v", stale)
	}

	if err := repo.SetAbandoned(ctx, "OLD001"); err != nil {
		t.Fatalf("abandon: %v", err)
	}
	g, _ := repo.FindByCode(ctx, "OLD001")
	if g.Status != "abandoned" {
		t.Fatalf("status = %q, want abandoned", g.Status)
	}

	// Abandoning an active game is a no-op.
	repo.Join(ctx, "NEW001", 2, "")
	repo.SetAbandoned(ctx, "NEW001")
	g, _ = repo.FindByCode(ctx, "NEW001")
	if g.Status != "active" {
		t.Fatalf("active game abandoned: %q", g.Status)
	}
}

// --- TurnRepo Tests ---

func TestTurnArchiveAndList(t *testing.T) {
	setup(t)
	games := NewGameRepo(testDB)
	repo := NewTurnRepo(testDB)
	ctx := context.Background()

	games.Create(ctx, "TRN001", 1, "")

	state := json.RawMessage(`{"version":1,"month":4,"year":1861}`)
	if err := repo.Archive(ctx, "TRN001", 0, 1, state); err != nil {
		t.Fatalf("archive: %v", err)
	}
	if err := repo.Archive(ctx, "TRN001", 1, 2, state); err != nil {
		t.Fatalf("archive: %v", err)
	}
	// Re-archiving the same turn number replaces, not duplicates.
	if err := repo.Archive(ctx, "TRN001", 1, 2, json.RawMessage(`{"version":1,"month":5,"year":1861}`)); err != nil {
		t.Fatalf("re-archive: %v", err)
	}

	turns, err := repo.ListByGame(ctx, "TRN001")
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(turns) != 2 {
		t.Fatalf("got %d turns, want 2", len(turns))
	}
	if turns[0].TurnNumber != 0 || turns[1].TurnNumber != 1 {
		t.Fatalf("turn order: %d, %d", turns[0].TurnNumber, turns[1].TurnNumber)
	}

	latest, err := repo.LatestTurn(ctx, "TRN001")
	if err != nil {
		t.Fatalf("latest: %v", err)
	}
	if latest == nil || latest.TurnNumber != 1 {
		t.Fatalf("latest = %+v", latest)
	}
}
