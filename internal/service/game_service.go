package service

import (
	"context"
	"errors"
	"fmt"
	"math/rand"
	"strings"
	"time"

	"github.com/sachio222/civil-war-strategy-online-sub000/internal/model"
	"github.com/sachio222/civil-war-strategy-online-sub000/internal/repository"
)

var (
	ErrGameNotFound    = errors.New("game not found")
	ErrGameNotJoinable = errors.New("game not joinable")
	ErrGameFinished    = errors.New("game is already finished")
	ErrNotYourTurn     = errors.New("not your turn")
	ErrStaleTurn       = errors.New("turn number does not match")
	ErrBadSnapshot     = errors.New("snapshot failed to parse")
	ErrInvalidSide     = errors.New("side must be 1 (Union) or 2 (Confederate)")
)

// waitingExpiry is how long a created game waits for an opponent before the
// reaper marks it abandoned.
const waitingExpiry = 48 * time.Hour

const codeAlphabet = "ABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"

// GameService handles game lifecycle: create, join, status.
type GameService struct {
	gameRepo repository.GameRepository
	cache    repository.TurnCache
	rng      *rand.Rand
}

// NewGameService creates a GameService.
func NewGameService(gameRepo repository.GameRepository, cache repository.TurnCache) *GameService {
	return &GameService{
		gameRepo: gameRepo,
		cache:    cache,
		rng:      rand.New(rand.NewSource(time.Now().UnixNano())),
	}
}

// CreateGame opens a new game with the creator on the given side. The
// returned game carries the join code players exchange out of band.
// userID may be empty for anonymous play.
func (s *GameService) CreateGame(ctx context.Context, side int, userID string) (*model.Game, error) {
	if side != 1 && side != 2 {
		return nil, ErrInvalidSide
	}

	// Codes collide rarely; retry a few times rather than lock.
	var game *model.Game
	for attempt := 0; attempt < 5; attempt++ {
		code := s.newCode()
		existing, err := s.gameRepo.FindByCode(ctx, code)
		if err != nil {
			return nil, err
		}
		if existing != nil {
			continue
		}
		game, err = s.gameRepo.Create(ctx, code, side, userID)
		if err != nil {
			return nil, err
		}
		break
	}
	if game == nil {
		return nil, fmt.Errorf("could not allocate a unique game code")
	}

	if err := s.cache.SetWaitingExpiry(ctx, game.Code, waitingExpiry); err != nil {
		// The reaper's Postgres sweep still catches the game later.
		return game, nil
	}
	return game, nil
}

// JoinGame fills the open side of a waiting game and returns the side the
// joiner plays.
func (s *GameService) JoinGame(ctx context.Context, code string, userID string) (int, error) {
	code = normalizeCode(code)
	game, err := s.gameRepo.FindByCode(ctx, code)
	if err != nil {
		return 0, err
	}
	if game == nil {
		return 0, ErrGameNotFound
	}
	if game.Status != "waiting" {
		return 0, ErrGameNotJoinable
	}

	side := 3 - game.CreatorSide
	ok, err := s.gameRepo.Join(ctx, code, side, userID)
	if err != nil {
		return 0, err
	}
	if !ok {
		return 0, ErrGameNotJoinable
	}

	_ = s.cache.ClearWaitingExpiry(ctx, code)
	return side, nil
}

// Status returns a game's public status row.
func (s *GameService) Status(ctx context.Context, code string) (*model.Game, error) {
	game, err := s.gameRepo.FindByCode(ctx, normalizeCode(code))
	if err != nil {
		return nil, err
	}
	if game == nil {
		return nil, ErrGameNotFound
	}
	return game, nil
}

// ListByUser returns the games an account has played.
func (s *GameService) ListByUser(ctx context.Context, userID string) ([]model.Game, error) {
	return s.gameRepo.ListByUser(ctx, userID)
}

func (s *GameService) newCode() string {
	b := make([]byte, 6)
	for i := range b {
		b[i] = codeAlphabet[s.rng.Intn(len(codeAlphabet))]
	}
	return string(b)
}

func normalizeCode(code string) string {
	return strings.ToUpper(strings.TrimSpace(code))
}
