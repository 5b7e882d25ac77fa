package repository

import (
	"context"
	"encoding/json"
	"time"

	"github.com/sachio222/civil-war-strategy-online-sub000/internal/model"
)

// UserRepository defines account data operations.
type UserRepository interface {
	FindByID(ctx context.Context, id string) (*model.User, error)
	FindByProviderID(ctx context.Context, provider, providerID string) (*model.User, error)
	Upsert(ctx context.Context, provider, providerID, displayName, avatarURL string) (*model.User, error)
	UpdateDisplayName(ctx context.Context, id, displayName string) error
}

// GameRepository defines durable game records keyed by game code.
type GameRepository interface {
	Create(ctx context.Context, code string, creatorSide int, creatorUserID string) (*model.Game, error)
	FindByCode(ctx context.Context, code string) (*model.Game, error)
	// Join fills the open side and activates the game. Returns false when
	// the game is missing or not joinable.
	Join(ctx context.Context, code string, side int, userID string) (bool, error)
	// AdvanceTurn hands the game to the other side, guarded by the expected
	// current side and turn number. Returns false when the guard fails.
	AdvanceTurn(ctx context.Context, code string, side, turnNumber int) (bool, error)
	SetFinished(ctx context.Context, code string, winner int) error
	SetAbandoned(ctx context.Context, code string) error
	ListByUser(ctx context.Context, userID string) ([]model.Game, error)
	// ListStaleWaiting returns waiting games created before the cutoff,
	// the reaper's fallback when Redis expiry events are unavailable.
	ListStaleWaiting(ctx context.Context, cutoff time.Time) ([]model.Game, error)
}

// TurnRepository archives submitted snapshots for replay.
type TurnRepository interface {
	Archive(ctx context.Context, gameCode string, turnNumber, side int, state json.RawMessage) error
	ListByGame(ctx context.Context, gameCode string) ([]model.Turn, error)
}

// TurnCache holds the hot relay state in Redis: the latest snapshot, the
// display phase, and per-side ready flags.
type TurnCache interface {
	SetSnapshot(ctx context.Context, gameCode string, state json.RawMessage) error
	GetSnapshot(ctx context.Context, gameCode string) (json.RawMessage, error)
	SetPhase(ctx context.Context, gameCode, phase, label string) error
	GetPhase(ctx context.Context, gameCode string) (phase, label string, err error)
	MarkReady(ctx context.Context, gameCode string, side int) error
	ClearReady(ctx context.Context, gameCode string) error
	ReadySides(ctx context.Context, gameCode string) ([]int, error)
	SetWaitingExpiry(ctx context.Context, gameCode string, ttl time.Duration) error
	ClearWaitingExpiry(ctx context.Context, gameCode string) error
	DeleteGameData(ctx context.Context, gameCode string) error
}
