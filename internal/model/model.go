package model

import (
	"encoding/json"
	"time"
)

// User represents a registered account. Accounts are optional; anonymous
// players hold only a side token for a single game.
type User struct {
	ID          string    `json:"id"`
	Provider    string    `json:"provider"`
	ProviderID  string    `json:"provider_id"`
	DisplayName string    `json:"display_name"`
	AvatarURL   string    `json:"avatar_url,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// Game is the durable record of one two-player campaign. The relay is a
// store-and-forward queue: CurrentSide names whose snapshot is expected
// next, TurnNumber counts completed submissions.
type Game struct {
	Code         string     `json:"code"`
	Status       string     `json:"status"` // waiting, active, finished, abandoned
	CreatorSide  int        `json:"creator_side"`
	CurrentSide  int        `json:"current_side"`
	TurnNumber   int        `json:"turn_number"`
	Winner       int        `json:"winner,omitempty"`
	UnionUserID  string     `json:"union_user_id,omitempty"`
	ConfedUserID string     `json:"confed_user_id,omitempty"`
	CreatedAt    time.Time  `json:"created_at"`
	UpdatedAt    time.Time  `json:"updated_at"`
	FinishedAt   *time.Time `json:"finished_at,omitempty"`
}

// Turn is one archived snapshot submission. The hot copy lives in Redis;
// these rows let a finished game be replayed month by month.
type Turn struct {
	ID         string          `json:"id"`
	GameCode   string          `json:"game_code"`
	TurnNumber int             `json:"turn_number"`
	Side       int             `json:"side"`
	State      json.RawMessage `json:"state"`
	CreatedAt  time.Time       `json:"created_at"`
}
