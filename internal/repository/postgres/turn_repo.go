package postgres

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"

	"github.com/sachio222/civil-war-strategy-online-sub000/internal/model"
)

// TurnRepo archives submitted turn snapshots. One row per accepted
// submission; the hot copy the opponent polls lives in Redis.
type TurnRepo struct {
	db *sql.DB
}

// NewTurnRepo creates a TurnRepo.
func NewTurnRepo(db *sql.DB) *TurnRepo {
	return &TurnRepo{db: db}
}

// Archive stores a snapshot. Re-archiving the same turn number replaces the
// earlier row, so a retried submit does not duplicate history.
func (r *TurnRepo) Archive(ctx context.Context, gameCode string, turnNumber, side int, state json.RawMessage) error {
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO turns (game_code, turn_number, side, state)
		 VALUES ($1, $2, $3, $4)
		 ON CONFLICT (game_code, turn_number)
		 DO UPDATE SET side = EXCLUDED.side, state = EXCLUDED.state`,
		gameCode, turnNumber, side, []byte(state),
	)
	if err != nil {
		return fmt.Errorf("archive turn: %w", err)
	}
	return nil
}

// ListByGame returns a game's archived turns in submission order.
func (r *TurnRepo) ListByGame(ctx context.Context, gameCode string) ([]model.Turn, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT id, game_code, turn_number, side, state, created_at
		 FROM turns WHERE game_code = $1 ORDER BY turn_number`,
		gameCode,
	)
	if err != nil {
		return nil, fmt.Errorf("list turns: %w", err)
	}
	defer rows.Close()

	var turns []model.Turn
	for rows.Next() {
		var t model.Turn
		var state []byte
		if err := rows.Scan(&t.ID, &t.GameCode, &t.TurnNumber, &t.Side, &state, &t.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan turn: %w", err)
		}
		t.State = json.RawMessage(state)
		turns = append(turns, t)
	}
	return turns, rows.Err()
}

// LatestTurn returns the most recent archived turn, or nil when none exist.
func (r *TurnRepo) LatestTurn(ctx context.Context, gameCode string) (*model.Turn, error) {
	var t model.Turn
	var state []byte
	err := r.db.QueryRowContext(ctx,
		`SELECT id, game_code, turn_number, side, state, created_at
		 FROM turns WHERE game_code = $1 ORDER BY turn_number DESC LIMIT 1`,
		gameCode,
	).Scan(&t.ID, &t.GameCode, &t.TurnNumber, &t.Side, &state, &t.CreatedAt)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("latest turn: %w", err)
	}
	t.State = json.RawMessage(state)
	return &t, nil
}
