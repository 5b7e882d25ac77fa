package postgres

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/sachio222/civil-war-strategy-online-sub000/internal/model"
)

// GameRepo handles game database operations. Games are keyed by their
// six-character join code rather than a surrogate ID; the code is what
// players exchange out of band.
type GameRepo struct {
	db *sql.DB
}

// NewGameRepo creates a GameRepo.
func NewGameRepo(db *sql.DB) *GameRepo {
	return &GameRepo{db: db}
}

// Create inserts a new game in "waiting" status with only the creator's
// side filled. creatorUserID may be empty for anonymous play.
func (r *GameRepo) Create(ctx context.Context, code string, creatorSide int, creatorUserID string) (*model.Game, error) {
	userCol := "union_user_id"
	if creatorSide == 2 {
		userCol = "confed_user_id"
	}
	var g model.Game
	err := r.db.QueryRowContext(ctx,
		`INSERT INTO games (code, creator_side, `+userCol+`)
		 VALUES ($1, $2, NULLIF($3, '')::uuid)
		 RETURNING code, status, creator_side, current_side, turn_number, created_at, updated_at`,
		code, creatorSide, creatorUserID,
	).Scan(&g.Code, &g.Status, &g.CreatorSide, &g.CurrentSide, &g.TurnNumber, &g.CreatedAt, &g.UpdatedAt)
	if err != nil {
		return nil, fmt.Errorf("create game: %w", err)
	}
	return &g, nil
}

// FindByCode returns a game, or nil when the code is unknown.
func (r *GameRepo) FindByCode(ctx context.Context, code string) (*model.Game, error) {
	var g model.Game
	var winner sql.NullInt64
	var unionUser, confedUser sql.NullString
	err := r.db.QueryRowContext(ctx,
		`SELECT code, status, creator_side, current_side, turn_number, winner,
		        union_user_id, confed_user_id, created_at, updated_at, finished_at
		 FROM games WHERE code = $1`, code,
	).Scan(&g.Code, &g.Status, &g.CreatorSide, &g.CurrentSide, &g.TurnNumber, &winner,
		&unionUser, &confedUser, &g.CreatedAt, &g.UpdatedAt, &g.FinishedAt)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("find game: %w", err)
	}
	g.Winner = int(winner.Int64)
	g.UnionUserID = unionUser.String
	g.ConfedUserID = confedUser.String
	return &g, nil
}

// Join fills the open side and flips the game to "active". The WHERE clause
// guards against double joins: only a waiting game with that side still
// empty is updated.
func (r *GameRepo) Join(ctx context.Context, code string, side int, userID string) (bool, error) {
	userCol := "union_user_id"
	if side == 2 {
		userCol = "confed_user_id"
	}
	res, err := r.db.ExecContext(ctx,
		`UPDATE games SET `+userCol+` = NULLIF($1, '')::uuid, status = 'active', updated_at = now()
		 WHERE code = $2 AND status = 'waiting' AND creator_side <> $3`,
		userID, code, side,
	)
	if err != nil {
		return false, fmt.Errorf("join game: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("join game: %w", err)
	}
	return n == 1, nil
}

// AdvanceTurn hands the game to the other side. The guard on current_side
// and turn_number makes the submit idempotence check atomic: a stale or
// wrong-side submission updates zero rows.
func (r *GameRepo) AdvanceTurn(ctx context.Context, code string, side, turnNumber int) (bool, error) {
	res, err := r.db.ExecContext(ctx,
		`UPDATE games SET current_side = 3 - current_side, turn_number = turn_number + 1, updated_at = now()
		 WHERE code = $1 AND status = 'active' AND current_side = $2 AND turn_number = $3`,
		code, side, turnNumber,
	)
	if err != nil {
		return false, fmt.Errorf("advance turn: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("advance turn: %w", err)
	}
	return n == 1, nil
}

// SetFinished marks a game finished with the winning side (0 for none).
func (r *GameRepo) SetFinished(ctx context.Context, code string, winner int) error {
	_, err := r.db.ExecContext(ctx,
		`UPDATE games SET status = 'finished', winner = $1, finished_at = now(), updated_at = now()
		 WHERE code = $2 AND status <> 'finished'`,
		winner, code,
	)
	if err != nil {
		return fmt.Errorf("finish game: %w", err)
	}
	return nil
}

// SetAbandoned marks a waiting game that nobody joined as abandoned.
func (r *GameRepo) SetAbandoned(ctx context.Context, code string) error {
	_, err := r.db.ExecContext(ctx,
		`UPDATE games SET status = 'abandoned', updated_at = now()
		 WHERE code = $1 AND status = 'waiting'`,
		code,
	)
	if err != nil {
		return fmt.Errorf("abandon game: %w", err)
	}
	return nil
}

// ListStaleWaiting returns waiting games created before the cutoff.
func (r *GameRepo) ListStaleWaiting(ctx context.Context, cutoff time.Time) ([]model.Game, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT code, status, creator_side, current_side, turn_number, created_at, updated_at
		 FROM games WHERE status = 'waiting' AND created_at < $1
		 ORDER BY created_at LIMIT 100`, cutoff)
	if err != nil {
		return nil, fmt.Errorf("list stale waiting games: %w", err)
	}
	defer rows.Close()

	var games []model.Game
	for rows.Next() {
		var g model.Game
		if err := rows.Scan(&g.Code, &g.Status, &g.CreatorSide, &g.CurrentSide, &g.TurnNumber, &g.CreatedAt, &g.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan game: %w", err)
		}
		games = append(games, g)
	}
	return games, rows.Err()
}

// ListByUser returns games an account is part of, most recent first.
func (r *GameRepo) ListByUser(ctx context.Context, userID string) ([]model.Game, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT code, status, creator_side, current_side, turn_number, winner,
		        union_user_id, confed_user_id, created_at, updated_at, finished_at
		 FROM games WHERE union_user_id = $1 OR confed_user_id = $1
		 ORDER BY created_at DESC LIMIT 50`, userID)
	if err != nil {
		return nil, fmt.Errorf("list user games: %w", err)
	}
	defer rows.Close()

	var games []model.Game
	for rows.Next() {
		var g model.Game
		var winner sql.NullInt64
		var unionUser, confedUser sql.NullString
		if err := rows.Scan(&g.Code, &g.Status, &g.CreatorSide, &g.CurrentSide, &g.TurnNumber, &winner,
			&unionUser, &confedUser, &g.CreatedAt, &g.UpdatedAt, &g.FinishedAt); err != nil {
			return nil, fmt.Errorf("scan game: %w", err)
		}
		g.Winner = int(winner.Int64)
		g.UnionUserID = unionUser.String
		g.ConfedUserID = confedUser.String
		games = append(games, g)
	}
	return games, rows.Err()
}
