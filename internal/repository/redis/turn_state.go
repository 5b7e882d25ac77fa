package redis

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"
)

// Key patterns for the hot relay state.
func snapshotKey(code string) string { return "game:" + code + ":snapshot" }
func phaseKey(code string) string    { return "game:" + code + ":phase" }
func readyKey(code string) string    { return "game:" + code + ":ready" }
func waitingKey(code string) string  { return "game:" + code + ":waiting" }

// SetSnapshot stores the latest submitted turn snapshot.
func (c *Client) SetSnapshot(ctx context.Context, gameCode string, state json.RawMessage) error {
	return c.rdb.Set(ctx, snapshotKey(gameCode), []byte(state), 0).Err()
}

// GetSnapshot retrieves the latest snapshot, or nil when none was submitted.
func (c *Client) GetSnapshot(ctx context.Context, gameCode string) (json.RawMessage, error) {
	data, err := c.rdb.Get(ctx, snapshotKey(gameCode)).Bytes()
	if err == redis.Nil {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get snapshot: %w", err)
	}
	return json.RawMessage(data), nil
}

// SetPhase stores the display phase the active player signalled, e.g.
// "events" while monthly processing animations run.
func (c *Client) SetPhase(ctx context.Context, gameCode, phase, label string) error {
	return c.rdb.HSet(ctx, phaseKey(gameCode), "phase", phase, "label", label).Err()
}

// GetPhase retrieves the display phase, defaulting to "playing".
func (c *Client) GetPhase(ctx context.Context, gameCode string) (string, string, error) {
	vals, err := c.rdb.HGetAll(ctx, phaseKey(gameCode)).Result()
	if err != nil {
		return "", "", fmt.Errorf("get phase: %w", err)
	}
	phase := vals["phase"]
	if phase == "" {
		phase = "playing"
	}
	return phase, vals["label"], nil
}

// MarkReady records that a side's snapshot is in and waiting for the
// opponent to pick it up.
func (c *Client) MarkReady(ctx context.Context, gameCode string, side int) error {
	return c.rdb.SAdd(ctx, readyKey(gameCode), side).Err()
}

// ClearReady empties the ready set, done when the opponent collects the turn.
func (c *Client) ClearReady(ctx context.Context, gameCode string) error {
	return c.rdb.Del(ctx, readyKey(gameCode)).Err()
}

// ReadySides returns the sides whose submissions are pending pickup.
func (c *Client) ReadySides(ctx context.Context, gameCode string) ([]int, error) {
	members, err := c.rdb.SMembers(ctx, readyKey(gameCode)).Result()
	if err != nil {
		return nil, fmt.Errorf("ready sides: %w", err)
	}
	sides := make([]int, 0, len(members))
	for _, m := range members {
		s, err := strconv.Atoi(m)
		if err != nil {
			continue
		}
		sides = append(sides, s)
	}
	return sides, nil
}

// SetWaitingExpiry arms a TTL key for a freshly created game. If nobody
// joins before it expires, keyspace notifications let the reaper mark the
// game abandoned.
func (c *Client) SetWaitingExpiry(ctx context.Context, gameCode string, ttl time.Duration) error {
	if ttl <= 0 {
		ttl = time.Second
	}
	return c.rdb.Set(ctx, waitingKey(gameCode), time.Now().Unix(), ttl).Err()
}

// ClearWaitingExpiry disarms the abandonment timer, done when the second
// player joins.
func (c *Client) ClearWaitingExpiry(ctx context.Context, gameCode string) error {
	return c.rdb.Del(ctx, waitingKey(gameCode)).Err()
}

// DeleteGameData removes all hot state for a game (on finish or abandon).
func (c *Client) DeleteGameData(ctx context.Context, gameCode string) error {
	return c.rdb.Del(ctx,
		snapshotKey(gameCode),
		phaseKey(gameCode),
		readyKey(gameCode),
		waitingKey(gameCode),
	).Err()
}
