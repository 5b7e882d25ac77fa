package service

import (
	"context"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"

	"github.com/sachio222/civil-war-strategy-online-sub000/internal/repository"
)

// Reaper marks waiting games nobody joined as abandoned. The fast path is
// Redis keyspace notifications on the per-game waiting TTL key; a polling
// sweep over Postgres catches games whose key was lost (Redis restart,
// notifications disabled).
type Reaper struct {
	rdb       *redis.Client
	gameRepo  repository.GameRepository
	cache     repository.TurnCache
	broadcast Broadcaster
}

// NewReaper creates a Reaper.
func NewReaper(rdb *redis.Client, gameRepo repository.GameRepository, cache repository.TurnCache, broadcast Broadcaster) *Reaper {
	if broadcast == nil {
		broadcast = NoopBroadcaster{}
	}
	return &Reaper{rdb: rdb, gameRepo: gameRepo, cache: cache, broadcast: broadcast}
}

// Start begins listening for expired waiting keys and runs the Postgres
// sweep. Blocks until the context is cancelled.
func (rp *Reaper) Start(ctx context.Context) {
	go rp.listenKeyspace(ctx)
	rp.sweep(ctx)
}

func (rp *Reaper) listenKeyspace(ctx context.Context) {
	pubsub := rp.rdb.PSubscribe(ctx, "__keyevent@0__:expired")
	defer pubsub.Close()

	log.Info().Msg("Reaper listening for expired waiting keys")
	ch := pubsub.Channel()
	for {
		select {
		case <-ctx.Done():
			return
		case msg, ok := <-ch:
			if !ok {
				return
			}
			rp.handleExpiry(ctx, msg.Payload)
		}
	}
}

// sweep periodically abandons waiting games older than the expiry window.
func (rp *Reaper) sweep(ctx context.Context) {
	ticker := time.NewTicker(10 * time.Minute)
	defer ticker.Stop()

	log.Info().Msg("Stale-game sweep started (10m interval)")
	for {
		select {
		case <-ctx.Done():
			log.Info().Msg("Stale-game sweep stopped")
			return
		case <-ticker.C:
			rp.sweepOnce(ctx)
		}
	}
}

func (rp *Reaper) sweepOnce(ctx context.Context) {
	games, err := rp.gameRepo.ListStaleWaiting(ctx, time.Now().Add(-waitingExpiry))
	if err != nil {
		log.Error().Err(err).Msg("Failed to list stale waiting games")
		return
	}
	for _, g := range games {
		rp.abandon(ctx, g.Code)
	}
}

// handleExpiry acts only on waiting keys; snapshot and phase keys have no TTL.
func (rp *Reaper) handleExpiry(ctx context.Context, key string) {
	if !strings.HasPrefix(key, "game:") || !strings.HasSuffix(key, ":waiting") {
		return
	}
	parts := strings.SplitN(key, ":", 3)
	if len(parts) != 3 {
		return
	}
	rp.abandon(ctx, parts[1])
}

func (rp *Reaper) abandon(ctx context.Context, code string) {
	log.Info().Str("gameCode", code).Msg("Abandoning unjoined game")
	if err := rp.gameRepo.SetAbandoned(ctx, code); err != nil {
		log.Error().Err(err).Str("gameCode", code).Msg("Failed to abandon game")
		return
	}
	if err := rp.cache.DeleteGameData(ctx, code); err != nil {
		log.Error().Err(err).Str("gameCode", code).Msg("Failed to clear game data")
	}
	rp.broadcast.BroadcastGameEvent(code, EventGameAbandoned, map[string]any{})
}
