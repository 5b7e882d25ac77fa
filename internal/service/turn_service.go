package service

import (
	"context"
	"encoding/json"

	"github.com/sachio222/civil-war-strategy-online-sub000/internal/logger"
	"github.com/sachio222/civil-war-strategy-online-sub000/internal/repository"
	"github.com/sachio222/civil-war-strategy-online-sub000/pkg/cws"
)

// WebSocket event types emitted by the relay.
const (
	EventTurnSubmitted = "turn_submitted"
	EventPhaseChanged  = "phase_changed"
	EventGameJoined    = "game_joined"
	EventGameEnded     = "game_ended"
	EventGameAbandoned = "game_abandoned"
)

// TurnUpdate is what a polling client receives: whether the opponent's turn
// is in, and the snapshot plus display phase when it is.
type TurnUpdate struct {
	Ready      bool            `json:"ready"`
	State      json.RawMessage `json:"state,omitempty"`
	TurnNumber int             `json:"turn_number"`
	Phase      string          `json:"phase"`
	PhaseLabel string          `json:"phase_label,omitempty"`
}

// TurnService is the store-and-forward core of the relay. Clients resolve
// months locally and exchange full snapshots; the service validates whose
// snapshot is expected, stores it, and hands the game to the other side.
type TurnService struct {
	gameRepo  repository.GameRepository
	turnRepo  repository.TurnRepository
	cache     repository.TurnCache
	broadcast Broadcaster
}

// NewTurnService creates a TurnService.
func NewTurnService(gameRepo repository.GameRepository, turnRepo repository.TurnRepository, cache repository.TurnCache, broadcast Broadcaster) *TurnService {
	if broadcast == nil {
		broadcast = NoopBroadcaster{}
	}
	return &TurnService{gameRepo: gameRepo, turnRepo: turnRepo, cache: cache, broadcast: broadcast}
}

// SubmitTurn accepts a resolved-turn snapshot from the side whose turn it
// is. The snapshot must parse; a wrong side or stale turn number is
// rejected so a double-submit cannot skip the opponent.
func (s *TurnService) SubmitTurn(ctx context.Context, code string, side, turnNumber int, state json.RawMessage) error {
	code = normalizeCode(code)
	game, err := s.gameRepo.FindByCode(ctx, code)
	if err != nil {
		return err
	}
	if game == nil {
		return ErrGameNotFound
	}
	if game.Status == "finished" {
		return ErrGameFinished
	}

	st, err := cws.LoadSnapshot(state)
	if err != nil {
		return ErrBadSnapshot
	}

	ok, err := s.gameRepo.AdvanceTurn(ctx, code, side, turnNumber)
	if err != nil {
		return err
	}
	if !ok {
		if game.CurrentSide != side {
			return ErrNotYourTurn
		}
		return ErrStaleTurn
	}

	if err := s.cache.SetSnapshot(ctx, code, state); err != nil {
		return err
	}
	// Submitting ends any display phase the sender had signalled.
	if err := s.cache.SetPhase(ctx, code, "playing", ""); err != nil {
		return err
	}
	if err := s.cache.ClearReady(ctx, code); err != nil {
		return err
	}
	if err := s.cache.MarkReady(ctx, code, side); err != nil {
		return err
	}

	if err := s.turnRepo.Archive(ctx, code, turnNumber, side, state); err != nil {
		// The hot path already succeeded; losing one archive row is not
		// worth failing the submit over.
		l := logger.ForRequest(ctx)
		l.Error().Err(err).Str("gameCode", code).Int("turn", turnNumber).Msg("Failed to archive turn")
	}

	s.broadcast.BroadcastGameEvent(code, EventTurnSubmitted, map[string]any{
		"side":        side,
		"turn_number": turnNumber,
		"month":       st.Month,
		"year":        st.Year,
		"events":      st.Events,
	})

	if st.Status == cws.StatusFinished {
		if err := s.gameRepo.SetFinished(ctx, code, int(st.Winner)); err != nil {
			return err
		}
		s.broadcast.BroadcastGameEvent(code, EventGameEnded, map[string]any{
			"winner":        int(st.Winner),
			"win_condition": st.WinCondition,
		})
	}

	return nil
}

// PollTurn reports whether the opponent's snapshot is waiting for the given
// side. The snapshot is ready when the game has passed back to the poller,
// or unconditionally once the game is finished.
func (s *TurnService) PollTurn(ctx context.Context, code string, side int) (*TurnUpdate, error) {
	code = normalizeCode(code)
	game, err := s.gameRepo.FindByCode(ctx, code)
	if err != nil {
		return nil, err
	}
	if game == nil {
		return nil, ErrGameNotFound
	}

	phase, label, err := s.cache.GetPhase(ctx, code)
	if err != nil {
		return nil, err
	}

	update := &TurnUpdate{TurnNumber: game.TurnNumber, Phase: phase, PhaseLabel: label}

	if game.Status == "finished" || (game.CurrentSide == side && game.TurnNumber > 0) {
		state, err := s.cache.GetSnapshot(ctx, code)
		if err != nil {
			return nil, err
		}
		if state != nil {
			update.Ready = true
			update.State = state
		}
	}
	return update, nil
}

// SetPhase records a display phase signalled by the active player, e.g.
// "events" while the monthly-processing animation runs on their screen, so
// the waiting opponent can show matching feedback.
func (s *TurnService) SetPhase(ctx context.Context, code string, side int, phase, label string) error {
	code = normalizeCode(code)
	game, err := s.gameRepo.FindByCode(ctx, code)
	if err != nil {
		return err
	}
	if game == nil {
		return ErrGameNotFound
	}

	if phase == "" {
		phase = "playing"
	}
	if err := s.cache.SetPhase(ctx, code, phase, label); err != nil {
		return err
	}

	s.broadcast.BroadcastGameEvent(code, EventPhaseChanged, map[string]any{
		"side":  side,
		"phase": phase,
		"label": label,
	})
	return nil
}

// Turns returns a finished game's archived snapshots for replay.
func (s *TurnService) Turns(ctx context.Context, code string) ([]json.RawMessage, error) {
	code = normalizeCode(code)
	game, err := s.gameRepo.FindByCode(ctx, code)
	if err != nil {
		return nil, err
	}
	if game == nil {
		return nil, ErrGameNotFound
	}

	turns, err := s.turnRepo.ListByGame(ctx, code)
	if err != nil {
		return nil, err
	}
	states := make([]json.RawMessage, len(turns))
	for i, t := range turns {
		states[i] = t.State
	}
	return states, nil
}
