package handler

import (
	"errors"
	"net/http"

	"github.com/sachio222/civil-war-strategy-online-sub000/internal/auth"
	"github.com/sachio222/civil-war-strategy-online-sub000/internal/service"
)

// GameHandler handles game lifecycle endpoints: create, join, status.
type GameHandler struct {
	gameSvc *service.GameService
	jwtMgr  *auth.JWTManager
	wsHub   *Hub
}

// NewGameHandler creates a GameHandler.
func NewGameHandler(gameSvc *service.GameService, jwtMgr *auth.JWTManager, wsHub *Hub) *GameHandler {
	return &GameHandler{gameSvc: gameSvc, jwtMgr: jwtMgr, wsHub: wsHub}
}

// CreateGame handles POST /api/v1/games. The creator picks a side (default
// Union) and receives the join code plus their side token.
func (h *GameHandler) CreateGame(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Side int `json:"side"`
	}
	// An empty body means Union; decode failures on a present body are
	// still rejected.
	if r.ContentLength > 0 {
		if err := decodeJSON(r, &req); err != nil {
			writeError(w, http.StatusBadRequest, "invalid request body")
			return
		}
	}
	if req.Side == 0 {
		req.Side = 1
	}

	game, err := h.gameSvc.CreateGame(r.Context(), req.Side, auth.UserIDFromContext(r.Context()))
	if err != nil {
		if errors.Is(err, service.ErrInvalidSide) {
			writeError(w, http.StatusBadRequest, err.Error())
			return
		}
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}

	token, err := h.jwtMgr.GenerateSideToken(game.Code, req.Side)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to generate token")
		return
	}

	writeJSON(w, http.StatusCreated, map[string]any{
		"game_code": game.Code,
		"token":     token,
		"side":      req.Side,
	})
}

// JoinGame handles POST /api/v1/games/{code}/join. The joiner gets whichever
// side the creator did not pick.
func (h *GameHandler) JoinGame(w http.ResponseWriter, r *http.Request) {
	code := r.PathValue("code")

	side, err := h.gameSvc.JoinGame(r.Context(), code, auth.UserIDFromContext(r.Context()))
	if err != nil {
		if errors.Is(err, service.ErrGameNotFound) || errors.Is(err, service.ErrGameNotJoinable) {
			writeError(w, http.StatusNotFound, "game not found or already full")
			return
		}
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}

	token, err := h.jwtMgr.GenerateSideToken(code, side)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to generate token")
		return
	}

	h.wsHub.BroadcastToGame(code, WSEvent{
		Type:     service.EventGameJoined,
		GameCode: code,
		Data:     map[string]any{"side": side},
	})

	writeJSON(w, http.StatusOK, map[string]any{
		"token": token,
		"side":  side,
	})
}

// GameStatus handles GET /api/v1/games/{code}. No auth: the code itself is
// the capability, and spectators use this too.
func (h *GameHandler) GameStatus(w http.ResponseWriter, r *http.Request) {
	game, err := h.gameSvc.Status(r.Context(), r.PathValue("code"))
	if err != nil {
		if errors.Is(err, service.ErrGameNotFound) {
			writeError(w, http.StatusNotFound, "game not found")
			return
		}
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"status":       game.Status,
		"current_side": game.CurrentSide,
		"turn_number":  game.TurnNumber,
		"winner":       game.Winner,
	})
}
