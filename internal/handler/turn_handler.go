package handler

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/sachio222/civil-war-strategy-online-sub000/internal/auth"
	"github.com/sachio222/civil-war-strategy-online-sub000/internal/service"
)

// TurnHandler handles the store-and-forward turn exchange.
type TurnHandler struct {
	turnSvc *service.TurnService
}

// NewTurnHandler creates a TurnHandler.
func NewTurnHandler(turnSvc *service.TurnService) *TurnHandler {
	return &TurnHandler{turnSvc: turnSvc}
}

// SubmitTurn handles POST /api/v1/games/{code}/turn. A wrong side or a
// stale turn number is a conflict, not a server error: the client re-polls
// and recovers.
func (h *TurnHandler) SubmitTurn(w http.ResponseWriter, r *http.Request) {
	code := r.PathValue("code")
	side := auth.SideFromContext(r.Context())

	var req struct {
		TurnNumber int             `json:"turn_number"`
		State      json.RawMessage `json:"state"`
	}
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if len(req.State) == 0 {
		writeError(w, http.StatusBadRequest, "state is required")
		return
	}

	err := h.turnSvc.SubmitTurn(r.Context(), code, side, req.TurnNumber, req.State)
	switch {
	case err == nil:
		writeJSON(w, http.StatusOK, map[string]bool{"ok": true})
	case errors.Is(err, service.ErrGameNotFound):
		writeError(w, http.StatusNotFound, "game not found")
	case errors.Is(err, service.ErrNotYourTurn), errors.Is(err, service.ErrStaleTurn):
		writeError(w, http.StatusConflict, err.Error())
	case errors.Is(err, service.ErrGameFinished):
		writeError(w, http.StatusConflict, err.Error())
	case errors.Is(err, service.ErrBadSnapshot):
		writeError(w, http.StatusBadRequest, err.Error())
	default:
		writeError(w, http.StatusInternalServerError, err.Error())
	}
}

// PollTurn handles GET /api/v1/games/{code}/turn.
func (h *TurnHandler) PollTurn(w http.ResponseWriter, r *http.Request) {
	code := r.PathValue("code")
	side := auth.SideFromContext(r.Context())

	update, err := h.turnSvc.PollTurn(r.Context(), code, side)
	if err != nil {
		if errors.Is(err, service.ErrGameNotFound) {
			writeError(w, http.StatusNotFound, "game not found")
			return
		}
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, update)
}

// SetPhase handles POST /api/v1/games/{code}/phase.
func (h *TurnHandler) SetPhase(w http.ResponseWriter, r *http.Request) {
	code := r.PathValue("code")
	side := auth.SideFromContext(r.Context())

	var req struct {
		Phase string `json:"phase"`
		Label string `json:"label"`
	}
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	if err := h.turnSvc.SetPhase(r.Context(), code, side, req.Phase, req.Label); err != nil {
		if errors.Is(err, service.ErrGameNotFound) {
			writeError(w, http.StatusNotFound, "game not found")
			return
		}
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, map[string]bool{"ok": true})
}

// ListTurns handles GET /api/v1/games/{code}/turns, the archived snapshots
// of a game for month-by-month replay.
func (h *TurnHandler) ListTurns(w http.ResponseWriter, r *http.Request) {
	states, err := h.turnSvc.Turns(r.Context(), r.PathValue("code"))
	if err != nil {
		if errors.Is(err, service.ErrGameNotFound) {
			writeError(w, http.StatusNotFound, "game not found")
			return
		}
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	if states == nil {
		states = []json.RawMessage{}
	}
	writeJSON(w, http.StatusOK, map[string]any{"turns": states})
}
