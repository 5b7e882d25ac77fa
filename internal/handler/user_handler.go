package handler

import (
	"net/http"

	"github.com/sachio222/civil-war-strategy-online-sub000/internal/auth"
	"github.com/sachio222/civil-war-strategy-online-sub000/internal/repository"
	"github.com/sachio222/civil-war-strategy-online-sub000/internal/service"
)

// UserHandler handles account endpoints.
type UserHandler struct {
	userRepo repository.UserRepository
	gameSvc  *service.GameService
}

// NewUserHandler creates a UserHandler.
func NewUserHandler(userRepo repository.UserRepository, gameSvc *service.GameService) *UserHandler {
	return &UserHandler{userRepo: userRepo, gameSvc: gameSvc}
}

// GetMe handles GET /api/v1/me: the signed-in account and its game history.
func (h *UserHandler) GetMe(w http.ResponseWriter, r *http.Request) {
	userID := auth.UserIDFromContext(r.Context())

	user, err := h.userRepo.FindByID(r.Context(), userID)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	if user == nil {
		writeError(w, http.StatusNotFound, "user not found")
		return
	}

	games, err := h.gameSvc.ListByUser(r.Context(), userID)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"user":  user,
		"games": games,
	})
}

// UpdateMe handles PATCH /api/v1/me.
func (h *UserHandler) UpdateMe(w http.ResponseWriter, r *http.Request) {
	userID := auth.UserIDFromContext(r.Context())

	var req struct {
		DisplayName string `json:"display_name"`
	}
	if err := decodeJSON(r, &req); err != nil || req.DisplayName == "" {
		writeError(w, http.StatusBadRequest, "display_name is required")
		return
	}

	if err := h.userRepo.UpdateDisplayName(r.Context(), userID, req.DisplayName); err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "updated"})
}
