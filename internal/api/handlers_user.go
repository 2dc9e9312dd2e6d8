package api

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/go-playground/validator/v10"

	"github.com/kuzo2004/java-filmorate/internal/domain"
	"github.com/kuzo2004/java-filmorate/internal/service"
)

// UserHandler содержит зависимости HTTP-обработчиков пользователей.
type UserHandler struct {
	users     *service.UserService
	logger    *slog.Logger
	validator *validator.Validate
}

func NewUserHandler(users *service.UserService, logger *slog.Logger, v *validator.Validate) *UserHandler {
	return &UserHandler{users: users, logger: logger, validator: v}
}

// CreateUser обрабатывает POST /api/users.
func (h *UserHandler) CreateUser(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var user domain.User
	if err := json.NewDecoder(r.Body).Decode(&user); err != nil {
		h.logger.WarnContext(ctx, "Failed to decode user payload", slog.String("error", err.Error()))
		respondError(w, r, h.logger, http.StatusBadRequest, "invalid request payload")
		return
	}
	defer r.Body.Close()

	if err := user.Validate(h.validator); err != nil {
		respondServiceError(w, r, h.logger, err)
		return
	}

	added, err := h.users.Add(ctx, &user)
	if err != nil {
		respondServiceError(w, r, h.logger, err)
		return
	}
	respondJSON(w, r, h.logger, http.StatusCreated, added)
}

// UpdateUser обрабатывает PUT /api/users (полная замена, включая друзей).
func (h *UserHandler) UpdateUser(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var user domain.User
	if err := json.NewDecoder(r.Body).Decode(&user); err != nil {
		h.logger.WarnContext(ctx, "Failed to decode user payload", slog.String("error", err.Error()))
		respondError(w, r, h.logger, http.StatusBadRequest, "invalid request payload")
		return
	}
	defer r.Body.Close()

	if err := user.Validate(h.validator); err != nil {
		respondServiceError(w, r, h.logger, err)
		return
	}

	updated, err := h.users.Update(ctx, &user)
	if err != nil {
		respondServiceError(w, r, h.logger, err)
		return
	}
	respondJSON(w, r, h.logger, http.StatusOK, updated)
}

// GetUsers обрабатывает GET /api/users.
func (h *UserHandler) GetUsers(w http.ResponseWriter, r *http.Request) {
	users, err := h.users.GetAll(r.Context())
	if err != nil {
		respondServiceError(w, r, h.logger, err)
		return
	}
	respondJSON(w, r, h.logger, http.StatusOK, users)
}

// GetUserByID обрабатывает GET /api/users/{id}.
func (h *UserHandler) GetUserByID(w http.ResponseWriter, r *http.Request) {
	id, ok := pathInt(w, r, h.logger, "id")
	if !ok {
		return
	}

	user, err := h.users.FindByID(r.Context(), id)
	if err != nil {
		respondServiceError(w, r, h.logger, err)
		return
	}
	respondJSON(w, r, h.logger, http.StatusOK, user)
}

// AddFriend обрабатывает PUT /api/users/{id}/friends/{friendId}.
func (h *UserHandler) AddFriend(w http.ResponseWriter, r *http.Request) {
	userID, ok := pathInt(w, r, h.logger, "id")
	if !ok {
		return
	}
	friendID, ok := pathInt(w, r, h.logger, "friendId")
	if !ok {
		return
	}

	if err := h.users.AddFriend(r.Context(), userID, friendID); err != nil {
		respondServiceError(w, r, h.logger, err)
		return
	}
	respondJSON(w, r, h.logger, http.StatusOK, nil)
}

// RemoveFriend обрабатывает DELETE /api/users/{id}/friends/{friendId}.
func (h *UserHandler) RemoveFriend(w http.ResponseWriter, r *http.Request) {
	userID, ok := pathInt(w, r, h.logger, "id")
	if !ok {
		return
	}
	friendID, ok := pathInt(w, r, h.logger, "friendId")
	if !ok {
		return
	}

	if err := h.users.RemoveFriend(r.Context(), userID, friendID); err != nil {
		respondServiceError(w, r, h.logger, err)
		return
	}
	respondJSON(w, r, h.logger, http.StatusOK, nil)
}

// GetFriends обрабатывает GET /api/users/{id}/friends.
func (h *UserHandler) GetFriends(w http.ResponseWriter, r *http.Request) {
	userID, ok := pathInt(w, r, h.logger, "id")
	if !ok {
		return
	}

	friends, err := h.users.GetFriends(r.Context(), userID)
	if err != nil {
		respondServiceError(w, r, h.logger, err)
		return
	}
	respondJSON(w, r, h.logger, http.StatusOK, friends)
}

// GetCommonFriends обрабатывает GET /api/users/{id}/friends/common/{otherId}.
func (h *UserHandler) GetCommonFriends(w http.ResponseWriter, r *http.Request) {
	userID, ok := pathInt(w, r, h.logger, "id")
	if !ok {
		return
	}
	otherID, ok := pathInt(w, r, h.logger, "otherId")
	if !ok {
		return
	}

	common, err := h.users.GetCommonFriends(r.Context(), userID, otherID)
	if err != nil {
		respondServiceError(w, r, h.logger, err)
		return
	}
	respondJSON(w, r, h.logger, http.StatusOK, common)
}
