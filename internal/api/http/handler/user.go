package handler

import (
	"net/http"

	"github.com/dtroode/tasktracker-server/internal/logger"
	"github.com/dtroode/tasktracker-server/internal/model"
)

// User handles HTTP endpoints for user accounts.
type User struct {
	userService    UserService
	contextManager model.ContextManager
	logger         *logger.Logger
}

// NewUser creates a new User handler.
func NewUser(userService UserService, contextManager model.ContextManager, logger *logger.Logger) *User {
	return &User{userService: userService, contextManager: contextManager, logger: logger}
}

// Delete removes the account named in the path together with its tasks.
// Only the account owner may delete it.
func (h *User) Delete(w http.ResponseWriter, r *http.Request) {
	data, err := actor(r, h.contextManager)
	if err != nil {
		handleError(w, r, h.logger, err)
		return
	}

	targetID, err := pathID(r, "user_id")
	if err != nil {
		handleError(w, r, h.logger, err)
		return
	}

	if err := h.userService.Delete(r.Context(), data.UserID, targetID); err != nil {
		handleError(w, r, h.logger, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
