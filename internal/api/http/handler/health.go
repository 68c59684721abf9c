package handler

import (
	"context"
	"net/http"
	"time"

	"github.com/dtroode/tasktracker-server/internal/api/http/response"
	"github.com/dtroode/tasktracker-server/internal/logger"
	"github.com/dtroode/tasktracker-server/internal/model"
)

const pingTimeout = 2 * time.Second

type bannerResponse struct {
	Message       string `json:"message"`
	Status        string `json:"status"`
	Authenticated bool   `json:"authenticated"`
}

type healthResponse struct {
	Status string `json:"status"`
}

// Health serves the service banner and the health probe.
type Health struct {
	pinger         model.Pinger
	contextManager model.ContextManager
	logger         *logger.Logger
}

// NewHealth creates a new Health handler. pinger checks the backing store.
func NewHealth(pinger model.Pinger, contextManager model.ContextManager, logger *logger.Logger) *Health {
	return &Health{pinger: pinger, contextManager: contextManager, logger: logger}
}

// Banner reports that the API is running and whether the caller presented a
// usable token.
func (h *Health) Banner(w http.ResponseWriter, r *http.Request) {
	_, authenticated := h.contextManager.GetTokenDataFromContext(r.Context())
	response.JSON(w, http.StatusOK, bannerResponse{
		Message:       "Task Management API",
		Status:        "running",
		Authenticated: authenticated,
	})
}

// Check answers 200 when the store is reachable and 503 otherwise.
func (h *Health) Check(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), pingTimeout)
	defer cancel()

	if err := h.pinger.Ping(ctx); err != nil {
		h.logger.Error("Health handler: store ping failed",
			"error", err.Error())
		response.JSON(w, http.StatusServiceUnavailable, healthResponse{Status: "unhealthy"})
		return
	}

	response.JSON(w, http.StatusOK, healthResponse{Status: "healthy"})
}
