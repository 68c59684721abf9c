// Package response writes JSON bodies and maps errors to HTTP replies.
package response

import (
	"encoding/json"
	"net/http"

	"github.com/dtroode/tasktracker-server/internal/apierror"
	"github.com/dtroode/tasktracker-server/internal/logger"
)

// ErrorBody is the body of every error reply.
type ErrorBody struct {
	Detail string `json:"detail"`
}

// JSON writes v with the given status.
func JSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if v == nil {
		return
	}
	_ = json.NewEncoder(w).Encode(v)
}

// Error writes err as a JSON error reply. An *apierror.APIError is reported
// with its own status and message; anything else is logged and hidden behind
// a generic 500.
func Error(w http.ResponseWriter, r *http.Request, logger *logger.Logger, err error) {
	apiErr, ok := apierror.As(err)
	if !ok {
		logger.Error("HTTP: internal error",
			"method", r.Method,
			"path", r.URL.Path,
			"error", err.Error())
		JSON(w, http.StatusInternalServerError, ErrorBody{Detail: "internal server error"})
		return
	}

	if apiErr.IsAuthentication() {
		w.Header().Set("WWW-Authenticate", challenge(apiErr))
	}
	JSON(w, apiErr.Status, ErrorBody{Detail: apiErr.Message})
}

func challenge(apiErr *apierror.APIError) string {
	switch apiErr.Kind {
	case apierror.KindTokenExpired, apierror.KindInvalidToken:
		return `Bearer error="invalid_token"`
	default:
		return "Bearer"
	}
}
