package handler

import (
	"net/http"

	"github.com/dtroode/tasktracker-server/internal/api/http/response"
	"github.com/dtroode/tasktracker-server/internal/logger"
)

func handleError(w http.ResponseWriter, r *http.Request, logger *logger.Logger, err error) {
	response.Error(w, r, logger, err)
}
