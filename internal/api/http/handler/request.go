package handler

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/dtroode/tasktracker-server/internal/apierror"
	"github.com/dtroode/tasktracker-server/internal/model"
)

const maxBodyBytes = 1 << 20

// decodeJSON reads a JSON body into v. Unknown fields are ignored.
func decodeJSON(w http.ResponseWriter, r *http.Request, v any) error {
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		var maxErr *http.MaxBytesError
		switch {
		case errors.Is(err, io.EOF):
			return apierror.NewErrValidation("request body is required")
		case errors.As(err, &maxErr):
			return apierror.NewErrValidation("request body is too large")
		default:
			return apierror.NewErrValidation("invalid request body: %v", err)
		}
	}
	return nil
}

// pathID parses a positive integer route parameter.
func pathID(r *http.Request, name string) (int64, error) {
	raw := chi.URLParam(r, name)
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return 0, apierror.NewErrValidation("invalid %s %q", name, raw)
	}
	return id, nil
}

// actor returns the authenticated identity. Routes behind Require always have one.
func actor(r *http.Request, ctxMgr model.ContextManager) (model.TokenData, error) {
	data, ok := ctxMgr.GetTokenDataFromContext(r.Context())
	if !ok || data.UserID == 0 {
		return model.TokenData{}, apierror.NewErrMissingAuthorizationToken()
	}
	return data, nil
}
