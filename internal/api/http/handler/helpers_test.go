package handler

import (
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"

	httpctx "github.com/dtroode/tasktracker-server/internal/api/http/context"
	"github.com/dtroode/tasktracker-server/internal/model"
)

func ptr[T any](v T) *T { return &v }

// serve routes one request through a chi router so that URL params resolve.
// actorID zero sends the request unauthenticated.
func serve(t *testing.T, ctxMgr *httpctx.Manager, method, pattern, target, body string, actorID int64, h http.HandlerFunc) *httptest.ResponseRecorder {
	t.Helper()

	r := chi.NewRouter()
	r.Method(method, pattern, http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
		if actorID != 0 {
			req = req.WithContext(ctxMgr.SetTokenDataToContext(req.Context(), model.TokenData{UserID: actorID}))
		}
		h(w, req)
	}))

	var reader io.Reader
	if body != "" {
		reader = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, target, reader)
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	return rec
}
