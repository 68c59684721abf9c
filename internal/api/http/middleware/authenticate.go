package middleware

import (
	"errors"
	"net/http"
	"strings"

	"github.com/dtroode/tasktracker-server/internal/api/http/response"
	"github.com/dtroode/tasktracker-server/internal/apierror"
	"github.com/dtroode/tasktracker-server/internal/logger"
	"github.com/dtroode/tasktracker-server/internal/model"
)

// TokenVerifier resolves the identity bound into an access token.
type TokenVerifier interface {
	Verify(token string) (model.TokenData, error)
}

// Authenticate validates bearer tokens and injects the token identity into
// the request context.
type Authenticate struct {
	tokenVerifier  TokenVerifier
	contextManager model.ContextManager
	logger         *logger.Logger
}

// NewAuthenticate creates a new Authenticate middleware instance.
func NewAuthenticate(tokenVerifier TokenVerifier, contextManager model.ContextManager, logger *logger.Logger) *Authenticate {
	return &Authenticate{tokenVerifier: tokenVerifier, contextManager: contextManager, logger: logger}
}

// Require rejects the request with 401 unless it carries a valid bearer token
// naming a user.
func (m *Authenticate) Require(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		data, err := m.Strict(r.Header.Get("Authorization"))
		if err != nil {
			m.logger.Debug("Authenticate middleware: request rejected",
				"path", r.URL.Path,
				"error", err.Error())
			response.Error(w, r, m.logger, err)
			return
		}

		next.ServeHTTP(w, r.WithContext(m.contextManager.SetTokenDataToContext(r.Context(), data)))
	})
}

// Optional attaches the token identity when the request carries a usable
// token and passes the request through unchanged otherwise.
func (m *Authenticate) Optional(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if data, ok := m.Soft(r.Header.Get("Authorization")); ok {
			r = r.WithContext(m.contextManager.SetTokenDataToContext(r.Context(), data))
		}
		next.ServeHTTP(w, r)
	})
}

// Strict authenticates an Authorization header value. Every failure is an
// *apierror.APIError with status 401.
func (m *Authenticate) Strict(header string) (model.TokenData, error) {
	token, err := parseAuthorization(header)
	if err != nil {
		return model.TokenData{}, err
	}

	data, err := m.tokenVerifier.Verify(token)
	if err != nil {
		if errors.Is(err, model.ErrTokenExpired) {
			return model.TokenData{}, apierror.NewErrTokenExpired()
		}
		return model.TokenData{}, apierror.NewErrInvalidAuthorizationToken()
	}

	if data.UserID == 0 {
		return model.TokenData{}, apierror.NewErrTokenMissingUser()
	}

	return data, nil
}

// Soft authenticates an Authorization header value and reports any failure
// as absence.
func (m *Authenticate) Soft(header string) (model.TokenData, bool) {
	token, err := parseAuthorization(header)
	if err != nil {
		return model.TokenData{}, false
	}

	data, err := m.tokenVerifier.Verify(token)
	if err != nil {
		return model.TokenData{}, false
	}

	return data, true
}

// parseAuthorization extracts the credentials of a Bearer header. The scheme
// is matched case-insensitively.
func parseAuthorization(header string) (string, error) {
	header = strings.TrimSpace(header)
	if header == "" {
		return "", apierror.NewErrMissingAuthorizationToken()
	}

	scheme, token, found := strings.Cut(header, " ")
	if !found || !strings.EqualFold(scheme, "Bearer") {
		return "", apierror.NewErrInvalidAuthorizationScheme()
	}

	token = strings.TrimSpace(token)
	if token == "" {
		return "", apierror.NewErrMissingAuthorizationToken()
	}

	return token, nil
}
