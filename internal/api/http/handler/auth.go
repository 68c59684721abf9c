package handler

import (
	"net/http"

	"github.com/dtroode/tasktracker-server/internal/api/http/response"
	"github.com/dtroode/tasktracker-server/internal/logger"
	"github.com/dtroode/tasktracker-server/internal/model"
)

type signupRequest struct {
	Email           string  `json:"email"`
	Password        string  `json:"password"`
	ConfirmPassword *string `json:"confirm_password"`
	Name            *string `json:"name"`
}

type signinRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type sessionResponse struct {
	User        model.PublicUser `json:"user"`
	AccessToken string           `json:"access_token"`
	TokenType   string           `json:"token_type"`
	ExpiresIn   int64            `json:"expires_in"`
}

type messageResponse struct {
	Message string `json:"message"`
}

func newSessionResponse(session model.AuthSession) sessionResponse {
	return sessionResponse{
		User:        session.User,
		AccessToken: session.AccessToken,
		TokenType:   model.TokenType,
		ExpiresIn:   int64(session.ExpiresIn.Seconds()),
	}
}

// Auth handles HTTP endpoints for authentication.
type Auth struct {
	authService    AuthService
	userService    UserService
	contextManager model.ContextManager
	logger         *logger.Logger
}

// NewAuth creates a new Auth handler.
func NewAuth(authService AuthService, userService UserService, contextManager model.ContextManager, logger *logger.Logger) *Auth {
	return &Auth{
		authService:    authService,
		userService:    userService,
		contextManager: contextManager,
		logger:         logger,
	}
}

// Signup registers a user and answers 201 with a session envelope.
func (h *Auth) Signup(w http.ResponseWriter, r *http.Request) {
	var req signupRequest
	if err := decodeJSON(w, r, &req); err != nil {
		handleError(w, r, h.logger, err)
		return
	}

	session, err := h.authService.Signup(r.Context(), model.SignupParams{
		Email:           req.Email,
		Password:        req.Password,
		ConfirmPassword: req.ConfirmPassword,
		Name:            req.Name,
	})
	if err != nil {
		h.logger.Debug("Auth handler: signup failed",
			"error", err.Error())
		handleError(w, r, h.logger, err)
		return
	}

	h.logger.Info("Auth handler: signup completed",
		"user_id", session.User.ID)

	response.JSON(w, http.StatusCreated, newSessionResponse(session))
}

// Signin authenticates a user and answers 200 with a session envelope.
func (h *Auth) Signin(w http.ResponseWriter, r *http.Request) {
	var req signinRequest
	if err := decodeJSON(w, r, &req); err != nil {
		handleError(w, r, h.logger, err)
		return
	}

	session, err := h.authService.Signin(r.Context(), model.SigninParams{
		Email:    req.Email,
		Password: req.Password,
	})
	if err != nil {
		h.logger.Debug("Auth handler: signin failed",
			"error", err.Error())
		handleError(w, r, h.logger, err)
		return
	}

	h.logger.Info("Auth handler: signin completed",
		"user_id", session.User.ID)

	response.JSON(w, http.StatusOK, newSessionResponse(session))
}

// Logout acknowledges the request. Tokens are stateless, so the client
// discards its own copy.
func (h *Auth) Logout(w http.ResponseWriter, r *http.Request) {
	response.JSON(w, http.StatusOK, messageResponse{Message: "Successfully logged out"})
}

// Me returns the public projection of the authenticated user.
func (h *Auth) Me(w http.ResponseWriter, r *http.Request) {
	data, err := actor(r, h.contextManager)
	if err != nil {
		handleError(w, r, h.logger, err)
		return
	}

	user, err := h.userService.Me(r.Context(), data.UserID)
	if err != nil {
		handleError(w, r, h.logger, err)
		return
	}

	response.JSON(w, http.StatusOK, user)
}
