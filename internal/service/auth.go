package service

import (
	"context"
	"errors"
	"fmt"
	"net/mail"
	"strings"
	"time"

	"github.com/dtroode/tasktracker-server/internal/apierror"
	"github.com/dtroode/tasktracker-server/internal/logger"
	"github.com/dtroode/tasktracker-server/internal/model"
	"github.com/dtroode/tasktracker-server/internal/password"
)

const userNameMaxLen = 255

type Auth struct {
	userStore    model.UserStore
	hasher       model.PasswordHasher
	tokenManager model.TokenManager
	tokenTTL     time.Duration
	logger       *logger.Logger
	now          func() time.Time
}

func NewAuth(
	userStore model.UserStore,
	hasher model.PasswordHasher,
	tokenManager model.TokenManager,
	tokenTTL time.Duration,
	logger *logger.Logger,
) *Auth {
	if tokenTTL <= 0 {
		tokenTTL = model.DefaultTokenTTL
	}
	return &Auth{
		userStore:    userStore,
		hasher:       hasher,
		tokenManager: tokenManager,
		tokenTTL:     tokenTTL,
		logger:       logger,
		now:          time.Now,
	}
}

// Signup registers a user and signs them in. Checks run in a fixed order:
// email format, password strength, email uniqueness, password confirmation.
func (a *Auth) Signup(ctx context.Context, params model.SignupParams) (model.AuthSession, error) {
	email, err := normalizeEmail(params.Email)
	if err != nil {
		return model.AuthSession{}, err
	}

	a.logger.Debug("Auth service: starting user registration",
		"email", email)

	if err := password.ValidateStrength(params.Password); err != nil {
		var strengthErr *password.StrengthError
		if errors.As(err, &strengthErr) {
			a.logger.Info("Auth service: weak password rejected",
				"email", email,
				"rule", strengthErr.Rule)
			return model.AuthSession{}, apierror.NewErrWeakPassword(string(strengthErr.Rule), strengthErr.Error())
		}
		return model.AuthSession{}, fmt.Errorf("failed to validate password: %w", err)
	}

	_, err = a.userStore.GetByEmail(ctx, email)
	switch {
	case err == nil:
		a.logger.Info("Auth service: user already exists",
			"email", email)
		return model.AuthSession{}, apierror.NewErrEmailIsTaken()
	case !errors.Is(err, model.ErrNotFound):
		a.logger.Error("Auth service: failed to get user by email",
			"email", email,
			"error", err.Error())
		return model.AuthSession{}, fmt.Errorf("failed to get user by email: %w", err)
	}

	if params.ConfirmPassword != nil && *params.ConfirmPassword != params.Password {
		return model.AuthSession{}, apierror.NewErrPasswordMismatch()
	}

	name, err := displayName(email, params.Name)
	if err != nil {
		return model.AuthSession{}, err
	}

	digest, err := a.hasher.Hash(params.Password)
	if err != nil {
		a.logger.Error("Auth service: failed to hash password",
			"email", email,
			"error", err.Error())
		return model.AuthSession{}, fmt.Errorf("failed to hash password: %w", err)
	}

	now := a.now().UTC()
	user, err := a.userStore.Create(ctx, model.User{
		Email:        email,
		PasswordHash: digest,
		Name:         name,
		IsActive:     true,
		CreatedAt:    now,
		UpdatedAt:    now,
	})
	if err != nil {
		if errors.Is(err, model.ErrAlreadyExists) {
			a.logger.Info("Auth service: concurrent registration lost the race",
				"email", email)
			return model.AuthSession{}, apierror.NewErrEmailIsTaken()
		}
		a.logger.Error("Auth service: failed to create user",
			"email", email,
			"error", err.Error())
		return model.AuthSession{}, fmt.Errorf("failed to create user: %w", err)
	}

	session, err := a.issueSession(user)
	if err != nil {
		return model.AuthSession{}, err
	}

	a.logger.Info("Auth service: user registered successfully",
		"email", email,
		"user_id", user.ID)

	return session, nil
}

// Signin verifies credentials and issues a token. Unknown emails and wrong
// passwords fail with the same error after the same amount of hashing work.
func (a *Auth) Signin(ctx context.Context, params model.SigninParams) (model.AuthSession, error) {
	email := strings.ToLower(strings.TrimSpace(params.Email))

	a.logger.Debug("Auth service: starting user login",
		"email", email)

	user, err := a.userStore.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, model.ErrNotFound) {
			a.hasher.VerifyDummy(params.Password)
			a.logger.Info("Auth service: login failed",
				"email", email)
			return model.AuthSession{}, apierror.NewErrInvalidCredentials()
		}
		a.logger.Error("Auth service: failed to get user by email",
			"email", email,
			"error", err.Error())
		return model.AuthSession{}, fmt.Errorf("failed to get user by email: %w", err)
	}

	if !a.hasher.Verify(params.Password, user.PasswordHash) {
		a.logger.Info("Auth service: login failed",
			"email", email)
		return model.AuthSession{}, apierror.NewErrInvalidCredentials()
	}

	if !user.IsActive {
		a.logger.Info("Auth service: inactive account refused",
			"user_id", user.ID)
		return model.AuthSession{}, apierror.NewErrAccountInactive()
	}

	session, err := a.issueSession(user)
	if err != nil {
		return model.AuthSession{}, err
	}

	a.logger.Info("Auth service: user logged in successfully",
		"user_id", user.ID)

	return session, nil
}

func (a *Auth) issueSession(user model.User) (model.AuthSession, error) {
	issued, err := a.tokenManager.Issue(model.TokenClaims{UserID: user.ID, Email: user.Email}, a.tokenTTL)
	if err != nil {
		a.logger.Error("Auth service: failed to issue access token",
			"user_id", user.ID,
			"error", err.Error())
		return model.AuthSession{}, fmt.Errorf("failed to issue access token: %w", err)
	}

	return model.AuthSession{
		User:        user.Public(),
		AccessToken: issued.Token,
		ExpiresAt:   issued.ExpiresAt,
		ExpiresIn:   a.tokenTTL,
	}, nil
}

// normalizeEmail trims and lower-cases email after checking it is a bare address.
func normalizeEmail(email string) (string, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	if email == "" {
		return "", apierror.NewErrValidation("email is required")
	}

	addr, err := mail.ParseAddress(email)
	if err != nil || addr.Address != email || !strings.Contains(email[strings.LastIndex(email, "@")+1:], ".") {
		return "", apierror.NewErrValidation("email %q is not a valid address", email)
	}

	return email, nil
}

// displayName returns the trimmed name, or the local part of email when none is given.
func displayName(email string, name *string) (string, error) {
	if name != nil {
		if trimmed := strings.TrimSpace(*name); trimmed != "" {
			if len([]rune(trimmed)) > userNameMaxLen {
				return "", apierror.NewErrValidation("name must be at most %d characters", userNameMaxLen)
			}
			return trimmed, nil
		}
	}

	local, _, _ := strings.Cut(email, "@")
	return local, nil
}
