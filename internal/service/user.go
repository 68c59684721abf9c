package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/dtroode/tasktracker-server/internal/apierror"
	"github.com/dtroode/tasktracker-server/internal/logger"
	"github.com/dtroode/tasktracker-server/internal/model"
	"github.com/dtroode/tasktracker-server/internal/ownership"
)

type User struct {
	userStore model.UserStore
	logger    *logger.Logger
}

func NewUser(userStore model.UserStore, logger *logger.Logger) *User {
	return &User{
		userStore: userStore,
		logger:    logger,
	}
}

// Me returns the authenticated user. A token whose user has since been
// deleted is an authentication failure.
func (s *User) Me(ctx context.Context, userID int64) (model.PublicUser, error) {
	user, err := s.userStore.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, model.ErrNotFound) {
			s.logger.Info("User service: token refers to a missing user",
				"user_id", userID)
			return model.PublicUser{}, apierror.NewErrUserNoLongerExists()
		}
		s.logger.Error("User service: failed to get user by id",
			"user_id", userID,
			"error", err.Error())
		return model.PublicUser{}, fmt.Errorf("failed to get user by id: %w", err)
	}

	return user.Public(), nil
}

// Delete removes the account targetID on behalf of actorID. Users may only
// delete themselves; their tasks are removed with them.
func (s *User) Delete(ctx context.Context, actorID, targetID int64) error {
	if err := ownership.RequireSameUser(actorID, targetID); err != nil {
		s.logger.Warn("User service: account deletion denied",
			"user_id", actorID,
			"target_user_id", targetID)
		return err
	}

	if err := s.userStore.Delete(ctx, targetID); err != nil {
		if errors.Is(err, model.ErrNotFound) {
			return apierror.NewErrUserNotFound()
		}
		s.logger.Error("User service: failed to delete user",
			"user_id", targetID,
			"error", err.Error())
		return fmt.Errorf("failed to delete user: %w", err)
	}

	s.logger.Info("User service: account deleted",
		"user_id", targetID)

	return nil
}
