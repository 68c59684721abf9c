package handler

import (
	"context"

	"github.com/dtroode/tasktracker-server/internal/model"
)

// AuthService defines user registration and login operations.
type AuthService interface {
	Signup(ctx context.Context, params model.SignupParams) (model.AuthSession, error)
	Signin(ctx context.Context, params model.SigninParams) (model.AuthSession, error)
}

// UserService defines operations on the authenticated user's account.
type UserService interface {
	Me(ctx context.Context, userID int64) (model.PublicUser, error)
	Delete(ctx context.Context, actorID, targetID int64) error
}

// TaskService defines per-owner task operations. actorID is the authenticated
// user and ownerID the user named by the route.
type TaskService interface {
	Create(ctx context.Context, actorID, ownerID int64, params model.CreateTaskParams) (model.Task, error)
	List(ctx context.Context, actorID, ownerID int64, filter model.TaskFilter) ([]model.Task, error)
	Get(ctx context.Context, actorID, ownerID, taskID int64) (model.Task, error)
	Update(ctx context.Context, actorID, ownerID, taskID int64, params model.UpdateTaskParams) (model.Task, error)
	ToggleCompletion(ctx context.Context, actorID, ownerID, taskID int64) (model.Task, error)
	Delete(ctx context.Context, actorID, ownerID, taskID int64) error
	Export(ctx context.Context, actorID, ownerID int64, format model.ExportFormat) (model.TaskExport, error)
}
