// Package memory is an in-process implementation of the user and task stores.
// It enforces the same constraints as the relational schema: unique email,
// task owner must exist, and deleting a user deletes its tasks.
package memory

import (
	"context"
	"sync"

	"github.com/dtroode/tasktracker-server/internal/model"
)

var _ model.Pinger = (*Store)(nil)

// Store holds users and tasks behind one lock.
type Store struct {
	mu sync.RWMutex

	users   map[int64]model.User
	byEmail map[string]int64
	tasks   map[int64]model.Task

	nextUserID int64
	nextTaskID int64
}

func NewStore() *Store {
	return &Store{
		users:   make(map[int64]model.User),
		byEmail: make(map[string]int64),
		tasks:   make(map[int64]model.Task),
	}
}

// Users returns the UserStore view of s.
func (s *Store) Users() *UserRepository {
	return &UserRepository{s: s}
}

// Tasks returns the TaskStore view of s.
func (s *Store) Tasks() *TaskRepository {
	return &TaskRepository{s: s}
}

// Ping always succeeds unless ctx is done.
func (s *Store) Ping(ctx context.Context) error {
	return ctx.Err()
}
