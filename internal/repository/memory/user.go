package memory

import (
	"context"

	"github.com/dtroode/tasktracker-server/internal/model"
)

var _ model.UserStore = (*UserRepository)(nil)

type UserRepository struct {
	s *Store
}

func (r *UserRepository) Create(ctx context.Context, user model.User) (model.User, error) {
	if err := ctx.Err(); err != nil {
		return model.User{}, err
	}

	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if _, ok := r.s.byEmail[user.Email]; ok {
		return model.User{}, model.ErrAlreadyExists
	}

	r.s.nextUserID++
	user.ID = r.s.nextUserID
	r.s.users[user.ID] = user
	r.s.byEmail[user.Email] = user.ID

	return user, nil
}

func (r *UserRepository) GetByID(ctx context.Context, id int64) (model.User, error) {
	if err := ctx.Err(); err != nil {
		return model.User{}, err
	}

	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	user, ok := r.s.users[id]
	if !ok {
		return model.User{}, model.ErrNotFound
	}
	return user, nil
}

func (r *UserRepository) GetByEmail(ctx context.Context, email string) (model.User, error) {
	if err := ctx.Err(); err != nil {
		return model.User{}, err
	}

	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	id, ok := r.s.byEmail[email]
	if !ok {
		return model.User{}, model.ErrNotFound
	}
	return r.s.users[id], nil
}

func (r *UserRepository) Update(ctx context.Context, user model.User) (model.User, error) {
	if err := ctx.Err(); err != nil {
		return model.User{}, err
	}

	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	existing, ok := r.s.users[user.ID]
	if !ok {
		return model.User{}, model.ErrNotFound
	}
	if user.Email != existing.Email {
		if _, taken := r.s.byEmail[user.Email]; taken {
			return model.User{}, model.ErrAlreadyExists
		}
		delete(r.s.byEmail, existing.Email)
		r.s.byEmail[user.Email] = user.ID
	}

	user.CreatedAt = existing.CreatedAt
	r.s.users[user.ID] = user
	return user, nil
}

// Delete removes the user and every task it owns.
func (r *UserRepository) Delete(ctx context.Context, id int64) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	user, ok := r.s.users[id]
	if !ok {
		return model.ErrNotFound
	}

	delete(r.s.users, id)
	delete(r.s.byEmail, user.Email)
	for taskID, task := range r.s.tasks {
		if task.UserID == id {
			delete(r.s.tasks, taskID)
		}
	}
	return nil
}
