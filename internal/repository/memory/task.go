package memory

import (
	"context"
	"sort"
	"strings"

	"github.com/dtroode/tasktracker-server/internal/model"
)

var _ model.TaskStore = (*TaskRepository)(nil)

type TaskRepository struct {
	s *Store
}

// Create inserts a task. An owner that does not exist yields model.ErrNotFound.
func (r *TaskRepository) Create(ctx context.Context, task model.Task) (model.Task, error) {
	if err := ctx.Err(); err != nil {
		return model.Task{}, err
	}

	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if _, ok := r.s.users[task.UserID]; !ok {
		return model.Task{}, model.ErrNotFound
	}

	r.s.nextTaskID++
	task.ID = r.s.nextTaskID
	r.s.tasks[task.ID] = task
	return task, nil
}

func (r *TaskRepository) GetByID(ctx context.Context, id int64) (model.Task, error) {
	if err := ctx.Err(); err != nil {
		return model.Task{}, err
	}

	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	task, ok := r.s.tasks[id]
	if !ok {
		return model.Task{}, model.ErrNotFound
	}
	return task, nil
}

func (r *TaskRepository) ListByOwner(ctx context.Context, ownerID int64, filter model.TaskFilter) ([]model.Task, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	r.s.mu.RLock()
	tasks := make([]model.Task, 0)
	for _, task := range r.s.tasks {
		if task.UserID == ownerID && filter.Matches(task) {
			tasks = append(tasks, task)
		}
	}
	r.s.mu.RUnlock()

	sortTasks(tasks, filter)
	return tasks, nil
}

// Update writes the mutable fields of task, matching only when the stored
// owner equals task.UserID.
func (r *TaskRepository) Update(ctx context.Context, task model.Task) (model.Task, error) {
	if err := ctx.Err(); err != nil {
		return model.Task{}, err
	}

	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	existing, ok := r.s.tasks[task.ID]
	if !ok || existing.UserID != task.UserID {
		return model.Task{}, model.ErrNotFound
	}

	existing.Title = task.Title
	existing.Description = task.Description
	existing.Completed = task.Completed
	existing.UpdatedAt = task.UpdatedAt
	r.s.tasks[task.ID] = existing
	return existing, nil
}

func (r *TaskRepository) Delete(ctx context.Context, id int64, ownerID int64) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	existing, ok := r.s.tasks[id]
	if !ok || existing.UserID != ownerID {
		return model.ErrNotFound
	}
	delete(r.s.tasks, id)
	return nil
}

func sortTasks(tasks []model.Task, filter model.TaskFilter) {
	less := func(a, b model.Task) int {
		switch filter.Sort {
		case model.TaskSortTitle:
			return strings.Compare(a.Title, b.Title)
		case model.TaskSortUpdatedAt:
			return a.UpdatedAt.Compare(b.UpdatedAt)
		default:
			return a.CreatedAt.Compare(b.CreatedAt)
		}
	}

	sort.SliceStable(tasks, func(i, j int) bool {
		c := less(tasks[i], tasks[j])
		if c == 0 {
			c = compareID(tasks[i].ID, tasks[j].ID)
		}
		if filter.Order == model.SortAsc {
			return c < 0
		}
		return c > 0
	})
}

func compareID(a, b int64) int {
	switch {
	case a < b:
		return -1
	case a > b:
		return 1
	}
	return 0
}
