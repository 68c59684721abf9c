package postgres

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"

	"github.com/dtroode/tasktracker-server/internal/model"
)

var _ model.TaskStore = (*TaskRepository)(nil)

const taskColumns = `id, user_id, title, COALESCE(description, ''), completed, created_at, updated_at`

// sortColumns whitelists the columns a list may be ordered by.
var sortColumns = map[model.TaskSort]string{
	model.TaskSortCreatedAt: "created_at",
	model.TaskSortUpdatedAt: "updated_at",
	model.TaskSortTitle:     "title",
}

type TaskRepository struct {
	db *Connection
}

func NewTaskRepository(db *Connection) *TaskRepository {
	return &TaskRepository{
		db: db,
	}
}

func scanTask(row pgx.Row) (model.Task, error) {
	var task model.Task
	err := row.Scan(
		&task.ID, &task.UserID, &task.Title, &task.Description,
		&task.Completed, &task.CreatedAt, &task.UpdatedAt,
	)
	return task, err
}

// Create inserts a task. An owner that does not exist yields model.ErrNotFound.
func (r *TaskRepository) Create(ctx context.Context, task model.Task) (model.Task, error) {
	query := `INSERT INTO tasks (user_id, title, description, completed, created_at, updated_at)
			  VALUES ($1, $2, NULLIF($3, ''), $4, $5, $6)
			  RETURNING ` + taskColumns

	saved, err := scanTask(r.db.QueryRow(ctx, query,
		task.UserID, task.Title, task.Description, task.Completed, task.CreatedAt, task.UpdatedAt,
	))
	if err != nil {
		if mapped := mapConstraintError(err); errors.Is(mapped, model.ErrNotFound) {
			return model.Task{}, mapped
		}
		return model.Task{}, fmt.Errorf("failed to create task: %w", err)
	}

	return saved, nil
}

func (r *TaskRepository) GetByID(ctx context.Context, id int64) (model.Task, error) {
	query := `SELECT ` + taskColumns + ` FROM tasks WHERE id = $1`

	task, err := scanTask(r.db.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return model.Task{}, model.ErrNotFound
		}
		return model.Task{}, fmt.Errorf("failed to get task by id: %w", err)
	}

	return task, nil
}

func (r *TaskRepository) ListByOwner(ctx context.Context, ownerID int64, filter model.TaskFilter) ([]model.Task, error) {
	query, args := buildListQuery(ownerID, filter)

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list tasks: %w", err)
	}
	defer rows.Close()

	tasks := make([]model.Task, 0)
	for rows.Next() {
		task, err := scanTask(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan task: %w", err)
		}
		tasks = append(tasks, task)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate tasks: %w", err)
	}

	return tasks, nil
}

// Update writes the mutable fields of task. The owner column is never written
// and only matches the row when it equals task.UserID.
func (r *TaskRepository) Update(ctx context.Context, task model.Task) (model.Task, error) {
	query := `UPDATE tasks
			  SET title = $3, description = NULLIF($4, ''), completed = $5, updated_at = $6
			  WHERE id = $1 AND user_id = $2
			  RETURNING ` + taskColumns

	saved, err := scanTask(r.db.QueryRow(ctx, query,
		task.ID, task.UserID, task.Title, task.Description, task.Completed, task.UpdatedAt,
	))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return model.Task{}, model.ErrNotFound
		}
		return model.Task{}, fmt.Errorf("failed to update task: %w", err)
	}

	return saved, nil
}

func (r *TaskRepository) Delete(ctx context.Context, id int64, ownerID int64) error {
	tag, err := r.db.Exec(ctx, `DELETE FROM tasks WHERE id = $1 AND user_id = $2`, id, ownerID)
	if err != nil {
		return fmt.Errorf("failed to delete task: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return model.ErrNotFound
	}
	return nil
}

func buildListQuery(ownerID int64, filter model.TaskFilter) (string, []any) {
	var b strings.Builder
	b.WriteString(`SELECT ` + taskColumns + ` FROM tasks WHERE user_id = $1`)

	switch filter.Status {
	case model.TaskStatusPending:
		b.WriteString(` AND completed = FALSE`)
	case model.TaskStatusCompleted:
		b.WriteString(` AND completed = TRUE`)
	}

	column, ok := sortColumns[filter.Sort]
	if !ok {
		column = sortColumns[model.TaskSortCreatedAt]
	}
	direction := "DESC"
	if filter.Order == model.SortAsc {
		direction = "ASC"
	}
	fmt.Fprintf(&b, ` ORDER BY %s %s, id %s`, column, direction, direction)

	return b.String(), []any{ownerID}
}
