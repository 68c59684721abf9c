package model

import (
	"context"
	"fmt"
	"time"
)

// TaskStore defines persistence operations for tasks.
//
// Update and Delete are scoped by owner: a row whose owner differs from the
// given one is reported as ErrNotFound.
type TaskStore interface {
	Create(ctx context.Context, task Task) (Task, error)
	GetByID(ctx context.Context, id int64) (Task, error)
	ListByOwner(ctx context.Context, ownerID int64, filter TaskFilter) ([]Task, error)
	Update(ctx context.Context, task Task) (Task, error)
	Delete(ctx context.Context, id int64, ownerID int64) error
}

// Task is a single to-do item owned by exactly one user.
type Task struct {
	ID          int64     `json:"id"`
	UserID      int64     `json:"user_id"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	Completed   bool      `json:"completed"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

const (
	// TaskTitleMaxLen is the maximum title length in characters.
	TaskTitleMaxLen = 255
	// DefaultTaskDescriptionMaxLen is the default description bound in characters.
	DefaultTaskDescriptionMaxLen = 1000
)

// CreateTaskParams contains parameters to create a task.
// UserID is the owner named in the request body, if any.
type CreateTaskParams struct {
	UserID      *int64
	Title       string
	Description *string
	Completed   bool
}

// UpdateTaskParams contains the mutable task fields. Nil fields are left unchanged.
// There is deliberately no owner field.
type UpdateTaskParams struct {
	Title       *string
	Description *string
	Completed   *bool
}

// TaskStatus filters tasks by completion.
type TaskStatus string

const (
	TaskStatusAll       TaskStatus = "all"
	TaskStatusPending   TaskStatus = "pending"
	TaskStatusCompleted TaskStatus = "completed"
)

// TaskSort names the column a task list is ordered by.
type TaskSort string

const (
	TaskSortCreatedAt TaskSort = "created_at"
	TaskSortUpdatedAt TaskSort = "updated_at"
	TaskSortTitle     TaskSort = "title"
)

// SortOrder is the direction of a task list.
type SortOrder string

const (
	SortAsc  SortOrder = "asc"
	SortDesc SortOrder = "desc"
)

// TaskFilter narrows and orders a task list.
type TaskFilter struct {
	Status TaskStatus
	Sort   TaskSort
	Order  SortOrder
}

// DefaultTaskFilter lists every task, newest first.
func DefaultTaskFilter() TaskFilter {
	return TaskFilter{Status: TaskStatusAll, Sort: TaskSortCreatedAt, Order: SortDesc}
}

// ParseTaskFilter builds a TaskFilter from raw query values. Empty values take defaults.
func ParseTaskFilter(status, sort, order string) (TaskFilter, error) {
	f := DefaultTaskFilter()

	switch TaskStatus(status) {
	case "":
	case TaskStatusAll, TaskStatusPending, TaskStatusCompleted:
		f.Status = TaskStatus(status)
	default:
		return TaskFilter{}, fmt.Errorf("invalid status %q: must be one of all, pending, completed", status)
	}

	switch TaskSort(sort) {
	case "":
	case TaskSortCreatedAt, TaskSortUpdatedAt, TaskSortTitle:
		f.Sort = TaskSort(sort)
	default:
		return TaskFilter{}, fmt.Errorf("invalid sort %q: must be one of created_at, updated_at, title", sort)
	}

	switch SortOrder(order) {
	case "":
	case SortAsc, SortDesc:
		f.Order = SortOrder(order)
	default:
		return TaskFilter{}, fmt.Errorf("invalid order %q: must be asc or desc", order)
	}

	return f, nil
}

// Matches reports whether the task passes the status filter.
func (f TaskFilter) Matches(t Task) bool {
	switch f.Status {
	case TaskStatusPending:
		return !t.Completed
	case TaskStatusCompleted:
		return t.Completed
	default:
		return true
	}
}

// ExportFormat is the encoding of a task export.
type ExportFormat string

const (
	ExportJSON ExportFormat = "json"
	ExportCSV  ExportFormat = "csv"
)

// TaskExport is the rendered export of a user's tasks.
type TaskExport struct {
	Format      ExportFormat
	ContentType string
	Content     []byte
	ArchiveKey  string
}
