package service

import (
	"bytes"
	"context"
	"encoding/csv"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/dtroode/tasktracker-server/internal/apierror"
	"github.com/dtroode/tasktracker-server/internal/logger"
	"github.com/dtroode/tasktracker-server/internal/model"
	"github.com/dtroode/tasktracker-server/internal/ownership"
)

// Task runs every task operation on behalf of an authenticated actor.
//
// Each method takes actorID, the user from the token, and ownerID, the user
// the request names (path or alias). The two must match before the store is
// touched, and a task loaded by id must belong to actorID before it is
// returned or changed.
type Task struct {
	taskStore         model.TaskStore
	storage           model.Storage
	descriptionMaxLen int
	logger            *logger.Logger
	now               func() time.Time
}

// NewTask creates a task service. storage may be nil, which disables export archiving.
func NewTask(taskStore model.TaskStore, storage model.Storage, descriptionMaxLen int, logger *logger.Logger) *Task {
	if descriptionMaxLen <= 0 {
		descriptionMaxLen = model.DefaultTaskDescriptionMaxLen
	}
	return &Task{
		taskStore:         taskStore,
		storage:           storage,
		descriptionMaxLen: descriptionMaxLen,
		logger:            logger,
		now:               time.Now,
	}
}

func (s *Task) Create(ctx context.Context, actorID, ownerID int64, params model.CreateTaskParams) (model.Task, error) {
	if err := s.requireOwner(actorID, ownerID); err != nil {
		return model.Task{}, err
	}
	if params.UserID != nil {
		if err := ownership.RequireSameUser(actorID, *params.UserID); err != nil {
			s.logger.Warn("Task service: body owner does not match token",
				"user_id", actorID,
				"body_user_id", *params.UserID)
			return model.Task{}, err
		}
	}

	title, err := s.validateTitle(params.Title)
	if err != nil {
		return model.Task{}, err
	}
	description := ""
	if params.Description != nil {
		if description, err = s.validateDescription(*params.Description); err != nil {
			return model.Task{}, err
		}
	}

	now := s.now().UTC()
	task, err := s.taskStore.Create(ctx, model.Task{
		UserID:      actorID,
		Title:       title,
		Description: description,
		Completed:   params.Completed,
		CreatedAt:   now,
		UpdatedAt:   now,
	})
	if err != nil {
		if errors.Is(err, model.ErrNotFound) {
			return model.Task{}, apierror.NewErrUserNoLongerExists()
		}
		s.logger.Error("Task service: failed to create task",
			"user_id", actorID,
			"error", err.Error())
		return model.Task{}, fmt.Errorf("failed to create task: %w", err)
	}

	s.logger.Info("Task service: task created",
		"user_id", actorID,
		"task_id", task.ID)

	return task, nil
}

func (s *Task) List(ctx context.Context, actorID, ownerID int64, filter model.TaskFilter) ([]model.Task, error) {
	if err := s.requireOwner(actorID, ownerID); err != nil {
		return nil, err
	}

	tasks, err := s.taskStore.ListByOwner(ctx, actorID, filter)
	if err != nil {
		s.logger.Error("Task service: failed to list tasks",
			"user_id", actorID,
			"error", err.Error())
		return nil, fmt.Errorf("failed to list tasks: %w", err)
	}

	return tasks, nil
}

func (s *Task) Get(ctx context.Context, actorID, ownerID, taskID int64) (model.Task, error) {
	if err := s.requireOwner(actorID, ownerID); err != nil {
		return model.Task{}, err
	}
	return s.load(ctx, actorID, taskID)
}

// Update applies the non-nil fields of params. The owner is never changed.
func (s *Task) Update(ctx context.Context, actorID, ownerID, taskID int64, params model.UpdateTaskParams) (model.Task, error) {
	if err := s.requireOwner(actorID, ownerID); err != nil {
		return model.Task{}, err
	}

	task, err := s.load(ctx, actorID, taskID)
	if err != nil {
		return model.Task{}, err
	}

	if params.Title != nil {
		if task.Title, err = s.validateTitle(*params.Title); err != nil {
			return model.Task{}, err
		}
	}
	if params.Description != nil {
		if task.Description, err = s.validateDescription(*params.Description); err != nil {
			return model.Task{}, err
		}
	}
	if params.Completed != nil {
		task.Completed = *params.Completed
	}

	return s.save(ctx, actorID, task)
}

// ToggleCompletion flips the completed flag of a task.
func (s *Task) ToggleCompletion(ctx context.Context, actorID, ownerID, taskID int64) (model.Task, error) {
	if err := s.requireOwner(actorID, ownerID); err != nil {
		return model.Task{}, err
	}

	task, err := s.load(ctx, actorID, taskID)
	if err != nil {
		return model.Task{}, err
	}
	task.Completed = !task.Completed

	return s.save(ctx, actorID, task)
}

func (s *Task) Delete(ctx context.Context, actorID, ownerID, taskID int64) error {
	if err := s.requireOwner(actorID, ownerID); err != nil {
		return err
	}

	if _, err := s.load(ctx, actorID, taskID); err != nil {
		return err
	}

	if err := s.taskStore.Delete(ctx, taskID, actorID); err != nil {
		if errors.Is(err, model.ErrNotFound) {
			return apierror.NewErrTaskNotFound()
		}
		s.logger.Error("Task service: failed to delete task",
			"user_id", actorID,
			"task_id", taskID,
			"error", err.Error())
		return fmt.Errorf("failed to delete task: %w", err)
	}

	s.logger.Info("Task service: task deleted",
		"user_id", actorID,
		"task_id", taskID)

	return nil
}

// Export renders all tasks of the actor as JSON or CSV. When archiving is
// enabled a copy is uploaded; a failed upload is logged and the export is
// still returned without an archive key.
func (s *Task) Export(ctx context.Context, actorID, ownerID int64, format model.ExportFormat) (model.TaskExport, error) {
	if err := s.requireOwner(actorID, ownerID); err != nil {
		return model.TaskExport{}, err
	}

	if format == "" {
		format = model.ExportJSON
	}

	tasks, err := s.taskStore.ListByOwner(ctx, actorID, model.TaskFilter{
		Status: model.TaskStatusAll,
		Sort:   model.TaskSortCreatedAt,
		Order:  model.SortAsc,
	})
	if err != nil {
		s.logger.Error("Task service: failed to list tasks for export",
			"user_id", actorID,
			"error", err.Error())
		return model.TaskExport{}, fmt.Errorf("failed to list tasks: %w", err)
	}

	export := model.TaskExport{Format: format}
	switch format {
	case model.ExportJSON:
		export.ContentType = "application/json"
		export.Content, err = json.Marshal(tasks)
	case model.ExportCSV:
		export.ContentType = "text/csv"
		export.Content, err = renderCSV(tasks)
	default:
		return model.TaskExport{}, apierror.NewErrValidation("invalid format %q: must be json or csv", format)
	}
	if err != nil {
		return model.TaskExport{}, fmt.Errorf("failed to render %s export: %w", format, err)
	}

	if s.storage != nil {
		key := fmt.Sprintf("exports/%d/%s.%s", actorID, s.now().UTC().Format("20060102T150405Z"), format)
		err := s.storage.Upload(ctx, key, bytes.NewReader(export.Content), int64(len(export.Content)), export.ContentType)
		if err != nil {
			s.logger.Warn("Task service: failed to archive export",
				"user_id", actorID,
				"key", key,
				"error", err.Error())
		} else {
			export.ArchiveKey = key
		}
	}

	s.logger.Info("Task service: tasks exported",
		"user_id", actorID,
		"format", format,
		"count", len(tasks))

	return export, nil
}

func (s *Task) requireOwner(actorID, ownerID int64) error {
	if err := ownership.RequireSameUser(actorID, ownerID); err != nil {
		s.logger.Warn("Task service: path owner does not match token",
			"user_id", actorID,
			"path_user_id", ownerID)
		return err
	}
	return nil
}

// load fetches a task and hides it unless it belongs to actorID.
func (s *Task) load(ctx context.Context, actorID, taskID int64) (model.Task, error) {
	task, err := s.taskStore.GetByID(ctx, taskID)
	if err != nil {
		if errors.Is(err, model.ErrNotFound) {
			return model.Task{}, apierror.NewErrTaskNotFound()
		}
		s.logger.Error("Task service: failed to get task",
			"user_id", actorID,
			"task_id", taskID,
			"error", err.Error())
		return model.Task{}, fmt.Errorf("failed to get task: %w", err)
	}

	if err := ownership.RequireTaskOwner(actorID, task); err != nil {
		s.logger.Warn("Task service: task belongs to another user",
			"user_id", actorID,
			"task_id", taskID)
		return model.Task{}, err
	}

	return task, nil
}

func (s *Task) save(ctx context.Context, actorID int64, task model.Task) (model.Task, error) {
	task.UserID = actorID
	task.UpdatedAt = s.now().UTC()

	saved, err := s.taskStore.Update(ctx, task)
	if err != nil {
		if errors.Is(err, model.ErrNotFound) {
			return model.Task{}, apierror.NewErrTaskNotFound()
		}
		s.logger.Error("Task service: failed to update task",
			"user_id", actorID,
			"task_id", task.ID,
			"error", err.Error())
		return model.Task{}, fmt.Errorf("failed to update task: %w", err)
	}

	s.logger.Info("Task service: task updated",
		"user_id", actorID,
		"task_id", task.ID)

	return saved, nil
}

func (s *Task) validateTitle(title string) (string, error) {
	title = strings.TrimSpace(title)
	n := len([]rune(title))
	if n < 1 || n > model.TaskTitleMaxLen {
		return "", apierror.NewErrValidation("title must be between 1 and %d characters", model.TaskTitleMaxLen)
	}
	return title, nil
}

func (s *Task) validateDescription(description string) (string, error) {
	if len([]rune(description)) > s.descriptionMaxLen {
		return "", apierror.NewErrValidation("description must be at most %d characters", s.descriptionMaxLen)
	}
	return description, nil
}

func renderCSV(tasks []model.Task) ([]byte, error) {
	var buf bytes.Buffer
	w := csv.NewWriter(&buf)

	if err := w.Write([]string{"id", "title", "description", "completed", "created_at", "updated_at"}); err != nil {
		return nil, err
	}
	for _, t := range tasks {
		record := []string{
			strconv.FormatInt(t.ID, 10),
			t.Title,
			t.Description,
			strconv.FormatBool(t.Completed),
			t.CreatedAt.UTC().Format(time.RFC3339),
			t.UpdatedAt.UTC().Format(time.RFC3339),
		}
		if err := w.Write(record); err != nil {
			return nil, err
		}
	}
	w.Flush()

	return buf.Bytes(), w.Error()
}
