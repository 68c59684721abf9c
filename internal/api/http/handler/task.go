package handler

import (
	"fmt"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/dtroode/tasktracker-server/internal/api/http/response"
	"github.com/dtroode/tasktracker-server/internal/apierror"
	"github.com/dtroode/tasktracker-server/internal/logger"
	"github.com/dtroode/tasktracker-server/internal/model"
)

type createTaskRequest struct {
	UserID      *int64  `json:"user_id"`
	Title       string  `json:"title"`
	Description *string `json:"description"`
	Completed   bool    `json:"completed"`
}

// updateTaskRequest has no owner field: a user_id in the body is dropped.
type updateTaskRequest struct {
	Title       *string `json:"title"`
	Description *string `json:"description"`
	Completed   *bool   `json:"completed"`
}

// Task handles HTTP endpoints for tasks. Routes either name the owner with a
// {user_id} segment or omit it, in which case the owner is the caller.
type Task struct {
	taskService    TaskService
	contextManager model.ContextManager
	logger         *logger.Logger
}

// NewTask creates a new Task handler.
func NewTask(taskService TaskService, contextManager model.ContextManager, logger *logger.Logger) *Task {
	return &Task{taskService: taskService, contextManager: contextManager, logger: logger}
}

// Create adds a task for the owner and answers 201.
func (h *Task) Create(w http.ResponseWriter, r *http.Request) {
	actorID, ownerID, err := h.identity(r)
	if err != nil {
		handleError(w, r, h.logger, err)
		return
	}

	var req createTaskRequest
	if err := decodeJSON(w, r, &req); err != nil {
		handleError(w, r, h.logger, err)
		return
	}

	task, err := h.taskService.Create(r.Context(), actorID, ownerID, model.CreateTaskParams{
		UserID:      req.UserID,
		Title:       req.Title,
		Description: req.Description,
		Completed:   req.Completed,
	})
	if err != nil {
		handleError(w, r, h.logger, err)
		return
	}

	response.JSON(w, http.StatusCreated, task)
}

// List returns the owner's tasks filtered by the status, sort and order
// query parameters.
func (h *Task) List(w http.ResponseWriter, r *http.Request) {
	actorID, ownerID, err := h.identity(r)
	if err != nil {
		handleError(w, r, h.logger, err)
		return
	}

	q := r.URL.Query()
	filter, err := model.ParseTaskFilter(q.Get("status"), q.Get("sort"), q.Get("order"))
	if err != nil {
		handleError(w, r, h.logger, apierror.NewErrValidation("%s", err.Error()))
		return
	}

	tasks, err := h.taskService.List(r.Context(), actorID, ownerID, filter)
	if err != nil {
		handleError(w, r, h.logger, err)
		return
	}
	if tasks == nil {
		tasks = []model.Task{}
	}

	response.JSON(w, http.StatusOK, tasks)
}

// Get returns one task.
func (h *Task) Get(w http.ResponseWriter, r *http.Request) {
	actorID, ownerID, taskID, err := h.taskIdentity(r)
	if err != nil {
		handleError(w, r, h.logger, err)
		return
	}

	task, err := h.taskService.Get(r.Context(), actorID, ownerID, taskID)
	if err != nil {
		handleError(w, r, h.logger, err)
		return
	}

	response.JSON(w, http.StatusOK, task)
}

// Update applies the fields present in the body.
func (h *Task) Update(w http.ResponseWriter, r *http.Request) {
	actorID, ownerID, taskID, err := h.taskIdentity(r)
	if err != nil {
		handleError(w, r, h.logger, err)
		return
	}

	var req updateTaskRequest
	if err := decodeJSON(w, r, &req); err != nil {
		handleError(w, r, h.logger, err)
		return
	}

	task, err := h.taskService.Update(r.Context(), actorID, ownerID, taskID, model.UpdateTaskParams{
		Title:       req.Title,
		Description: req.Description,
		Completed:   req.Completed,
	})
	if err != nil {
		handleError(w, r, h.logger, err)
		return
	}

	response.JSON(w, http.StatusOK, task)
}

// ToggleCompletion flips the completed flag.
func (h *Task) ToggleCompletion(w http.ResponseWriter, r *http.Request) {
	actorID, ownerID, taskID, err := h.taskIdentity(r)
	if err != nil {
		handleError(w, r, h.logger, err)
		return
	}

	task, err := h.taskService.ToggleCompletion(r.Context(), actorID, ownerID, taskID)
	if err != nil {
		handleError(w, r, h.logger, err)
		return
	}

	response.JSON(w, http.StatusOK, task)
}

// Delete removes a task and answers 204.
func (h *Task) Delete(w http.ResponseWriter, r *http.Request) {
	actorID, ownerID, taskID, err := h.taskIdentity(r)
	if err != nil {
		handleError(w, r, h.logger, err)
		return
	}

	if err := h.taskService.Delete(r.Context(), actorID, ownerID, taskID); err != nil {
		handleError(w, r, h.logger, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// Export downloads all of the owner's tasks as JSON or CSV.
func (h *Task) Export(w http.ResponseWriter, r *http.Request) {
	actorID, ownerID, err := h.identity(r)
	if err != nil {
		handleError(w, r, h.logger, err)
		return
	}

	export, err := h.taskService.Export(r.Context(), actorID, ownerID, model.ExportFormat(r.URL.Query().Get("format")))
	if err != nil {
		handleError(w, r, h.logger, err)
		return
	}

	w.Header().Set("Content-Type", export.ContentType)
	w.Header().Set("Content-Disposition", fmt.Sprintf(`attachment; filename="tasks.%s"`, export.Format))
	w.Header().Set("Content-Length", strconv.Itoa(len(export.Content)))
	if export.ArchiveKey != "" {
		w.Header().Set("X-Export-Key", export.ArchiveKey)
	}
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write(export.Content); err != nil {
		h.logger.Warn("Task handler: failed to write export",
			"user_id", actorID,
			"error", err.Error())
	}
}

// identity returns the caller and the owner named by the route.
func (h *Task) identity(r *http.Request) (actorID, ownerID int64, err error) {
	data, err := actor(r, h.contextManager)
	if err != nil {
		return 0, 0, err
	}

	if chi.URLParam(r, "user_id") == "" {
		return data.UserID, data.UserID, nil
	}

	ownerID, err = pathID(r, "user_id")
	if err != nil {
		return 0, 0, err
	}
	return data.UserID, ownerID, nil
}

func (h *Task) taskIdentity(r *http.Request) (actorID, ownerID, taskID int64, err error) {
	actorID, ownerID, err = h.identity(r)
	if err != nil {
		return 0, 0, 0, err
	}

	taskID, err = pathID(r, "task_id")
	if err != nil {
		return 0, 0, 0, err
	}
	return actorID, ownerID, taskID, nil
}
