package handlers

import (
	"database/sql"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/crucial707/todo-api/internal/middleware"
	"github.com/crucial707/todo-api/internal/repo"
	"github.com/crucial707/todo-api/internal/schemas"
)

// ==========================
// TaskHandler
// ==========================
type TaskHandler struct {
	Repo *repo.TaskRepo
}

// ==========================
// Create Task (under an owned list)
// ==========================
func (h *TaskHandler) Create(w http.ResponseWriter, r *http.Request) {
	user, ok := middleware.GetUser(r.Context())
	if !ok {
		JSONUnauthorized(w, "could not validate credentials")
		return
	}

	listID, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		JSONError(w, "invalid list id", http.StatusBadRequest)
		return
	}

	var input schemas.TaskCreate
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		JSONError(w, "invalid JSON", http.StatusBadRequest)
		return
	}
	if fields := schemas.Check(input); len(fields) > 0 {
		JSONValidationError(w, "validation failed", fields, http.StatusBadRequest)
		return
	}

	task, err := h.Repo.Create(r.Context(), listID, user.ID, input.Name, input.Description, input.Status)
	if err != nil {
		// No row comes back when the list is missing or owned by someone else.
		if errors.Is(err, sql.ErrNoRows) {
			JSONError(w, "list not found", http.StatusNotFound)
			return
		}
		slog.Error("create task", "error", err)
		JSONError(w, ErrMessageInternal, http.StatusInternalServerError)
		return
	}

	JSON(w, schemas.NewTaskOut(task), http.StatusOK)
}

// ==========================
// List Tasks (in an owned list)
// ==========================
func (h *TaskHandler) ListByList(w http.ResponseWriter, r *http.Request) {
	user, ok := middleware.GetUser(r.Context())
	if !ok {
		JSONUnauthorized(w, "could not validate credentials")
		return
	}

	listID, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		JSONError(w, "invalid list id", http.StatusBadRequest)
		return
	}

	tasks, err := h.Repo.ListByList(r.Context(), listID, user.ID)
	if err != nil {
		slog.Error("list tasks", "error", err)
		JSONError(w, ErrMessageInternal, http.StatusInternalServerError)
		return
	}

	out := make([]schemas.TaskOut, 0, len(tasks))
	for i := range tasks {
		out = append(out, schemas.NewTaskOut(&tasks[i]))
	}
	JSON(w, out, http.StatusOK)
}

// ==========================
// Get Task
// ==========================
func (h *TaskHandler) Get(w http.ResponseWriter, r *http.Request) {
	user, ok := middleware.GetUser(r.Context())
	if !ok {
		JSONUnauthorized(w, "could not validate credentials")
		return
	}

	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		JSONError(w, "invalid task id", http.StatusBadRequest)
		return
	}

	task, err := h.Repo.GetByID(r.Context(), id, user.ID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			JSONError(w, "task not found", http.StatusNotFound)
			return
		}
		slog.Error("get task", "error", err)
		JSONError(w, ErrMessageInternal, http.StatusInternalServerError)
		return
	}

	JSON(w, schemas.NewTaskOut(task), http.StatusOK)
}

// ==========================
// Delete Task
// ==========================
func (h *TaskHandler) Delete(w http.ResponseWriter, r *http.Request) {
	user, ok := middleware.GetUser(r.Context())
	if !ok {
		JSONUnauthorized(w, "could not validate credentials")
		return
	}

	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		JSONError(w, "invalid task id", http.StatusBadRequest)
		return
	}

	if err := h.Repo.Delete(r.Context(), id, user.ID); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			JSONError(w, "task not found", http.StatusNotFound)
			return
		}
		slog.Error("delete task", "error", err)
		JSONError(w, ErrMessageInternal, http.StatusInternalServerError)
		return
	}

	JSON(w, schemas.MessageOut{Message: "Task deleted"}, http.StatusOK)
}
