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
// TodoListHandler
// ==========================
type TodoListHandler struct {
	Repo *repo.TodoListRepo
}

// ==========================
// Create List
// ==========================
func (h *TodoListHandler) Create(w http.ResponseWriter, r *http.Request) {
	user, ok := middleware.GetUser(r.Context())
	if !ok {
		JSONUnauthorized(w, "could not validate credentials")
		return
	}

	var input schemas.TodoListCreate
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		JSONError(w, "invalid JSON", http.StatusBadRequest)
		return
	}
	if fields := schemas.Check(input); len(fields) > 0 {
		JSONValidationError(w, "validation failed", fields, http.StatusBadRequest)
		return
	}

	list, err := h.Repo.Create(r.Context(), user.ID, input.Name)
	if err != nil {
		slog.Error("create list", "error", err)
		JSONError(w, ErrMessageInternal, http.StatusInternalServerError)
		return
	}

	JSON(w, schemas.NewTodoListOut(list), http.StatusOK)
}

// ==========================
// List Lists (owned only)
// ==========================
func (h *TodoListHandler) List(w http.ResponseWriter, r *http.Request) {
	user, ok := middleware.GetUser(r.Context())
	if !ok {
		JSONUnauthorized(w, "could not validate credentials")
		return
	}

	lists, err := h.Repo.ListByUser(r.Context(), user.ID)
	if err != nil {
		slog.Error("list lists", "error", err)
		JSONError(w, ErrMessageInternal, http.StatusInternalServerError)
		return
	}

	out := make([]schemas.TodoListOut, 0, len(lists))
	for i := range lists {
		out = append(out, schemas.NewTodoListOut(&lists[i]))
	}
	JSON(w, out, http.StatusOK)
}

// ==========================
// Get List
// ==========================
func (h *TodoListHandler) Get(w http.ResponseWriter, r *http.Request) {
	user, ok := middleware.GetUser(r.Context())
	if !ok {
		JSONUnauthorized(w, "could not validate credentials")
		return
	}

	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		JSONError(w, "invalid list id", http.StatusBadRequest)
		return
	}

	list, err := h.Repo.GetByID(r.Context(), id, user.ID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			JSONError(w, "list not found", http.StatusNotFound)
			return
		}
		slog.Error("get list", "error", err)
		JSONError(w, ErrMessageInternal, http.StatusInternalServerError)
		return
	}

	JSON(w, schemas.NewTodoListOut(list), http.StatusOK)
}

// ==========================
// Delete List
// ==========================
// Deleting a missing or non-owned list is a 404, not a silent success.
func (h *TodoListHandler) Delete(w http.ResponseWriter, r *http.Request) {
	user, ok := middleware.GetUser(r.Context())
	if !ok {
		JSONUnauthorized(w, "could not validate credentials")
		return
	}

	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		JSONError(w, "invalid list id", http.StatusBadRequest)
		return
	}

	if err := h.Repo.Delete(r.Context(), id, user.ID); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			JSONError(w, "list not found", http.StatusNotFound)
			return
		}
		slog.Error("delete list", "error", err)
		JSONError(w, ErrMessageInternal, http.StatusInternalServerError)
		return
	}

	JSON(w, schemas.MessageOut{Message: "List deleted"}, http.StatusOK)
}
