package handlers

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/lib/pq"

	"github.com/crucial707/todo-api/internal/auth"
	"github.com/crucial707/todo-api/internal/metrics"
	"github.com/crucial707/todo-api/internal/middleware"
	"github.com/crucial707/todo-api/internal/repo"
	"github.com/crucial707/todo-api/internal/schemas"
)

// pqUniqueViolation is the Postgres error code for a unique constraint violation.
const pqUniqueViolation = "23505"

// ==========================
// UserHandler
// ==========================
type UserHandler struct {
	Repo   *repo.UserRepo
	Tokens *auth.TokenIssuer
}

// ==========================
// Register (password stored as bcrypt hash, never plaintext)
// ==========================
func (h *UserHandler) Register(w http.ResponseWriter, r *http.Request) {
	var input schemas.UserCreate

	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		JSONError(w, "invalid JSON", http.StatusBadRequest)
		return
	}
	if fields := schemas.Check(input); len(fields) > 0 {
		JSONValidationError(w, "validation failed", fields, http.StatusBadRequest)
		return
	}

	hash, err := auth.HashPassword(input.Password)
	if err != nil {
		slog.Error("register: hash password", "error", err)
		JSONError(w, ErrMessageInternal, http.StatusInternalServerError)
		return
	}

	user, err := h.Repo.Create(r.Context(), input.Login, hash)
	if err != nil {
		if e, ok := err.(*pq.Error); ok && e.Code == pqUniqueViolation {
			JSONError(w, "login already taken", http.StatusBadRequest)
			return
		}
		slog.Error("register: create user", "error", err)
		JSONError(w, ErrMessageInternal, http.StatusInternalServerError)
		return
	}

	JSON(w, schemas.NewUserOut(user), http.StatusOK)
}

// ==========================
// Login (OAuth2-style form body: username + password)
// ==========================
func (h *UserHandler) Login(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		JSONError(w, "invalid form body", http.StatusBadRequest)
		return
	}
	username := r.PostFormValue("username")
	password := r.PostFormValue("password")
	if username == "" || password == "" {
		fields := make(map[string]string)
		if username == "" {
			fields["username"] = "required"
		}
		if password == "" {
			fields["password"] = "required"
		}
		JSONValidationError(w, "validation failed", fields, http.StatusBadRequest)
		return
	}

	user, err := h.Repo.GetByLogin(r.Context(), username)
	if err != nil || !auth.VerifyPassword(password, user.PasswordHash) {
		metrics.IncAuthFailure("credentials")
		JSONUnauthorized(w, "incorrect username or password")
		return
	}

	token, err := h.Tokens.Issue(user.Login)
	if err != nil {
		slog.Error("login: issue token", "error", err)
		JSONError(w, ErrMessageInternal, http.StatusInternalServerError)
		return
	}

	JSON(w, schemas.TokenOut{AccessToken: token, TokenType: "bearer"}, http.StatusOK)
}

// ==========================
// Me
// ==========================
func (h *UserHandler) Me(w http.ResponseWriter, r *http.Request) {
	user, ok := middleware.GetUser(r.Context())
	if !ok {
		JSONUnauthorized(w, "could not validate credentials")
		return
	}

	JSON(w, schemas.NewUserOut(user), http.StatusOK)
}

// ==========================
// Delete Me
// ==========================
// Outstanding tokens for this login keep a valid signature until expiry, but
// the subject lookup in the auth middleware rejects them once the row is gone.
func (h *UserHandler) DeleteMe(w http.ResponseWriter, r *http.Request) {
	user, ok := middleware.GetUser(r.Context())
	if !ok {
		JSONUnauthorized(w, "could not validate credentials")
		return
	}

	if err := h.Repo.Delete(r.Context(), user.ID); err != nil {
		slog.Error("delete me", "error", err)
		JSONError(w, ErrMessageInternal, http.StatusInternalServerError)
		return
	}

	JSON(w, schemas.MessageOut{Message: "Account deleted"}, http.StatusOK)
}
