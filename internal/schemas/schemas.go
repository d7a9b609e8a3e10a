// Package schemas declares the request and response shapes of the API,
// separate from the persistence models. Output shapes never carry the
// password hash; it is excluded by construction, not by tagging.
package schemas

import (
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"

	"github.com/crucial707/todo-api/internal/models"
)

var validate = validator.New()

// ==========================
// Requests
// ==========================

type UserCreate struct {
	Login    string `json:"login" validate:"required,min=1,max=255"`
	Password string `json:"password" validate:"required,min=6,max=72"`
}

type TodoListCreate struct {
	Name string `json:"name" validate:"required,min=1,max=255"`
}

type TaskCreate struct {
	Name        string  `json:"name" validate:"required,min=1,max=255"`
	Description *string `json:"description" validate:"omitempty,max=1000"`
	Status      *string `json:"status" validate:"omitempty,max=255"`
}

// ==========================
// Responses
// ==========================

type UserOut struct {
	ID        uuid.UUID `json:"id"`
	Login     string    `json:"login"`
	CreatedAt time.Time `json:"created_at"`
}

func NewUserOut(u *models.User) UserOut {
	return UserOut{ID: u.ID, Login: u.Login, CreatedAt: u.CreatedAt}
}

type TokenOut struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
}

type TodoListOut struct {
	ID        uuid.UUID `json:"id"`
	Name      string    `json:"name"`
	CreatedAt time.Time `json:"created_at"`
}

func NewTodoListOut(l *models.TodoList) TodoListOut {
	return TodoListOut{ID: l.ID, Name: l.Name, CreatedAt: l.CreatedAt}
}

type TaskOut struct {
	ID          uuid.UUID `json:"id"`
	TodoListID  uuid.UUID `json:"todo_list_id"`
	Name        string    `json:"name"`
	Description *string   `json:"description"`
	Status      *string   `json:"status"`
	CreatedAt   time.Time `json:"created_at"`
}

func NewTaskOut(t *models.Task) TaskOut {
	return TaskOut{
		ID:          t.ID,
		TodoListID:  t.TodoListID,
		Name:        t.Name,
		Description: t.Description,
		Status:      t.Status,
		CreatedAt:   t.CreatedAt,
	}
}

type MessageOut struct {
	Message string `json:"message"`
}

// ==========================
// Validation
// ==========================

// Check validates a request shape and returns field-level problems keyed by
// the JSON field name. An empty map means the shape is valid.
func Check(v interface{}) map[string]string {
	err := validate.Struct(v)
	if err == nil {
		return nil
	}

	fields := make(map[string]string)
	verrs, ok := err.(validator.ValidationErrors)
	if !ok {
		fields["body"] = err.Error()
		return fields
	}
	for _, fe := range verrs {
		fields[jsonName(fe.Field())] = ruleMessage(fe)
	}
	return fields
}

func jsonName(field string) string {
	switch field {
	case "Login":
		return "login"
	case "Password":
		return "password"
	case "Name":
		return "name"
	case "Description":
		return "description"
	case "Status":
		return "status"
	}
	return field
}

func ruleMessage(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "required"
	case "min":
		return "must be at least " + fe.Param() + " characters"
	case "max":
		return "must be at most " + fe.Param() + " characters"
	}
	return "invalid value"
}
