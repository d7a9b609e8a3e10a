package models

import (
	"time"

	"github.com/google/uuid"
)

// Task status is free text; the API does not enumerate states.
type Task struct {
	ID          uuid.UUID `json:"id"`
	TodoListID  uuid.UUID `json:"todo_list_id"`
	Name        string    `json:"name"`
	Description *string   `json:"description"`
	Status      *string   `json:"status"`
	CreatedAt   time.Time `json:"created_at"`
}
