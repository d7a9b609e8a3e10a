package repo

import (
	"context"
	"database/sql"

	"github.com/google/uuid"

	"github.com/crucial707/todo-api/internal/models"
)

// ==========================
// TaskRepo
// ==========================
// Tasks are reachable only through the ownership chain
// tasks -> todo_lists -> users; every statement joins through it.
type TaskRepo struct {
	DB *sql.DB
}

// ==========================
// Constructor
// ==========================
func NewTaskRepo(db *sql.DB) *TaskRepo {
	return &TaskRepo{DB: db}
}

// ==========================
// Create Task
// ==========================
// The INSERT selects from todo_lists so a task can only land in a list the
// acting user owns; otherwise no row is inserted and sql.ErrNoRows surfaces.
func (r *TaskRepo) Create(ctx context.Context, listID, userID uuid.UUID, name string, description, status *string) (*models.Task, error) {
	query := `
		INSERT INTO tasks (todo_list_id, name, description, status)
		SELECT tl.id, $3, $4, $5
		FROM todo_lists tl
		WHERE tl.id = $1 AND tl.user_id = $2
		RETURNING id, todo_list_id, name, description, status, created_at
	`

	task := &models.Task{}

	err := r.DB.QueryRowContext(ctx, query, listID, userID, name, description, status).
		Scan(&task.ID, &task.TodoListID, &task.Name, &task.Description, &task.Status, &task.CreatedAt)

	if err != nil {
		return nil, err
	}

	return task, nil
}

// ==========================
// Get By ID (owner-scoped)
// ==========================
func (r *TaskRepo) GetByID(ctx context.Context, id, userID uuid.UUID) (*models.Task, error) {
	query := `
		SELECT t.id, t.todo_list_id, t.name, t.description, t.status, t.created_at
		FROM tasks t
		JOIN todo_lists tl ON tl.id = t.todo_list_id
		WHERE t.id = $1 AND tl.user_id = $2
	`

	task := &models.Task{}

	err := r.DB.QueryRowContext(ctx, query, id, userID).
		Scan(&task.ID, &task.TodoListID, &task.Name, &task.Description, &task.Status, &task.CreatedAt)

	if err != nil {
		return nil, err
	}

	return task, nil
}

// ==========================
// List By List (owner-scoped)
// ==========================
func (r *TaskRepo) ListByList(ctx context.Context, listID, userID uuid.UUID) ([]models.Task, error) {
	query := `
		SELECT t.id, t.todo_list_id, t.name, t.description, t.status, t.created_at
		FROM tasks t
		JOIN todo_lists tl ON tl.id = t.todo_list_id
		WHERE t.todo_list_id = $1 AND tl.user_id = $2
		ORDER BY t.created_at, t.id
	`

	rows, err := r.DB.QueryContext(ctx, query, listID, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var tasks []models.Task
	for rows.Next() {
		var t models.Task
		if err := rows.Scan(&t.ID, &t.TodoListID, &t.Name, &t.Description, &t.Status, &t.CreatedAt); err != nil {
			return nil, err
		}
		tasks = append(tasks, t)
	}

	return tasks, rows.Err()
}

// ==========================
// Delete Task (owner-scoped)
// ==========================
func (r *TaskRepo) Delete(ctx context.Context, id, userID uuid.UUID) error {
	query := `
		DELETE FROM tasks t
		USING todo_lists tl
		WHERE t.id = $1 AND t.todo_list_id = tl.id AND tl.user_id = $2
	`

	result, err := r.DB.ExecContext(ctx, query, id, userID)
	if err != nil {
		return err
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return err
	}

	if rows == 0 {
		return sql.ErrNoRows
	}

	return nil
}
