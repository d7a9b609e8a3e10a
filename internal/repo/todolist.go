package repo

import (
	"context"
	"database/sql"

	"github.com/google/uuid"

	"github.com/crucial707/todo-api/internal/models"
)

// ==========================
// TodoListRepo
// ==========================
// Every read and delete is scoped to the owning user; a list belonging to
// someone else behaves exactly like a missing one.
type TodoListRepo struct {
	DB *sql.DB
}

// ==========================
// Constructor
// ==========================
func NewTodoListRepo(db *sql.DB) *TodoListRepo {
	return &TodoListRepo{DB: db}
}

// ==========================
// Create List
// ==========================
func (r *TodoListRepo) Create(ctx context.Context, userID uuid.UUID, name string) (*models.TodoList, error) {
	query := `
		INSERT INTO todo_lists (user_id, name)
		VALUES ($1, $2)
		RETURNING id, user_id, name, created_at
	`

	list := &models.TodoList{}

	err := r.DB.QueryRowContext(ctx, query, userID, name).
		Scan(&list.ID, &list.UserID, &list.Name, &list.CreatedAt)

	if err != nil {
		return nil, err
	}

	return list, nil
}

// ==========================
// Get By ID (owner-scoped)
// ==========================
func (r *TodoListRepo) GetByID(ctx context.Context, id, userID uuid.UUID) (*models.TodoList, error) {
	query := `
		SELECT id, user_id, name, created_at
		FROM todo_lists
		WHERE id = $1 AND user_id = $2
	`

	list := &models.TodoList{}

	err := r.DB.QueryRowContext(ctx, query, id, userID).
		Scan(&list.ID, &list.UserID, &list.Name, &list.CreatedAt)

	if err != nil {
		return nil, err
	}

	return list, nil
}

// ==========================
// List By User
// ==========================
func (r *TodoListRepo) ListByUser(ctx context.Context, userID uuid.UUID) ([]models.TodoList, error) {
	query := `
		SELECT id, user_id, name, created_at
		FROM todo_lists
		WHERE user_id = $1
		ORDER BY created_at, id
	`

	rows, err := r.DB.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var lists []models.TodoList
	for rows.Next() {
		var l models.TodoList
		if err := rows.Scan(&l.ID, &l.UserID, &l.Name, &l.CreatedAt); err != nil {
			return nil, err
		}
		lists = append(lists, l)
	}

	return lists, rows.Err()
}

// ==========================
// Delete List (owner-scoped)
// ==========================
func (r *TodoListRepo) Delete(ctx context.Context, id, userID uuid.UUID) error {
	result, err := r.DB.ExecContext(ctx,
		`DELETE FROM todo_lists WHERE id = $1 AND user_id = $2`, id, userID)
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
