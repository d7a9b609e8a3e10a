package repo

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
)

func TestTaskRepo_Create(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New: %v", err)
	}
	defer db.Close()

	taskID := uuid.New()
	listID := uuid.New()
	userID := uuid.New()
	desc := "milk and eggs"

	mock.ExpectQuery(`INSERT INTO tasks \(todo_list_id, name, description, status\)`).
		WithArgs(listID, userID, "buy groceries", desc, nil).
		WillReturnRows(sqlmock.NewRows([]string{"id", "todo_list_id", "name", "description", "status", "created_at"}).
			AddRow(taskID.String(), listID.String(), "buy groceries", desc, nil, time.Now()))

	repo := NewTaskRepo(db)
	task, err := repo.Create(context.Background(), listID, userID, "buy groceries", &desc, nil)
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if task.ID != taskID || task.TodoListID != listID || task.Name != "buy groceries" {
		t.Errorf("unexpected task: %+v", task)
	}
	if task.Description == nil || *task.Description != desc {
		t.Errorf("unexpected description: %v", task.Description)
	}
	if task.Status != nil {
		t.Errorf("expected nil status, got: %v", *task.Status)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("expectations: %v", err)
	}
}

func TestTaskRepo_Create_ListNotOwned(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New: %v", err)
	}
	defer db.Close()

	listID := uuid.New()
	userID := uuid.New()

	// The guarded INSERT...SELECT inserts nothing when the list is not owned.
	mock.ExpectQuery(`INSERT INTO tasks \(todo_list_id, name, description, status\)`).
		WithArgs(listID, userID, "sneaky", nil, nil).
		WillReturnError(sql.ErrNoRows)

	repo := NewTaskRepo(db)
	_, err = repo.Create(context.Background(), listID, userID, "sneaky", nil, nil)
	if err != sql.ErrNoRows {
		t.Errorf("expected sql.ErrNoRows, got: %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("expectations: %v", err)
	}
}

func TestTaskRepo_ListByList(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New: %v", err)
	}
	defer db.Close()

	listID := uuid.New()
	userID := uuid.New()
	mock.ExpectQuery(`SELECT t.id, t.todo_list_id, t.name, t.description, t.status, t.created_at`).
		WithArgs(listID, userID).
		WillReturnRows(sqlmock.NewRows([]string{"id", "todo_list_id", "name", "description", "status", "created_at"}).
			AddRow(uuid.NewString(), listID.String(), "one", nil, "done", time.Now()).
			AddRow(uuid.NewString(), listID.String(), "two", "desc", nil, time.Now()))

	repo := NewTaskRepo(db)
	tasks, err := repo.ListByList(context.Background(), listID, userID)
	if err != nil {
		t.Fatalf("ListByList: %v", err)
	}
	if len(tasks) != 2 || tasks[0].Name != "one" || tasks[1].Name != "two" {
		t.Errorf("unexpected tasks: %+v", tasks)
	}
	if tasks[0].Status == nil || *tasks[0].Status != "done" {
		t.Errorf("unexpected status: %v", tasks[0].Status)
	}
	if tasks[0].Description != nil {
		t.Errorf("expected nil description, got: %v", *tasks[0].Description)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("expectations: %v", err)
	}
}

func TestTaskRepo_Delete_NotFound(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New: %v", err)
	}
	defer db.Close()

	taskID := uuid.New()
	userID := uuid.New()
	mock.ExpectExec(`DELETE FROM tasks`).
		WithArgs(taskID, userID).
		WillReturnResult(sqlmock.NewResult(0, 0))

	repo := NewTaskRepo(db)
	if err := repo.Delete(context.Background(), taskID, userID); err != sql.ErrNoRows {
		t.Errorf("expected sql.ErrNoRows, got: %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("expectations: %v", err)
	}
}
