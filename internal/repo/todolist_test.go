package repo

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
)

func TestTodoListRepo_Create(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New: %v", err)
	}
	defer db.Close()

	listID := uuid.New()
	userID := uuid.New()
	mock.ExpectQuery(`INSERT INTO todo_lists \(user_id, name\)`).
		WithArgs(userID, "groceries").
		WillReturnRows(sqlmock.NewRows([]string{"id", "user_id", "name", "created_at"}).
			AddRow(listID.String(), userID.String(), "groceries", time.Now()))

	repo := NewTodoListRepo(db)
	list, err := repo.Create(context.Background(), userID, "groceries")
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if list.ID != listID || list.UserID != userID || list.Name != "groceries" {
		t.Errorf("unexpected list: %+v", list)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("expectations: %v", err)
	}
}

func TestTodoListRepo_GetByID_OwnerScoped(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New: %v", err)
	}
	defer db.Close()

	listID := uuid.New()
	otherUser := uuid.New()
	// A list owned by someone else comes back as no rows.
	mock.ExpectQuery(`SELECT id, user_id, name, created_at`).
		WithArgs(listID, otherUser).
		WillReturnError(sql.ErrNoRows)

	repo := NewTodoListRepo(db)
	_, err = repo.GetByID(context.Background(), listID, otherUser)
	if err != sql.ErrNoRows {
		t.Errorf("expected sql.ErrNoRows for non-owned list, got: %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("expectations: %v", err)
	}
}

func TestTodoListRepo_ListByUser(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New: %v", err)
	}
	defer db.Close()

	userID := uuid.New()
	mock.ExpectQuery(`SELECT id, user_id, name, created_at`).
		WithArgs(userID).
		WillReturnRows(sqlmock.NewRows([]string{"id", "user_id", "name", "created_at"}).
			AddRow(uuid.NewString(), userID.String(), "groceries", time.Now()).
			AddRow(uuid.NewString(), userID.String(), "chores", time.Now()))

	repo := NewTodoListRepo(db)
	lists, err := repo.ListByUser(context.Background(), userID)
	if err != nil {
		t.Fatalf("ListByUser: %v", err)
	}
	if len(lists) != 2 || lists[0].Name != "groceries" || lists[1].Name != "chores" {
		t.Errorf("unexpected lists: %+v", lists)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("expectations: %v", err)
	}
}

func TestTodoListRepo_Delete_NotFound(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New: %v", err)
	}
	defer db.Close()

	listID := uuid.New()
	userID := uuid.New()
	mock.ExpectExec(`DELETE FROM todo_lists WHERE id = \$1 AND user_id = \$2`).
		WithArgs(listID, userID).
		WillReturnResult(sqlmock.NewResult(0, 0))

	repo := NewTodoListRepo(db)
	if err := repo.Delete(context.Background(), listID, userID); err != sql.ErrNoRows {
		t.Errorf("expected sql.ErrNoRows, got: %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("expectations: %v", err)
	}
}
