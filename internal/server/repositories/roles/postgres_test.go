package roles

import (
	"context"
	"database/sql"
	"errors"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"

	"github.com/avolkov/microblog/internal/common"
)

func newRepoWithMock(t *testing.T) (*PostgresRepository, sqlmock.Sqlmock, *sql.DB) {
	t.Helper()
	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherRegexp))
	if err != nil {
		t.Fatalf("sqlmock.New error: %v", err)
	}
	return NewPostgresRepository(db), mock, db
}

func TestEnsure_Success(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	mock.ExpectExec(`(?s)INSERT\s+INTO\s+roles\s*\(name\)`).
		WithArgs("user").
		WillReturnResult(sqlmock.NewResult(1, 1))

	if err := repo.Ensure(context.Background(), "user"); err != nil {
		t.Fatalf("Ensure error: %v", err)
	}
}

func TestAddToRole_Success(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	mock.ExpectExec(`(?s)INSERT\s+INTO\s+user_roles`).
		WithArgs("u-1", "user").
		WillReturnResult(sqlmock.NewResult(1, 1))

	if err := repo.AddToRole(context.Background(), "u-1", "user"); err != nil {
		t.Fatalf("AddToRole error: %v", err)
	}
}

func TestAddToRole_UnknownRole(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	mock.ExpectExec(`(?s)INSERT\s+INTO\s+user_roles`).
		WithArgs("u-1", "superuser").
		WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectQuery(`SELECT\s+EXISTS`).
		WithArgs("superuser").
		WillReturnRows(sqlmock.NewRows([]string{"exists"}).AddRow(false))

	err := repo.AddToRole(context.Background(), "u-1", "superuser")
	if !errors.Is(err, common.ErrorNotFound) {
		t.Fatalf("expected ErrorNotFound, got %v", err)
	}
}

func TestAddToRole_AlreadyHeld(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	mock.ExpectExec(`(?s)INSERT\s+INTO\s+user_roles`).
		WithArgs("u-1", "user").
		WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectQuery(`SELECT\s+EXISTS`).
		WithArgs("user").
		WillReturnRows(sqlmock.NewRows([]string{"exists"}).AddRow(true))

	if err := repo.AddToRole(context.Background(), "u-1", "user"); err != nil {
		t.Fatalf("expected no error for already-held role, got %v", err)
	}
}

func TestGetRoles_ReturnsNames(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	rows := sqlmock.NewRows([]string{"name"}).AddRow("user").AddRow("admin")
	mock.ExpectQuery(`(?s)SELECT\s+r\.name\s+FROM\s+roles`).
		WithArgs("u-1").
		WillReturnRows(rows)

	got, err := repo.GetRoles(context.Background(), "u-1")
	if err != nil {
		t.Fatalf("GetRoles error: %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("expected 2 roles, got %v", got)
	}
}

func TestGetRoles_Empty(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	mock.ExpectQuery(`(?s)SELECT\s+r\.name\s+FROM\s+roles`).
		WithArgs("u-2").
		WillReturnRows(sqlmock.NewRows([]string{"name"}))

	got, err := repo.GetRoles(context.Background(), "u-2")
	if err != nil {
		t.Fatalf("GetRoles error: %v", err)
	}
	if len(got) != 0 {
		t.Fatalf("expected no roles, got %v", got)
	}
}
