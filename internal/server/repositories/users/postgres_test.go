package users

import (
	"context"
	"database/sql"
	"errors"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/avolkov/microblog/internal/common"
	"github.com/avolkov/microblog/internal/server/models"
)

func newRepoWithMock(t *testing.T) (*PostgresRepository, sqlmock.Sqlmock, *sql.DB) {
	t.Helper()
	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherRegexp))
	if err != nil {
		t.Fatalf("sqlmock.New error: %v", err)
	}
	return NewPostgresRepository(db), mock, db
}

const (
	insertQ = `(?s)^INSERT\s+INTO\s+users\s*\(id,\s*email,\s*username,\s*password_hash\)\s*VALUES\s*\(\$1,\s*\$2,\s*\$3,\s*\$4\)\s*RETURNING\s+created_at\s*$`
	selectQ = `(?s)^SELECT\s+id,\s*email,\s*username,\s*password_hash,\s*created_at\s+FROM\s+users\s+WHERE\s+email\s*=\s*\$1\s*$`
)

func TestCreate_Success(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	rows := sqlmock.NewRows([]string{"created_at"}).AddRow(time.Now())
	mock.ExpectQuery(insertQ).
		WithArgs(sqlmock.AnyArg(), "a@x.com", "alice", "hash").
		WillReturnRows(rows)

	u := &models.User{Email: "a@x.com", UserName: "alice", PasswordHash: "hash"}
	got, err := repo.Create(context.Background(), u)
	if err != nil {
		t.Fatalf("Create error: %v", err)
	}
	if got.ID == "" {
		t.Fatalf("expected generated id, got empty")
	}
	if got.Email != "a@x.com" || got.UserName != "alice" {
		t.Fatalf("unexpected user: %+v", got)
	}
}

func TestCreate_DuplicateEmail(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	mock.ExpectQuery(insertQ).
		WillReturnError(&pgconn.PgError{Code: "23505", ConstraintName: "users_email_key"})

	_, err := repo.Create(context.Background(), &models.User{Email: "a@x.com", UserName: "alice", PasswordHash: "h"})
	if !errors.Is(err, common.ErrorDuplicateEmail) {
		t.Fatalf("expected ErrorDuplicateEmail, got %v", err)
	}
}

func TestCreate_DuplicateUserName(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	mock.ExpectQuery(insertQ).
		WillReturnError(&pgconn.PgError{Code: "23505", ConstraintName: "users_username_key"})

	_, err := repo.Create(context.Background(), &models.User{Email: "a@x.com", UserName: "alice", PasswordHash: "h"})
	if !errors.Is(err, common.ErrorDuplicateUserName) {
		t.Fatalf("expected ErrorDuplicateUserName, got %v", err)
	}
}

func TestCreate_DBError(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	mock.ExpectQuery(insertQ).
		WillReturnError(errors.New("db down"))

	_, err := repo.Create(context.Background(), &models.User{Email: "a@x.com", UserName: "alice", PasswordHash: "h"})
	if err == nil || !regexp.MustCompile(`db error: .*db down`).MatchString(err.Error()) {
		t.Fatalf("expected wrapped db error, got %v", err)
	}
}

func TestGetByEmail_Found(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	rows := sqlmock.NewRows([]string{"id", "email", "username", "password_hash", "created_at"}).
		AddRow("u-1", "a@x.com", "alice", "hash", time.Now())
	mock.ExpectQuery(selectQ).
		WithArgs("a@x.com").
		WillReturnRows(rows)

	got, err := repo.GetByEmail(context.Background(), "a@x.com")
	if err != nil {
		t.Fatalf("GetByEmail error: %v", err)
	}
	if got.ID != "u-1" || got.UserName != "alice" {
		t.Fatalf("unexpected user: %+v", got)
	}
}

func TestGetByEmail_NotFound(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	mock.ExpectQuery(selectQ).
		WithArgs("nobody@x.com").
		WillReturnError(sql.ErrNoRows)

	_, err := repo.GetByEmail(context.Background(), "nobody@x.com")
	if !errors.Is(err, common.ErrorNotFound) {
		t.Fatalf("expected ErrorNotFound, got %v", err)
	}
}
