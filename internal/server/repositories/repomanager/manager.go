package repomanager

import (
	"context"
	"database/sql"

	"github.com/avolkov/microblog/internal/dbx"
	"github.com/avolkov/microblog/internal/server/repositories/posts"
	"github.com/avolkov/microblog/internal/server/repositories/roles"
	"github.com/avolkov/microblog/internal/server/repositories/users"
)

type RepositoryManager interface {
	RunMigrations(context.Context, *sql.DB) error
	Users(db dbx.DBTX) users.Repository
	Roles(db dbx.DBTX) roles.Repository
	Posts(db dbx.DBTX) posts.Repository
}
