package repomanager

import (
	"context"
	"database/sql"

	"github.com/vmtecnologia/usersvc/internal/dbx"
	"github.com/vmtecnologia/usersvc/internal/server/repositories/users"
)

type RepositoryManager interface {
	RunMigrations(context.Context, *sql.DB) error
	Users(db dbx.DBTX) users.Repository
}
