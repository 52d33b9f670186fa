package repomanager

import (
	"context"
	"database/sql"

	"github.com/dmitrijs2005/dogbox/internal/dbx"
	"github.com/dmitrijs2005/dogbox/internal/server/repositories/files"
)

type RepositoryManager interface {
	RunMigrations(context.Context, *sql.DB) error
	Files(db dbx.DBTX) files.Repository
}
