package db

import (
	"context"
	"database/sql"

	"github.com/absingh09/mydocuments/internal/server/documents"
	"github.com/absingh09/mydocuments/internal/server/users"
)

type RepositoryManager interface {
	RunMigrations(context.Context) error
	Conn() *sql.DB
	Close() error
	Users() users.Repository
	Documents() documents.Repository
}
