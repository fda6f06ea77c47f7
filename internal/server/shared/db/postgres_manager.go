package db

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/absingh09/mydocuments/internal/server/documents"
	"github.com/absingh09/mydocuments/internal/server/migrations"
	"github.com/absingh09/mydocuments/internal/server/users"
	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/pressly/goose/v3"
)

type PostgresRepositoryManager struct {
	db        *sql.DB
	users     users.Repository
	documents documents.Repository
}

func (m *PostgresRepositoryManager) Conn() *sql.DB {
	return m.db
}

func (m *PostgresRepositoryManager) Close() error {
	return m.db.Close()
}

func (m *PostgresRepositoryManager) Users() users.Repository {
	return m.users
}

func (m *PostgresRepositoryManager) Documents() documents.Repository {
	return m.documents
}

func (m *PostgresRepositoryManager) RunMigrations(ctx context.Context) error {
	goose.SetBaseFS(migrations.Migrations)

	if err := goose.UpContext(ctx, m.db, "."); err != nil {
		return err
	}

	return nil
}

func NewPostgresRepositoryManager(dsn string) (RepositoryManager, error) {

	db, err := sql.Open("pgx", dsn)
	if err != nil {
		return nil, fmt.Errorf("db open error: %w", err)
	}

	users, err := users.NewPostgresRepository(db)
	if err != nil {
		return nil, fmt.Errorf("user repo creation error: %w", err)
	}

	documents, err := documents.NewPostgresRepository(db)
	if err != nil {
		return nil, fmt.Errorf("document repo creation error: %w", err)
	}

	m := &PostgresRepositoryManager{
		db:        db,
		users:     users,
		documents: documents,
	}

	err = m.RunMigrations(context.Background())
	if err != nil {
		return nil, fmt.Errorf("migration error: %w", err)
	}

	return m, nil
}
