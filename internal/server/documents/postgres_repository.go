package documents

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/absingh09/mydocuments/internal/common"
)

type PostgresRepository struct {
	db *sql.DB
}

func NewPostgresRepository(db *sql.DB) (*PostgresRepository, error) {
	return &PostgresRepository{db: db}, nil
}

func (r *PostgresRepository) Create(ctx context.Context, doc *Document) (*Document, error) {

	query :=
		`INSERT INTO documents (owner_id, name, issuer, date, file_type, filename, data, uploaded_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		 RETURNING id, created_at
		 `

	err := r.db.QueryRowContext(ctx, query,
		doc.OwnerID, doc.Name, doc.Issuer, doc.Date, doc.FileType,
		doc.Filename, doc.Data, doc.UploadedAt).Scan(&doc.ID, &doc.CreatedAt)

	if err != nil {
		return nil, fmt.Errorf("error performing sql request: %w", err)
	}

	return doc, nil
}

func (r *PostgresRepository) ListByOwner(ctx context.Context, ownerID string) ([]*Document, error) {

	query :=
		`SELECT id, owner_id, name, issuer, date, file_type, filename, uploaded_at, created_at
		 FROM documents
		 WHERE owner_id = $1
		 ORDER BY created_at DESC, id DESC
		 `

	rows, err := r.db.QueryContext(ctx, query, ownerID)
	if err != nil {
		return nil, fmt.Errorf("error performing sql request: %w", err)
	}
	defer rows.Close()

	docs := []*Document{}
	for rows.Next() {
		doc := &Document{}
		err := rows.Scan(&doc.ID, &doc.OwnerID, &doc.Name, &doc.Issuer, &doc.Date,
			&doc.FileType, &doc.Filename, &doc.UploadedAt, &doc.CreatedAt)
		if err != nil {
			return nil, fmt.Errorf("error scanning row: %w", err)
		}
		docs = append(docs, doc)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating rows: %w", err)
	}

	return docs, nil
}

func (r *PostgresRepository) GetByID(ctx context.Context, ownerID, id string) (*Document, error) {

	query :=
		`SELECT id, owner_id, name, issuer, date, file_type, filename, data, uploaded_at, created_at
		 FROM documents
		 WHERE id = $1 AND owner_id = $2
		 `

	doc := &Document{}
	err := r.db.QueryRowContext(ctx, query, id, ownerID).Scan(&doc.ID, &doc.OwnerID,
		&doc.Name, &doc.Issuer, &doc.Date, &doc.FileType, &doc.Filename,
		&doc.Data, &doc.UploadedAt, &doc.CreatedAt)

	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrorNotFound
		}
		return nil, fmt.Errorf("error performing sql request: %w", err)
	}

	return doc, nil
}

// Update applies the non-nil patch fields in a single statement. The filter
// pairs id with owner_id, so a row owned by someone else behaves exactly
// like a missing one.
func (r *PostgresRepository) Update(ctx context.Context, ownerID, id string, patch *Patch) (*Document, error) {

	set := make([]string, 0, 3)
	args := make([]any, 0, 5)

	add := func(column string, value *string) {
		if value != nil {
			args = append(args, *value)
			set = append(set, fmt.Sprintf("%s = $%d", column, len(args)))
		}
	}
	add("name", patch.Name)
	add("issuer", patch.Issuer)
	add("date", patch.Date)

	if len(set) == 0 {
		return nil, common.ErrorNoFields
	}

	args = append(args, id)
	idArg := len(args)
	args = append(args, ownerID)
	ownerArg := len(args)

	query := fmt.Sprintf(
		`UPDATE documents SET %s
		 WHERE id = $%d AND owner_id = $%d
		 RETURNING id, owner_id, name, issuer, date, file_type, filename, uploaded_at, created_at`,
		strings.Join(set, ", "), idArg, ownerArg)

	doc := &Document{}
	err := r.db.QueryRowContext(ctx, query, args...).Scan(&doc.ID, &doc.OwnerID,
		&doc.Name, &doc.Issuer, &doc.Date, &doc.FileType, &doc.Filename,
		&doc.UploadedAt, &doc.CreatedAt)

	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrorNotFound
		}
		return nil, fmt.Errorf("error performing sql request: %w", err)
	}

	return doc, nil
}

func (r *PostgresRepository) Delete(ctx context.Context, ownerID, id string) error {

	query := `DELETE FROM documents WHERE id = $1 AND owner_id = $2`

	res, err := r.db.ExecContext(ctx, query, id, ownerID)
	if err != nil {
		return fmt.Errorf("error performing sql request: %w", err)
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("error reading affected rows: %w", err)
	}
	if affected == 0 {
		return common.ErrorNotFound
	}

	return nil
}
