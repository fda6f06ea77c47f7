package documents

import (
	"context"
	"database/sql"
	"errors"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/absingh09/mydocuments/internal/common"
)

func newRepoWithMock(t *testing.T) (*PostgresRepository, sqlmock.Sqlmock, *sql.DB) {
	t.Helper()
	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherRegexp))
	if err != nil {
		t.Fatalf("sqlmock.New error: %v", err)
	}
	repo, err := NewPostgresRepository(db)
	if err != nil {
		t.Fatalf("NewPostgresRepository error: %v", err)
	}
	return repo, mock, db
}

var listCols = []string{"id", "owner_id", "name", "issuer", "date", "file_type", "filename", "uploaded_at", "created_at"}

func TestCreate_ReturnsIDAndCreatedAt(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	q := `(?s)^INSERT\s+INTO\s+documents\s*\(owner_id,\s*name,\s*issuer,\s*date,\s*file_type,\s*filename,\s*data,\s*uploaded_at\)\s*VALUES\s*\(\$1,\s*\$2,\s*\$3,\s*\$4,\s*\$5,\s*\$6,\s*\$7,\s*\$8\)\s*RETURNING\s+id,\s*created_at\s*$`

	created := time.Date(2026, 9, 1, 12, 0, 0, 0, time.UTC)
	rows := sqlmock.NewRows([]string{"id", "created_at"}).AddRow("d-1", created)
	mock.ExpectQuery(q).
		WithArgs("u-1", "Diploma", "MIT", "2020-06-01", "application/pdf", "diploma.pdf", "cGF5bG9hZA==", "September 2026").
		WillReturnRows(rows)

	doc := &Document{
		OwnerID:    "u-1",
		Name:       "Diploma",
		Issuer:     "MIT",
		Date:       "2020-06-01",
		FileType:   "application/pdf",
		Filename:   "diploma.pdf",
		Data:       "cGF5bG9hZA==",
		UploadedAt: "September 2026",
	}
	got, err := repo.Create(context.Background(), doc)
	if err != nil {
		t.Fatalf("Create error: %v", err)
	}
	if got.ID != "d-1" || !got.CreatedAt.Equal(created) {
		t.Fatalf("unexpected document: %+v", got)
	}
}

func TestListByOwner_NewestFirstNoData(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	q := `(?s)^SELECT\s+id,\s*owner_id,\s*name,\s*issuer,\s*date,\s*file_type,\s*filename,\s*uploaded_at,\s*created_at\s+FROM\s+documents\s+WHERE\s+owner_id\s*=\s*\$1\s+ORDER\s+BY\s+created_at\s+DESC,\s*id\s+DESC\s*$`

	now := time.Now()
	rows := sqlmock.NewRows(listCols).
		AddRow("d-2", "u-1", "Newer", "", "", "image/png", "b.png", "September 2026", now).
		AddRow("d-1", "u-1", "Older", "", "", "image/png", "a.png", "August 2026", now.Add(-time.Hour))
	mock.ExpectQuery(q).WithArgs("u-1").WillReturnRows(rows)

	docs, err := repo.ListByOwner(context.Background(), "u-1")
	if err != nil {
		t.Fatalf("ListByOwner error: %v", err)
	}
	if len(docs) != 2 || docs[0].ID != "d-2" || docs[1].ID != "d-1" {
		t.Fatalf("unexpected documents: %+v", docs)
	}
	for _, d := range docs {
		if d.Data != "" {
			t.Fatalf("list must not carry the payload, got %q", d.Data)
		}
	}
}

func TestListByOwner_Empty(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	mock.ExpectQuery(`SELECT`).WithArgs("u-1").WillReturnRows(sqlmock.NewRows(listCols))

	docs, err := repo.ListByOwner(context.Background(), "u-1")
	if err != nil {
		t.Fatalf("ListByOwner error: %v", err)
	}
	if docs == nil || len(docs) != 0 {
		t.Fatalf("want empty non-nil slice, got %#v", docs)
	}
}

func TestGetByID_ScopedByOwner(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	q := `(?s)^SELECT\s+id,\s*owner_id,\s*name,\s*issuer,\s*date,\s*file_type,\s*filename,\s*data,\s*uploaded_at,\s*created_at\s+FROM\s+documents\s+WHERE\s+id\s*=\s*\$1\s+AND\s+owner_id\s*=\s*\$2\s*$`

	rows := sqlmock.NewRows([]string{"id", "owner_id", "name", "issuer", "date", "file_type", "filename", "data", "uploaded_at", "created_at"}).
		AddRow("d-1", "u-1", "Diploma", "MIT", "2020-06-01", "application/pdf", "diploma.pdf", "cGF5bG9hZA==", "September 2026", time.Now())
	mock.ExpectQuery(q).WithArgs("d-1", "u-1").WillReturnRows(rows)

	doc, err := repo.GetByID(context.Background(), "u-1", "d-1")
	if err != nil {
		t.Fatalf("GetByID error: %v", err)
	}
	if doc.Data != "cGF5bG9hZA==" {
		t.Fatalf("get must include the payload, got %q", doc.Data)
	}
}

func TestGetByID_NotFound(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	mock.ExpectQuery(`SELECT`).WithArgs("d-1", "u-2").WillReturnError(sql.ErrNoRows)

	_, err := repo.GetByID(context.Background(), "u-2", "d-1")
	if !errors.Is(err, common.ErrorNotFound) {
		t.Fatalf("want common.ErrorNotFound, got %v", err)
	}
}

func TestUpdate_SingleField(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	q := `(?s)^UPDATE\s+documents\s+SET\s+name\s*=\s*\$1\s+WHERE\s+id\s*=\s*\$2\s+AND\s+owner_id\s*=\s*\$3\s+RETURNING\s+id,\s*owner_id,\s*name,\s*issuer,\s*date,\s*file_type,\s*filename,\s*uploaded_at,\s*created_at\s*$`

	rows := sqlmock.NewRows(listCols).
		AddRow("d-1", "u-1", "Renamed", "MIT", "2020-06-01", "application/pdf", "diploma.pdf", "September 2026", time.Now())
	mock.ExpectQuery(q).WithArgs("Renamed", "d-1", "u-1").WillReturnRows(rows)

	name := "Renamed"
	doc, err := repo.Update(context.Background(), "u-1", "d-1", &Patch{Name: &name})
	if err != nil {
		t.Fatalf("Update error: %v", err)
	}
	if doc.Name != "Renamed" || doc.Issuer != "MIT" {
		t.Fatalf("unexpected document: %+v", doc)
	}
	if doc.Data != "" {
		t.Fatalf("update must not return the payload")
	}
}

func TestUpdate_AllFields(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	q := `(?s)^UPDATE\s+documents\s+SET\s+name\s*=\s*\$1,\s*issuer\s*=\s*\$2,\s*date\s*=\s*\$3\s+WHERE\s+id\s*=\s*\$4\s+AND\s+owner_id\s*=\s*\$5`

	rows := sqlmock.NewRows(listCols).
		AddRow("d-1", "u-1", "N", "I", "D", "application/pdf", "f.pdf", "September 2026", time.Now())
	mock.ExpectQuery(q).WithArgs("N", "I", "D", "d-1", "u-1").WillReturnRows(rows)

	name, issuer, date := "N", "I", "D"
	_, err := repo.Update(context.Background(), "u-1", "d-1", &Patch{Name: &name, Issuer: &issuer, Date: &date})
	if err != nil {
		t.Fatalf("Update error: %v", err)
	}
}

func TestUpdate_NoRowMatched(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	mock.ExpectQuery(`UPDATE`).WithArgs("Renamed", "d-1", "u-2").WillReturnError(sql.ErrNoRows)

	name := "Renamed"
	_, err := repo.Update(context.Background(), "u-2", "d-1", &Patch{Name: &name})
	if !errors.Is(err, common.ErrorNotFound) {
		t.Fatalf("want common.ErrorNotFound, got %v", err)
	}
}

func TestRepoUpdate_EmptyPatch(t *testing.T) {
	repo, _, db := newRepoWithMock(t)
	defer db.Close()

	_, err := repo.Update(context.Background(), "u-1", "d-1", &Patch{})
	if !errors.Is(err, common.ErrorNoFields) {
		t.Fatalf("want common.ErrorNoFields, got %v", err)
	}
}

func TestDelete_Success(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	q := `(?s)^DELETE\s+FROM\s+documents\s+WHERE\s+id\s*=\s*\$1\s+AND\s+owner_id\s*=\s*\$2\s*$`
	mock.ExpectExec(q).WithArgs("d-1", "u-1").WillReturnResult(sqlmock.NewResult(0, 1))

	if err := repo.Delete(context.Background(), "u-1", "d-1"); err != nil {
		t.Fatalf("Delete error: %v", err)
	}
}

func TestDelete_NoRowMatched(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	mock.ExpectExec(`DELETE`).WithArgs("d-1", "u-2").WillReturnResult(sqlmock.NewResult(0, 0))

	err := repo.Delete(context.Background(), "u-2", "d-1")
	if !errors.Is(err, common.ErrorNotFound) {
		t.Fatalf("want common.ErrorNotFound, got %v", err)
	}
}
