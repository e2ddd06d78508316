package spreadsheets

import (
	"context"
	"errors"
	"reflect"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
)

func TestPGRepoUpsertStoresFieldsAsJSON(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })

	repo := &PGRepo{DB: db}
	now := time.Now().UTC()

	mock.ExpectExec(`INSERT INTO excels`).
		WithArgs("sheet.xlsx", `["Person","Location"]`, now).
		WillReturnResult(sqlmock.NewResult(0, 1))

	changed, err := repo.Upsert(context.Background(), Spreadsheet{Filename: "sheet.xlsx", Fields: []string{"Person", "Location"}, CreatedAt: now}, false)
	if err != nil || !changed {
		t.Fatalf("Upsert: %v %v", changed, err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("ExpectationsWereMet: %v", err)
	}
}

func TestPGRepoFindByFilename(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })

	repo := &PGRepo{DB: db}
	now := time.Now().UTC()

	mock.ExpectQuery("SELECT filename, fields, created_at").
		WithArgs("sheet.xlsx").
		WillReturnRows(sqlmock.NewRows([]string{"filename", "fields", "created_at"}).
			AddRow("sheet.xlsx", []byte(`["Person"]`), now))

	got, err := repo.FindByFilename(context.Background(), "sheet.xlsx")
	if err != nil {
		t.Fatalf("FindByFilename: %v", err)
	}
	if !reflect.DeepEqual(got.Fields, []string{"Person"}) {
		t.Fatalf("unexpected fields %v", got.Fields)
	}

	mock.ExpectQuery("SELECT filename, fields, created_at").
		WithArgs("missing.xlsx").
		WillReturnRows(sqlmock.NewRows([]string{"filename", "fields", "created_at"}))
	if _, err := repo.FindByFilename(context.Background(), "missing.xlsx"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}
