package audios

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
)

func newMock(t *testing.T) (*PGRepo, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })
	return &PGRepo{DB: db}, mock
}

func TestPGRepoUpsertWithoutOverwrite(t *testing.T) {
	repo, mock := newMock(t)
	now := time.Now().UTC()

	mock.ExpectExec(`ON CONFLICT \(filename\) DO NOTHING`).
		WithArgs("my_call.mp3", "hello", "abc123", now).
		WillReturnResult(sqlmock.NewResult(0, 0))

	changed, err := repo.Upsert(context.Background(), Audio{Filename: "my call.mp3", Transcription: "hello", ContentSHA256: "abc123", CreatedAt: now}, false)
	if err != nil {
		t.Fatalf("Upsert: %v", err)
	}
	if changed {
		t.Fatalf("expected existing row to be left alone")
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("ExpectationsWereMet: %v", err)
	}
}

func TestPGRepoUpsertOverwrite(t *testing.T) {
	repo, mock := newMock(t)

	mock.ExpectExec(`ON CONFLICT \(filename\) DO UPDATE`).
		WithArgs("a.mp3", "hello", nil, sqlmock.AnyArg()).
		WillReturnResult(sqlmock.NewResult(0, 1))

	changed, err := repo.Upsert(context.Background(), Audio{Filename: "a.mp3", Transcription: "hello"}, true)
	if err != nil || !changed {
		t.Fatalf("Upsert: %v %v", changed, err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("ExpectationsWereMet: %v", err)
	}
}

func TestPGRepoFindByFilename(t *testing.T) {
	repo, mock := newMock(t)
	now := time.Now().UTC()

	mock.ExpectQuery("SELECT filename, transcription, content_sha256, created_at").
		WithArgs("a.mp3").
		WillReturnRows(sqlmock.NewRows([]string{"filename", "transcription", "content_sha256", "created_at"}).AddRow("a.mp3", "hi", nil, now))

	got, err := repo.FindByFilename(context.Background(), "a.mp3")
	if err != nil {
		t.Fatalf("FindByFilename: %v", err)
	}
	if got.Filename != "a.mp3" || got.Transcription != "hi" {
		t.Fatalf("unexpected audio %+v", got)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("ExpectationsWereMet: %v", err)
	}
}

func TestPGRepoFindByFilenameMissing(t *testing.T) {
	repo, mock := newMock(t)

	mock.ExpectQuery("SELECT filename, transcription, content_sha256, created_at").
		WithArgs("a.mp3").
		WillReturnRows(sqlmock.NewRows([]string{"filename", "transcription", "content_sha256", "created_at"}))

	if _, err := repo.FindByFilename(context.Background(), "a.mp3"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}
