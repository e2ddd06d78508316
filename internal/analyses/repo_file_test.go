package analyses

import (
	"context"
	"testing"
	"time"
)

func TestFileRepoInsertManyNeverDedups(t *testing.T) {
	dir := t.TempDir()
	repo, err := NewFileRepo(dir)
	if err != nil {
		t.Fatalf("NewFileRepo: %v", err)
	}

	rec := Analysis{ID: "1", AudioFilename: "a.mp3", ExcelFilename: "s.xlsx", Field: "Person", Value: "John", CreatedAt: time.Now().UTC()}
	if err := repo.InsertMany(context.Background(), []Analysis{rec, rec}); err != nil {
		t.Fatalf("InsertMany: %v", err)
	}
	if err := repo.InsertMany(context.Background(), []Analysis{rec}); err != nil {
		t.Fatalf("InsertMany: %v", err)
	}

	reopened, err := NewFileRepo(dir)
	if err != nil {
		t.Fatalf("NewFileRepo: %v", err)
	}
	rows, err := reopened.table.All()
	if err != nil {
		t.Fatalf("All: %v", err)
	}
	if len(rows) != 3 {
		t.Fatalf("expected 3 rows, got %d", len(rows))
	}
	if rows[2].Value != "John" || rows[2].Field != "Person" {
		t.Fatalf("unexpected row %+v", rows[2])
	}
}

func TestFileRepoCanceledContext(t *testing.T) {
	repo, err := NewFileRepo(t.TempDir())
	if err != nil {
		t.Fatalf("NewFileRepo: %v", err)
	}
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if err := repo.InsertMany(ctx, []Analysis{{ID: "1"}}); err == nil {
		t.Fatalf("expected context error")
	}
}
