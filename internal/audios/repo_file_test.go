package audios

import (
	"context"
	"errors"
	"testing"
)

func TestFileRepoUpsert(t *testing.T) {
	repo, err := NewFileRepo(t.TempDir())
	if err != nil {
		t.Fatalf("NewFileRepo: %v", err)
	}
	ctx := context.Background()

	changed, err := repo.Upsert(ctx, Audio{Filename: "a.mp3", Transcription: "one"}, false)
	if err != nil || !changed {
		t.Fatalf("first upsert: %v %v", changed, err)
	}

	changed, err = repo.Upsert(ctx, Audio{Filename: "a.mp3", Transcription: "two"}, false)
	if err != nil || changed {
		t.Fatalf("expected no-op upsert, got %v %v", changed, err)
	}
	got, _ := repo.FindByFilename(ctx, "a.mp3")
	if got.Transcription != "one" {
		t.Fatalf("record modified without overwrite: %+v", got)
	}

	changed, err = repo.Upsert(ctx, Audio{Filename: "a.mp3", Transcription: "three"}, true)
	if err != nil || !changed {
		t.Fatalf("overwrite upsert: %v %v", changed, err)
	}
	got, _ = repo.FindByFilename(ctx, "a.mp3")
	if got.Transcription != "three" {
		t.Fatalf("expected overwrite, got %+v", got)
	}

	rows, err := repo.table.All()
	if err != nil {
		t.Fatalf("All: %v", err)
	}
	if len(rows) != 1 {
		t.Fatalf("expected one row, got %d", len(rows))
	}
}

func TestFileRepoFindMissing(t *testing.T) {
	repo, err := NewFileRepo(t.TempDir())
	if err != nil {
		t.Fatalf("NewFileRepo: %v", err)
	}
	if _, err := repo.FindByFilename(context.Background(), "nope.mp3"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
	if _, err := repo.FindByFilename(context.Background(), "///"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound for unusable name, got %v", err)
	}
}
