package analyses

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"audiofields-backend/internal/language"
)

type fakeAnalyzer struct {
	resp  language.Response
	err   error
	calls int
	texts []string
}

func (f *fakeAnalyzer) AnalyzeEntities(ctx context.Context, text string) (language.Response, error) {
	f.calls++
	f.texts = append(f.texts, text)
	return f.resp, f.err
}

type captureRepo struct {
	records []Analysis
	err     error
}

func (r *captureRepo) InsertMany(ctx context.Context, records []Analysis) error {
	if r.err != nil {
		return r.err
	}
	r.records = append(r.records, records...)
	return nil
}

func newTestService(analyzer language.Analyzer, repo Repo) *Service {
	svc := NewService(analyzer, repo)
	fixed := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)
	svc.Now = func() time.Time { return fixed }
	n := 0
	svc.NewID = func() string {
		n++
		return fmt.Sprintf("id-%d", n)
	}
	return svc
}

func TestExtractMatchesFields(t *testing.T) {
	analyzer := &fakeAnalyzer{resp: language.Response{Entities: []language.Entity{
		{Name: "Paris", Type: "LOCATION"},
	}}}
	svc := newTestService(analyzer, &captureRepo{})

	matches, err := svc.Extract(context.Background(), "John lives in Paris", []string{"Location"})
	if err != nil {
		t.Fatalf("Extract: %v", err)
	}
	if analyzer.calls != 1 || analyzer.texts[0] != "John lives in Paris" {
		t.Fatalf("unexpected analyzer usage: %+v", analyzer)
	}
	if len(matches) != 1 || len(matches[0].Values) != 1 || matches[0].Values[0] != "Paris" {
		t.Fatalf("unexpected matches %+v", matches)
	}
}

func TestExtractPropagatesBackendError(t *testing.T) {
	boom := errors.New("backend down")
	svc := newTestService(&fakeAnalyzer{err: boom}, &captureRepo{})

	if _, err := svc.Extract(context.Background(), "x", []string{"a"}); !errors.Is(err, boom) {
		t.Fatalf("expected backend error, got %v", err)
	}
}

func TestRecordOnePerFieldValue(t *testing.T) {
	repo := &captureRepo{}
	svc := newTestService(&fakeAnalyzer{}, repo)
	matches := FieldMatches{
		{Field: "Person", Values: []string{"John", "Jane"}},
		{Field: "Location", Values: []string{}},
		{Field: "Date", Values: []string{"Monday"}},
	}

	records, err := svc.Record(context.Background(), "call.mp3", "sheet.xlsx", matches)
	if err != nil {
		t.Fatalf("Record: %v", err)
	}
	if len(records) != 3 || len(repo.records) != 3 {
		t.Fatalf("expected 3 records, got %d (stored %d)", len(records), len(repo.records))
	}
	first := repo.records[0]
	if first.ID != "id-1" || first.AudioFilename != "call.mp3" || first.ExcelFilename != "sheet.xlsx" ||
		first.Field != "Person" || first.Value != "John" {
		t.Fatalf("unexpected first record %+v", first)
	}
	if repo.records[2].Field != "Date" || repo.records[2].Value != "Monday" {
		t.Fatalf("unexpected last record %+v", repo.records[2])
	}
}

func TestRecordSkipsEmptyMatches(t *testing.T) {
	repo := &captureRepo{err: errors.New("should not be called")}
	svc := newTestService(&fakeAnalyzer{}, repo)

	records, err := svc.Record(context.Background(), "a.mp3", "b.xlsx", FieldMatches{{Field: "x", Values: []string{}}})
	if err != nil {
		t.Fatalf("Record: %v", err)
	}
	if len(records) != 0 {
		t.Fatalf("expected no records, got %d", len(records))
	}
}

func TestAnalyzeWithoutAnalyzer(t *testing.T) {
	svc := &Service{}
	if _, err := svc.Analyze(context.Background(), "x"); err == nil {
		t.Fatalf("expected error")
	}
}
