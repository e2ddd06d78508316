package analyses

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"

	"audiofields-backend/internal/language"
	"audiofields-backend/internal/shared/telemetry"
)

// Service runs entity analysis and records the matches.
type Service struct {
	Language language.Analyzer
	Repo     Repo
	Now      func() time.Time
	NewID    func() string
}

// NewService wires a Service with wall-clock time and random UUIDs.
func NewService(analyzer language.Analyzer, repo Repo) *Service {
	return &Service{
		Language: analyzer,
		Repo:     repo,
		Now:      func() time.Time { return time.Now().UTC() },
		NewID:    uuid.NewString,
	}
}

// Analyze sends text to the entity analysis backend once.
func (s *Service) Analyze(ctx context.Context, text string) (language.Response, error) {
	if s.Language == nil {
		return language.Response{}, errors.New("language analyzer not configured")
	}
	return s.Language.AnalyzeEntities(ctx, text)
}

// Extract analyzes text and matches the entities against fields.
func (s *Service) Extract(ctx context.Context, text string, fields []string) (FieldMatches, error) {
	resp, err := s.Analyze(ctx, text)
	if err != nil {
		return nil, err
	}
	matches := MatchEntities(resp, fields)
	telemetry.Info("analyses.entities.matched", map[string]any{
		"entities": len(resp.Entities),
		"matches":  matches.Total(),
	})
	return matches, nil
}

// Record persists one Analysis per (field, value) pair and returns them.
func (s *Service) Record(ctx context.Context, audioFilename, excelFilename string, matches FieldMatches) ([]Analysis, error) {
	records := s.build(audioFilename, excelFilename, matches)
	if len(records) == 0 {
		return records, nil
	}
	if err := s.Repo.InsertMany(ctx, records); err != nil {
		return nil, err
	}
	return records, nil
}

func (s *Service) build(audioFilename, excelFilename string, matches FieldMatches) []Analysis {
	now := s.Now()
	records := make([]Analysis, 0, matches.Total())
	for _, m := range matches {
		for _, value := range m.Values {
			records = append(records, Analysis{
				ID:            s.NewID(),
				AudioFilename: audioFilename,
				ExcelFilename: excelFilename,
				Field:         m.Field,
				Value:         value,
				CreatedAt:     now,
			})
		}
	}
	return records
}
