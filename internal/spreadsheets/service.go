package spreadsheets

import (
	"context"
	"time"
)

// Service records uploaded spreadsheets.
type Service struct {
	Repo Repo
	Now  func() time.Time
}

func NewService(repo Repo) *Service {
	return &Service{
		Repo: repo,
		Now:  func() time.Time { return time.Now().UTC() },
	}
}

// Save persists filename and fields without overwriting an existing record.
func (s *Service) Save(ctx context.Context, filename string, fields []string) (Spreadsheet, error) {
	key, err := recordKey(filename)
	if err != nil {
		return Spreadsheet{}, err
	}
	sheet := Spreadsheet{
		Filename:  key,
		Fields:    fields,
		CreatedAt: s.Now(),
	}
	if _, err := s.Repo.Upsert(ctx, sheet, false); err != nil {
		return Spreadsheet{}, err
	}
	return sheet, nil
}
