package analyses

import (
	"context"

	"audiofields-backend/internal/shared/storage/jsondb"
)

const fileTableName = "analysis"

// FileRepo implements Repo on a JSON table file.
type FileRepo struct {
	table *jsondb.Table[Analysis]
}

// NewFileRepo opens (or creates) dir/analysis.json.
func NewFileRepo(dir string) (*FileRepo, error) {
	table, err := jsondb.Open[Analysis](dir, fileTableName)
	if err != nil {
		return nil, err
	}
	return &FileRepo{table: table}, nil
}

// InsertMany appends records to the table.
func (r *FileRepo) InsertMany(ctx context.Context, records []Analysis) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	return r.table.Insert(records...)
}
