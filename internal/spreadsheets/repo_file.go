package spreadsheets

import (
	"context"

	"audiofields-backend/internal/shared/storage/jsondb"
)

const fileTableName = "excels"

// FileRepo implements Repo on a JSON table file.
type FileRepo struct {
	table *jsondb.Table[Spreadsheet]
}

// NewFileRepo opens (or creates) dir/excels.json.
func NewFileRepo(dir string) (*FileRepo, error) {
	table, err := jsondb.Open[Spreadsheet](dir, fileTableName)
	if err != nil {
		return nil, err
	}
	return &FileRepo{table: table}, nil
}

func (r *FileRepo) Upsert(ctx context.Context, sheet Spreadsheet, overwrite bool) (bool, error) {
	if err := ctx.Err(); err != nil {
		return false, err
	}
	key, err := recordKey(sheet.Filename)
	if err != nil {
		return false, err
	}
	sheet.Filename = key
	return r.table.Upsert(sheet, func(s Spreadsheet) bool { return s.Filename == key }, overwrite)
}

func (r *FileRepo) FindByFilename(ctx context.Context, filename string) (Spreadsheet, error) {
	if err := ctx.Err(); err != nil {
		return Spreadsheet{}, err
	}
	key, err := recordKey(filename)
	if err != nil {
		return Spreadsheet{}, ErrNotFound
	}
	sheet, ok, err := r.table.Find(func(s Spreadsheet) bool { return s.Filename == key })
	if err != nil {
		return Spreadsheet{}, err
	}
	if !ok {
		return Spreadsheet{}, ErrNotFound
	}
	return sheet, nil
}
