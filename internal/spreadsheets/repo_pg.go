package spreadsheets

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
)

// PGRepo implements Repo using Postgres.
type PGRepo struct {
	DB *sql.DB
}

func (r *PGRepo) Upsert(ctx context.Context, sheet Spreadsheet, overwrite bool) (bool, error) {
	key, err := recordKey(sheet.Filename)
	if err != nil {
		return false, err
	}
	fields := sheet.Fields
	if fields == nil {
		fields = []string{}
	}
	payload, err := json.Marshal(fields)
	if err != nil {
		return false, fmt.Errorf("marshal fields: %w", err)
	}

	query := `
INSERT INTO excels (filename, fields, created_at)
VALUES ($1, $2, $3)
ON CONFLICT (filename) DO NOTHING`
	if overwrite {
		query = `
INSERT INTO excels (filename, fields, created_at)
VALUES ($1, $2, $3)
ON CONFLICT (filename) DO UPDATE SET fields = EXCLUDED.fields, created_at = EXCLUDED.created_at`
	}

	res, err := r.DB.ExecContext(ctx, query, key, string(payload), sheet.CreatedAt)
	if err != nil {
		return false, err
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return false, err
	}
	return affected > 0, nil
}

func (r *PGRepo) FindByFilename(ctx context.Context, filename string) (Spreadsheet, error) {
	key, err := recordKey(filename)
	if err != nil {
		return Spreadsheet{}, ErrNotFound
	}

	const query = `
SELECT filename, fields, created_at
FROM excels
WHERE filename = $1
LIMIT 1`
	var s Spreadsheet
	var fields []byte
	err = r.DB.QueryRowContext(ctx, query, key).Scan(&s.Filename, &fields, &s.CreatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return Spreadsheet{}, ErrNotFound
		}
		return Spreadsheet{}, err
	}
	if len(fields) > 0 {
		if err := json.Unmarshal(fields, &s.Fields); err != nil {
			return Spreadsheet{}, fmt.Errorf("decode fields: %w", err)
		}
	}
	return s, nil
}
