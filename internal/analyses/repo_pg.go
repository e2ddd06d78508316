package analyses

import (
	"context"
	"database/sql"
)

// PGRepo implements Repo using Postgres.
type PGRepo struct {
	DB *sql.DB
}

// InsertMany inserts all records in one transaction.
func (r *PGRepo) InsertMany(ctx context.Context, records []Analysis) error {
	if len(records) == 0 {
		return nil
	}
	const query = `
INSERT INTO analysis (id, audio_filename, excel_filename, field, value, created_at)
VALUES ($1, $2, $3, $4, $5, $6)`

	tx, err := r.DB.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	for _, rec := range records {
		if _, err := tx.ExecContext(ctx, query,
			rec.ID,
			rec.AudioFilename,
			rec.ExcelFilename,
			rec.Field,
			rec.Value,
			rec.CreatedAt,
		); err != nil {
			return err
		}
	}
	return tx.Commit()
}
