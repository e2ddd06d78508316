package audios

import (
	"context"
	"database/sql"
	"errors"
)

// PGRepo implements Repo using Postgres.
type PGRepo struct {
	DB *sql.DB
}

func (r *PGRepo) Upsert(ctx context.Context, audio Audio, overwrite bool) (bool, error) {
	key, err := recordKey(audio.Filename)
	if err != nil {
		return false, err
	}

	query := `
INSERT INTO audios (filename, transcription, content_sha256, created_at)
VALUES ($1, $2, $3, $4)
ON CONFLICT (filename) DO NOTHING`
	if overwrite {
		query = `
INSERT INTO audios (filename, transcription, content_sha256, created_at)
VALUES ($1, $2, $3, $4)
ON CONFLICT (filename) DO UPDATE SET transcription = EXCLUDED.transcription, content_sha256 = EXCLUDED.content_sha256, created_at = EXCLUDED.created_at`
	}

	res, err := r.DB.ExecContext(ctx, query, key, nullString(audio.Transcription), nullString(audio.ContentSHA256), audio.CreatedAt)
	if err != nil {
		return false, err
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return false, err
	}
	return affected > 0, nil
}

func (r *PGRepo) FindByFilename(ctx context.Context, filename string) (Audio, error) {
	key, err := recordKey(filename)
	if err != nil {
		return Audio{}, ErrNotFound
	}

	const query = `
SELECT filename, transcription, content_sha256, created_at
FROM audios
WHERE filename = $1
LIMIT 1`
	var a Audio
	var transcription sql.NullString
	var digest sql.NullString
	err = r.DB.QueryRowContext(ctx, query, key).Scan(&a.Filename, &transcription, &digest, &a.CreatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return Audio{}, ErrNotFound
		}
		return Audio{}, err
	}
	if transcription.Valid {
		a.Transcription = transcription.String
	}
	if digest.Valid {
		a.ContentSHA256 = digest.String
	}
	return a, nil
}

func nullString(s string) sql.NullString {
	return sql.NullString{String: s, Valid: s != ""}
}
