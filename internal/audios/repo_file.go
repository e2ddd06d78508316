package audios

import (
	"context"

	"audiofields-backend/internal/shared/storage/jsondb"
)

const fileTableName = "audios"

// FileRepo implements Repo on a JSON table file.
type FileRepo struct {
	table *jsondb.Table[Audio]
}

// NewFileRepo opens (or creates) dir/audios.json.
func NewFileRepo(dir string) (*FileRepo, error) {
	table, err := jsondb.Open[Audio](dir, fileTableName)
	if err != nil {
		return nil, err
	}
	return &FileRepo{table: table}, nil
}

func (r *FileRepo) Upsert(ctx context.Context, audio Audio, overwrite bool) (bool, error) {
	if err := ctx.Err(); err != nil {
		return false, err
	}
	key, err := recordKey(audio.Filename)
	if err != nil {
		return false, err
	}
	audio.Filename = key
	return r.table.Upsert(audio, func(a Audio) bool { return a.Filename == key }, overwrite)
}

func (r *FileRepo) FindByFilename(ctx context.Context, filename string) (Audio, error) {
	if err := ctx.Err(); err != nil {
		return Audio{}, err
	}
	key, err := recordKey(filename)
	if err != nil {
		return Audio{}, ErrNotFound
	}
	audio, ok, err := r.table.Find(func(a Audio) bool { return a.Filename == key })
	if err != nil {
		return Audio{}, err
	}
	if !ok {
		return Audio{}, ErrNotFound
	}
	return audio, nil
}
