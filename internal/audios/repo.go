package audios

import (
	"context"

	"audiofields-backend/internal/shared/util"
)

// Repo defines persistence operations for audio records. Implementations
// sanitize filenames on both write and lookup.
type Repo interface {
	// Upsert stores audio under its sanitized filename. An existing record is
	// replaced only when overwrite is set; the boolean reports whether the
	// store changed.
	Upsert(ctx context.Context, audio Audio, overwrite bool) (bool, error)
	FindByFilename(ctx context.Context, filename string) (Audio, error)
}

func recordKey(filename string) (string, error) {
	return util.SanitizeFileName(filename)
}
