package spreadsheets

import (
	"context"

	"audiofields-backend/internal/shared/util"
)

// Repo defines persistence operations for spreadsheet records. Implementations
// sanitize filenames on both write and lookup.
type Repo interface {
	Upsert(ctx context.Context, sheet Spreadsheet, overwrite bool) (bool, error)
	FindByFilename(ctx context.Context, filename string) (Spreadsheet, error)
}

func recordKey(filename string) (string, error) {
	return util.SanitizeFileName(filename)
}
