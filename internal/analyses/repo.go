package analyses

import "context"

// Repo defines persistence operations for analysis records.
type Repo interface {
	// InsertMany appends records without any uniqueness check.
	InsertMany(ctx context.Context, records []Analysis) error
}
