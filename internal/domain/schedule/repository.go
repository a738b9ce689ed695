package schedule

import (
	"context"
	"time"

	"github.com/google/uuid"
)

type Repository interface {
	// Replace deletes every entry inside scope and inserts the fresh batch in
	// one transaction. Re-running generation over an overlapping range
	// replaces rather than duplicates; entries outside scope are untouched.
	Replace(ctx context.Context, scope ReplaceScope, entries []*Entry) error

	// ListByDoctor returns a doctor's entries with date in [from, to],
	// ordered by date ascending. limit <= 0 means no limit.
	ListByDoctor(ctx context.Context, doctorID uuid.UUID, from, to time.Time, limit int) ([]*Entry, error)

	// ListByDate returns every doctor's entries for one exact date.
	ListByDate(ctx context.Context, date time.Time, limit int) ([]*Entry, error)

	// DeleteByIDs removes individual entries.
	DeleteByIDs(ctx context.Context, ids []uuid.UUID) (int64, error)

	// DeleteRange removes a doctor's entries with date in [from, to] and
	// reports how many rows went away.
	DeleteRange(ctx context.Context, doctorID uuid.UUID, from, to time.Time) (int64, error)
}
