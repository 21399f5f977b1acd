package matching

import "context"

// ShortlistRepo persists the latest shortlist per job. Writes replace the
// whole batch; there is no incremental merge.
type ShortlistRepo interface {
	ReplaceForJob(ctx context.Context, jobID string, entries []ShortlistEntry) error
	ListForJob(ctx context.Context, jobID string) ([]ShortlistEntry, error)
}
