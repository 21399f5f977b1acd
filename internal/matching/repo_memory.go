package matching

import (
	"context"
	"sync"
)

// MemoryShortlistRepo keeps shortlists in memory. Used when no database is
// configured and in tests.
type MemoryShortlistRepo struct {
	mu    sync.RWMutex
	byJob map[string][]ShortlistEntry
}

// NewMemoryShortlistRepo constructs an empty MemoryShortlistRepo.
func NewMemoryShortlistRepo() *MemoryShortlistRepo {
	return &MemoryShortlistRepo{byJob: make(map[string][]ShortlistEntry)}
}

// ReplaceForJob swaps the stored shortlist for the job.
func (r *MemoryShortlistRepo) ReplaceForJob(ctx context.Context, jobID string, entries []ShortlistEntry) error {
	_ = ctx
	copied := make([]ShortlistEntry, len(entries))
	copy(copied, entries)
	r.mu.Lock()
	defer r.mu.Unlock()
	r.byJob[jobID] = copied
	return nil
}

// ListForJob returns the stored shortlist in rank order.
func (r *MemoryShortlistRepo) ListForJob(ctx context.Context, jobID string) ([]ShortlistEntry, error) {
	_ = ctx
	r.mu.RLock()
	defer r.mu.RUnlock()
	entries := r.byJob[jobID]
	out := make([]ShortlistEntry, len(entries))
	copy(out, entries)
	return out, nil
}
