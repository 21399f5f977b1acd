package profiles

import (
	"context"
	"sort"
	"sync"
	"time"
)

// MemoryCandidatesRepo stores candidates in memory and is safe for concurrent use.
type MemoryCandidatesRepo struct {
	mu   sync.RWMutex
	byID map[string]Candidate
}

// NewMemoryCandidatesRepo constructs a MemoryCandidatesRepo.
func NewMemoryCandidatesRepo() *MemoryCandidatesRepo {
	return &MemoryCandidatesRepo{byID: make(map[string]Candidate)}
}

// Create stores the candidate.
func (r *MemoryCandidatesRepo) Create(ctx context.Context, candidate Candidate) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	r.byID[candidate.ID] = candidate
	return nil
}

// GetByID returns a candidate by its ID.
func (r *MemoryCandidatesRepo) GetByID(ctx context.Context, candidateID string) (Candidate, error) {
	if err := ctx.Err(); err != nil {
		return Candidate{}, err
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	candidate, ok := r.byID[candidateID]
	if !ok {
		return Candidate{}, ErrNotFound
	}
	return candidate, nil
}

// Update replaces an existing candidate.
func (r *MemoryCandidatesRepo) Update(ctx context.Context, candidate Candidate) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.byID[candidate.ID]; !ok {
		return ErrNotFound
	}
	candidate.UpdatedAt = time.Now().UTC()
	r.byID[candidate.ID] = candidate
	return nil
}

// List returns all candidates ordered by ID for deterministic iteration.
func (r *MemoryCandidatesRepo) List(ctx context.Context) ([]Candidate, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]Candidate, 0, len(r.byID))
	for _, c := range r.byID {
		out = append(out, c)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

// MemoryJobsRepo stores jobs in memory and is safe for concurrent use.
type MemoryJobsRepo struct {
	mu   sync.RWMutex
	byID map[string]Job
}

// NewMemoryJobsRepo constructs a MemoryJobsRepo.
func NewMemoryJobsRepo() *MemoryJobsRepo {
	return &MemoryJobsRepo{byID: make(map[string]Job)}
}

// Create stores the job.
func (r *MemoryJobsRepo) Create(ctx context.Context, job Job) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	r.byID[job.ID] = job
	return nil
}

// GetByID returns a job by its ID.
func (r *MemoryJobsRepo) GetByID(ctx context.Context, jobID string) (Job, error) {
	if err := ctx.Err(); err != nil {
		return Job{}, err
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	job, ok := r.byID[jobID]
	if !ok {
		return Job{}, ErrNotFound
	}
	return job, nil
}

// List returns all jobs ordered by ID.
func (r *MemoryJobsRepo) List(ctx context.Context) ([]Job, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]Job, 0, len(r.byID))
	for _, j := range r.byID {
		out = append(out, j)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}
