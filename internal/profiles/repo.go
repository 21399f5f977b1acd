package profiles

import (
	"context"
	"errors"
)

var ErrNotFound = errors.New("not found")

// CandidatesRepo defines persistence operations for candidate profiles.
type CandidatesRepo interface {
	Create(ctx context.Context, candidate Candidate) error
	GetByID(ctx context.Context, candidateID string) (Candidate, error)
	Update(ctx context.Context, candidate Candidate) error
	List(ctx context.Context) ([]Candidate, error)
}

// JobsRepo defines persistence operations for job postings.
type JobsRepo interface {
	Create(ctx context.Context, job Job) error
	GetByID(ctx context.Context, jobID string) (Job, error)
	List(ctx context.Context) ([]Job, error)
}
