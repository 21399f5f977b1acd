package analysis

import (
	"context"
	"sync"
	"time"
)

// MemoryStore keeps analysis records in memory. Used when no database is
// configured and in tests. Safe for concurrent use; the mutex is what makes
// Claim a compare-and-set.
type MemoryStore struct {
	mu      sync.Mutex
	current map[string]Record
	history map[string][]Record
}

// NewMemoryStore constructs an empty MemoryStore.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		current: make(map[string]Record),
		history: make(map[string][]Record),
	}
}

// Load returns the current record for the candidate.
func (s *MemoryStore) Load(ctx context.Context, candidateID string) (Record, error) {
	if err := ctx.Err(); err != nil {
		return Record{}, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	record, ok := s.current[candidateID]
	if !ok {
		return Record{}, ErrNotFound
	}
	return record, nil
}

// Claim transitions the candidate to queued unless work is in flight.
func (s *MemoryStore) Claim(ctx context.Context, candidateID string) (Record, error) {
	if err := ctx.Err(); err != nil {
		return Record{}, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	record := s.current[candidateID]
	if record.Status.InFlight() {
		return Record{}, ErrConflict
	}
	record.CandidateID = candidateID
	record.Status = StatusQueued
	record.Attempt++
	record.FailureReason = ""
	record.UpdatedAt = time.Now().UTC()
	s.current[candidateID] = record
	return record, nil
}

// MarkAnalyzing transitions queued to analyzing.
func (s *MemoryStore) MarkAnalyzing(ctx context.Context, candidateID string) (Record, error) {
	if err := ctx.Err(); err != nil {
		return Record{}, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	record, ok := s.current[candidateID]
	if !ok || record.Status != StatusQueued {
		return Record{}, ErrConflict
	}
	record.Status = StatusAnalyzing
	record.UpdatedAt = time.Now().UTC()
	s.current[candidateID] = record
	return record, nil
}

// SaveResult stores the terminal record and appends it to history.
func (s *MemoryStore) SaveResult(ctx context.Context, record Record) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	record.UpdatedAt = time.Now().UTC()
	s.current[record.CandidateID] = record
	s.history[record.CandidateID] = append(s.history[record.CandidateID], record)
	return nil
}

// History returns prior results, newest first.
func (s *MemoryStore) History(ctx context.Context, candidateID string, limit int) ([]Record, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	stored := s.history[candidateID]
	out := make([]Record, 0, len(stored))
	for i := len(stored) - 1; i >= 0; i-- {
		if limit > 0 && len(out) >= limit {
			break
		}
		out = append(out, stored[i])
	}
	return out, nil
}
