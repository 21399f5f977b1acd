package analysis

import "context"

// Store is the persistence boundary for analysis records. Load/SaveResult
// have simple last-write-wins key-value semantics keyed by candidate id;
// Claim and MarkAnalyzing are atomic state transitions.
type Store interface {
	// Load returns the current record, or ErrNotFound when the candidate
	// has never been analyzed.
	Load(ctx context.Context, candidateID string) (Record, error)

	// Claim atomically transitions the candidate to queued and increments
	// the attempt count. Returns ErrConflict when an analysis is already
	// queued or analyzing. This is the single-flight gate.
	Claim(ctx context.Context, candidateID string) (Record, error)

	// MarkAnalyzing transitions queued to analyzing. Returns ErrConflict
	// when the record is not queued.
	MarkAnalyzing(ctx context.Context, candidateID string) (Record, error)

	// SaveResult writes a terminal record and appends it to the history.
	SaveResult(ctx context.Context, record Record) error

	// History returns prior results, newest first, capped at limit.
	History(ctx context.Context, candidateID string, limit int) ([]Record, error)
}
