package analysis

import (
	"errors"
	"fmt"
)

var (
	// ErrNotFound marks a missing analysis record or candidate.
	ErrNotFound = errors.New("not found")
	// ErrConflict marks an analysis already in flight for the candidate.
	ErrConflict = errors.New("analysis already in progress")
)

// ValidationError reports a rejected trigger request. It never changes
// analysis state.
type ValidationError struct {
	Field string
	Msg   string
}

func (e *ValidationError) Error() string {
	if e.Field == "" {
		return e.Msg
	}
	return fmt.Sprintf("%s: %s", e.Field, e.Msg)
}

// Failure codes recorded on terminal failed records.
const (
	failureAllSourcesFailed = "all_sources_failed"
	failureSuggestions      = "suggestion_generation_failed"
	failureInternal         = "internal_error"
)

const maxFailureReasonLen = 500

// sanitizeReason caps stored failure text so a noisy upstream error cannot
// bloat the record.
func sanitizeReason(reason string) string {
	if len(reason) > maxFailureReasonLen {
		return reason[:maxFailureReasonLen]
	}
	return reason
}
