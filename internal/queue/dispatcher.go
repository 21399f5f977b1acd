package queue

import (
	"context"
	"time"

	"talent-backend/internal/analysis"
)

// AnalysisDispatcher publishes claimed analysis tasks to the queue for
// out-of-process execution by a worker.
type AnalysisDispatcher struct {
	Client Client
}

// Dispatch enqueues the task.
func (d *AnalysisDispatcher) Dispatch(ctx context.Context, task analysis.Task) error {
	return d.Client.Send(ctx, Message{
		CandidateID:  task.CandidateID,
		PortfolioURL: task.PortfolioURL,
		GithubURL:    task.GithubURL,
		RequestID:    task.RequestID,
		EnqueuedAt:   time.Now().UTC().Format(time.RFC3339Nano),
		Version:      1,
	})
}
