package workerproc

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"strings"
	"time"

	"talent-backend/internal/analysis"
	"talent-backend/internal/queue"
	"talent-backend/internal/shared/telemetry"
)

// MessageMeta captures details useful for logging and diagnostics.
type MessageMeta struct {
	BodyLen int
	BodySHA string
}

// ComputeMeta returns the body length and SHA-256 hash.
func ComputeMeta(body string) MessageMeta {
	if body == "" {
		return MessageMeta{}
	}
	sum := sha256.Sum256([]byte(body))
	return MessageMeta{BodyLen: len(body), BodySHA: hex.EncodeToString(sum[:])}
}

// ErrEmptyBody indicates an empty queue payload.
type ErrEmptyBody struct {
	Meta MessageMeta
}

func (e ErrEmptyBody) Error() string { return "empty message body" }

// ErrDecode indicates a JSON decode failure.
type ErrDecode struct {
	Meta MessageMeta
	Err  error
}

func (e ErrDecode) Error() string {
	if e.Err == nil {
		return "decode message"
	}
	return "decode message: " + e.Err.Error()
}

// ErrMissingCandidateID indicates a message missing the candidate id.
type ErrMissingCandidateID struct {
	Meta      MessageMeta
	RequestID string
}

func (e ErrMissingCandidateID) Error() string { return "missing candidate id" }

// ParseMessage validates and decodes the queue payload.
func ParseMessage(body string) (queue.Message, MessageMeta, error) {
	meta := ComputeMeta(body)
	if strings.TrimSpace(body) == "" {
		return queue.Message{}, meta, ErrEmptyBody{Meta: meta}
	}

	msg, err := queue.DecodeMessage([]byte(body))
	if err != nil {
		return queue.Message{}, meta, ErrDecode{Meta: meta, Err: err}
	}
	if strings.TrimSpace(msg.CandidateID) == "" {
		return msg, meta, ErrMissingCandidateID{Meta: meta, RequestID: msg.RequestID}
	}
	return msg, meta, nil
}

// HandleMessage runs one queued analysis. A message for a candidate whose
// claim was already consumed is skipped inside the service, so redelivery
// is safe.
func HandleMessage(ctx context.Context, svc *analysis.Service, msg queue.Message) {
	svc.Execute(ctx, analysis.Task{
		CandidateID:  msg.CandidateID,
		PortfolioURL: msg.PortfolioURL,
		GithubURL:    msg.GithubURL,
		RequestID:    msg.RequestID,
	})
}

// Worker consumes analysis tasks from the queue and drives them through
// the orchestrator.
type Worker struct {
	Consumer    queue.Consumer
	Service     *analysis.Service
	Concurrency int
	PollTimeout time.Duration
}

// NewWorker constructs a Worker with sane defaults.
func NewWorker(consumer queue.Consumer, svc *analysis.Service) *Worker {
	return &Worker{
		Consumer:    consumer,
		Service:     svc,
		Concurrency: 4,
		PollTimeout: 5 * time.Second,
	}
}

// Run consumes messages until the context is canceled. Each message runs
// on one of Concurrency slots; candidates are independent, so parallel
// execution is safe.
func (w *Worker) Run(ctx context.Context) error {
	slots := make(chan struct{}, w.Concurrency)
	for {
		if err := ctx.Err(); err != nil {
			return err
		}
		msg, err := w.Consumer.Receive(ctx, w.PollTimeout)
		if err != nil {
			if ctx.Err() != nil {
				return ctx.Err()
			}
			telemetry.Error("worker.receive_failed", map[string]any{"error": err.Error()})
			time.Sleep(time.Second)
			continue
		}
		if msg == nil {
			continue
		}
		if strings.TrimSpace(msg.CandidateID) == "" {
			telemetry.Error("worker.invalid_message", map[string]any{"request_id": msg.RequestID})
			continue
		}

		slots <- struct{}{}
		go func(msg queue.Message) {
			defer func() { <-slots }()
			telemetry.Info("worker.message", map[string]any{
				"request_id":   msg.RequestID,
				"candidate_id": msg.CandidateID,
			})
			HandleMessage(analysis.WithRequestID(ctx, msg.RequestID), w.Service, msg)
		}(*msg)
	}
}
