package analysis

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"golang.org/x/sync/errgroup"

	"talent-backend/internal/profiles"
	"talent-backend/internal/shared/metrics"
	"talent-backend/internal/shared/telemetry"
	"talent-backend/internal/signals"
	"talent-backend/internal/suggest"
)

// externalCallCeiling bounds every external call, signal fetches and
// suggestion generation alike, so a stuck dependency cannot hold the
// single-flight claim indefinitely.
const externalCallCeiling = 60 * time.Second

// Dispatcher hands a claimed task to out-of-band execution. A nil
// dispatcher on the Service runs the task on a goroutine in-process.
type Dispatcher interface {
	Dispatch(ctx context.Context, task Task) error
}

// RequestInput is the analysis trigger payload. At least one URL must be
// present.
type RequestInput struct {
	CandidateID  string `validate:"required"`
	PortfolioURL string `validate:"omitempty,url"`
	GithubURL    string `validate:"omitempty,url"`
}

// Service orchestrates the per-candidate analysis state machine:
// none -> queued -> analyzing -> completed|failed. The Store's Claim is
// the single-flight gate; different candidates run fully independently.
type Service struct {
	Store      Store
	Candidates profiles.CandidatesRepo
	Fetcher    signals.Fetcher
	Suggester  suggest.Client
	Dispatcher Dispatcher

	validate     *validator.Validate
	now          func() time.Time
	fetchTimeout time.Duration
}

// NewService constructs a Service. Candidates and Dispatcher may be nil.
func NewService(store Store, candidates profiles.CandidatesRepo, fetcher signals.Fetcher, suggester suggest.Client, dispatcher Dispatcher) *Service {
	return &Service{
		Store:        store,
		Candidates:   candidates,
		Fetcher:      fetcher,
		Suggester:    suggester,
		Dispatcher:   dispatcher,
		validate:     validator.New(),
		now:          time.Now,
		fetchTimeout: externalCallCeiling,
	}
}

// RequestAnalysis validates the trigger, claims the single-flight slot and
// starts execution out-of-band. The returned record is the queued state the
// caller can begin polling against.
func (s *Service) RequestAnalysis(ctx context.Context, input RequestInput) (Record, error) {
	if input.PortfolioURL == "" && input.GithubURL == "" {
		return Record{}, &ValidationError{Msg: "at least one of portfolioUrl or githubUrl is required"}
	}
	if err := s.validate.Struct(input); err != nil {
		var fieldErrs validator.ValidationErrors
		if errors.As(err, &fieldErrs) && len(fieldErrs) > 0 {
			return Record{}, &ValidationError{Field: fieldErrs[0].Field(), Msg: "invalid value"}
		}
		return Record{}, &ValidationError{Msg: err.Error()}
	}

	if s.Candidates != nil {
		if _, err := s.Candidates.GetByID(ctx, input.CandidateID); err != nil {
			if errors.Is(err, profiles.ErrNotFound) {
				return Record{}, fmt.Errorf("candidate %s: %w", input.CandidateID, ErrNotFound)
			}
			return Record{}, err
		}
	}

	record, err := s.Store.Claim(ctx, input.CandidateID)
	if err != nil {
		if errors.Is(err, ErrConflict) {
			metrics.IncAnalysisConflict()
			telemetry.Info("analysis.conflict", map[string]any{
				"request_id":   requestIDFromContext(ctx),
				"candidate_id": input.CandidateID,
			})
		}
		return Record{}, err
	}

	task := Task{
		CandidateID:  input.CandidateID,
		PortfolioURL: input.PortfolioURL,
		GithubURL:    input.GithubURL,
		RequestID:    requestIDFromContext(ctx),
	}
	if s.Dispatcher != nil {
		if err := s.Dispatcher.Dispatch(ctx, task); err != nil {
			s.failAnalysis(ctx, record, failureInternal, fmt.Errorf("dispatch: %w", err), s.now().UTC())
			return Record{}, err
		}
	} else {
		go s.Execute(backgroundWithRequestID(ctx), task)
	}

	telemetry.Info("analysis.status", map[string]any{
		"request_id":        task.RequestID,
		"candidate_id":      input.CandidateID,
		"status":            StatusQueued,
		"status_transition": "none->queued",
		"attempt":           record.Attempt,
	})
	return record, nil
}

// Execute runs one claimed analysis to a terminal state. Called on a
// goroutine for inline dispatch or by a queue worker. Duplicate delivery is
// harmless: MarkAnalyzing refuses anything not in queued state.
func (s *Service) Execute(ctx context.Context, task Task) {
	ctx = WithRequestID(ctx, task.RequestID)
	startedAt := s.now().UTC()

	record, err := s.Store.MarkAnalyzing(ctx, task.CandidateID)
	if err != nil {
		telemetry.Info("analysis.skip", map[string]any{
			"request_id":   task.RequestID,
			"candidate_id": task.CandidateID,
			"reason":       err.Error(),
		})
		return
	}
	defer func() {
		if r := recover(); r != nil {
			s.failAnalysis(ctx, record, failureInternal, fmt.Errorf("panic: %v", r), startedAt)
		}
	}()

	metrics.IncAnalysisStarted()
	telemetry.Info("analysis.status", map[string]any{
		"request_id":        task.RequestID,
		"candidate_id":      task.CandidateID,
		"status":            StatusAnalyzing,
		"status_transition": "queued->analyzing",
		"attempt":           record.Attempt,
	})

	githubFacts, portfolioFacts, fetchErr := s.fetchFacts(ctx, task)
	if fetchErr != nil {
		s.failAnalysis(ctx, record, failureAllSourcesFailed, fetchErr, startedAt)
		return
	}

	scores := computeScores(githubFacts, portfolioFacts)

	improvements := []string{}
	if s.Suggester != nil {
		suggestCtx, cancel := context.WithTimeout(ctx, s.fetchTimeout)
		raw, err := s.Suggester.GenerateImprovements(suggestCtx, suggest.Input{
			Github:                valueOrZeroGithub(githubFacts),
			Portfolio:             valueOrZeroPortfolio(portfolioFacts),
			HasGithub:             githubFacts != nil,
			HasPortfolio:          portfolioFacts != nil,
			CodeQuality:           int(scores.CodeQuality),
			ProjectDepth:          int(scores.ProjectDepth),
			PortfolioCompleteness: int(scores.PortfolioCompleteness),
		})
		cancel()
		if err != nil {
			s.failAnalysis(ctx, record, failureSuggestions, err, startedAt)
			return
		}
		// Provider output is untrusted; unusable text degrades to an empty
		// list while the scores stay valid.
		improvements = parseSuggestions(raw)
	}

	analyzedAt := s.nextAnalyzedAt(record.AnalyzedAt)
	record.Status = StatusCompleted
	record.Scores = scores
	record.Improvements = improvements
	record.GithubFacts = githubFacts
	record.PortfolioFacts = portfolioFacts
	record.FailureReason = ""
	record.AnalyzedAt = &analyzedAt

	if err := s.Store.SaveResult(ctx, record); err != nil {
		telemetry.Error("analysis.save_failed", map[string]any{
			"request_id":   task.RequestID,
			"candidate_id": task.CandidateID,
			"error":        err.Error(),
		})
		return
	}

	metrics.IncAnalysisCompleted()
	metrics.ObserveAnalysisDurationMs(float64(s.now().UTC().Sub(startedAt).Milliseconds()))
	telemetry.Info("analysis.status", map[string]any{
		"request_id":        task.RequestID,
		"candidate_id":      task.CandidateID,
		"status":            StatusCompleted,
		"status_transition": "analyzing->completed",
		"overall":           scores.Overall,
		"suggestions":       len(improvements),
	})
}

// fetchFacts runs both source fetches concurrently with a per-call
// ceiling. One failing source degrades to partial facts; both failing is
// the only fatal outcome.
func (s *Service) fetchFacts(ctx context.Context, task Task) (*signals.GithubFacts, *signals.PortfolioFacts, error) {
	var (
		githubFacts    *signals.GithubFacts
		portfolioFacts *signals.PortfolioFacts
		githubErr      error
		portfolioErr   error
	)

	group, groupCtx := errgroup.WithContext(ctx)
	if task.GithubURL != "" {
		group.Go(func() error {
			callCtx, cancel := context.WithTimeout(groupCtx, s.fetchTimeout)
			defer cancel()
			facts, err := s.Fetcher.FetchGithubFacts(callCtx, task.GithubURL)
			if err != nil {
				githubErr = err
				return nil
			}
			githubFacts = &facts
			return nil
		})
	}
	if task.PortfolioURL != "" {
		group.Go(func() error {
			callCtx, cancel := context.WithTimeout(groupCtx, s.fetchTimeout)
			defer cancel()
			facts, err := s.Fetcher.FetchPortfolioFacts(callCtx, task.PortfolioURL)
			if err != nil {
				portfolioErr = err
				return nil
			}
			portfolioFacts = &facts
			return nil
		})
	}
	_ = group.Wait()

	for source, err := range map[string]error{"github": githubErr, "portfolio": portfolioErr} {
		if err != nil {
			telemetry.Error("analysis.fetch_failed", map[string]any{
				"request_id":   task.RequestID,
				"candidate_id": task.CandidateID,
				"source":       source,
				"error":        err.Error(),
			})
		}
	}

	if githubFacts == nil && portfolioFacts == nil {
		reasons := make([]string, 0, 2)
		if githubErr != nil {
			reasons = append(reasons, "github: "+githubErr.Error())
		}
		if portfolioErr != nil {
			reasons = append(reasons, "portfolio: "+portfolioErr.Error())
		}
		return nil, nil, errors.New(strings.Join(reasons, "; "))
	}
	return githubFacts, portfolioFacts, nil
}

// failAnalysis writes the terminal failed record. A failed record is a
// normal outcome the candidate retries with a new explicit request.
func (s *Service) failAnalysis(ctx context.Context, record Record, code string, cause error, startedAt time.Time) {
	analyzedAt := s.nextAnalyzedAt(record.AnalyzedAt)
	record.Status = StatusFailed
	record.FailureReason = sanitizeReason(code + ": " + cause.Error())
	record.AnalyzedAt = &analyzedAt

	if err := s.Store.SaveResult(ctx, record); err != nil {
		telemetry.Error("analysis.save_failed", map[string]any{
			"request_id":   requestIDFromContext(ctx),
			"candidate_id": record.CandidateID,
			"error":        err.Error(),
		})
		return
	}

	metrics.IncAnalysisFailed()
	metrics.ObserveAnalysisDurationMs(float64(s.now().UTC().Sub(startedAt).Milliseconds()))
	telemetry.Error("analysis.status", map[string]any{
		"request_id":        requestIDFromContext(ctx),
		"candidate_id":      record.CandidateID,
		"status":            StatusFailed,
		"status_transition": "analyzing->failed",
		"code":              code,
		"reason":            record.FailureReason,
	})
}

// nextAnalyzedAt guarantees the timestamp strictly increases across
// re-analyses so polling clients can detect a new result even when they
// miss intermediate states.
func (s *Service) nextAnalyzedAt(previous *time.Time) time.Time {
	now := s.now().UTC()
	if previous != nil && !now.After(*previous) {
		return previous.Add(time.Millisecond)
	}
	return now
}

// GetStatus returns the latest written state. A candidate never analyzed
// reports status none rather than an error.
func (s *Service) GetStatus(ctx context.Context, candidateID string) (Record, error) {
	if candidateID == "" {
		return Record{}, &ValidationError{Field: "candidateId", Msg: "is required"}
	}
	record, err := s.Store.Load(ctx, candidateID)
	if errors.Is(err, ErrNotFound) {
		return Record{CandidateID: candidateID, Status: StatusNone}, nil
	}
	return record, err
}

// History returns prior analysis results, newest first.
func (s *Service) History(ctx context.Context, candidateID string, limit int) ([]Record, error) {
	if candidateID == "" {
		return nil, &ValidationError{Field: "candidateId", Msg: "is required"}
	}
	return s.Store.History(ctx, candidateID, limit)
}

func valueOrZeroGithub(facts *signals.GithubFacts) signals.GithubFacts {
	if facts == nil {
		return signals.GithubFacts{}
	}
	return *facts
}

func valueOrZeroPortfolio(facts *signals.PortfolioFacts) signals.PortfolioFacts {
	if facts == nil {
		return signals.PortfolioFacts{}
	}
	return *facts
}
