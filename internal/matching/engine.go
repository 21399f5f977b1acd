package matching

import (
	"context"
	"errors"
	"sort"
	"time"

	"talent-backend/internal/profiles"
	"talent-backend/internal/shared/metrics"
	"talent-backend/internal/shared/telemetry"
)

// SignalSource supplies completed analysis scores for a candidate. A nil
// result with nil error means no usable analysis exists.
type SignalSource interface {
	AnalysisSignals(ctx context.Context, candidateID string) (*AnalysisSignals, error)
}

// Engine computes ranked shortlists for jobs. Given fixed inputs it is
// deterministic: no randomness and no time-dependent tie-breaking.
type Engine struct {
	Jobs       profiles.JobsRepo
	Candidates profiles.CandidatesRepo
	Signals    SignalSource   // optional
	Shortlists ShortlistRepo  // optional persistence
	now        func() time.Time
}

// NewEngine constructs an Engine. Signals and shortlists may be nil.
func NewEngine(jobs profiles.JobsRepo, candidates profiles.CandidatesRepo, signals SignalSource, shortlists ShortlistRepo) *Engine {
	return &Engine{
		Jobs:       jobs,
		Candidates: candidates,
		Signals:    signals,
		Shortlists: shortlists,
		now:        time.Now,
	}
}

// ComputeShortlist scores every candidate in the pool against the job and
// returns the ranked shortlist. An empty candidateIDs selects the full
// candidate set; maxCandidates <= 0 means no cap.
func (e *Engine) ComputeShortlist(ctx context.Context, jobID string, candidateIDs []string, maxCandidates int) ([]ShortlistEntry, error) {
	started := metrics.NowMillis()

	job, err := e.Jobs.GetByID(ctx, jobID)
	if err != nil {
		if errors.Is(err, profiles.ErrNotFound) {
			return nil, &NotFoundError{Resource: "job", ID: jobID}
		}
		return nil, err
	}

	pool, err := e.loadPool(ctx, candidateIDs)
	if err != nil {
		return nil, err
	}
	if len(pool) == 0 {
		return []ShortlistEntry{}, nil
	}

	now := e.now().UTC()
	entries := make([]ShortlistEntry, 0, len(pool))
	for _, candidate := range pool {
		sub := ComputeSubScores(candidate, job, e.analysisSignals(ctx, candidate.ID), now)
		entries = append(entries, ShortlistEntry{
			JobID:       jobID,
			CandidateID: candidate.ID,
			MatchScore:  CompositeScore(sub),
			SubScores:   sub,
			ComputedAt:  now,
		})
	}

	entries = dropNoOverlap(entries)
	sortEntries(entries)
	assignDenseRanks(entries)
	if maxCandidates > 0 && len(entries) > maxCandidates {
		entries = entries[:maxCandidates]
	}

	if e.Shortlists != nil {
		if err := e.Shortlists.ReplaceForJob(ctx, jobID, entries); err != nil {
			telemetry.Error("shortlist.persist_failed", map[string]any{
				"jobId": jobID,
				"error": err.Error(),
			})
		}
	}

	metrics.IncShortlistComputed()
	metrics.ObserveShortlistDurationMs(float64(metrics.NowMillis() - started))
	telemetry.Info("shortlist.computed", map[string]any{
		"jobId":      jobID,
		"poolSize":   len(pool),
		"resultSize": len(entries),
	})
	return entries, nil
}

func (e *Engine) loadPool(ctx context.Context, candidateIDs []string) ([]profiles.Candidate, error) {
	if len(candidateIDs) == 0 {
		return e.Candidates.List(ctx)
	}
	pool := make([]profiles.Candidate, 0, len(candidateIDs))
	for _, id := range candidateIDs {
		candidate, err := e.Candidates.GetByID(ctx, id)
		if err != nil {
			if errors.Is(err, profiles.ErrNotFound) {
				return nil, &NotFoundError{Resource: "candidate", ID: id}
			}
			return nil, err
		}
		pool = append(pool, candidate)
	}
	return pool, nil
}

// analysisSignals is best effort. A failing signal source degrades to the
// neutral defaults instead of failing the shortlist run.
func (e *Engine) analysisSignals(ctx context.Context, candidateID string) *AnalysisSignals {
	if e.Signals == nil {
		return nil
	}
	signals, err := e.Signals.AnalysisSignals(ctx, candidateID)
	if err != nil {
		telemetry.Error("shortlist.signals_failed", map[string]any{
			"candidateId": candidateID,
			"error":       err.Error(),
		})
		return nil
	}
	return signals
}

// dropNoOverlap removes candidates without any required-skill overlap,
// unless that would empty the pool entirely.
func dropNoOverlap(entries []ShortlistEntry) []ShortlistEntry {
	kept := make([]ShortlistEntry, 0, len(entries))
	for _, entry := range entries {
		if entry.SubScores.SkillMatch > 0 {
			kept = append(kept, entry)
		}
	}
	if len(kept) == 0 {
		return entries
	}
	return kept
}

func sortEntries(entries []ShortlistEntry) {
	sort.SliceStable(entries, func(i, j int) bool {
		if entries[i].MatchScore != entries[j].MatchScore {
			return entries[i].MatchScore > entries[j].MatchScore
		}
		return entries[i].CandidateID < entries[j].CandidateID
	})
}

// assignDenseRanks gives equal scores equal ranks with no gaps after ties.
func assignDenseRanks(entries []ShortlistEntry) {
	rank := 0
	lastScore := -1.0
	for i := range entries {
		if entries[i].MatchScore != lastScore {
			rank++
			lastScore = entries[i].MatchScore
		}
		entries[i].Rank = rank
	}
}
