package matching

import (
	"context"
	"errors"
	"reflect"
	"testing"
	"time"

	"talent-backend/internal/profiles"
)

type stubSignals struct {
	byCandidate map[string]*AnalysisSignals
	err         error
}

func (s *stubSignals) AnalysisSignals(ctx context.Context, candidateID string) (*AnalysisSignals, error) {
	if s.err != nil {
		return nil, s.err
	}
	return s.byCandidate[candidateID], nil
}

func newTestEngine(t *testing.T, candidates []profiles.Candidate, job profiles.Job) *Engine {
	t.Helper()
	candidatesRepo := profiles.NewMemoryCandidatesRepo()
	jobsRepo := profiles.NewMemoryJobsRepo()
	ctx := context.Background()
	for _, candidate := range candidates {
		if err := candidatesRepo.Create(ctx, candidate); err != nil {
			t.Fatalf("seed candidate: %v", err)
		}
	}
	if err := jobsRepo.Create(ctx, job); err != nil {
		t.Fatalf("seed job: %v", err)
	}
	engine := NewEngine(jobsRepo, candidatesRepo, nil, nil)
	engine.now = func() time.Time { return time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC) }
	return engine
}

func TestComputeShortlistRanksByScore(t *testing.T) {
	job := profiles.Job{ID: "job-1", RequiredSkills: []string{"go", "postgres"}, MinExperience: 2, RoleType: profiles.RoleFullTime}
	candidates := []profiles.Candidate{
		{ID: "cand-a", Skills: []string{"go", "postgres"}, YearsOfExperience: 5, Availability: profiles.AvailabilityOpen},
		{ID: "cand-b", Skills: []string{"go"}, YearsOfExperience: 1, Availability: profiles.AvailabilityPartTime},
		{ID: "cand-c", Skills: []string{"python"}, YearsOfExperience: 9, Availability: profiles.AvailabilityOpen},
	}
	engine := newTestEngine(t, candidates, job)

	entries, err := engine.ComputeShortlist(context.Background(), "job-1", nil, 0)
	if err != nil {
		t.Fatalf("ComputeShortlist: %v", err)
	}

	if len(entries) != 2 {
		t.Fatalf("got %d entries, want 2 (no-overlap candidate excluded)", len(entries))
	}
	if entries[0].CandidateID != "cand-a" || entries[1].CandidateID != "cand-b" {
		t.Fatalf("order = [%s %s], want [cand-a cand-b]", entries[0].CandidateID, entries[1].CandidateID)
	}
	if entries[0].Rank != 1 || entries[1].Rank != 2 {
		t.Fatalf("ranks = [%d %d], want [1 2]", entries[0].Rank, entries[1].Rank)
	}
	if entries[0].MatchScore <= entries[1].MatchScore {
		t.Fatalf("scores not descending: %v then %v", entries[0].MatchScore, entries[1].MatchScore)
	}
}

func TestComputeShortlistDeterministic(t *testing.T) {
	job := profiles.Job{ID: "job-1", RequiredSkills: []string{"go"}, RoleType: profiles.RoleFullTime}
	candidates := []profiles.Candidate{
		{ID: "cand-b", Skills: []string{"go"}, YearsOfExperience: 3, Availability: profiles.AvailabilityOpen},
		{ID: "cand-a", Skills: []string{"go"}, YearsOfExperience: 3, Availability: profiles.AvailabilityOpen},
		{ID: "cand-c", Skills: []string{"go", "rust"}, YearsOfExperience: 1, Availability: profiles.AvailabilityOpen},
	}
	engine := newTestEngine(t, candidates, job)

	first, err := engine.ComputeShortlist(context.Background(), "job-1", nil, 0)
	if err != nil {
		t.Fatalf("first run: %v", err)
	}
	second, err := engine.ComputeShortlist(context.Background(), "job-1", nil, 0)
	if err != nil {
		t.Fatalf("second run: %v", err)
	}
	if !reflect.DeepEqual(first, second) {
		t.Fatalf("runs differ:\nfirst:  %+v\nsecond: %+v", first, second)
	}
}

func TestComputeShortlistTieBreakByCandidateID(t *testing.T) {
	job := profiles.Job{ID: "job-1", RequiredSkills: []string{"go"}, RoleType: profiles.RoleFullTime}
	// Insertion order deliberately reversed relative to the expected output.
	candidates := []profiles.Candidate{
		{ID: "cand-z", Skills: []string{"go"}, YearsOfExperience: 4, Availability: profiles.AvailabilityOpen},
		{ID: "cand-m", Skills: []string{"go"}, YearsOfExperience: 4, Availability: profiles.AvailabilityOpen},
		{ID: "cand-a", Skills: []string{"go"}, YearsOfExperience: 4, Availability: profiles.AvailabilityOpen},
	}
	engine := newTestEngine(t, candidates, job)

	entries, err := engine.ComputeShortlist(context.Background(), "job-1", []string{"cand-z", "cand-m", "cand-a"}, 0)
	if err != nil {
		t.Fatalf("ComputeShortlist: %v", err)
	}
	gotOrder := []string{entries[0].CandidateID, entries[1].CandidateID, entries[2].CandidateID}
	wantOrder := []string{"cand-a", "cand-m", "cand-z"}
	if !reflect.DeepEqual(gotOrder, wantOrder) {
		t.Fatalf("tie order = %v, want %v", gotOrder, wantOrder)
	}
	for _, entry := range entries {
		if entry.Rank != 1 {
			t.Fatalf("tied entries must share rank 1, got %+v", entry)
		}
	}
}

func TestComputeShortlistDenseRanks(t *testing.T) {
	job := profiles.Job{ID: "job-1", RequiredSkills: []string{"go", "rust"}, RoleType: profiles.RoleFullTime}
	candidates := []profiles.Candidate{
		{ID: "cand-a", Skills: []string{"go", "rust"}, YearsOfExperience: 2, Availability: profiles.AvailabilityOpen},
		{ID: "cand-b", Skills: []string{"go", "rust"}, YearsOfExperience: 2, Availability: profiles.AvailabilityOpen},
		{ID: "cand-c", Skills: []string{"go"}, YearsOfExperience: 2, Availability: profiles.AvailabilityOpen},
	}
	engine := newTestEngine(t, candidates, job)

	entries, err := engine.ComputeShortlist(context.Background(), "job-1", nil, 0)
	if err != nil {
		t.Fatalf("ComputeShortlist: %v", err)
	}
	ranks := []int{entries[0].Rank, entries[1].Rank, entries[2].Rank}
	if !reflect.DeepEqual(ranks, []int{1, 1, 2}) {
		t.Fatalf("ranks = %v, want dense [1 1 2]", ranks)
	}
}

func TestComputeShortlistKeepsPoolWhenAllZeroOverlap(t *testing.T) {
	job := profiles.Job{ID: "job-1", RequiredSkills: []string{"haskell"}, RoleType: profiles.RoleFullTime}
	candidates := []profiles.Candidate{
		{ID: "cand-a", Skills: []string{"go"}, YearsOfExperience: 3, Availability: profiles.AvailabilityOpen},
		{ID: "cand-b", Skills: []string{"rust"}, YearsOfExperience: 1, Availability: profiles.AvailabilityOpen},
	}
	engine := newTestEngine(t, candidates, job)

	entries, err := engine.ComputeShortlist(context.Background(), "job-1", nil, 0)
	if err != nil {
		t.Fatalf("ComputeShortlist: %v", err)
	}
	if len(entries) != 2 {
		t.Fatalf("got %d entries, want full pool kept when all overlap is zero", len(entries))
	}
}

func TestComputeShortlistMaxCandidates(t *testing.T) {
	job := profiles.Job{ID: "job-1", RequiredSkills: []string{"go"}, RoleType: profiles.RoleFullTime}
	candidates := []profiles.Candidate{
		{ID: "cand-a", Skills: []string{"go"}, YearsOfExperience: 5, Availability: profiles.AvailabilityOpen},
		{ID: "cand-b", Skills: []string{"go"}, YearsOfExperience: 3, Availability: profiles.AvailabilityOpen},
		{ID: "cand-c", Skills: []string{"go"}, YearsOfExperience: 1, Availability: profiles.AvailabilityOpen},
	}
	engine := newTestEngine(t, candidates, job)

	entries, err := engine.ComputeShortlist(context.Background(), "job-1", nil, 2)
	if err != nil {
		t.Fatalf("ComputeShortlist: %v", err)
	}
	if len(entries) != 2 {
		t.Fatalf("got %d entries, want cap of 2", len(entries))
	}
}

func TestComputeShortlistUnknownJob(t *testing.T) {
	engine := newTestEngine(t, nil, profiles.Job{ID: "job-1", RoleType: profiles.RoleFullTime})

	_, err := engine.ComputeShortlist(context.Background(), "missing", nil, 0)
	var notFound *NotFoundError
	if !errors.As(err, &notFound) {
		t.Fatalf("err = %v, want NotFoundError", err)
	}
	if notFound.Resource != "job" || notFound.ID != "missing" {
		t.Fatalf("NotFoundError = %+v", notFound)
	}
}

func TestComputeShortlistEmptyPool(t *testing.T) {
	engine := newTestEngine(t, nil, profiles.Job{ID: "job-1", RoleType: profiles.RoleFullTime})

	entries, err := engine.ComputeShortlist(context.Background(), "job-1", nil, 0)
	if err != nil {
		t.Fatalf("ComputeShortlist: %v", err)
	}
	if len(entries) != 0 {
		t.Fatalf("got %d entries, want empty list for empty pool", len(entries))
	}
}

func TestComputeShortlistUsesFreshSignals(t *testing.T) {
	job := profiles.Job{ID: "job-1", RequiredSkills: []string{"go"}, RoleType: profiles.RoleFullTime}
	candidates := []profiles.Candidate{
		{ID: "cand-a", Skills: []string{"go"}, YearsOfExperience: 5, Availability: profiles.AvailabilityOpen},
		{ID: "cand-b", Skills: []string{"go"}, YearsOfExperience: 5, Availability: profiles.AvailabilityOpen},
	}
	engine := newTestEngine(t, candidates, job)
	engine.Signals = &stubSignals{byCandidate: map[string]*AnalysisSignals{
		"cand-b": {ProjectDepth: 95, CodeQuality: 90, AnalyzedAt: engine.now().Add(-time.Hour)},
	}}

	entries, err := engine.ComputeShortlist(context.Background(), "job-1", nil, 0)
	if err != nil {
		t.Fatalf("ComputeShortlist: %v", err)
	}
	if entries[0].CandidateID != "cand-b" {
		t.Fatalf("top candidate = %s, want cand-b boosted by analysis signals", entries[0].CandidateID)
	}
}

func TestComputeShortlistSignalErrorDegradesToDefaults(t *testing.T) {
	job := profiles.Job{ID: "job-1", RequiredSkills: []string{"go"}, RoleType: profiles.RoleFullTime}
	candidates := []profiles.Candidate{
		{ID: "cand-a", Skills: []string{"go"}, YearsOfExperience: 5, Availability: profiles.AvailabilityOpen},
	}
	engine := newTestEngine(t, candidates, job)
	engine.Signals = &stubSignals{err: errors.New("store down")}

	entries, err := engine.ComputeShortlist(context.Background(), "job-1", nil, 0)
	if err != nil {
		t.Fatalf("ComputeShortlist: %v", err)
	}
	if entries[0].SubScores.PortfolioDepth != 50 {
		t.Fatalf("PortfolioDepth = %v, want neutral default on signal failure", entries[0].SubScores.PortfolioDepth)
	}
}

func TestComputeShortlistPersistsEntries(t *testing.T) {
	job := profiles.Job{ID: "job-1", RequiredSkills: []string{"go"}, RoleType: profiles.RoleFullTime}
	candidates := []profiles.Candidate{
		{ID: "cand-a", Skills: []string{"go"}, YearsOfExperience: 5, Availability: profiles.AvailabilityOpen},
	}
	engine := newTestEngine(t, candidates, job)
	repo := NewMemoryShortlistRepo()
	engine.Shortlists = repo

	if _, err := engine.ComputeShortlist(context.Background(), "job-1", nil, 0); err != nil {
		t.Fatalf("ComputeShortlist: %v", err)
	}
	stored, err := repo.ListForJob(context.Background(), "job-1")
	if err != nil {
		t.Fatalf("ListForJob: %v", err)
	}
	if len(stored) != 1 || stored[0].CandidateID != "cand-a" {
		t.Fatalf("stored = %+v, want single cand-a entry", stored)
	}
}
