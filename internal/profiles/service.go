package profiles

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
)

// Service contains business logic for candidate and job profiles.
type Service struct {
	Candidates CandidatesRepo
	Jobs       JobsRepo
}

// CreateCandidate stores a new candidate profile.
func (s *Service) CreateCandidate(ctx context.Context, candidate Candidate) (Candidate, error) {
	if candidate.ID == "" {
		candidate.ID = uuid.NewString()
	}
	if candidate.YearsOfExperience < 0 {
		return Candidate{}, errors.New("yearsOfExperience must be non-negative")
	}
	if candidate.EducationLevel == "" {
		candidate.EducationLevel = EducationNone
	}
	if !ValidEducationLevel(candidate.EducationLevel) {
		return Candidate{}, errors.New("unknown education level")
	}
	if candidate.Availability == "" {
		candidate.Availability = AvailabilityOpen
	}
	candidate.Skills = normalizeSkills(candidate.Skills)
	now := time.Now().UTC()
	candidate.CreatedAt = now
	candidate.UpdatedAt = now
	if err := s.Candidates.Create(ctx, candidate); err != nil {
		return Candidate{}, err
	}
	return candidate, nil
}

// GetCandidate returns a candidate by ID.
func (s *Service) GetCandidate(ctx context.Context, candidateID string) (Candidate, error) {
	if candidateID == "" {
		return Candidate{}, errors.New("candidateID is required")
	}
	return s.Candidates.GetByID(ctx, candidateID)
}

// UpdateCandidate replaces a candidate's mutable fields.
func (s *Service) UpdateCandidate(ctx context.Context, candidate Candidate) (Candidate, error) {
	if candidate.ID == "" {
		return Candidate{}, errors.New("candidateID is required")
	}
	if candidate.YearsOfExperience < 0 {
		return Candidate{}, errors.New("yearsOfExperience must be non-negative")
	}
	candidate.Skills = normalizeSkills(candidate.Skills)
	if err := s.Candidates.Update(ctx, candidate); err != nil {
		return Candidate{}, err
	}
	return s.Candidates.GetByID(ctx, candidate.ID)
}

// ListCandidates returns every candidate profile.
func (s *Service) ListCandidates(ctx context.Context) ([]Candidate, error) {
	return s.Candidates.List(ctx)
}

// CreateJob stores a new job posting.
func (s *Service) CreateJob(ctx context.Context, job Job) (Job, error) {
	if job.ID == "" {
		job.ID = uuid.NewString()
	}
	if job.MinExperience < 0 {
		return Job{}, errors.New("minExperience must be non-negative")
	}
	if job.EducationPreference != "" && !ValidEducationLevel(job.EducationPreference) {
		return Job{}, errors.New("unknown education preference")
	}
	if job.RoleType == "" {
		job.RoleType = RoleFullTime
	}
	job.RequiredSkills = normalizeSkills(job.RequiredSkills)
	job.CreatedAt = time.Now().UTC()
	if err := s.Jobs.Create(ctx, job); err != nil {
		return Job{}, err
	}
	return job, nil
}

// GetJob returns a job by ID.
func (s *Service) GetJob(ctx context.Context, jobID string) (Job, error) {
	if jobID == "" {
		return Job{}, errors.New("jobID is required")
	}
	return s.Jobs.GetByID(ctx, jobID)
}

// ListJobs returns every job posting.
func (s *Service) ListJobs(ctx context.Context) ([]Job, error) {
	return s.Jobs.List(ctx)
}

// normalizeSkills lowercases, trims and dedupes skill names so set
// comparisons behave the same regardless of input casing.
func normalizeSkills(skills []string) []string {
	seen := make(map[string]bool, len(skills))
	out := make([]string, 0, len(skills))
	for _, skill := range skills {
		normalized := strings.ToLower(strings.TrimSpace(skill))
		if normalized == "" || seen[normalized] {
			continue
		}
		seen[normalized] = true
		out = append(out, normalized)
	}
	return out
}
