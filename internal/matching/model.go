package matching

import (
	"fmt"
	"time"
)

// SubScores holds the normalized [0,100] component scores that feed the
// composite match score.
type SubScores struct {
	SkillMatch         float64 `json:"skillMatch"`
	ExperienceMatch    float64 `json:"experienceMatch"`
	PortfolioDepth     float64 `json:"portfolioDepth"`
	EducationAlignment float64 `json:"educationAlignment"`
	GithubActivity     float64 `json:"githubActivity"`
	AvailabilityFit    float64 `json:"availabilityFit"`
}

// ShortlistEntry is one ranked candidate in a job's shortlist. Entries are
// recomputed from scratch on every run, never merged incrementally.
type ShortlistEntry struct {
	JobID       string    `json:"jobId"`
	CandidateID string    `json:"candidateId"`
	MatchScore  float64   `json:"matchScore"`
	SubScores   SubScores `json:"subScores"`
	Rank        int       `json:"rank"`
	ComputedAt  time.Time `json:"computedAt"`
}

// AnalysisSignals carries the completed-analysis scores the calculator may
// derive sub-scores from. A nil *AnalysisSignals means no usable analysis.
type AnalysisSignals struct {
	ProjectDepth float64
	CodeQuality  float64
	AnalyzedAt   time.Time
}

// NotFoundError reports an unknown job or candidate id.
type NotFoundError struct {
	Resource string
	ID       string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s %q not found", e.Resource, e.ID)
}
