package analysis

import (
	"time"

	"talent-backend/internal/signals"
)

// Status is the lifecycle state of a candidate's analysis.
type Status string

const (
	StatusNone      Status = "none"
	StatusQueued    Status = "queued"
	StatusAnalyzing Status = "analyzing"
	StatusCompleted Status = "completed"
	StatusFailed    Status = "failed"
)

// Terminal reports whether no further automatic transition occurs from the
// status without a new explicit request.
func (s Status) Terminal() bool {
	return s == StatusCompleted || s == StatusFailed
}

// InFlight reports whether work is pending or running for the status.
func (s Status) InFlight() bool {
	return s == StatusQueued || s == StatusAnalyzing
}

// Scores holds the analysis sub-scores and their unweighted mean. All
// values are in [0,100].
type Scores struct {
	Overall               float64 `json:"overall"`
	CodeQuality           float64 `json:"codeQuality"`
	ProjectDepth          float64 `json:"projectDepth"`
	PortfolioCompleteness float64 `json:"portfolioCompleteness"`
}

// Record is the current analysis result for one candidate. Exactly one
// record is current per candidate; prior results live in history.
type Record struct {
	CandidateID    string                  `json:"candidateId"`
	Status         Status                  `json:"status"`
	Scores         Scores                  `json:"scores"`
	Improvements   []string                `json:"improvements"`
	GithubFacts    *signals.GithubFacts    `json:"githubFacts,omitempty"`
	PortfolioFacts *signals.PortfolioFacts `json:"portfolioFacts,omitempty"`
	FailureReason  string                  `json:"failureReason,omitempty"`
	Attempt        int                     `json:"attempt"`
	AnalyzedAt     *time.Time              `json:"analyzedAt,omitempty"`
	UpdatedAt      time.Time               `json:"updatedAt"`
}

// Task carries one queued analysis execution.
type Task struct {
	CandidateID  string `json:"candidateId"`
	PortfolioURL string `json:"portfolioUrl,omitempty"`
	GithubURL    string `json:"githubUrl,omitempty"`
	RequestID    string `json:"requestId,omitempty"`
}
