package signals

import "context"

// GithubFacts summarizes a candidate's public GitHub footprint.
type GithubFacts struct {
	Repositories  int      `json:"repositories"`
	Stars         int      `json:"stars"`
	RecentCommits int      `json:"recentCommits"`
	Languages     []string `json:"languages"`
}

// PortfolioFacts summarizes a candidate's portfolio site.
type PortfolioFacts struct {
	Projects      []string `json:"projects"`
	HasDeployment bool     `json:"hasDeployment"`
	Technologies  []string `json:"technologies"`
	HasResume     bool     `json:"hasResume"`
	Sections      []string `json:"sections"`
}

// Fetcher retrieves external signals for analysis. Implementations own the
// transport; callers only consume the fact contracts.
type Fetcher interface {
	FetchGithubFacts(ctx context.Context, githubURL string) (GithubFacts, error)
	FetchPortfolioFacts(ctx context.Context, portfolioURL string) (PortfolioFacts, error)
}
