package analysis

import (
	"math"

	"talent-backend/internal/signals"
)

// Heuristic scoring over fetched facts. Each score is normalized to
// [0,100]; a missing source yields the neutral default so partial fetch
// results still produce a usable record.
const neutralScore = 50

// codeQualityScore rates GitHub activity: repository count, community
// signal, recent commit cadence and language diversity.
func codeQualityScore(facts *signals.GithubFacts) float64 {
	if facts == nil {
		return neutralScore
	}
	// Component caps: repositories 30, stars 25, commit cadence 30,
	// language diversity 15.
	score := 0.0
	score += math.Min(float64(facts.Repositories), 10) * 3
	score += math.Min(float64(facts.Stars), 25)
	score += math.Min(float64(facts.RecentCommits), 20) * 1.5
	score += math.Min(float64(len(facts.Languages)), 5) * 3
	return clampScore(score)
}

// projectDepthScore rates the portfolio's project substance, with a small
// boost for live deployments.
func projectDepthScore(facts *signals.PortfolioFacts) float64 {
	if facts == nil {
		return neutralScore
	}
	score := 0.0
	score += math.Min(float64(len(facts.Projects)), 5) * 12 // up to 60
	if facts.HasDeployment {
		score += 25
	}
	score += math.Min(float64(len(facts.Technologies)), 5) * 3 // up to 15
	return clampScore(score)
}

// portfolioCompletenessScore rates how much of a complete portfolio is
// present: expected sections, a resume, a live link and any project list.
func portfolioCompletenessScore(facts *signals.PortfolioFacts) float64 {
	if facts == nil {
		return neutralScore
	}
	score := 0.0
	score += math.Min(float64(len(facts.Sections)), 5) * 12 // up to 60
	if facts.HasResume {
		score += 20
	}
	if facts.HasDeployment {
		score += 10
	}
	if len(facts.Projects) > 0 {
		score += 10
	}
	return clampScore(score)
}

// computeScores derives all analysis scores from whatever facts were
// fetched. Overall is the plain unweighted mean of the three sub-scores.
func computeScores(github *signals.GithubFacts, portfolio *signals.PortfolioFacts) Scores {
	scores := Scores{
		CodeQuality:           codeQualityScore(github),
		ProjectDepth:          projectDepthScore(portfolio),
		PortfolioCompleteness: portfolioCompletenessScore(portfolio),
	}
	scores.Overall = clampScore(math.Round((scores.CodeQuality + scores.ProjectDepth + scores.PortfolioCompleteness) / 3))
	return scores
}

func clampScore(value float64) float64 {
	if value < 0 {
		return 0
	}
	if value > 100 {
		return 100
	}
	return value
}
