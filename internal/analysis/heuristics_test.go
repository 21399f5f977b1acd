package analysis

import (
	"testing"

	"talent-backend/internal/signals"
)

func TestCodeQualityScore(t *testing.T) {
	if got := codeQualityScore(nil); got != 50 {
		t.Fatalf("nil facts = %v, want neutral 50", got)
	}
	strong := &signals.GithubFacts{Repositories: 15, Stars: 40, RecentCommits: 30, Languages: []string{"Go", "Rust", "Python", "TypeScript", "C"}}
	if got := codeQualityScore(strong); got != 100 {
		t.Fatalf("strong profile = %v, want capped 100", got)
	}
	if got := codeQualityScore(&signals.GithubFacts{}); got != 0 {
		t.Fatalf("empty profile = %v, want 0", got)
	}
}

func TestProjectDepthScore(t *testing.T) {
	if got := projectDepthScore(nil); got != 50 {
		t.Fatalf("nil facts = %v, want neutral 50", got)
	}
	facts := &signals.PortfolioFacts{
		Projects:      []string{"a", "b", "c"},
		HasDeployment: true,
		Technologies:  []string{"go", "react"},
	}
	// 3*12 + 25 + 2*3 = 67
	if got := projectDepthScore(facts); got != 67 {
		t.Fatalf("projectDepthScore = %v, want 67", got)
	}
}

func TestPortfolioCompletenessScore(t *testing.T) {
	if got := portfolioCompletenessScore(nil); got != 50 {
		t.Fatalf("nil facts = %v, want neutral 50", got)
	}
	facts := &signals.PortfolioFacts{
		Sections:      []string{"about", "projects", "contact"},
		HasResume:     true,
		HasDeployment: true,
		Projects:      []string{"a"},
	}
	// 3*12 + 20 + 10 + 10 = 76
	if got := portfolioCompletenessScore(facts); got != 76 {
		t.Fatalf("portfolioCompletenessScore = %v, want 76", got)
	}
}

func TestComputeScoresOverallIsUnweightedMean(t *testing.T) {
	github := &signals.GithubFacts{Repositories: 10, Stars: 25, RecentCommits: 20, Languages: []string{"Go", "Rust", "Python", "TS", "C"}}
	scores := computeScores(github, nil)
	if scores.CodeQuality != 100 {
		t.Fatalf("CodeQuality = %v, want 100", scores.CodeQuality)
	}
	if scores.ProjectDepth != 50 || scores.PortfolioCompleteness != 50 {
		t.Fatalf("portfolio scores = %v/%v, want neutral 50/50", scores.ProjectDepth, scores.PortfolioCompleteness)
	}
	// (100 + 50 + 50) / 3 = 66.67, rounded.
	if scores.Overall != 67 {
		t.Fatalf("Overall = %v, want 67", scores.Overall)
	}
}

func TestComputeScoresBounds(t *testing.T) {
	combos := []struct {
		github    *signals.GithubFacts
		portfolio *signals.PortfolioFacts
	}{
		{nil, nil},
		{&signals.GithubFacts{}, &signals.PortfolioFacts{}},
		{&signals.GithubFacts{Repositories: 1000, Stars: 100000, RecentCommits: 9999, Languages: make([]string, 40)}, nil},
	}
	for _, combo := range combos {
		scores := computeScores(combo.github, combo.portfolio)
		for name, value := range map[string]float64{
			"overall":               scores.Overall,
			"codeQuality":           scores.CodeQuality,
			"projectDepth":          scores.ProjectDepth,
			"portfolioCompleteness": scores.PortfolioCompleteness,
		} {
			if value < 0 || value > 100 {
				t.Fatalf("%s = %v, out of [0,100]", name, value)
			}
		}
	}
}
