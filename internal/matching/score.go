package matching

import (
	"math"
	"strings"
	"time"

	"talent-backend/internal/profiles"
)

// FreshnessWindow bounds how old an analysis may be before its scores stop
// informing portfolioDepth and githubActivity.
const FreshnessWindow = 30 * 24 * time.Hour

// neutralScore substitutes for sub-scores with no usable signal.
const neutralScore = 50

// SubScoreWeight binds one sub-score to its share of the composite. The
// table is the single place weights live; tests assert the sum is 1.0.
type SubScoreWeight struct {
	Name   string
	Weight float64
	Value  func(SubScores) float64
}

var weightTable = []SubScoreWeight{
	{"skillMatch", 0.35, func(s SubScores) float64 { return s.SkillMatch }},
	{"experienceMatch", 0.20, func(s SubScores) float64 { return s.ExperienceMatch }},
	{"portfolioDepth", 0.20, func(s SubScores) float64 { return s.PortfolioDepth }},
	{"educationAlignment", 0.10, func(s SubScores) float64 { return s.EducationAlignment }},
	{"githubActivity", 0.10, func(s SubScores) float64 { return s.GithubActivity }},
	{"availabilityFit", 0.05, func(s SubScores) float64 { return s.AvailabilityFit }},
}

// WeightTable exposes a copy of the weight table for inspection.
func WeightTable() []SubScoreWeight {
	out := make([]SubScoreWeight, len(weightTable))
	copy(out, weightTable)
	return out
}

// ComputeSubScores derives the six sub-scores for one candidate against one
// job. Pure, never fails: absent inputs fall back to defensive defaults.
func ComputeSubScores(candidate profiles.Candidate, job profiles.Job, analysis *AnalysisSignals, now time.Time) SubScores {
	sub := SubScores{
		SkillMatch:         skillMatch(candidate.Skills, job.RequiredSkills),
		ExperienceMatch:    experienceMatch(candidate.YearsOfExperience, job.MinExperience),
		PortfolioDepth:     neutralScore,
		EducationAlignment: educationAlignment(candidate.EducationLevel, job.EducationPreference),
		GithubActivity:     neutralScore,
		AvailabilityFit:    availabilityFit(candidate.Availability, job.RoleType),
	}
	if analysis != nil && now.Sub(analysis.AnalyzedAt) <= FreshnessWindow {
		sub.PortfolioDepth = clamp(analysis.ProjectDepth)
		sub.GithubActivity = clamp(analysis.CodeQuality)
	}
	return sub
}

// CompositeScore folds the sub-scores through the weight table, rounds to
// the nearest integer and clamps to [0,100].
func CompositeScore(sub SubScores) float64 {
	total := 0.0
	for _, entry := range weightTable {
		total += entry.Weight * entry.Value(sub)
	}
	return clamp(math.Round(total))
}

func skillMatch(candidateSkills, requiredSkills []string) float64 {
	if len(requiredSkills) == 0 {
		return 100
	}
	have := make(map[string]bool, len(candidateSkills))
	for _, skill := range candidateSkills {
		have[normalizeSkill(skill)] = true
	}
	overlap := 0
	seen := make(map[string]bool, len(requiredSkills))
	required := 0
	for _, skill := range requiredSkills {
		normalized := normalizeSkill(skill)
		if normalized == "" || seen[normalized] {
			continue
		}
		seen[normalized] = true
		required++
		if have[normalized] {
			overlap++
		}
	}
	if required == 0 {
		return 100
	}
	return float64(overlap) / float64(required) * 100
}

func experienceMatch(years, minExperience int) float64 {
	if minExperience <= 0 || years >= minExperience {
		return 100
	}
	if years <= 0 {
		return 0
	}
	return float64(years) / float64(minExperience) * 100
}

// educationAlignment gives full credit when the candidate meets or exceeds
// the preference, partial credit one level below it, and nothing when the
// candidate is further below or carries no education info at all.
func educationAlignment(level profiles.EducationLevel, preference profiles.EducationLevel) float64 {
	if preference == "" {
		return 100
	}
	if level == "" || level == profiles.EducationNone {
		return 0
	}
	diff := profiles.EducationRank(preference) - profiles.EducationRank(level)
	switch {
	case diff <= 0:
		return 100
	case diff == 1:
		return 50
	default:
		return 0
	}
}

func availabilityFit(availability profiles.Availability, roleType profiles.RoleType) float64 {
	if availability == profiles.AvailabilityOpen || string(availability) == string(roleType) {
		return 100
	}
	return 50
}

func normalizeSkill(skill string) string {
	return strings.ToLower(strings.TrimSpace(skill))
}

func clamp(value float64) float64 {
	if value < 0 {
		return 0
	}
	if value > 100 {
		return 100
	}
	return value
}
