package matching

import (
	"math"
	"testing"
	"time"

	"talent-backend/internal/profiles"
)

var scoreNow = time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

func TestWeightTableSumsToOne(t *testing.T) {
	sum := 0.0
	for _, entry := range WeightTable() {
		sum += entry.Weight
	}
	if math.Abs(sum-1.0) > 1e-9 {
		t.Fatalf("weight sum = %v, want exactly 1.0", sum)
	}
}

func TestCompositeScoreFullOverlapWithDefaults(t *testing.T) {
	candidate := profiles.Candidate{
		ID:                "c1",
		Skills:            []string{"javascript", "react", "node"},
		YearsOfExperience: 5,
		Availability:      profiles.AvailabilityOpen,
	}
	job := profiles.Job{
		ID:             "j1",
		RequiredSkills: []string{"javascript", "react"},
		MinExperience:  3,
		RoleType:       profiles.RoleFullTime,
	}

	sub := ComputeSubScores(candidate, job, nil, scoreNow)
	if sub.SkillMatch != 100 {
		t.Fatalf("SkillMatch = %v, want 100", sub.SkillMatch)
	}
	if sub.ExperienceMatch != 100 {
		t.Fatalf("ExperienceMatch = %v, want 100", sub.ExperienceMatch)
	}
	if sub.PortfolioDepth != 50 || sub.GithubActivity != 50 {
		t.Fatalf("defaults = %v/%v, want 50/50 without analysis", sub.PortfolioDepth, sub.GithubActivity)
	}
	if sub.EducationAlignment != 100 {
		t.Fatalf("EducationAlignment = %v, want 100 without preference", sub.EducationAlignment)
	}
	if sub.AvailabilityFit != 100 {
		t.Fatalf("AvailabilityFit = %v, want 100 for open availability", sub.AvailabilityFit)
	}
	if got := CompositeScore(sub); got != 85 {
		t.Fatalf("CompositeScore = %v, want 85", got)
	}
}

func TestSkillMatch(t *testing.T) {
	cases := []struct {
		name      string
		candidate []string
		required  []string
		want      float64
	}{
		{"no required skills", []string{"go"}, nil, 100},
		{"no overlap", []string{"python"}, []string{"javascript", "react"}, 0},
		{"half overlap", []string{"javascript"}, []string{"javascript", "react"}, 50},
		{"case insensitive", []string{"JavaScript"}, []string{"javascript"}, 100},
		{"duplicate required skills count once", []string{"go"}, []string{"go", "Go", "rust"}, 50},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := skillMatch(tc.candidate, tc.required); got != tc.want {
				t.Fatalf("skillMatch = %v, want %v", got, tc.want)
			}
		})
	}
}

func TestExperienceMatch(t *testing.T) {
	cases := []struct {
		name  string
		years int
		min   int
		want  float64
	}{
		{"meets minimum", 3, 3, 100},
		{"exceeds minimum", 10, 3, 100},
		{"zero minimum", 0, 0, 100},
		{"below minimum scales linearly", 2, 4, 50},
		{"zero years below minimum", 0, 4, 0},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := experienceMatch(tc.years, tc.min); got != tc.want {
				t.Fatalf("experienceMatch = %v, want %v", got, tc.want)
			}
		})
	}
}

func TestEducationAlignment(t *testing.T) {
	cases := []struct {
		name       string
		level      profiles.EducationLevel
		preference profiles.EducationLevel
		want       float64
	}{
		{"no preference", profiles.EducationNone, "", 100},
		{"meets preference", profiles.EducationGraduate, profiles.EducationGraduate, 100},
		{"exceeds preference", profiles.EducationPhD, profiles.EducationGraduate, 100},
		{"one level below", profiles.EducationStudent, profiles.EducationGraduate, 50},
		{"two levels below", profiles.EducationStudent, profiles.EducationPhD, 0},
		{"no info with preference", profiles.EducationNone, profiles.EducationGraduate, 0},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := educationAlignment(tc.level, tc.preference); got != tc.want {
				t.Fatalf("educationAlignment = %v, want %v", got, tc.want)
			}
		})
	}
}

func TestAvailabilityFit(t *testing.T) {
	if got := availabilityFit(profiles.AvailabilityOpen, profiles.RoleContract); got != 100 {
		t.Fatalf("open availability = %v, want 100 for any role", got)
	}
	if got := availabilityFit(profiles.AvailabilityFullTime, profiles.RoleFullTime); got != 100 {
		t.Fatalf("matching category = %v, want 100", got)
	}
	if got := availabilityFit(profiles.AvailabilityPartTime, profiles.RoleFullTime); got != 50 {
		t.Fatalf("mismatched category = %v, want 50", got)
	}
}

func TestAnalysisSignalsFeedSubScores(t *testing.T) {
	candidate := profiles.Candidate{ID: "c1", Skills: []string{"go"}}
	job := profiles.Job{ID: "j1", RequiredSkills: []string{"go"}}

	fresh := &AnalysisSignals{ProjectDepth: 80, CodeQuality: 70, AnalyzedAt: scoreNow.Add(-24 * time.Hour)}
	sub := ComputeSubScores(candidate, job, fresh, scoreNow)
	if sub.PortfolioDepth != 80 || sub.GithubActivity != 70 {
		t.Fatalf("fresh analysis = %v/%v, want 80/70", sub.PortfolioDepth, sub.GithubActivity)
	}

	stale := &AnalysisSignals{ProjectDepth: 80, CodeQuality: 70, AnalyzedAt: scoreNow.Add(-FreshnessWindow - time.Hour)}
	sub = ComputeSubScores(candidate, job, stale, scoreNow)
	if sub.PortfolioDepth != 50 || sub.GithubActivity != 50 {
		t.Fatalf("stale analysis = %v/%v, want neutral 50/50", sub.PortfolioDepth, sub.GithubActivity)
	}
}

func TestCompositeScoreBounds(t *testing.T) {
	extremes := []SubScores{
		{},
		{SkillMatch: 100, ExperienceMatch: 100, PortfolioDepth: 100, EducationAlignment: 100, GithubActivity: 100, AvailabilityFit: 100},
		{SkillMatch: 33.3, ExperienceMatch: 66.6, PortfolioDepth: 12.5, EducationAlignment: 50, GithubActivity: 50, AvailabilityFit: 50},
	}
	for _, sub := range extremes {
		got := CompositeScore(sub)
		if got < 0 || got > 100 {
			t.Fatalf("CompositeScore(%+v) = %v, out of [0,100]", sub, got)
		}
		if got != math.Round(got) {
			t.Fatalf("CompositeScore(%+v) = %v, want an integer value", sub, got)
		}
	}
}
