package suggest

import (
	"context"
	"fmt"
	"strings"

	"talent-backend/internal/signals"
)

// Client abstracts suggestion providers for candidate analysis.
type Client interface {
	GenerateImprovements(ctx context.Context, input Input) (string, error)
}

// Input captures the signals a provider can draw suggestions from.
type Input struct {
	Github       signals.GithubFacts
	Portfolio    signals.PortfolioFacts
	HasGithub    bool
	HasPortfolio bool

	CodeQuality           int
	ProjectDepth          int
	PortfolioCompleteness int
}

// PlaceholderClient produces deterministic suggestions without calling a
// provider. Used when no API key is configured and in tests.
type PlaceholderClient struct{}

// GenerateImprovements derives suggestions directly from the fact set.
func (PlaceholderClient) GenerateImprovements(ctx context.Context, input Input) (string, error) {
	_ = ctx
	var lines []string
	if input.HasGithub {
		if input.Github.RecentCommits == 0 {
			lines = append(lines, "Commit to your public repositories regularly so reviewers can see recent activity.")
		}
		if input.Github.Stars == 0 {
			lines = append(lines, "Add a README with screenshots to your strongest repository to attract stars.")
		}
		if len(input.Github.Languages) < 2 {
			lines = append(lines, "Publish a project in a second language to demonstrate breadth.")
		}
	}
	if input.HasPortfolio {
		if !input.Portfolio.HasDeployment {
			lines = append(lines, "Deploy at least one project and link the live version from your portfolio.")
		}
		if !input.Portfolio.HasResume {
			lines = append(lines, "Attach a downloadable resume to your portfolio site.")
		}
		if len(input.Portfolio.Projects) < 3 {
			lines = append(lines, "Showcase more projects with short write-ups of the problem each one solves.")
		}
	}
	if len(lines) == 0 {
		lines = append(lines, "Keep your public profiles active so fresh signals stay available to reviewers.")
	}
	return strings.Join(lines, "\n"), nil
}

// buildPrompt renders the provider prompt from the input fact set.
func buildPrompt(input Input) string {
	var b strings.Builder
	b.WriteString("You review developer talent profiles. Based on the facts below, ")
	b.WriteString("suggest up to 5 concrete improvements the candidate can make to their public presence. ")
	b.WriteString("Respond with a JSON array of strings, one suggestion per element, no other text.\n\n")

	if input.HasGithub {
		fmt.Fprintf(&b, "GitHub: %d repositories, %d stars, %d recent commits, languages: %s.\n",
			input.Github.Repositories,
			input.Github.Stars,
			input.Github.RecentCommits,
			joinOrNone(input.Github.Languages),
		)
	} else {
		b.WriteString("GitHub: unavailable.\n")
	}

	if input.HasPortfolio {
		fmt.Fprintf(&b, "Portfolio: %d projects, deployment linked: %t, resume attached: %t, sections: %s, technologies: %s.\n",
			len(input.Portfolio.Projects),
			input.Portfolio.HasDeployment,
			input.Portfolio.HasResume,
			joinOrNone(input.Portfolio.Sections),
			joinOrNone(input.Portfolio.Technologies),
		)
	} else {
		b.WriteString("Portfolio: unavailable.\n")
	}

	fmt.Fprintf(&b, "Heuristic scores (0-100): code quality %d, project depth %d, portfolio completeness %d.\n",
		input.CodeQuality, input.ProjectDepth, input.PortfolioCompleteness)
	return b.String()
}

func joinOrNone(values []string) string {
	if len(values) == 0 {
		return "none"
	}
	return strings.Join(values, ", ")
}
