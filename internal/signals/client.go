package signals

import "context"

// Client combines the GitHub and portfolio clients behind the Fetcher
// interface.
type Client struct {
	Github    *GithubClient
	Portfolio *PortfolioClient
}

// NewClient constructs the default Fetcher implementation.
func NewClient(githubToken string) *Client {
	return &Client{
		Github:    NewGithubClient(githubToken),
		Portfolio: NewPortfolioClient(),
	}
}

func (c *Client) FetchGithubFacts(ctx context.Context, githubURL string) (GithubFacts, error) {
	return c.Github.FetchGithubFacts(ctx, githubURL)
}

func (c *Client) FetchPortfolioFacts(ctx context.Context, portfolioURL string) (PortfolioFacts, error) {
	return c.Portfolio.FetchPortfolioFacts(ctx, portfolioURL)
}
