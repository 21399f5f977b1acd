package signals

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"sort"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
	"github.com/ledongthuc/pdf"

	"talent-backend/internal/shared/telemetry"
)

const (
	portfolioFetchTimeout = 60 * time.Second
	portfolioUserAgent    = "talent-backend/1.0 (portfolio analyzer)"
	maxPortfolioBodyBytes = 4 << 20
	maxResumeBytes        = 10 << 20
	maxProjects           = 20
)

// deploymentHosts mark a project as actually deployed rather than only
// described. Matched as host suffixes.
var deploymentHosts = []string{
	"vercel.app",
	"netlify.app",
	"herokuapp.com",
	"github.io",
	"pages.dev",
	"fly.dev",
	"onrender.com",
	"railway.app",
	"web.app",
	"firebaseapp.com",
}

// knownTechnologies are scanned for in page text. Lowercase.
var knownTechnologies = []string{
	"react", "vue", "angular", "svelte", "next.js", "nuxt",
	"node.js", "express", "django", "flask", "fastapi", "rails",
	"spring", "go", "golang", "rust", "python", "typescript",
	"javascript", "java", "kotlin", "swift", "c++", "c#",
	"postgresql", "postgres", "mysql", "mongodb", "redis", "sqlite",
	"docker", "kubernetes", "terraform", "aws", "gcp", "azure",
	"graphql", "grpc", "kafka", "tailwind", "figma",
}

var sectionKeywords = []string{
	"about", "projects", "experience", "skills", "education",
	"contact", "resume", "work", "blog", "publications",
}

// PortfolioClient crawls a portfolio page and derives structured facts
// from its markup.
type PortfolioClient struct {
	httpClient *http.Client
}

// NewPortfolioClient constructs a PortfolioClient.
func NewPortfolioClient() *PortfolioClient {
	return &PortfolioClient{
		httpClient: &http.Client{Timeout: portfolioFetchTimeout},
	}
}

// FetchPortfolioFacts downloads the portfolio page and extracts project,
// technology, section and resume signals.
func (c *PortfolioClient) FetchPortfolioFacts(ctx context.Context, portfolioURL string) (PortfolioFacts, error) {
	base, err := url.Parse(strings.TrimSpace(portfolioURL))
	if err != nil || base.Host == "" {
		return PortfolioFacts{}, fmt.Errorf("invalid portfolio url %q", portfolioURL)
	}

	ctx, cancel := context.WithTimeout(ctx, portfolioFetchTimeout)
	defer cancel()

	body, err := c.fetch(ctx, base.String(), maxPortfolioBodyBytes)
	if err != nil {
		return PortfolioFacts{}, fmt.Errorf("fetch portfolio %s: %w", base.Host, err)
	}

	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(body))
	if err != nil {
		return PortfolioFacts{}, fmt.Errorf("parse portfolio %s: %w", base.Host, err)
	}

	facts := PortfolioFacts{
		Sections:     extractSections(doc),
		Projects:     extractProjects(doc),
		Technologies: extractTechnologies(doc),
	}
	facts.HasDeployment = hasDeploymentLink(doc, base)

	if resumeURL := findResumeLink(doc, base); resumeURL != "" {
		facts.HasResume = c.resumeHasContent(ctx, resumeURL)
	}

	return facts, nil
}

func (c *PortfolioClient) fetch(ctx context.Context, rawURL string, limit int64) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("User-Agent", portfolioUserAgent)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("unexpected status %d", resp.StatusCode)
	}
	return io.ReadAll(io.LimitReader(resp.Body, limit))
}

// resumeHasContent downloads the linked resume PDF and checks it contains
// extractable text. Failures are logged, not propagated, because a broken
// resume link should not fail the whole portfolio fetch.
func (c *PortfolioClient) resumeHasContent(ctx context.Context, resumeURL string) bool {
	body, err := c.fetch(ctx, resumeURL, maxResumeBytes)
	if err != nil {
		telemetry.Info("portfolio.resume_fetch_failed", map[string]any{
			"url":   resumeURL,
			"error": err.Error(),
		})
		return false
	}

	reader, err := pdf.NewReader(bytes.NewReader(body), int64(len(body)))
	if err != nil {
		return false
	}
	textReader, err := reader.GetPlainText()
	if err != nil {
		return false
	}
	text, err := io.ReadAll(io.LimitReader(textReader, 4096))
	if err != nil {
		return false
	}
	return len(strings.TrimSpace(string(text))) > 0
}

func extractSections(doc *goquery.Document) []string {
	seen := make(map[string]bool)
	var out []string
	add := func(name string) {
		if name != "" && !seen[name] {
			seen[name] = true
			out = append(out, name)
		}
	}

	doc.Find("h1, h2, h3, nav a, section[id]").Each(func(_ int, sel *goquery.Selection) {
		text := strings.ToLower(strings.TrimSpace(sel.Text()))
		if id, ok := sel.Attr("id"); ok {
			text = strings.ToLower(strings.TrimSpace(id))
		}
		for _, keyword := range sectionKeywords {
			if strings.Contains(text, keyword) {
				add(keyword)
			}
		}
	})
	return out
}

func extractProjects(doc *goquery.Document) []string {
	seen := make(map[string]bool)
	var out []string
	add := func(name string) {
		name = strings.TrimSpace(name)
		if name == "" || len(name) > 120 || seen[strings.ToLower(name)] {
			return
		}
		seen[strings.ToLower(name)] = true
		out = append(out, name)
	}

	// Card-style markup first, then headings under a projects section.
	doc.Find("[class*=project] h2, [class*=project] h3, [class*=project] h4, [id*=project] h2, [id*=project] h3").Each(func(_ int, sel *goquery.Selection) {
		add(sel.Text())
	})
	if len(out) == 0 {
		doc.Find("article h2, article h3, li h3").Each(func(_ int, sel *goquery.Selection) {
			add(sel.Text())
		})
	}
	if len(out) > maxProjects {
		out = out[:maxProjects]
	}
	return out
}

func extractTechnologies(doc *goquery.Document) []string {
	text := " " + strings.ToLower(doc.Text()) + " "
	var out []string
	for _, tech := range knownTechnologies {
		if containsToken(text, tech) {
			out = append(out, tech)
		}
	}
	sort.Strings(out)
	return out
}

// containsToken matches tech names on word boundaries so "go" does not
// match inside "google".
func containsToken(text, token string) bool {
	idx := 0
	for {
		pos := strings.Index(text[idx:], token)
		if pos < 0 {
			return false
		}
		start := idx + pos
		end := start + len(token)
		before := text[start-1]
		after := byte(' ')
		if end < len(text) {
			after = text[end]
		}
		if isBoundary(before) && isBoundary(after) {
			return true
		}
		idx = start + 1
	}
}

func isBoundary(ch byte) bool {
	switch {
	case ch >= 'a' && ch <= 'z':
		return false
	case ch >= '0' && ch <= '9':
		return false
	}
	return true
}

func hasDeploymentLink(doc *goquery.Document, base *url.URL) bool {
	found := false
	doc.Find("a[href]").EachWithBreak(func(_ int, sel *goquery.Selection) bool {
		href, _ := sel.Attr("href")
		parsed, err := url.Parse(href)
		if err != nil || parsed.Host == "" || parsed.Host == base.Host {
			return true
		}
		host := strings.ToLower(parsed.Host)
		for _, deploy := range deploymentHosts {
			if host == deploy || strings.HasSuffix(host, "."+deploy) {
				found = true
				return false
			}
		}
		return true
	})
	return found
}

func findResumeLink(doc *goquery.Document, base *url.URL) string {
	var resumeURL string
	doc.Find("a[href]").EachWithBreak(func(_ int, sel *goquery.Selection) bool {
		href, _ := sel.Attr("href")
		text := strings.ToLower(sel.Text())
		lowerHref := strings.ToLower(href)
		if !strings.HasSuffix(lowerHref, ".pdf") && !strings.Contains(text, "resume") && !strings.Contains(text, "cv") {
			return true
		}
		if !strings.HasSuffix(lowerHref, ".pdf") {
			return true
		}
		parsed, err := url.Parse(href)
		if err != nil {
			return true
		}
		resumeURL = base.ResolveReference(parsed).String()
		return false
	})
	return resumeURL
}
