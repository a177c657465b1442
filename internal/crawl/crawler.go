// Package crawl implements the crawl() external collaborator of spec.md
// §6: same-host, depth-and-page-bounded fetch of page text, grounded on
// xhad-yes/pkg/scraper/scraper.go's recursive goquery-based scraper.
package crawl

import (
	"bufio"
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
	"golang.org/x/time/rate"
)

// Page is one crawled URL and its extracted text.
type Page struct {
	URL  string
	Text string
}

// Config bounds a crawl per the supplemented URL-ingest limits
// (SPEC_FULL.md §3): max depth, max page count, a running character
// budget, and a minimum delay between requests to the same host.
type Config struct {
	MaxDepth      int
	MaxPages      int
	MaxTotalChars int
	RateLimitSec  float64
	Timeout       time.Duration
}

// Crawler fetches same-host pages breadth-first, respecting robots.txt.
type Crawler struct {
	cfg      Config
	client   *http.Client
	limiter  *rate.Limiter
	visited   map[string]bool
	disallows []string
	baseHost  string
}

// New constructs a Crawler for the given starting URL.
func New(startURL string, cfg Config) (*Crawler, error) {
	if cfg.MaxDepth == 0 {
		cfg.MaxDepth = 1
	}
	if cfg.MaxPages == 0 {
		cfg.MaxPages = 5
	}
	if cfg.RateLimitSec == 0 {
		cfg.RateLimitSec = 1.0
	}
	if cfg.Timeout == 0 {
		cfg.Timeout = 15 * time.Second
	}

	parsed, err := url.Parse(startURL)
	if err != nil {
		return nil, fmt.Errorf("invalid crawl URL: %w", err)
	}

	c := &Crawler{
		cfg:      cfg,
		client:   &http.Client{Timeout: cfg.Timeout},
		limiter:  rate.NewLimiter(rate.Limit(1.0/cfg.RateLimitSec), 1),
		visited:  make(map[string]bool),
		baseHost: parsed.Host,
	}
	c.disallows = c.fetchRobotsDisallows(parsed)
	return c, nil
}

// fetchRobotsDisallows reads the wildcard (User-agent: *) Disallow
// prefixes from /robots.txt. No pack example parses robots.txt, so this
// is a minimal hand-rolled reader rather than a fabricated dependency
// (see DESIGN.md) — it only needs prefix matching, not the full grammar.
func (c *Crawler) fetchRobotsDisallows(base *url.URL) []string {
	robotsURL := fmt.Sprintf("%s://%s/robots.txt", base.Scheme, base.Host)
	resp, err := c.client.Get(robotsURL)
	if err != nil {
		return nil
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return nil
	}

	var disallows []string
	applies := false
	scanner := bufio.NewScanner(resp.Body)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		switch {
		case strings.HasPrefix(strings.ToLower(line), "user-agent:"):
			agent := strings.TrimSpace(line[len("user-agent:"):])
			applies = agent == "*"
		case applies && strings.HasPrefix(strings.ToLower(line), "disallow:"):
			prefix := strings.TrimSpace(line[len("disallow:"):])
			if prefix != "" {
				disallows = append(disallows, prefix)
			}
		}
	}
	return disallows
}

func (c *Crawler) allowed(u *url.URL) bool {
	for _, prefix := range c.disallows {
		if strings.HasPrefix(u.Path, prefix) {
			return false
		}
	}
	return true
}

// Crawl walks same-host pages starting at startURL, breadth-first, up to
// MaxDepth and MaxPages, stopping early once MaxTotalChars of extracted
// text has accumulated. Pages are deduplicated by URL.
func (c *Crawler) Crawl(ctx context.Context, startURL string) ([]Page, error) {
	type queued struct {
		url   string
		depth int
	}

	queue := []queued{{url: startURL, depth: 0}}
	var pages []Page
	totalChars := 0

	for len(queue) > 0 && len(pages) < c.cfg.MaxPages {
		item := queue[0]
		queue = queue[1:]

		if item.depth > c.cfg.MaxDepth || c.visited[item.url] {
			continue
		}
		c.visited[item.url] = true

		parsed, err := url.Parse(item.url)
		if err != nil || parsed.Host != c.baseHost {
			continue
		}
		if !c.allowed(parsed) {
			continue
		}

		if err := c.limiter.Wait(ctx); err != nil {
			return pages, err
		}

		text, links, err := c.fetchPage(ctx, item.url)
		if err != nil {
			continue
		}

		if text != "" {
			pages = append(pages, Page{URL: item.url, Text: text})
			totalChars += len(text)
			if c.cfg.MaxTotalChars > 0 && totalChars >= c.cfg.MaxTotalChars {
				break
			}
		}

		if item.depth < c.cfg.MaxDepth {
			for _, link := range links {
				if !c.visited[link] {
					queue = append(queue, queued{url: link, depth: item.depth + 1})
				}
			}
		}
	}

	return pages, nil
}

func (c *Crawler) fetchPage(ctx context.Context, pageURL string) (string, []string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, pageURL, nil)
	if err != nil {
		return "", nil, err
	}

	resp, err := c.client.Do(req)
	if err != nil {
		return "", nil, err
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return "", nil, fmt.Errorf("unexpected status %d for %s", resp.StatusCode, pageURL)
	}

	doc, err := goquery.NewDocumentFromReader(resp.Body)
	if err != nil {
		return "", nil, err
	}

	text := extractText(doc)

	var links []string
	doc.Find("a[href]").Each(func(_ int, sel *goquery.Selection) {
		href, ok := sel.Attr("href")
		if !ok {
			return
		}
		abs, err := resolveLink(pageURL, href)
		if err == nil {
			links = append(links, abs)
		}
	})

	return text, links, nil
}

func extractText(doc *goquery.Document) string {
	for _, sel := range []string{"main", "article", ".content", "#content"} {
		if found := doc.Find(sel); found.Length() > 0 {
			return strings.TrimSpace(strings.Join(strings.Fields(found.Text()), " "))
		}
	}
	return strings.TrimSpace(strings.Join(strings.Fields(doc.Find("body").Text()), " "))
}

func resolveLink(pageURL, href string) (string, error) {
	base, err := url.Parse(pageURL)
	if err != nil {
		return "", err
	}
	ref, err := url.Parse(href)
	if err != nil {
		return "", err
	}
	return base.ResolveReference(ref).String(), nil
}
