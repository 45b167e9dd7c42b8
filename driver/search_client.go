// ABOUTME: This file scrapes web search result pages for ranking mentions
// ABOUTME: Parses result titles and snippets with goquery, capped per query
package driver

import (
	"context"
	"fmt"
	"log/slog"
	"net/url"
	"strings"

	"github.com/PuerkitoBio/goquery"
)

// SearchHit is one parsed result from a search page.
type SearchHit struct {
	Title   string
	URL     string
	Snippet string
}

// SearchClient runs queries against an HTML search endpoint. The endpoint
// host is paced by the shared client so the politeness delay applies before
// every request.
type SearchClient struct {
	baseURL    string
	maxResults int
	http       *ThrottledClient
	logger     *slog.Logger
}

func NewSearchClient(baseURL string, maxResults int, http *ThrottledClient, logger *slog.Logger) *SearchClient {
	if logger == nil {
		logger = slog.Default()
	}
	if maxResults <= 0 {
		maxResults = 3
	}
	return &SearchClient{
		baseURL:    strings.TrimRight(baseURL, "/"),
		maxResults: maxResults,
		http:       http,
		logger:     logger,
	}
}

// Search returns up to maxResults hits for the query. Zero hits is not an
// error; the caller decides whether an empty page matters.
func (c *SearchClient) Search(ctx context.Context, query string) ([]SearchHit, error) {
	params := url.Values{}
	params.Set("q", query)

	endpoint := fmt.Sprintf("%s/?%s", c.baseURL, params.Encode())
	body, err := c.http.Get(ctx, endpoint)
	if err != nil {
		return nil, err
	}

	doc, err := goquery.NewDocumentFromReader(strings.NewReader(string(body)))
	if err != nil {
		return nil, fmt.Errorf("failed to parse search results: %w", err)
	}

	hits := c.parseResults(doc)
	c.logger.Debug("search completed", "query", query, "hits", len(hits))
	return hits, nil
}

func (c *SearchClient) parseResults(doc *goquery.Document) []SearchHit {
	var hits []SearchHit

	doc.Find(".result").EachWithBreak(func(_ int, sel *goquery.Selection) bool {
		link := sel.Find(".result__a").First()
		title := strings.TrimSpace(link.Text())
		if title == "" {
			return true
		}

		href, _ := link.Attr("href")
		snippet := strings.TrimSpace(sel.Find(".result__snippet").First().Text())

		hits = append(hits, SearchHit{
			Title:   title,
			URL:     resolveRedirect(href),
			Snippet: snippet,
		})
		return len(hits) < c.maxResults
	})

	return hits
}

// resolveRedirect unwraps the uddg redirect wrapper around result links so
// hits carry the destination URL.
func resolveRedirect(href string) string {
	parsed, err := url.Parse(href)
	if err != nil {
		return href
	}
	if target := parsed.Query().Get("uddg"); target != "" {
		return target
	}
	return href
}
