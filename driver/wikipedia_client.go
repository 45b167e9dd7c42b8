// ABOUTME: This file calls the MediaWiki search and REST summary endpoints
// ABOUTME: Maps disambiguation pages and not-found conditions to typed results
package driver

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/url"
	"strings"
)

// WikipediaPage is the raw page data before fetcher normalization.
type WikipediaPage struct {
	Title          string
	Summary        string
	Extract        string
	URL            string
	Disambiguation bool
	Options        []string
}

// WikipediaClient looks up encyclopedia pages for institutions.
type WikipediaClient struct {
	baseURL string
	http    *ThrottledClient
	logger  *slog.Logger
}

func NewWikipediaClient(baseURL string, http *ThrottledClient, logger *slog.Logger) *WikipediaClient {
	if logger == nil {
		logger = slog.Default()
	}
	return &WikipediaClient{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    http,
		logger:  logger,
	}
}

type wikiSearchResponse struct {
	Query struct {
		Search []struct {
			Title string `json:"title"`
		} `json:"search"`
	} `json:"query"`
}

type wikiSummaryResponse struct {
	Title   string `json:"title"`
	Type    string `json:"type"`
	Extract string `json:"extract"`
	Content struct {
		Desktop struct {
			Page string `json:"page"`
		} `json:"desktop"`
	} `json:"content_urls"`
}

// FetchPage resolves an institution name to its page. A missing page
// returns (nil, nil); only transport failures and rate-limit statuses
// surface as errors.
func (c *WikipediaClient) FetchPage(ctx context.Context, name string) (*WikipediaPage, error) {
	title, err := c.searchTitle(ctx, name)
	if err != nil {
		return nil, err
	}
	if title == "" {
		c.logger.Debug("no wikipedia page found", "name", name)
		return nil, nil
	}

	return c.fetchSummary(ctx, title)
}

func (c *WikipediaClient) searchTitle(ctx context.Context, name string) (string, error) {
	query := url.Values{}
	query.Set("action", "query")
	query.Set("list", "search")
	query.Set("srsearch", name+" university")
	query.Set("srlimit", "5")
	query.Set("format", "json")

	endpoint := fmt.Sprintf("%s/w/api.php?%s", c.baseURL, query.Encode())
	body, err := c.http.Get(ctx, endpoint)
	if err != nil {
		return "", err
	}

	var parsed wikiSearchResponse
	if err := json.Unmarshal(body, &parsed); err != nil {
		return "", fmt.Errorf("malformed wikipedia search response: %w", err)
	}

	if len(parsed.Query.Search) == 0 {
		return "", nil
	}
	return parsed.Query.Search[0].Title, nil
}

// FetchTitle loads one specific page title directly, used when a
// disambiguation page forces a second attempt against a candidate.
func (c *WikipediaClient) FetchTitle(ctx context.Context, title string) (*WikipediaPage, error) {
	return c.fetchSummary(ctx, title)
}

func (c *WikipediaClient) fetchSummary(ctx context.Context, title string) (*WikipediaPage, error) {
	endpoint := fmt.Sprintf("%s/api/rest_v1/page/summary/%s", c.baseURL, url.PathEscape(title))
	body, err := c.http.Get(ctx, endpoint)
	if err != nil {
		var statusErr *StatusError
		if errors.As(err, &statusErr) && statusErr.Code == 404 {
			return nil, nil
		}
		return nil, err
	}

	var parsed wikiSummaryResponse
	if err := json.Unmarshal(body, &parsed); err != nil {
		return nil, fmt.Errorf("malformed wikipedia summary response: %w", err)
	}

	page := &WikipediaPage{
		Title:   parsed.Title,
		Summary: parsed.Extract,
		Extract: parsed.Extract,
		URL:     parsed.Content.Desktop.Page,
	}

	if parsed.Type == "disambiguation" {
		page.Disambiguation = true
		options, err := c.disambiguationOptions(ctx, title)
		if err == nil {
			page.Options = options
		}
	}

	return page, nil
}

// disambiguationOptions lists the pages a disambiguation page links to.
func (c *WikipediaClient) disambiguationOptions(ctx context.Context, title string) ([]string, error) {
	query := url.Values{}
	query.Set("action", "query")
	query.Set("titles", title)
	query.Set("prop", "links")
	query.Set("pllimit", "10")
	query.Set("plnamespace", "0")
	query.Set("format", "json")

	endpoint := fmt.Sprintf("%s/w/api.php?%s", c.baseURL, query.Encode())
	body, err := c.http.Get(ctx, endpoint)
	if err != nil {
		return nil, err
	}

	var parsed struct {
		Query struct {
			Pages map[string]struct {
				Links []struct {
					Title string `json:"title"`
				} `json:"links"`
			} `json:"pages"`
		} `json:"query"`
	}
	if err := json.Unmarshal(body, &parsed); err != nil {
		return nil, err
	}

	var options []string
	for _, page := range parsed.Query.Pages {
		for _, link := range page.Links {
			options = append(options, link.Title)
		}
	}
	return options, nil
}
