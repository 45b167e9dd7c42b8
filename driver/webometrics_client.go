// ABOUTME: This file scrapes the Webometrics site search for institution profiles
// ABOUTME: Extracts the world rank from the first matching search result
package driver

import (
	"context"
	"fmt"
	"log/slog"
	"net/url"
	"regexp"
	"strconv"
	"strings"

	"github.com/PuerkitoBio/goquery"
)

// WebometricsProfile is the parsed search result for one institution.
// WorldRank is zero when the page did not expose a numeric rank.
type WebometricsProfile struct {
	Name      string
	WorldRank int
	URL       string
}

type WebometricsClient struct {
	baseURL string
	http    *ThrottledClient
	logger  *slog.Logger
}

func NewWebometricsClient(baseURL string, http *ThrottledClient, logger *slog.Logger) *WebometricsClient {
	if logger == nil {
		logger = slog.Default()
	}
	return &WebometricsClient{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    http,
		logger:  logger,
	}
}

var rankPattern = regexp.MustCompile(`(?i)rank(?:ing)?[:\s#]*([0-9]{1,6})`)

// Lookup searches the rankings site for the institution. A miss returns
// (nil, nil) so callers can distinguish absence from transport failure.
func (c *WebometricsClient) Lookup(ctx context.Context, name string) (*WebometricsProfile, error) {
	endpoint := fmt.Sprintf("%s/en/search/site/%s", c.baseURL, url.PathEscape(name))
	body, err := c.http.Get(ctx, endpoint)
	if err != nil {
		return nil, err
	}

	doc, err := goquery.NewDocumentFromReader(strings.NewReader(string(body)))
	if err != nil {
		return nil, fmt.Errorf("failed to parse webometrics page: %w", err)
	}

	result := doc.Find(".search-result").First()
	if result.Length() == 0 {
		result = doc.Find("ol.search-results li").First()
	}
	if result.Length() == 0 {
		c.logger.Debug("no webometrics profile found", "name", name)
		return nil, nil
	}

	link := result.Find("a").First()
	title := strings.TrimSpace(link.Text())
	if title == "" {
		return nil, nil
	}
	href, _ := link.Attr("href")

	profile := &WebometricsProfile{
		Name: title,
		URL:  href,
	}

	if match := rankPattern.FindStringSubmatch(result.Text()); len(match) == 2 {
		if rank, err := strconv.Atoi(match[1]); err == nil && rank > 0 {
			profile.WorldRank = rank
		}
	}

	return profile, nil
}
