package models

import "time"

// SourceType identifies one external data provider. The set is fixed at
// startup; every member carries a rate-limit policy even when no fetcher
// exists for it yet.
type SourceType string

const (
	SourceWikipedia   SourceType = "wikipedia"
	SourceSearch      SourceType = "search"
	SourceWebometrics SourceType = "webometrics"
	SourceQS          SourceType = "qs"
	SourceTHE         SourceType = "the"
	SourceGovernment  SourceType = "government"
)

// AllSources lists every source type in budget-reporting order.
var AllSources = []SourceType{
	SourceWikipedia,
	SourceSearch,
	SourceWebometrics,
	SourceQS,
	SourceTHE,
	SourceGovernment,
}

// SourceNote is the structured advisory recorded when a source was rate
// limited during aggregation. The request still succeeds; the note tells the
// caller which source was skipped and when it becomes available again.
type SourceNote struct {
	Source  SourceType `json:"source"`
	Status  string     `json:"status"`
	ResetAt time.Time  `json:"reset_at"`
	Message string     `json:"message"`
}

// NoteStatusRateLimited is the only note status emitted today.
const NoteStatusRateLimited = "rate_limited"

// WikipediaData is the normalized encyclopedia payload. Summary is truncated
// to 500 characters; RankingMentions holds at most five lines of at most 200
// characters each.
type WikipediaData struct {
	Title           string   `json:"title"`
	Summary         string   `json:"summary"`
	RankingMentions []string `json:"ranking_mentions,omitempty"`
}

// SearchHit is one extracted result link.
type SearchHit struct {
	Title   string `json:"title"`
	URL     string `json:"url"`
	Snippet string `json:"snippet,omitempty"`
}

// SearchQueryResult holds the hits for one ranking query, capped at three.
type SearchQueryResult struct {
	Query string      `json:"query"`
	Hits  []SearchHit `json:"hits"`
}

// SearchData is the normalized web-search payload.
type SearchData struct {
	Queries []SearchQueryResult `json:"queries"`
}

// WebometricsData is the normalized ranking-site payload.
type WebometricsData struct {
	WorldRank  int    `json:"world_rank"`
	Country    string `json:"country,omitempty"`
	ProfileURL string `json:"profile_url,omitempty"`
}

// AggregatedPayload collects whatever the enabled sources returned for one
// institution, plus static ranking-table merges. SourcesUsed lists only the
// sources that contributed non-empty data; a payload with an empty
// SourcesUsed list is never cached.
type AggregatedPayload struct {
	Institution string           `json:"institution"`
	Country     string           `json:"country"`
	Wikipedia   *WikipediaData   `json:"wikipedia,omitempty"`
	Search      *SearchData      `json:"search,omitempty"`
	Webometrics *WebometricsData `json:"webometrics,omitempty"`
	QSRank      int              `json:"qs_rank,omitempty"`
	THERank     int              `json:"the_rank,omitempty"`
	SourcesUsed []SourceType     `json:"sources_used"`
	Notes       []SourceNote     `json:"notes,omitempty"`
	CacheHit    bool             `json:"cache_hit"`
	FetchedAt   time.Time        `json:"fetched_at"`
}

// HasData reports whether at least one source contributed non-empty data.
func (p *AggregatedPayload) HasData() bool {
	return p != nil && len(p.SourcesUsed) > 0
}

// UsedSource reports whether the given source contributed data.
func (p *AggregatedPayload) UsedSource(source SourceType) bool {
	if p == nil {
		return false
	}
	for _, s := range p.SourcesUsed {
		if s == source {
			return true
		}
	}
	return false
}
