package discovery

import (
	"context"
	"net/url"
	"strings"

	"go.uber.org/zap"

	"github.com/spigell/career-auditor/internal/fetch"
	"github.com/spigell/career-auditor/internal/listing"
	"github.com/spigell/career-auditor/internal/logger"
	"github.com/spigell/career-auditor/internal/normalizer"
)

const (
	newsEndpoint = "https://news.google.com/rss/search"

	// WindowWeek and WindowFortnight restrict search results by age.
	WindowWeek      = "when:7d"
	WindowFortnight = "when:14d"
)

// NewsSearch queries the news RSS search feed.
type NewsSearch struct {
	fetcher  fetch.Fetcher
	logger   *zap.Logger
	endpoint string
}

func NewNewsSearch(f fetch.Fetcher, log *zap.Logger) *NewsSearch {
	return &NewsSearch{fetcher: f, logger: logger.WithFields(log), endpoint: newsEndpoint}
}

// URL builds the feed address for a query, a category suffix and an age window.
func (n *NewsSearch) URL(query, suffix, window string) string {
	q := url.Values{}
	q.Set("q", joinNonEmpty(query, suffix, window))
	q.Set("hl", "en-IN")
	q.Set("gl", "IN")
	q.Set("ceid", "IN:en")
	return n.endpoint + "?" + q.Encode()
}

// Query fetches and maps one search. A failed search yields no listings.
func (n *NewsSearch) Query(ctx context.Context, query, suffix, window string) []listing.Listing {
	log := n.logger.With(logger.SearchFields("news", joinNonEmpty(query, suffix, window), "")...)

	raw, err := n.fetcher.Fetch(ctx, n.URL(query, suffix, window))
	if err != nil {
		log.Warn("search failed", zap.Error(err))
		return []listing.Listing{}
	}

	items := normalizer.ParseRSS(raw)
	log.Debug("search done", zap.Int("items", len(items)))
	return items
}

func joinNonEmpty(parts ...string) string {
	kept := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			kept = append(kept, p)
		}
	}
	return strings.Join(kept, " ")
}
