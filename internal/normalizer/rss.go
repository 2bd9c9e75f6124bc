package normalizer

import (
	"strings"
	"time"

	"github.com/antchfx/xmlquery"
	"github.com/google/uuid"

	"github.com/spigell/career-auditor/internal/listing"
)

var pubDateLayouts = []string{time.RFC1123Z, time.RFC1123, time.RFC3339, time.RFC822Z, time.RFC822}

// ParseRSS maps the items of an RSS search feed to listings. Items without a link are dropped.
// A document that does not parse yields no listings.
func ParseRSS(raw string) []listing.Listing {
	out := []listing.Listing{}

	doc, err := xmlquery.Parse(strings.NewReader(raw))
	if err != nil {
		return out
	}

	items, err := xmlquery.QueryAll(doc, "//channel/item")
	if err != nil {
		return out
	}

	for _, item := range items {
		link := childText(item, "link")
		if link == "" {
			continue
		}

		id := childText(item, "guid")
		if id == "" {
			id = uuid.NewString()
		}

		out = append(out, listing.Listing{
			ID:          id,
			Title:       childText(item, "title"),
			Link:        link,
			PublishedAt: ParsePubDate(childText(item, "pubDate")),
			Source:      childText(item, "source"),
			Snippet:     childText(item, "description"),
		})
	}

	return out
}

// ParsePubDate parses RSS date variants. Unparseable input yields the zero time.
func ParsePubDate(s string) time.Time {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}
	}
	for _, layout := range pubDateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t
		}
	}
	return time.Time{}
}

func childText(n *xmlquery.Node, name string) string {
	child := n.SelectElement(name)
	if child == nil {
		return ""
	}
	return strings.TrimSpace(child.InnerText())
}
