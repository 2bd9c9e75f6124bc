package normalizer

import (
	"fmt"
	"regexp"
	"strings"
	"time"

	"github.com/spigell/career-auditor/internal/listing"
)

// Region scopes community list ids and selects the provenance label.
type Region string

const (
	RegionGlobal Region = "global"
	RegionIndia  Region = "india"

	SourceCommunity = "Community List (Verified)"
	SourceIndia     = "Verified (India Off-Campus)"
)

// Source returns the provenance label for listings parsed from the region.
func (r Region) Source() string {
	if r == RegionIndia {
		return SourceIndia
	}
	return SourceCommunity
}

var (
	mdLinkRe    = regexp.MustCompile(`\[([^\]]*)\]\([^)]*\)`)
	emphasisRe  = regexp.MustCompile(`\*\*|__`)
	parenURLRe  = regexp.MustCompile(`\((https?://[^)]+)\)`)
	hrefRe      = regexp.MustCompile(`href="([^"]+)"`)
	bareURLRe   = regexp.MustCompile(`(https?://[^\s]+)`)
	whitespace  = regexp.MustCompile(`\s+`)
	nonSlugChar = regexp.MustCompile(`[^a-zA-Z0-9-]`)
)

// ParseMarkdownTable converts a community-maintained markdown table into listings.
// Rows that are short, closed, or have no usable link or company are skipped.
func ParseMarkdownTable(markdown string, region Region, now time.Time) []listing.Listing {
	out := []listing.Listing{}
	seen := make(map[string]struct{})
	lastCompany := ""

	for _, line := range strings.Split(markdown, "\n") {
		if !strings.Contains(line, "|") || strings.Contains(line, "---") || strings.Contains(strings.ToLower(line), "company") {
			continue
		}

		cells := splitRow(line)
		if len(cells) < 4 {
			continue
		}

		linkIdx := 3
		if len(cells) >= 5 {
			linkIdx = 4
		}

		company := cleanCompany(cells[0])
		switch company {
		case "↳", "", `"`:
			company = lastCompany
		default:
			lastCompany = company
		}
		if company == "" {
			continue
		}

		role := emphasisRe.ReplaceAllString(cells[1], "")
		location := emphasisRe.ReplaceAllString(cells[2], "")

		rawLink := cells[linkIdx]
		link := extractLink(rawLink)
		if link == "" || strings.Contains(rawLink, "🔒") || strings.Contains(strings.ToLower(rawLink), "closed") || !listing.ValidLink(link) {
			continue
		}

		id := uniqueID(slug(fmt.Sprintf("gh-%s-%s-%s", region, company, role)), seen)

		out = append(out, listing.Listing{
			ID:          id,
			Title:       company + " - " + role,
			Link:        link,
			PublishedAt: now,
			Source:      region.Source(),
			Snippet:     fmt.Sprintf("Verified Listing: %s position at %s.\nLocation: %s.\nRegion: %s", role, company, location, strings.ToUpper(string(region))),
			Company:     company,
		})
	}

	return out
}

func splitRow(line string) []string {
	parts := strings.Split(line, "|")
	cells := make([]string, 0, len(parts))
	for _, p := range parts {
		if c := strings.TrimSpace(p); c != "" {
			cells = append(cells, c)
		}
	}
	return cells
}

func cleanCompany(cell string) string {
	company := mdLinkRe.ReplaceAllString(cell, "$1")
	company = strings.NewReplacer("[", "", "]", "").Replace(company)
	company = emphasisRe.ReplaceAllString(company, "")
	return strings.TrimSpace(company)
}

func extractLink(cell string) string {
	for _, re := range []*regexp.Regexp{parenURLRe, hrefRe, bareURLRe} {
		if m := re.FindStringSubmatch(cell); m != nil {
			return m[1]
		}
	}
	return ""
}

func slug(s string) string {
	s = whitespace.ReplaceAllString(s, "-")
	s = nonSlugChar.ReplaceAllString(s, "")
	return strings.ToLower(s)
}

func uniqueID(id string, seen map[string]struct{}) string {
	candidate := id
	for n := 2; ; n++ {
		if _, taken := seen[candidate]; !taken {
			seen[candidate] = struct{}{}
			return candidate
		}
		candidate = fmt.Sprintf("%s-%d", id, n)
	}
}
