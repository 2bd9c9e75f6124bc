package feed

import (
	"strings"
	"time"

	"github.com/spigell/career-auditor/internal/listing"
)

// Filter represents a single filtering step applied to listings.
type Filter interface {
	Name() string
	Apply(items []listing.Listing) ([]listing.Listing, Step)
}

// Step describes the result of executing a filtering step.
type Step struct {
	Initial int
	Dropped int
	Left    int
}

// keep returns the items matched by fn in a new slice together with the step counters.
func keep(items []listing.Listing, fn func(listing.Listing) bool) ([]listing.Listing, Step) {
	out := make([]listing.Listing, 0, len(items))
	for _, item := range items {
		if fn(item) {
			out = append(out, item)
		}
	}
	return out, Step{Initial: len(items), Dropped: len(items) - len(out), Left: len(out)}
}

func lowerText(l listing.Listing) string {
	return strings.ToLower(l.Text())
}

func containsAny(text string, terms []string) bool {
	for _, term := range terms {
		if strings.Contains(text, term) {
			return true
		}
	}
	return false
}

type noiseFilter struct {
	terms []string
}

// NewNoise creates a filter that drops news, opinion and exam-result noise.
func NewNoise(terms []string) Filter {
	return &noiseFilter{terms: terms}
}

func (f *noiseFilter) Name() string { return "noise" }

func (f *noiseFilter) Apply(items []listing.Listing) ([]listing.Listing, Step) {
	return keep(items, func(l listing.Listing) bool {
		return !containsAny(lowerText(l), f.terms)
	})
}

type categoryFilter struct {
	category listing.Category
	terms    []string
}

// NewCategory creates a filter that keeps only internship postings in the internship feed.
// Other categories pass everything through.
func NewCategory(category listing.Category, internshipTerms []string) Filter {
	return &categoryFilter{category: category, terms: internshipTerms}
}

func (f *categoryFilter) Name() string { return "category" }

func (f *categoryFilter) Apply(items []listing.Listing) ([]listing.Listing, Step) {
	if f.category != listing.CategoryInternships {
		return keep(items, func(listing.Listing) bool { return true })
	}
	return keep(items, func(l listing.Listing) bool {
		return containsAny(lowerText(l), f.terms)
	})
}

type relevanceFilter struct {
	signals []string
	tokens  []string
}

// NewRelevance creates a filter that requires a hiring signal or a query token in the text.
func NewRelevance(signals, queryTokens []string) Filter {
	return &relevanceFilter{signals: signals, tokens: queryTokens}
}

func (f *relevanceFilter) Name() string { return "relevance" }

func (f *relevanceFilter) Apply(items []listing.Listing) ([]listing.Listing, Step) {
	return keep(items, func(l listing.Listing) bool {
		text := lowerText(l)
		return containsAny(text, f.signals) || containsAny(text, f.tokens)
	})
}

type freshnessFilter struct {
	now    time.Time
	maxAge time.Duration
}

// NewFreshness creates a filter that drops listings published more than maxAge away from now.
// Listings without a publish time carry no signal and are kept.
func NewFreshness(now time.Time, maxAge time.Duration) Filter {
	return &freshnessFilter{now: now, maxAge: maxAge}
}

func (f *freshnessFilter) Name() string { return "freshness" }

func (f *freshnessFilter) Apply(items []listing.Listing) ([]listing.Listing, Step) {
	return keep(items, func(l listing.Listing) bool {
		if l.PublishedAt.IsZero() {
			return true
		}
		age := f.now.Sub(l.PublishedAt)
		if age < 0 {
			age = -age
		}
		return age <= f.maxAge
	})
}

type dismissedFilter struct {
	ids map[string]struct{}
}

// NewDismissed creates a filter that removes listings the user dismissed earlier.
func NewDismissed(ids []string) Filter {
	set := make(map[string]struct{}, len(ids))
	for _, id := range ids {
		set[id] = struct{}{}
	}
	return &dismissedFilter{ids: set}
}

func (f *dismissedFilter) Name() string { return "dismissed" }

func (f *dismissedFilter) Apply(items []listing.Listing) ([]listing.Listing, Step) {
	return keep(items, func(l listing.Listing) bool {
		_, gone := f.ids[l.ID]
		return !gone
	})
}

type companiesFilter struct {
	companies []string
}

// NewExcludedCompanies creates a filter that removes listings by employers the user excluded.
// A listing matches when its company or title mentions the employer, ignoring case.
func NewExcludedCompanies(companies []string) Filter {
	lowered := make([]string, 0, len(companies))
	for _, c := range companies {
		if c = strings.ToLower(strings.TrimSpace(c)); c != "" {
			lowered = append(lowered, c)
		}
	}
	return &companiesFilter{companies: lowered}
}

func (f *companiesFilter) Name() string { return "companies" }

func (f *companiesFilter) Apply(items []listing.Listing) ([]listing.Listing, Step) {
	return keep(items, func(l listing.Listing) bool {
		return !containsAny(strings.ToLower(l.Company+" "+l.Title), f.companies)
	})
}
