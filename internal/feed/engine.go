package feed

import (
	"slices"
	"sort"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/spigell/career-auditor/internal/listing"
	"github.com/spigell/career-auditor/internal/logger"
)

const (
	rankFeatured      = 200
	rankForeign       = 0
	rankVerifiedIndia = 150
	rankVerified      = 80
	rankTierOne       = 40
	rankRemote        = 30
	rankDefault       = 20
)

// Engine merges listings from several origins into one ranked, de-noised, deduplicated feed.
type Engine struct {
	rules  Rules
	logger *zap.Logger
	now    func() time.Time
	extra  []Filter
}

type Option func(*Engine)

// WithClock replaces the wall clock used by the freshness gate.
func WithClock(now func() time.Time) Option {
	return func(e *Engine) {
		e.now = now
	}
}

// WithFilters appends user filters after the built-in steps.
func WithFilters(filters ...Filter) Option {
	return func(e *Engine) {
		e.extra = append(e.extra, filters...)
	}
}

func New(rules Rules, log *zap.Logger, opts ...Option) *Engine {
	e := &Engine{
		rules:  rules.normalized(),
		logger: logger.WithFields(log),
		now:    time.Now,
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Rules returns the configuration of the engine.
func (e *Engine) Rules() Rules {
	return e.rules
}

// QueryTokens extracts the context words of a search query: lowercase tokens longer than
// three characters that are not generic search words.
func (e *Engine) QueryTokens(query string) []string {
	tokens := []string{}
	for _, t := range strings.Split(strings.ToLower(query), " ") {
		if len([]rune(t)) <= 3 || slices.Contains(e.rules.GenericQuery, t) {
			continue
		}
		tokens = append(tokens, t)
	}
	return tokens
}

// Steps returns the filter pipeline for a query and category, in execution order.
func (e *Engine) Steps(query string, category listing.Category) []Filter {
	steps := []Filter{
		NewNoise(e.rules.Noise),
		NewCategory(category, e.rules.InternshipTerms),
		NewRelevance(e.rules.StrongSignals, e.QueryTokens(query)),
		NewFreshness(e.now(), e.rules.MaxAge),
	}
	return append(steps, e.extra...)
}

// Deduplicate filters, ranks, sorts and deduplicates listings. The input slice is not modified.
// Sorting happens before deduplication so the highest-ranked copy of a duplicate survives.
func (e *Engine) Deduplicate(items []listing.Listing, query string, category listing.Category) []listing.Listing {
	log := e.logger.With(logger.SearchFields("", query, string(category))...)

	out := items
	for _, step := range e.Steps(query, category) {
		var info Step
		out, info = step.Apply(out)
		log.Debug("filter step",
			zap.String("name", step.Name()),
			zap.Int("initial", info.Initial),
			zap.Int("dropped", info.Dropped),
			zap.Int("left", info.Left),
		)
	}

	e.Sort(out)

	initial := len(out)
	out = e.unique(out)
	log.Debug("filter step",
		zap.String("name", "dedup"),
		zap.Int("initial", initial),
		zap.Int("dropped", initial-len(out)),
		zap.Int("left", len(out)),
	)

	return out
}

// Sort orders listings by rank score descending, then by publish time newest first.
// Undated listings sort after dated ones of the same rank.
func (e *Engine) Sort(items []listing.Listing) {
	scores := make([]int, len(items))
	for i := range items {
		scores[i] = e.RankScore(items[i])
	}

	idx := make([]int, len(items))
	for i := range idx {
		idx[i] = i
	}
	sort.SliceStable(idx, func(a, b int) bool {
		ia, ib := idx[a], idx[b]
		if scores[ia] != scores[ib] {
			return scores[ia] > scores[ib]
		}
		return newer(items[ia].PublishedAt, items[ib].PublishedAt)
	})

	sorted := make([]listing.Listing, len(items))
	for i, j := range idx {
		sorted[i] = items[j]
	}
	copy(items, sorted)
}

func newer(a, b time.Time) bool {
	if a.IsZero() || b.IsZero() {
		return !a.IsZero() && b.IsZero()
	}
	return a.After(b)
}

// RankScore scores a listing by provenance and location.
func (e *Engine) RankScore(l listing.Listing) int {
	if l.Featured() {
		return rankFeatured
	}

	text := lowerText(l)
	switch {
	case containsAny(text, e.rules.Foreign):
		return rankForeign
	case strings.Contains(l.Source, "Verified (India"):
		return rankVerifiedIndia
	case strings.Contains(l.Source, "Verified"):
		return rankVerified
	case containsAny(text, e.rules.TierOne):
		return rankTierOne
	case containsAny(text, e.rules.Remote):
		return rankRemote
	default:
		return rankDefault
	}
}

// Key is the dedup identity of a listing: the leading runes of the lowercased title plus the lowercased source.
func (e *Engine) Key(l listing.Listing) string {
	title := []rune(strings.ToLower(l.Title))
	if len(title) > e.rules.KeyLength {
		title = title[:e.rules.KeyLength]
	}
	return string(title) + "-" + strings.ToLower(l.Source)
}

func (e *Engine) unique(items []listing.Listing) []listing.Listing {
	seen := make(map[string]struct{}, len(items))
	out := make([]listing.Listing, 0, len(items))
	for _, item := range items {
		key := e.Key(item)
		if _, dup := seen[key]; dup {
			continue
		}
		seen[key] = struct{}{}
		out = append(out, item)
	}
	return out
}
