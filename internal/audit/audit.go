package audit

import (
	"context"
	"errors"
	"time"
	"unicode/utf8"

	"go.uber.org/zap"

	"github.com/spigell/career-auditor/internal/discovery"
	"github.com/spigell/career-auditor/internal/extract"
	"github.com/spigell/career-auditor/internal/fetch"
	"github.com/spigell/career-auditor/internal/listing"
	"github.com/spigell/career-auditor/internal/logger"
	"github.com/spigell/career-auditor/internal/scoring"
)

var errWeakContent = errors.New("content looks like a block page or is empty")

// Request identifies the posting to audit. Title, Source and Snippet usually come from the listing it was picked from.
type Request struct {
	URL     string
	Title   string
	Source  string
	Snippet string
	// Company overrides the name guessed from Title and Source.
	Company string
}

// FromListing builds a Request for a feed listing.
func FromListing(l listing.Listing) Request {
	return Request{URL: l.Link, Title: l.Title, Source: l.Source, Snippet: l.Snippet, Company: l.Company}
}

// IntelSource looks up secondary reputation signals about a company.
type IntelSource interface {
	CompanyIntel(ctx context.Context, company, description string) discovery.Intel
}

// Report is the outcome of a posting audit.
type Report struct {
	URL      string               `json:"url"`
	Title    string               `json:"title"`
	Company  string               `json:"company"`
	Role     string               `json:"role"`
	Partial  bool                 `json:"partial"`
	Excerpt  string               `json:"excerpt"`
	Vibe     scoring.VibeResult   `json:"vibe"`
	Location string               `json:"location"`
	Stream   string               `json:"stream"`
	Match    *scoring.MatchResult `json:"match,omitempty"`
	Deadline *time.Time           `json:"deadline,omitempty"`
	Status   extract.Status       `json:"status"`
	Intel    *discovery.Intel     `json:"intel,omitempty"`
	Score    int                  `json:"score"`
}

// Auditor fetches a posting and scores it against a profile.
type Auditor struct {
	fetcher   fetch.Fetcher
	extractor *extract.Extractor
	scorer    *scoring.Scorer
	intel     IntelSource
	logger    *zap.Logger
	now       func() time.Time
}

type Option func(*Auditor)

// WithIntel adds company reputation to the composite score.
func WithIntel(src IntelSource) Option {
	return func(a *Auditor) {
		a.intel = src
	}
}

func WithExtractor(e *extract.Extractor) Option {
	return func(a *Auditor) {
		a.extractor = e
	}
}

func WithScorer(s *scoring.Scorer) Option {
	return func(a *Auditor) {
		a.scorer = s
	}
}

// WithClock replaces the wall clock used for the application status.
func WithClock(now func() time.Time) Option {
	return func(a *Auditor) {
		a.now = now
	}
}

func New(f fetch.Fetcher, log *zap.Logger, opts ...Option) *Auditor {
	a := &Auditor{
		fetcher:   f,
		extractor: extract.New(extract.DefaultGazetteer()),
		scorer:    scoring.Default(),
		logger:    logger.WithFields(log),
		now:       time.Now,
	}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

// Audit runs a full audit of the posting. When the page cannot be fetched or looks
// like a block page, the snippet is audited instead and the report is marked partial.
// profile may be nil, in which case no match is computed.
func (a *Auditor) Audit(ctx context.Context, req Request, profile *listing.UserProfile) Report {
	log := a.logger.With(zap.String(logger.FieldURL, req.URL))

	text, err := a.content(ctx, req.URL)
	partial := err != nil
	if partial {
		log.Warn("full audit failed, falling back to snippet", zap.Error(err))
		text = PlainText(req.Snippet)
	}

	company := req.Company
	if company == "" {
		company = a.extractor.CompanyName(req.Title, req.Source)
	}

	r := Report{
		URL:      req.URL,
		Title:    req.Title,
		Company:  company,
		Role:     a.extractor.JobRole(req.Title),
		Partial:  partial,
		Excerpt:  logger.TruncateForLog(text, 600),
		Vibe:     a.scorer.Vibe(text),
		Location: a.extractor.Location(text),
		Stream:   a.extractor.Stream(text),
	}

	if profile != nil {
		m := a.scorer.Match(*profile, scoring.JobDetails{
			Description:    text,
			Location:       r.Location,
			Qualifications: r.Stream,
		})
		r.Match = &m
	}

	deadline, ok := a.extractor.Deadline(text)
	if ok {
		r.Deadline = &deadline
	}
	r.Status = extract.ApplicationStatus(deadline, ok, a.now())

	adjustment := 0
	if a.intel != nil && company != "" {
		intel := a.intel.CompanyIntel(ctx, company, text)
		r.Intel = &intel
		adjustment = intel.Reputation.Adjustment
	}

	r.Score = scoring.Composite(r.Vibe.Score, adjustment, r.Match)

	log.Info("audit done",
		zap.String(logger.FieldCompany, company),
		zap.Bool("partial", partial),
		zap.Int("score", r.Score),
		zap.String("status", string(r.Status)),
	)
	return r
}

func (a *Auditor) content(ctx context.Context, url string) (string, error) {
	raw, err := a.fetcher.Fetch(ctx, url)
	if err != nil {
		return "", err
	}

	text := PlainText(raw)
	if utf8.RuneCountInString(text) < minContentRunes || a.extractor.BlockedPage(text) {
		return "", errWeakContent
	}
	return text, nil
}
