package discovery

import (
	"context"
	"math/rand/v2"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/spigell/career-auditor/internal/feed"
	"github.com/spigell/career-auditor/internal/listing"
	"github.com/spigell/career-auditor/internal/logger"
	"github.com/spigell/career-auditor/internal/scoring"
	"github.com/spigell/career-auditor/internal/utils"
)

// Config controls pacing of the orchestration loop.
type Config struct {
	// Delay separates consecutive searches of the progressive feed.
	Delay time.Duration `mapstructure:"delay"`
	// BatchDelay separates consecutive searches of the batch profile search.
	BatchDelay time.Duration `mapstructure:"batch-delay"`
	// IntelDelay separates the company intel steps.
	IntelDelay time.Duration `mapstructure:"intel-delay"`
	// TargetedBatch is the number of seed companies searched concurrently.
	TargetedBatch int `mapstructure:"targeted-batch"`
}

// DefaultConfig returns the pacing used when nothing is configured.
func DefaultConfig() Config {
	return Config{
		Delay:         2 * time.Second,
		BatchDelay:    1500 * time.Millisecond,
		IntelDelay:    1200 * time.Millisecond,
		TargetedBatch: 3,
	}
}

// PinnedSource provides admin-curated listings.
type PinnedSource interface {
	Load(ctx context.Context) ([]listing.Listing, error)
}

// Deps aggregates collaborators shared across discovery operations.
type Deps struct {
	News      *NewsSearch
	Community *CommunityList
	Pinned    PinnedSource
	Engine    *feed.Engine
	Scorer    *scoring.Scorer
	Companies []Company
	Logger    *zap.Logger
	Rand      *rand.Rand
}

// Discoverer aggregates listings from pinned, community, targeted and generic sources.
type Discoverer struct {
	cfg  Config
	deps Deps
	log  *zap.Logger
	// intel spaces every company intel and related-jobs search of this discoverer.
	intel *utils.Pacer
}

// UpdateFunc receives a snapshot of the feed after each stage.
type UpdateFunc func(stage string, snapshot []listing.Listing)

func New(cfg Config, deps Deps) *Discoverer {
	def := DefaultConfig()
	if cfg.TargetedBatch <= 0 {
		cfg.TargetedBatch = def.TargetedBatch
	}
	if deps.Rand == nil {
		deps.Rand = rand.New(rand.NewPCG(uint64(time.Now().UnixNano()), 0))
	}
	if deps.Scorer == nil {
		deps.Scorer = scoring.Default()
	}
	if deps.Companies == nil {
		deps.Companies = DefaultCompanies()
	}
	return &Discoverer{
		cfg:   cfg,
		deps:  deps,
		log:   logger.WithFields(deps.Logger),
		intel: utils.NewPacer(cfg.IntelDelay),
	}
}

// CategorySuffix returns the search suffix of the progressive and batch feeds.
func CategorySuffix(category listing.Category) string {
	if category == listing.CategoryInternships {
		return "internship hiring"
	}
	return "hiring apply"
}

// SearchSuffix returns the search suffix of a free-text search.
func SearchSuffix(category listing.Category) string {
	switch category {
	case listing.CategoryInternships:
		return "internship hiring"
	case listing.CategoryATS:
		return "resume tips"
	default:
		return "hiring"
	}
}

// SearchTerms derives search queries from a profile.
func SearchTerms(profile listing.UserProfile) []string {
	terms := []string{}
	if profile.Major != "" {
		terms = append(terms, profile.Major+" fresher")
	}
	if profile.City != "" {
		terms = append(terms, "jobs in "+profile.City+" for freshers")
	}
	if len(terms) == 0 {
		terms = append(terms, "hiring for freshers")
	}
	return terms
}

func dedupContext(profile listing.UserProfile) string {
	if profile.Major != "" {
		return profile.Major
	}
	return "fresher"
}

// Search runs a free-text search: pinned and targeted sources for internships, then the generic search.
func (d *Discoverer) Search(ctx context.Context, query string, category listing.Category) []listing.Listing {
	all := []listing.Listing{}
	if category == listing.CategoryInternships {
		all = append(all, d.pinned(ctx)...)
		all = append(all, d.targeted(ctx, WindowWeek)...)
	}
	all = append(all, d.deps.News.Query(ctx, query, SearchSuffix(category), WindowFortnight)...)

	return d.deps.Engine.Deduplicate(all, query, category)
}

// PersonalizedFeed builds the feed stage by stage and reports a snapshot after each one.
// Searches run sequentially with the configured delay between them.
func (d *Discoverer) PersonalizedFeed(ctx context.Context, profile listing.UserProfile, category listing.Category, onUpdate UpdateFunc) []listing.Listing {
	query := dedupContext(profile)
	current := []listing.Listing{}

	stage := func(name string, batch []listing.Listing) {
		d.log.Info("feed stage",
			zap.String("name", name),
			zap.String(logger.FieldCategory, string(category)),
			zap.Int("found", len(batch)),
		)
		if len(batch) == 0 {
			return
		}
		current = d.deps.Engine.Deduplicate(append(current, batch...), query, category)
		if onUpdate != nil {
			onUpdate(name, append([]listing.Listing(nil), current...))
		}
	}

	if category == listing.CategoryInternships {
		stage("pinned", d.pinned(ctx))
		stage("targeted", d.targeted(ctx, WindowFortnight))
	}
	if category == listing.CategoryInternships || category == listing.CategoryJobs {
		stage("community", d.deps.Community.Fetch(ctx, category))
	}

	pacer := utils.NewPacer(d.cfg.Delay)
	suffix := CategorySuffix(category)
	for _, term := range SearchTerms(profile) {
		if err := pacer.Wait(ctx); err != nil {
			d.log.Warn("feed interrupted", zap.Error(err))
			return current
		}
		stage("search: "+term, d.deps.News.Query(ctx, term, suffix, WindowFortnight))
	}

	return current
}

// SearchWithProfile runs every profile search term sequentially and deduplicates once at the end.
func (d *Discoverer) SearchWithProfile(ctx context.Context, profile listing.UserProfile, category listing.Category) []listing.Listing {
	pacer := utils.NewPacer(d.cfg.BatchDelay)
	suffix := CategorySuffix(category)

	all := []listing.Listing{}
	for _, term := range SearchTerms(profile) {
		if err := pacer.Wait(ctx); err != nil {
			d.log.Warn("search interrupted", zap.Error(err))
			break
		}
		all = append(all, d.deps.News.Query(ctx, term, suffix, WindowFortnight)...)
	}

	return d.deps.Engine.Deduplicate(all, dedupContext(profile), category)
}

// pinned loads admin listings, dropping any without an absolute http(s) link.
func (d *Discoverer) pinned(ctx context.Context) []listing.Listing {
	if d.deps.Pinned == nil {
		return nil
	}
	items, err := d.deps.Pinned.Load(ctx)
	if err != nil {
		d.log.Warn("pinned listings unavailable", zap.Error(err))
		return nil
	}
	out := make([]listing.Listing, 0, len(items))
	for _, item := range items {
		if !listing.ValidLink(item.Link) {
			d.log.Warn("pinned listing dropped", zap.String("id", item.ID), zap.String(logger.FieldURL, item.Link))
			continue
		}
		item.Pinned = true
		out = append(out, item)
	}
	return out
}

// targeted searches a random batch of large employers concurrently. A failed search
// contributes nothing and does not cancel its siblings.
func (d *Discoverer) targeted(ctx context.Context, window string) []listing.Listing {
	targets := PickTargets(d.deps.Companies, []Tier{TierMNC, TierUnicorn}, d.cfg.TargetedBatch, d.deps.Rand)
	results := make([][]listing.Listing, len(targets))

	var g errgroup.Group
	g.SetLimit(d.cfg.TargetedBatch)
	for i, c := range targets {
		g.Go(func() error {
			results[i] = d.deps.News.Query(ctx, c.Name, "internship India", window)
			return nil
		})
	}
	_ = g.Wait()

	out := []listing.Listing{}
	for _, r := range results {
		out = append(out, r...)
	}
	return out
}
