package cmd

import (
	"context"
	"encoding/json"
	"fmt"

	"go.uber.org/zap"

	"github.com/spigell/career-auditor/internal/audit"
	"github.com/spigell/career-auditor/internal/discovery"
	"github.com/spigell/career-auditor/internal/extract"
	"github.com/spigell/career-auditor/internal/feed"
	"github.com/spigell/career-auditor/internal/fetch"
	"github.com/spigell/career-auditor/internal/listing"
	"github.com/spigell/career-auditor/internal/pinned"
	"github.com/spigell/career-auditor/internal/scoring"
	"github.com/spigell/career-auditor/internal/tables"
)

// application wires every component a command needs from the loaded config.
type application struct {
	config     *Config
	logger     *zap.Logger
	profile    *listing.UserProfile
	fetcher    fetch.Fetcher
	pinned     *pinned.FileStore
	dismissed  *listing.Dismissed
	discoverer *discovery.Discoverer
	tables     tables.Tables
	scorer     *scoring.Scorer

	closers []func() error
}

func newApplication(ctx context.Context, logger *zap.Logger) (*application, error) {
	config, err := getConfig()
	if err != nil {
		return nil, fmt.Errorf("getting a config: %w", err)
	}
	if config == nil {
		return nil, fmt.Errorf("config is required")
	}

	// do not bother error since there is a valid parseable config
	pretty, _ := json.MarshalIndent(config, "", "  ")
	logger.Debug(fmt.Sprintf("starting with config: \n %s", pretty))

	a := &application{config: config, logger: logger}

	if config.Profile != nil {
		if err := config.Profile.LoadResume(); err != nil {
			return nil, err
		}
	}
	if !config.Profile.Empty() {
		a.profile = config.Profile
	} else {
		logger.Info("no profile configured, match scores are skipped")
	}

	t, err := tables.Load(config.TablesFile)
	if err != nil {
		return nil, err
	}

	scorer, err := scoring.New(t.Lexicon)
	if err != nil {
		return nil, fmt.Errorf("compiling lexicon: %w", err)
	}

	cascade, err := fetch.NewCascade(config.Fetch, logger.With(zap.String("component", "fetch")))
	if err != nil {
		return nil, fmt.Errorf("building fetch cascade: %w", err)
	}
	a.fetcher = cascade

	if config.Cache.RedisURL != "" {
		client, err := fetch.Dial(ctx, config.Cache.RedisURL)
		if err != nil {
			logger.Warn("cache disabled", zap.Error(err))
		} else {
			cached := fetch.NewCached(cascade, client, config.Cache.TTL, logger.With(zap.String("component", "cache")))
			a.fetcher = cached
			a.closers = append(a.closers, cached.Close)
		}
	}

	a.dismissed = &listing.Dismissed{}
	if config.Feed.DismissedFile != "" {
		if a.dismissed, err = listing.LoadDismissed(config.Feed.DismissedFile); err != nil {
			return nil, fmt.Errorf("getting dismissed listings from file: %w", err)
		}
	}

	engine := feed.New(t.Rules, logger.With(zap.String("component", "feed")),
		feed.WithFilters(
			feed.NewDismissed(a.dismissed.IDs()),
			feed.NewExcludedCompanies(config.Feed.ExcludeCompanies),
		),
	)

	a.pinned = pinned.NewFileStore(config.Pinned.File)

	a.discoverer = discovery.New(config.Discovery, discovery.Deps{
		News:      discovery.NewNewsSearch(a.fetcher, logger.With(zap.String("component", "news"))),
		Community: discovery.NewCommunityList(a.fetcher, t.Community, logger.With(zap.String("component", "community"))),
		Pinned:    a.pinned,
		Engine:    engine,
		Scorer:    scorer,
		Companies: t.Companies,
		Logger:    logger.With(zap.String("component", "discovery")),
	})

	a.tables, a.scorer = t, scorer

	return a, nil
}

// auditor builds a posting auditor. With intel, every audit also runs the company deep dive.
func (a *application) auditor(withIntel bool) *audit.Auditor {
	opts := []audit.Option{
		audit.WithExtractor(extract.New(a.tables.Gazetteer)),
		audit.WithScorer(a.scorer),
	}
	if withIntel {
		opts = append(opts, audit.WithIntel(a.discoverer))
	}
	return audit.New(a.fetcher, a.logger.With(zap.String("component", "audit")), opts...)
}

func (a *application) category() listing.Category {
	return listing.ParseCategory(a.config.Feed.Category)
}

// profileOrEmpty returns the configured profile or an empty one for search term derivation.
func (a *application) profileOrEmpty() listing.UserProfile {
	if a.profile == nil {
		return listing.UserProfile{}
	}
	return *a.profile
}

func (a *application) Close() {
	for _, c := range a.closers {
		if err := c(); err != nil {
			a.logger.Warn("closing", zap.Error(err))
		}
	}
}
