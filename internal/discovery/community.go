package discovery

import (
	"context"
	"slices"
	"time"

	"go.uber.org/zap"

	"github.com/spigell/career-auditor/internal/fetch"
	"github.com/spigell/career-auditor/internal/listing"
	"github.com/spigell/career-auditor/internal/logger"
	"github.com/spigell/career-auditor/internal/normalizer"
)

// CommunityFeed is one community-maintained markdown list.
type CommunityFeed struct {
	URL      string             `yaml:"url"`
	Region   normalizer.Region  `yaml:"region"`
	Category []listing.Category `yaml:"category"`
}

// DefaultCommunityFeeds returns the lists checked for each category.
func DefaultCommunityFeeds() []CommunityFeed {
	return []CommunityFeed{
		{
			URL:      "https://raw.githubusercontent.com/summer2026internships/Summer2026-Internships/main/README.md",
			Region:   normalizer.RegionGlobal,
			Category: []listing.Category{listing.CategoryInternships},
		},
		{
			URL:      "https://raw.githubusercontent.com/vanshb03/New-Grad-2026/main/README.md",
			Region:   normalizer.RegionGlobal,
			Category: []listing.Category{listing.CategoryJobs},
		},
		{
			URL:      "https://raw.githubusercontent.com/Ohi-AIA/2026-Batch-Opportunities/main/README.md",
			Region:   normalizer.RegionIndia,
			Category: []listing.Category{listing.CategoryInternships, listing.CategoryJobs},
		},
	}
}

// CommunityList fetches the verified community lists of a category.
type CommunityList struct {
	fetcher fetch.Fetcher
	feeds   []CommunityFeed
	logger  *zap.Logger
	now     func() time.Time
}

func NewCommunityList(f fetch.Fetcher, feeds []CommunityFeed, log *zap.Logger) *CommunityList {
	return &CommunityList{fetcher: f, feeds: feeds, logger: logger.WithFields(log), now: time.Now}
}

// Fetch returns the listings of every list serving category. Failed lists are skipped.
func (c *CommunityList) Fetch(ctx context.Context, category listing.Category) []listing.Listing {
	out := []listing.Listing{}
	for _, f := range c.feeds {
		if !slices.Contains(f.Category, category) {
			continue
		}

		log := c.logger.With(zap.String(logger.FieldURL, f.URL), zap.String(logger.FieldCategory, string(category)))
		raw, err := c.fetcher.Fetch(ctx, f.URL)
		if err != nil {
			log.Warn("community list failed", zap.Error(err))
			continue
		}

		items := normalizer.ParseMarkdownTable(raw, f.Region, c.now())
		log.Debug("community list parsed", zap.Int("items", len(items)))
		out = append(out, items...)
	}
	return out
}
