package discovery

import (
	"context"
	"fmt"
	"regexp"
	"slices"
	"strings"

	"go.uber.org/zap"

	"github.com/spigell/career-auditor/internal/listing"
	"github.com/spigell/career-auditor/internal/logger"
	"github.com/spigell/career-auditor/internal/scoring"
)

const (
	maxIntelItems   = 10
	maxRelatedItems = 5
)

var programPattern = regexp.MustCompile(`\b([A-Z][a-z]+(?:\s+[A-Z][a-z]+)*\s+(?:Program|Intern|Team|Unit|Division))\b`)

// IntelStep is one staged company search.
type IntelStep struct {
	Label string `json:"label"`
	Query string `json:"query"`
	Found int    `json:"found"`
}

// Intel is the outcome of a company deep dive.
type Intel struct {
	Company    string                   `json:"company"`
	Context    string                   `json:"context,omitempty"`
	Steps      []IntelStep              `json:"steps"`
	Items      []listing.Listing        `json:"items"`
	Reputation scoring.ReputationResult `json:"reputation"`
}

// ContextKeyword returns the longest program or team name mentioned in a description.
func ContextKeyword(description string) string {
	best := ""
	for _, m := range programPattern.FindAllString(description, -1) {
		if len(m) > len(best) {
			best = m
		}
	}
	return best
}

// IntelSteps returns the staged searches for a company.
func IntelSteps(company, description string) []IntelStep {
	quoted := fmt.Sprintf("%q", company)

	second := IntelStep{Label: "Analyzing salary data", Query: quoted + " software engineer salary"}
	if kw := ContextKeyword(description); len(kw) > 5 && !strings.Contains(kw, company) {
		second = IntelStep{
			Label: fmt.Sprintf("Checking %q specifics", kw),
			Query: fmt.Sprintf("%s %q reviews", quoted, kw),
		}
	}

	return []IntelStep{
		{Label: "Scanning employee reviews", Query: quoted + " employee reviews"},
		second,
		{Label: "Checking work culture", Query: quoted + " work culture reddit"},
		{Label: "Finding interview experiences", Query: quoted + " interview experience"},
	}
}

// CompanyIntel runs the staged company searches and scores the company's reputation over all results.
func (d *Discoverer) CompanyIntel(ctx context.Context, company, description string) Intel {
	log := logger.WithCompany(d.log, company)
	intel := Intel{Company: company, Context: ContextKeyword(description), Items: []listing.Listing{}}

	all := []listing.Listing{}
	seen := map[string]struct{}{}

	for _, step := range IntelSteps(company, description) {
		if err := d.intel.Wait(ctx); err != nil {
			log.Warn("intel interrupted", zap.Error(err))
			break
		}

		results := d.deps.News.Query(ctx, step.Query, "", WindowFortnight)
		step.Found = len(results)
		intel.Steps = append(intel.Steps, step)
		all = append(all, results...)

		for _, item := range results {
			if len(intel.Items) >= maxIntelItems {
				break
			}
			if _, ok := seen[item.ID]; ok {
				continue
			}
			seen[item.ID] = struct{}{}
			intel.Items = append(intel.Items, item)
		}
		log.Debug("intel step", zap.String("label", step.Label), zap.Int("found", step.Found))
	}

	intel.Reputation = d.deps.Scorer.Reputation(all)
	log.Info("intel done",
		zap.String("status", string(intel.Reputation.Status)),
		zap.Int("adjustment", intel.Reputation.Adjustment),
	)
	return intel
}

// RelatedJobs returns up to five open listings whose title names the company.
// It shares the intel pacing, so it never runs right after a CompanyIntel step.
func (d *Discoverer) RelatedJobs(ctx context.Context, company string) []listing.Listing {
	query := fmt.Sprintf("%q careers hiring recruitment vacancy", company)
	needle := strings.ToLower(company)

	if err := d.intel.Wait(ctx); err != nil {
		d.log.Warn("related jobs interrupted", zap.String(logger.FieldCompany, company), zap.Error(err))
		return []listing.Listing{}
	}

	results := d.deps.News.Query(ctx, query, "apply", WindowFortnight)
	out := slices.DeleteFunc(results, func(l listing.Listing) bool {
		return !strings.Contains(strings.ToLower(l.Title), needle)
	})
	if len(out) > maxRelatedItems {
		out = out[:maxRelatedItems]
	}
	return out
}
