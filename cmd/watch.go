package cmd

import (
	"context"

	"github.com/robfig/cron/v3"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/spigell/career-auditor/internal/listing"
)

var watchCmd = &cobra.Command{
	Use:   "watch",
	Short: "Refresh the feed on a schedule and log what changed",
	Run: func(_ *cobra.Command, _ []string) {
		runWatch()
	},
}

func init() {
	rootCmd.AddCommand(watchCmd)
}

func runWatch() {
	ctx, cancel := signalContext()
	defer cancel()

	logger := newLogger()

	a, err := newApplication(ctx, logger)
	if err != nil {
		logger.Fatal("starting", zap.Error(err))
	}
	defer a.Close()

	w := &watcher{app: a, seen: map[string]struct{}{}}

	c := newScheduler(logger)
	if _, err := c.AddFunc(a.config.Watch.Schedule, func() { w.refresh(ctx) }); err != nil {
		logger.Fatal("parsing watch schedule", zap.String("schedule", a.config.Watch.Schedule), zap.Error(err))
	}

	logger.Info("watching", zap.String("schedule", a.config.Watch.Schedule), zap.String("category", string(a.category())))
	w.refresh(ctx)

	c.Start()
	<-ctx.Done()
	<-c.Stop().Done()

	logger.Info("exiting", zap.String("reason", "got a signal"))
}

// newScheduler builds a cron scheduler that skips a run while the previous one is still going.
func newScheduler(logger *zap.Logger) *cron.Cron {
	cronLogger := cron.PrintfLogger(zap.NewStdLog(logger.With(zap.String("component", "cron"))))
	return cron.New(
		cron.WithLogger(cronLogger),
		cron.WithChain(cron.Recover(cronLogger), cron.SkipIfStillRunning(cronLogger)),
	)
}

// watcher remembers listing ids between refreshes to report only new ones.
type watcher struct {
	app  *application
	seen map[string]struct{}
}

func (w *watcher) refresh(ctx context.Context) {
	a := w.app

	var items []listing.Listing
	if q := a.config.Watch.Query; q != "" {
		items = a.discoverer.Search(ctx, q, a.category())
	} else {
		items = a.discoverer.SearchWithProfile(ctx, a.profileOrEmpty(), a.category())
	}

	fresh := 0
	for _, l := range items {
		if _, ok := w.seen[l.ID]; ok {
			continue
		}
		w.seen[l.ID] = struct{}{}
		fresh++
		a.logger.Info("new listing", zap.String("title", l.Title), zap.String("link", l.Link), zap.String("source", l.Source))
	}

	a.logger.Info("feed refreshed", zap.Int("count", len(items)), zap.Int("new", fresh))
}
