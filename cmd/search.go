package cmd

import (
	"os"
	"strings"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/spigell/career-auditor/internal/listing"
)

var searchCmd = &cobra.Command{
	Use:   "search <query>",
	Short: "Search public feeds for a free-text query",
	Args:  cobra.MinimumNArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		runSearch(cmd, strings.Join(args, " "))
	},
}

func init() {
	rootCmd.AddCommand(searchCmd)

	searchCmd.Flags().BoolP("non-interactive", "n", false, "print the results and exit without prompting")
	searchCmd.Flags().Bool("dump", false, "dump the results to a temporary JSON file")
	searchCmd.Flags().Bool("intel", false, "run the company deep dive when auditing a picked listing")
}

func runSearch(cmd *cobra.Command, query string) {
	ctx, cancel := signalContext()
	defer cancel()

	logger := newLogger()

	a, err := newApplication(ctx, logger)
	if err != nil {
		logger.Fatal("starting", zap.Error(err))
	}
	defer a.Close()

	category := a.category()
	logger.Info("searching", zap.String("query", query), zap.String("category", string(category)))

	listings := &listing.Listings{Items: a.discoverer.Search(ctx, query, category)}
	if listings.Len() == 0 {
		logger.Info("exiting", zap.String("reason", "no listings found"))
		return
	}

	printListings(os.Stdout, listings.Items)

	if flagBool(cmd, "dump") {
		if err := handleAction(ctx, PromptDump, a, listings, false); err != nil {
			logger.Fatal("exiting", zap.Error(err))
		}
	}

	if flagBool(cmd, "non-interactive") {
		return
	}

	interact(ctx, a, listings, flagBool(cmd, "intel"))
}
