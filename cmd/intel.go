package cmd

import (
	"os"
	"strings"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var intelCmd = &cobra.Command{
	Use:   "intel <company>",
	Short: "Collect reputation signals and open roles for a company",
	Args:  cobra.MinimumNArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		runIntel(cmd, strings.Join(args, " "))
	},
}

func init() {
	rootCmd.AddCommand(intelCmd)

	intelCmd.Flags().String("description", "", "posting text used to find a team or program name")
	intelCmd.Flags().Bool("related", true, "also list recent hiring news for the company")
}

func runIntel(cmd *cobra.Command, company string) {
	ctx, cancel := signalContext()
	defer cancel()

	logger := newLogger()

	a, err := newApplication(ctx, logger)
	if err != nil {
		logger.Fatal("starting", zap.Error(err))
	}
	defer a.Close()

	description, _ := cmd.Flags().GetString("description")

	intel := a.discoverer.CompanyIntel(ctx, company, description)
	printIntel(os.Stdout, intel)

	if !flagBool(cmd, "related") {
		return
	}

	related := a.discoverer.RelatedJobs(ctx, company)
	logger.Info("related jobs", zap.String("company", company), zap.Int("count", len(related)))
	if len(related) > 0 {
		printListings(os.Stdout, related)
	}
}
