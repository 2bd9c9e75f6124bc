package cmd

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"

	"github.com/spigell/career-auditor/internal/audit"
)

var auditCmd = &cobra.Command{
	Use:   "audit <url>",
	Short: "Audit a single posting against the configured profile",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		runAudit(cmd, args[0])
	},
}

func init() {
	rootCmd.AddCommand(auditCmd)

	auditCmd.Flags().String("title", "", "posting title, used to guess the company and as a fallback")
	auditCmd.Flags().String("source", "", "publisher of the posting")
	auditCmd.Flags().String("snippet", "", "text to audit when the page cannot be fetched")
	auditCmd.Flags().String("company", "", "company name, overrides the guess from the title")
	auditCmd.Flags().Bool("intel", false, "also run the company deep dive")
}

func runAudit(cmd *cobra.Command, url string) {
	ctx, cancel := signalContext()
	defer cancel()

	logger := newLogger()

	a, err := newApplication(ctx, logger)
	if err != nil {
		logger.Fatal("starting", zap.Error(err))
	}
	defer a.Close()

	req := audit.Request{URL: url}
	req.Title, _ = cmd.Flags().GetString("title")
	req.Source, _ = cmd.Flags().GetString("source")
	req.Snippet, _ = cmd.Flags().GetString("snippet")
	req.Company, _ = cmd.Flags().GetString("company")

	report := a.auditor(flagBool(cmd, "intel")).Audit(ctx, req, a.profile)

	if viper.GetBool("json") {
		pretty, err := json.MarshalIndent(report, "", "  ")
		if err != nil {
			logger.Fatal("encoding report", zap.Error(err))
		}
		fmt.Fprintln(os.Stdout, string(pretty))
		return
	}

	printReport(os.Stdout, report)
}
