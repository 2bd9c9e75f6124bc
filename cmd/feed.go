package cmd

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/manifoldco/promptui"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/spigell/career-auditor/internal/audit"
	"github.com/spigell/career-auditor/internal/listing"
)

const (
	PromptAudit          = "Audit a listing"
	PromptReportBySource = "Report by source"
	PromptDump           = "Dump listings to file"
	PromptDismissAll     = "Dismiss all shown listings"
	PromptExit           = "Exit"
	PromptBack           = "back"
)

var errExit = errors.New("exit requested")

var feedCmd = &cobra.Command{
	Use:   "feed",
	Short: "Build the personalised feed for the configured profile",
	Run: func(cmd *cobra.Command, _ []string) {
		runFeed(cmd)
	},
}

func init() {
	rootCmd.AddCommand(feedCmd)

	feedCmd.Flags().BoolP("batch", "b", false, "run all profile searches and print the feed once, without progressive updates")
	feedCmd.Flags().BoolP("non-interactive", "n", false, "print the feed and exit without prompting")
	feedCmd.Flags().Bool("dump", false, "dump the final feed to a temporary JSON file")
	feedCmd.Flags().Bool("intel", false, "run the company deep dive when auditing a picked listing")
}

func runFeed(cmd *cobra.Command) {
	ctx, cancel := signalContext()
	defer cancel()

	logger := newLogger()

	a, err := newApplication(ctx, logger)
	if err != nil {
		logger.Fatal("starting", zap.Error(err))
	}
	defer a.Close()

	category := a.category()
	logger.Info("starting the feed", zap.String("version", version), zap.String("category", string(category)))

	var items []listing.Listing
	if flagBool(cmd, "batch") {
		items = a.discoverer.SearchWithProfile(ctx, a.profileOrEmpty(), category)
	} else {
		items = a.discoverer.PersonalizedFeed(ctx, a.profileOrEmpty(), category, func(stage string, snapshot []listing.Listing) {
			logger.Info("feed updated", zap.String("stage", stage), zap.Int("count", len(snapshot)))
		})
	}

	listings := &listing.Listings{Items: items}
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

// interact runs the action prompt until the user exits.
func interact(ctx context.Context, a *application, listings *listing.Listings, withIntel bool) {
	actions := []string{PromptAudit, PromptReportBySource, PromptDump}
	if a.config.Feed.DismissedFile != "" {
		actions = append(actions, PromptDismissAll)
	}
	actions = append(actions, PromptExit)

	prompt := promptui.Select{
		Label: "Proceed?",
		Items: actions,
	}

	for {
		_, action, err := prompt.Run()
		if err != nil {
			a.logger.Fatal("exiting", zap.Error(err))
		}

		a.logger.Info("current list of listings", zap.Int("count", listings.Len()))

		if err := handleAction(ctx, action, a, listings, withIntel); err != nil {
			if errors.Is(err, errExit) {
				return
			}
			a.logger.Fatal("exiting", zap.Error(err))
		}
	}
}

func handleAction(ctx context.Context, action string, a *application, listings *listing.Listings, withIntel bool) error {
	switch action {
	case PromptAudit:
		return pickAndAudit(ctx, a, listings, withIntel)
	case PromptReportBySource:
		pretty, _ := json.MarshalIndent(listings.ReportBySource(), "", "  ")
		fmt.Fprintln(os.Stdout, string(pretty))
		return nil
	case PromptDump:
		filename, err := listings.DumpToTmpFile()
		if err != nil {
			return fmt.Errorf("dump results to file: %w", err)
		}
		a.logger.Info("dumping result to file", zap.String("filename", filename))
		return nil
	case PromptDismissAll:
		return dismissAll(a, listings)
	case PromptExit:
		a.logger.Info("exiting", zap.String("reason", "got exit from prompt"))
		return errExit
	default:
		return fmt.Errorf("invalid action: %s", action)
	}
}

func pickAndAudit(ctx context.Context, a *application, listings *listing.Listings, withIntel bool) error {
	auditor := a.auditor(withIntel)

	for {
		items := make([]string, 0, listings.Len()+1)
		for _, l := range listings.Items {
			items = append(items, fmt.Sprintf("%s %s / %s", l.ID, l.Title, l.Source))
		}

		listingPrompt := promptui.Select{
			Label: "Choose a listing and press ENTER",
			Items: append(items, PromptBack),
			Size:  15,
		}

		_, selected, err := listingPrompt.Run()
		if err != nil {
			return err
		}
		if selected == PromptBack {
			return nil
		}

		id := strings.Split(selected, " ")[0]
		picked := listings.FindByID(id)
		if picked == nil {
			return fmt.Errorf("there is no such listing id %s", id)
		}

		report := auditor.Audit(ctx, audit.FromListing(*picked), a.profile)
		printReport(os.Stdout, report)
	}
}

func dismissAll(a *application, listings *listing.Listings) error {
	path := a.config.Feed.DismissedFile

	dismissed, err := listing.LoadDismissed(path)
	if err != nil {
		return fmt.Errorf("getting dismissed listings from file: %w", err)
	}
	dismissed.Append(listings.ToDismissed())

	if err := dismissed.ToFile(path); err != nil {
		return err
	}

	a.logger.Info("appended to dismissed file", zap.String("filename", path), zap.Int("count", listings.Len()))
	listings.Items = nil
	return errExit
}

func flagBool(cmd *cobra.Command, name string) bool {
	flag := cmd.Flag(name)
	return flag != nil && strings.EqualFold(flag.Value.String(), "true")
}
