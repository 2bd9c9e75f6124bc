package cmd

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"text/tabwriter"

	"github.com/spigell/career-auditor/internal/audit"
	"github.com/spigell/career-auditor/internal/discovery"
	"github.com/spigell/career-auditor/internal/listing"
	"github.com/spigell/career-auditor/internal/logger"
)

const titleWidth = 70

func signalContext() (context.Context, context.CancelFunc) {
	return signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
}

func printListings(w io.Writer, items []listing.Listing) {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "#\tPUBLISHED\tSOURCE\tTITLE")
	for i, l := range items {
		published := "-"
		if !l.PublishedAt.IsZero() {
			published = l.PublishedAt.Format("2006-01-02")
		}
		source := l.Source
		if l.Pinned {
			source = "Featured"
		}
		fmt.Fprintf(tw, "%d\t%s\t%s\t%s\n", i+1, published, source, logger.TruncateForLog(l.Title, titleWidth))
	}
	tw.Flush()
}

func printReport(w io.Writer, r audit.Report) {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintf(tw, "Posting\t%s\n", r.Title)
	fmt.Fprintf(tw, "URL\t%s\n", r.URL)
	fmt.Fprintf(tw, "Company\t%s\n", r.Company)
	fmt.Fprintf(tw, "Role\t%s\n", r.Role)
	if r.Partial {
		fmt.Fprintf(tw, "Audit\tpartial (page unavailable, snippet only)\n")
	}
	fmt.Fprintf(tw, "Vibe\t%d (%s)\n", r.Vibe.Score, strings.Join(r.Vibe.Tokens, " "))
	fmt.Fprintf(tw, "Location\t%s\n", r.Location)
	fmt.Fprintf(tw, "Stream\t%s\n", r.Stream)
	if r.Match != nil {
		fmt.Fprintf(tw, "Match\t%d%%\n", r.Match.Percentage)
		for _, flag := range r.Match.Flags {
			fmt.Fprintf(tw, "\t- %s\n", flag)
		}
	}
	status := string(r.Status)
	if r.Deadline != nil {
		status += " (deadline " + r.Deadline.Format("2006-01-02") + ")"
	}
	fmt.Fprintf(tw, "Status\t%s\n", status)
	if r.Intel != nil {
		fmt.Fprintf(tw, "Reputation\t%s (%+d)\n", r.Intel.Reputation.Status, r.Intel.Reputation.Adjustment)
	}
	fmt.Fprintf(tw, "Score\t%d\n", r.Score)
	tw.Flush()
}

func printIntel(w io.Writer, intel discovery.Intel) {
	fmt.Fprintf(w, "Intel on %s\n", intel.Company)
	if intel.Context != "" {
		fmt.Fprintf(w, "Context: %s\n", intel.Context)
	}
	for _, step := range intel.Steps {
		fmt.Fprintf(w, "  %s: %d results\n", step.Label, step.Found)
	}
	fmt.Fprintf(w, "Reputation: %s (%+d)\n", intel.Reputation.Status, intel.Reputation.Adjustment)
	for _, s := range intel.Reputation.Signals {
		fmt.Fprintf(w, "  %s\n", s)
	}
	if len(intel.Items) == 0 {
		fmt.Fprintln(w, "No specific intel found via public feeds.")
		return
	}
	printListings(w, intel.Items)
}
