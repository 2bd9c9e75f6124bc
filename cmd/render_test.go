package cmd

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"go.uber.org/zap"

	"github.com/spigell/career-auditor/internal/audit"
	"github.com/spigell/career-auditor/internal/discovery"
	"github.com/spigell/career-auditor/internal/extract"
	"github.com/spigell/career-auditor/internal/listing"
	"github.com/spigell/career-auditor/internal/scoring"
)

func TestPrintListings(t *testing.T) {
	var buf bytes.Buffer
	printListings(&buf, []listing.Listing{
		{ID: "1", Title: "Backend Intern", Source: "Economic Times", PublishedAt: time.Date(2026, 3, 5, 0, 0, 0, 0, time.UTC)},
		{ID: "2", Title: "Data Intern", Source: "Admin", Pinned: true},
	})

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	if len(lines) != 3 {
		t.Fatalf("expected header and 2 rows, got %d: %q", len(lines), buf.String())
	}
	if !strings.Contains(lines[1], "2026-03-05") || !strings.Contains(lines[1], "Economic Times") {
		t.Fatalf("unexpected first row %q", lines[1])
	}
	if !strings.Contains(lines[2], "Featured") || !strings.Contains(lines[2], " - ") {
		t.Fatalf("unexpected second row %q", lines[2])
	}
}

func TestPrintReport(t *testing.T) {
	deadline := time.Date(2026, 3, 5, 0, 0, 0, 0, time.UTC)
	report := audit.Report{
		Title:    "Razorpay hiring interns",
		Partial:  true,
		Vibe:     scoring.VibeResult{Score: 60, Tokens: []string{"+mentorship"}},
		Match:    &scoring.MatchResult{Percentage: 80, Flags: []string{"CGPA Gap: Requires 8.5"}},
		Deadline: &deadline,
		Status:   extract.StatusOpen,
		Intel:    &discovery.Intel{Reputation: scoring.ReputationResult{Status: scoring.ReputationPositive, Adjustment: 30}},
		Score:    100,
	}

	var buf bytes.Buffer
	printReport(&buf, report)
	out := buf.String()

	for _, want := range []string{"partial", "+mentorship", "80%", "CGPA Gap", "OPEN (deadline 2026-03-05)", "+30", "Score"} {
		if !strings.Contains(out, want) {
			t.Errorf("report misses %q:\n%s", want, out)
		}
	}
}

func TestPrintIntelWithoutItems(t *testing.T) {
	var buf bytes.Buffer
	printIntel(&buf, discovery.Intel{Company: "Acme"})

	if !strings.Contains(buf.String(), "No specific intel found") {
		t.Fatalf("unexpected output %q", buf.String())
	}
}

func TestHandleAction(t *testing.T) {
	a := &application{config: &Config{}, logger: zap.NewNop()}
	listings := &listing.Listings{}

	if err := handleAction(context.Background(), PromptExit, a, listings, false); !errors.Is(err, errExit) {
		t.Fatalf("expected errExit, got %v", err)
	}
	if err := handleAction(context.Background(), "unknown", a, listings, false); err == nil {
		t.Fatal("expected an error for an unknown action")
	}
}
