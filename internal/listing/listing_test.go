package listing

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestParseCategory(t *testing.T) {
	t.Parallel()

	tests := []struct {
		input  string
		expect Category
	}{
		{input: "internships", expect: CategoryInternships},
		{input: " Intern ", expect: CategoryInternships},
		{input: "ATS", expect: CategoryATS},
		{input: "jobs", expect: CategoryJobs},
		{input: "whatever", expect: CategoryJobs},
		{input: "", expect: CategoryJobs},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			t.Parallel()
			if got := ParseCategory(tt.input); got != tt.expect {
				t.Fatalf("expected %q, got %q", tt.expect, got)
			}
		})
	}
}

func TestReportBySource(t *testing.T) {
	published := time.Date(2026, 10, 1, 9, 0, 0, 0, time.UTC)
	listings := &Listings{Items: []Listing{
		{ID: "1", Title: "Acme - Backend Intern", Link: "https://acme.example/jobs/1", Source: "Featured", Company: "Acme", PublishedAt: published},
		{ID: "2", Title: "Globex hiring freshers", Link: "https://news.example/2", Source: "Mint"},
		{ID: "3", Title: "Initech - SDE Intern", Link: "https://initech.example/apply", Source: "Featured"},
	}}

	report := listings.ReportBySource()

	featured := report["Featured"]
	if len(featured) != 2 {
		t.Fatalf("expected 2 featured entries, got %d", len(featured))
	}
	if featured[0]["company"] != "Acme" {
		t.Fatalf("unexpected company: %q", featured[0]["company"])
	}
	if featured[0]["published"] != "2026-10-01" {
		t.Fatalf("unexpected published date: %q", featured[0]["published"])
	}
	if _, ok := featured[1]["published"]; ok {
		t.Fatalf("did not expect published date for undated listing")
	}
	if len(report["Mint"]) != 1 {
		t.Fatalf("expected 1 Mint entry, got %d", len(report["Mint"]))
	}
}

func TestFindByID(t *testing.T) {
	listings := &Listings{Items: []Listing{{ID: "a"}, {ID: "b"}}}

	found := listings.FindByID("b")
	if found == nil || found.ID != "b" {
		t.Fatalf("expected to find listing b, got %+v", found)
	}
	if listings.FindByID("missing") != nil {
		t.Fatalf("expected nil for unknown id")
	}
}

func TestDumpToTmpFile(t *testing.T) {
	listings := &Listings{Items: []Listing{{ID: "a", Title: "Acme - Intern", Link: "https://acme.example"}}}

	name, err := listings.DumpToTmpFile()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	t.Cleanup(func() { os.Remove(name) })

	data, err := os.ReadFile(name)
	if err != nil {
		t.Fatalf("reading dump: %v", err)
	}

	var decoded []Listing
	if err := json.Unmarshal(data, &decoded); err != nil {
		t.Fatalf("decoding dump: %v", err)
	}
	if len(decoded) != 1 || decoded[0].Link != "https://acme.example" {
		t.Fatalf("unexpected dump content: %+v", decoded)
	}
}

func TestLoadResume(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "resume.txt")
	if err := os.WriteFile(path, []byte("golang kubernetes postgres"), 0o644); err != nil {
		t.Fatalf("writing resume: %v", err)
	}

	profile := &UserProfile{ResumeFileName: path}
	if err := profile.LoadResume(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !profile.HasResume() {
		t.Fatalf("expected resume to be loaded")
	}
	if profile.ResumeFileName != "resume.txt" {
		t.Fatalf("expected base file name, got %q", profile.ResumeFileName)
	}

	empty := &UserProfile{}
	if err := empty.LoadResume(); err != nil {
		t.Fatalf("unexpected error for unset resume: %v", err)
	}
	if empty.HasResume() {
		t.Fatalf("did not expect resume text")
	}

	missing := &UserProfile{ResumeFileName: filepath.Join(dir, "nope.txt")}
	if err := missing.LoadResume(); err == nil {
		t.Fatalf("expected error for missing resume file")
	}
}

func TestDismissedFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "dismissed.json")

	dismissed, err := LoadDismissed(path)
	if err != nil {
		t.Fatalf("unexpected error for missing file: %v", err)
	}
	if len(dismissed.IDs()) != 0 {
		t.Fatalf("expected empty set")
	}

	shown := &Listings{Items: []Listing{{ID: "a", Company: "Acme"}, {ID: "b", Link: "https://b.example"}}}
	dismissed.Append(shown.ToDismissed())
	if err := dismissed.ToFile(path); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	// A shorter rewrite must not leave trailing bytes of the previous content.
	if err := (&Dismissed{Items: dismissed.Items[:1]}).ToFile(path); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	reloaded, err := LoadDismissed(path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	ids := reloaded.IDs()
	if len(ids) != 1 || ids[0] != "a" {
		t.Fatalf("unexpected ids %v", ids)
	}
	if reloaded.Items[0].Company != "Acme" || reloaded.Items[0].DismissedAt.IsZero() {
		t.Fatalf("unexpected entry %+v", reloaded.Items[0])
	}
}

func TestProfileEmpty(t *testing.T) {
	t.Parallel()

	var unset *UserProfile
	if !unset.Empty() || !(&UserProfile{Name: "Asha"}).Empty() {
		t.Fatalf("expected profiles without match attributes to be empty")
	}
	if (&UserProfile{City: "Pune"}).Empty() || (&UserProfile{ResumeText: "go"}).Empty() {
		t.Fatalf("expected profiles with match attributes to be non-empty")
	}
}

func TestValidLink(t *testing.T) {
	t.Parallel()

	tests := map[string]bool{
		"https://acme.example/apply": true,
		"http://acme.example":        true,
		"":                           false,
		"/apply":                     false,
		"acme.example/apply":         false,
		"javascript:alert(1)":        false,
		"mailto:hr@acme.example":     false,
		"https://":                   false,
	}
	for link, want := range tests {
		if got := ValidLink(link); got != want {
			t.Errorf("ValidLink(%q) = %v, want %v", link, got, want)
		}
	}
}
