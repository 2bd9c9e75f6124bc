package listing

import (
	"encoding/json"
	"net/url"
	"os"
	"strings"
	"time"
)

// Category selects which feed a listing set is built for.
type Category string

const (
	CategoryInternships Category = "internships"
	CategoryJobs        Category = "jobs"
	CategoryATS         Category = "ats"
)

// ParseCategory maps user input to a Category. Unknown values fall back to jobs.
func ParseCategory(s string) Category {
	switch Category(strings.ToLower(strings.TrimSpace(s))) {
	case CategoryInternships, "internship", "intern":
		return CategoryInternships
	case CategoryATS:
		return CategoryATS
	default:
		return CategoryJobs
	}
}

// Listing is a single discovered job or internship posting.
type Listing struct {
	ID          string    `json:"id"`
	Title       string    `json:"title"`
	Link        string    `json:"link"`
	PublishedAt time.Time `json:"pubDate"`
	// Source is the provenance label: "Featured", "Community List (Verified)", a news outlet...
	Source  string `json:"source"`
	Snippet string `json:"snippet"`
	Company string `json:"company,omitempty"`
	// Pinned marks listings that came from the admin-curated store.
	Pinned bool `json:"pinned,omitempty"`
}

// Featured reports whether the listing has the admin-curated origin.
func (l Listing) Featured() bool {
	return l.Pinned || strings.Contains(l.Source, "Featured")
}

// Text returns the searchable text of the listing.
func (l Listing) Text() string {
	return l.Title + " " + l.Snippet
}

type Listings struct {
	Items []Listing
}

func (l *Listings) Len() int {
	return len(l.Items)
}

func (l *Listings) FindByID(id string) *Listing {
	for i := range l.Items {
		if l.Items[i].ID == id {
			return &l.Items[i]
		}
	}
	return nil
}

// Titles returns listing titles in order.
func (l *Listings) Titles() []string {
	titles := make([]string, 0, len(l.Items))
	for _, item := range l.Items {
		titles = append(titles, item.Title)
	}
	return titles
}

func (l *Listings) DumpToTmpFile() (string, error) {
	file, err := os.CreateTemp("", "listings_*.json")
	if err != nil {
		return "", err
	}
	defer file.Close()

	enc := json.NewEncoder(file)
	enc.SetIndent("", "  ")
	if err := enc.Encode(l.Items); err != nil {
		return "", err
	}
	return file.Name(), nil
}

// ReportBySource groups listings by their provenance label.
func (l *Listings) ReportBySource() map[string][]map[string]string {
	report := make(map[string][]map[string]string)
	for _, item := range l.Items {
		entry := map[string]string{
			"title": item.Title,
			"link":  item.Link,
		}
		if item.Company != "" {
			entry["company"] = item.Company
		}
		if !item.PublishedAt.IsZero() {
			entry["published"] = item.PublishedAt.Format(time.DateOnly)
		}
		report[item.Source] = append(report[item.Source], entry)
	}
	return report
}

// ValidLink reports whether link is an absolute http(s) URL.
func ValidLink(link string) bool {
	u, err := url.Parse(link)
	if err != nil {
		return false
	}
	return (u.Scheme == "http" || u.Scheme == "https") && u.Host != ""
}
