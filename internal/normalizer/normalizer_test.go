package normalizer

import (
	"strings"
	"testing"
	"time"
)

var now = time.Date(2026, 10, 15, 12, 0, 0, 0, time.UTC)

const communityTable = `# Summer 2026 Internships

| Company | Role | Location | Application/Link |
| ------- | ---- | -------- | ---------------- |
| **[Acme](https://acme.example)** | Software Intern | Remote | [Apply](https://acme.example/apply) |
| ↳ | Backend Intern | Remote | [Apply](https://x.co) |
| Globex | Data Intern | NYC | Closed |
| Initech | ML Intern | Austin | [Apply](https://initech.example/apply) 🔒 |
| Umbrella | __QA Intern__ | Berlin | <a href="https://umbrella.example/jobs/1"><img src="apply.png"></a> |
| Hooli | Platform Intern | SF | see https://hooli.example/careers now |
| Vandelay | Intern | Remote | [Apply](/relative/path) |
| short | row |
`

func TestParseMarkdownTable(t *testing.T) {
	got := ParseMarkdownTable(communityTable, RegionGlobal, now)

	if len(got) != 4 {
		t.Fatalf("expected 4 listings, got %d: %+v", len(got), got)
	}

	expect := []struct {
		company string
		title   string
		link    string
	}{
		{company: "Acme", title: "Acme - Software Intern", link: "https://acme.example/apply"},
		{company: "Acme", title: "Acme - Backend Intern", link: "https://x.co"},
		{company: "Umbrella", title: "Umbrella - QA Intern", link: "https://umbrella.example/jobs/1"},
		{company: "Hooli", title: "Hooli - Platform Intern", link: "https://hooli.example/careers"},
	}

	for i, e := range expect {
		if got[i].Company != e.company {
			t.Fatalf("listing %d: expected company %q, got %q", i, e.company, got[i].Company)
		}
		if got[i].Title != e.title {
			t.Fatalf("listing %d: expected title %q, got %q", i, e.title, got[i].Title)
		}
		if got[i].Link != e.link {
			t.Fatalf("listing %d: expected link %q, got %q", i, e.link, got[i].Link)
		}
		if got[i].Source != SourceCommunity {
			t.Fatalf("listing %d: unexpected source %q", i, got[i].Source)
		}
		if !got[i].PublishedAt.Equal(now) {
			t.Fatalf("listing %d: unexpected publish time %v", i, got[i].PublishedAt)
		}
	}

	if got[0].ID != "gh-global-acme-software-intern" {
		t.Fatalf("unexpected id %q", got[0].ID)
	}
	if !strings.Contains(got[1].Snippet, "Location: Remote.") || !strings.HasSuffix(got[1].Snippet, "Region: GLOBAL") {
		t.Fatalf("unexpected snippet %q", got[1].Snippet)
	}
}

func TestParseMarkdownTableCarryDown(t *testing.T) {
	md := "| Acme | Frontend Intern | Pune | [Apply](https://acme.example/1) |\n" +
		"| ↳ | Backend Intern | Remote | [Apply](https://x.co) |\n"

	got := ParseMarkdownTable(md, RegionGlobal, now)
	if len(got) != 2 {
		t.Fatalf("expected 2 listings, got %d", len(got))
	}
	if got[1].Company != "Acme" {
		t.Fatalf("expected carried company %q, got %q", "Acme", got[1].Company)
	}
}

func TestParseMarkdownTableClosed(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		row  string
	}{
		{name: "closed text", row: "| Acme | Intern | Pune | Closed |"},
		{name: "closed with link", row: "| Acme | Intern | Pune | [Closed](https://acme.example) |"},
		{name: "lock glyph", row: "| Acme | Intern | Pune | 🔒 https://acme.example/apply🔒 |"},
		{name: "no company", row: "| ↳ | Intern | Pune | [Apply](https://acme.example) |"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			if got := ParseMarkdownTable(tt.row, RegionGlobal, now); len(got) != 0 {
				t.Fatalf("expected no listings, got %+v", got)
			}
		})
	}
}

func TestParseMarkdownTableFiveColumns(t *testing.T) {
	md := "| Wipro | Project Engineer | Bangalore | 2026 | [Apply](https://wipro.example/apply) |\n"

	got := ParseMarkdownTable(md, RegionIndia, now)
	if len(got) != 1 {
		t.Fatalf("expected 1 listing, got %d", len(got))
	}
	if got[0].Link != "https://wipro.example/apply" {
		t.Fatalf("unexpected link %q", got[0].Link)
	}
	if got[0].Source != SourceIndia {
		t.Fatalf("unexpected source %q", got[0].Source)
	}
	if got[0].ID != "gh-india-wipro-project-engineer" {
		t.Fatalf("unexpected id %q", got[0].ID)
	}
}

func TestParseMarkdownTableUniqueIDs(t *testing.T) {
	md := "| Acme | Intern | Pune | [Apply](https://acme.example/1) |\n" +
		"| Acme | Intern | Delhi | [Apply](https://acme.example/2) |\n" +
		"| Acme | Intern | Goa | [Apply](https://acme.example/3) |\n"

	got := ParseMarkdownTable(md, RegionGlobal, now)
	ids := []string{"gh-global-acme-intern", "gh-global-acme-intern-2", "gh-global-acme-intern-3"}
	if len(got) != len(ids) {
		t.Fatalf("expected %d listings, got %d", len(ids), len(got))
	}
	for i, id := range ids {
		if got[i].ID != id {
			t.Fatalf("expected id %q, got %q", id, got[i].ID)
		}
	}
}

const searchFeed = `<?xml version="1.0" encoding="UTF-8"?>
<rss version="2.0">
<channel>
<title>"hiring" - Google News</title>
<item>
<title>Infosys hiring freshers for 2026 batch - Mint</title>
<link>https://news.example/infosys</link>
<guid isPermaLink="false">CBMi-infosys</guid>
<pubDate>Tue, 13 Oct 2026 07:00:00 GMT</pubDate>
<description>&lt;a href="https://news.example/infosys"&gt;Infosys hiring&lt;/a&gt;</description>
<source url="https://www.livemint.com">Mint</source>
</item>
<item>
<title>No guid, odd date</title>
<link>https://news.example/no-guid</link>
<pubDate>sometime last week</pubDate>
<source url="https://example.com">Example</source>
</item>
<item>
<title>Missing link</title>
<guid>x</guid>
</item>
</channel>
</rss>`

func TestParseRSS(t *testing.T) {
	got := ParseRSS(searchFeed)
	if len(got) != 2 {
		t.Fatalf("expected 2 listings, got %d: %+v", len(got), got)
	}

	first := got[0]
	if first.ID != "CBMi-infosys" {
		t.Fatalf("unexpected id %q", first.ID)
	}
	if first.Source != "Mint" {
		t.Fatalf("unexpected source %q", first.Source)
	}
	if first.Title != "Infosys hiring freshers for 2026 batch - Mint" {
		t.Fatalf("unexpected title %q", first.Title)
	}
	expectDate := time.Date(2026, 10, 13, 7, 0, 0, 0, time.UTC)
	if !first.PublishedAt.Equal(expectDate) {
		t.Fatalf("expected %v, got %v", expectDate, first.PublishedAt)
	}
	if !strings.Contains(first.Snippet, "Infosys hiring") {
		t.Fatalf("unexpected snippet %q", first.Snippet)
	}

	second := got[1]
	if second.ID == "" {
		t.Fatalf("expected generated id")
	}
	if !second.PublishedAt.IsZero() {
		t.Fatalf("expected zero time for unparseable date, got %v", second.PublishedAt)
	}
}

func TestParseRSSMalformed(t *testing.T) {
	t.Parallel()

	for _, raw := range []string{"", "not xml at all", "<rss><channel><item><link>x"} {
		got := ParseRSS(raw)
		for _, l := range got {
			if l.Link == "" {
				t.Fatalf("listing without link leaked from %q", raw)
			}
		}
		if len(got) > 1 {
			t.Fatalf("unexpected listings from %q: %+v", raw, got)
		}
	}
}

func TestParsePubDate(t *testing.T) {
	t.Parallel()

	tests := []struct {
		input  string
		expect time.Time
	}{
		{input: "Tue, 13 Oct 2026 07:00:00 +0530", expect: time.Date(2026, 10, 13, 1, 30, 0, 0, time.UTC)},
		{input: "2026-10-13T07:00:00Z", expect: time.Date(2026, 10, 13, 7, 0, 0, 0, time.UTC)},
		{input: "yesterday"},
		{input: ""},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			t.Parallel()
			if got := ParsePubDate(tt.input); !got.Equal(tt.expect) {
				t.Fatalf("expected %v, got %v", tt.expect, got)
			}
		})
	}
}
