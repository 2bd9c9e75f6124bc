package extract

import (
	"testing"
	"time"
)

func TestLocation(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		text   string
		expect string
	}{
		{name: "alias", text: "Internship in Bengaluru", expect: "Bangalore"},
		{name: "canonical", text: "Backend role, Pune office", expect: "Pune"},
		{name: "gurugram", text: "based in GURUGRAM", expect: "Gurgaon"},
		{name: "wfh", text: "This is a work from home position", expect: "Remote"},
		{name: "list order wins", text: "Mumbai or Bangalore", expect: "Bangalore"},
		{name: "unknown", text: "somewhere nice", expect: UnknownLocation},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			if got := Location(tt.text); got != tt.expect {
				t.Fatalf("expected %q, got %q", tt.expect, got)
			}
		})
	}
}

func TestStream(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		text   string
		expect string
	}{
		{name: "alias", text: "Looking for CSE students", expect: "Computer Science"},
		{name: "full name", text: "Degree in Mechanical engineering", expect: "Mechanical"},
		{name: "ece", text: "ECE graduates", expect: "Electronics"},
		{name: "none", text: "Open to everyone", expect: AnyStream},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			if got := Stream(tt.text); got != tt.expect {
				t.Fatalf("expected %q, got %q", tt.expect, got)
			}
		})
	}
}

func TestCompanyName(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		title  string
		source string
		expect string
	}{
		{name: "two capitalised words", title: "Goldman Sachs hiring analysts", source: "Mint", expect: "Goldman Sachs"},
		{name: "generic second word", title: "Infosys Hiring freshers 2026", source: "Economic Times", expect: "Infosys"},
		{name: "quotes stripped", title: "\"TCS\" opens drive", source: "NDTV", expect: "TCS"},
		{name: "lowercase first word", title: "freshers wanted at Wipro", source: "Times of India", expect: "Times of India"},
		{name: "generic news source", title: "Zoho announces roles", source: "Regional News", expect: "Zoho"},
		{name: "google news suffix", title: "software engineer openings", source: "Acme Corp - Google News", expect: "Acme Corp"},
		{name: "employer source", title: "Software Engineer", source: "Acme Corp", expect: "Acme Corp"},
		{name: "empty", title: "", source: "", expect: ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			if got := CompanyName(tt.title, tt.source); got != tt.expect {
				t.Fatalf("expected %q, got %q", tt.expect, got)
			}
		})
	}
}

func TestJobRole(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		title  string
		expect string
	}{
		{name: "normalises internship", title: "Data Science Internship - Mint", expect: "Data Science Intern"},
		{name: "strips hiring words", title: "Backend Engineer hiring - Reuters", expect: "Backend Engineer"},
		{name: "too short falls back", title: "Hiring Drive - Acme", expect: "Hiring Drive"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			if got := JobRole(tt.title); got != tt.expect {
				t.Fatalf("expected %q, got %q", tt.expect, got)
			}
		})
	}
}

func TestDeadline(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		text   string
		ok     bool
		expect string
	}{
		{name: "month day year", text: "Apply by March 15th, 2026 to be considered", ok: true, expect: "2026-03-15"},
		{name: "short month", text: "Deadline: Jan 5 2027", ok: true, expect: "2027-01-05"},
		{name: "day month year", text: "Last date 7 August 2026", ok: true, expect: "2026-08-07"},
		{name: "iso", text: "closes on 2026-11-30", ok: true, expect: "2026-11-30"},
		{name: "no phrase", text: "March 15 2026", ok: false},
		{name: "unparseable month", text: "deadline: Foobar 3 2026", ok: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			got, ok := Deadline(tt.text)
			if ok != tt.ok {
				t.Fatalf("expected ok=%v, got %v", tt.ok, ok)
			}
			if ok && got.Format(time.DateOnly) != tt.expect {
				t.Fatalf("expected %q, got %q", tt.expect, got.Format(time.DateOnly))
			}
		})
	}
}

func TestApplicationStatus(t *testing.T) {
	t.Parallel()

	now := time.Date(2026, 10, 15, 18, 30, 0, 0, time.UTC)

	tests := []struct {
		name     string
		deadline time.Time
		ok       bool
		expect   Status
	}{
		{name: "today is still open", deadline: time.Date(2026, 10, 15, 0, 0, 0, 0, time.UTC), ok: true, expect: StatusOpen},
		{name: "future", deadline: time.Date(2026, 12, 1, 0, 0, 0, 0, time.UTC), ok: true, expect: StatusOpen},
		{name: "yesterday", deadline: time.Date(2026, 10, 14, 0, 0, 0, 0, time.UTC), ok: true, expect: StatusClosed},
		{name: "missing", ok: false, expect: StatusUnknown},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			if got := ApplicationStatus(tt.deadline, tt.ok, now); got != tt.expect {
				t.Fatalf("expected %q, got %q", tt.expect, got)
			}
		})
	}
}

func TestBlockedPage(t *testing.T) {
	if !BlockedPage("Access Denied. Reference #18.abc") {
		t.Fatalf("expected access denied page to be blocked")
	}
	if BlockedPage("We are hiring backend interns in Pune") {
		t.Fatalf("did not expect regular text to be blocked")
	}
}

func TestMerge(t *testing.T) {
	base := DefaultGazetteer()
	merged := base.Merge(Gazetteer{Cities: []string{"Kochi"}})

	if len(merged.Cities) != 1 || merged.Cities[0] != "Kochi" {
		t.Fatalf("expected cities override, got %v", merged.Cities)
	}
	if len(merged.Streams) != len(base.Streams) {
		t.Fatalf("expected streams to be kept")
	}

	e := New(merged)
	if got := e.Location("office in Kochi"); got != "Kochi" {
		t.Fatalf("expected %q, got %q", "Kochi", got)
	}
}
