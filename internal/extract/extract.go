package extract

import (
	"regexp"
	"strings"
	"time"
	"unicode"
	"unicode/utf8"
)

// Status is the application window state derived from a deadline.
type Status string

const (
	StatusOpen    Status = "OPEN"
	StatusClosed  Status = "CLOSED"
	StatusUnknown Status = "UNKNOWN"
)

var (
	deadlineRe = regexp.MustCompile(`(?i)(?:apply by|deadline|last date|closes on|expires on)\s*[:\-]?\s*([a-zA-Z]{3,9}\s\d{1,2}(?:st|nd|rd|th)?,?\s?\d{4}|\d{1,2}\s[a-zA-Z]{3,9}\s\d{4}|\d{4}-\d{2}-\d{2})`)
	ordinalRe  = regexp.MustCompile(`(?i)(\d{1,2})(?:st|nd|rd|th)`)
	roleNoise  = regexp.MustCompile(`(?i)hiring|recruitment|drive|application|apply|online|off-campus`)
	internRe   = regexp.MustCompile(`(?i)internship`)
	sourceTail = regexp.MustCompile(` - .*`)

	deadlineLayouts = []string{"January 2 2006", "Jan 2 2006", "2 January 2006", "2 Jan 2006", "2006-01-02"}
)

// Extractor pulls structured hints out of free listing text.
type Extractor struct {
	g       Gazetteer
	generic map[string]struct{}
}

// New returns an Extractor backed by the given vocabularies.
func New(g Gazetteer) *Extractor {
	generic := make(map[string]struct{}, len(g.GenericSuffix))
	for _, w := range g.GenericSuffix {
		generic[w] = struct{}{}
	}
	return &Extractor{g: g, generic: generic}
}

// Gazetteer returns the vocabularies the extractor was built with.
func (e *Extractor) Gazetteer() Gazetteer {
	return e.g
}

// Location returns the first known city mentioned in text, normalised through aliases.
func (e *Extractor) Location(text string) string {
	return firstMatch(text, e.g.Cities, e.g.CityAliases, UnknownLocation)
}

// Stream returns the first known academic stream mentioned in text, normalised through aliases.
func (e *Extractor) Stream(text string) string {
	return firstMatch(text, e.g.Streams, e.g.StreamAliases, AnyStream)
}

func firstMatch(text string, vocab []string, aliases map[string]string, fallback string) string {
	lower := strings.ToLower(text)
	for _, term := range vocab {
		if !strings.Contains(lower, strings.ToLower(term)) {
			continue
		}
		if canonical, ok := aliases[strings.ToLower(term)]; ok {
			return canonical
		}
		return term
	}
	return fallback
}

// IsNewsSource reports whether source looks like a news outlet rather than an employer.
func (e *Extractor) IsNewsSource(source string) bool {
	if strings.Contains(source, "News") {
		return true
	}
	for _, outlet := range e.g.NewsOutlets {
		if strings.Contains(source, outlet) {
			return true
		}
	}
	return false
}

// CompanyName guesses the hiring company from a listing title and its source.
func (e *Extractor) CompanyName(title, source string) string {
	if e.IsNewsSource(source) {
		words := strings.Split(title, " ")
		first := words[0]
		if first != "" && startsUpper(first) {
			if len(words) > 1 && words[1] != "" && startsUpper(words[1]) {
				if _, generic := e.generic[words[1]]; !generic {
					return stripQuotes(first + " " + words[1])
				}
			}
			return stripQuotes(first)
		}
	}
	return strings.Replace(source, " - Google News", "", 1)
}

// JobRole strips hiring clutter from a listing title.
func (e *Extractor) JobRole(title string) string {
	role := roleNoise.ReplaceAllString(title, "")
	role = internRe.ReplaceAllString(role, "Intern")
	role = sourceTail.ReplaceAllString(role, "")
	role = strings.TrimSpace(role)

	if utf8.RuneCountInString(role) < 5 {
		head, _, _ := strings.Cut(title, "-")
		return strings.TrimSpace(head)
	}
	return role
}

// Deadline finds an application deadline phrase in text and parses its date.
func (e *Extractor) Deadline(text string) (time.Time, bool) {
	m := deadlineRe.FindStringSubmatch(text)
	if len(m) < 2 || m[1] == "" {
		return time.Time{}, false
	}

	raw := ordinalRe.ReplaceAllString(m[1], "$1")
	raw = strings.ReplaceAll(raw, ",", " ")
	raw = strings.Join(strings.Fields(raw), " ")

	for _, layout := range deadlineLayouts {
		if t, err := time.ParseInLocation(layout, raw, time.Local); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

// ApplicationStatus compares the end of the deadline day with the start of today.
func ApplicationStatus(deadline time.Time, ok bool, now time.Time) Status {
	if !ok || deadline.IsZero() {
		return StatusUnknown
	}

	loc := now.Location()
	y, m, d := now.Date()
	startOfToday := time.Date(y, m, d, 0, 0, 0, 0, loc)

	dy, dm, dd := deadline.In(loc).Date()
	endOfDeadline := time.Date(dy, dm, dd, 23, 59, 59, int(999*time.Millisecond), loc)

	if endOfDeadline.Before(startOfToday) {
		return StatusClosed
	}
	return StatusOpen
}

// BlockedPage reports whether text looks like a bot-protection or error page.
func (e *Extractor) BlockedPage(text string) bool {
	for _, phrase := range e.g.BlockedPhrases {
		if strings.Contains(text, phrase) {
			return true
		}
	}
	return false
}

func startsUpper(word string) bool {
	r, _ := utf8.DecodeRuneInString(word)
	return unicode.ToUpper(r) == r
}

func stripQuotes(s string) string {
	return strings.Map(func(r rune) rune {
		switch r {
		case '\'', '"', ':':
			return -1
		}
		return r
	}, s)
}

var std = New(DefaultGazetteer())

func Location(text string) string { return std.Location(text) }
func Stream(text string) string { return std.Stream(text) }
func CompanyName(title, source string) string { return std.CompanyName(title, source) }
func JobRole(title string) string { return std.JobRole(title) }
func Deadline(text string) (time.Time, bool) { return std.Deadline(text) }
func BlockedPage(text string) bool { return std.BlockedPage(text) }
func IsNewsSource(source string) bool { return std.IsNewsSource(source) }
