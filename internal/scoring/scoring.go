package scoring

import (
	"fmt"
	"math"
	"regexp"
	"strconv"
	"strings"

	"github.com/spigell/career-auditor/internal/listing"
)

const maxReputationSignals = 3

var (
	cgpaRe    = regexp.MustCompile(`(?i)CGPA\s*(?:of|:)?\s*(\d+(\.\d+)?)`)
	keywordRe = regexp.MustCompile(`\b[a-z]{4,}\b`)
)

// VibeResult is the sentiment score of a posting text.
type VibeResult struct {
	Score    int      `json:"score"`
	Positive int      `json:"positive"`
	Negative int      `json:"negative"`
	Tokens   []string `json:"tokens"`
}

// JobDetails carries the posting attributes the match scorer compares against a profile.
type JobDetails struct {
	Description    string
	Location       string
	Qualifications string
}

// MatchResult is the profile compatibility of a posting.
type MatchResult struct {
	Percentage int      `json:"matchPercentage"`
	Flags      []string `json:"flags"`
}

// ReputationStatus classifies secondary intel about a company.
type ReputationStatus string

const (
	ReputationPositive ReputationStatus = "Positive"
	ReputationNegative ReputationStatus = "Negative"
	ReputationMixed    ReputationStatus = "Mixed"
	ReputationNeutral  ReputationStatus = "Neutral"
)

// ReputationResult is the score delta derived from intel listings.
type ReputationResult struct {
	Status     ReputationStatus `json:"status"`
	Adjustment int              `json:"score"`
	Signals    []string         `json:"signals"`
}

// Scorer computes vibe, match and reputation scores from a Lexicon.
type Scorer struct {
	lex    Lexicon
	repPos []*regexp.Regexp
	repNeg []*regexp.Regexp
}

// New compiles the reputation patterns of lex.
func New(lex Lexicon) (*Scorer, error) {
	pos, err := compileAll(lex.ReputationPositive)
	if err != nil {
		return nil, fmt.Errorf("reputation positive: %w", err)
	}
	neg, err := compileAll(lex.ReputationNegative)
	if err != nil {
		return nil, fmt.Errorf("reputation negative: %w", err)
	}
	return &Scorer{lex: lex, repPos: pos, repNeg: neg}, nil
}

var std = mustDefault()

func mustDefault() *Scorer {
	s, err := New(DefaultLexicon())
	if err != nil {
		panic(err)
	}
	return s
}

// Default returns the scorer built from DefaultLexicon.
func Default() *Scorer {
	return std
}

// Vibe scores text by token presence: +5 per positive token, -10 per negative token,
// normalised with 50 + tanh(raw/10) * 50.
func (s *Scorer) Vibe(text string) VibeResult {
	lower := strings.ToLower(text)
	res := VibeResult{Tokens: []string{}}
	raw := 0

	for _, token := range s.lex.VibePositive {
		if strings.Contains(lower, strings.ToLower(token)) {
			raw += 5
			res.Positive++
			res.Tokens = append(res.Tokens, "+"+token)
		}
	}
	for _, token := range s.lex.VibeNegative {
		if strings.Contains(lower, strings.ToLower(token)) {
			raw -= 10
			res.Negative++
			res.Tokens = append(res.Tokens, "-"+token)
		}
	}

	res.Score = clamp(finite(math.Round(50+math.Tanh(float64(raw)/10)*50)), 0, 100)
	return res
}

// Match compares a profile with posting details. The result is always within [0,100].
func (s *Scorer) Match(profile listing.UserProfile, job JobDetails) MatchResult {
	score := 100.0
	flags := []string{}

	if m := cgpaRe.FindStringSubmatch(job.Description); m != nil {
		if required, err := strconv.ParseFloat(m[1], 64); err == nil && profile.CGPA < required {
			score -= 50
			flags = append(flags, "CGPA Gap: Requires "+strconv.FormatFloat(required, 'f', -1, 64))
		}
	}

	location := strings.ToLower(job.Location)
	if !strings.Contains(location, strings.ToLower(profile.City)) && !strings.Contains(location, "remote") {
		score -= 15
		flags = append(flags, "Location Mismatch: Job location differs from "+profile.City)
	}

	if !strings.Contains(strings.ToLower(job.Qualifications), strings.ToLower(profile.Major)) {
		score -= 10
		flags = append(flags, "Stream Mismatch: Job requirements differ from "+profile.Major)
	}

	if profile.HasResume() {
		pct := keywordOverlap(job.Description, profile.ResumeText)
		if pct < 15 {
			score -= 20
			flags = append(flags, "Low Relevance: Resume content has low overlap with Job Description.")
		}
		score = score*0.5 + math.Min(100, float64(pct)*1.5)*0.5
	} else {
		flags = append(flags, "Resume Missing: Upload resume to check Skill Match.")
	}

	return MatchResult{
		Percentage: clamp(finite(math.Round(score)), 0, 100),
		Flags:      flags,
	}
}

// keywordOverlap returns the share of description keywords (capped at 50) found in the resume, in percent.
func keywordOverlap(description, resume string) int {
	jd := keywords(description)
	cv := keywords(resume)

	matched := 0
	for k := range jd {
		if _, ok := cv[k]; ok {
			matched++
		}
	}

	base := min(len(jd), 50)
	if base == 0 {
		return 0
	}
	return int(math.Round(float64(matched) / float64(base) * 100))
}

func keywords(text string) map[string]struct{} {
	set := make(map[string]struct{})
	for _, w := range keywordRe.FindAllString(strings.ToLower(text), -1) {
		set[w] = struct{}{}
	}
	return set
}

// Reputation counts positive and negative pattern hits over the whole batch.
func (s *Scorer) Reputation(items []listing.Listing) ReputationResult {
	positive, negative := 0, 0
	signals := []string{}

	for _, item := range items {
		text := strings.ToLower(item.Title + " " + item.Snippet)
		for _, re := range s.repPos {
			if re.MatchString(text) {
				positive++
			}
		}
		for _, re := range s.repNeg {
			if re.MatchString(text) {
				negative++
				if len(signals) < maxReputationSignals {
					signals = append(signals, "Warning: "+item.Title)
				}
			}
		}
	}

	res := ReputationResult{Status: ReputationNeutral, Signals: signals}
	switch {
	case positive > 0 && negative == 0:
		res.Status, res.Adjustment = ReputationPositive, 30
	case negative > 0 && positive == 0:
		res.Status, res.Adjustment = ReputationNegative, -30
	case positive > 0 && negative > 0:
		res.Status, res.Adjustment = ReputationMixed, -10
	}
	return res
}

// Composite combines a vibe score, a reputation adjustment and an optional match result.
func Composite(vibe, reputationAdjustment int, match *MatchResult) int {
	total := vibe + reputationAdjustment
	if match != nil {
		switch {
		case match.Percentage >= 75:
			total += 15
		case match.Percentage < 30:
			total -= 10
		}
	}
	return clamp(total, 0, 100)
}

func Vibe(text string) VibeResult { return std.Vibe(text) }

func Match(profile listing.UserProfile, job JobDetails) MatchResult { return std.Match(profile, job) }

func Reputation(items []listing.Listing) ReputationResult { return std.Reputation(items) }

func finite(f float64) int {
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return 0
	}
	return int(f)
}

func clamp(v, lo, hi int) int {
	return max(lo, min(hi, v))
}
