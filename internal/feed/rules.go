package feed

import (
	"strings"
	"time"
)

// Rules are the vocabularies and limits of the aggregation pipeline.
type Rules struct {
	Noise           []string      `yaml:"noise"`
	InternshipTerms []string      `yaml:"internship_terms"`
	StrongSignals   []string      `yaml:"strong_signals"`
	GenericQuery    []string      `yaml:"generic_query"`
	Foreign         []string      `yaml:"foreign"`
	TierOne         []string      `yaml:"tier_one"`
	Remote          []string      `yaml:"remote"`
	MaxAge          time.Duration `yaml:"max_age"`
	// KeyLength is the number of title runes in the dedup key.
	KeyLength int `yaml:"key_length"`
}

// DefaultRules returns the built-in pipeline configuration.
func DefaultRules() Rules {
	return Rules{
		Noise: []string{
			"remark", "comment", "sparks", "discussion", "opinion", "says", "reaction",
			"viral", "video", "trend", "slam", "netizen", "twitter", "reddit",
			"advice", "tips", "guide", "how to", "can i", "can final", "why", "preparation", "syllabus",
			"upsc", "ssc", "board", "cbse", "admit card", "result", "cutoff", "paper", "exam", "class 10", "class 12",
		},
		InternshipTerms: []string{"intern", "stipend", "summer"},
		StrongSignals: []string{
			"hiring", "hire", "intern", "job", "career", "opening", "vacancy", "role", "position",
			"apply", "recruitment", "drive", "opportunity",
		},
		GenericQuery: []string{"hiring", "apply", "jobs"},
		Foreign: []string{
			"united states", "usa", "uk", "london", "germany", "berlin", "singapore", "canada", "australia",
			"dublin", "ireland", "france", "paris", "tokyo", "amsterdam", "netherlands", "sweden", "switzerland",
			"san francisco", "san jose", "new york", "los angeles", "chicago", "seattle", "austin", "boston",
			"california", "texas", "washington",
			", ca", ", ny", ", tx", ", wa", ", ma", ", il", "north america", "europe",
		},
		TierOne: []string{
			"bangalore", "bengaluru", "delhi", "mumbai", "pune", "hyderabad", "chennai", "kolkata",
			"gurgaon", "noida", "ahmedabad", "india",
		},
		Remote:    []string{"remote", "wfh", "work from home"},
		MaxAge:    30 * 24 * time.Hour,
		KeyLength: 30,
	}
}

// Merge overlays non-empty fields of other onto r.
func (r Rules) Merge(other Rules) Rules {
	pick := func(dst *[]string, src []string) {
		if len(src) > 0 {
			*dst = src
		}
	}
	pick(&r.Noise, other.Noise)
	pick(&r.InternshipTerms, other.InternshipTerms)
	pick(&r.StrongSignals, other.StrongSignals)
	pick(&r.GenericQuery, other.GenericQuery)
	pick(&r.Foreign, other.Foreign)
	pick(&r.TierOne, other.TierOne)
	pick(&r.Remote, other.Remote)
	if other.MaxAge > 0 {
		r.MaxAge = other.MaxAge
	}
	if other.KeyLength > 0 {
		r.KeyLength = other.KeyLength
	}
	return r
}

// normalized lowercases every vocabulary, drops blank terms and fills unset limits with the defaults.
func (r Rules) normalized() Rules {
	lower := func(terms []string) []string {
		out := make([]string, 0, len(terms))
		for _, t := range terms {
			if strings.TrimSpace(t) != "" {
				out = append(out, strings.ToLower(t))
			}
		}
		return out
	}
	r.Noise = lower(r.Noise)
	r.InternshipTerms = lower(r.InternshipTerms)
	r.StrongSignals = lower(r.StrongSignals)
	r.GenericQuery = lower(r.GenericQuery)
	r.Foreign = lower(r.Foreign)
	r.TierOne = lower(r.TierOne)
	r.Remote = lower(r.Remote)

	def := DefaultRules()
	if r.MaxAge <= 0 {
		r.MaxAge = def.MaxAge
	}
	if r.KeyLength <= 0 {
		r.KeyLength = def.KeyLength
	}
	return r
}
