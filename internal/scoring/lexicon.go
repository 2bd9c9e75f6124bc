package scoring

import (
	"fmt"
	"regexp"
)

// Lexicon is the keyword configuration of the scorers. Reputation entries are regular expressions.
type Lexicon struct {
	VibePositive       []string `yaml:"vibe_positive"`
	VibeNegative       []string `yaml:"vibe_negative"`
	ReputationPositive []string `yaml:"reputation_positive"`
	ReputationNegative []string `yaml:"reputation_negative"`
}

// DefaultLexicon returns the built-in keyword lists.
func DefaultLexicon() Lexicon {
	return Lexicon{
		VibePositive: []string{"mentorship", "stipend", "growth", "inclusive", "learning", "equity", "remote", "flexible"},
		VibeNegative: []string{"unpaid", "toxic", "late hours", "overtime", "layoff", "urgent", "fast-paced", "stress"},
		ReputationPositive: []string{
			`\bgood\b`, `\bgreat\b`, `\bbest\b`, `\bgrowth\b`, `\bbalance\b`, `\bfair\b`,
			`\bbenefit\b`, `\bpromot`, `\bintern`, `\bdrive\b`, `\bhir`, `\bopportunity\b`,
		},
		ReputationNegative: []string{
			`\btoxic\b`, `\bbad\b`, `\bworst\b`, `\bpolitics\b`, `\bstress\b`,
			`\blow pay\b`, `\bovertime\b`, `\bavoid\b`, `\blayoff\b`,
		},
	}
}

// Merge overlays non-empty lists of other onto l.
func (l Lexicon) Merge(other Lexicon) Lexicon {
	if len(other.VibePositive) > 0 {
		l.VibePositive = other.VibePositive
	}
	if len(other.VibeNegative) > 0 {
		l.VibeNegative = other.VibeNegative
	}
	if len(other.ReputationPositive) > 0 {
		l.ReputationPositive = other.ReputationPositive
	}
	if len(other.ReputationNegative) > 0 {
		l.ReputationNegative = other.ReputationNegative
	}
	return l
}

func compileAll(patterns []string) ([]*regexp.Regexp, error) {
	compiled := make([]*regexp.Regexp, 0, len(patterns))
	for _, p := range patterns {
		re, err := regexp.Compile("(?i)" + p)
		if err != nil {
			return nil, fmt.Errorf("compile %q: %w", p, err)
		}
		compiled = append(compiled, re)
	}
	return compiled, nil
}
