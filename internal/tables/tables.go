// Package tables holds the static vocabularies of the auditor and loads YAML overlays for them.
package tables

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/spigell/career-auditor/internal/discovery"
	"github.com/spigell/career-auditor/internal/extract"
	"github.com/spigell/career-auditor/internal/feed"
	"github.com/spigell/career-auditor/internal/scoring"
)

// Tables bundles every static table used across the pipeline.
type Tables struct {
	Gazetteer extract.Gazetteer         `yaml:"gazetteer"`
	Lexicon   scoring.Lexicon           `yaml:"lexicon"`
	Rules     feed.Rules                `yaml:"rules"`
	Companies []discovery.Company       `yaml:"companies"`
	Community []discovery.CommunityFeed `yaml:"community"`
}

// Default returns the built-in tables.
func Default() Tables {
	return Tables{
		Gazetteer: extract.DefaultGazetteer(),
		Lexicon:   scoring.DefaultLexicon(),
		Rules:     feed.DefaultRules(),
		Companies: discovery.DefaultCompanies(),
		Community: discovery.DefaultCommunityFeeds(),
	}
}

// Merge overlays other onto t. A list present in other replaces the list in t.
func (t Tables) Merge(other Tables) Tables {
	t.Gazetteer = t.Gazetteer.Merge(other.Gazetteer)
	t.Lexicon = t.Lexicon.Merge(other.Lexicon)
	t.Rules = t.Rules.Merge(other.Rules)
	if len(other.Companies) > 0 {
		t.Companies = other.Companies
	}
	if len(other.Community) > 0 {
		t.Community = other.Community
	}
	return t
}

// Decode reads an overlay document. Unknown keys are rejected so typos do not silently keep defaults.
func Decode(r io.Reader) (Tables, error) {
	var overlay Tables
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(&overlay); err != nil && !errors.Is(err, io.EOF) {
		return Tables{}, fmt.Errorf("decoding tables: %w", err)
	}
	return overlay, nil
}

// Load returns the built-in tables overlaid with the YAML file at path. An empty path yields the defaults.
func Load(path string) (Tables, error) {
	tables := Default()
	if path == "" {
		return tables, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return Tables{}, fmt.Errorf("reading tables file: %w", err)
	}

	overlay, err := Decode(bytes.NewReader(data))
	if err != nil {
		return Tables{}, fmt.Errorf("%s: %w", path, err)
	}

	return tables.Merge(overlay), nil
}
