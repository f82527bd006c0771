package config

import (
	_ "embed"
	"errors"
	"fmt"
	"os"
	"strings"

	"go.yaml.in/yaml/v3"

	"recipegraph/internal"
)

//go:embed default_rules.yaml
var defaultRules []byte

type ExclusionAction string

const (
	ActionExclude ExclusionAction = "exclude"
	ActionKeep    ExclusionAction = "keep"
)

// ExclusionRule is matched case-insensitively as a substring of heading text.
type ExclusionRule struct {
	Pattern string          `yaml:"pattern"`
	Action  ExclusionAction `yaml:"action"`
}

type Source struct {
	Page     string `yaml:"page"`
	Type     string `yaml:"type"`
	Selector string `yaml:"selector,omitempty"`
}

type Rules struct {
	HeadingRanks     []int             `yaml:"heading_ranks"`
	Exclusions       []ExclusionRule   `yaml:"exclusions"`
	CategorySynonyms map[string]string `yaml:"category_synonyms,omitempty"`
	Sources          []Source          `yaml:"sources"`
}

func DefaultRules() (Rules, error) {
	return ParseRules(defaultRules)
}

// LoadRules reads the rule table from path, or the embedded default when
// path is empty. Any problem here is fatal for a run.
func LoadRules(path string) (Rules, error) {
	if strings.TrimSpace(path) == "" {
		return DefaultRules()
	}
	blob, err := os.ReadFile(path)
	if err != nil {
		return Rules{}, fmt.Errorf("read rules %s: %w", path, err)
	}
	rules, err := ParseRules(blob)
	if err != nil {
		return Rules{}, fmt.Errorf("rules %s: %w", path, err)
	}
	return rules, nil
}

func ParseRules(blob []byte) (Rules, error) {
	var rules Rules
	if err := yaml.Unmarshal(blob, &rules); err != nil {
		return Rules{}, fmt.Errorf("parse rules: %w", err)
	}
	if len(rules.HeadingRanks) == 0 {
		rules.HeadingRanks = []int{2, 3}
	}
	for i := range rules.Exclusions {
		if rules.Exclusions[i].Action == "" {
			rules.Exclusions[i].Action = ActionExclude
		}
	}
	if err := rules.Validate(); err != nil {
		return Rules{}, err
	}
	return rules, nil
}

func (r Rules) Validate() error {
	var errs []error
	for _, rank := range r.HeadingRanks {
		if rank < 1 || rank > 6 {
			errs = append(errs, fmt.Errorf("heading rank %d out of range 1-6", rank))
		}
	}
	for i, rule := range r.Exclusions {
		if strings.TrimSpace(rule.Pattern) == "" {
			errs = append(errs, fmt.Errorf("exclusion %d: empty pattern", i))
		}
		if rule.Action != ActionExclude && rule.Action != ActionKeep {
			errs = append(errs, fmt.Errorf("exclusion %d: unknown action %q", i, rule.Action))
		}
	}
	for i, src := range r.Sources {
		if strings.TrimSpace(src.Page) == "" {
			errs = append(errs, fmt.Errorf("source %d: empty page", i))
		}
		if _, err := internal.ParseTransformationType(src.Type); err != nil {
			errs = append(errs, fmt.Errorf("source %d: %w", i, err))
		}
	}
	return errors.Join(errs...)
}

func (r Rules) Marshal() ([]byte, error) {
	return yaml.Marshal(r)
}

// Pages lists the distinct source pages in first-mention order.
func (r Rules) Pages() []string {
	seen := map[string]struct{}{}
	out := []string{}
	for _, src := range r.Sources {
		if _, ok := seen[src.Page]; ok {
			continue
		}
		seen[src.Page] = struct{}{}
		out = append(out, src.Page)
	}
	return out
}

func (r Rules) SourcesFor(page string) []Source {
	out := []Source{}
	for _, src := range r.Sources {
		if src.Page == page {
			out = append(out, src)
		}
	}
	return out
}
