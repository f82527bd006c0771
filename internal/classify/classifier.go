// Package classify attributes recipe elements to the wiki section they sit in.
package classify

import (
	"fmt"
	"regexp"
	"slices"
	"strings"

	"recipegraph/internal/config"
	"recipegraph/internal/dom"
	"recipegraph/internal/util"
)

var editLinkPattern = regexp.MustCompile(`(?i)\[\s*edit[^\]]*\]`)

// Tree is the part of the document accessor the classifier needs.
type Tree interface {
	Tag(h dom.Handle) string
	Text(h dom.Handle) string
	Attr(h dom.Handle, name string) (string, bool)
	HasClass(h dom.Handle, class string) bool
	Parent(h dom.Handle) dom.Handle
	PrevSiblings(h dom.Handle) []dom.Handle
	Children(h dom.Handle) []dom.Handle
	FindIn(h dom.Handle, selector string) []dom.Handle
}

type Heading struct {
	Level int
	Text  string
}

type Section struct {
	Category *string
	Excluded bool
	// ExcludedBy is the heading text that triggered exclusion.
	ExcludedBy string
	// Headings is the enclosing heading chain, nearest first.
	Headings []Heading
}

type Classifier struct {
	ranks      []int
	topRank    int
	exclusions []config.ExclusionRule
	synonyms   map[string]string
}

func New(rules config.Rules) (*Classifier, error) {
	if err := rules.Validate(); err != nil {
		return nil, err
	}
	if len(rules.HeadingRanks) == 0 {
		return nil, fmt.Errorf("classifier: no heading ranks configured")
	}

	c := &Classifier{
		ranks:      slices.Clone(rules.HeadingRanks),
		topRank:    slices.Min(rules.HeadingRanks),
		exclusions: slices.Clone(rules.Exclusions),
		synonyms:   map[string]string{},
	}
	for from, to := range rules.CategorySynonyms {
		c.synonyms[util.NormalizeCategory(from)] = util.NormalizeCategory(to)
	}
	return c, nil
}

func (c *Classifier) Classify(tree Tree, el dom.Handle) Section {
	chain := c.headingChain(tree, el)
	sec := Section{Headings: chain}

	if len(chain) > 0 {
		if label := c.CategoryLabel(chain[0].Text); label != "" {
			sec.Category = &label
		}
	}
	for _, h := range chain {
		if c.Excludes(h.Text) {
			sec.Excluded = true
			sec.ExcludedBy = h.Text
			break
		}
	}
	return sec
}

func (c *Classifier) CategoryLabel(text string) string {
	label := util.NormalizeCategory(text)
	if to, ok := c.synonyms[label]; ok {
		return to
	}
	return label
}

// Excludes evaluates the rule table against one heading text. A keep rule
// only applies when it names the whole heading; otherwise any exclude
// pattern occurring in the text excludes it.
func (c *Classifier) Excludes(text string) bool {
	heading := util.NormalizeSpaces(text)
	for _, rule := range c.exclusions {
		if rule.Action == config.ActionKeep && strings.EqualFold(heading, util.NormalizeSpaces(rule.Pattern)) {
			return false
		}
	}
	for _, rule := range c.exclusions {
		if rule.Action == config.ActionExclude && util.ContainsFold(text, rule.Pattern) {
			return true
		}
	}
	return false
}

// headingChain walks backwards through the document from el: the element and
// each of its ancestors contribute their preceding siblings, nearest first.
// A heading is kept only when it outranks the previous kept one, which yields
// the chain of enclosing sections.
func (c *Classifier) headingChain(tree Tree, el dom.Handle) []Heading {
	chain := []Heading{}
	last := 7
	for node := el; node != dom.None; node = tree.Parent(node) {
		for _, sib := range tree.PrevSiblings(node) {
			h, ok := c.heading(tree, sib)
			if !ok || h.Level >= last {
				continue
			}
			chain = append(chain, h)
			last = h.Level
			if last <= c.topRank {
				return chain
			}
		}
	}
	return chain
}

func (c *Classifier) heading(tree Tree, h dom.Handle) (Heading, bool) {
	if tree.Tag(h) == "div" && tree.HasClass(h, "mw-heading") {
		for _, child := range tree.Children(h) {
			if hd, ok := c.heading(tree, child); ok {
				return hd, true
			}
		}
		return Heading{}, false
	}

	level := headingLevel(tree.Tag(h))
	if level == 0 || !slices.Contains(c.ranks, level) {
		return Heading{}, false
	}

	if labels := tree.FindIn(h, ".mw-headline"); len(labels) > 0 {
		return Heading{Level: level, Text: tree.Text(labels[0])}, true
	}
	if _, ok := tree.Attr(h, "id"); ok {
		text := editLinkPattern.ReplaceAllString(tree.Text(h), " ")
		return Heading{Level: level, Text: strings.TrimSpace(text)}, true
	}
	return Heading{}, false
}

func headingLevel(tag string) int {
	if len(tag) != 2 || tag[0] != 'h' || tag[1] < '1' || tag[1] > '6' {
		return 0
	}
	return int(tag[1] - '0')
}
