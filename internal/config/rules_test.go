package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultRules(t *testing.T) {
	rules, err := DefaultRules()
	require.NoError(t, err)

	assert.Equal(t, []int{2, 3}, rules.HeadingRanks)
	require.NotEmpty(t, rules.Exclusions)
	for _, r := range rules.Exclusions {
		assert.Equal(t, ActionExclude, r.Action, r.Pattern)
	}

	patterns := []string{}
	for _, r := range rules.Exclusions {
		patterns = append(patterns, r.Pattern)
	}
	assert.Contains(t, patterns, "bedrock edition")
	assert.Contains(t, patterns, "removed recipes")

	assert.Contains(t, rules.Pages(), "Crafting")
	require.Len(t, rules.SourcesFor("Blast Furnace"), 1)
	assert.Equal(t, ".mcui-Furnace", rules.SourcesFor("Blast Furnace")[0].Selector)
}

func TestParseRulesDefaults(t *testing.T) {
	rules, err := ParseRules([]byte(`
exclusions:
  - pattern: legacy console
sources:
  - page: Crafting
    type: crafting
`))
	require.NoError(t, err)
	assert.Equal(t, []int{2, 3}, rules.HeadingRanks)
	assert.Equal(t, ActionExclude, rules.Exclusions[0].Action)
}

func TestParseRulesInvalid(t *testing.T) {
	cases := map[string]string{
		"unknown type":   "sources:\n  - page: X\n    type: FISHING\n",
		"bad action":     "exclusions:\n  - pattern: x\n    action: maybe\n",
		"empty pattern":  "exclusions:\n  - pattern: ''\n",
		"bad rank":       "heading_ranks: [9]\n",
		"not yaml":       "exclusions: [",
		"empty pagename": "sources:\n  - page: ''\n    type: CRAFTING\n",
	}
	for name, blob := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := ParseRules([]byte(blob))
			assert.Error(t, err)
		})
	}
}

func TestLoadRulesFromFile(t *testing.T) {
	_, err := LoadRules(filepath.Join(t.TempDir(), "missing.yaml"))
	require.Error(t, err)

	path := filepath.Join(t.TempDir(), "rules.yaml")
	require.NoError(t, os.WriteFile(path, []byte("sources:\n  - page: Smelting\n    type: SMELTING\n"), 0o644))
	rules, err := LoadRules(path)
	require.NoError(t, err)
	assert.Equal(t, []string{"Smelting"}, rules.Pages())

	blob, err := rules.Marshal()
	require.NoError(t, err)
	again, err := ParseRules(blob)
	require.NoError(t, err)
	assert.Equal(t, rules.Sources, again.Sources)
}
