package util

import (
	"regexp"
	"strings"
	"unicode"
)

var reSpaces = regexp.MustCompile(`\s+`)

func NormalizeSpaces(input string) string {
	input = strings.ReplaceAll(input, "\u00a0", " ")
	return strings.TrimSpace(reSpaces.ReplaceAllString(input, " "))
}

// NormalizeCategory turns heading text into a category label: runes other
// than letters, digits and whitespace are dropped, whitespace runs become a
// single underscore, and the result is lowercased.
func NormalizeCategory(input string) string {
	var b strings.Builder
	for _, r := range input {
		switch {
		case unicode.IsLetter(r) || unicode.IsDigit(r):
			b.WriteRune(unicode.ToLower(r))
		case unicode.IsSpace(r):
			b.WriteRune(' ')
		}
	}
	return strings.Join(strings.Fields(b.String()), "_")
}

// PageTitle maps a cached file stem such as "Blast_Furnace" to its page title.
func PageTitle(stem string) string {
	return NormalizeSpaces(strings.ReplaceAll(stem, "_", " "))
}

func ContainsFold(haystack, needle string) bool {
	return strings.Contains(strings.ToLower(haystack), strings.ToLower(needle))
}

func StringPtr(v string) *string {
	return &v
}

func FloatPtr(v float64) *float64 {
	return &v
}
