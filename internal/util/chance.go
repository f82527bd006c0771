package util

import (
	"regexp"
	"strconv"
	"strings"
)

var (
	percentPattern  = regexp.MustCompile(`(\d+(?:[.,]\d+)?)\s*%`)
	fractionPattern = regexp.MustCompile(`(\d+)\s*/\s*(\d+)`)
	decimalPattern  = regexp.MustCompile(`(?:^|[^0-9.,])(\d*[.,]\d+|\d+)`)
)

// ParseChance reads a probability written as "65%", "1/3" or "0.3". When a
// range is given ("30%–50%") the first bound is used. Values outside [0, 1]
// are rejected.
func ParseChance(input string) (float64, bool) {
	line := strings.ReplaceAll(input, "\u00a0", " ")

	if m := percentPattern.FindStringSubmatch(line); m != nil {
		v, err := strconv.ParseFloat(normalizeNumericToken(m[1]), 64)
		if err != nil {
			return 0, false
		}
		return inUnitRange(v / 100)
	}

	if m := fractionPattern.FindStringSubmatch(line); m != nil {
		num, err1 := strconv.ParseFloat(m[1], 64)
		den, err2 := strconv.ParseFloat(m[2], 64)
		if err1 != nil || err2 != nil || den == 0 {
			return 0, false
		}
		return inUnitRange(num / den)
	}

	if m := decimalPattern.FindStringSubmatch(line); m != nil {
		v, err := strconv.ParseFloat(normalizeNumericToken(m[1]), 64)
		if err != nil {
			return 0, false
		}
		return inUnitRange(v)
	}
	return 0, false
}

func inUnitRange(v float64) (float64, bool) {
	if v < 0 || v > 1 {
		return 0, false
	}
	return v, true
}

func normalizeNumericToken(token string) string {
	compact := strings.ReplaceAll(token, " ", "")
	if strings.HasPrefix(compact, ",") || strings.HasPrefix(compact, ".") {
		compact = "0" + compact
	}
	if strings.Contains(compact, ",") && !strings.Contains(compact, ".") {
		return strings.ReplaceAll(compact, ",", ".")
	}
	return compact
}
