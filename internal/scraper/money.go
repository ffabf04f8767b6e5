package scraper

import (
	"regexp"
	"strconv"
	"strings"
)

// Regex-first extraction rather than strict-format parsing: the page mixes
// currency symbols, thousands separators and trailing annotations
// unpredictably, and a miss must come back as nil so the block extractor's
// control flow stays simple.
var (
	moneyPattern    = regexp.MustCompile(`\$([\d,]+(?:\.\d+)?)`)
	intPattern      = regexp.MustCompile(`[\d,]+`)
	capacityPattern = regexp.MustCompile(`\((\d+(?:\.\d+)?)%\)`)
	groupedInt      = regexp.MustCompile(`\b\d{1,3}(?:,\d{3})+\b`)
)

// isTBA reports whether the line is the literal "to be announced" marker
func isTBA(s string) bool {
	return strings.EqualFold(strings.TrimSpace(s), "TBA")
}

// ParseMoney extracts the first $-prefixed amount from the text.
// Returns nil for empty text, the literal "TBA", or no match.
func ParseMoney(s string) *float64 {
	s = strings.TrimSpace(s)
	if s == "" || isTBA(s) {
		return nil
	}
	m := moneyPattern.FindStringSubmatch(s)
	if m == nil {
		return nil
	}
	v, err := strconv.ParseFloat(strings.ReplaceAll(m[1], ",", ""), 64)
	if err != nil {
		return nil
	}
	return &v
}

// ParseInt extracts the first run of digits (thousands separators stripped)
// from the text. Returns nil for empty text, "TBA", or no match.
func ParseInt(s string) *int {
	s = strings.TrimSpace(s)
	if s == "" || isTBA(s) {
		return nil
	}
	m := intPattern.FindString(s)
	if m == "" {
		return nil
	}
	v, err := strconv.Atoi(strings.ReplaceAll(m, ",", ""))
	if err != nil {
		return nil
	}
	return &v
}

// ParseCapacityPct extracts a parenthesized percentage like "(100%)".
// Returns nil if absent.
func ParseCapacityPct(s string) *float64 {
	m := capacityPattern.FindStringSubmatch(s)
	if m == nil {
		return nil
	}
	v, err := strconv.ParseFloat(m[1], 64)
	if err != nil {
		return nil
	}
	return &v
}
