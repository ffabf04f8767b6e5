package event

import (
	"regexp"
	"strconv"
	"strings"
	"time"
)

// The page writes date ranges as human text, in two shapes:
//
//	"November 21-22, 2025"       same month (or single day: "July 1, 2026")
//	"February 28-Mar. 1, 2026"   cross month, abbreviation with optional period
var (
	crossMonthRange = regexp.MustCompile(`^([A-Za-z]+)\.?\s+(\d{1,2})\s*[-–]\s*([A-Za-z]+)\.?\s+(\d{1,2}),\s*(\d{4})$`)
	sameMonthRange  = regexp.MustCompile(`^([A-Za-z]+)\.?\s+(\d{1,2})(?:\s*[-–]\s*(\d{1,2}))?,\s*(\d{4})$`)
)

var monthAbbrevs = map[string]time.Month{
	"jan": time.January, "feb": time.February, "mar": time.March,
	"apr": time.April, "may": time.May, "jun": time.June,
	"jul": time.July, "aug": time.August, "sep": time.September,
	"oct": time.October, "nov": time.November, "dec": time.December,
}

// MonthFromName resolves a month name or abbreviation (first three letters,
// any case, optional trailing period) to a time.Month.
// Returns false for unrecognized tokens.
func MonthFromName(name string) (time.Month, bool) {
	name = strings.ToLower(strings.TrimSuffix(strings.TrimSpace(name), "."))
	if len(name) < 3 {
		return 0, false
	}
	m, ok := monthAbbrevs[name[:3]]
	return m, ok
}

// ParseDateRange parses a human date-range string into a start/end date
// pair. Returns zero times for both if the text matches neither grammar.
// The cross-month grammar is tried first; the same-month grammar also
// covers single-day stops (end = start). Ranges are forward in time within
// one year by construction, so end >= start whenever both are non-zero.
func ParseDateRange(text string) (time.Time, time.Time) {
	text = strings.TrimSpace(text)
	if text == "" {
		return time.Time{}, time.Time{}
	}

	if m := crossMonthRange.FindStringSubmatch(text); m != nil {
		m1, ok1 := MonthFromName(m[1])
		m2, ok2 := MonthFromName(m[3])
		if !ok1 || !ok2 {
			// Unrecognized month token, treat as unparsable
			return time.Time{}, time.Time{}
		}
		year, _ := strconv.Atoi(m[5])
		d1, _ := strconv.Atoi(m[2])
		d2, _ := strconv.Atoi(m[4])
		return date(year, m1, d1), date(year, m2, d2)
	}

	if m := sameMonthRange.FindStringSubmatch(text); m != nil {
		month, ok := MonthFromName(m[1])
		if !ok {
			return time.Time{}, time.Time{}
		}
		year, _ := strconv.Atoi(m[4])
		d1, _ := strconv.Atoi(m[2])
		d2 := d1
		if m[3] != "" {
			d2, _ = strconv.Atoi(m[3])
		}
		return date(year, month, d1), date(year, month, d2)
	}

	return time.Time{}, time.Time{}
}

func date(year int, month time.Month, day int) time.Time {
	return time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
}
