package scraper

import (
	"regexp"
	"strings"

	"github.com/pfrederiksen/tourboard/internal/event"
)

// DefaultRegions is the closed set of section headers observed on the
// page. Extending to a new region is a configuration change; it cannot be
// inferred from the text alone.
var DefaultRegions = []string{"Latin America", "Europe", "Oceania"}

var (
	yearSuffix   = regexp.MustCompile(`,\s*\d{4}\s*$`)
	showsPattern = regexp.MustCompile(`(?i)\b(\d+)\s*shows?\b`)
)

// Classifier holds the predicates that decide what a loose line of visible
// page text probably is. The predicates deliberately overlap; ambiguity is
// resolved by the extractor's fixed evaluation order, not here.
type Classifier struct {
	regions []string
}

// NewClassifier creates a classifier over the given closed region set.
// Passing nil uses DefaultRegions.
func NewClassifier(regions []string) *Classifier {
	if len(regions) == 0 {
		regions = DefaultRegions
	}
	return &Classifier{regions: regions}
}

// Regions returns the region set the classifier recognizes.
func (c *Classifier) Regions() []string {
	return c.regions
}

// RegionHeader checks whether line (with its successor next) is a region
// section header. Two variants occur on the page:
//
//	"Latin America Box Office"    one line
//	"Latin America" / "Box Office" two lines
//
// Returns the region name and how many lines the header consumed, or
// ("", 0) if the line is not a header.
func (c *Classifier) RegionHeader(line, next string) (string, int) {
	lower := strings.ToLower(line)
	for _, r := range c.regions {
		if strings.HasPrefix(lower, strings.ToLower(r)) && strings.Contains(lower, "box office") {
			return r, 1
		}
	}
	if strings.EqualFold(next, "box office") {
		for _, r := range c.regions {
			if line == r {
				return r, 2
			}
		}
	}
	return "", 0
}

// IsDateLine reports whether the line looks like a date-range line: it
// ends in a comma-prefixed 4-digit year and starts with a month name.
func (c *Classifier) IsDateLine(line string) bool {
	if !yearSuffix.MatchString(line) {
		return false
	}
	_, ok := event.MonthFromName(firstToken(line))
	return ok
}

// IsShowsLine reports whether the line states a show count ("2 shows",
// "1 show"). The presence of this line is what validates a block.
func IsShowsLine(line string) bool {
	return showsPattern.MatchString(line)
}

// IsGrossLine reports whether the line carries a dollar amount.
func IsGrossLine(line string) bool {
	return strings.Contains(line, "$")
}

// IsLocationLine is the "City, Country" heuristic: a comma, no dollar
// sign, no section-header or summary vocabulary, and short.
func IsLocationLine(line string) bool {
	if strings.Contains(line, "$") {
		return false
	}
	lower := strings.ToLower(line)
	if strings.Contains(lower, "box office") || strings.Contains(lower, "reported") {
		return false
	}
	return strings.Contains(line, ",") && len(line) <= 80
}

// IsTicketsCandidate reports whether the line could be a ticket-count
// line: a parenthesized percentage, a bare "TBA", or a thousands-grouped
// integer, in all cases without a dollar sign.
func IsTicketsCandidate(line string) bool {
	if strings.Contains(line, "$") {
		return false
	}
	if isTBA(line) {
		return true
	}
	if strings.Contains(line, "(") && strings.Contains(line, "%") {
		return true
	}
	return groupedInt.MatchString(line)
}

func firstToken(line string) string {
	if i := strings.IndexAny(line, " \t"); i >= 0 {
		return line[:i]
	}
	return line
}
