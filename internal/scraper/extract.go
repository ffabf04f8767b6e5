package scraper

import (
	"strings"
	"time"

	"github.com/pfrederiksen/tourboard/internal/event"
)

// blockWindow caps how far past a date line the extractor will look for
// the shows line that closes a block.
const blockWindow = 40

// ExtractParams carries the per-run inputs of the block extractor.
type ExtractParams struct {
	Regions   []string
	SourceURL string
	ScrapedAt time.Time
}

// extractState is the state the scan carries between lines. It is local to
// one ExtractEvents call, so the extractor is reentrant and a pure function
// of its input.
type extractState struct {
	region string // current region; "" means still seeking a header
}

// ExtractEvents scans a normalized line sequence and assembles one Event
// per block. A block opens on a date line inside a region section: the
// date line is followed by the artist line and the venue line, then a
// window of at most blockWindow lines is collected, stopping at the first
// shows line inclusive. A window with no shows line abandons the block
// one line at a time; that is the only condition under which a record is
// rejected. Events come back in document encounter order.
func ExtractEvents(lines []string, p ExtractParams) []event.Event {
	cls := NewClassifier(p.Regions)
	lines = NormalizeLines(lines)

	events := make([]event.Event, 0)
	var st extractState

	i := 0
	for i < len(lines) {
		ln := lines[i]

		next := ""
		if i+1 < len(lines) {
			next = lines[i+1]
		}
		if region, consumed := cls.RegionHeader(ln, next); consumed > 0 {
			st.region = region
			i += consumed
			continue
		}

		if st.region == "" || !cls.IsDateLine(ln) {
			i++
			continue
		}

		evt, advance := extractBlock(lines, i, st.region, p)
		if evt == nil {
			// No shows line in the window: not a well-formed block.
			// Advance one line and keep looking within the region.
			i++
			continue
		}
		events = append(events, *evt)
		i = advance
	}

	return events
}

// extractBlock assembles the event starting at the date line at index i.
// Returns nil if the block has no shows line, otherwise the event and the
// index of the first line past the consumed window.
func extractBlock(lines []string, i int, region string, p ExtractParams) (*event.Event, int) {
	dateRange := lines[i]
	artist, venue := "", ""
	if i+1 < len(lines) {
		artist = lines[i+1]
	}
	if i+2 < len(lines) {
		venue = lines[i+2]
	}

	// Collect the window, stopping at the shows line inclusive
	var window []string
	j := i + 3
	for j < len(lines) && j < i+blockWindow {
		window = append(window, lines[j])
		if IsShowsLine(lines[j]) {
			break
		}
		j++
	}

	var showsLine string
	for _, ln := range window {
		if IsShowsLine(ln) {
			showsLine = ln
			break
		}
	}
	if showsLine == "" {
		return nil, 0
	}
	shows := ParseInt(showsLine)
	if shows == nil {
		return nil, 0
	}

	evt := event.Event{
		Region:    region,
		DateRange: dateRange,
		Artist:    artist,
		Venue:     venue,
		Shows:     *shows,
		SourceURL: p.SourceURL,
		ScrapedAt: p.ScrapedAt,
	}

	grossLine := firstMatch(window, IsGrossLine)
	evt.GrossUSD = ParseMoney(grossLine)

	location := strings.TrimSpace(strings.ReplaceAll(firstMatch(window, IsLocationLine), " TBA", ""))
	if comma := strings.Index(location, ","); comma >= 0 {
		evt.City = strings.TrimSpace(location[:comma])
		evt.Country = strings.TrimSpace(location[comma+1:])
	} else {
		evt.City = location
	}

	ticketsLine := selectTicketsLine(window, grossLine)
	evt.Tickets = ParseInt(ticketsLine)
	evt.CapacityPct = ParseCapacityPct(ticketsLine)

	evt.Finalize()
	return &evt, j + 1
}

// selectTicketsLine picks the ticket-count line from the window by fixed
// priority: a parenthesized-percentage line is the most reliable signal, a
// bare "TBA" is an explicit absence marker, and the generic
// thousands-grouped integer fallback is noisiest and must never collide
// with the gross line.
func selectTicketsLine(window []string, grossLine string) string {
	if ln := firstMatch(window, func(s string) bool {
		return strings.Contains(s, "%") && strings.Contains(s, "(") && !strings.Contains(s, "$")
	}); ln != "" {
		return ln
	}

	if ln := firstMatch(window, func(s string) bool {
		return isTBA(s) && !strings.Contains(s, "$")
	}); ln != "" {
		return ln
	}

	return firstMatch(window, func(s string) bool {
		return !strings.Contains(s, "$") && groupedInt.MatchString(s) && s != grossLine
	})
}

func firstMatch(lines []string, pred func(string) bool) string {
	for _, ln := range lines {
		if pred(ln) {
			return ln
		}
	}
	return ""
}
