// Package filter provides tour-stop filtering for the CLI.
//
// Filters narrow a batch of events by region, country or artist substring,
// minimum reported gross, or upcoming-only. An empty filter matches
// everything.
package filter

import (
	"strings"

	"github.com/pfrederiksen/tourboard/internal/event"
)

// Filter represents stop filtering criteria. Zero values mean "no
// constraint".
type Filter struct {
	Regions      []string `json:"regions,omitempty"`
	Country      string   `json:"country,omitempty"` // substring, case-insensitive
	Artist       string   `json:"artist,omitempty"`  // substring, case-insensitive
	MinGrossUSD  float64  `json:"min_gross_usd,omitempty"`
	UpcomingOnly bool     `json:"upcoming_only,omitempty"`
}

// NewFilter creates an empty filter that matches all stops
func NewFilter() *Filter {
	return &Filter{}
}

// IsEmpty returns true if no criteria are set
func (f *Filter) IsEmpty() bool {
	return len(f.Regions) == 0 && f.Country == "" && f.Artist == "" &&
		f.MinGrossUSD == 0 && !f.UpcomingOnly
}

// Apply filters a batch of stops, preserving order
func (f *Filter) Apply(events []event.Event) []event.Event {
	if f.IsEmpty() {
		return events
	}

	filtered := make([]event.Event, 0, len(events))
	for _, evt := range events {
		if f.Matches(&evt) {
			filtered = append(filtered, evt)
		}
	}
	return filtered
}

// Matches checks if a stop passes all criteria
func (f *Filter) Matches(evt *event.Event) bool {
	if len(f.Regions) > 0 && !f.matchesRegion(evt.Region) {
		return false
	}

	if f.Country != "" && !strings.Contains(strings.ToLower(evt.Country), strings.ToLower(f.Country)) {
		return false
	}

	if f.Artist != "" && !strings.Contains(strings.ToLower(evt.Artist), strings.ToLower(f.Artist)) {
		return false
	}

	if f.MinGrossUSD > 0 {
		if evt.GrossUSD == nil || *evt.GrossUSD < f.MinGrossUSD {
			return false
		}
	}

	if f.UpcomingOnly && !evt.IsUpcoming() {
		return false
	}

	return true
}

func (f *Filter) matchesRegion(region string) bool {
	for _, r := range f.Regions {
		if strings.EqualFold(r, region) {
			return true
		}
	}
	return false
}
