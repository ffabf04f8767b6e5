package event

import (
	"crypto/sha1"
	"fmt"
	"strings"
	"time"
)

// Event represents one reported or upcoming tour stop as scraped from the
// box-office page. Numeric fields are pointers because "not yet reported"
// (TBA, missing line) is distinct from a reported zero.
type Event struct {
	ID          string    `json:"id"`
	StableKey   string    `json:"stable_key"` // Stable identifier based on region/artist/venue
	Region      string    `json:"region"`
	DateRange   string    `json:"date_range"`
	StartDate   time.Time `json:"start_date,omitempty"`
	EndDate     time.Time `json:"end_date,omitempty"`
	Artist      string    `json:"artist"`
	Venue       string    `json:"venue"`
	City        string    `json:"city,omitempty"`
	Country     string    `json:"country,omitempty"`
	GrossUSD    *float64  `json:"gross_usd"`
	Tickets     *int      `json:"tickets"`
	CapacityPct *float64  `json:"capacity_pct"`
	Shows       int       `json:"shows"`
	SourceURL   string    `json:"source_url"`
	ScrapedAt   time.Time `json:"scraped_at"`
}

// Snapshot is one document-wide rollup captured at scrape time, distinct
// from the per-stop records.
type Snapshot struct {
	ScrapedAt          time.Time `json:"scraped_at"`
	SourceURL          string    `json:"source_url"`
	ReportedRevenueUSD *float64  `json:"reported_revenue_usd"`
	ReportedTickets    *int      `json:"reported_tickets"`
	AvgRevenueUSD      *float64  `json:"avg_revenue_usd"`
	AvgTickets         *int      `json:"avg_tickets"`
	AvgPriceUSD        *float64  `json:"avg_price_usd"`
	TotalReportsText   string    `json:"total_reports_text,omitempty"`
}

// GenerateID creates a deterministic ID for a tour stop based on the fields
// that identify it within one scrape of the page
func GenerateID(region, dateRange, artist, venue string) string {
	h := sha1.New()
	h.Write([]byte(region + "|" + dateRange + "|" + artist + "|" + venue))
	return fmt.Sprintf("%x", h.Sum(nil))
}

// GenerateStableKey creates a stable identifier for a stop that survives
// date changes, so a rescheduled stop is not reported as a new one
func GenerateStableKey(region, artist, venue string) string {
	normalized := strings.ToLower(strings.TrimSpace(artist)) + "|" + strings.ToLower(strings.TrimSpace(venue))

	h := sha1.New()
	h.Write([]byte(region + "|" + normalized))
	return fmt.Sprintf("%x", h.Sum(nil))
}

// Finalize populates the derived fields (ID, StableKey, StartDate, EndDate)
// from the raw scraped fields. Called once by the extractor before the
// event is handed out; events are immutable afterwards.
func (e *Event) Finalize() {
	e.ID = GenerateID(e.Region, e.DateRange, e.Artist, e.Venue)
	e.StableKey = GenerateStableKey(e.Region, e.Artist, e.Venue)
	e.StartDate, e.EndDate = ParseDateRange(e.DateRange)
}

// HasGross reports whether the stop has reported gross revenue
func (e *Event) HasGross() bool {
	return e.GrossUSD != nil
}

// IsUpcoming checks if the stop's start date is in the future.
// Returns true if the date range cannot be parsed (safer default).
func (e *Event) IsUpcoming() bool {
	if e.StartDate.IsZero() {
		return true // Can't determine, include it
	}
	return e.StartDate.After(time.Now())
}

// Location renders "City, Country" with whichever parts are known
func (e *Event) Location() string {
	switch {
	case e.City != "" && e.Country != "":
		return e.City + ", " + e.Country
	case e.City != "":
		return e.City
	default:
		return e.Country
	}
}
