// Package calendar generates iCalendar (.ics) files for tour stops, so a
// stop (or the whole tour) can be added to a personal calendar.
package calendar

import (
	"fmt"
	"strings"
	"time"

	"github.com/pfrederiksen/tourboard/internal/event"
)

// GenerateICS generates an iCalendar file containing a single tour stop
func GenerateICS(evt *event.Event) string {
	var ics strings.Builder

	writeCalendarHeader(&ics)
	writeStop(&ics, evt, time.Now().UTC())
	ics.WriteString("END:VCALENDAR\r\n")

	return ics.String()
}

// GenerateTourICS generates one iCalendar file covering a list of stops
func GenerateTourICS(events []event.Event) string {
	var ics strings.Builder

	writeCalendarHeader(&ics)
	stamp := time.Now().UTC()
	for i := range events {
		writeStop(&ics, &events[i], stamp)
	}
	ics.WriteString("END:VCALENDAR\r\n")

	return ics.String()
}

func writeCalendarHeader(ics *strings.Builder) {
	ics.WriteString("BEGIN:VCALENDAR\r\n")
	ics.WriteString("VERSION:2.0\r\n")
	ics.WriteString("PRODID:-//Tourboard//tourboard//EN\r\n")
	ics.WriteString("CALSCALE:GREGORIAN\r\n")
	ics.WriteString("METHOD:PUBLISH\r\n")
}

func writeStop(ics *strings.Builder, evt *event.Event, stamp time.Time) {
	ics.WriteString("BEGIN:VEVENT\r\n")

	// UID - unique identifier for the stop
	ics.WriteString(fmt.Sprintf("UID:%s@tourboard\r\n", evt.ID))

	// DTSTAMP - timestamp when this calendar entry was created
	ics.WriteString(fmt.Sprintf("DTSTAMP:%s\r\n", formatICSTime(stamp)))

	// All-day span from start date through end date. DTEND is exclusive
	// per RFC 5545, so it is the day after the last show.
	start, end := evt.StartDate, evt.EndDate
	if start.IsZero() {
		// Unparsable date range: place it a week out rather than dropping it
		start = time.Now().UTC().AddDate(0, 0, 7)
		end = start
	}
	ics.WriteString(fmt.Sprintf("DTSTART;VALUE=DATE:%s\r\n", formatICSDate(start)))
	ics.WriteString(fmt.Sprintf("DTEND;VALUE=DATE:%s\r\n", formatICSDate(end.AddDate(0, 0, 1))))

	// SUMMARY - artist and venue
	summary := evt.Artist
	if evt.Venue != "" {
		summary = fmt.Sprintf("%s - %s", evt.Artist, evt.Venue)
	}
	ics.WriteString(fmt.Sprintf("SUMMARY:%s\r\n", escapeICS(summary)))

	// DESCRIPTION - stop details
	description := fmt.Sprintf("%s\n%d show(s)", evt.DateRange, evt.Shows)
	if loc := evt.Location(); loc != "" {
		description = fmt.Sprintf("%s\n%s", description, loc)
	}
	ics.WriteString(fmt.Sprintf("DESCRIPTION:%s\r\n", escapeICS(description)))

	// LOCATION - venue and city/country
	location := evt.Venue
	if loc := evt.Location(); loc != "" {
		location = fmt.Sprintf("%s, %s", evt.Venue, loc)
	}
	ics.WriteString(fmt.Sprintf("LOCATION:%s\r\n", escapeICS(location)))

	if evt.SourceURL != "" {
		ics.WriteString(fmt.Sprintf("URL:%s\r\n", evt.SourceURL))
	}

	ics.WriteString("STATUS:CONFIRMED\r\n")
	ics.WriteString("SEQUENCE:0\r\n")
	ics.WriteString("TRANSP:OPAQUE\r\n")
	ics.WriteString("END:VEVENT\r\n")
}

// formatICSTime formats a time.Time as an iCalendar datetime string
func formatICSTime(t time.Time) string {
	return t.UTC().Format("20060102T150405Z")
}

// formatICSDate formats a time.Time as an iCalendar all-day date string
func formatICSDate(t time.Time) string {
	return t.UTC().Format("20060102")
}

// escapeICS escapes special characters for iCalendar format
func escapeICS(s string) string {
	// Replace special characters according to RFC 5545
	s = strings.ReplaceAll(s, "\\", "\\\\")
	s = strings.ReplaceAll(s, ",", "\\,")
	s = strings.ReplaceAll(s, ";", "\\;")
	s = strings.ReplaceAll(s, "\n", "\\n")
	return s
}
