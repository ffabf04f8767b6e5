package calendar

import (
	"strings"
	"testing"

	"github.com/pfrederiksen/tourboard/internal/event"
)

func testStop() event.Event {
	e := event.Event{
		Region:    "Latin America",
		DateRange: "November 21-22, 2025",
		Artist:    "Bad Bunny",
		Venue:     "Coliseo de Puerto Rico",
		City:      "San Juan",
		Country:   "Puerto Rico",
		Shows:     2,
		SourceURL: "https://test.example.com/tour",
	}
	e.Finalize()
	return e
}

func TestGenerateICS(t *testing.T) {
	evt := testStop()
	ics := GenerateICS(&evt)

	requiredFields := []string{
		"BEGIN:VCALENDAR",
		"VERSION:2.0",
		"PRODID:-//Tourboard//tourboard//EN",
		"BEGIN:VEVENT",
		"UID:" + evt.ID + "@tourboard",
		"DTSTAMP:",
		"DTSTART;VALUE=DATE:20251121",
		"DTEND;VALUE=DATE:20251123", // exclusive end: day after the last show
		"SUMMARY:Bad Bunny - Coliseo de Puerto Rico",
		"DESCRIPTION:",
		"LOCATION:Coliseo de Puerto Rico\\, San Juan\\, Puerto Rico",
		"URL:https://test.example.com/tour",
		"STATUS:CONFIRMED",
		"END:VEVENT",
		"END:VCALENDAR",
	}

	for _, field := range requiredFields {
		if !strings.Contains(ics, field) {
			t.Errorf("ICS missing required field: %s", field)
		}
	}

	if !strings.Contains(ics, "\r\n") {
		t.Error("ICS should use \\r\\n line endings")
	}
}

func TestGenerateICSUnparsableDate(t *testing.T) {
	evt := testStop()
	evt.DateRange = "TBA"
	evt.Finalize()

	ics := GenerateICS(&evt)
	if !strings.Contains(ics, "DTSTART;VALUE=DATE:") {
		t.Error("unparsable date should still produce a DTSTART")
	}
}

func TestGenerateTourICS(t *testing.T) {
	first := testStop()
	second := testStop()
	second.Venue = "Estadio GNP Seguros"
	second.City = "Mexico City"
	second.Country = "Mexico"
	second.Finalize()

	ics := GenerateTourICS([]event.Event{first, second})

	if got := strings.Count(ics, "BEGIN:VEVENT"); got != 2 {
		t.Errorf("expected 2 VEVENT blocks, got %d", got)
	}
	if got := strings.Count(ics, "BEGIN:VCALENDAR"); got != 1 {
		t.Errorf("expected 1 VCALENDAR, got %d", got)
	}
}
