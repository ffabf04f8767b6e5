package cli

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"github.com/pfrederiksen/tourboard/internal/event"
	"github.com/pfrederiksen/tourboard/internal/rollup"
)

func TestWriteEventsText(t *testing.T) {
	gross := 8_850_797.0
	events := []event.Event{
		{
			Region: "Latin America", DateRange: "December 5-6, 2025",
			Artist: "Bad Bunny", Venue: "Estadio GNP Seguros",
			City: "Mexico City", Country: "Mexico",
			GrossUSD: &gross, Shows: 2,
		},
		{
			Region: "Europe", DateRange: "July 11-12, 2026",
			Artist: "Bad Bunny", Venue: "Estadi Olímpic",
			City: "Barcelona", Country: "Spain", Shows: 2,
		},
	}

	var buf bytes.Buffer
	if err := WriteEvents(&buf, events, FormatText); err != nil {
		t.Fatalf("WriteEvents: %v", err)
	}

	out := buf.String()
	for _, want := range []string{
		"REGION", "Estadio GNP Seguros", "Mexico City, Mexico",
		"$8,850,797", "Estadi Olímpic", rollup.Missing,
	} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q:\n%s", want, out)
		}
	}
}

func TestWriteEventsTextEmpty(t *testing.T) {
	var buf bytes.Buffer
	if err := WriteEvents(&buf, nil, FormatText); err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(buf.String(), "No events found.") {
		t.Errorf("unexpected empty output: %q", buf.String())
	}
}

func TestWriteEventsJSON(t *testing.T) {
	events := []event.Event{{Region: "Europe", Venue: "Wembley Stadium"}}

	var buf bytes.Buffer
	if err := WriteEvents(&buf, events, FormatJSON); err != nil {
		t.Fatal(err)
	}

	var decoded []event.Event
	if err := json.Unmarshal(buf.Bytes(), &decoded); err != nil {
		t.Fatalf("output is not valid JSON: %v", err)
	}
	if len(decoded) != 1 || decoded[0].Venue != "Wembley Stadium" {
		t.Errorf("decoded = %+v", decoded)
	}
}

func TestWriteCountryStatsText(t *testing.T) {
	gross := 50_000_000.0
	tickets := 250_000
	price := 200.0
	stats := []rollup.CountryStat{
		{Country: "Mexico", GrossUSD: &gross, Tickets: &tickets, Shows: 9, Runs: 3, AvgPriceUSD: &price},
		{Country: "", Shows: 1, Runs: 1},
	}

	var buf bytes.Buffer
	if err := WriteCountryStats(&buf, stats, FormatText); err != nil {
		t.Fatal(err)
	}

	out := buf.String()
	for _, want := range []string{"Mexico", "$50,000,000", "250,000", "$200.00", "(unknown)"} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q:\n%s", want, out)
		}
	}
}

func TestParseFormat(t *testing.T) {
	if _, err := parseFormat("yaml"); err == nil {
		t.Error("expected error for unknown format")
	}
	if f, err := parseFormat("json"); err != nil || f != FormatJSON {
		t.Errorf("parseFormat(json) = %v, %v", f, err)
	}
}
