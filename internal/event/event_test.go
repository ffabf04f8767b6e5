package event

import (
	"testing"
)

func TestGenerateID(t *testing.T) {
	id1 := GenerateID("Latin America", "November 21-22, 2025", "Bad Bunny", "Coliseo de Puerto Rico")
	id2 := GenerateID("Latin America", "November 21-22, 2025", "Bad Bunny", "Coliseo de Puerto Rico")

	if id1 != id2 {
		t.Errorf("GenerateID is not deterministic: %s != %s", id1, id2)
	}

	id3 := GenerateID("Europe", "November 21-22, 2025", "Bad Bunny", "Coliseo de Puerto Rico")
	if id1 == id3 {
		t.Error("different regions should produce different IDs")
	}
}

func TestGenerateStableKey(t *testing.T) {
	key1 := GenerateStableKey("Europe", "Bad Bunny", "Wembley Stadium")
	key2 := GenerateStableKey("Europe", "bad bunny", "  Wembley Stadium ")

	if key1 != key2 {
		t.Error("stable key should normalize case and whitespace")
	}

	// A date change must not change the stable key; that is the point of it.
	e1 := Event{Region: "Europe", DateRange: "June 1-2, 2026", Artist: "Bad Bunny", Venue: "Wembley Stadium"}
	e2 := Event{Region: "Europe", DateRange: "June 3-4, 2026", Artist: "Bad Bunny", Venue: "Wembley Stadium"}
	e1.Finalize()
	e2.Finalize()

	if e1.StableKey != e2.StableKey {
		t.Error("rescheduled stop should keep its stable key")
	}
	if e1.ID == e2.ID {
		t.Error("rescheduled stop should get a new ID")
	}
}

func TestFinalize(t *testing.T) {
	e := Event{
		Region:    "Latin America",
		DateRange: "November 21-22, 2025",
		Artist:    "Bad Bunny",
		Venue:     "Coliseo de Puerto Rico",
	}
	e.Finalize()

	if e.ID == "" || e.StableKey == "" {
		t.Error("Finalize should populate ID and StableKey")
	}
	if e.StartDate.IsZero() || e.EndDate.IsZero() {
		t.Error("Finalize should derive start/end dates from a parsable range")
	}
	if got := e.StartDate.Day(); got != 21 {
		t.Errorf("start day = %d, want 21", got)
	}
}

func TestFinalizeUnparsableDate(t *testing.T) {
	e := Event{Region: "Europe", DateRange: "TBA", Artist: "Bad Bunny", Venue: "Somewhere"}
	e.Finalize()

	if !e.StartDate.IsZero() || !e.EndDate.IsZero() {
		t.Error("unparsable date range should leave zero start/end dates")
	}
	if e.ID == "" {
		t.Error("ID should be populated even without parsable dates")
	}
}

func TestLocation(t *testing.T) {
	tests := []struct {
		name    string
		city    string
		country string
		want    string
	}{
		{"both", "San Juan", "Puerto Rico", "San Juan, Puerto Rico"},
		{"city only", "San Juan", "", "San Juan"},
		{"country only", "", "Puerto Rico", "Puerto Rico"},
		{"neither", "", "", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e := Event{City: tt.city, Country: tt.country}
			if got := e.Location(); got != tt.want {
				t.Errorf("Location() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestIsUpcoming(t *testing.T) {
	future := Event{DateRange: "November 21-22, 2099"}
	future.Finalize()
	if !future.IsUpcoming() {
		t.Error("stop in 2099 should be upcoming")
	}

	past := Event{DateRange: "November 21-22, 2020"}
	past.Finalize()
	if past.IsUpcoming() {
		t.Error("stop in 2020 should not be upcoming")
	}

	unknown := Event{DateRange: "not a date"}
	unknown.Finalize()
	if !unknown.IsUpcoming() {
		t.Error("unparsable date should default to upcoming")
	}
}

func TestHasGross(t *testing.T) {
	gross := 15000000.0
	with := Event{GrossUSD: &gross}
	without := Event{}

	if !with.HasGross() {
		t.Error("event with gross should report HasGross")
	}
	if without.HasGross() {
		t.Error("event without gross should not report HasGross")
	}
}
