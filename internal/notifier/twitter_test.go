package notifier

import (
	"strings"
	"testing"

	"github.com/pfrederiksen/tourboard/internal/event"
)

func TestFormatTweet(t *testing.T) {
	gross := 8_850_797.0
	evt := &event.Event{
		Artist:    "Bad Bunny",
		Venue:     "Estadio GNP Seguros",
		City:      "Mexico City",
		Country:   "Mexico",
		DateRange: "December 5-6, 2025",
		GrossUSD:  &gross,
	}

	tweet := formatTweet(evt)

	for _, want := range []string{
		"New tour stop listed!",
		"Estadio GNP Seguros — Mexico City, Mexico",
		"December 5-6, 2025",
		"$8,850,797 reported",
		"#BadBunny",
	} {
		if !strings.Contains(tweet, want) {
			t.Errorf("tweet missing %q:\n%s", want, tweet)
		}
	}
}

func TestFormatTweetOmitsMissingFields(t *testing.T) {
	evt := &event.Event{
		Artist: "Bad Bunny",
		Venue:  "Coliseo de Puerto Rico",
		City:   "San Juan",
	}

	tweet := formatTweet(evt)

	if strings.Contains(tweet, "📅") {
		t.Errorf("tweet should omit date line when date range is empty:\n%s", tweet)
	}
	if strings.Contains(tweet, "💰") {
		t.Errorf("tweet should omit gross line when gross is unknown:\n%s", tweet)
	}
	if !strings.Contains(tweet, "Coliseo de Puerto Rico — San Juan") {
		t.Errorf("tweet missing venue line:\n%s", tweet)
	}
}

func TestHashtag(t *testing.T) {
	tests := []struct {
		artist string
		want   string
	}{
		{"Bad Bunny", "BadBunny"},
		{"Rosalía", "Rosalía"},
		{"", "OnTour"},
	}

	for _, tt := range tests {
		if got := hashtag(tt.artist); got != tt.want {
			t.Errorf("hashtag(%q) = %q, want %q", tt.artist, got, tt.want)
		}
	}
}
