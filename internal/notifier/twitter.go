package notifier

import (
	"fmt"
	"os"
	"time"

	"github.com/dghubble/go-twitter/twitter" //nolint:staticcheck // Using stable v1.1 API
	"github.com/dghubble/oauth1"

	"github.com/pfrederiksen/tourboard/internal/event"
	"github.com/pfrederiksen/tourboard/internal/rollup"
)

// TwitterNotifier posts new tour stops to Twitter
type TwitterNotifier struct {
	client *twitter.Client
}

// NewTwitterNotifier creates a new Twitter notifier using environment variables
// Required environment variables:
// - TWITTER_API_KEY
// - TWITTER_API_SECRET
// - TWITTER_ACCESS_TOKEN
// - TWITTER_ACCESS_SECRET
func NewTwitterNotifier() (*TwitterNotifier, error) {
	apiKey := os.Getenv("TWITTER_API_KEY")
	apiSecret := os.Getenv("TWITTER_API_SECRET")
	accessToken := os.Getenv("TWITTER_ACCESS_TOKEN")
	accessSecret := os.Getenv("TWITTER_ACCESS_SECRET")

	if apiKey == "" || apiSecret == "" || accessToken == "" || accessSecret == "" {
		return nil, fmt.Errorf("missing required Twitter credentials in environment variables")
	}

	config := oauth1.NewConfig(apiKey, apiSecret)
	token := oauth1.NewToken(accessToken, accessSecret)
	httpClient := config.Client(oauth1.NoContext, token)
	client := twitter.NewClient(httpClient)

	return &TwitterNotifier{client: client}, nil
}

// Notify posts one tweet per new stop
func (n *TwitterNotifier) Notify(events []event.Event) error {
	for i, evt := range events {
		tweet := formatTweet(&evt)

		_, _, err := n.client.Statuses.Update(tweet, nil)
		if err != nil {
			return fmt.Errorf("failed to post tweet for stop %s: %w", evt.ID, err)
		}

		// Rate limiting: wait between tweets
		if i < len(events)-1 {
			time.Sleep(2 * time.Second)
		}
	}

	return nil
}

// formatTweet formats a tour stop as a tweet
func formatTweet(evt *event.Event) string {
	tweet := "🎤 New tour stop listed!\n\n"
	tweet += fmt.Sprintf("📍 %s — %s\n", evt.Venue, evt.Location())

	if evt.DateRange != "" {
		tweet += fmt.Sprintf("📅 %s\n", evt.DateRange)
	}

	if evt.GrossUSD != nil {
		tweet += fmt.Sprintf("💰 %s reported\n", rollup.FormatMoney(evt.GrossUSD))
	}

	tweet += fmt.Sprintf("\n#%s", hashtag(evt.Artist))

	// Twitter limit is 280 characters
	if len(tweet) > 280 {
		// Truncate and add ellipsis
		tweet = tweet[:277] + "..."
	}

	return tweet
}

// hashtag strips spaces from the artist name for a hashtag
func hashtag(artist string) string {
	tag := ""
	for _, r := range artist {
		if r != ' ' {
			tag += string(r)
		}
	}
	if tag == "" {
		return "OnTour"
	}
	return tag
}
