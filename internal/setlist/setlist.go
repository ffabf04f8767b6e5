// Package setlist scrapes the songs-played statistics table for a tour
// from setlist.fm.
//
// The stats page renders one table with a song per row: title in the first
// cell, performance count in the last. Titles carry UI artifacts
// ("Play Video", "stats") that are stripped before the row is kept.
package setlist

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"regexp"
	"sort"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
)

const (
	DefaultStatsURL = "https://www.setlist.fm/stats/bad-bunny-43cfdb63.html?tour=4bdd83ba"
	Timeout         = 30 * time.Second
)

// Song is one row of the songs-played table.
type Song struct {
	Title string `json:"title"`
	Plays int    `json:"plays"`
}

// Scraper fetches and parses the setlist.fm stats table.
type Scraper struct {
	client    *http.Client
	url       string
	userAgent string
}

// New creates a setlist stats scraper. An empty url uses DefaultStatsURL.
func New(url, userAgent string) *Scraper {
	if url == "" {
		url = DefaultStatsURL
	}
	return &Scraper{
		client:    &http.Client{Timeout: Timeout},
		url:       url,
		userAgent: userAgent,
	}
}

// FetchSongs fetches the stats page and parses the songs table, sorted by
// play count descending. Zero parsed songs is an error: it means the page
// structure changed.
func (s *Scraper) FetchSongs(ctx context.Context) ([]Song, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, s.url, nil)
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("User-Agent", s.userAgent)

	resp, err := s.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetching stats page: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("unexpected status code: %d", resp.StatusCode)
	}

	return ParseSongs(resp.Body)
}

var (
	playVideoArtifact = regexp.MustCompile(`\bPlay Video\b`)
	statsArtifact     = regexp.MustCompile(`\bstats\b`)
	spaceRun          = regexp.MustCompile(`\s{2,}`)
	digitsOnly        = regexp.MustCompile(`[^\d]`)
)

// ParseSongs extracts the songs table from stats-page HTML.
func ParseSongs(r io.Reader) ([]Song, error) {
	doc, err := goquery.NewDocumentFromReader(r)
	if err != nil {
		return nil, fmt.Errorf("parsing HTML: %w", err)
	}

	table := doc.Find("table").First()
	if table.Length() == 0 {
		return nil, fmt.Errorf("no table found on stats page; page structure may have changed")
	}

	songs := make([]Song, 0)
	table.Find("tr").Each(func(i int, row *goquery.Selection) {
		if i == 0 {
			return // header row
		}
		cells := row.Find("td")
		if cells.Length() < 2 {
			return
		}

		title := cleanTitle(cells.First().Text())
		plays, ok := parsePlays(cells.Last().Text())
		if title == "" || !ok {
			return
		}
		songs = append(songs, Song{Title: title, Plays: plays})
	})

	if len(songs) == 0 {
		return nil, fmt.Errorf("parsed 0 songs; page structure may have changed")
	}

	// The page lists songs by play count already, but don't rely on it
	sort.SliceStable(songs, func(i, j int) bool {
		return songs[i].Plays > songs[j].Plays
	})

	return songs, nil
}

func cleanTitle(s string) string {
	s = playVideoArtifact.ReplaceAllString(s, "")
	s = statsArtifact.ReplaceAllString(s, "")
	s = spaceRun.ReplaceAllString(s, " ")
	return strings.TrimSpace(s)
}

func parsePlays(s string) (int, bool) {
	digits := digitsOnly.ReplaceAllString(s, "")
	if digits == "" {
		return 0, false
	}
	var n int
	fmt.Sscanf(digits, "%d", &n)
	return n, true
}
