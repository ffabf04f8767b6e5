package scraper

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/cenkalti/backoff/v4"
	"go.uber.org/zap"

	"github.com/pfrederiksen/tourboard/internal/event"
)

const (
	// DefaultSourceURL is the touring-data page the pipeline was built for
	DefaultSourceURL = "https://touringdata.org/2025/06/19/bad-bunny-debi-tirar-mas-fotos-tour/"
	UserAgent        = "tourboard/1.0 (github.com/pfrederiksen/tourboard)"
	Timeout          = 25 * time.Second

	maxFetchRetries = 3
)

// Scraper fetches the box-office page and runs both extraction passes
// over its flattened line stream.
type Scraper struct {
	client    *http.Client
	url       string
	userAgent string
	regions   []string
	log       *zap.Logger
}

// Result is one scrape run: the document-wide snapshot plus the tour stops
// in document encounter order.
type Result struct {
	Snapshot event.Snapshot
	Events   []event.Event
	Lines    int
}

// Option configures a Scraper.
type Option func(*Scraper)

// WithURL overrides the source page URL.
func WithURL(url string) Option {
	return func(s *Scraper) {
		if url != "" {
			s.url = url
		}
	}
}

// WithUserAgent overrides the User-Agent header.
func WithUserAgent(ua string) Option {
	return func(s *Scraper) {
		if ua != "" {
			s.userAgent = ua
		}
	}
}

// WithRegions overrides the closed region-header set.
func WithRegions(regions []string) Option {
	return func(s *Scraper) {
		if len(regions) > 0 {
			s.regions = regions
		}
	}
}

// WithHTTPClient overrides the HTTP client (used by tests).
func WithHTTPClient(client *http.Client) Option {
	return func(s *Scraper) { s.client = client }
}

// New creates a new Scraper instance.
func New(log *zap.Logger, opts ...Option) *Scraper {
	s := &Scraper{
		client:    &http.Client{Timeout: Timeout},
		url:       DefaultSourceURL,
		userAgent: UserAgent,
		regions:   DefaultRegions,
		log:       log,
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.log == nil {
		s.log = zap.NewNop()
	}
	return s
}

// URL returns the source page URL the scraper is pointed at.
func (s *Scraper) URL() string {
	return s.url
}

// Scrape fetches the page and runs both extraction passes. A document that
// yields zero events is not an error here; callers that persist results
// must treat it as fatal so a transient page change cannot erase history.
func (s *Scraper) Scrape(ctx context.Context) (*Result, error) {
	html, err := s.fetch(ctx)
	if err != nil {
		return nil, err
	}
	return s.parse(strings.NewReader(html), s.url, time.Now().UTC().Truncate(time.Second))
}

// parse runs both extraction passes over one document. Split from Scrape
// so tests can feed fixture HTML without a network.
func (s *Scraper) parse(r io.Reader, sourceURL string, scrapedAt time.Time) (*Result, error) {
	lines, err := FlattenHTML(r)
	if err != nil {
		return nil, err
	}

	snap := ExtractSummary(lines, sourceURL, scrapedAt)
	events := ExtractEvents(lines, ExtractParams{
		Regions:   s.regions,
		SourceURL: sourceURL,
		ScrapedAt: scrapedAt,
	})

	s.log.Info("scrape parsed",
		zap.Int("lines", len(lines)),
		zap.Int("events", len(events)),
		zap.String("url", sourceURL))

	return &Result{Snapshot: snap, Events: events, Lines: len(lines)}, nil
}

// fetch retrieves the raw page with exponential-backoff retry. Retrying is
// the fetch collaborator's job; the extractor itself never retries.
func (s *Scraper) fetch(ctx context.Context) (string, error) {
	var body string

	operation := func() error {
		req, err := http.NewRequestWithContext(ctx, http.MethodGet, s.url, nil)
		if err != nil {
			return backoff.Permanent(fmt.Errorf("creating request: %w", err))
		}
		req.Header.Set("User-Agent", s.userAgent)

		resp, err := s.client.Do(req)
		if err != nil {
			return fmt.Errorf("fetching page: %w", err)
		}
		defer resp.Body.Close()

		if resp.StatusCode != http.StatusOK {
			err := fmt.Errorf("unexpected status code: %d", resp.StatusCode)
			if resp.StatusCode >= 400 && resp.StatusCode < 500 {
				return backoff.Permanent(err)
			}
			return err
		}

		data, err := io.ReadAll(resp.Body)
		if err != nil {
			return fmt.Errorf("reading body: %w", err)
		}
		body = string(data)
		return nil
	}

	policy := backoff.WithContext(
		backoff.WithMaxRetries(backoff.NewExponentialBackOff(), maxFetchRetries), ctx)

	if err := backoff.Retry(operation, policy); err != nil {
		return "", err
	}
	return body, nil
}
