// Package geocode resolves "city, country" locations to coordinates for
// mapping, cache-first through the durable geocache table.
//
// The upstream service is a Nominatim-style endpoint with a usage policy:
// a fixed pause is inserted after every cache-miss lookup, so callers must
// serialize Locate calls. Service failures and timeouts come back as a nil
// point, never as an error into the extraction pipeline.
package geocode

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/pfrederiksen/tourboard/internal/storage"
)

const (
	DefaultBaseURL = "https://nominatim.openstreetmap.org"
	DefaultPause   = 1 * time.Second
	provider       = "nominatim"

	requestTimeout = 10 * time.Second
)

// Point is a geographic coordinate pair.
type Point struct {
	Lat float64 `json:"lat"`
	Lon float64 `json:"lon"`
}

// Cache is the durable lookup the geocoder reads through. Satisfied by
// *storage.Store.
type Cache interface {
	GeocacheGet(key string) (*storage.GeocacheEntry, error)
	GeocacheSet(entry storage.GeocacheEntry) error
}

// Geocoder is a cache-first client for a Nominatim-style geocoding API.
type Geocoder struct {
	client    *http.Client
	baseURL   string
	userAgent string
	cache     Cache
	pause     time.Duration
	log       *zap.Logger
}

// Option configures a Geocoder.
type Option func(*Geocoder)

// WithBaseURL overrides the geocoding endpoint (used by tests).
func WithBaseURL(baseURL string) Option {
	return func(g *Geocoder) {
		if baseURL != "" {
			g.baseURL = baseURL
		}
	}
}

// WithPause overrides the delay after cache-miss lookups.
func WithPause(pause time.Duration) Option {
	return func(g *Geocoder) { g.pause = pause }
}

// New creates a Geocoder backed by the given cache.
func New(cache Cache, userAgent string, log *zap.Logger, opts ...Option) *Geocoder {
	g := &Geocoder{
		client:    &http.Client{Timeout: requestTimeout},
		baseURL:   DefaultBaseURL,
		userAgent: userAgent,
		cache:     cache,
		pause:     DefaultPause,
		log:       log,
	}
	for _, opt := range opts {
		opt(g)
	}
	if g.log == nil {
		g.log = zap.NewNop()
	}
	return g
}

// CacheKey normalizes a city/country pair into the geocache key.
func CacheKey(city, country string) string {
	return strings.ToLower(strings.TrimSpace(city)) + "|" + strings.ToLower(strings.TrimSpace(country))
}

// Locate returns coordinates for a city/country pair, consulting the cache
// first. Returns nil (with no error) when the location is unknown to the
// service or the service is unavailable; errors are reserved for cache
// failures.
func (g *Geocoder) Locate(ctx context.Context, city, country string) (*Point, error) {
	if city == "" || country == "" {
		return nil, nil
	}

	key := CacheKey(city, country)
	cached, err := g.cache.GeocacheGet(key)
	if err != nil {
		return nil, fmt.Errorf("reading geocache: %w", err)
	}
	if cached != nil {
		return &Point{Lat: cached.Lat, Lon: cached.Lon}, nil
	}

	point := g.lookup(ctx, city, country)
	// Usage policy of the free service: pause after every remote lookup
	g.sleep(ctx)
	if point == nil {
		return nil, nil
	}

	err = g.cache.GeocacheSet(storage.GeocacheEntry{
		Key:      key,
		City:     city,
		Country:  country,
		Lat:      point.Lat,
		Lon:      point.Lon,
		Provider: provider,
	})
	if err != nil {
		return nil, fmt.Errorf("writing geocache: %w", err)
	}
	return point, nil
}

// lookup queries the remote service. All failures degrade to nil.
func (g *Geocoder) lookup(ctx context.Context, city, country string) *Point {
	params := url.Values{}
	params.Set("q", city+", "+country)
	params.Set("format", "json")
	params.Set("limit", "1")

	reqURL := fmt.Sprintf("%s/search?%s", g.baseURL, params.Encode())
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return nil
	}
	req.Header.Set("User-Agent", g.userAgent)

	resp, err := g.client.Do(req)
	if err != nil {
		g.log.Warn("geocode lookup failed", zap.String("city", city), zap.Error(err))
		return nil
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		g.log.Warn("geocode lookup rejected",
			zap.String("city", city), zap.Int("status", resp.StatusCode))
		return nil
	}

	// Nominatim encodes coordinates as strings
	var results []struct {
		Lat string `json:"lat"`
		Lon string `json:"lon"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&results); err != nil {
		g.log.Warn("geocode response malformed", zap.Error(err))
		return nil
	}
	if len(results) == 0 {
		return nil
	}

	lat, errLat := strconv.ParseFloat(results[0].Lat, 64)
	lon, errLon := strconv.ParseFloat(results[0].Lon, 64)
	if errLat != nil || errLon != nil {
		return nil
	}
	return &Point{Lat: lat, Lon: lon}
}

func (g *Geocoder) sleep(ctx context.Context) {
	if g.pause <= 0 {
		return
	}
	select {
	case <-time.After(g.pause):
	case <-ctx.Done():
	}
}
