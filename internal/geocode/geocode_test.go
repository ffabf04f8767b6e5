package geocode

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"go.uber.org/zap"

	"github.com/pfrederiksen/tourboard/internal/storage"
)

// memCache is an in-memory Cache for tests.
type memCache struct {
	entries map[string]storage.GeocacheEntry
}

func newMemCache() *memCache {
	return &memCache{entries: make(map[string]storage.GeocacheEntry)}
}

func (c *memCache) GeocacheGet(key string) (*storage.GeocacheEntry, error) {
	if entry, ok := c.entries[key]; ok {
		return &entry, nil
	}
	return nil, nil
}

func (c *memCache) GeocacheSet(entry storage.GeocacheEntry) error {
	c.entries[entry.Key] = entry
	return nil
}

func TestCacheKey(t *testing.T) {
	if got := CacheKey(" San Juan ", "Puerto Rico"); got != "san juan|puerto rico" {
		t.Errorf("CacheKey = %q", got)
	}
}

func TestLocate(t *testing.T) {
	var calls int
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls++
		if got := r.URL.Query().Get("q"); got != "San Juan, Puerto Rico" {
			t.Errorf("query = %q", got)
		}
		w.Write([]byte(`[{"lat":"18.4663","lon":"-66.1057"}]`))
	}))
	defer ts.Close()

	cache := newMemCache()
	g := New(cache, "tourboard-test/1.0", zap.NewNop(), WithBaseURL(ts.URL), WithPause(0))

	point, err := g.Locate(context.Background(), "San Juan", "Puerto Rico")
	if err != nil {
		t.Fatalf("Locate: %v", err)
	}
	if point == nil {
		t.Fatal("expected a point")
	}
	if point.Lat != 18.4663 || point.Lon != -66.1057 {
		t.Errorf("point = (%v, %v)", point.Lat, point.Lon)
	}

	// Second lookup must come from the cache, not the service
	point, err = g.Locate(context.Background(), "San Juan", "Puerto Rico")
	if err != nil {
		t.Fatalf("Locate (cached): %v", err)
	}
	if point == nil || point.Lat != 18.4663 {
		t.Errorf("cached point = %v", point)
	}
	if calls != 1 {
		t.Errorf("service called %d times, want 1", calls)
	}

	entry := cache.entries["san juan|puerto rico"]
	if entry.Provider != "nominatim" {
		t.Errorf("cached provider = %q", entry.Provider)
	}
}

func TestLocateNoResult(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`[]`))
	}))
	defer ts.Close()

	g := New(newMemCache(), "tourboard-test/1.0", zap.NewNop(), WithBaseURL(ts.URL), WithPause(0))

	point, err := g.Locate(context.Background(), "Nowhere", "Atlantis")
	if err != nil {
		t.Fatalf("Locate: %v", err)
	}
	if point != nil {
		t.Errorf("expected nil point, got %v", point)
	}
}

func TestLocateServiceErrorDegradesToNil(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTooManyRequests)
	}))
	defer ts.Close()

	g := New(newMemCache(), "tourboard-test/1.0", zap.NewNop(), WithBaseURL(ts.URL), WithPause(0))

	point, err := g.Locate(context.Background(), "San Juan", "Puerto Rico")
	if err != nil {
		t.Fatalf("service failure must not surface as error, got %v", err)
	}
	if point != nil {
		t.Errorf("expected nil point on service failure")
	}
}

func TestLocateMissingParts(t *testing.T) {
	g := New(newMemCache(), "tourboard-test/1.0", zap.NewNop(), WithPause(0))

	point, err := g.Locate(context.Background(), "", "Puerto Rico")
	if err != nil || point != nil {
		t.Errorf("empty city should yield (nil, nil), got (%v, %v)", point, err)
	}
	point, err = g.Locate(context.Background(), "San Juan", "")
	if err != nil || point != nil {
		t.Errorf("empty country should yield (nil, nil), got (%v, %v)", point, err)
	}
}
