package api

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/pfrederiksen/tourboard/internal/event"
	"github.com/pfrederiksen/tourboard/internal/exporter"
	"github.com/pfrederiksen/tourboard/internal/storage"
)

func newTestServer(t *testing.T) (*Server, *storage.Store) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	store, err := storage.Open(":memory:", "")
	if err != nil {
		t.Fatalf("opening store: %v", err)
	}
	return &Server{
		Store:    store,
		Exporter: exporter.New(),
		Log:      zap.NewNop(),
	}, store
}

func seedBatch(t *testing.T, store *storage.Store, scrapedAt time.Time) {
	t.Helper()
	gross := 8_850_797.0
	tickets := 64_175
	events := []event.Event{
		{
			Region: "Latin America", DateRange: "December 5-6, 2025",
			Artist: "Bad Bunny", Venue: "Estadio GNP Seguros",
			City: "Mexico City", Country: "Mexico",
			GrossUSD: &gross, Tickets: &tickets, Shows: 2,
			ScrapedAt: scrapedAt,
		},
		{
			Region: "Europe", DateRange: "July 11-12, 2026",
			Artist: "Bad Bunny", Venue: "Estadi Olímpic",
			City: "Barcelona", Country: "Spain",
			Shows: 2, ScrapedAt: scrapedAt,
		},
	}
	for i := range events {
		events[i].Finalize()
	}
	if err := store.AppendEvents(events); err != nil {
		t.Fatalf("seeding events: %v", err)
	}
	if err := store.InsertSnapshot(event.Snapshot{
		ScrapedAt:          scrapedAt,
		ReportedRevenueUSD: &gross,
	}); err != nil {
		t.Fatalf("seeding snapshot: %v", err)
	}
}

func get(t *testing.T, r *gin.Engine, path string) *httptest.ResponseRecorder {
	t.Helper()
	w := httptest.NewRecorder()
	req, _ := http.NewRequest(http.MethodGet, path, nil)
	r.ServeHTTP(w, req)
	return w
}

func TestLatestEventsEndpoint(t *testing.T) {
	srv, store := newTestServer(t)
	seedBatch(t, store, time.Date(2025, 11, 1, 12, 0, 0, 0, time.UTC))
	r := srv.Router()

	w := get(t, r, "/api/events/latest")
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, body: %s", w.Code, w.Body.String())
	}

	var resp struct {
		Count int           `json:"count"`
		Data  []event.Event `json:"data"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decoding response: %v", err)
	}
	if resp.Count != 2 {
		t.Errorf("count = %d, want 2", resp.Count)
	}
	if resp.Data[0].Venue != "Estadio GNP Seguros" {
		t.Errorf("first venue = %q", resp.Data[0].Venue)
	}
}

func TestLatestEventsFilterQuery(t *testing.T) {
	srv, store := newTestServer(t)
	seedBatch(t, store, time.Date(2025, 11, 1, 12, 0, 0, 0, time.UTC))
	r := srv.Router()

	w := get(t, r, "/api/events/latest?region=Europe")
	var resp struct {
		Count int           `json:"count"`
		Data  []event.Event `json:"data"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatal(err)
	}
	if resp.Count != 1 || resp.Data[0].Region != "Europe" {
		t.Errorf("region filter returned %d events: %+v", resp.Count, resp.Data)
	}

	if w := get(t, r, "/api/events/latest?min_gross=nope"); w.Code != http.StatusBadRequest {
		t.Errorf("bad min_gross status = %d, want 400", w.Code)
	}
}

func TestSnapshotsAndRollupEndpoints(t *testing.T) {
	srv, store := newTestServer(t)
	seedBatch(t, store, time.Date(2025, 11, 1, 12, 0, 0, 0, time.UTC))
	r := srv.Router()

	w := get(t, r, "/api/snapshots")
	if w.Code != http.StatusOK || !strings.Contains(w.Body.String(), `"count":1`) {
		t.Errorf("snapshots: status %d body %s", w.Code, w.Body.String())
	}

	w = get(t, r, "/api/rollup")
	if w.Code != http.StatusOK || !strings.Contains(w.Body.String(), "Mexico") {
		t.Errorf("rollup: status %d body %s", w.Code, w.Body.String())
	}
}

func TestHealthAndMetricsEndpoints(t *testing.T) {
	srv, store := newTestServer(t)
	seedBatch(t, store, time.Date(2025, 11, 1, 12, 0, 0, 0, time.UTC))
	r := srv.Router()

	if w := get(t, r, "/healthz"); w.Code != http.StatusOK || w.Body.String() != "ok" {
		t.Errorf("healthz: status %d body %q", w.Code, w.Body.String())
	}

	w := get(t, r, "/metrics")
	if w.Code != http.StatusOK {
		t.Fatalf("metrics status = %d", w.Code)
	}
	if !strings.Contains(w.Body.String(), "tourboard_reported_revenue_usd") {
		t.Error("metrics output missing revenue gauge")
	}
	if !strings.Contains(w.Body.String(), `tourboard_region_events{region="Latin America"} 1`) {
		t.Error("metrics output missing region gauge refreshed from storage")
	}
}
