// Package exporter exposes the latest persisted scrape as Prometheus metrics.
package exporter

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/pfrederiksen/tourboard/internal/event"
)

// Exporter holds the tourboard gauges. Metrics reflect the most recent
// call to Update, not a live scrape.
type Exporter struct {
	registry *prometheus.Registry

	reportedRevenue prometheus.Gauge
	reportedTickets prometheus.Gauge
	avgPrice        prometheus.Gauge
	regionEvents    *prometheus.GaugeVec
	regionShows     *prometheus.GaugeVec
	lastScrapeTS    prometheus.Gauge
}

// New creates an exporter with its own registry so repeated construction
// never collides on metric registration.
func New() *Exporter {
	e := &Exporter{
		registry: prometheus.NewRegistry(),
	}

	e.reportedRevenue = prometheus.NewGauge(prometheus.GaugeOpts{
		Namespace: "tourboard",
		Name:      "reported_revenue_usd",
		Help:      "Total reported box office revenue in USD",
	})
	e.reportedTickets = prometheus.NewGauge(prometheus.GaugeOpts{
		Namespace: "tourboard",
		Name:      "reported_tickets_sold",
		Help:      "Total reported tickets sold",
	})
	e.avgPrice = prometheus.NewGauge(prometheus.GaugeOpts{
		Namespace: "tourboard",
		Name:      "average_price_usd",
		Help:      "Average ticket price in USD",
	})
	e.regionEvents = prometheus.NewGaugeVec(prometheus.GaugeOpts{
		Namespace: "tourboard",
		Name:      "region_events",
		Help:      "Number of tour stops per region in the latest scrape",
	}, []string{"region"})
	e.regionShows = prometheus.NewGaugeVec(prometheus.GaugeOpts{
		Namespace: "tourboard",
		Name:      "region_shows",
		Help:      "Number of shows per region in the latest scrape",
	}, []string{"region"})
	e.lastScrapeTS = prometheus.NewGauge(prometheus.GaugeOpts{
		Namespace: "tourboard",
		Name:      "last_scrape_timestamp_seconds",
		Help:      "Unix timestamp of the latest persisted scrape",
	})

	e.registry.MustRegister(
		e.reportedRevenue, e.reportedTickets, e.avgPrice,
		e.regionEvents, e.regionShows, e.lastScrapeTS,
	)

	return e
}

// Update refreshes all gauges from a snapshot and its event batch.
func (e *Exporter) Update(snap *event.Snapshot, events []event.Event) {
	if snap != nil {
		if snap.ReportedRevenueUSD != nil {
			e.reportedRevenue.Set(*snap.ReportedRevenueUSD)
		}
		if snap.ReportedTickets != nil {
			e.reportedTickets.Set(float64(*snap.ReportedTickets))
		}
		if snap.AvgPriceUSD != nil {
			e.avgPrice.Set(*snap.AvgPriceUSD)
		}
		if !snap.ScrapedAt.IsZero() {
			e.lastScrapeTS.Set(float64(snap.ScrapedAt.Unix()))
		}
	}

	e.regionEvents.Reset()
	e.regionShows.Reset()
	for _, evt := range events {
		e.regionEvents.WithLabelValues(evt.Region).Inc()
		e.regionShows.WithLabelValues(evt.Region).Add(float64(evt.Shows))
	}
}

// Handler serves the /metrics endpoint for this exporter's registry.
func (e *Exporter) Handler() http.Handler {
	return promhttp.HandlerFor(e.registry, promhttp.HandlerOpts{})
}
