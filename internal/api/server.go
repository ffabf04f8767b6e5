// Package api serves the persisted tour dataset over HTTP.
package api

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/pfrederiksen/tourboard/internal/exporter"
	"github.com/pfrederiksen/tourboard/internal/filter"
	"github.com/pfrederiksen/tourboard/internal/rollup"
	"github.com/pfrederiksen/tourboard/internal/storage"
)

type Server struct {
	Store    *storage.Store
	Exporter *exporter.Exporter
	Log      *zap.Logger
}

func (s *Server) Router() *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())
	r.GET("/api/events/latest", s.latestEvents)
	r.GET("/api/snapshots", s.snapshots)
	r.GET("/api/rollup", s.countryRollup)
	r.GET("/healthz", s.health)
	r.GET("/metrics", s.metrics)
	return r
}

// latestEvents returns the most recent batch, optionally filtered by
// ?region=&country=&artist=&min_gross=&upcoming=true query parameters.
func (s *Server) latestEvents(c *gin.Context) {
	events, err := s.Store.LatestEvents()
	if err != nil {
		s.Log.Error("loading latest events", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	f := filter.Filter{
		Country: c.Query("country"),
		Artist:  c.Query("artist"),
	}
	if region := c.Query("region"); region != "" {
		f.Regions = []string{region}
	}
	if v := c.Query("min_gross"); v != "" {
		min, err := strconv.ParseFloat(v, 64)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid min_gross: " + v})
			return
		}
		f.MinGrossUSD = min
	}
	if v, _ := strconv.ParseBool(c.Query("upcoming")); v {
		f.UpcomingOnly = true
	}
	events = f.Apply(events)

	c.JSON(http.StatusOK, gin.H{"count": len(events), "data": events})
}

func (s *Server) snapshots(c *gin.Context) {
	snaps, err := s.Store.Snapshots()
	if err != nil {
		s.Log.Error("loading snapshots", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"count": len(snaps), "data": snaps})
}

func (s *Server) countryRollup(c *gin.Context) {
	events, err := s.Store.LatestEvents()
	if err != nil {
		s.Log.Error("loading latest events", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": rollup.ByCountry(events)})
}

func (s *Server) health(c *gin.Context) {
	c.String(http.StatusOK, "ok")
}

// metrics refreshes the exporter gauges from storage and serves them.
func (s *Server) metrics(c *gin.Context) {
	events, err := s.Store.LatestEvents()
	if err == nil {
		snaps, serr := s.Store.Snapshots()
		if serr == nil && len(snaps) > 0 {
			s.Exporter.Update(&snaps[len(snaps)-1], events)
		} else {
			s.Exporter.Update(nil, events)
		}
	} else {
		s.Log.Warn("refreshing metrics from storage", zap.Error(err))
	}
	gin.WrapH(s.Exporter.Handler())(c)
}
