// Package config loads tourboard configuration from YAML, .env files,
// and environment variable overrides.
package config

import (
	"fmt"
	"os"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"

	"github.com/pfrederiksen/tourboard/internal/geocode"
	"github.com/pfrederiksen/tourboard/internal/scraper"
	"github.com/pfrederiksen/tourboard/internal/setlist"
)

type Config struct {
	SourceURL    string        `yaml:"source_url"`
	SetlistURL   string        `yaml:"setlist_url"`
	UserAgent    string        `yaml:"user_agent"`
	Regions      []string      `yaml:"regions"`
	DBPath       string        `yaml:"db_path"`
	DBDSN        string        `yaml:"db_dsn"`
	ListenAddr   string        `yaml:"listen_addr"`
	GeocodeURL   string        `yaml:"geocode_url"`
	GeocodePause time.Duration `yaml:"geocode_pause"`
}

// Load reads configuration from an optional YAML file, applies defaults,
// and then environment variable overrides. A .env file in the working
// directory is loaded first if present.
func Load(path string) (*Config, error) {
	godotenv.Load()

	var c Config
	if path != "" {
		b, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("read config: %w", err)
		}
		if err := yaml.Unmarshal(b, &c); err != nil {
			return nil, fmt.Errorf("parse yaml: %w", err)
		}
	}

	// Defaults
	if c.SourceURL == "" {
		c.SourceURL = scraper.DefaultSourceURL
	}
	if c.SetlistURL == "" {
		c.SetlistURL = setlist.DefaultStatsURL
	}
	if c.UserAgent == "" {
		c.UserAgent = scraper.UserAgent
	}
	if len(c.Regions) == 0 {
		c.Regions = scraper.DefaultRegions
	}
	if c.DBPath == "" {
		c.DBPath = "~/.local/share/tourboard/tourboard.db"
	}
	if c.ListenAddr == "" {
		c.ListenAddr = ":8080"
	}
	if c.GeocodeURL == "" {
		c.GeocodeURL = geocode.DefaultBaseURL
	}
	if c.GeocodePause == 0 {
		c.GeocodePause = geocode.DefaultPause
	}

	// Environment overrides
	c.SourceURL = getEnv("TOURBOARD_SOURCE_URL", c.SourceURL)
	c.SetlistURL = getEnv("TOURBOARD_SETLIST_URL", c.SetlistURL)
	c.UserAgent = getEnv("TOURBOARD_USER_AGENT", c.UserAgent)
	c.DBPath = getEnv("TOURBOARD_DB_PATH", c.DBPath)
	c.DBDSN = getEnv("TOURBOARD_DB_DSN", c.DBDSN)
	c.ListenAddr = getEnv("TOURBOARD_LISTEN_ADDR", c.ListenAddr)
	c.GeocodeURL = getEnv("TOURBOARD_GEOCODE_URL", c.GeocodeURL)
	c.GeocodePause = getEnvDuration("TOURBOARD_GEOCODE_PAUSE", c.GeocodePause)

	return &c, nil
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvDuration(key string, defaultValue time.Duration) time.Duration {
	d, err := time.ParseDuration(os.Getenv(key))
	if err != nil {
		return defaultValue
	}
	return d
}
