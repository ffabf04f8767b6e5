package storage

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
	gormlogger "gorm.io/gorm/logger"

	"github.com/pfrederiksen/tourboard/internal/event"
)

// Store handles durable persistence of events, snapshots, songs, and the
// geocode cache.
type Store struct {
	db *gorm.DB
}

// eventRow is the persisted shape of an event. Rows are append-only and a
// stop appears once per scrape batch.
type eventRow struct {
	RowID       uint      `gorm:"primaryKey;autoIncrement"`
	EventID     string    `gorm:"index"`
	StableKey   string    `gorm:"index"`
	Region      string
	DateRange   string
	StartDate   *time.Time
	EndDate     *time.Time
	Artist      string
	Venue       string
	City        string
	Country     string
	GrossUSD    *float64
	Tickets     *int
	CapacityPct *float64
	Shows       int
	SourceURL   string
	ScrapedAt   time.Time `gorm:"index"`
}

func (eventRow) TableName() string { return "events" }

type snapshotRow struct {
	RowID              uint      `gorm:"primaryKey;autoIncrement"`
	ScrapedAt          time.Time `gorm:"index"`
	SourceURL          string
	ReportedRevenueUSD *float64
	ReportedTickets    *int
	AvgRevenueUSD      *float64
	AvgTickets         *int
	AvgPriceUSD        *float64
	TotalReportsText   string
}

func (snapshotRow) TableName() string { return "snapshots" }

// GeocacheEntry maps a normalized "city|country" key to coordinates.
// Inserted on first lookup miss, replaced wholesale on key collision.
type GeocacheEntry struct {
	Key       string `gorm:"primaryKey"`
	City      string
	Country   string
	Lat       float64
	Lon       float64
	Provider  string
	UpdatedAt time.Time
}

func (GeocacheEntry) TableName() string { return "geocache" }

// SongRow is one row of the songs-played table, appended per scrape batch.
type SongRow struct {
	RowID     uint   `gorm:"primaryKey;autoIncrement"`
	Title     string `gorm:"index"`
	Plays     int
	ScrapedAt time.Time `gorm:"index"`
}

func (SongRow) TableName() string { return "songs_played" }

// Open connects to the database and runs additive migrations. A non-empty
// dsn selects PostgreSQL; otherwise path names a local SQLite file whose
// parent directory is created as needed.
func Open(path, dsn string) (*Store, error) {
	var dialector gorm.Dialector
	if dsn != "" {
		dialector = postgres.Open(dsn)
	} else {
		if strings.HasPrefix(path, "~/") {
			home, err := os.UserHomeDir()
			if err != nil {
				return nil, fmt.Errorf("getting home directory: %w", err)
			}
			path = filepath.Join(home, path[2:])
		}
		if dir := filepath.Dir(path); dir != "." && !strings.HasPrefix(path, "file:") {
			if err := os.MkdirAll(dir, 0755); err != nil {
				return nil, fmt.Errorf("creating data directory: %w", err)
			}
		}
		dialector = sqlite.Open(path)
	}

	db, err := gorm.Open(dialector, &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}

	if err := db.AutoMigrate(&eventRow{}, &snapshotRow{}, &GeocacheEntry{}, &SongRow{}); err != nil {
		return nil, fmt.Errorf("migrating schema: %w", err)
	}

	return &Store{db: db}, nil
}

// AppendEvents appends one scrape batch of events. Never updates existing
// rows.
func (s *Store) AppendEvents(events []event.Event) error {
	if len(events) == 0 {
		return nil
	}
	rows := make([]eventRow, 0, len(events))
	for _, evt := range events {
		rows = append(rows, toEventRow(evt))
	}
	if err := s.db.Create(&rows).Error; err != nil {
		return fmt.Errorf("appending events: %w", err)
	}
	return nil
}

// InsertSnapshot appends one document-wide snapshot.
func (s *Store) InsertSnapshot(snap event.Snapshot) error {
	row := snapshotRow{
		ScrapedAt:          snap.ScrapedAt,
		SourceURL:          snap.SourceURL,
		ReportedRevenueUSD: snap.ReportedRevenueUSD,
		ReportedTickets:    snap.ReportedTickets,
		AvgRevenueUSD:      snap.AvgRevenueUSD,
		AvgTickets:         snap.AvgTickets,
		AvgPriceUSD:        snap.AvgPriceUSD,
		TotalReportsText:   snap.TotalReportsText,
	}
	if err := s.db.Create(&row).Error; err != nil {
		return fmt.Errorf("inserting snapshot: %w", err)
	}
	return nil
}

// LatestEvents returns the most recent scrape batch in insertion order.
func (s *Store) LatestEvents() ([]event.Event, error) {
	var rows []eventRow
	sub := s.db.Model(&eventRow{}).Select("MAX(scraped_at)")
	if err := s.db.Where("scraped_at = (?)", sub).Order("row_id").Find(&rows).Error; err != nil {
		return nil, fmt.Errorf("querying latest events: %w", err)
	}
	events := make([]event.Event, 0, len(rows))
	for _, row := range rows {
		events = append(events, fromEventRow(row))
	}
	return events, nil
}

// PreviousEvents returns the batch immediately before the latest one, or
// an empty slice when only one batch exists. Used for new-stop diffing.
func (s *Store) PreviousEvents() ([]event.Event, error) {
	var stamps []time.Time
	err := s.db.Model(&eventRow{}).
		Distinct("scraped_at").
		Order("scraped_at DESC").
		Limit(2).
		Pluck("scraped_at", &stamps).Error
	if err != nil {
		return nil, fmt.Errorf("querying batch timestamps: %w", err)
	}
	if len(stamps) < 2 {
		return []event.Event{}, nil
	}

	var rows []eventRow
	if err := s.db.Where("scraped_at = ?", stamps[1]).Order("row_id").Find(&rows).Error; err != nil {
		return nil, fmt.Errorf("querying previous events: %w", err)
	}
	events := make([]event.Event, 0, len(rows))
	for _, row := range rows {
		events = append(events, fromEventRow(row))
	}
	return events, nil
}

// Snapshots returns all snapshots in scrape order.
func (s *Store) Snapshots() ([]event.Snapshot, error) {
	var rows []snapshotRow
	if err := s.db.Order("scraped_at ASC").Find(&rows).Error; err != nil {
		return nil, fmt.Errorf("querying snapshots: %w", err)
	}
	snaps := make([]event.Snapshot, 0, len(rows))
	for _, row := range rows {
		snaps = append(snaps, event.Snapshot{
			ScrapedAt:          row.ScrapedAt,
			SourceURL:          row.SourceURL,
			ReportedRevenueUSD: row.ReportedRevenueUSD,
			ReportedTickets:    row.ReportedTickets,
			AvgRevenueUSD:      row.AvgRevenueUSD,
			AvgTickets:         row.AvgTickets,
			AvgPriceUSD:        row.AvgPriceUSD,
			TotalReportsText:   row.TotalReportsText,
		})
	}
	return snaps, nil
}

// GeocacheGet looks up a cached geocode result. Returns nil on miss.
func (s *Store) GeocacheGet(key string) (*GeocacheEntry, error) {
	var entry GeocacheEntry
	err := s.db.Where("key = ?", key).First(&entry).Error
	if err == gorm.ErrRecordNotFound {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("querying geocache: %w", err)
	}
	return &entry, nil
}

// GeocacheSet inserts or replaces a geocode cache entry. Idempotent.
func (s *Store) GeocacheSet(entry GeocacheEntry) error {
	entry.UpdatedAt = time.Now().UTC()
	err := s.db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "key"}},
		UpdateAll: true,
	}).Create(&entry).Error
	if err != nil {
		return fmt.Errorf("upserting geocache entry: %w", err)
	}
	return nil
}

// AppendSongs appends one batch of songs-played rows.
func (s *Store) AppendSongs(titles []string, plays []int, scrapedAt time.Time) error {
	if len(titles) != len(plays) {
		return fmt.Errorf("mismatched songs input: %d titles, %d play counts", len(titles), len(plays))
	}
	if len(titles) == 0 {
		return nil
	}
	rows := make([]SongRow, 0, len(titles))
	for i, title := range titles {
		rows = append(rows, SongRow{Title: title, Plays: plays[i], ScrapedAt: scrapedAt})
	}
	if err := s.db.Create(&rows).Error; err != nil {
		return fmt.Errorf("appending songs: %w", err)
	}
	return nil
}

func toEventRow(evt event.Event) eventRow {
	row := eventRow{
		EventID:     evt.ID,
		StableKey:   evt.StableKey,
		Region:      evt.Region,
		DateRange:   evt.DateRange,
		Artist:      evt.Artist,
		Venue:       evt.Venue,
		City:        evt.City,
		Country:     evt.Country,
		GrossUSD:    evt.GrossUSD,
		Tickets:     evt.Tickets,
		CapacityPct: evt.CapacityPct,
		Shows:       evt.Shows,
		SourceURL:   evt.SourceURL,
		ScrapedAt:   evt.ScrapedAt,
	}
	if !evt.StartDate.IsZero() {
		start := evt.StartDate
		row.StartDate = &start
	}
	if !evt.EndDate.IsZero() {
		end := evt.EndDate
		row.EndDate = &end
	}
	return row
}

func fromEventRow(row eventRow) event.Event {
	evt := event.Event{
		ID:          row.EventID,
		StableKey:   row.StableKey,
		Region:      row.Region,
		DateRange:   row.DateRange,
		Artist:      row.Artist,
		Venue:       row.Venue,
		City:        row.City,
		Country:     row.Country,
		GrossUSD:    row.GrossUSD,
		Tickets:     row.Tickets,
		CapacityPct: row.CapacityPct,
		Shows:       row.Shows,
		SourceURL:   row.SourceURL,
		ScrapedAt:   row.ScrapedAt,
	}
	if row.StartDate != nil {
		evt.StartDate = *row.StartDate
	}
	if row.EndDate != nil {
		evt.EndDate = *row.EndDate
	}
	return evt
}
