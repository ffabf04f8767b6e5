package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/pfrederiksen/tourboard/internal/event"
	"github.com/pfrederiksen/tourboard/internal/geocode"
	"github.com/pfrederiksen/tourboard/internal/notifier"
	"github.com/pfrederiksen/tourboard/internal/scraper"
)

var (
	flagGeocode bool
	flagNotify  bool
	flagDryRun  bool
)

func newUpdateCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "update",
		Short: "Scrape the source page and append a new batch",
		RunE:  runUpdate,
	}
	cmd.Flags().BoolVar(&flagGeocode, "geocode", false, "Warm the geocode cache for scraped locations")
	cmd.Flags().BoolVar(&flagNotify, "notify", false, "Tweet newly listed stops")
	cmd.Flags().BoolVar(&flagDryRun, "dry-run", false, "Print notifications instead of posting")
	return cmd
}

func runUpdate(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	log, err := newLog()
	if err != nil {
		return err
	}
	defer log.Sync()

	store, err := openStore(cfg)
	if err != nil {
		return err
	}

	sc := scraper.New(log,
		scraper.WithURL(cfg.SourceURL),
		scraper.WithUserAgent(cfg.UserAgent),
		scraper.WithRegions(cfg.Regions),
	)
	res, err := sc.Scrape(cmd.Context())
	if err != nil {
		return fmt.Errorf("scraping %s: %w", cfg.SourceURL, err)
	}

	// An empty parse means the page layout changed or the fetch was
	// served a placeholder. Never persist it over real history.
	if len(res.Events) == 0 {
		fmt.Fprintln(os.Stderr, "No events parsed from the page; refusing to record an empty batch.")
		os.Exit(ExitNoEvents)
	}

	previous, err := store.LatestEvents()
	if err != nil {
		return fmt.Errorf("loading previous batch: %w", err)
	}

	if err := store.AppendEvents(res.Events); err != nil {
		return err
	}
	if err := store.InsertSnapshot(res.Snapshot); err != nil {
		return err
	}
	log.Info("batch persisted",
		zap.Int("events", len(res.Events)),
		zap.Time("scraped_at", res.Snapshot.ScrapedAt))

	if flagGeocode {
		geo := geocode.New(store, cfg.UserAgent, log,
			geocode.WithBaseURL(cfg.GeocodeURL),
			geocode.WithPause(cfg.GeocodePause),
		)
		for _, evt := range res.Events {
			if _, err := geo.Locate(cmd.Context(), evt.City, evt.Country); err != nil {
				return fmt.Errorf("geocoding %s: %w", evt.Location(), err)
			}
		}
	}

	diff := event.Diff(previous, res.Events)
	fmt.Printf("Recorded %d stops (%d new).\n", len(res.Events), len(diff.NewStops))

	if flagNotify && len(diff.NewStops) > 0 {
		var n notifier.Notifier
		if flagDryRun {
			n = notifier.NewDryRunNotifier()
		} else {
			n, err = notifier.NewTwitterNotifier()
			if err != nil {
				return err
			}
		}
		if err := n.Notify(diff.NewStops); err != nil {
			return fmt.Errorf("notifying: %w", err)
		}
	}

	return nil
}
