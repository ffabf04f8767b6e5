package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/pfrederiksen/tourboard/internal/calendar"
	"github.com/pfrederiksen/tourboard/internal/filter"
)

var (
	flagEventsFormat string
	flagRegions      []string
	flagCountry      string
	flagArtist       string
	flagMinGross     float64
	flagUpcoming     bool
	flagICSPath      string
)

func newEventsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "events",
		Short: "Print the latest recorded tour stops",
		RunE:  runEvents,
	}
	cmd.Flags().StringVar(&flagEventsFormat, "format", "text", "Output format: text or json")
	cmd.Flags().StringSliceVar(&flagRegions, "region", nil, "Only stops in these regions")
	cmd.Flags().StringVar(&flagCountry, "country", "", "Only stops whose country contains this text")
	cmd.Flags().StringVar(&flagArtist, "artist", "", "Only stops whose artist contains this text")
	cmd.Flags().Float64Var(&flagMinGross, "min-gross", 0, "Only stops with at least this reported gross")
	cmd.Flags().BoolVar(&flagUpcoming, "upcoming", false, "Only stops that have not started yet")
	cmd.Flags().StringVar(&flagICSPath, "ics", "", "Also write an iCalendar file to this path")
	return cmd
}

func runEvents(cmd *cobra.Command, args []string) error {
	format, err := parseFormat(flagEventsFormat)
	if err != nil {
		return err
	}
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	store, err := openStore(cfg)
	if err != nil {
		return err
	}

	events, err := store.LatestEvents()
	if err != nil {
		return err
	}

	f := filter.Filter{
		Regions:      flagRegions,
		Country:      flagCountry,
		Artist:       flagArtist,
		MinGrossUSD:  flagMinGross,
		UpcomingOnly: flagUpcoming,
	}
	events = f.Apply(events)

	if err := WriteEvents(os.Stdout, events, format); err != nil {
		return fmt.Errorf("writing output: %w", err)
	}

	if flagICSPath != "" {
		ics := calendar.GenerateTourICS(events)
		if err := os.WriteFile(flagICSPath, []byte(ics), 0o644); err != nil {
			return fmt.Errorf("writing calendar: %w", err)
		}
		fmt.Fprintf(os.Stderr, "Wrote %d stops to %s\n", len(events), flagICSPath)
	}

	return nil
}
