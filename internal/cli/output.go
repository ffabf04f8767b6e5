package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/pfrederiksen/tourboard/internal/event"
	"github.com/pfrederiksen/tourboard/internal/rollup"
	"github.com/pfrederiksen/tourboard/internal/setlist"
)

// OutputFormat specifies the output format
type OutputFormat string

const (
	FormatText OutputFormat = "text"
	FormatJSON OutputFormat = "json"
)

func parseFormat(s string) (OutputFormat, error) {
	f := OutputFormat(s)
	if f != FormatText && f != FormatJSON {
		return "", fmt.Errorf("invalid format: %s (must be 'text' or 'json')", s)
	}
	return f, nil
}

func writeJSON(w io.Writer, v any) error {
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(v)
}

// WriteEvents writes a batch of tour stops in the specified format
func WriteEvents(w io.Writer, events []event.Event, format OutputFormat) error {
	if format == FormatJSON {
		return writeJSON(w, events)
	}

	if len(events) == 0 {
		fmt.Fprintln(w, "No events found.")
		return nil
	}

	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "REGION\tDATES\tVENUE\tLOCATION\tGROSS\tTICKETS\tSHOWS")
	for _, evt := range events {
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\t%s\t%d\n",
			evt.Region,
			evt.DateRange,
			evt.Venue,
			evt.Location(),
			rollup.FormatMoney(evt.GrossUSD),
			rollup.FormatInt(evt.Tickets),
			evt.Shows,
		)
	}
	return tw.Flush()
}

// WriteSnapshots writes snapshot history in the specified format
func WriteSnapshots(w io.Writer, snaps []event.Snapshot, format OutputFormat) error {
	if format == FormatJSON {
		return writeJSON(w, snaps)
	}

	if len(snaps) == 0 {
		fmt.Fprintln(w, "No snapshots recorded.")
		return nil
	}

	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "SCRAPED\tREVENUE\tTICKETS\tAVG PRICE\tREPORTS")
	for _, snap := range snaps {
		reports := snap.TotalReportsText
		if reports == "" {
			reports = rollup.Missing
		}
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\n",
			snap.ScrapedAt.Format("2006-01-02 15:04"),
			rollup.FormatMoney(snap.ReportedRevenueUSD),
			rollup.FormatInt(snap.ReportedTickets),
			rollup.FormatPrice(snap.AvgPriceUSD),
			reports,
		)
	}
	return tw.Flush()
}

// WriteCountryStats writes the country rollup in the specified format
func WriteCountryStats(w io.Writer, stats []rollup.CountryStat, format OutputFormat) error {
	if format == FormatJSON {
		return writeJSON(w, stats)
	}

	if len(stats) == 0 {
		fmt.Fprintln(w, "No events to roll up.")
		return nil
	}

	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "COUNTRY\tGROSS\tTICKETS\tSHOWS\tRUNS\tAVG PRICE")
	for _, st := range stats {
		country := st.Country
		if country == "" {
			country = "(unknown)"
		}
		fmt.Fprintf(tw, "%s\t%s\t%s\t%d\t%d\t%s\n",
			country,
			rollup.FormatMoney(st.GrossUSD),
			rollup.FormatInt(st.Tickets),
			st.Shows,
			st.Runs,
			rollup.FormatPrice(st.AvgPriceUSD),
		)
	}
	return tw.Flush()
}

// WriteSongs writes the songs-played table in the specified format
func WriteSongs(w io.Writer, songs []setlist.Song, format OutputFormat) error {
	if format == FormatJSON {
		return writeJSON(w, songs)
	}

	if len(songs) == 0 {
		fmt.Fprintln(w, "No songs found.")
		return nil
	}

	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "SONG\tPLAYS")
	for _, s := range songs {
		fmt.Fprintf(tw, "%s\t%d\n", s.Title, s.Plays)
	}
	return tw.Flush()
}
