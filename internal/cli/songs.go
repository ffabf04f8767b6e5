package cli

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/pfrederiksen/tourboard/internal/setlist"
)

var (
	flagSongsFormat string
	flagSongsSave   bool
)

func newSongsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "songs",
		Short: "Scrape the songs-played table for the tour",
		RunE:  runSongs,
	}
	cmd.Flags().StringVar(&flagSongsFormat, "format", "text", "Output format: text or json")
	cmd.Flags().BoolVar(&flagSongsSave, "save", false, "Also record the table in the database")
	return cmd
}

func runSongs(cmd *cobra.Command, args []string) error {
	format, err := parseFormat(flagSongsFormat)
	if err != nil {
		return err
	}
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	sc := setlist.New(cfg.SetlistURL, cfg.UserAgent)
	songs, err := sc.FetchSongs(cmd.Context())
	if err != nil {
		return fmt.Errorf("fetching songs: %w", err)
	}

	if flagSongsSave {
		store, err := openStore(cfg)
		if err != nil {
			return err
		}
		titles := make([]string, len(songs))
		plays := make([]int, len(songs))
		for i, s := range songs {
			titles[i] = s.Title
			plays[i] = s.Plays
		}
		if err := store.AppendSongs(titles, plays, time.Now().UTC()); err != nil {
			return err
		}
	}

	return WriteSongs(os.Stdout, songs, format)
}
