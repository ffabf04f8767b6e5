package cli

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/pfrederiksen/tourboard/internal/rollup"
)

var flagRollupFormat string

func newRollupCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "rollup",
		Short: "Print country totals for the latest batch",
		RunE:  runRollup,
	}
	cmd.Flags().StringVar(&flagRollupFormat, "format", "text", "Output format: text or json")
	return cmd
}

func runRollup(cmd *cobra.Command, args []string) error {
	format, err := parseFormat(flagRollupFormat)
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
	return WriteCountryStats(os.Stdout, rollup.ByCountry(events), format)
}
