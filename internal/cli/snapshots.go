package cli

import (
	"os"

	"github.com/spf13/cobra"
)

var flagSnapshotsFormat string

func newSnapshotsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "snapshots",
		Short: "Print document-wide snapshot history",
		RunE:  runSnapshots,
	}
	cmd.Flags().StringVar(&flagSnapshotsFormat, "format", "text", "Output format: text or json")
	return cmd
}

func runSnapshots(cmd *cobra.Command, args []string) error {
	format, err := parseFormat(flagSnapshotsFormat)
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

	snaps, err := store.Snapshots()
	if err != nil {
		return err
	}
	return WriteSnapshots(os.Stdout, snaps, format)
}
