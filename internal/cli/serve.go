package cli

import (
	"github.com/gin-gonic/gin"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/pfrederiksen/tourboard/internal/api"
	"github.com/pfrederiksen/tourboard/internal/exporter"
)

var flagListenAddr string

func newServeCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the dataset and metrics over HTTP",
		RunE:  runServe,
	}
	cmd.Flags().StringVar(&flagListenAddr, "listen", "", "Listen address (default from config)")
	return cmd
}

func runServe(cmd *cobra.Command, args []string) error {
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

	addr := cfg.ListenAddr
	if flagListenAddr != "" {
		addr = flagListenAddr
	}

	if !flagVerbose {
		gin.SetMode(gin.ReleaseMode)
	}
	srv := &api.Server{
		Store:    store,
		Exporter: exporter.New(),
		Log:      log,
	}

	log.Info("serving", zap.String("addr", addr))
	return srv.Router().Run(addr)
}
