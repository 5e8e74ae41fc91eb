package main

import (
	"os"
	"os/signal"
	"syscall"

	"github.com/sguter90/sensormaestro/pkg/service"
	"github.com/spf13/cobra"
	"go.uber.org/multierr"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the SensorMaestro server",
	Long: `Start the SensorMaestro server: run migrations, restore the last catalog,
enumerate the configured sources and serve the catalog over HTTP.`,
	RunE: runServe,
}

func init() {
	rootCmd.AddCommand(serveCmd)
}

func runServe(cmd *cobra.Command, args []string) (err error) {
	cfg := configFromContext(cmd.Context())
	logger := loggerFromContext(cmd.Context())
	defer logger.Sync()

	if err := cfg.ValidateAuth(); err != nil {
		return err
	}

	svc, err := service.New(cfg, logger)
	if err != nil {
		return err
	}
	defer func() {
		err = multierr.Append(err, svc.Close())
	}()

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	return svc.Run(ctx)
}
