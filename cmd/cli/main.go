package main

import (
	"context"
	"fmt"
	"os"

	"github.com/sguter90/sensormaestro/pkg/config"
	"github.com/sguter90/sensormaestro/pkg/logging"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

type contextKey string

const (
	configContextKey contextKey = "config"
	loggerContextKey contextKey = "logger"
)

var (
	envFile   string
	serverURL string
	apiToken  string
)

var rootCmd = &cobra.Command{
	Use:   "sensormaestro",
	Short: "SensorMaestro - Sensor Catalog Service",
	Long: `SensorMaestro enumerates sensors from configurable sources and serves
the resulting catalog with each sensor's capabilities and reporting mode.`,
	SilenceUsage:      true,
	PersistentPreRunE: loadEnvironment,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&envFile, "env-file", ".env", "file with environment variables to load")
	rootCmd.PersistentFlags().StringVar(&serverURL, "server", getEnv("SENSORMAESTRO_URL", "http://localhost:8059"), "URL of a running SensorMaestro server")
	rootCmd.PersistentFlags().StringVar(&apiToken, "token", getEnv("SENSORMAESTRO_TOKEN", ""), "bearer token for protected endpoints")
}

func main() {
	if err := rootCmd.ExecuteContext(context.Background()); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// loadEnvironment loads the configuration and logger into the command context
func loadEnvironment(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load(envFile)
	if err != nil {
		return err
	}

	logger, err := logging.New(cfg.Logging)
	if err != nil {
		return err
	}

	ctx := context.WithValue(cmd.Context(), configContextKey, cfg)
	ctx = context.WithValue(ctx, loggerContextKey, logger)
	cmd.SetContext(ctx)
	return nil
}

func configFromContext(ctx context.Context) config.Config {
	cfg, _ := ctx.Value(configContextKey).(config.Config)
	return cfg
}

func loggerFromContext(ctx context.Context) *zap.SugaredLogger {
	logger, ok := ctx.Value(loggerContextKey).(*zap.SugaredLogger)
	if !ok {
		return zap.NewNop().Sugar()
	}
	return logger
}

func getEnv(key, defaultValue string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return defaultValue
}
