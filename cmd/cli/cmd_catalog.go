package main

import (
	"fmt"

	"github.com/sguter90/sensormaestro/pkg/api"
	"github.com/sguter90/sensormaestro/pkg/database"
	"github.com/sguter90/sensormaestro/pkg/server"
	"github.com/spf13/cobra"
)

var (
	catalogOutput string
	historyLimit  int
	pruneKeep     int
)

var catalogCmd = &cobra.Command{
	Use:   "catalog",
	Short: "Manage the sensor catalog",
}

var catalogStatusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show the catalog currently served",
	Args:  cobra.NoArgs,
	RunE:  runCatalogStatus,
}

var catalogRefreshCmd = &cobra.Command{
	Use:   "refresh",
	Short: "Re-enumerate all sensor sources",
	Long: `Ask the server to re-enumerate its sensor sources. Uses --token if given,
otherwise a short-lived token is signed with JWT_SECRET.`,
	Args: cobra.NoArgs,
	RunE: runCatalogRefresh,
}

var catalogHistoryCmd = &cobra.Command{
	Use:   "history",
	Short: "List stored catalog snapshots",
	Args:  cobra.NoArgs,
	RunE:  runCatalogHistory,
}

var catalogPruneCmd = &cobra.Command{
	Use:   "prune",
	Short: "Delete all but the newest catalog snapshots",
	Args:  cobra.NoArgs,
	RunE:  runCatalogPrune,
}

func init() {
	rootCmd.AddCommand(catalogCmd)
	catalogCmd.AddCommand(catalogStatusCmd)
	catalogCmd.AddCommand(catalogRefreshCmd)
	catalogCmd.AddCommand(catalogHistoryCmd)
	catalogCmd.AddCommand(catalogPruneCmd)

	catalogCmd.PersistentFlags().StringVarP(&catalogOutput, "output", "o", outputAuto, "output format: table, json or auto")
	catalogHistoryCmd.Flags().IntVar(&historyLimit, "limit", 20, "maximum number of snapshots to list")
	catalogPruneCmd.Flags().IntVar(&pruneKeep, "keep", 0, "number of snapshots to keep (defaults to CATALOG_KEEP_SNAPSHOTS)")
}

func runCatalogStatus(cmd *cobra.Command, args []string) error {
	format, err := resolveOutput(catalogOutput, cmd.OutOrStdout())
	if err != nil {
		return err
	}

	summary, err := newAPIClient().Catalog(cmd.Context())
	if err != nil {
		return fmt.Errorf("failed to get catalog: %w", err)
	}

	if format == outputJSON {
		return printJSON(cmd.OutOrStdout(), summary)
	}
	return printSummary(cmd.OutOrStdout(), *summary)
}

func runCatalogRefresh(cmd *cobra.Command, args []string) error {
	format, err := resolveOutput(catalogOutput, cmd.OutOrStdout())
	if err != nil {
		return err
	}

	var opts []api.ClientOption
	if apiToken == "" {
		cfg := configFromContext(cmd.Context())
		if err := cfg.ValidateAuth(); err != nil {
			return fmt.Errorf("no --token given and cannot sign one: %w", err)
		}
		token, _, err := server.GenerateToken([]byte(cfg.Auth.JWTSecret), "cli", cfg.Auth.TokenTTL)
		if err != nil {
			return err
		}
		opts = append(opts, api.WithAPIKey(token))
	}

	summary, err := newAPIClient(opts...).RefreshCatalog(cmd.Context())
	if err != nil {
		return fmt.Errorf("failed to refresh catalog: %w", err)
	}

	if format == outputJSON {
		return printJSON(cmd.OutOrStdout(), summary)
	}
	fmt.Fprintln(cmd.OutOrStdout(), "✓ Catalog refreshed")
	return printSummary(cmd.OutOrStdout(), *summary)
}

func runCatalogHistory(cmd *cobra.Command, args []string) error {
	format, err := resolveOutput(catalogOutput, cmd.OutOrStdout())
	if err != nil {
		return err
	}

	dm, err := openDatabase(cmd)
	if err != nil {
		return err
	}
	defer dm.Close()

	summaries, err := dm.ListSnapshots(cmd.Context(), historyLimit)
	if err != nil {
		return fmt.Errorf("failed to list snapshots: %w", err)
	}

	if format == outputJSON {
		return printJSON(cmd.OutOrStdout(), summaries)
	}
	return printSummaryTable(cmd.OutOrStdout(), summaries)
}

func runCatalogPrune(cmd *cobra.Command, args []string) error {
	keep := pruneKeep
	if keep <= 0 {
		keep = configFromContext(cmd.Context()).Catalog.KeepSnapshots
	}

	dm, err := openDatabase(cmd)
	if err != nil {
		return err
	}
	defer dm.Close()

	removed, err := dm.PruneSnapshots(cmd.Context(), keep)
	if err != nil {
		return fmt.Errorf("failed to prune snapshots: %w", err)
	}

	fmt.Fprintf(cmd.OutOrStdout(), "✓ Removed %d snapshot(s), kept the newest %d\n", removed, keep)
	return nil
}

func openDatabase(cmd *cobra.Command) (*database.DatabaseManager, error) {
	cfg := configFromContext(cmd.Context())
	dm, err := database.NewDatabaseManager(cfg.Database, loggerFromContext(cmd.Context()))
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}
	return dm, nil
}
