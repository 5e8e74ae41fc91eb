package main

import (
	"fmt"
	"strconv"

	"github.com/sguter90/sensormaestro/pkg/api"
	"github.com/sguter90/sensormaestro/pkg/models"
	"github.com/spf13/cobra"
)

var (
	sensorOutput string
	sensorType   string
	sensorVendor string
	sensorName   string
)

var sensorCmd = &cobra.Command{
	Use:   "sensor",
	Short: "Inspect the sensor catalog",
	Long:  `List and inspect the sensors served by a running SensorMaestro server.`,
}

var sensorListCmd = &cobra.Command{
	Use:   "list",
	Short: "List sensors",
	Args:  cobra.NoArgs,
	RunE:  runSensorList,
}

var sensorShowCmd = &cobra.Command{
	Use:   "show <handle>",
	Short: "Show a single sensor",
	Args:  cobra.ExactArgs(1),
	RunE:  runSensorShow,
}

var sensorTypesCmd = &cobra.Command{
	Use:   "types",
	Short: "List sensor types and their reporting modes",
	Args:  cobra.NoArgs,
	RunE:  runSensorTypes,
}

func init() {
	rootCmd.AddCommand(sensorCmd)
	sensorCmd.AddCommand(sensorListCmd)
	sensorCmd.AddCommand(sensorShowCmd)
	sensorCmd.AddCommand(sensorTypesCmd)

	sensorCmd.PersistentFlags().StringVarP(&sensorOutput, "output", "o", outputAuto, "output format: table, json or auto")
	sensorListCmd.Flags().StringVar(&sensorType, "type", "all", "sensor type name or code")
	sensorListCmd.Flags().StringVar(&sensorVendor, "vendor", "", "only sensors of this vendor")
	sensorListCmd.Flags().StringVar(&sensorName, "name", "", "only sensors with this name")
}

func runSensorList(cmd *cobra.Command, args []string) error {
	format, err := resolveOutput(sensorOutput, cmd.OutOrStdout())
	if err != nil {
		return err
	}

	t, err := models.ParseSensorType(sensorType)
	if err != nil {
		return err
	}

	sensors, err := newAPIClient().ListSensors(cmd.Context(), api.SensorFilter{
		Type:   t,
		Vendor: sensorVendor,
		Name:   sensorName,
	})
	if err != nil {
		return fmt.Errorf("failed to list sensors: %w", err)
	}

	if format == outputJSON {
		return printJSON(cmd.OutOrStdout(), sensors)
	}
	return printSensorTable(cmd.OutOrStdout(), sensors)
}

func runSensorShow(cmd *cobra.Command, args []string) error {
	format, err := resolveOutput(sensorOutput, cmd.OutOrStdout())
	if err != nil {
		return err
	}

	handle, err := strconv.Atoi(args[0])
	if err != nil {
		return fmt.Errorf("invalid handle %q: %w", args[0], err)
	}

	sensor, err := newAPIClient().GetSensor(cmd.Context(), handle)
	if err != nil {
		return fmt.Errorf("failed to get sensor %d: %w", handle, err)
	}

	if format == outputJSON {
		return printJSON(cmd.OutOrStdout(), sensor)
	}
	return printSensorDetail(cmd.OutOrStdout(), *sensor)
}

func runSensorTypes(cmd *cobra.Command, args []string) error {
	format, err := resolveOutput(sensorOutput, cmd.OutOrStdout())
	if err != nil {
		return err
	}

	// the type table is compiled in, no server round trip needed
	types := models.SensorTypeDetails()

	if format == outputJSON {
		return printJSON(cmd.OutOrStdout(), types)
	}
	return printSensorTypeTable(cmd.OutOrStdout(), types)
}

func newAPIClient(opts ...api.ClientOption) *api.Client {
	if apiToken != "" {
		opts = append(opts, api.WithAPIKey(apiToken))
	}
	return api.NewClient(serverURL, opts...)
}
