package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/sguter90/sensormaestro/pkg/models"
	"golang.org/x/term"
)

const (
	outputTable = "table"
	outputJSON  = "json"
	outputAuto  = "auto"
)

// resolveOutput picks the output format. "auto" prints tables on a terminal
// and JSON everywhere else.
func resolveOutput(format string, w io.Writer) (string, error) {
	switch strings.ToLower(format) {
	case outputTable:
		return outputTable, nil
	case outputJSON:
		return outputJSON, nil
	case "", outputAuto:
		if f, ok := w.(*os.File); ok && term.IsTerminal(int(f.Fd())) {
			return outputTable, nil
		}
		return outputJSON, nil
	default:
		return "", fmt.Errorf("invalid output format %q (expected table, json or auto)", format)
	}
}

func printJSON(w io.Writer, v interface{}) error {
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(v)
}

func printSensorTable(w io.Writer, sensors []models.SensorInfo) error {
	if len(sensors) == 0 {
		_, err := fmt.Fprintln(w, "No sensors found.")
		return err
	}

	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "HANDLE\tTYPE\tNAME\tVENDOR\tMAX RANGE\tRESOLUTION\tPOWER (mA)\tMIN DELAY (µs)\tREPORTING")
	for _, s := range sensors {
		fmt.Fprintf(tw, "%d\t%s\t%s\t%s\t%g\t%g\t%g\t%d\t%s\n",
			s.Handle,
			typeLabel(s),
			s.Name,
			s.Vendor,
			s.MaxRange,
			s.Resolution,
			s.Power,
			s.MinDelay,
			s.ReportingMode,
		)
	}
	return tw.Flush()
}

func printSensorDetail(w io.Writer, s models.SensorInfo) error {
	fmt.Fprintln(w, "\n"+strings.Repeat("=", 60))
	fmt.Fprintf(w, "[%d] %s\n", s.Handle, s.Name)
	fmt.Fprintln(w, strings.Repeat("=", 60))
	fmt.Fprintf(w, "    Vendor: %s\n", s.Vendor)
	fmt.Fprintf(w, "    Version: %d\n", s.Version)
	fmt.Fprintf(w, "    Type: %s\n", typeLabel(s))
	fmt.Fprintf(w, "    Reporting Mode: %s\n", s.ReportingMode)
	fmt.Fprintf(w, "    Maximum Range: %g\n", s.MaxRange)
	fmt.Fprintf(w, "    Resolution: %g\n", s.Resolution)
	fmt.Fprintf(w, "    Power: %g mA\n", s.Power)
	if s.MinDelay == 0 {
		fmt.Fprintln(w, "    Min Delay: event driven")
	} else {
		fmt.Fprintf(w, "    Min Delay: %d µs\n", s.MinDelay)
	}
	_, err := fmt.Fprintln(w)
	return err
}

func printSensorTypeTable(w io.Writer, types []models.SensorTypeDetail) error {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "CODE\tNAME\tUNIT\tREPORTING\tDEPRECATED")
	for _, t := range types {
		deprecated := ""
		if t.Deprecated {
			deprecated = "yes"
		}
		fmt.Fprintf(tw, "%d\t%s\t%s\t%s\t%s\n", int(t.Type), t.Name, t.Unit, t.ReportingMode, deprecated)
	}
	return tw.Flush()
}

func printSummaryTable(w io.Writer, summaries []models.CatalogSummary) error {
	if len(summaries) == 0 {
		_, err := fmt.Fprintln(w, "No catalog snapshots stored yet.")
		return err
	}

	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tREFRESHED\tSENSORS\tSOURCES")
	for _, s := range summaries {
		fmt.Fprintf(tw, "%s\t%s\t%d\t%s\n",
			s.ID,
			s.RefreshedAt.Local().Format("2006-01-02 15:04:05"),
			s.SensorCount,
			strings.Join(s.Sources, "; "),
		)
	}
	return tw.Flush()
}

func printSummary(w io.Writer, s models.CatalogSummary) error {
	fmt.Fprintf(w, "Snapshot:  %s\n", s.ID)
	fmt.Fprintf(w, "Refreshed: %s\n", s.RefreshedAt.Local().Format(time.RFC3339))
	fmt.Fprintf(w, "Sources:   %s\n", strings.Join(s.Sources, "; "))
	_, err := fmt.Fprintf(w, "Sensors:   %d\n", s.SensorCount)
	return err
}

func typeLabel(s models.SensorInfo) string {
	if s.TypeName != "" {
		return s.TypeName
	}
	return s.Type.String()
}
