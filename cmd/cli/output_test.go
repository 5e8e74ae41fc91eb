package main

import (
	"bytes"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/sguter90/sensormaestro/pkg/models"
)

func TestResolveOutput(t *testing.T) {
	testCases := []struct {
		format      string
		expected    string
		expectError bool
	}{
		{format: "table", expected: outputTable},
		{format: "JSON", expected: outputJSON},
		// a buffer is never a terminal
		{format: "auto", expected: outputJSON},
		{format: "", expected: outputJSON},
		{format: "yaml", expectError: true},
	}

	for _, tc := range testCases {
		t.Run(tc.format, func(t *testing.T) {
			got, err := resolveOutput(tc.format, &bytes.Buffer{})
			if tc.expectError {
				if err == nil {
					t.Error("Expected error but got none")
				}
				return
			}
			if err != nil {
				t.Fatalf("Expected no error but got: %v", err)
			}
			if got != tc.expected {
				t.Errorf("Expected %s, got %s", tc.expected, got)
			}
		})
	}
}

func TestPrintSensorTable(t *testing.T) {
	sensors := []models.SensorInfo{
		{Name: "Accel", Vendor: "Acme", Handle: 1, Type: models.SensorTypeAccelerometer, TypeName: "accelerometer", MaxRange: 19.6, Resolution: 0.01, Power: 0.5, MinDelay: 10000, ReportingMode: "continuous"},
		{Name: "Motion", Vendor: "Acme", Handle: 2, Type: models.SensorTypeSignificantMotion, MaxRange: 1, Resolution: 1},
	}

	var buf bytes.Buffer
	if err := printSensorTable(&buf, sensors); err != nil {
		t.Fatalf("Expected no error but got: %v", err)
	}

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	if len(lines) != 3 {
		t.Fatalf("Expected 3 lines, got %d:\n%s", len(lines), buf.String())
	}
	if !strings.HasPrefix(lines[0], "HANDLE") {
		t.Errorf("Expected header line, got %s", lines[0])
	}
	if !strings.Contains(lines[1], "accelerometer") || !strings.Contains(lines[1], "19.6") {
		t.Errorf("Expected accelerometer row, got %s", lines[1])
	}
	// without a type name the type is derived from the code
	if !strings.Contains(lines[2], "significant-motion") {
		t.Errorf("Expected significant-motion row, got %s", lines[2])
	}
}

func TestPrintSensorTable_Empty(t *testing.T) {
	var buf bytes.Buffer
	if err := printSensorTable(&buf, nil); err != nil {
		t.Fatalf("Expected no error but got: %v", err)
	}
	if got := buf.String(); got != "No sensors found.\n" {
		t.Errorf("Expected empty message, got %q", got)
	}
}

func TestPrintSensorDetail(t *testing.T) {
	var buf bytes.Buffer
	info := models.SensorInfo{Name: "Light", Vendor: "Acme", Version: 2, Handle: 5, Type: models.SensorTypeLight, MaxRange: 10000, Resolution: 1}
	if err := printSensorDetail(&buf, info); err != nil {
		t.Fatalf("Expected no error but got: %v", err)
	}

	out := buf.String()
	for _, want := range []string{"[5] Light", "Vendor: Acme", "Version: 2", "Type: light", "Min Delay: event driven"} {
		if !strings.Contains(out, want) {
			t.Errorf("Expected output to contain %q, got:\n%s", want, out)
		}
	}
}

func TestPrintSensorTypeTable(t *testing.T) {
	var buf bytes.Buffer
	if err := printSensorTypeTable(&buf, models.SensorTypeDetails()); err != nil {
		t.Fatalf("Expected no error but got: %v", err)
	}

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	if len(lines) != len(models.SensorTypes())+1 {
		t.Errorf("Expected %d lines, got %d", len(models.SensorTypes())+1, len(lines))
	}
	if !strings.Contains(buf.String(), "one-shot") {
		t.Error("Expected one-shot reporting mode in type table")
	}
}

func TestPrintSummaryTable(t *testing.T) {
	var buf bytes.Buffer
	if err := printSummaryTable(&buf, nil); err != nil {
		t.Fatalf("Expected no error but got: %v", err)
	}
	if !strings.Contains(buf.String(), "No catalog snapshots") {
		t.Errorf("Expected empty message, got %q", buf.String())
	}

	buf.Reset()
	id := uuid.New()
	summaries := []models.CatalogSummary{
		{ID: id, RefreshedAt: time.Now(), Sources: []string{"fake", "static:path=a.yaml"}, SensorCount: 4},
	}
	if err := printSummaryTable(&buf, summaries); err != nil {
		t.Fatalf("Expected no error but got: %v", err)
	}
	if !strings.Contains(buf.String(), id.String()) {
		t.Errorf("Expected snapshot id in output, got:\n%s", buf.String())
	}
	if !strings.Contains(buf.String(), "fake; static:path=a.yaml") {
		t.Errorf("Expected joined sources in output, got:\n%s", buf.String())
	}
}
