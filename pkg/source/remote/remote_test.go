package remote

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/sguter90/sensormaestro/pkg/models"
	"github.com/sguter90/sensormaestro/pkg/source"
)

func TestSource_Enumerate(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/v1/sensors" {
			http.NotFound(w, r)
			return
		}
		json.NewEncoder(w).Encode([]models.SensorInfo{
			{
				Name:          "Remote Gyro",
				Vendor:        "InvenSense",
				Handle:        4,
				Type:          models.SensorTypeGyroscope,
				TypeName:      "gyroscope",
				MaxRange:      34.9,
				Resolution:    0.001,
				ReportingMode: "continuous",
			},
		})
	}))
	defer server.Close()

	sensors, err := NewSource().Enumerate(context.Background(), map[string]string{
		"url":     server.URL,
		"timeout": "2s",
	})
	if err != nil {
		t.Fatalf("Expected no error but got: %v", err)
	}

	if len(sensors) != 1 {
		t.Fatalf("Expected 1 sensor, got %d", len(sensors))
	}
	if sensors[0].Name != "Remote Gyro" || sensors[0].Type != models.SensorTypeGyroscope {
		t.Errorf("Unexpected sensor %+v", sensors[0])
	}
	if sensors[0].TypeName != "" || sensors[0].ReportingMode != "" {
		t.Error("Expected derived fields to be cleared")
	}
}

func TestSource_Enumerate_RemoteError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "boom", http.StatusInternalServerError)
	}))
	defer server.Close()

	_, err := NewSource().Enumerate(context.Background(), map[string]string{"url": server.URL})
	if err == nil {
		t.Error("Expected error when the remote fails")
	}
}

func TestSource_ValidateConfig(t *testing.T) {
	testCases := []struct {
		name        string
		config      map[string]string
		expectError bool
	}{
		{name: "Valid", config: map[string]string{"url": "http://localhost:8059"}},
		{name: "Valid with timeout", config: map[string]string{"url": "https://a.example", "timeout": "3s"}},
		{name: "Missing url", config: map[string]string{}, expectError: true},
		{name: "Relative url", config: map[string]string{"url": "/api"}, expectError: true},
		{name: "Bad timeout", config: map[string]string{"url": "http://a", "timeout": "soon"}, expectError: true},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			err := NewSource().ValidateConfig(tc.config)
			if tc.expectError && err == nil {
				t.Error("Expected error but got none")
			}
			if !tc.expectError && err != nil {
				t.Errorf("Expected no error but got: %v", err)
			}
		})
	}
}

func TestSource_Shorthand(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode([]models.SensorInfo{
			{Name: "Remote Light", Handle: 1, Type: models.SensorTypeLight, MaxRange: 100, Resolution: 1},
		})
	}))
	defer server.Close()

	spec, err := source.ParseSpec("remote:" + server.URL + ",timeout=2s")
	if err != nil {
		t.Fatalf("Expected no error but got: %v", err)
	}

	src := NewSource()
	config, err := source.ResolveConfig(src, spec.Config)
	if err != nil {
		t.Fatalf("Expected no error but got: %v", err)
	}
	if err := src.ValidateConfig(config); err != nil {
		t.Fatalf("Expected valid config but got: %v", err)
	}

	sensors, err := src.Enumerate(context.Background(), config)
	if err != nil {
		t.Fatalf("Expected no error but got: %v", err)
	}
	if len(sensors) != 1 || sensors[0].Name != "Remote Light" {
		t.Errorf("Unexpected sensors %+v", sensors)
	}
}
