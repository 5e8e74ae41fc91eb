package models

import (
	"encoding/json"
	"errors"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func testSensorInfo() SensorInfo {
	return SensorInfo{
		Name:       "X",
		Vendor:     "Y",
		Version:    1,
		Handle:     7,
		Type:       SensorTypeAccelerometer,
		MaxRange:   10.0,
		Resolution: 0.1,
		Power:      0.5,
		MinDelay:   0,
	}
}

func TestSensor_Accessors(t *testing.T) {
	s := NewSensorProducer().Produce(testSensorInfo())

	if s.Name() != "X" {
		t.Errorf("Expected name=X, got %s", s.Name())
	}
	if s.Vendor() != "Y" {
		t.Errorf("Expected vendor=Y, got %s", s.Vendor())
	}
	if s.Version() != 1 {
		t.Errorf("Expected version=1, got %d", s.Version())
	}
	if s.Handle() != 7 {
		t.Errorf("Expected handle=7, got %d", s.Handle())
	}
	if s.Type() != SensorTypeAccelerometer {
		t.Errorf("Expected type=%d, got %d", SensorTypeAccelerometer, s.Type())
	}
	if s.MaximumRange() != 10.0 {
		t.Errorf("Expected maxRange=10, got %v", s.MaximumRange())
	}
	if s.Resolution() != 0.1 {
		t.Errorf("Expected resolution=0.1, got %v", s.Resolution())
	}
	if s.Power() != 0.5 {
		t.Errorf("Expected power=0.5, got %v", s.Power())
	}
	if s.MinDelay() != 0 {
		t.Errorf("Expected minDelay=0, got %d", s.MinDelay())
	}
	if !s.IsEventDriven() {
		t.Error("Expected sensor with minDelay=0 to be event driven")
	}

	mode, err := s.ReportingMode()
	if err != nil {
		t.Fatalf("Expected no error but got: %v", err)
	}
	if mode != ReportingModeContinuous {
		t.Errorf("Expected continuous reporting, got %s", mode)
	}
}

func TestSensor_String(t *testing.T) {
	s := NewSensorProducer().Produce(testSensorInfo())

	expected := `{Sensor name="X", vendor="Y", version=1, handle=7, type=1, maxRange=10, resolution=0.1, power=0.5, minDelay=0}`
	if got := s.String(); got != expected {
		t.Errorf("Expected %s, got %s", expected, got)
	}

	// rendering must not depend on anything but the field values
	if s.String() != NewSensorProducer().Produce(testSensorInfo()).String() {
		t.Error("Expected identical rendering for identical sensors")
	}
}

func TestSensor_Equal(t *testing.T) {
	a := NewSensorProducer().Produce(testSensorInfo())
	b := NewSensorProducer().Produce(testSensorInfo())

	if !a.Equal(b) {
		t.Error("Expected sensors with identical fields to be equal")
	}

	other := testSensorInfo()
	other.Handle = 8
	if a.Equal(NewSensorProducer().Produce(other)) {
		t.Error("Expected sensors with different handles to differ")
	}

	var nilSensor *Sensor
	if a.Equal(nilSensor) {
		t.Error("Expected sensor not to equal nil")
	}
	if !nilSensor.Equal(nil) {
		t.Error("Expected nil to equal nil")
	}
}

func TestSensor_Info(t *testing.T) {
	s := NewSensorProducer().Produce(testSensorInfo())

	expected := testSensorInfo()
	expected.TypeName = "accelerometer"
	expected.ReportingMode = "continuous"

	if diff := cmp.Diff(expected, s.Info()); diff != "" {
		t.Errorf("Info mismatch (-want +got):\n%s", diff)
	}
}

func TestSensor_MarshalJSON(t *testing.T) {
	s := NewSensorProducer().Produce(testSensorInfo())

	data, err := json.Marshal(s)
	if err != nil {
		t.Fatalf("Failed to marshal sensor: %v", err)
	}

	var decoded map[string]interface{}
	if err := json.Unmarshal(data, &decoded); err != nil {
		t.Fatalf("Failed to unmarshal sensor JSON: %v", err)
	}

	if decoded["name"] != "X" {
		t.Errorf("Expected name=X, got %v", decoded["name"])
	}
	if decoded["type"] != float64(1) {
		t.Errorf("Expected type=1, got %v", decoded["type"])
	}
	if decoded["type_name"] != "accelerometer" {
		t.Errorf("Expected type_name=accelerometer, got %v", decoded["type_name"])
	}
	if decoded["reporting_mode"] != "continuous" {
		t.Errorf("Expected reporting_mode=continuous, got %v", decoded["reporting_mode"])
	}
}

func TestSensorProducer_SetRange(t *testing.T) {
	producer := NewSensorProducer()
	s := producer.Produce(testSensorInfo())

	if err := producer.SetRange(s, 19.6, 0.01); err != nil {
		t.Fatalf("Expected no error but got: %v", err)
	}

	if s.MaximumRange() != 19.6 {
		t.Errorf("Expected maxRange=19.6, got %v", s.MaximumRange())
	}
	if s.Resolution() != 0.01 {
		t.Errorf("Expected resolution=0.01, got %v", s.Resolution())
	}

	// every other attribute is untouched
	expected := testSensorInfo()
	expected.MaxRange = 19.6
	expected.Resolution = 0.01
	expected.TypeName = "accelerometer"
	expected.ReportingMode = "continuous"
	if diff := cmp.Diff(expected, s.Info()); diff != "" {
		t.Errorf("Info mismatch after SetRange (-want +got):\n%s", diff)
	}

	err := producer.SetRange(s, 40, 0.02)
	if !errors.Is(err, ErrRangeAlreadySet) {
		t.Errorf("Expected ErrRangeAlreadySet, got %v", err)
	}
	if s.MaximumRange() != 19.6 {
		t.Errorf("Expected maxRange to stay 19.6, got %v", s.MaximumRange())
	}
}

func TestSensorProducer_SetRange_ForeignSensor(t *testing.T) {
	s := NewSensorProducer().Produce(testSensorInfo())

	err := NewSensorProducer().SetRange(s, 1, 0.5)
	if !errors.Is(err, ErrForeignSensor) {
		t.Errorf("Expected ErrForeignSensor, got %v", err)
	}
	if s.MaximumRange() != 10.0 {
		t.Errorf("Expected maxRange to stay 10, got %v", s.MaximumRange())
	}
}

func TestSensorInfo_Validate(t *testing.T) {
	testCases := []struct {
		name     string
		modify   func(i *SensorInfo)
		errorMsg string
	}{
		{
			name:   "Valid sensor",
			modify: func(i *SensorInfo) {},
		},
		{
			name:     "Empty name",
			modify:   func(i *SensorInfo) { i.Name = "" },
			errorMsg: "name must not be empty",
		},
		{
			name:     "All types sentinel",
			modify:   func(i *SensorInfo) { i.Type = SensorTypeAll },
			errorMsg: "unknown sensor type",
		},
		{
			name:     "Unknown type",
			modify:   func(i *SensorInfo) { i.Type = 99 },
			errorMsg: "unknown sensor type",
		},
		{
			name:     "Resolution above range",
			modify:   func(i *SensorInfo) { i.Resolution = 11 },
			errorMsg: "resolution 11 exceeds maximum range 10",
		},
		{
			name:     "Negative power",
			modify:   func(i *SensorInfo) { i.Power = -1 },
			errorMsg: "power must not be negative",
		},
		{
			name:     "Negative min delay",
			modify:   func(i *SensorInfo) { i.MinDelay = -5 },
			errorMsg: "min delay must not be negative",
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			info := testSensorInfo()
			tc.modify(&info)

			err := info.Validate()
			if tc.errorMsg == "" {
				if err != nil {
					t.Errorf("Expected no error but got: %v", err)
				}
				return
			}
			if err == nil {
				t.Fatal("Expected error but got none")
			}
			if !strings.Contains(err.Error(), tc.errorMsg) {
				t.Errorf("Expected error containing '%s', got '%s'", tc.errorMsg, err.Error())
			}
		})
	}
}

func TestSensorQueryParams(t *testing.T) {
	producer := NewSensorProducer()
	accel := producer.Produce(testSensorInfo())

	light := testSensorInfo()
	light.Name = "L"
	light.Vendor = "Z"
	light.Type = SensorTypeLight
	lightSensor := producer.Produce(light)

	testCases := []struct {
		name        string
		params      SensorQueryParams
		expectError bool
		matches     []bool
	}{
		{
			name:    "All types",
			params:  SensorQueryParams{Type: SensorTypeAll},
			matches: []bool{true, true},
		},
		{
			name:    "Only light",
			params:  SensorQueryParams{Type: SensorTypeLight},
			matches: []bool{false, true},
		},
		{
			name:    "Vendor filter",
			params:  SensorQueryParams{Type: SensorTypeAll, Vendor: "Y"},
			matches: []bool{true, false},
		},
		{
			name:    "Name filter",
			params:  SensorQueryParams{Type: SensorTypeAll, Name: "L"},
			matches: []bool{false, true},
		},
		{
			name:        "Unknown type",
			params:      SensorQueryParams{Type: 0},
			expectError: true,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			err := tc.params.Validate()
			if tc.expectError {
				if err == nil {
					t.Error("Expected error but got none")
				}
				return
			}
			if err != nil {
				t.Fatalf("Expected no error but got: %v", err)
			}

			for i, s := range []*Sensor{accel, lightSensor} {
				if got := tc.params.Matches(s); got != tc.matches[i] {
					t.Errorf("Expected match=%v for %s, got %v", tc.matches[i], s.Name(), got)
				}
			}
		})
	}
}

func TestCatalogSnapshot_Summary(t *testing.T) {
	light := testSensorInfo()
	light.Type = SensorTypeLight

	snapshot := CatalogSnapshot{
		Sources: []string{"fake"},
		Sensors: []SensorInfo{testSensorInfo(), testSensorInfo(), light},
	}

	summary := snapshot.Summary()
	if summary.SensorCount != 3 {
		t.Errorf("Expected 3 sensors, got %d", summary.SensorCount)
	}

	expected := map[string]int{"accelerometer": 2, "light": 1}
	if diff := cmp.Diff(expected, summary.Types); diff != "" {
		t.Errorf("Types mismatch (-want +got):\n%s", diff)
	}
}
