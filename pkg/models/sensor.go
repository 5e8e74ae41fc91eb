package models

import (
	"encoding/json"
	"fmt"
	"strconv"
)

// Sensor describes the static capabilities of a physical or virtual sensor.
//
// A Sensor is built only by a SensorProducer and is read-only afterwards, so
// it can be shared between goroutines without locking.
type Sensor struct {
	name       string
	vendor     string
	version    int
	handle     int
	sensorType SensorType
	maxRange   float64
	resolution float64
	power      float64
	minDelay   int

	owner    *SensorProducer
	rangeSet bool
}

// Name returns the human-readable sensor name
func (s *Sensor) Name() string {
	return s.name
}

// Vendor returns the manufacturer of the sensor
func (s *Sensor) Vendor() string {
	return s.vendor
}

// Version returns the driver version
func (s *Sensor) Version() int {
	return s.version
}

// Handle returns the opaque identifier assigned by the sensor source.
// It is only meaningful for identity comparison.
func (s *Sensor) Handle() int {
	return s.handle
}

// Type returns the sensor type. It is never SensorTypeAll.
func (s *Sensor) Type() SensorType {
	return s.sensorType
}

// MaximumRange returns the maximum measurable magnitude in the sensor's unit
func (s *Sensor) MaximumRange() float64 {
	return s.maxRange
}

// Resolution returns the smallest discernible difference in the sensor's unit
func (s *Sensor) Resolution() float64 {
	return s.resolution
}

// Power returns the current draw in mA while the sensor is active
func (s *Sensor) Power() float64 {
	return s.power
}

// MinDelay returns the minimum delay between two samples in microseconds.
// Zero means the sensor only reports when an event occurs.
func (s *Sensor) MinDelay() int {
	return s.minDelay
}

// IsEventDriven reports whether the sensor has no periodic sampling
func (s *Sensor) IsEventDriven() bool {
	return s.minDelay == 0
}

// ReportingMode returns the reporting mode of the sensor's type
func (s *Sensor) ReportingMode() (ReportingMode, error) {
	return ReportingModeOf(s.sensorType)
}

// Equal compares the descriptor attributes of two sensors
func (s *Sensor) Equal(other *Sensor) bool {
	if s == nil || other == nil {
		return s == other
	}
	return s.name == other.name &&
		s.vendor == other.vendor &&
		s.version == other.version &&
		s.handle == other.handle &&
		s.sensorType == other.sensorType &&
		s.maxRange == other.maxRange &&
		s.resolution == other.resolution &&
		s.power == other.power &&
		s.minDelay == other.minDelay
}

func (s *Sensor) String() string {
	return "{Sensor name=" + strconv.Quote(s.name) +
		", vendor=" + strconv.Quote(s.vendor) +
		", version=" + strconv.Itoa(s.version) +
		", handle=" + strconv.Itoa(s.handle) +
		", type=" + strconv.Itoa(int(s.sensorType)) +
		", maxRange=" + formatFloat(s.maxRange) +
		", resolution=" + formatFloat(s.resolution) +
		", power=" + formatFloat(s.power) +
		", minDelay=" + strconv.Itoa(s.minDelay) + "}"
}

// Info returns a plain copy of the descriptor attributes
func (s *Sensor) Info() SensorInfo {
	info := SensorInfo{
		Name:       s.name,
		Vendor:     s.vendor,
		Version:    s.version,
		Handle:     s.handle,
		Type:       s.sensorType,
		MaxRange:   s.maxRange,
		Resolution: s.resolution,
		Power:      s.power,
		MinDelay:   s.minDelay,
	}
	return info.withTypeDetails()
}

// MarshalJSON encodes the sensor as its SensorInfo
func (s *Sensor) MarshalJSON() ([]byte, error) {
	return json.Marshal(s.Info())
}

func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'g', -1, 64)
}

// SensorInfo carries the attributes of a sensor as plain values. Sources
// report sensors as SensorInfo and the catalog turns them into Sensors.
type SensorInfo struct {
	Name          string     `json:"name" yaml:"name"`
	Vendor        string     `json:"vendor" yaml:"vendor"`
	Version       int        `json:"version" yaml:"version"`
	Handle        int        `json:"handle" yaml:"handle"`
	Type          SensorType `json:"type" yaml:"type"`
	TypeName      string     `json:"type_name,omitempty" yaml:"-"`
	MaxRange      float64    `json:"max_range" yaml:"max_range"`
	Resolution    float64    `json:"resolution" yaml:"resolution"`
	Power         float64    `json:"power" yaml:"power"`
	MinDelay      int        `json:"min_delay" yaml:"min_delay"`
	ReportingMode string     `json:"reporting_mode,omitempty" yaml:"-"`
}

// Validate checks the invariants a sensor source must respect
func (i SensorInfo) Validate() error {
	if i.Name == "" {
		return fmt.Errorf("sensor %d: name must not be empty", i.Handle)
	}

	if !i.Type.IsValid() {
		return fmt.Errorf("sensor %q: %w: %d", i.Name, ErrUnknownSensorType, int(i.Type))
	}

	if i.MaxRange < 0 || i.Resolution < 0 {
		return fmt.Errorf("sensor %q: range and resolution must not be negative", i.Name)
	}

	if i.Resolution > i.MaxRange {
		return fmt.Errorf("sensor %q: resolution %s exceeds maximum range %s", i.Name, formatFloat(i.Resolution), formatFloat(i.MaxRange))
	}

	if i.Power < 0 {
		return fmt.Errorf("sensor %q: power must not be negative", i.Name)
	}

	if i.MinDelay < 0 {
		return fmt.Errorf("sensor %q: min delay must not be negative", i.Name)
	}

	return nil
}

// withTypeDetails fills the derived type name and reporting mode
func (i SensorInfo) withTypeDetails() SensorInfo {
	if info, err := i.Type.Info(); err == nil {
		i.TypeName = info.Name
		i.ReportingMode = info.ReportingMode.String()
	}
	return i
}

// SensorQueryParams holds query parameters for sensor queries
type SensorQueryParams struct {
	Type   SensorType
	Vendor string
	Name   string
}

// Validate checks if the query parameters are valid
func (p *SensorQueryParams) Validate() error {
	if p.Type != SensorTypeAll && !p.Type.IsValid() {
		return fmt.Errorf("%w: %d", ErrUnknownSensorType, int(p.Type))
	}
	return nil
}

// Matches reports whether s satisfies every set filter
func (p *SensorQueryParams) Matches(s *Sensor) bool {
	if p.Type != SensorTypeAll && s.Type() != p.Type {
		return false
	}
	if p.Vendor != "" && s.Vendor() != p.Vendor {
		return false
	}
	if p.Name != "" && s.Name() != p.Name {
		return false
	}
	return true
}
