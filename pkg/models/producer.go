package models

import "errors"

var (
	// ErrRangeAlreadySet is returned when a sensor's range was already corrected
	ErrRangeAlreadySet = errors.New("sensor range already set")
	// ErrForeignSensor is returned when a producer touches a sensor it did not build
	ErrForeignSensor = errors.New("sensor was built by another producer")
)

// SensorProducer is the capability to build Sensors and to correct their
// range once. It is held by the component that enumerates sensors; code
// that only reads sensors never sees it.
type SensorProducer struct {
	// non-zero size so that distinct producers have distinct addresses
	_ byte
}

// NewSensorProducer creates a new producer capability
func NewSensorProducer() *SensorProducer {
	return &SensorProducer{}
}

// Produce builds a sensor from info. No validation is performed.
func (p *SensorProducer) Produce(info SensorInfo) *Sensor {
	return &Sensor{
		name:       info.Name,
		vendor:     info.Vendor,
		version:    info.Version,
		handle:     info.Handle,
		sensorType: info.Type,
		maxRange:   info.MaxRange,
		resolution: info.Resolution,
		power:      info.Power,
		minDelay:   info.MinDelay,
		owner:      p,
	}
}

// SetRange replaces the maximum range and resolution of a sensor built by p.
// It succeeds once per sensor and must happen before the sensor is shared.
func (p *SensorProducer) SetRange(s *Sensor, maxRange, resolution float64) error {
	if s.owner != p {
		return ErrForeignSensor
	}
	if s.rangeSet {
		return ErrRangeAlreadySet
	}

	s.maxRange = maxRange
	s.resolution = resolution
	s.rangeSet = true
	return nil
}
