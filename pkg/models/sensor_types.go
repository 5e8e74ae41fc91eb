package models

import (
	"errors"
	"fmt"
	"sort"
	"strconv"
	"strings"
)

// ErrUnknownSensorType is returned for type codes without a registry entry,
// including SensorTypeAll.
var ErrUnknownSensorType = errors.New("unknown sensor type")

// SensorType identifies the physical quantity a sensor measures.
// The numeric codes are stable and shared with every sensor source.
type SensorType int

// SensorType constants for standard sensor types
const (
	SensorTypeAccelerometer SensorType = 1
	SensorTypeMagneticField SensorType = 2

	// Deprecated: derive orientation from the accelerometer and magnetic field.
	SensorTypeOrientation SensorType = 3

	SensorTypeGyroscope SensorType = 4
	SensorTypeLight     SensorType = 5
	SensorTypePressure  SensorType = 6

	// Deprecated: use SensorTypeAmbientTemperature.
	SensorTypeTemperature SensorType = 7

	SensorTypeProximity                 SensorType = 8
	SensorTypeGravity                   SensorType = 9
	SensorTypeLinearAcceleration        SensorType = 10
	SensorTypeRotationVector            SensorType = 11
	SensorTypeRelativeHumidity          SensorType = 12
	SensorTypeAmbientTemperature        SensorType = 13
	SensorTypeMagneticFieldUncalibrated SensorType = 14
	SensorTypeGameRotationVector        SensorType = 15
	SensorTypeGyroscopeUncalibrated     SensorType = 16
	SensorTypeSignificantMotion         SensorType = 17

	// SensorTypeAll matches every type in queries. No sensor ever has it.
	SensorTypeAll SensorType = -1
)

// SensorTypeInfo holds metadata about sensor types
type SensorTypeInfo struct {
	Name          string
	Unit          string
	ReportingMode ReportingMode
	Deprecated    bool
}

// sensorTypeRegistry maps sensor types to their information. It is
// checked once in init and never written afterwards; callers read it
// through SensorType.Info, ReportingModeOf and SensorTypes.
var sensorTypeRegistry = map[SensorType]SensorTypeInfo{
	SensorTypeAccelerometer: {
		Name:          "accelerometer",
		Unit:          "m/s²",
		ReportingMode: ReportingModeContinuous,
	},
	SensorTypeMagneticField: {
		Name:          "magnetic-field",
		Unit:          "µT",
		ReportingMode: ReportingModeContinuous,
	},
	SensorTypeOrientation: {
		Name:          "orientation",
		Unit:          "°",
		ReportingMode: ReportingModeContinuous,
		Deprecated:    true,
	},
	SensorTypeGyroscope: {
		Name:          "gyroscope",
		Unit:          "rad/s",
		ReportingMode: ReportingModeContinuous,
	},
	SensorTypeLight: {
		Name:          "light",
		Unit:          "lx",
		ReportingMode: ReportingModeOnChange,
	},
	SensorTypePressure: {
		Name:          "pressure",
		Unit:          "hPa",
		ReportingMode: ReportingModeContinuous,
	},
	SensorTypeTemperature: {
		Name:          "temperature",
		Unit:          "°C",
		ReportingMode: ReportingModeOnChange,
		Deprecated:    true,
	},
	SensorTypeProximity: {
		Name:          "proximity",
		Unit:          "cm",
		ReportingMode: ReportingModeOnChange,
	},
	SensorTypeGravity: {
		Name:          "gravity",
		Unit:          "m/s²",
		ReportingMode: ReportingModeContinuous,
	},
	SensorTypeLinearAcceleration: {
		Name:          "linear-acceleration",
		Unit:          "m/s²",
		ReportingMode: ReportingModeContinuous,
	},
	SensorTypeRotationVector: {
		Name:          "rotation-vector",
		Unit:          "unitless",
		ReportingMode: ReportingModeContinuous,
	},
	SensorTypeRelativeHumidity: {
		Name:          "relative-humidity",
		Unit:          "%",
		ReportingMode: ReportingModeOnChange,
	},
	SensorTypeAmbientTemperature: {
		Name:          "ambient-temperature",
		Unit:          "°C",
		ReportingMode: ReportingModeOnChange,
	},
	SensorTypeMagneticFieldUncalibrated: {
		Name:          "magnetic-field-uncalibrated",
		Unit:          "µT",
		ReportingMode: ReportingModeContinuous,
	},
	SensorTypeGameRotationVector: {
		Name:          "game-rotation-vector",
		Unit:          "unitless",
		ReportingMode: ReportingModeContinuous,
	},
	SensorTypeGyroscopeUncalibrated: {
		Name:          "gyroscope-uncalibrated",
		Unit:          "rad/s",
		ReportingMode: ReportingModeContinuous,
	},
	SensorTypeSignificantMotion: {
		Name:          "significant-motion",
		Unit:          "event",
		ReportingMode: ReportingModeOneShot,
	},
}

// declaredSensorTypes lists every constant above. The registry must cover it.
var declaredSensorTypes = []SensorType{
	SensorTypeAccelerometer,
	SensorTypeMagneticField,
	SensorTypeOrientation,
	SensorTypeGyroscope,
	SensorTypeLight,
	SensorTypePressure,
	SensorTypeTemperature,
	SensorTypeProximity,
	SensorTypeGravity,
	SensorTypeLinearAcceleration,
	SensorTypeRotationVector,
	SensorTypeRelativeHumidity,
	SensorTypeAmbientTemperature,
	SensorTypeMagneticFieldUncalibrated,
	SensorTypeGameRotationVector,
	SensorTypeGyroscopeUncalibrated,
	SensorTypeSignificantMotion,
}

var sensorTypesByName map[string]SensorType

func init() {
	if err := checkRegistry(declaredSensorTypes, sensorTypeRegistry); err != nil {
		panic(err)
	}

	sensorTypesByName = make(map[string]SensorType, len(sensorTypeRegistry))
	for t, info := range sensorTypeRegistry {
		sensorTypesByName[info.Name] = t
	}
}

// checkRegistry verifies that declared and registry agree in both directions
func checkRegistry(declared []SensorType, registry map[SensorType]SensorTypeInfo) error {
	seen := make(map[SensorType]bool, len(declared))
	for _, t := range declared {
		info, ok := registry[t]
		if !ok {
			return fmt.Errorf("sensor type %d has no registry entry", int(t))
		}
		if !info.ReportingMode.IsValid() {
			return fmt.Errorf("sensor type %d (%s) has invalid reporting mode %d", int(t), info.Name, int(info.ReportingMode))
		}
		seen[t] = true
	}

	for t, info := range registry {
		if !seen[t] {
			return fmt.Errorf("registry entry %d (%s) is not a declared sensor type", int(t), info.Name)
		}
	}

	return nil
}

// ReportingModeOf returns the reporting mode of a sensor type
func ReportingModeOf(t SensorType) (ReportingMode, error) {
	info, ok := sensorTypeRegistry[t]
	if !ok {
		return 0, fmt.Errorf("%w: %d", ErrUnknownSensorType, int(t))
	}
	return info.ReportingMode, nil
}

// IsValid reports whether t is a defined, non-sentinel sensor type
func (t SensorType) IsValid() bool {
	_, ok := sensorTypeRegistry[t]
	return ok
}

// String returns the registry name, "all" for the sentinel or the bare code
func (t SensorType) String() string {
	if t == SensorTypeAll {
		return "all"
	}
	if info, ok := sensorTypeRegistry[t]; ok {
		return info.Name
	}
	return strconv.Itoa(int(t))
}

// Info returns the registry entry of t
func (t SensorType) Info() (SensorTypeInfo, error) {
	info, ok := sensorTypeRegistry[t]
	if !ok {
		return SensorTypeInfo{}, fmt.Errorf("%w: %d", ErrUnknownSensorType, int(t))
	}
	return info, nil
}

// ParseSensorType parses a sensor type name or numeric code.
// "all" (or -1) yields SensorTypeAll.
func ParseSensorType(s string) (SensorType, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	if s == "all" {
		return SensorTypeAll, nil
	}

	if t, ok := sensorTypesByName[s]; ok {
		return t, nil
	}

	code, err := strconv.Atoi(s)
	if err != nil {
		return 0, fmt.Errorf("%w: %q", ErrUnknownSensorType, s)
	}

	t := SensorType(code)
	if t != SensorTypeAll && !t.IsValid() {
		return 0, fmt.Errorf("%w: %d", ErrUnknownSensorType, code)
	}
	return t, nil
}

// SensorTypes returns every defined sensor type in ascending code order
func SensorTypes() []SensorType {
	types := make([]SensorType, 0, len(sensorTypeRegistry))
	for t := range sensorTypeRegistry {
		types = append(types, t)
	}
	sort.Slice(types, func(i, j int) bool {
		return types[i] < types[j]
	})
	return types
}
