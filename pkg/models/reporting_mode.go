package models

import (
	"fmt"
	"strings"
)

// ReportingMode is the cadence policy of a sensor type
type ReportingMode int

const (
	// ReportingModeContinuous reports events at a constant rate
	ReportingModeContinuous ReportingMode = 1
	// ReportingModeOnChange reports events only when the value changes
	ReportingModeOnChange ReportingMode = 2
	// ReportingModeOneShot deactivates the sensor after delivering a single event
	ReportingModeOneShot ReportingMode = 3
)

var reportingModeNames = map[ReportingMode]string{
	ReportingModeContinuous: "continuous",
	ReportingModeOnChange:   "on-change",
	ReportingModeOneShot:    "one-shot",
}

// IsValid reports whether m is one of the three defined modes
func (m ReportingMode) IsValid() bool {
	_, ok := reportingModeNames[m]
	return ok
}

func (m ReportingMode) String() string {
	if name, ok := reportingModeNames[m]; ok {
		return name
	}
	return fmt.Sprintf("ReportingMode(%d)", int(m))
}

// MarshalText encodes the mode by name
func (m ReportingMode) MarshalText() ([]byte, error) {
	if !m.IsValid() {
		return nil, fmt.Errorf("invalid reporting mode: %d", int(m))
	}
	return []byte(m.String()), nil
}

// UnmarshalText decodes a mode name
func (m *ReportingMode) UnmarshalText(text []byte) error {
	parsed, err := ParseReportingMode(string(text))
	if err != nil {
		return err
	}
	*m = parsed
	return nil
}

// ParseReportingMode parses a reporting mode name
func ParseReportingMode(s string) (ReportingMode, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	for mode, name := range reportingModeNames {
		if name == s {
			return mode, nil
		}
	}
	return 0, fmt.Errorf("invalid reporting mode: %q (valid: continuous, on-change, one-shot)", s)
}
