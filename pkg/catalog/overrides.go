package catalog

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// RangeOverride replaces the range reported by a source for one sensor
type RangeOverride struct {
	MaxRange   float64 `yaml:"max_range"`
	Resolution float64 `yaml:"resolution"`
}

// Validate checks that the override describes a usable range
func (o RangeOverride) Validate() error {
	if o.MaxRange < 0 || o.Resolution < 0 {
		return fmt.Errorf("range and resolution must not be negative")
	}
	if o.Resolution > o.MaxRange {
		return fmt.Errorf("resolution %v exceeds maximum range %v", o.Resolution, o.MaxRange)
	}
	return nil
}

// ParseRangeOverrides decodes a YAML document mapping sensor names to overrides
func ParseRangeOverrides(data []byte) (map[string]RangeOverride, error) {
	overrides := make(map[string]RangeOverride)
	if err := yaml.Unmarshal(data, &overrides); err != nil {
		return nil, fmt.Errorf("failed to parse range overrides: %w", err)
	}

	for name, o := range overrides {
		if err := o.Validate(); err != nil {
			return nil, fmt.Errorf("override for %q: %w", name, err)
		}
	}
	return overrides, nil
}

// LoadRangeOverrides reads range overrides from a YAML file
func LoadRangeOverrides(path string) (map[string]RangeOverride, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read range overrides: %w", err)
	}
	return ParseRangeOverrides(data)
}
