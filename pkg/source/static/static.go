// Package static implements a sensor source backed by a YAML or JSON file.
package static

import (
	"context"
	"fmt"
	"os"

	"github.com/sguter90/sensormaestro/pkg/models"
	"gopkg.in/yaml.v3"
)

// File is the on-disk layout of a static sensor list
type File struct {
	Vendor  string       `yaml:"vendor"`
	Sensors []FileSensor `yaml:"sensors"`
}

// FileSensor is one entry of a static sensor list. Type accepts a type name or code.
type FileSensor struct {
	Name       string  `yaml:"name"`
	Vendor     string  `yaml:"vendor"`
	Version    int     `yaml:"version"`
	Handle     int     `yaml:"handle"`
	Type       string  `yaml:"type"`
	MaxRange   float64 `yaml:"max_range"`
	Resolution float64 `yaml:"resolution"`
	Power      float64 `yaml:"power"`
	MinDelay   int     `yaml:"min_delay"`
}

// Source reads sensors from the file named by the "path" config key
type Source struct{}

// NewSource creates a new static file source
func NewSource() *Source {
	return &Source{}
}

func (s *Source) GetSourceType() string {
	return "static"
}

// PrimaryConfigKey lets "static:/etc/sensors.yaml" stand for "static:path=/etc/sensors.yaml"
func (s *Source) PrimaryConfigKey() string {
	return "path"
}

func (s *Source) ValidateConfig(config map[string]string) error {
	if config["path"] == "" {
		return fmt.Errorf("path is required")
	}
	return nil
}

func (s *Source) Enumerate(ctx context.Context, config map[string]string) ([]models.SensorInfo, error) {
	if err := s.ValidateConfig(config); err != nil {
		return nil, err
	}

	data, err := os.ReadFile(config["path"])
	if err != nil {
		return nil, fmt.Errorf("failed to read sensor file: %w", err)
	}

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	return Parse(data)
}

// Parse decodes a sensor list
func Parse(data []byte) ([]models.SensorInfo, error) {
	var file File
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("failed to parse sensor file: %w", err)
	}

	sensors := make([]models.SensorInfo, 0, len(file.Sensors))
	for i, fs := range file.Sensors {
		sensorType, err := models.ParseSensorType(fs.Type)
		if err != nil {
			return nil, fmt.Errorf("sensor #%d (%s): %w", i+1, fs.Name, err)
		}

		vendor := fs.Vendor
		if vendor == "" {
			vendor = file.Vendor
		}

		sensors = append(sensors, models.SensorInfo{
			Name:       fs.Name,
			Vendor:     vendor,
			Version:    fs.Version,
			Handle:     fs.Handle,
			Type:       sensorType,
			MaxRange:   fs.MaxRange,
			Resolution: fs.Resolution,
			Power:      fs.Power,
			MinDelay:   fs.MinDelay,
		})
	}

	return sensors, nil
}
