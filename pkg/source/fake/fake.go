// Package fake implements a virtual sensor source exposing one sensor per type.
package fake

import (
	"context"
	"fmt"
	"strconv"

	"github.com/sguter90/sensormaestro/pkg/models"
)

const defaultVendor = "sensormaestro"

// Source is a fake sensor source that always returns the same virtual device
type Source struct{}

// NewSource creates a new fake source
func NewSource() *Source {
	return &Source{}
}

func (s *Source) GetSourceType() string {
	return "fake"
}

func (s *Source) ValidateConfig(config map[string]string) error {
	if base, ok := config["handle_base"]; ok {
		n, err := strconv.Atoi(base)
		if err != nil || n < 0 {
			return fmt.Errorf("handle_base must be a non-negative integer, got %q", base)
		}
	}
	return nil
}

func (s *Source) Enumerate(ctx context.Context, config map[string]string) ([]models.SensorInfo, error) {
	if err := s.ValidateConfig(config); err != nil {
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	vendor := config["vendor"]
	if vendor == "" {
		vendor = defaultVendor
	}

	handleBase := 0
	if base, ok := config["handle_base"]; ok {
		handleBase, _ = strconv.Atoi(base)
	}

	sensors := GetSupportedFakeSensors()
	for i := range sensors {
		sensors[i].Vendor = vendor
		sensors[i].Handle += handleBase
	}
	return sensors, nil
}
