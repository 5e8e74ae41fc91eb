// Package remote implements a sensor source that mirrors another sensormaestro instance.
package remote

import (
	"context"
	"fmt"
	"net/url"
	"time"

	"github.com/sguter90/sensormaestro/pkg/api"
	"github.com/sguter90/sensormaestro/pkg/models"
)

const defaultTimeout = 10 * time.Second

// Source enumerates the catalog of the instance at the "url" config key
type Source struct {
	opts []api.ClientOption
}

// NewSource creates a new remote source. opts are applied to every client it creates.
func NewSource(opts ...api.ClientOption) *Source {
	return &Source{opts: opts}
}

func (s *Source) GetSourceType() string {
	return "remote"
}

// PrimaryConfigKey lets "remote:http://host:8059" stand for "remote:url=http://host:8059"
func (s *Source) PrimaryConfigKey() string {
	return "url"
}

func (s *Source) ValidateConfig(config map[string]string) error {
	rawURL := config["url"]
	if rawURL == "" {
		return fmt.Errorf("url is required")
	}

	u, err := url.Parse(rawURL)
	if err != nil || u.Scheme == "" || u.Host == "" {
		return fmt.Errorf("invalid url: %q", rawURL)
	}

	if timeout, ok := config["timeout"]; ok {
		if _, err := time.ParseDuration(timeout); err != nil {
			return fmt.Errorf("invalid timeout: %w", err)
		}
	}

	return nil
}

func (s *Source) Enumerate(ctx context.Context, config map[string]string) ([]models.SensorInfo, error) {
	if err := s.ValidateConfig(config); err != nil {
		return nil, err
	}

	timeout := defaultTimeout
	if raw, ok := config["timeout"]; ok {
		timeout, _ = time.ParseDuration(raw)
	}

	opts := append([]api.ClientOption{api.WithTimeout(timeout)}, s.opts...)
	client := api.NewClient(config["url"], opts...)

	sensors, err := client.ListSensors(ctx, api.SensorFilter{})
	if err != nil {
		return nil, fmt.Errorf("failed to list remote sensors: %w", err)
	}

	// derived fields are recomputed by the local catalog
	for i := range sensors {
		sensors[i].TypeName = ""
		sensors[i].ReportingMode = ""
	}

	return sensors, nil
}
