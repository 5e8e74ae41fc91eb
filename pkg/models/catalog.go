package models

import (
	"time"

	"github.com/google/uuid"
)

// CatalogSnapshot is one complete enumeration of the sensor catalog.
// A snapshot replaces its predecessor as a whole.
type CatalogSnapshot struct {
	ID          uuid.UUID    `json:"id"`
	RefreshedAt time.Time    `json:"refreshed_at"`
	Sources     []string     `json:"sources"`
	Sensors     []SensorInfo `json:"sensors"`
}

// CatalogSummary describes a snapshot without its sensors
type CatalogSummary struct {
	ID          uuid.UUID      `json:"id"`
	RefreshedAt time.Time      `json:"refreshed_at"`
	Sources     []string       `json:"sources"`
	SensorCount int            `json:"sensor_count"`
	Types       map[string]int `json:"types,omitempty"`
}

// Summary counts the sensors of the snapshot per type name
func (s CatalogSnapshot) Summary() CatalogSummary {
	types := make(map[string]int)
	for _, info := range s.Sensors {
		types[info.Type.String()]++
	}

	return CatalogSummary{
		ID:          s.ID,
		RefreshedAt: s.RefreshedAt,
		Sources:     s.Sources,
		SensorCount: len(s.Sensors),
		Types:       types,
	}
}

// SensorTypeDetail is the public view of a sensor type
type SensorTypeDetail struct {
	Type          SensorType `json:"type"`
	Name          string     `json:"name"`
	Unit          string     `json:"unit"`
	ReportingMode string     `json:"reporting_mode"`
	Deprecated    bool       `json:"deprecated,omitempty"`
}

// SensorTypeDetails lists every registered sensor type in code order
func SensorTypeDetails() []SensorTypeDetail {
	types := SensorTypes()
	details := make([]SensorTypeDetail, 0, len(types))
	for _, t := range types {
		info, _ := t.Info()
		details = append(details, SensorTypeDetail{
			Type:          t,
			Name:          info.Name,
			Unit:          info.Unit,
			ReportingMode: info.ReportingMode.String(),
			Deprecated:    info.Deprecated,
		})
	}
	return details
}
