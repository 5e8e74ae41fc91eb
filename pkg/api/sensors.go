package api

import (
	"context"
	"fmt"
	"net/url"
	"strconv"

	"github.com/sguter90/sensormaestro/pkg/models"
)

// SensorFilter restricts ListSensors. The zero value lists every sensor.
type SensorFilter struct {
	Type   models.SensorType
	Vendor string
	Name   string
}

// ListSensors retrieves the sensors of the current catalog
func (c *Client) ListSensors(ctx context.Context, filter SensorFilter) ([]models.SensorInfo, error) {
	params := url.Values{}

	if filter.Type != 0 {
		params.Set("type", strconv.Itoa(int(filter.Type)))
	}
	if filter.Vendor != "" {
		params.Set("vendor", filter.Vendor)
	}
	if filter.Name != "" {
		params.Set("name", filter.Name)
	}

	path := "/api/v1/sensors"
	if len(params) > 0 {
		path += "?" + params.Encode()
	}

	var sensors []models.SensorInfo
	if err := c.getJSON(ctx, path, &sensors); err != nil {
		return nil, err
	}

	return sensors, nil
}

// GetSensor retrieves a sensor by handle
func (c *Client) GetSensor(ctx context.Context, handle int) (*models.SensorInfo, error) {
	var sensor models.SensorInfo
	if err := c.getJSON(ctx, fmt.Sprintf("/api/v1/sensors/%d", handle), &sensor); err != nil {
		return nil, err
	}

	return &sensor, nil
}

// DefaultSensor retrieves the default sensor of a type
func (c *Client) DefaultSensor(ctx context.Context, sensorType models.SensorType) (*models.SensorInfo, error) {
	var sensor models.SensorInfo
	if err := c.getJSON(ctx, fmt.Sprintf("/api/v1/sensors/default/%d", int(sensorType)), &sensor); err != nil {
		return nil, err
	}

	return &sensor, nil
}

// ListSensorTypes retrieves every known sensor type
func (c *Client) ListSensorTypes(ctx context.Context) ([]models.SensorTypeDetail, error) {
	var types []models.SensorTypeDetail
	if err := c.getJSON(ctx, "/api/v1/sensor-types", &types); err != nil {
		return nil, err
	}

	return types, nil
}

// ReportingModeResponse is returned by the reporting mode endpoint
type ReportingModeResponse struct {
	Type          models.SensorType    `json:"type"`
	Name          string               `json:"name"`
	ReportingMode models.ReportingMode `json:"reporting_mode"`
}

// ReportingMode retrieves the reporting mode of a sensor type.
// Unknown types fail with an *Error carrying status 404.
func (c *Client) ReportingMode(ctx context.Context, sensorType models.SensorType) (models.ReportingMode, error) {
	var resp ReportingModeResponse
	path := fmt.Sprintf("/api/v1/sensor-types/%d/reporting-mode", int(sensorType))
	if err := c.getJSON(ctx, path, &resp); err != nil {
		return 0, err
	}

	return resp.ReportingMode, nil
}
