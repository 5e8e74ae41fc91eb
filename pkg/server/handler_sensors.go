package server

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"
	"github.com/sguter90/sensormaestro/pkg/catalog"
	"github.com/sguter90/sensormaestro/pkg/models"
)

// getSensorsHandler returns the sensors of the current catalog
// Query params:
//   - type: sensor type name or code, "all" when omitted
//   - vendor: exact vendor match
//   - name: exact name match
func (rm *RouteManager) getSensorsHandler(w http.ResponseWriter, r *http.Request) {
	params, err := parseSensorQueryParams(r)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	sensors, err := rm.catalog.Query(params)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	rm.respondJSON(w, http.StatusOK, sensorInfos(sensors))
}

// getSensorHandler returns a single sensor by handle
func (rm *RouteManager) getSensorHandler(w http.ResponseWriter, r *http.Request) {
	handle, err := strconv.Atoi(mux.Vars(r)["handle"])
	if err != nil {
		http.Error(w, "Invalid handle format", http.StatusBadRequest)
		return
	}

	sensor, err := rm.catalog.SensorByHandle(handle)
	if err != nil {
		http.Error(w, "Sensor not found", http.StatusNotFound)
		return
	}

	rm.respondJSON(w, http.StatusOK, sensor)
}

// getDefaultSensorHandler returns the first sensor of a type
func (rm *RouteManager) getDefaultSensorHandler(w http.ResponseWriter, r *http.Request) {
	sensorType, err := models.ParseSensorType(mux.Vars(r)["type"])
	if err != nil || sensorType == models.SensorTypeAll {
		http.Error(w, "unknown sensor type", http.StatusNotFound)
		return
	}

	sensor, err := rm.catalog.DefaultSensor(sensorType)
	if errors.Is(err, catalog.ErrSensorNotFound) || errors.Is(err, models.ErrUnknownSensorType) {
		http.Error(w, "Sensor not found", http.StatusNotFound)
		return
	}
	if err != nil {
		rm.logger.Errorw("Failed to look up default sensor", "type", sensorType, "error", err)
		http.Error(w, "Failed to look up default sensor", http.StatusInternalServerError)
		return
	}

	rm.respondJSON(w, http.StatusOK, sensor)
}

// getSensorTypesHandler lists every known sensor type
func (rm *RouteManager) getSensorTypesHandler(w http.ResponseWriter, r *http.Request) {
	rm.respondJSON(w, http.StatusOK, models.SensorTypeDetails())
}

// getReportingModeHandler returns the reporting mode of a sensor type
func (rm *RouteManager) getReportingModeHandler(w http.ResponseWriter, r *http.Request) {
	sensorType, err := models.ParseSensorType(mux.Vars(r)["type"])
	if err != nil {
		http.Error(w, "unknown sensor type", http.StatusNotFound)
		return
	}

	mode, err := models.ReportingModeOf(sensorType)
	if err != nil {
		http.Error(w, "unknown sensor type", http.StatusNotFound)
		return
	}

	rm.respondJSON(w, http.StatusOK, map[string]interface{}{
		"type":           sensorType,
		"name":           sensorType.String(),
		"reporting_mode": mode,
	})
}

// parseSensorQueryParams extracts and parses query parameters from the request
func parseSensorQueryParams(r *http.Request) (models.SensorQueryParams, error) {
	query := r.URL.Query()

	params := models.SensorQueryParams{
		Type:   models.SensorTypeAll,
		Vendor: query.Get("vendor"),
		Name:   query.Get("name"),
	}

	if raw := query.Get("type"); raw != "" {
		sensorType, err := models.ParseSensorType(raw)
		if err != nil {
			return params, err
		}
		params.Type = sensorType
	}

	return params, nil
}

func sensorInfos(sensors []*models.Sensor) []models.SensorInfo {
	infos := make([]models.SensorInfo, 0, len(sensors))
	for _, s := range sensors {
		infos = append(infos, s.Info())
	}
	return infos
}
