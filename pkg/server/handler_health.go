package server

import (
	"net/http"
)

// healthHandler returns server health status
func (rm *RouteManager) healthHandler(w http.ResponseWriter, r *http.Request) {
	status := map[string]string{
		"status":  "ok",
		"service": "sensormaestro",
		"version": rm.version,
	}

	code := http.StatusOK
	if rm.database != nil {
		if rm.database.IsConnectionHealthy() {
			status["database"] = "ok"
		} else {
			status["status"] = "degraded"
			status["database"] = "unavailable"
			code = http.StatusServiceUnavailable
		}
	}

	rm.respondJSON(w, code, status)
}
