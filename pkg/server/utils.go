package server

import (
	"encoding/json"
	"net/http"
)

// respondJSON writes v as JSON with the given status code
func (rm *RouteManager) respondJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		rm.logger.Warnw("Failed to encode response", "error", err)
	}
}
