package server

import (
	"net/http"

	"github.com/google/uuid"
)

// getCatalogHandler returns the summary of the current snapshot
func (rm *RouteManager) getCatalogHandler(w http.ResponseWriter, r *http.Request) {
	rm.respondJSON(w, http.StatusOK, rm.catalog.Snapshot().Summary())
}

// refreshCatalogHandler enumerates the sources again and returns the new summary
func (rm *RouteManager) refreshCatalogHandler(w http.ResponseWriter, r *http.Request) {
	subject := ""
	if claims := ClaimsFromContext(r.Context()); claims != nil {
		subject = claims.Subject
	}

	snapshot, err := rm.catalog.Refresh(r.Context())
	if snapshot.ID == uuid.Nil {
		rm.logger.Errorw("Catalog refresh failed", "subject", subject, "error", err)
		http.Error(w, "Failed to refresh catalog", http.StatusBadGateway)
		return
	}
	if err != nil {
		// the snapshot is published, only persisting or announcing it failed
		rm.logger.Warnw("Catalog refreshed with errors", "subject", subject, "error", err)
	}

	rm.logger.Infow("Catalog refreshed via API", "subject", subject, "id", snapshot.ID)
	rm.respondJSON(w, http.StatusOK, snapshot.Summary())
}
