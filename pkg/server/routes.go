// Package server exposes the sensor catalog over HTTP.
package server

import (
	"context"
	"net/http"

	"github.com/gorilla/mux"
	"github.com/sguter90/sensormaestro/pkg/models"
	"go.uber.org/zap"
)

// Catalog is the part of the catalog service the API serves
type Catalog interface {
	Sensors(t models.SensorType) []*models.Sensor
	DefaultSensor(t models.SensorType) (*models.Sensor, error)
	SensorByHandle(handle int) (*models.Sensor, error)
	Query(params models.SensorQueryParams) ([]*models.Sensor, error)
	Snapshot() models.CatalogSnapshot
	Refresh(ctx context.Context) (models.CatalogSnapshot, error)
}

// HealthReporter reports the state of an optional dependency such as the database
type HealthReporter interface {
	IsConnectionHealthy() bool
}

// Option configures a RouteManager
type Option func(*RouteManager)

// WithAllowedOrigins sets the origins answered with CORS headers
func WithAllowedOrigins(origins []string) Option {
	return func(rm *RouteManager) {
		rm.allowedOrigins = origins
	}
}

// WithJWTSecret sets the HS256 secret protecting write endpoints
func WithJWTSecret(secret string) Option {
	return func(rm *RouteManager) {
		rm.jwtSecret = []byte(secret)
	}
}

// WithDatabase reports the database state on /health
func WithDatabase(db HealthReporter) Option {
	return func(rm *RouteManager) {
		rm.database = db
	}
}

// WithVersion sets the version reported on /health
func WithVersion(version string) Option {
	return func(rm *RouteManager) {
		rm.version = version
	}
}

// RouteManager handles all API routes
type RouteManager struct {
	catalog        Catalog
	database       HealthReporter
	logger         *zap.SugaredLogger
	allowedOrigins []string
	jwtSecret      []byte
	version        string
	Router         *mux.Router
}

// NewRouteManager creates a new RouteManager instance
func NewRouteManager(catalog Catalog, logger *zap.SugaredLogger, opts ...Option) *RouteManager {
	if logger == nil {
		logger = zap.NewNop().Sugar()
	}

	rm := &RouteManager{
		catalog: catalog,
		logger:  logger,
		version: "dev",
		Router:  mux.NewRouter(),
	}
	for _, opt := range opts {
		opt(rm)
	}
	return rm
}

// Setup configures all API routes
func (rm *RouteManager) Setup() {
	r := rm.Router
	r.Use(rm.loggingMiddleware)
	r.Use(rm.corsMiddleware)

	// Global OPTIONS handler - catches all preflight requests
	r.Methods(http.MethodOptions).HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	})

	r.HandleFunc("/health", rm.healthHandler).Methods(http.MethodGet)

	api := r.PathPrefix("/api/v1").Subrouter()
	rm.setupAPIRoutes(api)
}

// setupAPIRoutes configures all API v1 routes
func (rm *RouteManager) setupAPIRoutes(api *mux.Router) {
	// Sensors
	api.HandleFunc("/sensors", rm.getSensorsHandler).Methods(http.MethodGet)
	api.HandleFunc("/sensors/default/{type}", rm.getDefaultSensorHandler).Methods(http.MethodGet)
	api.HandleFunc("/sensors/{handle:-?[0-9]+}", rm.getSensorHandler).Methods(http.MethodGet)

	// Sensor types
	api.HandleFunc("/sensor-types", rm.getSensorTypesHandler).Methods(http.MethodGet)
	api.HandleFunc("/sensor-types/{type}/reporting-mode", rm.getReportingModeHandler).Methods(http.MethodGet)

	// Catalog
	api.HandleFunc("/catalog", rm.getCatalogHandler).Methods(http.MethodGet)

	// Protected endpoints (auth required)
	protected := api.PathPrefix("").Subrouter()
	protected.Use(rm.JWTAuthMiddleware)
	protected.HandleFunc("/catalog/refresh", rm.refreshCatalogHandler).Methods(http.MethodPost)
}
