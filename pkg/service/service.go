// Package service wires configuration, storage, notification and the HTTP
// API into the long running catalog daemon.
package service

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/sguter90/sensormaestro/pkg/catalog"
	"github.com/sguter90/sensormaestro/pkg/config"
	"github.com/sguter90/sensormaestro/pkg/database"
	"github.com/sguter90/sensormaestro/pkg/notify"
	"github.com/sguter90/sensormaestro/pkg/server"
	"go.uber.org/multierr"
	"go.uber.org/zap"
)

const shutdownTimeout = 10 * time.Second

// Version is reported on /health
var Version = "dev"

// Service is the catalog daemon
type Service struct {
	cfg       config.Config
	logger    *zap.SugaredLogger
	db        *database.DatabaseManager
	publisher *notify.Publisher
	catalog   *catalog.Catalog
	routes    *server.RouteManager
}

// New connects the configured backends and builds the catalog and routes
func New(cfg config.Config, logger *zap.SugaredLogger) (*Service, error) {
	if logger == nil {
		logger = zap.NewNop().Sugar()
	}
	if len(cfg.Catalog.Sources) == 0 {
		return nil, catalog.ErrNoSources
	}

	s := &Service{cfg: cfg, logger: logger}

	opts := []catalog.Option{catalog.WithSpecs(cfg.Catalog.Sources...)}

	if cfg.Catalog.OverridesPath != "" {
		overrides, err := catalog.LoadRangeOverrides(cfg.Catalog.OverridesPath)
		if err != nil {
			return nil, err
		}
		logger.Infow("Loaded range overrides", "path", cfg.Catalog.OverridesPath, "count", len(overrides))
		opts = append(opts, catalog.WithRangeOverrides(overrides))
	}

	if cfg.Catalog.Persist {
		db, err := database.NewDatabaseManager(cfg.Database, logger.Named("database"))
		if err != nil {
			return nil, fmt.Errorf("failed to initialize database: %w", err)
		}
		s.db = db
		opts = append(opts, catalog.WithStore(db))
	}

	if cfg.MQTT.Enabled() {
		publisher, err := notify.NewPublisher(cfg.MQTT, logger.Named("mqtt"))
		if err != nil {
			return nil, multierr.Append(err, s.Close())
		}
		s.publisher = publisher
		opts = append(opts, catalog.WithPublisher(publisher))
	}

	s.catalog = catalog.New(NewSourceRegistry(), logger.Named("catalog"), opts...)

	routeOpts := []server.Option{
		server.WithAllowedOrigins(cfg.Server.AllowedOrigins),
		server.WithJWTSecret(cfg.Auth.JWTSecret),
		server.WithVersion(Version),
	}
	if s.db != nil {
		routeOpts = append(routeOpts, server.WithDatabase(s.db))
	}
	s.routes = server.NewRouteManager(s.catalog, logger.Named("http"), routeOpts...)
	s.routes.Setup()

	return s, nil
}

// Catalog returns the catalog served by the daemon
func (s *Service) Catalog() *catalog.Catalog {
	return s.catalog
}

// Handler returns the HTTP API
func (s *Service) Handler() http.Handler {
	return s.routes.Router
}

// Prepare migrates the database, restores the last snapshot and refreshes
// the catalog once. A failed refresh is not fatal when a snapshot was restored.
func (s *Service) Prepare(ctx context.Context) error {
	restored := false

	if s.db != nil {
		if err := s.db.Init(ctx); err != nil {
			return err
		}

		if _, err := s.catalog.Restore(ctx); err != nil {
			if !errors.Is(err, database.ErrNoSnapshot) {
				s.logger.Warnw("Failed to restore catalog snapshot", "error", err)
			}
		} else {
			restored = true
		}
	}

	snapshot, err := s.catalog.Refresh(ctx)
	if err != nil {
		if snapshot.ID != uuid.Nil || restored {
			s.logger.Warnw("Initial catalog refresh incomplete", "error", err)
			return nil
		}
		return fmt.Errorf("initial catalog refresh failed: %w", err)
	}

	if s.db != nil && s.cfg.Catalog.KeepSnapshots > 0 {
		if deleted, err := s.db.PruneSnapshots(ctx, s.cfg.Catalog.KeepSnapshots); err != nil {
			s.logger.Warnw("Failed to prune catalog snapshots", "error", err)
		} else if deleted > 0 {
			s.logger.Infow("Pruned catalog snapshots", "deleted", deleted)
		}
	}

	return nil
}

// Run serves the API until ctx is canceled and shuts down gracefully
func (s *Service) Run(ctx context.Context) error {
	if err := s.Prepare(ctx); err != nil {
		return err
	}

	listener, err := net.Listen("tcp", s.cfg.Server.Addr())
	if err != nil {
		return fmt.Errorf("failed to listen on %s: %w", s.cfg.Server.Addr(), err)
	}

	return s.Serve(ctx, listener)
}

// Serve serves the API on listener until ctx is canceled
func (s *Service) Serve(ctx context.Context, listener net.Listener) error {
	if interval := s.cfg.Catalog.RefreshInterval; interval > 0 {
		s.catalog.Start(interval)
		defer s.catalog.Stop()
	}

	httpServer := &http.Server{
		Handler:      s.routes.Router,
		ReadTimeout:  s.cfg.Server.ReadTimeout,
		WriteTimeout: s.cfg.Server.WriteTimeout,
	}

	errChan := make(chan error, 1)
	go func() {
		s.logger.Infow("Starting SensorMaestro server", "addr", listener.Addr().String())
		errChan <- httpServer.Serve(listener)
	}()

	select {
	case err := <-errChan:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("failed to start server: %w", err)
		}
		return nil
	case <-ctx.Done():
		s.logger.Info("Shutdown signal received")
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("server shutdown failed: %w", err)
	}
	return nil
}

// Close releases the database connection and the MQTT session
func (s *Service) Close() error {
	var err error
	if s.publisher != nil {
		s.publisher.Close()
	}
	if s.db != nil {
		err = multierr.Append(err, s.db.Close())
	}
	return err
}
