package database

import (
	"context"
	"database/sql"
	"fmt"
	"sync"
	"time"

	"go.uber.org/zap"
)

// HealthChecker monitors and maintains database connection health
type HealthChecker struct {
	db            *sql.DB
	checkInterval time.Duration
	stopChan      chan struct{}
	stopOnce      sync.Once
	ticker        *time.Ticker
	mu            sync.RWMutex
	isHealthy     bool
	connect       func() (*sql.DB, error)
	logger        *zap.SugaredLogger
}

// HealthCheckerOption configures a HealthChecker
type HealthCheckerOption func(*HealthChecker)

// WithReconnect sets the function used to replace a broken connection
func WithReconnect(connect func() (*sql.DB, error)) HealthCheckerOption {
	return func(chc *HealthChecker) {
		chc.connect = connect
	}
}

// WithHealthLogger sets the logger for health transitions
func WithHealthLogger(logger *zap.SugaredLogger) HealthCheckerOption {
	return func(chc *HealthChecker) {
		chc.logger = logger
	}
}

// NewHealthChecker creates a new health checker
func NewHealthChecker(db *sql.DB, checkInterval time.Duration, opts ...HealthCheckerOption) *HealthChecker {
	chc := &HealthChecker{
		db:            db,
		checkInterval: checkInterval,
		stopChan:      make(chan struct{}),
		isHealthy:     true,
		logger:        zap.NewNop().Sugar(),
	}
	for _, opt := range opts {
		opt(chc)
	}
	return chc
}

// Start begins monitoring the database connection
func (chc *HealthChecker) Start() {
	chc.ticker = time.NewTicker(chc.checkInterval)

	go func() {
		for {
			select {
			case <-chc.stopChan:
				chc.ticker.Stop()
				return
			case <-chc.ticker.C:
				chc.checkConnection()
			}
		}
	}()
}

// Stop stops monitoring the database connection
func (chc *HealthChecker) Stop() {
	chc.stopOnce.Do(func() {
		close(chc.stopChan)
	})
}

// DB returns the current connection. It changes after a reconnect.
func (chc *HealthChecker) DB() *sql.DB {
	chc.mu.RLock()
	defer chc.mu.RUnlock()
	return chc.db
}

// checkConnection performs a health check on the database connection
func (chc *HealthChecker) checkConnection() {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	err := chc.DB().PingContext(ctx)

	chc.mu.Lock()
	defer chc.mu.Unlock()

	if err != nil {
		chc.logger.Errorw("Database connection health check failed", "error", err)
		chc.isHealthy = false

		if err := chc.reconnect(); err != nil {
			chc.logger.Errorw("Failed to reconnect to database", "error", err)
		}
		return
	}

	if !chc.isHealthy {
		chc.logger.Info("Database connection restored")
	}
	chc.isHealthy = true
}

// reconnect attempts to re-establish the database connection. Callers hold mu.
func (chc *HealthChecker) reconnect() error {
	if chc.connect == nil {
		return fmt.Errorf("no reconnect function configured")
	}

	newDB, err := chc.connect()
	if err != nil {
		return err
	}

	if chc.db != nil {
		chc.db.Close()
	}
	chc.db = newDB
	chc.isHealthy = true
	chc.logger.Info("Database connection re-established")
	return nil
}

// IsHealthy returns the current health status of the connection
func (chc *HealthChecker) IsHealthy() bool {
	chc.mu.RLock()
	defer chc.mu.RUnlock()
	return chc.isHealthy
}

// EnsureConnection ensures the connection is healthy before executing a query
func (chc *HealthChecker) EnsureConnection(ctx context.Context) error {
	chc.mu.RLock()
	isHealthy := chc.isHealthy
	db := chc.db
	chc.mu.RUnlock()

	if !isHealthy {
		return fmt.Errorf("database connection is not healthy")
	}

	// Perform a quick ping to verify
	pingCtx, cancel := context.WithTimeout(ctx, 2*time.Second)
	defer cancel()

	if err := db.PingContext(pingCtx); err != nil {
		if ctx.Err() != nil {
			return fmt.Errorf("database connection check aborted: %w", ctx.Err())
		}
		chc.mu.Lock()
		chc.isHealthy = false
		chc.mu.Unlock()
		return fmt.Errorf("database connection check failed: %w", err)
	}

	return nil
}
