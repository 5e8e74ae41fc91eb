package database

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	_ "github.com/lib/pq"
	"go.uber.org/multierr"
	"go.uber.org/zap"
)

// DatabaseManager handles all database operations
type DatabaseManager struct {
	healthChecker *HealthChecker
	logger        *zap.SugaredLogger
}

// NewDatabaseManager connects to the database described by cfg and starts
// health checking
func NewDatabaseManager(cfg Config, logger *zap.SugaredLogger) (*DatabaseManager, error) {
	if logger == nil {
		logger = zap.NewNop().Sugar()
	}

	connect := func() (*sql.DB, error) {
		return connectDatabase(cfg)
	}

	db, err := connect()
	if err != nil {
		return nil, err
	}

	dm := &DatabaseManager{
		healthChecker: NewHealthChecker(db, 30*time.Second, WithReconnect(connect), WithHealthLogger(logger)),
		logger:        logger,
	}

	dm.healthChecker.Start()

	return dm, nil
}

// GetDB returns the underlying database connection
func (dm *DatabaseManager) GetDB() *sql.DB {
	return dm.healthChecker.DB()
}

// Close closes the database connection and stops health checking
func (dm *DatabaseManager) Close() error {
	if dm.healthChecker == nil {
		return nil
	}
	dm.healthChecker.Stop()

	if db := dm.healthChecker.DB(); db != nil {
		return db.Close()
	}
	return nil
}

// QueryWithHealthCheck executes a query with connection health verification
func (dm *DatabaseManager) QueryWithHealthCheck(ctx context.Context, query string, args ...interface{}) (*sql.Rows, error) {
	if err := dm.healthChecker.EnsureConnection(ctx); err != nil {
		return nil, err
	}

	return dm.GetDB().QueryContext(ctx, query, args...)
}

// Row is the result of QueryRowWithHealthCheck. Scan reports the health
// check failure instead of sql.ErrNoRows when the connection is down.
type Row struct {
	row *sql.Row
	err error
}

// Scan copies the columns of the row into dest
func (r *Row) Scan(dest ...interface{}) error {
	if r.err != nil {
		return r.err
	}
	return r.row.Scan(dest...)
}

// Err returns the health check or query error, if any
func (r *Row) Err() error {
	if r.err != nil {
		return r.err
	}
	return r.row.Err()
}

// QueryRowWithHealthCheck executes a query that returns a single row with health check
func (dm *DatabaseManager) QueryRowWithHealthCheck(ctx context.Context, query string, args ...interface{}) *Row {
	if err := dm.healthChecker.EnsureConnection(ctx); err != nil {
		return &Row{err: err}
	}

	return &Row{row: dm.GetDB().QueryRowContext(ctx, query, args...)}
}

// ExecWithHealthCheck executes a statement with connection health verification
func (dm *DatabaseManager) ExecWithHealthCheck(ctx context.Context, query string, args ...interface{}) (sql.Result, error) {
	if err := dm.healthChecker.EnsureConnection(ctx); err != nil {
		return nil, err
	}

	return dm.GetDB().ExecContext(ctx, query, args...)
}

// WithTx runs fn in a transaction that is committed when fn succeeds
func (dm *DatabaseManager) WithTx(ctx context.Context, fn func(tx *sql.Tx) error) (err error) {
	if err := dm.healthChecker.EnsureConnection(ctx); err != nil {
		return err
	}

	tx, err := dm.GetDB().BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to start transaction: %w", err)
	}

	if err := fn(tx); err != nil {
		return multierr.Append(err, tx.Rollback())
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}
	return nil
}

// IsConnectionHealthy returns the current health status
func (dm *DatabaseManager) IsConnectionHealthy() bool {
	return dm.healthChecker.IsHealthy()
}

// Init initializes the database with migrations
func (dm *DatabaseManager) Init(ctx context.Context) error {
	dm.logger.Info("Running database migrations")

	runner, err := NewMigrationsRunner(dm.GetDB(), WithMigrationsLogger(dm.logger))
	if err != nil {
		return fmt.Errorf("failed to create migration runner: %w", err)
	}

	if err := runner.Run(ctx); err != nil {
		return fmt.Errorf("failed to run migrations: %w", err)
	}

	dm.logger.Info("Database initialization completed")
	return nil
}

// connectDatabase establishes a connection to the database
func connectDatabase(cfg Config) (*sql.DB, error) {
	db, err := sql.Open("postgres", cfg.DSN())
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := db.PingContext(ctx); err != nil {
		return nil, multierr.Append(fmt.Errorf("failed to ping database: %w", err), db.Close())
	}

	if cfg.MaxOpenConns > 0 {
		db.SetMaxOpenConns(cfg.MaxOpenConns)
	}
	if cfg.MaxIdleConns > 0 {
		db.SetMaxIdleConns(cfg.MaxIdleConns)
	}

	return db, nil
}
