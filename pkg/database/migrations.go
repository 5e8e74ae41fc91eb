package database

import (
	"context"
	"database/sql"
	"embed"
	"fmt"
	"sort"
	"strings"

	"go.uber.org/zap"
)

//go:embed sql/*.sql
var migrationFiles embed.FS

// Migration represents a single database migration
type Migration struct {
	Version int
	Name    string
	SQL     string
}

// MigrationsRunner handles database migrations
type MigrationsRunner struct {
	db         *sql.DB
	migrations []Migration
	logger     *zap.SugaredLogger
	enabled    *zap.SugaredLogger
}

// MigrationsOption configures a MigrationsRunner
type MigrationsOption func(*MigrationsRunner)

// WithMigrationsLogger sets the logger used to report applied migrations
func WithMigrationsLogger(logger *zap.SugaredLogger) MigrationsOption {
	return func(r *MigrationsRunner) {
		r.logger = logger
	}
}

// NewMigrationsRunner creates a new migration runner
func NewMigrationsRunner(db *sql.DB, opts ...MigrationsOption) (*MigrationsRunner, error) {
	runner := &MigrationsRunner{
		db:         db,
		migrations: []Migration{},
		logger:     zap.NewNop().Sugar(),
	}
	for _, opt := range opts {
		opt(runner)
	}
	runner.enabled = runner.logger

	if err := runner.loadMigrations(); err != nil {
		return nil, fmt.Errorf("failed to load migrations: %w", err)
	}

	return runner, nil
}

// DisableLogging silences the runner
func (r *MigrationsRunner) DisableLogging() {
	r.logger = zap.NewNop().Sugar()
}

// EnableLogging restores the configured logger
func (r *MigrationsRunner) EnableLogging() {
	r.logger = r.enabled
}

// loadMigrations loads all .up.sql migration files from the embedded filesystem
func (r *MigrationsRunner) loadMigrations() error {
	entries, err := migrationFiles.ReadDir("sql")
	if err != nil {
		return fmt.Errorf("failed to read migration directory: %w", err)
	}

	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}

		filename := entry.Name()
		if !strings.HasSuffix(filename, ".up.sql") {
			continue
		}

		// 000001_name.up.sql
		prefix, rest, ok := strings.Cut(filename, "_")
		if !ok {
			continue
		}

		var version int
		if _, err := fmt.Sscanf(prefix, "%d", &version); err != nil {
			r.logger.Warnw("Skipping invalid migration file", "file", filename)
			continue
		}

		content, err := migrationFiles.ReadFile("sql/" + filename)
		if err != nil {
			return fmt.Errorf("failed to read migration file %s: %w", filename, err)
		}

		r.migrations = append(r.migrations, Migration{
			Version: version,
			Name:    strings.TrimSuffix(rest, ".up.sql"),
			SQL:     string(content),
		})
	}

	sort.Slice(r.migrations, func(i, j int) bool {
		return r.migrations[i].Version < r.migrations[j].Version
	})

	return nil
}

// createMigrationsTable creates the schema_migrations table if it doesn't exist
func (r *MigrationsRunner) createMigrationsTable(ctx context.Context) error {
	query := `
        CREATE TABLE IF NOT EXISTS schema_migrations (
            version INTEGER PRIMARY KEY,
            name VARCHAR(255) NOT NULL,
            applied_at TIMESTAMP WITH TIME ZONE DEFAULT CURRENT_TIMESTAMP
        )
    `
	_, err := r.db.ExecContext(ctx, query)
	return err
}

// getAppliedMigrations returns a set of applied migration versions
func (r *MigrationsRunner) getAppliedMigrations(ctx context.Context) (map[int]bool, error) {
	applied := make(map[int]bool)

	rows, err := r.db.QueryContext(ctx, "SELECT version FROM schema_migrations ORDER BY version")
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		var version int
		if err := rows.Scan(&version); err != nil {
			return nil, err
		}
		applied[version] = true
	}

	return applied, rows.Err()
}

// Run executes all pending migrations
func (r *MigrationsRunner) Run(ctx context.Context) error {
	if err := r.createMigrationsTable(ctx); err != nil {
		return fmt.Errorf("failed to create migrations table: %w", err)
	}

	applied, err := r.getAppliedMigrations(ctx)
	if err != nil {
		return fmt.Errorf("failed to get applied migrations: %w", err)
	}

	pending := 0
	for _, migration := range r.migrations {
		if !applied[migration.Version] {
			pending++
		}
	}

	if pending == 0 {
		r.logger.Info("No pending migrations")
		return nil
	}

	r.logger.Infow("Found pending migrations", "count", pending)

	for _, migration := range r.migrations {
		if applied[migration.Version] {
			continue
		}

		if err := r.apply(ctx, migration); err != nil {
			return err
		}

		r.logger.Infow("Applied migration", "version", migration.Version, "name", migration.Name)
	}

	r.logger.Info("All migrations completed")
	return nil
}

func (r *MigrationsRunner) apply(ctx context.Context, migration Migration) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to start transaction: %w", err)
	}

	if _, err := tx.ExecContext(ctx, migration.SQL); err != nil {
		tx.Rollback()
		return fmt.Errorf("failed to apply migration %d (%s): %w", migration.Version, migration.Name, err)
	}

	if _, err := tx.ExecContext(ctx,
		"INSERT INTO schema_migrations (version, name) VALUES ($1, $2)",
		migration.Version, migration.Name,
	); err != nil {
		tx.Rollback()
		return fmt.Errorf("failed to record migration %d: %w", migration.Version, err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit migration %d: %w", migration.Version, err)
	}
	return nil
}
