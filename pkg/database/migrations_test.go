package database

import (
	"context"
	"strings"
	"testing"
)

func TestLoadMigrations(t *testing.T) {
	// loading only reads the embedded files
	runner, err := NewMigrationsRunner(nil)
	if err != nil {
		t.Fatalf("Expected NewMigrationsRunner to succeed: %v", err)
	}

	if runner.logger == nil {
		t.Error("Expected logger to be initialized")
	}

	if len(runner.migrations) == 0 {
		t.Fatal("Expected at least one migration to be loaded")
	}

	for i := 1; i < len(runner.migrations); i++ {
		if runner.migrations[i-1].Version >= runner.migrations[i].Version {
			t.Errorf("Expected migrations to be sorted by version, but %d >= %d",
				runner.migrations[i-1].Version, runner.migrations[i].Version)
		}
	}

	first := runner.migrations[0]
	if first.Version != 1 {
		t.Errorf("Expected first migration version 1, got %d", first.Version)
	}
	if first.Name != "create_sensor_catalog" {
		t.Errorf("Expected name 'create_sensor_catalog', got '%s'", first.Name)
	}
	if !strings.Contains(first.SQL, "catalog_snapshots") {
		t.Error("Expected first migration to create catalog_snapshots")
	}

	for _, migration := range runner.migrations {
		if strings.Contains(migration.Name, ".down") {
			t.Errorf("Expected down migrations to be skipped, got %s", migration.Name)
		}
	}
}

func TestEnableDisableLogging(t *testing.T) {
	runner, err := NewMigrationsRunner(nil)
	if err != nil {
		t.Fatalf("Expected NewMigrationsRunner to succeed: %v", err)
	}

	configured := runner.logger
	runner.DisableLogging()
	if runner.logger == configured {
		t.Error("Expected DisableLogging to replace the logger")
	}

	runner.EnableLogging()
	if runner.logger != configured {
		t.Error("Expected EnableLogging to restore the configured logger")
	}
}

func TestRun(t *testing.T) {
	db := setupTestDB(t)
	if db == nil {
		t.Skip("Skipping test that requires real database connection")
	}
	defer db.Close()

	if err := dropAllTables(db); err != nil {
		t.Fatalf("Failed to drop tables: %v", err)
	}

	runner, err := NewMigrationsRunner(db)
	if err != nil {
		t.Fatalf("Expected NewMigrationsRunner to succeed: %v", err)
	}

	ctx := context.Background()
	if err := runner.Run(ctx); err != nil {
		t.Fatalf("Expected Run to succeed: %v", err)
	}
	if err := runner.Run(ctx); err != nil {
		t.Fatalf("Expected second Run to succeed: %v", err)
	}

	applied, err := runner.getAppliedMigrations(ctx)
	if err != nil {
		t.Fatalf("Expected getAppliedMigrations to succeed: %v", err)
	}
	if len(applied) != len(runner.migrations) {
		t.Errorf("Expected %d migrations, got %d", len(runner.migrations), len(applied))
	}
}

func TestRun_TransactionRollback(t *testing.T) {
	db := setupTestDB(t)
	if db == nil {
		t.Skip("Skipping test that requires real database connection")
	}
	defer db.Close()

	if err := dropAllTables(db); err != nil {
		t.Fatalf("Failed to drop tables: %v", err)
	}

	runner, err := NewMigrationsRunner(db)
	if err != nil {
		t.Fatalf("Expected NewMigrationsRunner to succeed: %v", err)
	}

	runner.migrations = append(runner.migrations, Migration{
		Version: 99999,
		Name:    "invalid_migration",
		SQL:     "THIS IS INVALID SQL;",
	})

	ctx := context.Background()
	err = runner.Run(ctx)
	if err == nil {
		t.Fatal("Expected Run to fail with invalid SQL")
	}
	if !strings.Contains(err.Error(), "failed to apply migration") {
		t.Errorf("Expected error message to contain 'failed to apply migration', got: %v", err)
	}

	applied, err := runner.getAppliedMigrations(ctx)
	if err != nil {
		t.Fatalf("Expected getAppliedMigrations to succeed: %v", err)
	}
	if applied[99999] {
		t.Error("Expected invalid migration to not be recorded")
	}
}
