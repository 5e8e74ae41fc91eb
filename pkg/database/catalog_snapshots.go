package database

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/lib/pq"
	"github.com/sguter90/sensormaestro/pkg/models"
)

// ErrNoSnapshot is returned when no catalog snapshot has been stored yet
var ErrNoSnapshot = errors.New("no catalog snapshot stored")

// SaveSnapshot stores a snapshot and its sensors in a single transaction
func (dm *DatabaseManager) SaveSnapshot(ctx context.Context, snapshot models.CatalogSnapshot) error {
	sources := snapshot.Sources
	if sources == nil {
		sources = []string{}
	}

	return dm.WithTx(ctx, func(tx *sql.Tx) error {
		_, err := tx.ExecContext(ctx, `
            INSERT INTO catalog_snapshots (id, refreshed_at, sources)
            VALUES ($1, $2, $3)
        `, snapshot.ID, snapshot.RefreshedAt, pq.Array(sources))
		if err != nil {
			return fmt.Errorf("failed to insert snapshot %s: %w", snapshot.ID, err)
		}

		stmt, err := tx.PrepareContext(ctx, `
            INSERT INTO sensors (snapshot_id, handle, name, vendor, version, sensor_type,
                                 max_range, resolution, power, min_delay)
            VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
        `)
		if err != nil {
			return fmt.Errorf("failed to prepare sensor insert: %w", err)
		}
		defer stmt.Close()

		for _, s := range snapshot.Sensors {
			if _, err := stmt.ExecContext(ctx,
				snapshot.ID,
				s.Handle,
				s.Name,
				s.Vendor,
				s.Version,
				int(s.Type),
				s.MaxRange,
				s.Resolution,
				s.Power,
				s.MinDelay,
			); err != nil {
				return fmt.Errorf("failed to insert sensor %d: %w", s.Handle, err)
			}
		}

		return nil
	})
}

// LoadLatestSnapshot loads the most recently refreshed snapshot
func (dm *DatabaseManager) LoadLatestSnapshot(ctx context.Context) (models.CatalogSnapshot, error) {
	var id uuid.UUID
	err := dm.QueryRowWithHealthCheck(ctx, `
        SELECT id FROM catalog_snapshots
        ORDER BY refreshed_at DESC
        LIMIT 1
    `).Scan(&id)
	if errors.Is(err, sql.ErrNoRows) {
		return models.CatalogSnapshot{}, ErrNoSnapshot
	}
	if err != nil {
		return models.CatalogSnapshot{}, fmt.Errorf("failed to query latest snapshot: %w", err)
	}

	return dm.LoadSnapshot(ctx, id)
}

// LoadSnapshot loads the snapshot with the given ID
func (dm *DatabaseManager) LoadSnapshot(ctx context.Context, id uuid.UUID) (models.CatalogSnapshot, error) {
	snapshot := models.CatalogSnapshot{ID: id}

	err := dm.QueryRowWithHealthCheck(ctx, `
        SELECT refreshed_at, sources FROM catalog_snapshots WHERE id = $1
    `, id).Scan(&snapshot.RefreshedAt, pq.Array(&snapshot.Sources))
	if errors.Is(err, sql.ErrNoRows) {
		return models.CatalogSnapshot{}, fmt.Errorf("%w: %s", ErrNoSnapshot, id)
	}
	if err != nil {
		return models.CatalogSnapshot{}, fmt.Errorf("failed to query snapshot %s: %w", id, err)
	}

	rows, err := dm.QueryWithHealthCheck(ctx, `
        SELECT handle, name, vendor, version, sensor_type, max_range, resolution, power, min_delay
        FROM sensors
        WHERE snapshot_id = $1
        ORDER BY sensor_type, handle
    `, id)
	if err != nil {
		return models.CatalogSnapshot{}, fmt.Errorf("failed to query sensors of snapshot %s: %w", id, err)
	}
	defer rows.Close()

	snapshot.Sensors = []models.SensorInfo{}
	for rows.Next() {
		var info models.SensorInfo
		var sensorType int
		if err := rows.Scan(
			&info.Handle,
			&info.Name,
			&info.Vendor,
			&info.Version,
			&sensorType,
			&info.MaxRange,
			&info.Resolution,
			&info.Power,
			&info.MinDelay,
		); err != nil {
			return models.CatalogSnapshot{}, fmt.Errorf("failed to scan sensor: %w", err)
		}
		info.Type = models.SensorType(sensorType)
		snapshot.Sensors = append(snapshot.Sensors, info)
	}

	return snapshot, rows.Err()
}

// ListSnapshots returns summaries of the most recent snapshots, newest first
func (dm *DatabaseManager) ListSnapshots(ctx context.Context, limit int) ([]models.CatalogSummary, error) {
	if limit <= 0 {
		limit = 20
	}

	rows, err := dm.QueryWithHealthCheck(ctx, `
        SELECT c.id, c.refreshed_at, c.sources, COUNT(s.handle)
        FROM catalog_snapshots c
        LEFT JOIN sensors s ON s.snapshot_id = c.id
        GROUP BY c.id, c.refreshed_at, c.sources
        ORDER BY c.refreshed_at DESC
        LIMIT $1
    `, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to query snapshots: %w", err)
	}
	defer rows.Close()

	summaries := []models.CatalogSummary{}
	for rows.Next() {
		var summary models.CatalogSummary
		if err := rows.Scan(
			&summary.ID,
			&summary.RefreshedAt,
			pq.Array(&summary.Sources),
			&summary.SensorCount,
		); err != nil {
			return nil, fmt.Errorf("failed to scan snapshot: %w", err)
		}
		summaries = append(summaries, summary)
	}

	return summaries, rows.Err()
}

// PruneSnapshots deletes all but the newest keep snapshots and returns the
// number of deleted snapshots
func (dm *DatabaseManager) PruneSnapshots(ctx context.Context, keep int) (int64, error) {
	if keep < 1 {
		return 0, fmt.Errorf("keep must be at least 1, got %d", keep)
	}

	result, err := dm.ExecWithHealthCheck(ctx, `
        DELETE FROM catalog_snapshots
        WHERE id NOT IN (
            SELECT id FROM catalog_snapshots
            ORDER BY refreshed_at DESC
            LIMIT $1
        )
    `, keep)
	if err != nil {
		return 0, fmt.Errorf("failed to prune snapshots: %w", err)
	}

	return result.RowsAffected()
}
