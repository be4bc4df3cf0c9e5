package database

import (
	"database/sql"
	"fmt"

	"vessel_trmnl/internal/models"
)

type PositionReportRepository interface {
	InsertBatch(reports []*models.PositionReport) error
}

type positionReportRepository struct {
	db *sql.DB
}

func NewPositionReportRepository(db *sql.DB) PositionReportRepository {
	return &positionReportRepository{db: db}
}

// InsertBatch inserts one or more position reports in a single transaction.
// A report already recorded for the same vessel and timestamp is ignored.
func (r *positionReportRepository) InsertBatch(reports []*models.PositionReport) error {
	if len(reports) == 0 {
		return nil
	}

	tx, err := r.db.Begin()
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	stmt, err := tx.Prepare(`INSERT OR IGNORE INTO position_reports (
		vessel_id, mmsi, timestamp, latitude, longitude, speed, heading
	) VALUES (?, ?, ?, ?, ?, ?, ?)`)
	if err != nil {
		return fmt.Errorf("failed to prepare statement: %w", err)
	}
	defer stmt.Close()

	for _, rep := range reports {
		if _, err := stmt.Exec(
			rep.VesselID,
			rep.MMSI,
			rep.Timestamp,
			rep.Latitude,
			rep.Longitude,
			rep.Speed,
			rep.Heading,
		); err != nil {
			return fmt.Errorf("failed to insert position report: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}

	return nil
}
