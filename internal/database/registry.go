package database

import (
	"database/sql"
	"fmt"

	"vessel_trmnl/internal/models"
)

// RegistryRepository stores the static registry attributes of each vessel
type RegistryRepository interface {
	InsertBatch(vessels []models.Vessel) error
	Count() (int, error)
}

type registryRepository struct {
	db *sql.DB
}

func NewRegistryRepository(db *sql.DB) RegistryRepository {
	return &registryRepository{db: db}
}

// InsertBatch inserts or replaces registry records in a single transaction
func (r *registryRepository) InsertBatch(vessels []models.Vessel) error {
	if len(vessels) == 0 {
		return nil
	}

	tx, err := r.db.Begin()
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	stmt, err := tx.Prepare(`INSERT OR REPLACE INTO vessel_registry (
		id, name, imo, mmsi, callsign, type, flag,
		length, beam, draught, gross_tonnage
	) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`)
	if err != nil {
		return fmt.Errorf("failed to prepare statement: %w", err)
	}
	defer stmt.Close()

	for _, v := range vessels {
		if _, err := stmt.Exec(
			v.ID, v.Name, v.IMO, v.MMSI, v.CallSign, string(v.Type), v.Flag,
			v.Length, v.Beam, v.Draught, v.GrossTonnage,
		); err != nil {
			return fmt.Errorf("failed to insert vessel %s: %w", v.ID, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}

	return nil
}

func (r *registryRepository) Count() (int, error) {
	var n int
	if err := r.db.QueryRow("SELECT COUNT(*) FROM vessel_registry").Scan(&n); err != nil {
		return 0, fmt.Errorf("failed to count vessel registry: %w", err)
	}
	return n, nil
}
