package database

import (
	"database/sql"
	"fmt"

	_ "github.com/mattn/go-sqlite3"
)

// DB records position reports and the vessel registry in SQLite.
// It is write-only from the fleet's point of view: nothing is read back into fleet state.
type DB struct {
	db *sql.DB
}

// New creates and initializes a new database connection
func New(dbPath string) (*DB, error) {
	db, err := sql.Open("sqlite3", dbPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	if err := optimizeSQLite(db); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to optimize database: %w", err)
	}

	database := &DB{db: db}

	if err := database.initSchema(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to initialize schema: %w", err)
	}

	return database, nil
}

func optimizeSQLite(db *sql.DB) error {
	pragmas := []struct {
		stmt string
		desc string
	}{
		// WAL lets readers inspect the recording while ticks are written
		{"PRAGMA journal_mode=WAL", "enable WAL mode"},
		{"PRAGMA synchronous=NORMAL", "set synchronous mode"},
		{"PRAGMA temp_store=MEMORY", "set temp_store"},
		{"PRAGMA busy_timeout=5000", "set busy timeout"},
	}

	for _, p := range pragmas {
		if _, err := db.Exec(p.stmt); err != nil {
			return fmt.Errorf("failed to %s: %w", p.desc, err)
		}
	}

	return nil
}

// Close closes the database connection
func (d *DB) Close() error {
	return d.db.Close()
}

// PositionReportRepository returns the repository for tick reports
func (d *DB) PositionReportRepository() PositionReportRepository {
	return NewPositionReportRepository(d.db)
}

// RegistryRepository returns the repository for vessel registry records
func (d *DB) RegistryRepository() RegistryRepository {
	return NewRegistryRepository(d.db)
}

// initSchema creates the database schema if it doesn't exist
func (d *DB) initSchema() error {
	schemas := []struct {
		table string
		ddl   string
	}{
		{"position_reports", `CREATE TABLE IF NOT EXISTS position_reports (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			vessel_id TEXT NOT NULL,
			mmsi TEXT NOT NULL,
			timestamp TIMESTAMP NOT NULL,
			latitude REAL NOT NULL,
			longitude REAL NOT NULL,
			speed INTEGER NOT NULL,
			heading INTEGER NOT NULL,
			created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP,
			UNIQUE(vessel_id, timestamp)
		);`},
		{"vessel_registry", `CREATE TABLE IF NOT EXISTS vessel_registry (
			id TEXT PRIMARY KEY,
			name TEXT NOT NULL,
			imo TEXT NOT NULL,
			mmsi TEXT NOT NULL,
			callsign TEXT NOT NULL,
			type TEXT NOT NULL,
			flag TEXT NOT NULL,
			length INTEGER,
			beam INTEGER,
			draught INTEGER,
			gross_tonnage INTEGER,
			registered_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP
		);`},
	}

	indexes := []string{
		`CREATE INDEX IF NOT EXISTS idx_position_reports_vessel ON position_reports(vessel_id)`,
		`CREATE INDEX IF NOT EXISTS idx_position_reports_timestamp ON position_reports(timestamp)`,
		`CREATE INDEX IF NOT EXISTS idx_vessel_registry_mmsi ON vessel_registry(mmsi)`,
	}

	for _, s := range schemas {
		if _, err := d.db.Exec(s.ddl); err != nil {
			return fmt.Errorf("failed to create %s table: %w", s.table, err)
		}
	}

	for _, idx := range indexes {
		if _, err := d.db.Exec(idx); err != nil {
			return fmt.Errorf("failed to create index: %w", err)
		}
	}

	return nil
}
