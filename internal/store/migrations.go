package store

import (
	"fmt"
)

type migration struct {
	Version     int
	Description string
	SQL         string
}

// Migrations only ever add. Columns added after version 1 must be nullable so
// rows written by an older schema survive and read back as "not set".
var migrations = []migration{
	{
		Version:     1,
		Description: "daily_records: one row per calendar day",
		SQL: `
CREATE TABLE daily_records (
    date          INTEGER PRIMARY KEY, -- epoch day
    level         INTEGER NOT NULL,
    day_at_level  INTEGER NOT NULL
);
`,
	},
	{
		Version:     2,
		Description: "daily_records: optional goal level",
		SQL: `
ALTER TABLE daily_records ADD COLUMN goal_level INTEGER;
`,
	},
}

func (db *DB) migrate() error {
	return db.applyMigrations(migrations)
}

func (db *DB) applyMigrations(ms []migration) error {
	// Create schema_versions table if it doesn't exist
	_, err := db.Exec(`
		CREATE TABLE IF NOT EXISTS schema_versions (
			version     INTEGER PRIMARY KEY,
			description TEXT NOT NULL,
			applied_at  INTEGER NOT NULL DEFAULT (strftime('%s', 'now') * 1000)
		)
	`)
	if err != nil {
		return fmt.Errorf("create schema_versions: %w", err)
	}

	for _, m := range ms {
		var count int
		err := db.QueryRow("SELECT COUNT(*) FROM schema_versions WHERE version = ?", m.Version).Scan(&count)
		if err != nil {
			return fmt.Errorf("check migration %d: %w", m.Version, err)
		}
		if count > 0 {
			continue
		}

		tx, err := db.Begin()
		if err != nil {
			return fmt.Errorf("begin migration %d: %w", m.Version, err)
		}

		if _, err := tx.Exec(m.SQL); err != nil {
			tx.Rollback()
			return fmt.Errorf("migration %d (%s): %w", m.Version, m.Description, err)
		}

		if _, err := tx.Exec(
			"INSERT INTO schema_versions (version, description) VALUES (?, ?)",
			m.Version, m.Description,
		); err != nil {
			tx.Rollback()
			return fmt.Errorf("record migration %d: %w", m.Version, err)
		}

		if err := tx.Commit(); err != nil {
			return fmt.Errorf("commit migration %d: %w", m.Version, err)
		}
	}

	return nil
}

// SchemaVersion returns the current schema version.
func (db *DB) SchemaVersion() (int, error) {
	var version int
	err := db.QueryRow("SELECT COALESCE(MAX(version), 0) FROM schema_versions").Scan(&version)
	if err != nil {
		return 0, storageErr("schema version", err)
	}
	return version, nil
}
