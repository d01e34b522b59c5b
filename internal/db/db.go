// Package db persists named scenarios and their evaluation runs in sqlite.
// The engine itself is stateless; this store only keeps the analyst's saved
// cases and an audit trail of computed results.
package db

import (
	"database/sql"
	"fmt"

	_ "modernc.org/sqlite"
)

type DB struct {
	*sql.DB
}

// New opens (or creates) the scenario database at path and ensures the base
// schema exists. Deployments that manage schema versions explicitly should
// use MigrateUp instead of relying on the inline bootstrap.
func New(path string) (*DB, error) {
	sqlDB, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	_, err = sqlDB.Exec(`
		CREATE TABLE IF NOT EXISTS scenarios (
			id          TEXT PRIMARY KEY,
			name        TEXT NOT NULL,
			config      TEXT NOT NULL,
			created_at  TIMESTAMP DEFAULT CURRENT_TIMESTAMP
		);
		CREATE TABLE IF NOT EXISTS runs (
			id             TEXT PRIMARY KEY,
			scenario_id    TEXT NOT NULL,
			result         TEXT NOT NULL,
			total_benefit  DOUBLE NOT NULL,
			created_at     TIMESTAMP DEFAULT CURRENT_TIMESTAMP,
			FOREIGN KEY(scenario_id) REFERENCES scenarios(id)
		);
		CREATE INDEX IF NOT EXISTS idx_runs_scenario ON runs(scenario_id);
	`)
	if err != nil {
		return nil, fmt.Errorf("failed to create schema: %w", err)
	}

	return &DB{sqlDB}, nil
}
