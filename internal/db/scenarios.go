package db

import (
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
)

// ErrNotFound is returned when a scenario or run id does not exist.
var ErrNotFound = errors.New("not found")

// Scenario is a saved parameter set. Config holds the scenario JSON exactly
// as submitted (the schema of internal/config.Scenario).
type Scenario struct {
	ID        string          `json:"id"`
	Name      string          `json:"name"`
	Config    json.RawMessage `json:"config"`
	CreatedAt time.Time       `json:"created_at"`
}

// SaveScenario stores a named scenario and returns it with its generated id.
func (db *DB) SaveScenario(name string, cfg json.RawMessage) (*Scenario, error) {
	s := &Scenario{
		ID:     uuid.NewString(),
		Name:   name,
		Config: cfg,
	}
	_, err := db.Exec(
		`INSERT INTO scenarios (id, name, config) VALUES (?, ?, ?)`,
		s.ID, s.Name, string(s.Config),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to save scenario: %w", err)
	}
	return db.GetScenario(s.ID)
}

// GetScenario retrieves a scenario by id.
func (db *DB) GetScenario(id string) (*Scenario, error) {
	var s Scenario
	var cfg string
	err := db.QueryRow(
		`SELECT id, name, config, created_at FROM scenarios WHERE id = ?`, id,
	).Scan(&s.ID, &s.Name, &cfg, &s.CreatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("scenario %s: %w", id, ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get scenario: %w", err)
	}
	s.Config = json.RawMessage(cfg)
	return &s, nil
}

// ListScenarios returns all saved scenarios, newest first.
func (db *DB) ListScenarios() ([]Scenario, error) {
	rows, err := db.Query(
		`SELECT id, name, config, created_at FROM scenarios ORDER BY created_at DESC, id`,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list scenarios: %w", err)
	}
	defer rows.Close()

	var out []Scenario
	for rows.Next() {
		var s Scenario
		var cfg string
		if err := rows.Scan(&s.ID, &s.Name, &cfg, &s.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan scenario: %w", err)
		}
		s.Config = json.RawMessage(cfg)
		out = append(out, s)
	}
	return out, rows.Err()
}

// DeleteScenario removes a scenario and its recorded runs.
func (db *DB) DeleteScenario(id string) error {
	if _, err := db.Exec(`DELETE FROM runs WHERE scenario_id = ?`, id); err != nil {
		return fmt.Errorf("failed to delete scenario runs: %w", err)
	}
	res, err := db.Exec(`DELETE FROM scenarios WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("failed to delete scenario: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to check delete result: %w", err)
	}
	if n == 0 {
		return fmt.Errorf("scenario %s: %w", id, ErrNotFound)
	}
	return nil
}
