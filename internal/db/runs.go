package db

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
)

// Run is one recorded evaluation of a saved scenario. Result holds the full
// engine result JSON; TotalBenefit is denormalised for cheap listing.
type Run struct {
	ID           string          `json:"id"`
	ScenarioID   string          `json:"scenario_id"`
	Result       json.RawMessage `json:"result"`
	TotalBenefit float64         `json:"total_benefit"`
	CreatedAt    time.Time       `json:"created_at"`
}

// RecordRun stores an evaluation result against a scenario.
func (db *DB) RecordRun(scenarioID string, result json.RawMessage, totalBenefit float64) (*Run, error) {
	if _, err := db.GetScenario(scenarioID); err != nil {
		return nil, err
	}
	id := uuid.NewString()
	_, err := db.Exec(
		`INSERT INTO runs (id, scenario_id, result, total_benefit) VALUES (?, ?, ?, ?)`,
		id, scenarioID, string(result), totalBenefit,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to record run: %w", err)
	}

	var run Run
	var res string
	err = db.QueryRow(
		`SELECT id, scenario_id, result, total_benefit, created_at FROM runs WHERE id = ?`, id,
	).Scan(&run.ID, &run.ScenarioID, &res, &run.TotalBenefit, &run.CreatedAt)
	if err != nil {
		return nil, fmt.Errorf("failed to read back run: %w", err)
	}
	run.Result = json.RawMessage(res)
	return &run, nil
}

// ListRuns returns the most recent runs for a scenario, newest first.
// A limit of zero or less defaults to 50.
func (db *DB) ListRuns(scenarioID string, limit int) ([]Run, error) {
	if limit <= 0 {
		limit = 50
	}
	rows, err := db.Query(
		`SELECT id, scenario_id, result, total_benefit, created_at
		 FROM runs WHERE scenario_id = ?
		 ORDER BY created_at DESC, id LIMIT ?`,
		scenarioID, limit,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list runs: %w", err)
	}
	defer rows.Close()

	var out []Run
	for rows.Next() {
		var run Run
		var res string
		if err := rows.Scan(&run.ID, &run.ScenarioID, &res, &run.TotalBenefit, &run.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan run: %w", err)
		}
		run.Result = json.RawMessage(res)
		out = append(out, run)
	}
	return out, rows.Err()
}
