// Package config loads scenario files: the operating parameters, prices,
// technical limits, and per-component effect coefficients of one business
// case. Fields omitted from the JSON keep their benchmark defaults, so
// partial scenarios are safe.
package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/mineralytics/acidcase/internal/engine"
	"github.com/mineralytics/acidcase/internal/units"
)

// ComponentOverride adjusts one improvement component. All fields are
// optional; nil leaves the benchmark value in place.
type ComponentOverride struct {
	Name   *string `json:"name,omitempty"`
	Active *bool   `json:"active,omitempty"`

	Gamma  *float64 `json:"gamma,omitempty"`
	Alpha  *float64 `json:"alpha,omitempty"`
	ThetaR *float64 `json:"theta_r,omitempty"`
	ThetaA *float64 `json:"theta_a,omitempty"`

	RecoveryDeltaPts *float64 `json:"recovery_delta_pts,omitempty"`
	AcidSavingKgPerT *float64 `json:"acid_saving_kg_per_t,omitempty"`
	Weight           *float64 `json:"weight,omitempty"`
}

// Scenario is the JSON schema of a scenario file. Tonnage is given in Mt/a
// and grade in percent, matching how the operation quotes them; Params
// converts both to the engine's base units.
type Scenario struct {
	TonnageMtPerYear    *float64 `json:"tonnage_mt_per_year,omitempty"`
	GradePct            *float64 `json:"grade_pct,omitempty"`
	BaselineRecoveryPct *float64 `json:"baseline_recovery_pct,omitempty"`
	BaselineAcidKgPerT  *float64 `json:"baseline_acid_kg_per_t,omitempty"`

	PriceCuPerTonne   *float64 `json:"price_cu_per_t,omitempty"`
	PriceAcidPerTonne *float64 `json:"price_acid_per_t,omitempty"`

	RecoveryCeilingPct *float64 `json:"recovery_ceiling_pct,omitempty"`
	AcidFloorKgPerT    *float64 `json:"acid_floor_kg_per_t,omitempty"`

	Model  *string `json:"model,omitempty"`
	Policy *string `json:"allocation_policy,omitempty"`

	// Components is keyed by component ID (C1..C4).
	Components map[string]ComponentOverride `json:"components,omitempty"`
}

// Load reads and validates a scenario file. The file must have a .json
// extension and stay under the size cap.
func Load(path string) (*Scenario, error) {
	cleanPath := filepath.Clean(path)
	if ext := filepath.Ext(cleanPath); ext != ".json" {
		return nil, fmt.Errorf("scenario file must have .json extension, got %q", ext)
	}

	info, err := os.Stat(cleanPath)
	if err != nil {
		return nil, fmt.Errorf("failed to stat scenario file: %w", err)
	}
	const maxFileSize = 1 * 1024 * 1024
	if info.Size() > maxFileSize {
		return nil, fmt.Errorf("scenario file too large: %d bytes (max %d)", info.Size(), maxFileSize)
	}

	data, err := os.ReadFile(cleanPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read scenario file: %w", err)
	}
	return Parse(data)
}

// Parse decodes and validates a scenario from raw JSON.
func Parse(data []byte) (*Scenario, error) {
	var s Scenario
	if err := json.Unmarshal(data, &s); err != nil {
		return nil, fmt.Errorf("failed to parse scenario JSON: %w", err)
	}
	if err := s.Validate(); err != nil {
		return nil, fmt.Errorf("invalid scenario: %w", err)
	}
	return &s, nil
}

// Validate checks the range constraints the engine itself does not re-check.
func (s *Scenario) Validate() error {
	if s.TonnageMtPerYear != nil && *s.TonnageMtPerYear < 0 {
		return fmt.Errorf("tonnage_mt_per_year must be non-negative, got %f", *s.TonnageMtPerYear)
	}
	if s.GradePct != nil && (*s.GradePct < 0 || *s.GradePct > 100) {
		return fmt.Errorf("grade_pct must be between 0 and 100, got %f", *s.GradePct)
	}
	if s.PriceCuPerTonne != nil && *s.PriceCuPerTonne < 0 {
		return fmt.Errorf("price_cu_per_t must be non-negative, got %f", *s.PriceCuPerTonne)
	}
	if s.PriceAcidPerTonne != nil && *s.PriceAcidPerTonne < 0 {
		return fmt.Errorf("price_acid_per_t must be non-negative, got %f", *s.PriceAcidPerTonne)
	}
	if s.Model != nil && !engine.ValidModel(engine.ModelVariant(*s.Model)) {
		return fmt.Errorf("unknown model %q (valid: multiplicative, additive)", *s.Model)
	}
	if s.Policy != nil && !engine.ValidPolicy(engine.AllocationPolicy(*s.Policy)) {
		return fmt.Errorf("unknown allocation_policy %q (valid: %s)", *s.Policy, engine.ValidPoliciesString())
	}
	for id, c := range s.Components {
		if !knownComponentID(id) {
			return fmt.Errorf("unknown component id %q (valid: C1, C2, C3, C4)", id)
		}
		if c.Weight != nil && *c.Weight < 0 {
			return fmt.Errorf("component %s: weight must be non-negative, got %f", id, *c.Weight)
		}
	}
	return nil
}

func knownComponentID(id string) bool {
	switch id {
	case "C1", "C2", "C3", "C4":
		return true
	}
	return false
}

// Params materialises the scenario into engine parameters, applying the
// benchmark defaults for anything not overridden.
func (s *Scenario) Params() engine.Parameters {
	p := engine.DefaultParameters()

	if s.TonnageMtPerYear != nil {
		p.TonnesPerYear = units.TonnesFromMegatonnes(*s.TonnageMtPerYear)
	}
	if s.GradePct != nil {
		p.GradeFraction = units.FractionFromPercent(*s.GradePct)
	}
	if s.BaselineRecoveryPct != nil {
		p.BaselineRecoveryPct = *s.BaselineRecoveryPct
	}
	if s.BaselineAcidKgPerT != nil {
		p.BaselineAcidKgPerT = *s.BaselineAcidKgPerT
	}
	if s.PriceCuPerTonne != nil {
		p.PriceCuPerTonne = *s.PriceCuPerTonne
	}
	if s.PriceAcidPerTonne != nil {
		p.PriceAcidPerTonne = *s.PriceAcidPerTonne
	}
	if s.RecoveryCeilingPct != nil {
		p.RecoveryCeilingPct = *s.RecoveryCeilingPct
	}
	if s.AcidFloorKgPerT != nil {
		p.AcidFloorKgPerT = *s.AcidFloorKgPerT
	}
	if s.Model != nil {
		p.Model = engine.ModelVariant(*s.Model)
	}
	if s.Policy != nil {
		p.Policy = engine.AllocationPolicy(*s.Policy)
	}

	for i := range p.Components {
		o, ok := s.Components[p.Components[i].ID]
		if !ok {
			continue
		}
		applyOverride(&p.Components[i], o)
	}
	return p
}

func applyOverride(c *engine.Component, o ComponentOverride) {
	if o.Name != nil {
		c.Name = *o.Name
	}
	if o.Active != nil {
		c.Active = *o.Active
	}
	if o.Gamma != nil {
		c.Gamma = *o.Gamma
	}
	if o.Alpha != nil {
		c.Alpha = *o.Alpha
	}
	if o.ThetaR != nil {
		c.ThetaR = *o.ThetaR
	}
	if o.ThetaA != nil {
		c.ThetaA = *o.ThetaA
	}
	if o.RecoveryDeltaPts != nil {
		c.RecoveryDeltaPts = *o.RecoveryDeltaPts
	}
	if o.AcidSavingKgPerT != nil {
		c.AcidSavingKgPerT = *o.AcidSavingKgPerT
	}
	if o.Weight != nil {
		c.Weight = *o.Weight
	}
}
