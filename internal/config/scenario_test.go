package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/mineralytics/acidcase/internal/engine"
)

func TestParamsDefaultsWhenEmpty(t *testing.T) {
	s := &Scenario{}
	p := s.Params()
	want := engine.DefaultParameters()
	if p != want {
		t.Errorf("empty scenario should yield benchmark defaults\ngot:  %+v\nwant: %+v", p, want)
	}
}

func TestLoadPartialScenario(t *testing.T) {
	tmpDir := t.TempDir()
	path := filepath.Join(tmpDir, "scenario.json")

	scenarioJSON := `{
  "tonnage_mt_per_year": 12,
  "grade_pct": 0.6,
  "model": "additive",
  "allocation_policy": "weighted",
  "components": {
    "C2": {"active": false},
    "C4": {"recovery_delta_pts": 2.5, "weight": 0}
  }
}`
	if err := os.WriteFile(path, []byte(scenarioJSON), 0644); err != nil {
		t.Fatalf("failed to write scenario: %v", err)
	}

	s, err := Load(path)
	if err != nil {
		t.Fatalf("failed to load scenario: %v", err)
	}

	p := s.Params()
	if p.TonnesPerYear != 12_000_000 {
		t.Errorf("TonnesPerYear = %v, want 12000000", p.TonnesPerYear)
	}
	if p.GradeFraction != 0.006 {
		t.Errorf("GradeFraction = %v, want 0.006", p.GradeFraction)
	}
	if p.Model != engine.ModelAdditive {
		t.Errorf("Model = %q, want additive", p.Model)
	}
	if p.Policy != engine.PolicyWeighted {
		t.Errorf("Policy = %q, want weighted", p.Policy)
	}
	if p.Components[1].Active {
		t.Error("C2 should be inactive")
	}
	if p.Components[3].RecoveryDeltaPts != 2.5 {
		t.Errorf("C4 RecoveryDeltaPts = %v, want 2.5", p.Components[3].RecoveryDeltaPts)
	}
	if p.Components[3].Weight != 0 {
		t.Errorf("C4 Weight = %v, want 0", p.Components[3].Weight)
	}
	// Untouched fields keep the benchmark values.
	if p.BaselineRecoveryPct != 60 {
		t.Errorf("BaselineRecoveryPct = %v, want 60", p.BaselineRecoveryPct)
	}
	if p.Components[0].Gamma != 0.005 {
		t.Errorf("C1 Gamma = %v, want 0.005", p.Components[0].Gamma)
	}
}

func TestLoadRejectsNonJSONExtension(t *testing.T) {
	if _, err := Load("scenario.yaml"); err == nil || !strings.Contains(err.Error(), ".json") {
		t.Errorf("expected extension error, got %v", err)
	}
}

func TestValidateRejectsBadValues(t *testing.T) {
	cases := []struct {
		name string
		json string
		want string
	}{
		{"negative tonnage", `{"tonnage_mt_per_year": -1}`, "tonnage_mt_per_year"},
		{"grade out of range", `{"grade_pct": 150}`, "grade_pct"},
		{"unknown model", `{"model": "quadratic"}`, "unknown model"},
		{"unknown policy", `{"allocation_policy": "greedy"}`, "allocation_policy"},
		{"unknown component", `{"components": {"C9": {}}}`, "component id"},
		{"negative weight", `{"components": {"C1": {"weight": -2}}}`, "weight"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := Parse([]byte(tc.json))
			if err == nil || !strings.Contains(err.Error(), tc.want) {
				t.Errorf("Parse(%s) error = %v, want mention of %q", tc.json, err, tc.want)
			}
		})
	}
}
