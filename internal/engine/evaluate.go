package engine

import (
	"fmt"

	"gonum.org/v1/gonum/floats"
)

// ComponentResult carries one component's raw and credited contributions plus
// its share of the annual benefit, in fixed C1..C4 order.
type ComponentResult struct {
	ID   string `json:"id"`
	Name string `json:"name"`

	RawRecoveryPts float64 `json:"raw_recovery_pts"`
	RawAcidKgPerT  float64 `json:"raw_acid_kg_per_t"`

	CreditedRecoveryPts float64 `json:"credited_recovery_pts"`
	CreditedAcidKgPerT  float64 `json:"credited_acid_kg_per_t"`

	BenefitPerYear float64 `json:"benefit_per_year"`
}

// Result is the complete output record of one evaluation.
type Result struct {
	FinalRecoveryPct float64 `json:"final_recovery_pct"`
	FinalAcidKgPerT  float64 `json:"final_acid_kg_per_t"`

	RecoveryDeltaPts float64 `json:"recovery_delta_pts"`
	AcidDeltaKgPerT  float64 `json:"acid_delta_kg_per_t"`

	AddedCopperTonnes float64 `json:"added_copper_t_per_year"`
	AcidSavedTonnes   float64 `json:"acid_saved_t_per_year"`

	CopperBenefit float64 `json:"copper_benefit_per_year"`
	AcidBenefit   float64 `json:"acid_benefit_per_year"`
	TotalBenefit  float64 `json:"total_benefit_per_year"`

	Components [NumComponents]ComponentResult `json:"components"`

	// Advisories flag likely misconfigurations (ceiling below baseline,
	// floor above baseline). They are informational, never errors.
	Advisories []string `json:"advisories,omitempty"`
}

// Evaluate runs the full pipeline: contributions, limit enforcement, clawback
// allocation, and benefit calculation. It is side-effect free and total over
// valid inputs; divisions inside the allocation policies are guarded.
func Evaluate(p Parameters) Result {
	contribs := rawContributions(p)
	rawR := recoverySeries(contribs)
	rawA := acidSeries(contribs)

	excessR := recoveryExcess(p.BaselineRecoveryPct, p.RecoveryCeilingPct, rawR)
	excessA := acidExcess(p.BaselineAcidKgPerT, p.AcidFloorKgPerT, rawA)

	creditedR := apportionFor(p, rawR, excessR)
	creditedA := apportionFor(p, rawA, excessA)

	deltaR := floats.Sum(creditedR)
	deltaA := floats.Sum(creditedA)

	res := Result{
		FinalRecoveryPct: p.BaselineRecoveryPct + deltaR,
		FinalAcidKgPerT:  p.BaselineAcidKgPerT - deltaA,
		RecoveryDeltaPts: deltaR,
		AcidDeltaKgPerT:  deltaA,
	}
	res.AddedCopperTonnes, res.AcidSavedTonnes, res.CopperBenefit, res.AcidBenefit = benefitTerms(p, deltaR, deltaA)
	res.TotalBenefit = res.CopperBenefit + res.AcidBenefit

	for i := range res.Components {
		_, _, cu, acid := benefitTerms(p, creditedR[i], creditedA[i])
		res.Components[i] = ComponentResult{
			ID:                  p.Components[i].ID,
			Name:                p.Components[i].Name,
			RawRecoveryPts:      rawR[i],
			RawAcidKgPerT:       rawA[i],
			CreditedRecoveryPts: creditedR[i],
			CreditedAcidKgPerT:  creditedA[i],
			BenefitPerYear:      cu + acid,
		}
	}

	res.Advisories = advisories(p)
	return res
}

// apportionFor applies the clawback rule for the configured model. The
// multiplicative model always claws back from the last tier first, matching
// its compounding order, so the clamped total lands exactly on the limit.
// The additive model uses the configured allocation policy.
func apportionFor(p Parameters, raw []float64, excess float64) []float64 {
	if p.Model != ModelAdditive {
		credited := make([]float64, len(raw))
		copy(credited, raw)
		if excess <= 0 {
			return credited
		}
		if excess >= floats.Sum(raw) {
			for i := range credited {
				credited[i] = 0
			}
			return credited
		}
		clawLastFirst(credited, excess)
		return credited
	}
	return apportion(p.Policy, raw, excess, p.componentWeights())
}

// advisories surfaces limit configurations that zero out all achievable
// improvement. These are valid inputs, but almost always a slider mistake.
func advisories(p Parameters) []string {
	var out []string
	if p.RecoveryCeilingPct < p.BaselineRecoveryPct {
		out = append(out, fmt.Sprintf(
			"recovery ceiling %.2f%% is below the %.2f%% baseline; no recovery improvement is achievable",
			p.RecoveryCeilingPct, p.BaselineRecoveryPct))
	}
	if p.AcidFloorKgPerT > p.BaselineAcidKgPerT {
		out = append(out, fmt.Sprintf(
			"acid floor %.2f kg/t is above the %.2f kg/t baseline; no acid saving is achievable",
			p.AcidFloorKgPerT, p.BaselineAcidKgPerT))
	}
	return out
}
