package engine

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// additiveBenchmark is the reference case from the business-case review:
// 10 Mt/a at 0.5% Cu, both limits slack, all four components active.
func additiveBenchmark() Parameters {
	p := DefaultParameters()
	p.Model = ModelAdditive
	p.Policy = PolicyProportional
	return p
}

func TestAdditiveBenchmarkScenario(t *testing.T) {
	res := Evaluate(additiveBenchmark())

	// Raw sums stay inside both limits, so nothing is clawed back.
	assert.InDelta(t, 65.4, res.FinalRecoveryPct, 1e-9)
	assert.InDelta(t, 28.5, res.FinalAcidKgPerT, 1e-9)
	assert.InDelta(t, 5.4, res.RecoveryDeltaPts, 1e-9)
	assert.InDelta(t, 6.5, res.AcidDeltaKgPerT, 1e-9)
	assert.InDelta(t, 2700, res.AddedCopperTonnes, 1e-6)
	assert.InDelta(t, 65000, res.AcidSavedTonnes, 1e-6)
	assert.InDelta(t, 24_300_000, res.CopperBenefit, 1e-3)
	assert.InDelta(t, 7_800_000, res.AcidBenefit, 1e-3)
	assert.InDelta(t, 32_100_000, res.TotalBenefit, 1e-3)
	assert.Empty(t, res.Advisories)

	for i, c := range res.Components {
		assert.Equal(t, c.RawRecoveryPts, c.CreditedRecoveryPts, "component %d below limit", i)
		assert.Equal(t, c.RawAcidKgPerT, c.CreditedAcidKgPerT, "component %d below limit", i)
	}
}

func TestAdditiveCeilingBreachSequential(t *testing.T) {
	p := additiveBenchmark()
	p.Policy = PolicySequential
	p.RecoveryCeilingPct = 63

	res := Evaluate(p)

	// 2.4 points of excess consume C1..C3 entirely; C4 keeps full credit.
	// The credited total must land exactly on the ceiling.
	require.InDelta(t, 63, res.FinalRecoveryPct, 1e-9)
	require.InDelta(t, 3, res.RecoveryDeltaPts, 1e-9)
	assert.InDelta(t, 0, res.Components[0].CreditedRecoveryPts, 1e-12)
	assert.InDelta(t, 0, res.Components[1].CreditedRecoveryPts, 1e-12)
	assert.InDelta(t, 0, res.Components[2].CreditedRecoveryPts, 1e-12)
	assert.InDelta(t, 3.0, res.Components[3].CreditedRecoveryPts, 1e-12)

	// Acid was not breached; its credits are untouched.
	assert.InDelta(t, 28.5, res.FinalAcidKgPerT, 1e-9)
}

func TestConservationAcrossPolicies(t *testing.T) {
	for _, policy := range allPolicies {
		p := additiveBenchmark()
		p.Policy = policy
		p.RecoveryCeilingPct = 62.5
		p.AcidFloorKgPerT = 31

		res := Evaluate(p)

		var sumR, sumA, sumB float64
		for _, c := range res.Components {
			sumR += c.CreditedRecoveryPts
			sumA += c.CreditedAcidKgPerT
			sumB += c.BenefitPerYear
		}
		assert.InDelta(t, res.RecoveryDeltaPts, sumR, 1e-9, "policy %s", policy)
		assert.InDelta(t, res.AcidDeltaKgPerT, sumA, 1e-9, "policy %s", policy)
		assert.InDelta(t, res.TotalBenefit, sumB, 1e-3, "policy %s", policy)
	}
}

func TestClampingHoldsForExtremeContributions(t *testing.T) {
	for _, model := range []ModelVariant{ModelMultiplicative, ModelAdditive} {
		for _, policy := range allPolicies {
			p := DefaultParameters()
			p.Model = model
			p.Policy = policy
			for i := range p.Components {
				p.Components[i].Gamma = 0.05
				p.Components[i].Alpha = 0.30
				p.Components[i].RecoveryDeltaPts = 50
				p.Components[i].AcidSavingKgPerT = 30
			}

			res := Evaluate(p)
			assert.LessOrEqual(t, res.FinalRecoveryPct, p.RecoveryCeilingPct+1e-9,
				"model %s policy %s", model, policy)
			assert.GreaterOrEqual(t, res.FinalAcidKgPerT, p.AcidFloorKgPerT-1e-9,
				"model %s policy %s", model, policy)
		}
	}
}

func TestMultiplicativeBreachClawsLastTierFirst(t *testing.T) {
	p := DefaultParameters()
	p.RecoveryCeilingPct = 60.5

	res := Evaluate(p)
	require.InDelta(t, 60.5, res.FinalRecoveryPct, 1e-9)
	// The earliest tier keeps its full raw credit; the overshoot is absorbed
	// from C4 backwards.
	assert.Equal(t, res.Components[0].RawRecoveryPts, res.Components[0].CreditedRecoveryPts)
	assert.Less(t, res.Components[3].CreditedRecoveryPts, res.Components[3].RawRecoveryPts)
}

func TestInactiveComponentZeroing(t *testing.T) {
	for _, model := range []ModelVariant{ModelMultiplicative, ModelAdditive} {
		p := DefaultParameters()
		p.Model = model
		p.Components[1].Active = false

		res := Evaluate(p)
		c := res.Components[1]
		assert.Zero(t, c.RawRecoveryPts, "model %s", model)
		assert.Zero(t, c.RawAcidKgPerT, "model %s", model)
		assert.Zero(t, c.CreditedRecoveryPts, "model %s", model)
		assert.Zero(t, c.CreditedAcidKgPerT, "model %s", model)
		assert.Zero(t, c.BenefitPerYear, "model %s", model)
	}
}

func TestCeilingBelowBaselineIsAdvisoryNotError(t *testing.T) {
	p := additiveBenchmark()
	p.RecoveryCeilingPct = 55 // below the 60% baseline
	p.AcidFloorKgPerT = 40    // above the 35 kg/t baseline

	res := Evaluate(p)
	require.Len(t, res.Advisories, 2)
	assert.Zero(t, res.RecoveryDeltaPts)
	assert.Zero(t, res.AcidDeltaKgPerT)
	assert.InDelta(t, p.BaselineRecoveryPct, res.FinalRecoveryPct, 1e-12)
	assert.InDelta(t, p.BaselineAcidKgPerT, res.FinalAcidKgPerT, 1e-12)
	assert.Zero(t, res.TotalBenefit)
}

func TestZeroTonnageAndPricesZeroBenefitTerms(t *testing.T) {
	p := additiveBenchmark()
	p.TonnesPerYear = 0
	res := Evaluate(p)
	assert.Zero(t, res.AddedCopperTonnes)
	assert.Zero(t, res.AcidSavedTonnes)
	assert.Zero(t, res.TotalBenefit)
	// Physical deltas are still reported.
	assert.InDelta(t, 5.4, res.RecoveryDeltaPts, 1e-9)

	p = additiveBenchmark()
	p.GradeFraction = 0
	res = Evaluate(p)
	assert.Zero(t, res.CopperBenefit)
	assert.Positive(t, res.AcidBenefit)

	p = additiveBenchmark()
	p.PriceCuPerTonne = 0
	p.PriceAcidPerTonne = 0
	res = Evaluate(p)
	assert.Zero(t, res.TotalBenefit)
}

func TestEvaluateIsPure(t *testing.T) {
	p := additiveBenchmark()
	first := Evaluate(p)
	second := Evaluate(p)
	assert.Equal(t, first, second)
}
