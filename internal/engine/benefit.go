package engine

import "github.com/mineralytics/acidcase/internal/units"

// benefitTerms converts credited physical deltas into annual tonnage and
// dollar figures. The formula is linear in both deltas, so the same function
// serves the aggregate result and the per-component accounting.
func benefitTerms(p Parameters, recoveryPts, acidKgPerT float64) (cuTonnes, acidTonnes, cuBenefit, acidBenefit float64) {
	cuTonnes = units.CopperTonnesPerYear(p.TonnesPerYear, p.GradeFraction, recoveryPts)
	acidTonnes = units.AcidTonnesPerYear(p.TonnesPerYear, acidKgPerT)
	cuBenefit = cuTonnes * p.PriceCuPerTonne
	acidBenefit = acidTonnes * p.PriceAcidPerTonne
	return cuTonnes, acidTonnes, cuBenefit, acidBenefit
}
