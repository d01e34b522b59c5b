// Package engine evaluates the acid-dosing business case: per-component
// contributions to recovery and acid consumption, enforcement of the technical
// ceiling/floor, clawback allocation of any excess, and conversion of the
// credited deltas into an annual benefit figure.
//
// Evaluate is a pure function of its Parameters. There is no shared state and
// no I/O; callers recompute from scratch on every parameter change.
package engine

// NumComponents is fixed: the business case covers improvement components
// C1 through C4, in that order. The order is significant — it sets the
// compounding sequence in the multiplicative model and the clawback priority
// of the sequential allocation policy.
const NumComponents = 4

// ModelVariant selects how per-component raw contributions are produced.
type ModelVariant string

const (
	// ModelMultiplicative compounds relative improvements in component order,
	// so later components see diminishing absolute gains.
	ModelMultiplicative ModelVariant = "multiplicative"
	// ModelAdditive sums independent absolute deltas, clamped to the limits.
	ModelAdditive ModelVariant = "additive"
)

// AllocationPolicy selects how excess over a technical limit is clawed back
// across components (additive model only; the multiplicative model always
// claws back from the last tier first, see apportionFor).
type AllocationPolicy string

const (
	PolicySequential   AllocationPolicy = "sequential"
	PolicyProportional AllocationPolicy = "proportional"
	PolicyWeighted     AllocationPolicy = "weighted"
)

// ValidModel reports whether v names a known model variant.
func ValidModel(v ModelVariant) bool {
	return v == ModelMultiplicative || v == ModelAdditive
}

// ValidPolicy reports whether p names a known allocation policy.
func ValidPolicy(p AllocationPolicy) bool {
	return p == PolicySequential || p == PolicyProportional || p == PolicyWeighted
}

// ValidPoliciesString returns the accepted policy names for error messages.
func ValidPoliciesString() string {
	return "sequential, proportional, weighted"
}

// Component holds one improvement component's activation flag and effect
// coefficients. The multiplicative fields (Gamma, Alpha, ThetaR, ThetaA) and
// the additive fields (RecoveryDeltaPts, AcidSavingKgPerT, Weight) coexist;
// the model variant decides which set is read. An inactive component
// contributes exactly zero regardless of its coefficients.
type Component struct {
	ID     string `json:"id"`
	Name   string `json:"name"`
	Active bool   `json:"active"`

	// Multiplicative model: relative improvement rate for recovery (gamma),
	// relative reduction rate for acid (alpha), and the diminishing-returns
	// factors applied to each.
	Gamma  float64 `json:"gamma"`
	Alpha  float64 `json:"alpha"`
	ThetaR float64 `json:"theta_r"`
	ThetaA float64 `json:"theta_a"`

	// Additive model: independent absolute deltas and the clawback weight
	// used by the weighted allocation policy. Weight zero protects the
	// component from clawback.
	RecoveryDeltaPts float64 `json:"recovery_delta_pts"`
	AcidSavingKgPerT float64 `json:"acid_saving_kg_per_t"`
	Weight           float64 `json:"weight"`
}

// Parameters is the immutable input of a single evaluation. All numeric
// fields are expected pre-validated by the parameter-collection layer; the
// engine only enforces the physical ceiling/floor clamps.
type Parameters struct {
	TonnesPerYear       float64 `json:"tonnes_per_year"`
	GradeFraction       float64 `json:"grade_fraction"`
	BaselineRecoveryPct float64 `json:"baseline_recovery_pct"`
	BaselineAcidKgPerT  float64 `json:"baseline_acid_kg_per_t"`

	PriceCuPerTonne   float64 `json:"price_cu_per_t"`
	PriceAcidPerTonne float64 `json:"price_acid_per_t"`

	RecoveryCeilingPct float64 `json:"recovery_ceiling_pct"`
	AcidFloorKgPerT    float64 `json:"acid_floor_kg_per_t"`

	Model  ModelVariant     `json:"model"`
	Policy AllocationPolicy `json:"allocation_policy"`

	Components [NumComponents]Component `json:"components"`
}

// componentWeights collects the additive clawback weights in component order.
func (p Parameters) componentWeights() []float64 {
	w := make([]float64, NumComponents)
	for i, c := range p.Components {
		w[i] = c.Weight
	}
	return w
}

// DefaultParameters returns the benchmark case for the curing operation:
// 10 Mt/a at 0.5% Cu, 60% baseline recovery, 35 kg/t baseline acid, with the
// four dosing-intelligence components active at their benchmark effect rates.
// The additive deltas carry the same benchmark expressed as absolute points
// and kg/t savings.
func DefaultParameters() Parameters {
	return Parameters{
		TonnesPerYear:       10_000_000,
		GradeFraction:       0.005,
		BaselineRecoveryPct: 60,
		BaselineAcidKgPerT:  35,
		PriceCuPerTonne:     9000,
		PriceAcidPerTonne:   120,
		RecoveryCeilingPct:  75,
		AcidFloorKgPerT:     20,
		Model:               ModelMultiplicative,
		Policy:              PolicySequential,
		Components: [NumComponents]Component{
			{
				ID: "C1", Name: "C1 Soft Sensor P80", Active: true,
				Gamma: 0.005, Alpha: 0.020, ThetaR: 1.00, ThetaA: 1.00,
				RecoveryDeltaPts: 0.5, AcidSavingKgPerT: 0.7, Weight: 1,
			},
			{
				ID: "C2", Name: "C2 UGM Clustering", Active: true,
				Gamma: 0.015, Alpha: 0.040, ThetaR: 0.80, ThetaA: 0.85,
				RecoveryDeltaPts: 1.2, AcidSavingKgPerT: 1.4, Weight: 1,
			},
			{
				ID: "C3", Name: "C3 Mineral Tracker", Active: true,
				Gamma: 0.010, Alpha: 0.030, ThetaR: 0.70, ThetaA: 0.80,
				RecoveryDeltaPts: 0.7, AcidSavingKgPerT: 1.1, Weight: 1,
			},
			{
				ID: "C4", Name: "C4 Polynomial + Control", Active: true,
				Gamma: 0.020, Alpha: 0.100, ThetaR: 0.60, ThetaA: 0.70,
				RecoveryDeltaPts: 3.0, AcidSavingKgPerT: 3.3, Weight: 1,
			},
		},
	}
}
