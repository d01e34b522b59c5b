package engine

import (
	"math"

	"gonum.org/v1/gonum/floats"
)

// apportion distributes an excess clawback across raw contributions under the
// given policy, returning credited contributions in the same order.
//
// Invariants, for every policy:
//   - credited values are non-negative;
//   - excess == 0 is the identity transform;
//   - whenever excess <= Σraw, Σcredited == Σraw − excess, so the credited
//     total reconciles exactly with the clamped aggregate;
//   - excess > Σraw zeroes every credit (cannot claw back more than was
//     claimed).
//
// weights is only read by PolicyWeighted; nil means equal weights.
func apportion(policy AllocationPolicy, raw []float64, excess float64, weights []float64) []float64 {
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

	switch policy {
	case PolicyProportional:
		// Σraw > excess > 0 here, so the divisor is positive.
		scale := 1 - excess/floats.Sum(raw)
		for i, d := range raw {
			credited[i] = math.Max(d*scale, 0)
		}
	case PolicyWeighted:
		clawWeighted(credited, excess, weights)
	default:
		clawSequential(credited, excess)
	}
	return credited
}

// clawSequential consumes the excess strictly in component order: earlier
// components retain full credit, later ones absorb the overage. Components
// reached after the excess is exhausted are untouched.
func clawSequential(credited []float64, excess float64) {
	remaining := excess
	for i := range credited {
		if remaining <= 0 {
			return
		}
		take := math.Min(remaining, credited[i])
		credited[i] -= take
		remaining -= take
	}
}

// clawLastFirst consumes the excess from the last component backwards. The
// multiplicative model uses it so the latest tier absorbs the overshoot,
// cascading toward earlier tiers until the excess is fully consumed.
func clawLastFirst(credited []float64, excess float64) {
	remaining := excess
	for i := len(credited) - 1; i >= 0; i-- {
		if remaining <= 0 {
			return
		}
		take := math.Min(remaining, credited[i])
		credited[i] -= take
		remaining -= take
	}
}

// clawWeighted removes the excess in proportion to weight × contribution.
// A clawback that would drive a component negative is clamped at zero and the
// shortfall redistributed over the remaining components, so the credited
// total still reconciles exactly. Weight zero protects a component entirely
// as long as some other weighted product is positive; if every weighted
// product is zero the raw values are left untouched.
func clawWeighted(credited []float64, excess float64, weights []float64) {
	remaining := excess
	for pass := 0; pass < len(credited) && remaining > 0; pass++ {
		den := 0.0
		for i, d := range credited {
			den += weightAt(weights, i) * d
		}
		if den <= 0 {
			return
		}
		shortfall := 0.0
		for i := range credited {
			claw := remaining * weightAt(weights, i) * credited[i] / den
			if claw >= credited[i] {
				shortfall += claw - credited[i]
				credited[i] = 0
			} else {
				credited[i] -= claw
			}
		}
		remaining = shortfall
	}
}

func weightAt(weights []float64, i int) float64 {
	if i >= len(weights) {
		return 1
	}
	return weights[i]
}
