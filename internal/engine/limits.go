package engine

import (
	"math"

	"gonum.org/v1/gonum/floats"
)

// recoveryExcess returns the amount (in recovery points) by which the summed
// raw contributions would overshoot the technical ceiling. Zero when the
// ceiling is not breached.
func recoveryExcess(baseline, ceiling float64, raw []float64) float64 {
	final := baseline + floats.Sum(raw)
	return math.Max(final-ceiling, 0)
}

// acidExcess returns the over-claimed acid savings (kg/t) that must be clawed
// back so the final consumption does not fall below the technical floor.
func acidExcess(baseline, floor float64, raw []float64) float64 {
	final := baseline - floats.Sum(raw)
	return math.Max(floor-final, 0)
}
