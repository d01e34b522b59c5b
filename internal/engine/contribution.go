package engine

// Contribution is one component's raw claim on the two physical quantities,
// before limit enforcement. Both values are signed toward improvement:
// recovery points gained, acid kg/t saved.
type Contribution struct {
	RecoveryPts float64
	AcidKgPerT  float64
}

// rawContributions produces the per-component raw contributions for the
// configured model variant. Inactive components contribute zero.
func rawContributions(p Parameters) [NumComponents]Contribution {
	if p.Model == ModelAdditive {
		return additiveContributions(p)
	}
	return multiplicativeContributions(p)
}

// multiplicativeContributions walks the components in fixed order, compounding
// each active component's relative effect onto the running recovery and acid
// values. The raw contribution is the difference between consecutive running
// values, so later components see smaller absolute gains even at equal rates.
func multiplicativeContributions(p Parameters) [NumComponents]Contribution {
	var out [NumComponents]Contribution
	recovery := p.BaselineRecoveryPct
	acid := p.BaselineAcidKgPerT
	for i, c := range p.Components {
		if !c.Active {
			// identity step: running values pass through unchanged
			continue
		}
		nextRecovery := recovery * (1 + c.ThetaR*c.Gamma)
		nextAcid := acid * (1 - c.ThetaA*c.Alpha)
		out[i] = Contribution{
			RecoveryPts: nextRecovery - recovery,
			AcidKgPerT:  acid - nextAcid,
		}
		recovery = nextRecovery
		acid = nextAcid
	}
	return out
}

// additiveContributions reads each active component's configured absolute
// deltas directly. No compounding; contributions are independent.
func additiveContributions(p Parameters) [NumComponents]Contribution {
	var out [NumComponents]Contribution
	for i, c := range p.Components {
		if !c.Active {
			continue
		}
		out[i] = Contribution{
			RecoveryPts: c.RecoveryDeltaPts,
			AcidKgPerT:  c.AcidSavingKgPerT,
		}
	}
	return out
}

// recoverySeries and acidSeries split the contributions into per-axis slices
// for the limit enforcer and allocation policies.
func recoverySeries(contribs [NumComponents]Contribution) []float64 {
	out := make([]float64, NumComponents)
	for i, c := range contribs {
		out[i] = c.RecoveryPts
	}
	return out
}

func acidSeries(contribs [NumComponents]Contribution) []float64 {
	out := make([]float64, NumComponents)
	for i, c := range contribs {
		out[i] = c.AcidKgPerT
	}
	return out
}
