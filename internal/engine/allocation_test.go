package engine

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/floats/scalar"
)

var allPolicies = []AllocationPolicy{PolicySequential, PolicyProportional, PolicyWeighted}

func TestApportionZeroExcessIsIdentity(t *testing.T) {
	raw := []float64{0.5, 1.2, 0.7, 3.0}
	for _, policy := range allPolicies {
		got := apportion(policy, raw, 0, nil)
		if diff := cmp.Diff(raw, got); diff != "" {
			t.Errorf("policy %s: zero excess changed contributions (-want +got):\n%s", policy, diff)
		}
	}
}

func TestApportionConservation(t *testing.T) {
	cases := []struct {
		name    string
		raw     []float64
		excess  float64
		weights []float64
	}{
		{"small excess", []float64{0.5, 1.2, 0.7, 3.0}, 0.4, nil},
		{"mid excess", []float64{0.5, 1.2, 0.7, 3.0}, 2.4, nil},
		{"near total", []float64{0.5, 1.2, 0.7, 3.0}, 5.3, nil},
		{"uneven weights", []float64{1, 1, 1, 1}, 2, []float64{4, 2, 1, 1}},
		{"clamping weights", []float64{0.1, 3, 3, 3}, 4, []float64{100, 1, 1, 1}},
	}
	for _, tc := range cases {
		for _, policy := range allPolicies {
			got := apportion(policy, tc.raw, tc.excess, tc.weights)
			want := floats.Sum(tc.raw) - tc.excess
			if sum := floats.Sum(got); !scalar.EqualWithinAbs(sum, want, 1e-9) {
				t.Errorf("%s/%s: credited sum = %v, want %v", tc.name, policy, sum, want)
			}
			for i, v := range got {
				if v < 0 {
					t.Errorf("%s/%s: credited[%d] = %v, want >= 0", tc.name, policy, i, v)
				}
			}
		}
	}
}

func TestApportionExcessBeyondTotalZeroesAll(t *testing.T) {
	raw := []float64{0.5, 1.2, 0.7, 3.0}
	for _, policy := range allPolicies {
		got := apportion(policy, raw, 10, nil)
		for i, v := range got {
			if v != 0 {
				t.Errorf("policy %s: credited[%d] = %v, want 0", policy, i, v)
			}
		}
	}
}

func TestSequentialPriority(t *testing.T) {
	// Excess within C1's contribution only touches C1.
	raw := []float64{0.5, 1.2, 0.7, 3.0}
	got := apportion(PolicySequential, raw, 0.3, nil)
	want := []float64{0.2, 1.2, 0.7, 3.0}
	if diff := cmp.Diff(want, got, cmpopts.EquateApprox(0, 1e-12)); diff != "" {
		t.Errorf("sequential clawback (-want +got):\n%s", diff)
	}
}

func TestSequentialConsumesInOrder(t *testing.T) {
	// 2.4 points of excess fully claws back C1..C3 and leaves C4 untouched.
	raw := []float64{0.5, 1.2, 0.7, 3.0}
	got := apportion(PolicySequential, raw, 2.4, nil)
	want := []float64{0, 0, 0, 3.0}
	if diff := cmp.Diff(want, got, cmpopts.EquateApprox(0, 1e-12)); diff != "" {
		t.Errorf("sequential clawback (-want +got):\n%s", diff)
	}
}

func TestClawLastFirstProtectsEarlyTiers(t *testing.T) {
	credited := []float64{0.5, 1.2, 0.7, 3.0}
	clawLastFirst(credited, 3.5)
	want := []float64{0.5, 1.2, 0.2, 0}
	if diff := cmp.Diff(want, credited, cmpopts.EquateApprox(0, 1e-12)); diff != "" {
		t.Errorf("last-first clawback (-want +got):\n%s", diff)
	}
}

func TestProportionalScalesUniformly(t *testing.T) {
	raw := []float64{0.5, 1.2, 0.7, 3.0} // sum 5.4
	got := apportion(PolicyProportional, raw, 2.7, nil)
	for i, d := range raw {
		if want := d * 0.5; !scalar.EqualWithinAbs(got[i], want, 1e-12) {
			t.Errorf("credited[%d] = %v, want %v", i, got[i], want)
		}
	}
}

func TestWeightedEqualWeightsMatchesProportional(t *testing.T) {
	raw := []float64{0.5, 1.2, 0.7, 3.0}
	weights := []float64{1, 1, 1, 1}
	weighted := apportion(PolicyWeighted, raw, 2.4, weights)
	proportional := apportion(PolicyProportional, raw, 2.4, nil)
	if diff := cmp.Diff(proportional, weighted, cmpopts.EquateApprox(0, 1e-9)); diff != "" {
		t.Errorf("weighted with equal weights should match proportional (-prop +weighted):\n%s", diff)
	}
}

func TestWeightedZeroWeightIsProtected(t *testing.T) {
	raw := []float64{0.5, 1.2, 0.7, 3.0}
	weights := []float64{0, 1, 1, 1}
	got := apportion(PolicyWeighted, raw, 1.5, weights)
	if got[0] != raw[0] {
		t.Errorf("zero-weight component clawed back: credited[0] = %v, want %v", got[0], raw[0])
	}
	if sum := floats.Sum(got); !scalar.EqualWithinAbs(sum, floats.Sum(raw)-1.5, 1e-9) {
		t.Errorf("credited sum = %v, want %v", sum, floats.Sum(raw)-1.5)
	}
}

func TestWeightedAllZeroProductsLeavesRaw(t *testing.T) {
	raw := []float64{0.5, 1.2, 0.7, 3.0}
	weights := []float64{0, 0, 0, 0}
	got := apportion(PolicyWeighted, raw, 1.0, weights)
	if diff := cmp.Diff(raw, got); diff != "" {
		t.Errorf("all-zero weighted products should leave raw untouched (-want +got):\n%s", diff)
	}
}
