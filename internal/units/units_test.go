package units

import "testing"

func TestTonnesFromMegatonnes(t *testing.T) {
	if got := TonnesFromMegatonnes(10); got != 10_000_000 {
		t.Errorf("TonnesFromMegatonnes(10) = %v, want 10000000", got)
	}
}

func TestFractionFromPercent(t *testing.T) {
	if got := FractionFromPercent(0.5); got != 0.005 {
		t.Errorf("FractionFromPercent(0.5) = %v, want 0.005", got)
	}
}

func TestCopperTonnesPerYear(t *testing.T) {
	// 10 Mt/a at 0.5% grade with 5.4 recovery points gained.
	if got := CopperTonnesPerYear(10_000_000, 0.005, 5.4); got != 2700 {
		t.Errorf("CopperTonnesPerYear = %v, want 2700", got)
	}
}

func TestAcidTonnesPerYear(t *testing.T) {
	if got := AcidTonnesPerYear(10_000_000, 6.5); got != 65000 {
		t.Errorf("AcidTonnesPerYear = %v, want 65000", got)
	}
}

func TestFormatMoney(t *testing.T) {
	cases := []struct {
		in   float64
		want string
	}{
		{0, "$0"},
		{950, "$950"},
		{1000, "$1,000"},
		{32_100_000, "$32,100,000"},
		{1234567.49, "$1,234,567"},
		{-42000, "-$42,000"},
		{-0.2, "$0"},
	}
	for _, tc := range cases {
		if got := FormatMoney(tc.in); got != tc.want {
			t.Errorf("FormatMoney(%v) = %q, want %q", tc.in, got, tc.want)
		}
	}
}
