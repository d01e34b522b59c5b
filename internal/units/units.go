// Package units provides shared conversions between the operational units of
// the business case (Mt/a, %, kg/t, recovery points) and the annualised
// tonnage figures the benefit calculation works in, plus money formatting for
// report output.
package units

import (
	"math"
	"strconv"
	"strings"
)

// TonnesFromMegatonnes converts an annual tonnage from Mt/a to t/a.
func TonnesFromMegatonnes(mt float64) float64 {
	return mt * 1_000_000
}

// FractionFromPercent converts a percentage to a fraction.
func FractionFromPercent(pct float64) float64 {
	return pct / 100
}

// CopperTonnesPerYear returns the additional copper produced (t/a) by a
// recovery improvement of recoveryPts percentage points over a feed of
// tonnesPerYear at gradeFraction copper.
func CopperTonnesPerYear(tonnesPerYear, gradeFraction, recoveryPts float64) float64 {
	return tonnesPerYear * gradeFraction * recoveryPts / 100
}

// AcidTonnesPerYear returns the annual acid saving (t/a) implied by a
// per-tonne saving of acidKgPerT over a feed of tonnesPerYear.
func AcidTonnesPerYear(tonnesPerYear, acidKgPerT float64) float64 {
	return tonnesPerYear * acidKgPerT / 1000
}

// FormatMoney renders an annual dollar figure rounded to whole units with
// thousands separators, e.g. 32100000 -> "$32,100,000".
func FormatMoney(v float64) string {
	rounded := math.Round(v)
	neg := rounded < 0
	s := strconv.FormatFloat(math.Abs(rounded), 'f', 0, 64)

	var b strings.Builder
	if neg {
		b.WriteByte('-')
	}
	b.WriteByte('$')
	lead := len(s) % 3
	if lead == 0 {
		lead = 3
	}
	b.WriteString(s[:lead])
	for i := lead; i < len(s); i += 3 {
		b.WriteByte(',')
		b.WriteString(s[i : i+3])
	}
	return b.String()
}
