package api

import (
	"fmt"
	"html"
	"net/http"
	"net/url"
	"strings"

	"github.com/mineralytics/acidcase/internal/units"
)

const dashboardHTML = `<!DOCTYPE html>
<html>
<head>
<meta charset="utf-8">
<title>Business Case – Intelligent Acid Dosing</title>
<style>
body { font-family: sans-serif; margin: 1.5rem; color: #222; }
h1 { color: #0B5563; }
.metrics { display: flex; flex-wrap: wrap; gap: 1rem; margin-bottom: 1rem; }
.metric { border: 1px solid #ddd; border-radius: 6px; padding: 0.75rem 1rem; min-width: 11rem; }
.metric .label { font-size: 0.8rem; color: #666; }
.metric .value { font-size: 1.4rem; font-weight: bold; }
.advisory { color: #DC5214; margin: 0.5rem 0; }
table { border-collapse: collapse; margin: 1rem 0; }
th, td { border: 1px solid #ddd; padding: 0.4rem 0.8rem; text-align: right; }
th:first-child, td:first-child { text-align: left; }
iframe { border: 1px solid #ddd; width: 1020px; height: 600px; margin-bottom: 1rem; }
</style>
</head>
<body>
<h1>Business Case – Intelligent Acid Dosing in Curing</h1>
<div class="metrics">%s</div>
%s
<h2>Marginal contributions by component</h2>
<table>
<tr><th>Component</th><th>Δ recovery (pts)</th><th>Acid saved (kg/t)</th><th>Benefit (USD/year)</th></tr>
%s
</table>
<h2>Waterfall – incremental benefit</h2>
<iframe src="/charts/waterfall%s"></iframe>
<h2>Credited deltas</h2>
<iframe src="/charts/breakdown%s"></iframe>
</body>
</html>
`

// handleDashboard renders the analyst dashboard: headline metrics, the
// marginal-contribution table, and iframes onto the chart endpoints.
func (s *Server) handleDashboard(w http.ResponseWriter, r *http.Request) {
	res, err := s.resultForRequest(r)
	if err != nil {
		s.chartError(w, err)
		return
	}

	metrics := []struct {
		label string
		value string
	}{
		{"Final recovery (%)", fmt.Sprintf("%.2f", res.FinalRecoveryPct)},
		{"Δ recovery (pts)", fmt.Sprintf("%.2f", res.RecoveryDeltaPts)},
		{"Final acid (kg/t)", fmt.Sprintf("%.2f", res.FinalAcidKgPerT)},
		{"Acid saved (kg/t)", fmt.Sprintf("%.2f", res.AcidDeltaKgPerT)},
		{"Δ Cu (t/a)", fmt.Sprintf("%.0f", res.AddedCopperTonnes)},
		{"Acid saved (t/a)", fmt.Sprintf("%.0f", res.AcidSavedTonnes)},
		{"Annual benefit", units.FormatMoney(res.TotalBenefit)},
	}
	var metricCells strings.Builder
	for _, m := range metrics {
		fmt.Fprintf(&metricCells,
			`<div class="metric"><div class="label">%s</div><div class="value">%s</div></div>`,
			html.EscapeString(m.label), html.EscapeString(m.value))
	}

	var advisoryBlock strings.Builder
	for _, a := range res.Advisories {
		fmt.Fprintf(&advisoryBlock, `<p class="advisory">⚠ %s</p>`, html.EscapeString(a))
	}

	var tableRows strings.Builder
	for _, c := range res.Components {
		fmt.Fprintf(&tableRows,
			"<tr><td>%s</td><td>%.3f</td><td>%.3f</td><td>%s</td></tr>\n",
			html.EscapeString(c.Name),
			c.CreditedRecoveryPts, c.CreditedAcidKgPerT,
			html.EscapeString(units.FormatMoney(c.BenefitPerYear)))
	}

	qs := ""
	if id := r.URL.Query().Get("scenario_id"); id != "" {
		qs = "?scenario_id=" + url.QueryEscape(id)
	}
	safeQs := html.EscapeString(qs)

	doc := fmt.Sprintf(dashboardHTML,
		metricCells.String(), advisoryBlock.String(), tableRows.String(), safeQs, safeQs)

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	_, _ = w.Write([]byte(doc))
}
