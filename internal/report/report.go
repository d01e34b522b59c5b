// Package report renders evaluation results as self-contained HTML charts:
// a waterfall of per-component annual benefit and a physical-delta breakdown.
package report

import (
	"fmt"
	"io"

	"github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/components"
	"github.com/go-echarts/go-echarts/v2/opts"

	"github.com/mineralytics/acidcase/internal/engine"
	"github.com/mineralytics/acidcase/internal/units"
)

// Corporate palette carried over from the original business-case deck.
var palette = []string{"#328BA1", "#DEA942", "#DC5214"}

const totalColor = "#0B5563"

// summaryLine condenses the headline KPIs into a chart subtitle.
func summaryLine(res engine.Result) string {
	return fmt.Sprintf(
		"recovery %.2f%% (Δ %.2f pts) | acid %.2f kg/t (saved %.2f kg/t) | ΔCu %.0f t/a | benefit %s/a",
		res.FinalRecoveryPct, res.RecoveryDeltaPts,
		res.FinalAcidKgPerT, res.AcidDeltaKgPerT,
		res.AddedCopperTonnes, units.FormatMoney(res.TotalBenefit),
	)
}

// waterfallBar builds the incremental-benefit waterfall: one bar per
// component in fixed order, riding on an invisible cumulative base, closed by
// a Total bar. Credited benefits are non-negative by engine invariant, so the
// running total reaches the aggregate on the final bar.
func waterfallBar(res engine.Result) *charts.Bar {
	labels := make([]string, 0, engine.NumComponents+1)
	base := make([]opts.BarData, 0, engine.NumComponents+1)
	value := make([]opts.BarData, 0, engine.NumComponents+1)

	cumulative := 0.0
	for i, c := range res.Components {
		labels = append(labels, c.Name)
		base = append(base, opts.BarData{Value: cumulative})
		value = append(value, opts.BarData{
			Value:     c.BenefitPerYear,
			ItemStyle: &opts.ItemStyle{Color: palette[i%len(palette)]},
		})
		cumulative += c.BenefitPerYear
	}
	labels = append(labels, "Total")
	base = append(base, opts.BarData{Value: 0.0})
	value = append(value, opts.BarData{
		Value:     cumulative,
		ItemStyle: &opts.ItemStyle{Color: totalColor},
	})

	bar := charts.NewBar()
	bar.SetGlobalOptions(
		charts.WithInitializationOpts(opts.Initialization{
			PageTitle: "Incremental Benefit by Component",
			Width:     "980px",
			Height:    "560px",
		}),
		charts.WithTitleOpts(opts.Title{
			Title:    "Waterfall – Incremental Benefit by Component (USD/year)",
			Subtitle: summaryLine(res),
		}),
		charts.WithTooltipOpts(opts.Tooltip{Show: opts.Bool(true)}),
		charts.WithYAxisOpts(opts.YAxis{Name: "USD/year"}),
	)
	bar.SetXAxis(labels).
		AddSeries("base", base,
			charts.WithBarChartOpts(opts.BarChart{Stack: "waterfall"}),
			charts.WithItemStyleOpts(opts.ItemStyle{Color: "transparent", BorderColor: "transparent"}),
		).
		AddSeries("benefit", value,
			charts.WithBarChartOpts(opts.BarChart{Stack: "waterfall"}),
			charts.WithLabelOpts(opts.Label{Show: opts.Bool(true), Position: "top"}),
		)
	return bar
}

// breakdownBar builds grouped bars of credited recovery points and acid
// savings per component.
func breakdownBar(res engine.Result) *charts.Bar {
	labels := make([]string, 0, engine.NumComponents)
	recovery := make([]opts.BarData, 0, engine.NumComponents)
	acid := make([]opts.BarData, 0, engine.NumComponents)
	for _, c := range res.Components {
		labels = append(labels, c.Name)
		recovery = append(recovery, opts.BarData{Value: c.CreditedRecoveryPts})
		acid = append(acid, opts.BarData{Value: c.CreditedAcidKgPerT})
	}

	bar := charts.NewBar()
	bar.SetGlobalOptions(
		charts.WithInitializationOpts(opts.Initialization{
			PageTitle: "Credited Deltas by Component",
			Width:     "980px",
			Height:    "560px",
		}),
		charts.WithTitleOpts(opts.Title{
			Title:    "Credited Contributions by Component",
			Subtitle: summaryLine(res),
		}),
		charts.WithTooltipOpts(opts.Tooltip{Show: opts.Bool(true)}),
		charts.WithLegendOpts(opts.Legend{Show: opts.Bool(true)}),
	)
	bar.SetXAxis(labels).
		AddSeries("Δ recovery (pts)", recovery,
			charts.WithItemStyleOpts(opts.ItemStyle{Color: palette[0]}),
		).
		AddSeries("acid saved (kg/t)", acid,
			charts.WithItemStyleOpts(opts.ItemStyle{Color: palette[1]}),
		)
	return bar
}

// RenderWaterfall writes the waterfall chart as a standalone HTML document.
func RenderWaterfall(w io.Writer, res engine.Result) error {
	if err := waterfallBar(res).Render(w); err != nil {
		return fmt.Errorf("failed to render waterfall chart: %w", err)
	}
	return nil
}

// RenderBreakdown writes the per-component delta chart as a standalone HTML
// document.
func RenderBreakdown(w io.Writer, res engine.Result) error {
	if err := breakdownBar(res).Render(w); err != nil {
		return fmt.Errorf("failed to render breakdown chart: %w", err)
	}
	return nil
}

// RenderReport writes both charts into one HTML page, for one-shot report
// generation from the command line.
func RenderReport(w io.Writer, res engine.Result) error {
	page := components.NewPage()
	page.PageTitle = "Business Case – Intelligent Acid Dosing"
	page.AddCharts(waterfallBar(res), breakdownBar(res))
	if err := page.Render(w); err != nil {
		return fmt.Errorf("failed to render report page: %w", err)
	}
	return nil
}
