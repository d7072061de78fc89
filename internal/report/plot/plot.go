// Package plot renders an analysis result as a standalone HTML page of
// charts (§6's "plot" output format): a hotspot bar chart and a
// three-tier energy/carbon breakdown pie chart (§4.9).
package plot

import (
	"errors"
	"io"
	"sort"

	"github.com/go-echarts/go-echarts/v2/charts"

	"github.com/watttrace/analyzer-core/internal/report/plotpage"
	"github.com/watttrace/analyzer-core/pkg/carbonmodel"
	"github.com/watttrace/analyzer-core/pkg/report"
)

// ErrNoFunctions is returned by Render when the result has no functions
// to chart (the bar chart would otherwise be empty).
var ErrNoFunctions = errors.New("plot: no functions to chart")

const topHotspotLimit = 20

// Render writes an HTML page containing a hotspot bar chart (weighted
// operations per function, top topHotspotLimit) and a three-tier
// energy/carbon pie chart to w.
func Render(w io.Writer, s report.Serializable, breakdown carbonmodel.CarbonBreakdown) error {
	if len(s.Functions) == 0 {
		return ErrNoFunctions
	}

	page := plotpage.NewPage(
		"WattTrace Analysis — "+s.Language,
		"Weighted operation hotspots and estimated carbon footprint by deployment tier.",
	)

	page.Add(
		plotpage.Section{
			Title:    "Hotspot Functions by Weighted Operations",
			Subtitle: s.FilePath,
			Chart:    hotspotBarChart(s),
			Hint: plotpage.Hint{
				Title: "How to interpret:",
				Items: []string{
					"Weighted operations combine loop-adjusted counts across all tracked categories (§4.2-4.6).",
					"A function near the top is the best target for optimization before re-measuring.",
				},
			},
		},
		plotpage.Section{
			Title:    "Carbon Footprint by Deployment Tier",
			Subtitle: "grams CO2 per day, §4.9",
			Chart:    tierPieChart(breakdown),
			Hint: plotpage.Hint{
				Items: []string{
					"User-end scales one execution by the assumed daily user executions; developer-end scales a single execution by the dev-environment multiplier; server-side scales by the assumed daily requests, plus network energy.",
				},
			},
		},
	)

	return page.Render(w)
}

func hotspotBarChart(s report.Serializable) *charts.Bar {
	sorted := make([]report.FunctionRecord, len(s.Functions))
	copy(sorted, s.Functions)

	sort.Slice(sorted, func(i, j int) bool { return sorted[i].WeightedOps > sorted[j].WeightedOps })

	if len(sorted) > topHotspotLimit {
		sorted = sorted[:topHotspotLimit]
	}

	labels := make([]string, len(sorted))
	data := make([]float64, len(sorted))

	for i, fn := range sorted {
		labels[i] = fn.Name
		data[i] = fn.WeightedOps
	}

	series := []plotpage.BarSeries{{Name: "weighted ops", Data: data}}

	return plotpage.BuildBarChart(plotpage.DefaultChartOpts(), labels, series, "weighted ops")
}

func tierPieChart(breakdown carbonmodel.CarbonBreakdown) *charts.Pie {
	palette := plotpage.GetChartPalette(plotpage.ThemeDark)

	slices := []plotpage.PieSlice{
		{Name: breakdown.UserEnd.Label, Value: breakdown.UserEnd.CarbonG, Color: palette.Primary[0]},
		{Name: breakdown.DeveloperEnd.Label, Value: breakdown.DeveloperEnd.CarbonG, Color: palette.Primary[1]},
		{Name: breakdown.ServerSide.Label, Value: breakdown.ServerSide.CarbonG, Color: palette.Semantic.Warning},
	}

	return plotpage.BuildPieChart(plotpage.DefaultChartOpts(), "tiers", slices)
}
