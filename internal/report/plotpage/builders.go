package plotpage

import (
	"github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/opts"
)

const pieRadius = "60%"

// BarSeries is a single named series plotted against a shared set of
// x-axis labels.
type BarSeries struct {
	Name  string
	Data  []float64
	Color string
}

// BuildBarChart constructs a themed bar chart with one bar per label and
// one or more series layered across them. cOpts nil uses DefaultChartOpts.
func BuildBarChart(cOpts *ChartOpts, labels []string, series []BarSeries, yAxisLabel string) *charts.Bar {
	if cOpts == nil {
		cOpts = DefaultChartOpts()
	}

	bar := charts.NewBar()
	bar.SetGlobalOptions(
		charts.WithInitializationOpts(cOpts.Init("100%", "450px")),
		charts.WithTooltipOpts(cOpts.Tooltip("axis")),
		charts.WithDataZoomOpts(cOpts.DataZoom()...),
		charts.WithXAxisOpts(cOpts.XAxis("")),
		charts.WithYAxisOpts(cOpts.YAxis(yAxisLabel)),
		charts.WithGridOpts(cOpts.Grid()),
		charts.WithLegendOpts(cOpts.Legend()),
	)
	bar.SetXAxis(labels)

	for _, s := range series {
		data := make([]opts.BarData, len(s.Data))
		for i, v := range s.Data {
			data[i] = opts.BarData{Value: v}
		}

		var seriesOpts []charts.SeriesOpts
		if s.Color != "" {
			seriesOpts = append(seriesOpts, charts.WithItemStyleOpts(opts.ItemStyle{Color: s.Color}))
		}

		bar.AddSeries(s.Name, data, seriesOpts...)
	}

	return bar
}

// PieSlice is one wedge of a pie chart.
type PieSlice struct {
	Name  string
	Value float64
	Color string
}

// BuildPieChart constructs a themed pie chart from slices, grounded on the
// teacher's volume/complexity distribution pies: a single series, percentage
// labels, and a legend along the bottom. cOpts nil uses DefaultChartOpts.
func BuildPieChart(cOpts *ChartOpts, seriesName string, slices []PieSlice) *charts.Pie {
	if cOpts == nil {
		cOpts = DefaultChartOpts()
	}

	pie := charts.NewPie()
	pie.SetGlobalOptions(
		charts.WithInitializationOpts(cOpts.Init("100%", "450px")),
		charts.WithTooltipOpts(cOpts.Tooltip("item")),
		charts.WithLegendOpts(opts.Legend{
			Show:      opts.Bool(true),
			Top:       "bottom",
			TextStyle: &opts.TextStyle{Color: cOpts.TextMutedColor()},
		}),
	)

	data := make([]opts.PieData, len(slices))

	for i, s := range slices {
		data[i] = opts.PieData{Name: s.Name, Value: s.Value}
		if s.Color != "" {
			data[i].ItemStyle = &opts.ItemStyle{Color: s.Color}
		}
	}

	pie.AddSeries(seriesName, data).SetSeriesOptions(
		charts.WithLabelOpts(opts.Label{
			Show:      opts.Bool(true),
			Formatter: "{b}: {c} ({d}%)",
			Color:     cOpts.TextMutedColor(),
		}),
		charts.WithPieChartOpts(opts.PieChart{Radius: pieRadius}),
	)

	return pie
}
