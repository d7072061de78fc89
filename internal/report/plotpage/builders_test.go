package plotpage_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/watttrace/analyzer-core/internal/report/plotpage"
)

func TestBuildBarChart(t *testing.T) {
	t.Parallel()

	labels := []string{"f1", "f2", "f3"}
	series := []plotpage.BarSeries{
		{Name: "weighted ops", Data: []float64{10, 20, 30}},
	}

	chart := plotpage.BuildBarChart(nil, labels, series, "ops")
	require.NotNil(t, chart)
	require.Len(t, chart.MultiSeries, 1)
	require.Equal(t, "weighted ops", chart.MultiSeries[0].Name)
}

func TestBuildPieChart(t *testing.T) {
	t.Parallel()

	slices := []plotpage.PieSlice{
		{Name: "user", Value: 1.5},
		{Name: "server", Value: 3.2},
	}

	chart := plotpage.BuildPieChart(plotpage.DefaultChartOpts(), "tiers", slices)
	require.NotNil(t, chart)
	require.Len(t, chart.MultiSeries, 1)
}
