package plot_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/watttrace/analyzer-core/internal/report/plot"
	"github.com/watttrace/analyzer-core/pkg/carbonmodel"
	"github.com/watttrace/analyzer-core/pkg/report"
)

func sampleSerializable() report.Serializable {
	return report.Serializable{
		Language: "python",
		FilePath: "sample.py",
		Functions: []report.FunctionRecord{
			{Name: "hot", Line: 1, WeightedOps: 100},
			{Name: "cold", Line: 10, WeightedOps: 3},
		},
	}
}

func sampleBreakdown() carbonmodel.CarbonBreakdown {
	cfg := carbonmodel.Default()

	return carbonmodel.Breakdown(cfg, carbonmodel.EnergyJoules(cfg, 100))
}

func TestRender_ContainsChartTitlesAndFunctionNames(t *testing.T) {
	t.Parallel()

	var buf strings.Builder

	err := plot.Render(&buf, sampleSerializable(), sampleBreakdown())
	require.NoError(t, err)

	out := buf.String()
	assert.Contains(t, out, "Hotspot Functions")
	assert.Contains(t, out, "Carbon Footprint by Deployment Tier")
	assert.Contains(t, out, "hot")
	assert.Contains(t, out, "cold")
	assert.Contains(t, out, "User End")
	assert.Contains(t, out, "Server Side")
}

func TestRender_NoFunctionsReturnsError(t *testing.T) {
	t.Parallel()

	var buf strings.Builder

	err := plot.Render(&buf, report.Serializable{Language: "python"}, sampleBreakdown())
	require.ErrorIs(t, err, plot.ErrNoFunctions)
}
