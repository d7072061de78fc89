package render_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/watttrace/analyzer-core/internal/report/render"
	"github.com/watttrace/analyzer-core/pkg/report"
)

func sampleSerializable() report.Serializable {
	return report.Serializable{
		Language:               "python",
		FilePath:               "sample.py",
		TotalWeightedOperation: 42,
		EnergyJoules:           1.26e-7,
		EnergyKWh:              3.5e-14,
		CarbonGramsCO2:         1.66e-11,
		Functions: []report.FunctionRecord{
			{Name: "f", Line: 1, WeightedOps: 42, EnergyJoules: 1.26e-7, CarbonGramsCO2: 1.66e-11},
		},
		HotspotFunctions: []report.HotspotRecord{{Name: "f", WeightedOp: 42, Percentage: 100}},
		Assumptions:      []string{"for-loop resolved to 10 iterations"},
	}
}

func TestTable_ContainsFunctionAndHotspotNames(t *testing.T) {
	t.Parallel()

	var buf strings.Builder

	render.Table(&buf, sampleSerializable(), render.Options{NoColor: true, Verbose: true})

	out := buf.String()
	assert.Contains(t, out, "python")
	assert.Contains(t, out, "sample.py")
	assert.Contains(t, out, "Hotspots")
	assert.Contains(t, out, "for-loop resolved to 10 iterations")
}

func TestCompact_SingleLine(t *testing.T) {
	t.Parallel()

	var buf strings.Builder

	render.Compact(&buf, sampleSerializable())

	out := buf.String()
	assert.Equal(t, 1, strings.Count(out, "\n"))
	assert.Contains(t, out, "python")
	assert.Contains(t, out, "sample.py")
}
