package wattrace_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/watttrace/analyzer-core/pkg/carbonmodel"
	"github.com/watttrace/analyzer-core/pkg/wattrace"
)

// TestEstimate_S6UndetectableLanguage covers the empty-input guard: no
// override, no path, no source means the language cannot be detected and
// no walker runs at all (§6, S6).
func TestEstimate_S6UndetectableLanguage(t *testing.T) {
	t.Parallel()

	analyzer := wattrace.New(carbonmodel.Default(), nil)

	result := analyzer.Estimate(context.Background(), "", "", "")

	assert.Empty(t, result.Functions)
	assert.Equal(t, []string{"Language could not be detected — no analysis performed"}, result.Assumptions)
}

// TestEstimateSync_S6UndetectableLanguage checks the synchronous entry
// point applies the same guard as Estimate.
func TestEstimateSync_S6UndetectableLanguage(t *testing.T) {
	t.Parallel()

	analyzer := wattrace.New(carbonmodel.Default(), nil)

	result := analyzer.EstimateSync("", "", "")

	assert.Empty(t, result.Functions)
	assert.Equal(t, []string{"Language could not be detected — no analysis performed"}, result.Assumptions)
}

// TestEstimateSync_AlwaysFallback confirms EstimateSync never attempts a
// parse-tree walk, even for recognizable source (§6: "always uses C9").
func TestEstimateSync_AlwaysFallback(t *testing.T) {
	t.Parallel()

	analyzer := wattrace.New(carbonmodel.Default(), nil)

	result := analyzer.EstimateSync("def f():\n    return 1\n", "", "python")

	assert.Equal(t, "python", result.Language)
	assert.Contains(t, result.Assumptions, "Analyzed with the textual fallback walker (no parse tree available)")
}

// TestEstimate_UnregisteredGrammarFallsBack confirms that when the parser
// registry has no grammar available (Initialize was never called), Estimate
// falls back to the textual walker rather than failing (§6, §7).
func TestEstimate_UnregisteredGrammarFallsBack(t *testing.T) {
	t.Parallel()

	analyzer := wattrace.New(carbonmodel.Default(), nil)

	result := analyzer.Estimate(context.Background(), "def f():\n    return 1\n", "sample.py", "")

	assert.Equal(t, "python", result.Language)
	assert.Equal(t, "sample.py", result.FilePath)
	assert.Contains(t, result.Assumptions, "Analyzed with the textual fallback walker (no parse tree available)")
}

// TestToSerializable_RoundTrips confirms the serializable projection
// carries the file path and language through from a fallback analysis.
func TestToSerializable_RoundTrips(t *testing.T) {
	t.Parallel()

	analyzer := wattrace.New(carbonmodel.Default(), nil)

	result := analyzer.EstimateSync("int main() { return 0; }", "main.c", "")
	serializable := analyzer.ToSerializable(result)

	assert.Equal(t, "c", serializable.Language)
	assert.Equal(t, "main.c", serializable.FilePath)
}

// TestToYAML_ContainsLanguageAndPath confirms the YAML projection (an
// alternate serialization of the §6 schema) round-trips the same fields
// as ToSerializable.
func TestToYAML_ContainsLanguageAndPath(t *testing.T) {
	t.Parallel()

	analyzer := wattrace.New(carbonmodel.Default(), nil)

	result := analyzer.EstimateSync("def f():\n    return 1\n", "sample.py", "")

	out, err := analyzer.ToYAML(result)
	assert.NoError(t, err)
	assert.Contains(t, string(out), "language: python")
	assert.Contains(t, string(out), "file_path: sample.py")
}
