// Package report holds the analysis result data model (the AnalysisResult
// and FunctionAnalysis entities of §3) and the aggregation logic that turns
// them into the structured output schema of §6 (C12).
package report

import (
	"github.com/watttrace/analyzer-core/pkg/carbonmodel"
	"github.com/watttrace/analyzer-core/pkg/opcount"
)

// FunctionAnalysis is the per-function record produced by a walker.
type FunctionAnalysis struct {
	Name           string
	Line           int // 1-based starting line
	Counts         *opcount.Count
	MaxLoopNesting int
	IsRecursive    bool
	CalledNames    []string
}

// NewFunctionAnalysis creates a zeroed record ready to accumulate counts.
func NewFunctionAnalysis(name string, line int) *FunctionAnalysis {
	return &FunctionAnalysis{Name: name, Line: line, Counts: opcount.New()}
}

// WeightedOps is the weighted operation total for this function alone.
func (f *FunctionAnalysis) WeightedOps() int64 { return f.Counts.TotalWeighted() }

// EnergyJoules derives this function's energy contribution under cfg.
func (f *FunctionAnalysis) EnergyJoules(cfg carbonmodel.Config) float64 {
	return carbonmodel.EnergyJoules(cfg, f.WeightedOps())
}

// CarbonGrams derives this function's CO2 contribution under cfg.
func (f *FunctionAnalysis) CarbonGrams(cfg carbonmodel.Config) float64 {
	kwh := carbonmodel.EnergyKWh(cfg, f.EnergyJoules(cfg))

	return carbonmodel.CarbonGrams(cfg, kwh)
}

// ApplyRecursion scales every counter entry by depth, per
// §4.7 ("recursion is handled after the body walk").
func (f *FunctionAnalysis) ApplyRecursion(depth int64) {
	if !f.IsRecursive || depth <= 0 {
		return
	}

	f.Counts = f.Counts.Scale(depth)
}

// AnalysisResult is the outcome of one analysis call: language tag,
// optional path, ordered functions, global (non-function) operations, and
// an ordered assumptions log (§3).
type AnalysisResult struct {
	Language         string
	FilePath         string
	Functions        []*FunctionAnalysis
	GlobalOperations *opcount.Count
	Assumptions      []string
}

// New creates an empty result for the given language and path.
func New(language, filePath string) *AnalysisResult {
	return &AnalysisResult{
		Language:         language,
		FilePath:         filePath,
		GlobalOperations: opcount.New(),
	}
}

// Assume appends a human-readable assumption in recording order.
func (r *AnalysisResult) Assume(text string) {
	r.Assumptions = append(r.Assumptions, text)
}

// TotalOperations merges globalOperations with every function's counts
// (testable property 4).
func (r *AnalysisResult) TotalOperations() *opcount.Count {
	total := r.GlobalOperations.Clone()
	for _, fn := range r.Functions {
		total.Merge(fn.Counts)
	}

	return total
}

// TotalWeightedOps is the weighted sum across the whole result.
func (r *AnalysisResult) TotalWeightedOps() int64 {
	return r.TotalOperations().TotalWeighted()
}

// Breakdown computes the three-tier carbon breakdown (§4.9) from this
// result's total weighted operations.
func (r *AnalysisResult) Breakdown(cfg carbonmodel.Config) carbonmodel.CarbonBreakdown {
	base := carbonmodel.EnergyJoules(cfg, r.TotalWeightedOps())

	return carbonmodel.Breakdown(cfg, base)
}
