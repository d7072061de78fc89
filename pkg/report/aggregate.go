package report

import (
	"math"
	"sort"

	"github.com/watttrace/analyzer-core/pkg/carbonmodel"
)

// Hotspot is one entry of the top-5 ranking (§4.10).
type Hotspot struct {
	Name       string
	WeightedOp int64
	Percentage float64
}

// Hotspots returns the top five functions by weighted ops, descending,
// ties broken by definition order (testable property 7).
func (r *AnalysisResult) Hotspots() []Hotspot {
	type ranked struct {
		idx int
		fn  *FunctionAnalysis
	}

	ranked_ := make([]ranked, len(r.Functions))
	for i, fn := range r.Functions {
		ranked_[i] = ranked{idx: i, fn: fn}
	}

	sort.SliceStable(ranked_, func(i, j int) bool {
		return ranked_[i].fn.WeightedOps() > ranked_[j].fn.WeightedOps()
	})

	total := r.TotalWeightedOps()

	limit := 5
	if len(ranked_) < limit {
		limit = len(ranked_)
	}

	out := make([]Hotspot, 0, limit)

	for _, rk := range ranked_[:limit] {
		pct := 0.0
		if total > 0 {
			pct = math.Round(float64(rk.fn.WeightedOps())/float64(total)*10000) / 100
		}

		out = append(out, Hotspot{Name: rk.fn.Name, WeightedOp: rk.fn.WeightedOps(), Percentage: pct})
	}

	return out
}

// FunctionRecord is the per-function projection of the structured output
// schema (§6).
type FunctionRecord struct {
	Name           string           `json:"name" yaml:"name"`
	Line           int              `json:"line" yaml:"line"`
	WeightedOps    int64            `json:"weighted_ops" yaml:"weighted_ops"`
	EnergyJoules   float64          `json:"energy_joules" yaml:"energy_joules"`
	CarbonGramsCO2 float64          `json:"carbon_grams_CO2" yaml:"carbon_grams_CO2"`
	IsRecursive    bool             `json:"is_recursive" yaml:"is_recursive"`
	MaxLoopNesting int              `json:"max_loop_nesting" yaml:"max_loop_nesting"`
	Operations     map[string]int64 `json:"operations" yaml:"operations"`
}

// HotspotRecord is the structured-output projection of a Hotspot.
type HotspotRecord struct {
	Name       string  `json:"name" yaml:"name"`
	WeightedOp int64   `json:"weighted_ops" yaml:"weighted_ops"`
	Percentage float64 `json:"percentage" yaml:"percentage"`
}

// Serializable is the stable structured-output schema of §6.
type Serializable struct {
	Language               string           `json:"language" yaml:"language"`
	FilePath               string           `json:"file_path" yaml:"file_path"`
	TotalOperations        map[string]int64 `json:"total_operations" yaml:"total_operations"`
	TotalWeightedOperation int64            `json:"total_weighted_operations" yaml:"total_weighted_operations"`
	EnergyJoules           float64          `json:"energy_joules" yaml:"energy_joules"`
	EnergyKWh              float64          `json:"energy_kWh" yaml:"energy_kWh"`
	CarbonGramsCO2         float64          `json:"carbon_grams_CO2" yaml:"carbon_grams_CO2"`
	Functions              []FunctionRecord `json:"functions" yaml:"functions"`
	HotspotFunctions       []HotspotRecord  `json:"hotspot_functions" yaml:"hotspot_functions"`
	Assumptions            []string         `json:"assumptions" yaml:"assumptions"` //nolint:govet // field order mirrors §6 schema
}

// ToSerializable builds the deterministic structured-output object (§4.10,
// §6) from r under cfg.
func (r *AnalysisResult) ToSerializable(cfg carbonmodel.Config) Serializable {
	totalOps := r.TotalOperations()
	totalWeighted := totalOps.TotalWeighted()
	energyJ := clampFinite(carbonmodel.EnergyJoules(cfg, totalWeighted))
	energyKWh := clampFinite(carbonmodel.EnergyKWh(cfg, energyJ))
	carbonG := clampFinite(carbonmodel.CarbonGrams(cfg, energyKWh))

	functions := make([]FunctionRecord, len(r.Functions))
	for i, fn := range r.Functions {
		functions[i] = FunctionRecord{
			Name:           fn.Name,
			Line:           fn.Line,
			WeightedOps:    fn.WeightedOps(),
			EnergyJoules:   clampFinite(fn.EnergyJoules(cfg)),
			CarbonGramsCO2: clampFinite(fn.CarbonGrams(cfg)),
			IsRecursive:    fn.IsRecursive,
			MaxLoopNesting: fn.MaxLoopNesting,
			Operations:     fn.Counts.Summary(),
		}
	}

	hotspots := r.Hotspots()
	hotspotRecords := make([]HotspotRecord, len(hotspots))

	for i, h := range hotspots {
		hotspotRecords[i] = HotspotRecord{Name: h.Name, WeightedOp: h.WeightedOp, Percentage: h.Percentage}
	}

	assumptions := r.Assumptions
	if assumptions == nil {
		assumptions = []string{}
	}

	return Serializable{
		Language:               r.Language,
		FilePath:               r.FilePath,
		TotalOperations:        totalOps.Summary(),
		TotalWeightedOperation: totalWeighted,
		EnergyJoules:           energyJ,
		EnergyKWh:              energyKWh,
		CarbonGramsCO2:         carbonG,
		Functions:              functions,
		HotspotFunctions:       hotspotRecords,
		Assumptions:            assumptions,
	}
}

// clampFinite replaces NaN/Inf with 0, per §7's clamp-to-representable
// requirement for invalid serialization input.
func clampFinite(v float64) float64 {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return 0
	}

	return v
}
