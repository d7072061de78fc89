// Package wattrace is the public entry point of the carbon-footprint
// analyzer core (C10): language dispatch, walker selection, and the
// external API surface of §6.
package wattrace

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/watttrace/analyzer-core/internal/fallback"
	"github.com/watttrace/analyzer-core/internal/observability"
	"github.com/watttrace/analyzer-core/internal/parsersetup"
	"github.com/watttrace/analyzer-core/internal/synnode"
	"github.com/watttrace/analyzer-core/internal/walker/brace"
	"github.com/watttrace/analyzer-core/internal/walker/indent"
	"github.com/watttrace/analyzer-core/pkg/carbonmodel"
	"github.com/watttrace/analyzer-core/pkg/langdetect"
	"github.com/watttrace/analyzer-core/pkg/report"
)

// indentDialectLanguages are analyzed with the indentation-family walker;
// everything else supported uses the brace family.
var indentDialectLanguages = map[string]bool{"python": true} //nolint:gochecknoglobals // closed contract table

// Analyzer is the orchestrator (C10). It owns a parser registry and the
// model configuration used to derive energy/carbon figures.
type Analyzer struct {
	registry *parsersetup.Registry
	cfg      carbonmodel.Config
	logger   *slog.Logger
	metrics  *observability.AnalysisMetrics
}

// New creates an Analyzer with the given model configuration and logger.
// A nil logger defaults to slog.Default().
func New(cfg carbonmodel.Config, logger *slog.Logger) *Analyzer {
	if logger == nil {
		logger = slog.Default()
	}

	return &Analyzer{registry: parsersetup.NewRegistry(), cfg: cfg, logger: logger}
}

// WithMetrics attaches Prometheus instruments to the analyzer. A nil
// metrics value is accepted and simply disables recording (every
// AnalysisMetrics method is a safe no-op on a nil receiver).
func (a *Analyzer) WithMetrics(metrics *observability.AnalysisMetrics) *Analyzer {
	a.metrics = metrics

	return a
}

// Initialize resolves grammar binaries, one-time and idempotent.
// Failure is non-fatal: subsequent analyses fall back to C9 (§6, §7).
func (a *Analyzer) Initialize(_ context.Context) error {
	if err := a.registry.Initialize(); err != nil {
		a.logger.Warn("grammar initialization failed, falling back to textual analysis", "error", err)

		return nil
	}

	return nil
}

// Dispose releases grammars and parsers.
func (a *Analyzer) Dispose() { a.registry.Dispose() }

// Estimate analyzes sourceText, asynchronously awaiting a parse tree when
// a grammar is available, falling back to the textual walker otherwise
// (§6). path and languageOverride are both optional ("" means absent).
func (a *Analyzer) Estimate(ctx context.Context, sourceText, path, languageOverride string) *report.AnalysisResult {
	start := time.Now()

	if languageOverride == "" && path == "" && strings.TrimSpace(sourceText) == "" {
		a.metrics.RecordUndetectable()

		result := report.New("", "")
		result.Assume("Language could not be detected — no analysis performed")

		return result
	}

	language := langdetect.Detect(languageOverride, path, sourceText)
	defer func() { a.metrics.RecordRequest(language, time.Since(start)) }()

	root, closer, err := a.registry.Parse(ctx, language, []byte(sourceText))
	if err != nil {
		a.logger.Debug("parse-tree unavailable, using textual fallback", "language", language, "error", err)

		result := a.analyzeFallback(language, sourceText)
		result.FilePath = path

		return result
	}

	defer closer()

	result := a.analyzeTree(language, root)
	result.FilePath = path

	return result
}

// EstimateSync always uses the textual fallback walker (C9), synchronously.
func (a *Analyzer) EstimateSync(sourceText, path, languageOverride string) *report.AnalysisResult {
	start := time.Now()

	if languageOverride == "" && path == "" && strings.TrimSpace(sourceText) == "" {
		a.metrics.RecordUndetectable()

		result := report.New("", "")
		result.Assume("Language could not be detected — no analysis performed")

		return result
	}

	language := langdetect.Detect(languageOverride, path, sourceText)
	result := a.analyzeFallback(language, sourceText)
	result.FilePath = path

	a.metrics.RecordRequest(language, time.Since(start))

	return result
}

// ToSerializable produces the deterministic structured-output object
// (§4.10, §6) for result under this analyzer's configuration.
func (a *Analyzer) ToSerializable(result *report.AnalysisResult) report.Serializable {
	return result.ToSerializable(a.cfg)
}

// ToYAML renders result's structured output as YAML, an alternate
// serialization of the §6 schema alongside the default JSON encoding.
func (a *Analyzer) ToYAML(result *report.AnalysisResult) ([]byte, error) {
	out, err := yaml.Marshal(a.ToSerializable(result))
	if err != nil {
		return nil, fmt.Errorf("marshaling result as YAML: %w", err)
	}

	return out, nil
}

func (a *Analyzer) analyzeTree(language string, root synnode.Node) *report.AnalysisResult {
	if root == nil {
		result := report.New(language, "")
		result.Assume("parse tree was empty, textual fallback not applied")

		return result
	}

	if indentDialectLanguages[language] {
		return indent.New(language).Analyze(root)
	}

	return brace.New(language).Analyze(root)
}

func (a *Analyzer) analyzeFallback(language, sourceText string) *report.AnalysisResult {
	a.metrics.RecordFallback()

	result := fallback.New(language, indentDialectLanguages[language]).Analyze(sourceText)
	result.Language = language

	return result
}
