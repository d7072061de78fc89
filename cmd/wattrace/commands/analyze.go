// Package commands provides the CLI command implementations for the
// wattrace binary (§6).
package commands

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/watttrace/analyzer-core/internal/config"
	"github.com/watttrace/analyzer-core/internal/observability"
	"github.com/watttrace/analyzer-core/internal/report/plot"
	"github.com/watttrace/analyzer-core/internal/report/render"
	"github.com/watttrace/analyzer-core/pkg/carbonmodel"
	"github.com/watttrace/analyzer-core/pkg/report"
	"github.com/watttrace/analyzer-core/pkg/wattrace"
)

// ErrNoInput is returned when neither a file argument nor piped stdin
// produced any source text to analyze.
var ErrNoInput = errors.New("commands: no source provided (pass a file path or pipe source on stdin)")

// Output format constants accepted by --format.
const (
	FormatText    = "text"
	FormatCompact = "compact"
	FormatJSON    = "json"
	FormatYAML    = "yaml"
)

// AnalyzeCommand holds the flags for the analyze command.
type AnalyzeCommand struct {
	output       string
	format       string
	plotPath     string
	languageOpt  string
	configPath   string
	verbose      bool
	noColor      bool
	fallbackOnly bool
}

// NewAnalyzeCommand creates and configures the analyze command.
func NewAnalyzeCommand() *cobra.Command {
	ac := &AnalyzeCommand{}

	cobraCmd := &cobra.Command{
		Use:   "analyze [file]",
		Short: "Estimate the energy and carbon footprint of a source file",
		Long: "Analyze reads source code (from a file argument or stdin), counts weighted " +
			"operations per function, and reports the estimated energy (joules) and carbon " +
			"(grams CO2) footprint across the user, developer, and server deployment tiers.",
		Args: cobra.MaximumNArgs(1),
		RunE: ac.Run,
	}

	cobraCmd.Flags().StringVarP(&ac.output, "output", "o", "", "Output file (default: stdout)")
	cobraCmd.Flags().StringVarP(&ac.format, "format", "f", FormatText, "Output format: text, compact, json, or yaml")
	cobraCmd.Flags().StringVar(&ac.plotPath, "plot", "", "Write an HTML chart report to this path")
	cobraCmd.Flags().StringVarP(&ac.languageOpt, "language", "l", "", "Override language detection")
	cobraCmd.Flags().StringVar(&ac.configPath, "config", "", "Path to a .watttrace.yaml config file")
	cobraCmd.Flags().BoolVarP(&ac.verbose, "verbose", "v", false, "Show assumptions made during analysis")
	cobraCmd.Flags().BoolVar(&ac.noColor, "no-color", false, "Disable colored output")
	cobraCmd.Flags().BoolVar(&ac.fallbackOnly, "fallback-only", false, "Always use the textual fallback walker")

	return cobraCmd
}

// Run executes the analyze command.
func (ac *AnalyzeCommand) Run(cobraCmd *cobra.Command, args []string) error {
	ctx := cobraCmd.Context()

	cfg, err := config.Load(ac.configPath)
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	if ac.fallbackOnly {
		cfg.Analysis.UseFallbackOnly = true
	}

	if ac.languageOpt == "" {
		ac.languageOpt = cfg.Analysis.LanguageOverride
	}

	if ac.format == FormatText && cfg.Report.Format != "" {
		ac.format = cfg.Report.Format
	}

	if ac.plotPath == "" {
		ac.plotPath = cfg.Report.HotspotPlot
	}

	path, source, err := ac.readSource(args)
	if err != nil {
		return err
	}

	logger := slog.New(observability.NewTracingHandler(
		slog.NewTextHandler(os.Stderr, nil), "wattrace", "cli", observability.ModeCLI))

	modelCfg := cfg.CarbonModel()
	analyzer := wattrace.New(modelCfg, logger)

	result, err := ac.analyze(ctx, analyzer, cfg, source, path)
	if err != nil {
		return err
	}

	serializable := analyzer.ToSerializable(result)

	if ac.plotPath != "" {
		if plotErr := ac.writePlot(serializable, modelCfg); plotErr != nil {
			return plotErr
		}
	}

	writer, closeFn, err := ac.outputWriter()
	if err != nil {
		return err
	}
	defer closeFn()

	return ac.render(writer, analyzer, result, serializable)
}

// analyze dispatches to the synchronous fallback-only path when configured,
// otherwise lets the analyzer asynchronously await a parse tree (§6).
func (ac *AnalyzeCommand) analyze(
	ctx context.Context, analyzer *wattrace.Analyzer, cfg *config.Config, source, path string,
) (*report.AnalysisResult, error) {
	if cfg.Analysis.UseFallbackOnly {
		return analyzer.EstimateSync(source, path, ac.languageOpt), nil
	}

	if err := analyzer.Initialize(ctx); err != nil {
		return nil, fmt.Errorf("initializing analyzer: %w", err)
	}
	defer analyzer.Dispose()

	return analyzer.Estimate(ctx, source, path, ac.languageOpt), nil
}

func (ac *AnalyzeCommand) readSource(args []string) (path, source string, err error) {
	if len(args) == 1 {
		path = args[0]

		data, readErr := os.ReadFile(path)
		if readErr != nil {
			return "", "", fmt.Errorf("reading %s: %w", path, readErr)
		}

		return path, string(data), nil
	}

	data, readErr := io.ReadAll(os.Stdin)
	if readErr != nil {
		return "", "", fmt.Errorf("reading stdin: %w", readErr)
	}

	if len(data) == 0 {
		return "", "", ErrNoInput
	}

	return "", string(data), nil
}

func (ac *AnalyzeCommand) outputWriter() (io.Writer, func(), error) {
	if ac.output == "" {
		return os.Stdout, func() {}, nil
	}

	file, err := os.Create(ac.output)
	if err != nil {
		return nil, nil, fmt.Errorf("creating output file %s: %w", ac.output, err)
	}

	return file, func() { file.Close() }, nil
}

func (ac *AnalyzeCommand) writePlot(serializable report.Serializable, modelCfg carbonmodel.Config) error {
	file, err := os.Create(ac.plotPath)
	if err != nil {
		return fmt.Errorf("creating plot file %s: %w", ac.plotPath, err)
	}
	defer file.Close()

	base := carbonmodel.EnergyJoules(modelCfg, serializable.TotalWeightedOperation)
	breakdown := carbonmodel.Breakdown(modelCfg, base)

	if err := plot.Render(file, serializable, breakdown); err != nil {
		return fmt.Errorf("rendering plot: %w", err)
	}

	return nil
}

func (ac *AnalyzeCommand) render(
	writer io.Writer, analyzer *wattrace.Analyzer, result *report.AnalysisResult, s report.Serializable,
) error {
	switch ac.format {
	case FormatJSON:
		encoder := json.NewEncoder(writer)
		encoder.SetIndent("", "  ")

		if err := encoder.Encode(s); err != nil {
			return fmt.Errorf("encoding JSON: %w", err)
		}

		return nil
	case FormatYAML:
		out, err := analyzer.ToYAML(result)
		if err != nil {
			return err
		}

		_, err = writer.Write(out)

		return err
	case FormatCompact:
		render.Compact(writer, s)

		return nil
	default:
		render.Table(writer, s, render.Options{NoColor: ac.noColor, Verbose: ac.verbose})

		return nil
	}
}
