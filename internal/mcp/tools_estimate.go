package mcp

import (
	"context"
	"errors"
	"fmt"

	mcpsdk "github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/watttrace/analyzer-core/pkg/report"
)

// maxSourceBytes bounds the size of a single estimate request; larger
// snippets should go through the CLI against a real file instead.
const maxSourceBytes = 1 << 20 // 1 MiB

// ErrEmptySource is returned when the request carries no source text.
var ErrEmptySource = errors.New("mcp: code must not be empty")

// ErrSourceTooLarge is returned when the request exceeds maxSourceBytes.
var ErrSourceTooLarge = errors.New("mcp: code exceeds the maximum allowed size")

// ErrAnalyzerUnavailable is returned when the server was built without a
// working Analyzer (e.g. in registration-only tests).
var ErrAnalyzerUnavailable = errors.New("mcp: no analyzer configured")

// EstimateInput is the watttrace_estimate tool's input schema.
type EstimateInput struct {
	Code     string `json:"code" jsonschema:"the source code to analyze"`
	Language string `json:"language,omitempty" jsonschema:"optional language override (e.g. python, java, c, cpp, javascript, typescript)"`
	Path     string `json:"path,omitempty" jsonschema:"optional file path, used for language detection and included in the report"`
}

// EstimateOutput is the watttrace_estimate tool's output schema.
type EstimateOutput struct {
	Result report.Serializable `json:"result"`
}

func (s *Server) handleEstimate(
	ctx context.Context,
	_ *mcpsdk.CallToolRequest,
	input EstimateInput,
) (*mcpsdk.CallToolResult, EstimateOutput, error) {
	if err := validateSourceInput(input.Code); err != nil {
		return errorResult(err)
	}

	if s.deps.Analyzer == nil {
		return errorResult(ErrAnalyzerUnavailable)
	}

	result := s.deps.Analyzer.Estimate(ctx, input.Code, input.Path, input.Language)
	serializable := s.deps.Analyzer.ToSerializable(result)

	return jsonResult(serializable)
}

func validateSourceInput(code string) error {
	if code == "" {
		return ErrEmptySource
	}

	if len(code) > maxSourceBytes {
		return ErrSourceTooLarge
	}

	return nil
}

func errorResult(err error) (*mcpsdk.CallToolResult, EstimateOutput, error) {
	return &mcpsdk.CallToolResult{
		IsError: true,
		Content: []mcpsdk.Content{&mcpsdk.TextContent{Text: err.Error()}},
	}, EstimateOutput{}, nil
}

func jsonResult(serializable report.Serializable) (*mcpsdk.CallToolResult, EstimateOutput, error) {
	out := EstimateOutput{Result: serializable}

	return &mcpsdk.CallToolResult{
		Content: []mcpsdk.Content{&mcpsdk.TextContent{Text: fmt.Sprintf(
			"%s: %.6g J, %.6g g CO2 across %d functions",
			serializable.Language, serializable.EnergyJoules, serializable.CarbonGramsCO2, len(serializable.Functions))},
		},
	}, out, nil
}
