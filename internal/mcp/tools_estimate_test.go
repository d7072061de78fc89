package mcp

import (
	"context"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	mcpsdk "github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/watttrace/analyzer-core/pkg/carbonmodel"
	"github.com/watttrace/analyzer-core/pkg/wattrace"
)

const pythonSample = "def f():\n    for i in range(10):\n        print(i)\n"

func newTestServer() *Server {
	analyzer := wattrace.New(carbonmodel.Default(), slog.Default())

	return &Server{deps: ServerDeps{Analyzer: analyzer, Logger: slog.Default()}}
}

func TestHandleEstimate_ValidPythonCode(t *testing.T) {
	t.Parallel()

	srv := newTestServer()
	input := EstimateInput{Code: pythonSample, Language: "python"}

	result, out, err := srv.handleEstimate(context.Background(), &mcpsdk.CallToolRequest{}, input)
	require.NoError(t, err)
	require.NotNil(t, result)
	assert.False(t, result.IsError)
	assert.Equal(t, "python", out.Result.Language)
	assert.NotEmpty(t, result.Content)
}

func TestHandleEstimate_EmptyCode(t *testing.T) {
	t.Parallel()

	srv := newTestServer()
	input := EstimateInput{Code: "", Language: "python"}

	result, _, err := srv.handleEstimate(context.Background(), &mcpsdk.CallToolRequest{}, input)
	require.NoError(t, err)
	require.NotNil(t, result)
	assert.True(t, result.IsError)
}

func TestHandleEstimate_NoAnalyzerConfigured(t *testing.T) {
	t.Parallel()

	srv := &Server{}
	input := EstimateInput{Code: pythonSample, Language: "python"}

	result, _, err := srv.handleEstimate(context.Background(), &mcpsdk.CallToolRequest{}, input)
	require.NoError(t, err)
	require.NotNil(t, result)
	assert.True(t, result.IsError)
}
