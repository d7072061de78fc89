// Package mcp exposes the carbon-footprint analyzer as a Model Context
// Protocol server, so an MCP-capable agent can request an estimate
// without shelling out to the CLI.
package mcp

import (
	"context"
	"fmt"
	"log/slog"

	mcpsdk "github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/watttrace/analyzer-core/internal/observability"
	"github.com/watttrace/analyzer-core/pkg/wattrace"
)

// ServerDeps are the dependencies a Server needs; the zero value is valid
// and produces a server with no working analyzer (useful for registration
// tests).
type ServerDeps struct {
	Analyzer *wattrace.Analyzer
	Logger   *slog.Logger
	Metrics  *observability.AnalysisMetrics
}

// Server wraps an MCP server exposing the analyzer's tools.
type Server struct {
	deps      ServerDeps
	inner     *mcpsdk.Server
	toolNames []string
}

// NewServer builds a Server with every tool registered.
func NewServer(deps ServerDeps) *Server {
	if deps.Logger == nil {
		deps.Logger = slog.Default()
	}

	impl := &mcpsdk.Implementation{Name: "watttrace", Version: "0.1.0"}
	inner := mcpsdk.NewServer(impl, nil)

	srv := &Server{deps: deps, inner: inner}
	srv.registerEstimateTool()

	return srv
}

// ListToolNames returns the names of every tool registered with this server.
func (s *Server) ListToolNames() []string {
	return s.toolNames
}

// Run serves over stdio until ctx is cancelled or the transport closes.
func (s *Server) Run(ctx context.Context) error {
	if err := s.inner.Run(ctx, &mcpsdk.StdioTransport{}); err != nil {
		return fmt.Errorf("mcp server: %w", err)
	}

	return nil
}

func (s *Server) registerEstimateTool() {
	const toolName = "watttrace_estimate"

	mcpsdk.AddTool(s.inner, &mcpsdk.Tool{
		Name: toolName,
		Description: "Estimate the energy (joules) and carbon (grams CO2) footprint of a " +
			"source code snippet, per-function and across deployment tiers.",
	}, s.handleEstimate)

	s.toolNames = append(s.toolNames, toolName)
}
