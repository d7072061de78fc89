// Package main provides the entry point for the wattrace MCP server,
// exposing the carbon-footprint analyzer as a Model Context Protocol tool.
package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/watttrace/analyzer-core/internal/config"
	"github.com/watttrace/analyzer-core/internal/mcp"
	"github.com/watttrace/analyzer-core/internal/observability"
	"github.com/watttrace/analyzer-core/pkg/wattrace"
)

func main() {
	configPath := flag.String("config", "", "Path to a .watttrace.yaml config file")
	flag.Parse()

	if err := run(*configPath); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run(configPath string) error {
	cfg, err := config.Load(configPath)
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	logger := slog.New(observability.NewTracingHandler(
		slog.NewTextHandler(os.Stderr, nil), "wattrace-mcp", "mcp", observability.ModeMCP))

	metrics := observability.NewAnalysisMetrics(prometheus.NewRegistry())

	analyzer := wattrace.New(cfg.CarbonModel(), logger).WithMetrics(metrics)

	ctx := context.Background()
	if err := analyzer.Initialize(ctx); err != nil {
		logger.Warn("analyzer initialization failed, continuing with textual fallback", "error", err)
	}
	defer analyzer.Dispose()

	srv := mcp.NewServer(mcp.ServerDeps{Analyzer: analyzer, Logger: logger, Metrics: metrics})

	if err := srv.Run(ctx); err != nil {
		return fmt.Errorf("running mcp server: %w", err)
	}

	return nil
}
