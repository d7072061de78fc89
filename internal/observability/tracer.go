package observability

import (
	"context"
	"fmt"
	"log/slog"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/sdk/resource"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/trace"
)

// Providers holds the initialized observability surface handed to the
// orchestrator: a tracer for span creation, a logger wired through
// TracingHandler, and a shutdown hook.
type Providers struct {
	Tracer   trace.Tracer
	Logger   *slog.Logger
	Shutdown func(ctx context.Context) error
}

// Setup builds an in-process tracer provider tagged with service, env,
// and mode resource attributes, and a TracingHandler-wrapped logger atop
// it. No span exporter is attached: spans still carry real trace/span
// IDs for log correlation, they simply aren't shipped anywhere, which
// keeps this package independent of any particular backend's SDK.
func Setup(service, env string, mode AppMode, base slog.Handler) (Providers, error) {
	res, err := buildResource(service, env, mode)
	if err != nil {
		return Providers{}, err
	}

	tp := sdktrace.NewTracerProvider(
		sdktrace.WithResource(res),
		sdktrace.WithSampler(sdktrace.AlwaysSample()),
	)

	logger := slog.New(NewTracingHandler(base, service, env, mode))

	shutdown := func(ctx context.Context) error {
		if err := tp.Shutdown(ctx); err != nil {
			return fmt.Errorf("shutdown tracer provider: %w", err)
		}

		return nil
	}

	return Providers{
		Tracer:   tp.Tracer(service),
		Logger:   logger,
		Shutdown: shutdown,
	}, nil
}

func buildResource(service, env string, mode AppMode) (*resource.Resource, error) {
	attrs := []attribute.KeyValue{attribute.String("service.name", service)}

	if env != "" {
		attrs = append(attrs, attribute.String("deployment.environment", env))
	}

	if mode != "" {
		attrs = append(attrs, attribute.String("app.mode", string(mode)))
	}

	res, err := resource.New(context.Background(), resource.WithAttributes(attrs...))
	if err != nil {
		return nil, fmt.Errorf("build otel resource: %w", err)
	}

	return res, nil
}
