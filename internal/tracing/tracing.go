// Package tracing installs the OpenTelemetry tracer provider used by
// soundfetch.
package tracing

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/exporters/otlp/otlptrace/otlptracegrpc"
	"go.opentelemetry.io/otel/exporters/stdout/stdouttrace"
	"go.opentelemetry.io/otel/sdk/resource"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/trace"
	"go.opentelemetry.io/otel/trace/noop"

	"github.com/zjrosen/soundfetch/internal/config"
	"github.com/zjrosen/soundfetch/internal/log"
)

// InstrumentationName names the tracer used across soundfetch.
const InstrumentationName = "github.com/zjrosen/soundfetch"

// ShutdownFunc flushes and stops the tracer provider.
type ShutdownFunc func(context.Context) error

// Setup installs a global tracer provider according to cfg.
// A disabled config installs a no-op provider.
func Setup(ctx context.Context, cfg config.TracingConfig, version string) (ShutdownFunc, error) {
	if !cfg.Enabled {
		otel.SetTracerProvider(noop.NewTracerProvider())
		return func(context.Context) error { return nil }, nil
	}

	exporter, closeOut, err := newExporter(ctx, cfg)
	if err != nil {
		return nil, err
	}

	res := resource.NewSchemaless(
		attribute.String("service.name", "soundfetch"),
		attribute.String("service.version", version),
		attribute.String("soundfetch.run_id", log.RunID()),
	)
	tp := sdktrace.NewTracerProvider(
		sdktrace.WithBatcher(exporter),
		sdktrace.WithResource(res),
	)
	otel.SetTracerProvider(tp)
	log.Debug(log.CatTrace, "Tracing enabled", "exporter", cfg.Exporter)

	return func(ctx context.Context) error {
		err := tp.Shutdown(ctx)
		if closeOut != nil {
			if cerr := closeOut.Close(); err == nil {
				err = cerr
			}
		}
		return err
	}, nil
}

func newExporter(ctx context.Context, cfg config.TracingConfig) (sdktrace.SpanExporter, io.Closer, error) {
	switch cfg.Exporter {
	case config.ExporterOTLP:
		exp, err := otlptracegrpc.New(ctx,
			otlptracegrpc.WithEndpoint(cfg.Endpoint),
			otlptracegrpc.WithInsecure(),
		)
		if err != nil {
			return nil, nil, fmt.Errorf("creating otlp exporter: %w", err)
		}
		return exp, nil, nil
	case config.ExporterStdout, "":
		var w io.Writer = os.Stderr
		var c io.Closer
		if cfg.File != "" {
			if err := os.MkdirAll(filepath.Dir(cfg.File), 0750); err != nil {
				return nil, nil, fmt.Errorf("creating trace directory: %w", err)
			}
			f, err := os.OpenFile(cfg.File, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0600)
			if err != nil {
				return nil, nil, fmt.Errorf("opening trace file: %w", err)
			}
			w, c = f, f
		}
		exp, err := stdouttrace.New(stdouttrace.WithWriter(w))
		if err != nil {
			return nil, nil, fmt.Errorf("creating stdout exporter: %w", err)
		}
		return exp, c, nil
	default:
		return nil, nil, fmt.Errorf("unknown trace exporter %q", cfg.Exporter)
	}
}

// Tracer returns the soundfetch tracer from the global provider.
func Tracer() trace.Tracer {
	return otel.Tracer(InstrumentationName)
}
