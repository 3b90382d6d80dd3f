package tracing

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/zjrosen/soundfetch/internal/config"
)

func TestSetup_Disabled(t *testing.T) {
	shutdown, err := Setup(context.Background(), config.TracingConfig{}, "test")
	require.NoError(t, err)

	_, span := Tracer().Start(context.Background(), "noop")
	require.False(t, span.SpanContext().IsValid())
	span.End()

	require.NoError(t, shutdown(context.Background()))
}

func TestSetup_StdoutToFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "traces", "spans.json")
	shutdown, err := Setup(context.Background(), config.TracingConfig{
		Enabled:  true,
		Exporter: config.ExporterStdout,
		File:     path,
	}, "test")
	require.NoError(t, err)

	_, span := Tracer().Start(context.Background(), "fetch.file")
	require.True(t, span.SpanContext().IsValid())
	span.End()

	require.NoError(t, shutdown(context.Background()))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	require.Contains(t, string(data), "fetch.file")
	require.Contains(t, string(data), "soundfetch")
}

func TestSetup_UnknownExporter(t *testing.T) {
	_, err := Setup(context.Background(), config.TracingConfig{Enabled: true, Exporter: "zipkin"}, "test")
	require.Error(t, err)
}
