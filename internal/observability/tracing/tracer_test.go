package tracing

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/sdk/trace/tracetest"
)

func TestSetup_Disabled(t *testing.T) {
	tp, err := Setup(Config{Enabled: false})
	require.NoError(t, err)
	assert.Nil(t, tp)
}

func TestSetup_InvalidRatio(t *testing.T) {
	_, err := Setup(Config{Enabled: true, SampleRatio: 1.5})
	assert.Error(t, err)
}

func TestSetup_RegistersProvider(t *testing.T) {
	exporter := tracetest.NewInMemoryExporter()
	tp, err := Setup(Config{Enabled: true, ServiceName: "test", SampleRatio: 1}, sdktrace.WithSyncer(exporter))
	require.NoError(t, err)
	t.Cleanup(func() {
		_ = tp.Shutdown(context.Background())
		otel.SetTracerProvider(sdktrace.NewTracerProvider())
	})

	_, span := GetTracer().Start(context.Background(), "store.get_by_slug")
	span.End()

	spans := exporter.GetSpans()
	require.Len(t, spans, 1)
	assert.Equal(t, "store.get_by_slug", spans[0].Name)
}

func TestSetup_ZeroRatioDropsRootSpans(t *testing.T) {
	exporter := tracetest.NewInMemoryExporter()
	tp, err := Setup(Config{Enabled: true, SampleRatio: 0}, sdktrace.WithSyncer(exporter))
	require.NoError(t, err)
	t.Cleanup(func() {
		_ = tp.Shutdown(context.Background())
		otel.SetTracerProvider(sdktrace.NewTracerProvider())
	})

	_, span := GetTracer().Start(context.Background(), "unsampled")
	span.End()

	assert.Empty(t, exporter.GetSpans())
}
