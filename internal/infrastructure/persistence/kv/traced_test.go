package kv

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/sdk/trace/tracetest"
)

func TestTracedStore(t *testing.T) {
	recorder := tracetest.NewSpanRecorder()
	previous := otel.GetTracerProvider()
	otel.SetTracerProvider(sdktrace.NewTracerProvider(sdktrace.WithSpanProcessor(recorder)))
	t.Cleanup(func() { otel.SetTracerProvider(previous) })

	store := WithTracing(NewMemoryStore(), "memory")
	runStoreContract(t, store)

	ended := recorder.Ended()
	require.NotEmpty(t, ended)
	names := make(map[string]bool)
	for _, span := range ended {
		names[span.Name()] = true
		assert.Contains(t, span.Attributes(), attribute.String("kv.medium", "memory"))
	}
	assert.True(t, names["kv.get"])
	assert.True(t, names["kv.set"])
	assert.True(t, names["kv.delete"])
}
