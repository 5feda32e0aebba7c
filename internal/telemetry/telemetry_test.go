package telemetry

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel/codes"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	assert.False(t, cfg.Enabled)
	assert.Equal(t, "resourced", cfg.ServiceName)
	assert.Equal(t, "dev", cfg.ServiceVersion)
	assert.Equal(t, "localhost:4317", cfg.Endpoint)
	assert.True(t, cfg.Insecure)
	assert.Equal(t, 1.0, cfg.SampleRate)
}

func TestInitDisabled(t *testing.T) {
	ctx := context.Background()
	cfg := DefaultConfig()
	cfg.Enabled = false

	shutdown, err := Init(ctx, cfg)
	require.NoError(t, err)
	require.NotNil(t, shutdown)

	// Should be able to call shutdown without error
	err = shutdown(ctx)
	assert.NoError(t, err)

	// Should not be enabled
	assert.False(t, IsEnabled())
}

func TestTracerReturnsNoOp(t *testing.T) {
	// Reset state
	tracer = nil
	enabled = false

	// Without initialization, should return no-op tracer
	tr := Tracer()
	require.NotNil(t, tr)
}

func TestStartSpan(t *testing.T) {
	ctx := context.Background()

	// Even without initialization, StartSpan should work (no-op)
	newCtx, span := StartSpan(ctx, "test.operation")
	require.NotNil(t, newCtx)
	require.NotNil(t, span)

	// Should be able to end the span
	span.End()
}

func TestSpanFromContext(t *testing.T) {
	ctx := context.Background()

	// Should return a span even without active span
	span := SpanFromContext(ctx)
	require.NotNil(t, span)
}

func TestAddEvent(t *testing.T) {
	ctx := context.Background()

	// Should not panic with no active span
	require.NotPanics(t, func() {
		AddEvent(ctx, "test.event")
	})
}

func TestRecordError(t *testing.T) {
	ctx := context.Background()

	// Should not panic with nil error
	require.NotPanics(t, func() {
		RecordError(ctx, nil)
	})

	// Should not panic with error
	require.NotPanics(t, func() {
		RecordError(ctx, errors.New("test error"))
	})
}

func TestSetStatus(t *testing.T) {
	ctx := context.Background()

	// Should not panic
	require.NotPanics(t, func() {
		SetStatus(ctx, codes.Ok, "success")
	})

	require.NotPanics(t, func() {
		SetStatus(ctx, codes.Error, "failed")
	})
}

func TestTraceID(t *testing.T) {
	ctx := context.Background()

	// Without active span, should return empty string
	traceID := TraceID(ctx)
	assert.Equal(t, "", traceID)
}

func TestSpanID(t *testing.T) {
	ctx := context.Background()

	spanID := SpanID(ctx)
	assert.Equal(t, "", spanID)
}

func TestAttributeHelpers(t *testing.T) {
	t.Run("Application", func(t *testing.T) {
		attr := Application("orders")
		assert.Equal(t, AttrApplication, string(attr.Key))
		assert.Equal(t, "orders", attr.Value.AsString())
	})

	t.Run("Bundle", func(t *testing.T) {
		attr := Bundle("web")
		assert.Equal(t, AttrBundle, string(attr.Key))
		assert.Equal(t, "web", attr.Value.AsString())
	})

	t.Run("Interface", func(t *testing.T) {
		attr := Interface("jakarta.jms.Queue")
		assert.Equal(t, AttrInterface, string(attr.Key))
		assert.Equal(t, "jakarta.jms.Queue", attr.Value.AsString())
	})

	t.Run("Class", func(t *testing.T) {
		attr := Class("com.example.QueueImpl")
		assert.Equal(t, AttrClass, string(attr.Key))
		assert.Equal(t, "com.example.QueueImpl", attr.Value.AsString())
	})

	t.Run("ResourceName", func(t *testing.T) {
		attr := ResourceName("java:app/mail/notify")
		assert.Equal(t, AttrName, string(attr.Key))
		assert.Equal(t, "java:app/mail/notify", attr.Value.AsString())
	})

	t.Run("DeployResult", func(t *testing.T) {
		attr := DeployResult("success")
		assert.Equal(t, AttrDeployResult, string(attr.Key))
		assert.Equal(t, "success", attr.Value.AsString())
	})

	t.Run("DeployCount", func(t *testing.T) {
		attr := DeployCount(3)
		assert.Equal(t, AttrDeployCount, string(attr.Key))
		assert.Equal(t, int64(3), attr.Value.AsInt64())
	})

	t.Run("NamingBackend", func(t *testing.T) {
		attr := NamingBackend("badger")
		assert.Equal(t, AttrNamingBackend, string(attr.Key))
		assert.Equal(t, "badger", attr.Value.AsString())
	})

	t.Run("NamingRebind", func(t *testing.T) {
		attr := NamingRebind(true)
		assert.Equal(t, AttrNamingRebind, string(attr.Key))
		assert.True(t, attr.Value.AsBool())
	})

	t.Run("ClientIP", func(t *testing.T) {
		attr := ClientIP("192.168.1.100")
		assert.Equal(t, AttrClientIP, string(attr.Key))
		assert.Equal(t, "192.168.1.100", attr.Value.AsString())
	})

	t.Run("Username", func(t *testing.T) {
		attr := Username("admin")
		assert.Equal(t, AttrUsername, string(attr.Key))
		assert.Equal(t, "admin", attr.Value.AsString())
	})
}

func TestStartDeploySpan(t *testing.T) {
	ctx := context.Background()

	newCtx, span := StartDeploySpan(ctx, "register", "orders")
	require.NotNil(t, newCtx)
	require.NotNil(t, span)
	span.End()

	// With additional attributes
	newCtx2, span2 := StartDeploySpan(ctx, "unregister", "orders", DeployCount(2))
	require.NotNil(t, newCtx2)
	require.NotNil(t, span2)
	span2.End()
}

func TestStartNamingSpan(t *testing.T) {
	ctx := context.Background()

	newCtx, span := StartNamingSpan(ctx, "publish", "java:app/mail/notify", NamingRebind(true))
	require.NotNil(t, newCtx)
	require.NotNil(t, span)
	span.End()
}

func TestStartRegistrySpan(t *testing.T) {
	ctx := context.Background()

	newCtx, span := StartRegistrySpan(ctx, "properties", "orders", "web", Interface("jakarta.jms.Queue"))
	require.NotNil(t, newCtx)
	require.NotNil(t, span)
	span.End()
}
