package telemetry

import (
	"context"
	"testing"

	"github.com/shopmall/backend/internal/infrastructure/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	sdklog "go.opentelemetry.io/otel/sdk/log"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func TestSetup_Disabled(t *testing.T) {
	p, err := Setup(context.Background(), config.TelemetryConfig{Enabled: false}, zap.NewNop())
	require.NoError(t, err)
	assert.Nil(t, p.Tracer)
	assert.Nil(t, p.Meter)
	assert.Nil(t, p.Logs)
	assert.Nil(t, p.Profiler)
	assert.NoError(t, p.Shutdown(context.Background()))
}

func TestSetup_ProfilingWithoutEndpoint(t *testing.T) {
	cfg := config.TelemetryConfig{
		Enabled:           true,
		CollectorEndpoint: "localhost:4317",
		ServiceName:       "shop-backend",
		SamplingRatio:     1,
		Insecure:          true,
		ProfilingEnabled:  true,
	}
	_, err := Setup(context.Background(), cfg, zap.NewNop())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "pyroscope endpoint is required")
}

func TestSampler(t *testing.T) {
	tests := []struct {
		ratio float64
		want  string
	}{
		{1, sdktrace.AlwaysSample().Description()},
		{1.5, sdktrace.AlwaysSample().Description()},
		{0, sdktrace.NeverSample().Description()},
		{-1, sdktrace.NeverSample().Description()},
		{0.25, sdktrace.TraceIDRatioBased(0.25).Description()},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, Sampler(tt.ratio).Description(), "ratio %v", tt.ratio)
	}
}

func TestBridgeLogger(t *testing.T) {
	core, logs := observer.New(zapcore.DebugLevel)
	base := zap.New(core)

	t.Run("nil provider keeps base", func(t *testing.T) {
		assert.Same(t, base, BridgeLogger(base, nil, "shop", zapcore.InfoLevel))
	})

	t.Run("local core still receives every level", func(t *testing.T) {
		lp := sdklog.NewLoggerProvider()
		defer func() { _ = lp.Shutdown(context.Background()) }()

		bridged := BridgeLogger(base, lp, "shop", zapcore.WarnLevel)
		bridged.Debug("debug entry")
		bridged.Warn("warn entry")

		require.Equal(t, 2, logs.Len())
		assert.Equal(t, "debug entry", logs.All()[0].Message)
	})
}

func TestLevelCore(t *testing.T) {
	inner, _ := observer.New(zapcore.DebugLevel)
	c := &levelCore{Core: inner, min: zapcore.WarnLevel}

	assert.False(t, c.Enabled(zapcore.InfoLevel))
	assert.True(t, c.Enabled(zapcore.ErrorLevel))
	assert.Nil(t, c.Check(zapcore.Entry{Level: zapcore.InfoLevel}, nil))

	with := c.With([]zapcore.Field{zap.String("k", "v")})
	assert.False(t, with.Enabled(zapcore.DebugLevel))
}

func TestInstrumentDB_DisabledIsNoop(t *testing.T) {
	// nil db is never touched while tracing is off
	assert.NoError(t, InstrumentDB(nil, config.TelemetryConfig{Enabled: true, DBTraceEnabled: false}, "postgres", nil))
	assert.NoError(t, InstrumentDB(nil, config.TelemetryConfig{Enabled: false, DBTraceEnabled: true}, "postgres", nil))
}

func TestWithProfilingLabels(t *testing.T) {
	t.Run("no labels runs fn with the same context", func(t *testing.T) {
		ctx := context.WithValue(context.Background(), struct{}{}, "marker")
		called := false
		WithProfilingLabels(ctx, nil, func(got context.Context) {
			called = true
			assert.Equal(t, "marker", got.Value(struct{}{}))
		})
		assert.True(t, called)
	})

	t.Run("labels still run fn", func(t *testing.T) {
		called := false
		WithProfilingLabels(context.Background(), map[string]string{
			ProfilingLabelMethod: "GET",
			ProfilingLabelRoute:  "/products/:id",
		}, func(context.Context) { called = true })
		assert.True(t, called)
	})
}

func TestProfiler_StopIdempotent(t *testing.T) {
	p := &Profiler{logger: zap.NewNop()}
	assert.NoError(t, p.Stop())
	assert.NoError(t, p.Stop())
}
