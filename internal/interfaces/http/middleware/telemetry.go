package middleware

import (
	"context"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/shopmall/backend/internal/infrastructure/telemetry"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/trace"
)

// skipTelemetry lists health check and docs paths that stay out of traces and profiles
func skipTelemetry(path string) bool {
	return path == "/health" || strings.HasPrefix(path, "/swagger")
}

// Tracing starts an otelgin server span per request
func Tracing(serviceName string) gin.HandlerFunc {
	base := otelgin.Middleware(serviceName)
	return func(c *gin.Context) {
		if skipTelemetry(c.Request.URL.Path) {
			c.Next()
			return
		}
		base(c)
	}
}

// SpanAttributes tags the request span with the request id and, once auth has run, the user id.
// It must sit after Tracing so the span is still open.
func SpanAttributes() gin.HandlerFunc {
	return func(c *gin.Context) {
		span := trace.SpanFromContext(c.Request.Context())
		if !span.IsRecording() {
			c.Next()
			return
		}
		span.SetAttributes(attribute.String("http.request_id", GetRequestID(c)))
		c.Next()
		if claims := GetClaims(c); claims != nil {
			span.SetAttributes(attribute.Int64("enduser.id", claims.UserID))
		}
	}
}

type httpMetrics struct {
	requests metric.Int64Counter
	duration metric.Float64Histogram
	active   metric.Int64UpDownCounter
}

// HTTPMetrics records request count, latency and in-flight requests per route.
// A nil provider uses the global one.
func HTTPMetrics(provider metric.MeterProvider) (gin.HandlerFunc, error) {
	if provider == nil {
		provider = otel.GetMeterProvider()
	}
	meter := provider.Meter("github.com/shopmall/backend/http")

	var m httpMetrics
	var err error
	if m.requests, err = meter.Int64Counter("http.server.request.count",
		metric.WithDescription("HTTP requests served"), metric.WithUnit("{request}")); err != nil {
		return nil, err
	}
	if m.duration, err = meter.Float64Histogram("http.server.request.duration",
		metric.WithDescription("HTTP request latency"), metric.WithUnit("s")); err != nil {
		return nil, err
	}
	if m.active, err = meter.Int64UpDownCounter("http.server.active_requests",
		metric.WithDescription("HTTP requests in flight"), metric.WithUnit("{request}")); err != nil {
		return nil, err
	}

	return func(c *gin.Context) {
		if skipTelemetry(c.Request.URL.Path) {
			c.Next()
			return
		}
		ctx := c.Request.Context()
		method := attribute.String("http.request.method", c.Request.Method)
		m.active.Add(ctx, 1, metric.WithAttributes(method))
		start := time.Now()

		c.Next()

		route := c.FullPath()
		if route == "" {
			route = "unmatched"
		}
		attrs := metric.WithAttributes(
			method,
			attribute.String("http.route", route),
			attribute.Int("http.response.status_code", c.Writer.Status()),
			attribute.String("http.status_class", strconv.Itoa(c.Writer.Status()/100)+"xx"),
		)
		m.requests.Add(ctx, 1, attrs)
		m.duration.Record(ctx, time.Since(start).Seconds(), attrs)
		m.active.Add(ctx, -1, metric.WithAttributes(method))
	}, nil
}

// Profiling labels CPU samples with the route pattern and method
func Profiling() gin.HandlerFunc {
	return func(c *gin.Context) {
		if skipTelemetry(c.Request.URL.Path) {
			c.Next()
			return
		}
		labels := map[string]string{telemetry.ProfilingLabelMethod: c.Request.Method}
		if route := c.FullPath(); route != "" {
			labels[telemetry.ProfilingLabelRoute] = route
		}
		telemetry.WithProfilingLabels(c.Request.Context(), labels, func(ctx context.Context) {
			c.Request = c.Request.WithContext(ctx)
			c.Next()
		})
	}
}
