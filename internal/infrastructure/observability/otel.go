package observability

import (
	"context"
	"errors"
	"time"

	"go.opentelemetry.io/contrib/instrumentation/runtime"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/exporters/otlp/otlpmetric/otlpmetricgrpc"
	"go.opentelemetry.io/otel/exporters/otlp/otlptrace/otlptracegrpc"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/propagation"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
	"go.opentelemetry.io/otel/sdk/resource"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	semconv "go.opentelemetry.io/otel/semconv/v1.21.0"
	"go.opentelemetry.io/otel/trace"
)

const instrumentationName = "github.com/zatekoja/satisfaction-feedback"

// Metrics holds all application metrics
type Metrics struct {
	RequestCount      metric.Int64Counter
	RequestDuration   metric.Float64Histogram
	FeedbackSubmitted metric.Int64Counter
	MirrorWrites      metric.Int64Counter
	MirrorDuration    metric.Float64Histogram
	Exports           metric.Int64Counter
}

// Setup installs global OpenTelemetry trace and meter providers exporting
// over OTLP gRPC, and starts Go runtime metrics. Call it before InitMetrics
// so instruments bind to the exporting provider. The returned func flushes
// and stops both providers.
func Setup(ctx context.Context, serviceName, serviceVersion, endpoint string) (func(context.Context) error, error) {
	res, err := resource.New(ctx,
		resource.WithAttributes(
			semconv.ServiceName(serviceName),
			semconv.ServiceVersion(serviceVersion),
		),
	)
	if err != nil {
		return nil, err
	}

	traceExporter, err := otlptracegrpc.New(ctx,
		otlptracegrpc.WithEndpoint(endpoint),
		otlptracegrpc.WithInsecure(),
	)
	if err != nil {
		return nil, err
	}

	metricExporter, err := otlpmetricgrpc.New(ctx,
		otlpmetricgrpc.WithEndpoint(endpoint),
		otlpmetricgrpc.WithInsecure(),
	)
	if err != nil {
		return nil, err
	}

	tracerProvider := sdktrace.NewTracerProvider(
		sdktrace.WithBatcher(traceExporter),
		sdktrace.WithResource(res),
	)
	otel.SetTracerProvider(tracerProvider)
	otel.SetTextMapPropagator(propagation.NewCompositeTextMapPropagator(
		propagation.TraceContext{},
		propagation.Baggage{},
	))

	meterProvider := sdkmetric.NewMeterProvider(
		sdkmetric.WithReader(sdkmetric.NewPeriodicReader(metricExporter, sdkmetric.WithInterval(30*time.Second))),
		sdkmetric.WithResource(res),
	)
	otel.SetMeterProvider(meterProvider)

	if err := runtime.Start(runtime.WithMeterProvider(meterProvider)); err != nil {
		return nil, err
	}

	return func(ctx context.Context) error {
		return errors.Join(tracerProvider.Shutdown(ctx), meterProvider.Shutdown(ctx))
	}, nil
}

// InitMetrics initializes application metrics on the global meter provider
func InitMetrics() (*Metrics, error) {
	meter := otel.Meter(instrumentationName)

	requestCount, err := meter.Int64Counter(
		"http.server.request.count",
		metric.WithDescription("Number of HTTP requests"),
	)
	if err != nil {
		return nil, err
	}

	requestDuration, err := meter.Float64Histogram(
		"http.server.request.duration",
		metric.WithDescription("HTTP request duration in milliseconds"),
		metric.WithUnit("ms"),
	)
	if err != nil {
		return nil, err
	}

	feedbackSubmitted, err := meter.Int64Counter(
		"feedback.submitted",
		metric.WithDescription("Number of stored feedback entries"),
	)
	if err != nil {
		return nil, err
	}

	mirrorWrites, err := meter.Int64Counter(
		"feedback.mirror.writes",
		metric.WithDescription("Mirror store write attempts by outcome"),
	)
	if err != nil {
		return nil, err
	}

	mirrorDuration, err := meter.Float64Histogram(
		"feedback.mirror.duration",
		metric.WithDescription("Mirror store write duration in milliseconds"),
		metric.WithUnit("ms"),
	)
	if err != nil {
		return nil, err
	}

	exports, err := meter.Int64Counter(
		"feedback.exports",
		metric.WithDescription("Number of generated exports by format"),
	)
	if err != nil {
		return nil, err
	}

	return &Metrics{
		RequestCount:      requestCount,
		RequestDuration:   requestDuration,
		FeedbackSubmitted: feedbackSubmitted,
		MirrorWrites:      mirrorWrites,
		MirrorDuration:    mirrorDuration,
		Exports:           exports,
	}, nil
}

// StartSpan starts a new trace span
func StartSpan(ctx context.Context, spanName string) (context.Context, trace.Span) {
	return otel.Tracer(instrumentationName).Start(ctx, spanName)
}

// RecordError records an error in the current span
func RecordError(span trace.Span, err error) {
	if err != nil {
		span.RecordError(err)
	}
}

// SetSpanAttributes sets attributes on a span
func SetSpanAttributes(span trace.Span, attrs ...attribute.KeyValue) {
	span.SetAttributes(attrs...)
}

// RecordRequestMetric records an HTTP request
func RecordRequestMetric(ctx context.Context, metrics *Metrics, method, path string, statusCode int, duration time.Duration) {
	if metrics == nil {
		return
	}
	attrs := []attribute.KeyValue{
		attribute.String("http.method", method),
		attribute.String("http.route", path),
		attribute.Int("http.status_code", statusCode),
	}

	metrics.RequestCount.Add(ctx, 1, metric.WithAttributes(attrs...))
	metrics.RequestDuration.Record(ctx, float64(duration.Milliseconds()), metric.WithAttributes(attrs...))
}

// RecordFeedback counts a stored entry by level
func RecordFeedback(ctx context.Context, metrics *Metrics, level string) {
	if metrics == nil {
		return
	}
	metrics.FeedbackSubmitted.Add(ctx, 1, metric.WithAttributes(attribute.String("satisfaction_level", level)))
}

// RecordMirrorWrite records a mirror write attempt
func RecordMirrorWrite(ctx context.Context, metrics *Metrics, backend string, err error, duration time.Duration) {
	if metrics == nil {
		return
	}
	outcome := "ok"
	if err != nil {
		outcome = "error"
	}
	attrs := metric.WithAttributes(
		attribute.String("mirror.backend", backend),
		attribute.String("outcome", outcome),
	)
	metrics.MirrorWrites.Add(ctx, 1, attrs)
	metrics.MirrorDuration.Record(ctx, float64(duration.Milliseconds()), attrs)
}

// RecordExport counts a generated export
func RecordExport(ctx context.Context, metrics *Metrics, format string) {
	if metrics == nil {
		return
	}
	metrics.Exports.Add(ctx, 1, metric.WithAttributes(attribute.String("export.format", format)))
}
