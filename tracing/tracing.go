// Package tracing sets up OpenTelemetry export for readout runs.
//
// readout.Timer adds its measurements as events on the span found in the
// step's context; this package installs the global provider those spans come from.
package tracing

import (
	"context"
	"fmt"
	"net"

	"github.com/code19m/errx"
	"github.com/google/uuid"
	"github.com/spf13/cast"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/exporters/otlp/otlptrace"
	"go.opentelemetry.io/otel/exporters/otlp/otlptrace/otlptracegrpc"
	"go.opentelemetry.io/otel/propagation"
	"go.opentelemetry.io/otel/sdk/resource"
	"go.opentelemetry.io/otel/sdk/trace"
	semconv "go.opentelemetry.io/otel/semconv/v1.23.1"
	oteltrace "go.opentelemetry.io/otel/trace"
	"go.opentelemetry.io/otel/trace/noop"
)

// ShutdownFunc flushes pending spans and releases the exporter.
type ShutdownFunc func(ctx context.Context) error

// InitGlobalTracer installs a global tracer provider exporting to the OTLP collector in cfg.
// The returned ShutdownFunc should be deferred by the caller.
//
// If cfg.Enabled is false, a no-op tracer is used.
// cfg.SampleRate controls the trace sampling fraction.
// cfg.Tags are added as resource attributes to spans.
func InitGlobalTracer(cfg Config, serviceName, serviceVersion string) (ShutdownFunc, error) {
	if !cfg.Enabled {
		otel.SetTracerProvider(noop.NewTracerProvider())
		return func(context.Context) error { return nil }, nil
	}

	exporterAddr := net.JoinHostPort(cfg.ExporterHost, cast.ToString(cfg.ExporterPort))

	grpcTraceClient := otlptracegrpc.NewClient(
		otlptracegrpc.WithInsecure(),
		otlptracegrpc.WithEndpoint(exporterAddr),
		otlptracegrpc.WithReconnectionPeriod(reconnectionPeriod),
	)

	exporter, err := otlptrace.New(context.Background(), grpcTraceClient)
	if err != nil {
		return nil, errx.Wrap(err, errx.WithDetails(errx.D{"endpoint": exporterAddr}))
	}

	tp := trace.NewTracerProvider(
		trace.WithSampler(
			trace.ParentBased(trace.TraceIDRatioBased(cfg.SampleRate)),
		),
		// a run is short-lived, so spans are sent as soon as they end
		trace.WithSyncer(exporter),
		trace.WithResource(
			resource.NewWithAttributes(semconv.SchemaURL, resourceAttrs(cfg, serviceName, serviceVersion)...),
		),
	)

	otel.SetTextMapPropagator(
		propagation.NewCompositeTextMapPropagator(
			propagation.TraceContext{},
			propagation.Baggage{},
		),
	)
	otel.SetTracerProvider(tp)

	return func(ctx context.Context) error {
		ctx, cancel := context.WithTimeout(ctx, shutdownTimeout)
		defer cancel()

		if err := tp.Shutdown(ctx); err != nil {
			return errx.Wrap(err)
		}
		return nil
	}, nil
}

func resourceAttrs(cfg Config, serviceName, serviceVersion string) []attribute.KeyValue {
	attrs := make([]attribute.KeyValue, 0, len(cfg.Tags)+2) //nolint:mnd // service name and version
	for k, v := range cfg.Tags {
		attrs = append(attrs, attribute.String(k, v))
	}
	attrs = append(attrs, semconv.ServiceNameKey.String(serviceName))
	attrs = append(attrs, semconv.ServiceVersionKey.String(serviceVersion))
	return attrs
}

// RunID returns an identifier for the run in ctx: the trace ID when ctx carries
// a valid span, otherwise a fresh "man-" prefixed UUID.
func RunID(ctx context.Context) string {
	traceID := oteltrace.SpanFromContext(ctx).SpanContext().TraceID()

	if traceID.IsValid() {
		return traceID.String()
	}

	return fmt.Sprintf("man-%s", uuid.NewString())
}
