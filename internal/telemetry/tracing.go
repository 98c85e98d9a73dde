// Package telemetry installs the process-wide OpenTelemetry tracer provider.
package telemetry

import (
	"context"
	"fmt"
	"strings"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/exporters/otlp/otlptrace/otlptracegrpc"
	"go.opentelemetry.io/otel/exporters/otlp/otlptrace/otlptracehttp"
	"go.opentelemetry.io/otel/propagation"
	"go.opentelemetry.io/otel/sdk/resource"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	semconv "go.opentelemetry.io/otel/semconv/v1.21.0"
)

const (
	ProtocolHTTP = "http/protobuf"
	ProtocolGRPC = "grpc"
)

type Settings struct {
	ServiceName    string
	ServiceVersion string
	// Endpoint is the OTLP collector URL. Empty disables export.
	Endpoint     string
	Protocol     string
	SamplingRate float64
}

// ShutdownFunc flushes and stops the exporter.
type ShutdownFunc func(context.Context) error

func noopShutdown(context.Context) error { return nil }

// Setup registers the W3C propagators and, when an endpoint is configured, an
// SDK tracer provider exporting over OTLP. Without an endpoint the global
// provider stays a no-op.
func Setup(ctx context.Context, s Settings) (ShutdownFunc, error) {
	otel.SetTextMapPropagator(propagation.NewCompositeTextMapPropagator(
		propagation.TraceContext{},
		propagation.Baggage{},
	))

	endpoint := strings.TrimSpace(s.Endpoint)
	if endpoint == "" {
		return noopShutdown, nil
	}

	tp, err := newTracerProvider(ctx, s, endpoint)
	if err != nil {
		return noopShutdown, err
	}
	otel.SetTracerProvider(tp)
	return tp.Shutdown, nil
}

func newTracerProvider(ctx context.Context, s Settings, endpoint string) (*sdktrace.TracerProvider, error) {
	res, err := resource.New(ctx,
		resource.WithAttributes(
			semconv.ServiceName(s.ServiceName),
			semconv.ServiceVersion(s.ServiceVersion),
		),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create otel resource: %w", err)
	}

	var exporter sdktrace.SpanExporter
	switch NormalizeProtocol(s.Protocol) {
	case ProtocolGRPC:
		exp, err := otlptracegrpc.New(ctx, otlptracegrpc.WithEndpointURL(endpoint))
		if err != nil {
			return nil, fmt.Errorf("failed to create otlp grpc exporter: %w", err)
		}
		exporter = exp
	default:
		exp, err := otlptracehttp.New(ctx, otlptracehttp.WithEndpointURL(endpoint))
		if err != nil {
			return nil, fmt.Errorf("failed to create otlp http exporter: %w", err)
		}
		exporter = exp
	}

	return sdktrace.NewTracerProvider(
		sdktrace.WithBatcher(exporter),
		sdktrace.WithResource(res),
		sdktrace.WithSampler(sdktrace.ParentBased(sdktrace.TraceIDRatioBased(s.SamplingRate))),
	), nil
}

// NormalizeProtocol maps OTEL_EXPORTER_OTLP_PROTOCOL values onto the two
// supported transports; anything but grpc uses HTTP.
func NormalizeProtocol(raw string) string {
	if strings.EqualFold(strings.TrimSpace(raw), ProtocolGRPC) {
		return ProtocolGRPC
	}
	return ProtocolHTTP
}
