// Copyright (C) 2023, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package trace

import (
	"context"
	"time"

	"github.com/ava-labs/avalanchego/trace"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/exporters/zipkin"
	"go.opentelemetry.io/otel/sdk/resource"

	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	semconv "go.opentelemetry.io/otel/semconv/v1.4.0"
	oteltrace "go.opentelemetry.io/otel/trace"
)

const (
	tracerExportTimeout = 10 * time.Second
	// [tracerProviderShutdownTimeout] is longer than [tracerExportTimeout] so
	// in-flight exports can finish before the tracer provider shuts down.
	tracerProviderShutdownTimeout = 15 * time.Second

	DefaultEndpoint = "http://localhost:9411/api/v2/spans"
)

var (
	_ trace.Tracer = (*tracer)(nil)
	_ trace.Tracer = (*noOpTracer)(nil)
)

type Config struct {
	// Used to flag if tracing should be performed
	Enabled bool `json:"enabled" yaml:"enabled"`

	// The fraction of traces to sample.
	// If >= 1 always samples.
	// If <= 0 never samples.
	TraceSampleRate float64 `json:"traceSampleRate" yaml:"traceSampleRate"`

	// Zipkin collector that spans are exported to.
	Endpoint string `json:"endpoint" yaml:"endpoint"`

	AppName string `json:"appName" yaml:"appName"`
	Agent   string `json:"agent"   yaml:"agent"`
	Version string `json:"version" yaml:"version"`
}

type tracer struct {
	oteltrace.Tracer

	tp *sdktrace.TracerProvider
}

func (t *tracer) Close() error {
	ctx, cancel := context.WithTimeout(context.Background(), tracerProviderShutdownTimeout)
	defer cancel()
	return t.tp.Shutdown(ctx)
}

// noOpTracer creates spans that are never recorded.
type noOpTracer struct {
	oteltrace.Tracer
}

func (noOpTracer) Close() error {
	return nil
}

// Noop returns a tracer that records nothing.
func Noop() trace.Tracer {
	return &noOpTracer{Tracer: oteltrace.NewNoopTracerProvider().Tracer("")}
}

func New(config *Config) (trace.Tracer, error) {
	if !config.Enabled {
		return &noOpTracer{
			Tracer: oteltrace.NewNoopTracerProvider().Tracer(config.AppName),
		}, nil
	}

	endpoint := config.Endpoint
	if endpoint == "" {
		endpoint = DefaultEndpoint
	}
	exporter, err := zipkin.New(endpoint)
	if err != nil {
		return nil, err
	}

	tracerProviderOpts := []sdktrace.TracerProviderOption{
		sdktrace.WithBatcher(exporter, sdktrace.WithExportTimeout(tracerExportTimeout)),
		sdktrace.WithResource(
			resource.NewWithAttributes(
				semconv.SchemaURL,
				attribute.String("version", config.Version),
				semconv.ServiceNameKey.String(config.Agent),
			),
		),
		sdktrace.WithSampler(sdktrace.TraceIDRatioBased(config.TraceSampleRate)),
	}

	tracerProvider := sdktrace.NewTracerProvider(tracerProviderOpts...)
	return &tracer{
		Tracer: tracerProvider.Tracer(config.AppName),
		tp:     tracerProvider,
	}, nil
}
