// pkg/telemetry/telemetry.go

package telemetry

import (
	"context"
	"os"
	"path/filepath"

	cerr "github.com/cockroachdb/errors"
	"github.com/google/uuid"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/exporters/stdout/stdouttrace"
	sdkresource "go.opentelemetry.io/otel/sdk/resource"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	semconv "go.opentelemetry.io/otel/semconv/v1.21.0"
	"go.opentelemetry.io/otel/trace"
	"go.opentelemetry.io/otel/trace/noop"
)

var (
	tracer trace.Tracer
	runID  string
)

// Init configures OpenTelemetry; call this early in main(). Spans are appended
// as JSONL to a local file, never exported over the network. Telemetry is off
// unless HOSTPREP_TELEMETRY=1.
func Init(service string) error {
	runID = uuid.NewString()

	if os.Getenv("HOSTPREP_TELEMETRY") != "1" {
		tp := noop.NewTracerProvider()
		otel.SetTracerProvider(tp)
		tracer = tp.Tracer(service)
		return nil
	}

	telemetryDir := "/var/log/hostprep"
	if err := os.MkdirAll(telemetryDir, 0o755); err != nil {
		telemetryDir = filepath.Join(os.Getenv("HOME"), ".hostprep", "telemetry")
		if err := os.MkdirAll(telemetryDir, 0o755); err != nil {
			return cerr.Wrap(err, "failed to create telemetry directory")
		}
	}

	telemetryFile := filepath.Join(telemetryDir, "telemetry.jsonl")
	file, err := os.OpenFile(telemetryFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return cerr.Wrap(err, "failed to open telemetry file")
	}

	exp, err := stdouttrace.New(
		stdouttrace.WithWriter(file),
		stdouttrace.WithoutTimestamps(), // spans already carry timestamps
	)
	if err != nil {
		file.Close()
		return cerr.Wrap(err, "failed to create file exporter")
	}

	tp := sdktrace.NewTracerProvider(
		sdktrace.WithBatcher(exp),
		sdktrace.WithResource(
			sdkresource.NewWithAttributes(
				semconv.SchemaURL,
				attribute.String("service.name", service),
				attribute.String("host.name", hostname()),
				attribute.String("run.id", runID),
			),
		),
	)

	otel.SetTracerProvider(tp)
	tracer = tp.Tracer(service)
	return nil
}

// RunID returns the identifier assigned to this process invocation.
func RunID() string {
	if runID == "" {
		runID = uuid.NewString()
	}
	return runID
}

// Start a telemetry span with optional attributes.
func Start(ctx context.Context, name string, attrs ...attribute.KeyValue) (context.Context, trace.Span) {
	if ctx == nil {
		ctx = context.Background()
	}
	if tracer == nil {
		tracer = noop.NewTracerProvider().Tracer("hostprep")
	}
	return tracer.Start(ctx, name, trace.WithAttributes(attrs...))
}

func hostname() string {
	h, err := os.Hostname()
	if err != nil {
		return "unknown"
	}
	return h
}
