// pkg/prep_io/context.go

package prep_io

import (
	"context"
	"os"
	"runtime"
	"strings"
	"time"

	"github.com/forgeworks/hostprep/pkg/prep_err"
	"github.com/forgeworks/hostprep/pkg/telemetry"
	cerr "github.com/cockroachdb/errors"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"
)

// RuntimeContext carries the per-command context, logger and telemetry span.
type RuntimeContext struct {
	Ctx        context.Context
	Log        *zap.Logger
	Timestamp  time.Time
	Span       trace.Span
	Command    string
	Attributes map[string]string
}

// NewContext sets up tracing and a command-scoped logger.
func NewContext(parent context.Context, cmdName string) *RuntimeContext {
	ctx, span := telemetry.Start(parent, cmdName)
	traceID := span.SpanContext().TraceID().String()

	logger := zap.L().With(
		zap.String("command", cmdName),
		zap.String("trace_id", traceID),
	).Named(cmdName)

	return &RuntimeContext{
		Ctx:        ctx,
		Span:       span,
		Log:        logger,
		Timestamp:  time.Now(),
		Command:    cmdName,
		Attributes: make(map[string]string),
	}
}

// HandlePanic recovers panics, logs them, and converts to an error.
func (rc *RuntimeContext) HandlePanic(errPtr *error) {
	if r := recover(); r != nil {
		*errPtr = cerr.AssertionFailedf("panic: %v", r)
		rc.Log.Error("Panic recovered", zap.Any("panic", r))
	}
}

// End logs the outcome and closes the telemetry span with key attributes.
func (rc *RuntimeContext) End(errPtr *error) {
	defer rc.Span.End()

	duration := time.Since(rc.Timestamp)
	success := (*errPtr == nil)

	if success {
		rc.Log.Info("Command completed", zap.Duration("duration", duration))
	} else {
		rc.Log.Error("Command failed", zap.Duration("duration", duration), zap.Error(*errPtr))
	}

	rc.Span.SetAttributes(
		attribute.Bool("success", success),
		attribute.Int64("duration_ms", duration.Milliseconds()),
		attribute.String("os", runtime.GOOS),
		attribute.String("args", strings.Join(os.Args[1:], " ")),
		attribute.String("run_id", telemetry.RunID()),
		attribute.String("error_type", classifyError(*errPtr)),
	)
}

func classifyError(err error) string {
	if err == nil {
		return ""
	}
	if prep_err.IsExpectedUserError(err) {
		return "user"
	}
	return "system"
}
