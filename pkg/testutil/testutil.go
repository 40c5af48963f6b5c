// pkg/testutil/testutil.go

package testutil

import (
	"context"
	"testing"
	"time"

	"github.com/forgeworks/hostprep/pkg/prep_io"
	"go.opentelemetry.io/otel/trace/noop"
	"go.uber.org/zap/zaptest"
)

// TableTest is the shared shape for table-driven tests.
type TableTest[T any] struct {
	Name  string
	Input T
}

// TestRuntimeContext returns a RuntimeContext suitable for tests: a test
// logger, a background context and a no-op span.
func TestRuntimeContext(t *testing.T) *prep_io.RuntimeContext {
	t.Helper()
	return &prep_io.RuntimeContext{
		Ctx:        context.Background(),
		Log:        zaptest.NewLogger(t),
		Timestamp:  time.Now(),
		Span:       noop.Span{},
		Command:    "test",
		Attributes: make(map[string]string),
	}
}
