// pkg/execute/execute.go

package execute

import (
	"bytes"
	"context"
	"io"
	"os"
	"os/exec"
	"strings"
	"time"

	"github.com/forgeworks/hostprep/pkg/prep_err"
	"github.com/forgeworks/hostprep/pkg/telemetry"
	cerr "github.com/cockroachdb/errors"
	"go.opentelemetry.io/otel/attribute"
	"go.uber.org/zap"
)

// Options controls a single command execution.
type Options struct {
	Command string
	Args    []string
	Dir     string
	Timeout time.Duration
	Capture bool
	DryRun  bool
	Logger  *zap.Logger
}

// Run executes a command with structured logging and proper error handling.
// Installer runs stream to the terminal and are captured for error summaries.
func Run(ctx context.Context, opts Options) (string, error) {
	cmdStr := buildCommandString(opts.Command, opts.Args...)

	logger := opts.Logger
	if logger == nil {
		logger = zap.L()
	}
	if ctx == nil {
		ctx = context.Background()
	}
	rc, cancel := context.WithTimeout(ctx, defaultTimeout(opts.Timeout))
	defer cancel()

	rc, span := telemetry.Start(rc, "execute.Run")
	defer span.End()
	span.SetAttributes(
		attribute.String("command", opts.Command),
		attribute.String("args", strings.Join(opts.Args, " ")),
	)

	if opts.DryRun {
		logger.Info("Dry run mode - command not executed", zap.String("command", cmdStr))
		return "", nil
	}

	logger.Info("Starting execution", zap.String("command", cmdStr))

	cmd := exec.CommandContext(rc, opts.Command, opts.Args...)
	if opts.Dir != "" {
		cmd.Dir = opts.Dir
	}

	var buf bytes.Buffer
	writer := io.MultiWriter(os.Stdout, &buf)
	cmd.Stdout = writer
	cmd.Stderr = writer

	err := cmd.Run()
	output := buf.String()

	if err != nil {
		summary := prep_err.ExtractSummary(output, 2)
		span.RecordError(err)
		logger.Error("Execution failed", zap.Error(err),
			zap.String("command", cmdStr),
			zap.String("summary", summary),
		)
		return output, cerr.Wrapf(err, "command %q failed", opts.Command)
	}

	logger.Info("Execution succeeded", zap.String("command", cmdStr))

	if opts.Capture {
		return output, nil
	}
	return "", nil
}

// CaptureQuiet executes a command without echoing output; used for probes.
func CaptureQuiet(ctx context.Context, opts Options) (string, error) {
	if ctx == nil {
		ctx = context.Background()
	}
	rc, cancel := context.WithTimeout(ctx, defaultTimeout(opts.Timeout))
	defer cancel()

	cmd := exec.CommandContext(rc, opts.Command, opts.Args...)
	if opts.Dir != "" {
		cmd.Dir = opts.Dir
	}
	out, err := cmd.CombinedOutput()
	if err != nil {
		return string(out), cerr.Wrapf(err, "command %q failed", opts.Command)
	}
	return string(out), nil
}

func defaultTimeout(t time.Duration) time.Duration {
	if t > 0 {
		return t
	}
	// Toolchain installs routinely take minutes.
	return 30 * time.Minute
}

func buildCommandString(command string, args ...string) string {
	if len(args) == 0 {
		return command
	}
	return command + " " + strings.Join(args, " ")
}
