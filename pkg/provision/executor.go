// pkg/provision/executor.go

package provision

import (
	"context"
	"time"

	"github.com/forgeworks/hostprep/pkg/execute"
	"github.com/forgeworks/hostprep/pkg/plan"
	"github.com/forgeworks/hostprep/pkg/platform"
	"github.com/forgeworks/hostprep/pkg/prep_io"
	"github.com/forgeworks/hostprep/pkg/telemetry"
	cerr "github.com/cockroachdb/errors"
	goversion "github.com/hashicorp/go-version"
	"github.com/uptrace/opentelemetry-go-extra/otelzap"
	"go.uber.org/zap"
)

// RunMode selects between real execution and dry-run recording.
type RunMode int

const (
	ModeExecute RunMode = iota
	ModeNoOp
)

func (m RunMode) String() string {
	if m == ModeNoOp {
		return "no-op"
	}
	return "execute"
}

// ActionStatus is the recorded outcome of one plan action.
type ActionStatus string

const (
	StatusDone     ActionStatus = "done"
	StatusWouldRun ActionStatus = "would-run"
	StatusSkipped  ActionStatus = "skipped"
	StatusFailed   ActionStatus = "failed"
)

// ActionRecord is one entry of the execution transcript.
type ActionRecord struct {
	Phase  string       `yaml:"phase"`
	Action plan.Action  `yaml:"action"`
	Status ActionStatus `yaml:"status"`
}

// Result is the transcript of a full (or aborted) plan run.
type Result struct {
	RunID    string         `yaml:"run_id"`
	Mode     string         `yaml:"mode"`
	Records  []ActionRecord `yaml:"records"`
	Duration time.Duration  `yaml:"duration"`
}

// CommandRunner abstracts subprocess execution so tests can substitute a fake.
type CommandRunner interface {
	Run(ctx context.Context, logger *zap.Logger, name string, args ...string) error
	Probe(ctx context.Context, name string, args ...string) (string, error)
}

type execRunner struct{}

func (execRunner) Run(ctx context.Context, logger *zap.Logger, name string, args ...string) error {
	_, err := execute.Run(ctx, execute.Options{
		Command: name,
		Args:    args,
		Logger:  logger,
	})
	return err
}

func (execRunner) Probe(ctx context.Context, name string, args ...string) (string, error) {
	// PATH lookup first, so an absent tool costs no subprocess.
	if !platform.IsCommandAvailable(name) {
		return "", cerr.Newf("command %q not found in PATH", name)
	}
	return execute.CaptureQuiet(ctx, execute.Options{
		Command: name,
		Args:    args,
		Timeout: 10 * time.Second,
	})
}

// Executor runs a SetupPlan sequentially, failing fast on the first error.
type Executor struct {
	settings *Settings
	runner   CommandRunner
}

// NewExecutor builds an executor backed by real subprocess execution.
func NewExecutor(settings *Settings) *Executor {
	return &Executor{settings: settings, runner: execRunner{}}
}

// NewExecutorWithRunner is for tests.
func NewExecutorWithRunner(settings *Settings, runner CommandRunner) *Executor {
	return &Executor{settings: settings, runner: runner}
}

// Execute runs each action of the plan in order. In no-op mode no subprocess
// is ever spawned; every action is recorded as would-run. In execute mode the
// first failing action aborts the remainder and surfaces an ActionError.
func (e *Executor) Execute(rc *prep_io.RuntimeContext, p *plan.Plan, mode RunMode) (*Result, error) {
	logger := otelzap.Ctx(rc.Ctx)
	start := time.Now()

	result := &Result{
		RunID: telemetry.RunID(),
		Mode:  mode.String(),
	}

	logger.Info("Executing setup plan",
		zap.String("family", string(p.Profile.Family)),
		zap.String("variant", string(p.Variant)),
		zap.String("mode", mode.String()),
		zap.Int("actions", p.ActionCount()))

	for _, phase := range p.Phases {
		if len(phase.Actions) == 0 {
			continue
		}
		logger.Info("Phase starting",
			zap.String("phase", phase.Name),
			zap.Int("actions", len(phase.Actions)))

		for _, action := range phase.Actions {
			status, err := e.runAction(rc, phase.Name, action, p, mode)
			result.Records = append(result.Records, ActionRecord{
				Phase:  phase.Name,
				Action: action,
				Status: status,
			})
			if err != nil {
				result.Duration = time.Since(start)
				return result, &ActionError{Phase: phase.Name, Action: action, Err: err}
			}
		}
	}

	result.Duration = time.Since(start)
	logger.Info("Setup plan complete",
		zap.String("mode", mode.String()),
		zap.Duration("duration", result.Duration))
	return result, nil
}

func (e *Executor) runAction(rc *prep_io.RuntimeContext, phase string, action plan.Action, p *plan.Plan, mode RunMode) (ActionStatus, error) {
	logger := otelzap.Ctx(rc.Ctx)

	if mode == ModeNoOp {
		logger.Info("Would run", zap.String("phase", phase), zap.String("action", action.Describe()))
		return StatusWouldRun, nil
	}

	if e.alreadySatisfied(rc.Ctx, action) {
		logger.Info("Already satisfied, skipping",
			zap.String("phase", phase),
			zap.String("action", action.Describe()))
		return StatusSkipped, nil
	}

	name, args, err := commandFor(action, p.Profile.Family, e.settings)
	if err != nil {
		return StatusFailed, err
	}

	if err := e.runner.Run(rc.Ctx, rc.Log, name, args...); err != nil {
		return StatusFailed, err
	}
	return StatusDone, nil
}

// toolProbes short-circuits toolchain scripts when the tool is already
// installed at a sufficient version, mirroring the install scripts' own
// has-command checks.
var toolProbes = map[string]struct {
	command    string
	minVersion string
}{
	"getcmake": {command: "cmake", minVersion: "3.20"},
	"getrust":  {command: "cargo"},
}

func (e *Executor) alreadySatisfied(ctx context.Context, action plan.Action) bool {
	if action.Kind != plan.ActionScriptInvocation {
		return false
	}
	probe, ok := toolProbes[action.Script]
	if !ok {
		return false
	}

	out, err := e.runner.Probe(ctx, probe.command, "--version")
	if err != nil {
		return false
	}
	if probe.minVersion == "" {
		return true
	}

	installed := parseToolVersion(out)
	if installed == nil {
		return false
	}
	minimum, err := goversion.NewVersion(probe.minVersion)
	if err != nil {
		return false
	}
	return installed.Compare(minimum) >= 0
}
