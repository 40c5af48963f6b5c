package provision

import (
	"context"
	"strings"
	"testing"

	"github.com/forgeworks/hostprep/pkg/plan"
	"github.com/forgeworks/hostprep/pkg/platform"
	"github.com/forgeworks/hostprep/pkg/testutil"
	cerr "github.com/cockroachdb/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

// fakeRunner records every spawn and can be told to fail specific commands
// or answer version probes.
type fakeRunner struct {
	commands    []string
	failOn      string
	probeOutput map[string]string
}

func (f *fakeRunner) Run(_ context.Context, _ *zap.Logger, name string, args ...string) error {
	full := strings.Join(append([]string{name}, args...), " ")
	f.commands = append(f.commands, full)
	if f.failOn != "" && strings.Contains(full, f.failOn) {
		return cerr.New("exit status 1")
	}
	return nil
}

func (f *fakeRunner) Probe(_ context.Context, name string, _ ...string) (string, error) {
	out, ok := f.probeOutput[name]
	if !ok {
		return "", cerr.Newf("exec: %q: executable file not found in $PATH", name)
	}
	return out, nil
}

func testSettings() *Settings {
	return &Settings{
		ScriptsDir: "/opt/hostprep/scripts",
		Variant:    "default",
		PipCommand: []string{"python3", "-m", "pip"},
	}
}

func debianPlan() *plan.Plan {
	return plan.Build(&platform.HostProfile{
		Family: platform.FamilyDebian,
		Arch:   "amd64",
		OSNick: "ubuntu22.04",
	}, plan.VariantDefault)
}

func TestExecuteNoOpSpawnsNothing(t *testing.T) {
	rc := testutil.TestRuntimeContext(t)
	runner := &fakeRunner{}
	executor := NewExecutorWithRunner(testSettings(), runner)

	p := debianPlan()
	result, err := executor.Execute(rc, p, ModeNoOp)
	require.NoError(t, err)

	assert.Empty(t, runner.commands, "no-op mode must not spawn any subprocess")
	assert.Len(t, result.Records, p.ActionCount())
	for _, record := range result.Records {
		assert.Equal(t, StatusWouldRun, record.Status)
	}
}

func TestExecuteNoOpIsDeterministic(t *testing.T) {
	rc := testutil.TestRuntimeContext(t)
	executor := NewExecutorWithRunner(testSettings(), &fakeRunner{})

	p := debianPlan()
	first, err := executor.Execute(rc, p, ModeNoOp)
	require.NoError(t, err)
	second, err := executor.Execute(rc, p, ModeNoOp)
	require.NoError(t, err)

	assert.Equal(t, first.Records, second.Records)
}

func TestExecuteRunsActionsInOrder(t *testing.T) {
	rc := testutil.TestRuntimeContext(t)
	runner := &fakeRunner{}
	executor := NewExecutorWithRunner(testSettings(), runner)

	result, err := executor.Execute(rc, debianPlan(), ModeExecute)
	require.NoError(t, err)

	require.NotEmpty(t, runner.commands)
	assert.Equal(t, "apt-get install -y curl wget", runner.commands[0])
	assert.Equal(t, "apt-get install -y git", runner.commands[1])
	assert.Equal(t, "/opt/hostprep/scripts/enable-utf8", runner.commands[2])
	assert.Equal(t, "python3 -m pip install toml", runner.commands[len(runner.commands)-1])

	for _, record := range result.Records {
		assert.Equal(t, StatusDone, record.Status)
	}
}

func TestExecuteUnrecognizedHostRunsDegradedPlan(t *testing.T) {
	rc := testutil.TestRuntimeContext(t)
	runner := &fakeRunner{}
	executor := NewExecutorWithRunner(testSettings(), runner)

	p := plan.Build(&platform.HostProfile{
		Family: platform.FamilyOther,
		Arch:   "amd64",
	}, plan.VariantDefault)

	result, err := executor.Execute(rc, p, ModeExecute)
	require.NoError(t, err, "the degraded minimal plan must run to completion")

	require.Len(t, result.Records, p.ActionCount())
	for _, record := range result.Records {
		assert.Equal(t, StatusDone, record.Status)
	}
	for _, cmd := range runner.commands {
		assert.True(t,
			strings.HasPrefix(cmd, "/opt/hostprep/scripts/") || strings.HasPrefix(cmd, "python3 -m pip"),
			"unexpected spawn on unrecognized host: %s", cmd)
	}
}

func TestExecuteFailsFast(t *testing.T) {
	rc := testutil.TestRuntimeContext(t)
	runner := &fakeRunner{failOn: "getrust"}
	executor := NewExecutorWithRunner(testSettings(), runner)

	result, err := executor.Execute(rc, debianPlan(), ModeExecute)
	require.Error(t, err)

	var actionErr *ActionError
	require.ErrorAs(t, err, &actionErr)
	assert.Equal(t, plan.PhaseCommonFirst, actionErr.Phase)
	assert.Equal(t, "getrust", actionErr.Action.Script)
	assert.Contains(t, actionErr.Error(), "run getrust")

	// The failing action is the last spawn; nothing after it ran.
	assert.Equal(t, "/opt/hostprep/scripts/getrust", runner.commands[len(runner.commands)-1])

	last := result.Records[len(result.Records)-1]
	assert.Equal(t, StatusFailed, last.Status)
	for _, record := range result.Records[:len(result.Records)-1] {
		assert.Equal(t, StatusDone, record.Status)
	}
}

func TestExecuteSkipsSatisfiedToolchains(t *testing.T) {
	rc := testutil.TestRuntimeContext(t)
	runner := &fakeRunner{probeOutput: map[string]string{
		"cmake": "cmake version 3.27.4",
		"cargo": "cargo 1.74.0 (ecb9851af 2023-10-18)",
	}}
	executor := NewExecutorWithRunner(testSettings(), runner)

	result, err := executor.Execute(rc, debianPlan(), ModeExecute)
	require.NoError(t, err)

	for _, cmd := range runner.commands {
		assert.NotContains(t, cmd, "getcmake")
		assert.NotContains(t, cmd, "getrust")
	}

	skipped := map[string]bool{}
	for _, record := range result.Records {
		if record.Status == StatusSkipped {
			skipped[record.Action.Script] = true
		}
	}
	assert.True(t, skipped["getcmake"])
	assert.True(t, skipped["getrust"])
}

func TestExecuteRunsToolchainWhenVersionTooOld(t *testing.T) {
	rc := testutil.TestRuntimeContext(t)
	runner := &fakeRunner{probeOutput: map[string]string{
		"cmake": "cmake version 3.10.2",
	}}
	executor := NewExecutorWithRunner(testSettings(), runner)

	_, err := executor.Execute(rc, debianPlan(), ModeExecute)
	require.NoError(t, err)

	found := false
	for _, cmd := range runner.commands {
		if strings.Contains(cmd, "getcmake") {
			found = true
		}
	}
	assert.True(t, found, "outdated cmake must still be reinstalled")
}

func TestCommandForPackageManagerDispatch(t *testing.T) {
	t.Parallel()

	tests := []testutil.TableTest[struct {
		family   platform.Family
		wantName string
		wantArgs []string
	}]{
		{
			Name: "debian uses apt-get",
			Input: struct {
				family   platform.Family
				wantName string
				wantArgs []string
			}{platform.FamilyDebian, "apt-get", []string{"install", "-y", "git"}},
		},
		{
			Name: "redhat uses dnf",
			Input: struct {
				family   platform.Family
				wantName string
				wantArgs []string
			}{platform.FamilyRedHat, "dnf", []string{"install", "-y", "git"}},
		},
		{
			Name: "fedora uses dnf",
			Input: struct {
				family   platform.Family
				wantName string
				wantArgs []string
			}{platform.FamilyFedora, "dnf", []string{"install", "-y", "git"}},
		},
		{
			Name: "macos uses brew",
			Input: struct {
				family   platform.Family
				wantName string
				wantArgs []string
			}{platform.FamilyMacOS, "brew", []string{"install", "git"}},
		},
	}

	for _, tt := range tests {
		t.Run(tt.Name, func(t *testing.T) {
			t.Parallel()
			name, args, err := commandFor(plan.InstallPackages("git"), tt.Input.family, testSettings())
			require.NoError(t, err)
			assert.Equal(t, tt.Input.wantName, name)
			assert.Equal(t, tt.Input.wantArgs, args)
		})
	}
}

func TestCommandForOtherFamilyHasNoPackageManager(t *testing.T) {
	t.Parallel()

	_, _, err := commandFor(plan.InstallPackages("git"), platform.FamilyOther, testSettings())
	assert.Error(t, err)
}

func TestRunModeString(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "execute", ModeExecute.String())
	assert.Equal(t, "no-op", ModeNoOp.String())
}
