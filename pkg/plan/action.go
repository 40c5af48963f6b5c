// pkg/plan/action.go

package plan

import "strings"

// ActionKind discriminates the SetupAction variants. Execution and dry-run
// logging share this one data model.
type ActionKind string

const (
	ActionPackageInstall   ActionKind = "package-install"
	ActionScriptInvocation ActionKind = "script-invocation"
	ActionPipInstall       ActionKind = "pip-install"
)

// Action is a single idempotent provisioning step.
type Action struct {
	Kind     ActionKind `yaml:"kind"`
	Packages []string   `yaml:"packages,omitempty"`
	Script   string     `yaml:"script,omitempty"`
	Args     []string   `yaml:"args,omitempty"`
}

// InstallPackages builds a system package-manager install action.
func InstallPackages(packages ...string) Action {
	return Action{Kind: ActionPackageInstall, Packages: packages}
}

// RunScript builds a helper-script invocation action.
func RunScript(script string, args ...string) Action {
	return Action{Kind: ActionScriptInvocation, Script: script, Args: args}
}

// PipInstall builds a Python package install action.
func PipInstall(packages ...string) Action {
	return Action{Kind: ActionPipInstall, Packages: packages}
}

// Describe renders the action for logs and dry-run output.
func (a Action) Describe() string {
	switch a.Kind {
	case ActionPackageInstall:
		return "install " + strings.Join(a.Packages, " ")
	case ActionScriptInvocation:
		parts := append([]string{a.Script}, a.Args...)
		return "run " + strings.Join(parts, " ")
	case ActionPipInstall:
		return "pip install " + strings.Join(a.Packages, " ")
	default:
		return "unknown action"
	}
}
