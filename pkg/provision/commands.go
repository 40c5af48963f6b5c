// pkg/provision/commands.go

package provision

import (
	"path/filepath"

	"github.com/forgeworks/hostprep/pkg/plan"
	"github.com/forgeworks/hostprep/pkg/platform"
	cerr "github.com/cockroachdb/errors"
)

// commandFor maps a typed action onto the concrete command to spawn for the
// given host family.
func commandFor(action plan.Action, family platform.Family, settings *Settings) (string, []string, error) {
	switch action.Kind {
	case plan.ActionPackageInstall:
		return packageManagerCommand(family, action.Packages)

	case plan.ActionScriptInvocation:
		return filepath.Join(settings.ScriptsDir, action.Script), action.Args, nil

	case plan.ActionPipInstall:
		pip := settings.PipCommand
		if len(pip) == 0 {
			pip = []string{"python3", "-m", "pip"}
		}
		args := append(append([]string{}, pip[1:]...), "install")
		args = append(args, action.Packages...)
		return pip[0], args, nil

	default:
		return "", nil, cerr.Newf("unknown action kind %q", action.Kind)
	}
}

// packageManagerCommand dispatches on family. All managers are invoked with
// their idempotent install verbs, so repeat runs are harmless.
func packageManagerCommand(family platform.Family, packages []string) (string, []string, error) {
	switch family {
	case platform.FamilyDebian:
		return "apt-get", append([]string{"install", "-y"}, packages...), nil
	case platform.FamilyRedHat, platform.FamilyFedora:
		return "dnf", append([]string{"install", "-y"}, packages...), nil
	case platform.FamilyMacOS:
		return "brew", append([]string{"install"}, packages...), nil
	default:
		return "", nil, cerr.Newf("no package manager for family %q", family)
	}
}
