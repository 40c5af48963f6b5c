// pkg/plan/plan.go

package plan

import (
	"github.com/forgeworks/hostprep/pkg/platform"
	"github.com/forgeworks/hostprep/pkg/prep_err"
	cerr "github.com/cockroachdb/errors"
)

// Phase names. The family phase is named after the family it serves.
const (
	PhaseCommonFirst = "common-first"
	PhaseCommonLast  = "common-last"
)

// Phase is an ordered slice of actions; order within a phase is significant.
type Phase struct {
	Name    string   `yaml:"name"`
	Actions []Action `yaml:"actions"`
}

// Variant selects between the two historical provisioning flavors. The
// default flavor ships a Redis binary and a /usr cmake on macOS; modern-gcc
// ships a newer GCC instead.
type Variant string

const (
	VariantDefault   Variant = "default"
	VariantModernGCC Variant = "modern-gcc"
)

// ParseVariant validates a variant name from flags or config. A bad name is
// an expected user error: the CLI reports it without a failure exit.
func ParseVariant(s string) (Variant, error) {
	switch Variant(s) {
	case VariantDefault, VariantModernGCC:
		return Variant(s), nil
	case "":
		return VariantDefault, nil
	default:
		return "", prep_err.NewExpectedError(
			cerr.Newf("unknown plan variant %q (expected %q or %q)", s, VariantDefault, VariantModernGCC))
	}
}

// Plan is the full ordered provisioning sequence for one host. Built once per
// run, consumed top to bottom, never persisted.
type Plan struct {
	Profile *platform.HostProfile `yaml:"profile"`
	Variant Variant               `yaml:"variant"`
	Phases  []Phase               `yaml:"phases"`
}

// familyPhases maps each family onto its phase builder. Families without an
// entry get an empty phase.
var familyPhases = map[platform.Family]func(p *platform.HostProfile, v Variant) []Action{
	platform.FamilyDebian: debianCompat,
	platform.FamilyRedHat: redhatCompat,
	platform.FamilyFedora: fedora,
	platform.FamilyMacOS:  macOS,
}

// Build maps a host profile onto the fixed three-phase sequence:
// common-first, exactly one family phase (possibly empty), common-last.
func Build(profile *platform.HostProfile, variant Variant) *Plan {
	var familyActions []Action
	if build, ok := familyPhases[profile.Family]; ok {
		familyActions = build(profile, variant)
	}

	return &Plan{
		Profile: profile,
		Variant: variant,
		Phases: []Phase{
			{Name: PhaseCommonFirst, Actions: commonFirst(profile, variant)},
			{Name: string(profile.Family), Actions: familyActions},
			{Name: PhaseCommonLast, Actions: commonLast()},
		},
	}
}

// ActionCount returns the total number of actions across all phases.
func (p *Plan) ActionCount() int {
	n := 0
	for _, phase := range p.Phases {
		n += len(phase.Actions)
	}
	return n
}

// packageManagers lists the families with a usable system package manager.
// Unrecognized hosts get the degraded minimal plan: helper scripts and pip
// only, no PackageInstall actions.
var packageManagers = map[platform.Family]bool{
	platform.FamilyDebian: true,
	platform.FamilyRedHat: true,
	platform.FamilyFedora: true,
	platform.FamilyMacOS:  true,
}

func commonFirst(profile *platform.HostProfile, variant Variant) []Action {
	var actions []Action
	if packageManagers[profile.Family] {
		actions = append(actions,
			InstallPackages("curl", "wget"),
			InstallPackages("git"),
		)
	}
	actions = append(actions,
		RunScript("enable-utf8"),
		RunScript("getclang", "--modern"),
		RunScript("getrust"),
	)

	// Oracle Linux 8 minimal images ship without tar, which the toolchain
	// scripts need for unpacking archives.
	if profile.OSNick == "ol8" {
		actions = append(actions, InstallPackages("tar"))
	}

	if variant == VariantDefault {
		actions = append(actions, RunScript("getcmake", "--usr"))
	} else {
		actions = append(actions, RunScript("getcmake"))
	}
	return actions
}

func debianCompat(_ *platform.HostProfile, _ Variant) []Action {
	return []Action{
		RunScript("getgcc"),
	}
}

func redhatCompat(profile *platform.HostProfile, _ Variant) []Action {
	actions := []Action{
		InstallPackages("redhat-lsb-core"),
		RunScript("getgcc", "--modern"),
	}
	if !profile.IsARM() {
		actions = append(actions, RunScript("getgnutar"))
	}
	return actions
}

func fedora(_ *platform.HostProfile, _ Variant) []Action {
	return []Action{
		RunScript("getgcc"),
	}
}

func macOS(_ *platform.HostProfile, variant Variant) []Action {
	actions := []Action{
		InstallPackages("coreutils", "findutils", "gnu-sed", "gnu-tar", "grep"),
	}
	if variant == VariantModernGCC {
		actions = append(actions, RunScript("getgcc", "--modern"))
	} else {
		actions = append(actions, RunScript("getredis", "-v", "6"))
	}
	return actions
}

func commonLast() []Action {
	return []Action{
		PipInstall("toml"),
	}
}
