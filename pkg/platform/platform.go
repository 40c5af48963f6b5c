// pkg/platform/platform.go

package platform

import (
	"os/exec"
	"runtime"
	"strings"

	"github.com/forgeworks/hostprep/pkg/prep_io"
	"go.uber.org/zap"
)

// Family is the coarse OS/distribution classification used to select the
// family-specific provisioning phase.
type Family string

const (
	FamilyDebian Family = "debian"
	FamilyRedHat Family = "redhat"
	FamilyFedora Family = "fedora"
	FamilyMacOS  Family = "macos"
	FamilyOther  Family = "other"
)

// HostProfile describes the detected host. Derived once at the start of a run
// and never mutated afterwards.
type HostProfile struct {
	Family  Family `yaml:"family"`
	Arch    string `yaml:"arch"`
	OSNick  string `yaml:"osnick"`
	Version string `yaml:"version,omitempty"`
}

// IsARM reports whether the host runs an ARM architecture.
func (p *HostProfile) IsARM() bool {
	return p.Arch == "arm64" || strings.HasPrefix(p.Arch, "arm")
}

// Detect inspects the running system and returns an immutable HostProfile.
// Unrecognized hosts degrade to FamilyOther rather than failing the run.
func Detect(rc *prep_io.RuntimeContext) (*HostProfile, error) {
	profile := &HostProfile{
		Family: FamilyOther,
		Arch:   runtime.GOARCH,
	}

	switch runtime.GOOS {
	case "darwin":
		profile.Family = FamilyMacOS
		profile.OSNick = "macos"
	case "linux":
		rel, err := readOSRelease(osReleasePath)
		if err != nil {
			rc.Log.Warn("Could not read /etc/os-release; treating host as unrecognized",
				zap.Error(err))
			break
		}
		applyOSRelease(profile, rel)
	default:
		rc.Log.Warn("Unsupported platform; no family-specific phase will run",
			zap.String("goos", runtime.GOOS))
	}

	rc.Log.Info("Detected host",
		zap.String("family", string(profile.Family)),
		zap.String("arch", profile.Arch),
		zap.String("osnick", profile.OSNick))

	return profile, nil
}

// IsCommandAvailable checks if a command exists in the system PATH.
func IsCommandAvailable(name string) bool {
	_, err := exec.LookPath(name)
	return err == nil
}
