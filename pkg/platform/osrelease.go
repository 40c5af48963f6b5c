// pkg/platform/osrelease.go

package platform

import (
	"bufio"
	"fmt"
	"os"
	"strings"

	goversion "github.com/hashicorp/go-version"
)

var osReleasePath = "/etc/os-release"

// debianLike and redhatLike map os-release IDs onto families. ID_LIKE is
// consulted for derivatives not listed here.
var (
	debianLike = map[string]bool{"debian": true, "ubuntu": true, "linuxmint": true, "pop": true}
	redhatLike = map[string]bool{"rhel": true, "centos": true, "rocky": true, "almalinux": true, "ol": true, "amzn": true}
)

// readOSRelease parses the key=value pairs of an os-release file.
func readOSRelease(path string) (map[string]string, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer file.Close()

	rel := make(map[string]string)
	scanner := bufio.NewScanner(file)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		key, value, found := strings.Cut(line, "=")
		if !found {
			continue
		}
		rel[key] = strings.Trim(value, `"`)
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}
	return rel, nil
}

// applyOSRelease fills family, version and osnick from parsed os-release data.
func applyOSRelease(profile *HostProfile, rel map[string]string) {
	id := rel["ID"]
	profile.Version = rel["VERSION_ID"]

	switch {
	case id == "fedora":
		profile.Family = FamilyFedora
	case debianLike[id]:
		profile.Family = FamilyDebian
	case redhatLike[id]:
		profile.Family = FamilyRedHat
	default:
		for _, like := range strings.Fields(rel["ID_LIKE"]) {
			if debianLike[like] {
				profile.Family = FamilyDebian
				break
			}
			if redhatLike[like] || like == "fedora" {
				profile.Family = FamilyRedHat
				break
			}
		}
	}

	profile.OSNick = osNick(id, profile.Family, profile.Version)
}

// osNick builds the short distro nickname, e.g. "ubuntu22.04", "ol8", "rocky9".
// Red-Hat-likes use the major version only; everything else keeps VERSION_ID
// as published.
func osNick(id string, family Family, versionID string) string {
	if id == "" {
		return "linux"
	}
	if versionID == "" {
		return id
	}
	if family == FamilyRedHat || family == FamilyFedora {
		if v, err := goversion.NewVersion(versionID); err == nil {
			return fmt.Sprintf("%s%d", id, v.Segments()[0])
		}
	}
	return id + versionID
}
