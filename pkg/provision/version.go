// pkg/provision/version.go

package provision

import (
	"strings"

	goversion "github.com/hashicorp/go-version"
)

// parseToolVersion pulls the first parseable version token out of a tool's
// --version banner, e.g. "cmake version 3.27.4" or "cargo 1.74.0 (...)".
func parseToolVersion(output string) *goversion.Version {
	firstLine := output
	if idx := strings.IndexByte(output, '\n'); idx >= 0 {
		firstLine = output[:idx]
	}
	for _, token := range strings.Fields(firstLine) {
		if v, err := goversion.NewVersion(token); err == nil {
			return v
		}
	}
	return nil
}
