// cmd/inspect/inspect.go

package inspect

import (
	"github.com/spf13/cobra"
)

var format string

// InspectCmd groups the read-only views of detection and planning.
var InspectCmd = &cobra.Command{
	Use:   "inspect",
	Short: "Inspect the detected host or the plan that would run",
}

func init() {
	InspectCmd.PersistentFlags().StringVar(&format, "format", "text", "output format: text or yaml")
	InspectCmd.AddCommand(platformCmd)
	InspectCmd.AddCommand(planCmd)
}
