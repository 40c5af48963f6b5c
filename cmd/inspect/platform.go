// cmd/inspect/platform.go

package inspect

import (
	"fmt"

	"github.com/forgeworks/hostprep/pkg/platform"
	"github.com/forgeworks/hostprep/pkg/prep_cli"
	"github.com/forgeworks/hostprep/pkg/prep_io"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
)

var platformCmd = &cobra.Command{
	Use:   "platform",
	Short: "Show the detected host profile",
	RunE: prep_cli.Wrap(func(rc *prep_io.RuntimeContext, cmd *cobra.Command, args []string) error {
		profile, err := platform.Detect(rc)
		if err != nil {
			return err
		}

		if format == "yaml" {
			out, err := yaml.Marshal(profile)
			if err != nil {
				return err
			}
			fmt.Print(string(out))
			return nil
		}

		fmt.Printf("family:  %s\n", profile.Family)
		fmt.Printf("arch:    %s\n", profile.Arch)
		fmt.Printf("osnick:  %s\n", profile.OSNick)
		if profile.Version != "" {
			fmt.Printf("version: %s\n", profile.Version)
		}
		return nil
	}),
}
