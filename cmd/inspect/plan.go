// cmd/inspect/plan.go

package inspect

import (
	"fmt"

	"github.com/forgeworks/hostprep/pkg/plan"
	"github.com/forgeworks/hostprep/pkg/platform"
	"github.com/forgeworks/hostprep/pkg/prep_cli"
	"github.com/forgeworks/hostprep/pkg/prep_io"
	"github.com/forgeworks/hostprep/pkg/provision"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
)

var planVariant string

var planCmd = &cobra.Command{
	Use:   "plan",
	Short: "Show the setup plan for this host without executing it",
	RunE: prep_cli.Wrap(func(rc *prep_io.RuntimeContext, cmd *cobra.Command, args []string) error {
		settings, err := provision.LoadSettings()
		if err != nil {
			return err
		}
		if planVariant != "" {
			settings.Variant = planVariant
		}
		variant, err := plan.ParseVariant(settings.Variant)
		if err != nil {
			return err
		}

		profile, err := platform.Detect(rc)
		if err != nil {
			return err
		}
		p := plan.Build(profile, variant)

		if format == "yaml" {
			out, err := yaml.Marshal(p)
			if err != nil {
				return err
			}
			fmt.Print(string(out))
			return nil
		}

		fmt.Printf("plan for %s/%s (variant %s):\n", profile.Family, profile.Arch, p.Variant)
		for _, phase := range p.Phases {
			if len(phase.Actions) == 0 {
				continue
			}
			fmt.Printf("  [%s]\n", phase.Name)
			for _, action := range phase.Actions {
				fmt.Printf("    - %s\n", action.Describe())
			}
		}
		return nil
	}),
}

func init() {
	planCmd.Flags().StringVar(&planVariant, "variant", "", "plan variant: default or modern-gcc (overrides config)")
}
