// cmd/setup/setup.go

package setup

import (
	"github.com/forgeworks/hostprep/pkg/plan"
	"github.com/forgeworks/hostprep/pkg/platform"
	"github.com/forgeworks/hostprep/pkg/prep_cli"
	"github.com/forgeworks/hostprep/pkg/prep_io"
	"github.com/forgeworks/hostprep/pkg/provision"
	"github.com/uptrace/opentelemetry-go-extra/otelzap"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var (
	noOp       bool
	variant    string
	scriptsDir string
)

// SetupCmd runs the full provisioning plan for the detected host.
var SetupCmd = &cobra.Command{
	Use:   "setup",
	Short: "Detect the host and run the provisioning plan",
	Long: `Detects the OS family, builds the three-phase setup plan
(common-first, family-specific, common-last) and executes it in order.
With --no-op the plan is only recorded, never executed.`,
	RunE: prep_cli.Wrap(runSetup),
}

func init() {
	SetupCmd.Flags().BoolVarP(&noOp, "no-op", "n", false, "record intended actions without mutating the host")
	SetupCmd.Flags().StringVar(&variant, "variant", "", "plan variant: default or modern-gcc (overrides config)")
	SetupCmd.Flags().StringVar(&scriptsDir, "scripts-dir", "", "directory holding the helper installer scripts (overrides config)")
}

func runSetup(rc *prep_io.RuntimeContext, cmd *cobra.Command, args []string) error {
	logger := otelzap.Ctx(rc.Ctx)

	settings, err := provision.LoadSettings()
	if err != nil {
		return err
	}
	if variant != "" {
		settings.Variant = variant
	}
	if scriptsDir != "" {
		settings.ScriptsDir = scriptsDir
	}

	planVariant, err := plan.ParseVariant(settings.Variant)
	if err != nil {
		return err
	}

	profile, err := platform.Detect(rc)
	if err != nil {
		return err
	}

	p := plan.Build(profile, planVariant)

	mode := provision.ModeExecute
	if noOp {
		mode = provision.ModeNoOp
	}

	executor := provision.NewExecutor(settings)
	result, err := executor.Execute(rc, p, mode)
	if err != nil {
		return err
	}

	logger.Info("Host provisioning finished",
		zap.String("run_id", result.RunID),
		zap.String("mode", result.Mode),
		zap.Int("actions", len(result.Records)),
		zap.Duration("duration", result.Duration))
	return nil
}
