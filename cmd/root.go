// cmd/root.go

package cmd

import (
	"fmt"
	"os"

	"github.com/forgeworks/hostprep/cmd/inspect"
	"github.com/forgeworks/hostprep/cmd/setup"
	"github.com/forgeworks/hostprep/pkg/logger"
	"github.com/forgeworks/hostprep/pkg/prep_err"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

// RootCmd is the base command for hostprep.
var RootCmd = &cobra.Command{
	Use:   "hostprep",
	Short: "Prepare a build host with compilers and toolchains",
	Long: `hostprep detects the host OS family and runs an ordered, idempotent
provisioning plan (C compiler, Rust toolchain, CMake, Python packaging tools)
so a native build can proceed. Re-running on a provisioned host is safe.`,
	SilenceUsage: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		fmt.Println("No subcommand provided. Try `hostprep help`.")
		return cmd.Help()
	},
}

// RegisterCommands adds all subcommands to the root command.
func RegisterCommands() {
	for _, subCmd := range []*cobra.Command{
		setup.SetupCmd,
		inspect.InspectCmd,
	} {
		RootCmd.AddCommand(subCmd)
	}
}

// Execute initializes and runs the root command, mapping errors to exit codes.
func Execute() {
	defer func() {
		if err := logger.Sync(); err != nil {
			fmt.Fprintf(os.Stderr, "Failed to flush logs: %v\n", err)
		}
	}()

	RegisterCommands()

	if err := RootCmd.Execute(); err != nil {
		if prep_err.IsExpectedUserError(err) {
			zap.L().Warn("CLI completed with user error", zap.Error(err))
			os.Exit(0)
		}
		zap.L().Error("CLI failed", zap.Error(err))
		os.Exit(1)
	}
}
