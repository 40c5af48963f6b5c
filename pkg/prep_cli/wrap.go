// pkg/prep_cli/wrap.go

package prep_cli

import (
	"context"

	"github.com/forgeworks/hostprep/pkg/prep_err"
	"github.com/forgeworks/hostprep/pkg/prep_io"
	cerr "github.com/cockroachdb/errors"
	"github.com/spf13/cobra"
)

// Wrap adapts a RuntimeContext-style handler to cobra's RunE signature,
// adding panic recovery and stack attachment on unexpected errors.
func Wrap(fn func(rc *prep_io.RuntimeContext, cmd *cobra.Command, args []string) error) func(cmd *cobra.Command, args []string) error {
	return func(cmd *cobra.Command, args []string) (err error) {
		rc := prep_io.NewContext(context.Background(), cmd.Name())
		defer rc.End(&err)
		defer rc.HandlePanic(&err)

		err = fn(rc, cmd, args)
		if err != nil && !prep_err.IsExpectedUserError(err) {
			err = cerr.WithStack(err)
		}
		return err
	}
}
