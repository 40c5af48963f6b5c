package prep_cli

import (
	"testing"

	"github.com/forgeworks/hostprep/pkg/prep_err"
	"github.com/forgeworks/hostprep/pkg/prep_io"
	cerr "github.com/cockroachdb/errors"
	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testCommand() *cobra.Command {
	return &cobra.Command{Use: "test"}
}

func TestWrapPassesThroughSuccess(t *testing.T) {
	called := false
	fn := Wrap(func(rc *prep_io.RuntimeContext, cmd *cobra.Command, args []string) error {
		called = true
		require.NotNil(t, rc)
		require.NotNil(t, rc.Ctx)
		return nil
	})

	err := fn(testCommand(), nil)
	assert.NoError(t, err)
	assert.True(t, called)
}

func TestWrapRecoversPanic(t *testing.T) {
	fn := Wrap(func(rc *prep_io.RuntimeContext, cmd *cobra.Command, args []string) error {
		panic("boom")
	})

	err := fn(testCommand(), nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "boom")
}

func TestWrapPreservesExpectedUserErrors(t *testing.T) {
	base := prep_err.NewExpectedError(cerr.New("fix your config"))
	fn := Wrap(func(rc *prep_io.RuntimeContext, cmd *cobra.Command, args []string) error {
		return base
	})

	err := fn(testCommand(), nil)
	require.Error(t, err)
	assert.True(t, prep_err.IsExpectedUserError(err))
}
