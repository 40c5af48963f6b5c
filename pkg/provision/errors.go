// pkg/provision/errors.go

package provision

import (
	"fmt"

	"github.com/forgeworks/hostprep/pkg/plan"
)

// ActionError is the fatal failure of one plan action. The first one aborts
// the remaining plan; there is no retry or partial-plan recovery.
type ActionError struct {
	Phase  string
	Action plan.Action
	Err    error
}

func (e *ActionError) Error() string {
	return fmt.Sprintf("action %q in phase %q failed: %v", e.Action.Describe(), e.Phase, e.Err)
}

func (e *ActionError) Unwrap() error {
	return e.Err
}
