// pkg/prep_err/types.go

package prep_err

// UserError marks an error as expected and recoverable by the user.
type UserError struct {
	cause error
}

func (e *UserError) Error() string {
	return e.cause.Error()
}

func (e *UserError) Unwrap() error {
	return e.cause
}
