// Package errors defines command-level error types carrying process exit
// codes up to the CLI entrypoint.
package errors

// CommandError represents a failed command execution with its exit code.
type CommandError struct {
	ExitCode    int
	CommonError string
}

// Error implements the error interface, returning the message from the common error.
func (e *CommandError) Error() string {
	return e.CommonError
}

// NewCommandError wraps err with the exit code the process should finish with.
func NewCommandError(err error, code int) *CommandError {
	return &CommandError{
		ExitCode:    code,
		CommonError: err.Error(),
	}
}
