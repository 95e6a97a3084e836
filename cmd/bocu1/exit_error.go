// SPDX-License-Identifier: MPL-2.0

package cmd

import "fmt"

const (
	// ExitFailure is the exit code for errors.
	ExitFailure = 1
	// ExitMismatch is the exit code when verify or check finds a codec
	// result that differs from what was expected.
	ExitMismatch = 2
)

// ExitError carries an exit code out of a RunE handler.
type ExitError struct {
	Code int
	Err  error
}

// Error returns the wrapped error's message, or the exit status.
func (e *ExitError) Error() string {
	if e.Err != nil {
		return e.Err.Error()
	}
	return fmt.Sprintf("exit status %d", e.Code)
}

// Unwrap returns the wrapped error.
func (e *ExitError) Unwrap() error {
	return e.Err
}
