package cmd

import (
	"errors"
	"fmt"
	"io/fs"

	"github.com/bedrock-oss/wikigen/internal/config"
	"github.com/bedrock-oss/wikigen/internal/lint"
	"github.com/bedrock-oss/wikigen/internal/splice"
)

// Process exit codes.
const (
	ExitCodeSuccess    = 0
	ExitCodeValidation = 1
	ExitCodeNotFound   = 2
	ExitCodeLocked     = 5
	ExitCodeFilesystem = 6
	ExitCodeSchema     = 7
	ExitCodeUnknown    = 10
)

// CLIError allows returning rich errors with exit codes.
type CLIError struct {
	Code int
	Err  error
}

func (e *CLIError) Error() string {
	if e.Err == nil {
		return fmt.Sprintf("exit code %d", e.Code)
	}
	return e.Err.Error()
}

func (e *CLIError) Unwrap() error {
	return e.Err
}

// NewCLIError constructs a CLIError with a message and exit code.
func NewCLIError(code int, msg string) error {
	return &CLIError{Code: code, Err: fmt.Errorf("%s", msg)}
}

// WrapCLIError converts any error into a CLIError with the provided code.
func WrapCLIError(code int, err error) error {
	if err == nil {
		return nil
	}
	return &CLIError{Code: code, Err: err}
}

// ExitCode extracts an exit code from an error, returning ExitCodeUnknown if not specified.
func ExitCode(err error) int {
	if err == nil {
		return ExitCodeSuccess
	}
	var cliErr *CLIError
	if errors.As(err, &cliErr) {
		if cliErr.Code == 0 {
			return ExitCodeUnknown
		}
		return cliErr.Code
	}
	return ExitCodeUnknown
}

// classify picks the exit code for an error coming out of the wiki packages.
// Structural problems win over missing files, which win over other I/O errors.
func classify(err error) error {
	if err == nil {
		return nil
	}
	switch {
	case errors.Is(err, splice.ErrMalformedDocument), errors.Is(err, splice.ErrArityMismatch),
		errors.Is(err, splice.ErrMarkerInFragment),
		errors.Is(err, splice.ErrInvalidFragments), errors.Is(err, lint.ErrInvalidRegion):
		return WrapCLIError(ExitCodeValidation, err)
	case errors.Is(err, config.ErrInvalidJobs), errors.Is(err, config.ErrMalformedJobs):
		return WrapCLIError(ExitCodeSchema, err)
	case errors.Is(err, fs.ErrNotExist):
		return WrapCLIError(ExitCodeNotFound, err)
	}
	return WrapCLIError(ExitCodeFilesystem, err)
}
