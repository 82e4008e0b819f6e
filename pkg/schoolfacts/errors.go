package schoolfacts

import (
	"errors"
	"strings"
)

// Sentinel errors for common failure scenarios.
// These enable callers to distinguish error types using errors.Is().
//
// Example usage:
//
//	err := seeder.Seed(ctx, config)
//	if errors.Is(err, schoolfacts.ErrInvalidExtract) {
//	    // Handle a malformed extract document
//	}
var (
	// ErrInvalidConfig indicates the provided configuration is invalid.
	ErrInvalidConfig = errors.New("invalid configuration")

	// ErrSourceNotFound indicates a required input file does not exist.
	ErrSourceNotFound = errors.New("source file not found")

	// ErrInvalidExtract indicates the seed extract is structurally malformed
	// or references records that do not exist.
	ErrInvalidExtract = errors.New("invalid extract")

	// ErrInvalidSource indicates an input file could not be read as the expected format.
	ErrInvalidSource = errors.New("invalid source file")

	// ErrApprovalDenied indicates the user denied approval for the operation.
	ErrApprovalDenied = errors.New("approval denied")

	// ErrConnectionFailed indicates the database could not be opened.
	ErrConnectionFailed = errors.New("connection failed")

	// ErrUnsupportedDriver indicates the requested database driver is not supported.
	ErrUnsupportedDriver = errors.New("unsupported database driver")
)

// ExitCodeForError returns the appropriate exit code for an error.
// Returns ExitSuccess (0) for nil errors, semantic codes for known errors,
// and ExitGeneralError (1) for unclassified errors.
func ExitCodeForError(err error) int {
	if err == nil {
		return ExitSuccess
	}

	switch {
	case errors.Is(err, ErrInvalidConfig), errors.Is(err, ErrUnsupportedDriver):
		return ExitConfigError
	case errors.Is(err, ErrConnectionFailed):
		return ExitConnectionError
	case errors.Is(err, ErrApprovalDenied):
		return ExitApprovalDenied
	case errors.Is(err, ErrSourceNotFound),
		errors.Is(err, ErrInvalidExtract),
		errors.Is(err, ErrInvalidSource):
		return ExitInvalidInput
	}

	// cobra reports usage problems as plain errors
	errStr := err.Error()
	for _, prefix := range usageErrorPrefixes {
		if strings.HasPrefix(errStr, prefix) {
			return ExitUsageError
		}
	}

	return ExitGeneralError
}

var usageErrorPrefixes = []string{
	"unknown flag",
	"unknown shorthand flag",
	"unknown command",
	"accepts ",
	"required flag",
	"invalid argument",
	"flag needs an argument",
}
