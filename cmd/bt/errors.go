package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/webqa-tools/bugtrack/internal/storage"
	"github.com/webqa-tools/bugtrack/internal/types"
)

// FatalError writes an error message to stderr and exits with code 1.
// Use this for user errors that prevent the command from completing.
func FatalError(format string, args ...interface{}) {
	fmt.Fprintf(os.Stderr, "Error: "+format+"\n", args...)
	os.Exit(1)
}

// FatalErrorWithHint writes an error message with a hint to stderr and exits.
func FatalErrorWithHint(message, hint string) {
	fmt.Fprintf(os.Stderr, "Error: %s\n", message)
	fmt.Fprintf(os.Stderr, "Hint: %s\n", hint)
	os.Exit(1)
}

// WarnError writes a warning message to stderr and returns.
func WarnError(format string, args ...interface{}) {
	fmt.Fprintf(os.Stderr, "Warning: "+format+"\n", args...)
}

func errorsIsUnavailable(err error) bool {
	return errors.Is(err, storage.ErrUnavailable)
}

// exitOnError renders err for the user and exits. The three error kinds
// get distinct treatment: NotFound and InvalidArgument are user errors
// (exit 1), storage unavailability is an infrastructure failure worth
// retrying (exit 2).
func exitOnError(err error) {
	if err == nil {
		return
	}
	switch {
	case errors.Is(err, storage.ErrNotFound):
		if jsonOutput {
			outputJSONError(err, "not_found")
		}
		FatalErrorWithHint(err.Error(), "check the identifier with 'bt list'")
	case errors.Is(err, types.ErrInvalid):
		if jsonOutput {
			outputJSONError(err, "invalid_argument")
		}
		FatalError("%v", err)
	case errorsIsUnavailable(err):
		if jsonOutput {
			outputJSONError(err, "storage_unavailable")
		}
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		fmt.Fprintf(os.Stderr, "Hint: the store is unreachable; check --uri and retry\n")
		os.Exit(2)
	default:
		if jsonOutput {
			outputJSONError(err, "")
		}
		FatalError("%v", err)
	}
}
