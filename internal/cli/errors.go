package cli

import (
	"errors"
	"fmt"
	"strings"
)

// Error codes for structured error responses.
// These codes are stable and can be relied upon by agents.
const (
	// Vault errors
	ErrVaultNotFound = "VAULT_NOT_FOUND"
	ErrConfigInvalid = "CONFIG_INVALID"

	// File errors
	ErrFileWriteError = "FILE_WRITE_ERROR"

	// Input errors
	ErrInvalidInput = "INVALID_INPUT"

	// General errors
	ErrInternal = "INTERNAL_ERROR"
)

// Warning codes for non-fatal issues.
const (
	WarnReadFailed    = "READ_FAILED"
	WarnNameCollision = "NAME_COLLISION"
)

// errFindings signals that an analysis reported something. It sets the exit
// status without printing anything.
var errFindings = errors.New("findings reported")

// reportedError is an error whose message has already been written.
type reportedError struct {
	err error
}

func (e *reportedError) Error() string { return e.err.Error() }
func (e *reportedError) Unwrap() error { return e.err }

// cliError carries a stable code and suggestion for text-mode display.
type cliError struct {
	code       string
	err        error
	suggestion string
}

func (e *cliError) Error() string {
	if e.suggestion == "" {
		return e.err.Error()
	}
	return fmt.Sprintf("%s\n\n%s", e.err.Error(), e.suggestion)
}

func (e *cliError) Unwrap() error { return e.err }

// handleError handles an error appropriately based on output mode.
// In JSON mode, outputs a JSON error and returns an already-reported error
// so the exit status is still non-zero. In text mode, returns the error
// for Execute to print.
func handleError(code string, err error, suggestion string) error {
	if jsonOutput {
		outputError(code, err.Error(), nil, suggestion)
		return &reportedError{err: err}
	}
	return &cliError{code: code, err: err, suggestion: suggestion}
}

// handleErrorMsg handles an error message appropriately based on output mode.
func handleErrorMsg(code, message, suggestion string) error {
	return handleError(code, errors.New(message), suggestion)
}

// errorCode returns the code attached to err, or ErrInternal.
func errorCode(err error) string {
	var ce *cliError
	if errors.As(err, &ce) {
		return ce.code
	}
	return ErrInternal
}

// isUsageError reports whether err came from cobra's argument or flag parsing.
func isUsageError(err error) bool {
	msg := err.Error()
	for _, prefix := range []string{"unknown command", "unknown flag", "unknown shorthand flag", "invalid argument", "accepts ", "flag needs an argument", "requires at least", "requires at most", "required flag"} {
		if strings.HasPrefix(msg, prefix) {
			return true
		}
	}
	return false
}
