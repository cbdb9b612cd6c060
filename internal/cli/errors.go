package cli

import (
	"errors"
	"fmt"
	"io/fs"

	"github.com/roach88/glgen/internal/registry"
)

// Error codes reported in CLI output.
const (
	ErrCodeGeneric        = "E001" // Generic/unknown error
	ErrCodePlanInvalid    = "E002" // Plan failed to parse or validate
	ErrCodeRegistryLoad   = "E003" // Registry unreadable or malformed
	ErrCodeGenerateFailed = "E004" // A selection or declaration failed
	ErrCodeNotFound       = "E005" // Path not found
	ErrCodeLedger         = "E006" // Ledger open/read/write error
	ErrCodeWriteFailed    = "E007" // Artifact write error
	ErrCodeStale          = "E008" // Artifacts on disk differ from a fresh run
)

// stageError carries the error code of the stage that failed.
type stageError struct {
	Code string
	Err  error
}

func (e *stageError) Error() string {
	return e.Err.Error()
}

func (e *stageError) Unwrap() error {
	return e.Err
}

func fail(code string, err error) *stageError {
	return &stageError{Code: code, Err: err}
}

// registryCode distinguishes a missing registry from a broken one.
func registryCode(err error) string {
	var loadErr *registry.LoadError
	switch {
	case errors.Is(err, fs.ErrNotExist):
		return ErrCodeNotFound
	case errors.As(err, &loadErr):
		return ErrCodeRegistryLoad
	default:
		return ErrCodeGeneric
	}
}

// outputError reports err through formatter and returns the command error.
// Stage errors keep their code; anything else is reported as generic.
func outputError(formatter *OutputFormatter, err error, details interface{}) error {
	code := ErrCodeGeneric
	var se *stageError
	if errors.As(err, &se) {
		code = se.Code
	}
	_ = formatter.Error(code, err.Error(), details)
	return WrapExitError(ExitCommandError, fmt.Sprintf("%s: %s", code, err.Error()), nil)
}
