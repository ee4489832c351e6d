// Package errors formats command failures for the terminal and exits.
package errors

import (
	stderrors "errors"
	"fmt"
	"os"

	"github.com/julianstephens/pharmtrack/internal/logger"
)

const (
	ExitFailure = 1
	ExitUsage   = 2
)

// UsageError marks a failure caused by bad command-line input, such as an
// unparseable date argument. Fatal exits with ExitUsage for these.
type UsageError struct {
	Err error
}

func (e *UsageError) Error() string { return e.Err.Error() }
func (e *UsageError) Unwrap() error { return e.Err }

// Usage builds a UsageError from a format string.
func Usage(format string, args ...interface{}) error {
	return &UsageError{Err: fmt.Errorf(format, args...)}
}

// IsUsage reports whether err or anything it wraps is a UsageError.
func IsUsage(err error) bool {
	var ue *UsageError
	return stderrors.As(err, &ue)
}

// Format prefixes the message with "Error: ". A nil error formats as "".
func Format(err error) string {
	if err == nil {
		return ""
	}
	return fmt.Sprintf("Error: %v", err)
}

func Formatf(format string, args ...interface{}) string {
	return fmt.Sprintf("Error: "+format, args...)
}

// ExitCode maps an error to the process exit status.
func ExitCode(err error) int {
	switch {
	case err == nil:
		return 0
	case IsUsage(err):
		return ExitUsage
	default:
		return ExitFailure
	}
}

// Fatal prints err to stderr and exits. It returns normally when err is nil.
func Fatal(err error) {
	if err == nil {
		return
	}
	logger.Error("Command execution failed", "error", err)
	fmt.Fprintln(os.Stderr, Format(err))
	os.Exit(ExitCode(err))
}

func Fatalf(format string, args ...interface{}) {
	Fatal(fmt.Errorf(format, args...))
}
