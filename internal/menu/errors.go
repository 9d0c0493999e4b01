package menu

import (
	"errors"
	"fmt"
	"strings"
)

// errArgsRejected is the cause carried by a UsageError's unwrapped LaunchError.
var errArgsRejected = errors.New("menu tool rejected the provided arguments")

// LaunchError indicates the external menu process could not be started
// (binary not found, not executable, or another OS-level spawn error).
// It carries the attempted command so callers can report what was run.
type LaunchError struct {
	Cmd []string
	Err error
}

func (e *LaunchError) Error() string {
	return fmt.Sprintf("menu command could not be used: %s: %v", strings.Join(e.Cmd, " "), e.Err)
}

func (e *LaunchError) Unwrap() error {
	return e.Err
}

// UsageError indicates the external menu process started but rejected the
// arguments it was given, detected via "usage" in its stderr combined with a
// non-zero exit status. It unwraps to a LaunchError, so errors.As with either
// type matches.
type UsageError struct {
	Cmd    []string
	Stderr string
}

func (e *UsageError) Error() string {
	return fmt.Sprintf("menu tool does not support this usage: %s: %s", strings.Join(e.Cmd, " "), e.Stderr)
}

func (e *UsageError) Unwrap() error {
	return &LaunchError{Cmd: e.Cmd, Err: errArgsRejected}
}

// ConvertError indicates a configured option value could not be converted to
// the type the option requires. It is raised while building the command,
// before any process is spawned.
type ConvertError struct {
	Option string
	Value  any
	Err    error
}

func (e *ConvertError) Error() string {
	if e.Option != "" {
		return fmt.Sprintf("option %q: cannot convert %v: %v", e.Option, e.Value, e.Err)
	}
	return fmt.Sprintf("cannot convert %v: %v", e.Value, e.Err)
}

func (e *ConvertError) Unwrap() error {
	return e.Err
}
