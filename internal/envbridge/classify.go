package envbridge

import (
	"fmt"
	"strings"

	"github.com/shinji-kodama/minikube-envbridge/internal/model"
)

// UnsupportedDriverMarker is the stderr substring minikube prints when the
// active driver (e.g. "none") has no Docker daemon to expose. Only this exact
// wording is recognised; anything else is treated as a real failure.
const UnsupportedDriverMarker = "driver does not support"

// Classify decides what to do with a companion command outcome.
//
// A nil error means the command succeeded and its output should be applied.
// A failure whose stderr contains UnsupportedDriverMarker is suppressed.
// Every other failure is propagated to the caller.
func Classify(result model.CommandResult, err error) model.Disposition {
	if err == nil {
		return model.DispositionApply
	}
	if strings.Contains(result.Stderr, UnsupportedDriverMarker) {
		return model.DispositionSuppress
	}
	return model.DispositionPropagate
}

// CommandError reports a companion command failure that was not an
// unsupported-driver condition. The original error is preserved for
// errors.Is / errors.As (e.g. exec.ErrNotFound, *exec.ExitError).
type CommandError struct {
	// Name is the executable that was invoked.
	Name string

	// Args are the arguments it was invoked with.
	Args []string

	// Stderr is the captured standard error.
	Stderr string

	// ExitCode is the process exit status, -1 if it never started.
	ExitCode int

	// Err is the error returned by the runner.
	Err error
}

// Error includes the command line, the underlying error and, when present,
// the trimmed stderr output.
func (e *CommandError) Error() string {
	msg := fmt.Sprintf("%s failed: %v", e.commandLine(), e.Err)
	if stderr := strings.TrimSpace(e.Stderr); stderr != "" {
		msg = fmt.Sprintf("%s: %s", msg, stderr)
	}
	return msg
}

// Unwrap returns the runner error.
func (e *CommandError) Unwrap() error {
	return e.Err
}

func (e *CommandError) commandLine() string {
	return strings.TrimSpace(e.Name + " " + strings.Join(e.Args, " "))
}
