// Package runner abstracts external process invocation.
//
// The bridge never calls os/exec directly; it depends on the Runner
// interface so tests can supply canned outputs (success, unsupported
// driver, generic failure) without spawning real processes.
package runner

import (
	"bytes"
	"context"
	"errors"
	"os/exec"
	"strings"
	"sync"

	"github.com/shinji-kodama/minikube-envbridge/internal/model"
)

// Runner executes a named program with arguments and captures its output.
//
// Implementations must return the captured output even when the command
// fails, because the caller inspects Stderr to classify the failure.
// A nil error means the command ran and exited with status 0.
type Runner interface {
	Run(ctx context.Context, name string, args ...string) (model.CommandResult, error)
}

// ExecRunner runs commands as child processes via os/exec.
// The child inherits the current process environment.
type ExecRunner struct{}

// NewExecRunner creates a new ExecRunner.
func NewExecRunner() *ExecRunner {
	return &ExecRunner{}
}

// Run starts name with args, waits for it to exit, and returns its
// stdout, stderr and exit code.
//
// The context is passed to exec.CommandContext unchanged; no timeout is
// added here. When the binary cannot be found or started, ExitCode is -1
// and the returned error wraps the underlying exec error (for a missing
// binary, errors.Is(err, exec.ErrNotFound) holds).
func (r *ExecRunner) Run(ctx context.Context, name string, args ...string) (model.CommandResult, error) {
	// #nosec G204 -- the binary and its args come from configuration, not
	// from untrusted input.
	cmd := exec.CommandContext(ctx, name, args...)

	// Capture stdout and stderr separately: stdout is the payload,
	// stderr is only used for diagnostics and failure classification.
	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	err := cmd.Run()

	result := model.CommandResult{
		Stdout:   stdout.String(),
		Stderr:   stderr.String(),
		ExitCode: exitCode(cmd, err),
	}
	return result, err
}

// exitCode extracts the process exit status. A process that exited
// non-zero yields an *exec.ExitError carrying its code; any other error
// means the process never ran to completion, reported as -1.
func exitCode(cmd *exec.Cmd, err error) int {
	if err == nil {
		return 0
	}
	var exitErr *exec.ExitError
	if errors.As(err, &exitErr) {
		return exitErr.ExitCode()
	}
	if cmd.ProcessState != nil {
		return cmd.ProcessState.ExitCode()
	}
	return -1
}

// Call records a single invocation made through a StaticRunner.
type Call struct {
	Name string
	Args []string
}

// String renders the call as a command line, e.g. "minikube docker-env --shell=bash".
func (c Call) String() string {
	return strings.TrimSpace(c.Name + " " + strings.Join(c.Args, " "))
}

// StaticRunner is a Runner that returns a fixed result and error for every
// call and records what it was asked to run. It is used by tests in this
// and other packages in place of ExecRunner.
type StaticRunner struct {
	Result model.CommandResult
	Err    error

	mu    sync.Mutex
	calls []Call
}

// Run records the call and returns the configured result and error.
func (r *StaticRunner) Run(_ context.Context, name string, args ...string) (model.CommandResult, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.calls = append(r.calls, Call{Name: name, Args: append([]string(nil), args...)})
	return r.Result, r.Err
}

// Calls returns a copy of the recorded invocations in order.
func (r *StaticRunner) Calls() []Call {
	r.mu.Lock()
	defer r.mu.Unlock()

	return append([]Call(nil), r.calls...)
}
