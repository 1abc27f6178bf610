// Package model defines the domain types for the minikube-envbridge CLI.
//
// These types carry data between the runner (which invokes the companion
// command), the bridge (which parses and applies its output), and the CLI
// layer (which reports results and maps errors to exit codes). None of them
// are persisted: a CommandResult lives for one invocation and an Assignment
// only for the duration of the parse-and-apply loop.
package model

import (
	"fmt"
	"strings"
)

// CommandResult is the captured outcome of one companion command invocation.
//
// Stdout and Stderr are kept separate (not combined) because they play
// different roles: stdout is the export script, stderr is inspected only on
// failure to decide whether the failure is an expected no-op.
type CommandResult struct {
	// Stdout is the full standard output of the command.
	Stdout string `json:"stdout"`

	// Stderr is the full standard error of the command.
	Stderr string `json:"stderr"`

	// ExitCode is the process exit status. It is -1 when the process
	// never started (e.g., the binary is not on PATH).
	ExitCode int `json:"exitCode"`
}

// Success reports whether the command exited with status 0.
func (r CommandResult) Success() bool {
	return r.ExitCode == 0
}

// Assignment is one parsed `export KEY="VALUE"` line.
type Assignment struct {
	// Key is the environment variable name (word characters only).
	Key string `json:"key"`

	// Value is the quoted content with the surrounding quotes removed.
	Value string `json:"value"`
}

// String returns the assignment in KEY=VALUE form, the same shape
// os.Environ uses.
func (a Assignment) String() string {
	return a.Key + "=" + a.Value
}

// Disposition is the decision taken after classifying a companion command
// outcome. The transitions are:
//
//	Invoking → Applying    (command succeeded)
//	Invoking → Suppressed  (driver does not support docker-env)
//	Invoking → Failed      (any other failure)
type Disposition string

const (
	// DispositionApply means the command succeeded and its stdout should be
	// parsed and applied to the environment.
	DispositionApply Disposition = "apply"

	// DispositionSuppress means the command failed in a known, expected way
	// and the bridge should return successfully without changing anything.
	DispositionSuppress Disposition = "suppress"

	// DispositionPropagate means the failure must be reported to the caller.
	DispositionPropagate Disposition = "propagate"
)

// String returns the string representation of Disposition.
func (d Disposition) String() string {
	return string(d)
}

// IsValid checks whether the Disposition value is one of the predefined
// values.
func (d Disposition) IsValid() bool {
	switch d {
	case DispositionApply, DispositionSuppress, DispositionPropagate:
		return true
	default:
		return false
	}
}

// ParseDisposition converts a string to a Disposition.
// Returns an error if the string does not match any valid disposition.
func ParseDisposition(s string) (Disposition, error) {
	d := Disposition(strings.ToLower(s))
	if !d.IsValid() {
		return "", fmt.Errorf("invalid disposition: %q (valid: apply, suppress, propagate)", s)
	}
	return d, nil
}

// ExitCode defines the CLI exit codes. These allow scripts and CI systems
// to tell a missing companion command apart from an unreachable daemon.
type ExitCode int

const (
	// ExitSuccess indicates the command completed successfully.
	ExitSuccess ExitCode = 0

	// ExitGeneralError indicates an unspecified error occurred.
	ExitGeneralError ExitCode = 1

	// ExitConfigError indicates the configuration file could not be
	// loaded or failed validation.
	ExitConfigError ExitCode = 2

	// ExitDockerNotRunning indicates the Docker daemon is not accessible.
	ExitDockerNotRunning ExitCode = 3

	// ExitCommandFailed indicates the companion command (minikube) failed
	// for a reason other than an unsupported driver.
	ExitCommandFailed ExitCode = 4

	// ExitChildFailed indicates the child command started by "exec"
	// could not be started. When it starts and exits non-zero, its own
	// exit code is used instead.
	ExitChildFailed ExitCode = 5
)

// CLIError is a custom error type that carries an exit code.
// This allows the CLI layer to translate domain errors into
// appropriate process exit codes.
type CLIError struct {
	// Code is the exit code to return to the OS.
	Code ExitCode

	// Message is the human-readable error description.
	Message string

	// Err is the underlying error, if any.
	Err error
}

// Error satisfies the error interface. It returns the human-readable
// error message, optionally including the underlying error.
func (e *CLIError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

// Unwrap returns the underlying error for use with errors.Is/errors.As.
func (e *CLIError) Unwrap() error {
	return e.Err
}

// NewCLIError creates a new CLIError with the given exit code and message.
func NewCLIError(code ExitCode, message string) *CLIError {
	return &CLIError{Code: code, Message: message}
}

// WrapCLIError creates a new CLIError that wraps an existing error.
func WrapCLIError(code ExitCode, message string, err error) *CLIError {
	return &CLIError{Code: code, Message: message, Err: err}
}
