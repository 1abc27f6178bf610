// Package model defines the domain types and value objects for the
// minikube-envbridge CLI.
//
// This package contains pure data structures with no external dependencies.
// CommandResult and Assignment are transient: they exist only while a single
// bridge invocation runs. The only lasting effect of the bridge is the
// mutation of the process environment, which is not modelled here.
//
// The package also defines exit codes (ExitCode) and a custom error type
// (CLIError) that carries exit codes for proper OS process exit handling.
package model
